package slideview

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// maxZipEntrySize is the maximum allowed size for a single member extracted
// from the package. This prevents zip bomb attacks. 50 MB is generous for
// any legitimate part.
const maxZipEntrySize = 50 << 20 // 50 MB

// maxZipTotalSize is the limit for the package file itself.
const maxZipTotalSize = 200 << 20 // 200 MB

// maxZipEntries is the maximum number of members allowed in a package.
const maxZipEntries = 10000

// Archive is a random-access view of the presentation package. It knows
// nothing about XML semantics; it only maps internal paths to byte streams.
// An Archive is read-only after construction and safe for concurrent reads.
type Archive struct {
	zr    *zip.Reader
	files map[string]*zip.File
}

// OpenArchive opens a package from an io.ReaderAt. The reader must remain
// valid for the lifetime of the Archive.
func OpenArchive(r io.ReaderAt, size int64) (*Archive, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: invalid size %d", ErrInvalidPackage, size)
	}
	if size > maxZipTotalSize {
		return nil, fmt.Errorf("%w: size %d exceeds maximum (%d bytes)", ErrInvalidPackage, size, maxZipTotalSize)
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}
	if len(zr.File) > maxZipEntries {
		return nil, fmt.Errorf("%w: too many entries (%d > %d)", ErrCorruptedArchive, len(zr.File), maxZipEntries)
	}

	// klauspost's flate is a faster drop-in for the stdlib inflater; PPTX
	// members are nearly always Deflate-compressed.
	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}
	return &Archive{zr: zr, files: files}, nil
}

// OpenArchiveBytes opens a package held fully in memory.
func OpenArchiveBytes(data []byte) (*Archive, error) {
	return OpenArchive(bytes.NewReader(data), int64(len(data)))
}

// Has reports whether the archive contains a member with the given path.
func (a *Archive) Has(path string) bool {
	_, ok := a.files[path]
	return ok
}

// Read returns the decompressed bytes of the member at path.
// Returns ErrFileNotFound if the path is absent and ErrCorruptedArchive if
// the member fails its checksum or exceeds the size limits.
func (a *Archive) Read(path string) ([]byte, error) {
	f, ok := a.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if f.UncompressedSize64 > maxZipEntrySize {
		return nil, fmt.Errorf("%w: %s exceeds maximum member size (%d bytes)", ErrCorruptedArchive, path, maxZipEntrySize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrCorruptedArchive, path, err)
	}
	defer rc.Close()

	// Reading through EOF triggers the zip CRC check.
	data, err := io.ReadAll(io.LimitReader(rc, maxZipEntrySize+1))
	if err != nil {
		if errors.Is(err, zip.ErrChecksum) {
			return nil, fmt.Errorf("%w: %s failed checksum", ErrCorruptedArchive, path)
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrCorruptedArchive, path, err)
	}
	if len(data) > maxZipEntrySize {
		return nil, fmt.Errorf("%w: %s actual size exceeds maximum member size", ErrCorruptedArchive, path)
	}
	return data, nil
}
