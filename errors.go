package slideview

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural failures. Structural failures abort the
// whole load; per-shape rendering problems degrade to placeholders instead
// (see render.go).
var (
	// ErrInvalidPackage indicates the input is not a valid ZIP container.
	ErrInvalidPackage = errors.New("not a valid presentation package")

	// ErrCorruptedArchive indicates the container opened but a member is
	// internally inconsistent (bad checksum, truncated entry).
	ErrCorruptedArchive = errors.New("corrupted archive")

	// ErrFileNotFound indicates a requested part is absent from the archive.
	ErrFileNotFound = errors.New("file not found in package")
)

// MissingFileError reports a required package member that is absent.
type MissingFileError struct {
	Name string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("required file missing from package: %s", e.Name)
}

// XMLError reports an unparsable XML part.
type XMLError struct {
	Part string
	Err  error
}

func (e *XMLError) Error() string {
	return fmt.Sprintf("invalid XML in %s: %v", e.Part, e.Err)
}

func (e *XMLError) Unwrap() error { return e.Err }

// SlideNotFoundError reports a slide lookup that matched nothing.
type SlideNotFoundError struct {
	Selector string
}

func (e *SlideNotFoundError) Error() string {
	return fmt.Sprintf("slide not found: %s", e.Selector)
}
