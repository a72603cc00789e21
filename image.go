package slideview

import (
	"bytes"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// resolveImageTarget converts a relationship target from a slide's .rels file
// into an archive path. Targets come in three forms: parent-relative
// ("../media/image1.png"), package-absolute ("/ppt/media/image1.png"), and
// bare ("media/image1.png", relative to the slide part's directory).
func resolveImageTarget(target string) string {
	switch {
	case strings.HasPrefix(target, "../"):
		for strings.HasPrefix(target, "../") {
			target = strings.TrimPrefix(target, "../")
		}
		return "ppt/" + target
	case strings.HasPrefix(target, "/"):
		return strings.TrimPrefix(target, "/")
	default:
		return "ppt/slides/" + target
	}
}

// LoadImage reads and decodes the image behind a slide relationship ID.
// EMF/WMF vector payloads decode as nothing Go's image registry knows, so
// they surface the same way a missing part does: a nil image and an error
// the renderer downgrades to a placeholder.
func (s *Slide) LoadImage(archive *Archive, relID string) (image.Image, error) {
	rel, ok := s.Rels[relID]
	if !ok {
		return nil, &relNotFoundError{relID: relID, part: s.partPath}
	}
	data, err := archive.Read(resolveImageTarget(rel.Target))
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

type relNotFoundError struct {
	relID string
	part  string
}

func (e *relNotFoundError) Error() string {
	return "relationship " + e.relID + " not found in " + e.part
}
