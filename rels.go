package slideview

import (
	"encoding/xml"
	"strings"
)

// RelKind classifies a relationship by the media it points at.
type RelKind int

const (
	RelOther RelKind = iota
	RelImage
	RelChart
	RelDiagram
	RelMedia
)

func (k RelKind) String() string {
	switch k {
	case RelImage:
		return "image"
	case RelChart:
		return "chart"
	case RelDiagram:
		return "diagram"
	case RelMedia:
		return "media"
	default:
		return "other"
	}
}

// Relationship is a named pointer from a package part to another part or to
// external media. Immutable after parse.
type Relationship struct {
	ID      string
	Kind    RelKind
	RawType string // full type URI, kept for kinds the enum collapses
	Target  string // as authored; resolve before reading from the archive
}

type xmlRelationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type xmlRelationships struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []xmlRelationship `xml:"Relationship"`
}

// parseRelationships parses the raw XML of a _rels/*.rels part into a map
// keyed by relationship id. Duplicate ids overwrite (last wins); the format
// guarantees uniqueness within one part. Target paths are kept as authored
// because the resolution rule depends on which part references them.
func parseRelationships(data []byte, partName string) (map[string]Relationship, error) {
	var rels xmlRelationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, &XMLError{Part: partName, Err: err}
	}
	out := make(map[string]Relationship, len(rels.Relationships))
	for _, r := range rels.Relationships {
		out[r.ID] = Relationship{
			ID:      r.ID,
			Kind:    classifyRelType(r.Type),
			RawType: r.Type,
			Target:  r.Target,
		}
	}
	return out, nil
}

// classifyRelType buckets a relationship type URI by substring match.
func classifyRelType(t string) RelKind {
	switch {
	case strings.Contains(t, "image"):
		return RelImage
	case strings.Contains(t, "chart"):
		return RelChart
	case strings.Contains(t, "diagram"):
		return RelDiagram
	case strings.Contains(t, "video"), strings.Contains(t, "audio"), strings.Contains(t, "media"):
		return RelMedia
	default:
		return RelOther
	}
}

// relsPathFor returns the companion .rels path for a part, e.g.
// "ppt/slides/slide1.xml" -> "ppt/slides/_rels/slide1.xml.rels".
func relsPathFor(partPath string) string {
	i := strings.LastIndex(partPath, "/")
	if i < 0 {
		return "_rels/" + partPath + ".rels"
	}
	return partPath[:i] + "/_rels/" + partPath[i+1:] + ".rels"
}

// resolvePartPath resolves a relationship target against the directory of
// the part that declared it, collapsing "." and ".." segments.
func resolvePartPath(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	parts := strings.Split(baseDir, "/")
	for _, seg := range strings.Split(target, "/") {
		switch seg {
		case "..":
			if len(parts) > 0 {
				parts = parts[:len(parts)-1]
			}
		case ".", "":
		default:
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, "/")
}
