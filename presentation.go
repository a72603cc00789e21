package slideview

import "strconv"

// DocumentProperties holds the package metadata from docProps.
type DocumentProperties struct {
	Title          string
	Subject        string
	Creator        string
	Keywords       string
	Description    string
	LastModifiedBy string
	Created        string
	Modified       string
	Application    string
	Company        string
}

// Presentation is a fully opened package: the ordered slides, the resolved
// theme, and the archive the renderer reads media from.
type Presentation struct {
	archive   *Archive
	theme     *Theme
	slides    []*Slide
	slideIDs  []string
	slideSize Frame
	props     DocumentProperties
}

// SlideCount returns the number of slides. A presentation with zero slides
// is valid.
func (p *Presentation) SlideCount() int {
	return len(p.slides)
}

// SlideAt returns the slide at the given 1-based index.
func (p *Presentation) SlideAt(index int) (*Slide, error) {
	if index < 1 || index > len(p.slides) {
		return nil, &SlideNotFoundError{Selector: "index " + strconv.Itoa(index)}
	}
	return p.slides[index-1], nil
}

// SlideByID returns the slide with the given sldId value.
func (p *Presentation) SlideByID(id string) (*Slide, error) {
	for _, slide := range p.slides {
		if slide.ID == id {
			return slide, nil
		}
	}
	return nil, &SlideNotFoundError{Selector: "id " + id}
}

// Slides returns the slides in document order. The returned slice is shared;
// callers must not modify it.
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// Theme returns the resolved theme, never nil.
func (p *Presentation) Theme() *Theme {
	return p.theme
}

// SlideSize returns the authored slide dimensions in EMU.
func (p *Presentation) SlideSize() (cx, cy int64) {
	return p.slideSize.CX, p.slideSize.CY
}

// Properties returns the document metadata. Missing docProps parts leave the
// zero value.
func (p *Presentation) Properties() DocumentProperties {
	return p.props
}

// ExtractText returns every non-empty paragraph of every slide, in slide and
// document order. Notes are not included.
func (p *Presentation) ExtractText() []string {
	var out []string
	for _, slide := range p.slides {
		out = append(out, slide.TextContent...)
	}
	return out
}
