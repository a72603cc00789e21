package slideview

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	contentTypesPart = "[Content_Types].xml"
	rootRelsPart     = "_rels/.rels"
	presentationPart = "ppt/presentation.xml"
)

// Open reads a presentation package from a file path.
func Open(path string) (*Presentation, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	return OpenReader(f, info.Size())
}

// OpenReader reads a presentation package from an io.ReaderAt.
func OpenReader(r io.ReaderAt, size int64) (*Presentation, error) {
	archive, err := OpenArchive(r, size)
	if err != nil {
		return nil, err
	}
	return readPackage(archive)
}

// OpenBytes reads a presentation package held in memory.
func OpenBytes(data []byte) (*Presentation, error) {
	archive, err := OpenArchiveBytes(data)
	if err != nil {
		return nil, err
	}
	return readPackage(archive)
}

func readPackage(archive *Archive) (*Presentation, error) {
	for _, required := range []string{contentTypesPart, rootRelsPart, presentationPart} {
		if !archive.Has(required) {
			return nil, &MissingFileError{Name: required}
		}
	}

	pres := &Presentation{
		archive: archive,
		theme:   DefaultTheme(),
	}

	slideRelIDs, err := readPresentationPart(archive, pres)
	if err != nil {
		return nil, err
	}

	relsData, err := archive.Read(relsPathFor(presentationPart))
	var presRels map[string]Relationship
	if err == nil {
		presRels, err = parseRelationships(relsData, relsPathFor(presentationPart))
		if err != nil {
			return nil, err
		}
	} else {
		presRels = map[string]Relationship{}
	}

	if themePath := findThemePart(presRels); themePath != "" {
		if data, err := archive.Read(themePath); err == nil {
			theme, err := parseTheme(data, themePath)
			if err != nil {
				return nil, err
			}
			pres.theme = theme
		}
	}

	// Metadata parts are optional; a package without docProps is valid.
	readDocumentProperties(archive, pres)

	for i, relID := range slideRelIDs {
		rel, ok := presRels[relID]
		if !ok {
			continue
		}
		partPath := resolvePartPath("ppt", rel.Target)
		slide, err := readSlidePart(archive, partPath, pres.theme)
		if err != nil {
			return nil, err
		}
		slide.Index = len(pres.slides) + 1
		if i < len(pres.slideIDs) {
			slide.ID = pres.slideIDs[i]
		}
		slide.Notes = readSlideNotes(archive, slide)
		pres.slides = append(pres.slides, slide)
	}

	return pres, nil
}

// readPresentationPart parses ppt/presentation.xml: the ordered slide ID
// list and the authored slide size. Returned IDs are the r:id relationship
// references in document order.
func readPresentationPart(archive *Archive, pres *Presentation) ([]string, error) {
	data, err := archive.Read(presentationPart)
	if err != nil {
		return nil, err
	}

	type state struct {
		inSldIdLst bool
		relIDs     []string
	}
	var st state

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &XMLError{Part: presentationPart, Err: err}
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sldIdLst":
				st.inSldIdLst = true
			case "sldId":
				if !st.inSldIdLst {
					continue
				}
				var slideID, relID string
				for _, attr := range t.Attr {
					switch {
					case attr.Name.Local == "id" && attr.Name.Space == "":
						slideID = attr.Value
					case attr.Name.Local == "id" && strings.Contains(attr.Name.Space, "relationships"):
						relID = attr.Value
					}
				}
				if relID != "" {
					st.relIDs = append(st.relIDs, relID)
					pres.slideIDs = append(pres.slideIDs, slideID)
				}
			case "sldSz":
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "cx":
						pres.slideSize.CX = parseEMUAttr(attr.Value)
					case "cy":
						pres.slideSize.CY = parseEMUAttr(attr.Value)
					}
				}
			}
		case xml.EndElement:
			if t.Name.Local == "sldIdLst" {
				st.inSldIdLst = false
			}
		}
	}

	if pres.slideSize.CX <= 0 || pres.slideSize.CY <= 0 {
		// 4:3 default, 10 x 7.5 inches.
		pres.slideSize.CX = Inch(10)
		pres.slideSize.CY = Inch(7.5)
	}
	return st.relIDs, nil
}

func parseEMUAttr(s string) int64 {
	var v int64
	neg := false
	for i, c := range s {
		if i == 0 && c == '-' {
			neg = true
			continue
		}
		if c < '0' || c > '9' {
			return 0
		}
		v = v*10 + int64(c-'0')
		if v > maxEMU {
			v = maxEMU
			break
		}
	}
	if neg {
		return -v
	}
	return v
}

// findThemePart returns the archive path of the first theme relationship, or
// "" when the package carries no theme.
func findThemePart(presRels map[string]Relationship) string {
	for _, rel := range presRels {
		if strings.Contains(rel.RawType, "/theme") {
			return resolvePartPath("ppt", rel.Target)
		}
	}
	return ""
}

// readSlideNotes pulls the plain text of a slide's notes part, if it has
// one. Notes failures never fail the slide.
func readSlideNotes(archive *Archive, slide *Slide) string {
	for _, rel := range slide.Rels {
		if !strings.Contains(rel.RawType, "notesSlide") {
			continue
		}
		partPath := resolvePartPath("ppt/slides", rel.Target)
		data, err := archive.Read(partPath)
		if err != nil {
			return ""
		}
		return extractNotesText(data)
	}
	return ""
}

// extractNotesText collects the character data of every a:t element in a
// notes part.
func extractNotesText(data []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var sb strings.Builder
	inT := false
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inT = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inT = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inT {
				sb.Write(t)
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// xmlCoreProperties maps docProps/core.xml.
type xmlCoreProperties struct {
	XMLName        xml.Name `xml:"coreProperties"`
	Title          string   `xml:"title"`
	Subject        string   `xml:"subject"`
	Creator        string   `xml:"creator"`
	Keywords       string   `xml:"keywords"`
	Description    string   `xml:"description"`
	LastModifiedBy string   `xml:"lastModifiedBy"`
	Created        string   `xml:"created"`
	Modified       string   `xml:"modified"`
}

// xmlAppProperties maps docProps/app.xml.
type xmlAppProperties struct {
	XMLName     xml.Name `xml:"Properties"`
	Application string   `xml:"Application"`
	Company     string   `xml:"Company"`
	Slides      int      `xml:"Slides"`
}

func readDocumentProperties(archive *Archive, pres *Presentation) {
	if data, err := archive.Read("docProps/core.xml"); err == nil {
		var core xmlCoreProperties
		if xml.Unmarshal(data, &core) == nil {
			pres.props.Title = core.Title
			pres.props.Subject = core.Subject
			pres.props.Creator = core.Creator
			pres.props.Keywords = core.Keywords
			pres.props.Description = core.Description
			pres.props.LastModifiedBy = core.LastModifiedBy
			pres.props.Created = core.Created
			pres.props.Modified = core.Modified
		}
	}
	if data, err := archive.Read("docProps/app.xml"); err == nil {
		var app xmlAppProperties
		if xml.Unmarshal(data, &app) == nil {
			pres.props.Application = app.Application
			pres.props.Company = app.Company
		}
	}
}
