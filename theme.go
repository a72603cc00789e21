package slideview

import (
	"bytes"
	"encoding/xml"
	"io"
)

// ColorScheme is the 12-slot theme color scheme. Each slot holds a concrete
// RGB value; sysClr slots carry the last-known RGB the authoring application
// recorded.
type ColorScheme struct {
	Dark1             Color
	Light1            Color
	Dark2             Color
	Light2            Color
	Accent1           Color
	Accent2           Color
	Accent3           Color
	Accent4           Color
	Accent5           Color
	Accent6           Color
	Hyperlink         Color
	FollowedHyperlink Color
}

// FontScheme holds the theme's major (headings) and minor (body) Latin
// typefaces.
type FontScheme struct {
	MajorLatin string
	MinorLatin string
}

// Theme is a parsed theme part: color scheme plus font scheme.
type Theme struct {
	Name   string
	Colors ColorScheme
	Fonts  FontScheme
}

// defaultColorScheme is the palette used for any slot a theme part does not
// supply, and for whole documents that carry no theme part. It is the only
// place default theme colors live.
var defaultColorScheme = ColorScheme{
	Dark1:             NewColor("000000"),
	Light1:            NewColor("FFFFFF"),
	Dark2:             NewColor("1F497D"),
	Light2:            NewColor("EEECE1"),
	Accent1:           NewColor("4F81BD"),
	Accent2:           NewColor("C0504D"),
	Accent3:           NewColor("9BBB59"),
	Accent4:           NewColor("8064A2"),
	Accent5:           NewColor("4BACC6"),
	Accent6:           NewColor("F79646"),
	Hyperlink:         NewColor("0000FF"),
	FollowedHyperlink: NewColor("800080"),
}

var defaultFontScheme = FontScheme{
	MajorLatin: "Cambria",
	MinorLatin: "Calibri",
}

// DefaultTheme returns the theme used when the package has no theme part.
func DefaultTheme() *Theme {
	return &Theme{Name: "Office", Colors: defaultColorScheme, Fonts: defaultFontScheme}
}

// ResolveColor maps a scheme-slot name (as used by <a:schemeClr val="...">)
// to its RGB value. Slide-context aliases tx1/bg1/tx2/bg2 map onto
// dk1/lt1/dk2/lt2. Unknown names report ok=false.
func (t *Theme) ResolveColor(name string) (Color, bool) {
	switch name {
	case "dk1", "tx1":
		return t.Colors.Dark1, true
	case "lt1", "bg1":
		return t.Colors.Light1, true
	case "dk2", "tx2":
		return t.Colors.Dark2, true
	case "lt2", "bg2":
		return t.Colors.Light2, true
	case "accent1":
		return t.Colors.Accent1, true
	case "accent2":
		return t.Colors.Accent2, true
	case "accent3":
		return t.Colors.Accent3, true
	case "accent4":
		return t.Colors.Accent4, true
	case "accent5":
		return t.Colors.Accent5, true
	case "accent6":
		return t.Colors.Accent6, true
	case "hlink":
		return t.Colors.Hyperlink, true
	case "folHlink":
		return t.Colors.FollowedHyperlink, true
	default:
		return Color{}, false
	}
}

// parseTheme parses a theme part. Ancestry is tracked with an explicit
// element-name stack rather than flags on the currently open tag: slot names
// like "accent1" appear as both wrapper and child names, and only the stack
// distinguishes <a:clrScheme><a:accent1><a:srgbClr/>... from a color element
// nested deeper under an unrelated wrapper.
func parseTheme(data []byte, partName string) (*Theme, error) {
	theme := DefaultTheme()
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var stack []string
	parent := func(n int) string {
		if len(stack) < n {
			return ""
		}
		return stack[len(stack)-n]
	}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &XMLError{Part: partName, Err: err}
		}
		switch t := token.(type) {
		case xml.StartElement:
			name := t.Name.Local
			switch name {
			case "theme":
				for _, attr := range t.Attr {
					if attr.Name.Local == "name" {
						theme.Name = attr.Value
					}
				}
			case "srgbClr":
				// Only a color element whose grandparent is clrScheme fills a
				// slot; the parent element names the slot itself.
				if parent(1) != "" && parent(2) == "clrScheme" {
					for _, attr := range t.Attr {
						if attr.Name.Local == "val" {
							theme.setSlot(parent(1), NewColor(attr.Value))
						}
					}
				}
			case "sysClr":
				if parent(1) != "" && parent(2) == "clrScheme" {
					for _, attr := range t.Attr {
						if attr.Name.Local == "lastClr" {
							theme.setSlot(parent(1), NewColor(attr.Value))
						}
					}
				}
			case "latin":
				switch parent(1) {
				case "majorFont":
					for _, attr := range t.Attr {
						if attr.Name.Local == "typeface" && attr.Value != "" {
							theme.Fonts.MajorLatin = attr.Value
						}
					}
				case "minorFont":
					for _, attr := range t.Attr {
						if attr.Name.Local == "typeface" && attr.Value != "" {
							theme.Fonts.MinorLatin = attr.Value
						}
					}
				}
			}
			stack = append(stack, name)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return theme, nil
}

func (t *Theme) setSlot(slot string, c Color) {
	switch slot {
	case "dk1":
		t.Colors.Dark1 = c
	case "lt1":
		t.Colors.Light1 = c
	case "dk2":
		t.Colors.Dark2 = c
	case "lt2":
		t.Colors.Light2 = c
	case "accent1":
		t.Colors.Accent1 = c
	case "accent2":
		t.Colors.Accent2 = c
	case "accent3":
		t.Colors.Accent3 = c
	case "accent4":
		t.Colors.Accent4 = c
	case "accent5":
		t.Colors.Accent5 = c
	case "accent6":
		t.Colors.Accent6 = c
	case "hlink":
		t.Colors.Hyperlink = c
	case "folHlink":
		t.Colors.FollowedHyperlink = c
	}
}
