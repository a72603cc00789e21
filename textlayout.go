package slideview

import (
	"strings"
	"unicode/utf8"

	"github.com/gogpu/gg/text"
)

const (
	defaultFontSizePt = 18.0
	lineSpacingFactor = 1.2
	bulletIndentPx    = 18.0 // per indent level, at scale 1
)

// LayoutRun is a measured span of styled text placed on one line.
type LayoutRun struct {
	Text      string
	Face      text.Face
	HasFace   bool
	FontFace  string
	SizePx    float64
	Bold      bool
	Italic    bool
	Underline bool
	Color     Color
	Width     float64
	X         float64
}

// LayoutLine is one wrapped line: its runs plus vertical metrics.
type LayoutLine struct {
	Runs    []LayoutRun
	Width   float64
	Ascent  float64
	Descent float64
	Align   Alignment
	Indent  float64
	Last    bool // final line of its paragraph; justify leaves it ragged
}

// Height is the line's advance including spacing.
func (l LayoutLine) Height() float64 {
	return (l.Ascent + l.Descent) * lineSpacingFactor
}

// TextLayout is the wrapped form of a shape's paragraphs, ready to paint.
type TextLayout struct {
	Lines  []LayoutLine
	Height float64
}

// resolveThemeFont maps the theme font tokens "+mj-lt" and "+mn-lt" to the
// scheme's concrete typefaces.
func resolveThemeFont(name string, theme *Theme) string {
	switch name {
	case "+mj-lt", "+mj-ea", "+mj-cs":
		return theme.Fonts.MajorLatin
	case "+mn-lt", "+mn-ea", "+mn-cs", "":
		return theme.Fonts.MinorLatin
	default:
		return name
	}
}

// measureRun returns the advance of s. Without a usable face it estimates
// half an em per rune, which keeps wrapping deterministic on systems with no
// fonts installed.
func measureRun(face text.Face, hasFace bool, s string, sizePx float64) float64 {
	if hasFace {
		return face.Advance(s)
	}
	return 0.5 * sizePx * float64(utf8.RuneCountInString(s))
}

func runMetrics(face text.Face, hasFace bool, sizePx float64) (ascent, descent float64) {
	if hasFace {
		m := face.Metrics()
		if m.Ascent > 0 {
			return m.Ascent, m.Descent
		}
	}
	return 0.8 * sizePx, 0.2 * sizePx
}

// layoutParagraphs wraps paragraphs into lines that fit maxWidth pixels.
// Wrapping is greedy on word boundaries; a word wider than the box gets a
// line of its own rather than being split.
func layoutParagraphs(paras []Paragraph, fc *FontCache, theme *Theme, maxWidth, scale float64, defaultColor Color) TextLayout {
	var layout TextLayout
	for _, para := range paras {
		lines := layoutParagraph(para, fc, theme, maxWidth, scale, defaultColor)
		layout.Lines = append(layout.Lines, lines...)
	}
	for _, line := range layout.Lines {
		layout.Height += line.Height()
	}
	return layout
}

func layoutParagraph(para Paragraph, fc *FontCache, theme *Theme, maxWidth, scale float64, defaultColor Color) []LayoutLine {
	indent := float64(para.Level) * bulletIndentPx * scale
	avail := maxWidth - indent
	if avail < 1 {
		avail = 1
	}

	type styledWord struct {
		text string
		run  LayoutRun
	}

	// Flatten runs into words carrying their style so wrapping can cross
	// run boundaries.
	var words []styledWord
	for i, r := range para.Runs {
		sizePt := r.SizePt
		if sizePt <= 0 {
			sizePt = defaultFontSizePt
		}
		sizePx := sizePt * scale
		faceName := resolveThemeFont(r.FontFace, theme)
		face, hasFace := fc.GetFace(faceName, sizePx, r.Bold, r.Italic)
		color := defaultColor
		if r.HasColor {
			color = r.Color
		}
		proto := LayoutRun{
			Face:      face,
			HasFace:   hasFace,
			FontFace:  faceName,
			SizePx:    sizePx,
			Bold:      r.Bold,
			Italic:    r.Italic,
			Underline: r.Underline,
			Color:     color,
		}
		txt := r.Text
		if i == 0 && para.Bullet && txt != "" {
			txt = "• " + txt
		}
		for _, word := range splitKeepingSpaces(txt) {
			words = append(words, styledWord{text: word, run: proto})
		}
	}

	newLine := func() LayoutLine {
		return LayoutLine{Align: para.Align, Indent: indent}
	}

	var lines []LayoutLine
	line := newLine()
	flush := func() {
		if len(line.Runs) == 0 {
			// An empty paragraph still takes vertical space.
			sizePx := defaultFontSizePt * scale
			if len(para.Runs) > 0 && para.Runs[0].SizePt > 0 {
				sizePx = para.Runs[0].SizePt * scale
			}
			line.Ascent = 0.8 * sizePx
			line.Descent = 0.2 * sizePx
		}
		lines = append(lines, line)
		line = newLine()
	}

	for _, w := range words {
		width := measureRun(w.run.Face, w.run.HasFace, w.text, w.run.SizePx)
		if line.Width+width > avail && len(line.Runs) > 0 && strings.TrimSpace(w.text) != "" {
			flush()
		}
		run := w.run
		run.Text = w.text
		run.Width = width
		run.X = line.Width
		asc, desc := runMetrics(run.Face, run.HasFace, run.SizePx)
		if asc > line.Ascent {
			line.Ascent = asc
		}
		if desc > line.Descent {
			line.Descent = desc
		}
		line.Runs = append(line.Runs, run)
		line.Width += width
	}
	flush()
	lines[len(lines)-1].Last = true
	return lines
}

// splitKeepingSpaces breaks s into alternating word and whitespace chunks so
// inter-word spacing survives wrapping.
func splitKeepingSpaces(s string) []string {
	var parts []string
	start := 0
	inSpace := false
	for i, r := range s {
		isSpace := r == ' ' || r == '\t'
		if i > 0 && isSpace != inSpace {
			parts = append(parts, s[start:i])
			start = i
		}
		inSpace = isSpace
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}
