package slideview

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// readSlidePart parses one slide part into its assembled model: shape tree,
// relationships, title, and extracted text.
func readSlidePart(archive *Archive, partPath string, theme *Theme) (*Slide, error) {
	data, err := archive.Read(partPath)
	if err != nil {
		return nil, err
	}

	slide := &Slide{partPath: partPath, Rels: map[string]Relationship{}}
	if relsData, err := archive.Read(relsPathFor(partPath)); err == nil {
		rels, err := parseRelationships(relsData, relsPathFor(partPath))
		if err != nil {
			return nil, err
		}
		slide.Rels = rels
	}

	if err := parseSlideXML(data, partPath, slide, theme); err != nil {
		return nil, err
	}

	assignTitle(slide)
	slide.TextContent = collectText(slide.Shapes)
	return slide, nil
}

// shapeBuilder accumulates one shape's attributes while its subtree is being
// walked. A fresh builder starts at each sp/pic/graphicFrame open tag, so all
// parse state stays local to the current shape.
type shapeBuilder struct {
	kind   string // "sp", "pic", "frame"
	name   string
	frame  Frame
	rot    float64
	flipH  bool
	flipV  bool
	preset string
	adj    map[string]int64
	fill   Fill
	line   Line
	paras  []Paragraph
	ph     PlaceholderKind
	relID  string
	crop   CropRect
	table  *TableShape
	uri    string
}

func (b *shapeBuilder) build() Shape {
	switch b.kind {
	case "pic":
		return &PictureShape{Name: b.name, Frame: b.frame, RelID: b.relID, Crop: b.crop, Line: b.line}
	case "frame":
		if b.table != nil {
			b.table.Name = b.name
			b.table.Frame = b.frame
			return b.table
		}
		// Charts, diagrams and other undecoded graphics still hold their
		// place in the shape tree.
		return &GraphicFrameShape{Name: b.name, Frame: b.frame, URI: b.uri}
	default:
		if b.preset == "" {
			return &TextBoxShape{Name: b.name, Frame: b.frame, Fill: b.fill, Paragraphs: b.paras, Placeholder: b.ph}
		}
		return &GeometryShape{
			Name:        b.name,
			Frame:       b.frame,
			Preset:      b.preset,
			Adjustments: b.adj,
			Fill:        b.fill,
			Line:        b.line,
			Paragraphs:  b.paras,
			Placeholder: b.ph,
			Rotation:    b.rot,
			FlipH:       b.flipH,
			FlipV:       b.flipV,
		}
	}
}

// parseSlideXML walks the slide markup with a single token loop. All parse
// state lives in function-local values; ancestry that attribute handling
// depends on is tracked with explicit booleans plus a small group stack.
func parseSlideXML(data []byte, partPath string, slide *Slide, theme *Theme) error {
	type parseState struct {
		inSpPr      bool
		inGrpSpPr   bool
		inLn        bool
		inTxBody    bool
		inParagraph bool
		inPPr       bool
		inRun       bool
		inRunProps  bool
		inText      bool
		inTbl       bool
		inTcPr      bool
		inGradFill  bool
		inGs        bool
		gsPos       int
		inBg        bool
	}
	state := &parseState{}

	var builder *shapeBuilder
	var groups []*GroupShape
	var para *Paragraph
	var run *TextRun
	var lastColor *Color
	var table *TableShape
	var row []TableCell
	var cell *TableCell
	var rowHeight int64

	attach := func(s Shape) {
		if s == nil {
			return
		}
		if len(groups) > 0 {
			top := groups[len(groups)-1]
			top.Children = append(top.Children, s)
			return
		}
		slide.Shapes = append(slide.Shapes, s)
	}

	// colorTarget picks where a resolved color lands given the current
	// ancestry, and returns a pointer for modifier children to adjust.
	colorTarget := func(c Color) *Color {
		switch {
		case state.inGs && state.inGradFill && builder != nil:
			f := &builder.fill
			f.Stops = append(f.Stops, GradientStop{
				Position: float64(state.gsPos) / 100000,
				Color:    c,
			})
			return &f.Stops[len(f.Stops)-1].Color
		case state.inRunProps && run != nil:
			run.Color = c
			run.HasColor = true
			return &run.Color
		case state.inLn && builder != nil:
			builder.line.Color = c
			builder.line.Enabled = true
			return &builder.line.Color
		case state.inTcPr && cell != nil:
			cell.Fill = Fill{Kind: FillSolid, Color: c}
			return &cell.Fill.Color
		case state.inBg:
			slide.Background = Fill{Kind: FillSolid, Color: c}
			return &slide.Background.Color
		case state.inSpPr && builder != nil && !state.inGradFill:
			builder.fill = Fill{Kind: FillSolid, Color: c}
			return &builder.fill.Color
		}
		return nil
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &XMLError{Part: partPath, Err: err}
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "bg":
				state.inBg = true
			case "sp", "cxnSp":
				builder = &shapeBuilder{kind: "sp"}
			case "pic":
				builder = &shapeBuilder{kind: "pic"}
			case "graphicFrame":
				builder = &shapeBuilder{kind: "frame"}
			case "grpSp":
				groups = append(groups, &GroupShape{})
			case "cNvPr":
				for _, attr := range t.Attr {
					if attr.Name.Local != "name" {
						continue
					}
					if builder != nil {
						builder.name = attr.Value
					} else if len(groups) > 0 {
						groups[len(groups)-1].Name = attr.Value
					}
				}
			case "ph":
				if builder != nil {
					for _, attr := range t.Attr {
						if attr.Name.Local == "type" {
							builder.ph = placeholderKindOf(attr.Value)
						}
					}
					if builder.ph == PlaceholderNone {
						// A ph element with no type attribute is a body
						// placeholder.
						builder.ph = PlaceholderBody
					}
				}
			case "spPr":
				state.inSpPr = true
			case "grpSpPr":
				state.inGrpSpPr = true
			case "xfrm":
				var rot float64
				var flipH, flipV bool
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "rot":
						if v, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
							rot = float64(v) / 60000
						}
					case "flipH":
						flipH = attr.Value == "1" || attr.Value == "true"
					case "flipV":
						flipV = attr.Value == "1" || attr.Value == "true"
					}
				}
				if builder != nil {
					builder.rot = rot
					builder.flipH = flipH
					builder.flipV = flipV
				} else if state.inGrpSpPr && len(groups) > 0 {
					groups[len(groups)-1].Rotation = rot
				}
			case "off":
				x, y := frameAttrs(t, "x", "y")
				if builder != nil && !state.inGrpSpPr {
					builder.frame.X, builder.frame.Y = x, y
				} else if state.inGrpSpPr && len(groups) > 0 {
					g := groups[len(groups)-1]
					g.Frame.X, g.Frame.Y = x, y
				}
			case "ext":
				cx, cy := frameAttrs(t, "cx", "cy")
				if builder != nil && !state.inGrpSpPr {
					builder.frame.CX, builder.frame.CY = cx, cy
				} else if state.inGrpSpPr && len(groups) > 0 {
					g := groups[len(groups)-1]
					g.Frame.CX, g.Frame.CY = cx, cy
				}
			case "chOff":
				if state.inGrpSpPr && len(groups) > 0 {
					g := groups[len(groups)-1]
					g.ChildFrame.X, g.ChildFrame.Y = frameAttrs(t, "x", "y")
				}
			case "chExt":
				if state.inGrpSpPr && len(groups) > 0 {
					g := groups[len(groups)-1]
					g.ChildFrame.CX, g.ChildFrame.CY = frameAttrs(t, "cx", "cy")
				}
			case "prstGeom":
				if builder != nil {
					for _, attr := range t.Attr {
						if attr.Name.Local == "prst" {
							builder.preset = attr.Value
						}
					}
				}
			case "gd":
				if builder != nil && builder.preset != "" {
					var name, fmla string
					for _, attr := range t.Attr {
						switch attr.Name.Local {
						case "name":
							name = attr.Value
						case "fmla":
							fmla = attr.Value
						}
					}
					if name != "" && strings.HasPrefix(fmla, "val ") {
						if v, err := strconv.ParseInt(strings.TrimPrefix(fmla, "val "), 10, 64); err == nil {
							if builder.adj == nil {
								builder.adj = map[string]int64{}
							}
							builder.adj[name] = v
						}
					}
				}
			case "ln":
				if state.inSpPr && builder != nil {
					state.inLn = true
					for _, attr := range t.Attr {
						if attr.Name.Local == "w" {
							if v, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
								builder.line.Width = v
								builder.line.Enabled = true
							}
						}
					}
				}
			case "prstDash":
				if state.inLn && builder != nil {
					for _, attr := range t.Attr {
						if attr.Name.Local == "val" && attr.Value != "solid" {
							builder.line.Dashed = true
						}
					}
				}
			case "noFill":
				switch {
				case state.inLn && builder != nil:
					builder.line.Enabled = false
				case state.inTcPr && cell != nil:
					cell.Fill = Fill{Kind: FillNone}
				case state.inSpPr && builder != nil:
					builder.fill = Fill{Kind: FillNone}
				}
			case "gradFill":
				if state.inSpPr && builder != nil && !state.inLn {
					state.inGradFill = true
					builder.fill = Fill{Kind: FillGradient}
				}
			case "gs":
				if state.inGradFill {
					state.inGs = true
					state.gsPos = 0
					for _, attr := range t.Attr {
						if attr.Name.Local == "pos" {
							if v, err := strconv.Atoi(attr.Value); err == nil {
								state.gsPos = v
							}
						}
					}
				}
			case "lin":
				if state.inGradFill && builder != nil {
					for _, attr := range t.Attr {
						if attr.Name.Local == "ang" {
							if v, err := strconv.Atoi(attr.Value); err == nil {
								builder.fill.Angle = float64(v) / 60000
							}
						}
					}
				}
			case "srgbClr":
				for _, attr := range t.Attr {
					if attr.Name.Local == "val" {
						lastColor = colorTarget(NewColor(attr.Value))
					}
				}
			case "schemeClr":
				for _, attr := range t.Attr {
					if attr.Name.Local == "val" {
						if c, ok := theme.ResolveColor(attr.Value); ok {
							lastColor = colorTarget(c)
						}
					}
				}
			case "sysClr":
				for _, attr := range t.Attr {
					if attr.Name.Local == "lastClr" {
						lastColor = colorTarget(NewColor(attr.Value))
					}
				}
			case "tint":
				if lastColor != nil {
					if r, ok := modifierRatio(t); ok {
						*lastColor = lastColor.Tint(r)
					}
				}
			case "shade":
				if lastColor != nil {
					if r, ok := modifierRatio(t); ok {
						*lastColor = lastColor.Shade(r)
					}
				}
			case "alpha":
				if lastColor != nil {
					if r, ok := modifierRatio(t); ok {
						*lastColor = lastColor.WithAlpha(r)
					}
				}
			case "blip":
				if builder != nil && builder.kind == "pic" {
					for _, attr := range t.Attr {
						if attr.Name.Local == "embed" {
							builder.relID = attr.Value
						}
					}
				}
			case "srcRect":
				if builder != nil && builder.kind == "pic" {
					for _, attr := range t.Attr {
						v, err := strconv.ParseInt(attr.Value, 10, 64)
						if err != nil {
							continue
						}
						switch attr.Name.Local {
						case "l":
							builder.crop.Left = v
						case "t":
							builder.crop.Top = v
						case "r":
							builder.crop.Right = v
						case "b":
							builder.crop.Bottom = v
						}
					}
				}
			case "graphicData":
				if builder != nil && builder.kind == "frame" {
					for _, attr := range t.Attr {
						if attr.Name.Local == "uri" {
							builder.uri = attr.Value
						}
					}
				}
			case "tbl":
				if builder != nil && builder.kind == "frame" {
					state.inTbl = true
					table = &TableShape{}
				}
			case "tblPr":
				if table != nil {
					for _, attr := range t.Attr {
						switch attr.Name.Local {
						case "firstRow":
							table.FirstRow = attr.Value == "1" || attr.Value == "true"
						case "bandRow":
							table.BandRow = attr.Value == "1" || attr.Value == "true"
						}
					}
				}
			case "gridCol":
				if table != nil {
					for _, attr := range t.Attr {
						if attr.Name.Local == "w" {
							if v, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
								table.ColWidths = append(table.ColWidths, v)
							}
						}
					}
				}
			case "tr":
				if table != nil {
					row = nil
					rowHeight = 0
					for _, attr := range t.Attr {
						if attr.Name.Local == "h" {
							if v, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
								rowHeight = v
							}
						}
					}
				}
			case "tc":
				if table != nil {
					cell = &TableCell{GridSpan: 1, RowSpan: 1}
					for _, attr := range t.Attr {
						switch attr.Name.Local {
						case "gridSpan":
							if v, err := strconv.Atoi(attr.Value); err == nil && v > 1 {
								cell.GridSpan = v
							}
						case "rowSpan":
							if v, err := strconv.Atoi(attr.Value); err == nil && v > 1 {
								cell.RowSpan = v
							}
						case "hMerge", "vMerge":
							if attr.Value == "1" || attr.Value == "true" {
								cell.Merged = true
							}
						}
					}
				}
			case "tcPr":
				if cell != nil {
					state.inTcPr = true
				}
			case "txBody":
				state.inTxBody = true
			case "p":
				if state.inTxBody {
					state.inParagraph = true
					para = &Paragraph{}
				}
			case "pPr":
				if state.inParagraph && para != nil {
					state.inPPr = true
					for _, attr := range t.Attr {
						switch attr.Name.Local {
						case "algn":
							para.Align = alignmentOf(attr.Value)
						case "lvl":
							if v, err := strconv.Atoi(attr.Value); err == nil {
								para.Level = v
							}
						}
					}
				}
			case "buChar", "buAutoNum":
				if state.inPPr && para != nil {
					para.Bullet = true
				}
			case "buNone":
				if state.inPPr && para != nil {
					para.Bullet = false
				}
			case "r":
				if state.inParagraph {
					state.inRun = true
					run = &TextRun{}
				}
			case "br":
				if state.inParagraph && para != nil {
					flushParagraph(para, builder, cell)
					p := &Paragraph{Align: para.Align, Level: para.Level, LineBreak: true}
					para = p
				}
			case "rPr":
				if state.inRun && run != nil {
					state.inRunProps = true
					for _, attr := range t.Attr {
						switch attr.Name.Local {
						case "sz":
							if v, err := strconv.Atoi(attr.Value); err == nil {
								run.SizePt = float64(v) / 100
							}
						case "b":
							run.Bold = attr.Value == "1" || attr.Value == "true"
						case "i":
							run.Italic = attr.Value == "1" || attr.Value == "true"
						case "u":
							run.Underline = attr.Value != "" && attr.Value != "none"
						}
					}
				}
			case "latin":
				if state.inRunProps && run != nil {
					for _, attr := range t.Attr {
						if attr.Name.Local == "typeface" {
							run.FontFace = attr.Value
						}
					}
				}
			case "t":
				if state.inRun {
					state.inText = true
				}
			}

		case xml.CharData:
			if state.inText && run != nil {
				run.Text += string(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "bg":
				state.inBg = false
			case "sp", "cxnSp", "pic":
				if builder != nil {
					attach(builder.build())
					builder = nil
				}
			case "graphicFrame":
				if builder != nil {
					builder.table = table
					attach(builder.build())
					builder = nil
					table = nil
				}
			case "grpSp":
				g := groups[len(groups)-1]
				groups = groups[:len(groups)-1]
				attach(g)
			case "spPr":
				state.inSpPr = false
				lastColor = nil
			case "grpSpPr":
				state.inGrpSpPr = false
			case "ln":
				state.inLn = false
				lastColor = nil
			case "gradFill":
				state.inGradFill = false
			case "gs":
				state.inGs = false
				lastColor = nil
			case "tcPr":
				state.inTcPr = false
				lastColor = nil
			case "tr":
				if table != nil {
					table.RowHeights = append(table.RowHeights, rowHeight)
					table.Cells = append(table.Cells, row)
					row = nil
				}
			case "tc":
				if table != nil && cell != nil {
					row = append(row, *cell)
					cell = nil
				}
			case "txBody":
				state.inTxBody = false
			case "p":
				if para != nil {
					flushParagraph(para, builder, cell)
					para = nil
				}
				state.inParagraph = false
				state.inPPr = false
			case "pPr":
				state.inPPr = false
			case "r":
				if run != nil && para != nil {
					para.Runs = append(para.Runs, *run)
				}
				run = nil
				state.inRun = false
			case "rPr":
				state.inRunProps = false
				lastColor = nil
			case "t":
				state.inText = false
			}
		}
	}
	return nil
}

func frameAttrs(t xml.StartElement, xName, yName string) (int64, int64) {
	var x, y int64
	for _, attr := range t.Attr {
		switch attr.Name.Local {
		case xName:
			x = parseEMUAttr(attr.Value)
		case yName:
			y = parseEMUAttr(attr.Value)
		}
	}
	return x, y
}

// modifierRatio reads a color modifier's val attribute, given in
// thousandths of a percent, as a ratio in [0,1].
func modifierRatio(t xml.StartElement) (float64, bool) {
	for _, attr := range t.Attr {
		if attr.Name.Local == "val" {
			if v, err := strconv.Atoi(attr.Value); err == nil {
				r := float64(v) / 100000
				if r < 0 {
					r = 0
				}
				if r > 1 {
					r = 1
				}
				return r, true
			}
		}
	}
	return 0, false
}

func flushParagraph(para *Paragraph, builder *shapeBuilder, cell *TableCell) {
	if para == nil {
		return
	}
	if cell != nil {
		cell.Paragraphs = append(cell.Paragraphs, *para)
		return
	}
	if builder != nil {
		builder.paras = append(builder.paras, *para)
	}
}

func alignmentOf(algn string) Alignment {
	switch algn {
	case "ctr":
		return AlignCenter
	case "r":
		return AlignRight
	case "just":
		return AlignJustify
	default:
		return AlignLeft
	}
}

// assignTitle picks the slide title: the first non-empty paragraph of the
// first shape in document order whose placeholder is a title or centered
// title. Later title paragraphs never extend or replace it.
func assignTitle(slide *Slide) {
	for _, shape := range slide.Shapes {
		var ph PlaceholderKind
		var paras []Paragraph
		switch s := shape.(type) {
		case *GeometryShape:
			ph, paras = s.Placeholder, s.Paragraphs
		case *TextBoxShape:
			ph, paras = s.Placeholder, s.Paragraphs
		default:
			continue
		}
		if !ph.IsTitle() {
			continue
		}
		for _, p := range paras {
			if txt := p.PlainText(); txt != "" {
				slide.Title = txt
				return
			}
		}
		return
	}
}

// collectText gathers every non-empty paragraph in document order, NFC
// normalized, including table cells and grouped shapes.
func collectText(shapes []Shape) []string {
	var out []string
	for _, shape := range shapes {
		switch s := shape.(type) {
		case *GeometryShape:
			out = appendParagraphText(out, s.Paragraphs)
		case *TextBoxShape:
			out = appendParagraphText(out, s.Paragraphs)
		case *TableShape:
			for _, row := range s.Cells {
				for _, cell := range row {
					out = appendParagraphText(out, cell.Paragraphs)
				}
			}
		case *GroupShape:
			out = append(out, collectText(s.Children)...)
		}
	}
	return out
}

func appendParagraphText(out []string, paras []Paragraph) []string {
	for _, p := range paras {
		if txt := p.PlainText(); txt != "" {
			out = append(out, norm.NFC.String(txt))
		}
	}
	return out
}
