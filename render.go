package slideview

import (
	"image"
	"math"
)

// Quality selects the speed/fidelity tradeoff of the rasterizer.
type Quality int

const (
	QualityLow Quality = iota
	QualityBalanced
	QualityHigh
)

// RenderOptions configures slide rendering.
type RenderOptions struct {
	// Scale multiplies the slide's authored size; 1.0 renders at 72 DPI.
	Scale float64
	// Quality picks rasterizer and resampling modes.
	Quality Quality
	// Fonts supplies the font cache. Nil uses a process-wide cache over the
	// system font directories.
	Fonts *FontCache
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.Scale <= 0 {
		o.Scale = 1.0
	}
	if o.Fonts == nil {
		o.Fonts = sharedFontCache()
	}
	return o
}

// RenderElement is one node of the draw-instruction tree. Elements appear in
// paint order; the rasterizer walks them front to back without consulting
// the slide model again.
type RenderElement interface {
	renderElement()
}

// FilledPath paints a closed path with a solid or gradient fill.
type FilledPath struct {
	Path Path
	Fill Fill
	// Bounds anchors gradient geometry.
	X, Y, W, H float64
}

// StrokedPath paints a path outline.
type StrokedPath struct {
	Path   Path
	Color  Color
	Width  float64
	Dashed bool
}

// TextElement paints laid-out text into a box. Line positions are relative
// to (X, Y); horizontal alignment is applied per line against W.
type TextElement struct {
	Layout TextLayout
	X, Y   float64
	W, H   float64
}

// ImageElement paints a decoded image scaled into a box.
type ImageElement struct {
	Image      image.Image
	X, Y, W, H float64
	SrcRect    *image.Rectangle
}

// PlaceholderElement marks a frame whose media could not be resolved. It
// paints as a light gray box with a border.
type PlaceholderElement struct {
	X, Y, W, H float64
	Name       string
}

// GroupElement applies a transform around its children: translate and scale
// first, then a rotation about (RotateCX, RotateCY) in the children's
// coordinate space. Negative scale factors mirror.
type GroupElement struct {
	Children   []RenderElement
	TranslateX float64
	TranslateY float64
	ScaleX     float64
	ScaleY     float64
	Rotation   float64 // degrees, clockwise
	RotateCX   float64
	RotateCY   float64
}

func (*FilledPath) renderElement()         {}
func (*StrokedPath) renderElement()        {}
func (*TextElement) renderElement()        {}
func (*ImageElement) renderElement()       {}
func (*PlaceholderElement) renderElement() {}
func (*GroupElement) renderElement()       {}

// RenderTree is the complete draw plan for one slide.
type RenderTree struct {
	Width      int
	Height     int
	Background Fill
	Elements   []RenderElement
}

// textInsetEMU is the default body inset on each side of a text box.
const textInsetEMU = 91440 // 0.1 inch

// BuildRenderTree flattens a slide into draw instructions at the given
// options. Shapes emit elements in document order, so earlier shapes paint
// beneath later ones. Unresolvable pictures become placeholder elements
// rather than errors.
func BuildRenderTree(pres *Presentation, slide *Slide, opts RenderOptions) *RenderTree {
	opts = opts.withDefaults()
	cx, cy := pres.SlideSize()
	tree := &RenderTree{
		Width:      int(math.Ceil(EMUToPixel(cx, opts.Scale))),
		Height:     int(math.Ceil(EMUToPixel(cy, opts.Scale))),
		Background: slide.Background,
	}
	if tree.Background.Kind == FillNone {
		tree.Background = Fill{Kind: FillSolid, Color: pres.theme.Colors.Light1}
	}
	for _, shape := range slide.Shapes {
		tree.Elements = append(tree.Elements, buildShape(pres, slide, shape, opts)...)
	}
	return tree
}

func buildShape(pres *Presentation, slide *Slide, shape Shape, opts RenderOptions) []RenderElement {
	switch s := shape.(type) {
	case *GeometryShape:
		return buildGeometry(pres, s, opts)
	case *TextBoxShape:
		return buildTextBox(pres, s, opts)
	case *PictureShape:
		return buildPicture(pres, slide, s, opts)
	case *TableShape:
		return buildTable(pres, s, opts)
	case *GraphicFrameShape:
		x, y, w, h := frameBox(s.Frame, opts.Scale)
		return []RenderElement{&PlaceholderElement{X: x, Y: y, W: w, H: h, Name: s.Name}}
	case *GroupShape:
		return buildGroup(pres, slide, s, opts)
	}
	return nil
}

func frameBox(f Frame, scale float64) (x, y, w, h float64) {
	return EMUToPixel(f.X, scale), EMUToPixel(f.Y, scale),
		EMUToPixel(f.CX, scale), EMUToPixel(f.CY, scale)
}

func translatePath(p Path, dx, dy float64) Path {
	out := Path{Segments: make([]PathSegment, len(p.Segments))}
	for i, seg := range p.Segments {
		for j := range seg.Points {
			seg.Points[j].X += dx
			seg.Points[j].Y += dy
		}
		out.Segments[i] = seg
	}
	return out
}

func buildGeometry(pres *Presentation, s *GeometryShape, opts RenderOptions) []RenderElement {
	x, y, w, h := frameBox(s.Frame, opts.Scale)
	path := translatePath(buildPresetPath(s.Preset, w, h, s.Adjustments), x, y)

	var out []RenderElement
	if s.Fill.Kind != FillNone && !isLinePreset(s.Preset) {
		out = append(out, &FilledPath{Path: path, Fill: s.Fill, X: x, Y: y, W: w, H: h})
	}
	if s.Line.Enabled {
		width := EMUToPixel(s.Line.Width, opts.Scale)
		if width <= 0 {
			width = 1
		}
		out = append(out, &StrokedPath{Path: path, Color: s.Line.Color, Width: width, Dashed: s.Line.Dashed})
	}
	if len(s.Paragraphs) > 0 {
		out = append(out, buildText(pres, s.Paragraphs, s.Frame, defaultShapeTextColor(pres, s.Fill), opts))
	}
	if s.Rotation != 0 || s.FlipH || s.FlipV {
		return []RenderElement{shapeTransform(s, out, x, y, w, h)}
	}
	return out
}

// shapeTransform wraps a rotated or flipped shape's elements in a group that
// mirrors and spins them about the frame center.
func shapeTransform(s *GeometryShape, elems []RenderElement, x, y, w, h float64) RenderElement {
	cx, cy := x+w/2, y+h/2
	g := &GroupElement{
		Children: elems,
		ScaleX:   1,
		ScaleY:   1,
		Rotation: s.Rotation,
		RotateCX: cx,
		RotateCY: cy,
	}
	if s.FlipH {
		g.ScaleX = -1
		g.TranslateX = 2 * cx
	}
	if s.FlipV {
		g.ScaleY = -1
		g.TranslateY = 2 * cy
	}
	return g
}

// defaultShapeTextColor picks a readable default when runs carry no explicit
// color: light text over dark fills, dark text otherwise.
func defaultShapeTextColor(pres *Presentation, fill Fill) Color {
	if fill.Kind == FillSolid {
		c := fill.Color
		lum := 0.299*float64(c.Red()) + 0.587*float64(c.Green()) + 0.114*float64(c.Blue())
		if lum < 128 {
			return pres.theme.Colors.Light1
		}
	}
	return pres.theme.Colors.Dark1
}

func buildTextBox(pres *Presentation, s *TextBoxShape, opts RenderOptions) []RenderElement {
	var out []RenderElement
	if s.Fill.Kind != FillNone {
		x, y, w, h := frameBox(s.Frame, opts.Scale)
		path := translatePath(buildPresetPath("rect", w, h, nil), x, y)
		out = append(out, &FilledPath{Path: path, Fill: s.Fill, X: x, Y: y, W: w, H: h})
	}
	if len(s.Paragraphs) > 0 {
		out = append(out, buildText(pres, s.Paragraphs, s.Frame, defaultShapeTextColor(pres, s.Fill), opts))
	}
	return out
}

func buildText(pres *Presentation, paras []Paragraph, frame Frame, defaultColor Color, opts RenderOptions) RenderElement {
	inset := EMUToPixel(textInsetEMU, opts.Scale)
	x, y, w, h := frameBox(frame, opts.Scale)
	boxW := w - 2*inset
	if boxW < 1 {
		boxW = 1
	}
	layout := layoutParagraphs(paras, opts.Fonts, pres.theme, boxW, opts.Scale, defaultColor)
	return &TextElement{Layout: layout, X: x + inset, Y: y + inset, W: boxW, H: h - 2*inset}
}

func buildPicture(pres *Presentation, slide *Slide, s *PictureShape, opts RenderOptions) []RenderElement {
	x, y, w, h := frameBox(s.Frame, opts.Scale)
	img, err := slide.LoadImage(pres.archive, s.RelID)
	if err != nil {
		return []RenderElement{&PlaceholderElement{X: x, Y: y, W: w, H: h, Name: s.Name}}
	}

	elem := &ImageElement{Image: img, X: x, Y: y, W: w, H: h}
	if !s.Crop.IsZero() {
		b := img.Bounds()
		iw, ih := float64(b.Dx()), float64(b.Dy())
		src := image.Rect(
			b.Min.X+int(iw*float64(s.Crop.Left)/100000),
			b.Min.Y+int(ih*float64(s.Crop.Top)/100000),
			b.Max.X-int(iw*float64(s.Crop.Right)/100000),
			b.Max.Y-int(ih*float64(s.Crop.Bottom)/100000),
		)
		if src.Dx() > 0 && src.Dy() > 0 {
			elem.SrcRect = &src
		}
	}

	out := []RenderElement{RenderElement(elem)}
	if s.Line.Enabled {
		path := translatePath(buildPresetPath("rect", w, h, nil), x, y)
		width := EMUToPixel(s.Line.Width, opts.Scale)
		if width <= 0 {
			width = 1
		}
		out = append(out, &StrokedPath{Path: path, Color: s.Line.Color, Width: width, Dashed: s.Line.Dashed})
	}
	return out
}

func buildTable(pres *Presentation, s *TableShape, opts RenderOptions) []RenderElement {
	x, y, _, _ := frameBox(s.Frame, opts.Scale)
	layout := layoutTable(s, opts.Scale)

	var out []RenderElement
	for r, rowCells := range s.Cells {
		for c, cell := range rowCells {
			if cell.Merged {
				continue
			}
			cx, cy, cw, ch := layout.CellRect(r, c, cell.GridSpan, cell.RowSpan)
			if cw <= 0 || ch <= 0 {
				continue
			}
			cx += x
			cy += y
			fill := tableCellFill(s, pres.theme, r, cell)
			if fill.Kind != FillNone {
				path := translatePath(buildPresetPath("rect", cw, ch, nil), cx, cy)
				out = append(out, &FilledPath{Path: path, Fill: fill, X: cx, Y: cy, W: cw, H: ch})
			}
			if len(cell.Paragraphs) > 0 {
				inset := EMUToPixel(textInsetEMU, opts.Scale) / 2
				boxW := cw - 2*inset
				if boxW < 1 {
					boxW = 1
				}
				textColor := tableCellTextColor(s, pres.theme, r)
				tl := layoutParagraphs(cell.Paragraphs, opts.Fonts, pres.theme, boxW, opts.Scale, textColor)
				out = append(out, &TextElement{Layout: tl, X: cx + inset, Y: cy + inset, W: boxW, H: ch - 2*inset})
			}
		}
	}

	// Grid lines over the cell fills.
	grid := pres.theme.Colors.Light1
	var lines Path
	for _, ex := range layout.ColEdges {
		lines.moveTo(x+ex, y)
		lines.lineTo(x+ex, y+layout.Height)
	}
	for _, ey := range layout.RowEdges {
		lines.moveTo(x, y+ey)
		lines.lineTo(x+layout.Width, y+ey)
	}
	out = append(out, &StrokedPath{Path: lines, Color: grid, Width: 1 * opts.Scale})
	return out
}

func buildGroup(pres *Presentation, slide *Slide, s *GroupShape, opts RenderOptions) []RenderElement {
	group := &GroupElement{ScaleX: 1, ScaleY: 1}
	x, y, w, h := frameBox(s.Frame, opts.Scale)

	if !s.ChildFrame.IsZero() && s.ChildFrame.CX > 0 && s.ChildFrame.CY > 0 {
		chX, chY, chW, chH := frameBox(s.ChildFrame, opts.Scale)
		group.ScaleX = w / chW
		group.ScaleY = h / chH
		group.TranslateX = x - chX*group.ScaleX
		group.TranslateY = y - chY*group.ScaleY
		group.RotateCX = chX + chW/2
		group.RotateCY = chY + chH/2
	} else {
		group.TranslateX = x
		group.TranslateY = y
		group.RotateCX = w / 2
		group.RotateCY = h / 2
	}
	group.Rotation = s.Rotation

	for _, child := range s.Children {
		group.Children = append(group.Children, buildShape(pres, slide, child, opts)...)
	}
	return []RenderElement{group}
}
