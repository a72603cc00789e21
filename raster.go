package slideview

import (
	"image"
	"image/jpeg"
	"io"
	"math"
	"strings"

	"github.com/gogpu/gg"
)

// RenderSlide rasterizes one slide into an image.
func RenderSlide(pres *Presentation, slide *Slide, opts RenderOptions) (image.Image, error) {
	opts = opts.withDefaults()
	tree := BuildRenderTree(pres, slide, opts)
	return Rasterize(tree, opts)
}

// RenderSlidePNG rasterizes one slide and writes it as PNG.
func RenderSlidePNG(w io.Writer, pres *Presentation, slide *Slide, opts RenderOptions) error {
	opts = opts.withDefaults()
	tree := BuildRenderTree(pres, slide, opts)
	dc, err := rasterizeContext(tree, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// RenderSlideJPEG rasterizes one slide and writes it as JPEG at the given
// quality (1-100).
func RenderSlideJPEG(w io.Writer, pres *Presentation, slide *Slide, quality int, opts RenderOptions) error {
	img, err := RenderSlide(pres, slide, opts)
	if err != nil {
		return err
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// Rasterize paints a draw-instruction tree into an image.
func Rasterize(tree *RenderTree, opts RenderOptions) (image.Image, error) {
	dc, err := rasterizeContext(tree, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func rasterizeContext(tree *RenderTree, opts RenderOptions) (*gg.Context, error) {
	opts = opts.withDefaults()
	w, h := tree.Width, tree.Height
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dc := gg.NewContext(w, h)

	switch opts.Quality {
	case QualityHigh:
		dc.SetRasterizerMode(gg.RasterizerAnalytic)
	case QualityLow:
		dc.SetRasterizerMode(gg.RasterizerSDF)
	default:
		dc.SetRasterizerMode(gg.RasterizerAuto)
	}

	bg := &FilledPath{
		Path: buildPresetPath("rect", float64(w), float64(h), nil),
		Fill: tree.Background,
		W:    float64(w),
		H:    float64(h),
	}
	if err := drawFilledPath(dc, bg); err != nil {
		return nil, err
	}
	for _, elem := range tree.Elements {
		if err := drawElement(dc, elem, opts); err != nil {
			return nil, err
		}
	}
	return dc, nil
}

func drawElement(dc *gg.Context, elem RenderElement, opts RenderOptions) error {
	switch e := elem.(type) {
	case *FilledPath:
		return drawFilledPath(dc, e)
	case *StrokedPath:
		return drawStrokedPath(dc, e)
	case *TextElement:
		return drawTextElement(dc, e)
	case *ImageElement:
		drawImageElement(dc, e, opts)
		return nil
	case *PlaceholderElement:
		return drawPlaceholder(dc, e)
	case *GroupElement:
		dc.Push()
		dc.Translate(e.TranslateX, e.TranslateY)
		dc.Scale(e.ScaleX, e.ScaleY)
		if e.Rotation != 0 {
			dc.RotateAbout(e.Rotation*math.Pi/180, e.RotateCX, e.RotateCY)
		}
		for _, child := range e.Children {
			if err := drawElement(dc, child, opts); err != nil {
				dc.Pop()
				return err
			}
		}
		dc.Pop()
		return nil
	}
	return nil
}

func tracePath(dc *gg.Context, p Path) {
	for _, seg := range p.Segments {
		switch seg.Op {
		case OpMoveTo:
			dc.MoveTo(seg.Points[0].X, seg.Points[0].Y)
		case OpLineTo:
			dc.LineTo(seg.Points[0].X, seg.Points[0].Y)
		case OpQuadTo:
			dc.QuadraticTo(seg.Points[0].X, seg.Points[0].Y, seg.Points[1].X, seg.Points[1].Y)
		case OpCubicTo:
			dc.CubicTo(seg.Points[0].X, seg.Points[0].Y, seg.Points[1].X, seg.Points[1].Y, seg.Points[2].X, seg.Points[2].Y)
		case OpClose:
			dc.ClosePath()
		}
	}
}

func drawFilledPath(dc *gg.Context, e *FilledPath) error {
	switch e.Fill.Kind {
	case FillNone:
		return nil
	case FillGradient:
		if len(e.Fill.Stops) == 0 {
			return nil
		}
		x0, y0, x1, y1 := gradientAxis(e.X, e.Y, e.W, e.H, e.Fill.Angle)
		brush := gg.NewLinearGradientBrush(x0, y0, x1, y1)
		for _, stop := range e.Fill.Stops {
			brush.AddColorStop(stop.Position, gg.FromColor(stop.Color.RGBA()))
		}
		tracePath(dc, e.Path)
		dc.SetFillBrush(brush)
		return dc.Fill()
	default:
		tracePath(dc, e.Path)
		dc.SetColor(e.Fill.Color.RGBA())
		return dc.Fill()
	}
}

// gradientAxis converts a gradient angle in degrees (0 = left to right,
// increasing clockwise) into a line across the box.
func gradientAxis(x, y, w, h, angle float64) (x0, y0, x1, y1 float64) {
	rad := angle * math.Pi / 180
	dx, dy := math.Cos(rad), math.Sin(rad)
	cx, cy := x+w/2, y+h/2
	// Half-length of the projection of the box onto the gradient direction.
	half := (math.Abs(dx)*w + math.Abs(dy)*h) / 2
	return cx - dx*half, cy - dy*half, cx + dx*half, cy + dy*half
}

func drawStrokedPath(dc *gg.Context, e *StrokedPath) error {
	tracePath(dc, e.Path)
	dc.SetColor(e.Color.RGBA())
	dc.SetLineWidth(e.Width)
	if e.Dashed {
		dc.SetDash(4*e.Width, 3*e.Width)
	}
	err := dc.Stroke()
	if e.Dashed {
		dc.SetDash()
	}
	return err
}

func drawTextElement(dc *gg.Context, e *TextElement) error {
	penY := e.Y
	for _, line := range e.Layout.Lines {
		baseline := penY + line.Ascent
		offsets := runOffsets(line, e.W)
		for i, run := range line.Runs {
			x := e.X + offsets[i]
			if run.HasFace && run.Text != "" {
				dc.SetFont(run.Face)
				dc.SetColor(run.Color.RGBA())
				dc.DrawString(run.Text, x, baseline)
			}
			if run.Underline && run.Width > 0 {
				uy := baseline + run.SizePx*0.08
				dc.SetColor(run.Color.RGBA())
				dc.SetLineWidth(math.Max(1, run.SizePx/14))
				dc.MoveTo(x, uy)
				dc.LineTo(x+run.Width, uy)
				if err := dc.Stroke(); err != nil {
					return err
				}
			}
		}
		penY += line.Height()
	}
	return nil
}

// runOffsets returns each run's x offset from the box's left edge. Justified
// lines stretch their inter-word gaps to fill the box; the last line of a
// paragraph, and lines with no gaps to stretch, fall back to left alignment.
func runOffsets(line LayoutLine, boxW float64) []float64 {
	offsets := make([]float64, len(line.Runs))
	extra := boxW - line.Indent - line.Width
	if line.Align == AlignJustify && !line.Last && extra > 0 {
		gaps := 0
		for _, run := range line.Runs {
			if strings.TrimSpace(run.Text) == "" {
				gaps++
			}
		}
		if gaps > 0 {
			add := extra / float64(gaps)
			var shift float64
			for i, run := range line.Runs {
				offsets[i] = line.Indent + run.X + shift
				if strings.TrimSpace(run.Text) == "" {
					shift += add
				}
			}
			return offsets
		}
	}
	base := alignOffset(line, boxW)
	for i, run := range line.Runs {
		offsets[i] = line.Indent + base + run.X
	}
	return offsets
}

func alignOffset(line LayoutLine, boxW float64) float64 {
	extra := boxW - line.Indent - line.Width
	if extra <= 0 {
		return 0
	}
	switch line.Align {
	case AlignCenter:
		return extra / 2
	case AlignRight:
		return extra
	default:
		return 0
	}
}

func drawImageElement(dc *gg.Context, e *ImageElement, opts RenderOptions) {
	if e.W <= 0 || e.H <= 0 {
		return
	}
	interp := gg.InterpBilinear
	if opts.Quality == QualityLow {
		interp = gg.InterpNearest
	}
	dc.DrawImageEx(gg.ImageBufFromImage(e.Image), gg.DrawImageOptions{
		X:             e.X,
		Y:             e.Y,
		DstWidth:      e.W,
		DstHeight:     e.H,
		SrcRect:       e.SrcRect,
		Interpolation: interp,
	})
}

func drawPlaceholder(dc *gg.Context, e *PlaceholderElement) error {
	fill := NewColor("E6E6E6")
	border := NewColor("9E9E9E")
	path := translatePath(buildPresetPath("rect", e.W, e.H, nil), e.X, e.Y)

	tracePath(dc, path)
	dc.SetColor(fill.RGBA())
	if err := dc.Fill(); err != nil {
		return err
	}
	tracePath(dc, path)
	dc.SetColor(border.RGBA())
	dc.SetLineWidth(1)
	if err := dc.Stroke(); err != nil {
		return err
	}
	// Diagonals mark the frame as unresolved media.
	var diag Path
	diag.moveTo(e.X, e.Y)
	diag.lineTo(e.X+e.W, e.Y+e.H)
	diag.moveTo(e.X+e.W, e.Y)
	diag.lineTo(e.X, e.Y+e.H)
	tracePath(dc, diag)
	dc.SetColor(border.RGBA())
	return dc.Stroke()
}
