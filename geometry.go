package slideview

import "math"

// PathOp is one path construction verb.
type PathOp int

const (
	OpMoveTo PathOp = iota
	OpLineTo
	OpQuadTo
	OpCubicTo
	OpClose
)

// PointF is a point in pixel coordinates.
type PointF struct {
	X float64
	Y float64
}

// PathSegment is one verb plus its control points. MoveTo and LineTo use
// Points[0]; QuadTo uses Points[0..1]; CubicTo uses all three.
type PathSegment struct {
	Op     PathOp
	Points [3]PointF
}

// Path is an outline built from preset geometry, in pixel coordinates.
type Path struct {
	Segments []PathSegment
}

func (p *Path) moveTo(x, y float64) {
	p.Segments = append(p.Segments, PathSegment{Op: OpMoveTo, Points: [3]PointF{{x, y}}})
}

func (p *Path) lineTo(x, y float64) {
	p.Segments = append(p.Segments, PathSegment{Op: OpLineTo, Points: [3]PointF{{x, y}}})
}

func (p *Path) cubicTo(x1, y1, x2, y2, x, y float64) {
	p.Segments = append(p.Segments, PathSegment{Op: OpCubicTo, Points: [3]PointF{{x1, y1}, {x2, y2}, {x, y}}})
}

func (p *Path) close() {
	p.Segments = append(p.Segments, PathSegment{Op: OpClose})
}

// adjustRatio reads a preset adjustment in the 0..100000 guide range and
// returns it as a ratio, clamped to [0,1]. def is the preset's documented
// default when the shape carries no avLst.
func adjustRatio(adj map[string]int64, name string, def float64) float64 {
	v, ok := adj[name]
	if !ok {
		return def
	}
	r := float64(v) / 100000
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// circleKappa is the cubic Bezier control offset approximating a quarter
// circle.
const circleKappa = 0.5522847498

func polygonPath(pts []PointF) Path {
	var p Path
	if len(pts) == 0 {
		return p
	}
	p.moveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.lineTo(pt.X, pt.Y)
	}
	p.close()
	return p
}

// radialPoints places n points evenly around an ellipse inscribed in w x h,
// starting at angle start (radians, measured clockwise from straight up).
func radialPoints(n int, w, h, start float64) []PointF {
	cx, cy := w/2, h/2
	rx, ry := w/2, h/2
	pts := make([]PointF, n)
	for i := 0; i < n; i++ {
		a := start + float64(i)*2*math.Pi/float64(n)
		pts[i] = PointF{X: cx + rx*math.Sin(a), Y: cy - ry*math.Cos(a)}
	}
	return pts
}

// starPoints alternates between the outer ellipse and an inner ellipse
// scaled by innerRatio.
func starPoints(n int, w, h, innerRatio float64) []PointF {
	cx, cy := w/2, h/2
	pts := make([]PointF, 0, 2*n)
	for i := 0; i < 2*n; i++ {
		a := float64(i) * math.Pi / float64(n)
		rx, ry := w/2, h/2
		if i%2 == 1 {
			rx *= innerRatio
			ry *= innerRatio
		}
		pts = append(pts, PointF{X: cx + rx*math.Sin(a), Y: cy - ry*math.Cos(a)})
	}
	return pts
}

func ellipsePath(w, h float64) Path {
	var p Path
	cx, cy := w/2, h/2
	rx, ry := w/2, h/2
	kx, ky := rx*circleKappa, ry*circleKappa
	p.moveTo(cx+rx, cy)
	p.cubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.cubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.cubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.cubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.close()
	return p
}

func roundRectPath(w, h, radius float64) Path {
	r := radius
	if max := math.Min(w, h) / 2; r > max {
		r = max
	}
	k := r * circleKappa
	var p Path
	p.moveTo(r, 0)
	p.lineTo(w-r, 0)
	p.cubicTo(w-r+k, 0, w, r-k, w, r)
	p.lineTo(w, h-r)
	p.cubicTo(w, h-r+k, w-r+k, h, w-r, h)
	p.lineTo(r, h)
	p.cubicTo(r-k, h, 0, h-r+k, 0, h-r)
	p.lineTo(0, r)
	p.cubicTo(0, r-k, r-k, 0, r, 0)
	p.close()
	return p
}

func arrowPath(w, h float64, headRatio, thickRatio float64, dir int) Path {
	switch dir {
	case 0, 1: // right / left
		head := math.Min(w*headRatio, w)
		half := h * thickRatio / 2
		cy := h / 2
		pts := []PointF{
			{0, cy - half},
			{w - head, cy - half},
			{w - head, 0},
			{w, cy},
			{w - head, h},
			{w - head, cy + half},
			{0, cy + half},
		}
		if dir == 1 {
			for i := range pts {
				pts[i].X = w - pts[i].X
			}
		}
		return polygonPath(pts)
	default: // up / down
		head := math.Min(h*headRatio, h)
		half := w * thickRatio / 2
		cx := w / 2
		pts := []PointF{
			{cx - half, h},
			{cx - half, head},
			{0, head},
			{cx, 0},
			{w, head},
			{cx + half, head},
			{cx + half, h},
		}
		if dir == 3 {
			for i := range pts {
				pts[i].Y = h - pts[i].Y
			}
		}
		return polygonPath(pts)
	}
}

// buildPresetPath constructs the outline of a preset geometry scaled to a
// w x h pixel box. Unknown presets fall back to a plain rectangle so every
// shape stays visible.
func buildPresetPath(preset string, w, h float64, adj map[string]int64) Path {
	switch preset {
	case "rect", "snip1Rect", "flowChartProcess", "":
		return polygonPath([]PointF{{0, 0}, {w, 0}, {w, h}, {0, h}})
	case "roundRect", "round1Rect", "round2SameRect", "flowChartAlternateProcess":
		r := adjustRatio(adj, "adj", 0.16667) * math.Min(w, h)
		return roundRectPath(w, h, r)
	case "ellipse", "flowChartConnector":
		return ellipsePath(w, h)
	case "triangle":
		return polygonPath([]PointF{{w / 2, 0}, {w, h}, {0, h}})
	case "rtTriangle":
		return polygonPath([]PointF{{0, 0}, {w, h}, {0, h}})
	case "diamond", "flowChartDecision":
		return polygonPath([]PointF{{w / 2, 0}, {w, h / 2}, {w / 2, h}, {0, h / 2}})
	case "parallelogram":
		inset := adjustRatio(adj, "adj", 0.25) * math.Min(w, h)
		return polygonPath([]PointF{{inset, 0}, {w, 0}, {w - inset, h}, {0, h}})
	case "trapezoid":
		inset := adjustRatio(adj, "adj", 0.25) * math.Min(w, h)
		return polygonPath([]PointF{{inset, 0}, {w - inset, 0}, {w, h}, {0, h}})
	case "hexagon":
		inset := adjustRatio(adj, "adj", 0.25) * math.Min(w, h)
		return polygonPath([]PointF{
			{inset, 0}, {w - inset, 0}, {w, h / 2},
			{w - inset, h}, {inset, h}, {0, h / 2},
		})
	case "octagon":
		inset := adjustRatio(adj, "adj", 0.29289) * math.Min(w, h)
		return polygonPath([]PointF{
			{inset, 0}, {w - inset, 0}, {w, inset}, {w, h - inset},
			{w - inset, h}, {inset, h}, {0, h - inset}, {0, inset},
		})
	case "pentagon":
		return polygonPath(radialPoints(5, w, h, 0))
	case "line", "straightConnector1", "bentConnector3":
		var p Path
		p.moveTo(0, 0)
		p.lineTo(w, h)
		return p
	case "rightArrow", "arrow":
		return arrowPath(w, h, adjustRatio(adj, "adj2", 0.5), adjustRatio(adj, "adj1", 0.5), 0)
	case "leftArrow":
		return arrowPath(w, h, adjustRatio(adj, "adj2", 0.5), adjustRatio(adj, "adj1", 0.5), 1)
	case "upArrow":
		return arrowPath(w, h, adjustRatio(adj, "adj2", 0.5), adjustRatio(adj, "adj1", 0.5), 2)
	case "downArrow":
		return arrowPath(w, h, adjustRatio(adj, "adj2", 0.5), adjustRatio(adj, "adj1", 0.5), 3)
	case "star4":
		return polygonPath(starPoints(4, w, h, 0.2929))
	case "star5":
		return polygonPath(starPoints(5, w, h, 0.382))
	case "star6":
		return polygonPath(starPoints(6, w, h, 0.5774))
	default:
		return polygonPath([]PointF{{0, 0}, {w, 0}, {w, h}, {0, h}})
	}
}

// isLinePreset reports whether the preset draws as an open connector with no
// fillable interior.
func isLinePreset(preset string) bool {
	switch preset {
	case "line", "straightConnector1", "bentConnector2", "bentConnector3", "curvedConnector3":
		return true
	}
	return false
}
