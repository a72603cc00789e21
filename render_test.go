package slideview

import (
	"bytes"
	"image/png"
	"math"
	"testing"
)

func testRenderOptions() RenderOptions {
	return RenderOptions{Scale: 1.0, Fonts: emptyFontCache()}
}

func TestRenderTreeDimensions(t *testing.T) {
	pres, err := openFixtureDeck()
	if err != nil {
		t.Fatal(err)
	}
	slide, _ := pres.SlideAt(1)

	tree := BuildRenderTree(pres, slide, testRenderOptions())
	if tree.Width != 720 || tree.Height != 540 {
		t.Errorf("tree size = %dx%d, want 720x540", tree.Width, tree.Height)
	}

	tree = BuildRenderTree(pres, slide, RenderOptions{Scale: 2.0, Fonts: emptyFontCache()})
	if tree.Width != 1440 || tree.Height != 1080 {
		t.Errorf("tree size at 2x = %dx%d, want 1440x1080", tree.Width, tree.Height)
	}
}

func TestRenderTreeBackgroundDefaultsToLight1(t *testing.T) {
	pres, err := openFixtureDeck()
	if err != nil {
		t.Fatal(err)
	}
	slide, _ := pres.SlideAt(1)
	tree := BuildRenderTree(pres, slide, testRenderOptions())
	if tree.Background.Kind != FillSolid {
		t.Fatalf("background kind = %v", tree.Background.Kind)
	}
	if tree.Background.Color != pres.Theme().Colors.Light1 {
		t.Errorf("background = %v, want theme light1", tree.Background.Color)
	}
}

func TestRenderTreeDocumentOrder(t *testing.T) {
	pres, err := openFixtureDeck()
	if err != nil {
		t.Fatal(err)
	}
	slide, _ := pres.SlideAt(1)
	tree := BuildRenderTree(pres, slide, testRenderOptions())

	// The two title text boxes come before the rounded rectangle in the
	// slide, so their text paints beneath the rectangle's fill.
	firstText, firstFill := -1, -1
	for i, elem := range tree.Elements {
		switch elem.(type) {
		case *TextElement:
			if firstText < 0 {
				firstText = i
			}
		case *FilledPath:
			if firstFill < 0 {
				firstFill = i
			}
		}
	}
	if firstText < 0 || firstFill < 0 {
		t.Fatalf("expected text and fill elements, got %#v", tree.Elements)
	}
	if firstText > firstFill {
		t.Errorf("text at %d should precede fill at %d", firstText, firstFill)
	}
}

func TestRenderTreeGeometryShape(t *testing.T) {
	pres, err := openFixtureDeck()
	if err != nil {
		t.Fatal(err)
	}
	slide, _ := pres.SlideAt(1)
	tree := BuildRenderTree(pres, slide, testRenderOptions())

	var fill *FilledPath
	var stroke *StrokedPath
	for _, elem := range tree.Elements {
		switch e := elem.(type) {
		case *FilledPath:
			if fill == nil {
				fill = e
			}
		case *StrokedPath:
			if stroke == nil {
				stroke = e
			}
		}
	}
	if fill == nil || stroke == nil {
		t.Fatal("rounded rectangle should emit a fill and a stroke")
	}
	if fill.Fill.Color.ARGB != "FF85A3C2" {
		t.Errorf("fill color = %s, want tinted accent1 FF85A3C2", fill.Fill.Color.ARGB)
	}
	if stroke.Color.ARGB != "FF1F497D" {
		t.Errorf("stroke color = %s", stroke.Color.ARGB)
	}
	// 25400 EMU is 2pt.
	if math.Abs(stroke.Width-2) > 1e-9 {
		t.Errorf("stroke width = %v, want 2", stroke.Width)
	}
}

func TestRenderTreeMissingPictureBecomesPlaceholder(t *testing.T) {
	pres, err := openFixtureDeck()
	if err != nil {
		t.Fatal(err)
	}
	slide, _ := pres.SlideAt(3)
	tree := BuildRenderTree(pres, slide, testRenderOptions())

	var ph *PlaceholderElement
	for _, elem := range tree.Elements {
		if p, ok := elem.(*PlaceholderElement); ok {
			ph = p
			break
		}
	}
	if ph == nil {
		t.Fatal("unresolvable picture should produce a placeholder, not vanish")
	}
	if ph.X != 144 || ph.Y != 144 || ph.W != 288 || ph.H != 216 {
		t.Errorf("placeholder box = (%v,%v,%v,%v)", ph.X, ph.Y, ph.W, ph.H)
	}
	if ph.Name != "Picture 5" {
		t.Errorf("placeholder name = %q", ph.Name)
	}
}

func TestRenderTreeGroupTransform(t *testing.T) {
	pres, err := openFixtureDeck()
	if err != nil {
		t.Fatal(err)
	}
	slide, _ := pres.SlideAt(3)
	tree := BuildRenderTree(pres, slide, testRenderOptions())

	var group *GroupElement
	for _, elem := range tree.Elements {
		if g, ok := elem.(*GroupElement); ok {
			group = g
			break
		}
	}
	if group == nil {
		t.Fatal("group shape should produce a group element")
	}
	// Frame is 144x72 over a 72x36 child space.
	if group.ScaleX != 2 || group.ScaleY != 2 {
		t.Errorf("group scale = (%v,%v), want (2,2)", group.ScaleX, group.ScaleY)
	}
	if group.TranslateX != 36 || group.TranslateY != 36 {
		t.Errorf("group translate = (%v,%v), want (36,36)", group.TranslateX, group.TranslateY)
	}
	var ellipse *FilledPath
	for _, child := range group.Children {
		if f, ok := child.(*FilledPath); ok {
			ellipse = f
			break
		}
	}
	if ellipse == nil {
		t.Fatal("group should contain the ellipse fill")
	}
	if ellipse.Fill.Color.ARGB != "FFC0504D" {
		t.Errorf("ellipse fill = %s", ellipse.Fill.Color.ARGB)
	}
}

func TestRenderTreeTable(t *testing.T) {
	pres, err := openFixtureDeck()
	if err != nil {
		t.Fatal(err)
	}
	slide, _ := pres.SlideAt(2)
	tree := BuildRenderTree(pres, slide, testRenderOptions())

	fills := 0
	strokes := 0
	for _, elem := range tree.Elements {
		switch elem.(type) {
		case *FilledPath:
			fills++
		case *StrokedPath:
			strokes++
		}
	}
	if fills == 0 {
		t.Error("table cells should emit fills")
	}
	if strokes == 0 {
		t.Error("table should emit grid lines")
	}
}

func TestRasterizeSmoke(t *testing.T) {
	pres, err := openFixtureDeck()
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= pres.SlideCount(); i++ {
		slide, err := pres.SlideAt(i)
		if err != nil {
			t.Fatal(err)
		}
		img, err := RenderSlide(pres, slide, testRenderOptions())
		if err != nil {
			t.Fatalf("slide %d: %v", i, err)
		}
		b := img.Bounds()
		if b.Dx() != 720 || b.Dy() != 540 {
			t.Errorf("slide %d image = %dx%d, want 720x540", i, b.Dx(), b.Dy())
		}
	}
}

func TestRenderSlidePNG(t *testing.T) {
	pres, err := openFixtureDeck()
	if err != nil {
		t.Fatal(err)
	}
	slide, _ := pres.SlideAt(1)
	var buf bytes.Buffer
	if err := RenderSlidePNG(&buf, pres, slide, RenderOptions{Scale: 0.5, Fonts: emptyFontCache()}); err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 360 || cfg.Height != 270 {
		t.Errorf("png = %dx%d, want 360x270", cfg.Width, cfg.Height)
	}
}

func TestRenderTreeTableRowWiderThanGrid(t *testing.T) {
	cells := ""
	for _, txt := range []string{"a", "b", "c", "d"} {
		cells += `<a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>` + txt + `</a:t></a:r></a:p></a:txBody><a:tcPr/></a:tc>`
	}
	pres, err := openDeckWithSlide1(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="` + nsP + `" xmlns:a="` + nsA + `">
<p:cSld><p:spTree>
<p:graphicFrame>
<p:nvGraphicFramePr><p:cNvPr id="5" name="Table 4"/></p:nvGraphicFramePr>
<p:xfrm><a:off x="914400" y="914400"/><a:ext cx="1828800" cy="914400"/></p:xfrm>
<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">
<a:tbl><a:tblPr/>
<a:tblGrid><a:gridCol w="914400"/><a:gridCol w="914400"/></a:tblGrid>
<a:tr h="457200">` + cells + `</a:tr>
</a:tbl>
</a:graphicData></a:graphic>
</p:graphicFrame>
</p:spTree></p:cSld>
</p:sld>`)
	if err != nil {
		t.Fatal(err)
	}
	slide, _ := pres.SlideAt(1)

	// The two extra cells have no grid columns; they degrade to nothing
	// instead of aborting the render.
	tree := BuildRenderTree(pres, slide, testRenderOptions())
	texts := 0
	for _, elem := range tree.Elements {
		if _, ok := elem.(*TextElement); ok {
			texts++
		}
	}
	if texts != 2 {
		t.Errorf("got %d cell texts, want 2 (one per declared column)", texts)
	}
}

func TestRenderTreeChartFramePlaceholder(t *testing.T) {
	pres, err := openDeckWithSlide1(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="` + nsP + `" xmlns:a="` + nsA + `">
<p:cSld><p:spTree>
<p:graphicFrame>
<p:nvGraphicFramePr><p:cNvPr id="9" name="Chart 8"/></p:nvGraphicFramePr>
<p:xfrm><a:off x="914400" y="914400"/><a:ext cx="1828800" cy="914400"/></p:xfrm>
<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/chart"/></a:graphic>
</p:graphicFrame>
</p:spTree></p:cSld>
</p:sld>`)
	if err != nil {
		t.Fatal(err)
	}
	slide, _ := pres.SlideAt(1)
	tree := BuildRenderTree(pres, slide, testRenderOptions())
	if len(tree.Elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(tree.Elements))
	}
	ph, ok := tree.Elements[0].(*PlaceholderElement)
	if !ok {
		t.Fatalf("element is %T, want *PlaceholderElement", tree.Elements[0])
	}
	if ph.X != 72 || ph.Y != 72 || ph.W != 144 || ph.H != 72 {
		t.Errorf("placeholder box = (%v,%v,%v,%v)", ph.X, ph.Y, ph.W, ph.H)
	}
}

func TestRenderTreeRotatedFlippedShape(t *testing.T) {
	pres, err := openDeckWithSlide1(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="` + nsP + `" xmlns:a="` + nsA + `">
<p:cSld><p:spTree>
<p:sp>
<p:nvSpPr><p:cNvPr id="2" name="Spun 1"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
<p:spPr>
<a:xfrm rot="5400000" flipH="1"><a:off x="914400" y="914400"/><a:ext cx="1828800" cy="914400"/></a:xfrm>
<a:prstGeom prst="rect"/>
<a:solidFill><a:srgbClr val="336699"/></a:solidFill>
</p:spPr>
</p:sp>
</p:spTree></p:cSld>
</p:sld>`)
	if err != nil {
		t.Fatal(err)
	}
	slide, _ := pres.SlideAt(1)
	tree := BuildRenderTree(pres, slide, testRenderOptions())
	if len(tree.Elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(tree.Elements))
	}
	g, ok := tree.Elements[0].(*GroupElement)
	if !ok {
		t.Fatalf("element is %T, want the transform group", tree.Elements[0])
	}
	// Frame (72,72,144,72), so the center is (144,108).
	if g.Rotation != 90 || g.RotateCX != 144 || g.RotateCY != 108 {
		t.Errorf("rotation = %v about (%v,%v), want 90 about (144,108)", g.Rotation, g.RotateCX, g.RotateCY)
	}
	if g.ScaleX != -1 || g.TranslateX != 288 {
		t.Errorf("flipH transform = scale %v translate %v, want -1 and 288", g.ScaleX, g.TranslateX)
	}
	if g.ScaleY != 1 || g.TranslateY != 0 {
		t.Errorf("flipV transform = scale %v translate %v, want 1 and 0", g.ScaleY, g.TranslateY)
	}
	if len(g.Children) != 1 {
		t.Fatalf("got %d children, want the rectangle fill", len(g.Children))
	}
	if _, ok := g.Children[0].(*FilledPath); !ok {
		t.Errorf("child is %T, want *FilledPath", g.Children[0])
	}
}
