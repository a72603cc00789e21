package slideview

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestResolveImageTarget(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"../media/image1.png", "ppt/media/image1.png"},
		{"../../media/image1.png", "ppt/media/image1.png"},
		{"../../../media/image1.png", "ppt/media/image1.png"},
		{"/ppt/media/image1.png", "ppt/media/image1.png"},
		{"/docProps/thumbnail.jpeg", "docProps/thumbnail.jpeg"},
		{"media/image1.png", "ppt/slides/media/image1.png"},
		{"image1.png", "ppt/slides/image1.png"},
	}
	for _, tt := range tests {
		if got := resolveImageTarget(tt.target); got != tt.want {
			t.Errorf("resolveImageTarget(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestLoadImage(t *testing.T) {
	var imgBuf bytes.Buffer
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := png.Encode(&imgBuf, src); err != nil {
		t.Fatal(err)
	}

	parts := fixtureDeckParts()
	parts["ppt/media/missing.png"] = imgBuf.String()
	pres, err := OpenBytes(makeZip(parts))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	slide, _ := pres.SlideAt(3)

	img, err := slide.LoadImage(pres.archive, "rId2")
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("decoded bounds = %v", img.Bounds())
	}
}

func TestLoadImageMissingPart(t *testing.T) {
	pres, err := openFixtureDeck()
	if err != nil {
		t.Fatal(err)
	}
	slide, _ := pres.SlideAt(3)

	if _, err := slide.LoadImage(pres.archive, "rId2"); err == nil {
		t.Error("want error for absent media part")
	}
	if _, err := slide.LoadImage(pres.archive, "rId99"); err == nil {
		t.Error("want error for unknown relationship id")
	}
}
