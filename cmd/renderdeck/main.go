package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/codelynx/slideview"
)

func main() {
	var (
		out     = flag.String("out", ".", "output directory")
		scale   = flag.Float64("scale", 1.0, "render scale (1.0 = 72 DPI)")
		quality = flag.String("quality", "balanced", "render quality: low, balanced, high")
		format  = flag.String("format", "png", "output format: png or jpeg")
		text    = flag.Bool("text", false, "print extracted text instead of rendering")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: renderdeck [flags] deck.pptx")
		flag.PrintDefaults()
		os.Exit(2)
	}
	src := flag.Arg(0)

	pres, err := slideview.Open(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		os.Exit(1)
	}

	if *text {
		for _, slide := range pres.Slides() {
			fmt.Printf("--- slide %d", slide.Index)
			if slide.Title != "" {
				fmt.Printf(": %s", slide.Title)
			}
			fmt.Println()
			for _, line := range slide.TextContent {
				fmt.Println(line)
			}
		}
		return
	}

	if err := os.MkdirAll(*out, 0750); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}

	opts := slideview.RenderOptions{
		Scale:   *scale,
		Quality: parseQuality(*quality),
	}

	ext := "png"
	if strings.EqualFold(*format, "jpeg") || strings.EqualFold(*format, "jpg") {
		ext = "jpg"
	}

	for _, slide := range pres.Slides() {
		name := filepath.Join(*out, fmt.Sprintf("slide%03d.%s", slide.Index, ext))
		if err := renderTo(name, pres, slide, ext, opts); err != nil {
			fmt.Fprintf(os.Stderr, "render slide %d: %v\n", slide.Index, err)
			os.Exit(1)
		}
	}
	fmt.Printf("rendered %d slides to %s\n", pres.SlideCount(), *out)
}

func renderTo(name string, pres *slideview.Presentation, slide *slideview.Slide, ext string, opts slideview.RenderOptions) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if ext == "jpg" {
		return slideview.RenderSlideJPEG(f, pres, slide, 90, opts)
	}
	return slideview.RenderSlidePNG(f, pres, slide, opts)
}

func parseQuality(s string) slideview.Quality {
	switch strings.ToLower(s) {
	case "low":
		return slideview.QualityLow
	case "high":
		return slideview.QualityHigh
	default:
		return slideview.QualityBalanced
	}
}
