//go:build ignore

// gen_fixtures creates test images for the build smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(filepath.Join(dir, "cards"), 0o755); err != nil {
		panic(err)
	}

	// Small banner stays under the 300 px band.
	save(filepath.Join(dir, "banner.jpg"), gradient(280, 160), imaging.JPEGQuality(85))

	// Hero exercises the downscale bands on both axes.
	save(filepath.Join(dir, "hero.png"), gradient(1600, 900))

	// Cards in several container formats.
	for i, ext := range []string{"png", "bmp", "tif"} {
		name := fmt.Sprintf("card-%d.%s", i+1, ext)
		save(filepath.Join(dir, "cards", name), solidWithBorder(200, 150, uint8((i+1)*60)))
	}

	// Alpha edge case.
	save(filepath.Join(dir, "logo.png"), alphaGradient(100, 100))

	// Hidden directories are skipped by the scanner.
	if err := os.MkdirAll(filepath.Join(dir, ".cache"), 0o755); err == nil {
		save(filepath.Join(dir, ".cache", "ignored.png"), gradient(8, 8))
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 6 fixtures in %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := imaging.New(w, h, color.NRGBA{})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func solidWithBorder(w, h int, base uint8) *image.NRGBA {
	fill := color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255}
	inner := imaging.New(w-8, h-8, fill)
	return imaging.Paste(imaging.New(w, h, color.White), inner, image.Pt(4, 4))
}

func alphaGradient(w, h int) *image.NRGBA {
	img := imaging.New(w, h, color.NRGBA{})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 220, G: 60, B: 30, A: uint8(x * 255 / w)})
		}
	}
	return img
}

func save(path string, img image.Image, opts ...imaging.EncodeOption) {
	if err := imaging.Save(img, path, opts...); err != nil {
		panic(err)
	}
}
