// Package pngtest generates small PNG fixtures for tests and benchmarks so the
// repository carries no binary test data.
package pngtest

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// Gradient returns a w*h image with varying color and alpha, which image/png
// stores as 8-bit truecolor with alpha.
func Gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / max(w, 1)),
				G: uint8(y * 255 / max(h, 1)),
				B: uint8((x + y) % 256),
				A: uint8(128 + (x*y)%128),
			})
		}
	}
	return img
}

// Opaque returns a w*h fully opaque image, stored as 8-bit truecolor.
func Opaque(w, h int) *image.NRGBA {
	img := Gradient(w, h)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

// Paletted returns a w*h image with a four-entry palette.
func Paletted(w, h int) *image.Paletted {
	pal := color.Palette{
		color.NRGBA{0, 0, 0, 255},
		color.NRGBA{255, 0, 0, 255},
		color.NRGBA{0, 255, 0, 255},
		color.NRGBA{0, 0, 255, 128},
	}
	img := image.NewPaletted(image.Rect(0, 0, w, h), pal)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetColorIndex(x, y, uint8((x+y)%len(pal)))
		}
	}
	return img
}

// Gray returns a w*h 8-bit grayscale image.
func Gray(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(i % 256)
	}
	return img
}

// Encode returns the PNG encoding of img.
func Encode(tb testing.TB, img image.Image) []byte {
	tb.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		tb.Fatalf("Could not encode the fixture: %v", err)
	}
	return buf.Bytes()
}

// WriteFile writes the PNG encoding of img into a temporary directory and
// returns its path.
func WriteFile(tb testing.TB, name string, img image.Image) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, Encode(tb, img), 0o644); err != nil {
		tb.Fatalf("Could not write the fixture: %v", err)
	}
	return path
}
