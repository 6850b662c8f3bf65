package ocr

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func solidImage(w, h int, c color.RGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapse spaces", "HELLO   WORLD", "HELLO WORLD"},
		{"keep line breaks", "I CAN'T\nBELIEVE IT!", "I CAN'T\nBELIEVE IT!"},
		{"drop empty lines", "FIRST\n\n  \nSECOND", "FIRST\nSECOND"},
		{"trim edges", "  WOW  \n", "WOW"},
		{"tabs", "ONE\tTWO", "ONE TWO"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLuminanceStatsFlat(t *testing.T) {
	img := solidImage(50, 50, color.RGBA{255, 255, 255, 255})
	mean, stddev := LuminanceStats(img)
	if mean < 0.99 {
		t.Errorf("white image mean = %f, want ~1.0", mean)
	}
	if stddev > 1e-6 {
		t.Errorf("flat image stddev = %f, want 0", stddev)
	}
}

func TestLuminanceStatsContrast(t *testing.T) {
	// Left half black, right half white
	img := image.NewNRGBA(image.Rect(0, 0, 100, 50))
	draw.Draw(img, image.Rect(0, 0, 50, 50), image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(50, 0, 100, 50), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)

	mean, stddev := LuminanceStats(img)
	if mean < 0.4 || mean > 0.6 {
		t.Errorf("half/half mean = %f, want ~0.5", mean)
	}
	if stddev < 0.4 {
		t.Errorf("half/half stddev = %f, want ~0.5", stddev)
	}
}

func TestInvertForOCR(t *testing.T) {
	if InvertForOCR(0.8) {
		t.Error("light crop should not be inverted")
	}
	if !InvertForOCR(0.2) {
		t.Error("dark crop should be inverted")
	}
}

func TestBackgroundColorSamplesBorder(t *testing.T) {
	// White border, black center: only the border should count.
	img := solidImage(20, 20, color.RGBA{255, 255, 255, 255})
	draw.Draw(img, image.Rect(5, 5, 15, 15), image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)

	bg := BackgroundColor(img)
	if bg.R != 255 || bg.G != 255 || bg.B != 255 {
		t.Errorf("BackgroundColor = %v, want white", bg)
	}
}

func TestPadWithBackground(t *testing.T) {
	img := solidImage(10, 10, color.RGBA{200, 200, 200, 255})
	padded := PadWithBackground(img, 5)

	b := padded.Bounds()
	if b.Dx() != 20 || b.Dy() != 20 {
		t.Fatalf("padded size = %dx%d, want 20x20", b.Dx(), b.Dy())
	}
	// Corner pixel carries the sampled background color.
	corner := padded.NRGBAAt(0, 0)
	if corner.R != 200 || corner.G != 200 || corner.B != 200 {
		t.Errorf("corner = %v, want background 200,200,200", corner)
	}
	// Original content sits inside the border.
	center := padded.NRGBAAt(10, 10)
	if center.R != 200 {
		t.Errorf("center = %v, want original pixel", center)
	}
}

func TestPadSizeMinimum(t *testing.T) {
	small := solidImage(8, 8, color.RGBA{A: 255})
	if got := padSize(small); got != 4 {
		t.Errorf("padSize(8x8) = %d, want 4", got)
	}
	large := solidImage(400, 200, color.RGBA{A: 255})
	if got := padSize(large); got != 20 {
		t.Errorf("padSize(400x200) = %d, want 20", got)
	}
}
