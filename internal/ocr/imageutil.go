package ocr

import (
	"image"
	"image/color"
	"image/draw"
)

const (
	// minOCRDimension is the smallest crop dimension fed to Tesseract;
	// smaller crops are upscaled first.
	minOCRDimension = 300

	// minContrast is the luminance standard deviation below which a crop
	// is treated as empty background.
	minContrast = 0.02
)

// padSize picks a border width proportional to the crop, so letters sitting
// on the selection edge keep a clean outline after thresholding.
func padSize(img image.Image) int {
	b := img.Bounds()
	pad := min(b.Dx(), b.Dy()) / 10
	if pad < 4 {
		pad = 4
	}
	return pad
}

// BackgroundColor samples the border pixels of an image and returns their
// average color, a cheap estimate of the balloon fill around the text.
func BackgroundColor(img image.Image) color.RGBA {
	bounds := img.Bounds()
	var r, g, b, count uint64

	sample := func(x, y int) {
		cr, cg, cb, _ := img.At(x, y).RGBA()
		r += uint64(cr >> 8)
		g += uint64(cg >> 8)
		b += uint64(cb >> 8)
		count++
	}

	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		sample(x, bounds.Min.Y)
		sample(x, bounds.Max.Y-1)
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		sample(bounds.Min.X, y)
		sample(bounds.Max.X-1, y)
	}

	if count == 0 {
		return color.RGBA{A: 255}
	}
	return color.RGBA{
		R: uint8(r / count),
		G: uint8(g / count),
		B: uint8(b / count),
		A: 255,
	}
}

// PadWithBackground returns a copy of img surrounded by a pad-pixel border
// filled with the sampled background color.
func PadWithBackground(img image.Image, pad int) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx()+2*pad, bounds.Dy()+2*pad))

	bg := BackgroundColor(img)
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(pad, pad, pad+bounds.Dx(), pad+bounds.Dy()), img, bounds.Min, draw.Src)

	return out
}
