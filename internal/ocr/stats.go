package ocr

import (
	"image"
	"math"

	"gonum.org/v1/gonum/stat"
)

// maxLuminanceSamples bounds the work done per crop; large crops are
// subsampled on a regular grid.
const maxLuminanceSamples = 10000

// LuminanceStats returns the mean and standard deviation of the crop's
// luminance, both in [0,1]. Rec. 601 weights, same as the grayscale
// conversion used downstream.
func LuminanceStats(img image.Image) (mean, stddev float64) {
	samples := luminanceSamples(img)
	if len(samples) == 0 {
		return 0, 0
	}
	mean = stat.Mean(samples, nil)
	variance := stat.Variance(samples, nil)
	if variance < 0 || math.IsNaN(variance) {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}

// InvertForOCR reports whether a binarized crop should be inverted before
// recognition. A dark crop means light lettering on a dark fill, which
// Tesseract reads poorly.
func InvertForOCR(meanLuminance float64) bool {
	return meanLuminance < 0.5
}

func luminanceSamples(img image.Image) []float64 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}

	step := 1
	for (w/step)*(h/step) > maxLuminanceSamples {
		step++
	}

	samples := make([]float64, 0, (w/step+1)*(h/step+1))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, _ := img.At(x, y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			samples = append(samples, lum/255.0)
		}
	}
	return samples
}
