// Package ocr provides text recognition for comic speech balloons.
package ocr

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// Engine provides OCR functionality using Tesseract. The underlying client
// is not reentrant, so recognition calls are serialized.
type Engine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewEngine creates a new OCR engine configured for English comic lettering.
// Loading the language model takes a moment; call this off the UI thread.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Balloon text is a single block of prose, and unlike serial numbers
	// it benefits from the dictionary, so the DAWGs stay enabled.
	// PSM 6 = assume a single uniform block of text.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set PSM: %w", err)
	}

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client != nil {
		err := e.client.Close()
		e.client = nil
		return err
	}
	return nil
}

// Recognize performs OCR on a cropped balloon image. A crop with no
// discernible text yields "" with a nil error; the caller decides how to
// surface that.
func (e *Engine) Recognize(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}

	mean, stddev := LuminanceStats(img)
	if stddev < minContrast {
		// Flat region: background only, nothing for Tesseract to find.
		return "", nil
	}

	// Pad so letters touching the selection edge keep their outline.
	padded := PadWithBackground(img, padSize(img))

	src, err := gocv.ImageToMatRGB(padded)
	if err != nil {
		return "", fmt.Errorf("failed to convert image: %w", err)
	}
	defer src.Close()

	processed := preprocessForOCR(src, mean)
	defer processed.Close()

	// Convert to image bytes (PNG format)
	buf, err := gocv.IMEncode(gocv.PNGFileExt, processed)
	if err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client == nil {
		return "", fmt.Errorf("OCR engine is closed")
	}

	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return CleanText(text), nil
}

// preprocessForOCR prepares a balloon crop for Tesseract. meanLuminance is
// the crop's mean luminance in [0,1], computed before padding; it decides
// polarity for reversed (white-on-black) captions.
func preprocessForOCR(src gocv.Mat, meanLuminance float64) gocv.Mat {
	h, w := src.Rows(), src.Cols()

	// Upscale small crops; comic lettering in a balloon selection is often
	// well under the size Tesseract wants (target ~300px minimum dimension).
	var scaled gocv.Mat
	minDim := min(h, w)
	if minDim > 0 && minDim < minOCRDimension {
		scale := float64(minOCRDimension) / float64(minDim)
		scaled = gocv.NewMat()
		gocv.Resize(src, &scaled, image.Point{}, scale, scale, gocv.InterpolationCubic)
	} else {
		scaled = src.Clone()
	}

	// Convert to grayscale
	gray := gocv.NewMat()
	gocv.CvtColor(scaled, &gray, gocv.ColorBGRToGray)
	scaled.Close()

	// CLAHE evens out screentone and scan shading before thresholding.
	clahe := gocv.NewCLAHEWithParams(2.0, image.Point{8, 8})
	defer clahe.Close()

	enhanced := gocv.NewMat()
	clahe.Apply(gray, &enhanced)
	gray.Close()

	// Otsu's threshold for clean text/background separation
	binary := gocv.NewMat()
	gocv.Threshold(enhanced, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	enhanced.Close()

	// Tesseract expects dark text on a light background. A dark crop means
	// a reversed caption box, so flip the binarized result.
	if InvertForOCR(meanLuminance) {
		gocv.BitwiseNot(binary, &binary)
	}

	// Convert to BGR for Tesseract (it handles the format internally)
	result := gocv.NewMat()
	gocv.CvtColor(binary, &result, gocv.ColorGrayToBGR)
	binary.Close()

	return result
}

// CleanText normalizes raw Tesseract output: whitespace collapsed within
// each line, empty lines dropped. Line breaks are kept because balloon
// layout carries meaning for translation.
func CleanText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
