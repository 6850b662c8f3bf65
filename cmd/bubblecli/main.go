// Command bubblecli runs the OCR+translation pipeline on a single image
// region without the GUI. Useful for testing credentials and prompt
// changes from the terminal.
//
// Usage: bubblecli -image page.png [-rect x,y,w,h] [-vision] [-context "..."]
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/gankudadiz/BubbleTrans/internal/config"
	"github.com/gankudadiz/BubbleTrans/internal/ocr"
	"github.com/gankudadiz/BubbleTrans/internal/page"
	"github.com/gankudadiz/BubbleTrans/internal/translate"
	"github.com/gankudadiz/BubbleTrans/internal/version"
	"github.com/gankudadiz/BubbleTrans/pkg/geometry"
)

var (
	flagImage   = flag.String("image", "", "Comic page image (required)")
	flagRect    = flag.String("rect", "", "Balloon region as x,y,w,h in image pixels (default: whole image)")
	flagVision  = flag.Bool("vision", false, "Skip OCR and send the image to the model")
	flagOCROnly = flag.Bool("ocr-only", false, "Run OCR and print the text without translating")
	flagContext = flag.String("context", "", "Comic context passed to the translator (default: from config)")
	flagModel   = flag.String("model", "", "Override the configured model")
	flagTimeout = flag.Duration("timeout", 2*time.Minute, "Translation timeout")
	flagVerbose = flag.Bool("v", false, "Verbose logging")
	flagVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Println(version.String())
		return
	}

	level := slog.LevelWarn
	if *flagVerbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *flagImage == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(log); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	p, err := page.Load(*flagImage)
	if err != nil {
		return err
	}
	log.Debug("page loaded", "path", p.Path, "size", p.Size())

	crop, err := cropRegion(p.Image)
	if err != nil {
		return err
	}

	var text string
	if !*flagVision {
		engine, err := ocr.NewEngine()
		if err != nil {
			return fmt.Errorf("ocr init: %w", err)
		}
		defer engine.Close()

		text, err = engine.Recognize(crop)
		if err != nil {
			return err
		}
		if text == "" {
			return fmt.Errorf("no text detected in region")
		}
		fmt.Println("--- OCR ---")
		fmt.Println(text)
	}

	if *flagOCROnly {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		log.Warn("config load failed, using defaults", "error", err)
	}
	if !cfg.Configured() {
		return fmt.Errorf("no API key configured; set one in %s", config.DefaultPath())
	}

	model := cfg.Model
	if *flagModel != "" {
		model = *flagModel
	}
	comicContext := cfg.Context
	if *flagContext != "" {
		comicContext = *flagContext
	}

	client := translate.New()
	client.Configure(cfg.APIKey, cfg.BaseURL, model)

	ctx, cancel := context.WithTimeout(context.Background(), *flagTimeout)
	defer cancel()

	raw, err := client.Translate(ctx, translate.Request{
		Text:      text,
		Context:   comicContext,
		Image:     crop,
		UseVision: *flagVision,
	})
	if err != nil {
		return err
	}

	fmt.Println("--- Translation ---")
	fmt.Println(translate.FormatTranslation(raw))
	return nil
}

// cropRegion cuts the requested region out of the page, or returns the
// whole page when no -rect was given.
func cropRegion(img image.Image) (image.Image, error) {
	if *flagRect == "" {
		return img, nil
	}

	parts := strings.Split(*flagRect, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid -rect %q, want x,y,w,h", *flagRect)
	}
	vals := make([]int, 4)
	for i, s := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid -rect %q: %w", *flagRect, err)
		}
		vals[i] = v
	}

	region := geometry.RectInt{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
	b := img.Bounds()
	native := geometry.RectInt{X: b.Min.X, Y: b.Min.Y, Width: b.Dx(), Height: b.Dy()}
	clipped := region.Intersect(native)
	if clipped.Empty() {
		return nil, fmt.Errorf("-rect %q lies outside the image", *flagRect)
	}

	return imaging.Crop(img, image.Rect(
		clipped.X, clipped.Y,
		clipped.X+clipped.Width, clipped.Y+clipped.Height,
	)), nil
}
