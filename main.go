// Package main provides the entry point for the BubbleTrans application.
package main

import (
	"image"
	"log/slog"
	"os"
	"sync"
	"time"

	fyneapp "fyne.io/fyne/v2/app"

	"github.com/gankudadiz/BubbleTrans/internal/app"
	"github.com/gankudadiz/BubbleTrans/internal/config"
	"github.com/gankudadiz/BubbleTrans/internal/ocr"
	"github.com/gankudadiz/BubbleTrans/internal/translate"
	"github.com/gankudadiz/BubbleTrans/internal/version"
	"github.com/gankudadiz/BubbleTrans/ui/mainwindow"
)

const folderRescanInterval = 5 * time.Second

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	log.Info("starting", "app", "BubbleTrans", "version", version.Version)

	cfg, err := config.Load()
	if err != nil {
		// Malformed config falls back to defaults; keep going.
		log.Warn("config load failed, using defaults", "error", err)
	}

	state := app.NewState(cfg)

	llm := translate.New()
	if cfg.Configured() {
		llm.Configure(cfg.APIKey, cfg.BaseURL, cfg.Model)
	}

	// Tesseract takes a moment to load its language model, so warm it up
	// off the UI thread when OCR will actually be used.
	engine := newLazyEngine(log)
	if !cfg.UseVision {
		go engine.warmup()
	}

	translator := app.NewTranslator(state, engine, llm, log)

	fyneApp := fyneapp.NewWithID("com.gankudadiz.bubbletrans")
	fyneApp.Settings().SetTheme(&app.BubbleTransTheme{})

	win := mainwindow.New(fyneApp, state, translator, llm)

	watcher := app.NewFolderWatcher(state, folderRescanInterval, log)
	watcher.Start()
	defer watcher.Stop()

	if len(os.Args) > 1 {
		win.OpenFolder(os.Args[1])
	} else {
		win.RestoreSession()
	}

	win.ShowAndRun()

	if err := engine.Close(); err != nil {
		log.Warn("ocr shutdown", "error", err)
	}
	log.Info("exiting")
}

// lazyEngine defers Tesseract initialization until first use; startup
// warms it up in the background so the first selection doesn't stall.
type lazyEngine struct {
	log  *slog.Logger
	once sync.Once
	eng  *ocr.Engine
	err  error
}

func newLazyEngine(log *slog.Logger) *lazyEngine {
	return &lazyEngine{log: log}
}

func (l *lazyEngine) warmup() {
	start := time.Now()
	l.init()
	if l.err != nil {
		l.log.Error("ocr warmup failed", "error", l.err)
		return
	}
	l.log.Info("ocr ready", "elapsed", time.Since(start))
}

func (l *lazyEngine) init() {
	l.once.Do(func() {
		l.eng, l.err = ocr.NewEngine()
	})
}

// Recognize implements the translator's Recognizer.
func (l *lazyEngine) Recognize(img image.Image) (string, error) {
	l.init()
	if l.err != nil {
		return "", l.err
	}
	return l.eng.Recognize(img)
}

func (l *lazyEngine) Close() error {
	if l.eng != nil {
		return l.eng.Close()
	}
	return nil
}
