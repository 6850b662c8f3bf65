package app

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/gankudadiz/BubbleTrans/internal/config"
	"github.com/gankudadiz/BubbleTrans/internal/translate"
)

// ErrBusy is returned when a translation job is already running.
var ErrBusy = errors.New("a translation is already in progress")

// ErrNoText signals that OCR found nothing in the selection. The UI
// suggests reselecting or enabling vision mode.
var ErrNoText = errors.New("no text detected in selection")

// jobTimeout bounds one OCR+translation round trip.
const jobTimeout = 120 * time.Second

// Recognizer extracts text from a balloon crop.
type Recognizer interface {
	Recognize(img image.Image) (string, error)
}

// LLM turns balloon text (or the crop itself, in vision mode) into a
// translation.
type LLM interface {
	Translate(ctx context.Context, req translate.Request) (string, error)
}

// Result is delivered with EventTranslationComplete.
type Result struct {
	OCRText     string
	Translation string
}

// Translator runs OCR and translation off the UI thread, one job at a
// time. Progress and results surface as State events.
type Translator struct {
	state *State
	ocr   Recognizer
	llm   LLM
	log   *slog.Logger

	mu   sync.Mutex
	busy bool
}

// NewTranslator wires a translator to the application state.
func NewTranslator(state *State, ocr Recognizer, llm LLM, log *slog.Logger) *Translator {
	return &Translator{state: state, ocr: ocr, llm: llm, log: log}
}

// Busy reports whether a job is running.
func (t *Translator) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.busy
}

// Submit starts a background translation of the given crop. It returns
// ErrBusy if a job is already running; completion and errors arrive as
// events. The crop must not be modified after submission.
func (t *Translator) Submit(crop image.Image) error {
	if crop == nil {
		return errors.New("nil crop")
	}

	t.mu.Lock()
	if t.busy {
		t.mu.Unlock()
		return ErrBusy
	}
	t.busy = true
	t.mu.Unlock()

	t.state.Emit(EventTranslationStarted, nil)
	go t.run(crop)
	return nil
}

// SubmitText starts a background translation of already-recognized (or
// user-corrected) text, skipping OCR and vision entirely.
func (t *Translator) SubmitText(text string) error {
	if text == "" {
		return errors.New("empty text")
	}

	t.mu.Lock()
	if t.busy {
		t.mu.Unlock()
		return ErrBusy
	}
	t.busy = true
	t.mu.Unlock()

	t.state.Emit(EventTranslationStarted, nil)
	go t.runText(text)
	return nil
}

func (t *Translator) runText(text string) {
	defer func() {
		t.mu.Lock()
		t.busy = false
		t.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	cfg := t.state.Config()

	t.state.Emit(EventTranslationStatus, "Translating...")
	raw, err := t.llm.Translate(ctx, translate.Request{Text: text, Context: cfg.Context})
	if err != nil {
		t.log.Error("translation failed", "error", err)
		t.state.Emit(EventTranslationError, err)
		return
	}

	if err := t.state.UpdateConfig(func(c *config.Config) { c.RememberModel(cfg.Model) }); err != nil {
		t.log.Warn("failed to persist model history", "error", err)
	}

	t.state.Emit(EventTranslationComplete, Result{
		OCRText:     text,
		Translation: translate.FormatTranslation(raw),
	})
}

func (t *Translator) run(crop image.Image) {
	defer func() {
		t.mu.Lock()
		t.busy = false
		t.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	cfg := t.state.Config()

	var ocrText string
	if !cfg.UseVision {
		t.state.Emit(EventTranslationStatus, "Recognizing text...")
		text, err := t.ocr.Recognize(crop)
		if err != nil {
			t.log.Error("ocr failed", "error", err)
			t.state.Emit(EventTranslationError, err)
			return
		}
		if text == "" {
			t.state.Emit(EventTranslationError, ErrNoText)
			return
		}
		ocrText = text
		t.log.Debug("ocr complete", "chars", len(text))
	}

	t.state.Emit(EventTranslationStatus, "Translating...")
	start := time.Now()
	raw, err := t.llm.Translate(ctx, translate.Request{
		Text:      ocrText,
		Context:   cfg.Context,
		Image:     crop,
		UseVision: cfg.UseVision,
	})
	if err != nil {
		t.log.Error("translation failed", "error", err)
		t.state.Emit(EventTranslationError, err)
		return
	}
	t.log.Info("translation complete", "model", cfg.Model, "elapsed", time.Since(start))

	// The model answered, so remember it in the model history.
	if err := t.state.UpdateConfig(func(c *config.Config) { c.RememberModel(cfg.Model) }); err != nil {
		t.log.Warn("failed to persist model history", "error", err)
	}

	t.state.Emit(EventTranslationComplete, Result{
		OCRText:     ocrText,
		Translation: translate.FormatTranslation(raw),
	})
}
