package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// TranslationPanel shows the OCR result (editable, so the user can fix
// misreads) and the translation below it.
type TranslationPanel struct {
	widget.BaseWidget

	ocrEntry   *widget.Entry
	transEntry *widget.Entry
	retransBtn *widget.Button

	content fyne.CanvasObject
}

// NewTranslationPanel creates the panel. onRetranslate receives the
// (possibly edited) OCR text when the user asks for another pass.
func NewTranslationPanel(onRetranslate func(text string)) *TranslationPanel {
	tp := &TranslationPanel{}

	tp.ocrEntry = widget.NewMultiLineEntry()
	tp.ocrEntry.SetPlaceHolder("OCR results will appear here...")
	tp.ocrEntry.Wrapping = fyne.TextWrapWord

	tp.transEntry = widget.NewMultiLineEntry()
	tp.transEntry.SetPlaceHolder("Translation will appear here...")
	tp.transEntry.Wrapping = fyne.TextWrapWord

	tp.retransBtn = widget.NewButton("Retranslate", func() {
		if onRetranslate != nil {
			onRetranslate(tp.ocrEntry.Text)
		}
	})
	tp.retransBtn.Disable()

	top := container.NewBorder(
		widget.NewLabel("OCR Text (Editable):"), tp.retransBtn, nil, nil,
		tp.ocrEntry,
	)
	bottom := container.NewBorder(
		widget.NewLabel("Translation:"), nil, nil, nil,
		tp.transEntry,
	)
	tp.content = container.NewVSplit(top, bottom)

	tp.ExtendBaseWidget(tp)
	return tp
}

// SetOCRText replaces the OCR pane content.
func (tp *TranslationPanel) SetOCRText(text string) {
	tp.ocrEntry.SetText(text)
	if text == "" {
		tp.retransBtn.Disable()
	} else {
		tp.retransBtn.Enable()
	}
}

// OCRText returns the OCR pane content, including user edits.
func (tp *TranslationPanel) OCRText() string {
	return tp.ocrEntry.Text
}

// SetTranslation replaces the translation pane content.
func (tp *TranslationPanel) SetTranslation(text string) {
	tp.transEntry.SetText(text)
}

// SetBusy disables retranslation while a job runs.
func (tp *TranslationPanel) SetBusy(busy bool) {
	if busy {
		tp.retransBtn.Disable()
	} else if tp.ocrEntry.Text != "" {
		tp.retransBtn.Enable()
	}
}

// CreateRenderer implements fyne.Widget.
func (tp *TranslationPanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(tp.content)
}
