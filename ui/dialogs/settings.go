// Package dialogs provides application dialogs.
package dialogs

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/gankudadiz/BubbleTrans/internal/config"
)

// ConnectionTester checks API credentials; the returned report is shown
// to the user whether or not the check passed.
type ConnectionTester interface {
	TestConnection(ctx context.Context, apiKey, baseURL, model string) (string, error)
}

// SettingsDialog edits API credentials and translation options.
type SettingsDialog struct {
	window fyne.Window
	cfg    config.Config
	tester ConnectionTester

	apiKeyEntry  *widget.Entry
	baseURLEntry *widget.Entry
	modelSelect  *widget.SelectEntry
	visionCheck  *widget.Check
	contextEntry *widget.Entry
	testBtn      *widget.Button

	onSave func(config.Config)
}

// NewSettingsDialog creates a settings dialog seeded from cfg. onSave
// receives the edited values when the user confirms.
func NewSettingsDialog(cfg config.Config, tester ConnectionTester, window fyne.Window, onSave func(config.Config)) *SettingsDialog {
	return &SettingsDialog{
		window: window,
		cfg:    cfg,
		tester: tester,
		onSave: onSave,
	}
}

// Show displays the dialog.
func (d *SettingsDialog) Show() {
	content := d.createContent()

	dlg := dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		content,
		func(save bool) {
			if save {
				d.applyChanges()
				if d.onSave != nil {
					d.onSave(d.cfg)
				}
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(520, 420))
	dlg.Show()
}

func (d *SettingsDialog) createContent() fyne.CanvasObject {
	d.apiKeyEntry = widget.NewPasswordEntry()
	d.apiKeyEntry.SetText(d.cfg.APIKey)

	d.baseURLEntry = widget.NewEntry()
	d.baseURLEntry.SetText(d.cfg.BaseURL)
	d.baseURLEntry.SetPlaceHolder(config.DefaultBaseURL)

	// Editable combo: pick a previously working model or type a new one.
	options := d.cfg.SuccessfulModels
	if len(options) == 0 {
		options = []string{config.DefaultModel}
	}
	d.modelSelect = widget.NewSelectEntry(options)
	d.modelSelect.SetText(d.cfg.Model)

	d.visionCheck = widget.NewCheck("Enable Vision (Send Image to LLM)", nil)
	d.visionCheck.SetChecked(d.cfg.UseVision)

	d.contextEntry = widget.NewMultiLineEntry()
	d.contextEntry.SetText(d.cfg.Context)
	d.contextEntry.SetPlaceHolder("Series, characters, setting... helps the translator pick names and tone")
	d.contextEntry.Wrapping = fyne.TextWrapWord

	apiForm := widget.NewForm(
		widget.NewFormItem("API Key", d.apiKeyEntry),
		widget.NewFormItem("Base URL", d.baseURLEntry),
		widget.NewFormItem("Model Name", d.modelSelect),
		widget.NewFormItem("", d.visionCheck),
	)

	d.testBtn = widget.NewButton("Test Connection", d.testConnection)

	return container.NewVBox(
		widget.NewCard("API", "", apiForm),
		widget.NewCard("Comic Context", "", d.contextEntry),
		d.testBtn,
	)
}

func (d *SettingsDialog) applyChanges() {
	d.cfg.APIKey = d.apiKeyEntry.Text
	d.cfg.BaseURL = d.baseURLEntry.Text
	d.cfg.Model = d.modelSelect.Text
	d.cfg.UseVision = d.visionCheck.Checked
	d.cfg.Context = d.contextEntry.Text
}

// testConnection runs the credential check in the background and shows
// the full debug report either way.
func (d *SettingsDialog) testConnection() {
	apiKey := d.apiKeyEntry.Text
	baseURL := d.baseURLEntry.Text
	model := d.modelSelect.Text

	if apiKey == "" {
		dialog.ShowInformation("Test Connection", "Enter an API key first.", d.window)
		return
	}

	d.testBtn.SetText("Testing...")
	d.testBtn.Disable()

	go func() {
		report, err := d.tester.TestConnection(context.Background(), apiKey, baseURL, model)

		fyne.Do(func() {
			d.testBtn.SetText("Test Connection")
			d.testBtn.Enable()

			title := "Connection OK"
			if err != nil {
				title = "Connection Failed"
			}
			ShowReport(title, report, d.window)
		})
	}()
}

// ShowReport displays a long text report in a scrollable dialog.
func ShowReport(title, report string, window fyne.Window) {
	text := widget.NewMultiLineEntry()
	text.SetText(report)
	text.Wrapping = fyne.TextWrapWord

	dlg := dialog.NewCustom(title, "Close", container.NewScroll(text), window)
	dlg.Resize(fyne.NewSize(520, 360))
	dlg.Show()
}
