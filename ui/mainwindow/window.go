// Package mainwindow provides the main application window.
package mainwindow

import (
	"errors"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/gankudadiz/BubbleTrans/internal/app"
	"github.com/gankudadiz/BubbleTrans/internal/config"
	"github.com/gankudadiz/BubbleTrans/internal/page"
	"github.com/gankudadiz/BubbleTrans/internal/translate"
	"github.com/gankudadiz/BubbleTrans/internal/version"
	"github.com/gankudadiz/BubbleTrans/internal/viewport"
	"github.com/gankudadiz/BubbleTrans/ui/canvas"
	"github.com/gankudadiz/BubbleTrans/ui/dialogs"
	"github.com/gankudadiz/BubbleTrans/ui/panels"
)

const (
	prefKeyLastFolder = "lastFolder"
	prefKeyLastPage   = "lastPage"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app        fyne.App
	state      *app.State
	translator *app.Translator
	llm        *translate.Client

	canvas     *canvas.PageCanvas
	filesPanel *panels.FilesPanel
	transPanel *panels.TranslationPanel
	statusBar  *widget.Label
	zoomLabel  *widget.Label
}

// New creates the main window over prepared application services.
func New(fyneApp fyne.App, state *app.State, translator *app.Translator, llm *translate.Client) *MainWindow {
	win := fyneApp.NewWindow("BubbleTrans")

	mw := &MainWindow{
		Window:     win,
		app:        fyneApp,
		state:      state,
		translator: translator,
		llm:        llm,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewPageCanvas()
	mw.canvas.OnCrop(mw.onCrop)
	mw.canvas.OnError(func(err error) {
		mw.updateStatus("Selection failed: " + err.Error())
	})

	mw.zoomLabel = widget.NewLabel("100%")
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.zoomLabel.SetText(formatZoom(zoom))
	})

	mw.filesPanel = panels.NewFilesPanel(func(index int) {
		if err := mw.state.LoadPage(index); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	})
	mw.transPanel = panels.NewTranslationPanel(mw.onRetranslate)

	mw.statusBar = widget.NewLabel("Ready")

	canvasArea := container.NewBorder(
		mw.createToolbar(), // top
		nil, nil, nil,
		mw.canvas,
	)

	// files | canvas+translation
	right := container.NewHSplit(canvasArea, mw.transPanel)
	right.SetOffset(0.72)
	split := container.NewHSplit(mw.filesPanel, right)
	split.SetOffset(0.16)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		split,
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1280, 840))
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.canvas.ZoomOut)
	zoomInBtn := widget.NewButton("+", mw.canvas.ZoomIn)
	fitBtn := widget.NewButton("Fit", mw.canvas.FitToWindow)
	actualBtn := widget.NewButton("1:1", mw.canvas.ActualSize)

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
		mw.zoomLabel,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Folder...", mw.onOpenFolder),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Next Page", mw.onNextPage),
		fyne.NewMenuItem("Previous Page", mw.onPrevPage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Fit to Window", mw.canvas.FitToWindow),
		fyne.NewMenuItem("Actual Size", mw.canvas.ActualSize),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Settings...", mw.onSettings),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, toolsMenu, helpMenu))
}

// setupEventHandlers registers for application events. Events may arrive
// from worker goroutines, so every UI touch goes through fyne.Do.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventFolderOpened, func(data interface{}) {
		pages, ok := data.([]string)
		if !ok {
			return
		}
		fyne.Do(func() {
			mw.filesPanel.SetPages(pages)
			if idx := mw.state.PageIndex(); idx >= 0 {
				mw.filesPanel.Select(idx)
			}
			mw.updateStatus("Opened folder with " + plural(len(pages), "page"))
		})
	})

	mw.state.On(app.EventPageLoaded, func(data interface{}) {
		p, ok := data.(*page.Page)
		if !ok {
			return
		}
		fyne.Do(func() {
			mw.canvas.SetPage(p.Image)
			mw.SetTitle("BubbleTrans - " + filepath.Base(p.Path))
			mw.filesPanel.Select(mw.state.PageIndex())
			mw.updateStatus("Loaded " + filepath.Base(p.Path))
		})
		mw.app.Preferences().SetString(prefKeyLastFolder, mw.state.FolderPath())
		mw.app.Preferences().SetString(prefKeyLastPage, p.Path)
	})

	mw.state.On(app.EventTranslationStarted, func(interface{}) {
		fyne.Do(func() {
			mw.transPanel.SetBusy(true)
			mw.updateStatus("Working...")
		})
	})

	mw.state.On(app.EventTranslationStatus, func(data interface{}) {
		if text, ok := data.(string); ok {
			fyne.Do(func() { mw.updateStatus(text) })
		}
	})

	mw.state.On(app.EventTranslationComplete, func(data interface{}) {
		res, ok := data.(app.Result)
		if !ok {
			return
		}
		fyne.Do(func() {
			if res.OCRText != "" {
				mw.transPanel.SetOCRText(res.OCRText)
			}
			mw.transPanel.SetTranslation(res.Translation)
			mw.transPanel.SetBusy(false)
			mw.updateStatus("Translation complete")
		})
	})

	mw.state.On(app.EventTranslationError, func(data interface{}) {
		err, ok := data.(error)
		if !ok {
			return
		}
		fyne.Do(func() {
			mw.transPanel.SetBusy(false)
			if errors.Is(err, app.ErrNoText) {
				msg := "No text detected. Select a clearer or larger region, or enable Vision in Settings."
				mw.transPanel.SetOCRText(msg)
				mw.updateStatus(msg)
				return
			}
			mw.updateStatus("Error: " + err.Error())
			dialog.ShowError(err, mw.Window)
		})
	})

	mw.state.On(app.EventConfigChanged, func(data interface{}) {
		cfg, ok := data.(config.Config)
		if !ok {
			return
		}
		mw.llm.Configure(cfg.APIKey, cfg.BaseURL, cfg.Model)
	})
}

// RestoreSession reopens the folder and page from the previous run.
func (mw *MainWindow) RestoreSession() {
	folder := mw.app.Preferences().String(prefKeyLastFolder)
	if folder == "" {
		return
	}
	if err := mw.state.OpenFolder(folder); err != nil {
		return
	}

	lastPage := mw.app.Preferences().String(prefKeyLastPage)
	for i, p := range mw.state.Pages() {
		if p == lastPage {
			_ = mw.state.LoadPage(i)
			return
		}
	}
}

// OpenFolder opens the given folder, surfacing errors in a dialog.
func (mw *MainWindow) OpenFolder(path string) {
	if err := mw.state.OpenFolder(path); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// onCrop confirms the selection and hands it to the translation pipeline.
func (mw *MainWindow) onCrop(crop viewport.Crop) {
	mw.state.Emit(app.EventSelectionExported, crop)
	dialogs.ShowCropConfirm(crop, mw.Window, func() {
		if err := mw.translator.Submit(crop.Image); err != nil {
			if errors.Is(err, app.ErrBusy) {
				mw.updateStatus("A translation is already running")
				return
			}
			dialog.ShowError(err, mw.Window)
		}
	})
}

// onRetranslate re-runs translation over user-edited OCR text.
func (mw *MainWindow) onRetranslate(text string) {
	if err := mw.translator.SubmitText(text); err != nil {
		if errors.Is(err, app.ErrBusy) {
			mw.updateStatus("A translation is already running")
			return
		}
		dialog.ShowError(err, mw.Window)
	}
}

// Menu action handlers

func (mw *MainWindow) onOpenFolder() {
	fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		mw.OpenFolder(uri.Path())
	}, mw.Window)
	if loc := mw.getLastFolder(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onNextPage() {
	if err := mw.state.NextPage(); err != nil {
		mw.updateStatus(err.Error())
	}
}

func (mw *MainWindow) onPrevPage() {
	if err := mw.state.PrevPage(); err != nil {
		mw.updateStatus(err.Error())
	}
}

func (mw *MainWindow) onSettings() {
	dlg := dialogs.NewSettingsDialog(mw.state.Config(), mw.llm, mw.Window, func(edited config.Config) {
		err := mw.state.UpdateConfig(func(c *config.Config) {
			c.APIKey = edited.APIKey
			c.BaseURL = edited.BaseURL
			c.Model = edited.Model
			c.UseVision = edited.UseVision
			c.Context = edited.Context
		})
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Settings saved")
	})
	dlg.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About", version.String(), mw.Window)
}

// getLastFolder returns the last opened folder as a ListableURI, or nil.
func (mw *MainWindow) getLastFolder() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastFolder)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

func formatZoom(zoom float64) string {
	return fmt.Sprintf("%d%%", int(zoom*100+0.5))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
