// Package canvas provides the comic page view with pan, zoom, and
// balloon selection.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/gankudadiz/BubbleTrans/internal/viewport"
	"github.com/gankudadiz/BubbleTrans/pkg/geometry"
)

// PageCanvas displays a comic page. The mouse wheel zooms around the
// cursor, a secondary-button drag pans, and a primary-button drag selects
// a balloon region that is cropped at native resolution on release.
type PageCanvas struct {
	widget.BaseWidget

	vp  *viewport.Viewport
	sel *viewport.SelectionController

	page   image.Image
	raster *fynecanvas.Raster

	// Interaction state, set in MouseDown and consumed by drag events.
	panning  bool
	lastCrop *geometry.RectInt

	onCrop       func(viewport.Crop)
	onZoomChange func(zoom float64)
	onError      func(err error)
}

var _ fyne.Draggable = (*PageCanvas)(nil)
var _ fyne.Scrollable = (*PageCanvas)(nil)
var _ desktop.Mouseable = (*PageCanvas)(nil)

// NewPageCanvas creates an empty page canvas.
func NewPageCanvas() *PageCanvas {
	pc := &PageCanvas{
		vp:  viewport.New(),
		sel: viewport.NewSelectionController(),
	}
	pc.raster = fynecanvas.NewRaster(pc.draw)
	pc.raster.ScaleMode = fynecanvas.ImageScalePixels
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetPage replaces the displayed page and resets zoom to fit.
func (pc *PageCanvas) SetPage(img image.Image) {
	pc.page = img
	pc.lastCrop = nil
	pc.sel.Cancel()
	if img != nil {
		b := img.Bounds()
		pc.vp.SetImageSize(geometry.Size{Width: float64(b.Dx()), Height: float64(b.Dy())})
	} else {
		pc.vp.SetImageSize(geometry.Size{})
	}
	pc.notifyZoom()
	pc.Refresh()
}

// Page returns the displayed page, or nil.
func (pc *PageCanvas) Page() image.Image {
	return pc.page
}

// Zoom returns the current zoom factor.
func (pc *PageCanvas) Zoom() float64 {
	return pc.vp.Zoom()
}

// ZoomIn zooms one step around the view center.
func (pc *PageCanvas) ZoomIn() {
	pc.vp.ZoomIn(pc.viewCenter())
	pc.notifyZoom()
	pc.Refresh()
}

// ZoomOut zooms one step out around the view center.
func (pc *PageCanvas) ZoomOut() {
	pc.vp.ZoomOut(pc.viewCenter())
	pc.notifyZoom()
	pc.Refresh()
}

// FitToWindow scales the page to fit the visible area.
func (pc *PageCanvas) FitToWindow() {
	pc.vp.Fit()
	pc.notifyZoom()
	pc.Refresh()
}

// ActualSize resets zoom to 1:1 pixels.
func (pc *PageCanvas) ActualSize() {
	pc.vp.ActualSize()
	pc.notifyZoom()
	pc.Refresh()
}

// OnCrop sets the callback invoked with each finished selection's crop.
func (pc *PageCanvas) OnCrop(callback func(viewport.Crop)) {
	pc.onCrop = callback
}

// OnZoomChange sets a callback for zoom changes.
func (pc *PageCanvas) OnZoomChange(callback func(zoom float64)) {
	pc.onZoomChange = callback
}

// OnError sets a callback for selection and crop failures.
func (pc *PageCanvas) OnError(callback func(err error)) {
	pc.onError = callback
}

func (pc *PageCanvas) notifyZoom() {
	if pc.onZoomChange != nil {
		pc.onZoomChange(pc.vp.Zoom())
	}
}

func (pc *PageCanvas) viewCenter() geometry.Point2D {
	size := pc.Size()
	return geometry.Point2D{X: float64(size.Width) / 2, Y: float64(size.Height) / 2}
}

// MouseDown starts a selection (primary button) or a pan (secondary).
func (pc *PageCanvas) MouseDown(ev *desktop.MouseEvent) {
	pos := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	switch ev.Button {
	case desktop.MouseButtonPrimary:
		if pc.page != nil {
			pc.lastCrop = nil
			pc.sel.Begin(pos)
			pc.Refresh()
		}
	case desktop.MouseButtonSecondary:
		pc.panning = true
	}
}

// MouseUp completes a pan. Selection completion happens in DragEnd so a
// plain click never produces an empty crop.
func (pc *PageCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonSecondary {
		pc.panning = false
	}
	if ev.Button == desktop.MouseButtonPrimary && pc.sel.State() == viewport.SelectionDragging {
		pc.finishSelection()
	}
}

// Dragged extends the rubber band or pans, depending on which button
// went down.
func (pc *PageCanvas) Dragged(ev *fyne.DragEvent) {
	if pc.panning {
		pc.vp.Pan(geometry.Point2D{X: float64(ev.Dragged.DX), Y: float64(ev.Dragged.DY)})
		pc.Refresh()
		return
	}
	if pc.sel.State() == viewport.SelectionDragging {
		pc.sel.Update(geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)})
		pc.Refresh()
	}
}

// DragEnd finalizes the gesture in progress.
func (pc *PageCanvas) DragEnd() {
	if pc.panning {
		pc.panning = false
		return
	}
	if pc.sel.State() == viewport.SelectionDragging {
		pc.finishSelection()
	}
}

func (pc *PageCanvas) finishSelection() {
	rect, err := pc.sel.Finish()
	if err != nil {
		// Zero-area drag, nothing to crop.
		pc.Refresh()
		return
	}

	crop, err := viewport.Export(pc.vp, pc.page, rect)
	if err != nil {
		if pc.onError != nil {
			pc.onError(err)
		}
		pc.Refresh()
		return
	}

	pc.lastCrop = &crop.Region
	if pc.onCrop != nil {
		pc.onCrop(crop)
	}
	pc.Refresh()
}

// Scrolled zooms around the cursor position.
func (pc *PageCanvas) Scrolled(ev *fyne.ScrollEvent) {
	pivot := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	switch {
	case ev.Scrolled.DY > 0:
		pc.vp.ZoomIn(pivot)
	case ev.Scrolled.DY < 0:
		pc.vp.ZoomOut(pivot)
	default:
		return
	}
	pc.notifyZoom()
	pc.Refresh()
}

// Cursor shows a crosshair over the artwork.
func (pc *PageCanvas) Cursor() desktop.Cursor {
	return desktop.CrosshairCursor
}

// Refresh redraws the page.
func (pc *PageCanvas) Refresh() {
	pc.raster.Refresh()
	pc.BaseWidget.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (pc *PageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &pageCanvasRenderer{canvas: pc}
}

type pageCanvasRenderer struct {
	canvas *PageCanvas
}

func (r *pageCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
	r.canvas.vp.SetWindowSize(geometry.Size{
		Width:  float64(size.Width),
		Height: float64(size.Height),
	})
	r.canvas.notifyZoom()
}

func (r *pageCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *pageCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *pageCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *pageCanvasRenderer) Destroy() {}
