// Package viewport implements the document view transform and region
// selection for the comic canvas: zooming, panning, screen/image coordinate
// mapping, and exporting native-resolution crops.
package viewport

import (
	"github.com/gankudadiz/BubbleTrans/pkg/geometry"
)

const (
	// MinZoom and MaxZoom bound the zoom factor.
	MinZoom = 0.1
	MaxZoom = 10.0

	// ZoomStep is the multiplier applied per wheel notch.
	ZoomStep = 1.25
)

// ViewState holds the current view transform for one open document.
// The transform convention is:
//
//	screen = image*Zoom + Pan
//
// so Pan is the screen position of the image origin, in screen pixels.
type ViewState struct {
	ImageSize geometry.Size
	Zoom      float64
	Pan       geometry.Point2D
}

// Viewport owns the ViewState for a single open document. It knows nothing
// about widgets or pixels; the canvas feeds it window sizes and pointer
// positions and reads the transform back for rendering.
type Viewport struct {
	view       ViewState
	windowSize geometry.Size

	// Set once the user zooms or pans manually. While false, window
	// resizes re-fit the image automatically.
	userAdjusted bool
}

// New creates an empty viewport.
func New() *Viewport {
	return &Viewport{view: ViewState{Zoom: 1.0}}
}

// View returns a copy of the current view state.
func (v *Viewport) View() ViewState {
	return v.view
}

// Zoom returns the current zoom factor.
func (v *Viewport) Zoom() float64 {
	return v.view.Zoom
}

// ImageSize returns the native size of the current image.
func (v *Viewport) ImageSize() geometry.Size {
	return v.view.ImageSize
}

// HasImage reports whether an image has been set.
func (v *Viewport) HasImage() bool {
	return !v.view.ImageSize.Empty()
}

// SetImageSize installs a new document of the given native size and resets
// the transform to fit the current window. Passing an empty size clears the
// viewport.
func (v *Viewport) SetImageSize(size geometry.Size) {
	v.view.ImageSize = size
	v.userAdjusted = false
	v.Fit()
}

// SetWindowSize records the size of the on-screen area the image is drawn
// into. While the user has not zoomed or panned manually, the image is
// re-fitted on every resize.
func (v *Viewport) SetWindowSize(size geometry.Size) {
	v.windowSize = size
	if !v.userAdjusted {
		v.Fit()
	}
}

// Fit resets zoom so the whole image is visible and centers it. Re-enables
// automatic fitting on resize.
func (v *Viewport) Fit() {
	if v.view.ImageSize.Empty() {
		v.view.Zoom = 1.0
		v.view.Pan = geometry.Point2D{}
		return
	}
	if v.windowSize.Empty() {
		// No window yet. Keep 1:1 until the canvas reports a size.
		v.view.Zoom = clampZoom(1.0)
		v.view.Pan = geometry.Point2D{}
		return
	}

	zx := v.windowSize.Width / v.view.ImageSize.Width
	zy := v.windowSize.Height / v.view.ImageSize.Height
	zoom := zx
	if zy < zx {
		zoom = zy
	}
	v.view.Zoom = clampZoom(zoom)
	v.centerPan()
	v.userAdjusted = false
}

// ActualSize sets zoom to 1:1 and centers the image.
func (v *Viewport) ActualSize() {
	v.view.Zoom = 1.0
	v.centerPan()
	v.userAdjusted = true
}

// ZoomAt multiplies the zoom factor, keeping the image point under the given
// screen pivot fixed. The factor is usually ZoomStep or 1/ZoomStep.
func (v *Viewport) ZoomAt(factor float64, pivot geometry.Point2D) {
	if !v.HasImage() || factor <= 0 {
		return
	}
	oldZoom := v.view.Zoom
	newZoom := clampZoom(oldZoom * factor)
	if newZoom == oldZoom {
		return
	}

	// Image point under the pivot must map back to the pivot afterwards:
	// pan' = pivot - ((pivot - pan)/oldZoom)*newZoom
	imagePt := pivot.Sub(v.view.Pan).Scale(1.0 / oldZoom)
	v.view.Zoom = newZoom
	v.view.Pan = pivot.Sub(imagePt.Scale(newZoom))
	v.userAdjusted = true
	v.softClampPan()
}

// ZoomIn zooms in one step around the given screen pivot.
func (v *Viewport) ZoomIn(pivot geometry.Point2D) {
	v.ZoomAt(ZoomStep, pivot)
}

// ZoomOut zooms out one step around the given screen pivot.
func (v *Viewport) ZoomOut(pivot geometry.Point2D) {
	v.ZoomAt(1.0/ZoomStep, pivot)
}

// Pan shifts the view by a screen-space delta.
func (v *Viewport) Pan(delta geometry.Point2D) {
	if !v.HasImage() {
		return
	}
	v.view.Pan = v.view.Pan.Add(delta)
	v.userAdjusted = true
	v.softClampPan()
}

// screenFromImage returns the image→screen transform for the current state.
func (v *Viewport) screenFromImage() geometry.AffineTransform {
	return geometry.Translation(v.view.Pan.X, v.view.Pan.Y).
		Compose(geometry.Scale(v.view.Zoom, v.view.Zoom))
}

// ToScreen converts an image-space point to screen space.
func (v *Viewport) ToScreen(p geometry.Point2D) geometry.Point2D {
	return v.screenFromImage().Apply(p)
}

// ToImage converts a screen-space point to image space.
func (v *Viewport) ToImage(p geometry.Point2D) geometry.Point2D {
	inv, ok := v.screenFromImage().Inverse()
	if !ok {
		return geometry.Point2D{}
	}
	return inv.Apply(p)
}

// centerPan positions the image centered in the window.
func (v *Viewport) centerPan() {
	if v.windowSize.Empty() {
		v.view.Pan = geometry.Point2D{}
		return
	}
	v.view.Pan = geometry.Point2D{
		X: (v.windowSize.Width - v.view.ImageSize.Width*v.view.Zoom) / 2,
		Y: (v.windowSize.Height - v.view.ImageSize.Height*v.view.Zoom) / 2,
	}
}

// softClampPan keeps at least panMargin pixels of the image on screen so it
// cannot be flung arbitrarily far away.
const panMargin = 32.0

func (v *Viewport) softClampPan() {
	if v.windowSize.Empty() {
		return
	}
	w := v.view.ImageSize.Width * v.view.Zoom
	h := v.view.ImageSize.Height * v.view.Zoom

	if v.view.Pan.X < panMargin-w {
		v.view.Pan.X = panMargin - w
	}
	if v.view.Pan.X > v.windowSize.Width-panMargin {
		v.view.Pan.X = v.windowSize.Width - panMargin
	}
	if v.view.Pan.Y < panMargin-h {
		v.view.Pan.Y = panMargin - h
	}
	if v.view.Pan.Y > v.windowSize.Height-panMargin {
		v.view.Pan.Y = v.windowSize.Height - panMargin
	}
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
