package viewport

import (
	"errors"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/gankudadiz/BubbleTrans/pkg/geometry"
)

// ErrEmptyCrop is returned when the selection, after clamping to the image
// bounds, has no area. Selections entirely off the image land here; ones
// that merely straddle an edge are clamped silently.
var ErrEmptyCrop = errors.New("crop region is empty")

// Crop is a finalized export: the region in native image pixel coordinates
// and the pixel data for that sub-rectangle at native resolution. The buffer
// is a copy; ownership transfers to the receiver and it is never mutated
// afterwards.
type Crop struct {
	Region geometry.RectInt
	Image  *image.NRGBA
}

// Export maps a finished screen-space selection rectangle into native image
// coordinates and cuts the corresponding pixels out of the source image.
// The mapping goes corner-by-corner through the viewport's inverse
// transform, so the crop is taken from the full-resolution source no matter
// the on-screen zoom. The region is clamped to the image bounds, with the
// min corner floored and the max corner ceiled so no partial edge pixel is
// lost.
func Export(v *Viewport, src image.Image, sel geometry.Rect) (Crop, error) {
	if src == nil || !v.HasImage() {
		return Crop{}, ErrEmptyCrop
	}

	a := v.ToImage(sel.TopLeft())
	b := v.ToImage(sel.BottomRight())
	box := geometry.RectFromCorners(a, b)

	x0 := int(math.Floor(box.X))
	y0 := int(math.Floor(box.Y))
	x1 := int(math.Ceil(box.X + box.Width))
	y1 := int(math.Ceil(box.Y + box.Height))

	native := geometry.RectInt{
		Width:  int(v.ImageSize().Width),
		Height: int(v.ImageSize().Height),
	}
	region := geometry.RectInt{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}.Intersect(native)
	if region.Empty() {
		return Crop{}, ErrEmptyCrop
	}

	bounds := src.Bounds()
	buf := imaging.Crop(src, image.Rect(
		bounds.Min.X+region.X,
		bounds.Min.Y+region.Y,
		bounds.Min.X+region.X+region.Width,
		bounds.Min.Y+region.Y+region.Height,
	))

	return Crop{Region: region, Image: buf}, nil
}
