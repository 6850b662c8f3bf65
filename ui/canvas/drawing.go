// Package canvas drawing routines for the page raster.
package canvas

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/gankudadiz/BubbleTrans/pkg/geometry"
)

var (
	backgroundColor = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
	selectionColor  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	cropMarkColor   = color.RGBA{R: 0xE5, G: 0x39, B: 0x35, A: 255}
)

// draw is the raster drawing function. It renders the page through the
// current view transform and the selection rubber band on top.
func (pc *PageCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))

	// Dark background so page borders are visible at any zoom.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			output.SetRGBA(x, y, backgroundColor)
		}
	}

	if pc.page != nil && pc.vp.HasImage() {
		pc.drawPage(output)
	}

	if pc.lastCrop != nil {
		pc.drawCropMark(output, *pc.lastCrop)
	}

	if pc.sel.Active() {
		pc.drawSelectionRect(output, pc.sel.Rect())
	}

	return output
}

// drawPage scales the page into its on-screen rectangle. Bilinear keeps
// lineart readable when zoomed out; at high zoom the blur is preferable
// to aliasing on halftone dots.
func (pc *PageCanvas) drawPage(output *image.RGBA) {
	size := pc.vp.ImageSize()
	tl := pc.vp.ToScreen(geometry.Point2D{})
	br := pc.vp.ToScreen(geometry.Point2D{X: size.Width, Y: size.Height})

	dst := image.Rect(int(tl.X), int(tl.Y), int(br.X), int(br.Y))
	if dst.Empty() {
		return
	}

	xdraw.ApproxBiLinear.Scale(output, dst, pc.page, pc.page.Bounds(), xdraw.Src, nil)
}

// drawSelectionRect draws the dashed rubber band in screen coordinates.
func (pc *PageCanvas) drawSelectionRect(output *image.RGBA, rect geometry.Rect) {
	x1 := int(rect.X)
	y1 := int(rect.Y)
	x2 := int(rect.X + rect.Width)
	y2 := int(rect.Y + rect.Height)

	bounds := output.Bounds()

	// Dashed outline (alternate pixels)
	for x := x1; x <= x2; x++ {
		if (x+y1)%4 < 2 && x >= bounds.Min.X && x < bounds.Max.X && y1 >= bounds.Min.Y && y1 < bounds.Max.Y {
			output.SetRGBA(x, y1, selectionColor)
		}
		if (x+y2)%4 < 2 && x >= bounds.Min.X && x < bounds.Max.X && y2 >= bounds.Min.Y && y2 < bounds.Max.Y {
			output.SetRGBA(x, y2, selectionColor)
		}
	}
	for y := y1; y <= y2; y++ {
		if (x1+y)%4 < 2 && x1 >= bounds.Min.X && x1 < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			output.SetRGBA(x1, y, selectionColor)
		}
		if (x2+y)%4 < 2 && x2 >= bounds.Min.X && x2 < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			output.SetRGBA(x2, y, selectionColor)
		}
	}
}

// drawCropMark outlines the last exported region so the reader can see
// which balloon the translation pane refers to. The region is stored in
// image pixels and mapped through the view transform.
func (pc *PageCanvas) drawCropMark(output *image.RGBA, region geometry.RectInt) {
	tl := pc.vp.ToScreen(geometry.Point2D{X: float64(region.X), Y: float64(region.Y)})
	br := pc.vp.ToScreen(geometry.Point2D{
		X: float64(region.X + region.Width),
		Y: float64(region.Y + region.Height),
	})

	x1, y1 := int(tl.X), int(tl.Y)
	x2, y2 := int(br.X), int(br.Y)
	bounds := output.Bounds()

	// 2px solid outline
	for t := 0; t < 2; t++ {
		for x := x1; x <= x2; x++ {
			if x >= bounds.Min.X && x < bounds.Max.X {
				if y1+t >= bounds.Min.Y && y1+t < bounds.Max.Y {
					output.SetRGBA(x, y1+t, cropMarkColor)
				}
				if y2-t >= bounds.Min.Y && y2-t < bounds.Max.Y {
					output.SetRGBA(x, y2-t, cropMarkColor)
				}
			}
		}
		for y := y1; y <= y2; y++ {
			if y >= bounds.Min.Y && y < bounds.Max.Y {
				if x1+t >= bounds.Min.X && x1+t < bounds.Max.X {
					output.SetRGBA(x1+t, y, cropMarkColor)
				}
				if x2-t >= bounds.Min.X && x2-t < bounds.Max.X {
					output.SetRGBA(x2-t, y, cropMarkColor)
				}
			}
		}
	}
}
