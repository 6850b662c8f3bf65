package viewport

import (
	"math"
	"testing"

	"github.com/gankudadiz/BubbleTrans/pkg/geometry"
)

func newTestViewport(w, h float64) *Viewport {
	v := New()
	v.SetImageSize(geometry.NewSize(w, h))
	return v
}

func TestRoundTripScreenImage(t *testing.T) {
	v := newTestViewport(1000, 800)
	v.ZoomAt(2.6, geometry.Point2D{X: 120, Y: 45})
	v.Pan(geometry.Point2D{X: -37.5, Y: 18.25})

	points := []geometry.Point2D{
		{X: 0, Y: 0},
		{X: 400, Y: 300},
		{X: -12.5, Y: 991.75},
	}
	for _, p := range points {
		back := v.ToScreen(v.ToImage(p))
		if p.Distance(back) > 1e-6 {
			t.Fatalf("round trip drifted for %+v: got %+v", p, back)
		}
	}
}

func TestZoomKeepsPivotFixed(t *testing.T) {
	v := newTestViewport(1000, 800)
	pivot := geometry.Point2D{X: 250, Y: 130}
	before := v.ToImage(pivot)

	v.ZoomIn(pivot)

	after := v.ToImage(pivot)
	if before.Distance(after) > 1e-6 {
		t.Fatalf("image point under pivot moved: %+v -> %+v", before, after)
	}
	if got := v.Zoom(); math.Abs(got-ZoomStep) > 1e-9 {
		t.Fatalf("zoom = %v, want %v", got, ZoomStep)
	}
}

func TestZoomClamped(t *testing.T) {
	v := newTestViewport(100, 100)
	for i := 0; i < 50; i++ {
		v.ZoomIn(geometry.Point2D{})
	}
	if v.Zoom() != MaxZoom {
		t.Fatalf("zoom not clamped to max: %v", v.Zoom())
	}
	for i := 0; i < 100; i++ {
		v.ZoomOut(geometry.Point2D{})
	}
	if v.Zoom() != MinZoom {
		t.Fatalf("zoom not clamped to min: %v", v.Zoom())
	}
}

func TestPanAccumulates(t *testing.T) {
	v := newTestViewport(1000, 800)
	v.Pan(geometry.Point2D{X: 10, Y: -20})
	v.Pan(geometry.Point2D{X: 5, Y: 5})
	view := v.View()
	if view.Pan.X != 15 || view.Pan.Y != -15 {
		t.Fatalf("unexpected pan: %+v", view.Pan)
	}
}

func TestPanSoftClamp(t *testing.T) {
	v := New()
	v.SetWindowSize(geometry.NewSize(640, 480))
	v.SetImageSize(geometry.NewSize(100, 100))

	// Fling the image far off screen; the clamp must keep a sliver visible.
	v.Pan(geometry.Point2D{X: 1e6, Y: 1e6})
	view := v.View()
	if view.Pan.X > 640-panMargin || view.Pan.Y > 480-panMargin {
		t.Fatalf("pan escaped soft bounds: %+v", view.Pan)
	}
}

func TestFitToWindowCentersImage(t *testing.T) {
	v := New()
	v.SetWindowSize(geometry.NewSize(500, 500))
	v.SetImageSize(geometry.NewSize(1000, 800))

	// Limiting dimension is width: zoom 0.5, image becomes 500x400.
	if math.Abs(v.Zoom()-0.5) > 1e-9 {
		t.Fatalf("fit zoom = %v, want 0.5", v.Zoom())
	}
	view := v.View()
	if math.Abs(view.Pan.X-0) > 1e-9 || math.Abs(view.Pan.Y-50) > 1e-9 {
		t.Fatalf("fit pan = %+v, want (0, 50)", view.Pan)
	}
}

func TestResizeRefitsUntilUserAdjusts(t *testing.T) {
	v := New()
	v.SetWindowSize(geometry.NewSize(500, 500))
	v.SetImageSize(geometry.NewSize(1000, 1000))
	if math.Abs(v.Zoom()-0.5) > 1e-9 {
		t.Fatalf("initial fit zoom = %v", v.Zoom())
	}

	// No manual interaction yet: resize re-fits.
	v.SetWindowSize(geometry.NewSize(250, 250))
	if math.Abs(v.Zoom()-0.25) > 1e-9 {
		t.Fatalf("resize did not refit: zoom = %v", v.Zoom())
	}

	// After a manual zoom the resize must leave the transform alone.
	v.ZoomIn(geometry.Point2D{X: 125, Y: 125})
	zoomed := v.Zoom()
	v.SetWindowSize(geometry.NewSize(800, 800))
	if v.Zoom() != zoomed {
		t.Fatalf("resize overrode user zoom: %v != %v", v.Zoom(), zoomed)
	}
}

// Transform convention check: screen = image*zoom + pan. With the native
// image at 1000x800, zoom 2.0 and pan (0,0), the screen drag from (100,100)
// to (300,300) must map to the image rectangle [50,150]x[50,150].
func TestDocumentedTransformScenario(t *testing.T) {
	v := newTestViewport(1000, 800)
	v.ZoomAt(2.0, geometry.Point2D{}) // pivot at origin keeps pan (0,0)

	view := v.View()
	if view.Zoom != 2.0 || view.Pan != (geometry.Point2D{}) {
		t.Fatalf("scenario setup wrong: %+v", view)
	}

	a := v.ToImage(geometry.Point2D{X: 100, Y: 100})
	b := v.ToImage(geometry.Point2D{X: 300, Y: 300})
	if a.Distance(geometry.Point2D{X: 50, Y: 50}) > 1e-9 {
		t.Fatalf("min corner = %+v, want (50,50)", a)
	}
	if b.Distance(geometry.Point2D{X: 150, Y: 150}) > 1e-9 {
		t.Fatalf("max corner = %+v, want (150,150)", b)
	}
}
