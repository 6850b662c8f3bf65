package geometry

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b Point2D) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestScaleThenTranslateApply(t *testing.T) {
	// screen = image*2 + (10, 20)
	tr := Translation(10, 20).Compose(Scale(2, 2))
	got := tr.Apply(Point2D{X: 5, Y: 7})
	if !almostEqual(got, Point2D{X: 20, Y: 34}) {
		t.Fatalf("unexpected transform result: %+v", got)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	tr := Translation(-33.5, 12).Compose(Scale(1.75, 1.75))
	inv, ok := tr.Inverse()
	if !ok {
		t.Fatalf("expected invertible transform")
	}

	points := []Point2D{{0, 0}, {100, 100}, {-3.25, 817.5}, {1e6, -1e6}}
	for _, p := range points {
		back := inv.Apply(tr.Apply(p))
		if p.Distance(back) > 1e-6 {
			t.Fatalf("round trip drifted: %+v -> %+v", p, back)
		}
	}
}

func TestInverseOfSingular(t *testing.T) {
	if _, ok := Scale(0, 1).Inverse(); ok {
		t.Fatalf("expected singular transform to report non-invertible")
	}
}

func TestComposeWithInverseIsIdentity(t *testing.T) {
	tr := Translation(4, -9).Compose(Scale(0.4, 0.4))
	inv, _ := tr.Inverse()
	id := tr.Compose(inv)
	p := Point2D{X: 42, Y: -17}
	if !almostEqual(id.Apply(p), p) {
		t.Fatalf("compose with inverse not identity: %+v", id.Apply(p))
	}
}

func TestRectFromCorners(t *testing.T) {
	r := RectFromCorners(Point2D{X: 30, Y: 40}, Point2D{X: 10, Y: 90})
	if r.X != 10 || r.Y != 40 || r.Width != 20 || r.Height != 50 {
		t.Fatalf("unexpected rect: %+v", r)
	}
}

func TestRectIntIntersect(t *testing.T) {
	a := RectInt{X: 0, Y: 0, Width: 100, Height: 100}
	b := RectInt{X: 80, Y: -20, Width: 50, Height: 50}
	got := a.Intersect(b)
	want := RectInt{X: 80, Y: 0, Width: 20, Height: 30}
	if got != want {
		t.Fatalf("intersect = %+v, want %+v", got, want)
	}

	if !a.Intersect(RectInt{X: 200, Y: 200, Width: 10, Height: 10}).Empty() {
		t.Fatalf("expected empty intersection for disjoint rects")
	}
}
