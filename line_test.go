package track

import (
	"math"
	"testing"
)

func TestLineLength(t *testing.T) {
	l := Line{Pt(0.0, 0.0), Pt(1.0, 1.0)}
	want := math.Sqrt(2.0)
	epsilon := 1e-12
	if d := math.Abs(l.Length() - want); d > epsilon {
		t.Errorf("%g > %g", d, epsilon)
	}
}

func TestLineEval(t *testing.T) {
	l := Line{Pt(10, 20), Pt(30, -20)}
	diff(t, Pt(10, 20), l.Eval(0))
	diff(t, Pt(30, -20), l.Eval(1))
	diff(t, Pt(20, 0), l.Eval(0.5))

	for _, tt := range []float64{0, 0.3, 1} {
		diff(t, Vec(1, -2).Normalize(), l.Dir(tt), approx(1e-15))
	}
	if k := l.Curvature(); k != 0 {
		t.Errorf("got curvature %v, want 0", k)
	}
	diff(t, Rect{10, -20, 30, 20}, l.BoundingBox())
}

func TestLineReverse(t *testing.T) {
	l := Line{Pt(0, 0), Pt(4, 3)}
	r := l.Reverse()
	diff(t, l.Eval(0.25), r.Eval(0.75), approx(1e-12))
	diff(t, l.Dir(0).Negate(), r.Dir(0), approx(1e-12))
	diff(t, Line{Pt(1, 1), Pt(5, 4)}, l.Translate(Vec(1, 1)))
}
