package track

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(0, 0).Translate(Vec(-10, 0)), Pt(-10, 0))
	diff(t, Pt(3, 4).Sub(Pt(1, 1)), Vec(2, 3))
	diff(t, Pt(0, 0).Lerp(Pt(10, -20), 0.25), Pt(2.5, -5))
}

func TestPointDistance(t *testing.T) {
	p1 := Pt(0, 10)
	p2 := Pt(0, 5)
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	p3 := Pt(-11, 1)
	p4 := Pt(-7, -2)
	if d := p3.Distance(p4); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}
}

func TestVecScreenAngle(t *testing.T) {
	tests := []struct {
		v     Vec2
		angle float64
	}{
		{Vec(1, 0), 0},
		{Vec(0, -1), math.Pi / 2},
		{Vec(-1, -1).Normalize(), 3 * math.Pi / 4},
		{Vec(0, 1), -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := tt.v.ScreenAngle(); !near(got, tt.angle, 1e-12) {
			t.Errorf("%v: got angle %v, want %v", tt.v, got, tt.angle)
		}
		diff(t, tt.v, VecFromScreenAngle(tt.angle), approx(1e-12))
	}
}

func TestVecPerp(t *testing.T) {
	v := Vec(3, 4)
	p := v.Perp()
	if d := v.Dot(p); d != 0 {
		t.Errorf("perpendicular vector has dot product %v", d)
	}
	if c := v.Cross(p); c <= 0 {
		t.Errorf("got cross product %v, want positive", c)
	}
}

func TestVecNormalizeOrZero(t *testing.T) {
	diff(t, Vec2{}, Vec2{}.NormalizeOrZero())
	diff(t, Vec2{}, Vec(math.Inf(1), 0).NormalizeOrZero())
	diff(t, Vec(0.6, 0.8), Vec(3, 4).NormalizeOrZero(), approx(1e-15))
	if !(Vec2{}).Normalize().IsNaN() {
		t.Error("normalizing the zero vector should produce NaN")
	}
}

func TestRotation(t *testing.T) {
	r := Rotation(math.Pi / 2)
	diff(t, Vec(0, 1), r.Apply(Vec(1, 0)), approx(1e-15))
	diff(t, Vec(1, 0), r.Inverse().Apply(Vec(0, 1)), approx(1e-15))

	to := RotationTo(Vec(3, -4))
	diff(t, Vec(0.6, -0.8), to.Apply(Vec(1, 0)), approx(1e-15))
	diff(t, Vec(1, 0), to.Inverse().Apply(Vec(0.6, -0.8)), approx(1e-15))

	both := Rotation(0.3).Then(Rotation(0.4))
	if a := both.Angle(); !near(a, 0.7, 1e-12) {
		t.Errorf("got angle %v, want 0.7", a)
	}
}

func TestForceFromTilt(t *testing.T) {
	diff(t, Vec(0, 9.8), ForceFromTilt(0, 9.8), approx(1e-12))
	// Tipping clockwise on screen swings the force to the left.
	diff(t, Vec(-2, 0), ForceFromTilt(math.Pi/2, 2), approx(1e-12))
	diff(t, Vec(2, 0), ForceFromTilt(-math.Pi/2, 2), approx(1e-12))
}
