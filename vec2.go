package track

import (
	"fmt"
	"math"
)

// Vec2 is a displacement in world space. Like [Point] it is y-down.
type Vec2 struct {
	X float64
	Y float64
}

// Vec returns the vector ⟨x, y⟩.
func Vec(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Down is the unit vector pointing down the screen.
var Down = Vec2{0, 1}

func (v Vec2) String() string {
	return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y)
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Hypot returns the magnitude of the vector.
func (v Vec2) Hypot() float64 {
	return math.Hypot(v.X, v.Y)
}

// Hypot2 returns the squared magnitude of the vector.
func (v Vec2) Hypot2() float64 {
	return v.Dot(v)
}

// Normalize returns a vector of magnitude 1 with the same angle as v.
// This produces a NaN vector if the magnitude is 0; see [Vec2.NormalizeOrZero].
func (v Vec2) Normalize() Vec2 {
	return v.Mul(1.0 / v.Hypot())
}

// NormalizeOrZero is like Normalize but returns the zero vector for
// zero-length or non-finite input.
func (v Vec2) NormalizeOrZero() Vec2 {
	h := v.Hypot()
	if h == 0 || math.IsInf(h, 0) || math.IsNaN(h) {
		return Vec2{}
	}
	return v.Mul(1.0 / h)
}

// Perp returns v rotated by a quarter turn, ⟨-y, x⟩.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// ScreenAngle returns the angle of v in radians, measured counter-clockwise as
// seen on a y-down screen. It is the inverse of [VecFromScreenAngle].
func (v Vec2) ScreenAngle() float64 {
	return math.Atan2(-v.Y, v.X)
}

// VecFromScreenAngle returns the unit vector at angle th, measured
// counter-clockwise on a y-down screen. At π/2 it points up (negative y).
func VecFromScreenAngle(th float64) Vec2 {
	sin, cos := math.Sincos(th)
	return Vec2{X: cos, Y: -sin}
}

// Lerp linearly interpolates between two vectors.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return v.Add(o.Sub(v).Mul(t))
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// IsNaN reports whether at least one of x and y is NaN.
func (v Vec2) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y)
}

// Add adds two vectors and returns the resulting vector.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub subtracts two vectors and returns the resulting vector.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Mul(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Negate returns a new vector with the signs of x and y flipped.
func (v Vec2) Negate() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// ForceFromTilt returns a force of the given magnitude pointing down the screen,
// rotated by angle radians. Positive angles rotate clockwise on screen, which
// is the direction a crank turned forward tips the world.
func ForceFromTilt(angle, magnitude float64) Vec2 {
	return Rotation(angle).Apply(Down).Mul(magnitude)
}
