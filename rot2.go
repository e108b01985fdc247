package track

import "math"

// Rot2 is a rotation stored as its cosine and sine.
//
// The convention matches the rest of the package: a positive angle rotates the
// positive X direction into positive Y. In the y-down world space that is a
// clockwise rotation on screen.
type Rot2 struct {
	Cos, Sin float64
}

// Rotation returns the rotation by th radians.
func Rotation(th float64) Rot2 {
	sin, cos := math.Sincos(th)
	return Rot2{Cos: cos, Sin: sin}
}

// RotationTo returns the rotation that maps ⟨1, 0⟩ onto the direction of v.
// v must not be the zero vector.
func RotationTo(v Vec2) Rot2 {
	v = v.Normalize()
	return Rot2{Cos: v.X, Sin: v.Y}
}

// Inverse returns the opposite rotation.
func (r Rot2) Inverse() Rot2 {
	return Rot2{Cos: r.Cos, Sin: -r.Sin}
}

// Apply rotates v.
func (r Rot2) Apply(v Vec2) Vec2 {
	return Vec2{
		X: r.Cos*v.X - r.Sin*v.Y,
		Y: r.Sin*v.X + r.Cos*v.Y,
	}
}

// Then returns the rotation that applies r followed by o.
func (r Rot2) Then(o Rot2) Rot2 {
	return Rot2{
		Cos: r.Cos*o.Cos - r.Sin*o.Sin,
		Sin: r.Sin*o.Cos + r.Cos*o.Sin,
	}
}

// Angle returns the rotation angle in radians, in (-π, π].
func (r Rot2) Angle() float64 {
	return math.Atan2(r.Sin, r.Cos)
}
