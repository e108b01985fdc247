package track

import "math"

// Arc is a circular arc. A point on the arc at angle a is
// Center + (cos a, -sin a)·Radius, so angles grow counter-clockwise as seen on
// a y-down screen. The parameter t interpolates linearly from StartAngle to
// EndAngle; the sign of EndAngle − StartAngle decides the direction of travel.
type Arc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

// newArcFromHeading returns the arc that starts at pos heading in direction dir,
// turning with the given signed curvature for length units of arc length.
// curvature must not be zero.
func newArcFromHeading(pos Point, dir Vec2, curvature, length float64) Arc {
	dir = dir.Normalize()
	signedRadius := 1.0 / curvature
	// Offset from the center to pos.
	perp := dir.Perp().Mul(signedRadius)
	start := math.Mod(math.Atan2(-perp.Y, perp.X), 2*math.Pi)
	if start < 0 {
		start += 2 * math.Pi
	}
	return Arc{
		Center:     pos.Translate(perp.Negate()),
		Radius:     math.Abs(signedRadius),
		StartAngle: start,
		EndAngle:   start + length*curvature,
	}
}

// Sweep returns EndAngle − StartAngle.
func (a Arc) Sweep() float64 {
	return a.EndAngle - a.StartAngle
}

// Length returns the arc length.
func (a Arc) Length() float64 {
	return math.Abs(a.Sweep()) * a.Radius
}

// EvalAngle returns the point on the arc's circle at the given angle.
func (a Arc) EvalAngle(angle float64) Point {
	return a.Center.Translate(VecFromScreenAngle(angle).Mul(a.Radius))
}

func (a Arc) angle(t float64) float64 {
	return a.StartAngle + (a.EndAngle-a.StartAngle)*t
}

// Eval returns the point at parameter t.
func (a Arc) Eval(t float64) Point {
	return a.EvalAngle(a.angle(t))
}

// Dir returns the unit tangent at t, oriented toward increasing t.
func (a Arc) Dir(t float64) Vec2 {
	sin, cos := math.Sincos(a.angle(t))
	d := sign(a.Sweep())
	return Vec2{X: -sin * d, Y: -cos * d}
}

// Curvature returns ±1/Radius. It is positive when the arc turns
// counter-clockwise on screen (a left turn for something travelling along it).
func (a Arc) Curvature() float64 {
	return sign(a.Sweep()) / a.Radius
}

// axisAngles are the angles at which a circle reaches its extremes in x or y.
var axisAngles = [4]float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}

// BoundingBox returns the smallest axis-aligned rectangle enclosing the arc.
// Besides both endpoints it includes every axis extreme the arc sweeps over.
func (a Arc) BoundingBox() Rect {
	bbox := NewRectFromPoints(a.Eval(0), a.Eval(1))
	lo, hi := min(a.StartAngle, a.EndAngle), max(a.StartAngle, a.EndAngle)
	for _, angle := range axisAngles {
		if angleInRange(angle, lo, hi) {
			bbox = bbox.UnionPoint(a.EvalAngle(angle))
		}
	}
	return bbox
}

// angleInRange reports whether some angle congruent to a lies in [lo, hi].
func angleInRange(a, lo, hi float64) bool {
	const tau = 2 * math.Pi
	if hi-lo >= tau {
		return true
	}
	off := math.Mod(a-lo, tau)
	if off < 0 {
		off += tau
	}
	// Tolerate rounding at the end of a sweep that lands exactly on an axis.
	return off <= hi-lo+1e-9 || off >= tau-1e-9
}

// Reverse returns the same arc traversed in the opposite direction.
func (a Arc) Reverse() Arc {
	a.StartAngle, a.EndAngle = a.EndAngle, a.StartAngle
	return a
}

func (a Arc) Translate(v Vec2) Arc {
	a.Center = a.Center.Translate(v)
	return a
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
