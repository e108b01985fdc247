package track

import (
	"fmt"
	"iter"
)

// CurveKind identifies the variant held by a [Curve].
type CurveKind uint8

const (
	// A straight line segment.
	LineKind CurveKind = iota + 1
	// A circular arc.
	ArcKind
)

func (k CurveKind) String() string {
	switch k {
	case LineKind:
		return "line"
	case ArcKind:
		return "arc"
	default:
		return fmt.Sprintf("CurveKind(%d)", k)
	}
}

// Curve is the geometry of one segment: a tagged union of [Line] and [Arc].
//
// All methods take a parameter t in [0, 1], with Eval(0) and Eval(1) being the
// segment's endpoints.
type Curve struct {
	// We don't use an interface because there are exactly two kinds of curve,
	// they are evaluated in the integrator's inner loop, and a struct avoids
	// allocating.

	Kind CurveKind
	Line Line
	Arc  Arc
}

// LineCurve wraps a line.
func LineCurve(l Line) Curve {
	return Curve{Kind: LineKind, Line: l}
}

// ArcCurve wraps an arc.
func ArcCurve(a Arc) Curve {
	return Curve{Kind: ArcKind, Arc: a}
}

// NewCurveFromHeading returns the curve starting at pos with heading dir that
// turns with the given signed curvature (positive turns left, see
// [Arc.Curvature]) for length units. A curvature of 0 yields a line.
func NewCurveFromHeading(pos Point, dir Vec2, curvature, length float64) Curve {
	if curvature == 0 {
		return LineCurve(Line{P0: pos, P1: pos.Translate(dir.Normalize().Mul(length))})
	}
	return ArcCurve(newArcFromHeading(pos, dir, curvature, length))
}

func (c Curve) invalid() string {
	return fmt.Sprintf("invalid curve kind %v", c.Kind)
}

// Eval returns the point at parameter t.
func (c Curve) Eval(t float64) Point {
	switch c.Kind {
	case LineKind:
		return c.Line.Eval(t)
	case ArcKind:
		return c.Arc.Eval(t)
	default:
		panic(c.invalid())
	}
}

// Dir returns the unit tangent at t, oriented toward increasing t.
func (c Curve) Dir(t float64) Vec2 {
	switch c.Kind {
	case LineKind:
		return c.Line.Dir(t)
	case ArcKind:
		return c.Arc.Dir(t)
	default:
		panic(c.invalid())
	}
}

// Length returns the curve's arc length.
func (c Curve) Length() float64 {
	switch c.Kind {
	case LineKind:
		return c.Line.Length()
	case ArcKind:
		return c.Arc.Length()
	default:
		panic(c.invalid())
	}
}

// Curvature returns the signed curvature, constant over the whole curve.
func (c Curve) Curvature() float64 {
	switch c.Kind {
	case LineKind:
		return c.Line.Curvature()
	case ArcKind:
		return c.Arc.Curvature()
	default:
		panic(c.invalid())
	}
}

// BoundingBox returns the smallest axis-aligned rectangle enclosing the curve.
func (c Curve) BoundingBox() Rect {
	switch c.Kind {
	case LineKind:
		return c.Line.BoundingBox()
	case ArcKind:
		return c.Arc.BoundingBox()
	default:
		panic(c.invalid())
	}
}

// Reverse returns the same curve with its parameter running backwards.
func (c Curve) Reverse() Curve {
	switch c.Kind {
	case LineKind:
		return LineCurve(c.Line.Reverse())
	case ArcKind:
		return ArcCurve(c.Arc.Reverse())
	default:
		panic(c.invalid())
	}
}

// Translate returns the curve moved by v.
func (c Curve) Translate(v Vec2) Curve {
	switch c.Kind {
	case LineKind:
		return LineCurve(c.Line.Translate(v))
	case ArcKind:
		return ArcCurve(c.Arc.Translate(v))
	default:
		panic(c.invalid())
	}
}

// Sample returns an iterator over n+1 evenly spaced points, from Eval(0) to
// Eval(1) inclusive. Lines ignore n and yield only their endpoints.
func (c Curve) Sample(n int) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		if c.Kind == LineKind || n < 1 {
			n = 1
		}
		for i := 0; i <= n; i++ {
			if !yield(c.Eval(float64(i) / float64(n))) {
				return
			}
		}
	}
}

// SampleCount returns a sample count for [Curve.Sample] such that consecutive
// samples are at most step units apart.
func (c Curve) SampleCount(step float64) int {
	if c.Kind == LineKind || step <= 0 {
		return 1
	}
	n := int(c.Length()/step) + 1
	return max(n, 4)
}
