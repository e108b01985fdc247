package track

// Line is a straight segment from P0 to P1.
type Line struct {
	// The line's start point, at t = 0.
	P0 Point
	// The line's end point, at t = 1.
	P1 Point
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// Eval returns the point at parameter t.
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Dir returns the unit direction from P0 to P1. It is the same for every t.
func (l Line) Dir(t float64) Vec2 {
	return l.P1.Sub(l.P0).Normalize()
}

// Curvature always returns 0.
func (l Line) Curvature() float64 {
	return 0
}

// BoundingBox returns the smallest rectangle containing both endpoints.
func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

// Reverse returns the same line traversed from P1 to P0.
func (l Line) Reverse() Line {
	return Line{P0: l.P1, P1: l.P0}
}

func (l Line) Translate(v Vec2) Line {
	return Line{
		P0: l.P0.Translate(v),
		P1: l.P1.Translate(v),
	}
}
