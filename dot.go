package track

// Dot is a point mass constrained to the track. It refers to its segment by
// identifier only; the graph is looked up on every step.
type Dot struct {
	// T is the parameter on the current segment, in [0, 1].
	T float64
	// V is the signed speed along the segment, in world units per unit of time.
	// Positive values move toward t = 1.
	V       float64
	Segment SegmentID
}

// Position returns the dot's position in world space.
func (d Dot) Position(curves CurveLookup) Point {
	return curves.Curve(d.Segment).Eval(d.T)
}

// Heading returns the dot's direction of travel, or the zero vector if it is
// at rest.
func (d Dot) Heading(curves CurveLookup) Vec2 {
	return curves.Curve(d.Segment).Dir(d.T).Mul(sign(d.V))
}
