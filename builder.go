package track

import (
	"fmt"
	"math"
	"sort"
)

// SectionBuilder appends one curve to a chain. It receives the chain's cursor,
// the end position and unit heading of the previous curve, and must advance both
// to the end of the curve it returns.
type SectionBuilder func(pos *Point, dir *Vec2) Curve

// LineSection returns a section that extends the chain straight ahead.
func LineSection(length float64) SectionBuilder {
	return func(pos *Point, dir *Vec2) Curve {
		c := LineCurve(Line{P0: *pos, P1: pos.Translate(dir.Mul(length))})
		*pos = c.Line.P1
		return c
	}
}

// ArcCurvatureSection returns a section that turns with the given signed
// curvature for length units. Positive curvature turns left.
func ArcCurvatureSection(length, curvature float64) SectionBuilder {
	return func(pos *Point, dir *Vec2) Curve {
		c := NewCurveFromHeading(*pos, *dir, curvature, length)
		*pos = c.Eval(1)
		*dir = c.Dir(1)
		return c
	}
}

// ArcSection returns a section that follows a circle of the given radius for
// the given number of revolutions; 1 is a full circle. Positive revolutions
// turn left, negative ones right.
//
// ArcSection panics if radius isn't positive.
func ArcSection(radius, revolutions float64) SectionBuilder {
	if !(radius > 0) {
		panic(fmt.Sprintf("arc radius must be positive, got %g", radius))
	}
	curvature := sign(revolutions) / radius
	length := radius * math.Abs(revolutions) * 2 * math.Pi
	return ArcCurvatureSection(length, curvature)
}

type chainSection struct {
	// Distance along the chain at which the section starts.
	distance float64
	curve    Curve
}

// Builder lays out a chain of segments, each starting where the previous one
// ended and with the same heading.
//
//	chain := NewBuilder(Pt(168, 20), Vec(1, 0)).
//		Push(LineSection(100)).
//		Push(ArcSection(50, -0.25)).
//		Segment(50, 0).
//		Build(g, false)
type Builder struct {
	sections []chainSection
	pos      Point
	dir      Vec2
	total    float64
}

// NewBuilder returns a builder whose chain starts at pos with heading dir.
func NewBuilder(pos Point, dir Vec2) *Builder {
	return &Builder{pos: pos, dir: dir.Normalize()}
}

// Cursor returns the position and heading at which the next section starts.
func (b *Builder) Cursor() (Point, Vec2) {
	return b.pos, b.dir
}

// Length returns the total length of the chain so far.
func (b *Builder) Length() float64 {
	return b.total
}

// Len returns the number of sections so far.
func (b *Builder) Len() int {
	return len(b.sections)
}

// Segment appends a curve of the given length and signed curvature; a
// curvature of 0 appends a line. Zero-length segments are ignored.
func (b *Builder) Segment(length, curvature float64) *Builder {
	if length == 0 {
		return b
	}
	return b.Push(ArcCurvatureSection(length, curvature))
}

// Push appends the curve produced by s. Curves of zero length are dropped, but
// s may still have moved the cursor.
func (b *Builder) Push(s SectionBuilder) *Builder {
	c := s(&b.pos, &b.dir)
	l := c.Length()
	if l == 0 {
		return b
	}
	b.sections = append(b.sections, chainSection{distance: b.total, curve: c})
	b.total += l
	return b
}

// Chain lists the identifiers of the segments and joints created by
// [Builder.Build], in chain order.
type Chain struct {
	Segments []SegmentID
	Joints   []JointID
	// Distances[i] is the distance along the chain at which Segments[i] starts.
	Distances []float64
	Length    float64
	Closed    bool
}

// Build adds the chain's segments and joints to g.
//
// Joint i sits at the start of segment i. Interior joints connect the end of
// one segment to the start of the next. An open chain of n segments gets n+1
// joints, with single-connection dead ends at both ends. If joinEnds is true the
// chain is closed: it gets n joints, the first of which connects the end of the
// last segment to the start of the first.
func (b *Builder) Build(g *Graph, joinEnds bool) Chain {
	n := len(b.sections)
	ch := Chain{Length: b.total, Closed: joinEnds}
	if n == 0 {
		return ch
	}

	nj := n + 1
	if joinEnds {
		nj = n
	}
	ch.Joints = make([]JointID, nj)
	for i := range ch.Joints {
		ch.Joints[i] = g.NewJoint()
	}
	ch.Segments = make([]SegmentID, n)
	ch.Distances = make([]float64, n)
	for i, s := range b.sections {
		ch.Segments[i] = g.AddSegment(s.curve, ch.Joints[i], ch.Joints[(i+1)%nj])
		ch.Distances[i] = s.distance
	}

	for i := 1; i < n; i++ {
		g.SetJoint(ch.Joints[i], NewJoint(
			SegmentConnection{Segment: ch.Segments[i-1], T: 1},
			SegmentConnection{Segment: ch.Segments[i], T: 0},
		))
	}
	first := SegmentConnection{Segment: ch.Segments[0], T: 0}
	last := SegmentConnection{Segment: ch.Segments[n-1], T: 1}
	if joinEnds {
		g.SetJoint(ch.Joints[0], NewJoint(last, first))
	} else {
		g.SetJoint(ch.Joints[0], NewJoint(first))
		g.SetJoint(ch.Joints[n], NewJoint(last))
	}
	return ch
}

// Locate returns the segment and parameter at the given distance along the
// chain. Distances outside the chain are clamped to its ends, or wrapped
// around if the chain is closed.
func (ch Chain) Locate(distance float64, curves CurveLookup) (SegmentID, float64) {
	if len(ch.Segments) == 0 {
		panic("locating on an empty chain")
	}
	if ch.Closed && ch.Length > 0 {
		distance = math.Mod(distance, ch.Length)
		if distance < 0 {
			distance += ch.Length
		}
	}
	distance = min(max(distance, 0), ch.Length)
	i := sort.Search(len(ch.Distances), func(i int) bool { return ch.Distances[i] > distance }) - 1
	i = max(i, 0)
	id := ch.Segments[i]
	l := curves.Curve(id).Length()
	t := min((distance-ch.Distances[i])/l, 1)
	return id, t
}
