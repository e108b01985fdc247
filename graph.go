package track

import (
	"errors"
	"fmt"
)

// SegmentID identifies a [Segment] within a [Graph].
type SegmentID int32

// JointID identifies a [Joint] within a [Graph].
type JointID int32

// Segment is a node of the track graph: one curve and the joints at its two
// ends. Segments are immutable once added to a graph.
type Segment struct {
	Curve Curve
	// Joint at t = 0.
	StartJoint JointID
	// Joint at t = 1.
	EndJoint JointID
}

// JointAt returns the joint at the end of the segment at parameter t, which
// must be 0 or 1.
func (s Segment) JointAt(t float64) JointID {
	switch t {
	case 0:
		return s.StartJoint
	case 1:
		return s.EndJoint
	default:
		panic(fmt.Sprintf("segment end must be at t = 0 or t = 1, not %g", t))
	}
}

// CurveLookup resolves a segment's curve. [Graph] implements it.
type CurveLookup interface {
	Curve(id SegmentID) Curve
}

// Graph is an arena of segments and joints. Segments refer to joints and
// joints refer to segments by identifier only, so cycles, including segments
// whose both ends meet at the same joint, need no special handling.
//
// A graph is built once and then only read. Concurrent reads are safe.
type Graph struct {
	segments []Segment
	joints   []Joint
}

var _ CurveLookup = (*Graph)(nil)

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// NewJoint reserves a joint with no connections and returns its identifier.
// Use [Graph.SetJoint] to fill it in once the segments it connects exist.
func (g *Graph) NewJoint() JointID {
	g.joints = append(g.joints, Joint{})
	return JointID(len(g.joints) - 1)
}

// AddJoint adds a joint and returns its identifier.
func (g *Graph) AddJoint(j Joint) JointID {
	g.joints = append(g.joints, j)
	return JointID(len(g.joints) - 1)
}

// SetJoint replaces the joint identified by id.
func (g *Graph) SetJoint(id JointID, j Joint) {
	g.mustJoint(id)
	g.joints[id] = j
}

// AddSegment adds a segment joining the two joints and returns its identifier.
func (g *Graph) AddSegment(c Curve, start, end JointID) SegmentID {
	g.segments = append(g.segments, Segment{Curve: c, StartJoint: start, EndJoint: end})
	return SegmentID(len(g.segments) - 1)
}

func (g *Graph) mustSegment(id SegmentID) {
	if id < 0 || int(id) >= len(g.segments) {
		panic(fmt.Sprintf("segment %d does not exist", id))
	}
}

func (g *Graph) mustJoint(id JointID) {
	if id < 0 || int(id) >= len(g.joints) {
		panic(fmt.Sprintf("joint %d does not exist", id))
	}
}

// Segment returns the segment identified by id. It panics if there is no such
// segment; a dangling identifier is a construction bug.
func (g *Graph) Segment(id SegmentID) Segment {
	g.mustSegment(id)
	return g.segments[id]
}

// Curve implements CurveLookup.
func (g *Graph) Curve(id SegmentID) Curve {
	g.mustSegment(id)
	return g.segments[id].Curve
}

// Joint returns the joint identified by id. It panics if there is no such
// joint. The returned joint shares its connections with the graph and must not
// be modified.
func (g *Graph) Joint(id JointID) Joint {
	g.mustJoint(id)
	return g.joints[id]
}

// NumSegments returns the number of segments in the graph.
func (g *Graph) NumSegments() int { return len(g.segments) }

// NumJoints returns the number of joints in the graph.
func (g *Graph) NumJoints() int { return len(g.joints) }

// Bounds returns the bounding box of all segments.
func (g *Graph) Bounds() Rect {
	if len(g.segments) == 0 {
		return Rect{}
	}
	r := g.segments[0].Curve.BoundingBox()
	for _, s := range g.segments[1:] {
		r = r.Union(s.Curve.BoundingBox())
	}
	return r
}

// Validate checks the graph for construction errors: segments of zero length,
// references to joints or segments that don't exist, and connections that
// attach a segment to a joint other than the one at that end of the segment.
func (g *Graph) Validate() error {
	var errs []error
	for i, s := range g.segments {
		if l := s.Curve.Length(); !(l > 0) {
			errs = append(errs, fmt.Errorf("segment %d: length %g is not positive", i, l))
		}
		for _, j := range [2]JointID{s.StartJoint, s.EndJoint} {
			if j < 0 || int(j) >= len(g.joints) {
				errs = append(errs, fmt.Errorf("segment %d: joint %d not found", i, j))
			}
		}
	}
	for i, j := range g.joints {
		for _, conn := range j.Connections {
			if len(conn.Segments) == 0 {
				errs = append(errs, fmt.Errorf("joint %d: empty connection", i))
			}
			for _, sc := range conn.Segments {
				if sc.Segment < 0 || int(sc.Segment) >= len(g.segments) {
					errs = append(errs, fmt.Errorf("joint %d: segment %d not found", i, sc.Segment))
					continue
				}
				s := g.segments[sc.Segment]
				var want JointID
				switch sc.T {
				case 0:
					want = s.StartJoint
				case 1:
					want = s.EndJoint
				default:
					errs = append(errs, fmt.Errorf("joint %d: segment %d attached at t = %g", i, sc.Segment, sc.T))
					continue
				}
				if want != JointID(i) {
					errs = append(errs, fmt.Errorf("joint %d: segment %d at t = %g belongs to joint %d", i, sc.Segment, sc.T, want))
				}
			}
		}
	}
	return errors.Join(errs...)
}
