package track

import (
	"cmp"
	"math"
	"slices"
)

// InFrontEpsilon is how far below zero the dot product between the direction
// of travel and an exit direction may fall for the exit to still count as
// "in front". It admits exits at right angles despite rounding.
const InFrontEpsilon = -1e-4

// groupAngle is the largest angle, in radians, between two exit directions
// that [GroupConnections] considers co-directional.
const groupAngle = 1e-3

// bucketAngle is the angular width of the buckets [JointConnection.Eval] uses
// to pick among co-directional segments.
const bucketAngle = 10 * math.Pi / 180

// SegmentConnection attaches one end of a segment to a joint.
type SegmentConnection struct {
	Segment SegmentID
	// T is the segment's parameter at the joint, 0 or 1. Evaluating the
	// segment's curve at T yields the joint's position.
	T float64
}

// ExitDir returns the direction of travel when leaving the joint onto the
// segment: along the curve at its start, against it at its end.
func (sc SegmentConnection) ExitDir(curves CurveLookup) Vec2 {
	d := curves.Curve(sc.Segment).Dir(sc.T)
	if sc.T == 1 {
		return d.Negate()
	}
	return d
}

// exitCurvature returns the curvature felt by something leaving the joint onto
// the segment. Leaving through the segment's end traverses it backwards, which
// mirrors the turn.
func (sc SegmentConnection) exitCurvature(curves CurveLookup) float64 {
	k := curves.Curve(sc.Segment).Curvature()
	if sc.T == 1 {
		return -k
	}
	return k
}

// JointConnection groups the segments that leave a joint in the same
// direction, such as a straight line and an arc tangent to it. Segments are
// ordered by increasing exit curvature, from the sharpest right turn to the
// sharpest left turn.
type JointConnection struct {
	Segments []SegmentConnection
}

func (jc JointConnection) contains(id SegmentID, t float64) bool {
	for _, sc := range jc.Segments {
		if sc.Segment == id && sc.T == t {
			return true
		}
	}
	return false
}

// Eval picks one of the connection's segments given a direction expressed in
// the connection's local frame, where ⟨1, 0⟩ is the shared exit direction.
//
// The directions around the exit are split into buckets 10° apart, centered on
// the exit direction: a direction pulling to the right picks the segments
// turning right, a direction pulling to the left the segments turning left.
func (jc JointConnection) Eval(dir Vec2) SegmentConnection {
	n := len(jc.Segments)
	if n == 1 {
		return jc.Segments[0]
	}
	angle := dir.ScreenAngle()
	for i := range n - 1 {
		end := float64(2*(i+1)-n) * bucketAngle
		if angle < end {
			return jc.Segments[i]
		}
	}
	return jc.Segments[n-1]
}

// Joint is a place where segment ends meet. A joint with a single connection
// is a dead end.
type Joint struct {
	Connections []JointConnection
}

// NewJoint returns a joint where every attachment is its own connection.
func NewJoint(attachments ...SegmentConnection) Joint {
	conns := make([]JointConnection, len(attachments))
	for i, sc := range attachments {
		conns[i] = JointConnection{Segments: []SegmentConnection{sc}}
	}
	return Joint{Connections: conns}
}

// GroupConnections returns a joint for the given attachments, merging
// attachments that leave the joint in the same direction into one
// [JointConnection]. Connections appear in the order of their first
// attachment; within a connection segments are sorted by exit curvature, then
// by identifier.
func GroupConnections(curves CurveLookup, attachments ...SegmentConnection) Joint {
	type group struct {
		dir  Vec2
		segs []SegmentConnection
	}
	var groups []group
outer:
	for _, sc := range attachments {
		dir := sc.ExitDir(curves)
		for i := range groups {
			// Angle between the two unit vectors.
			if math.Abs(math.Atan2(groups[i].dir.Cross(dir), groups[i].dir.Dot(dir))) <= groupAngle {
				groups[i].segs = append(groups[i].segs, sc)
				continue outer
			}
		}
		groups = append(groups, group{dir: dir, segs: []SegmentConnection{sc}})
	}

	j := Joint{Connections: make([]JointConnection, len(groups))}
	for i, g := range groups {
		slices.SortStableFunc(g.segs, func(a, b SegmentConnection) int {
			return cmp.Or(
				cmp.Compare(a.exitCurvature(curves), b.exitCurvature(curves)),
				cmp.Compare(a.Segment, b.Segment),
			)
		})
		j.Connections[i] = JointConnection{Segments: g.segs}
	}
	return j
}

// IsDeadEnd reports whether the joint has fewer than two connections.
func (j Joint) IsDeadEnd() bool {
	return len(j.Connections) < 2
}

// Attachments returns the total number of segment ends meeting at the joint.
func (j Joint) Attachments() int {
	n := 0
	for _, c := range j.Connections {
		n += len(c.Segments)
	}
	return n
}

// EnterResult is where a dot continues after passing through a joint.
type EnterResult struct {
	Next SegmentID
	// T is 0 or 1, the end of Next at the joint.
	T float64
	// V is the signed velocity along Next.
	V float64
}

// Enter passes a dot through the joint.
//
// The dot arrives on segment from at parameter tEnter with signed velocity v.
// If v is zero the direction of travel is inferred from tEnter: arriving at
// t = 1 means moving forward, at t = 0 moving backward. force is the external
// force acting on the dot; only its direction matters.
//
// Among the connections other than the one the dot arrives through, Enter
// prefers those that don't point backwards relative to the direction of
// travel, and among those the one whose exit direction best aligns with the
// force. If every exit points backwards the best aligned one is used anyway.
// The dot keeps its speed, projected onto the new segment's direction, which
// can slow it down or reverse it.
//
// At a dead end the dot stays where it is and stops.
func (j Joint) Enter(v float64, force Vec2, from SegmentID, tEnter float64, curves CurveLookup) EnterResult {
	if j.IsDeadEnd() {
		return EnterResult{Next: from, T: tEnter, V: 0}
	}

	travel := sign(v)
	if travel == 0 {
		travel = 1
		if tEnter == 0 {
			travel = -1
		}
	}
	enterDir := curves.Curve(from).Dir(tEnter).Mul(travel)
	forceDir := force.NormalizeOrZero()

	var (
		bestFront, bestAny         *JointConnection
		bestFrontDot, bestAnyDot   float64
		bestFrontExit, bestAnyExit Vec2
	)
	for i := range j.Connections {
		conn := &j.Connections[i]
		if conn.contains(from, tEnter) {
			continue
		}
		exit := conn.Segments[0].ExitDir(curves)
		alignment := forceDir.Dot(exit)
		if enterDir.Dot(exit) > InFrontEpsilon {
			if bestFront == nil || alignment > bestFrontDot {
				bestFront, bestFrontDot, bestFrontExit = conn, alignment, exit
			}
		}
		if bestAny == nil || alignment > bestAnyDot {
			bestAny, bestAnyDot, bestAnyExit = conn, alignment, exit
		}
	}

	next, nextExit := bestFront, bestFrontExit
	if next == nil {
		next, nextExit = bestAny, bestAnyExit
	}
	if next == nil {
		// Every connection is the one we came from.
		return EnterResult{Next: from, T: tEnter, V: 0}
	}

	local := RotationTo(nextExit).Inverse().Apply(forceDir)
	sc := next.Eval(local)

	// The group shares an exit direction, but the chosen segment may run
	// either way; its own tangent gives the velocity's sign.
	d := curves.Curve(sc.Segment).Dir(sc.T)
	return EnterResult{
		Next: sc.Segment,
		T:    sc.T,
		V:    math.Abs(v) * d.Dot(enterDir),
	}
}
