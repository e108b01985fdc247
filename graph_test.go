package track

import (
	"strings"
	"testing"
)

func TestGraphValidate(t *testing.T) {
	g := NewGraph()
	j0, j1 := g.NewJoint(), g.NewJoint()
	s0 := g.AddSegment(LineCurve(Line{Pt(0, 0), Pt(10, 0)}), j0, j1)
	s1 := g.AddSegment(LineCurve(Line{Pt(10, 0), Pt(10, 0)}), j1, 7)
	g.SetJoint(j0, NewJoint(SegmentConnection{Segment: s0, T: 1}))
	g.SetJoint(j1, Joint{Connections: []JointConnection{
		{Segments: []SegmentConnection{{Segment: s0, T: 1}}},
		{Segments: []SegmentConnection{{Segment: s1, T: 0.5}}},
		{Segments: []SegmentConnection{{Segment: 9, T: 0}}},
		{},
	}})

	err := g.Validate()
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{
		"segment 1: length 0 is not positive",
		"segment 1: joint 7 not found",
		"joint 0: segment 0 at t = 1 belongs to joint 1",
		"joint 1: segment 1 attached at t = 0.5",
		"joint 1: segment 9 not found",
		"joint 1: empty connection",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q doesn't mention %q", err, want)
		}
	}
}

func TestGraphLookupPanics(t *testing.T) {
	g := NewGraph()
	for name, f := range map[string]func(){
		"segment": func() { g.Segment(0) },
		"curve":   func() { g.Curve(-1) },
		"joint":   func() { g.Joint(3) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", name)
				}
			}()
			f()
		}()
	}
}

func TestGraphBounds(t *testing.T) {
	g := NewGraph()
	diff(t, Rect{}, g.Bounds())
	NewBuilder(Pt(0, 0), Vec(1, 0)).
		Segment(100, 0).
		Push(ArcSection(50, 0.5)).
		Build(g, false)
	diff(t, Rect{0, -100, 150, 0}, g.Bounds(), approx(1e-9))
}

func TestSegmentJointAt(t *testing.T) {
	s := Segment{StartJoint: 3, EndJoint: 4}
	if s.JointAt(0) != 3 || s.JointAt(1) != 4 {
		t.Errorf("got joints %d and %d, want 3 and 4", s.JointAt(0), s.JointAt(1))
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	s.JointAt(0.5)
}
