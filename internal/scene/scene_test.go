package scene

import (
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"honnef.co/go/track"
)

func TestNames(t *testing.T) {
	want := []string{"branch", "circle", "loop", "rail", "threeway"}
	if d := cmp.Diff(want, Names()); d != "" {
		t.Error(d)
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := Load("nope", track.NewGraph()); err == nil {
		t.Error("expected error")
	}
	if _, err := NewWorld("nope"); err == nil {
		t.Error("expected error")
	}
}

func TestScenesRun(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			w, err := NewWorld(name)
			if err != nil {
				t.Fatal(err)
			}
			if len(w.Dots) == 0 {
				t.Fatal("scene has no dots")
			}
			w.Integrator.Logger = slog.New(slog.DiscardHandler)
			for i := range 300 {
				force := track.ForceFromTilt(math.Sin(float64(i)/40), 50)
				rep, err := w.Step(context.Background(), 1.0/30, force)
				if err != nil {
					t.Fatal(err)
				}
				if len(rep.Exhausted) != 0 {
					t.Fatalf("tick %d: dots %v exhausted the depth limit", i, rep.Exhausted)
				}
			}
			for i, d := range w.Dots {
				if d.T < 0 || d.T > 1 || math.IsNaN(d.V) {
					t.Errorf("dot %d in invalid state %+v", i, d)
				}
				if d.Position(w.Graph).IsNaN() {
					t.Errorf("dot %d has no position", i)
				}
			}
		})
	}
}

func TestLoopIsContinuous(t *testing.T) {
	g := track.NewGraph()
	if _, err := Load("loop", g); err != nil {
		t.Fatal(err)
	}
	n := g.NumSegments()
	if n != 7 {
		t.Fatalf("got %d segments, want 7", n)
	}
	last := g.Curve(track.SegmentID(n - 1))
	if d := cmp.Diff(track.Pt(218, 20), last.Eval(1), cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("loop doesn't end at its start: %s", d)
	}
	for i := range n {
		cur := g.Curve(track.SegmentID(i))
		next := g.Curve(track.SegmentID((i + 1) % n))
		opt := cmpopts.EquateApprox(0, 1e-9)
		if d := cmp.Diff(cur.Eval(1), next.Eval(0), opt); d != "" {
			t.Errorf("segments %d and %d don't meet: %s", i, (i+1)%n, d)
		}
		if d := cmp.Diff(cur.Dir(1), next.Dir(0), opt); d != "" {
			t.Errorf("segments %d and %d meet at an angle: %s", i, (i+1)%n, d)
		}
	}
}

func TestThreeWayGrouping(t *testing.T) {
	g := track.NewGraph()
	if _, err := Load("threeway", g); err != nil {
		t.Fatal(err)
	}
	// Segments in order of creation: top, left, right, left-top arc, right-top
	// arc, left-right line.
	const (
		top track.SegmentID = iota
		left
		right
		leftTop
		rightTop
		leftRight
	)
	want := map[track.SegmentID]track.Joint{
		top: {Connections: []track.JointConnection{
			{Segments: []track.SegmentConnection{{Segment: top, T: 1}}},
			{Segments: []track.SegmentConnection{{Segment: leftTop, T: 1}, {Segment: rightTop, T: 1}}},
		}},
		left: {Connections: []track.JointConnection{
			{Segments: []track.SegmentConnection{{Segment: left, T: 1}}},
			{Segments: []track.SegmentConnection{{Segment: leftRight, T: 0}, {Segment: leftTop, T: 0}}},
		}},
		right: {Connections: []track.JointConnection{
			{Segments: []track.SegmentConnection{{Segment: right, T: 1}}},
			{Segments: []track.SegmentConnection{{Segment: rightTop, T: 0}, {Segment: leftRight, T: 1}}},
		}},
	}
	for stub, joint := range want {
		got := g.Joint(g.Segment(stub).EndJoint)
		if d := cmp.Diff(joint, got); d != "" {
			t.Errorf("joint at the end of segment %d: %s", stub, d)
		}
	}
}

func TestBranchMergesOntoExit(t *testing.T) {
	w, err := NewWorld("branch")
	if err != nil {
		t.Fatal(err)
	}
	w.Integrator.NoDamping = true
	// Pull along the top line toward the joint, then along the exit.
	w.Dots[0].V = 50
	var transitions []track.DotTransition
	for range 60 {
		rep, err := w.Step(context.Background(), 1.0/30, track.Vec(1, 0))
		if err != nil {
			t.Fatal(err)
		}
		transitions = append(transitions, rep.Transitions...)
	}
	if len(transitions) != 1 {
		t.Fatalf("got transitions %+v, want exactly one", transitions)
	}
	if tr := transitions[0]; tr.To != 2 || tr.ToT != 0 || !tr.Branch {
		t.Errorf("got transition %+v, want onto segment 2 at t = 0", tr)
	}
}
