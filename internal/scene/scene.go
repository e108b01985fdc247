// Package scene provides built-in track layouts.
package scene

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"honnef.co/go/track"
)

type builder func(g *track.Graph) []track.Dot

var scenes = map[string]builder{
	"loop":     loop,
	"branch":   branch,
	"threeway": threeWay,
	"circle":   circle,
	"rail":     rail,
}

// Names returns the names of all scenes, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(scenes))
}

// Load adds the named scene's segments and joints to g and returns the dots
// that start on it.
func Load(name string, g *track.Graph) ([]track.Dot, error) {
	b, ok := scenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q, want one of %v", name, Names())
	}
	dots := b(g)
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}
	return dots, nil
}

// NewWorld returns a world holding the named scene.
func NewWorld(name string) (*track.World, error) {
	g := track.NewGraph()
	dots, err := Load(name, g)
	if err != nil {
		return nil, err
	}
	w := track.NewWorld(g)
	for _, d := range dots {
		w.Spawn(d)
	}
	return w, nil
}

// loop is a closed chain of lines and arcs.
func loop(g *track.Graph) []track.Dot {
	ch := track.NewBuilder(track.Pt(218, 20), track.Vec(1, 0)).
		Push(track.LineSection(50)).
		Push(track.ArcSection(50, -0.25)).
		Push(track.LineSection(50)).
		Push(track.ArcSection(25, -0.5)).
		Push(track.ArcSection(25, 0.5)).
		Push(track.ArcSection(100, -0.75)).
		Push(track.LineSection(100)).
		Build(g, true)

	const n = 4
	dots := make([]track.Dot, n)
	for i := range dots {
		seg, t := ch.Locate(ch.Length*float64(i)/n, g)
		dots[i] = track.Dot{Segment: seg, T: t, V: 5}
	}
	return dots
}

// branch is a >- fork: two lines converging on a third.
func branch(g *track.Graph) []track.Dot {
	mid := g.NewJoint()
	top := g.AddSegment(track.LineCurve(track.Line{P0: track.Pt(20, 20), P1: track.Pt(100, 100)}), g.NewJoint(), mid)
	bottom := g.AddSegment(track.LineCurve(track.Line{P0: track.Pt(20, 180), P1: track.Pt(100, 100)}), g.NewJoint(), mid)
	right := g.AddSegment(track.LineCurve(track.Line{P0: track.Pt(100, 100), P1: track.Pt(200, 100)}), mid, g.NewJoint())

	deadEnds(g, top, bottom)
	g.SetJoint(g.Segment(right).EndJoint, track.NewJoint(track.SegmentConnection{Segment: right, T: 1}))
	g.SetJoint(mid, track.GroupConnections(g,
		track.SegmentConnection{Segment: top, T: 1},
		track.SegmentConnection{Segment: bottom, T: 1},
		track.SegmentConnection{Segment: right, T: 0},
	))
	return []track.Dot{{Segment: top, T: 0.5}}
}

// threeWay is a triangle of one straight and two quarter arcs. Each corner
// has a stub line leading into it, and at each corner two of the triangle's
// sides leave in the same direction.
func threeWay(g *track.Graph) []track.Dot {
	const scale = 50.0
	at := func(x, y float64) track.Point {
		return track.Pt(100+x*scale, 50+y*scale)
	}
	topJ, leftJ, rightJ := g.NewJoint(), g.NewJoint(), g.NewJoint()

	top := g.AddSegment(track.LineCurve(track.Line{P0: at(2, 0), P1: at(2, 1)}), g.NewJoint(), topJ)
	left := g.AddSegment(track.LineCurve(track.Line{P0: at(0, 2), P1: at(1, 2)}), g.NewJoint(), leftJ)
	right := g.AddSegment(track.LineCurve(track.Line{P0: at(4, 2), P1: at(3, 2)}), g.NewJoint(), rightJ)
	leftTop := g.AddSegment(track.ArcCurve(track.Arc{
		Center:     at(1, 1),
		Radius:     scale,
		StartAngle: -math.Pi / 2,
		EndAngle:   0,
	}), leftJ, topJ)
	rightTop := g.AddSegment(track.ArcCurve(track.Arc{
		Center:     at(3, 1),
		Radius:     scale,
		StartAngle: -math.Pi / 2,
		EndAngle:   -math.Pi,
	}), rightJ, topJ)
	leftRight := g.AddSegment(track.LineCurve(track.Line{P0: at(1, 2), P1: at(3, 2)}), leftJ, rightJ)

	deadEnds(g, top, left, right)
	g.SetJoint(topJ, track.GroupConnections(g,
		track.SegmentConnection{Segment: top, T: 1},
		track.SegmentConnection{Segment: leftTop, T: 1},
		track.SegmentConnection{Segment: rightTop, T: 1},
	))
	g.SetJoint(leftJ, track.GroupConnections(g,
		track.SegmentConnection{Segment: left, T: 1},
		track.SegmentConnection{Segment: leftRight, T: 0},
		track.SegmentConnection{Segment: leftTop, T: 0},
	))
	g.SetJoint(rightJ, track.GroupConnections(g,
		track.SegmentConnection{Segment: right, T: 1},
		track.SegmentConnection{Segment: rightTop, T: 0},
		track.SegmentConnection{Segment: leftRight, T: 1},
	))

	dots := make([]track.Dot, 10)
	for i := range dots {
		dots[i] = track.Dot{Segment: left, T: float64(i) * 0.1}
	}
	return dots
}

// circle is a single full-circle arc whose ends meet at one joint.
func circle(g *track.Graph) []track.Dot {
	ch := track.NewBuilder(track.Pt(275, 100), track.Vec(0, -1)).
		Push(track.ArcSection(75, 1)).
		Build(g, true)
	return []track.Dot{{Segment: ch.Segments[0]}}
}

// rail is a single line whose ends meet at one joint, so a dot leaving one
// end reappears at the other.
func rail(g *track.Graph) []track.Dot {
	ch := track.NewBuilder(track.Pt(0, 0), track.Vec(1, 0)).
		Segment(100, 0).
		Build(g, true)
	return []track.Dot{{Segment: ch.Segments[0], V: 10}}
}

// deadEnds gives each segment a dead-end joint at its start.
func deadEnds(g *track.Graph, segs ...track.SegmentID) {
	for _, s := range segs {
		g.SetJoint(g.Segment(s).StartJoint, track.NewJoint(track.SegmentConnection{Segment: s, T: 0}))
	}
}
