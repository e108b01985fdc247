package track

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// World owns a graph and the dots moving on it.
//
// The graph is read-only while stepping. Dots don't interact, so with Workers
// greater than one they are advanced in parallel.
type World struct {
	Graph      *Graph
	Integrator *Integrator
	Dots       []Dot
	// Workers bounds the number of goroutines used by Step. Values below 2
	// step sequentially.
	Workers int
}

// NewWorld returns a world for g with a default integrator.
func NewWorld(g *Graph) *World {
	return &World{Graph: g, Integrator: NewIntegrator(g)}
}

// Spawn adds a dot and returns its index.
func (w *World) Spawn(d Dot) int {
	w.Graph.mustSegment(d.Segment)
	w.Dots = append(w.Dots, d)
	return len(w.Dots) - 1
}

// DotTransition is a [Transition] made by a particular dot.
type DotTransition struct {
	Dot int
	Transition
}

// StepReport summarizes a call to [World.Step].
type StepReport struct {
	Transitions []DotTransition
	// Exhausted lists the dots that hit the depth limit.
	Exhausted []int
}

// Step ticks every dot by dt under the given force. It only fails if ctx is
// canceled before all dots have been stepped; dots already stepped keep their
// new state.
func (w *World) Step(ctx context.Context, dt float64, force Vec2) (StepReport, error) {
	reports := make([]TickReport, len(w.Dots))
	if w.Workers < 2 {
		for i := range w.Dots {
			if err := ctx.Err(); err != nil {
				return collect(reports), err
			}
			reports[i] = w.Integrator.Tick(&w.Dots[i], dt, force)
		}
		return collect(reports), nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.Workers)
	for i := range w.Dots {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = w.Integrator.Tick(&w.Dots[i], dt, force)
			return nil
		})
	}
	err := eg.Wait()
	return collect(reports), err
}

func collect(reports []TickReport) StepReport {
	var out StepReport
	for i, r := range reports {
		for _, tr := range r.Transitions {
			out.Transitions = append(out.Transitions, DotTransition{Dot: i, Transition: tr})
		}
		if r.Exhausted {
			out.Exhausted = append(out.Exhausted, i)
		}
	}
	return out
}

// Clock supplies the time elapsed since the previous tick.
type Clock interface {
	DeltaTime() float64
}

// ForceSource supplies the external force for the current tick.
type ForceSource interface {
	Force() Vec2
}

// Renderer places a dot's marker at a world position.
type Renderer interface {
	PlaceMarker(dot int, p Point)
}

// ShapeDrawer turns a segment's curve into a drawable, once per segment at
// build time.
type ShapeDrawer[H any] interface {
	DrawSegmentShape(c Curve, lineWidth float64, color uint32) H
}

// DrawShapes calls d for every segment of g and returns the drawables indexed
// by segment identifier.
func DrawShapes[H any](g *Graph, d ShapeDrawer[H], lineWidth float64, color uint32) []H {
	out := make([]H, g.NumSegments())
	for i := range out {
		out[i] = d.DrawSegmentShape(g.Curve(SegmentID(i)), lineWidth, color)
	}
	return out
}

// ConstantForce is a ForceSource that always returns the same force.
type ConstantForce Vec2

func (f ConstantForce) Force() Vec2 { return Vec2(f) }

// FixedClock is a Clock with a constant time step.
type FixedClock float64

func (c FixedClock) DeltaTime() float64 { return float64(c) }

// SystemClock is a Clock measuring wall time between calls. The first call
// returns 0. Steps longer than Max are clamped to Max, so that a stalled host
// doesn't produce one huge step.
type SystemClock struct {
	Max  time.Duration
	Now  func() time.Time
	last time.Time
}

// DeltaTime returns the wall time since the previous call, at most Max.
func (c *SystemClock) DeltaTime() float64 {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	t := now()
	if c.last.IsZero() {
		c.last = t
		return 0
	}
	d := t.Sub(c.last)
	c.last = t
	if c.Max > 0 && d > c.Max {
		d = c.Max
	}
	return d.Seconds()
}

// Simulation ties a world to its host collaborators.
type Simulation struct {
	World    *World
	Clock    Clock
	Force    ForceSource
	Renderer Renderer
}

// Tick reads the time step and force, steps the world and places every dot's
// marker.
func (s *Simulation) Tick(ctx context.Context) (StepReport, error) {
	dt := s.Clock.DeltaTime()
	rep, err := s.World.Step(ctx, dt, s.Force.Force())
	if err != nil {
		return rep, err
	}
	if s.Renderer != nil {
		for i, d := range s.World.Dots {
			s.Renderer.PlaceMarker(i, d.Position(s.World.Graph))
		}
	}
	return rep, nil
}
