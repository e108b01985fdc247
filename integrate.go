package track

import (
	"log/slog"
)

const (
	// DefaultMaxDepth bounds how many joints a dot may pass through, and how
	// many boundary events it may handle, in a single tick.
	DefaultMaxDepth = 10
	// DefaultDamping is the factor applied to a dot's velocity once per tick.
	DefaultDamping = 0.999
)

// Transition records a dot passing through a joint.
type Transition struct {
	Joint JointID
	From  SegmentID
	// FromT is the end of From at which the dot arrived, 0 or 1.
	FromT float64
	To    SegmentID
	ToT   float64
	VIn   float64
	VOut  float64
	// Branch is true if more than two segment ends meet at the joint.
	Branch bool
}

// TickReport describes what happened to one dot during one tick.
type TickReport struct {
	Transitions []Transition
	// Exhausted is true if the depth limit was hit and the rest of the tick's
	// time was dropped.
	Exhausted bool
	// Dropped is the amount of time that was dropped.
	Dropped float64
}

// Integrator advances dots along a graph using closed-form constant
// acceleration kinematics.
//
// The zero value is not usable; Graph must be set. Other zero fields fall back
// to their defaults.
type Integrator struct {
	Graph *Graph
	// MaxDepth bounds the number of boundary events per tick. Defaults to
	// DefaultMaxDepth.
	MaxDepth int
	// Damping multiplies the velocity once per tick. Defaults to DefaultDamping;
	// set NoDamping to disable it.
	Damping   float64
	NoDamping bool
	// Logger receives a warning when a dot exhausts its depth budget. Defaults
	// to slog.Default().
	Logger *slog.Logger
}

// NewIntegrator returns an integrator for g with default settings.
func NewIntegrator(g *Graph) *Integrator {
	return &Integrator{Graph: g}
}

func (in *Integrator) maxDepth() int {
	if in.MaxDepth > 0 {
		return in.MaxDepth
	}
	return DefaultMaxDepth
}

func (in *Integrator) damping() float64 {
	switch {
	case in.NoDamping:
		return 1
	case in.Damping > 0:
		return in.Damping
	default:
		return DefaultDamping
	}
}

func (in *Integrator) logger() *slog.Logger {
	if in.Logger != nil {
		return in.Logger
	}
	return slog.Default()
}

// Tick advances the dot by dt under the given force and then applies damping
// once.
func (in *Integrator) Tick(dot *Dot, dt float64, force Vec2) TickReport {
	var rep TickReport
	in.advance(dot, dt, force, 0, &rep)
	dot.V *= in.damping()
	return rep
}

// Advance moves the dot along the graph for dt units of time under the given
// force, passing through as many joints as it reaches. It doesn't apply
// damping. Transitions are appended to rep if it is non-nil.
func (in *Integrator) Advance(dot *Dot, dt float64, force Vec2, rep *TickReport) {
	if rep == nil {
		rep = &TickReport{}
	}
	in.advance(dot, dt, force, 0, rep)
}

func (in *Integrator) advance(dot *Dot, remaining float64, force Vec2, depth int, rep *TickReport) {
	// The last resting boundary transition, if the previous step was one.
	var prev wedge
	wedged := false

	// Explicit loop in place of tail recursion; each iteration is one level of
	// depth.
	for ; ; depth++ {
		if depth > in.maxDepth() {
			in.logger().Warn("dot exceeded joint depth, dropping rest of tick",
				"segment", dot.Segment, "t", dot.T, "v", dot.V, "remaining", remaining)
			rep.Exhausted = true
			rep.Dropped = remaining
			return
		}

		seg := in.Graph.Segment(dot.Segment)
		length := seg.Curve.Length()
		g := force.Dot(seg.Curve.Dir(dot.T))

		if g == 0 && dot.V == 0 {
			return
		}

		// Already at a boundary and moving, or pulled, through it.
		var jid JointID
		atBoundary := false
		if dot.T >= 1 && (dot.V > 0 || (dot.V == 0 && g > 0)) {
			dot.T, jid, atBoundary = 1, seg.EndJoint, true
		} else if dot.T <= 0 && (dot.V < 0 || (dot.V == 0 && g < 0)) {
			dot.T, jid, atBoundary = 0, seg.StartJoint, true
		}
		if atBoundary {
			from := wedge{seg: dot.Segment, t: dot.T, mark: len(rep.Transitions)}
			resting := dot.V == 0
			if !in.enter(dot, jid, force, rep) {
				return
			}
			if !resting || dot.V != 0 {
				wedged = false
				continue
			}
			// A resting dot pushed back to where it was one step ago is
			// wedged between two segments; neither move happened.
			if wedged && dot.Segment == prev.seg && dot.T == prev.t {
				rep.Transitions = rep.Transitions[:prev.mark]
				return
			}
			prev, wedged = from, true
			continue
		}
		wedged = false

		if remaining <= 0 {
			return
		}

		// t(τ) = t0 + (v·τ + ½·g·τ²)/length. Find the earliest τ in
		// (0, remaining] at which the dot leaves through either end. The
		// forward end is checked first and wins ties.
		a := 0.5 * g / length
		b := dot.V / length
		tau, end := 0.0, 0.0
		found := false
		for _, boundary := range [2]float64{1, 0} {
			for r := range SolveQuadratic(a, b, dot.T-boundary).All() {
				if r > 0 && r <= remaining && (!found || r < tau) {
					tau, end, found = r, boundary, true
				}
			}
		}

		if !found {
			dot.T += (dot.V*remaining + 0.5*g*remaining*remaining) / length
			dot.V += g * remaining
			dot.T = min(max(dot.T, 0), 1)
			return
		}

		dot.V += g * tau
		dot.T = end
		remaining -= tau
		wedged = false
		if !in.enter(dot, seg.JointAt(end), force, rep) {
			return
		}
	}
}

// wedge is where a resting dot stood before passing through a joint, and how
// many transitions had been reported by then.
type wedge struct {
	seg  SegmentID
	t    float64
	mark int
}

// enter passes the dot, which sits at an end of its segment, through the
// joint. It reports whether the dot's state changed.
func (in *Integrator) enter(dot *Dot, jid JointID, force Vec2, rep *TickReport) bool {
	joint := in.Graph.Joint(jid)
	res := joint.Enter(dot.V, force, dot.Segment, dot.T, in.Graph)
	if res.Next == dot.Segment && res.T == dot.T && res.V == dot.V {
		return false
	}
	if res.Next != dot.Segment || res.T != dot.T {
		rep.Transitions = append(rep.Transitions, Transition{
			Joint:  jid,
			From:   dot.Segment,
			FromT:  dot.T,
			To:     res.Next,
			ToT:    res.T,
			VIn:    dot.V,
			VOut:   res.V,
			Branch: joint.Attachments() > 2,
		})
	}
	dot.Segment, dot.T, dot.V = res.Next, res.T, res.V
	return true
}
