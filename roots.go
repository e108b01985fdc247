package track

import (
	"iter"
	"math"
)

// Roots holds up to two real roots of a linear or quadratic equation. It is a
// plain value, so solving in the integrator's inner loop doesn't allocate.
type Roots struct {
	r [2]float64
	n int
}

// Len returns the number of roots, 0, 1 or 2.
func (r Roots) Len() int { return r.n }

// At returns the i-th root. Roots are sorted in increasing order.
func (r Roots) At(i int) float64 {
	if i < 0 || i >= r.n {
		panic("root index out of range")
	}
	return r.r[i]
}

// All returns an iterator over the roots in increasing order. The iterator can
// be ranged over any number of times.
func (r Roots) All() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for i := range r.n {
			if !yield(r.r[i]) {
				return
			}
		}
	}
}

// SolveLinear returns the root of a·x + b = 0. It reports false if a is zero,
// in which case the equation has no unique root.
func SolveLinear(a, b float64) (float64, bool) {
	if a == 0 {
		return 0, false
	}
	return -b / a, true
}

// SolveQuadratic returns the real roots of a·x² + b·x + c = 0.
//
// If a is zero the equation is solved as the linear equation b·x + c = 0. A
// negative discriminant yields no roots, a zero discriminant a single root
// -b/2a, and a positive discriminant two roots.
func SolveQuadratic(a, b, c float64) Roots {
	if a == 0 {
		if x, ok := SolveLinear(b, c); ok {
			return Roots{r: [2]float64{x}, n: 1}
		}
		return Roots{}
	}

	disc := b*b - 4*a*c
	switch {
	case disc > 0:
	case disc == 0:
		return Roots{r: [2]float64{-b / (2 * a)}, n: 1}
	default:
		// Negative or NaN.
		return Roots{}
	}

	// See https://math.stackexchange.com/questions/866331; this form avoids
	// cancellation when b² dominates 4ac. q is never zero here.
	q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
	r1 := q / a
	r2 := c / q
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return Roots{r: [2]float64{r1, r2}, n: 2}
}
