package termui

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Crank is the tilt input. Key presses move its target angle in steps; the
// angle used for the force follows the target through a critically damped
// spring, so a key press tips the world over a few frames instead of at once.
type Crank struct {
	// Step is the change of the target angle per key press, in radians.
	Step float64
	// Limit bounds the target angle to [-Limit, Limit]. Zero means no bound.
	Limit float64

	spring harmonica.Spring
	target float64
	angle  float64
	vel    float64
}

// NewCrank returns a level crank whose spring advances by frame on every
// update.
func NewCrank(frame time.Duration, step float64) *Crank {
	return &Crank{
		Step:   step,
		spring: harmonica.NewSpring(frame.Seconds(), 6.0, 1.0),
	}
}

// Turn moves the target by n steps; positive n turns clockwise.
func (c *Crank) Turn(n int) {
	c.target += float64(n) * c.Step
	if c.Limit > 0 {
		c.target = min(max(c.target, -c.Limit), c.Limit)
	}
}

// Reset levels the crank.
func (c *Crank) Reset() {
	c.target = 0
}

// Update advances the spring by one frame and returns the smoothed angle.
func (c *Crank) Update() float64 {
	c.angle, c.vel = c.spring.Update(c.angle, c.vel, c.target)
	if math.Abs(c.angle-c.target) < 1e-6 && math.Abs(c.vel) < 1e-6 {
		c.angle, c.vel = c.target, 0
	}
	return c.angle
}

// Angle returns the smoothed angle.
func (c *Crank) Angle() float64 { return c.angle }

// Target returns the angle the crank is settling toward.
func (c *Crank) Target() float64 { return c.target }
