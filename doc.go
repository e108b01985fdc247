// Package track simulates dots sliding along a track made of straight lines and
// circular arcs, under an external force such as tilted gravity.
//
// # Coordinates
//
// World space is y-down, as on screen. Angles of arcs and of [Vec2.ScreenAngle]
// grow counter-clockwise as seen on screen. Positive curvature means a left
// turn for something travelling in the direction of increasing parameter.
//
// # Curves, segments and joints
//
// A [Curve] is either a [Line] or an [Arc], parametrized over t ∈ [0, 1] with
// closed-form position, unit tangent, length and bounding box. A [Graph] stores
// curves as segments, and joints where segment ends meet. Joints group the
// segments that leave them in the same direction into connections, which is how
// a line and a tangent arc form a branch.
//
// Tracks are usually laid out with a [Builder], which chains sections so that
// each starts where and how the previous one ended.
//
// # Motion
//
// A [Dot] sits on one segment at a parameter and moves along it with a signed
// velocity. [Integrator.Tick] advances a dot in closed form: the force's
// tangential component accelerates it uniformly along the current segment, and
// the time at which it reaches either end is the smallest positive root of a
// quadratic. At an end the dot passes through the joint with [Joint.Enter],
// which chooses the outgoing segment, and continues with the time left.
//
// A [World] steps several dots at once; a [Simulation] connects a world to a
// host that supplies time and force and displays the dots.
package track
