package track

// Frame describes where a segment's sprite goes.
type Frame struct {
	// Bounds is the curve's bounding box grown by half the line width on every
	// side, the area a stroked rendering of the curve covers.
	Bounds Rect
	// AnchorX and AnchorY locate the curve's start point within Bounds, as
	// fractions of its width and height. An axis along which the curve has no
	// extent is anchored at 0.5.
	AnchorX, AnchorY float64
}

// SpriteFrame computes the frame for a sprite of c stroked with lineWidth.
func SpriteFrame(c Curve, lineWidth float64) Frame {
	bbox := c.BoundingBox()
	start := c.Eval(0)
	f := Frame{Bounds: bbox.Inflate(lineWidth / 2), AnchorX: 0.5, AnchorY: 0.5}
	if bbox.X0 != bbox.X1 {
		f.AnchorX = inverseLerp(f.Bounds.X0, f.Bounds.X1, start.X)
	}
	if bbox.Y0 != bbox.Y1 {
		f.AnchorY = inverseLerp(f.Bounds.Y0, f.Bounds.Y1, start.Y)
	}
	return f
}

// Anchor returns the anchor point in world space.
func (f Frame) Anchor() Point {
	return Point{
		X: f.Bounds.X0 + f.AnchorX*f.Bounds.Width(),
		Y: f.Bounds.Y0 + f.AnchorY*f.Bounds.Height(),
	}
}

func inverseLerp(a, b, v float64) float64 {
	return (v - a) / (b - a)
}
