// Package raster renders worlds to images.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"honnef.co/go/track"
)

// Sprite is a segment stroked into its own image, positioned in world space by
// Origin, the world position of the image's top-left pixel.
type Sprite struct {
	Image  *image.RGBA
	Origin image.Point
	Frame  track.Frame
}

// Painter strokes segments into sprites. It implements track.ShapeDrawer.
type Painter struct {
	// Step is the largest distance between two samples of an arc, in world
	// units. Defaults to 1.
	Step float64
}

var _ track.ShapeDrawer[*Sprite] = Painter{}

// RGBA converts a 0xRRGGBB color to an opaque color.RGBA.
func RGBA(c uint32) color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
}

// DrawSegmentShape strokes c with the given line width and color.
func (p Painter) DrawSegmentShape(c track.Curve, lineWidth float64, col uint32) *Sprite {
	frame := track.SpriteFrame(c, lineWidth)
	b := frame.Bounds
	origin := image.Pt(int(math.Floor(b.X0)), int(math.Floor(b.Y0)))
	size := image.Pt(int(math.Ceil(b.X1))-origin.X, int(math.Ceil(b.Y1))-origin.Y)
	// A rasterizer needs at least one pixel.
	size.X, size.Y = max(size.X, 1), max(size.Y, 1)

	step := p.Step
	if step <= 0 {
		step = 1
	}
	z := vector.NewRasterizer(size.X, size.Y)
	strokePath(z, c, lineWidth/2, step, track.Pt(float64(origin.X), float64(origin.Y)))

	img := image.NewRGBA(image.Rectangle{Max: size})
	z.Draw(img, img.Bounds(), image.NewUniform(RGBA(col)), image.Point{})
	return &Sprite{Image: img, Origin: origin, Frame: frame}
}

// strokePath adds the outline of c, offset by halfWidth on both sides, to z.
// Coordinates are relative to origin.
func strokePath(z *vector.Rasterizer, c track.Curve, halfWidth, step float64, origin track.Point) {
	n := c.SampleCount(step)
	left := make([]track.Point, n+1)
	right := make([]track.Point, n+1)
	for i := range n + 1 {
		t := float64(i) / float64(n)
		pt := c.Eval(t)
		normal := c.Dir(t).Perp().Mul(halfWidth)
		left[i] = pt.Translate(normal)
		right[i] = pt.Translate(normal.Negate())
	}

	rel := func(pt track.Point) (float32, float32) {
		return float32(pt.X - origin.X), float32(pt.Y - origin.Y)
	}
	z.MoveTo(rel(left[0]))
	for _, pt := range left[1:] {
		z.LineTo(rel(pt))
	}
	for i := len(right) - 1; i >= 0; i-- {
		z.LineTo(rel(right[i]))
	}
	z.ClosePath()
}

// fillCircle adds a disc to z.
func fillCircle(z *vector.Rasterizer, center track.Point, radius float64) {
	const segments = 24
	for i := range segments {
		a := 2 * math.Pi * float64(i) / segments
		x := float32(center.X + radius*math.Cos(a))
		y := float32(center.Y + radius*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

// blit composites the sprite onto dst, whose top-left pixel sits at world
// position dstOrigin.
func (s *Sprite) blit(dst draw.Image, dstOrigin image.Point) {
	r := s.Image.Bounds().Add(s.Origin.Sub(dstOrigin))
	draw.Draw(dst, r, s.Image, image.Point{}, draw.Over)
}
