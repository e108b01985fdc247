package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"honnef.co/go/track"
)

var (
	Background  = color.RGBA{0xb1, 0xaf, 0xa8, 0xff}
	MarkerColor = color.RGBA{0x31, 0x2f, 0x28, 0xff}
	labelColor  = color.RGBA{0x31, 0x2f, 0x28, 0xff}
)

type Options struct {
	LineWidth    float64
	TrackColor   uint32
	MarkerRadius float64
	// Margin is the number of pixels around the track's bounding box.
	Margin int
	// Zoom scales the output image. Values above 1 are upscaled with
	// Catmull-Rom filtering.
	Zoom float64
}

// Canvas draws a world: segment sprites prepared once, then dot markers on
// every frame. It implements track.Renderer.
type Canvas struct {
	opts    Options
	origin  image.Point
	size    image.Point
	sprites []*Sprite
	markers []track.Point
	label   string
}

var _ track.Renderer = (*Canvas)(nil)

// NewCanvas strokes every segment of g and returns a canvas large enough to
// hold them.
func NewCanvas(g *track.Graph, opts Options) *Canvas {
	if opts.MarkerRadius <= 0 {
		opts.MarkerRadius = 5
	}
	if opts.Zoom <= 0 {
		opts.Zoom = 1
	}
	bounds := g.Bounds().Inflate(opts.LineWidth/2 + float64(opts.Margin))
	origin := image.Pt(int(math.Floor(bounds.X0)), int(math.Floor(bounds.Y0)))
	return &Canvas{
		opts:    opts,
		origin:  origin,
		size:    image.Pt(int(math.Ceil(bounds.X1))-origin.X, int(math.Ceil(bounds.Y1))-origin.Y),
		sprites: track.DrawShapes[*Sprite](g, Painter{}, opts.LineWidth, opts.TrackColor),
	}
}

// PlaceMarker implements track.Renderer.
func (c *Canvas) PlaceMarker(dot int, p track.Point) {
	if dot >= len(c.markers) {
		c.markers = append(c.markers, make([]track.Point, dot+1-len(c.markers))...)
	}
	c.markers[dot] = p
}

// SetLabel sets text drawn in the top-left corner of every frame.
func (c *Canvas) SetLabel(s string) { c.label = s }

// Render composites the track and the markers.
func (c *Canvas) Render() *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: c.size})
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	for _, s := range c.sprites {
		s.blit(img, c.origin)
	}

	if len(c.markers) > 0 {
		z := vector.NewRasterizer(c.size.X, c.size.Y)
		for _, p := range c.markers {
			rel := track.Pt(p.X-float64(c.origin.X), p.Y-float64(c.origin.Y))
			fillCircle(z, rel, c.opts.MarkerRadius)
		}
		z.DrawOp = draw.Over
		z.Draw(img, img.Bounds(), image.NewUniform(MarkerColor), image.Point{})
	}

	if c.label != "" {
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(labelColor),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(4, 4+basicfont.Face7x13.Ascent),
		}
		d.DrawString(c.label)
	}

	if c.opts.Zoom == 1 {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0,
		int(math.Round(float64(c.size.X)*c.opts.Zoom)),
		int(math.Round(float64(c.size.Y)*c.opts.Zoom))))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}

// WritePNG renders a frame and encodes it to w.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.Render()); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return nil
}
