package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"honnef.co/go/track"
)

func TestPainterLine(t *testing.T) {
	c := track.LineCurve(track.Line{P0: track.Pt(10, 10), P1: track.Pt(30, 10)})
	s := Painter{}.DrawSegmentShape(c, 4, 0x102030)

	if d := cmp.Diff(image.Pt(8, 8), s.Origin); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(image.Rect(0, 0, 24, 4), s.Image.Bounds()); d != "" {
		t.Error(d)
	}
	if got := s.Image.RGBAAt(12, 1); got != RGBA(0x102030) {
		t.Errorf("got %v inside the stroke, want %v", got, RGBA(0x102030))
	}
}

func TestPainterArc(t *testing.T) {
	// Quarter circle of radius 20 around (0, -20), from (0, 0) to (20, -20).
	c := track.NewCurveFromHeading(track.Pt(0, 0), track.Vec(1, 0), 1.0/20, 10*math.Pi)
	s := Painter{}.DrawSegmentShape(c, 2, 0xffffff)

	at := func(x, y float64) uint8 {
		return s.Image.RGBAAt(int(math.Floor(x))-s.Origin.X, int(math.Floor(y))-s.Origin.Y).A
	}
	// On the arc, at 45°.
	mid := c.Eval(0.5)
	if a := at(mid.X, mid.Y); a == 0 {
		t.Errorf("pixel on the arc at %v is transparent", mid)
	}
	// The arc's center is far from the stroke.
	if a := at(1, -19); a != 0 {
		t.Errorf("pixel near the arc's center has alpha %d", a)
	}
}

func TestPainterDegenerateAxis(t *testing.T) {
	// Zero line width on a horizontal line still yields a usable image.
	c := track.LineCurve(track.Line{P0: track.Pt(0, 0), P1: track.Pt(10, 0)})
	s := Painter{}.DrawSegmentShape(c, 0, 0xffffff)
	if b := s.Image.Bounds(); b.Dx() < 1 || b.Dy() < 1 {
		t.Errorf("got empty image %v", b)
	}
}

func testCanvas(opts Options) *Canvas {
	g := track.NewGraph()
	track.NewBuilder(track.Pt(10, 10), track.Vec(1, 0)).Segment(20, 0).Build(g, false)
	return NewCanvas(g, opts)
}

func TestCanvasRender(t *testing.T) {
	c := testCanvas(Options{LineWidth: 4, TrackColor: 0x102030, Margin: 10, MarkerRadius: 3})
	c.PlaceMarker(0, track.Pt(5, 0))

	img := c.Render()
	if d := cmp.Diff(image.Rect(0, 0, 44, 24), img.Bounds()); d != "" {
		t.Fatal(d)
	}
	for _, tt := range []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"background", 0, 0, Background},
		{"track", 22, 12, RGBA(0x102030)},
		{"marker", 7, 2, MarkerColor},
	} {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: got %v at (%d, %d), want %v", tt.name, got, tt.x, tt.y, tt.want)
		}
	}
}

func TestCanvasLabel(t *testing.T) {
	c := testCanvas(Options{LineWidth: 4, Margin: 20})
	plain := c.Render()
	c.SetLabel("tick 1")
	labeled := c.Render()
	if bytes.Equal(plain.Pix, labeled.Pix) {
		t.Error("label didn't change the image")
	}
}

func TestCanvasZoomAndPNG(t *testing.T) {
	c := testCanvas(Options{LineWidth: 4, Margin: 10, Zoom: 2})
	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(image.Rect(0, 0, 88, 48), img.Bounds()); d != "" {
		t.Error(d)
	}
}
