package termui

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"honnef.co/go/track"
)

// Viewport maps world space onto terminal cells. Cells are about twice as tall
// as they are wide, so a cell covers Scale world units horizontally and
// 2·Scale vertically.
type Viewport struct {
	Origin track.Point
	Scale  float64
}

// FitViewport returns a viewport showing r with a one cell margin.
func FitViewport(r track.Rect, scale float64) Viewport {
	return Viewport{
		Origin: track.Pt(r.X0-scale, r.Y0-2*scale),
		Scale:  scale,
	}
}

// Cell returns the cell containing p.
func (v Viewport) Cell(p track.Point) (x, y int) {
	return int(math.Floor((p.X - v.Origin.X) / v.Scale)),
		int(math.Floor((p.Y - v.Origin.Y) / (2 * v.Scale)))
}

type cell struct{ x, y int }

// Shape is a segment rendered to cells, computed once when the scene is
// loaded.
type Shape struct {
	cells []cell
	style tcell.Style
}

// Len returns the number of cells the shape covers.
func (s Shape) Len() int { return len(s.cells) }

// shapeDrawer implements track.ShapeDrawer for a viewport.
type shapeDrawer Viewport

var _ track.ShapeDrawer[Shape] = shapeDrawer{}

// DrawSegmentShape samples c and collects the cells along it. Terminal cells
// are far wider than any track, so lineWidth is ignored.
func (d shapeDrawer) DrawSegmentShape(c track.Curve, lineWidth float64, color uint32) Shape {
	v := Viewport(d)
	s := Shape{style: tcell.StyleDefault.Foreground(tcell.NewHexColor(int32(color & 0xffffff)))}
	seen := map[cell]bool{}
	add := func(x, y int) {
		if k := (cell{x, y}); !seen[k] {
			seen[k] = true
			s.cells = append(s.cells, k)
		}
	}

	var prevX, prevY int
	first := true
	for p := range c.Sample(c.SampleCount(v.Scale / 2)) {
		x, y := v.Cell(p)
		if first {
			add(x, y)
			first = false
		} else {
			walk(prevX, prevY, x, y, add)
		}
		prevX, prevY = x, y
	}
	return s
}

// walk calls f for every cell on the straight run from (x0, y0) to (x1, y1),
// excluding the first.
func walk(x0, y0, x1, y1 int, f func(x, y int)) {
	dx, dy := x1-x0, y1-y0
	n := max(abs(dx), abs(dy))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		f(x0+int(math.Round(t*float64(dx))), y0+int(math.Round(t*float64(dy))))
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
