package termui

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"honnef.co/go/track"
	"honnef.co/go/track/internal/scene"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := screen.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return 0
	}
	return c.Runes[0]
}

func TestCrankSettles(t *testing.T) {
	c := NewCrank(time.Second/30, 0.1)
	c.Turn(3)
	if got := c.Target(); math.Abs(got-0.3) > 1e-12 {
		t.Fatalf("got target %v, want 0.3", got)
	}
	first := c.Update()
	if first <= 0 || first >= 0.3 {
		t.Errorf("after one frame got %v, want strictly between 0 and 0.3", first)
	}
	for range 120 {
		c.Update()
	}
	if math.Abs(c.Angle()-0.3) > 1e-3 {
		t.Errorf("got angle %v, want it to settle at 0.3", c.Angle())
	}

	c.Limit = 0.25
	c.Turn(10)
	if c.Target() != 0.25 {
		t.Errorf("got target %v, want it clamped to 0.25", c.Target())
	}
	c.Reset()
	if c.Target() != 0 {
		t.Errorf("got target %v after reset", c.Target())
	}
}

func TestViewportCell(t *testing.T) {
	v := FitViewport(track.Rect{X0: 0, Y0: 0, X1: 100, Y1: 50}, 10)
	for _, tt := range []struct {
		p    track.Point
		x, y int
	}{
		{track.Pt(0, 0), 1, 1},
		{track.Pt(9.9, 19.9), 1, 1},
		{track.Pt(100, 50), 11, 3},
	} {
		x, y := v.Cell(tt.p)
		if x != tt.x || y != tt.y {
			t.Errorf("%v: got cell (%d, %d), want (%d, %d)", tt.p, x, y, tt.x, tt.y)
		}
	}
}

func TestDrawSegmentShapeIsConnected(t *testing.T) {
	d := shapeDrawer(Viewport{Scale: 1})
	line := d.DrawSegmentShape(track.LineCurve(track.Line{P0: track.Pt(0, 0), P1: track.Pt(10, 0)}), 3, 0xffffff)
	want := []cell{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0}}
	if diff := cmp.Diff(want, line.cells, cmp.AllowUnexported(cell{})); diff != "" {
		t.Error(diff)
	}

	arc := d.DrawSegmentShape(track.NewCurveFromHeading(track.Pt(0, 0), track.Vec(1, 0), 0.05, 20*math.Pi), 3, 0xffffff)
	for i := 1; i < arc.Len(); i++ {
		a, b := arc.cells[i-1], arc.cells[i]
		if abs(a.x-b.x) > 1 || abs(a.y-b.y) > 1 {
			t.Errorf("cells %v and %v aren't adjacent", a, b)
		}
	}
}

func TestUIDraw(t *testing.T) {
	screen := newScreen(t)
	w, err := scene.NewWorld("rail")
	if err != nil {
		t.Fatal(err)
	}
	u := New(screen, w, Options{Scale: 8, Gravity: 50})
	u.Draw()

	// The dot starts at the origin, one cell in from the corner.
	if r := runeAt(screen, 1, 1); r != dotRune {
		t.Errorf("got %q at the dot's cell, want %q", r, dotRune)
	}
	if r := runeAt(screen, 5, 1); r != trackRune {
		t.Errorf("got %q on the track, want %q", r, trackRune)
	}
	if r := runeAt(screen, 1, 23); r != 't' {
		t.Errorf("got %q, want the status line", r)
	}
}

func TestUITickMovesDots(t *testing.T) {
	screen := newScreen(t)
	w, err := scene.NewWorld("rail")
	if err != nil {
		t.Fatal(err)
	}
	u := New(screen, w, Options{Scale: 8, Gravity: 50})
	u.SetClock(track.FixedClock(1))
	if err := u.Tick(context.Background()); err != nil {
		t.Fatal(err)
	}
	// 10 units per second along the x axis.
	if p := u.markers[0]; math.Abs(p.X-10) > 1e-9 || p.Y != 0 {
		t.Errorf("got marker at %v, want (10, 0)", p)
	}
}

func TestUIBranchCallback(t *testing.T) {
	screen := newScreen(t)
	w, err := scene.NewWorld("branch")
	if err != nil {
		t.Fatal(err)
	}
	branches := 0
	u := New(screen, w, Options{Scale: 8, Gravity: 50, OnBranch: func() { branches++ }})
	u.SetClock(track.FixedClock(1.0 / 30))
	// Tilt toward the exit so the dot slides down through the fork.
	u.crank.Turn(-9)
	for range 30 {
		u.crank.Update()
	}
	for range 120 {
		if err := u.Tick(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if branches == 0 {
		t.Error("dot never passed through the fork")
	}
}

func TestUIHandleEvent(t *testing.T) {
	screen := newScreen(t)
	w, err := scene.NewWorld("circle")
	if err != nil {
		t.Fatal(err)
	}
	u := New(screen, w, Options{Scale: 8, Gravity: 50})

	if !u.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)) {
		t.Fatal("right arrow quit")
	}
	if u.crank.Target() <= 0 {
		t.Errorf("right arrow turned the crank to %v", u.crank.Target())
	}
	u.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	u.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if u.crank.Target() >= 0 {
		t.Errorf("left arrow turned the crank to %v", u.crank.Target())
	}
	u.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if u.crank.Target() != 0 {
		t.Errorf("space left the crank at %v", u.crank.Target())
	}

	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone),
	} {
		if u.HandleEvent(ev) {
			t.Errorf("%v didn't quit", ev.Name())
		}
	}
}

func TestLongFrameInterval(t *testing.T) {
	screen := newScreen(t)
	w, err := scene.NewWorld("rail")
	if err != nil {
		t.Fatal(err)
	}
	u := New(screen, w, Options{Scale: 8, Gravity: 50, Interval: 2 * time.Second})
	if u.opts.Interval != 2*time.Second {
		t.Errorf("got interval %v, want 2s", u.opts.Interval)
	}
	if d := New(screen, w, Options{Scale: 8}).opts.Interval; d != time.Second/30 {
		t.Errorf("got default interval %v, want 1/30 s", d)
	}

	// A crank with long frames settles in fewer updates than one with short
	// frames.
	slow, fast := NewCrank(2*time.Second, 0.1), NewCrank(time.Second/30, 0.1)
	slow.Turn(1)
	fast.Turn(1)
	if a, b := slow.Update(), fast.Update(); !(a > b) {
		t.Errorf("crank with 2s frames moved %v in one update, 1/30 s frames %v", a, b)
	}
}
