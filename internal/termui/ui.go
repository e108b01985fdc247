// Package termui runs a world in a terminal.
package termui

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"honnef.co/go/track"
)

const (
	trackColor = 0x808080
	dotRune    = '●'
	trackRune  = '·'
)

type Options struct {
	// Scale is the number of world units per cell column.
	Scale     float64
	Gravity   float64
	LineWidth float64
	// Interval is the time between frames. Defaults to 1/30 s.
	Interval time.Duration
	// MaxStep clamps the time step after a stall.
	MaxStep time.Duration
	// OnBranch, if set, is called for every transition through a joint
	// where more than two segment ends meet.
	OnBranch func()
	Logger   *slog.Logger
}

// UI draws a world to a tcell screen and steers its gravity with the arrow
// keys.
type UI struct {
	screen tcell.Screen
	sim    *track.Simulation
	view   Viewport
	shapes []Shape
	// Marker positions from the last tick, indexed by dot.
	markers []track.Point
	crank   *Crank
	opts    Options
	log     *slog.Logger
}

var (
	_ track.Renderer    = (*UI)(nil)
	_ track.ForceSource = (*UI)(nil)
)

// New prepares a UI for w on screen, which must already be initialized.
func New(screen tcell.Screen, w *track.World, opts Options) *UI {
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 30
	}
	u := &UI{
		screen:  screen,
		view:    FitViewport(w.Graph.Bounds(), opts.Scale),
		markers: make([]track.Point, len(w.Dots)),
		crank:   NewCrank(opts.Interval, math.Pi/36),
		opts:    opts,
		log:     opts.Logger,
	}
	if u.log == nil {
		u.log = slog.Default()
	}
	u.crank.Limit = math.Pi
	u.shapes = track.DrawShapes[Shape](w.Graph, shapeDrawer(u.view), opts.LineWidth, trackColor)
	u.sim = &track.Simulation{
		World:    w,
		Clock:    &track.SystemClock{Max: opts.MaxStep},
		Force:    u,
		Renderer: u,
	}
	for i, d := range w.Dots {
		u.markers[i] = d.Position(w.Graph)
	}
	return u
}

// PlaceMarker implements track.Renderer.
func (u *UI) PlaceMarker(dot int, p track.Point) {
	u.markers[dot] = p
}

// Force implements track.ForceSource.
func (u *UI) Force() track.Vec2 {
	return track.ForceFromTilt(u.crank.Angle(), u.opts.Gravity)
}

// Crank returns the tilt input.
func (u *UI) Crank() *Crank { return u.crank }

// SetClock replaces the wall clock, mainly for tests.
func (u *UI) SetClock(c track.Clock) { u.sim.Clock = c }

// Run ticks and draws until the context is canceled or the user quits.
func (u *UI) Run(ctx context.Context) error {
	ticker := time.NewTicker(u.opts.Interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				// Screen finalized.
				return
			}
			events <- ev
		}
	}()

	u.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !u.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if err := u.Tick(ctx); err != nil {
				return err
			}
			u.Draw()
		}
	}
}

// Tick advances the crank spring and the world by one frame.
func (u *UI) Tick(ctx context.Context) error {
	u.crank.Update()
	rep, err := u.sim.Tick(ctx)
	if err != nil {
		return fmt.Errorf("tick: %w", err)
	}
	for _, tr := range rep.Transitions {
		u.log.Debug("transition", "dot", tr.Dot, "joint", tr.Joint, "from", tr.From, "to", tr.To, "v", tr.VOut)
		if tr.Branch && u.opts.OnBranch != nil {
			u.opts.OnBranch()
		}
	}
	return nil
}

// HandleEvent reacts to a terminal event. It returns false when the user asks
// to quit.
func (u *UI) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			u.crank.Turn(-1)
		case tcell.KeyRight:
			u.crank.Turn(1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				u.crank.Reset()
			}
		}
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return true
}

// Draw renders the track, the dots and a status line.
func (u *UI) Draw() {
	u.screen.Clear()
	for _, s := range u.shapes {
		for _, c := range s.cells {
			u.screen.SetContent(c.x, c.y, trackRune, nil, s.style)
		}
	}
	dotStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	for _, p := range u.markers {
		x, y := u.view.Cell(p)
		u.screen.SetContent(x, y, dotRune, nil, dotStyle)
	}

	status := fmt.Sprintf(" tilt %+4.0f°  ←/→ tilt  space level  q quit ", u.crank.Target()*180/math.Pi)
	_, h := u.screen.Size()
	for i, r := range []rune(status) {
		u.screen.SetContent(i, h-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	u.screen.Show()
}
