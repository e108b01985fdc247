// Package stream serves a running world over HTTP and WebSocket.
package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.jetify.com/typeid/v2"

	"honnef.co/go/track"
)

const clientPrefix = "client"

type Options struct {
	Gravity float64
	// OriginPatterns are the cross-origin hosts allowed to open a WebSocket.
	OriginPatterns []string
	// SampleStep is the largest distance between two points of a segment's
	// polyline in the scene description.
	SampleStep float64
	Logger     *slog.Logger
}

// Server steps a world and streams its state to WebSocket clients, who steer
// its gravity with crank messages.
type Server struct {
	hub   *Hub
	sim   *track.Simulation
	scene Scene
	run   string
	opts  Options
	log   *slog.Logger

	// mu serializes ticks.
	mu   sync.Mutex
	tick int64
}

var _ track.ForceSource = (*Server)(nil)

// NewServer returns a server streaming w, which it steps with clock. sceneName
// is reported to clients.
func NewServer(sceneName string, w *track.World, clock track.Clock, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.SampleStep <= 0 {
		opts.SampleStep = 4
	}
	s := &Server{
		run:  uuid.New().String(),
		opts: opts,
		log:  opts.Logger,
	}
	s.scene = describe(sceneName, w.Graph, opts.SampleStep)
	s.hub = NewHub(func(c *Client) any {
		return Welcome{Type: TypeWelcome, Run: s.run, ClientID: c.ID, Scene: sceneName}
	}, s.log)
	s.sim = &track.Simulation{World: w, Clock: clock, Force: s}
	return s
}

func describe(name string, g *track.Graph, step float64) Scene {
	sc := Scene{Name: name, Bounds: g.Bounds(), Segments: make([]SceneSegment, g.NumSegments())}
	for i := range sc.Segments {
		id := track.SegmentID(i)
		c := g.Curve(id)
		seg := SceneSegment{ID: id, Kind: c.Kind.String()}
		for p := range c.Sample(c.SampleCount(step)) {
			seg.Points = append(seg.Points, [2]float64{p.X, p.Y})
		}
		sc.Segments[i] = seg
	}
	return sc
}

// Run returns the identifier of this run of the server.
func (s *Server) Run() string { return s.run }

// Hub returns the server's client hub.
func (s *Server) Hub() *Hub { return s.hub }

// Force implements track.ForceSource from the clients' crank angle.
func (s *Server) Force() track.Vec2 {
	return track.ForceFromTilt(s.hub.Angle()*math.Pi/180, s.opts.Gravity)
}

// Router returns the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/scene", s.handleScene).Methods("GET")
	r.HandleFunc("/ws", s.handleWebSocket)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.scene); err != nil {
		s.log.Error("encode scene", "error", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.opts.OriginPatterns,
	})
	if err != nil {
		s.log.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(s.hub, conn, typeid.MustGenerate(clientPrefix).String())
	if !s.hub.Register(client) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// Step ticks the world once and broadcasts the resulting frame.
func (s *Server) Step(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rep, err := s.sim.Tick(ctx)
	if err != nil {
		return err
	}
	s.tick++

	w := s.sim.World
	frame := Frame{
		Type:  TypeFrame,
		Run:   s.run,
		Tick:  s.tick,
		Angle: s.hub.Angle(),
		Dots:  make([]DotState, len(w.Dots)),
	}
	for i, d := range w.Dots {
		p := d.Position(w.Graph)
		frame.Dots[i] = DotState{Segment: d.Segment, T: d.T, V: d.V, X: p.X, Y: p.Y}
	}
	for _, tr := range rep.Transitions {
		frame.Transitions = append(frame.Transitions, TransitionEvent{
			Dot:    tr.Dot,
			Joint:  tr.Joint,
			From:   tr.From,
			To:     tr.To,
			V:      tr.VOut,
			Branch: tr.Branch,
		})
	}
	s.hub.Broadcast(frame)
	return nil
}

// Serve runs the hub and steps the world every interval until ctx is
// canceled.
func (s *Server) Serve(ctx context.Context, interval time.Duration) error {
	go s.hub.Run(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.Step(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}
