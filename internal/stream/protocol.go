package stream

import "honnef.co/go/track"

const (
	// Client to server.
	TypeCrank = "crank"

	// Server to client.
	TypeWelcome = "welcome"
	TypeFrame   = "frame"
)

// Message is a message sent by a client.
type Message struct {
	Type string `json:"type"`
	// Angle is the crank angle in degrees, for TypeCrank.
	Angle float64 `json:"angle"`
}

type Welcome struct {
	Type     string `json:"type"`
	Run      string `json:"run"`
	ClientID string `json:"clientId"`
	Scene    string `json:"scene"`
}

// Frame is the state of all dots after a tick.
type Frame struct {
	Type        string            `json:"type"`
	Run         string            `json:"run"`
	Tick        int64             `json:"tick"`
	Angle       float64           `json:"angle"`
	Dots        []DotState        `json:"dots"`
	Transitions []TransitionEvent `json:"transitions,omitempty"`
}

type DotState struct {
	Segment track.SegmentID `json:"segment"`
	T       float64         `json:"t"`
	V       float64         `json:"v"`
	X       float64         `json:"x"`
	Y       float64         `json:"y"`
}

type TransitionEvent struct {
	Dot    int             `json:"dot"`
	Joint  track.JointID   `json:"joint"`
	From   track.SegmentID `json:"from"`
	To     track.SegmentID `json:"to"`
	V      float64         `json:"v"`
	Branch bool            `json:"branch,omitempty"`
}

// Scene describes the track, for clients to draw.
type Scene struct {
	Name     string         `json:"name"`
	Bounds   track.Rect     `json:"bounds"`
	Segments []SceneSegment `json:"segments"`
}

type SceneSegment struct {
	ID   track.SegmentID `json:"id"`
	Kind string          `json:"kind"`
	// Points is a polyline approximating the segment.
	Points [][2]float64 `json:"points"`
}
