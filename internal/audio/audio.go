// Package audio plays short cues through the system speaker.
package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate     = beep.SampleRate(44100)
	clickFrequency = 880
	clickDuration  = 30 * time.Millisecond
	// Minimum time between two clicks; a dot bouncing through a fork
	// shouldn't buzz.
	clickGap = 60 * time.Millisecond
)

// Clicker plays a click when a dot passes through a fork.
type Clicker struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
	play func(beep.Streamer)
	tone func(beep.SampleRate) (beep.Streamer, error)
	log  *slog.Logger
}

// NewClicker initializes the speaker. The returned clicker must be closed.
// Failures to produce a click are logged to log, or to slog.Default() if log
// is nil.
func NewClicker(log *slog.Logger) (*Clicker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Clicker{
		now:  time.Now,
		play: func(s beep.Streamer) { speaker.Play(s) },
		log:  log,
	}, nil
}

// Click plays the click sound, unless one was played very recently.
func (c *Clicker) Click() {
	c.mu.Lock()
	now := c.now()
	if !c.last.IsZero() && now.Sub(c.last) < clickGap {
		c.mu.Unlock()
		return
	}
	c.last = now
	c.mu.Unlock()

	tone := c.tone
	if tone == nil {
		tone = clickStreamer
	}
	s, err := tone(sampleRate)
	if err != nil {
		log := c.log
		if log == nil {
			log = slog.Default()
		}
		log.Warn("generate click", "error", err)
		return
	}
	c.play(s)
}

func (c *Clicker) Close() {
	speaker.Close()
}

func clickStreamer(sr beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, clickFrequency)
	if err != nil {
		return nil, err
	}
	return beep.Take(sr.N(clickDuration), sine), nil
}
