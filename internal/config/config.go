package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"honnef.co/go/track"
)

// Config holds the settings shared by all binaries.
type Config struct {
	Scene    string  `envconfig:"SCENE" default:"loop"`
	Gravity  float64 `envconfig:"GRAVITY" default:"50"`
	Damping  float64 `envconfig:"DAMPING" default:"0.999"`
	MaxDepth int     `envconfig:"MAX_DEPTH" default:"10"`
	Workers  int     `envconfig:"WORKERS" default:"1"`

	TickInterval time.Duration `envconfig:"TICK_INTERVAL" default:"33ms"`
	// MaxStep clamps the wall-clock time step of interactive frontends.
	MaxStep time.Duration `envconfig:"MAX_STEP" default:"100ms"`

	LineWidth float64 `envconfig:"LINE_WIDTH" default:"3"`
	// CellScale is the number of world units per terminal cell.
	CellScale float64 `envconfig:"CELL_SCALE" default:"8"`
	Sound     bool    `envconfig:"SOUND" default:"true"`

	Frames    int    `envconfig:"FRAMES" default:"120"`
	OutputDir string `envconfig:"OUTPUT_DIR" default:"./frames"`

	Addr           string `envconfig:"ADDR" default:":8080"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from DOTRAIL_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("dotrail", &cfg); err != nil {
		return nil, err
	}
	if cfg.MaxDepth < 1 {
		return nil, fmt.Errorf("max depth must be at least 1, got %d", cfg.MaxDepth)
	}
	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("tick interval must be positive, got %v", cfg.TickInterval)
	}
	if cfg.Damping <= 0 || cfg.Damping > 1 {
		return nil, fmt.Errorf("damping must be in (0, 1], got %g", cfg.Damping)
	}
	return &cfg, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// NewLogger returns a text logger writing to out at the configured level.
func (c *Config) NewLogger(out io.Writer) (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), nil
}

// Origins splits AllowedOrigins.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Configure applies the integrator settings to w.
func (c *Config) Configure(w *track.World, log *slog.Logger) {
	w.Integrator.MaxDepth = c.MaxDepth
	w.Integrator.Damping = c.Damping
	w.Integrator.Logger = log
	w.Workers = c.Workers
}
