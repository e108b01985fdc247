// Command dotrail-render runs a scene headless and writes every frame as a
// PNG file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"honnef.co/go/track"
	"honnef.co/go/track/internal/config"
	"honnef.co/go/track/internal/raster"
	"honnef.co/go/track/internal/scene"
)

var (
	sceneFlag = flag.String("scene", "", "scene to render, overrides DOTRAIL_SCENE")
	tilt      = flag.Float64("tilt", 0, "tilt of the track in degrees")
	zoom      = flag.Float64("zoom", 1, "scale factor of the output images")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		slog.Error("configure logging", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(log)

	if *sceneFlag != "" {
		cfg.Scene = *sceneFlag
	}
	if err := render(cfg); err != nil {
		slog.Error("render", "scene", cfg.Scene, "error", err)
		os.Exit(1)
	}
}

func render(cfg *config.Config) error {
	w, err := scene.NewWorld(cfg.Scene)
	if err != nil {
		return err
	}
	cfg.Configure(w, slog.Default())

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}

	canvas := raster.NewCanvas(w.Graph, raster.Options{
		LineWidth:  cfg.LineWidth,
		TrackColor: 0x808080,
		Margin:     10,
		Zoom:       *zoom,
	})
	sim := &track.Simulation{
		World:    w,
		Clock:    track.FixedClock(cfg.TickInterval.Seconds()),
		Force:    track.ConstantForce(track.ForceFromTilt(*tilt*math.Pi/180, cfg.Gravity)),
		Renderer: canvas,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("rendering", "scene", cfg.Scene, "frames", cfg.Frames, "dir", cfg.OutputDir)
	return raster.Record(ctx, sim, canvas, cfg.Frames, func(frame int) (io.WriteCloser, error) {
		return os.Create(filepath.Join(cfg.OutputDir, fmt.Sprintf("%s-%04d.png", cfg.Scene, frame)))
	})
}
