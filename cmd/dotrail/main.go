// Command dotrail runs a scene in the terminal. The arrow keys tilt the
// track.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"honnef.co/go/track/internal/audio"
	"honnef.co/go/track/internal/config"
	"honnef.co/go/track/internal/scene"
	"honnef.co/go/track/internal/termui"
)

var (
	sceneFlag = flag.String("scene", "", "scene to run, overrides DOTRAIL_SCENE")
	logFile   = flag.String("log", "", "write logs to this file")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dotrail:", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *sceneFlag != "" {
		cfg.Scene = *sceneFlag
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	log, err := cfg.NewLogger(out)
	if err != nil {
		return err
	}

	w, err := scene.NewWorld(cfg.Scene)
	if err != nil {
		return err
	}
	cfg.Configure(w, log)

	opts := termui.Options{
		Scale:     cfg.CellScale,
		Gravity:   cfg.Gravity,
		LineWidth: cfg.LineWidth,
		Interval:  cfg.TickInterval,
		MaxStep:   cfg.MaxStep,
		Logger:    log,
	}
	if cfg.Sound {
		clicker, err := audio.NewClicker(log)
		if err != nil {
			log.Warn("sound disabled", "error", err)
		} else {
			defer clicker.Close()
			opts.OnBranch = clicker.Click
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("running", "scene", cfg.Scene, "dots", len(w.Dots))
	return termui.New(screen, w, opts).Run(ctx)
}
