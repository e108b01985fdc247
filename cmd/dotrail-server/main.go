// Command dotrail-server streams a scene to WebSocket clients, who share
// control of the track's tilt.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"honnef.co/go/track"
	"honnef.co/go/track/internal/config"
	"honnef.co/go/track/internal/scene"
	"honnef.co/go/track/internal/stream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log, err := cfg.NewLogger(os.Stdout)
	if err != nil {
		slog.Error("configure logging", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(log)

	w, err := scene.NewWorld(cfg.Scene)
	if err != nil {
		slog.Error("load scene", "error", err)
		os.Exit(1)
	}
	cfg.Configure(w, log)

	s := stream.NewServer(cfg.Scene, w, &track.SystemClock{Max: cfg.MaxStep}, stream.Options{
		Gravity:        cfg.Gravity,
		OriginPatterns: cfg.Origins(),
		Logger:         log,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	go func() {
		if err := s.Serve(ctx, cfg.TickInterval); err != nil {
			slog.Error("simulation stopped", "error", err)
			cancel()
			srv.Close()
		}
	}()

	slog.Info("server starting", "addr", cfg.Addr, "scene", cfg.Scene, "run", s.Run())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
