package raster

import (
	"context"
	"fmt"
	"io"

	"honnef.co/go/track"
)

// Record ticks sim n times, writing a PNG frame after each tick to the writer
// returned by create. The simulation's renderer should be c.
func Record(ctx context.Context, sim *track.Simulation, c *Canvas, n int, create func(frame int) (io.WriteCloser, error)) error {
	for i := range n {
		if _, err := sim.Tick(ctx); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		c.SetLabel(fmt.Sprintf("tick %d", i+1))
		w, err := create(i)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if err := c.WritePNG(w); err != nil {
			w.Close()
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}
