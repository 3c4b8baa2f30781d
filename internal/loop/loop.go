// Package loop drives the rain engine at a fixed frame rate.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/glyphrain/internal/draw"
	"github.com/tomz197/glyphrain/internal/input"
)

// DefaultFrameTime is used when Options.FrameTime is not set.
const DefaultFrameTime = 100 * time.Millisecond

// Ticker renders one frame per call.
type Ticker interface {
	Tick() error
}

// Options configures Run.
type Options struct {
	FrameTime time.Duration
	Input     *input.Stream // Optional; nil disables quit keys
	Logger    *log.Logger
}

// Run hides the cursor on w and calls t.Tick once per frame until ctx is
// cancelled, a quit key arrives, or a tick fails. The cursor is shown and the
// colors reset on every return path. Only a tick error is returned.
func Run(ctx context.Context, w io.Writer, t Ticker, opts Options) error {
	frameTime := opts.FrameTime
	if frameTime <= 0 {
		frameTime = DefaultFrameTime
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	draw.HideCursor(w)
	defer func() {
		draw.ResetStyle(w)
		draw.ClearScreen(w)
		draw.ShowCursor(w)
	}()
	draw.ClearScreen(w)

	timer := time.NewTimer(frameTime)
	timer.Stop()
	defer timer.Stop()

	for {
		if err := ctx.Err(); err != nil {
			logger.Debug("loop cancelled", "cause", context.Cause(ctx))
			return nil
		}
		frameStart := time.Now()

		// ===== INPUT PHASE =====
		if opts.Input != nil {
			if in := input.ReadInput(opts.Input); in.Quit {
				logger.Debug("quit key pressed")
				return nil
			}
		}

		// ===== RENDER + ADVANCE =====
		if err := t.Tick(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed >= frameTime {
			continue
		}
		timer.Reset(frameTime - elapsed)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}
}
