package term

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/time/rate"

	"github.com/mgy583/Solar-System-Simulation/internal/propagation"
	"github.com/mgy583/Solar-System-Simulation/internal/sim"
	"github.com/mgy583/Solar-System-Simulation/internal/world"
)

// Host drives a scene in a terminal screen. The screen must already be
// initialised; the caller owns it and calls Fini after Run returns.
//
// One goroutine runs the frame loop and owns the world. Screen events arrive
// on a channel and are drained without blocking at the start of each frame.
type Host struct {
	screen tcell.Screen
	world  *world.World
	sched  sim.Scheduler
	prop   *propagation.Propagator
	cfg    Config
	logger *slog.Logger

	input   *inputState
	limiter *rate.Limiter
	paths   [][]mgl64.Vec3

	last   time.Time
	frames uint64
}

// New creates a host. prop may be nil, in which case no trails are drawn.
func New(screen tcell.Screen, w *world.World, sched sim.Scheduler, prop *propagation.Propagator, cfg Config, logger *slog.Logger) *Host {
	fps := cfg.FPS
	if fps <= 0 {
		fps = DefaultConfig().FPS
	}
	return &Host{
		screen:  screen,
		world:   w,
		sched:   sched,
		prop:    prop,
		cfg:     cfg,
		logger:  logger,
		input:   newInputState(cfg),
		limiter: rate.NewLimiter(rate.Limit(fps), 1),
	}
}

// Frames returns the number of frames run so far.
func (h *Host) Frames() uint64 {
	return h.frames
}

// Run runs frames until ctx is cancelled or a quit key is pressed.
func (h *Host) Run(ctx context.Context) error {
	if h.cfg.Trails && h.prop != nil {
		h.loadTrails(ctx)
	}

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		h.screen.ChannelEvents(events, quit)
	}()
	defer func() {
		close(quit)
		<-pumpDone
	}()

	h.logger.Info("terminal host started", "fps", float64(h.limiter.Limit()), "trails", len(h.paths) > 0)

	for {
		// Wait fails early when the next frame would pass the context
		// deadline, before ctx itself is done.
		if err := h.limiter.Wait(ctx); err != nil {
			h.logger.Info("terminal host stopped", "reason", "context", "error", err, "frames", h.frames)
			return nil
		}

		now := time.Now()
		if h.drain(events, now) {
			h.logger.Info("terminal host stopped", "reason", "quit key", "frames", h.frames)
			return nil
		}

		if err := h.Step(ctx, now); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// drain applies every pending event. It reports whether a quit was requested.
func (h *Host) drain(events <-chan tcell.Event, now time.Time) bool {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return true
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				h.screen.Sync()
				continue
			}
			if h.input.handle(ev, now) {
				return true
			}
		default:
			return false
		}
	}
}

// Step runs one frame at time now and redraws the screen. The first frame
// uses the nominal frame interval as its delta.
func (h *Host) Step(ctx context.Context, now time.Time) error {
	dt := 1 / float64(h.limiter.Limit())
	if !h.last.IsZero() {
		dt = now.Sub(h.last).Seconds()
	}
	h.last = now

	if err := h.sched.RunFrame(ctx, sim.Frame{Delta: dt, Input: h.input.next(now)}); err != nil {
		return fmt.Errorf("frame %d: %w", h.frames, err)
	}
	h.frames++
	h.draw()
	return nil
}

func (h *Host) loadTrails(ctx context.Context) {
	states := propagation.Snapshot(h.world)
	if len(states) == 0 {
		return
	}
	paths, err := h.prop.OrbitPaths(ctx, states, h.cfg.TrailSamples)
	if err != nil {
		h.logger.Warn("orbit trails unavailable", "error", err)
		return
	}
	h.paths = paths
}
