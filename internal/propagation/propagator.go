package propagation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mgy583/Solar-System-Simulation/internal/metrics"
	"github.com/mgy583/Solar-System-Simulation/internal/world"
)

// ErrNoBodies is returned when there is nothing to propagate.
var ErrNoBodies = errors.New("no orbiting bodies to propagate")

// Propagator samples future body positions from a snapshot of orbit states.
// It never touches the world, and its results follow the same Kepler path as
// the per-frame integrator.
type Propagator struct {
	pool   *WorkerPool
	config PropConfig
	logger *slog.Logger
}

// NewPropagator creates a new propagation orchestrator.
func NewPropagator(config PropConfig, logger *slog.Logger) *Propagator {
	pool := NewWorkerPool(config.Workers, logger)
	config.Workers = pool.Workers()
	metrics.SetPropagationWorkers(config.Workers)
	return &Propagator{
		pool:   pool,
		config: config,
		logger: logger,
	}
}

// Snapshot copies the orbit state of every non-star body in w, in query
// order. The result is immutable and safe to share with the worker pool.
func Snapshot(w *world.World) []BodyState {
	var states []BodyState
	w.EachOrbit(func(_ world.Entity, name world.Name, _ *world.Transform, o *world.Orbit, b *world.CelestialBody) {
		if b.IsStar() {
			return
		}
		states = append(states, BodyState{Name: string(name), Elements: *o})
	})
	return states
}

// PropagateToTime generates a single keyframe offset of real time after the
// snapshot. The offset is scaled by the configured time scale.
func (p *Propagator) PropagateToTime(ctx context.Context, bodies []BodyState, offset time.Duration) (*Keyframe, error) {
	if len(bodies) == 0 {
		return nil, ErrNoBodies
	}

	delta := offset.Seconds() * p.config.TimeScale

	p.logger.Debug("propagating",
		"body_count", len(bodies),
		"offset", offset.String(),
		"workers", p.config.Workers,
	)

	start := time.Now()
	positions, nonFinite, done := p.pool.PropagateBatch(ctx, bodies, delta, p.config.KeplerIterations)
	duration := time.Since(start)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("propagating to %s: %w", offset, err)
	}

	metrics.RecordKeyframe(duration)

	p.logger.Debug("propagation complete",
		"bodies", done,
		"non_finite", nonFinite,
		"duration_ms", duration.Milliseconds(),
	)

	return &Keyframe{
		Offset: offset,
		Bodies: positions,
	}, nil
}

// GenerateKeyframes generates keyframes from the snapshot over the configured
// horizon at the configured step interval, starting at offset zero.
func (p *Propagator) GenerateKeyframes(ctx context.Context, bodies []BodyState) ([]*Keyframe, error) {
	if len(bodies) == 0 {
		return nil, ErrNoBodies
	}
	if p.config.Step <= 0 {
		return nil, fmt.Errorf("keyframe step %s must be positive", p.config.Step)
	}

	numFrames := int(p.config.Horizon/p.config.Step) + 1
	keyframes := make([]*Keyframe, 0, numFrames)

	for i := 0; i < numFrames; i++ {
		select {
		case <-ctx.Done():
			return keyframes, ctx.Err()
		default:
		}

		offset := time.Duration(i) * p.config.Step
		kf, err := p.PropagateToTime(ctx, bodies, offset)
		if err != nil {
			return keyframes, fmt.Errorf("keyframe %d at %s: %w", i, offset, err)
		}
		keyframes = append(keyframes, kf)
	}

	return keyframes, nil
}

// OrbitPaths returns n points per body tracing one full orbit, in the order
// of bodies. Orbits do not precess, so the paths stay valid for the whole run.
func (p *Propagator) OrbitPaths(ctx context.Context, bodies []BodyState, n int) ([][]mgl64.Vec3, error) {
	if len(bodies) == 0 {
		return nil, ErrNoBodies
	}
	if n < 1 {
		return nil, fmt.Errorf("orbit path needs at least one sample, got %d", n)
	}

	paths, done := p.pool.SampleBatch(ctx, bodies, n, p.config.KeplerIterations)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("sampling orbit paths: %w", err)
	}

	p.logger.Debug("orbit paths sampled", "bodies", done, "samples", n)
	return paths, nil
}
