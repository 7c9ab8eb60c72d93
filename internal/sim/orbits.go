package sim

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mgy583/Solar-System-Simulation/internal/metrics"
	"github.com/mgy583/Solar-System-Simulation/internal/orbit"
	"github.com/mgy583/Solar-System-Simulation/internal/world"
)

// OrbitSystem moves every non-star body along its orbit and spins it about
// its vertical axis.
//
// Positions are absolute: each frame overwrites the translation with the
// position at the new mean anomaly. The spin is incremental.
type OrbitSystem struct {
	timeScale  float64
	iterations int
	logger     *slog.Logger
	nonFinite  map[world.Entity]bool
}

// NewOrbitSystem creates the orbit integrator.
func NewOrbitSystem(cfg Config, logger *slog.Logger) *OrbitSystem {
	return &OrbitSystem{
		timeScale:  cfg.TimeScale,
		iterations: cfg.KeplerIterations,
		logger:     logger,
		nonFinite:  make(map[world.Entity]bool),
	}
}

// Update implements System.
func (s *OrbitSystem) Update(w *world.World, f Frame) {
	delta := f.Delta * s.timeScale

	var integrated int
	w.EachOrbit(func(e world.Entity, name world.Name, t *world.Transform, o *world.Orbit, b *world.CelestialBody) {
		if b.IsStar() {
			return
		}

		var pos mgl64.Vec3
		*o, pos = orbit.Step(*o, delta, s.iterations)
		t.Translation = pos
		t.RotateY(delta * b.RotationSpeed)
		integrated++

		// Degenerate elements are not corrected; report them once.
		if !orbit.IsFinite(pos) && !s.nonFinite[e] {
			s.nonFinite[e] = true
			metrics.RecordNonFiniteBody()
			s.logger.Warn("body position is not finite",
				"body", string(name),
				"semi_major_axis", o.SemiMajorAxis,
				"period", o.OrbitalPeriod,
				"eccentricity", o.Eccentricity,
			)
		}
	})

	metrics.RecordBodiesIntegrated(integrated)
}

// StarSpin rotates every star about its vertical axis at a fixed rate of
// real time. Star translations are never written.
type StarSpin struct {
	Rate float64 // rad/s
}

// Update implements System.
func (s StarSpin) Update(w *world.World, f Frame) {
	w.EachBody(func(_ world.Entity, t *world.Transform, b *world.CelestialBody) {
		if b.IsStar() {
			t.RotateY(f.Delta * s.Rate)
		}
	})
}
