// Package scene builds the initial world: one point light, the player
// camera, the central star and every planet in the body table.
package scene

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/mgy583/Solar-System-Simulation/internal/bodies"
	"github.com/mgy583/Solar-System-Simulation/internal/orbit"
	"github.com/mgy583/Solar-System-Simulation/internal/sim"
	"github.com/mgy583/Solar-System-Simulation/internal/transform"
	"github.com/mgy583/Solar-System-Simulation/internal/world"
)

// StarName is the name given to the central star.
const StarName world.Name = "Sun"

var (
	starColor    = colorful.Color{R: 1.0, G: 0.7, B: 0.1}
	starEmissive = colorful.Color{R: 1.0, G: 0.6, B: 0.1}
)

// DefaultLight is the point light placed at the star.
var DefaultLight = world.PointLight{
	Intensity:       10_000_000,
	Range:           5000,
	ShadowsEnabled:  true,
	ShadowDepthBias: 0.2,
}

// Scene holds the entities created by Build.
type Scene struct {
	Light   world.Entity
	Camera  world.Entity
	Star    world.Entity
	Planets []world.Entity
}

// Build spawns the scene into w. Planets are placed with orbit.Place around
// a star of cfg.StarMass, in table order.
func Build(w *world.World, entries []bodies.Entry, cfg sim.Config, logger *slog.Logger) Scene {
	var s Scene

	s.Light = w.SpawnLight(transform.FromXYZ(0, 0, 0), DefaultLight)

	start := cfg.CameraStart
	cam := transform.FromXYZ(start.X(), start.Y(), start.Z()).LookingAt(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	s.Camera = w.SpawnCamera(cam, world.Player{
		MovementSpeed: cfg.MovementSpeed,
		RotationSpeed: cfg.LookSpeed,
	})

	s.Star = w.SpawnStar(StarName, transform.FromXYZ(0, 0, 0),
		world.CelestialBody{
			Mass:          cfg.StarMass,
			Radius:        cfg.StarRadius,
			Kind:          world.KindStar,
			RotationSpeed: cfg.StarRotationSpeed,
		},
		world.Appearance{Color: starColor, Emissive: starEmissive, MeshRadius: cfg.StarRadius},
	)

	s.Planets = make([]world.Entity, 0, len(entries))
	for _, e := range entries {
		el := e.Elements()
		st := orbit.Place(el, cfg.StarMass, cfg.GravityConstant)

		p := st.Position
		ent := w.SpawnPlanet(world.Name(e.Name), transform.FromXYZ(p.X(), p.Y(), p.Z()),
			world.CelestialBody{
				Mass:          e.Mass,
				Radius:        e.Radius,
				Kind:          world.KindPlanet,
				RotationSpeed: e.RotationSpeed,
			},
			el,
			world.Velocity{Vec3: st.Velocity},
			world.Appearance{Color: e.Color(), MeshRadius: e.Radius},
		)
		s.Planets = append(s.Planets, ent)

		logger.Debug("placed body",
			"body", e.Name,
			"x", p.X(), "y", p.Y(), "z", p.Z(),
			"speed", st.Velocity.Len(),
		)
	}

	stats := w.Stats()
	logger.Info("scene built",
		"stars", stats.Stars,
		"planets", stats.Planets,
		"cameras", stats.Cameras,
		"lights", stats.Lights,
	)
	return s
}
