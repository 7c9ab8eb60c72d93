package world

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/mgy583/Solar-System-Simulation/internal/orbit"
	"github.com/mgy583/Solar-System-Simulation/internal/transform"
)

// BodyKind tells stars and planets apart. It is the only way the scene
// identifies its star.
type BodyKind uint8

const (
	KindPlanet BodyKind = iota
	KindStar
)

func (k BodyKind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindPlanet:
		return "planet"
	default:
		return "unknown"
	}
}

// Name labels an entity for logs and the HUD.
type Name string

// Transform is the world-space placement of an entity.
type Transform = transform.Transform

// CelestialBody holds the physical parameters of a star or planet.
// Immutable after spawn.
type CelestialBody struct {
	Mass          float64
	Radius        float64
	Kind          BodyKind
	RotationSpeed float64 // rad per second of simulated time
}

// IsStar reports whether the body is the scene's central star.
func (b CelestialBody) IsStar() bool {
	return b.Kind == KindStar
}

// Orbit holds a body's orbital elements. MeanAnomaly advances every frame.
type Orbit = orbit.Elements

// Velocity is the initial linear velocity from placement. Positions are
// computed analytically from the orbit, so nothing reads it after spawn.
type Velocity struct {
	mgl64.Vec3
}

// Player holds the free camera's control speeds.
type Player struct {
	MovementSpeed float64 // units per second
	RotationSpeed float64 // radians per pointer unit
}

// Camera marks the entity the scene is viewed from.
type Camera struct{}

// PointLight is an omnidirectional light source.
type PointLight struct {
	Intensity       float64
	Range           float64
	ShadowsEnabled  bool
	ShadowDepthBias float64
}

// Appearance is what the host needs to draw a body as a sphere.
type Appearance struct {
	Color      colorful.Color
	Emissive   colorful.Color
	MeshRadius float64
}
