package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/mgy583/Solar-System-Simulation/internal/orbit"
)

// Config holds the simulation constants. It is passed by value at
// construction and never changes afterwards.
type Config struct {
	GravityConstant  float64 // scaled G used for the initial orbital speed
	TimeScale        float64 // simulated seconds per real second
	StarMass         float64
	StarRadius       float64
	StarSpinRate     float64 // rad per real second
	MinDistance      float64 // nearest distance the camera draws
	KeplerIterations int
	PitchLimit       float64 // camera pitch clamp, radians

	CameraStart       mgl64.Vec3
	MovementSpeed     float64
	LookSpeed         float64 // radians per pointer unit
	StarRotationSpeed float64 // recorded on the star's body; the spin uses StarSpinRate
}

// DefaultConfig returns the built-in scene constants.
func DefaultConfig() Config {
	return Config{
		GravityConstant:  6.67430e-5,
		TimeScale:        1.0,
		StarMass:         1.0e8,
		StarRadius:       10.0,
		StarSpinRate:     0.1,
		MinDistance:      1.0,
		KeplerIterations: orbit.DefaultIterations,
		PitchLimit:       0.7,

		CameraStart:       mgl64.Vec3{0, 100, 0},
		MovementSpeed:     100.0,
		LookSpeed:         0.001,
		StarRotationSpeed: 0.01,
	}
}
