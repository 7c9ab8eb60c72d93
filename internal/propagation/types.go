package propagation

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mgy583/Solar-System-Simulation/internal/orbit"
)

// BodyState is an orbiting body's elements at the moment of a snapshot.
type BodyState struct {
	Name     string
	Elements orbit.Elements
}

// Keyframe holds the positions of all bodies at one offset from the snapshot.
type Keyframe struct {
	Offset time.Duration // real time after the snapshot
	Bodies []BodyPosition
}

// BodyPosition holds a single body's scene position at a keyframe.
type BodyPosition struct {
	Name        string
	Position    mgl64.Vec3
	MeanAnomaly float64
}

// PropConfig holds propagation configuration loaded from environment variables.
type PropConfig struct {
	Workers          int           // Worker pool size (default: runtime.NumCPU())
	Step             time.Duration // Keyframe interval (default: 1s)
	Horizon          time.Duration // Propagation horizon (default: 60s)
	TimeScale        float64       // simulated seconds per real second
	KeplerIterations int
}
