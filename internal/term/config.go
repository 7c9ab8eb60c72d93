// Package term hosts the scene in a terminal: it turns tcell key and mouse
// events into per-frame input, runs the scheduler at a paced frame rate and
// draws a perspective projection of the bodies.
package term

import (
	"math"
	"time"

	"github.com/mgy583/Solar-System-Simulation/internal/sim"
)

// Config holds terminal host settings.
type Config struct {
	FPS          float64       // frame rate cap
	KeyHold      time.Duration // how long a key counts as held after its last event
	MouseScaleX  float64       // pointer units per terminal column
	MouseScaleY  float64       // pointer units per terminal row
	Trails       bool          // draw orbit paths
	TrailSamples int           // points per orbit path
	MinDistance  float64       // nearest depth drawn
	FOV          float64       // vertical field of view, radians
	CellAspect   float64       // cell height over cell width
}

// DefaultConfig returns the host defaults.
func DefaultConfig() Config {
	return Config{
		FPS:          30,
		KeyHold:      150 * time.Millisecond,
		MouseScaleX:  20,
		MouseScaleY:  40,
		Trails:       true,
		TrailSamples: 96,
		MinDistance:  1,
		FOV:          math.Pi / 4,
		CellAspect:   2,
	}
}

// ConfigFor returns the host defaults with the near plane taken from the
// simulation config.
func ConfigFor(simCfg sim.Config) Config {
	cfg := DefaultConfig()
	cfg.MinDistance = simCfg.MinDistance
	return cfg
}
