// Package sim runs the per-frame scene updates: orbit integration, star
// spin and the free camera. Updates are registered with a Scheduler, which
// the host drives once per frame.
package sim

import (
	"context"
	"log/slog"
	"time"

	"github.com/mgy583/Solar-System-Simulation/internal/metrics"
	"github.com/mgy583/Solar-System-Simulation/internal/world"
)

// Stage groups systems that run at the same point of a frame. Stages run in
// ascending order; systems within a stage run in registration order.
type Stage uint8

const (
	StageSimulate Stage = iota
	StageCamera
	numStages
)

func (s Stage) String() string {
	switch s {
	case StageSimulate:
		return "simulate"
	case StageCamera:
		return "camera"
	default:
		return "unknown"
	}
}

// Frame is what every system sees for one frame.
type Frame struct {
	Delta float64 // real seconds since the previous frame
	Input *Input
}

// System is a per-frame update.
type System interface {
	Update(w *world.World, f Frame)
}

// SystemFunc adapts a function to System.
type SystemFunc func(w *world.World, f Frame)

func (fn SystemFunc) Update(w *world.World, f Frame) { fn(w, f) }

// Scheduler registers systems and runs them once per frame.
type Scheduler interface {
	Register(stage Stage, name string, sys System)
	RunFrame(ctx context.Context, f Frame) error
}

type registered struct {
	name string
	sys  System
}

// Schedule is the in-process Scheduler over a single world.
type Schedule struct {
	world  *world.World
	stages [numStages][]registered
	logger *slog.Logger
	frames uint64
}

// NewSchedule creates an empty schedule for w.
func NewSchedule(w *world.World, logger *slog.Logger) *Schedule {
	return &Schedule{world: w, logger: logger}
}

// Register adds sys to the end of stage.
func (s *Schedule) Register(stage Stage, name string, sys System) {
	if stage >= numStages {
		s.logger.Error("ignoring system registered to unknown stage", "system", name, "stage", int(stage))
		return
	}
	s.stages[stage] = append(s.stages[stage], registered{name: name, sys: sys})
	s.logger.Debug("system registered", "system", name, "stage", stage.String())
}

// RunFrame runs every registered system once. It stops between stages if
// ctx is cancelled.
func (s *Schedule) RunFrame(ctx context.Context, f Frame) error {
	start := time.Now()
	for _, stage := range s.stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, r := range stage {
			r.sys.Update(s.world, f)
		}
	}
	s.frames++
	metrics.RecordFrame(time.Since(start))
	return nil
}

// Systems returns the registered system names in run order.
func (s *Schedule) Systems() []string {
	var names []string
	for _, stage := range s.stages {
		for _, r := range stage {
			names = append(names, r.name)
		}
	}
	return names
}

// Frames returns the number of completed frames.
func (s *Schedule) Frames() uint64 {
	return s.frames
}

// World returns the world the schedule updates.
func (s *Schedule) World() *world.World {
	return s.world
}
