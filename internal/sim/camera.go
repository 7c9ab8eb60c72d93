package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mgy583/Solar-System-Simulation/internal/transform"
	"github.com/mgy583/Solar-System-Simulation/internal/world"
)

// CameraMove translates player cameras along their own basis vectors:
// W/S forward and back, A/D left and right, Space/ShiftLeft up and down.
type CameraMove struct{}

// Update implements System.
func (CameraMove) Update(w *world.World, f Frame) {
	in := f.Input
	w.EachPlayer(func(t *world.Transform, p *world.Player) {
		var dir mgl64.Vec3
		if in.Pressed(KeyW) {
			dir = dir.Add(t.Forward())
		}
		if in.Pressed(KeyS) {
			dir = dir.Sub(t.Forward())
		}
		if in.Pressed(KeyA) {
			dir = dir.Sub(t.Right())
		}
		if in.Pressed(KeyD) {
			dir = dir.Add(t.Right())
		}
		if in.Pressed(KeySpace) {
			dir = dir.Add(t.Up())
		}
		if in.Pressed(KeyShiftLeft) {
			dir = dir.Sub(t.Up())
		}

		if dir.Dot(dir) > 0 {
			dir = dir.Normalize()
			t.Translation = t.Translation.Add(dir.Mul(p.MovementSpeed * f.Delta))
		}
	})
}

// CameraLook turns player cameras from pointer motion: horizontal motion
// yaws about the world Y axis, vertical motion pitches within ±PitchLimit.
// Roll is always reset to zero.
type CameraLook struct {
	PitchLimit float64
}

// Update implements System.
func (c CameraLook) Update(w *world.World, f Frame) {
	delta := f.Input.DrainMotion()
	if delta.Dot(delta) == 0 {
		return
	}

	w.EachPlayer(func(t *world.Transform, p *world.Player) {
		t.RotateY(-delta.X() * p.RotationSpeed)

		// Decompose after the yaw, replace pitch, drop roll, recompose.
		yaw, pitch, _ := transform.EulerYXZ(t.Rotation)
		pitch = math.Max(-c.PitchLimit, math.Min(c.PitchLimit, pitch-delta.Y()*p.RotationSpeed))
		t.Rotation = transform.FromEulerYXZ(yaw, pitch, 0)
	})
}
