package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// gimbalEpsilon is the cos(pitch) below which yaw and roll are treated as
// one angle.
const gimbalEpsilon = 1e-6

// EulerYXZ decomposes q into yaw (Y), pitch (X) and roll (Z) angles such that
// q = Ry(yaw)·Rx(pitch)·Rz(roll).
//
// At pitch = ±π/2 yaw and roll rotate about the same axis. There the whole
// heading is returned as yaw and roll is zero, so recomposing with a new
// pitch keeps the view's heading.
func EulerYXZ(q mgl64.Quat) (yaw, pitch, roll float64) {
	m := q.Normalize().Mat4()

	cosPitch := math.Hypot(m.At(1, 0), m.At(1, 1))
	pitch = math.Atan2(-m.At(1, 2), cosPitch)
	if cosPitch < gimbalEpsilon {
		return math.Atan2(-m.At(2, 0), m.At(0, 0)), pitch, 0
	}
	yaw = math.Atan2(m.At(0, 2), m.At(2, 2))
	roll = math.Atan2(m.At(1, 0), m.At(1, 1))
	return yaw, pitch, roll
}

// FromEulerYXZ composes Ry(yaw)·Rx(pitch)·Rz(roll).
func FromEulerYXZ(yaw, pitch, roll float64) mgl64.Quat {
	return mgl64.AnglesToQuat(yaw, pitch, roll, mgl64.YXZ)
}
