// Package transform provides the rigid transforms used by scene entities:
// a translation plus a unit quaternion rotation.
//
// Conventions follow a right-handed, Y-up scene: a transform looks down its
// local -Z axis, +X is right and +Y is up. Rotations applied with RotateY are
// about the world Y axis (pre-multiplied).
package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	unitX = mgl64.Vec3{1, 0, 0}
	unitY = mgl64.Vec3{0, 1, 0}
	unitZ = mgl64.Vec3{0, 0, 1}
)

// Transform is a world-space translation and rotation.
type Transform struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
}

// FromXYZ returns an unrotated transform at the given position.
func FromXYZ(x, y, z float64) Transform {
	return Transform{
		Translation: mgl64.Vec3{x, y, z},
		Rotation:    mgl64.QuatIdent(),
	}
}

// Forward returns the unit vector the transform is looking along (-Z local).
func (t Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(unitZ.Mul(-1))
}

// Right returns the local +X axis in world space.
func (t Transform) Right() mgl64.Vec3 {
	return t.Rotation.Rotate(unitX)
}

// Up returns the local +Y axis in world space.
func (t Transform) Up() mgl64.Vec3 {
	return t.Rotation.Rotate(unitY)
}

// RotateY rotates the transform about the world Y axis by angle radians.
func (t *Transform) RotateY(angle float64) {
	t.Rotation = mgl64.QuatRotate(angle, unitY).Mul(t.Rotation)
}

// ToLocal expresses the world-space point p in the transform's local frame.
func (t Transform) ToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Conjugate().Rotate(p.Sub(t.Translation))
}

// LookingAt returns a copy of t rotated so that Forward points at target,
// keeping up as close to the requested up vector as possible.
//
// When the view direction is parallel to up, the right axis falls back to an
// arbitrary vector orthonormal to up.
func (t Transform) LookingAt(target, up mgl64.Vec3) Transform {
	back := t.Translation.Sub(target)
	if back.Len() == 0 {
		return t
	}
	back = back.Normalize()
	up = up.Normalize()

	right := up.Cross(back)
	if right.Len() < 1e-12 {
		right = anyOrthonormal(up)
	} else {
		right = right.Normalize()
	}
	newUp := back.Cross(right)

	t.Rotation = quatFromBasis(right, newUp, back)
	return t
}

// anyOrthonormal returns a unit vector orthogonal to the unit vector v.
func anyOrthonormal(v mgl64.Vec3) mgl64.Vec3 {
	sign := 1.0
	if math.Signbit(v.Z()) {
		sign = -1.0
	}
	a := -1.0 / (sign + v.Z())
	b := v.X() * v.Y() * a
	return mgl64.Vec3{b, sign + v.Y()*v.Y()*a, -v.Y()}
}

// quatFromBasis converts the rotation matrix with the given columns into a
// unit quaternion.
func quatFromBasis(x, y, z mgl64.Vec3) mgl64.Quat {
	return mgl64.Mat4ToQuat(mgl64.Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		z[0], z[1], z[2], 0,
		0, 0, 0, 1,
	}).Normalize()
}
