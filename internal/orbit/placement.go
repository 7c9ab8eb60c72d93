package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// State is a body's initial position and velocity in scene space.
type State struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

// Place computes the starting position and velocity of a body orbiting a
// central mass.
//
// The true anomaly comes from a one-term correction of the mean anomaly
// (ν ≈ M + 2e·sin M) rather than a Kepler solve; it is only a good
// approximation for small eccentricities. The speed is the circular-orbit
// estimate sqrt(G·M/a), directed perpendicular to the position in the XZ
// plane.
//
// Inputs are not validated. A zero semi-major axis gives an infinite speed.
func Place(el Elements, centralMass, g float64) State {
	e := el.Eccentricity
	nu := el.MeanAnomaly + 2*e*math.Sin(el.MeanAnomaly)
	r := el.SemiMajorAxis * (1 - e*e) / (1 + e*math.Cos(nu))

	sinNu, cosNu := math.Sincos(nu)
	sinW, cosW := math.Sincos(el.ArgumentOfPeriapsis)
	sinI, cosI := math.Sincos(el.Inclination)

	pos := mgl64.Vec3{
		r * (cosNu*cosW - sinNu*sinW*cosI),
		r * sinNu * sinI,
		r * (cosNu*sinW + sinNu*cosW*cosI),
	}

	speed := math.Sqrt(g * centralMass / el.SemiMajorAxis)
	dir := mgl64.Vec3{-pos.Z(), 0, pos.X()}
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}

	return State{
		Position: pos,
		Velocity: dir.Mul(speed),
	}
}
