// Package orbit converts orbital elements into scene positions.
//
// Positions follow a single-body Kepler approximation around a central star at
// the origin. The per-frame path is analytic: a body's position depends only
// on its current mean anomaly, never on its previous position.
//
// The rotation from the orbital plane into the scene uses a reduced formula
// mixing the argument of periapsis and the inclination. It is not a textbook
// 3-1-3 rotation and the ascending node is not modelled; the exact terms are
// kept so that orbits render the same way across versions.
package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const twoPi = 2 * math.Pi

// DefaultIterations is the number of fixed-point steps used to solve Kepler's
// equation each frame.
const DefaultIterations = 3

// Elements holds the orbital elements of one body. Angles are radians.
type Elements struct {
	SemiMajorAxis       float64
	Eccentricity        float64
	Inclination         float64
	ArgumentOfPeriapsis float64
	MeanAnomaly         float64
	OrbitalPeriod       float64 // seconds of simulated time
}

// AdvanceMeanAnomaly advances m by dt seconds of simulated time for an orbit
// with the given period and wraps the result into [0, 2π).
//
// A normal frame step is far smaller than a full turn, so a single subtraction
// is enough. When one step covers more than a full turn (long stalls, huge
// time scales) the value is reduced with a true modulo instead.
//
// A zero period yields a non-finite anomaly. No recovery is attempted; the
// value flows into the body's position.
func AdvanceMeanAnomaly(m, dt, period float64) float64 {
	m += twoPi * dt / period
	if m >= twoPi {
		m -= twoPi
		if m >= twoPi {
			m = math.Mod(m, twoPi)
		}
	}
	if m < 0 {
		m = math.Mod(m, twoPi) + twoPi
		// A tiny negative value rounds up to a full turn.
		if m >= twoPi {
			m = 0
		}
	}
	return m
}

// SolveKepler solves M = E - e·sin(E) for the eccentric anomaly E using a
// fixed number of fixed-point steps seeded at E = M.
//
// There is no convergence check. The error after n steps shrinks roughly like
// e^n, so three steps are accurate for the near-circular orbits of the default
// table and degrade noticeably once e approaches 1. The bounded loop keeps the
// per-frame cost constant.
func SolveKepler(m, e float64, iterations int) float64 {
	ecc := m
	for i := 0; i < iterations; i++ {
		ecc = m + e*math.Sin(ecc)
	}
	return ecc
}

// TrueAnomaly converts an eccentric anomaly to the true anomaly using the
// half-angle form.
func TrueAnomaly(ecc, e float64) float64 {
	return 2 * math.Atan2(
		math.Sqrt(1+e)*math.Sin(ecc/2),
		math.Sqrt(1-e)*math.Cos(ecc/2),
	)
}

// Radius returns the distance from the central body at eccentric anomaly ecc.
func Radius(a, e, ecc float64) float64 {
	return a * (1 - e*math.Cos(ecc))
}

// ToScene rotates the in-plane coordinates (x along periapsis at zero
// argument, z ninety degrees ahead) into scene space.
func ToScene(x, z, argPeriapsis, inclination float64) mgl64.Vec3 {
	sinW, cosW := math.Sincos(argPeriapsis)
	sinI, cosI := math.Sincos(inclination)
	return mgl64.Vec3{
		x*cosW - z*sinW*cosI,
		x*sinW*sinI + z*sinI,
		x*sinW + z*cosW*cosI,
	}
}

// Position returns the scene position of a body at its current mean anomaly.
func Position(el Elements, iterations int) mgl64.Vec3 {
	ecc := SolveKepler(el.MeanAnomaly, el.Eccentricity, iterations)
	nu := TrueAnomaly(ecc, el.Eccentricity)
	r := Radius(el.SemiMajorAxis, el.Eccentricity, ecc)

	sinNu, cosNu := math.Sincos(nu)
	return ToScene(r*cosNu, r*sinNu, el.ArgumentOfPeriapsis, el.Inclination)
}

// Step advances el by dt seconds of simulated time and returns the updated
// elements together with the new scene position.
func Step(el Elements, dt float64, iterations int) (Elements, mgl64.Vec3) {
	el.MeanAnomaly = AdvanceMeanAnomaly(el.MeanAnomaly, dt, el.OrbitalPeriod)
	return el, Position(el, iterations)
}

// IsFinite reports whether every component of v is finite.
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
