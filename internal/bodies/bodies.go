// Package bodies loads the planet table: per-body physical parameters,
// orbital elements and display colour.
package bodies

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/mgy583/Solar-System-Simulation/data"
	"github.com/mgy583/Solar-System-Simulation/internal/orbit"
)

// OrbitEntry holds a body's orbital elements as written in the table.
// Angles are degrees.
type OrbitEntry struct {
	SemiMajorAxis          float64 `yaml:"semi_major_axis"`
	Eccentricity           float64 `yaml:"eccentricity"`
	InclinationDeg         float64 `yaml:"inclination_deg"`
	ArgumentOfPeriapsisDeg float64 `yaml:"argument_of_periapsis_deg"`
	MeanAnomalyDeg         float64 `yaml:"mean_anomaly_deg"`
	Period                 float64 `yaml:"period"`
}

// Entry is one row of the planet table.
type Entry struct {
	Name          string     `yaml:"name"`
	Mass          float64    `yaml:"mass"`
	Radius        float64    `yaml:"radius"`
	Orbit         OrbitEntry `yaml:"orbit"`
	RGB           [3]float64 `yaml:"color"`
	RotationSpeed float64    `yaml:"rotation_speed"`
}

type table struct {
	Bodies []Entry `yaml:"bodies"`
}

// Elements converts the entry's orbit to radians.
func (e Entry) Elements() orbit.Elements {
	return orbit.Elements{
		SemiMajorAxis:       e.Orbit.SemiMajorAxis,
		Eccentricity:        e.Orbit.Eccentricity,
		Inclination:         degToRad(e.Orbit.InclinationDeg),
		ArgumentOfPeriapsis: degToRad(e.Orbit.ArgumentOfPeriapsisDeg),
		MeanAnomaly:         degToRad(e.Orbit.MeanAnomalyDeg),
		OrbitalPeriod:       e.Orbit.Period,
	}
}

// Color returns the entry's display colour.
func (e Entry) Color() colorful.Color {
	return colorful.Color{R: e.RGB[0], G: e.RGB[1], B: e.RGB[2]}
}

// Check reports orbital elements the integrator cannot handle: a
// non-positive semi-major axis or period, or an eccentricity outside [0, 1).
func (e Entry) Check() error {
	var errs []error
	if e.Orbit.SemiMajorAxis <= 0 {
		errs = append(errs, fmt.Errorf("semi-major axis %v must be positive", e.Orbit.SemiMajorAxis))
	}
	if e.Orbit.Period <= 0 {
		errs = append(errs, fmt.Errorf("period %v must be positive", e.Orbit.Period))
	}
	if e.Orbit.Eccentricity < 0 || e.Orbit.Eccentricity >= 1 {
		errs = append(errs, fmt.Errorf("eccentricity %v outside [0, 1)", e.Orbit.Eccentricity))
	}
	return errors.Join(errs...)
}

// Parse decodes a YAML planet table from r.
//
// Entries with degenerate orbital elements are kept as written and logged
// with a warning: the simulation does not reject them, and a bad entry shows
// up as a body with a non-finite position.
func Parse(r io.Reader, logger *slog.Logger) ([]Entry, error) {
	var t table
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding body table: %w", err)
	}

	for i, e := range t.Bodies {
		if err := e.Check(); err != nil {
			logger.Warn("degenerate orbital elements", "index", i, "name", e.Name, "error", err)
		}
	}
	return t.Bodies, nil
}

// Default returns the built-in planet table.
func Default(logger *slog.Logger) ([]Entry, error) {
	return Parse(bytes.NewReader(data.Bodies), logger)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
