package bodies

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestDefaultTable(t *testing.T) {
	entries, err := Default(testLogger())
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	wantNames := []string{"Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune"}
	if len(entries) != len(wantNames) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantNames))
	}
	for i, name := range wantNames {
		if entries[i].Name != name {
			t.Errorf("entry %d name = %q, want %q", i, entries[i].Name, name)
		}
		if err := entries[i].Check(); err != nil {
			t.Errorf("%s: unexpected degenerate elements: %v", name, err)
		}
	}

	earth := entries[2]
	if earth.Mass != 1000 || earth.Radius != 1.7 || earth.RotationSpeed != 0.03 {
		t.Errorf("earth physical = %+v", earth)
	}
	el := earth.Elements()
	if el.SemiMajorAxis != 40 || el.Eccentricity != 0.017 || el.OrbitalPeriod != 31.5 {
		t.Errorf("earth elements = %+v", el)
	}
	if want := 114 * math.Pi / 180; math.Abs(el.ArgumentOfPeriapsis-want) > 1e-12 {
		t.Errorf("earth periapsis = %v rad, want %v", el.ArgumentOfPeriapsis, want)
	}

	c := earth.Color()
	if c.R != 0.2 || c.G != 0.4 || c.B != 0.8 {
		t.Errorf("earth colour = %+v", c)
	}
}

func TestParseDegreesToRadians(t *testing.T) {
	doc := `
bodies:
  - name: Test
    mass: 1
    radius: 1
    orbit: {semi_major_axis: 10, eccentricity: 0.1, inclination_deg: 90, argument_of_periapsis_deg: 180, mean_anomaly_deg: 45, period: 5}
    color: [1, 1, 1]
    rotation_speed: 0
`
	entries, err := Parse(strings.NewReader(doc), testLogger())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	el := entries[0].Elements()
	tests := []struct {
		name      string
		got, want float64
	}{
		{"inclination", el.Inclination, math.Pi / 2},
		{"periapsis", el.ArgumentOfPeriapsis, math.Pi},
		{"mean anomaly", el.MeanAnomaly, math.Pi / 4},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-12 {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestParseKeepsDegenerateEntries(t *testing.T) {
	doc := `
bodies:
  - name: Stalled
    orbit: {semi_major_axis: 0, eccentricity: 1.2, period: 0}
`
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	entries, err := Parse(strings.NewReader(doc), logger)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want the degenerate entry kept", len(entries))
	}
	if err := entries[0].Check(); err == nil {
		t.Error("Check() = nil for degenerate entry")
	}
	if !strings.Contains(buf.String(), "degenerate orbital elements") {
		t.Errorf("expected a warning log, got %q", buf.String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", "bodies: [\n"},
		{"unknown field", "bodies:\n  - name: X\n    moons: 3\n"},
		{"wrong type", "bodies:\n  - name: X\n    mass: heavy\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.doc), testLogger()); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	entries, err := Parse(strings.NewReader(""), testLogger())
	if err != nil || len(entries) != 0 {
		t.Errorf("Parse(empty) = %v, %v", entries, err)
	}
}
