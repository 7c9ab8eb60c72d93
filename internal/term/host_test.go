package term

import (
	"context"
	"log/slog"
	"math"
	"os"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/goleak"

	"github.com/mgy583/Solar-System-Simulation/internal/bodies"
	"github.com/mgy583/Solar-System-Simulation/internal/orbit"
	"github.com/mgy583/Solar-System-Simulation/internal/propagation"
	"github.com/mgy583/Solar-System-Simulation/internal/scene"
	"github.com/mgy583/Solar-System-Simulation/internal/sim"
	"github.com/mgy583/Solar-System-Simulation/internal/world"
)

// near reports whether a and b are within tol of each other.
func near(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

func newWorld(t *testing.T) *world.World {
	t.Helper()
	entries, err := bodies.Default(testLogger())
	if err != nil {
		t.Fatalf("loading bodies: %v", err)
	}
	w := world.New()
	scene.Build(w, entries, sim.DefaultConfig(), testLogger())
	return w
}

func cellAt(s tcell.SimulationScreen, x, y int) rune {
	cells, cols, _ := s.GetContents()
	c := cells[y*cols+x]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

func colorAt(s tcell.SimulationScreen, x, y int) tcell.Color {
	cells, cols, _ := s.GetContents()
	fg, _, _ := cells[y*cols+x].Style.Decompose()
	return fg
}

func TestStarDrawnAtCentre(t *testing.T) {
	screen := newScreen(t, 80, 25)
	w := newWorld(t)

	cfg := DefaultConfig()
	cfg.Trails = false
	h := New(screen, w, sim.NewSchedule(w, testLogger()), nil, cfg, testLogger())

	if err := h.Step(context.Background(), time.Now()); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	// 24 view rows above the HUD line.
	if got := cellAt(screen, 40, 12); got != '@' {
		t.Errorf("centre cell = %q, want '@'", got)
	}
	// The star glows in its emissive colour, srgb(1, 0.6, 0.1).
	if got, want := colorAt(screen, 40, 12), tcell.NewRGBColor(255, 153, 26); got != want {
		t.Errorf("star colour = %v, want %v", got, want)
	}
	if got := cellAt(screen, 0, 24); got != 'p' {
		t.Errorf("HUD starts with %q, want 'p'", got)
	}
}

func TestProjectorCulling(t *testing.T) {
	cam := world.Transform{Rotation: mgl64.QuatIdent()}
	pr := newProjector(cam, 80, 24, DefaultConfig())

	if x, y, depth, ok := pr.project(mgl64.Vec3{0, 0, -10}); !ok || x != 40 || y != 12 || depth != 10 {
		t.Errorf("point ahead = (%d, %d, %v, %v), want (40, 12, 10, true)", x, y, depth, ok)
	}
	if _, _, _, ok := pr.project(mgl64.Vec3{0, 0, 10}); ok {
		t.Error("point behind the camera should be culled")
	}
	if _, _, _, ok := pr.project(mgl64.Vec3{0, 0, -0.5}); ok {
		t.Error("point nearer than MinDistance should be culled")
	}
	if _, _, _, ok := pr.project(mgl64.Vec3{math.NaN(), 0, -10}); ok {
		t.Error("non-finite point should be culled")
	}

	// Up in the world is up on screen; right is right.
	_, yUp, _, _ := pr.project(mgl64.Vec3{0, 1, -10})
	xRight, _, _, _ := pr.project(mgl64.Vec3{1, 0, -10})
	if yUp >= 12 || xRight <= 40 {
		t.Errorf("orientation wrong: up row %d, right column %d", yUp, xRight)
	}
}

func TestConfigForTakesNearPlane(t *testing.T) {
	simCfg := sim.DefaultConfig()
	simCfg.MinDistance = 5
	cfg := ConfigFor(simCfg)
	if cfg.MinDistance != 5 {
		t.Fatalf("MinDistance = %v, want 5", cfg.MinDistance)
	}

	pr := newProjector(world.Transform{Rotation: mgl64.QuatIdent()}, 80, 24, cfg)
	if _, _, _, ok := pr.project(mgl64.Vec3{0, 0, -4}); ok {
		t.Error("point at depth 4 drawn with a near plane of 5")
	}
	if _, _, _, ok := pr.project(mgl64.Vec3{0, 0, -6}); !ok {
		t.Error("point at depth 6 culled with a near plane of 5")
	}
}

func TestKeyHold(t *testing.T) {
	cfg := DefaultConfig()
	in := newInputState(cfg)
	t0 := time.Unix(1000, 0)

	tests := []struct {
		ev   *tcell.EventKey
		want sim.Key
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), sim.KeyW},
		{tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), sim.KeyS},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), sim.KeyA},
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), sim.KeyD},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), sim.KeySpace},
		{tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone), sim.KeyShiftLeft},
	}
	for _, tt := range tests {
		if in.handle(tt.ev, t0) {
			t.Fatalf("%v requested quit", tt.want)
		}
	}

	held := in.next(t0.Add(cfg.KeyHold / 2))
	for _, tt := range tests {
		if !held.Pressed(tt.want) {
			t.Errorf("%v not held within the hold window", tt.want)
		}
	}

	if released := in.next(t0.Add(cfg.KeyHold)); released.Keys != 0 {
		t.Errorf("keys still held after the hold window: %b", released.Keys)
	}
	if len(in.until) != 0 {
		t.Errorf("expired keys not forgotten: %v", in.until)
	}
}

func TestQuitKeys(t *testing.T) {
	now := time.Now()
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	} {
		if !newInputState(DefaultConfig()).handle(ev, now) {
			t.Errorf("%s did not quit", ev.Name())
		}
	}
}

func TestMouseDelta(t *testing.T) {
	cfg := DefaultConfig()
	in := newInputState(cfg)
	now := time.Now()

	in.handle(tcell.NewEventMouse(10, 10, tcell.ButtonNone, tcell.ModNone), now)
	if got := in.next(now).DrainMotion(); got != (mgl64.Vec2{}) {
		t.Errorf("first mouse event produced motion %v", got)
	}

	in.handle(tcell.NewEventMouse(13, 10, tcell.ButtonNone, tcell.ModNone), now)
	in.handle(tcell.NewEventMouse(13, 8, tcell.ButtonNone, tcell.ModNone), now)
	want := mgl64.Vec2{3 * cfg.MouseScaleX, -2 * cfg.MouseScaleY}
	if got := in.next(now).DrainMotion(); got != want {
		t.Errorf("motion = %v, want %v", got, want)
	}
}

func TestStepMovesCamera(t *testing.T) {
	screen := newScreen(t, 80, 25)
	w := newWorld(t)
	cfg := DefaultConfig()
	cfg.Trails = false

	simCfg := sim.DefaultConfig()
	sched := sim.NewSchedule(w, testLogger())
	sim.Install(sched, simCfg, testLogger())
	h := New(screen, w, sched, nil, cfg, testLogger())

	now := time.Now()
	h.input.handle(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), now)
	if err := h.Step(context.Background(), now); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	// The start camera looks straight down, so forward is -Y.
	_, cam, _ := w.Camera()
	want := mgl64.Vec3{0, 100 - simCfg.MovementSpeed/cfg.FPS, 0}
	if !near(cam.Translation, want, 1e-9) {
		t.Errorf("camera at %v, want %v", cam.Translation, want)
	}
	if h.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", h.Frames())
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	screen := newScreen(t, 80, 25)
	w := newWorld(t)

	prop := propagation.NewPropagator(propagation.PropConfig{
		Workers: 2, Step: time.Second, Horizon: time.Second,
		TimeScale: 1, KeplerIterations: orbit.DefaultIterations,
	}, testLogger())
	h := New(screen, w, sim.NewSchedule(w, testLogger()), prop, DefaultConfig(), testLogger())

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if ctx.Err() != nil {
		t.Error("Run only returned after the timeout")
	}
	if len(h.paths) != 8 {
		t.Errorf("loaded %d trails, want 8", len(h.paths))
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := newScreen(t, 40, 12)
	w := newWorld(t)
	cfg := DefaultConfig()
	cfg.Trails = false
	h := New(screen, w, sim.NewSchedule(w, testLogger()), nil, cfg, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := h.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if h.Frames() == 0 {
		t.Error("no frames ran before cancellation")
	}
}
