package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mgy583/Solar-System-Simulation/internal/bodies"
	"github.com/mgy583/Solar-System-Simulation/internal/metrics"
	"github.com/mgy583/Solar-System-Simulation/internal/propagation"
	"github.com/mgy583/Solar-System-Simulation/internal/scene"
	"github.com/mgy583/Solar-System-Simulation/internal/sim"
	"github.com/mgy583/Solar-System-Simulation/internal/term"
	"github.com/mgy583/Solar-System-Simulation/internal/world"
)

type runConfig struct {
	Headless   bool
	Frames     int
	BodiesFile string
}

func main() {
	level := loadLogLevel()
	runCfg := loadRunConfig()

	// The terminal host owns stdout while it runs, so its logs are held in
	// memory and written to stderr once the screen is released.
	var logBuf bytes.Buffer
	var out io.Writer = os.Stdout
	if !runCfg.Headless {
		out = &logBuf
	}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))

	err := run(logger, runCfg)

	if !runCfg.Headless {
		_, _ = logBuf.WriteTo(os.Stderr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "orrery:", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, runCfg runConfig) error {
	simCfg := loadSimConfig(logger)
	hostCfg := loadHostConfig(logger, simCfg)
	propCfg := loadPropConfig(logger, simCfg)

	entries, err := loadBodies(logger, runCfg.BodiesFile)
	if err != nil {
		return err
	}

	w := world.New()
	scene.Build(w, entries, simCfg, logger)

	sched := sim.NewSchedule(w, logger)
	sim.Install(sched, simCfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if runCfg.Headless {
		err = runHeadless(ctx, logger, sched, runCfg.Frames, hostCfg.FPS)
	} else {
		prop := propagation.NewPropagator(propCfg, logger)
		err = runTerminal(ctx, logger, w, sched, prop, hostCfg)
	}

	if serr := metrics.LogSummary(logger, prometheus.DefaultGatherer); serr != nil {
		logger.Warn("metrics summary failed", "error", serr)
	}
	return err
}

func loadBodies(logger *slog.Logger, path string) ([]bodies.Entry, error) {
	if path == "" {
		entries, err := bodies.Default(logger)
		if err != nil {
			return nil, fmt.Errorf("loading built-in body table: %w", err)
		}
		return entries, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening body table: %w", err)
	}
	defer f.Close()

	entries, err := bodies.Parse(f, logger)
	if err != nil {
		return nil, fmt.Errorf("loading body table %s: %w", path, err)
	}
	logger.Info("loaded body table", "path", path, "count", len(entries))
	return entries, nil
}

func runHeadless(ctx context.Context, logger *slog.Logger, sched *sim.Schedule, frames int, fps float64) error {
	dt := 1 / fps
	logger.Info("headless run", "frames", frames, "delta", dt)

	input := &sim.Input{}
	for i := 0; i < frames; i++ {
		if err := sched.RunFrame(ctx, sim.Frame{Delta: dt, Input: input}); err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("headless run interrupted", "frame", i)
				break
			}
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}

	w := sched.World()
	w.EachVisible(func(name world.Name, t *world.Transform, b *world.CelestialBody, _ *world.Appearance) {
		p := t.Translation
		logger.Info("body position",
			"body", string(name),
			"kind", b.Kind.String(),
			"x", p.X(), "y", p.Y(), "z", p.Z(),
		)
	})
	if _, cam, ok := w.Camera(); ok {
		p := cam.Translation
		logger.Info("camera position", "x", p.X(), "y", p.Y(), "z", p.Z())
	}
	logger.Info("headless run complete", "frames", sched.Frames())
	return nil
}

func runTerminal(ctx context.Context, logger *slog.Logger, w *world.World, sched sim.Scheduler, prop *propagation.Propagator, cfg term.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	return term.New(screen, w, sched, prop, cfg, logger).Run(ctx)
}

// loadLogLevel reads ORRERY_LOG_LEVEL before a logger exists, so a bad
// value is reported on stderr directly.
func loadLogLevel() slog.Level {
	level := slog.LevelInfo
	if v := os.Getenv("ORRERY_LOG_LEVEL"); v != "" {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			fmt.Fprintf(os.Stderr, "invalid ORRERY_LOG_LEVEL value %q, using info\n", v)
			level = slog.LevelInfo
		}
	}
	return level
}

func loadRunConfig() runConfig {
	cfg := runConfig{Frames: 600}

	if v := os.Getenv("ORRERY_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid ORRERY_HEADLESS value %q, defaulting to false\n", v)
		} else {
			cfg.Headless = headless
		}
	}

	if v := os.Getenv("ORRERY_FRAMES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "invalid ORRERY_FRAMES value %q, using default 600\n", v)
		} else {
			cfg.Frames = n
		}
	}

	cfg.BodiesFile = os.Getenv("ORRERY_BODIES_FILE")
	return cfg
}

func loadSimConfig(logger *slog.Logger) sim.Config {
	cfg := sim.DefaultConfig()

	if v := os.Getenv("ORRERY_TIME_SCALE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			logger.Warn("invalid ORRERY_TIME_SCALE value, using default", "value", v, "default", cfg.TimeScale)
		} else {
			cfg.TimeScale = f
		}
	}

	logger.Info("simulation config",
		"time_scale", cfg.TimeScale,
		"gravity_constant", cfg.GravityConstant,
		"star_mass", cfg.StarMass,
		"kepler_iterations", cfg.KeplerIterations,
	)

	return cfg
}

func loadHostConfig(logger *slog.Logger, simCfg sim.Config) term.Config {
	cfg := term.ConfigFor(simCfg)

	if v := os.Getenv("ORRERY_FPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			logger.Warn("invalid ORRERY_FPS value, using default", "value", v, "default", cfg.FPS)
		} else {
			cfg.FPS = f
		}
	}

	if v := os.Getenv("ORRERY_TRAILS"); v != "" {
		trails, err := strconv.ParseBool(v)
		if err != nil {
			logger.Warn("invalid ORRERY_TRAILS value, using default", "value", v, "default", cfg.Trails)
		} else {
			cfg.Trails = trails
		}
	}

	logger.Info("host config",
		"fps", cfg.FPS,
		"trails", cfg.Trails,
		"min_distance", cfg.MinDistance,
		"key_hold_ms", cfg.KeyHold.Milliseconds(),
	)

	return cfg
}

func loadPropConfig(logger *slog.Logger, simCfg sim.Config) propagation.PropConfig {
	cfg := propagation.PropConfig{
		Workers:          runtime.NumCPU(),
		Step:             time.Second,
		Horizon:          60 * time.Second,
		TimeScale:        simCfg.TimeScale,
		KeplerIterations: simCfg.KeplerIterations,
	}

	if v := os.Getenv("ORRERY_PROP_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid ORRERY_PROP_WORKERS value, using default", "value", v, "default", cfg.Workers)
		} else {
			cfg.Workers = n
		}
	}

	logger.Info("propagation config",
		"workers", cfg.Workers,
		"step_seconds", cfg.Step.Seconds(),
		"horizon_seconds", cfg.Horizon.Seconds(),
	)

	return cfg
}
