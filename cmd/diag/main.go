package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/mgy583/Solar-System-Simulation/internal/bodies"
	"github.com/mgy583/Solar-System-Simulation/internal/orbit"
	"github.com/mgy583/Solar-System-Simulation/internal/propagation"
	"github.com/mgy583/Solar-System-Simulation/internal/scene"
	"github.com/mgy583/Solar-System-Simulation/internal/sim"
	"github.com/mgy583/Solar-System-Simulation/internal/world"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	entries, err := bodies.Default(logger)
	if err != nil {
		fmt.Println("ERROR loading body table:", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d bodies\n", len(entries))

	cfg := sim.DefaultConfig()
	w := world.New()
	scene.Build(w, entries, cfg, logger)

	states := propagation.Snapshot(w)
	for _, s := range states {
		el := s.Elements
		fmt.Printf("  %-8s a=%6.1f e=%.3f period=%7.1fs  periapsis=%6.2f apoapsis=%6.2f\n",
			s.Name, el.SemiMajorAxis, el.Eccentricity, el.OrbitalPeriod,
			el.SemiMajorAxis*(1-el.Eccentricity), el.SemiMajorAxis*(1+el.Eccentricity))
	}

	prop := propagation.NewPropagator(propagation.PropConfig{
		Workers:          runtime.NumCPU(),
		Step:             5 * time.Second,
		Horizon:          30 * time.Second,
		TimeScale:        cfg.TimeScale,
		KeplerIterations: cfg.KeplerIterations,
	}, logger)

	keyframes, err := prop.GenerateKeyframes(context.Background(), states)
	if err != nil {
		fmt.Println("ERROR generating keyframes:", err)
		os.Exit(1)
	}

	for _, kf := range keyframes {
		fmt.Printf("\nt=%v\n", kf.Offset)
		for _, b := range kf.Bodies {
			p := b.Position
			flag := ""
			if !orbit.IsFinite(p) {
				flag = "  NON-FINITE"
			}
			fmt.Printf("  %-8s M=%.4f  (%9.3f, %8.3f, %9.3f)  r=%7.3f%s\n",
				b.Name, b.MeanAnomaly, p.X(), p.Y(), p.Z(), p.Len(), flag)
		}
	}
	fmt.Printf("\nTotal keyframes: %d\n", len(keyframes))
}
