package propagation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mgy583/Solar-System-Simulation/internal/orbit"
)

// propagateJob is a unit of work for the worker pool.
type propagateJob struct {
	index int
	body  BodyState
}

// propagateResult is the output of a single body propagation.
type propagateResult struct {
	index    int
	position BodyPosition
}

// WorkerPool manages a fixed number of goroutines for parallel orbit
// propagation.
type WorkerPool struct {
	workers int
	logger  *slog.Logger
}

// NewWorkerPool creates a worker pool with the given number of workers.
// Fewer than one worker is treated as one.
func NewWorkerPool(workers int, logger *slog.Logger) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{
		workers: workers,
		logger:  logger,
	}
}

// Workers returns the pool size.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// PropagateBatch advances every body by delta simulated seconds. Results are
// returned in input order. Bodies whose position is not finite are still
// returned and counted in the second result. The third result is the number
// of bodies completed before ctx was cancelled.
func (wp *WorkerPool) PropagateBatch(ctx context.Context, bodies []BodyState, delta float64, iterations int) ([]BodyPosition, int, int) {
	if len(bodies) == 0 {
		return nil, 0, 0
	}

	jobs := make(chan propagateJob, wp.workers*2)
	results := make(chan propagateResult, wp.workers*2)

	// Start workers.
	var wg sync.WaitGroup
	for i := 0; i < wp.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				result := propagateSingle(job, delta, iterations)
				select {
				case results <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Feed jobs in a goroutine.
	go func() {
		defer close(jobs)
		for i, b := range bodies {
			select {
			case jobs <- propagateJob{index: i, body: b}:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Close results when all workers are done.
	go func() {
		wg.Wait()
		close(results)
	}()

	positions := make([]BodyPosition, len(bodies))
	var done, nonFinite int
	for result := range results {
		positions[result.index] = result.position
		done++
		if !orbit.IsFinite(result.position.Position) {
			nonFinite++
			wp.logger.Warn("propagated position is not finite",
				"body", result.position.Name,
				"delta", delta,
			)
		}
	}

	return positions, nonFinite, done
}

// SampleBatch returns n positions per body spread evenly in mean anomaly
// over one full orbit, starting at the body's current mean anomaly.
func (wp *WorkerPool) SampleBatch(ctx context.Context, bodies []BodyState, n, iterations int) ([][]mgl64.Vec3, int) {
	paths := make([][]mgl64.Vec3, len(bodies))
	if len(bodies) == 0 || n < 1 {
		return paths, len(bodies)
	}

	jobs := make(chan int, wp.workers*2)
	var mu sync.Mutex
	var done int

	var wg sync.WaitGroup
	for i := 0; i < wp.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					return
				}
				paths[idx] = samplePath(bodies[idx].Elements, n, iterations)
				mu.Lock()
				done++
				mu.Unlock()
			}
		}()
	}

	func() {
		defer close(jobs)
		for i := range bodies {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()
	wg.Wait()

	return paths, done
}

// propagateSingle advances one body's mean anomaly and solves its position.
func propagateSingle(job propagateJob, delta float64, iterations int) propagateResult {
	el, pos := orbit.Step(job.body.Elements, delta, iterations)
	return propagateResult{
		index: job.index,
		position: BodyPosition{
			Name:        job.body.Name,
			Position:    pos,
			MeanAnomaly: el.MeanAnomaly,
		},
	}
}

func samplePath(el orbit.Elements, n, iterations int) []mgl64.Vec3 {
	start := el.MeanAnomaly
	path := make([]mgl64.Vec3, n)
	for k := range path {
		el.MeanAnomaly = orbit.AdvanceMeanAnomaly(start, float64(k)/float64(n), 1)
		path[k] = orbit.Position(el, iterations)
	}
	return path
}
