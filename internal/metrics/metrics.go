package metrics

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	framesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orrery_frames_total",
			Help: "Total number of simulation frames run.",
		},
	)

	frameDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orrery_frame_duration_seconds",
			Help:    "Time spent running all systems for one frame.",
			Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025},
		},
	)

	bodiesIntegratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orrery_bodies_integrated_total",
			Help: "Total number of per-body orbit updates.",
		},
	)

	nonFiniteBodiesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orrery_nonfinite_bodies_total",
			Help: "Number of bodies whose position became NaN or Inf.",
		},
	)

	keyframeDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orrery_keyframe_duration_seconds",
			Help:    "Time to propagate all bodies to one keyframe.",
			Buckets: prometheus.DefBuckets,
		},
	)

	propagationWorkers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orrery_propagation_workers",
			Help: "Size of the trajectory propagation worker pool.",
		},
	)
)

func init() {
	prometheus.MustRegister(framesTotal)
	prometheus.MustRegister(frameDurationSeconds)
	prometheus.MustRegister(bodiesIntegratedTotal)
	prometheus.MustRegister(nonFiniteBodiesTotal)
	prometheus.MustRegister(keyframeDurationSeconds)
	prometheus.MustRegister(propagationWorkers)
}

// RecordFrame records one completed frame.
func RecordFrame(d time.Duration) {
	framesTotal.Inc()
	frameDurationSeconds.Observe(d.Seconds())
}

// RecordBodiesIntegrated adds n per-body orbit updates.
func RecordBodiesIntegrated(n int) {
	bodiesIntegratedTotal.Add(float64(n))
}

// RecordNonFiniteBody counts a body whose position stopped being finite.
func RecordNonFiniteBody() {
	nonFiniteBodiesTotal.Inc()
}

// RecordKeyframe records the time taken to propagate one keyframe.
func RecordKeyframe(d time.Duration) {
	keyframeDurationSeconds.Observe(d.Seconds())
}

// SetPropagationWorkers sets the propagation pool size.
func SetPropagationWorkers(n int) {
	propagationWorkers.Set(float64(n))
}

// LogSummary gathers the orrery metrics from g and logs one line per metric.
// Histograms are summarised by sample count and sum.
func LogSummary(logger *slog.Logger, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	for _, mf := range families {
		name := mf.GetName()
		if !strings.HasPrefix(name, "orrery_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				logger.Info("metric", "name", name, "value", m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				logger.Info("metric", "name", name, "value", m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				logger.Info("metric", "name", name,
					"count", h.GetSampleCount(),
					"sum", h.GetSampleSum(),
				)
			}
		}
	}
	return nil
}
