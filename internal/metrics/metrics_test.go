package metrics

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordFrame(t *testing.T) {
	before := testutil.ToFloat64(framesTotal)
	RecordFrame(2 * time.Millisecond)
	RecordFrame(3 * time.Millisecond)
	if got := testutil.ToFloat64(framesTotal) - before; got != 2 {
		t.Errorf("frames counted = %v, want 2", got)
	}
}

func TestRecordBodiesIntegrated(t *testing.T) {
	before := testutil.ToFloat64(bodiesIntegratedTotal)
	RecordBodiesIntegrated(8)
	RecordBodiesIntegrated(0)
	if got := testutil.ToFloat64(bodiesIntegratedTotal) - before; got != 8 {
		t.Errorf("bodies integrated = %v, want 8", got)
	}
}

func TestGaugesAndCounters(t *testing.T) {
	SetPropagationWorkers(6)
	if got := testutil.ToFloat64(propagationWorkers); got != 6 {
		t.Errorf("propagation workers = %v, want 6", got)
	}

	before := testutil.ToFloat64(nonFiniteBodiesTotal)
	RecordNonFiniteBody()
	if got := testutil.ToFloat64(nonFiniteBodiesTotal) - before; got != 1 {
		t.Errorf("non-finite bodies = %v, want 1", got)
	}
}

func TestLogSummary(t *testing.T) {
	RecordFrame(time.Millisecond)
	RecordKeyframe(time.Millisecond)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	if err := LogSummary(logger, prometheus.DefaultGatherer); err != nil {
		t.Fatalf("LogSummary failed: %v", err)
	}

	out := buf.String()
	for _, name := range []string{"orrery_frames_total", "orrery_frame_duration_seconds", "orrery_keyframe_duration_seconds"} {
		if !strings.Contains(out, name) {
			t.Errorf("summary missing %s", name)
		}
	}
	if strings.Contains(out, "go_goroutines") {
		t.Error("summary should only include orrery metrics")
	}
}
