package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amonks/fanout/internal/fixtures"
	"github.com/amonks/fanout/runner"
	"github.com/amonks/fanout/store"
	"github.com/amonks/fanout/tasks"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func sampleCount(t *testing.T, h prom.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatal(err)
	}
	return m.GetHistogram().GetSampleCount()
}

func upperBounds(t *testing.T, h prom.Histogram) []float64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatal(err)
	}
	var out []float64
	for _, b := range m.GetHistogram().GetBucket() {
		out = append(out, b.GetUpperBound())
	}
	return out
}

func TestExporter(t *testing.T) {
	t.Run("duration buckets", func(t *testing.T) {
		e, err := New("fanout", prom.NewRegistry())
		assert.NoError(t, err)

		e.TaskCompleted(4)
		e.BatchCompleted(4*time.Second + 10*time.Millisecond)
		assert.Equal(t, []float64{1, 2, 3, 4, 5}, upperBounds(t, e.taskDuration))
		assert.Equal(t, []float64{1, 2, 3, 4, 5}, upperBounds(t, e.batchDuration))
	})

	t.Run("records events", func(t *testing.T) {
		e, err := New("fanout", prom.NewRegistry())
		assert.NoError(t, err)

		e.BatchStarted()
		e.BatchStarted()
		e.BatchRejected()
		e.TaskCompleted(3)
		e.BatchCompleted(3 * time.Second)

		assert.Equal(t, 2.0, testutil.ToFloat64(e.batchesStarted))
		assert.Equal(t, 1.0, testutil.ToFloat64(e.batchesRejected))
		assert.Equal(t, 1.0, testutil.ToFloat64(e.batchesCompleted))
		assert.Equal(t, 1.0, testutil.ToFloat64(e.batchesRunning))
		assert.Equal(t, 1.0, testutil.ToFloat64(e.tasksCompleted))
		assert.Equal(t, uint64(1), sampleCount(t, e.taskDuration))
		assert.Equal(t, uint64(1), sampleCount(t, e.batchDuration))
	})

	t.Run("reuses collectors already registered", func(t *testing.T) {
		reg := prom.NewRegistry()
		first, err := New("fanout", reg)
		assert.NoError(t, err)
		second, err := New("fanout", reg)
		assert.NoError(t, err)

		first.BatchRejected()
		second.BatchRejected()
		assert.Equal(t, 2.0, testutil.ToFloat64(first.batchesRejected))
	})

	t.Run("wired into a runner", func(t *testing.T) {
		reg := prom.NewRegistry()
		e, err := New("fanout", reg)
		assert.NoError(t, err)

		r := runner.New(store.New(), nil,
			runner.WithMetrics(e),
			runner.WithDurations(tasks.NewFixedDurations(1, 2)),
			runner.WithSleep(fixtures.NewSleeper().Sleep))
		r.Run()
		r.Run()

		assert.Equal(t, 2.0, testutil.ToFloat64(e.batchesCompleted))
		assert.Equal(t, 0.0, testutil.ToFloat64(e.batchesRunning))
		assert.Equal(t, 10.0, testutil.ToFloat64(e.tasksCompleted))
		assert.Equal(t, uint64(10), sampleCount(t, e.taskDuration))

		srv := httptest.NewServer(Handler(reg))
		defer srv.Close()
		res, err := srv.Client().Get(srv.URL)
		assert.NoError(t, err)
		defer res.Body.Close()
		body, _ := io.ReadAll(res.Body)
		assert.Contains(t, string(body), "fanout_tasks_completed_total 10")
	})
}
