// Package metrics exports runner events as Prometheus metrics.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/amonks/fanout/runner"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter implements runner.Metrics.
type Exporter struct {
	batchesStarted   prom.Counter
	batchesCompleted prom.Counter
	batchesRejected  prom.Counter
	batchesRunning   prom.Gauge
	tasksCompleted   prom.Counter
	taskDuration     prom.Histogram
	batchDuration    prom.Histogram
}

var _ runner.Metrics = (*Exporter)(nil)

// New creates and registers the collectors. Registering twice against the
// same registry reuses the existing collectors, so two Exporters with the
// same namespace share their counts.
func New(namespace string, reg prom.Registerer) (*Exporter, error) {
	if namespace == "" {
		namespace = "fanout"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	counter := func(name, help string) prom.Counter {
		return prom.NewCounter(prom.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}
	histogram := func(name, help string) prom.Histogram {
		return prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   durationBuckets,
		})
	}

	e := &Exporter{
		batchesStarted:   counter("batches_started_total", "Batches that began running."),
		batchesCompleted: counter("batches_completed_total", "Batches whose results were published."),
		batchesRejected:  counter("batches_rejected_total", "Launches refused by the reject policy."),
		batchesRunning: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "batches_running",
			Help:      "Batches currently running.",
		}),
		tasksCompleted: counter("tasks_completed_total", "Simulated tasks that finished."),
		taskDuration:   histogram("task_duration_seconds", "Simulated duration of each task."),
		batchDuration:  histogram("batch_duration_seconds", "Wall time from a batch starting to its results being published."),
	}

	var err error
	if e.batchesStarted, err = register(reg, e.batchesStarted); err != nil {
		return nil, err
	}
	if e.batchesCompleted, err = register(reg, e.batchesCompleted); err != nil {
		return nil, err
	}
	if e.batchesRejected, err = register(reg, e.batchesRejected); err != nil {
		return nil, err
	}
	if e.batchesRunning, err = register(reg, e.batchesRunning); err != nil {
		return nil, err
	}
	if e.tasksCompleted, err = register(reg, e.tasksCompleted); err != nil {
		return nil, err
	}
	if e.taskDuration, err = register(reg, e.taskDuration); err != nil {
		return nil, err
	}
	if e.batchDuration, err = register(reg, e.batchDuration); err != nil {
		return nil, err
	}
	return e, nil
}

// durationBuckets has a bound at every default task duration, plus one for
// a batch that ran slightly past its longest task.
var durationBuckets = []float64{1, 2, 3, 4, 5}

func (e *Exporter) BatchStarted() {
	e.batchesStarted.Inc()
	e.batchesRunning.Inc()
}

func (e *Exporter) BatchRejected() {
	e.batchesRejected.Inc()
}

func (e *Exporter) BatchCompleted(elapsed time.Duration) {
	e.batchesCompleted.Inc()
	e.batchesRunning.Dec()
	e.batchDuration.Observe(elapsed.Seconds())
}

func (e *Exporter) TaskCompleted(seconds int) {
	e.tasksCompleted.Inc()
	e.taskDuration.Observe(float64(seconds))
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prom.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func register[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegistered prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		existing, ok := alreadyRegistered.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}
	return collector, err
}
