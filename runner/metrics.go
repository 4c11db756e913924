package runner

import "time"

// Metrics receives batch lifecycle events. See package metrics for a
// Prometheus implementation.
type Metrics interface {
	BatchStarted()
	BatchRejected()
	BatchCompleted(elapsed time.Duration)
	TaskCompleted(seconds int)
}

// NopMetrics discards everything.
type NopMetrics struct{}

var _ Metrics = NopMetrics{}

func (NopMetrics) BatchStarted()                {}
func (NopMetrics) BatchRejected()               {}
func (NopMetrics) BatchCompleted(time.Duration) {}
func (NopMetrics) TaskCompleted(int)            {}
