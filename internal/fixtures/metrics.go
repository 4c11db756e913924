package fixtures

import (
	"sync"
	"time"
)

// Metrics records runner events. It implements runner.Metrics.
type Metrics struct {
	mu                           sync.Mutex
	started, rejected, completed int
	taskSeconds                  []int
}

func NewMetrics() *Metrics { return &Metrics{} }

func (m *Metrics) BatchStarted()  { m.mu.Lock(); m.started++; m.mu.Unlock() }
func (m *Metrics) BatchRejected() { m.mu.Lock(); m.rejected++; m.mu.Unlock() }

func (m *Metrics) BatchCompleted(time.Duration) { m.mu.Lock(); m.completed++; m.mu.Unlock() }

func (m *Metrics) TaskCompleted(seconds int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.taskSeconds = append(m.taskSeconds, seconds)
}

// Counts returns the number of started, rejected, and completed batches,
// and of completed tasks.
func (m *Metrics) Counts() (started, rejected, completed, tasks int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started, m.rejected, m.completed, len(m.taskSeconds)
}
