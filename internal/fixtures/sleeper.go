package fixtures

import (
	"sort"
	"sync"
	"time"
)

// Sleeper stands in for time.Sleep. By default it returns immediately; use
// Scaled to make it sleep a little, in proportion to the requested
// duration, so that completion order still follows duration order.
type Sleeper struct {
	mu    sync.Mutex
	unit  time.Duration
	gate  <-chan struct{}
	slept []time.Duration
}

func NewSleeper() *Sleeper { return &Sleeper{} }

// Scaled makes every requested second take unit of real time.
func (s *Sleeper) Scaled(unit time.Duration) *Sleeper { s.unit = unit; return s }

// Gated makes every Sleep block until gate is closed.
func (s *Sleeper) Gated(gate <-chan struct{}) *Sleeper { s.gate = gate; return s }

func (s *Sleeper) Sleep(d time.Duration) {
	s.mu.Lock()
	s.slept = append(s.slept, d)
	unit, gate := s.unit, s.gate
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if unit > 0 {
		time.Sleep(time.Duration(d.Seconds() * float64(unit)))
	}
}

// Slept returns every duration passed to Sleep, sorted, since callers
// sleep concurrently.
func (s *Sleeper) Slept() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]time.Duration(nil), s.slept...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
