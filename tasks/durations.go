package tasks

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// Durations picks how many seconds each task of a batch takes.
// Implementations must be safe for concurrent use, since overlapping
// batches draw from the same source.
type Durations interface {
	Next() int
}

const (
	DefaultMinSeconds = 1
	DefaultMaxSeconds = 4

	// MaxSeconds is the longest any task may sleep.
	MaxSeconds = 3600
)

// RandomDurations draws uniformly from the closed range [Min, Max].
type RandomDurations struct {
	Min, Max int
}

var _ Durations = RandomDurations{}

// NewRandomDurations panics unless 0 <= min <= max <= MaxSeconds.
func NewRandomDurations(min, max int) RandomDurations {
	if min < 0 || max < min || max > MaxSeconds {
		panic(fmt.Sprintf("invalid duration range [%d, %d]", min, max))
	}
	return RandomDurations{Min: min, Max: max}
}

// Next implements [Durations]. The top-level math/rand/v2 functions are
// safe for concurrent use.
func (d RandomDurations) Next() int {
	return d.Min + rand.IntN(d.Max-d.Min+1)
}

// FixedDurations hands out a fixed list of durations in order, starting
// over when it runs out.
type FixedDurations struct {
	mu sync.Mutex
	ds []int
	i  int
}

var _ Durations = &FixedDurations{}

// NewFixedDurations panics if ds is empty.
func NewFixedDurations(ds ...int) *FixedDurations {
	if len(ds) == 0 {
		panic("no fixed durations")
	}
	return &FixedDurations{ds: ds}
}

// Next implements [Durations].
func (d *FixedDurations) Next() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.ds[d.i%len(d.ds)]
	d.i++
	return n
}
