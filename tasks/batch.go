package tasks

import "fmt"

// A Batch is an ordered, immutable set of tasks that are started together.
// Slot i of a batch is the i'th task passed to NewBatch.
type Batch struct {
	n     int
	tasks []Task
}

// NewBatch creates batch number n from the given tasks.
func NewBatch(n int, tasks ...Task) Batch {
	return Batch{n: n, tasks: tasks}
}

// NewSimulatedBatch creates batch number n with size simulated tasks whose
// durations are drawn from ds in slot order.
func NewSimulatedBatch(n, size int, ds Durations, sleep SleepFunc) Batch {
	ts := make([]Task, size)
	for slot := range ts {
		ts[slot] = NewSimulated(fmt.Sprintf("%d.%d", n, slot), ds.Next(), sleep)
	}
	return NewBatch(n, ts...)
}

// Number is the batch's 1-based sequence number within the process.
func (b Batch) Number() int { return b.n }

// Size returns the number of tasks in the batch.
func (b Batch) Size() int { return len(b.tasks) }

// Task returns the task in the given slot.
func (b Batch) Task(slot int) Task { return b.tasks[slot] }

// Seconds returns the duration of each slot, in slot order.
func (b Batch) Seconds() []int {
	out := make([]int, len(b.tasks))
	for i, t := range b.tasks {
		out[i] = t.Metadata().Seconds
	}
	return out
}

// Longest returns the duration of the batch's slowest task, which is how
// long the whole batch takes to finish.
func (b Batch) Longest() int {
	longest := 0
	for _, t := range b.tasks {
		if s := t.Metadata().Seconds; s > longest {
			longest = s
		}
	}
	return longest
}
