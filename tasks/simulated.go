package tasks

import (
	"fmt"
	"io"
	"time"
)

// SleepFunc suspends the calling goroutine. It is time.Sleep outside of
// tests.
type SleepFunc func(time.Duration)

// NewSimulated returns a task that sleeps for the given number of seconds
// and then reports how long it took. A nil sleep means time.Sleep.
func NewSimulated(id string, seconds int, sleep SleepFunc) Task {
	if sleep == nil {
		sleep = time.Sleep
	}
	meta := TaskMetadata{ID: id, Seconds: seconds}
	return NewTaskFromFunc(meta, func(w io.Writer) string {
		fmt.Fprintf(w, "%s: sleeping %ds\n", id, seconds)
		sleep(time.Duration(seconds) * time.Second)
		fmt.Fprintf(w, "%s: woke\n", id)
		return Outcome(seconds)
	})
}
