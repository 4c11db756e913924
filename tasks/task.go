package tasks

import (
	"fmt"
	"io"
)

// Task is one simulated delayed operation. Start blocks for the task's
// duration and then returns its outcome. Tasks cannot fail and cannot be
// canceled: once started, Start always returns.
type Task interface {
	Metadata() TaskMetadata
	Start(w io.Writer) string
}

// TaskMetadata describes a task for display and logging.
type TaskMetadata struct {
	// ID identifies a task within the process, as "<batch>.<slot>", for
	// example "3.0" for the first task of the third batch.
	ID string

	// Seconds is how long the task will take. It is chosen before the task
	// starts so that a batch's durations are drawn in slot order.
	Seconds int
}

// Outcome is the text a task produces when it finishes.
func Outcome(seconds int) string {
	return fmt.Sprintf("task completed in %d seconds", seconds)
}
