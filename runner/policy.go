package runner

import "fmt"

//go:generate go run golang.org/x/tools/cmd/stringer -type=Policy -linecomment

// Policy decides what happens when a batch is launched while another batch
// is still running.
type Policy int

const (
	// PolicyConcurrent lets any number of batches overlap.
	PolicyConcurrent Policy = iota // concurrent

	// PolicyReject refuses to launch while a batch is running.
	PolicyReject // reject

	// PolicyQueue accepts every launch but runs batches one at a time, in
	// launch order.
	PolicyQueue // queue
)

func ParsePolicy(s string) (Policy, error) {
	for _, p := range []Policy{PolicyConcurrent, PolicyReject, PolicyQueue} {
		if p.String() == s {
			return p, nil
		}
	}
	return PolicyConcurrent, fmt.Errorf("unknown batch policy '%s'", s)
}
