package mutex

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// New returns a named Mutex. The name only shows up in the trace log.
func New(name string) *Mutex {
	mu := &Mutex{name: name}
	mu.Printf("--- created ---")
	return mu
}

// Mutex wraps sync.Mutex, providing these additional features:
//   - You can `defer mu.Lock(...).Unlock()` in a single line
//   - If FANOUT_TRACE_LOCKS is set, every acquisition and release is
//     appended to the file it names, tagged with the mutex name and the
//     caller-supplied reason.
type Mutex struct {
	name string
	mu   sync.Mutex
}

var (
	traceMu   sync.Mutex
	tracefile *os.File
)

func init() {
	path := os.Getenv("FANOUT_TRACE_LOCKS")
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lock tracing disabled: %s\n", err)
		return
	}
	tracefile = f
}

func (mu *Mutex) Lock(reason string) *Mutex {
	mu.Printf("%s seeks lock", reason)
	mu.mu.Lock()
	mu.Printf("%s holds lock", reason)
	return mu
}

func (mu *Mutex) Unlock() {
	mu.Printf("releases lock")
	mu.mu.Unlock()
}

// Printf writes a line to the trace log. It does nothing unless tracing is
// enabled.
func (mu *Mutex) Printf(s string, args ...any) {
	if tracefile == nil {
		return
	}
	traceMu.Lock()
	defer traceMu.Unlock()

	s = strings.TrimSpace(s)
	d := time.Now().Format(time.StampNano)
	fmt.Fprintf(tracefile, "%s [%s] "+s+"\n", append([]any{d, mu.name}, args...)...)
}
