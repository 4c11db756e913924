// Package runner launches batches of simulated tasks and publishes their
// results.
//
// Each batch fans out one goroutine per task and fans back in once every
// task has finished. The batch's outcomes are then appended to the store in
// slot order with a single Append, and the notifier is asked to redraw
// exactly once. Nothing in a batch can fail or be canceled, so a launched
// batch always completes, after at most its slowest task's duration.
package runner

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/amonks/fanout/internal/mutex"
	"github.com/amonks/fanout/internal/outputwriter"
	"github.com/amonks/fanout/internal/styles"
	"github.com/amonks/fanout/store"
	"github.com/amonks/fanout/tasks"
	"github.com/charmbracelet/lipgloss"
)

const DefaultBatchSize = 5

// ErrBatchRunning is returned by Launch and Run under PolicyReject when a
// batch is already in flight.
var ErrBatchRunning = errors.New("a batch is already running")

// Settings are the parts of a Runner's behavior that can be changed while
// it is running. Changes apply to batches launched afterwards.
type Settings struct {
	BatchSize  int
	MinSeconds int
	MaxSeconds int
	Policy     Policy
}

func DefaultSettings() Settings {
	return Settings{
		BatchSize:  DefaultBatchSize,
		MinSeconds: tasks.DefaultMinSeconds,
		MaxSeconds: tasks.DefaultMaxSeconds,
		Policy:     PolicyConcurrent,
	}
}

// Status is a consistent snapshot of a Runner's counters.
type Status struct {
	// Running counts launched batches that have not yet finished,
	// including queued ones.
	Running   int
	Completed int
	Rejected  int
}

type Runner struct {
	store    *store.Store
	notifier Notifier
	metrics  Metrics
	log      io.Writer
	sleep    tasks.SleepFunc

	// durations overrides the random range from settings when set.
	durations tasks.Durations

	// Take mu to touch settings or the counters.
	mu        *mutex.Mutex
	settings  Settings
	launched  int
	running   int
	completed int
	rejected  int

	// tail is closed when the most recently queued batch finishes. Under
	// PolicyQueue each batch waits for the one before it.
	tail chan struct{}

	inflight sync.WaitGroup
}

type Option func(*Runner)

func WithBatchSize(n int) Option {
	return func(r *Runner) { r.settings.BatchSize = n }
}

func WithPolicy(p Policy) Option {
	return func(r *Runner) { r.settings.Policy = p }
}

func WithSettings(s Settings) Option {
	return func(r *Runner) { r.settings = s }
}

// WithDurations replaces the random duration source, for example with
// fixed durations in tests.
func WithDurations(ds tasks.Durations) Option {
	return func(r *Runner) { r.durations = ds }
}

func WithSleep(sleep tasks.SleepFunc) Option {
	return func(r *Runner) { r.sleep = sleep }
}

// WithLog sends the runner's log lines to w. Writes to w are whole lines.
func WithLog(w io.Writer) Option {
	return func(r *Runner) { r.log = outputwriter.New(w) }
}

func WithMetrics(m Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// New creates a Runner that appends to st and notifies n after each batch.
// A nil n is allowed.
func New(st *store.Store, n Notifier, opts ...Option) *Runner {
	if st == nil {
		panic("runner: nil store")
	}
	if n == nil {
		n = nopNotifier{}
	}
	r := &Runner{
		store:    st,
		notifier: n,
		metrics:  NopMetrics{},
		log:      io.Discard,
		sleep:    time.Sleep,
		mu:       mutex.New("runner"),
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.settings.Validate(); err != nil {
		panic("runner: " + err.Error())
	}
	return r
}

// Launch starts a batch in the background and returns its number without
// waiting for it.
func (r *Runner) Launch() (int, error) {
	a, err := r.admit()
	if err != nil {
		return 0, err
	}
	go func() {
		defer r.inflight.Done()
		r.execute(a)
	}()
	return a.batch.Number(), nil
}

// Run runs a batch and waits for it. It returns the batch's results in slot
// order, after they have been appended to the store.
func (r *Runner) Run() ([]string, error) {
	a, err := r.admit()
	if err != nil {
		return nil, err
	}
	defer r.inflight.Done()
	return r.execute(a), nil
}

// Wait blocks until every batch launched so far has finished.
func (r *Runner) Wait() {
	r.inflight.Wait()
}

func (r *Runner) Status() Status {
	defer r.mu.Lock("Status").Unlock()
	return Status{Running: r.running, Completed: r.completed, Rejected: r.rejected}
}

func (r *Runner) Settings() Settings {
	defer r.mu.Lock("Settings").Unlock()
	return r.settings
}

// Configure replaces the runner's settings. Batches that are already
// running keep the settings they were launched with.
func (r *Runner) Configure(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.mu.Lock("Configure")
	r.settings = s
	r.mu.Unlock()

	r.printf(styles.Log, "settings: %d tasks of %d-%ds, %s", s.BatchSize, s.MinSeconds, s.MaxSeconds, s.Policy)
	return nil
}

type admission struct {
	batch tasks.Batch

	// after and done are set under PolicyQueue: the batch starts once
	// after is closed, and closes done when it finishes.
	after <-chan struct{}
	done  chan struct{}
}

// admit applies the launch policy and, if the batch may run, builds it and
// counts it as in flight.
func (r *Runner) admit() (admission, error) {
	r.mu.Lock("admit")
	s := r.settings
	if s.Policy == PolicyReject && r.running > 0 {
		r.rejected++
		running := r.running
		r.mu.Unlock()

		r.metrics.BatchRejected()
		r.printf(styles.Error, "launch rejected: %d batch(es) already running", running)
		return admission{}, ErrBatchRunning
	}
	r.launched++
	r.running++
	n := r.launched
	r.inflight.Add(1)

	var a admission
	if s.Policy == PolicyQueue {
		a.after, a.done = r.tail, make(chan struct{})
		r.tail = a.done
	}

	// Durations are drawn under the lock so that a batch's slots take
	// consecutive values from the source.
	ds := r.durations
	if ds == nil {
		ds = tasks.NewRandomDurations(s.MinSeconds, s.MaxSeconds)
	}
	a.batch = tasks.NewSimulatedBatch(n, s.BatchSize, ds, r.sleep)
	r.mu.Unlock()

	return a, nil
}

func (r *Runner) execute(a admission) []string {
	if a.after != nil {
		<-a.after
	}
	if a.done != nil {
		defer close(a.done)
	}
	b := a.batch

	start := time.Now()
	r.metrics.BatchStarted()
	r.printf(styles.Log, "batch %d started: %s", b.Number(), formatSeconds(b.Seconds()))

	results := make([]string, b.Size())
	var wg sync.WaitGroup
	for slot := 0; slot < b.Size(); slot++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			t := b.Task(slot)
			results[slot] = t.Start(r.log)
			r.metrics.TaskCompleted(t.Metadata().Seconds)
		}(slot)
	}
	wg.Wait()

	r.store.Append(results)

	r.mu.Lock("execute")
	r.running--
	r.completed++
	r.mu.Unlock()

	r.metrics.BatchCompleted(time.Since(start))
	r.printf(styles.Log, "batch %d done in %ds", b.Number(), b.Longest())
	r.notifier.RequestRedraw()

	return results
}

func (r *Runner) printf(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(r.log, style.Render(fmt.Sprintf(format, args...)))
}

// Validate reports whether s describes a runnable batch.
func (s Settings) Validate() error {
	switch {
	case s.BatchSize < 1:
		return fmt.Errorf("batch size must be at least 1, got %d", s.BatchSize)
	case s.MinSeconds < 0:
		return fmt.Errorf("min seconds must not be negative, got %d", s.MinSeconds)
	case s.MaxSeconds < s.MinSeconds:
		return fmt.Errorf("max seconds (%d) is less than min seconds (%d)", s.MaxSeconds, s.MinSeconds)
	case s.MaxSeconds > tasks.MaxSeconds:
		return fmt.Errorf("max seconds must be at most %d, got %d", tasks.MaxSeconds, s.MaxSeconds)
	}
	return nil
}

func formatSeconds(ss []int) string {
	strs := make([]string, len(ss))
	for i, s := range ss {
		strs[i] = fmt.Sprintf("%ds", s)
	}
	return "[" + strings.Join(strs, " ") + "]"
}
