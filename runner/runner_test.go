package runner_test

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/amonks/fanout/internal/fixtures"
	"github.com/amonks/fanout/internal/seq"
	"github.com/amonks/fanout/runner"
	"github.com/amonks/fanout/store"
	"github.com/amonks/fanout/tasks"
	"github.com/stretchr/testify/assert"
)

const unit = time.Millisecond * 20

func outcomes(seconds ...int) []string {
	out := make([]string, len(seconds))
	for i, s := range seconds {
		out[i] = tasks.Outcome(s)
	}
	return out
}

func repeat(s, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestRunner(t *testing.T) {
	t.Run("results are in slot order, not completion order", func(t *testing.T) {
		var (
			st = store.New()
			n  = fixtures.NewNotifier()
			r  = runner.New(st, n,
				runner.WithDurations(tasks.NewFixedDurations(4, 1, 3, 2, 1)),
				runner.WithSleep(fixtures.NewSleeper().Scaled(unit).Sleep))
		)
		results, err := r.Run()
		assert.NoError(t, err)
		assert.Equal(t, outcomes(4, 1, 3, 2, 1), results)
		assert.Equal(t, outcomes(4, 1, 3, 2, 1), st.Snapshot())
	})

	t.Run("one batch end to end", func(t *testing.T) {
		var (
			st = store.New()
			n  = fixtures.NewNotifier()
			r  = runner.New(st, n,
				runner.WithDurations(tasks.NewFixedDurations(1, 1, 1, 1, 1)),
				runner.WithSleep(fixtures.NewSleeper().Sleep))
		)
		_, err := r.Launch()
		assert.NoError(t, err)
		r.Wait()
		assert.Equal(t, []string{
			"task completed in 1 seconds",
			"task completed in 1 seconds",
			"task completed in 1 seconds",
			"task completed in 1 seconds",
			"task completed in 1 seconds",
		}, st.Snapshot())
		assert.Equal(t, 1, n.Count())
	})

	t.Run("every task really sleeps for its duration", func(t *testing.T) {
		var (
			sleeper = fixtures.NewSleeper()
			r       = runner.New(store.New(), nil,
				runner.WithDurations(tasks.NewFixedDurations(4, 1, 3, 2, 1)),
				runner.WithSleep(sleeper.Sleep))
		)
		r.Run()
		assert.Equal(t, []time.Duration{
			time.Second, time.Second, 2 * time.Second, 3 * time.Second, 4 * time.Second,
		}, sleeper.Slept())
	})

	t.Run("n batches append 5n results and redraw n times", func(t *testing.T) {
		var (
			st = store.New()
			n  = fixtures.NewNotifier()
			r  = runner.New(st, n, runner.WithSleep(fixtures.NewSleeper().Sleep))
		)
		for i := 1; i <= 4; i++ {
			num, err := r.Launch()
			assert.NoError(t, err)
			assert.Equal(t, i, num)
		}
		r.Wait()
		assert.Len(t, st.Snapshot(), 20)
		assert.Equal(t, 4, n.Count())
		assert.Equal(t, runner.Status{Completed: 4}, r.Status())
	})

	t.Run("overlapping batches are each contiguous", func(t *testing.T) {
		var (
			st = store.New()
			ds = tasks.NewFixedDurations(append(repeat(1, 5), repeat(2, 5)...)...)
			r  = runner.New(st, nil,
				runner.WithDurations(ds),
				runner.WithSleep(fixtures.NewSleeper().Scaled(unit).Sleep))
		)
		var wg sync.WaitGroup
		for range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				r.Launch()
			}()
		}
		wg.Wait()
		r.Wait()

		results := st.Snapshot()
		assert.Len(t, results, 10)
		assert.NotEqual(t, -1, seq.IndexOfRun(results, outcomes(repeat(1, 5)...)...))
		assert.NotEqual(t, -1, seq.IndexOfRun(results, outcomes(repeat(2, 5)...)...))
	})

	t.Run("concurrent batches append in completion order", func(t *testing.T) {
		var (
			st = store.New()
			ds = tasks.NewFixedDurations(append(repeat(3, 5), repeat(1, 5)...)...)
			r  = runner.New(st, nil,
				runner.WithDurations(ds),
				runner.WithSleep(fixtures.NewSleeper().Scaled(unit).Sleep))
		)
		r.Launch()
		r.Launch()
		r.Wait()
		assert.Equal(t, append(outcomes(repeat(1, 5)...), outcomes(repeat(3, 5)...)...), st.Snapshot())
	})

	t.Run("queued batches append in launch order", func(t *testing.T) {
		var (
			st = store.New()
			ds = tasks.NewFixedDurations(append(repeat(3, 5), repeat(1, 5)...)...)
			r  = runner.New(st, nil,
				runner.WithPolicy(runner.PolicyQueue),
				runner.WithDurations(ds),
				runner.WithSleep(fixtures.NewSleeper().Scaled(unit).Sleep))
		)
		r.Launch()
		r.Launch()
		assert.Equal(t, 2, r.Status().Running)
		r.Wait()
		assert.Equal(t, append(outcomes(repeat(3, 5)...), outcomes(repeat(1, 5)...)...), st.Snapshot())
	})

	t.Run("reject policy refuses overlapping launches", func(t *testing.T) {
		var (
			st      = store.New()
			gate    = make(chan struct{})
			metrics = fixtures.NewMetrics()
			r       = runner.New(st, nil,
				runner.WithPolicy(runner.PolicyReject),
				runner.WithMetrics(metrics),
				runner.WithSleep(fixtures.NewSleeper().Gated(gate).Sleep))
		)
		_, err := r.Launch()
		assert.NoError(t, err)

		_, err = r.Launch()
		assert.ErrorIs(t, err, runner.ErrBatchRunning)
		_, err = r.Run()
		assert.ErrorIs(t, err, runner.ErrBatchRunning)

		close(gate)
		r.Wait()

		_, err = r.Run()
		assert.NoError(t, err)
		assert.Len(t, st.Snapshot(), 10)
		assert.Equal(t, runner.Status{Completed: 2, Rejected: 2}, r.Status())

		started, rejected, completed, taskCount := metrics.Counts()
		assert.Equal(t, 2, started)
		assert.Equal(t, 2, rejected)
		assert.Equal(t, 2, completed)
		assert.Equal(t, 10, taskCount)
	})

	t.Run("store is untouched until the whole batch is done", func(t *testing.T) {
		var (
			st   = store.New()
			gate = make(chan struct{})
			n    = fixtures.NewNotifier()
			r    = runner.New(st, n, runner.WithSleep(fixtures.NewSleeper().Gated(gate).Sleep))
		)
		r.Launch()
		assert.Equal(t, 0, st.Len())
		assert.Equal(t, runner.Status{Running: 1}, r.Status())
		assert.Equal(t, 0, n.Count())

		close(gate)
		<-n.Redraws()
		assert.Equal(t, 5, st.Len())
		r.Wait()
	})

	t.Run("random durations stay in range", func(t *testing.T) {
		var (
			st = store.New()
			r  = runner.New(st, nil, runner.WithSleep(fixtures.NewSleeper().Sleep))
		)
		for range 200 {
			r.Run()
		}
		valid := map[string]bool{}
		for _, s := range outcomes(1, 2, 3, 4) {
			valid[s] = true
		}
		for _, result := range st.Snapshot() {
			assert.True(t, valid[result], result)
		}
	})

	t.Run("configure applies to later batches", func(t *testing.T) {
		var (
			st = store.New()
			r  = runner.New(st, nil, runner.WithSleep(fixtures.NewSleeper().Sleep))
		)
		err := r.Configure(runner.Settings{BatchSize: 3, MinSeconds: 2, MaxSeconds: 2})
		assert.NoError(t, err)
		results, _ := r.Run()
		assert.Equal(t, outcomes(2, 2, 2), results)

		err = r.Configure(runner.Settings{BatchSize: 0, MinSeconds: 1, MaxSeconds: 4})
		assert.Error(t, err)
		assert.Equal(t, 3, r.Settings().BatchSize)
	})

	t.Run("durations past the ceiling are refused", func(t *testing.T) {
		var (
			st = store.New()
			r  = runner.New(st, nil, runner.WithSleep(fixtures.NewSleeper().Sleep))
		)
		err := r.Configure(runner.Settings{BatchSize: 1, MinSeconds: 0, MaxSeconds: math.MaxInt})
		assert.Error(t, err)
		err = r.Configure(runner.Settings{BatchSize: 1, MinSeconds: 0, MaxSeconds: tasks.MaxSeconds + 1})
		assert.Error(t, err)
		assert.Equal(t, runner.DefaultSettings(), r.Settings())

		assert.NotPanics(t, func() { r.Run() })
		assert.Len(t, st.Snapshot(), runner.DefaultBatchSize)
	})

	t.Run("log", func(t *testing.T) {
		var (
			w = fixtures.NewWriter()
			r = runner.New(store.New(), nil,
				runner.WithLog(w),
				runner.WithDurations(tasks.NewFixedDurations(2, 1)),
				runner.WithBatchSize(2),
				runner.WithSleep(fixtures.NewSleeper().Sleep))
		)
		r.Run()
		lines := w.Lines()
		seq.AssertContainsSequence(t, lines,
			"batch 1 started: [2s 1s]",
			"1.0: sleeping 2s",
			"1.0: woke",
			"batch 1 done in 2s",
		)
		seq.AssertContainsSequence(t, lines,
			"1.1: sleeping 1s",
			"1.1: woke",
			"batch 1 done in 2s",
		)
	})

	t.Run("invalid settings panic", func(t *testing.T) {
		assert.Panics(t, func() { runner.New(store.New(), nil, runner.WithBatchSize(0)) })
		assert.Panics(t, func() { runner.New(nil, nil) })
	})
}

func TestParsePolicy(t *testing.T) {
	for _, tc := range []struct {
		in     string
		policy runner.Policy
		err    bool
	}{
		{"concurrent", runner.PolicyConcurrent, false},
		{"reject", runner.PolicyReject, false},
		{"queue", runner.PolicyQueue, false},
		{"", runner.PolicyConcurrent, true},
		{"serial", runner.PolicyConcurrent, true},
	} {
		t.Run(tc.in, func(t *testing.T) {
			p, err := runner.ParsePolicy(tc.in)
			if tc.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.policy, p)
			assert.Equal(t, tc.in, p.String())
		})
	}
}
