package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/amonks/fanout/config"
	"github.com/amonks/fanout/internal/ansi"
	"github.com/amonks/fanout/internal/fixtures"
	"github.com/amonks/fanout/runner"
	"github.com/amonks/fanout/store"
	"github.com/stretchr/testify/assert"
)

func TestFirst(t *testing.T) {
	f := first[string]{}
	assert.Equal(t, "", f.get())

	f.set("one")
	assert.Equal(t, "one", f.get())

	f.set("two")
	assert.Equal(t, "one", f.get())
}

func TestParseDurations(t *testing.T) {
	ds, err := parseDurations("4,1, 3,2,1")
	assert.NoError(t, err)
	assert.Equal(t, []int{4, 1, 3, 2, 1}, ds)

	_, err = parseDurations("4,x")
	assert.Error(t, err)

	_, err = parseDurations("-1")
	assert.Error(t, err)

	_, err = parseDurations("3601")
	assert.Error(t, err)
}

const unit = time.Millisecond

func TestRunBatches(t *testing.T) {
	t.Run("runs every batch", func(t *testing.T) {
		st := store.New()
		r := runner.New(st, nil, runner.WithSleep(fixtures.NewSleeper().Sleep))
		assert.NoError(t, runBatches(context.Background(), r, 3))
		assert.Equal(t, 15, st.Len())
	})

	t.Run("waits out refusals", func(t *testing.T) {
		st := store.New()
		r := runner.New(st, nil,
			runner.WithPolicy(runner.PolicyReject),
			runner.WithSleep(fixtures.NewSleeper().Scaled(unit).Sleep))
		assert.NoError(t, runBatches(context.Background(), r, 3))
		assert.Equal(t, 15, st.Len())
	})

	t.Run("stops waiting when canceled", func(t *testing.T) {
		gate := make(chan struct{})
		defer close(gate)
		r := runner.New(store.New(), nil, runner.WithSleep(fixtures.NewSleeper().Gated(gate).Sleep))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, runBatches(ctx, r, 1), context.Canceled)
	})
}

func TestReload(t *testing.T) {
	t.Run("applies valid settings", func(t *testing.T) {
		w := fixtures.NewWriter()
		r := runner.New(store.New(), nil)
		cfg := config.Default()
		cfg.Display.Color = "ascii"
		cfg.Runner.BatchSize = 3

		reload(r, w)(cfg, nil)
		assert.Equal(t, 3, r.Settings().BatchSize)
		assert.NotContains(t, w.String(), "config:")
	})

	t.Run("keeps settings when the runner section is invalid", func(t *testing.T) {
		w := fixtures.NewWriter()
		r := runner.New(store.New(), nil)
		cfg := config.Default()
		cfg.Display.Color = "ascii"
		cfg.Runner.BatchSize = 0

		reload(r, w)(cfg, nil)
		assert.Equal(t, runner.DefaultSettings(), r.Settings())
		assert.Contains(t, w.String(), "config: ")
	})

	t.Run("reports load errors", func(t *testing.T) {
		w := fixtures.NewWriter()
		r := runner.New(store.New(), nil)

		reload(r, w)(config.Default(), config.ErrInvalid)
		assert.Equal(t, runner.DefaultSettings(), r.Settings())
		assert.Contains(t, w.String(), "config: invalid config")
	})
}

func TestHelpText(t *testing.T) {
	text := ansi.Strip(helpText())
	for _, section := range []string{"USAGE", "FLAGS", "CONFIG", "VERSION"} {
		assert.Contains(t, text, section)
	}
	assert.Contains(t, text, "-durations=")
	assert.True(t, strings.HasPrefix(text, "Fanout runs batches"))
}
