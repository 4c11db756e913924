package store_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/amonks/fanout/internal/seq"
	"github.com/amonks/fanout/store"
	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		st := store.New()
		assert.Empty(t, st.Snapshot())
		assert.Equal(t, 0, st.Len())
	})

	t.Run("append preserves order and duplicates", func(t *testing.T) {
		st := store.New()
		st.Append([]string{"b", "a", "b"})
		st.Append([]string{"c"})
		assert.Equal(t, []string{"b", "a", "b", "c"}, st.Snapshot())
		assert.Equal(t, 4, st.Len())
	})

	t.Run("empty append is a no-op", func(t *testing.T) {
		st := store.New()
		st.Append(nil)
		st.Append([]string{})
		assert.Equal(t, 0, st.Len())
	})

	t.Run("snapshot is idempotent", func(t *testing.T) {
		st := store.New()
		st.Append([]string{"a", "b"})
		assert.Equal(t, st.Snapshot(), st.Snapshot())
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		st := store.New()
		st.Append([]string{"a", "b"})
		snap := st.Snapshot()
		snap[0] = "changed"
		st.Append([]string{"c"})
		assert.Equal(t, []string{"a", "b", "c"}, st.Snapshot())
		assert.Equal(t, []string{"changed", "b"}, snap)
	})

	t.Run("appended batches are not modified by the caller", func(t *testing.T) {
		st := store.New()
		batch := []string{"a", "b"}
		st.Append(batch)
		batch[0] = "changed"
		assert.Equal(t, []string{"a", "b"}, st.Snapshot())
	})

	t.Run("concurrent batches stay contiguous", func(t *testing.T) {
		const batches, size = 50, 5
		st := store.New()

		var wg sync.WaitGroup
		for b := range batches {
			wg.Add(1)
			go func() {
				defer wg.Done()
				batch := make([]string, size)
				for i := range batch {
					batch[i] = fmt.Sprintf("%d.%d", b, i)
				}
				st.Append(batch)
			}()
		}

		// Read while writers are running, to check that the length never
		// shrinks and only ever moves in whole batches.
		last := 0
		for st.Len() < batches*size {
			l := len(st.Snapshot())
			assert.GreaterOrEqual(t, l, last)
			assert.Zero(t, l%size)
			last = l
		}
		wg.Wait()

		results := st.Snapshot()
		assert.Len(t, results, batches*size)
		for b := range batches {
			seq.AssertContainsRun(t, results,
				fmt.Sprintf("%d.0", b),
				fmt.Sprintf("%d.1", b),
				fmt.Sprintf("%d.2", b),
				fmt.Sprintf("%d.3", b),
				fmt.Sprintf("%d.4", b),
			)
		}
	})
}
