// Package store holds the accumulated results of every finished batch.
//
// A Store is append-only: entries are never removed or reordered, so its
// length only grows over the life of the process. Producers append whole
// batches at once and readers take copies, and both hold the lock only
// for the duration of a slice copy.
package store

import "github.com/amonks/fanout/internal/mutex"

type Store struct {
	mu      *mutex.Mutex
	results []string
}

func New() *Store {
	return &Store{mu: mutex.New("store")}
}

// Append adds every entry of batch to the end of the store, in order. The
// entries of one call are always contiguous, even if other batches append
// concurrently.
func (s *Store) Append(batch []string) {
	if len(batch) == 0 {
		return
	}
	defer s.mu.Lock("Append").Unlock()
	s.results = append(s.results, batch...)
}

// Snapshot returns a copy of every result, oldest first. The caller owns
// the returned slice.
func (s *Store) Snapshot() []string {
	defer s.mu.Lock("Snapshot").Unlock()
	out := make([]string, len(s.results))
	copy(out, s.results)
	return out
}

func (s *Store) Len() int {
	defer s.mu.Lock("Len").Unlock()
	return len(s.results)
}
