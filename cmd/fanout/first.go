package main

import "sync"

// first holds the first value it is given and ignores the rest.
type first[T any] struct {
	mu     sync.Mutex
	hasVal bool
	val    T
}

func (f *first[T]) set(val T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.hasVal {
		f.hasVal = true
		f.val = val
	}
}

func (f *first[T]) get() T {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.val
}
