package watcher

import (
	"fmt"
	"sync"
)

var OriginalWatch = Watch

var (
	mocks   map[string]chan []EventInfo
	mocksmu sync.Mutex
)

// Mock replaces Watch with an in-memory fake driven by Dispatch.
func Mock() {
	mocksmu.Lock()
	defer mocksmu.Unlock()

	mocks = map[string]chan []EventInfo{}
	Watch = func(inputPath string) (<-chan []EventInfo, func(), error) {
		mocksmu.Lock()
		defer mocksmu.Unlock()

		mock, hasMock := mocks[inputPath]
		if !hasMock {
			mock = make(chan []EventInfo)
			mocks[inputPath] = mock
		}
		var once sync.Once
		stop := func() { once.Do(func() { close(mock) }) }
		return mock, stop, nil
	}
}

// Dispatch delivers a change to eventPath to whoever is watching
// watchedPath. It blocks until the event is received.
func Dispatch(watchedPath, eventPath string) {
	mocksmu.Lock()
	mock, hasMock := mocks[watchedPath]
	mocksmu.Unlock()

	if !hasMock {
		panic(fmt.Errorf("can't dispatch on unwatched path '%s'", watchedPath))
	}
	mock <- []EventInfo{{Path: eventPath}}
}

// IsWatched reports whether anything has called Watch on path since Mock.
func IsWatched(path string) bool {
	mocksmu.Lock()
	defer mocksmu.Unlock()
	_, ok := mocks[path]
	return ok
}

func Unmock() {
	mocksmu.Lock()
	defer mocksmu.Unlock()
	mocks = nil
	Watch = OriginalWatch
}
