// Package watcher reports file system changes under a path, batched so that
// a burst of writes (an editor saving a file) arrives as one event.
package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amonks/fanout/internal/mutex"
	"github.com/gobwas/glob"
	"github.com/rjeczalik/notify"
)

type EventInfo struct {
	Path  string
	Event string
}

const debounceTime = 200 * time.Millisecond

// Watch watches inputPath, which may contain a glob, until stop is called.
// Event paths are relative to the working directory when they are inside
// it.
var Watch = func(inputPath string) (<-chan []EventInfo, func(), error) {
	var stopped bool
	done := make(chan struct{})

	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, err
	}

	watchPath, globToMatch := split(inputPath)

	c := make(chan notify.EventInfo, 1)
	out := make(chan EventInfo)

	go func() {
		for ev := range c {
			p := strings.TrimPrefix(ev.Path(), cwd+string(os.PathSeparator))
			if globToMatch == nil || globToMatch.Match(p) {
				out <- EventInfo{
					Path:  p,
					Event: strings.TrimPrefix(ev.Event().String(), "notify."),
				}
			}
		}
		close(out)
	}()

	stop := func() {
		if stopped {
			return
		}
		stopped = true
		notify.Stop(c)
		close(c)
		close(done)
	}

	if err := notify.Watch(watchPath, c, notify.All); err != nil {
		stop()
		return nil, nil, err
	}

	return debounce(debounceTime, out, done), stop, nil
}

type debounced[T any] struct {
	mu      *mutex.Mutex
	coll    []T
	waiting bool
}

// debounce batches events from c that arrive within dur of the first. A
// batch waits for the reader rather than being dropped; events that arrive
// meanwhile form the next batch. Pending batches are abandoned once done is
// closed.
func debounce(dur time.Duration, c <-chan EventInfo, done <-chan struct{}) <-chan []EventInfo {
	debounced := &debounced[EventInfo]{mu: mutex.New("debounce")}

	debouncedC := make(chan []EventInfo)

	var flush func()
	flush = func() {
		debounced.mu.Lock("flush")
		coll := debounced.coll
		debounced.coll = nil
		debounced.mu.Unlock()

		select {
		case debouncedC <- coll:
		case <-done:
			return
		}

		defer debounced.mu.Lock("flushed").Unlock()
		if len(debounced.coll) > 0 {
			time.AfterFunc(dur, flush)
			return
		}
		debounced.waiting = false
	}

	go func() {
		for ev := range c {
			debounced.mu.Lock("ev")
			debounced.coll = append(debounced.coll, ev)
			if debounced.waiting {
				debounced.mu.Unlock()
				continue
			}
			debounced.waiting = true
			debounced.mu.Unlock()

			time.AfterFunc(dur, flush)
		}
	}()

	return debouncedC
}

// split breaks a given input path (which may contain a glob) into two parts: a
// watcher part and a glob part.
//
// For example, given the input "conf/**/*.toml",
//   - we will set up a recursive watch at conf
//   - we will match events from that watch against the glob "conf/**/*.toml"
//
// so the values returned from split will be ("conf/...", Glob["conf/**/*.toml"]).
func split(input string) (string, glob.Glob) {
	input = filepath.Clean(input)
	segments := strings.Split(input, "/")
	for i, seg := range segments {
		if strings.Contains(seg, "*") {
			w := strings.Join(segments[:i], "/")
			return filepath.Join(w, "..."), glob.MustCompile(input)
		}
	}
	return input, nil
}
