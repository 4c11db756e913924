package config

import (
	"context"
	"path/filepath"

	"github.com/amonks/fanout/internal/watcher"
)

// Watch calls onChange with the freshly loaded config, or the error from
// loading it, each time the file at path changes, until ctx is done.
//
// It watches the file's directory rather than the file itself, since many
// editors save by replacing the file.
func Watch(ctx context.Context, path string, onChange func(Config, error)) error {
	events, stop, err := watcher.Watch(filepath.Dir(path))
	if err != nil {
		return err
	}

	go func() {
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return
			case evs, ok := <-events:
				if !ok {
					return
				}
				if touches(evs, path) {
					onChange(Load(path))
				}
			}
		}
	}()
	return nil
}

func touches(evs []watcher.EventInfo, path string) bool {
	for _, ev := range evs {
		if filepath.Base(ev.Path) == filepath.Base(path) {
			return true
		}
	}
	return false
}
