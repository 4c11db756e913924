// Package tui is the interactive front end: a bubbletea program with a
// button that launches a batch and a scrolling list of every result so far.
package tui

import (
	"context"
	"strings"
	"sync"

	"github.com/amonks/fanout/internal/mutex"
	"github.com/amonks/fanout/runner"
	"github.com/amonks/fanout/store"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// logBuffer bounds how many log lines can wait for the program to pick them
// up. Lines beyond it are dropped.
const logBuffer = 1024

var zoneOnce sync.Once

// TUI is both the program and the runner's view of it: pass it to
// runner.New as the Notifier and, with runner.WithLog, as the log writer.
type TUI struct {
	mu     *mutex.Mutex
	store  *store.Store
	runner *runner.Runner

	ctx  context.Context
	p    *tea.Program
	logs chan string
}

var (
	_ runner.Notifier = &TUI{}
)

// New prepares a TUI without starting it. Redraw requests and log lines
// that arrive before Start are delivered once it runs.
func New(ctx context.Context, st *store.Store, opts ...tea.ProgramOption) *TUI {
	zoneOnce.Do(zone.NewGlobal)

	t := &TUI{
		mu:    mutex.New("tui"),
		ctx:   ctx,
		store: st,
		logs:  make(chan string, logBuffer),
	}
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithMouseCellMotion(),
	}, opts...)
	t.p = tea.NewProgram(&Model{tui: t}, opts...)
	return t
}

// Start runs the program until the user quits or the context given to New
// is done. Launches go to r.
func (t *TUI) Start(r *runner.Runner) error {
	t.mu.Lock("Start")
	t.runner = r
	t.mu.Unlock()

	stop := make(chan struct{})
	defer close(stop)
	go t.forwardLogs(stop)

	if _, err := t.p.Run(); err != nil && err != tea.ErrProgramKilled {
		return err
	}
	return nil
}

// RequestRedraw implements runner.Notifier. It never blocks.
func (t *TUI) RequestRedraw() {
	go t.p.Send(msgStoreUpdated{})
}

// Write implements io.Writer for the runner's log. Each write should be
// whole lines, which runner.WithLog guarantees.
func (t *TUI) Write(bs []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(bs), "\n"), "\n") {
		select {
		case t.logs <- line:
		default:
		}
	}
	return len(bs), nil
}

// forwardLogs sends log lines to the program one at a time, so that they
// arrive in the order they were written. It returns once stop is closed or
// the TUI's context is done.
func (t *TUI) forwardLogs(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-t.ctx.Done():
			return
		case line := <-t.logs:
			t.p.Send(msgLog(line))
		}
	}
}

func (t *TUI) launch() (int, error) {
	t.mu.Lock("launch")
	r := t.runner
	t.mu.Unlock()

	if r == nil {
		panic("launch from unstarted tui")
	}
	return r.Launch()
}

func (t *TUI) status() runner.Status {
	t.mu.Lock("status")
	r := t.runner
	t.mu.Unlock()

	if r == nil {
		return runner.Status{}
	}
	return r.Status()
}

type (
	msgInitialized  struct{}
	msgStoreUpdated struct{}
	msgLog          string
)
