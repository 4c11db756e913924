// Package printer is the non-interactive front end. It prints log lines with
// a colored gutter naming their source, and prints each result once, as
// soon as its batch is published.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/amonks/fanout/internal/color"
	"github.com/amonks/fanout/internal/mutex"
	"github.com/amonks/fanout/internal/styles"
	"github.com/amonks/fanout/runner"
	"github.com/amonks/fanout/store"
	"github.com/charmbracelet/lipgloss"
)

const (
	KeyLog     = "@log"
	KeyResults = "results"
)

type Printer struct {
	mu          *mutex.Mutex
	stdout      io.Writer
	store       *store.Store
	gutterWidth int
	lastKey     string

	// printed is how many results from the store have been printed.
	printed int
}

var _ runner.Notifier = &Printer{}

func New(stdout io.Writer, st *store.Store) *Printer {
	if stdout == nil {
		panic("nil stdout in printer")
	}
	return &Printer{
		mu:          mutex.New("printer"),
		stdout:      stdout,
		store:       st,
		gutterWidth: max(len(KeyLog), len(KeyResults)),
	}
}

// RequestRedraw implements runner.Notifier by printing every result that
// has not been printed yet.
func (p *Printer) RequestRedraw() {
	results := p.store.Snapshot()

	defer p.mu.Lock("RequestRedraw").Unlock()
	if len(results) <= p.printed {
		return
	}
	for _, r := range results[p.printed:] {
		p.writeLine(KeyResults, styles.Result.Render(r))
	}
	p.printed = len(results)
}

// Write prints message under key, one line at a time. The key is only
// printed when it differs from the previous line's.
func (p *Printer) Write(key, message string) {
	defer p.mu.Lock("Write:" + key).Unlock()

	for _, l := range strings.Split(message, "\n") {
		if l == "" {
			continue
		}
		p.writeLine(key, l)
	}
}

func (p *Printer) writeLine(key, line string) {
	k, space := "", ""
	if key != p.lastKey {
		if p.lastKey != "" {
			space = "\n"
		}
		k, p.lastKey = key, key
	}
	keyStyle := keyStyle.Copy().Foreground(color.Hash(key))
	fmt.Fprintln(p.stdout, space+lipgloss.JoinHorizontal(
		lipgloss.Top,
		keyStyle.Width(p.gutterWidth).Render(k),
		line,
	))
}

// Writer returns an io.Writer whose output is printed under id.
func (p *Printer) Writer(id string) io.Writer {
	return printerWriter{p, id}
}

var _ io.Writer = printerWriter{}

type printerWriter struct {
	printer *Printer
	id      string
}

func (w printerWriter) Write(bs []byte) (int, error) {
	w.printer.Write(w.id, string(bs))
	return len(bs), nil
}

var keyStyle = lipgloss.NewStyle().
	Height(1).
	Align(lipgloss.Right).
	Margin(0, 2)
