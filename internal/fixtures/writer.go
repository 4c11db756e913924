package fixtures

import (
	"bytes"
	"strings"

	"github.com/amonks/fanout/internal/ansi"
	"github.com/amonks/fanout/internal/mutex"
)

// Writer is a concurrency-safe log sink for tests.
type Writer struct {
	mu  *mutex.Mutex
	buf bytes.Buffer
}

func NewWriter() *Writer {
	return &Writer{mu: mutex.New("testwriter")}
}

func (w *Writer) Write(bs []byte) (int, error) {
	defer w.mu.Lock("Write").Unlock()
	return w.buf.Write(bs)
}

// String returns everything written so far, with styling removed.
func (w *Writer) String() string {
	defer w.mu.Lock("String").Unlock()
	return ansi.Strip(w.buf.String())
}

// Lines returns the non-empty lines written so far, with styling removed.
func (w *Writer) Lines() []string {
	var out []string
	for _, l := range strings.Split(w.String(), "\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
