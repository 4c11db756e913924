// Package outputwriter turns a stream of arbitrary writes into whole lines,
// so that a consumer like the tui log pane never sees half a line.
package outputwriter

import (
	"bufio"
	"io"

	"github.com/amonks/fanout/internal/mutex"
)

func New(w io.Writer) io.Writer {
	return &lineBufferedWriter{buf: bufio.NewWriter(w), mu: mutex.New("linebuffered")}
}

type lineBufferedWriter struct {
	buf *bufio.Writer
	mu  *mutex.Mutex
}

func (w *lineBufferedWriter) Write(bs []byte) (n int, err error) {
	defer w.mu.Lock("Write").Unlock()

	for _, b := range bs {
		if err = w.buf.WriteByte(b); err != nil {
			return n, err
		}
		n++
		if b == '\n' {
			if err = w.buf.Flush(); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}
