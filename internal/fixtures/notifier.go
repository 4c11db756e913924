package fixtures

import "sync/atomic"

// Notifier counts redraw requests.
type Notifier struct {
	n atomic.Int64
	c chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{c: make(chan struct{}, 1024)}
}

func (n *Notifier) RequestRedraw() {
	n.n.Add(1)
	select {
	case n.c <- struct{}{}:
	default:
	}
}

func (n *Notifier) Count() int { return int(n.n.Load()) }

// Redraws receives once per redraw request.
func (n *Notifier) Redraws() <-chan struct{} { return n.c }
