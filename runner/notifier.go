package runner

// Notifier is told when the store has changed and the front end should
// redraw. RequestRedraw must not block; there is no acknowledgment.
type Notifier interface {
	RequestRedraw()
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func()

func (f NotifierFunc) RequestRedraw() { f() }

type nopNotifier struct{}

func (nopNotifier) RequestRedraw() {}
