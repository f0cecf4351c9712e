package orion

import "sync/atomic"

// handoff passes a single value, or the error that prevented it, from one
// goroutine to another. Closing ready orders the write before every read.
type handoff[T any] struct {
	ready chan struct{}
	value T
	err   error

	// claimed by the first publish or fail
	claimed atomic.Bool
}

func newHandoff[T any]() *handoff[T] {
	return &handoff[T]{ready: make(chan struct{})}
}

func (h *handoff[T]) publish(value T) {
	h.claim()
	h.value = value
	close(h.ready)
}

func (h *handoff[T]) fail(err error) {
	h.claim()
	h.err = err
	close(h.ready)
}

// claim panics if a value or an error was already set. It runs before the
// write, so a second publish never touches a value readers may hold.
func (h *handoff[T]) claim() {
	if !h.claimed.CompareAndSwap(false, true) {
		panic("value already set")
	}
}

// wait blocks until a value or an error was published.
func (h *handoff[T]) wait() (T, error) {
	<-h.ready
	return h.value, h.err
}

// Get returns the published value. It must only be called after wait returned.
func (h *handoff[T]) Get() T {
	select {
	case <-h.ready:
		return h.value
	default:
		panic("must only be called after the value was published")
	}
}
