package orion

import (
	"sync"

	"github.com/oliverbestmann/easel/glimpse"
)

// resizeSlot carries at most one resize request from the window thread to the
// owning goroutine. The publisher waits until its request was consumed, so
// a later size can never overwrite an earlier one that was not yet applied.
type resizeSlot struct {
	mu      sync.Mutex
	cond    sync.Cond
	size    glimpse.Size
	pending bool
	closed  bool

	// number of requests published, only used for diagnostics
	published uint64
}

func newResizeSlot() *resizeSlot {
	r := &resizeSlot{}
	r.cond.L = &r.mu
	return r
}

// publish stores a new request and blocks until it was consumed or the slot
// was closed. Returns false if the request was dropped because of close.
func (r *resizeSlot) publish(size glimpse.Size) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	// an earlier publisher on another goroutine might still be waiting
	for r.pending && !r.closed {
		r.cond.Wait()
	}

	if r.closed {
		return false
	}

	r.size = size
	r.pending = true
	r.published++
	r.cond.Broadcast()

	for r.pending && !r.closed {
		r.cond.Wait()
	}

	return !r.pending
}

// take returns the pending request, if any, without clearing it.
func (r *resizeSlot) take() (glimpse.Size, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.size, r.pending
}

// done clears the pending request and releases its publisher.
func (r *resizeSlot) done() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending {
		r.pending = false
		r.cond.Broadcast()
	}
}

// close releases all current and future publishers.
func (r *resizeSlot) close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.cond.Broadcast()
}
