package glimpse

import (
	"sync"
	"sync/atomic"
)

// dispatchGuard marks the window as busy while events are being dispatched.
type dispatchGuard struct {
	busy atomic.Bool
}

// dispatchToken is handed out by dispatchGuard.acquire and must be released
// exactly once, typically with defer so that a panicking handler
// leaves the window in a consistent state.
type dispatchToken struct {
	guard *dispatchGuard
}

func (g *dispatchGuard) acquire() (dispatchToken, bool) {
	if !g.busy.CompareAndSwap(false, true) {
		return dispatchToken{}, false
	}

	return dispatchToken{guard: g}, true
}

func (g *dispatchGuard) held() bool {
	return g.busy.Load()
}

func (t *dispatchToken) release() {
	if t.guard != nil {
		t.guard.busy.Store(false)
		t.guard = nil
	}
}

// threadAffinity binds a library that only works on a single OS thread to the
// first thread that uses it.
type threadAffinity struct {
	mu     sync.Mutex
	thread uint64
	bound  bool
}

// claim binds the library to thread if it is unbound. It fails if the library
// is bound to another thread.
func (a *threadAffinity) claim(thread uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.bound && a.thread != thread {
		return lifecycleError(errForeignThread)
	}

	a.thread = thread
	a.bound = true
	return nil
}

// reset unbinds the library, the next claim may come from any thread.
func (a *threadAffinity) reset() {
	a.mu.Lock()
	a.bound = false
	a.mu.Unlock()
}
