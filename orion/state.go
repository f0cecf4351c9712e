package orion

import (
	"sync"
)

//go:generate go tool stringer -type State -trimprefix State

// State is the lifecycle of a Program. It only ever moves forward.
type State uint32

const (
	// StateCreated is the state of a Program returned by New.
	StateCreated State = iota

	// StateRunning is entered by Program.Run.
	StateRunning

	// StateClosed is entered by the window thread once its event pump returned.
	StateClosed

	// StateDestroyed is entered by Program.Destroy.
	StateDestroyed
)

// lifecycle holds a State shared between the owning goroutine and the
// window thread. Waiters block on a condition variable.
type lifecycle struct {
	mu    sync.Mutex
	cond  sync.Cond
	state State
}

func newLifecycle() *lifecycle {
	l := &lifecycle{state: StateCreated}
	l.cond.L = &l.mu
	return l
}

func (l *lifecycle) Load() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state
}

// advance moves from one state to the next. Nothing changes if the
// current state is not from.
func (l *lifecycle) advance(from, to State) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != from || to <= from {
		return false
	}

	l.state = to
	l.cond.Broadcast()
	return true
}

// forward moves to the given state if it lies ahead of the current one
// and returns the state it moved away from.
func (l *lifecycle) forward(to State) State {
	l.mu.Lock()
	defer l.mu.Unlock()

	previous := l.state
	if to > previous {
		l.state = to
		l.cond.Broadcast()
	}

	return previous
}

// waitUntil blocks until the state is at least target and returns
// the state observed.
func (l *lifecycle) waitUntil(target State) State {
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.state < target {
		l.cond.Wait()
	}

	return l.state
}
