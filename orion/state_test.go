package orion

import (
	"errors"
	"testing"
	"time"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateCreated, "Created"},
		{StateRunning, "Running"},
		{StateClosed, "Closed"},
		{StateDestroyed, "Destroyed"},
		{State(7), "State(7)"},
	}

	for _, test := range tests {
		if actual := test.state.String(); actual != test.expected {
			t.Errorf("expected %q, got %q", test.expected, actual)
		}
	}
}

func TestLifecycleOnlyMovesForward(t *testing.T) {
	l := newLifecycle()

	if !l.advance(StateCreated, StateRunning) {
		t.Fatal("expected Created -> Running")
	}

	if l.advance(StateCreated, StateRunning) {
		t.Fatal("advanced from a state that is not current")
	}

	if l.advance(StateRunning, StateCreated) {
		t.Fatal("advanced backwards")
	}

	if previous := l.forward(StateDestroyed); previous != StateRunning {
		t.Fatalf("expected to leave Running, left %s", previous)
	}

	if previous := l.forward(StateClosed); previous != StateDestroyed {
		t.Fatalf("expected forward to be a no-op, left %s", previous)
	}

	if state := l.Load(); state != StateDestroyed {
		t.Fatalf("expected Destroyed, got %s", state)
	}
}

func TestLifecycleWaitUntil(t *testing.T) {
	l := newLifecycle()

	observed := make(chan State)
	go func() {
		observed <- l.waitUntil(StateClosed)
	}()

	l.advance(StateCreated, StateRunning)

	select {
	case state := <-observed:
		t.Fatalf("waiter returned early in state %s", state)
	case <-time.After(20 * time.Millisecond):
	}

	l.forward(StateDestroyed)

	if state := <-observed; state != StateDestroyed {
		t.Fatalf("expected waiter to observe Destroyed, got %s", state)
	}
}

func TestHandoff(t *testing.T) {
	h := newHandoff[int]()

	go h.publish(42)

	value, err := h.wait()
	if err != nil || value != 42 {
		t.Fatalf("unexpected result %d, %v", value, err)
	}

	if h.Get() != 42 {
		t.Fatal("expected published value")
	}

	for name, publish := range map[string]func(){
		"publish": func() { h.publish(1) },
		"fail":    func() { h.fail(errors.New("late")) },
	} {
		if !panics(publish) {
			t.Fatalf("expected second %s to panic", name)
		}

		value, err := h.wait()
		if err != nil || value != 42 || h.Get() != 42 {
			t.Fatalf("second %s changed the published value to %d, %v", name, value, err)
		}
	}
}

func panics(fn func()) (panicked bool) {
	defer func() {
		panicked = recover() != nil
	}()

	fn()
	return false
}
