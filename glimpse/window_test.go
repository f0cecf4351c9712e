package glimpse

import (
	"errors"
	"runtime"
	"testing"
)

// onThread runs fn on a fresh goroutine locked to its own OS thread. The
// thread is never unlocked, so it exits with the goroutine and is not reused.
func onThread(fn func()) {
	done := make(chan struct{})

	go func() {
		defer close(done)

		runtime.LockOSThread()
		fn()
	}()

	<-done
}

func newHeadlessWindow(t *testing.T, handler Handler) (*Window, *HeadlessWindow) {
	t.Helper()

	backend := NewHeadless(Size{Width: 1600, Height: 900})

	class, err := RegisterClass(backend, ClassSettings{Name: "WindowTestClass"})
	if err != nil {
		t.Fatal(err)
	}

	settings := DefaultWindowSettings()
	settings.ClassName = class.Name

	w, err := Create(backend, settings, handler)
	if err != nil {
		t.Fatal(err)
	}

	return w, w.Native().(*HeadlessWindow)
}

func TestCreateResolvesSettings(t *testing.T) {
	onThread(func() {
		w, _ := newHeadlessWindow(t, nil)

		if w.InitialSize() != (Size{Width: 800, Height: 450}) {
			t.Errorf("unexpected initial size %v", w.InitialSize())
		}

		if w.Class().Name != "WindowTestClass" {
			t.Errorf("unexpected class %q", w.Class().Name)
		}

		if w.IsShowing() {
			t.Error("expected window to be hidden")
		}

		if w.SurfaceDescriptor() != nil {
			t.Error("headless windows have no surface")
		}
	})
}

func TestCreateRequiresRegisteredClass(t *testing.T) {
	onThread(func() {
		backend := NewHeadless(Size{Width: 1600, Height: 900})

		settings := DefaultWindowSettings()
		settings.ClassName = "NeverRegistered"

		_, err := Create(backend, settings, nil)
		if !errors.Is(err, ErrOSResource) {
			t.Fatalf("expected os resource error, got %v", err)
		}
	})
}

func TestWindowRejectsOtherThreads(t *testing.T) {
	var w *Window

	onThread(func() {
		w, _ = newHeadlessWindow(t, nil)
	})

	onThread(func() {
		if err := w.Show(); !errors.Is(err, ErrInvalidLifecycle) {
			t.Errorf("expected lifecycle error, got %v", err)
		}

		if err := w.Destroy(); !errors.Is(err, ErrInvalidLifecycle) {
			t.Errorf("expected lifecycle error, got %v", err)
		}
	})
}

func TestWindowPumpRequiresShowing(t *testing.T) {
	onThread(func() {
		w, _ := newHeadlessWindow(t, nil)

		if _, err := w.PumpOne(false); !errors.Is(err, ErrInvalidLifecycle) {
			t.Fatalf("expected lifecycle error, got %v", err)
		}

		if err := w.Show(); err != nil {
			t.Fatal(err)
		}

		if err := w.Show(); !errors.Is(err, ErrInvalidLifecycle) {
			t.Fatalf("expected second Show to fail, got %v", err)
		}

		dispatched, err := w.PumpAll()
		if err != nil || dispatched {
			t.Fatalf("expected nothing to dispatch, got %v, %v", dispatched, err)
		}
	})
}

func TestWindowDispatchesPostedEvents(t *testing.T) {
	onThread(func() {
		var received []EventKind

		w, native := newHeadlessWindow(t, func(ev Event) bool {
			received = append(received, ev.Kind)
			return false
		})

		if err := w.Show(); err != nil {
			t.Fatal(err)
		}

		native.Post(Event{Kind: EventFocus, Focused: true})
		native.Post(Event{Kind: EventResize, Size: Size{Width: 10, Height: 20}})

		if dispatched, err := w.PumpAll(); err != nil || !dispatched {
			t.Fatalf("expected events to be dispatched, got %v, %v", dispatched, err)
		}

		if native.Size() != (Size{Width: 10, Height: 20}) {
			t.Errorf("unexpected size %v", native.Size())
		}

		// an unconsumed close destroys the window
		native.Post(Event{Kind: EventClose})
		if err := w.RunLoop(); err != nil {
			t.Fatal(err)
		}

		if !w.IsDestroyed() {
			t.Fatal("expected window to be destroyed")
		}

		expected := []EventKind{EventFocus, EventResize, EventClose, EventDestroy}
		if len(received) != len(expected) {
			t.Fatalf("expected %v, got %v", expected, received)
		}

		for idx := range expected {
			if received[idx] != expected[idx] {
				t.Fatalf("expected %v, got %v", expected, received)
			}
		}

		if _, err := w.PumpOne(false); !errors.Is(err, ErrInvalidLifecycle) {
			t.Fatalf("expected lifecycle error after destroy, got %v", err)
		}
	})
}

func TestWindowConsumedCloseKeepsWindow(t *testing.T) {
	onThread(func() {
		w, native := newHeadlessWindow(t, func(ev Event) bool {
			return ev.Kind == EventClose
		})

		if err := w.Show(); err != nil {
			t.Fatal(err)
		}

		native.Post(Event{Kind: EventClose})
		if _, err := w.PumpOne(true); err != nil {
			t.Fatal(err)
		}

		if !w.IsShowing() {
			t.Fatal("expected window to stay open")
		}

		if err := w.Destroy(); err != nil {
			t.Fatal(err)
		}

		if err := w.Destroy(); err != nil {
			t.Fatalf("expected second Destroy to be a no-op, got %v", err)
		}
	})
}

func TestWindowRejectsReentrantPump(t *testing.T) {
	onThread(func() {
		var w *Window
		var nestedErr, destroyErr error

		w, native := newHeadlessWindow(t, func(ev Event) bool {
			if ev.Kind == EventPaint {
				_, nestedErr = w.PumpOne(false)
				destroyErr = w.Destroy()
			}

			return false
		})

		if err := w.Show(); err != nil {
			t.Fatal(err)
		}

		native.Post(Event{Kind: EventPaint})
		if _, err := w.PumpOne(true); err != nil {
			t.Fatal(err)
		}

		if !errors.Is(nestedErr, ErrInvalidLifecycle) {
			t.Errorf("expected nested pump to fail, got %v", nestedErr)
		}

		if !errors.Is(destroyErr, ErrInvalidLifecycle) {
			t.Errorf("expected destroy during dispatch to fail, got %v", destroyErr)
		}

		if w.IsDestroyed() {
			t.Error("expected window to survive")
		}
	})
}

func TestWindowInterruptStopsRunLoop(t *testing.T) {
	onThread(func() {
		w, native := newHeadlessWindow(t, func(ev Event) bool {
			return false
		})

		if err := w.Show(); err != nil {
			t.Fatal(err)
		}

		go func() {
			native.Post(Event{Kind: EventPaint})
			w.Interrupt()
		}()

		if err := w.RunLoop(); err != nil {
			t.Fatal(err)
		}

		if w.IsDestroyed() {
			t.Fatal("interrupt must not destroy the window")
		}
	})
}
