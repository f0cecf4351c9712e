package orion

import (
	"errors"
	"testing"
)

func TestHandleIgnoresNil(t *testing.T) {
	Handle(nil, "nothing to see")
}

func TestHandlePanicsWithWrappedError(t *testing.T) {
	defer func() {
		err, ok := recover().(error)
		if !ok {
			t.Fatal("expected to recover an error")
		}

		if !errors.Is(err, ErrSurface) {
			t.Fatalf("expected wrapped surface error, got %v", err)
		}

		if err.Error() != "draw frame 3: surface error" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	}()

	Handle(ErrSurface, "draw frame %d", 3)
}
