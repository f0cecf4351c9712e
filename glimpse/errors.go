package glimpse

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLifecycle is returned when a window operation is called in the
	// wrong state, from the wrong OS thread or reentrantly from within event dispatch.
	ErrInvalidLifecycle = errors.New("invalid lifecycle")

	// ErrOSResource is returned when the operating system refused to create
	// a class or window.
	ErrOSResource = errors.New("os resource error")
)

var (
	errWrongThread    = errors.New("cross thread window access is not allowed")
	errAlreadyShowing = errors.New("window is already showing")
	errNotShowing     = errors.New("window must be showing to process events")
	errDestroyed      = errors.New("window is destroyed")
	errReentrant      = errors.New("window events cannot be pumped from inside event dispatch")
	errForeignThread  = errors.New("library is bound to another thread")
)

func lifecycleError(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidLifecycle, err)
}
