package orion

import (
	"errors"

	"github.com/oliverbestmann/easel/glimpse"
)

var (
	// ErrConfiguration is returned by New for invalid or contradicting settings.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInvalidLifecycle is returned if an operation is called in the wrong
	// state, from the wrong thread or from inside event dispatch.
	ErrInvalidLifecycle = glimpse.ErrInvalidLifecycle

	// ErrOSResource is returned if a window, class or surface could not be created.
	ErrOSResource = glimpse.ErrOSResource

	// ErrSurface is returned if the surface failed to begin, end or resize a frame.
	ErrSurface = errors.New("surface error")
)
