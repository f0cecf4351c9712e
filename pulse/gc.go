package pulse

import (
	"fmt"
	"log/slog"
	"runtime"
)

type Releaser interface {
	Release()
}

// releaseOnCollect releases value once it becomes unreachable. Calling
// Release explicitly before that is fine as long as Release is idempotent.
func releaseOnCollect[P interface {
	*E
	Releaser
}, E any](value P) P {
	runtime.SetFinalizer(value, func(value P) {
		slog.Debug("Releasing unreachable gpu resource", slog.String("type", fmt.Sprintf("%T", value)))
		value.Release()
	})

	return value
}
