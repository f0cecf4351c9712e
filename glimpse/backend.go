package glimpse

import (
	"log/slog"
	"os"
	"strings"
)

var backendFactories = map[string]func() Backend{}

// preferred order of backends if EASEL_BACKEND is not set
var backendPreference = []string{"win32", "glfw", "headless"}

func registerBackend(name string, factory func() Backend) {
	backendFactories[name] = factory
}

func init() {
	registerBackend("headless", func() Backend {
		return NewHeadless(Size{Width: 1920, Height: 1080})
	})
}

// DefaultBackend returns the backend named by the EASEL_BACKEND environment
// variable, or the best backend available on this platform.
func DefaultBackend() Backend {
	if name := strings.ToLower(os.Getenv("EASEL_BACKEND")); name != "" {
		if factory, ok := backendFactories[name]; ok {
			return factory()
		}

		slog.Warn("Backend not available on this platform", slog.String("backend", name))
	}

	for _, name := range backendPreference {
		if factory, ok := backendFactories[name]; ok {
			return factory()
		}
	}

	// unreachable, headless is always registered
	return NewHeadless(Size{Width: 1920, Height: 1080})
}
