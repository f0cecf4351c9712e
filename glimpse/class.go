package glimpse

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
)

type classKey struct {
	backend string
	name    string
}

var classes struct {
	sync.Mutex
	registered map[classKey]ClassSettings
}

// RegisterClass registers a window class with the backend. Registering a class
// name a second time is a no-op that returns the first registration.
// An empty name is replaced by a generated unique name.
func RegisterClass(backend Backend, settings ClassSettings) (ClassSettings, error) {
	if settings.Name == "" {
		settings.Name = "EaselAutoClass" + rand.Text()
	}

	classes.Lock()
	defer classes.Unlock()

	key := classKey{backend: backend.Name(), name: settings.Name}
	if existing, ok := classes.registered[key]; ok {
		slog.Debug("Window class already registered", slog.String("class", settings.Name))
		return existing, nil
	}

	if err := backend.RegisterClass(settings); err != nil {
		return ClassSettings{}, fmt.Errorf("%w: register class %q: %w", ErrOSResource, settings.Name, err)
	}

	if classes.registered == nil {
		classes.registered = map[classKey]ClassSettings{}
	}

	classes.registered[key] = settings

	return settings, nil
}

func lookupClass(backend Backend, name string) (ClassSettings, bool) {
	classes.Lock()
	defer classes.Unlock()

	class, ok := classes.registered[classKey{backend: backend.Name(), name: name}]
	return class, ok
}
