package glimpse

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// Backend creates native windows. All methods except Name are called
// on the window thread.
type Backend interface {
	Name() string
	ScreenSize() (Size, error)
	RegisterClass(settings ClassSettings) error
	CreateWindow(settings WindowSettings, class ClassSettings, dispatch Handler) (Native, error)
}

// Native is the backend specific part of a Window. Only Wake may be called
// from a goroutine other than the window thread.
type Native interface {
	Show() error
	Visible() bool
	Destroyed() bool

	// Next dispatches the next pending event. With block set it waits until an
	// event arrives or Wake is called. Returns true if an event was dispatched.
	Next(block bool) (bool, error)

	Wake()

	Size() Size
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Destroy()
}

// Window owns one native window. It is created on the window thread and every
// method except the accessors of immutable state and Interrupt must be
// called on that thread.
type Window struct {
	backend Backend
	native  Native

	settings    WindowSettings
	class       ClassSettings
	initialSize Size
	surface     *wgpu.SurfaceDescriptor

	thread  uint64
	handler Handler
	guard   dispatchGuard

	interrupted atomic.Bool
	destroyed   bool
}

// Create creates a hidden or visible window of a class previously registered
// with RegisterClass. The calling goroutine must be locked to its OS thread,
// it becomes the window thread.
func Create(backend Backend, settings WindowSettings, handler Handler) (*Window, error) {
	screen, err := backend.ScreenSize()
	if err != nil {
		return nil, fmt.Errorf("%w: query screen size: %w", ErrOSResource, err)
	}

	settings = settings.resolve(screen)

	class, ok := lookupClass(backend, settings.ClassName)
	if !ok {
		return nil, fmt.Errorf("%w: window class %q is not registered", ErrOSResource, settings.ClassName)
	}

	w := &Window{
		backend:  backend,
		settings: settings,
		class:    class,
		thread:   currentThread(),
		handler:  handler,
	}

	native, err := backend.CreateWindow(settings, class, w.dispatch)
	if err != nil {
		return nil, fmt.Errorf("%w: create window: %w", ErrOSResource, err)
	}

	w.native = native
	w.initialSize = native.Size()
	w.surface = native.SurfaceDescriptor()

	slog.Info("Window created",
		slog.String("backend", backend.Name()),
		slog.String("title", settings.Title),
		slog.Int("width", int(w.initialSize.Width)),
		slog.Int("height", int(w.initialSize.Height)),
	)

	return w, nil
}

func (w *Window) dispatch(ev Event) bool {
	if w.handler == nil {
		return false
	}

	return w.handler(ev)
}

// Settings returns the resolved window settings.
func (w *Window) Settings() WindowSettings {
	return w.settings
}

func (w *Window) Class() ClassSettings {
	return w.class
}

// InitialSize is the size of the drawable area right after creation.
func (w *Window) InitialSize() Size {
	return w.initialSize
}

// SurfaceDescriptor describes the window to wgpu. It is nil for
// backends that cannot be rendered to.
func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return w.surface
}

// Native returns the backend specific window.
func (w *Window) Native() Native {
	return w.native
}

func (w *Window) IsDestroyed() bool {
	return w.destroyed || w.native.Destroyed()
}

func (w *Window) IsShowing() bool {
	return !w.IsDestroyed() && w.native.Visible()
}

func (w *Window) Show() error {
	if err := w.checkThread(); err != nil {
		return err
	}

	if w.IsDestroyed() {
		return lifecycleError(errDestroyed)
	}

	if w.native.Visible() {
		return lifecycleError(errAlreadyShowing)
	}

	if w.guard.held() {
		return lifecycleError(errReentrant)
	}

	if err := w.native.Show(); err != nil {
		return fmt.Errorf("%w: show window: %w", ErrOSResource, err)
	}

	return nil
}

// PumpOne dispatches a single event. If block is set it waits for the next event.
func (w *Window) PumpOne(block bool) (bool, error) {
	token, err := w.enterDispatch()
	if err != nil {
		return false, err
	}

	defer token.release()

	return w.native.Next(block)
}

// PumpAll dispatches all pending events without waiting.
func (w *Window) PumpAll() (bool, error) {
	token, err := w.enterDispatch()
	if err != nil {
		return false, err
	}

	defer token.release()

	var dispatched bool
	for !w.IsDestroyed() {
		ok, err := w.native.Next(false)
		if err != nil {
			return dispatched, err
		}

		if !ok {
			break
		}

		dispatched = true
	}

	return dispatched, nil
}

// RunLoop dispatches events until the window is destroyed or Interrupt is called.
func (w *Window) RunLoop() error {
	token, err := w.enterDispatch()
	if err != nil {
		return err
	}

	defer token.release()

	for !w.IsDestroyed() && !w.interrupted.Load() {
		if _, err := w.native.Next(true); err != nil {
			return err
		}
	}

	return nil
}

// Interrupt makes a running RunLoop return without destroying the window.
// Safe to call from any goroutine.
func (w *Window) Interrupt() {
	w.interrupted.Store(true)
	w.native.Wake()
}

// Destroy destroys the native window. Destroying an already
// destroyed window does nothing.
func (w *Window) Destroy() error {
	if err := w.checkThread(); err != nil {
		return err
	}

	if w.destroyed {
		return nil
	}

	if w.guard.held() {
		return lifecycleError(errReentrant)
	}

	w.destroyed = true
	w.native.Destroy()

	slog.Debug("Window destroyed", slog.String("title", w.settings.Title))

	return nil
}

func (w *Window) enterDispatch() (dispatchToken, error) {
	if err := w.checkThread(); err != nil {
		return dispatchToken{}, err
	}

	if w.IsDestroyed() {
		return dispatchToken{}, lifecycleError(errDestroyed)
	}

	if !w.native.Visible() {
		return dispatchToken{}, lifecycleError(errNotShowing)
	}

	token, ok := w.guard.acquire()
	if !ok {
		return dispatchToken{}, lifecycleError(errReentrant)
	}

	return token, nil
}

func (w *Window) checkThread() error {
	if currentThread() != w.thread {
		return lifecycleError(errWrongThread)
	}

	return nil
}
