package orion

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/oliverbestmann/easel/glimpse"
	"github.com/oliverbestmann/easel/pulse"
)

// Settings configure the behaviour of a Program.
type Settings struct {
	// UserData is an opaque value for callbacks, see UserData.
	UserData any

	// DontResizeSurface stops resizing the surface to the size of the window.
	// Resize events are then delivered to OnEvent instead.
	DontResizeSurface bool

	// IgnoreClose swallows every close request of the window. The program can
	// then only be ended with Close or by terminating the process.
	IgnoreClose bool

	// DontLogPerformance disables the periodic performance log line.
	DontLogPerformance bool

	// PerformanceLogInterval is the number of frames between two performance
	// log lines. Defaults to DefaultPerformanceLogInterval.
	PerformanceLogInterval uint64

	// MaximumFramerate caps the number of frames per second. Zero is uncapped.
	MaximumFramerate float64

	// CPUProfile writes a cpu profile for the lifetime of the program,
	// into ProfilePath or the working directory.
	CPUProfile  bool
	ProfilePath string

	// OnUpdate is called once per frame on the owning goroutine, between
	// beginning and ending the frame on the surface.
	OnUpdate func(p *Program) error

	// OnEvent is called on the window thread for every window event while the
	// program is running. It must not touch the surface. Returning true marks
	// the event as consumed.
	OnEvent func(p *Program, ev glimpse.Event) bool
}

// Options for New. Only zero values are required, every field has a default.
type Options struct {
	Program Settings
	Class   glimpse.ClassSettings

	// Window settings. If neither position nor size is set, the window is
	// placed like glimpse.DefaultWindowSettings. A window with only some of
	// them set should start from glimpse.DefaultWindowSettings, as a zero
	// position is a valid position. The window must not be visible, it is
	// shown by Run.
	Window glimpse.WindowSettings

	Surface pulse.SurfaceOptions

	// Backend defaults to glimpse.DefaultBackend.
	Backend glimpse.Backend

	// NewSurface defaults to NewPulseSurface.
	NewSurface SurfaceFactory
}

func (opts Options) resolve() (Options, error) {
	// a window without any geometry is placed like the default window
	w := &opts.Window
	if w.X == 0 && w.Y == 0 && w.Width <= 0 && w.Height <= 0 {
		w.X, w.Y = glimpse.UseDefault, glimpse.UseDefault
		w.Width, w.Height = glimpse.UseDefault, glimpse.UseDefault
	}

	if opts.Window.Visible {
		return opts, fmt.Errorf("%w: window must be created hidden, it is shown by Run", ErrConfiguration)
	}

	if opts.Class.Styles.Has(glimpse.ClassGlobal) {
		return opts, fmt.Errorf("%w: global window classes are not supported", ErrConfiguration)
	}

	switch {
	case opts.Class.Name == "":
		opts.Class.Name = opts.Window.ClassName

	case opts.Window.ClassName == "":
		opts.Window.ClassName = opts.Class.Name

	case opts.Class.Name != opts.Window.ClassName:
		return opts, fmt.Errorf("%w: window class %q does not match class settings %q",
			ErrConfiguration, opts.Window.ClassName, opts.Class.Name)
	}

	if opts.Program.MaximumFramerate < 0 {
		return opts, fmt.Errorf("%w: negative maximum framerate %f", ErrConfiguration, opts.Program.MaximumFramerate)
	}

	if opts.Program.PerformanceLogInterval == 0 {
		opts.Program.PerformanceLogInterval = DefaultPerformanceLogInterval
	}

	if opts.Backend == nil {
		opts.Backend = glimpse.DefaultBackend()
	}

	if opts.NewSurface == nil {
		opts.NewSurface = NewPulseSurface
	}

	return opts, nil
}

// Program runs a window on a dedicated window thread and a frame loop on the
// goroutine that created it, the owning goroutine. New, Run and Destroy must
// be called on the owning goroutine.
type Program struct {
	settings       Settings
	class          glimpse.ClassSettings
	windowSettings glimpse.WindowSettings
	surfaceOptions pulse.SurfaceOptions
	backend        glimpse.Backend

	state  *lifecycle
	window *handoff[*glimpse.Window]
	resize *resizeSlot

	// closed once the window thread exited
	done chan struct{}

	windowErrMu sync.Mutex
	windowErr   error

	// input is written on the window thread, frameInput is
	// the copy the owning goroutine sees during a frame
	inputMu    sync.Mutex
	input      glimpse.InputState
	frameInput glimpse.InputState

	// owned by the owning goroutine
	surface     Surface
	surfaceSize glimpse.Size
	profiler    *profiler
	destroyed   bool
}

// New creates a program in state StateCreated. It spawns the window thread
// and blocks until the window exists, then creates the surface for it.
// If New fails no window thread is left running.
func New(opts Options) (*Program, error) {
	opts, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	p := &Program{
		settings:       opts.Program,
		class:          opts.Class,
		windowSettings: opts.Window,
		surfaceOptions: opts.Surface,
		backend:        opts.Backend,
		state:          newLifecycle(),
		window:         newHandoff[*glimpse.Window](),
		resize:         newResizeSlot(),
		done:           make(chan struct{}),
	}

	go p.windowThread()

	win, err := p.window.wait()
	if err != nil {
		<-p.done
		return nil, fmt.Errorf("create window: %w", err)
	}

	surface, err := opts.NewSurface(win, opts.Surface)
	if err != nil {
		p.abort()
		return nil, fmt.Errorf("%w: create surface: %w", ErrOSResource, err)
	}

	if !p.settings.DontResizeSurface {
		size := win.InitialSize()
		if err := surface.Resize(size.Width, size.Height); err != nil {
			surface.Release()
			p.abort()
			return nil, fmt.Errorf("%w: initial resize: %w", ErrSurface, err)
		}

		p.surfaceSize = size
	}

	p.surface = surface
	p.profiler = newProfiler(p.settings)

	return p, nil
}

// abort tears down the window thread of a program that failed construction.
func (p *Program) abort() {
	p.resize.close()
	p.state.forward(StateDestroyed)
	<-p.done
}

// Run shows the window and runs the frame loop until the window was closed.
// A program can only run once.
func (p *Program) Run() error {
	if !p.state.advance(StateCreated, StateRunning) {
		return fmt.Errorf("%w: cannot run program in state %s", ErrInvalidLifecycle, p.state.Load())
	}

	slog.Info("Program running", slog.String("backend", p.backend.Name()))

	for p.state.Load() == StateRunning {
		if err := p.loopOnce(); err != nil {
			p.Close()
			return err
		}
	}

	slog.Info("Program closed", slog.Uint64("frames", p.profiler.Times().FrameCount))

	return p.windowError()
}

// Close asks the window thread to stop its event pump. Frames keep running
// until the window thread marks the program StateClosed, the frame in progress
// at that moment is finished before Run returns. Safe to call from any goroutine.
func (p *Program) Close() {
	p.window.Get().Interrupt()
}

// Destroy releases the surface and the profiler, then waits for the window
// thread to destroy the window. Destroying twice does nothing.
func (p *Program) Destroy() {
	if p.destroyed {
		return
	}

	p.destroyed = true

	if p.state.Load() < StateClosed {
		p.window.Get().Interrupt()
	}

	// a resize that will never be consumed must not block the window thread
	p.resize.close()

	p.surface.Release()
	p.profiler.release()

	previous := p.state.forward(StateDestroyed)

	<-p.done

	slog.Info("Program destroyed", slog.String("previous", previous.String()))
}

func (p *Program) windowThread() {
	defer close(p.done)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	class, err := glimpse.RegisterClass(p.backend, p.class)
	if err != nil {
		p.window.fail(err)
		return
	}

	settings := p.windowSettings
	settings.ClassName = class.Name

	win, err := glimpse.Create(p.backend, settings, p.handleEvent)
	if err != nil {
		p.window.fail(err)
		return
	}

	p.window.publish(win)

	// Destroy may end the program before it ever ran
	if p.state.waitUntil(StateRunning) == StateRunning {
		err := p.pump(win)
		if err != nil {
			slog.Warn("Event pump failed", slog.String("err", err.Error()))
		}

		p.setWindowError(err)
		p.state.advance(StateRunning, StateClosed)
	}

	p.state.waitUntil(StateDestroyed)

	if err := win.Destroy(); err != nil {
		slog.Warn("Failed to destroy window", slog.String("err", err.Error()))
	}
}

func (p *Program) pump(win *glimpse.Window) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event dispatch panicked: %v", r)
		}
	}()

	if err := win.Show(); err != nil {
		return err
	}

	return win.RunLoop()
}

// handleEvent runs on the window thread.
func (p *Program) handleEvent(ev glimpse.Event) bool {
	p.inputMu.Lock()
	p.input.Apply(ev)
	p.inputMu.Unlock()

	running := p.state.Load() == StateRunning

	switch ev.Kind {
	case glimpse.EventClose:
		if p.settings.IgnoreClose {
			slog.Debug("Ignoring close request")
			return true
		}

	case glimpse.EventResize:
		if running && !p.settings.DontResizeSurface {
			slog.Debug("Request surface resize",
				slog.Int("width", int(ev.Size.Width)),
				slog.Int("height", int(ev.Size.Height)),
			)

			p.resize.publish(ev.Size)
			return false
		}
	}

	if running && p.settings.OnEvent != nil {
		return p.settings.OnEvent(p, ev)
	}

	return false
}

func (p *Program) setWindowError(err error) {
	p.windowErrMu.Lock()
	defer p.windowErrMu.Unlock()

	p.windowErr = err
}

func (p *Program) windowError() error {
	p.windowErrMu.Lock()
	defer p.windowErrMu.Unlock()

	return p.windowErr
}

// State returns the current lifecycle state. Safe to call from any goroutine.
func (p *Program) State() State {
	return p.state.Load()
}

func (p *Program) Surface() Surface {
	return p.surface
}

// Graphics returns the surface if it is a pulse.Surface, nil otherwise.
func (p *Program) Graphics() *pulse.Surface {
	surface, _ := p.surface.(*pulse.Surface)
	return surface
}

// SurfaceSize is the size last applied to the surface.
func (p *Program) SurfaceSize() glimpse.Size {
	return p.surfaceSize
}

// Window returns the window of this program. Methods that require the window
// thread fail with ErrInvalidLifecycle when called from the owning goroutine.
func (p *Program) Window() *glimpse.Window {
	return p.window.Get()
}

func (p *Program) Settings() Settings {
	return p.settings
}

// ClassSettings returns the settings the window class was registered with.
func (p *Program) ClassSettings() glimpse.ClassSettings {
	return p.window.Get().Class()
}

// WindowSettings returns the window settings after resolving defaults.
func (p *Program) WindowSettings() glimpse.WindowSettings {
	return p.window.Get().Settings()
}

func (p *Program) SurfaceOptions() pulse.SurfaceOptions {
	return p.surfaceOptions
}

// Input returns the keyboard and mouse state of the current frame.
func (p *Program) Input() glimpse.InputState {
	return p.frameInput
}

// FrameTimes returns statistics about the frames rendered so far.
func (p *Program) FrameTimes() FrameTimes {
	return p.profiler.Times()
}

// UserData returns the user data of the program as T. It returns the zero
// value if no user data of that type was configured.
func UserData[T any](p *Program) T {
	value, _ := p.settings.UserData.(T)
	return value
}
