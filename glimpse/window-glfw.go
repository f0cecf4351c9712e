//go:build cgo && (linux || freebsd || windows)

package glimpse

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/webgpu/wgpuglfw"
)

func init() {
	registerBackend("glfw", GLFW)
}

// glfw is initialized once per process and terminated
// when its last window is destroyed. Between the two it only
// accepts calls from the thread that initialized it.
var glfwLibrary struct {
	sync.Mutex
	initialized bool
	windows     int
	affinity    threadAffinity
}

func glfwInit() error {
	glfwLibrary.Lock()
	defer glfwLibrary.Unlock()

	if err := glfwLibrary.affinity.claim(currentThread()); err != nil {
		return fmt.Errorf("glfw: %w", err)
	}

	if glfwLibrary.initialized {
		return nil
	}

	if err := glfw.Init(); err != nil {
		glfwLibrary.affinity.reset()
		return fmt.Errorf("initialize glfw: %w", err)
	}

	glfwLibrary.initialized = true
	return nil
}

func glfwRetain() {
	glfwLibrary.Lock()
	glfwLibrary.windows++
	glfwLibrary.Unlock()
}

func glfwRelease() {
	glfwLibrary.Lock()
	defer glfwLibrary.Unlock()

	glfwLibrary.windows--
	if glfwLibrary.windows == 0 && glfwLibrary.initialized {
		glfw.Terminate()
		glfwLibrary.initialized = false
		glfwLibrary.affinity.reset()
	}
}

type glfwBackend struct{}

// GLFW returns a backend that creates windows using glfw. glfw only supports
// a single thread for all of its windows. Until the last window is destroyed,
// every call from a thread other than the one that initialized glfw fails
// with ErrInvalidLifecycle.
func GLFW() Backend {
	return glfwBackend{}
}

func (glfwBackend) Name() string {
	return "glfw"
}

func (glfwBackend) ScreenSize() (Size, error) {
	if err := glfwInit(); err != nil {
		return Size{}, err
	}

	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return Size{}, errors.New("no primary monitor")
	}

	mode := monitor.GetVideoMode()
	return Size{Width: uint32(mode.Width), Height: uint32(mode.Height)}, nil
}

func (glfwBackend) RegisterClass(settings ClassSettings) error {
	unsupported := ClassDropShadow | ClassNoCloseBox | ClassSaveClippedGraphics | ClassGlobal
	if settings.Styles&unsupported != 0 {
		slog.Warn("Class styles are not supported by glfw and will be ignored",
			slog.String("class", settings.Name),
			slog.Any("styles", settings.Styles&unsupported),
		)
	}

	return glfwInit()
}

func (glfwBackend) CreateWindow(settings WindowSettings, class ClassSettings, dispatch Handler) (Native, error) {
	if err := glfwInit(); err != nil {
		return nil, err
	}

	decorated := settings.StylePreset == StyleNormal || settings.StylePreset == StyleUnmodified

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Visible, glfwBool(settings.Visible))
	glfw.WindowHint(glfw.Decorated, glfwBool(decorated))
	glfw.WindowHint(glfw.Resizable, glfwBool(decorated))
	glfw.WindowHint(glfw.Floating, glfwBool(settings.TopMost))
	glfw.WindowHint(glfw.FocusOnShow, glfwBool(!settings.IgnoreFocusSwitch))

	if settings.HideInTaskbar {
		slog.Warn("HideInTaskbar is not supported by glfw")
	}

	win, err := glfw.CreateWindow(settings.Width, settings.Height, settings.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	glfwRetain()

	win.SetPos(settings.X, settings.Y)

	if len(class.Icon) > 0 {
		win.SetIcon(class.Icon)
	}

	cursor := glfw.CreateStandardCursor(glfwCursorShape(class.Cursor))
	win.SetCursor(cursor)

	w := &glfwWindow{
		win:      win,
		cursor:   cursor,
		dispatch: dispatch,
		surface:  wgpuglfw.GetSurfaceDescriptor(win),
	}

	w.configureCallbacks(settings, class)

	return w, nil
}

type glfwWindow struct {
	win     *glfw.Window
	cursor  *glfw.Cursor
	surface *wgpu.SurfaceDescriptor

	dispatch   Handler
	dispatched uint64

	closed    bool
	destroyed bool
}

func (g *glfwWindow) deliver(ev Event) bool {
	g.dispatched++
	return g.dispatch(ev)
}

func (g *glfwWindow) Show() error {
	g.win.Show()
	return nil
}

func (g *glfwWindow) Visible() bool {
	return !g.destroyed && g.win.GetAttrib(glfw.Visible) == glfw.True
}

func (g *glfwWindow) Destroyed() bool {
	return g.closed || g.destroyed
}

func (g *glfwWindow) Next(block bool) (bool, error) {
	before := g.dispatched

	if block {
		glfw.WaitEvents()
	} else {
		glfw.PollEvents()
	}

	return g.dispatched != before, nil
}

func (g *glfwWindow) Wake() {
	glfw.PostEmptyEvent()
}

func (g *glfwWindow) Size() Size {
	width, height := g.win.GetFramebufferSize()
	return Size{Width: uint32(width), Height: uint32(height)}
}

func (g *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return g.surface
}

func (g *glfwWindow) Destroy() {
	if g.destroyed {
		return
	}

	g.destroyed = true
	g.deliver(Event{Kind: EventDestroy})

	g.win.Destroy()
	g.cursor.Destroy()

	glfwRelease()
}

func (g *glfwWindow) configureCallbacks(settings WindowSettings, class ClassSettings) {
	g.win.SetFramebufferSizeCallback(func(_win *glfw.Window, width int, height int) {
		g.deliver(Event{
			Kind: EventResize,
			Size: Size{Width: uint32(width), Height: uint32(height)},
		})
	})

	g.win.SetCloseCallback(func(win *glfw.Window) {
		if g.deliver(Event{Kind: EventClose}) {
			win.SetShouldClose(false)
			return
		}

		g.closed = true
	})

	g.win.SetRefreshCallback(func(_win *glfw.Window) {
		g.deliver(Event{Kind: EventPaint})
	})

	g.win.SetFocusCallback(func(_win *glfw.Window, focused bool) {
		g.deliver(Event{Kind: EventFocus, Focused: focused})
	})

	g.win.SetKeyCallback(func(_win *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}

		key, ok := keyOf(glfwKey)
		if !ok {
			return
		}

		ev := Event{Kind: EventKey, Key: key, Action: Release}
		if action == glfw.Press {
			ev.Action = Press
		}

		g.deliver(ev)
	})

	g.win.SetMouseButtonCallback(func(_win *glfw.Window, btn glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		var button MouseButton

		switch btn {
		case glfw.MouseButtonLeft:
			button = MouseButtonLeft
		case glfw.MouseButtonRight:
			button = MouseButtonRight
		case glfw.MouseButtonMiddle:
			button = MouseButtonMiddle
		default:
			return
		}

		ev := Event{Kind: EventMouseButton, Button: button, Action: Release}
		if action == glfw.Press {
			ev.Action = Press
		}

		// glfw never reports double clicks, ClassIgnoreDoubleClicks needs no handling
		g.deliver(ev)
	})

	g.win.SetCursorPosCallback(func(_win *glfw.Window, xpos float64, ypos float64) {
		g.deliver(Event{Kind: EventCursor, X: float32(xpos), Y: float32(ypos)})
	})

	if settings.DragAndDropFiles {
		g.win.SetDropCallback(func(_win *glfw.Window, names []string) {
			g.deliver(Event{Kind: EventDropFiles, Paths: names})
		})
	}
}

func glfwBool(value bool) int {
	if value {
		return glfw.True
	}

	return glfw.False
}

func glfwCursorShape(cursor Cursor) glfw.StandardCursor {
	switch cursor {
	case CursorIBeam:
		return glfw.IBeamCursor
	case CursorCrosshair:
		return glfw.CrosshairCursor
	case CursorHand:
		return glfw.HandCursor
	case CursorResizeHorizontal:
		return glfw.HResizeCursor
	case CursorResizeVertical:
		return glfw.VResizeCursor
	default:
		return glfw.ArrowCursor
	}
}

var glfwToKey = map[glfw.Key]Key{
	glfw.KeyEscape:       KeyEscape,
	glfw.KeyEnter:        KeyEnter,
	glfw.KeySpace:        KeySpace,
	glfw.KeyTab:          KeyTab,
	glfw.KeyBackspace:    KeyBackspace,
	glfw.KeyDelete:       KeyDelete,
	glfw.KeyInsert:       KeyInsert,
	glfw.KeyHome:         KeyHome,
	glfw.KeyEnd:          KeyEnd,
	glfw.KeyPageUp:       KeyPageUp,
	glfw.KeyPageDown:     KeyPageDown,
	glfw.KeyLeft:         KeyLeft,
	glfw.KeyRight:        KeyRight,
	glfw.KeyUp:           KeyUp,
	glfw.KeyDown:         KeyDown,
	glfw.KeyLeftShift:    KeyShift,
	glfw.KeyRightShift:   KeyShift,
	glfw.KeyLeftControl:  KeyControl,
	glfw.KeyRightControl: KeyControl,
	glfw.KeyLeftAlt:      KeyAlt,
	glfw.KeyRightAlt:     KeyAlt,
	glfw.KeyLeftSuper:    KeySuper,
	glfw.KeyRightSuper:   KeySuper,
}

func init() {
	for idx := range 26 {
		glfwToKey[glfw.KeyA+glfw.Key(idx)] = KeyA + Key(idx)
	}

	for idx := range 10 {
		glfwToKey[glfw.Key0+glfw.Key(idx)] = Key0 + Key(idx)
	}

	for idx := range 12 {
		glfwToKey[glfw.KeyF1+glfw.Key(idx)] = KeyF1 + Key(idx)
	}
}

func keyOf(glfwKey glfw.Key) (key Key, ok bool) {
	key, ok = glfwToKey[glfwKey]
	if !ok {
		slog.Warn(
			"Unknown key code",
			slog.String("key", glfw.GetKeyName(glfwKey, 0)),
		)
	}

	return
}
