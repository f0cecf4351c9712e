//go:build windows

package glimpse

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/oliverbestmann/webgpu/wgpu"
	"golang.org/x/sys/windows"
)

func init() {
	registerBackend("win32", Win32)
}

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	shell32  = windows.NewLazySystemDLL("shell32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterClassExW = user32.NewProc("RegisterClassExW")
	procCreateWindowExW  = user32.NewProc("CreateWindowExW")
	procDefWindowProcW   = user32.NewProc("DefWindowProcW")
	procDestroyWindow    = user32.NewProc("DestroyWindow")
	procShowWindow       = user32.NewProc("ShowWindow")
	procIsWindow         = user32.NewProc("IsWindow")
	procIsWindowVisible  = user32.NewProc("IsWindowVisible")
	procGetMessageW      = user32.NewProc("GetMessageW")
	procPeekMessageW     = user32.NewProc("PeekMessageW")
	procTranslateMessage = user32.NewProc("TranslateMessage")
	procDispatchMessageW = user32.NewProc("DispatchMessageW")
	procPostMessageW     = user32.NewProc("PostMessageW")
	procLoadCursorW      = user32.NewProc("LoadCursorW")
	procCreateIcon       = user32.NewProc("CreateIcon")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")
	procGetClientRect    = user32.NewProc("GetClientRect")
	procCreateSolidBrush = gdi32.NewProc("CreateSolidBrush")
	procDragQueryFileW   = shell32.NewProc("DragQueryFileW")
	procDragFinish       = shell32.NewProc("DragFinish")
	procGetModuleHandleW = kernel32.NewProc("GetModuleHandleW")
)

const (
	wmDestroy     = 0x0002
	wmSize        = 0x0005
	wmSetFocus    = 0x0007
	wmKillFocus   = 0x0008
	wmPaint       = 0x000F
	wmClose       = 0x0010
	wmKeyDown     = 0x0100
	wmKeyUp       = 0x0101
	wmSysKeyDown  = 0x0104
	wmSysKeyUp    = 0x0105
	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp   = 0x0208
	wmDropFiles   = 0x0233
	wmUser        = 0x0400

	// posted by Wake to unblock GetMessage
	wmWake = wmUser + 1

	swShowDefault = 10
	pmRemove      = 0x0001
	smCxScreen    = 0
	smCyScreen    = 1

	idcArrow  = 32512
	idcIBeam  = 32513
	idcCross  = 32515
	idcSizeWE = 32644
	idcSizeNS = 32645
	idcHand   = 32649
)

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     windows.Handle
	hIcon         windows.Handle
	hCursor       windows.Handle
	hbrBackground windows.Handle
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       windows.Handle
}

type winMsg struct {
	hwnd     windows.HWND
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       struct{ x, y int32 }
	lPrivate uint32
}

type winRect struct {
	left, top, right, bottom int32
}

// windows of this process by handle, used by windowProc
// to find the window a message belongs to.
var win32Windows struct {
	sync.Mutex
	byHandle map[windows.HWND]*win32Window
}

var wndProcCallback = sync.OnceValue(func() uintptr {
	return windows.NewCallback(windowProc)
})

type win32Backend struct{}

func Win32() Backend {
	return win32Backend{}
}

func (win32Backend) Name() string {
	return "win32"
}

func (win32Backend) ScreenSize() (Size, error) {
	width, _, _ := procGetSystemMetrics.Call(smCxScreen)
	height, _, _ := procGetSystemMetrics.Call(smCyScreen)
	return Size{Width: uint32(width), Height: uint32(height)}, nil
}

func (win32Backend) RegisterClass(settings ClassSettings) error {
	instance, err := moduleHandle()
	if err != nil {
		return err
	}

	className, err := windows.UTF16PtrFromString(settings.Name)
	if err != nil {
		return err
	}

	cursor, _, err := procLoadCursorW.Call(0, win32CursorID(settings.Cursor))
	if cursor == 0 {
		return fmt.Errorf("load cursor: %w", err)
	}

	wc := wndClassEx{
		style:         classStyleBits(settings.Styles),
		lpfnWndProc:   wndProcCallback(),
		hInstance:     instance,
		hCursor:       windows.Handle(cursor),
		lpszClassName: className,
	}

	wc.cbSize = uint32(unsafe.Sizeof(wc))

	if !settings.CustomBackPaint {
		bg := settings.Background
		rgb := uintptr(bg.R) | uintptr(bg.G)<<8 | uintptr(bg.B)<<16

		brush, _, err := procCreateSolidBrush.Call(rgb)
		if brush == 0 {
			return fmt.Errorf("create background brush: %w", err)
		}

		wc.hbrBackground = windows.Handle(brush)
	}

	if len(settings.Icon) > 0 {
		icon, err := createIcon(instance, settings.Icon[0])
		if err != nil {
			return err
		}

		wc.hIcon = icon
		wc.hIconSm = icon
	}

	atom, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc)))
	if atom == 0 {
		return fmt.Errorf("RegisterClassEx: %w", err)
	}

	return nil
}

func (win32Backend) CreateWindow(settings WindowSettings, class ClassSettings, dispatch Handler) (Native, error) {
	instance, err := moduleHandle()
	if err != nil {
		return nil, err
	}

	className, err := windows.UTF16PtrFromString(class.Name)
	if err != nil {
		return nil, err
	}

	title, err := windows.UTF16PtrFromString(settings.Title)
	if err != nil {
		return nil, err
	}

	style, exStyle := windowStyleBits(settings)

	hwnd, _, err := procCreateWindowExW.Call(
		uintptr(exStyle),
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(title)),
		uintptr(style),
		uintptr(settings.X),
		uintptr(settings.Y),
		uintptr(settings.Width),
		uintptr(settings.Height),
		0, // no parent window
		0, // no menu
		uintptr(instance),
		0,
	)

	if hwnd == 0 {
		return nil, fmt.Errorf("CreateWindowEx: %w", err)
	}

	w := &win32Window{
		hwnd:     windows.HWND(hwnd),
		dispatch: dispatch,
		surface: &wgpu.SurfaceDescriptor{
			WindowsHWND: &wgpu.SurfaceDescriptorFromWindowsHWND{
				Hinstance: unsafe.Pointer(instance),
				Hwnd:      unsafe.Pointer(hwnd),
			},
		},
	}

	// messages sent during CreateWindowEx are handled by DefWindowProc,
	// the window only receives events from here on.
	win32Windows.Lock()
	if win32Windows.byHandle == nil {
		win32Windows.byHandle = map[windows.HWND]*win32Window{}
	}
	win32Windows.byHandle[w.hwnd] = w
	win32Windows.Unlock()

	return w, nil
}

type win32Window struct {
	hwnd     windows.HWND
	dispatch Handler
	surface  *wgpu.SurfaceDescriptor
	dead     atomic.Bool
}

func (w *win32Window) Show() error {
	procShowWindow.Call(uintptr(w.hwnd), swShowDefault)
	return nil
}

func (w *win32Window) Visible() bool {
	visible, _, _ := procIsWindowVisible.Call(uintptr(w.hwnd))
	return visible != 0 && !w.Destroyed()
}

func (w *win32Window) Destroyed() bool {
	if w.dead.Load() {
		return true
	}

	exists, _, _ := procIsWindow.Call(uintptr(w.hwnd))
	return exists == 0
}

func (w *win32Window) Next(block bool) (bool, error) {
	var msg winMsg

	if block {
		r, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), uintptr(w.hwnd), 0, 0)
		switch int32(r) {
		case -1:
			if w.Destroyed() {
				return false, nil
			}

			return false, fmt.Errorf("%w: GetMessage: %w", ErrOSResource, err)

		case 0:
			// WM_QUIT
			return false, nil
		}
	} else {
		r, _, _ := procPeekMessageW.Call(uintptr(unsafe.Pointer(&msg)), uintptr(w.hwnd), 0, 0, pmRemove)
		if r == 0 {
			return false, nil
		}
	}

	procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
	procDispatchMessageW.Call(uintptr(unsafe.Pointer(&msg)))

	return true, nil
}

func (w *win32Window) Wake() {
	procPostMessageW.Call(uintptr(w.hwnd), wmWake, 0, 0)
}

func (w *win32Window) Size() Size {
	var r winRect
	procGetClientRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r)))
	return Size{Width: uint32(r.right - r.left), Height: uint32(r.bottom - r.top)}
}

func (w *win32Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return w.surface
}

func (w *win32Window) Destroy() {
	if !w.Destroyed() {
		procDestroyWindow.Call(uintptr(w.hwnd))
	}

	w.dead.Store(true)

	win32Windows.Lock()
	delete(win32Windows.byHandle, w.hwnd)
	win32Windows.Unlock()
}

func windowProc(hwnd windows.HWND, message uint32, wParam, lParam uintptr) uintptr {
	win32Windows.Lock()
	w := win32Windows.byHandle[hwnd]
	win32Windows.Unlock()

	if w == nil || message == wmWake {
		return defWindowProc(hwnd, message, wParam, lParam)
	}

	ev := translateMessage(hwnd, message, wParam, lParam)
	consumed := w.dispatch(ev)

	switch message {
	case wmDestroy:
		w.dead.Store(true)

	case wmDropFiles:
		procDragFinish.Call(wParam)
		return 0
	}

	if consumed {
		return 0
	}

	return defWindowProc(hwnd, message, wParam, lParam)
}

func translateMessage(hwnd windows.HWND, message uint32, wParam, lParam uintptr) Event {
	ev := Event{
		Kind:   EventNative,
		Native: NativeMessage{Message: message, WParam: wParam, LParam: lParam},
	}

	switch message {
	case wmSize:
		ev.Kind = EventResize
		ev.Size = Size{Width: uint32(lParam & 0xffff), Height: uint32((lParam >> 16) & 0xffff)}

	case wmClose:
		ev.Kind = EventClose

	case wmDestroy:
		ev.Kind = EventDestroy

	case wmPaint:
		ev.Kind = EventPaint

	case wmSetFocus, wmKillFocus:
		ev.Kind = EventFocus
		ev.Focused = message == wmSetFocus

	case wmKeyDown, wmSysKeyDown, wmKeyUp, wmSysKeyUp:
		if key, ok := vkToKey(wParam); ok {
			ev.Kind = EventKey
			ev.Key = key
			ev.Action = Release

			if message == wmKeyDown || message == wmSysKeyDown {
				ev.Action = Press
			}
		}

	case wmLButtonDown, wmLButtonUp, wmRButtonDown, wmRButtonUp, wmMButtonDown, wmMButtonUp:
		ev.Kind = EventMouseButton
		ev.X, ev.Y = coordsFromLParam(lParam)

		switch message {
		case wmLButtonDown, wmLButtonUp:
			ev.Button = MouseButtonLeft
		case wmRButtonDown, wmRButtonUp:
			ev.Button = MouseButtonRight
		default:
			ev.Button = MouseButtonMiddle
		}

		switch message {
		case wmLButtonDown, wmRButtonDown, wmMButtonDown:
			ev.Action = Press
		default:
			ev.Action = Release
		}

	case wmMouseMove:
		ev.Kind = EventCursor
		ev.X, ev.Y = coordsFromLParam(lParam)

	case wmDropFiles:
		ev.Kind = EventDropFiles
		ev.Paths = droppedFiles(wParam)
	}

	return ev
}

func coordsFromLParam(lParam uintptr) (float32, float32) {
	x := int16(lParam & 0xffff)
	y := int16((lParam >> 16) & 0xffff)
	return float32(x), float32(y)
}

func droppedFiles(hdrop uintptr) []string {
	count, _, _ := procDragQueryFileW.Call(hdrop, 0xFFFFFFFF, 0, 0)

	paths := make([]string, 0, count)
	for idx := range count {
		length, _, _ := procDragQueryFileW.Call(hdrop, idx, 0, 0)

		buf := make([]uint16, length+1)
		procDragQueryFileW.Call(hdrop, idx, uintptr(unsafe.Pointer(&buf[0])), length+1)

		paths = append(paths, windows.UTF16ToString(buf))
	}

	return paths
}

func defWindowProc(hwnd windows.HWND, message uint32, wParam, lParam uintptr) uintptr {
	r, _, _ := procDefWindowProcW.Call(uintptr(hwnd), uintptr(message), wParam, lParam)
	return r
}

func moduleHandle() (windows.Handle, error) {
	h, _, err := procGetModuleHandleW.Call(0)
	if h == 0 {
		return 0, fmt.Errorf("GetModuleHandle: %w", err)
	}

	return windows.Handle(h), nil
}

func win32CursorID(cursor Cursor) uintptr {
	switch cursor {
	case CursorIBeam:
		return idcIBeam
	case CursorCrosshair:
		return idcCross
	case CursorHand:
		return idcHand
	case CursorResizeHorizontal:
		return idcSizeWE
	case CursorResizeVertical:
		return idcSizeNS
	default:
		return idcArrow
	}
}

// createIcon converts img into a 32 bit icon with an empty AND mask.
func createIcon(instance windows.Handle, img image.Image) (windows.Handle, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return 0, errors.New("icon image is empty")
	}

	bgra := make([]byte, 0, width*height*4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			bgra = append(bgra, byte(b>>8), byte(g>>8), byte(r>>8), byte(a>>8))
		}
	}

	// rows of the AND mask are word aligned
	mask := make([]byte, (width+15)/16*2*height)

	icon, _, err := procCreateIcon.Call(
		uintptr(instance),
		uintptr(width),
		uintptr(height),
		1,
		32,
		uintptr(unsafe.Pointer(&mask[0])),
		uintptr(unsafe.Pointer(&bgra[0])),
	)

	if icon == 0 {
		return 0, fmt.Errorf("CreateIcon: %w", err)
	}

	return windows.Handle(icon), nil
}

func vkToKey(vk uintptr) (Key, bool) {
	switch {
	case vk >= 'A' && vk <= 'Z':
		return KeyA + Key(vk-'A'), true
	case vk >= '0' && vk <= '9':
		return Key0 + Key(vk-'0'), true
	case vk >= 0x70 && vk <= 0x7B:
		return KeyF1 + Key(vk-0x70), true
	}

	key, ok := vkKeys[vk]
	return key, ok
}

var vkKeys = map[uintptr]Key{
	0x08: KeyBackspace,
	0x09: KeyTab,
	0x0D: KeyEnter,
	0x10: KeyShift,
	0x11: KeyControl,
	0x12: KeyAlt,
	0x1B: KeyEscape,
	0x20: KeySpace,
	0x21: KeyPageUp,
	0x22: KeyPageDown,
	0x23: KeyEnd,
	0x24: KeyHome,
	0x25: KeyLeft,
	0x26: KeyUp,
	0x27: KeyRight,
	0x28: KeyDown,
	0x2D: KeyInsert,
	0x2E: KeyDelete,
	0x5B: KeySuper,
	0x5C: KeySuper,
}
