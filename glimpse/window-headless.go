package glimpse

import (
	"sync"
	"sync/atomic"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// Headless is a backend without a display. Its windows receive events
// only through HeadlessWindow.Post, which makes it useful for tests and
// for running programs on machines without a window system.
type Headless struct {
	screen Size
}

func NewHeadless(screen Size) *Headless {
	return &Headless{screen: screen}
}

func (h *Headless) Name() string {
	return "headless"
}

func (h *Headless) ScreenSize() (Size, error) {
	return h.screen, nil
}

func (h *Headless) RegisterClass(ClassSettings) error {
	return nil
}

func (h *Headless) CreateWindow(settings WindowSettings, _ ClassSettings, dispatch Handler) (Native, error) {
	w := &HeadlessWindow{
		dispatch: dispatch,
		size: Size{
			Width:  uint32(settings.Width),
			Height: uint32(settings.Height),
		},
	}

	w.cond = sync.NewCond(&w.mu)
	w.visible.Store(settings.Visible)

	return w, nil
}

type HeadlessWindow struct {
	dispatch Handler

	mu    sync.Mutex
	cond  *sync.Cond
	queue []Event
	woken bool
	size  Size

	visible   atomic.Bool
	destroyed atomic.Bool
}

// Post queues an event for dispatch on the window thread.
// Safe to call from any goroutine.
func (w *HeadlessWindow) Post(ev Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.destroyed.Load() {
		return
	}

	w.queue = append(w.queue, ev)
	w.cond.Broadcast()
}

// Pending returns the number of posted events not yet dispatched.
func (w *HeadlessWindow) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.queue)
}

func (w *HeadlessWindow) Show() error {
	w.visible.Store(true)
	return nil
}

func (w *HeadlessWindow) Visible() bool {
	return w.visible.Load()
}

func (w *HeadlessWindow) Destroyed() bool {
	return w.destroyed.Load()
}

func (w *HeadlessWindow) Next(block bool) (bool, error) {
	w.mu.Lock()

	for block && len(w.queue) == 0 && !w.woken && !w.destroyed.Load() {
		w.cond.Wait()
	}

	w.woken = false

	if len(w.queue) == 0 {
		w.mu.Unlock()
		return false, nil
	}

	ev := w.queue[0]
	w.queue = w.queue[1:]

	if ev.Kind == EventResize {
		w.size = ev.Size
	}

	w.mu.Unlock()

	consumed := w.dispatch(ev)

	if ev.Kind == EventClose && !consumed {
		w.Destroy()
	}

	return true, nil
}

func (w *HeadlessWindow) Wake() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.woken = true
	w.cond.Broadcast()
}

func (w *HeadlessWindow) Size() Size {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.size
}

func (w *HeadlessWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return nil
}

func (w *HeadlessWindow) Destroy() {
	w.mu.Lock()
	alreadyDestroyed := w.destroyed.Swap(true)
	w.queue = nil
	w.cond.Broadcast()
	w.mu.Unlock()

	if !alreadyDestroyed {
		w.visible.Store(false)
		w.dispatch(Event{Kind: EventDestroy})
	}
}
