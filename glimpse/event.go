package glimpse

//go:generate go tool stringer -type=EventKind -trimprefix=Event

type EventKind uint8

const (
	EventNative EventKind = iota
	EventResize
	EventClose
	EventDestroy
	EventPaint
	EventFocus
	EventKey
	EventMouseButton
	EventCursor
	EventDropFiles
)

type Action uint8

const (
	Release Action = iota
	Press
)

// NativeMessage carries the raw message of backends that have one.
type NativeMessage struct {
	Message        uint32
	WParam, LParam uintptr
}

// Event is a single window event as delivered to a Handler.
// Only the fields matching Kind are set.
type Event struct {
	Kind EventKind

	// EventResize
	Size Size

	// EventFocus
	Focused bool

	// EventKey and EventMouseButton
	Key    Key
	Button MouseButton
	Action Action

	// EventCursor
	X, Y float32

	// EventDropFiles
	Paths []string

	Native NativeMessage
}

// Handler receives every event dispatched to a window on the window thread.
// Returning true consumes the event and skips the default processing
// of the backend, e.g. a consumed EventClose does not close the window.
type Handler func(ev Event) (consumed bool)
