package glimpse

import (
	"log/slog"
	"maps"
)

type KeysState struct {
	// the keys that are currently marked as "pressed"
	Pressed map[Key]bool

	// keys that where just pressed after the last call to NextTick()
	JustPressed map[Key]bool

	// keys that were just released after the last call to NextTick()
	JustReleased map[Key]bool
}

func (k *KeysState) press(key Key) {
	slog.Debug("Key just pressed", slog.String("key", key.String()))

	setTrue(&k.Pressed, key)
	setTrue(&k.JustPressed, key)
}

func (k *KeysState) release(key Key) {
	setFalse(&k.Pressed, key)
	setTrue(&k.JustReleased, key)
}

func (k *KeysState) nextTick() {
	clear(k.JustPressed)
	clear(k.JustReleased)
}

func (k KeysState) clone() KeysState {
	return KeysState{
		Pressed:      maps.Clone(k.Pressed),
		JustPressed:  maps.Clone(k.JustPressed),
		JustReleased: maps.Clone(k.JustReleased),
	}
}

type MouseState struct {
	CursorX, CursorY float32

	// movement of the cursor since the last tick
	DeltaX, DeltaY float32

	Pressed map[MouseButton]bool

	// mouse buttons that were just clicked after the last call to NextTick()
	JustPressed map[MouseButton]bool

	// mouse buttons that were just released after the last call to NextTick()
	JustReleased map[MouseButton]bool

	hasPosition bool
}

func (m *MouseState) press(button MouseButton) {
	setTrue(&m.Pressed, button)
	setTrue(&m.JustPressed, button)
}

func (m *MouseState) release(button MouseButton) {
	setFalse(&m.Pressed, button)
	setTrue(&m.JustReleased, button)
}

func (m *MouseState) position(x, y float32) {
	if m.hasPosition {
		m.DeltaX += x - m.CursorX
		m.DeltaY += y - m.CursorY
	}

	m.CursorX = x
	m.CursorY = y
	m.hasPosition = true
}

func (m *MouseState) nextTick() {
	m.DeltaX = 0
	m.DeltaY = 0

	clear(m.JustPressed)
	clear(m.JustReleased)
}

func (m MouseState) clone() MouseState {
	m.Pressed = maps.Clone(m.Pressed)
	m.JustPressed = maps.Clone(m.JustPressed)
	m.JustReleased = maps.Clone(m.JustReleased)
	return m
}

// InputState accumulates keyboard and mouse events between two ticks.
// It is not synchronized, callers sharing it between threads must guard it.
type InputState struct {
	Keys  KeysState
	Mouse MouseState
}

// Apply records the effect of ev. Events that carry no input are ignored.
func (s *InputState) Apply(ev Event) {
	switch ev.Kind {
	case EventKey:
		switch ev.Action {
		case Press:
			s.Keys.press(ev.Key)
		case Release:
			s.Keys.release(ev.Key)
		}

	case EventMouseButton:
		switch ev.Action {
		case Press:
			s.Mouse.press(ev.Button)
		case Release:
			s.Mouse.release(ev.Button)
		}

	case EventCursor:
		s.Mouse.position(ev.X, ev.Y)

	case EventFocus:
		if !ev.Focused {
			// we will not see the release events of keys that are held
			// while the window loses focus
			clear(s.Keys.Pressed)
			clear(s.Mouse.Pressed)
		}
	}
}

// NextTick forgets the "just pressed" and "just released" sets
// as well as the cursor delta.
func (s *InputState) NextTick() {
	s.Keys.nextTick()
	s.Mouse.nextTick()
}

// Clone returns a deep copy of the state.
func (s *InputState) Clone() InputState {
	return InputState{
		Keys:  s.Keys.clone(),
		Mouse: s.Mouse.clone(),
	}
}

func setTrue[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = true
}

func setFalse[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = false
}
