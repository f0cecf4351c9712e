package glimpse

import "strconv"

type Key uint16

const (
	KeyUnknown Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyEscape
	KeyEnter
	KeySpace
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyLeft
	KeyRight
	KeyUp
	KeyDown

	KeyShift
	KeyControl
	KeyAlt
	KeySuper

	keyCount
)

type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

var keyNames = [keyCount]string{
	KeyUnknown:   "Unknown",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeySpace:     "Space",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyShift:     "Shift",
	KeyControl:   "Control",
	KeyAlt:       "Alt",
	KeySuper:     "Super",
}

func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + k - KeyA))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + k - Key0))
	case k >= KeyF1 && k <= KeyF12:
		return "F" + strconv.Itoa(int(k-KeyF1)+1)
	case k < keyCount:
		return keyNames[k]
	}

	return "Key(" + strconv.Itoa(int(k)) + ")"
}
