package glimpse

import (
	"image"
	"image/color"
	"math"
)

const (
	DefaultWindowTitle = "Easel"
	DefaultClassName   = "EaselWindowClass"
)

// UseDefault marks a window position or size that should be derived from the
// screen size: a quarter of the screen for the position, half of it for the size.
const UseDefault = math.MinInt32

type Size struct {
	Width, Height uint32
}

type StylePreset uint8

const (
	// StyleNormal is a regular overlapped window with title bar and borders.
	StyleNormal StylePreset = iota

	// StylePopup is a popup window with a thin border and a system menu.
	StylePopup

	// StyleBorderless is a popup window without any decoration.
	StyleBorderless

	// StyleUnmodified leaves WindowSettings.Styles untouched.
	StyleUnmodified
)

type WindowSettings struct {
	Title     string
	ClassName string

	X, Y          int
	Width, Height int

	StylePreset StylePreset

	// Native style bits, combined with the bits of the StylePreset.
	// Only interpreted by the win32 backend.
	Styles         uint32
	ExtendedStyles uint32

	// Visible shows the window as soon as it is created.
	Visible bool

	DragAndDropFiles  bool
	IgnoreFocusSwitch bool
	TopMost           bool
	HideInTaskbar     bool
}

// DefaultWindowSettings returns settings that place a normal window
// in the center of the screen.
func DefaultWindowSettings() WindowSettings {
	return WindowSettings{
		X:      UseDefault,
		Y:      UseDefault,
		Width:  UseDefault,
		Height: UseDefault,
	}
}

// Bounds returns the window rectangle in screen coordinates.
func (s WindowSettings) Bounds() image.Rectangle {
	return image.Rect(s.X, s.Y, s.X+s.Width, s.Y+s.Height)
}

func (s WindowSettings) resolve(screen Size) WindowSettings {
	if s.Title == "" {
		s.Title = DefaultWindowTitle
	}

	if s.ClassName == "" {
		s.ClassName = DefaultClassName
	}

	if s.X == UseDefault {
		s.X = int(screen.Width / 4)
	}

	if s.Y == UseDefault {
		s.Y = int(screen.Height / 4)
	}

	if s.Width == UseDefault || s.Width <= 0 {
		s.Width = int(screen.Width / 2)
	}

	if s.Height == UseDefault || s.Height <= 0 {
		s.Height = int(screen.Height / 2)
	}

	return s
}

// ClassStyle toggles behaviour shared by every window of a class.
type ClassStyle uint32

const (
	ClassNoRedrawOnResize ClassStyle = 1 << iota
	ClassDropShadow
	ClassIgnoreDoubleClicks
	ClassNoCloseBox
	ClassSaveClippedGraphics

	// ClassGlobal makes the class usable from every thread of the process
	// instead of only the registering one.
	ClassGlobal
)

func (s ClassStyle) Has(flag ClassStyle) bool {
	return s&flag == flag
}

type Cursor uint8

const (
	CursorArrow Cursor = iota
	CursorIBeam
	CursorCrosshair
	CursorHand
	CursorResizeHorizontal
	CursorResizeVertical
)

type ClassSettings struct {
	// Name of the class. A unique name is generated if empty.
	Name string

	// Icon candidates, the backend picks the best fitting size.
	// The system default icon is used if empty.
	Icon []image.Image

	Cursor Cursor

	// Background is painted behind the window content unless CustomBackPaint is set.
	Background      color.RGBA
	CustomBackPaint bool

	Styles ClassStyle
}
