package glimpse

import (
	"errors"
	"strings"
	"testing"
)

func TestWindowSettingsResolveDefaults(t *testing.T) {
	s := DefaultWindowSettings().resolve(Size{Width: 1920, Height: 1080})

	if s.X != 480 || s.Y != 270 {
		t.Errorf("expected position 480,270, got %d,%d", s.X, s.Y)
	}

	if s.Width != 960 || s.Height != 540 {
		t.Errorf("expected size 960x540, got %dx%d", s.Width, s.Height)
	}

	if s.Title != DefaultWindowTitle || s.ClassName != DefaultClassName {
		t.Errorf("unexpected title %q or class %q", s.Title, s.ClassName)
	}
}

func TestWindowSettingsResolveKeepsExplicitValues(t *testing.T) {
	s := WindowSettings{
		Title:     "Custom",
		ClassName: "CustomClass",
		X:         10,
		Y:         -20,
		Width:     300,
		Height:    200,
	}

	resolved := s.resolve(Size{Width: 1920, Height: 1080})
	if resolved != s {
		t.Fatalf("expected settings to be unchanged, got %+v", resolved)
	}

	if b := resolved.Bounds(); b.Dx() != 300 || b.Dy() != 200 || b.Min.Y != -20 {
		t.Fatalf("unexpected bounds %v", b)
	}
}

func TestWindowSettingsResolveInvalidSize(t *testing.T) {
	s := WindowSettings{Width: -5, Height: 0}.resolve(Size{Width: 800, Height: 600})

	if s.Width != 400 || s.Height != 300 {
		t.Fatalf("expected half of the screen, got %dx%d", s.Width, s.Height)
	}
}

func TestClassStyleBits(t *testing.T) {
	tests := []struct {
		styles   ClassStyle
		expected uint32
	}{
		{0, csHRedraw | csVRedraw | csDblClks},
		{ClassNoRedrawOnResize, csDblClks},
		{ClassIgnoreDoubleClicks | ClassNoRedrawOnResize, 0},
		{ClassDropShadow | ClassNoCloseBox, csHRedraw | csVRedraw | csDblClks | csDropShadow | csNoClose},
		{ClassGlobal | ClassSaveClippedGraphics, csHRedraw | csVRedraw | csDblClks | csGlobalClass | csSaveBits},
	}

	for _, test := range tests {
		if actual := classStyleBits(test.styles); actual != test.expected {
			t.Errorf("styles %b: expected %#x, got %#x", test.styles, test.expected, actual)
		}
	}
}

func TestWindowStyleBits(t *testing.T) {
	tests := []struct {
		name           string
		settings       WindowSettings
		style, exStyle uint32
	}{
		{"normal", WindowSettings{}, wsOverlappedWindow, 0},
		{"popup", WindowSettings{StylePreset: StylePopup}, wsPopupWindow, 0},
		{"borderless visible", WindowSettings{StylePreset: StyleBorderless, Visible: true}, wsPopup | wsVisible, 0},
		{"unmodified", WindowSettings{StylePreset: StyleUnmodified, Styles: 0x42, ExtendedStyles: 0x100}, 0x42, 0x100},
		{
			"extended",
			WindowSettings{DragAndDropFiles: true, IgnoreFocusSwitch: true, TopMost: true, HideInTaskbar: true},
			wsOverlappedWindow,
			wsExAcceptFiles | wsExNoActivate | wsExTopMost | wsExToolWindow,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			style, exStyle := windowStyleBits(test.settings)
			if style != test.style || exStyle != test.exStyle {
				t.Fatalf("expected %#x/%#x, got %#x/%#x", test.style, test.exStyle, style, exStyle)
			}
		})
	}
}

func TestRegisterClassIsIdempotent(t *testing.T) {
	backend := NewHeadless(Size{Width: 800, Height: 600})

	first, err := RegisterClass(backend, ClassSettings{Name: "IdempotentClass", Cursor: CursorHand})
	if err != nil {
		t.Fatal(err)
	}

	second, err := RegisterClass(backend, ClassSettings{Name: "IdempotentClass", Cursor: CursorIBeam})
	if err != nil {
		t.Fatal(err)
	}

	if second.Cursor != first.Cursor {
		t.Fatalf("expected the first registration to win, got cursor %d", second.Cursor)
	}
}

func TestRegisterClassGeneratesName(t *testing.T) {
	backend := NewHeadless(Size{Width: 800, Height: 600})

	a, err := RegisterClass(backend, ClassSettings{})
	if err != nil {
		t.Fatal(err)
	}

	b, err := RegisterClass(backend, ClassSettings{})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(a.Name, "EaselAutoClass") {
		t.Errorf("unexpected generated name %q", a.Name)
	}

	if a.Name == b.Name {
		t.Errorf("expected unique names, got %q twice", a.Name)
	}

	if _, ok := lookupClass(backend, a.Name); !ok {
		t.Errorf("class %q was not registered", a.Name)
	}
}

func TestDispatchGuard(t *testing.T) {
	var guard dispatchGuard

	token, ok := guard.acquire()
	if !ok || !guard.held() {
		t.Fatal("expected to acquire the guard")
	}

	if _, ok := guard.acquire(); ok {
		t.Fatal("expected the guard to be busy")
	}

	token.release()
	token.release()

	if guard.held() {
		t.Fatal("expected the guard to be released")
	}

	if _, ok := guard.acquire(); !ok {
		t.Fatal("expected to acquire the guard again")
	}
}

func TestThreadAffinity(t *testing.T) {
	var affinity threadAffinity

	if err := affinity.claim(1); err != nil {
		t.Fatalf("first claim failed: %s", err)
	}

	if err := affinity.claim(1); err != nil {
		t.Fatalf("claim from the bound thread failed: %s", err)
	}

	if err := affinity.claim(2); !errors.Is(err, ErrInvalidLifecycle) {
		t.Fatalf("expected ErrInvalidLifecycle from another thread, got %v", err)
	}

	affinity.reset()

	if err := affinity.claim(2); err != nil {
		t.Fatalf("claim after reset failed: %s", err)
	}

	if err := affinity.claim(1); !errors.Is(err, ErrInvalidLifecycle) {
		t.Fatalf("expected the new thread to be bound, got %v", err)
	}
}
