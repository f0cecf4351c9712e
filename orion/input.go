package orion

import (
	"github.com/oliverbestmann/easel/glimpse"
)

type KeyCode = glimpse.Key
type MouseButton = glimpse.MouseButton

// MousePosition returns the cursor position in window coordinates.
func (p *Program) MousePosition() (x, y float32) {
	return p.frameInput.Mouse.CursorX, p.frameInput.Mouse.CursorY
}

// MouseDelta returns the cursor movement since the previous frame.
func (p *Program) MouseDelta() (dx, dy float32) {
	return p.frameInput.Mouse.DeltaX, p.frameInput.Mouse.DeltaY
}

func (p *Program) IsKeyPressed(key KeyCode) bool {
	return p.frameInput.Keys.Pressed[key]
}

func (p *Program) IsKeyJustPressed(key KeyCode) bool {
	return p.frameInput.Keys.JustPressed[key]
}

func (p *Program) IsKeyJustReleased(key KeyCode) bool {
	return p.frameInput.Keys.JustReleased[key]
}

func (p *Program) IsMouseButtonPressed(button MouseButton) bool {
	return p.frameInput.Mouse.Pressed[button]
}

func (p *Program) IsMouseButtonJustPressed(button MouseButton) bool {
	return p.frameInput.Mouse.JustPressed[button]
}

func (p *Program) IsMouseButtonJustReleased(button MouseButton) bool {
	return p.frameInput.Mouse.JustReleased[button]
}
