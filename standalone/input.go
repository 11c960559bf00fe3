package standalone

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyboardInput implements frontend.InputState over ebiten's input state.
// It is polled from Update, on the game goroutine.
type keyboardInput struct {
	// Drawable size as reported by Layout
	width, height int
	// Size last handed to the loop
	reportedW, reportedH int
}

func (in *keyboardInput) CloseRequested() bool {
	return ebiten.IsWindowBeingClosed()
}

func (in *keyboardInput) JustPressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}

func (in *keyboardInput) Held(k ebiten.Key) bool {
	return ebiten.IsKeyPressed(k)
}

// setSize records the drawable size from Layout.
func (in *keyboardInput) setSize(w, h int) {
	in.width, in.height = w, h
}

// Resized reports the drawable size once after each change.
func (in *keyboardInput) Resized() (int, int, bool) {
	if in.width == in.reportedW && in.height == in.reportedH {
		return 0, 0, false
	}
	if in.width <= 0 || in.height <= 0 {
		return 0, 0, false
	}
	in.reportedW, in.reportedH = in.width, in.height
	return in.width, in.height, true
}
