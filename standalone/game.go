package standalone

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/djrideout/basic-emu-frontend/frontend"
	"github.com/djrideout/basic-emu-frontend/standalone/style"
)

// Game implements ebiten.Game over a frontend session. Update handles input
// and Draw handles redraws; both run on ebiten's game goroutine.
type Game struct {
	session      *frontend.Frontend
	loop         *frontend.Loop
	surface      *gameSurface
	input        *keyboardInput
	keypad       *Keypad
	notification *Notification
	screenshots  *ScreenshotManager

	currentDPIScale     float64
	screenshotRequested bool

	// First redraw failure, returned from the next Update
	drawErr error
}

func newGame(session *frontend.Frontend, keypad *Keypad, screenshots *ScreenshotManager, notification *Notification) *Game {
	loop := session.Loop()
	w, h := loop.Size()
	return &Game{
		session:         session,
		loop:            loop,
		surface:         newGameSurface(w, h),
		input:           &keyboardInput{},
		keypad:          keypad,
		notification:    notification,
		screenshots:     screenshots,
		currentDPIScale: 1.0,
	}
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	if g.drawErr != nil {
		return g.drawErr
	}
	if err := g.session.AudioErr(); err != nil {
		return fmt.Errorf("audio stream: %w", err)
	}

	if inpututil.IsKeyJustPressed(keyFullscreen) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(keyScreenshot) {
		g.screenshotRequested = true
	}
	if inpututil.IsKeyJustPressed(keyKeypad) {
		if g.keypad.Toggle() {
			g.notification.Show("Keypad shown")
		} else {
			g.notification.Show("Keypad hidden")
		}
	}
	g.keypad.Update()

	err := g.loop.HandleInput(g.input, g.surface)
	if errors.Is(err, frontend.ErrClosed) {
		return ebiten.Termination
	}
	return err
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	if g.surface.takeRedraw() {
		if err := g.loop.Redraw(g.surface); err != nil && g.drawErr == nil {
			g.drawErr = err
		}
	}
	g.surface.draw(screen)

	if g.screenshotRequested {
		g.screenshotRequested = false
		w, h := g.loop.Size()
		if err := g.screenshots.TakeScreenshot(w, h, g.surface.last); err != nil {
			log.Printf("Screenshot failed: %v", err)
			g.notification.Show("Screenshot failed")
		}
	}

	g.keypad.Draw(screen)
	g.notification.Draw(screen)
}

// Layout implements ebiten.Game
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := 1.0
	if m := ebiten.Monitor(); m != nil {
		s = m.DeviceScaleFactor()
	}
	if s != g.currentDPIScale {
		g.currentDPIScale = s
		style.SetDPIScale(s)
	}

	// Physical pixel dimensions so overlays render at full resolution
	w := int(float64(outsideWidth) * s)
	h := int(float64(outsideHeight) * s)
	g.input.setSize(w, h)
	return w, h
}
