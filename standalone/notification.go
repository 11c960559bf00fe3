package standalone

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/djrideout/basic-emu-frontend/standalone/style"
)

const notificationDuration = time.Second

// Notification is a one-line message shown in the bottom-right corner for
// a short time. It is only touched from the game goroutine.
type Notification struct {
	message string
	until   time.Time
	now     func() time.Time

	// 1x1 background pixel, scaled to the box
	pixel *ebiten.Image
}

// NewNotification creates an empty notification.
func NewNotification() *Notification {
	return &Notification{now: time.Now}
}

// Show replaces the current message.
func (n *Notification) Show(message string) {
	n.message = message
	n.until = n.now().Add(notificationDuration)
}

func (n *Notification) active() bool {
	return n.message != "" && n.now().Before(n.until)
}

// Draw renders the message while it is active.
func (n *Notification) Draw(screen *ebiten.Image) {
	if !n.active() {
		return
	}
	face := *style.FontFace()
	w, h := text.Measure(n.message, face, 0)
	pad := float64(style.OverlayPadding)
	boxW, boxH := w+2*pad, h+2*pad
	x := float64(screen.Bounds().Dx()-style.OverlayMargin) - boxW
	y := float64(screen.Bounds().Dy()-style.OverlayMargin) - boxH

	if n.pixel == nil {
		n.pixel = ebiten.NewImage(1, 1)
		n.pixel.Fill(style.OverlayBackground)
	}
	bg := &ebiten.DrawImageOptions{}
	bg.GeoM.Scale(boxW, boxH)
	bg.GeoM.Translate(x, y)
	bg.ColorScale.ScaleAlpha(0.6)
	screen.DrawImage(n.pixel, bg)

	opts := &text.DrawOptions{}
	opts.GeoM.Translate(x+pad, y+pad)
	opts.ColorScale.ScaleWithColor(style.Text)
	text.Draw(screen, n.message, face, opts)
}
