package standalone

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// gameSurface implements frontend.Surface. Frames are uploaded to an
// offscreen image at native resolution and scaled to the window in Draw.
type gameSurface struct {
	width, height int
	offscreen     *ebiten.Image
	drawOpts      ebiten.DrawImageOptions

	// Last presented frame, kept for screenshots
	last []byte

	redrawPending bool
}

func newGameSurface(width, height int) *gameSurface {
	return &gameSurface{
		width:         width,
		height:        height,
		last:          make([]byte, width*height*4),
		redrawPending: true,
	}
}

// Present uploads an RGBA frame of the native size.
func (s *gameSurface) Present(frame []byte) error {
	if want := s.width * s.height * 4; len(frame) != want {
		return fmt.Errorf("frame is %d bytes, want %d", len(frame), want)
	}
	if s.offscreen == nil {
		s.offscreen = ebiten.NewImage(s.width, s.height)
	}
	s.offscreen.WritePixels(frame)
	copy(s.last, frame)
	return nil
}

// Resize has nothing to do: ebiten sizes the screen image from Layout and
// draw fits the frame to its bounds.
func (s *gameSurface) Resize(width, height int) error {
	return nil
}

// RequestRedraw marks that the next Draw should render the core again.
func (s *gameSurface) RequestRedraw() {
	s.redrawPending = true
}

// takeRedraw reports and clears a pending redraw request.
func (s *gameSurface) takeRedraw() bool {
	pending := s.redrawPending
	s.redrawPending = false
	return pending
}

// draw renders the offscreen image with aspect-ratio-preserving scaling.
func (s *gameSurface) draw(screen *ebiten.Image) {
	if s.offscreen == nil {
		return
	}
	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale, offsetX, offsetY := fitScale(s.width, s.height, screenW, screenH)

	s.drawOpts = ebiten.DrawImageOptions{}
	s.drawOpts.GeoM.Scale(scale, scale)
	s.drawOpts.GeoM.Translate(offsetX, offsetY)
	s.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(s.offscreen, &s.drawOpts)
}

// fitScale returns the largest uniform scale that fits a native image into
// the screen, and the offsets that center it.
func fitScale(nativeW, nativeH, screenW, screenH int) (scale, offsetX, offsetY float64) {
	if nativeW <= 0 || nativeH <= 0 {
		return 0, 0, 0
	}
	scaleX := float64(screenW) / float64(nativeW)
	scaleY := float64(screenH) / float64(nativeH)
	scale = min(scaleX, scaleY)

	offsetX = (float64(screenW) - float64(nativeW)*scale) / 2
	offsetY = (float64(screenH) - float64(nativeH)*scale) / 2
	return scale, offsetX, offsetY
}
