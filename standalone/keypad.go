package standalone

import (
	"math"

	"github.com/ebitenui/ebitenui"
	ebitenuiInput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/djrideout/basic-emu-frontend/keymap"
	"github.com/djrideout/basic-emu-frontend/standalone/style"
)

// keyInjector forces keys on and off independently of the keyboard.
type keyInjector interface {
	InjectPress(key ebiten.Key)
	InjectRelease(key ebiten.Key)
}

// Keypad is the on-screen key overlay. Each button forces its key while
// held with the mouse, and a marker shows which logical keys the core
// currently sees as pressed.
type Keypad struct {
	keys    keymap.Keymap
	labels  []string
	inject  keyInjector
	visible bool

	ui      *ebitenui.UI
	buttons []*widget.Button
	builtAt float64 // DPI scale of the current build

	// Logical key state as last reported by the loop
	held []bool
	// Keys this keypad has forced down
	forced []bool

	marker *ebiten.Image
}

// NewKeypad creates a keypad for keys. inject may be set later with Attach.
func NewKeypad(keys keymap.Keymap, visible bool) *Keypad {
	return &Keypad{
		keys:    keys,
		labels:  keys.Names(),
		visible: visible,
		held:    make([]bool, keys.Len()),
		forced:  make([]bool, keys.Len()),
	}
}

// Attach sets the target for button presses.
func (k *Keypad) Attach(inject keyInjector) {
	k.inject = inject
}

// OnKeyPressed implements frontend.KeyObserver.
func (k *Keypad) OnKeyPressed(index int) {
	if index >= 0 && index < len(k.held) {
		k.held[index] = true
	}
}

// OnKeyReleased implements frontend.KeyObserver.
func (k *Keypad) OnKeyReleased(index int) {
	if index >= 0 && index < len(k.held) {
		k.held[index] = false
	}
}

// Toggle shows or hides the overlay and returns the new state. Hiding
// releases every key the keypad holds.
func (k *Keypad) Toggle() bool {
	k.visible = !k.visible
	if !k.visible {
		k.releaseAll()
	}
	return k.visible
}

func (k *Keypad) press(i int) {
	if k.inject == nil || k.forced[i] {
		return
	}
	k.forced[i] = true
	k.inject.InjectPress(k.keys.At(i))
}

func (k *Keypad) release(i int) {
	if k.inject == nil || !k.forced[i] {
		return
	}
	k.forced[i] = false
	k.inject.InjectRelease(k.keys.At(i))
}

// releaseAll releases the keys this keypad forced. Keys forced by anyone
// else are left alone.
func (k *Keypad) releaseAll() {
	for i := range k.forced {
		k.release(i)
	}
}

// columns returns the grid width for n keys, as close to square as possible.
func columns(n int) int {
	if n <= 0 {
		return 1
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}

func (k *Keypad) build() {
	buttons := make([]*widget.Button, k.keys.Len())
	for i := range buttons {
		buttons[i] = style.KeyButton(k.labels[i],
			func() { k.press(i) },
			func() { k.release(i) },
		)
	}

	grid := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(columns(len(buttons))),
			widget.GridLayoutOpts.Spacing(style.KeypadSpacing, style.KeypadSpacing),
			widget.GridLayoutOpts.Padding(widget.NewInsetsSimple(style.OverlayMargin)),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	for _, b := range buttons {
		grid.AddChild(b)
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(grid)

	k.ui = &ebitenui.UI{Container: root}
	k.buttons = buttons
	k.builtAt = style.DPIScale()
}

// Update processes mouse input for the overlay.
func (k *Keypad) Update() {
	if !k.visible {
		// Keep ebitenui's input state current while hidden
		ebitenuiInput.Update()
		ebitenuiInput.AfterUpdate()
		return
	}
	if k.ui == nil || k.builtAt != style.DPIScale() {
		// Old buttons never see their release
		k.releaseAll()
		k.build()
	}
	k.ui.Update()
}

// Draw renders the overlay and the held-key markers.
func (k *Keypad) Draw(screen *ebiten.Image) {
	if !k.visible || k.ui == nil {
		return
	}
	k.ui.Draw(screen)

	size := style.Px(6)
	if k.marker == nil || k.marker.Bounds().Dx() != size {
		k.marker = ebiten.NewImage(size, size)
		k.marker.Fill(style.Accent)
	}
	for i, b := range k.buttons {
		if !k.held[i] {
			continue
		}
		r := b.GetWidget().Rect
		if r.Empty() {
			continue
		}
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Translate(float64(r.Min.X+size/2), float64(r.Min.Y+size/2))
		screen.DrawImage(k.marker, opts)
	}
}
