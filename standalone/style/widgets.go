package style

import (
	"github.com/ebitenui/ebitenui/widget"
)

// KeyButton creates a keypad button that reports press and release
// separately, so a key can be held with the mouse.
func KeyButton(label string, onPress, onRelease func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(ButtonImage()),
		widget.ButtonOpts.Text(label, FontFace(), ButtonTextColor()),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(KeypadButton, KeypadButton),
		),
		widget.ButtonOpts.PressedHandler(func(args *widget.ButtonPressedEventArgs) {
			onPress()
		}),
		widget.ButtonOpts.ReleasedHandler(func(args *widget.ButtonReleasedEventArgs) {
			onRelease()
		}),
	)
}
