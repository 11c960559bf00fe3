package style

import "github.com/hajimehoshi/ebiten/v2/text/v2"

// Logical-pixel reference values. The exported vars are recalculated by
// SetDPIScale.
const (
	baseOverlayPadding = 12
	baseOverlayMargin  = 8
	baseKeypadButton   = 44
	baseKeypadSpacing  = 4
)

var dpiScale = 1.0

// Spatial values in physical pixels
var (
	OverlayPadding = baseOverlayPadding
	OverlayMargin  = baseOverlayMargin
	KeypadButton   = baseKeypadButton
	KeypadSpacing  = baseKeypadSpacing
)

// DPIScale returns the current DPI scale factor.
func DPIScale() float64 {
	return dpiScale
}

// Px converts a logical pixel value to physical pixels.
func Px(logical int) int {
	return int(float64(logical) * dpiScale)
}

// SetDPIScale sets the DPI scale factor and recalculates all spatial vars.
func SetDPIScale(scale float64) {
	if scale < 1.0 {
		scale = 1.0
	}
	if scale == dpiScale {
		return
	}
	dpiScale = scale

	OverlayPadding = Px(baseOverlayPadding)
	OverlayMargin = Px(baseOverlayMargin)
	KeypadButton = Px(baseKeypadButton)
	KeypadSpacing = Px(baseKeypadSpacing)

	if fontFace != nil {
		if source := loadFontSource(); source != nil {
			fontFace = &text.GoTextFace{Source: source, Size: baseFontSize * dpiScale}
		}
	}
}
