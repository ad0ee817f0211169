package msaapath

import "fmt"

// BlendMode selects how a draw is composited with the destination.
//
// The order is significant: coefficient (Porter-Duff) modes come first and
// end at BlendModeScreen, the remaining separable modes follow, and the
// non-separable HSL modes close the enumeration.
type BlendMode uint8

const (
	BlendModeClear BlendMode = iota
	BlendModeSrc
	BlendModeDst
	BlendModeSrcOver
	BlendModeDstOver
	BlendModeSrcIn
	BlendModeDstIn
	BlendModeSrcOut
	BlendModeDstOut
	BlendModeSrcATop
	BlendModeDstATop
	BlendModeXor
	BlendModePlus
	BlendModeModulate
	BlendModeScreen

	BlendModeOverlay
	BlendModeDarken
	BlendModeLighten
	BlendModeColorDodge
	BlendModeColorBurn
	BlendModeHardLight
	BlendModeSoftLight
	BlendModeDifference
	BlendModeExclusion
	BlendModeMultiply

	BlendModeHue
	BlendModeSaturation
	BlendModeColor
	BlendModeLuminosity
)

// Range markers.
const (
	// BlendModeLastCoeff is the last mode expressible with blend coefficients.
	BlendModeLastCoeff = BlendModeScreen
	// BlendModeLastSeparable is the last per-channel mode.
	BlendModeLastSeparable = BlendModeMultiply
	// BlendModeLast is the last valid mode.
	BlendModeLast = BlendModeLuminosity
)

var blendModeNames = [...]string{
	"Clear", "Src", "Dst", "SrcOver", "DstOver", "SrcIn", "DstIn", "SrcOut",
	"DstOut", "SrcATop", "DstATop", "Xor", "Plus", "Modulate", "Screen",
	"Overlay", "Darken", "Lighten", "ColorDodge", "ColorBurn", "HardLight",
	"SoftLight", "Difference", "Exclusion", "Multiply",
	"Hue", "Saturation", "Color", "Luminosity",
}

// String returns the mode name.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return fmt.Sprintf("BlendMode(%d)", uint8(m))
}

// IsCoeff reports whether the mode is a coefficient mode.
func (m BlendMode) IsCoeff() bool {
	return m <= BlendModeLastCoeff
}

// IsSeparable reports whether the mode blends each channel independently.
func (m BlendMode) IsSeparable() bool {
	return m <= BlendModeLastSeparable
}

// BlendEquation is a fixed-function blend operator. The basic equations
// combine coefficient-scaled source and destination; the advanced ones
// (EquationScreen onward) are the KHR_blend_equation_advanced operators.
type BlendEquation int8

const (
	// EquationNone means no hardware equation: blending happens in the shader.
	EquationNone BlendEquation = -1

	EquationAdd BlendEquation = iota - 1
	EquationSubtract
	EquationReverseSubtract

	EquationScreen
	EquationOverlay
	EquationDarken
	EquationLighten
	EquationColorDodge
	EquationColorBurn
	EquationHardLight
	EquationSoftLight
	EquationDifference
	EquationExclusion
	EquationMultiply
	EquationHSLHue
	EquationHSLSaturation
	EquationHSLColor
	EquationHSLLuminosity

	// EquationCount is the number of defined equations.
	EquationCount
)

// EquationFirstAdvanced is the first advanced equation.
const EquationFirstAdvanced = EquationScreen

var equationNames = [...]string{
	"add", "subtract", "reverse_subtract",
	"screen", "overlay", "darken", "lighten", "color_dodge", "color_burn",
	"hard_light", "soft_light", "difference", "exclusion", "multiply",
	"hsl_hue", "hsl_saturation", "hsl_color", "hsl_luminosity",
}

// String returns the snake_case equation name used in capability profiles.
func (e BlendEquation) String() string {
	if e >= 0 && e < EquationCount {
		return equationNames[e]
	}
	if e == EquationNone {
		return "none"
	}
	return fmt.Sprintf("BlendEquation(%d)", int8(e))
}

// IsAdvanced reports whether e is one of the advanced equations.
func (e BlendEquation) IsAdvanced() bool {
	return e >= EquationFirstAdvanced && e < EquationCount
}

// ParseBlendEquation returns the equation with the given snake_case name.
func ParseBlendEquation(name string) (BlendEquation, bool) {
	for i, n := range equationNames {
		if n == name {
			return BlendEquation(i), true
		}
	}
	return EquationNone, false
}
