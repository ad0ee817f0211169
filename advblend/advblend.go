// Package advblend composites draws with the advanced (non Porter-Duff)
// blend modes.
//
// A Processor is selected per draw. When the backend exposes the matching
// hardware blend equation, the draw outputs coverage-scaled source color and
// the fixed-function blender does the rest. Otherwise the fragment shader
// reads the destination and evaluates the blend itself (see FallbackWGSL).
//
// Both configurations rely on the same identity for fractional coverage f:
//
//	blend(f*Sca, Dca, f*Sa, Da) == f*blend(Sca, Dca, Sa, Da) + (1-f)*Dca
//
// which holds for every advanced mode because their X, Y and Z terms are 1.
package advblend

import (
	msaapath "github.com/gogpu/msaapath"
)

// IsSupportedMode reports whether m is an advanced mode, that is any mode
// after the last coefficient mode.
func IsSupportedMode(m msaapath.BlendMode) bool {
	return m > msaapath.BlendModeLastCoeff && m <= msaapath.BlendModeLast
}

// HWEquation returns the hardware equation for an advanced mode. Both
// enumerations list the advanced modes in the same order.
func HWEquation(m msaapath.BlendMode) msaapath.BlendEquation {
	if !IsSupportedMode(m) {
		return msaapath.EquationNone
	}
	return msaapath.BlendEquation(int(m) - int(msaapath.BlendModeOverlay) + int(msaapath.EquationOverlay))
}

// Analysis is what the pipeline knows about the color and coverage inputs
// of a draw.
type Analysis struct {
	// AllColorStagesMultiplyInput is set when every color stage scales its
	// output by its input, so coverage folded into the input survives.
	AllColorStagesMultiplyInput bool
	// CoverageIsSolidWhite is set when coverage is 1 everywhere.
	CoverageIsSolidWhite bool
	// FourChannelCoverage is set for per-channel (LCD) coverage.
	FourChannelCoverage bool
	// UsesPLSDstRead is set when the draw already reads the destination
	// through pixel local storage.
	UsesPLSDstRead bool
}

// OptFlags are optimizations the pipeline may apply around a Processor.
type OptFlags uint8

const (
	// OptCanTweakAlphaForCoverage allows multiplying coverage into the
	// source color instead of modulating the blended result.
	OptCanTweakAlphaForCoverage OptFlags = 1 << iota
	// OptIgnoreCoverage allows dropping coverage entirely.
	OptIgnoreCoverage

	// OptNone requests no optimization.
	OptNone OptFlags = 0
)

func (f OptFlags) String() string {
	switch f {
	case OptNone:
		return "none"
	case OptCanTweakAlphaForCoverage:
		return "tweak_alpha"
	case OptIgnoreCoverage:
		return "ignore_coverage"
	case OptCanTweakAlphaForCoverage | OptIgnoreCoverage:
		return "tweak_alpha|ignore_coverage"
	default:
		return "unknown"
	}
}

// BarrierType is a synchronization point required before a draw.
type BarrierType uint8

const (
	// BarrierNone needs no synchronization.
	BarrierNone BarrierType = iota
	// BarrierBlend makes prior writes visible to the blend equation.
	BarrierBlend
)

func (b BarrierType) String() string {
	if b == BarrierBlend {
		return "blend"
	}
	return "none"
}

// BlendedColor describes what is known about a draw's output before the
// destination is available.
type BlendedColor struct {
	WillBlendWithDst bool
	// KnownComponents is a mask of RGBA components (bit 0 = R) whose value
	// is known. Known holds those components.
	KnownComponents uint8
	Known           msaapath.Color
}

// InvariantBlendedColor reports what is known about the output of an
// advanced blend. The result always depends on the destination.
func InvariantBlendedColor(msaapath.BlendMode) BlendedColor {
	return BlendedColor{WillBlendWithDst: true}
}
