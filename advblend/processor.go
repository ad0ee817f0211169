package advblend

import (
	"fmt"

	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/caps"
)

// Processor is the blend configuration chosen for one draw. A Processor
// with Equation() == EquationNone blends in the shader and reads the
// destination.
type Processor struct {
	mode msaapath.BlendMode
	eq   msaapath.BlendEquation
}

// canUseHWEquation reports whether the hardware equation eq may serve a
// draw with the given analysis.
func canUseHWEquation(eq msaapath.BlendEquation, a Analysis, c caps.Caps) bool {
	if !c.AdvancedBlendEquationSupport() {
		return false
	}
	if a.UsesPLSDstRead {
		return false
	}
	// Per-channel coverage has to be applied after the blend, which a
	// hardware equation cannot express.
	if a.FourChannelCoverage {
		return false
	}
	return !c.RefusesEquation(eq)
}

// Select chooses the configuration for mode. It returns false when mode is
// not an advanced mode.
func Select(mode msaapath.BlendMode, c caps.Caps, a Analysis) (Processor, bool) {
	if !IsSupportedMode(mode) {
		return Processor{}, false
	}
	eq := HWEquation(mode)
	if !canUseHWEquation(eq, a, c) {
		eq = msaapath.EquationNone
	}
	return Processor{mode: mode, eq: eq}, true
}

// WillReadDst reports whether a draw in mode has to read the destination.
func WillReadDst(mode msaapath.BlendMode, c caps.Caps, a Analysis) bool {
	return !canUseHWEquation(HWEquation(mode), a, c)
}

// Mode returns the blend mode.
func (p Processor) Mode() msaapath.BlendMode { return p.mode }

// Equation returns the hardware equation, or EquationNone.
func (p Processor) Equation() msaapath.BlendEquation { return p.eq }

// HasHWEquation reports whether the hardware equation is used.
func (p Processor) HasHWEquation() bool { return p.eq != msaapath.EquationNone }

// WillReadDst reports whether the shader reads the destination.
func (p Processor) WillReadDst() bool { return !p.HasHWEquation() }

// Key returns the program key of the processor. Hardware configurations
// are keyed by the shader interaction class, and by mode when the shader
// has to name the equation or evaluates the mode itself.
func (p Processor) Key(c caps.Caps) uint32 {
	var key uint32
	if p.HasHWEquation() {
		key |= uint32(c.AdvBlendEqInteraction())
	}
	if !p.HasHWEquation() || c.MustEnableSpecificAdvBlendEqs() {
		key |= uint32(p.mode) << 3
	}
	return key
}

// Barrier returns the synchronization needed before the draw.
func (p Processor) Barrier(c caps.Caps) BarrierType {
	if p.HasHWEquation() && !c.AdvancedCoherentBlendEquationSupport() {
		return BarrierBlend
	}
	return BarrierNone
}

// Optimizations returns what the pipeline may skip around the processor.
func (p Processor) Optimizations(a Analysis) OptFlags {
	flags := OptNone
	if a.AllColorStagesMultiplyInput {
		flags |= OptCanTweakAlphaForCoverage
	}
	if p.HasHWEquation() && a.CoverageIsSolidWhite {
		flags |= OptIgnoreCoverage
	}
	return flags
}

// BlendInfo returns the fixed-function equation to program: the hardware
// equation, or plain addition for the shader fallback.
func (p Processor) BlendInfo() msaapath.BlendEquation {
	if p.HasHWEquation() {
		return p.eq
	}
	return msaapath.EquationAdd
}

// Equal reports whether both processors produce the same program.
func (p Processor) Equal(o Processor) bool {
	return p.mode == o.mode && p.eq == o.eq
}

func (p Processor) String() string {
	if p.HasHWEquation() {
		return fmt.Sprintf("advblend(%v, hw=%v)", p.mode, p.eq)
	}
	return fmt.Sprintf("advblend(%v, dst-read)", p.mode)
}
