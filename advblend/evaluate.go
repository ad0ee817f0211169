package advblend

import (
	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/internal/blend"
)

// Premul is a premultiplied float color.
type Premul = blend.Premul

// PremulOf unpacks a packed color.
func PremulOf(c msaapath.Color) Premul {
	r, g, b, a := c.Floats()
	return Premul{R: r, G: g, B: b, A: a}
}

// Pack converts p back to a packed color.
func Pack(p Premul) msaapath.Color {
	return msaapath.PackPremul(float64(p.R), float64(p.G), float64(p.B), float64(p.A))
}

// Evaluate computes what the configuration writes for a fragment with
// source src, destination dst and fractional coverage. It is the CPU
// reference for both the hardware equation and the shader fallback.
//
// The hardware path and OptCanTweakAlphaForCoverage fold coverage into the
// source before blending. The fallback otherwise blends first and then
// interpolates towards the destination. Both produce the same result.
func (p Processor) Evaluate(src, dst Premul, coverage float32, flags OptFlags) Premul {
	op, ok := blend.Operator(p.mode)
	if !ok {
		panic("advblend: evaluate on an unsupported mode " + p.mode.String())
	}
	if flags&OptIgnoreCoverage != 0 {
		coverage = 1
	}
	if p.HasHWEquation() || flags&OptCanTweakAlphaForCoverage != 0 {
		return blend.Composite(op, src.Scale(coverage), dst)
	}
	return blend.Modulate(blend.Composite(op, src, dst), dst, coverage)
}

// EvaluateColor is Evaluate over packed colors.
func (p Processor) EvaluateColor(src, dst msaapath.Color, coverage float32, flags OptFlags) msaapath.Color {
	return Pack(p.Evaluate(PremulOf(src), PremulOf(dst), coverage, flags))
}
