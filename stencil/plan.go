package stencil

import (
	"fmt"
	"strings"

	msaapath "github.com/gogpu/msaapath"
)

// MaxPasses is the most passes any fill needs.
const MaxPasses = 2

// Pass is one draw of a fill. Tessellated passes draw the path geometry;
// bounds passes draw a rectangle over the path (or the whole target for
// inverse fills) to resolve the stencil into color.
type Pass struct {
	Settings    Settings
	WritesColor bool
	DrawsBounds bool
}

// Plan is the ordered pass list for one fill.
type Plan struct {
	passes [MaxPasses]Pass
	count  int

	// Reverse is set for inverse fills: the bounds pass covers the target.
	Reverse bool
	// LastPassIsBounds is set when the final pass draws a cover rectangle.
	LastPassIsBounds bool
}

// Passes returns the passes in draw order.
func (p *Plan) Passes() []Pass { return p.passes[:p.count] }

// Len returns the number of passes.
func (p *Plan) Len() int { return p.count }

func (p *Plan) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "passes=%d reverse=%t bounds=%t", p.count, p.Reverse, p.LastPassIsBounds)
	for i, pass := range p.Passes() {
		fmt.Fprintf(&b, " [%d color=%t bounds=%t %v]", i, pass.WritesColor, pass.DrawsBounds, pass.Settings)
	}
	return b.String()
}

// SinglePass reports whether a shape fills in one pass: it is not inverse
// filled and known to be convex.
func SinglePass(shape msaapath.Shape) bool {
	return !shape.InverseFilled() && shape.KnownToBeConvex()
}

// Sequence plans the passes that fill shape. user applies to single-pass
// shapes. With stencilOnly the fill only writes the stencil: single-pass
// shapes use DirectToStencil and multi-pass fills stop after their
// stencil pass. Sequence panics on an unknown fill rule.
func Sequence(shape msaapath.Shape, user Settings, stencilOnly bool) Plan {
	var plan Plan

	if SinglePass(shape) {
		plan.count = 1
		if stencilOnly {
			plan.passes[0] = Pass{Settings: DirectToStencil}
		} else {
			plan.passes[0] = Pass{Settings: user, WritesColor: true}
		}
		return plan
	}

	var stencilPass, colorPass, invColorPass Settings
	fill := shape.Path().FillRule()
	switch fill {
	case msaapath.FillRuleInverseEvenOdd, msaapath.FillRuleEvenOdd:
		stencilPass, colorPass, invColorPass = EOStencilPass, EOColorPass, InvEOColorPass
	case msaapath.FillRuleInverseNonZero, msaapath.FillRuleNonZero:
		stencilPass, colorPass, invColorPass = WindStencilSeparateWithWrap, WindColorPass, InvWindColorPass
	default:
		panic(fmt.Sprintf("stencil: unknown fill rule %d", uint8(fill)))
	}
	plan.Reverse = fill.IsInverse()

	plan.passes[0] = Pass{Settings: stencilPass}
	if stencilOnly {
		plan.count = 1
		return plan
	}

	cover := colorPass
	if plan.Reverse {
		cover = invColorPass
	}
	plan.passes[1] = Pass{Settings: cover, WritesColor: true, DrawsBounds: true}
	plan.count = 2
	plan.LastPassIsBounds = true
	return plan
}
