package op

import (
	"fmt"

	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/advblend"
	"github.com/gogpu/msaapath/caps"
	"github.com/gogpu/msaapath/stencil"
)

// PipelineState is the fixed-function state a draw is requested with.
// MSAA enables multisample rasterization when the target has samples.
type PipelineState struct {
	Mode        msaapath.BlendMode
	Stencil     stencil.Settings
	ColorWrites bool
	HasClip     bool
	MSAA        bool
}

// Pipeline is a PipelineState finalized against the device capabilities
// and the op's color and coverage analysis.
type Pipeline struct {
	PipelineState

	// XP is the advanced blend configuration; valid when HasXP.
	XP    advblend.Processor
	HasXP bool
}

// Optimizations tell an op how the finalized pipeline consumes its color.
type Optimizations struct {
	ReadsColor       bool
	OverrideColor    msaapath.Color
	HasOverrideColor bool
	// Flags are the coverage optimizations of the advanced blend. Under
	// multisampling every fragment has coverage 1, for which all flag
	// combinations blend alike, so the fallback shader passes a constant.
	// Backends with fractional coverage pick the coverage argument from
	// them, as advblend.Processor.Evaluate does.
	Flags advblend.OptFlags
}

// OverrideColorIfSet replaces *c with the override color when there is one.
func (o Optimizations) OverrideColorIfSet(c *msaapath.Color) {
	if o.HasOverrideColor {
		*c = o.OverrideColor
	}
}

// Finalize selects the blend configuration for s.
func (s PipelineState) Finalize(c caps.Caps, a advblend.Analysis) (Pipeline, Optimizations) {
	p := Pipeline{PipelineState: s}
	opt := Optimizations{ReadsColor: s.ColorWrites}
	if !s.ColorWrites {
		return p, opt
	}
	switch {
	case advblend.IsSupportedMode(s.Mode):
		xp, _ := advblend.Select(s.Mode, c, a)
		p.XP, p.HasXP = xp, true
		opt.Flags = xp.Optimizations(a)
	case s.Mode == msaapath.BlendModeDst:
		opt.ReadsColor = false
	case s.Mode == msaapath.BlendModeClear:
		opt.OverrideColor, opt.HasOverrideColor = msaapath.ColorTransparent, true
	}
	return p, opt
}

// Equal reports whether both pipelines produce identical state.
func (p Pipeline) Equal(o Pipeline) bool {
	if p.PipelineState != o.PipelineState || p.HasXP != o.HasXP {
		return false
	}
	return !p.HasXP || p.XP.Equal(o.XP)
}

// ReadsDst reports whether fragments read the destination color.
func (p Pipeline) ReadsDst() bool {
	return p.HasXP && p.XP.WillReadDst()
}

// Barrier returns the synchronization needed before draws with p.
func (p Pipeline) Barrier(c caps.Caps) advblend.BarrierType {
	if !p.HasXP {
		return advblend.BarrierNone
	}
	return p.XP.Barrier(c)
}

func (p Pipeline) String() string {
	s := fmt.Sprintf("mode=%v color=%t clip=%t stencil=%v", p.Mode, p.ColorWrites, p.HasClip, p.Stencil)
	if p.HasXP {
		s += " xp=" + p.XP.String()
	}
	return s
}

// CanCombine reports whether two ops with pipelines a and b and device
// bounds ab and bb may be drawn as one. Pipelines that read the destination
// or need a barrier only combine when the ops do not overlap.
func CanCombine(a Pipeline, ab msaapath.Rect, b Pipeline, bb msaapath.Rect, c caps.Caps) bool {
	if !a.Equal(b) {
		return false
	}
	if a.ReadsDst() || a.Barrier(c) != advblend.BarrierNone {
		return !ab.Intersects(bb)
	}
	return true
}
