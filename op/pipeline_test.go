package op

import (
	"testing"

	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/advblend"
	"github.com/gogpu/msaapath/caps"
	"github.com/gogpu/msaapath/stencil"
)

func TestFinalizeSelectsBlend(t *testing.T) {
	hw := caps.New(caps.WithAdvancedBlend(false))
	a := advblend.Analysis{AllColorStagesMultiplyInput: true, CoverageIsSolidWhite: true}

	tests := []struct {
		name      string
		state     PipelineState
		caps      caps.Caps
		wantXP    bool
		wantRead  bool
		wantFlags advblend.OptFlags
	}{
		{"src over", defaultState, hw, false, false, advblend.OptNone},
		{"hardware overlay", PipelineState{Mode: msaapath.BlendModeOverlay, ColorWrites: true}, hw, true, false,
			advblend.OptCanTweakAlphaForCoverage | advblend.OptIgnoreCoverage},
		{"fallback overlay", PipelineState{Mode: msaapath.BlendModeOverlay, ColorWrites: true}, caps.New(), true, true,
			advblend.OptCanTweakAlphaForCoverage},
		{"stencil pass", PipelineState{Mode: msaapath.BlendModeOverlay, Stencil: stencil.EOStencilPass}, hw, false, false, advblend.OptNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, opt := tt.state.Finalize(tt.caps, a)
			if p.HasXP != tt.wantXP {
				t.Errorf("HasXP = %t, want %t", p.HasXP, tt.wantXP)
			}
			if p.ReadsDst() != tt.wantRead {
				t.Errorf("ReadsDst() = %t, want %t", p.ReadsDst(), tt.wantRead)
			}
			if opt.Flags != tt.wantFlags {
				t.Errorf("Flags = %v, want %v", opt.Flags, tt.wantFlags)
			}
		})
	}
}

// With full coverage the fallback blend does not depend on the coverage
// flags, which lets the backend pass a constant coverage of 1.
func TestFinalizeFlagsUnderFullCoverage(t *testing.T) {
	src := advblend.PremulOf(msaapath.RGBA(0.8, 0.2, 0.4, 0.6))
	dst := advblend.PremulOf(msaapath.RGBA(0.1, 0.5, 0.9, 0.7))
	for m := msaapath.BlendModeClear; m <= msaapath.BlendModeLast; m++ {
		if !advblend.IsSupportedMode(m) {
			continue
		}
		p, opt := PipelineState{Mode: m, ColorWrites: true}.Finalize(caps.New(), solidAnalysis())
		if !p.ReadsDst() {
			t.Fatalf("%v: fallback pipeline does not read dst", m)
		}
		if opt.Flags&advblend.OptIgnoreCoverage != 0 {
			t.Errorf("%v: fallback may not ignore coverage", m)
		}
		got := p.XP.Evaluate(src, dst, 1, opt.Flags)
		want := p.XP.Evaluate(src, dst, 1, advblend.OptNone)
		if got != want {
			t.Errorf("%v: flags %v changed a fully covered blend: %+v != %+v", m, opt.Flags, got, want)
		}
	}
}

func TestCanCombine(t *testing.T) {
	left := msaapath.RectLTRB(0, 0, 10, 10)
	overlapping := msaapath.RectLTRB(5, 5, 15, 15)
	apart := msaapath.RectLTRB(20, 0, 30, 10)
	a := advblend.Analysis{}

	plain, _ := defaultState.Finalize(caps.New(), a)
	incoherent := caps.New(caps.WithAdvancedBlend(false))
	coherent := caps.New(caps.WithAdvancedBlend(true))
	overlay := PipelineState{Mode: msaapath.BlendModeOverlay, ColorWrites: true}
	dstRead, _ := overlay.Finalize(caps.New(), a)
	barrier, _ := overlay.Finalize(incoherent, a)
	free, _ := overlay.Finalize(coherent, a)

	tests := []struct {
		name   string
		a, b   Pipeline
		bounds msaapath.Rect
		caps   caps.Caps
		want   bool
	}{
		{"plain overlapping", plain, plain, overlapping, caps.New(), true},
		{"different pipelines", plain, dstRead, apart, caps.New(), false},
		{"dst read overlapping", dstRead, dstRead, overlapping, caps.New(), false},
		{"dst read apart", dstRead, dstRead, apart, caps.New(), true},
		{"barrier overlapping", barrier, barrier, overlapping, incoherent, false},
		{"barrier apart", barrier, barrier, apart, incoherent, true},
		{"coherent overlapping", free, free, overlapping, coherent, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanCombine(tt.a, left, tt.b, tt.bounds, tt.caps); got != tt.want {
				t.Errorf("CanCombine() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindQuadCoverage.String() != "QuadCoverage" || Kind(9).String() != "Kind(9)" {
		t.Errorf("Kind strings: %v %v", KindQuadCoverage, Kind(9))
	}
	if PrimitiveTriangleFan.String() != "TriangleFan" {
		t.Errorf("Primitive string: %v", PrimitiveTriangleFan)
	}
}
