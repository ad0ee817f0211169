// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/op"
	"github.com/gogpu/msaapath/stencil"
)

type recordedDraw struct {
	state op.PipelineState
	op    op.Op
}

// recordingContext records the ops it is given without finalizing them.
type recordingContext struct {
	width, height int
	draws         []recordedDraw
}

func (c *recordingContext) Width() int  { return c.width }
func (c *recordingContext) Height() int { return c.height }

func (c *recordingContext) AddDrawOp(state op.PipelineState, o op.Op) {
	c.draws = append(c.draws, recordedDraw{state: state, op: o})
}

func newContext() *recordingContext {
	return &recordingContext{width: 200, height: 100}
}

// triangle returns a closed triangle of three line verbs. Its convexity is hinted concave so
// that it takes the stencil-then-cover route.
func triangle(fill msaapath.FillRule) *msaapath.Path {
	p := msaapath.NewPath()
	p.MoveTo(10, 10)
	p.LineTo(50, 10)
	p.LineTo(30, 40)
	p.LineTo(10, 10)
	p.Close()
	p.SetFillRule(fill)
	p.SetConvexity(msaapath.ConvexityConcave)
	return p
}

func fillArgs(dc DrawContext, p *msaapath.Path, view msaapath.Matrix) DrawPathArgs {
	return DrawPathArgs{
		Context: dc,
		Paint:   Paint{Color: msaapath.ColorBlack, Mode: msaapath.BlendModeSrcOver},
		Stencil: stencil.Unused,
		View:    view,
		Shape:   msaapath.FillShape(p),
		AA:      AAMSAA,
	}
}

func TestDrawPathTriangleCoversBounds(t *testing.T) {
	dc := newContext()
	if !New().DrawPath(fillArgs(dc, triangle(msaapath.FillRuleNonZero), msaapath.Identity())) {
		t.Fatal("DrawPath() = false")
	}
	if len(dc.draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(dc.draws))
	}

	first, second := dc.draws[0], dc.draws[1]
	batch, ok := first.op.(*op.PathBatch)
	if !ok {
		t.Fatalf("first op = %T, want *op.PathBatch", first.op)
	}
	if first.state.ColorWrites || first.state.Stencil != stencil.WindStencilSeparateWithWrap {
		t.Errorf("stencil pass state = %+v", first.state)
	}
	// The start point plus three line verbs.
	if lines, quads := batch.MaxVertices(); lines != 4 || quads != 0 {
		t.Errorf("MaxVertices() = %d lines, %d quads, want 4, 0", lines, quads)
	}

	cover, ok := second.op.(*op.RectBatch)
	if !ok {
		t.Fatalf("second op = %T, want *op.RectBatch", second.op)
	}
	if !second.state.ColorWrites || second.state.Stencil != stencil.WindColorPass {
		t.Errorf("cover pass state = %+v", second.state)
	}
	if got := cover.Rects(); len(got) != 1 || got[0] != msaapath.RectLTRB(10, 10, 50, 40) {
		t.Errorf("cover rects = %v, want the triangle bounds", got)
	}
	if !second.state.MSAA {
		t.Error("MSAA not requested")
	}
}

func TestDrawPathInverseCoversDevice(t *testing.T) {
	dc := newContext()
	if !New().DrawPath(fillArgs(dc, triangle(msaapath.FillRuleInverseNonZero), msaapath.Identity())) {
		t.Fatal("DrawPath() = false")
	}
	if len(dc.draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(dc.draws))
	}
	if got := dc.draws[0].op.Bounds(); got != msaapath.RectWH(200, 100) {
		t.Errorf("stencil pass bounds = %v, want the device", got)
	}
	cover := dc.draws[1].op.(*op.RectBatch)
	if got := cover.Rects()[0]; got != msaapath.RectWH(200, 100) {
		t.Errorf("cover rect = %v, want the device bounds", got)
	}
	if dc.draws[1].state.Stencil != stencil.InvWindColorPass {
		t.Errorf("cover stencil = %v, want InvWindColorPass", dc.draws[1].state.Stencil)
	}
}

func TestDrawPathInverseMapsThroughView(t *testing.T) {
	dc := newContext()
	view := msaapath.Scale(2, 2)
	if !New().DrawPath(fillArgs(dc, triangle(msaapath.FillRuleInverseEvenOdd), view)) {
		t.Fatal("DrawPath() = false")
	}
	cover := dc.draws[1].op.(*op.RectBatch)
	if got := cover.Rects()[0]; got != msaapath.RectWH(100, 50) {
		t.Errorf("cover rect = %v, want device bounds in local space", got)
	}
	if !cover.View().Equal(view) {
		t.Errorf("cover view = %v, want %v", cover.View(), view)
	}
	if got := cover.Bounds(); got != msaapath.RectWH(200, 100) {
		t.Errorf("cover bounds = %v, want the device", got)
	}
}

func TestDrawPathInversePerspective(t *testing.T) {
	dc := newContext()
	view := msaapath.Perspective(0.001, 0)
	if !New().DrawPath(fillArgs(dc, triangle(msaapath.FillRuleInverseNonZero), view)) {
		t.Fatal("DrawPath() = false")
	}
	cover := dc.draws[1].op.(*op.RectBatch)
	if !cover.View().IsIdentity() {
		t.Errorf("cover view = %v, want identity", cover.View())
	}
	inv, _ := view.Invert()
	if !cover.LocalMatrix().Equal(inv) {
		t.Errorf("cover local matrix = %v, want the inverse view", cover.LocalMatrix())
	}
	if got := cover.Rects()[0]; got != msaapath.RectWH(200, 100) {
		t.Errorf("cover rect = %v, want device bounds", got)
	}
}

func TestDrawPathSingularInverse(t *testing.T) {
	dc := newContext()
	if New().DrawPath(fillArgs(dc, triangle(msaapath.FillRuleInverseNonZero), msaapath.Scale(0, 1))) {
		t.Error("DrawPath() = true for a singular view")
	}
	if len(dc.draws) != 0 {
		t.Errorf("draws = %d, want none recorded", len(dc.draws))
	}
}

func TestDrawPathConvexSinglePass(t *testing.T) {
	p := msaapath.NewPath()
	p.Rectangle(0, 0, 10, 10)
	user := stencil.WindColorPass

	dc := newContext()
	args := fillArgs(dc, p, msaapath.Identity())
	args.Stencil = user
	if !New().DrawPath(args) {
		t.Fatal("DrawPath() = false")
	}
	if len(dc.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(dc.draws))
	}
	d := dc.draws[0]
	if _, ok := d.op.(*op.PathBatch); !ok || !d.state.ColorWrites || d.state.Stencil != user {
		t.Errorf("single pass = %T %+v", d.op, d.state)
	}
}

func TestDrawPathConvexHonorsClip(t *testing.T) {
	tests := []struct {
		name string
		user stencil.Settings
	}{
		{"unused", stencil.Unused},
		{"zero settings", stencil.Settings{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := msaapath.NewPath()
			p.Rectangle(10, 10, 40, 30)
			dc := newContext()
			args := fillArgs(dc, p, msaapath.Identity())
			args.Stencil = tt.user
			args.HasClip = true
			if !New().DrawPath(args) || len(dc.draws) != 1 {
				t.Fatalf("want a single pass, got %d draws", len(dc.draws))
			}

			st := dc.draws[0].state
			resolved := st.Stencil.Resolve(st.HasClip, stencil.DefaultBits)
			clipBit := uint32(1) << (stencil.DefaultBits - 1)
			if !resolved.Enabled || resolved.Front.TestMask&clipBit == 0 {
				t.Errorf("resolved = %+v, want the clip bit tested", resolved)
			}
			if resolved.Front.WriteMask != 0 || resolved.Back.WriteMask != 0 {
				t.Errorf("resolved = %+v, want no stencil writes", resolved)
			}

			if unclipped := st.Stencil.Resolve(false, stencil.DefaultBits); unclipped.Enabled {
				t.Errorf("without a clip the stencil should be off, got %+v", unclipped)
			}
		})
	}
}

func TestDrawPathRejectedBatch(t *testing.T) {
	p := msaapath.NewPath()
	for c := 0; c < 2; c++ {
		p.MoveTo(0, float64(c))
		for i := 1; i <= 11000; i++ {
			p.LineTo(float64(i), float64(c+i%2))
		}
	}
	dc := newContext()
	if New().DrawPath(fillArgs(dc, p, msaapath.Identity())) {
		t.Error("DrawPath() = true for an oversized indexed path")
	}
	if len(dc.draws) != 0 {
		t.Errorf("draws = %d, want none", len(dc.draws))
	}
}

func TestDrawPathStroke(t *testing.T) {
	p := msaapath.NewPath()
	p.MoveTo(10, 10)
	p.LineTo(50, 10)
	p.LineTo(50, 50)

	dc := newContext()
	args := fillArgs(dc, p, msaapath.Scale(2, 2))
	args.Shape = msaapath.NewShape(p, msaapath.StrokeStyle(4))
	if !New().DrawPath(args) {
		t.Fatal("DrawPath() = false for a stroke")
	}
	if len(dc.draws) == 0 {
		t.Fatal("no draws recorded")
	}
	want := msaapath.RectLTRB(20, 16, 104, 100)
	got := dc.draws[0].op.Bounds()
	if got.Left > want.Left || got.Top > want.Top || got.Right < want.Right || got.Bottom < want.Bottom {
		t.Errorf("stroke bounds = %v, want to cover %v", got, want)
	}
}

func TestDrawPathUnsupportedStyles(t *testing.T) {
	p := triangle(msaapath.FillRuleNonZero)
	styles := map[string]msaapath.Style{
		"hairline": {Kind: msaapath.StyleHairline},
		"dashed":   {Kind: msaapath.StyleStroke, Width: 2, Dashed: true},
	}
	for name, s := range styles {
		dc := newContext()
		args := fillArgs(dc, p, msaapath.Identity())
		args.Shape = msaapath.NewShape(p, s)
		if New().DrawPath(args) {
			t.Errorf("%s: DrawPath() = true", name)
		}
	}
}

func TestStencilOnlyPath(t *testing.T) {
	tests := []struct {
		name        string
		convexity   msaapath.Convexity
		wantStencil stencil.Settings
	}{
		{"convex", msaapath.ConvexityConvex, stencil.DirectToStencil},
		{"concave", msaapath.ConvexityConcave, stencil.WindStencilSeparateWithWrap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := triangle(msaapath.FillRuleNonZero)
			p.SetConvexity(tt.convexity)
			dc := newContext()
			ok := New().StencilOnlyPath(StencilPathArgs{
				Context: dc,
				View:    msaapath.Identity(),
				Shape:   msaapath.FillShape(p),
				AA:      AAMSAA,
			})
			if !ok || len(dc.draws) != 1 {
				t.Fatalf("StencilOnlyPath() = %t with %d draws, want one", ok, len(dc.draws))
			}
			d := dc.draws[0]
			if d.state.ColorWrites || d.state.Stencil != tt.wantStencil {
				t.Errorf("state = %+v", d.state)
			}
		})
	}
}

func TestStencilOnlyPathInversePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an inverse-filled shape")
		}
	}()
	New().StencilOnlyPath(StencilPathArgs{
		Context: newContext(),
		View:    msaapath.Identity(),
		Shape:   msaapath.FillShape(triangle(msaapath.FillRuleInverseEvenOdd)),
	})
}

func TestCanDrawPath(t *testing.T) {
	r := New()
	fill := msaapath.FillShape(triangle(msaapath.FillRuleEvenOdd))
	stroke := msaapath.NewShape(fill.Path(), msaapath.StrokeStyle(2))

	tests := []struct {
		name  string
		shape msaapath.Shape
		aa    AAType
		want  bool
	}{
		{"fill msaa", fill, AAMSAA, true},
		{"fill none", fill, AANone, true},
		{"fill coverage", fill, AACoverage, false},
		{"stroke", stroke, AAMSAA, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.CanDrawPath(tt.shape, tt.aa); got != tt.want {
				t.Errorf("CanDrawPath() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestStencilSupport(t *testing.T) {
	r := New()
	convex := triangle(msaapath.FillRuleNonZero)
	convex.SetConvexity(msaapath.ConvexityConvex)
	inverse := triangle(msaapath.FillRuleInverseNonZero)
	inverse.SetConvexity(msaapath.ConvexityConvex)

	if got := r.StencilSupport(msaapath.FillShape(convex)); got != NoRestriction {
		t.Errorf("convex: %v, want %v", got, NoRestriction)
	}
	if got := r.StencilSupport(msaapath.FillShape(inverse)); got != StencilOnly {
		t.Errorf("inverse: %v, want %v", got, StencilOnly)
	}
	if got := r.StencilSupport(msaapath.FillShape(triangle(msaapath.FillRuleNonZero))); got != StencilOnly {
		t.Errorf("concave: %v, want %v", got, StencilOnly)
	}
}

func TestDevBounds(t *testing.T) {
	p := triangle(msaapath.FillRuleEvenOdd)
	if got := DevBounds(p, 200, 100, msaapath.Translate(5, 5)); got != msaapath.RectLTRB(15, 15, 55, 45) {
		t.Errorf("DevBounds() = %v", got)
	}
	p.SetFillRule(msaapath.FillRuleInverseEvenOdd)
	if got := DevBounds(p, 200, 100, msaapath.Translate(5, 5)); got != msaapath.RectWH(200, 100) {
		t.Errorf("inverse DevBounds() = %v", got)
	}
}
