// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"log/slog"

	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/internal/stroke"
	"github.com/gogpu/msaapath/op"
	"github.com/gogpu/msaapath/stencil"
)

// Renderer fills paths with stencil-then-cover.
//
// A Renderer holds no per-draw state and may be shared by several draw
// contexts used from one goroutine.
type Renderer struct {
	strokeTolerance float64
	log             *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger of the renderer and the op package. The
// default is the msaapath logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		r.log = l
	}
}

// WithStrokeTolerance sets the flattening tolerance, in device pixels, used
// when expanding strokes. Non-positive values keep the default.
func WithStrokeTolerance(tol float64) Option {
	return func(r *Renderer) {
		if tol > 0 {
			r.strokeTolerance = tol
		}
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		strokeTolerance: stroke.DefaultTolerance,
		log:             msaapath.Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = msaapath.Logger()
	}
	op.SetLogger(r.log)
	return r
}

// CanDrawPath reports whether the renderer handles shape. It only fills,
// and relies on multisampling for antialiasing. Strokes are accepted by
// DrawPath but not reported here, so callers that can style the shape
// themselves pass on a fill.
func (r *Renderer) CanDrawPath(shape msaapath.Shape, aa AAType) bool {
	return shape.Style().IsSimpleFill() && aa != AACoverage
}

// StencilSupport reports how shape can be drawn into the stencil.
func (r *Renderer) StencilSupport(shape msaapath.Shape) StencilSupport {
	if stencil.SinglePass(shape) {
		return NoRestriction
	}
	return StencilOnly
}

// DrawPath records the ops that draw args.Shape. A stroked shape is first
// expanded into a fill at the resolution of the view matrix. DrawPath
// returns false, and records nothing, when the shape cannot be drawn.
func (r *Renderer) DrawPath(args DrawPathArgs) bool {
	shape, ok := r.applyStyle(args.Shape, args.View)
	if !ok {
		return false
	}
	return r.drawShape(args.Context, args.Paint, args.AA, args.Stencil, args.HasClip, args.View, shape, false)
}

// StencilOnlyPath writes the coverage of args.Shape into the stencil
// without touching color. The shape must be a simple fill that is not
// inverse filled.
func (r *Renderer) StencilOnlyPath(args StencilPathArgs) bool {
	if !args.Shape.Style().IsSimpleFill() || args.Shape.InverseFilled() {
		panic("render: stencil-only draw of a styled or inverse-filled shape")
	}
	return r.drawShape(args.Context, Paint{Mode: msaapath.BlendModeSrcOver}, args.AA,
		stencil.Unused, args.HasClip, args.View, args.Shape, true)
}

// applyStyle turns a stroke into a fill. Dashes and hairlines are not
// supported.
func (r *Renderer) applyStyle(shape msaapath.Shape, view msaapath.Matrix) (msaapath.Shape, bool) {
	style := shape.Style()
	if style.IsSimpleFill() {
		return shape, true
	}
	if style.Dashed || !style.Applies() {
		r.log.Debug("render: unsupported style", "kind", style.Kind, "dashed", style.Dashed)
		return shape, false
	}

	scale := view.MaxScale()
	if scale <= 0 {
		scale = 1
	}
	e := stroke.NewExpander(style)
	e.SetTolerance(r.strokeTolerance / scale)
	outline := e.Expand(shape.Path())
	if shape.Path().IsInverseFill() {
		outline.SetFillRule(msaapath.FillRuleInverseNonZero)
	}
	return msaapath.FillShape(outline), true
}

// drawShape plans the passes of a simple fill and records one op per pass.
// All ops are built before any is recorded, so a failure leaves the
// context untouched.
func (r *Renderer) drawShape(dc DrawContext, paint Paint, aa AAType, user stencil.Settings,
	hasClip bool, view msaapath.Matrix, shape msaapath.Shape, stencilOnly bool) bool {
	path := shape.Path()
	plan := stencil.Sequence(shape, user, stencilOnly)
	devBounds := DevBounds(path, dc.Width(), dc.Height(), view)
	r.log.Debug("render: fill plan", "plan", &plan, "bounds", devBounds)

	type draw struct {
		state op.PipelineState
		op    op.Op
	}
	var draws [stencil.MaxPasses]draw
	passes := plan.Passes()
	for i, pass := range passes {
		state := op.PipelineState{
			Mode:        paint.Mode,
			Stencil:     pass.Settings,
			ColorWrites: pass.WritesColor,
			HasClip:     hasClip,
			MSAA:        aa == AAMSAA,
		}
		if pass.DrawsBounds {
			cover, ok := coverOp(paint.Color, view, path, devBounds, plan.Reverse)
			if !ok {
				r.log.Debug("render: view matrix not invertible for inverse fill")
				return false
			}
			draws[i] = draw{state, cover}
			continue
		}
		batch, ok := op.NewPathBatch(paint.Color, path, view, devBounds)
		if !ok {
			return false
		}
		draws[i] = draw{state, batch}
	}

	for _, d := range draws[:len(passes)] {
		dc.AddDrawOp(d.state, d.op)
	}
	return true
}

// coverOp builds the rectangle that resolves the stencil. Inverse fills
// cover the device bounds: mapped back through the view, or drawn in
// device space with the inverse as local matrix when the view has
// perspective.
func coverOp(color msaapath.Color, view msaapath.Matrix, path *msaapath.Path,
	devBounds msaapath.Rect, reverse bool) (*op.RectBatch, bool) {
	if !reverse {
		return op.NewRectBatch(color, view, path.Bounds(), nil), true
	}
	inv, ok := view.Invert()
	switch {
	case !ok:
		return nil, false
	case view.HasPerspective():
		return op.NewRectBatch(color, msaapath.Identity(), devBounds, &inv), true
	default:
		return op.NewRectBatch(color, view, inv.MapRect(devBounds), nil), true
	}
}

// DevBounds returns the device-space area a fill of path can touch: the
// whole width x height target for inverse fills, else the path bounds
// mapped through view.
func DevBounds(path *msaapath.Path, width, height int, view msaapath.Matrix) msaapath.Rect {
	if path.IsInverseFill() {
		return msaapath.RectWH(float64(width), float64(height))
	}
	return view.MapRect(path.Bounds())
}
