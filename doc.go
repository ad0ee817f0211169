// Package msaapath fills vector paths on the GPU with stencil-then-cover and
// multisample antialiasing, and composites them with advanced blend modes.
//
// # Overview
//
// The root package holds the shared vocabulary: [Path], [Matrix], [Rect],
// [Color], [FillRule], [BlendMode] and [BlendEquation]. Rendering lives in
// sub-packages:
//
//   - render: path-renderer entry points (CanDrawPath, DrawPath, StencilOnlyPath)
//   - stencil: stencil settings and the per-draw pass plan
//   - op: draw batches, worst-case sizing and batch merging
//   - advblend: hardware vs. shader-fallback selection for advanced blends
//   - caps: immutable backend capabilities
//   - backend/native: a frame target over gogpu/wgpu HAL
//   - text: shaped text converted to fillable paths
//
// # Quick Start
//
//	p := msaapath.NewPath()
//	p.MoveTo(10, 10)
//	p.LineTo(100, 10)
//	p.LineTo(55, 90)
//	p.Close()
//
//	r := render.New()
//	ok := r.DrawPath(render.DrawArgs{
//	    Context: target,
//	    Paint:   render.Paint{Color: msaapath.RGBA(1, 0, 0, 1), Blend: msaapath.BlendModeSrcOver},
//	    AA:      render.AAMSAA,
//	    Stencil: stencil.Unused,
//	    View:    msaapath.Identity(),
//	    Shape:   msaapath.FillShape(p),
//	})
//
// # Coordinate System
//
// Origin at top-left, X grows right, Y grows down. Device bounds are
// (0, 0, width, height) of the render target.
package msaapath

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"
)
