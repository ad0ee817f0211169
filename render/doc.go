// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws filled paths with stencil-then-cover and
// multisampling.
//
// A fill is issued as one or two passes (see package stencil). Convex,
// non-inverse shapes fill in a single pass with the caller's stencil
// settings. Everything else first writes winding or parity into the
// stencil with the tessellated path and color writes disabled, then covers
// the path bounds (or the whole target for inverse fills) with a rectangle
// that resolves the stencil into color and clears it.
//
// The renderer only records draw ops. A DrawContext finalizes each op's
// pipeline against the device capabilities, merges it with the previous op
// where possible and later prepares and executes the result; see
// backend/native for the GPU implementation.
//
// # Usage
//
//	r := render.New()
//	shape := msaapath.FillShape(path)
//	if r.CanDrawPath(shape, render.AAMSAA) {
//	    ok := r.DrawPath(render.DrawPathArgs{
//	        Context: target,
//	        Paint:   render.Paint{Color: msaapath.ColorBlack},
//	        Stencil: stencil.Unused,
//	        View:    msaapath.Identity(),
//	        Shape:   shape,
//	        AA:      render.AAMSAA,
//	    })
//	    ...
//	}
//
// Strokes are expanded into fills before drawing. Hairlines and dashed
// strokes are not handled and make DrawPath return false.
package render
