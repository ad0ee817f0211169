// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/op"
	"github.com/gogpu/msaapath/stencil"
)

// AAType is the antialiasing a draw asks for.
type AAType uint8

const (
	// AANone rasterizes with a single sample.
	AANone AAType = iota
	// AAMSAA relies on the target's multisampling.
	AAMSAA
	// AACoverage needs analytic coverage, which this renderer cannot
	// produce.
	AACoverage
)

// String returns the AA type name.
func (a AAType) String() string {
	switch a {
	case AANone:
		return "none"
	case AAMSAA:
		return "msaa"
	case AACoverage:
		return "coverage"
	default:
		return fmt.Sprintf("AAType(%d)", uint8(a))
	}
}

// StencilSupport describes how a renderer can draw a shape into the
// stencil buffer for clipping.
type StencilSupport uint8

const (
	// NoSupport means the shape cannot be stenciled.
	NoSupport StencilSupport = iota
	// StencilOnly means the shape can be written to the stencil, but not
	// with arbitrary user stencil settings.
	StencilOnly
	// NoRestriction means any stencil settings work in one pass.
	NoRestriction
)

// String returns the support level name.
func (s StencilSupport) String() string {
	switch s {
	case NoSupport:
		return "none"
	case StencilOnly:
		return "stencil-only"
	case NoRestriction:
		return "no-restriction"
	default:
		return fmt.Sprintf("StencilSupport(%d)", uint8(s))
	}
}

// Paint is the color and blend mode of a draw.
type Paint struct {
	Color msaapath.Color
	Mode  msaapath.BlendMode
}

// DrawContext receives the ops a draw produces.
//
// AddDrawOp takes ownership of o. Implementations finalize its pipeline
// from state and may merge it into a previously added op.
type DrawContext interface {
	Width() int
	Height() int
	AddDrawOp(state op.PipelineState, o op.Op)
}

// DrawPathArgs are the inputs of Renderer.DrawPath.
type DrawPathArgs struct {
	Context DrawContext
	Paint   Paint
	// Stencil is applied by single-pass fills. Multi-pass fills own the
	// stencil buffer and ignore it.
	Stencil stencil.Settings
	HasClip bool
	View    msaapath.Matrix
	Shape   msaapath.Shape
	AA      AAType
}

// StencilPathArgs are the inputs of Renderer.StencilOnlyPath.
type StencilPathArgs struct {
	Context DrawContext
	HasClip bool
	View    msaapath.Matrix
	Shape   msaapath.Shape
	AA      AAType
}
