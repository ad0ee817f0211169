// Package op records draw operations for the MSAA path renderer.
//
// An op is created for one draw, finalized with its pipeline when it is
// added to a draw context, may absorb later compatible ops, and is finally
// prepared: it reserves vertex and index space from a Target, writes its
// geometry and submits meshes.
package op

import (
	"fmt"

	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/advblend"
	"github.com/gogpu/msaapath/caps"
)

// MaxIndexedVertexCount bounds the vertices of an indexed op so every
// index fits in uint16 with room for a triangle per vertex.
const MaxIndexedVertexCount = 65535 / 3

// VertexSpace is a run of vertices reserved from a Target.
type VertexSpace struct {
	Buffer int
	First  int
	// Data has room for exactly the requested vertices.
	Data []byte
}

// IndexSpace is a run of uint16 indices reserved from a Target.
type IndexSpace struct {
	Buffer int
	First  int
	Data   []uint16
}

// Target provides vertex and index space and receives meshes.
type Target interface {
	// MakeVertexSpace reserves count vertices of stride bytes. It returns
	// false when the space cannot be allocated.
	MakeVertexSpace(stride, count int) (VertexSpace, bool)
	// MakeIndexSpace reserves count indices.
	MakeIndexSpace(count int) (IndexSpace, bool)
	// Draw submits mesh, shaded by proc, with pipeline.
	Draw(pipeline Pipeline, proc Processor, mesh Mesh)
}

// Op is a recorded draw.
type Op interface {
	fmt.Stringer

	// Name returns the op type name.
	Name() string
	// Bounds returns the device-space bounds.
	Bounds() msaapath.Rect
	// Analysis describes the op's color and coverage for blend selection.
	Analysis() advblend.Analysis
	// Finalize records the pipeline and applies its optimizations.
	Finalize(p Pipeline, opt Optimizations)
	// Pipeline returns the finalized pipeline.
	Pipeline() Pipeline
	// TryMerge absorbs other when both draw as one. It returns false,
	// leaving both unchanged, when they cannot.
	TryMerge(other Op, c caps.Caps) bool
	// Prepare writes the geometry and submits meshes to t.
	Prepare(t Target)
}

// base holds what every op tracks.
type base struct {
	bounds    msaapath.Rect
	pipeline  Pipeline
	finalized bool
	prepared  bool
}

func (b *base) Bounds() msaapath.Rect { return b.bounds }

func (b *base) Pipeline() Pipeline { return b.pipeline }

// canMerge checks the state both ops share.
func (b *base) canMerge(o *base, c caps.Caps) bool {
	if b.prepared || o.prepared || !b.finalized || !o.finalized {
		return false
	}
	return CanCombine(b.pipeline, b.bounds, o.pipeline, o.bounds, c)
}

// solidAnalysis is the analysis of an op drawing a known color with full
// coverage and no color stages.
func solidAnalysis() advblend.Analysis {
	return advblend.Analysis{
		AllColorStagesMultiplyInput: true,
		CoverageIsSolidWhite:        true,
	}
}
