package op

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/advblend"
	"github.com/gogpu/msaapath/caps"
	"github.com/gogpu/msaapath/internal/geometry"
)

// maxRects keeps every rect vertex addressable by a uint16 index.
const maxRects = (MaxIndexedVertexCount * 3) / 4

var rectIndices = [6]uint16{0, 1, 2, 0, 2, 3}

type rectEntry struct {
	color msaapath.Color
	rect  msaapath.Rect
	view  msaapath.Matrix
}

// RectBatch fills rectangles without antialiasing. It draws the cover pass
// of a stencil-then-cover fill.
//
// Affine view matrices are applied per rect on the CPU, so batches with
// different affine views merge. A perspective view is uploaded instead,
// since mapping the corners on the CPU would lose the projective
// interpolation.
type RectBatch struct {
	base

	rects []rectEntry
	view  msaapath.Matrix
	local msaapath.Matrix
}

// NewRectBatch creates a batch filling rect in color. local maps the
// device position of each fragment back to local coordinates; nil means
// the identity.
func NewRectBatch(color msaapath.Color, view msaapath.Matrix, rect msaapath.Rect, local *msaapath.Matrix) *RectBatch {
	b := &RectBatch{
		rects: []rectEntry{{color: color, rect: rect, view: view}},
		view:  view,
		local: msaapath.Identity(),
	}
	if local != nil {
		b.local = *local
	}
	b.bounds = view.MapRect(rect)
	return b
}

// Name returns "NonAAFillRectBatch".
func (b *RectBatch) Name() string { return "NonAAFillRectBatch" }

// View returns the view matrix of the first rect.
func (b *RectBatch) View() msaapath.Matrix { return b.view }

// LocalMatrix returns the local matrix.
func (b *RectBatch) LocalMatrix() msaapath.Matrix { return b.local }

// Rects returns the rects in draw order.
func (b *RectBatch) Rects() []msaapath.Rect {
	out := make([]msaapath.Rect, len(b.rects))
	for i, e := range b.rects {
		out[i] = e.rect
	}
	return out
}

// Analysis reports a known color and solid coverage.
func (b *RectBatch) Analysis() advblend.Analysis { return solidAnalysis() }

// Finalize records the pipeline and applies its color optimizations.
func (b *RectBatch) Finalize(p Pipeline, opt Optimizations) {
	b.pipeline = p
	b.finalized = true
	if !opt.ReadsColor {
		b.rects[0].color = msaapath.ColorIllegal
	}
	opt.OverrideColorIfSet(&b.rects[0].color)
}

// TryMerge appends the rects of another RectBatch. Perspective batches
// merge only with an identical view; all batches need identical local
// matrices.
func (b *RectBatch) TryMerge(other Op, c caps.Caps) bool {
	that, ok := other.(*RectBatch)
	if !ok || that == b {
		return false
	}
	if !b.canMerge(&that.base, c) {
		return false
	}
	if (b.view.HasPerspective() || that.view.HasPerspective()) && !b.view.Equal(that.view) {
		return false
	}
	if !b.local.Equal(that.local) || len(b.rects)+len(that.rects) > maxRects {
		return false
	}
	b.rects = append(b.rects, that.rects...)
	b.bounds = b.bounds.Union(that.bounds)
	return true
}

// Prepare writes four vertices and six indices per rect.
func (b *RectBatch) Prepare(t Target) {
	b.prepared = true
	n := len(b.rects)
	verts, ok := t.MakeVertexSpace(geometry.LineVertexStride, 4*n)
	if !ok {
		slogger().Warn("op: could not allocate vertices", "count", 4*n)
		return
	}
	idx, ok := t.MakeIndexSpace(6 * n)
	if !ok {
		slogger().Warn("op: could not allocate indices", "count", 6*n)
		return
	}

	perspective := b.view.HasPerspective()
	for i, e := range b.rects {
		corners := e.rect.Corners()
		for j, p := range corners {
			if !perspective {
				p = e.view.TransformPoint(p)
			}
			off := (4*i + j) * geometry.LineVertexStride
			putRectVertex(verts.Data[off:], p, e.color)
		}
		for j, k := range rectIndices {
			idx.Data[6*i+j] = uint16(4*i) + k //nolint:gosec // n <= maxRects
		}
	}

	proc := Processor{Kind: KindRectFill, View: msaapath.Identity(), Local: b.local}
	if perspective {
		proc.View = b.view
	}
	t.Draw(b.pipeline, proc, Mesh{
		Primitive:    PrimitiveTriangles,
		VertexBuffer: verts.Buffer,
		FirstVertex:  verts.First,
		VertexCount:  4 * n,
		Indexed:      true,
		IndexBuffer:  idx.Buffer,
		FirstIndex:   idx.First,
		IndexCount:   6 * n,
	})
}

// putRectVertex writes one vertex in the line vertex layout.
func putRectVertex(buf []byte, p msaapath.Point, c msaapath.Color) {
	x, y := p.XY32()
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(y))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(c))
}

func (b *RectBatch) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "%s: rects=%d perspective=%t\n", b.Name(), len(b.rects), b.view.HasPerspective())
	for _, e := range b.rects {
		fmt.Fprintf(&s, "Color: 0x%08x Rect: %v\n", uint32(e.color), e.rect)
	}
	if b.finalized {
		fmt.Fprintf(&s, "Pipeline: %v\n", b.pipeline)
	}
	fmt.Fprintf(&s, "Bounds: %v", b.bounds)
	return s.String()
}
