package op

import (
	"fmt"
	"strings"

	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/advblend"
	"github.com/gogpu/msaapath/caps"
	"github.com/gogpu/msaapath/internal/geometry"
)

type pathEntry struct {
	color msaapath.Color
	path  *msaapath.Path
}

// PathBatch draws the tessellated geometry of one or more paths sharing a
// view matrix: a line mesh of contour fans and a quad mesh of curve
// triangles.
//
// A batch of one single-contour path draws its fan directly. Batches with
// several contours draw indexed triangles, which bounds their size by
// MaxIndexedVertexCount.
type PathBatch struct {
	base

	paths []pathEntry
	view  msaapath.Matrix

	maxLineVertices int
	maxQuadVertices int
	indexed         bool
}

// NewPathBatch creates a batch filling path with color. Points stay in
// path space and are transformed by view on the GPU. It returns false when
// the path has several contours and too many vertices to index.
func NewPathBatch(color msaapath.Color, path *msaapath.Path, view msaapath.Matrix, devBounds msaapath.Rect) (*PathBatch, bool) {
	subpaths, maxLines, maxQuads := geometry.WorstCase(path)
	indexed := subpaths > 1
	if indexed && (maxLines > MaxIndexedVertexCount || maxQuads > MaxIndexedVertexCount) {
		slogger().Debug("op: path batch rejected",
			"subpaths", subpaths, "lines", maxLines, "quads", maxQuads)
		return nil, false
	}
	return &PathBatch{
		base:            base{bounds: devBounds},
		paths:           []pathEntry{{color: color, path: path}},
		view:            view,
		maxLineVertices: maxLines,
		maxQuadVertices: maxQuads,
		indexed:         indexed,
	}, true
}

// Name returns "MSAAPathBatch".
func (b *PathBatch) Name() string { return "MSAAPathBatch" }

// View returns the view matrix.
func (b *PathBatch) View() msaapath.Matrix { return b.view }

// Indexed reports whether the batch draws indexed triangles.
func (b *PathBatch) Indexed() bool { return b.indexed }

// MaxVertices returns the reserved line and quad vertex counts.
func (b *PathBatch) MaxVertices() (lines, quads int) {
	return b.maxLineVertices, b.maxQuadVertices
}

// PathCount returns the number of paths in the batch.
func (b *PathBatch) PathCount() int { return len(b.paths) }

// Color returns the color of path i.
func (b *PathBatch) Color(i int) msaapath.Color { return b.paths[i].color }

// Analysis reports a known color and solid coverage: MSAA resolves
// antialiasing, so fragments are either in or out.
func (b *PathBatch) Analysis() advblend.Analysis { return solidAnalysis() }

// Finalize records the pipeline. A pipeline that does not read color gets
// the illegal color, so a stray read is visible.
func (b *PathBatch) Finalize(p Pipeline, opt Optimizations) {
	b.pipeline = p
	b.finalized = true
	if !opt.ReadsColor {
		b.paths[0].color = msaapath.ColorIllegal
	}
	opt.OverrideColorIfSet(&b.paths[0].color)
}

// TryMerge appends the paths of another PathBatch with an equal pipeline
// and bit-identical view matrix. The merged batch is always indexed.
func (b *PathBatch) TryMerge(other Op, c caps.Caps) bool {
	that, ok := other.(*PathBatch)
	if !ok || that == b {
		return false
	}
	if !b.canMerge(&that.base, c) {
		return false
	}
	if !b.view.Equal(that.view) {
		return false
	}
	if b.maxLineVertices+that.maxLineVertices > MaxIndexedVertexCount ||
		b.maxQuadVertices+that.maxQuadVertices > MaxIndexedVertexCount {
		return false
	}

	b.paths = append(b.paths, that.paths...)
	b.bounds = b.bounds.Union(that.bounds)
	b.indexed = true
	b.maxLineVertices += that.maxLineVertices
	b.maxQuadVertices += that.maxQuadVertices

	slogger().Debug("op: batch merged",
		"paths", len(b.paths), "lines", b.maxLineVertices, "quads", b.maxQuadVertices)
	return true
}

// Prepare writes every path into target space and submits the line mesh
// and, when any curve was written, the quad mesh.
func (b *PathBatch) Prepare(t Target) {
	b.prepared = true
	if b.maxLineVertices == 0 {
		return
	}

	primitive := PrimitiveTriangleFan
	if b.indexed {
		primitive = PrimitiveTriangles
	}

	lineVerts, ok := t.MakeVertexSpace(geometry.LineVertexStride, b.maxLineVertices)
	if !ok {
		slogger().Warn("op: could not allocate vertices", "count", b.maxLineVertices)
		return
	}
	var lineIdx IndexSpace
	if b.indexed {
		lineIdx, ok = t.MakeIndexSpace(3 * b.maxLineVertices)
		if !ok {
			slogger().Warn("op: could not allocate indices", "count", 3*b.maxLineVertices)
			return
		}
	}

	lines := geometry.NewLineStream(lineVerts.Data, lineIdx.Data)
	quads := geometry.NewQuadStream(b.maxQuadVertices, b.indexed)
	for _, e := range b.paths {
		geometry.Build(e.path, e.color, lines, quads)
	}

	if n := lines.VertexCount(); n > 0 {
		mesh := Mesh{
			Primitive:    primitive,
			VertexBuffer: lineVerts.Buffer,
			FirstVertex:  lineVerts.First,
			VertexCount:  n,
		}
		if b.indexed {
			mesh.Indexed = true
			mesh.IndexBuffer = lineIdx.Buffer
			mesh.FirstIndex = lineIdx.First
			mesh.IndexCount = lines.IndexCount()
		}
		t.Draw(b.pipeline, Processor{Kind: KindDefaultColor, View: b.view}, mesh)
	}

	if n := quads.VertexCount(); n > 0 {
		quadVerts, ok := t.MakeVertexSpace(geometry.QuadVertexStride, n)
		if !ok {
			slogger().Warn("op: could not allocate vertices", "count", n)
			return
		}
		copy(quadVerts.Data, quads.VertexData())
		mesh := Mesh{
			Primitive:    PrimitiveTriangles,
			VertexBuffer: quadVerts.Buffer,
			FirstVertex:  quadVerts.First,
			VertexCount:  n,
		}
		if b.indexed {
			quadIdx, ok := t.MakeIndexSpace(quads.IndexCount())
			if !ok {
				slogger().Warn("op: could not allocate indices", "count", quads.IndexCount())
				return
			}
			copy(quadIdx.Data, quads.IndexData())
			mesh.Indexed = true
			mesh.IndexBuffer = quadIdx.Buffer
			mesh.FirstIndex = quadIdx.First
			mesh.IndexCount = quads.IndexCount()
		}
		t.Draw(b.pipeline, Processor{Kind: KindQuadCoverage, View: b.view}, mesh)
	}
}

func (b *PathBatch) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "%s: indexed=%t lines=%d quads=%d\n", b.Name(), b.indexed, b.maxLineVertices, b.maxQuadVertices)
	for _, e := range b.paths {
		fmt.Fprintf(&s, "Color: 0x%08x\n", uint32(e.color))
	}
	if b.finalized {
		fmt.Fprintf(&s, "Pipeline: %v\n", b.pipeline)
	}
	fmt.Fprintf(&s, "Bounds: %v", b.bounds)
	return s.String()
}
