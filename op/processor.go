package op

import (
	"fmt"

	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/internal/geometry"
)

// Kind identifies the geometry processor that shades a mesh.
type Kind uint8

const (
	// KindDefaultColor draws line vertices with their per-vertex color.
	KindDefaultColor Kind = iota
	// KindQuadCoverage draws quad vertices and discards fragments outside
	// the curve (uv.x*uv.x >= uv.y).
	KindQuadCoverage
	// KindRectFill draws cover rectangles with an optional local matrix.
	KindRectFill

	kindCount
)

var kindNames = [...]string{"DefaultColor", "QuadCoverage", "RectFill"}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Key flags.
const (
	// FlagPerspective is set when the view matrix has perspective.
	FlagPerspective uint8 = 1 << iota
	// FlagIdentity is set when the view matrix is the identity; no view
	// uniform is uploaded then.
	FlagIdentity
	// FlagLocalMatrix is set when a rect carries a non-identity local matrix.
	FlagLocalMatrix
)

// Key identifies the program a processor compiles to. It is comparable and
// used directly as a cache key.
type Key struct {
	Kind  Kind
	Flags uint8
}

func (k Key) String() string {
	return fmt.Sprintf("%v/%#x", k.Kind, k.Flags)
}

// Processor is the geometry processor of one mesh: what the vertices
// contain and how they are transformed.
type Processor struct {
	Kind Kind
	// View transforms vertex positions to device space.
	View msaapath.Matrix
	// Local maps device positions back to local coordinates (rect fills).
	Local msaapath.Matrix
}

// Key returns the program key.
func (p Processor) Key() Key {
	var flags uint8
	if p.View.HasPerspective() {
		flags |= FlagPerspective
	}
	if !p.NeedsViewUniform() {
		flags |= FlagIdentity
	}
	if p.Kind == KindRectFill && !p.Local.IsIdentity() {
		flags |= FlagLocalMatrix
	}
	return Key{Kind: p.Kind, Flags: flags}
}

// VertexStride returns the size of one vertex in bytes.
func (p Processor) VertexStride() int {
	if p.Kind == KindQuadCoverage {
		return geometry.QuadVertexStride
	}
	return geometry.LineVertexStride
}

// NeedsViewUniform reports whether the view matrix has to be uploaded.
// Programs keyed with FlagIdentity never read it.
func (p Processor) NeedsViewUniform() bool {
	return !p.View.IsIdentity()
}

func (p Processor) String() string {
	return fmt.Sprintf("%v(key=%v)", p.Kind, p.Key())
}

// Primitive is how a mesh's vertices form triangles.
type Primitive uint8

const (
	// PrimitiveTriangles draws independent triangles.
	PrimitiveTriangles Primitive = iota
	// PrimitiveTriangleFan draws a fan around the first vertex.
	PrimitiveTriangleFan
)

func (p Primitive) String() string {
	if p == PrimitiveTriangleFan {
		return "TriangleFan"
	}
	return "Triangles"
}

// Mesh is one draw over reserved target space.
type Mesh struct {
	Primitive Primitive

	VertexBuffer int
	FirstVertex  int
	VertexCount  int

	Indexed     bool
	IndexBuffer int
	FirstIndex  int
	IndexCount  int
}

func (m Mesh) String() string {
	if m.Indexed {
		return fmt.Sprintf("%v vb=%d[%d+%d] ib=%d[%d+%d]", m.Primitive,
			m.VertexBuffer, m.FirstVertex, m.VertexCount, m.IndexBuffer, m.FirstIndex, m.IndexCount)
	}
	return fmt.Sprintf("%v vb=%d[%d+%d]", m.Primitive, m.VertexBuffer, m.FirstVertex, m.VertexCount)
}
