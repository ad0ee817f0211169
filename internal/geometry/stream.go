// Package geometry turns paths into the two vertex streams drawn by the
// MSAA path batch: a line stream of fan triangles over each contour's
// polygon, and a quad stream of curve triangles shaded with an implicit
// inside test.
package geometry

import (
	"encoding/binary"
	"math"

	msaapath "github.com/gogpu/msaapath"
)

// Vertex layouts.
const (
	// LineVertexStride is position (vec2<f32>) + color (unorm8x4) = 12 bytes.
	LineVertexStride = 12
	// QuadVertexStride is position (vec2<f32>) + uv (vec2<f32>) + color (unorm8x4) = 20 bytes.
	QuadVertexStride = 20
)

// Implicit-curve texture coordinates of a quad's three control points.
var quadUV = [3][2]float32{{0, 0}, {0.5, 0}, {1, 1}}

// LineStream writes line vertices and fan indices into caller-provided
// memory. Writing past either region panics.
type LineStream struct {
	vertices []byte
	indices  []uint16
	nv, ni   int
}

// NewLineStream wraps vertex memory of len(vertices)/LineVertexStride
// vertices. A nil indices slice makes the stream non-indexed.
func NewLineStream(vertices []byte, indices []uint16) *LineStream {
	return &LineStream{vertices: vertices, indices: indices}
}

// Indexed reports whether the stream writes indices.
func (s *LineStream) Indexed() bool { return s.indices != nil }

// VertexCount returns the number of vertices written.
func (s *LineStream) VertexCount() int { return s.nv }

// IndexCount returns the number of indices written.
func (s *LineStream) IndexCount() int { return s.ni }

func (s *LineStream) appendVertex(p msaapath.Point, c msaapath.Color) {
	off := s.nv * LineVertexStride
	if off+LineVertexStride > len(s.vertices) {
		panic("geometry: line vertex stream overflow")
	}
	writeLineVertex(s.vertices[off:], p, c)
	s.nv++
}

// appendFanTriangle appends the triangle (center, edge, edge+1).
func (s *LineStream) appendFanTriangle(center, edge int) {
	if s.ni+3 > len(s.indices) {
		panic("geometry: line index stream overflow")
	}
	s.indices[s.ni] = uint16(center)     //nolint:gosec // indexed batches stay below 65535/3 vertices
	s.indices[s.ni+1] = uint16(edge)     //nolint:gosec // see above
	s.indices[s.ni+2] = uint16(edge + 1) //nolint:gosec // see above
	s.ni += 3
}

// QuadStream stages quad vertices and indices in memory it owns. The
// batch copies the written prefix into target space once all paths are
// built, since the final count is only known then.
type QuadStream struct {
	vertices []byte
	indices  []uint16
	nv, ni   int
}

// NewQuadStream allocates room for maxVertices quad vertices and, when
// indexed, 3*maxVertices indices.
func NewQuadStream(maxVertices int, indexed bool) *QuadStream {
	s := &QuadStream{vertices: make([]byte, maxVertices*QuadVertexStride)}
	if indexed {
		s.indices = make([]uint16, 3*maxVertices)
	}
	return s
}

// Indexed reports whether the stream writes indices.
func (s *QuadStream) Indexed() bool { return s.indices != nil }

// VertexCount returns the number of vertices written.
func (s *QuadStream) VertexCount() int { return s.nv }

// IndexCount returns the number of indices written.
func (s *QuadStream) IndexCount() int { return s.ni }

// VertexData returns the written vertex bytes.
func (s *QuadStream) VertexData() []byte { return s.vertices[:s.nv*QuadVertexStride] }

// IndexData returns the written indices.
func (s *QuadStream) IndexData() []uint16 { return s.indices[:s.ni] }

// appendQuad writes the three control points with their implicit uv and,
// when indexed, three sequential indices.
func (s *QuadStream) appendQuad(p0, p1, p2 msaapath.Point, c msaapath.Color) {
	off := s.nv * QuadVertexStride
	if off+3*QuadVertexStride > len(s.vertices) {
		panic("geometry: quad vertex stream overflow")
	}
	for i, p := range [3]msaapath.Point{p0, p1, p2} {
		writeQuadVertex(s.vertices[off+i*QuadVertexStride:], p, quadUV[i], c)
	}
	if s.indices != nil {
		if s.ni+3 > len(s.indices) {
			panic("geometry: quad index stream overflow")
		}
		for i := 0; i < 3; i++ {
			s.indices[s.ni+i] = uint16(s.nv + i) //nolint:gosec // indexed batches stay below 65535/3 vertices
		}
		s.ni += 3
	}
	s.nv += 3
}

// writeLineVertex writes one line vertex.
// Layout: position (vec2<f32>) + color (unorm8x4) = 12 bytes.
func writeLineVertex(buf []byte, p msaapath.Point, c msaapath.Color) {
	x, y := p.XY32()
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(y))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(c))
}

// writeQuadVertex writes one quad vertex.
// Layout: position (vec2<f32>) + uv (vec2<f32>) + color (unorm8x4) = 20 bytes.
func writeQuadVertex(buf []byte, p msaapath.Point, uv [2]float32, c msaapath.Color) {
	x, y := p.XY32()
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(uv[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(uv[1]))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(c))
}
