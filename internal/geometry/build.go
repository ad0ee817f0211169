package geometry

import (
	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/internal/flatten"
)

// WorstCase returns upper bounds on the vertices Build writes for p.
//
// Every contour contributes one line vertex per start point and per
// segment end (a curve contributes one per quad piece); quads contribute
// three quad vertices each. A conic is counted for its flattened pieces
// plus one more quad, so the bound is loose for conics but never short.
func WorstCase(p *msaapath.Path) (subpaths, maxLines, maxQuads int) {
	subpaths = 1
	first := true
	it := p.Iter(true)
	for seg, ok := it.Next(); ok; seg, ok = it.Next() {
		switch seg.Verb {
		case msaapath.VerbMove:
			maxLines++
			if !first {
				subpaths++
			}
		case msaapath.VerbLine:
			maxLines++
		case msaapath.VerbConic:
			c := flatten.Conic{P0: seg.Pts[0], P1: seg.Pts[1], P2: seg.Pts[2], W: seg.Weight}
			n := 1 << c.QuadPow2(flatten.Tolerance)
			maxLines += n
			maxQuads += 3 * n
			// The conic is also counted as one quad below.
			maxLines++
			maxQuads += 3
		case msaapath.VerbQuad:
			maxLines++
			maxQuads += 3
		case msaapath.VerbCubic:
			n := len(flatten.CubicToQuads(seg.Pts, flatten.Tolerance))
			maxLines += n / 3
			maxQuads += n
		}
		first = false
	}
	return subpaths, maxLines, maxQuads
}

// Build appends the geometry of p in color to lines and quads. Both
// streams must have room for at least WorstCase(p) more vertices; the
// streams panic otherwise. Points stay in path space.
//
// Each contour becomes a triangle fan around its first vertex. Indexed
// streams spell the fan out as triangles so that contours from several
// paths can share one draw; non-indexed streams rely on a single fan.
func Build(p *msaapath.Path, color msaapath.Color, lines *LineStream, quads *QuadStream) {
	indexed := lines.Indexed()
	start := lines.VertexCount()
	first := true

	it := p.Iter(true)
	for seg, ok := it.Next(); ok; seg, ok = it.Next() {
		switch seg.Verb {
		case msaapath.VerbMove:
			if !first {
				start = lines.VertexCount()
			}
			lines.appendVertex(seg.Pts[0], color)
		case msaapath.VerbLine:
			if indexed {
				if prev := lines.VertexCount() - 1; prev > start {
					lines.appendFanTriangle(start, prev)
				}
			}
			lines.appendVertex(seg.Pts[1], color)
		case msaapath.VerbQuad:
			addQuad(lines, quads, seg.Pts[0], seg.Pts[1], seg.Pts[2], color, indexed, start)
		case msaapath.VerbConic:
			pts := flatten.ConicToQuads(seg.Pts[0], seg.Pts[1], seg.Pts[2], seg.Weight, flatten.Tolerance)
			for i := 0; i+2 < len(pts); i += 2 {
				addQuad(lines, quads, pts[i], pts[i+1], pts[i+2], color, indexed, start)
			}
		case msaapath.VerbCubic:
			pts := flatten.CubicToQuads(seg.Pts, flatten.Tolerance)
			for i := 0; i+2 < len(pts); i += 3 {
				addQuad(lines, quads, pts[i], pts[i+1], pts[i+2], color, indexed, start)
			}
		case msaapath.VerbClose:
			// The closing line, if any, was already emitted.
		}
		first = false
	}
}

// addQuad adds the quad's end point to the contour polygon and the quad
// itself to the curve stream.
func addQuad(lines *LineStream, quads *QuadStream, p0, p1, p2 msaapath.Point,
	color msaapath.Color, indexed bool, start int) {
	if indexed {
		if prev := lines.VertexCount() - 1; prev > start {
			lines.appendFanTriangle(start, prev)
		}
	}
	lines.appendVertex(p2, color)
	quads.appendQuad(p0, p1, p2, color)
}
