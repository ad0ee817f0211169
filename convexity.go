package msaapath

// convexityEpsilon is the tolerance for cross product comparisons.
// Values below this threshold are treated as zero (collinear edges).
const convexityEpsilon = 1e-10

// computeConvexity classifies a path from its control polygon.
//
// A path is convex when it has exactly one contour, every non-zero cross
// product of consecutive edges has the same sign, and the edge direction
// changes sign at most twice along each axis. The last condition rejects
// star polygons whose turns all agree but which wind more than once.
func computeConvexity(p *Path) Convexity {
	var pts []Point
	contours := 0
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			contours++
			if contours > 1 {
				return ConvexityConcave
			}
			pts = append(pts, e.Point)
		case LineTo:
			pts = append(pts, e.Point)
		case QuadTo:
			pts = append(pts, e.Control, e.Point)
		case ConicTo:
			pts = append(pts, e.Control, e.Point)
		case CubicTo:
			pts = append(pts, e.Control1, e.Control2, e.Point)
		}
	}
	pts = dedupe(pts)
	if len(pts) < 3 {
		// Degenerate contours cover no area and are trivially convex.
		return ConvexityConvex
	}
	if polygonIsConvex(pts) {
		return ConvexityConvex
	}
	return ConvexityConcave
}

// dedupe drops consecutive duplicates and a closing point equal to the first.
func dedupe(pts []Point) []Point {
	out := pts[:0:0]
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

// polygonIsConvex walks all consecutive edge pairs of the closed polygon.
func polygonIsConvex(points []Point) bool {
	n := len(points)
	var positive, negative int
	var xFlips, yFlips int
	var lastDX, lastDY float64

	for i := 0; i < n; i++ {
		p0 := points[i]
		p1 := points[(i+1)%n]
		p2 := points[(i+2)%n]

		e1 := p1.Sub(p0)
		e2 := p2.Sub(p1)

		cross := e1.Cross(e2)
		if cross > convexityEpsilon {
			positive++
		} else if cross < -convexityEpsilon {
			negative++
		}
		if positive > 0 && negative > 0 {
			return false
		}

		if e1.X != 0 {
			if lastDX != 0 && (e1.X > 0) != (lastDX > 0) {
				xFlips++
			}
			lastDX = e1.X
		}
		if e1.Y != 0 {
			if lastDY != 0 && (e1.Y > 0) != (lastDY > 0) {
				yFlips++
			}
			lastDY = e1.Y
		}
	}

	// A convex loop reverses direction exactly twice per axis; the linear
	// walk above sees at most those two.
	if xFlips > 2 || yFlips > 2 {
		return false
	}
	return positive > 0 || negative > 0
}
