package flatten

import (
	"math"
	"sort"

	msaapath "github.com/gogpu/msaapath"
)

// CubicToQuads approximates a cubic with quads and returns three points per
// quad (endpoints are repeated, not shared). The cubic is first split at its
// inflections so each piece bends one way, then each piece is subdivided
// until a single quad fits within tol. At least one quad is always emitted.
func CubicToQuads(p [4]msaapath.Point, tol float64) []msaapath.Point {
	tolSq := tol * tol
	var quads []msaapath.Point
	for _, piece := range chopAtInflections(p) {
		quads = appendCubicQuads(quads, piece, tolSq, 0)
	}
	return quads
}

func appendCubicQuads(quads []msaapath.Point, p [4]msaapath.Point, tolSq float64, sublevel int) []msaapath.Point {
	ab := p[1].Sub(p[0])
	dc := p[2].Sub(p[3])

	if ab.LengthSquared() < nearlyZero {
		if dc.LengthSquared() < nearlyZero {
			return append(quads, p[0], p[0], p[3])
		}
		ab = p[2].Sub(p[0])
	}
	if dc.LengthSquared() < nearlyZero {
		dc = p[1].Sub(p[3])
	}

	c0 := p[0].Add(ab.Mul(1.5))
	c1 := p[3].Add(dc.Mul(1.5))

	if sublevel > maxCubicSubdivs || c0.DistanceSquared(c1) < tolSq {
		return append(quads, p[0], c0.Midpoint(c1), p[3])
	}

	a, b := chopCubic(p, 0.5)
	quads = appendCubicQuads(quads, a, tolSq, sublevel+1)
	return appendCubicQuads(quads, b, tolSq, sublevel+1)
}

// chopCubic splits the cubic at t with de Casteljau.
func chopCubic(p [4]msaapath.Point, t float64) (left, right [4]msaapath.Point) {
	p01 := p[0].Lerp(p[1], t)
	p12 := p[1].Lerp(p[2], t)
	p23 := p[2].Lerp(p[3], t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	mid := p012.Lerp(p123, t)
	return [4]msaapath.Point{p[0], p01, p012, mid}, [4]msaapath.Point{mid, p123, p23, p[3]}
}

// chopAtInflections splits the cubic at up to two inflection points.
func chopAtInflections(p [4]msaapath.Point) [][4]msaapath.Point {
	ts := Inflections(p)
	pieces := make([][4]msaapath.Point, 0, len(ts)+1)
	rest := p
	prev := 0.0
	for _, t := range ts {
		// Rescale t into the remaining piece.
		local := (t - prev) / (1 - prev)
		var head [4]msaapath.Point
		head, rest = chopCubic(rest, local)
		pieces = append(pieces, head)
		prev = t
	}
	return append(pieces, rest)
}

// Inflections returns the parameters in (0, 1) where the cubic's curvature
// changes sign, in increasing order.
func Inflections(p [4]msaapath.Point) []float64 {
	a := p[1].Sub(p[0])
	b := p[2].Sub(p[1].Mul(2)).Add(p[0])
	c := p[3].Add(p[1].Sub(p[2]).Mul(3)).Sub(p[0])

	return unitQuadRoots(b.Cross(c), a.Cross(c), a.Cross(b))
}

// unitQuadRoots solves A*t^2 + B*t + C = 0 for roots strictly inside (0, 1).
func unitQuadRoots(a, b, c float64) []float64 {
	var roots []float64
	add := func(num, den float64) {
		if den == 0 {
			return
		}
		t := num / den
		if t > 0 && t < 1 && !math.IsNaN(t) {
			roots = append(roots, t)
		}
	}

	if a == 0 {
		add(-c, b)
		return roots
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	disc = math.Sqrt(disc)
	// Numerically stable form: q = -(b + sign(b)*sqrt(disc))/2.
	var q float64
	if b < 0 {
		q = -(b - disc) / 2
	} else {
		q = -(b + disc) / 2
	}
	add(q, a)
	add(c, q)

	sort.Float64s(roots)
	if len(roots) == 2 && roots[0] == roots[1] {
		roots = roots[:1]
	}
	return roots
}
