package flatten

import (
	"math"

	msaapath "github.com/gogpu/msaapath"
)

// Conic is a rational quadratic Bézier with weight W on the control point.
type Conic struct {
	P0, P1, P2 msaapath.Point
	W          float64
}

// QuadPow2 returns k such that 2^k quads approximate the conic within tol.
// The error of a single quad is estimated analytically and drops by a factor
// of four with each halving. Non-finite conics report 0.
func (c Conic) QuadPow2(tol float64) int {
	if !c.isFinite() {
		return 0
	}
	a := c.W - 1
	k := a / (4 * (2 + a))
	d := c.P0.Sub(c.P1.Mul(2)).Add(c.P2).Mul(k)
	err := math.Sqrt(d.LengthSquared())

	pow2 := 0
	for ; pow2 < MaxConicPow2; pow2++ {
		if err <= tol {
			break
		}
		err *= 0.25
	}
	return pow2
}

// Chop splits the conic at its parametric midpoint.
func (c Conic) Chop() (Conic, Conic) {
	scale := 1 / (1 + c.W)
	w := math.Sqrt(0.5 + 0.5*c.W)
	wp1 := c.P1.Mul(c.W)
	m := c.P0.Add(wp1.Mul(2)).Add(c.P2).Mul(scale * 0.5)

	return Conic{P0: c.P0, P1: c.P0.Add(wp1).Mul(scale), P2: m, W: w},
		Conic{P0: m, P1: wp1.Add(c.P2).Mul(scale), P2: c.P2, W: w}
}

func (c Conic) isFinite() bool {
	return c.P0.IsFinite() && c.P1.IsFinite() && c.P2.IsFinite() &&
		!math.IsNaN(c.W) && !math.IsInf(c.W, 0)
}

// ConicToQuads approximates the conic with 2^k quads and returns their
// 1+2*2^k points; consecutive quads share an endpoint.
func ConicToQuads(p0, p1, p2 msaapath.Point, w, tol float64) []msaapath.Point {
	c := Conic{P0: p0, P1: p1, P2: p2, W: w}
	pow2 := c.QuadPow2(tol)
	pts := make([]msaapath.Point, 1, 1+2<<pow2)
	pts[0] = p0
	pts = c.appendQuads(pts, pow2)

	for _, p := range pts {
		if !p.IsFinite() {
			return []msaapath.Point{p0, p1, p2}
		}
	}
	return pts
}

func (c Conic) appendQuads(pts []msaapath.Point, level int) []msaapath.Point {
	if level == 0 {
		return append(pts, c.P1, c.P2)
	}
	a, b := c.Chop()
	pts = a.appendQuads(pts, level-1)
	return b.appendQuads(pts, level-1)
}
