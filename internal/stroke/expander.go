package stroke

import (
	"math"

	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/internal/flatten"
)

// DefaultTolerance is the flattening tolerance in path units.
const DefaultTolerance = 0.25

type point = msaapath.Point

// Expander converts stroked paths to fill outlines.
type Expander struct {
	style msaapath.Style

	// tolerance bounds the distance between curves and their flattened
	// polylines.
	tolerance float64

	forward  *builder
	backward *builder
	output   *builder

	startPt   point
	startNorm point
	startTan  point
	lastPt    point
	lastTan   point
	lastNorm  point // normal at lastPt scaled by half the width, for the end cap

	// joinThresh skips joins whose angle change is below the tolerance.
	joinThresh float64
}

// NewExpander returns an expander for style. A zero MiterLimit means 4.
func NewExpander(style msaapath.Style) *Expander {
	if style.MiterLimit <= 0 {
		style.MiterLimit = 4
	}
	return &Expander{style: style, tolerance: DefaultTolerance}
}

// SetTolerance sets the flattening tolerance. Non-positive values are
// ignored.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Expand returns the outline of p stroked with the expander's style as a
// nonzero fill. Curves are flattened; conics go through their quads.
func (e *Expander) Expand(p *msaapath.Path) *msaapath.Path {
	e.reset()

	it := p.Iter(false)
	for seg, ok := it.Next(); ok; seg, ok = it.Next() {
		switch seg.Verb {
		case msaapath.VerbMove:
			e.finish()
			e.startPt = seg.Pts[0]
			e.lastPt = seg.Pts[0]
		case msaapath.VerbLine:
			e.doPolyline([]point{seg.Pts[0], seg.Pts[1]})
		case msaapath.VerbQuad:
			e.doPolyline(e.flattenQuad(seg.Pts[0], seg.Pts[1], seg.Pts[2]))
		case msaapath.VerbConic:
			quads := flatten.ConicToQuads(seg.Pts[0], seg.Pts[1], seg.Pts[2], seg.Weight, e.tolerance)
			for i := 0; i+2 < len(quads); i += 2 {
				e.doPolyline(e.flattenQuad(quads[i], quads[i+1], quads[i+2]))
			}
		case msaapath.VerbCubic:
			e.doPolyline(e.flattenCubic(seg.Pts[0], seg.Pts[1], seg.Pts[2], seg.Pts[3]))
		case msaapath.VerbClose:
			if e.lastPt != e.startPt {
				e.doPolyline([]point{e.lastPt, e.startPt})
			}
			e.finishClosed()
		}
	}
	e.finish()

	out := e.output.path()
	out.SetFillRule(msaapath.FillRuleNonZero)
	return out
}

func (e *Expander) reset() {
	e.forward = newBuilder()
	e.backward = newBuilder()
	e.output = newBuilder()
	e.startPt = point{}
	e.startNorm = point{}
	e.startTan = point{}
	e.lastPt = point{}
	e.lastTan = point{}
	e.lastNorm = point{}
	e.joinThresh = 2.0 * e.tolerance / e.style.Width
}

// doPolyline strokes the segments of pts, skipping degenerate ones.
func (e *Expander) doPolyline(pts []point) {
	for i := 1; i < len(pts); i++ {
		tangent := pts[i].Sub(pts[i-1])
		if tangent.LengthSquared() <= 1e-10 {
			continue
		}
		e.doJoin(tangent)
		e.lastTan = tangent
		e.doLine(tangent, pts[i])
	}
}

// doJoin joins the segment starting with tangent tan0 to the previous one.
func (e *Expander) doJoin(tan0 point) {
	norm := e.normal(tan0)
	p0 := e.lastPt

	if e.forward.isEmpty() {
		e.forward.moveTo(p0.Sub(norm))
		e.backward.moveTo(p0.Add(norm))
		e.startTan = tan0
		e.startNorm = norm
		return
	}

	ab, cd := e.lastTan, tan0
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	hypot := math.Hypot(cross, dot)

	// Nearly straight: connect without a join.
	if dot > 0 && math.Abs(cross) < hypot*e.joinThresh {
		e.forward.lineTo(p0.Sub(norm))
		e.backward.lineTo(p0.Add(norm))
		return
	}

	switch e.style.Join {
	case msaapath.LineJoinBevel:
		e.forward.lineTo(p0.Sub(norm))
		e.backward.lineTo(p0.Add(norm))
	case msaapath.LineJoinMiter:
		if 2*hypot < (hypot+dot)*e.style.MiterLimit*e.style.MiterLimit {
			e.miter(p0, norm, ab, cd, cross)
		}
		e.forward.lineTo(p0.Sub(norm))
		e.backward.lineTo(p0.Add(norm))
	case msaapath.LineJoinRound:
		lastNorm := e.normal(ab)
		angle := math.Atan2(cross, dot)
		if angle > 0 {
			e.backward.lineTo(p0.Add(norm))
			e.arc(e.forward, p0, lastNorm.Mul(-1), angle)
		} else {
			e.forward.lineTo(p0.Sub(norm))
			e.arc(e.backward, p0, lastNorm, angle)
		}
	}
}

// miter adds the miter point on the outer side of the corner at p0.
func (e *Expander) miter(p0, norm, ab, cd point, cross float64) {
	lastNorm := e.normal(ab)
	switch {
	case cross > 0:
		prev, next := p0.Sub(lastNorm), p0.Sub(norm)
		h := ab.Cross(next.Sub(prev)) / cross
		e.forward.lineTo(next.Sub(cd.Mul(h)))
		e.backward.lineTo(p0)
	case cross < 0:
		prev, next := p0.Add(lastNorm), p0.Add(norm)
		h := ab.Cross(next.Sub(prev)) / cross
		e.backward.lineTo(next.Sub(cd.Mul(h)))
		e.forward.lineTo(p0)
	}
}

// normal returns the left normal of tangent scaled to half the width.
func (e *Expander) normal(tangent point) point {
	scale := 0.5 * e.style.Width / math.Sqrt(tangent.LengthSquared())
	return point{X: -tangent.Y * scale, Y: tangent.X * scale}
}

func (e *Expander) doLine(tangent, p1 point) {
	norm := e.normal(tangent)
	e.forward.lineTo(p1.Sub(norm))
	e.backward.lineTo(p1.Add(norm))
	e.lastPt = p1
	e.lastNorm = norm
}

// finish closes an open contour with its caps: forward side, end cap,
// reversed backward side, start cap.
func (e *Expander) finish() {
	if e.forward.isEmpty() {
		return
	}
	e.output.appendFrom(e.forward)
	e.applyCap(e.lastPt, e.lastNorm.Mul(-1), false)
	e.appendReversed(e.backward)
	e.applyCap(e.startPt, e.startNorm, true)

	e.forward = newBuilder()
	e.backward = newBuilder()
}

// finishClosed emits a closed contour as two closed loops, the outer one
// forward and the inner one reversed, so nonzero fill leaves the interior
// of the stroked shape empty.
func (e *Expander) finishClosed() {
	if e.forward.isEmpty() {
		return
	}
	e.doJoin(e.startTan)

	e.output.appendFrom(e.forward)
	e.output.close()

	if n := len(e.backward.elems); n > 0 {
		e.output.moveTo(endPoint(e.backward.elems[n-1]))
	}
	e.appendReversed(e.backward)
	e.output.close()

	e.forward = newBuilder()
	e.backward = newBuilder()
}

func (e *Expander) applyCap(center, norm point, closePath bool) {
	switch e.style.Cap {
	case msaapath.LineCapButt:
		if !closePath {
			e.output.lineTo(center.Sub(norm))
		}
	case msaapath.LineCapRound:
		e.arc(e.output, center, norm, math.Pi)
	case msaapath.LineCapSquare:
		// Corners of the unit square (1,1), (-1,1) in the frame of norm.
		frame := func(x, y float64) point {
			return point{X: norm.X*x - norm.Y*y + center.X, Y: norm.Y*x + norm.X*y + center.Y}
		}
		e.output.lineTo(frame(1, 1))
		e.output.lineTo(frame(-1, 1))
		if !closePath {
			e.output.lineTo(frame(-1, 0))
		}
	}
	if closePath {
		e.output.close()
	}
}

// arc appends a circular arc around center starting at center+norm and
// sweeping angle radians, as cubics of at most 90 degrees each.
func (e *Expander) arc(out *builder, center, norm point, angle float64) {
	n := int(math.Ceil(math.Abs(angle) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := angle / float64(n)
	a := math.Atan2(norm.Y, norm.X)
	r := math.Sqrt(norm.LengthSquared())
	for i := 0; i < n; i++ {
		arcSegment(out, center, r, a, a+step)
		a += step
	}
}

// arcSegment appends one cubic approximating the arc from a0 to a1.
func arcSegment(out *builder, center point, r, a0, a1 float64) {
	da := a1 - a0
	t := math.Tan(da / 2)
	alpha := math.Sin(da) * (math.Sqrt(4+3*t*t) - 1) / 3

	sin0, cos0 := math.Sincos(a0)
	sin1, cos1 := math.Sincos(a1)
	p1 := point{X: center.X + r*cos0, Y: center.Y + r*sin0}
	p2 := point{X: center.X + r*cos1, Y: center.Y + r*sin1}
	c1 := point{X: p1.X - alpha*r*sin0, Y: p1.Y + alpha*r*cos0}
	c2 := point{X: p2.X + alpha*r*sin1, Y: p2.Y - alpha*r*cos1}
	out.cubicTo(c1, c2, p2)
}

// appendReversed appends the segments of b backwards, starting from its
// current point.
func (e *Expander) appendReversed(b *builder) {
	for i := len(b.elems) - 1; i >= 1; i-- {
		end := endPoint(b.elems[i-1])
		switch el := b.elems[i].(type) {
		case msaapath.LineTo:
			e.output.lineTo(end)
		case msaapath.CubicTo:
			e.output.cubicTo(el.Control2, el.Control1, end)
		}
	}
}

func (e *Expander) flattenQuad(p0, p1, p2 point) []point {
	pts := []point{p0}
	return e.flattenQuadRec(p0, p1, p2, pts, 0)
}

func (e *Expander) flattenQuadRec(p0, p1, p2 point, pts []point, depth int) []point {
	if depth >= maxDepth || distanceToLine(p1, p0, p2) < e.tolerance {
		return append(pts, p2)
	}
	q0 := p0.Midpoint(p1)
	q1 := p1.Midpoint(p2)
	q2 := q0.Midpoint(q1)
	pts = e.flattenQuadRec(p0, q0, q2, pts, depth+1)
	return e.flattenQuadRec(q2, q1, p2, pts, depth+1)
}

func (e *Expander) flattenCubic(p0, p1, p2, p3 point) []point {
	pts := []point{p0}
	return e.flattenCubicRec(p0, p1, p2, p3, pts, 0)
}

func (e *Expander) flattenCubicRec(p0, p1, p2, p3 point, pts []point, depth int) []point {
	d := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= maxDepth || d < e.tolerance {
		return append(pts, p3)
	}
	q0 := p0.Midpoint(p1)
	q1 := p1.Midpoint(p2)
	q2 := p2.Midpoint(p3)
	r0 := q0.Midpoint(q1)
	r1 := q1.Midpoint(q2)
	s := r0.Midpoint(r1)
	pts = e.flattenCubicRec(p0, q0, r0, s, pts, depth+1)
	return e.flattenCubicRec(s, r1, q2, p3, pts, depth+1)
}

// maxDepth caps curve subdivision.
const maxDepth = 16

// distanceToLine returns the distance from p to the segment a-b.
func distanceToLine(p, a, b point) float64 {
	ab := b.Sub(a)
	l2 := ab.LengthSquared()
	if l2 < 1e-20 {
		return math.Sqrt(p.DistanceSquared(a))
	}
	t := p.Sub(a).Dot(ab) / l2
	switch {
	case t < 0:
		return math.Sqrt(p.DistanceSquared(a))
	case t > 1:
		return math.Sqrt(p.DistanceSquared(b))
	}
	return math.Sqrt(p.DistanceSquared(a.Add(ab.Mul(t))))
}

func endPoint(el msaapath.PathElement) point {
	switch e := el.(type) {
	case msaapath.MoveTo:
		return e.Point
	case msaapath.LineTo:
		return e.Point
	case msaapath.CubicTo:
		return e.Point
	default:
		return point{}
	}
}

// builder records outline elements before they become a Path.
type builder struct {
	elems []msaapath.PathElement
}

func newBuilder() *builder {
	return &builder{elems: make([]msaapath.PathElement, 0, 64)}
}

func (b *builder) isEmpty() bool { return len(b.elems) == 0 }

func (b *builder) moveTo(p point) { b.elems = append(b.elems, msaapath.MoveTo{Point: p}) }

func (b *builder) lineTo(p point) { b.elems = append(b.elems, msaapath.LineTo{Point: p}) }

func (b *builder) cubicTo(c1, c2, p point) {
	b.elems = append(b.elems, msaapath.CubicTo{Control1: c1, Control2: c2, Point: p})
}

func (b *builder) close() { b.elems = append(b.elems, msaapath.Close{}) }

func (b *builder) appendFrom(o *builder) { b.elems = append(b.elems, o.elems...) }

// path replays the recorded elements into a new Path.
func (b *builder) path() *msaapath.Path {
	p := msaapath.NewPath()
	for _, el := range b.elems {
		switch e := el.(type) {
		case msaapath.MoveTo:
			p.MoveTo(e.Point.X, e.Point.Y)
		case msaapath.LineTo:
			p.LineTo(e.Point.X, e.Point.Y)
		case msaapath.CubicTo:
			p.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case msaapath.Close:
			p.Close()
		}
	}
	return p
}
