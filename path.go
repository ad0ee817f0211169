package msaapath

import "math"

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new contour at a point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// ConicTo draws a rational quadratic Bezier curve. Weight 1 is a plain
// quadratic; weights below 1 give elliptical arcs, above 1 hyperbolic ones.
type ConicTo struct {
	Control Point
	Point   Point
	Weight  float64
}

func (ConicTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path represents a vector path together with its fill rule and a
// convexity hint. The renderer treats a path as immutable once it has been
// handed over for drawing.
type Path struct {
	elements  []PathElement
	start     Point // Starting point of current subpath
	current   Point // Current point
	fill      FillRule
	convexity Convexity
}

// NewPath creates a new empty path with the NonZero fill rule.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo starts a new contour at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	p.convexity = ConvexityUnknown
}

// LineTo draws a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.ensureMove()
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
	p.convexity = ConvexityUnknown
}

// QuadTo draws a quadratic Bezier curve.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.ensureMove()
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
	p.convexity = ConvexityUnknown
}

// ConicTo draws a conic section with the given weight.
func (p *Path) ConicTo(cx, cy, x, y, w float64) {
	p.ensureMove()
	pt := Pt(x, y)
	p.elements = append(p.elements, ConicTo{Control: Pt(cx, cy), Point: pt, Weight: w})
	p.current = pt
	p.convexity = ConvexityUnknown
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.ensureMove()
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
	p.convexity = ConvexityUnknown
}

// Close closes the current subpath.
func (p *Path) Close() {
	if len(p.elements) == 0 {
		return
	}
	if _, ok := p.elements[len(p.elements)-1].(Close); ok {
		return
	}
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// ensureMove injects a MoveTo at the current point when a segment is added
// to an empty path or right after Close.
func (p *Path) ensureMove() {
	if len(p.elements) == 0 {
		p.elements = append(p.elements, MoveTo{Point: p.current})
		p.start = p.current
		return
	}
	if _, ok := p.elements[len(p.elements)-1].(Close); ok {
		p.elements = append(p.elements, MoveTo{Point: p.start})
	}
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// FillRule returns the fill rule.
func (p *Path) FillRule() FillRule {
	return p.fill
}

// SetFillRule sets the fill rule.
func (p *Path) SetFillRule(f FillRule) {
	p.fill = f
}

// IsInverseFill reports whether the fill rule paints the outside of the path.
func (p *Path) IsInverseFill() bool {
	return p.fill.IsInverse()
}

// SetConvexity overrides the convexity hint.
func (p *Path) SetConvexity(c Convexity) {
	p.convexity = c
}

// Convexity returns the convexity hint, computing it from the control
// points when it is unknown. The result is cached.
func (p *Path) Convexity() Convexity {
	if p.convexity == ConvexityUnknown {
		p.convexity = computeConvexity(p)
	}
	return p.convexity
}

// IsConvex reports whether the path is known to be a single convex contour.
func (p *Path) IsConvex() bool {
	return p.Convexity() == ConvexityConvex
}

// Points returns every point of the path, control points included.
func (p *Path) Points() []Point {
	pts := make([]Point, 0, len(p.elements)*2)
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
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
	return pts
}

// Bounds returns the bounds of all points, control points included.
func (p *Path) Bounds() Rect {
	return boundsOf(p.Points())
}

// Transform returns a copy of the path with every point mapped through m.
// Conic weights are kept, which is exact for affine matrices.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			result.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			result.LineTo(pt.X, pt.Y)
		case QuadTo:
			ctrl := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			result.QuadTo(ctrl.X, ctrl.Y, pt.X, pt.Y)
		case ConicTo:
			ctrl := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			result.ConicTo(ctrl.X, ctrl.Y, pt.X, pt.Y, e.Weight)
		case CubicTo:
			ctrl1 := m.TransformPoint(e.Control1)
			ctrl2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			result.CubicTo(ctrl1.X, ctrl1.Y, ctrl2.X, ctrl2.Y, pt.X, pt.Y)
		case Close:
			result.Close()
		}
	}
	result.fill = p.fill
	return result
}

// Rectangle adds a closed rectangle contour.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Circle adds a circle built from four quarter conics.
func (p *Path) Circle(cx, cy, r float64) {
	p.Ellipse(cx, cy, r, r)
}

// Ellipse adds an axis-aligned ellipse built from four quarter conics.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	w := math.Sqrt2 / 2

	p.MoveTo(cx+rx, cy)
	p.ConicTo(cx+rx, cy+ry, cx, cy+ry, w)
	p.ConicTo(cx-rx, cy+ry, cx-rx, cy, w)
	p.ConicTo(cx-rx, cy-ry, cx, cy-ry, w)
	p.ConicTo(cx+rx, cy-ry, cx+rx, cy, w)
	p.Close()
}

// RoundedRectangle adds a rectangle with conic-rounded corners.
func (p *Path) RoundedRectangle(x, y, w, h, r float64) {
	maxR := math.Min(w, h) / 2
	if r > maxR {
		r = maxR
	}
	if r <= 0 {
		p.Rectangle(x, y, w, h)
		return
	}
	cw := math.Sqrt2 / 2

	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.ConicTo(x+w, y, x+w, y+r, cw)
	p.LineTo(x+w, y+h-r)
	p.ConicTo(x+w, y+h, x+w-r, y+h, cw)
	p.LineTo(x+r, y+h)
	p.ConicTo(x, y+h, x, y+h-r, cw)
	p.LineTo(x, y+r)
	p.ConicTo(x, y, x+r, y, cw)
	p.Close()
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := NewPath()
	result.elements = make([]PathElement, len(p.elements))
	copy(result.elements, p.elements)
	result.start = p.start
	result.current = p.current
	result.fill = p.fill
	result.convexity = p.convexity
	return result
}
