package msaapath

import "math"

// Rect is an axis-aligned rectangle. A rect with Left >= Right or
// Top >= Bottom is empty.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectWH returns the rect (0, 0, w, h).
func RectWH(w, h float64) Rect {
	return Rect{Right: w, Bottom: h}
}

// RectLTRB returns a rect from its edges.
func RectLTRB(l, t, r, b float64) Rect {
	return Rect{Left: l, Top: t, Right: r, Bottom: b}
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// IsEmpty reports whether the rect encloses no area.
func (r Rect) IsEmpty() bool {
	return !(r.Left < r.Right && r.Top < r.Bottom)
}

// Union returns the smallest rect containing both r and o.
// Empty operands are ignored.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

// Intersects reports whether r and o overlap with non-zero area.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right && r.Top < o.Bottom && o.Top < r.Bottom
}

// Corners returns the four corners in clockwise order starting at top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.Left, Y: r.Top},
		{X: r.Right, Y: r.Top},
		{X: r.Right, Y: r.Bottom},
		{X: r.Left, Y: r.Bottom},
	}
}

// boundsOf returns the bounding rect of pts. The zero Rect is returned for
// an empty slice.
func boundsOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Left: pts[0].X, Top: pts[0].Y, Right: pts[0].X, Bottom: pts[0].Y}
	for _, p := range pts[1:] {
		r.Left = math.Min(r.Left, p.X)
		r.Top = math.Min(r.Top, p.Y)
		r.Right = math.Max(r.Right, p.X)
		r.Bottom = math.Max(r.Bottom, p.Y)
	}
	return r
}
