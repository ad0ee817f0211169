// Package stroke expands stroked paths into filled outlines.
//
// Expansion builds two offset polylines per contour, one on each side of
// the centerline at half the stroke width:
//   - Forward: offset to the right of the direction of travel
//   - Backward: offset to the left
//
// An open contour becomes a single closed outline: the forward side, the
// end cap, the reversed backward side and the start cap. A closed contour
// becomes two loops of opposite winding, so the result always fills with
// the nonzero rule.
//
// Curves are flattened before offsetting. Quads and cubics subdivide until
// their control points lie within the tolerance of the chord; conics go
// through their quad approximation first.
//
// Joins follow the style: miter (bounded by the miter limit, falling back
// to bevel), round (cubic arcs of at most 90 degrees) and bevel.
package stroke
