// Package flatten approximates conics and cubics with quadratic Béziers.
//
// The quads are rendered with an implicit inside test on the GPU, so the
// approximation only needs to stay within Tolerance device pixels of the
// true curve.
package flatten

// Tolerance is the default approximation error in device pixels.
const Tolerance = 0.5

// MaxConicPow2 caps conic subdivision at 2^5 quads.
const MaxConicPow2 = 5

// maxCubicSubdivs caps the cubic recursion depth.
const maxCubicSubdivs = 10

// nearlyZero is the squared length below which a tangent is degenerate.
const nearlyZero = 1.0 / 4096
