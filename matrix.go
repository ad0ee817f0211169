package msaapath

import "math"

// Matrix represents a 2D projective transformation in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//	| g  h  i |
//
// This represents the transformation:
//
//	w  = g*x + h*y + i
//	x' = (a*x + b*y + c) / w
//	y' = (d*x + e*y + f) / w
//
// Affine matrices have g = h = 0 and i = 1.
type Matrix struct {
	A, B, C float64
	D, E, F float64
	G, H, I float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
		G: 0, H: 0, I: 1,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	m := Identity()
	m.C, m.F = x, y
	return m
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	m := Identity()
	m.A, m.E = x, y
	return m
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	m := Identity()
	m.A, m.B = cos, -sin
	m.D, m.E = sin, cos
	return m
}

// Perspective creates a matrix whose bottom row is (px, py, 1).
func Perspective(px, py float64) Matrix {
	m := Identity()
	m.G, m.H = px, py
	return m
}

// Multiply multiplies two matrices (m * other). The result applies other
// first, then m.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.B*o.D + m.C*o.G,
		B: m.A*o.B + m.B*o.E + m.C*o.H,
		C: m.A*o.C + m.B*o.F + m.C*o.I,
		D: m.D*o.A + m.E*o.D + m.F*o.G,
		E: m.D*o.B + m.E*o.E + m.F*o.H,
		F: m.D*o.C + m.E*o.F + m.F*o.I,
		G: m.G*o.A + m.H*o.D + m.I*o.G,
		H: m.G*o.B + m.H*o.E + m.I*o.H,
		I: m.G*o.C + m.H*o.F + m.I*o.I,
	}
}

// TransformPoint applies the transformation to a point, including the
// perspective divide.
func (m Matrix) TransformPoint(p Point) Point {
	x := m.A*p.X + m.B*p.Y + m.C
	y := m.D*p.X + m.E*p.Y + m.F
	if !m.HasPerspective() {
		return Point{X: x, Y: y}
	}
	w := m.G*p.X + m.H*p.Y + m.I
	if w != 0 {
		w = 1 / w
	}
	return Point{X: x * w, Y: y * w}
}

// MapRect returns the bounds of r's four corners after transformation.
// Mapping through a perspective matrix is only an approximation of the
// transformed region.
func (m Matrix) MapRect(r Rect) Rect {
	c := r.Corners()
	for i := range c {
		c[i] = m.TransformPoint(c[i])
	}
	return boundsOf(c[:])
}

// HasPerspective reports whether the bottom row differs from (0, 0, 1).
func (m Matrix) HasPerspective() bool {
	return m.G != 0 || m.H != 0 || m.I != 1
}

// MaxScale returns the largest factor by which the matrix stretches a
// vector, or -1 if it has perspective.
func (m Matrix) MaxScale() float64 {
	if m.HasPerspective() {
		return -1
	}
	p := m.A*m.A + m.D*m.D
	q := m.B*m.B + m.E*m.E
	r := m.A*m.B + m.D*m.E
	half := (p - q) / 2
	return math.Sqrt((p+q)/2 + math.Sqrt(half*half+r*r))
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Equal reports whether m and o are bit-for-bit equal. Unlike ==, it
// distinguishes 0 from -0 and treats identical NaN payloads as equal.
func (m Matrix) Equal(o Matrix) bool {
	a, b := m.Values(), o.Values()
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			return false
		}
	}
	return true
}

// Values returns the nine coefficients in row-major order.
func (m Matrix) Values() [9]float64 {
	return [9]float64{m.A, m.B, m.C, m.D, m.E, m.F, m.G, m.H, m.I}
}

// Invert returns the inverse matrix and true, or the identity and false if
// the matrix is singular.
func (m Matrix) Invert() (Matrix, bool) {
	if !m.HasPerspective() {
		det := m.A*m.E - m.B*m.D
		if math.Abs(det) < 1e-12 || math.IsNaN(det) {
			return Identity(), false
		}
		inv := 1.0 / det
		return Matrix{
			A: m.E * inv,
			B: -m.B * inv,
			C: (m.B*m.F - m.C*m.E) * inv,
			D: -m.D * inv,
			E: m.A * inv,
			F: (m.C*m.D - m.A*m.F) * inv,
			G: 0, H: 0, I: 1,
		}, true
	}

	// Adjugate divided by the determinant.
	c00 := m.E*m.I - m.F*m.H
	c01 := m.F*m.G - m.D*m.I
	c02 := m.D*m.H - m.E*m.G
	det := m.A*c00 + m.B*c01 + m.C*c02
	if math.Abs(det) < 1e-12 || math.IsNaN(det) {
		return Identity(), false
	}
	inv := 1.0 / det
	return Matrix{
		A: c00 * inv,
		B: (m.C*m.H - m.B*m.I) * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: c01 * inv,
		E: (m.A*m.I - m.C*m.G) * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
		G: c02 * inv,
		H: (m.B*m.G - m.A*m.H) * inv,
		I: (m.A*m.E - m.B*m.D) * inv,
	}, true
}

// Uniform returns the matrix as three column vectors padded to vec4, the
// layout of a WGSL mat3x3<f32> uniform.
func (m Matrix) Uniform() [12]float32 {
	return [12]float32{
		float32(m.A), float32(m.D), float32(m.G), 0,
		float32(m.B), float32(m.E), float32(m.H), 0,
		float32(m.C), float32(m.F), float32(m.I), 0,
	}
}
