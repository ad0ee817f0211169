package msaapath

// StyleKind is how a shape's geometry is painted.
type StyleKind uint8

const (
	// StyleFill paints the interior according to the fill rule.
	StyleFill StyleKind = iota
	// StyleStroke paints an outline of Width around the path.
	StyleStroke
	// StyleHairline paints a one-pixel outline.
	StyleHairline
)

// LineCap is the shape of open stroke ends.
type LineCap uint8

const (
	// LineCapButt ends the stroke exactly at the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound adds a half circle of radius Width/2.
	LineCapRound
	// LineCapSquare extends the stroke by Width/2.
	LineCapSquare
)

// LineJoin is the shape of stroke corners.
type LineJoin uint8

const (
	// LineJoinMiter extends the outer edges to a point, up to MiterLimit.
	LineJoinMiter LineJoin = iota
	// LineJoinRound rounds the outer corner.
	LineJoinRound
	// LineJoinBevel cuts the outer corner straight.
	LineJoinBevel
)

// Style describes how a shape is painted. Dashed marks a path effect that
// has to be applied before the geometry can be filled.
type Style struct {
	Kind       StyleKind
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dashed     bool
}

// StrokeStyle returns a stroke of width with butt caps and miter joins.
func StrokeStyle(width float64) Style {
	return Style{Kind: StyleStroke, Width: width, MiterLimit: 4}
}

// Applies reports whether the style has to be turned into a fill before
// drawing: strokes with a positive width and path effects. Hairlines do
// not apply.
func (s Style) Applies() bool {
	return s.Dashed || (s.Kind == StyleStroke && s.Width > 0)
}

// IsSimpleFill reports whether the style is a plain fill with no effect.
func (s Style) IsSimpleFill() bool {
	return s.Kind == StyleFill && !s.Dashed
}

// Shape pairs a path with a paint style.
type Shape struct {
	path  *Path
	style Style
}

// NewShape returns a shape for p painted with style.
func NewShape(p *Path, style Style) Shape {
	return Shape{path: p, style: style}
}

// FillShape returns a simple fill of p.
func FillShape(p *Path) Shape {
	return Shape{path: p, style: Style{Kind: StyleFill}}
}

// Path returns the shape's path.
func (s Shape) Path() *Path { return s.path }

// Style returns the shape's style.
func (s Shape) Style() Style { return s.style }

// InverseFilled reports whether the shape paints the outside of its path.
func (s Shape) InverseFilled() bool {
	return s.style.IsSimpleFill() && s.path.IsInverseFill()
}

// KnownToBeConvex reports whether the path is a single convex contour.
func (s Shape) KnownToBeConvex() bool {
	return s.path.IsConvex()
}

// Bounds returns the path's control-point bounds.
func (s Shape) Bounds() Rect {
	return s.path.Bounds()
}
