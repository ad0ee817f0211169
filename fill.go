package msaapath

// FillRule decides which regions enclosed by a path's contours are inside.
type FillRule uint8

const (
	// FillRuleNonZero fills regions with a non-zero winding number.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd fills regions crossed an odd number of times.
	FillRuleEvenOdd
	// FillRuleInverseNonZero fills everything NonZero leaves empty.
	FillRuleInverseNonZero
	// FillRuleInverseEvenOdd fills everything EvenOdd leaves empty.
	FillRuleInverseEvenOdd
)

// IsInverse reports whether the rule paints the outside of the path.
func (f FillRule) IsInverse() bool {
	return f == FillRuleInverseNonZero || f == FillRuleInverseEvenOdd
}

// IsEvenOdd reports whether the rule uses parity, inverse or not.
func (f FillRule) IsEvenOdd() bool {
	return f == FillRuleEvenOdd || f == FillRuleInverseEvenOdd
}

// String returns the rule name.
func (f FillRule) String() string {
	switch f {
	case FillRuleNonZero:
		return "NonZero"
	case FillRuleEvenOdd:
		return "EvenOdd"
	case FillRuleInverseNonZero:
		return "InverseNonZero"
	case FillRuleInverseEvenOdd:
		return "InverseEvenOdd"
	default:
		return "Unknown"
	}
}

// Convexity is a hint about the shape of a path.
type Convexity uint8

const (
	// ConvexityUnknown means the convexity has not been computed.
	ConvexityUnknown Convexity = iota
	// ConvexityConvex is a single convex contour.
	ConvexityConvex
	// ConvexityConcave is anything else.
	ConvexityConcave
)
