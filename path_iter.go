package msaapath

// Verb identifies the kind of a Segment produced by PathIter.
type Verb uint8

const (
	// VerbMove starts a contour. Pts[0] is the start point.
	VerbMove Verb = iota
	// VerbLine is a line from Pts[0] to Pts[1].
	VerbLine
	// VerbQuad is a quadratic Bezier over Pts[0..2].
	VerbQuad
	// VerbConic is a conic over Pts[0..2] with Weight.
	VerbConic
	// VerbCubic is a cubic Bezier over Pts[0..3].
	VerbCubic
	// VerbClose closes the current contour.
	VerbClose
)

// String returns the verb name.
func (v Verb) String() string {
	switch v {
	case VerbMove:
		return "Move"
	case VerbLine:
		return "Line"
	case VerbQuad:
		return "Quad"
	case VerbConic:
		return "Conic"
	case VerbCubic:
		return "Cubic"
	case VerbClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// Segment is one step of a path walk. Every curve segment carries its start
// point in Pts[0].
type Segment struct {
	Verb   Verb
	Pts    [4]Point
	Weight float64
}

// PathIter walks a path segment by segment.
//
// The walk skips degenerate segments (all points equal to the current
// point), collapses consecutive MoveTo elements and drops trailing ones.
// An explicit Close whose contour does not end at its start point yields a
// closing line before the Close. With forceClose, open contours are closed
// the same way before the next contour starts and at the end of the path.
type PathIter struct {
	elems      []PathElement
	i          int
	forceClose bool

	moveTo       Point
	lastPt       Point
	needClose    bool // current contour has segments and is not closed yet
	pendingClose bool // a closing line was just emitted
}

// Iter returns an iterator over p.
func (p *Path) Iter(forceClose bool) *PathIter {
	return &PathIter{elems: p.elements, forceClose: forceClose}
}

// Next returns the next segment, or false when the walk is complete.
func (it *PathIter) Next() (Segment, bool) { //nolint:gocyclo // one case per element kind
	if it.pendingClose {
		it.pendingClose = false
		it.needClose = false
		it.lastPt = it.moveTo
		return Segment{Verb: VerbClose}, true
	}

	for it.i < len(it.elems) {
		switch e := it.elems[it.i].(type) {
		case MoveTo:
			if it.forceClose && it.needClose {
				return it.autoClose(), true
			}
			it.i++
			if !it.segmentAhead() {
				continue
			}
			it.moveTo, it.lastPt = e.Point, e.Point
			it.needClose = false
			return Segment{Verb: VerbMove, Pts: [4]Point{e.Point}}, true

		case LineTo:
			it.i++
			if e.Point == it.lastPt {
				continue
			}
			seg := Segment{Verb: VerbLine, Pts: [4]Point{it.lastPt, e.Point}}
			it.advance(e.Point)
			return seg, true

		case QuadTo:
			it.i++
			if e.Control == it.lastPt && e.Point == it.lastPt {
				continue
			}
			seg := Segment{Verb: VerbQuad, Pts: [4]Point{it.lastPt, e.Control, e.Point}}
			it.advance(e.Point)
			return seg, true

		case ConicTo:
			it.i++
			if e.Control == it.lastPt && e.Point == it.lastPt {
				continue
			}
			seg := Segment{Verb: VerbConic, Pts: [4]Point{it.lastPt, e.Control, e.Point}, Weight: e.Weight}
			it.advance(e.Point)
			return seg, true

		case CubicTo:
			it.i++
			if e.Control1 == it.lastPt && e.Control2 == it.lastPt && e.Point == it.lastPt {
				continue
			}
			seg := Segment{Verb: VerbCubic, Pts: [4]Point{it.lastPt, e.Control1, e.Control2, e.Point}}
			it.advance(e.Point)
			return seg, true

		case Close:
			it.i++
			if !it.needClose {
				continue
			}
			return it.autoClose(), true

		default:
			it.i++
		}
	}

	if it.forceClose && it.needClose {
		return it.autoClose(), true
	}
	return Segment{}, false
}

func (it *PathIter) advance(end Point) {
	it.lastPt = end
	it.needClose = true
}

// autoClose returns the closing line back to the contour start, or the
// Close itself when the contour already ends there.
func (it *PathIter) autoClose() Segment {
	if it.lastPt != it.moveTo && it.lastPt.IsFinite() && it.moveTo.IsFinite() {
		seg := Segment{Verb: VerbLine, Pts: [4]Point{it.lastPt, it.moveTo}}
		it.pendingClose = true
		return seg
	}
	it.needClose = false
	it.lastPt = it.moveTo
	return Segment{Verb: VerbClose}
}

// segmentAhead reports whether a drawing element follows before the next
// MoveTo or the end of the path.
func (it *PathIter) segmentAhead() bool {
	for _, elem := range it.elems[it.i:] {
		switch elem.(type) {
		case MoveTo:
			return false
		case LineTo, QuadTo, ConicTo, CubicTo:
			return true
		}
	}
	return false
}
