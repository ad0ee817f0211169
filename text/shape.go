package text

import (
	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/unicode/bidi"
)

// Direction is the base direction of a paragraph.
type Direction uint8

const (
	// DirectionLTR lays out left to right unless the text says otherwise.
	DirectionLTR Direction = iota
	// DirectionRTL lays out right to left.
	DirectionRTL
)

func (d Direction) String() string {
	if d == DirectionRTL {
		return "RTL"
	}
	return "LTR"
}

// Glyph is a positioned glyph. X and Y are relative to the start of the
// baseline with y pointing down.
type Glyph struct {
	ID      sfnt.GlyphIndex
	X, Y    float64
	Advance float64
	// Cluster is the index of the first rune of the glyph's cluster.
	Cluster int
	RTL     bool
}

// run is a directional run in rune indices [start, end).
type run struct {
	start, end int
	rtl        bool
}

// Shape splits s into directional runs, shapes each run, and returns the
// glyphs in visual order.
func (f *Face) Shape(s string, base Direction) []Glyph {
	if s == "" {
		return nil
	}
	runes := []rune(s)
	runs := visualRuns(s, len(runes), base)

	face := gotext.NewFace(f.shaping)
	var hb shaping.HarfbuzzShaper
	var glyphs []Glyph
	pen := 0.0
	for _, r := range runs {
		dir := di.DirectionLTR
		if r.rtl {
			dir = di.DirectionRTL
		}
		out := hb.Shape(shaping.Input{
			Text:      runes,
			RunStart:  r.start,
			RunEnd:    r.end,
			Direction: dir,
			Face:      face,
			Size:      f.ppem(),
			Script:    language.LookupScript(runes[r.start]),
			Language:  language.NewLanguage("en"),
		})
		for _, g := range out.Glyphs {
			adv := fromFixed(g.Advance)
			glyphs = append(glyphs, Glyph{
				ID:      sfnt.GlyphIndex(g.GlyphID), //nolint:gosec // sfnt glyph indices are 16-bit
				X:       pen + fromFixed(g.XOffset),
				Y:       -fromFixed(g.YOffset),
				Advance: adv,
				Cluster: g.TextIndex(),
				RTL:     r.rtl,
			})
			pen += adv
		}
	}
	return glyphs
}

// Width returns the total advance of s.
func (f *Face) Width(s string, base Direction) float64 {
	w := 0.0
	for _, g := range f.Shape(s, base) {
		w += g.Advance
	}
	return w
}

// visualRuns resolves the bidi runs of s and orders them for display.
// Runs come back from the bidi package in logical order; with a
// right-to-left base the whole sequence is reversed.
func visualRuns(s string, n int, base Direction) []run {
	def := bidi.LeftToRight
	if base == DirectionRTL {
		def = bidi.RightToLeft
	}
	p := bidi.Paragraph{}
	if _, err := p.SetString(s, bidi.DefaultDirection(def)); err != nil {
		return []run{{start: 0, end: n, rtl: base == DirectionRTL}}
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return []run{{start: 0, end: n, rtl: base == DirectionRTL}}
	}

	runs := make([]run, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		r := ordering.Run(i)
		start, last := r.Pos()
		if last < start {
			continue
		}
		runs = append(runs, run{start: start, end: last + 1, rtl: r.Direction() == bidi.RightToLeft})
	}
	if base == DirectionRTL {
		for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
			runs[i], runs[j] = runs[j], runs[i]
		}
	}
	return runs
}
