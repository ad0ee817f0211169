package text

import (
	"errors"
	"fmt"

	msaapath "github.com/gogpu/msaapath"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// AppendGlyph appends the outline of gid, placed with its origin at
// (x, y), to dst. Every contour is closed. Glyphs without contours, such as
// a space, append nothing.
func (f *Face) AppendGlyph(dst *msaapath.Path, gid sfnt.GlyphIndex, x, y float64) error {
	segs, err := f.segments(gid)
	if err != nil {
		if errors.Is(err, sfnt.ErrColoredGlyph) {
			return fmt.Errorf("%w: %d", ErrColoredGlyph, gid)
		}
		return fmt.Errorf("text: load glyph %d: %w", gid, err)
	}

	pt := func(p fixed.Point26_6) (float64, float64) {
		return x + fromFixed(p.X), y + fromFixed(p.Y)
	}
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				dst.Close()
			}
			dst.MoveTo(pt(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			px, py := pt(s.Args[0])
			dst.LineTo(px, py)
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(s.Args[0])
			px, py := pt(s.Args[1])
			dst.QuadTo(cx, cy, px, py)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(s.Args[0])
			c2x, c2y := pt(s.Args[1])
			px, py := pt(s.Args[2])
			dst.CubicTo(c1x, c1y, c2x, c2y, px, py)
		}
	}
	if open {
		dst.Close()
	}
	return nil
}

// Path shapes s and returns every glyph outline as one NonZero path with
// the baseline starting at (x, y). Colored glyphs are skipped.
func (f *Face) Path(s string, x, y float64, base Direction) (*msaapath.Path, error) {
	p := msaapath.NewPath()
	p.SetFillRule(msaapath.FillRuleNonZero)
	for _, g := range f.Shape(s, base) {
		err := f.AppendGlyph(p, g.ID, x+g.X, y+g.Y)
		if errors.Is(err, ErrColoredGlyph) {
			logger().Debug("text: skipping colored glyph", "glyph", g.ID, "cluster", g.Cluster)
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// GlyphPath returns the outline of a single glyph at the origin.
func (f *Face) GlyphPath(gid sfnt.GlyphIndex) (*msaapath.Path, error) {
	p := msaapath.NewPath()
	if err := f.AppendGlyph(p, gid, 0, 0); err != nil {
		return nil, err
	}
	return p, nil
}
