package text

import (
	"testing"

	msaapath "github.com/gogpu/msaapath"
)

func countElements(p *msaapath.Path) (moves, closes, curves int) {
	for _, e := range p.Elements() {
		switch e.(type) {
		case msaapath.MoveTo:
			moves++
		case msaapath.Close:
			closes++
		case msaapath.QuadTo, msaapath.CubicTo:
			curves++
		}
	}
	return
}

func TestGlyphPathContours(t *testing.T) {
	face := newTestFace(t, 48)
	tests := []struct {
		r         rune
		contours  int
		hasCurves bool
	}{
		{'I', 1, false},
		{'o', 2, true},
		{'B', 3, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			p, err := face.GlyphPath(face.GlyphIndex(tt.r))
			if err != nil {
				t.Fatalf("GlyphPath() error = %v", err)
			}
			moves, closes, curves := countElements(p)
			if moves != tt.contours || closes != tt.contours {
				t.Errorf("moves = %d closes = %d, want %d contours", moves, closes, tt.contours)
			}
			if tt.hasCurves && curves == 0 {
				t.Error("no curve segments")
			}
			b := p.Bounds()
			if b.Bottom > 1 || b.Top < -48 {
				t.Errorf("Bounds() = %v, want above the baseline", b)
			}
		})
	}
}

func TestGlyphPathSpace(t *testing.T) {
	face := newTestFace(t, 24)
	p, err := face.GlyphPath(face.GlyphIndex(' '))
	if err != nil {
		t.Fatalf("GlyphPath(space) error = %v", err)
	}
	if !p.IsEmpty() {
		t.Errorf("space outline has %d elements", len(p.Elements()))
	}
}

func TestFacePath(t *testing.T) {
	face := newTestFace(t, 32)
	p, err := face.Path("go go", 10, 50, DirectionLTR)
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if p.FillRule() != msaapath.FillRuleNonZero {
		t.Errorf("FillRule() = %v", p.FillRule())
	}
	moves, closes, _ := countElements(p)
	if moves != closes || moves < 8 {
		t.Errorf("moves = %d closes = %d", moves, closes)
	}
	b := p.Bounds()
	width := face.Width("go go", DirectionLTR)
	if b.Left < 10 || b.Right > 10+width+1 {
		t.Errorf("Bounds() = %v, want within [10, %v]", b, 10+width)
	}
	if b.Top >= 50 || b.Bottom <= 50 {
		t.Errorf("Bounds() = %v, want 'g' to straddle the baseline at 50", b)
	}
}

func TestFaceGlyphCache(t *testing.T) {
	face := newTestFace(t, 24)
	if _, err := face.Path("ooo", 0, 30, DirectionLTR); err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	st := face.CacheStats()
	if st.Misses != 1 || st.Hits != 2 || st.Len != 1 {
		t.Errorf("CacheStats() = %+v, want one outline loaded once", st)
	}

	larger, err := face.WithSize(48)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := larger.GlyphPath(larger.GlyphIndex('o')); err != nil {
		t.Fatal(err)
	}
	if got := face.CacheStats().Len; got != 2 {
		t.Errorf("cache entries = %d, want one per size", got)
	}
}
