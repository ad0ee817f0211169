package text

import (
	"math"
	"testing"
)

func TestShapeLTR(t *testing.T) {
	face := newTestFace(t, 20)
	glyphs := face.Shape("Hi", DirectionLTR)
	if len(glyphs) != 2 {
		t.Fatalf("Shape() = %d glyphs, want 2", len(glyphs))
	}
	if glyphs[0].ID != face.GlyphIndex('H') || glyphs[1].ID != face.GlyphIndex('i') {
		t.Errorf("glyph IDs = %d %d", glyphs[0].ID, glyphs[1].ID)
	}
	if glyphs[0].X != 0 || glyphs[0].RTL {
		t.Errorf("first glyph = %+v", glyphs[0])
	}
	if math.Abs(glyphs[1].X-glyphs[0].Advance) > 1e-9 {
		t.Errorf("second glyph X = %v, want first advance %v", glyphs[1].X, glyphs[0].Advance)
	}
	if math.Abs(glyphs[0].Advance-face.Advance(glyphs[0].ID)) > 1 {
		t.Errorf("shaped advance %v far from font advance %v", glyphs[0].Advance, face.Advance(glyphs[0].ID))
	}
	if glyphs[1].Cluster != 1 {
		t.Errorf("second cluster = %d, want 1", glyphs[1].Cluster)
	}
}

func TestShapeEmpty(t *testing.T) {
	face := newTestFace(t, 20)
	if g := face.Shape("", DirectionLTR); g != nil {
		t.Errorf("Shape(\"\") = %v", g)
	}
	if w := face.Width("", DirectionLTR); w != 0 {
		t.Errorf("Width(\"\") = %v", w)
	}
}

func TestWidthScalesWithSize(t *testing.T) {
	small := newTestFace(t, 10)
	large, err := small.WithSize(20)
	if err != nil {
		t.Fatal(err)
	}
	ws, wl := small.Width("width", DirectionLTR), large.Width("width", DirectionLTR)
	if ws <= 0 || math.Abs(wl-2*ws) > 1 {
		t.Errorf("Width at 10px = %v, at 20px = %v", ws, wl)
	}
}

func TestVisualRuns(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		base    Direction
		wantRTL bool
	}{
		{"latin", "hello", DirectionLTR, false},
		{"hebrew", "שלום", DirectionRTL, true},
		{"mixed", "abc שלום def", DirectionLTR, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len([]rune(tt.text))
			runs := visualRuns(tt.text, n, tt.base)
			if len(runs) == 0 {
				t.Fatal("no runs")
			}
			covered := 0
			hasRTL := false
			for _, r := range runs {
				if r.start < 0 || r.end > n || r.start >= r.end {
					t.Errorf("run %+v out of range", r)
				}
				covered += r.end - r.start
				hasRTL = hasRTL || r.rtl
			}
			if covered != n {
				t.Errorf("runs cover %d runes, want %d", covered, n)
			}
			if hasRTL != tt.wantRTL {
				t.Errorf("RTL run present = %t, want %t", hasRTL, tt.wantRTL)
			}
		})
	}
}

func TestVisualRunsRTLBaseReversed(t *testing.T) {
	runs := visualRuns("abc שלום", len([]rune("abc שלום")), DirectionRTL)
	if len(runs) < 2 {
		t.Skipf("bidi resolved a single run: %+v", runs)
	}
	if runs[0].start < runs[len(runs)-1].start {
		t.Errorf("runs not reversed for an RTL paragraph: %+v", runs)
	}
}
