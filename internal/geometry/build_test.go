package geometry

import (
	"encoding/binary"
	"math"
	"testing"

	msaapath "github.com/gogpu/msaapath"
)

func rectPath(x, y, w, h float64) *msaapath.Path {
	p := msaapath.NewPath()
	p.Rectangle(x, y, w, h)
	return p
}

func circlePath(cx, cy, r float64) *msaapath.Path {
	p := msaapath.NewPath()
	p.Circle(cx, cy, r)
	return p
}

func twoRects() *msaapath.Path {
	p := msaapath.NewPath()
	p.Rectangle(0, 0, 10, 10)
	p.Rectangle(20, 20, 10, 10)
	return p
}

func quadPath() *msaapath.Path {
	p := msaapath.NewPath()
	p.MoveTo(0, 0)
	p.QuadTo(50, 100, 100, 0)
	p.Close()
	return p
}

func sCurvePath() *msaapath.Path {
	p := msaapath.NewPath()
	p.MoveTo(0, 0)
	p.CubicTo(100, 0, 0, 100, 100, 100)
	p.LineTo(0, 100)
	p.Close()
	return p
}

func testPaths() map[string]*msaapath.Path {
	rrect := msaapath.NewPath()
	rrect.RoundedRectangle(10, 10, 200, 120, 24)

	mixed := msaapath.NewPath()
	mixed.MoveTo(0, 0)
	mixed.LineTo(40, 0)
	mixed.QuadTo(60, 20, 40, 40)
	mixed.ConicTo(20, 60, 0, 40, 3)
	mixed.CubicTo(-20, 30, 20, 10, 0, 0)
	mixed.MoveTo(100, 100)
	mixed.LineTo(150, 100)
	mixed.LineTo(150, 100)
	mixed.LineTo(125, 150)

	degenerate := msaapath.NewPath()
	degenerate.MoveTo(5, 5)
	degenerate.LineTo(5, 5)
	degenerate.MoveTo(7, 7)

	return map[string]*msaapath.Path{
		"rect":       rectPath(0, 0, 10, 10),
		"circle":     circlePath(50, 50, 100),
		"tiny":       circlePath(0, 0, 0.25),
		"two rects":  twoRects(),
		"quad":       quadPath(),
		"s-curve":    sCurvePath(),
		"rrect":      rrect,
		"mixed":      mixed,
		"degenerate": degenerate,
		"empty":      msaapath.NewPath(),
	}
}

func TestWorstCase(t *testing.T) {
	tests := []struct {
		name         string
		path         *msaapath.Path
		wantSubpaths int
		wantLines    int
		wantQuads    int
	}{
		{"rect", rectPath(0, 0, 10, 10), 1, 5, 0},
		{"two rects", twoRects(), 2, 10, 0},
		{"quad", quadPath(), 1, 3, 3},
		// Four conics of four pieces each, every conic counted once more as a quad.
		{"circle", circlePath(0, 0, 100), 1, 1 + 4*(4+1), 4 * (12 + 3)},
		{"empty", msaapath.NewPath(), 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subpaths, lines, quads := WorstCase(tt.path)
			if subpaths != tt.wantSubpaths || lines != tt.wantLines || quads != tt.wantQuads {
				t.Errorf("WorstCase() = (%d, %d, %d), want (%d, %d, %d)",
					subpaths, lines, quads, tt.wantSubpaths, tt.wantLines, tt.wantQuads)
			}
		})
	}
}

// The counts from WorstCase must always be enough for Build.
func TestWorstCaseBoundsBuild(t *testing.T) {
	for name, p := range testPaths() {
		for _, indexed := range []bool{false, true} {
			t.Run(name, func(t *testing.T) {
				_, maxLines, maxQuads := WorstCase(p)
				lines, quads := newStreams(maxLines, maxQuads, indexed)

				Build(p, msaapath.ColorBlack, lines, quads)

				if lines.VertexCount() > maxLines {
					t.Errorf("line vertices = %d, worst case %d", lines.VertexCount(), maxLines)
				}
				if quads.VertexCount() > maxQuads {
					t.Errorf("quad vertices = %d, worst case %d", quads.VertexCount(), maxQuads)
				}
				if indexed && lines.IndexCount() > 3*maxLines {
					t.Errorf("line indices = %d, reserved %d", lines.IndexCount(), 3*maxLines)
				}
			})
		}
	}
}

func TestBuildRect(t *testing.T) {
	lines, quads := newStreams(5, 0, false)
	Build(rectPath(1, 2, 3, 4), msaapath.ColorWhite, lines, quads)

	want := []msaapath.Point{{X: 1, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 6}, {X: 1, Y: 6}, {X: 1, Y: 2}}
	if lines.VertexCount() != len(want) {
		t.Fatalf("VertexCount() = %d, want %d", lines.VertexCount(), len(want))
	}
	for i, w := range want {
		p, c := lineVertex(lines, i)
		if p != w {
			t.Errorf("vertex %d = %v, want %v", i, p, w)
		}
		if c != msaapath.ColorWhite {
			t.Errorf("vertex %d color = %#x", i, uint32(c))
		}
	}
	if lines.IndexCount() != 0 {
		t.Errorf("IndexCount() = %d, want 0 for a fan", lines.IndexCount())
	}
}

func TestBuildIndexedFans(t *testing.T) {
	lines, quads := newStreams(10, 0, true)
	Build(twoRects(), msaapath.ColorBlack, lines, quads)

	want := []uint16{
		0, 1, 2, 0, 2, 3, 0, 3, 4,
		5, 6, 7, 5, 7, 8, 5, 8, 9,
	}
	got := lines.indices[:lines.IndexCount()]
	if len(got) != len(want) {
		t.Fatalf("indices = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("indices = %v, want %v", got, want)
		}
	}
}

func TestBuildQuad(t *testing.T) {
	for _, indexed := range []bool{false, true} {
		lines, quads := newStreams(3, 3, indexed)
		Build(quadPath(), msaapath.ColorBlack, lines, quads)

		if lines.VertexCount() != 3 {
			t.Errorf("line vertices = %d, want 3", lines.VertexCount())
		}
		if p, _ := lineVertex(lines, 1); p != msaapath.Pt(100, 0) {
			t.Errorf("quad end vertex = %v, want (100, 0)", p)
		}
		if quads.VertexCount() != 3 {
			t.Fatalf("quad vertices = %d, want 3", quads.VertexCount())
		}
		for i, want := range quadUV {
			if got := quadVertexUV(quads, i); got != want {
				t.Errorf("uv[%d] = %v, want %v", i, got, want)
			}
		}
		if indexed {
			got := quads.IndexData()
			if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
				t.Errorf("quad indices = %v, want [0 1 2]", got)
			}
		} else if quads.IndexCount() != 0 {
			t.Errorf("non-indexed quad stream wrote %d indices", quads.IndexCount())
		}
	}
}

func TestBuildAppendsAfterExisting(t *testing.T) {
	lines, quads := newStreams(10, 0, true)
	Build(rectPath(0, 0, 1, 1), msaapath.ColorBlack, lines, quads)
	Build(rectPath(5, 5, 1, 1), msaapath.ColorWhite, lines, quads)

	if lines.VertexCount() != 10 {
		t.Fatalf("VertexCount() = %d, want 10", lines.VertexCount())
	}
	// The second path's fan is centred on its own first vertex.
	if got := lines.indices[9]; got != 5 {
		t.Errorf("second fan center = %d, want 5", got)
	}
	if _, c := lineVertex(lines, 7); c != msaapath.ColorWhite {
		t.Errorf("second path color = %#x", uint32(c))
	}
}

func TestStreamOverflowPanics(t *testing.T) {
	tests := []struct {
		name string
		run  func()
	}{
		{"line vertices", func() {
			lines, quads := newStreams(2, 0, false)
			Build(rectPath(0, 0, 1, 1), msaapath.ColorBlack, lines, quads)
		}},
		{"line indices", func() {
			lines := NewLineStream(make([]byte, 5*LineVertexStride), make([]uint16, 3))
			Build(rectPath(0, 0, 1, 1), msaapath.ColorBlack, lines, NewQuadStream(0, true))
		}},
		{"quad vertices", func() {
			lines, quads := newStreams(3, 2, false)
			Build(quadPath(), msaapath.ColorBlack, lines, quads)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.run()
		})
	}
}

func newStreams(maxLines, maxQuads int, indexed bool) (*LineStream, *QuadStream) {
	var indices []uint16
	if indexed {
		indices = make([]uint16, 3*maxLines)
	}
	return NewLineStream(make([]byte, maxLines*LineVertexStride), indices), NewQuadStream(maxQuads, indexed)
}

func lineVertex(s *LineStream, i int) (msaapath.Point, msaapath.Color) {
	b := s.vertices[i*LineVertexStride:]
	x := math.Float32frombits(binary.LittleEndian.Uint32(b[0:4]))
	y := math.Float32frombits(binary.LittleEndian.Uint32(b[4:8]))
	return msaapath.Pt(float64(x), float64(y)), msaapath.Color(binary.LittleEndian.Uint32(b[8:12]))
}

func quadVertexUV(s *QuadStream, i int) [2]float32 {
	b := s.VertexData()[i*QuadVertexStride:]
	return [2]float32{
		math.Float32frombits(binary.LittleEndian.Uint32(b[8:12])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[12:16])),
	}
}
