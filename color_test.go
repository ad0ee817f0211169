package msaapath

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestColorPremultiplies(t *testing.T) {
	tests := []struct {
		name       string
		r, g, b, a float64
		want       Color
	}{
		{"opaque white", 1, 1, 1, 1, ColorWhite},
		{"opaque black", 0, 0, 0, 1, ColorBlack},
		{"transparent", 1, 1, 1, 0, ColorTransparent},
		{"half red", 1, 0, 0, 0.5, 0x80000080},
		{"clamped", 2, -1, 0, 1, 0xFF0000FF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBA(tt.r, tt.g, tt.b, tt.a); got != tt.want {
				t.Errorf("RGBA() = %#08x, want %#08x", uint32(got), uint32(tt.want))
			}
		})
	}
}

func TestColorGPU(t *testing.T) {
	c := FromGPU(gputypes.Color{R: 1, G: 0, B: 0, A: 0.5})
	if c != 0x80000080 {
		t.Errorf("FromGPU() = %#08x", uint32(c))
	}
	g := c.ToGPU()
	if g.A < 0.50 || g.A > 0.51 || g.R != g.A || g.G != 0 {
		t.Errorf("ToGPU() = %+v, want premultiplied half red", g)
	}
	if c.IsOpaque() || !ColorBlack.IsOpaque() {
		t.Error("IsOpaque() mismatch")
	}
	if ColorIllegal.Alpha() != 0 {
		t.Error("ColorIllegal has alpha")
	}
}
