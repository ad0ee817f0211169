package msaapath

import (
	"math"

	"github.com/gogpu/gputypes"
)

// Color is a premultiplied RGBA color packed as 8-bit channels, red in
// the lowest byte. Its little-endian memory layout matches a Unorm8x4
// vertex attribute.
type Color uint32

// ColorIllegal marks a color that no stage reads. It is not a valid
// premultiplied value (alpha 0 with non-zero RGB).
const ColorIllegal Color = 0x00FFFFFF

// Common colors.
const (
	ColorTransparent Color = 0x00000000
	ColorBlack       Color = 0xFF000000
	ColorWhite       Color = 0xFFFFFFFF
)

// RGBA builds a premultiplied color from straight (unpremultiplied)
// components in [0, 1].
func RGBA(r, g, b, a float64) Color {
	a = clamp01(a)
	return PackPremul(clamp01(r)*a, clamp01(g)*a, clamp01(b)*a, a)
}

// PackPremul packs already premultiplied components in [0, 1].
func PackPremul(r, g, b, a float64) Color {
	return Color(to8(r)) | Color(to8(g))<<8 | Color(to8(b))<<16 | Color(to8(a))<<24
}

// FromGPU converts a straight-alpha gputypes color.
func FromGPU(c gputypes.Color) Color {
	p := c.Premultiplied()
	return PackPremul(p.R, p.G, p.B, p.A)
}

// ToGPU returns the premultiplied components as a gputypes color.
func (c Color) ToGPU() gputypes.Color {
	r, g, b, a := c.Floats()
	return gputypes.Color{R: float64(r), G: float64(g), B: float64(b), A: float64(a)}
}

// Floats returns the premultiplied components in [0, 1].
func (c Color) Floats() (r, g, b, a float32) {
	const inv = 1.0 / 255
	return float32(c&0xFF) * inv,
		float32(c>>8&0xFF) * inv,
		float32(c>>16&0xFF) * inv,
		float32(c>>24) * inv
}

// Alpha returns the 8-bit alpha.
func (c Color) Alpha() uint8 {
	return uint8(c >> 24)
}

// IsOpaque reports whether alpha is 255.
func (c Color) IsOpaque() bool {
	return c.Alpha() == 0xFF
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) uint32 {
	return uint32(math.Round(clamp01(v) * 255))
}
