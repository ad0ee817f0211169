// Package blend implements the advanced blend operators in float32.
//
// Each operator B(Cs, Cb) works on unpremultiplied colors. Composite
// embeds it in the premultiplied compositing formula
//
//	Co = B(Cs, Cb)*Sa*Da + Cs*Sa*(1-Da) + Cb*Da*(1-Sa)
//	Ao = Sa + Da - Sa*Da
//
// and Modulate applies fractional coverage against the destination.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import msaapath "github.com/gogpu/msaapath"

// RGB is an unpremultiplied color triple.
type RGB struct {
	R, G, B float32
}

// Premul is a premultiplied color with alpha.
type Premul struct {
	R, G, B, A float32
}

// Func is a blend operator B(Cs, Cb).
type Func func(s, d RGB) RGB

var operators = map[msaapath.BlendMode]Func{
	msaapath.BlendModeScreen:     separable(screen),
	msaapath.BlendModeOverlay:    separable(overlay),
	msaapath.BlendModeDarken:     separable(darken),
	msaapath.BlendModeLighten:    separable(lighten),
	msaapath.BlendModeColorDodge: separable(colorDodge),
	msaapath.BlendModeColorBurn:  separable(colorBurn),
	msaapath.BlendModeHardLight:  separable(hardLight),
	msaapath.BlendModeSoftLight:  separable(softLight),
	msaapath.BlendModeDifference: separable(difference),
	msaapath.BlendModeExclusion:  separable(exclusion),
	msaapath.BlendModeMultiply:   separable(multiply),
	msaapath.BlendModeHue:        hue,
	msaapath.BlendModeSaturation: saturation,
	msaapath.BlendModeColor:      color,
	msaapath.BlendModeLuminosity: luminosity,
}

// Operator returns B for mode. Coefficient modes other than Screen have
// no operator form and report false.
func Operator(mode msaapath.BlendMode) (Func, bool) {
	fn, ok := operators[mode]
	return fn, ok
}

// Composite blends src over dst with op.
func Composite(op Func, src, dst Premul) Premul {
	sa, da := src.A, dst.A
	b := op(unpremul(src), unpremul(dst))
	both := sa * da
	return Premul{
		R: b.R*both + src.R*(1-da) + dst.R*(1-sa),
		G: b.G*both + src.G*(1-da) + dst.G*(1-sa),
		B: b.B*both + src.B*(1-da) + dst.B*(1-sa),
		A: sa + da - both,
	}
}

// Modulate returns f*result + (1-f)*dst.
func Modulate(result, dst Premul, f float32) Premul {
	g := 1 - f
	return Premul{
		R: f*result.R + g*dst.R,
		G: f*result.G + g*dst.G,
		B: f*result.B + g*dst.B,
		A: f*result.A + g*dst.A,
	}
}

// Scale multiplies every component by f.
func (p Premul) Scale(f float32) Premul {
	return Premul{p.R * f, p.G * f, p.B * f, p.A * f}
}

func unpremul(p Premul) RGB {
	if p.A <= 0 {
		return RGB{}
	}
	inv := 1 / p.A
	return RGB{p.R * inv, p.G * inv, p.B * inv}
}
