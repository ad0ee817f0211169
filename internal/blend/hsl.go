package blend

import "github.com/chewxy/math32"

// Lum returns the luminance of a color using BT.601 coefficients.
// Formula: Lum(r, g, b) = 0.30*r + 0.59*g + 0.11*b
func Lum(c RGB) float32 {
	return 0.30*c.R + 0.59*c.G + 0.11*c.B
}

// Sat returns the saturation (max - min) of a color.
func Sat(c RGB) float32 {
	return max3(c.R, c.G, c.B) - min3(c.R, c.G, c.B)
}

// ClipColor pulls out-of-range components back into [0,1] along the line
// towards the color's luminance, so the luminance itself is preserved.
func ClipColor(c RGB) RGB {
	l := Lum(c)
	n := min3(c.R, c.G, c.B)
	x := max3(c.R, c.G, c.B)

	if n < 0 && l != n {
		s := l / (l - n)
		c = RGB{l + (c.R-l)*s, l + (c.G-l)*s, l + (c.B-l)*s}
	}
	if x > 1 && x != l {
		s := (1 - l) / (x - l)
		c = RGB{l + (c.R-l)*s, l + (c.G-l)*s, l + (c.B-l)*s}
	}
	return c
}

// SetLum shifts c to luminance l, then clips.
func SetLum(c RGB, l float32) RGB {
	d := l - Lum(c)
	return ClipColor(RGB{c.R + d, c.G + d, c.B + d})
}

// SetSat rescales c so that max-min equals s, keeping the order of the
// components. A gray input has no hue to keep and becomes black.
func SetSat(c RGB, s float32) RGB {
	lo, mid, hi := sortRGB(&c.R, &c.G, &c.B)
	if *hi > *lo {
		*mid = (*mid - *lo) * s / (*hi - *lo)
		*hi = s
	} else {
		*mid, *hi = 0, 0
	}
	*lo = 0
	return c
}

// sortRGB returns pointers to r, g, b sorted by value.
func sortRGB(r, g, b *float32) (lo, mid, hi *float32) {
	switch {
	case *r <= *g && *g <= *b:
		return r, g, b
	case *r <= *b && *b <= *g:
		return r, b, g
	case *b <= *r && *r <= *g:
		return b, r, g
	case *g <= *r && *r <= *b:
		return g, r, b
	case *g <= *b && *b <= *r:
		return g, b, r
	default:
		return b, g, r
	}
}

// hue: SetLum(SetSat(Cs, Sat(Cb)), Lum(Cb))
func hue(s, d RGB) RGB {
	return SetLum(SetSat(s, Sat(d)), Lum(d))
}

// saturation: SetLum(SetSat(Cb, Sat(Cs)), Lum(Cb))
func saturation(s, d RGB) RGB {
	return SetLum(SetSat(d, Sat(s)), Lum(d))
}

// color: SetLum(Cs, Lum(Cb))
func color(s, d RGB) RGB {
	return SetLum(s, Lum(d))
}

// luminosity: SetLum(Cb, Lum(Cs))
func luminosity(s, d RGB) RGB {
	return SetLum(d, Lum(s))
}

func min3(a, b, c float32) float32 {
	return math32.Min(a, math32.Min(b, c))
}

func max3(a, b, c float32) float32 {
	return math32.Max(a, math32.Max(b, c))
}
