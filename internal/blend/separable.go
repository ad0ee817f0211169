package blend

import "github.com/chewxy/math32"

// channelFunc blends one unpremultiplied source channel s with the
// destination channel d.
type channelFunc func(s, d float32) float32

func separable(fn channelFunc) Func {
	return func(s, d RGB) RGB {
		return RGB{fn(s.R, d.R), fn(s.G, d.G), fn(s.B, d.B)}
	}
}

func multiply(s, d float32) float32 { return s * d }

func screen(s, d float32) float32 { return s + d - s*d }

func overlay(s, d float32) float32 { return hardLight(d, s) }

func darken(s, d float32) float32 { return math32.Min(s, d) }

func lighten(s, d float32) float32 { return math32.Max(s, d) }

func colorDodge(s, d float32) float32 {
	switch {
	case d <= 0:
		return 0
	case s >= 1:
		return 1
	default:
		return math32.Min(1, d/(1-s))
	}
}

func colorBurn(s, d float32) float32 {
	switch {
	case d >= 1:
		return 1
	case s <= 0:
		return 0
	default:
		return 1 - math32.Min(1, (1-d)/s)
	}
}

func hardLight(s, d float32) float32 {
	if s <= 0.5 {
		return multiply(2*s, d)
	}
	return screen(2*s-1, d)
}

func softLight(s, d float32) float32 {
	if s <= 0.5 {
		return d - (1-2*s)*d*(1-d)
	}
	var dd float32
	if d <= 0.25 {
		dd = ((16*d-12)*d + 4) * d
	} else {
		dd = math32.Sqrt(d)
	}
	return d + (2*s-1)*(dd-d)
}

func difference(s, d float32) float32 { return math32.Abs(s - d) }

func exclusion(s, d float32) float32 { return s + d - 2*s*d }
