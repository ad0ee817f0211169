package advblend

import (
	"fmt"
	"strings"

	msaapath "github.com/gogpu/msaapath"
)

// wgslHelpers are the W3C blend helpers shared by every mode. Vectors are
// unpremultiplied RGB.
const wgslHelpers = `
fn ab_unpremul(c: vec4<f32>) -> vec3<f32> {
    if (c.a <= 0.0) {
        return vec3<f32>(0.0);
    }
    return c.rgb / c.a;
}

fn ab_multiply(s: vec3<f32>, d: vec3<f32>) -> vec3<f32> {
    return s * d;
}

fn ab_screen(s: vec3<f32>, d: vec3<f32>) -> vec3<f32> {
    return s + d - s * d;
}

fn ab_hard_light(s: vec3<f32>, d: vec3<f32>) -> vec3<f32> {
    return select(ab_screen(2.0 * s - 1.0, d), ab_multiply(2.0 * s, d), s <= vec3<f32>(0.5));
}

fn ab_color_dodge(s: vec3<f32>, d: vec3<f32>) -> vec3<f32> {
    let q = min(vec3<f32>(1.0), d / max(1.0 - s, vec3<f32>(1e-6)));
    return select(select(q, vec3<f32>(1.0), s >= vec3<f32>(1.0)), vec3<f32>(0.0), d <= vec3<f32>(0.0));
}

fn ab_color_burn(s: vec3<f32>, d: vec3<f32>) -> vec3<f32> {
    let q = 1.0 - min(vec3<f32>(1.0), (1.0 - d) / max(s, vec3<f32>(1e-6)));
    return select(select(q, vec3<f32>(0.0), s <= vec3<f32>(0.0)), vec3<f32>(1.0), d >= vec3<f32>(1.0));
}

fn ab_soft_light(s: vec3<f32>, d: vec3<f32>) -> vec3<f32> {
    let dd = select(sqrt(d), ((16.0 * d - 12.0) * d + 4.0) * d, d <= vec3<f32>(0.25));
    let hi = d + (2.0 * s - 1.0) * (dd - d);
    let lo = d - (1.0 - 2.0 * s) * d * (1.0 - d);
    return select(hi, lo, s <= vec3<f32>(0.5));
}

fn ab_lum(c: vec3<f32>) -> f32 {
    return dot(c, vec3<f32>(0.30, 0.59, 0.11));
}

fn ab_sat(c: vec3<f32>) -> f32 {
    return max(max(c.r, c.g), c.b) - min(min(c.r, c.g), c.b);
}

fn ab_clip_color(c: vec3<f32>) -> vec3<f32> {
    let l = ab_lum(c);
    let n = min(min(c.r, c.g), c.b);
    let x = max(max(c.r, c.g), c.b);
    var r = c;
    if (n < 0.0 && l != n) {
        r = l + (r - l) * (l / (l - n));
    }
    if (x > 1.0 && x != l) {
        r = l + (r - l) * ((1.0 - l) / (x - l));
    }
    return r;
}

fn ab_set_lum(c: vec3<f32>, l: f32) -> vec3<f32> {
    return ab_clip_color(c + (l - ab_lum(c)));
}

fn ab_set_sat(c: vec3<f32>, s: f32) -> vec3<f32> {
    let n = min(min(c.r, c.g), c.b);
    let x = max(max(c.r, c.g), c.b);
    if (x <= n) {
        return vec3<f32>(0.0);
    }
    return (c - n) * (s / (x - n));
}
`

// wgslOperators maps each advanced mode to an expression of the
// unpremultiplied source s and destination d.
var wgslOperators = map[msaapath.BlendMode]string{
	msaapath.BlendModeOverlay:    "ab_hard_light(d, s)",
	msaapath.BlendModeDarken:     "min(s, d)",
	msaapath.BlendModeLighten:    "max(s, d)",
	msaapath.BlendModeColorDodge: "ab_color_dodge(s, d)",
	msaapath.BlendModeColorBurn:  "ab_color_burn(s, d)",
	msaapath.BlendModeHardLight:  "ab_hard_light(s, d)",
	msaapath.BlendModeSoftLight:  "ab_soft_light(s, d)",
	msaapath.BlendModeDifference: "abs(s - d)",
	msaapath.BlendModeExclusion:  "s + d - 2.0 * s * d",
	msaapath.BlendModeMultiply:   "ab_multiply(s, d)",
	msaapath.BlendModeHue:        "ab_set_lum(ab_set_sat(s, ab_sat(d)), ab_lum(d))",
	msaapath.BlendModeSaturation: "ab_set_lum(ab_set_sat(d, ab_sat(s)), ab_lum(d))",
	msaapath.BlendModeColor:      "ab_set_lum(s, ab_lum(d))",
	msaapath.BlendModeLuminosity: "ab_set_lum(d, ab_lum(s))",
}

// BlendFuncName is the WGSL function emitted by FallbackWGSL and HWFragmentWGSL:
//
//	fn advanced_blend(src: vec4<f32>, dst: vec4<f32>, coverage: f32) -> vec4<f32>
const BlendFuncName = "advanced_blend"

// FallbackWGSL returns WGSL source blending premultiplied src over dst in
// mode and applying fractional coverage by interpolating towards dst. It
// returns false for modes that are not advanced.
func FallbackWGSL(mode msaapath.BlendMode) (string, bool) {
	expr, ok := wgslOperators[mode]
	if !ok {
		return "", false
	}
	var b strings.Builder
	b.WriteString("// advanced blend: ")
	b.WriteString(mode.String())
	b.WriteString("\n")
	b.WriteString(wgslHelpers)
	fmt.Fprintf(&b, `
fn %s(src: vec4<f32>, dst: vec4<f32>, coverage: f32) -> vec4<f32> {
    let s = ab_unpremul(src);
    let d = ab_unpremul(dst);
    let both = src.a * dst.a;
    let rgb = (%s) * both + src.rgb * (1.0 - dst.a) + dst.rgb * (1.0 - src.a);
    let blended = vec4<f32>(rgb, src.a + dst.a - both);
    return mix(dst, blended, coverage);
}
`, BlendFuncName, expr)
	return b.String(), true
}

// HWFragmentWGSL returns the WGSL that feeds a hardware equation: source
// color scaled by coverage. It is for backends that program advanced blend
// equations; backend/native rejects such capabilities and always uses
// FallbackWGSL.
func HWFragmentWGSL() string {
	return fmt.Sprintf(`
fn %s(src: vec4<f32>, dst: vec4<f32>, coverage: f32) -> vec4<f32> {
    return src * coverage;
}
`, BlendFuncName)
}
