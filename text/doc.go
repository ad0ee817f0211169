// Package text turns strings into fillable paths.
//
// A [Face] wraps one parsed TrueType or OpenType font at a pixel size. The
// string is split into directional runs with the Unicode bidi algorithm,
// each run is shaped with HarfBuzz, and every glyph outline is appended to a
// single multi-contour [msaapath.Path]. Glyph contours overlap and wind in
// opposite directions for holes, so the result uses the NonZero fill rule.
//
//	face, err := text.NewFace(goregular.TTF, 24)
//	if err != nil {
//		return err
//	}
//	p, err := face.Path("Hello", 10, 40, text.DirectionLTR)
//
// Coordinates are y-down: the origin passed to Path is the left end of the
// baseline.
package text
