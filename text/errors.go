package text

import "errors"

var (
	// ErrEmptyFont is returned when NewFace is given no font data.
	ErrEmptyFont = errors.New("text: empty font data")

	// ErrInvalidSize is returned for a non-positive or non-finite size.
	ErrInvalidSize = errors.New("text: invalid size")

	// ErrColoredGlyph is returned for glyphs that only have bitmap or
	// color layers and no outline.
	ErrColoredGlyph = errors.New("text: glyph has no outline")
)
