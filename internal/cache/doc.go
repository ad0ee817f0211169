// Package cache provides a small generic LRU cache.
//
// The text package keeps glyph outlines in it, keyed by glyph and size, so
// repeated strings do not reload glyph data from the font.
package cache
