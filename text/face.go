package text

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/msaapath/internal/cache"
)

// GlyphCacheSize is the number of glyph outlines a font keeps, shared by all
// sizes derived from the same NewFace call.
const GlyphCacheSize = 1024

type glyphKey struct {
	gid  sfnt.GlyphIndex
	ppem fixed.Int26_6
}

// Metrics holds the vertical metrics of a face in pixels. Descent is
// positive below the baseline.
type Metrics struct {
	Ascent  float64
	Descent float64
	Height  float64
}

// Face is a parsed font at a fixed pixel size.
//
// The font is parsed twice: once by sfnt for outlines and once by go-text
// for shaping. A Face is safe for concurrent use.
type Face struct {
	outlines *sfnt.Font
	shaping  *gotext.Font
	glyphs   *cache.Cache[glyphKey, sfnt.Segments]
	size     float64

	mu  sync.Mutex
	buf sfnt.Buffer
}

// NewFace parses TrueType or OpenType data and returns a face of the given
// size in pixels per em.
func NewFace(data []byte, size float64) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFont
	}
	if !(size > 0) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	outlines, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse outlines: %w", err)
	}
	shaping, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse for shaping: %w", err)
	}
	return &Face{
		outlines: outlines,
		shaping:  shaping.Font,
		glyphs:   cache.New[glyphKey, sfnt.Segments](GlyphCacheSize),
		size:     size,
	}, nil
}

// Size returns the pixel size of the face.
func (f *Face) Size() float64 {
	return f.size
}

// WithSize returns a face sharing the parsed font at another size.
func (f *Face) WithSize(size float64) (*Face, error) {
	if !(size > 0) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	return &Face{outlines: f.outlines, shaping: f.shaping, glyphs: f.glyphs, size: size}, nil
}

func (f *Face) ppem() fixed.Int26_6 {
	return fixed.Int26_6(f.size * 64)
}

// Metrics returns the unhinted vertical metrics.
func (f *Face) Metrics() Metrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, err := f.outlines.Metrics(&f.buf, f.ppem(), xfont.HintingNone)
	if err != nil {
		return Metrics{}
	}
	return Metrics{
		Ascent:  fromFixed(m.Ascent),
		Descent: fromFixed(m.Descent),
		Height:  fromFixed(m.Height),
	}
}

// GlyphIndex returns the glyph for r, or 0 (the missing glyph) when the
// font does not map it.
func (f *Face) GlyphIndex(r rune) sfnt.GlyphIndex {
	f.mu.Lock()
	defer f.mu.Unlock()
	gid, err := f.outlines.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return gid
}

// Advance returns the unhinted horizontal advance of a glyph in pixels.
func (f *Face) Advance(gid sfnt.GlyphIndex) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	adv, err := f.outlines.GlyphAdvance(&f.buf, gid, f.ppem(), xfont.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(adv)
}

// CacheStats reports the glyph outline cache counters.
func (f *Face) CacheStats() cache.Stats {
	return f.glyphs.Stats()
}

// segments returns the y-down outline of gid at the face size. The result
// is shared and must not be modified.
func (f *Face) segments(gid sfnt.GlyphIndex) (sfnt.Segments, error) {
	return f.glyphs.GetOrCreate(glyphKey{gid: gid, ppem: f.ppem()}, func() (sfnt.Segments, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		segs, err := f.outlines.LoadGlyph(&f.buf, gid, f.ppem(), nil)
		if err != nil {
			return nil, err
		}
		// segs aliases f.buf.
		return append(sfnt.Segments(nil), segs...), nil
	})
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
