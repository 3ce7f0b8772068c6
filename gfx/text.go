package gfx

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is a tinyfont face plus the metrics needed to place text by its
// top edge.
type Font struct {
	face   tinyfont.Fonter
	ascent int
}

var defaultFont *Font

// DefaultFont returns the proggy TinySZ 8pt face.
func DefaultFont() *Font {
	if defaultFont == nil {
		defaultFont = NewFont(&proggy.TinySZ8pt7b)
	}
	return defaultFont
}

// NewFont wraps face. The ascent is taken from the tallest digit or colon.
func NewFont(face tinyfont.Fonter) *Font {
	f := &Font{face: face}
	for _, r := range "0123456789:" {
		if a := -int(face.GetGlyph(r).Info().YOffset); a > f.ascent {
			f.ascent = a
		}
	}
	return f
}

// Ascent is the height above the baseline of the tallest digit, unscaled.
func (f *Font) Ascent() int { return f.ascent }

// SetFont replaces the canvas font.
func (c *Canvas) SetFont(f *Font) {
	if f != nil {
		c.font = f
	}
}

// MeasureText returns the width of text drawn at scale with spacing extra
// pixels (before scaling) between glyphs.
func (c *Canvas) MeasureText(text []byte, scale, spacing int) int {
	if scale < 1 {
		scale = 1
	}
	w := 0
	for i, ch := range text {
		if i > 0 {
			w += spacing * scale
		}
		w += int(c.font.face.GetGlyph(rune(ch)).Info().XAdvance) * scale
	}
	return w
}

// Text draws text with its top-left corner at (x, y). Each font pixel
// becomes a scale x scale block. Glyphs that would extend past x+maxWidth
// are not drawn; maxWidth <= 0 disables the limit.
func (c *Canvas) Text(text []byte, x, y, maxWidth, scale, spacing int, col color.RGBA) {
	if scale < 1 {
		scale = 1
	}
	s := &c.scaler
	s.scale = scale
	s.oy = y + c.font.ascent*scale

	pen := x
	for i, ch := range text {
		if i > 0 {
			pen += spacing * scale
		}
		g := c.font.face.GetGlyph(rune(ch))
		adv := int(g.Info().XAdvance) * scale
		if maxWidth > 0 && pen+adv > x+maxWidth {
			return
		}
		s.ox = pen
		g.Draw(s, 0, 0, col)
		pen += adv
	}
}

// scaledDisplay maps glyph pixels relative to a pen position onto blocks
// of the canvas.
type scaledDisplay struct {
	c      *Canvas
	ox, oy int
	scale  int
}

func (s *scaledDisplay) Size() (x, y int16) { return s.c.Size() }

func (s *scaledDisplay) SetPixel(x, y int16, col color.RGBA) {
	px := s.ox + int(x)*s.scale
	py := s.oy + int(y)*s.scale
	s.c.fillRect(px, py, s.scale, s.scale, s.c.format.Encode(col.R, col.G, col.B))
}

func (s *scaledDisplay) Display() error { return nil }
