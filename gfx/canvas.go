// Package gfx draws shapes and text into a hal.Framebuffer.
//
// Canvas implements drivers.Displayer so the tinydraw and tinyfont
// rasterizers can target the framebuffer directly.
package gfx

import (
	"image/color"

	"picoclock/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
)

// Canvas draws into a framebuffer. Pixels outside the buffer are dropped.
type Canvas struct {
	fb     hal.Framebuffer
	format hal.PixelFormat
	bpp    int
	width  int
	height int

	font   *Font
	scaler scaledDisplay
}

var _ drivers.Displayer = (*Canvas)(nil)

// New returns a canvas over fb using the default font.
func New(fb hal.Framebuffer) *Canvas {
	c := &Canvas{
		fb:     fb,
		format: fb.Format(),
		bpp:    fb.Format().BytesPerPixel(),
		width:  fb.Width(),
		height: fb.Height(),
		font:   DefaultFont(),
	}
	c.scaler.c = c
	return c
}

func (c *Canvas) Size() (x, y int16) {
	return int16(c.width), int16(c.height)
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.put(int(x), int(y), c.format.Encode(col.R, col.G, col.B))
}

// Display presents the framebuffer.
func (c *Canvas) Display() error {
	return c.fb.Present()
}

func (c *Canvas) put(x, y int, p uint16) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height || c.bpp == 0 {
		return
	}
	buf := c.fb.Buffer()
	off := y*c.fb.StrideBytes() + x*c.bpp
	if off < 0 || off+c.bpp > len(buf) {
		return
	}
	c.format.Put(buf, off, p)
}

// At returns the color stored at (x, y), decoded from the framebuffer.
func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.width || y >= c.height || c.bpp == 0 {
		return color.RGBA{}
	}
	buf := c.fb.Buffer()
	off := y*c.fb.StrideBytes() + x*c.bpp
	if off < 0 || off+c.bpp > len(buf) {
		return color.RGBA{}
	}
	r, g, b := c.format.Decode(c.format.Get(buf, off))
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// Clear fills the whole framebuffer.
func (c *Canvas) Clear(col color.RGBA) {
	c.fb.ClearRGB(col.R, col.G, col.B)
}

// FillRectangle fills the rectangle clipped to the framebuffer.
func (c *Canvas) FillRectangle(x, y, width, height int16, col color.RGBA) error {
	c.fillRect(int(x), int(y), int(width), int(height), c.format.Encode(col.R, col.G, col.B))
	return nil
}

func (c *Canvas) fillRect(x, y, w, h int, p uint16) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, c.width), min(y+h, c.height)
	if x0 >= x1 || y0 >= y1 || c.bpp == 0 {
		return
	}
	buf := c.fb.Buffer()
	stride := c.fb.StrideBytes()
	for yy := y0; yy < y1; yy++ {
		off := yy*stride + x0*c.bpp
		for xx := x0; xx < x1; xx++ {
			c.format.Put(buf, off, p)
			off += c.bpp
		}
	}
}

// Line draws a one pixel wide line between two points.
func (c *Canvas) Line(x0, y0, x1, y1 int, col color.RGBA) {
	tinydraw.Line(c, int16(x0), int16(y0), int16(x1), int16(y1), col)
}

// FilledCircle draws a solid disc of radius r centered on (x, y).
func (c *Canvas) FilledCircle(x, y, r int, col color.RGBA) {
	if r < 0 {
		return
	}
	tinydraw.FilledCircle(c, int16(x), int16(y), int16(r), col)
}
