package hal

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB332 is 8bpp: rrrgggbb.
	PixelFormatRGB332 PixelFormat = iota + 1
	// PixelFormatRGB565 is 16bpp little-endian: rrrrrggggggbbbbb.
	PixelFormatRGB565
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB332:
		return "rgb332"
	case PixelFormatRGB565:
		return "rgb565"
	default:
		return "unknown"
	}
}

// BytesPerPixel returns the storage size of one pixel, or 0 for an unknown format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGB332:
		return 1
	case PixelFormatRGB565:
		return 2
	default:
		return 0
	}
}

// Encode packs an 8-bit-per-channel color into the format's pixel value.
func (f PixelFormat) Encode(r, g, b uint8) uint16 {
	switch f {
	case PixelFormatRGB332:
		return uint16(rgb332(r, g, b))
	case PixelFormatRGB565:
		return rgb565(r, g, b)
	default:
		return 0
	}
}

// Decode expands a pixel value back to 8 bits per channel.
func (f PixelFormat) Decode(p uint16) (r, g, b uint8) {
	switch f {
	case PixelFormatRGB332:
		return rgb888From332(uint8(p))
	case PixelFormatRGB565:
		return rgb888From565(p)
	default:
		return 0, 0, 0
	}
}

// Put stores pixel value p at byte offset off.
func (f PixelFormat) Put(buf []byte, off int, p uint16) {
	switch f {
	case PixelFormatRGB332:
		buf[off] = byte(p)
	case PixelFormatRGB565:
		buf[off] = byte(p)
		buf[off+1] = byte(p >> 8)
	}
}

// Get loads the pixel value at byte offset off.
func (f PixelFormat) Get(buf []byte, off int) uint16 {
	switch f {
	case PixelFormatRGB332:
		return uint16(buf[off])
	case PixelFormatRGB565:
		return uint16(buf[off]) | uint16(buf[off+1])<<8
	default:
		return 0
	}
}

func rgb332(r, g, b uint8) uint8 {
	return (r & 0xE0) | (g&0xE0)>>3 | b>>6
}

func rgb888From332(p uint8) (r, g, b uint8) {
	rr := uint16(p>>5) & 0x07
	gg := uint16(p>>2) & 0x07
	bb := uint16(p) & 0x03

	r = uint8((rr * 255) / 7)
	g = uint8((gg * 255) / 7)
	b = uint8((bb * 255) / 3)
	return r, g, b
}

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}
