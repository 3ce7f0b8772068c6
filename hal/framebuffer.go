package hal

// MemFramebuffer is a Framebuffer held in RAM. Present hands the buffer to
// an optional hook that pushes it to the panel or the host window.
type MemFramebuffer struct {
	width   int
	height  int
	stride  int
	format  PixelFormat
	buf     []byte
	present func(*MemFramebuffer) error
}

// NewMemFramebuffer allocates a width x height buffer in the given format.
// A nil present hook makes Present a no-op.
func NewMemFramebuffer(width, height int, format PixelFormat, present func(*MemFramebuffer) error) *MemFramebuffer {
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		format = DefaultPixelFormat
		bpp = format.BytesPerPixel()
	}
	stride := width * bpp
	return &MemFramebuffer{
		width:   width,
		height:  height,
		stride:  stride,
		format:  format,
		buf:     make([]byte, stride*height),
		present: present,
	}
}

func (f *MemFramebuffer) Width() int          { return f.width }
func (f *MemFramebuffer) Height() int         { return f.height }
func (f *MemFramebuffer) Format() PixelFormat { return f.format }
func (f *MemFramebuffer) StrideBytes() int    { return f.stride }
func (f *MemFramebuffer) Buffer() []byte      { return f.buf }

func (f *MemFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := f.format.Encode(r, g, b)
	bpp := f.format.BytesPerPixel()
	for i := 0; i+bpp <= len(f.buf); i += bpp {
		f.format.Put(f.buf, i, pixel)
	}
}

func (f *MemFramebuffer) Present() error {
	if f.present == nil {
		return nil
	}
	return f.present(f)
}

// RGBAt decodes the pixel at (x, y). Out-of-range coordinates read as black.
func (f *MemFramebuffer) RGBAt(x, y int) (r, g, b uint8) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0, 0, 0
	}
	off := y*f.stride + x*f.format.BytesPerPixel()
	return f.format.Decode(f.format.Get(f.buf, off))
}
