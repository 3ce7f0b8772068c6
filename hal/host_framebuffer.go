//go:build !tinygo

package hal

import (
	"image"
	"sync"
)

// Frame is a copy of a presented framebuffer.
type Frame struct {
	Width  int
	Height int
	Stride int
	Format PixelFormat
	Pix    []byte
	// Seq counts presents; the first presented frame has Seq 1.
	Seq uint64
}

// RGBA converts the frame to an image.
func (f *Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	f.fillRGBA(img.Pix, 100)
	return img
}

// fillRGBA decodes the frame into dst (4 bytes per pixel), scaling each
// channel by level percent.
func (f *Frame) fillRGBA(dst []byte, level uint8) {
	bpp := f.Format.BytesPerPixel()
	if bpp == 0 {
		return
	}
	scale := uint16(level)
	if scale > 100 {
		scale = 100
	}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			j := (y*f.Width + x) * 4
			if j+3 >= len(dst) {
				return
			}
			r, g, b := f.Format.Decode(f.Format.Get(f.Pix, y*f.Stride+x*bpp))
			dst[j+0] = uint8(uint16(r) * scale / 100)
			dst[j+1] = uint8(uint16(g) * scale / 100)
			dst[j+2] = uint8(uint16(b) * scale / 100)
			dst[j+3] = 0xFF
		}
	}
}

// frontBuffer holds the last presented frame for the window and the debug
// server, which read it from other goroutines.
type frontBuffer struct {
	mu    sync.Mutex
	frame Frame
}

func newFrontBuffer(width, height int, format PixelFormat) *frontBuffer {
	stride := width * format.BytesPerPixel()
	return &frontBuffer{frame: Frame{
		Width:  width,
		Height: height,
		Stride: stride,
		Format: format,
		Pix:    make([]byte, stride*height),
	}}
}

func (f *frontBuffer) update(fb *MemFramebuffer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.frame.Pix, fb.Buffer())
	f.frame.Seq++
	return nil
}

func (f *frontBuffer) count() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frame.Seq
}

func (f *frontBuffer) snapshot() *Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.frame
	out.Pix = append([]byte(nil), f.frame.Pix...)
	return &out
}

func (f *frontBuffer) snapshotRGBA(dst []byte, level uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frame.fillRGBA(dst, level)
}
