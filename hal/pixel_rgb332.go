//go:build !rgb565

package hal

// DefaultPixelFormat is the framebuffer encoding used by New and NewHost.
// Build with -tags rgb565 for 16-bit color.
const DefaultPixelFormat = PixelFormatRGB332
