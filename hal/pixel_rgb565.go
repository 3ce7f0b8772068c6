//go:build rgb565

package hal

// DefaultPixelFormat is the framebuffer encoding used by New and NewHost.
const DefaultPixelFormat = PixelFormatRGB565
