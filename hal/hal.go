package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrShutdown is returned by a step function once the application has
	// asked to stop. Runners treat it as a clean exit.
	ErrShutdown = errors.New("shutdown requested")
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides the framebuffer and the panel backlight.
type Display interface {
	Framebuffer() Framebuffer
	// SetBacklight sets the backlight level in percent (0-100).
	SetBacklight(percent uint8) error
}

// ButtonID names one of the four front-panel buttons.
type ButtonID uint8

const (
	ButtonA ButtonID = iota
	ButtonB
	ButtonX
	ButtonY

	ButtonCount = 4
)

func (id ButtonID) String() string {
	switch id {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	case ButtonX:
		return "X"
	case ButtonY:
		return "Y"
	default:
		return "?"
	}
}

// Button is a momentary push button.
type Button interface {
	// Read reports a press edge, then repeats while the button stays held.
	Read() bool
	// Raw reports the instantaneous pressed state.
	Raw() bool
}

// Buttons provides access to the front-panel buttons.
type Buttons interface {
	Button(id ButtonID) Button
}

// Time provides a base tick stream.
//
// Each value is the platform's millisecond counter at the time it was
// published. Values may be skipped when the consumer falls behind.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the clock and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Buttons() Buttons
	Time() Time
}
