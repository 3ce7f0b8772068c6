//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	hostWidth  = 240
	hostHeight = 240
)

// HostConfig configures the simulated Pico Explorer.
type HostConfig struct {
	Width  int
	Height int
	Format PixelFormat

	// Logger receives log lines. Defaults to stdout.
	Logger Logger
	// Clock drives the millisecond tick stream and the button timing.
	// Defaults to the real clock.
	Clock clockwork.Clock
	// Script presses buttons at fixed offsets from start.
	Script []ScriptStep
}

// Host is the desktop HAL: an in-memory display, virtual buttons and a
// clock-driven tick stream.
type Host struct {
	logger  Logger
	clock   clockwork.Clock
	start   time.Time
	fb      *MemFramebuffer
	front   *frontBuffer
	pins    [ButtonCount]*simPin
	buttons buttonSet
	t       *hostTime
	script  buttonScript

	mu        sync.Mutex
	backlight uint8
	keys      uint8
}

// NewHost returns a host HAL implementation.
func NewHost(cfg HostConfig) *Host {
	if cfg.Width <= 0 {
		cfg.Width = hostWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = hostHeight
	}
	if cfg.Format == 0 {
		cfg.Format = DefaultPixelFormat
	}
	if cfg.Logger == nil {
		cfg.Logger = &hostLogger{w: os.Stdout}
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	h := &Host{
		logger: cfg.Logger,
		clock:  cfg.Clock,
		start:  cfg.Clock.Now(),
		front:  newFrontBuffer(cfg.Width, cfg.Height, cfg.Format),
		t:      newHostTime(cfg.Clock),
		script: newButtonScript(cfg.Script),
	}
	h.fb = NewMemFramebuffer(cfg.Width, cfg.Height, cfg.Format, h.front.update)

	for id := ButtonID(0); id < ButtonCount; id++ {
		pin := newSimPin(fmt.Sprintf("BUTTON_%s", id))
		if err := pin.Configure(PullUp); err != nil {
			h.logger.WriteLineString("hal: " + err.Error())
		}
		h.pins[id] = pin
		h.buttons[id] = NewPushButton(pin, true, h.clock.Now)
	}
	return h
}

func (h *Host) Logger() Logger   { return h.logger }
func (h *Host) Display() Display { return hostDisplay{h: h} }
func (h *Host) Buttons() Buttons { return &h.buttons }
func (h *Host) Time() Time       { return h.t }

// Clock returns the clock driving the tick stream.
func (h *Host) Clock() clockwork.Clock { return h.clock }

// Backlight returns the last backlight level set by the application.
func (h *Host) Backlight() uint8 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.backlight
}

// Presents returns how many frames have been presented.
func (h *Host) Presents() uint64 { return h.front.count() }

// Snapshot returns a copy of the last presented frame.
func (h *Host) Snapshot() *Frame { return h.front.snapshot() }

// SetKeys sets the buttons held on the keyboard, one bit per ButtonID.
func (h *Host) SetKeys(mask uint8) {
	h.mu.Lock()
	h.keys = mask
	h.mu.Unlock()
}

// Step publishes the current millisecond count and updates the button pins
// from the keyboard and the script.
func (h *Host) Step() {
	elapsed := h.clock.Since(h.start)

	h.mu.Lock()
	mask := h.keys | h.script.pressed(elapsed)
	h.mu.Unlock()

	for id := ButtonID(0); id < ButtonCount; id++ {
		h.pins[id].Drive(mask&(1<<id) == 0)
	}
	h.t.step(elapsed)
}

type hostDisplay struct {
	h *Host
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.h.fb }

func (d hostDisplay) SetBacklight(percent uint8) error {
	if percent > 100 {
		percent = 100
	}
	d.h.mu.Lock()
	d.h.backlight = percent
	d.h.mu.Unlock()
	return nil
}

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
