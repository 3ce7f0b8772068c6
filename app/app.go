// Package app wires the clock state, the face renderer and the button pad
// to the periodic-timer kernel.
package app

import (
	"errors"
	"fmt"
	"time"

	"picoclock/clock"
	"picoclock/face"
	"picoclock/gfx"
	"picoclock/hal"
	"picoclock/kernel"
)

const (
	TickPeriod   = 1000 * time.Millisecond
	RenderPeriod = 100 * time.Millisecond
	InputPeriod  = 50 * time.Millisecond

	DefaultBacklight = 75
)

// ErrTaskPanic is returned once a task has panicked and the clock has stopped.
var ErrTaskPanic = errors.New("task panicked")

type Config struct {
	// Start is the initial time in seconds since midnight.
	Start      int
	TwelveHour bool
	// Backlight is the panel brightness in percent.
	Backlight uint8
	Palette   face.Palette
	Observer  Observer
}

// DefaultConfig starts at noon in 24-hour mode with the backlight at 75%.
func DefaultConfig() Config {
	return Config{
		Start:     clock.Noon,
		Backlight: DefaultBacklight,
		Palette:   face.DefaultPalette,
	}
}

// Clock is the running application.
type Clock struct {
	log      hal.Logger
	fb       hal.Framebuffer
	k        *kernel.Kernel
	state    *clock.State
	input    *clock.Input
	renderer *face.Renderer
	canvas   *gfx.Canvas
	obs      Observer
	ticks    <-chan uint64

	tasks       [3]kernel.Handle
	stopped     bool
	panicked    error
	renderFault bool
	line        [64]byte
}

// New prepares the display, then registers the tick, render and input
// tasks. Nothing runs until ticks are fed through Step or Run.
func New(h hal.HAL, cfg Config) (*Clock, error) {
	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return nil, fmt.Errorf("app: no display: %w", hal.ErrNotImplemented)
	}
	fb := disp.Framebuffer()
	if cfg.Observer == nil {
		cfg.Observer = nopObserver{}
	}
	if cfg.Palette == (face.Palette{}) {
		cfg.Palette = face.DefaultPalette
	}

	log := h.Logger()
	if log == nil {
		log = nopLogger{}
	}
	c := &Clock{
		log:   log,
		fb:    fb,
		k:     kernel.New(),
		state: clock.NewState(cfg.Start),
		obs:   cfg.Observer,
	}
	c.state.SetTwelveHour(cfg.TwelveHour)
	if t := h.Time(); t != nil {
		c.ticks = t.Ticks()
	}

	if err := disp.SetBacklight(cfg.Backlight); err != nil {
		c.logf("app: backlight: %v", err)
	}
	bg := cfg.Palette.Background
	fb.ClearRGB(bg.R, bg.G, bg.B)
	if err := fb.Present(); err != nil {
		return nil, fmt.Errorf("app: present: %w", err)
	}

	c.canvas = gfx.New(fb)
	c.renderer = face.NewRenderer(c.canvas, face.NewLayout(fb.Width(), fb.Height()), cfg.Palette)

	var pad clock.Pad
	if b := h.Buttons(); b != nil {
		pad = clock.Pad{
			A: b.Button(hal.ButtonA),
			B: b.Button(hal.ButtonB),
			X: b.Button(hal.ButtonX),
			Y: b.Button(hal.ButtonY),
		}
	}
	c.input = clock.NewInput(pad, c.state)

	// The seconds counter must not lose time to a stall; the renderer and
	// the poller only care about the newest state.
	specs := [...]struct {
		name     string
		period   time.Duration
		task     kernel.Task
		schedule func(string, time.Duration, kernel.Task) (kernel.Handle, error)
	}{
		{"tick", TickPeriod, c.tick, c.k.ScheduleCatchUp},
		{"render", RenderPeriod, c.render, c.k.Schedule},
		{"input", InputPeriod, c.poll, c.k.Schedule},
	}
	for i, s := range specs {
		handle, err := s.schedule(s.name, s.period, c.guard(s.name, s.task))
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		c.tasks[i] = handle
	}

	var buf [8]byte
	mode := "24h"
	if cfg.TwelveHour {
		mode = "12h"
	}
	c.logf("clock: start %s %s", clock.Format(&buf, cfg.Start, false), mode)
	return c, nil
}

// State returns the shared clock state.
func (c *Clock) State() *clock.State { return c.state }

// Kernel returns the scheduler driving the tasks.
func (c *Clock) Kernel() *kernel.Kernel { return c.k }

// Step runs every task due at the newest published tick without blocking.
// Once the clock has been stopped it cancels the tasks and returns
// hal.ErrShutdown, or ErrTaskPanic if a task crashed.
func (c *Clock) Step() error {
	if c.stopped {
		return c.exitErr()
	}
	for {
		select {
		case now, ok := <-c.ticks:
			if !ok {
				return nil
			}
			if err := c.advance(now); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// Run blocks on the tick stream until the clock is stopped.
func (c *Clock) Run() error {
	if c.stopped {
		return c.exitErr()
	}
	if c.ticks == nil {
		return fmt.Errorf("app: no time source: %w", hal.ErrNotImplemented)
	}
	for now := range c.ticks {
		if err := c.advance(now); err != nil {
			return err
		}
	}
	return nil
}

func (c *Clock) advance(now uint64) error {
	c.k.TickTo(now)
	if c.state.Running() {
		return nil
	}
	c.shutdown()
	return c.exitErr()
}

func (c *Clock) shutdown() {
	if c.stopped {
		return
	}
	c.stopped = true
	for _, h := range c.tasks {
		c.k.Cancel(h)
	}
	c.obs.Shutdown()
	c.log.WriteLineString("clock: shutdown")
}

func (c *Clock) exitErr() error {
	if c.panicked != nil {
		return c.panicked
	}
	return hal.ErrShutdown
}

func (c *Clock) tick() bool {
	c.state.Tick()
	c.obs.Tick(c.state.Seconds())
	return true
}

func (c *Clock) render() bool {
	start := time.Now()
	err := c.renderer.Render(c.state.Snapshot())
	c.obs.Frame(time.Since(start), err)
	switch {
	case err != nil && !c.renderFault:
		c.renderFault = true
		c.logf("clock: render: %v", err)
	case err == nil && c.renderFault:
		c.renderFault = false
		c.log.WriteLineString("clock: render recovered")
	}
	return true
}

func (c *Clock) poll() bool {
	act := c.input.Poll()
	if act != 0 {
		c.obs.Input(act)
		line := append(c.line[:0], "clock: input "...)
		c.log.WriteLineBytes(act.AppendTo(line))
	}
	return true
}

func (c *Clock) logf(format string, args ...any) {
	c.log.WriteLineString(fmt.Sprintf(format, args...))
}

type nopLogger struct{}

func (nopLogger) WriteLineString(string) {}
func (nopLogger) WriteLineBytes([]byte)  {}

// Run starts the clock with cfg and blocks until it is stopped
// (TinyGo/native entrypoint).
func Run(h hal.HAL, cfg Config) error {
	c, err := New(h, cfg)
	if err != nil {
		return err
	}
	err = c.Run()
	if errors.Is(err, hal.ErrShutdown) {
		return nil
	}
	return err
}
