package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"picoclock/clock"
	"picoclock/hal"
)

type lineLogger struct{ lines []string }

func (l *lineLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineLogger) WriteLineBytes(b []byte)  { l.WriteLineString(string(b)) }

func (l *lineLogger) count(substr string) int {
	n := 0
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

type fakeButton struct{ down bool }

func (b *fakeButton) Read() bool { return b.down }
func (b *fakeButton) Raw() bool  { return b.down }

type fakeButtons [hal.ButtonCount]*fakeButton

func (b *fakeButtons) Button(id hal.ButtonID) hal.Button { return b[id] }

type fakeDisplay struct {
	fb        *hal.MemFramebuffer
	backlight uint8
}

func (d *fakeDisplay) Framebuffer() hal.Framebuffer {
	if d.fb == nil {
		return nil
	}
	return d.fb
}
func (d *fakeDisplay) SetBacklight(p uint8) error {
	d.backlight = p
	return nil
}

type fakeTime chan uint64

func (t fakeTime) Ticks() <-chan uint64 { return t }

type fakeHAL struct {
	log      *lineLogger
	disp     *fakeDisplay
	buttons  *fakeButtons
	ticks    fakeTime
	presents int
	failFrom int
}

func newFakeHAL() *fakeHAL {
	h := &fakeHAL{
		log:     &lineLogger{},
		buttons: &fakeButtons{{}, {}, {}, {}},
		ticks:   make(fakeTime, 1),
	}
	h.disp = &fakeDisplay{fb: hal.NewMemFramebuffer(240, 240, hal.DefaultPixelFormat, func(*hal.MemFramebuffer) error {
		h.presents++
		if h.failFrom > 0 && h.presents >= h.failFrom {
			return errors.New("spi timeout")
		}
		return nil
	})}
	return h
}

func (h *fakeHAL) Logger() hal.Logger {
	if h.log == nil {
		return nil
	}
	return h.log
}
func (h *fakeHAL) Display() hal.Display { return h.disp }
func (h *fakeHAL) Buttons() hal.Buttons { return h.buttons }
func (h *fakeHAL) Time() hal.Time       { return h.ticks }

// advance feeds every millisecond in (from, to] through Step.
func advance(t *testing.T, c *Clock, h *fakeHAL, from, to uint64) error {
	t.Helper()
	for ms := from + 1; ms <= to; ms++ {
		h.ticks <- ms
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

type recordingObserver struct {
	ticks, frames, frameErrs, shutdowns int
	inputs                              []clock.Action
	panicOnTick                         bool
}

func (o *recordingObserver) Tick(int) {
	if o.panicOnTick {
		panic("boom")
	}
	o.ticks++
}

func (o *recordingObserver) Frame(_ time.Duration, err error) {
	o.frames++
	if err != nil {
		o.frameErrs++
	}
}

func (o *recordingObserver) Input(act clock.Action) { o.inputs = append(o.inputs, act) }
func (o *recordingObserver) Shutdown()              { o.shutdowns++ }

func TestNewPreparesDisplay(t *testing.T) {
	h := newFakeHAL()
	c, err := New(h, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if h.disp.backlight != DefaultBacklight {
		t.Fatalf("backlight = %d, want %d", h.disp.backlight, DefaultBacklight)
	}
	if h.presents != 1 {
		t.Fatalf("presents = %d, want 1", h.presents)
	}
	if got := c.State().Seconds(); got != clock.Noon {
		t.Fatalf("start = %d, want %d", got, clock.Noon)
	}
	if got := c.Kernel().Pending(); got != 3 {
		t.Fatalf("Pending() = %d, want 3", got)
	}
	if h.log.count("clock: start 12:00:00 24h") != 1 {
		t.Fatalf("missing start line in %q", h.log.lines)
	}
}

func TestNewRequiresDisplay(t *testing.T) {
	h := newFakeHAL()
	h.disp.fb = nil
	if _, err := New(h, DefaultConfig()); !errors.Is(err, hal.ErrNotImplemented) {
		t.Fatalf("New err = %v, want ErrNotImplemented", err)
	}
}

func TestStepRunsTasks(t *testing.T) {
	h := newFakeHAL()
	obs := &recordingObserver{}
	cfg := DefaultConfig()
	cfg.Observer = obs
	c, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := advance(t, c, h, 0, 1000); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if got := c.State().Seconds(); got != clock.Noon+1 {
		t.Fatalf("seconds = %d, want %d", got, clock.Noon+1)
	}
	if obs.ticks != 1 || obs.frames != 10 {
		t.Fatalf("ticks/frames = %d/%d, want 1/10", obs.ticks, obs.frames)
	}
	if h.presents != 11 {
		t.Fatalf("presents = %d, want 11", h.presents)
	}
	if len(obs.inputs) != 0 {
		t.Fatalf("inputs = %v, want none", obs.inputs)
	}
}

func TestStepWithoutTickIsNoop(t *testing.T) {
	h := newFakeHAL()
	c, err := New(h, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.Kernel().Now() != 0 {
		t.Fatalf("Now() = %d, want 0", c.Kernel().Now())
	}
}

func TestButtonAdjustsTime(t *testing.T) {
	h := newFakeHAL()
	obs := &recordingObserver{}
	cfg := DefaultConfig()
	cfg.Observer = obs
	c, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.buttons[hal.ButtonX].down = true
	if err := advance(t, c, h, 0, 50); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if got := c.State().Seconds(); got != clock.Noon+clock.SecondsPerMinute {
		t.Fatalf("seconds = %d, want %d", got, clock.Noon+clock.SecondsPerMinute)
	}
	if len(obs.inputs) != 1 || obs.inputs[0] != clock.ActionMinuteUp {
		t.Fatalf("inputs = %v, want [minute-up]", obs.inputs)
	}
	if h.log.count("clock: input") != 1 {
		t.Fatalf("input log lines = %d, want 1", h.log.count("clock: input"))
	}
}

func TestQuitChordStops(t *testing.T) {
	h := newFakeHAL()
	obs := &recordingObserver{}
	cfg := DefaultConfig()
	cfg.Observer = obs
	c, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, b := range h.buttons {
		b.down = true
	}
	err = advance(t, c, h, 0, 100)
	if !errors.Is(err, hal.ErrShutdown) {
		t.Fatalf("advance err = %v, want ErrShutdown", err)
	}
	if c.State().Running() {
		t.Fatal("state still running")
	}
	if got := c.Kernel().Pending(); got != 0 {
		t.Fatalf("Pending() = %d, want 0", got)
	}
	if obs.shutdowns != 1 {
		t.Fatalf("shutdowns = %d, want 1", obs.shutdowns)
	}
	if got := c.State().Seconds(); got != clock.Noon {
		t.Fatalf("seconds = %d, want unchanged %d", got, clock.Noon)
	}
	if err := c.Step(); !errors.Is(err, hal.ErrShutdown) {
		t.Fatalf("second Step err = %v, want ErrShutdown", err)
	}
	if obs.shutdowns != 1 {
		t.Fatalf("shutdowns after second Step = %d, want 1", obs.shutdowns)
	}
}

func TestRunReturnsNilOnShutdown(t *testing.T) {
	h := newFakeHAL()
	for _, b := range h.buttons {
		b.down = true
	}
	go func() {
		for ms := uint64(1); ms <= 50; ms++ {
			h.ticks <- ms
		}
	}()
	if err := Run(h, DefaultConfig()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRenderErrorLoggedOnce(t *testing.T) {
	h := newFakeHAL()
	h.failFrom = 2
	obs := &recordingObserver{}
	cfg := DefaultConfig()
	cfg.Observer = obs
	c, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := advance(t, c, h, 0, 500); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if obs.frameErrs != 5 {
		t.Fatalf("frame errors = %d, want 5", obs.frameErrs)
	}
	if n := h.log.count("clock: render:"); n != 1 {
		t.Fatalf("render error lines = %d, want 1", n)
	}

	h.failFrom = 0
	if err := advance(t, c, h, 500, 600); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if n := h.log.count("clock: render recovered"); n != 1 {
		t.Fatalf("recovered lines = %d, want 1", n)
	}
}

func TestTaskPanicStopsClock(t *testing.T) {
	h := newFakeHAL()
	cfg := DefaultConfig()
	cfg.Observer = &recordingObserver{panicOnTick: true}
	c, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = advance(t, c, h, 0, 1000)
	if !errors.Is(err, ErrTaskPanic) {
		t.Fatalf("advance err = %v, want ErrTaskPanic", err)
	}
	if !strings.Contains(err.Error(), "tick") {
		t.Fatalf("err = %q, want task name", err)
	}
	if h.log.count("clock panic: task=tick panic=boom") != 1 {
		t.Fatalf("missing panic line in %q", h.log.lines)
	}
	if c.Kernel().Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0", c.Kernel().Pending())
	}
	r, g, b := h.disp.fb.RGBAt(0, 0)
	if r < 0xC0 || g > 0x40 || b > 0x40 {
		t.Fatalf("panic screen background = %d,%d,%d, want red", r, g, b)
	}
}

func TestTickCatchesUpAfterStall(t *testing.T) {
	h := newFakeHAL()
	obs := &recordingObserver{}
	cfg := DefaultConfig()
	cfg.Observer = obs
	c, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.ticks <- 5000
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := c.State().Seconds(); got != clock.Noon+5 {
		t.Fatalf("seconds = %d, want %d", got, clock.Noon+5)
	}
	if obs.ticks != 5 || obs.frames != 1 {
		t.Fatalf("ticks/frames = %d/%d, want 5/1", obs.ticks, obs.frames)
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	h := newFakeHAL()
	h.log = nil
	c, err := New(h, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.buttons[hal.ButtonX].down = true
	if err := advance(t, c, h, 0, 50); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if got := c.State().Seconds(); got != clock.Noon+clock.SecondsPerMinute {
		t.Fatalf("seconds = %d, want %d", got, clock.Noon+clock.SecondsPerMinute)
	}
	for _, b := range h.buttons {
		b.down = true
	}
	if err := advance(t, c, h, 50, 150); !errors.Is(err, hal.ErrShutdown) {
		t.Fatalf("advance err = %v, want ErrShutdown", err)
	}
}

type countingLogger struct{ lines, bytes int }

func (l *countingLogger) WriteLineString(s string) {
	l.lines++
	l.bytes += len(s)
}

func (l *countingLogger) WriteLineBytes(b []byte) {
	l.lines++
	l.bytes += len(b)
}

func TestPollDoesNotAllocate(t *testing.T) {
	h := newFakeHAL()
	c, err := New(h, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log := &countingLogger{}
	c.log = log
	h.buttons[hal.ButtonX].down = true

	allocs := testing.AllocsPerRun(100, func() {
		c.poll()
	})
	if allocs != 0 {
		t.Fatalf("poll allocs = %v, want 0", allocs)
	}
	if log.lines == 0 {
		t.Fatal("held button logged nothing")
	}
	if want := len("clock: input minute+"); log.bytes != log.lines*want {
		t.Fatalf("logged %d bytes over %d lines, want %d per line", log.bytes, log.lines, want)
	}
}
