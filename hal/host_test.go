//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

type lineLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *lineLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *lineLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func newTestHost(script ...ScriptStep) (*Host, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	h := NewHost(HostConfig{Clock: clock, Logger: &lineLogger{}, Script: script})
	return h, clock
}

func TestHostDefaults(t *testing.T) {
	h, _ := newTestHost()
	fb := h.Display().Framebuffer()
	if fb.Width() != 240 || fb.Height() != 240 {
		t.Fatalf("framebuffer = %dx%d, want 240x240", fb.Width(), fb.Height())
	}
	if fb.Format() != DefaultPixelFormat {
		t.Fatalf("Format() = %s, want %s", fb.Format(), DefaultPixelFormat)
	}
	for id := ButtonID(0); id < ButtonCount; id++ {
		if b := h.Buttons().Button(id); b == nil || b.Raw() {
			t.Fatalf("button %s: want released button", id)
		}
	}
	if b := h.Buttons().Button(ButtonCount); b != nil {
		t.Fatal("Button(ButtonCount) != nil")
	}
}

func TestHostTimePublishesLatest(t *testing.T) {
	h, clock := newTestHost()

	clock.Advance(5 * time.Millisecond)
	h.Step()
	clock.Advance(7 * time.Millisecond)
	h.Step()

	select {
	case ms := <-h.Time().Ticks():
		if ms != 12 {
			t.Fatalf("tick = %d, want 12", ms)
		}
	default:
		t.Fatal("expected a tick")
	}

	// No movement, no tick.
	h.Step()
	select {
	case ms := <-h.Time().Ticks():
		t.Fatalf("unexpected tick %d", ms)
	default:
	}
}

func TestHostKeysDriveButtons(t *testing.T) {
	h, _ := newTestHost()
	h.SetKeys(1<<ButtonA | 1<<ButtonY)
	h.Step()

	want := map[ButtonID]bool{ButtonA: true, ButtonB: false, ButtonX: false, ButtonY: true}
	for id, pressed := range want {
		if got := h.Buttons().Button(id).Raw(); got != pressed {
			t.Fatalf("button %s Raw() = %v, want %v", id, got, pressed)
		}
		level, err := h.pins[id].Read()
		if err != nil {
			t.Fatalf("pin %s Read: %v", h.pins[id].Name(), err)
		}
		if level == pressed {
			t.Fatalf("pin %s level = %v, want %v (active low)", h.pins[id].Name(), level, !pressed)
		}
	}

	h.SetKeys(0)
	h.Step()
	if h.Buttons().Button(ButtonA).Raw() {
		t.Fatal("button A still pressed after keys released")
	}
}

func TestHostScript(t *testing.T) {
	h, clock := newTestHost(ScriptStep{At: 100 * time.Millisecond, Hold: 50 * time.Millisecond, Buttons: []ButtonID{ButtonX}})
	x := h.Buttons().Button(ButtonX)

	clock.Advance(99 * time.Millisecond)
	h.Step()
	if x.Raw() {
		t.Fatal("X pressed before script step")
	}
	clock.Advance(1 * time.Millisecond)
	h.Step()
	if !x.Raw() {
		t.Fatal("X not pressed at script step")
	}
	clock.Advance(50 * time.Millisecond)
	h.Step()
	if x.Raw() {
		t.Fatal("X still pressed after hold")
	}
}

func TestHostPresentAndBacklight(t *testing.T) {
	h, _ := newTestHost()
	d := h.Display()
	if err := d.SetBacklight(150); err != nil {
		t.Fatalf("SetBacklight: %v", err)
	}
	if got := h.Backlight(); got != 100 {
		t.Fatalf("Backlight() = %d, want 100 (clamped)", got)
	}

	fb := d.Framebuffer()
	fb.ClearRGB(0xFF, 0xFF, 0xFF)
	if h.Presents() != 0 {
		t.Fatal("frame visible before Present")
	}
	if err := fb.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	frame := h.Snapshot()
	if frame.Seq != 1 {
		t.Fatalf("Seq = %d, want 1", frame.Seq)
	}
	img := frame.RGBA()
	if c := img.RGBAAt(10, 10); c.R != 0xFF || c.G != 0xFF || c.B != 0xFF || c.A != 0xFF {
		t.Fatalf("pixel = %v, want white", c)
	}

	// The snapshot is a copy.
	fb.ClearRGB(0, 0, 0)
	if c := frame.RGBA().RGBAAt(10, 10); c.R != 0xFF {
		t.Fatalf("snapshot changed after draw: %v", c)
	}
}

func TestFrameBacklightDims(t *testing.T) {
	h, _ := newTestHost()
	fb := h.Display().Framebuffer()
	fb.ClearRGB(0xFF, 0xFF, 0xFF)
	if err := fb.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	dst := make([]byte, 240*240*4)
	h.front.snapshotRGBA(dst, 50)
	if dst[0] != 127 || dst[3] != 0xFF {
		t.Fatalf("dimmed pixel = %d alpha %d, want 127 alpha 255", dst[0], dst[3])
	}
}

func TestRunHeadlessTicks(t *testing.T) {
	h := NewHost(HostConfig{Logger: &lineLogger{}})
	var steps int
	err := RunHeadless(context.Background(), h, func() error {
		steps++
		return nil
	}, HeadlessConfig{Hz: 1000, Ticks: 5})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 5 {
		t.Fatalf("steps = %d, want 5", steps)
	}
}

func TestRunHeadlessShutdown(t *testing.T) {
	h := NewHost(HostConfig{Logger: &lineLogger{}})
	err := RunHeadless(context.Background(), h, func() error {
		return ErrShutdown
	}, HeadlessConfig{Hz: 1000})
	if err != nil {
		t.Fatalf("RunHeadless: %v, want nil on shutdown", err)
	}
}

func TestRunHeadlessStepError(t *testing.T) {
	h := NewHost(HostConfig{Logger: &lineLogger{}})
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), h, func() error {
		return boom
	}, HeadlessConfig{Hz: 1000})
	if !errors.Is(err, boom) {
		t.Fatalf("RunHeadless: %v, want %v", err, boom)
	}
}

func TestRunHeadlessCanceled(t *testing.T) {
	h := NewHost(HostConfig{Logger: &lineLogger{}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunHeadless(ctx, h, nil, HeadlessConfig{Hz: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("RunHeadless: %v, want context.Canceled", err)
	}
}
