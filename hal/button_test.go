package hal

import (
	"testing"
	"time"
)

func newTestButton() (*PushButton, *simPin, *time.Time) {
	now := time.Unix(0, 0)
	pin := newSimPin("BTN")
	if err := pin.Configure(PullUp); err != nil {
		panic(err)
	}
	b := NewPushButton(pin, true, func() time.Time { return now })
	return b, pin, &now
}

func TestPushButtonRawActiveLow(t *testing.T) {
	b, pin, _ := newTestButton()
	if b.Raw() {
		t.Fatal("Raw() = true with pin idle high, want false")
	}
	pin.Drive(false)
	if !b.Raw() {
		t.Fatal("Raw() = false with pin pulled low, want true")
	}
}

func TestPushButtonReadEdgeOnce(t *testing.T) {
	b, pin, now := newTestButton()
	if b.Read() {
		t.Fatal("Read() = true while released")
	}

	pin.Drive(false)
	if !b.Read() {
		t.Fatal("Read() = false on press edge, want true")
	}
	*now = now.Add(50 * time.Millisecond)
	if b.Read() {
		t.Fatal("Read() = true 50ms after press, want false")
	}
}

func TestPushButtonRepeat(t *testing.T) {
	b, pin, now := newTestButton()
	pin.Drive(false)
	b.Read()

	// Repeats fire once the interval is strictly exceeded.
	*now = now.Add(200 * time.Millisecond)
	if b.Read() {
		t.Fatal("Read() = true at exactly RepeatTime, want false")
	}
	*now = now.Add(50 * time.Millisecond)
	if !b.Read() {
		t.Fatal("Read() = false after RepeatTime, want true")
	}
	*now = now.Add(50 * time.Millisecond)
	if b.Read() {
		t.Fatal("Read() = true 50ms after repeat, want false")
	}
}

func TestPushButtonHoldSpeedsUp(t *testing.T) {
	b, pin, now := newTestButton()
	pin.Drive(false)
	b.Read()

	var fired int
	for i := 0; i < 20; i++ {
		*now = now.Add(50 * time.Millisecond)
		if b.Read() {
			fired++
		}
	}
	// Polling every 50ms with a 200ms interval fires every fifth poll.
	if fired != 4 {
		t.Fatalf("repeats in first second = %d, want 4", fired)
	}

	// Past HoldTime the interval drops to 66ms: every other poll.
	fired = 0
	for i := 0; i < 20; i++ {
		*now = now.Add(50 * time.Millisecond)
		if b.Read() {
			fired++
		}
	}
	if fired != 10 {
		t.Fatalf("repeats in second second = %d, want 10", fired)
	}
}

func TestPushButtonNoRepeat(t *testing.T) {
	b, pin, now := newTestButton()
	b.RepeatTime = 0
	pin.Drive(false)
	if !b.Read() {
		t.Fatal("Read() = false on press edge")
	}
	for i := 0; i < 40; i++ {
		*now = now.Add(50 * time.Millisecond)
		if b.Read() {
			t.Fatalf("Read() = true at poll %d with repeats disabled", i)
		}
	}
}

func TestPushButtonReleaseAndPressAgain(t *testing.T) {
	b, pin, now := newTestButton()
	pin.Drive(false)
	b.Read()
	*now = now.Add(50 * time.Millisecond)
	pin.Drive(true)
	if b.Read() {
		t.Fatal("Read() = true on release")
	}
	*now = now.Add(50 * time.Millisecond)
	pin.Drive(false)
	if !b.Read() {
		t.Fatal("Read() = false on second press edge")
	}
}

func TestPushButtonNilPin(t *testing.T) {
	b := NewPushButton(nil, true, nil)
	if b.Raw() || b.Read() {
		t.Fatal("button without pin reports pressed")
	}
}
