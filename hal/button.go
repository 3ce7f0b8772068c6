package hal

import "time"

const (
	// DefaultRepeatTime is the auto-repeat interval while a button is held.
	DefaultRepeatTime = 200 * time.Millisecond
	// DefaultHoldTime is how long a button must be held before repeats speed up.
	DefaultHoldTime = 1000 * time.Millisecond
)

// PushButton turns a GPIO pin into a Button with press-edge and
// auto-repeat reporting.
//
// Read returns true once on the press edge, then every RepeatTime while the
// button stays down, three times as often once it has been held longer than
// HoldTime. A zero RepeatTime disables repeats.
type PushButton struct {
	pin       InputPin
	activeLow bool
	now       func() time.Time

	RepeatTime time.Duration
	HoldTime   time.Duration

	lastState   bool
	pressedTime time.Time
	lastTime    time.Time
}

// NewPushButton wraps pin. now may be nil to use the wall clock.
func NewPushButton(pin InputPin, activeLow bool, now func() time.Time) *PushButton {
	if now == nil {
		now = time.Now
	}
	return &PushButton{
		pin:        pin,
		activeLow:  activeLow,
		now:        now,
		RepeatTime: DefaultRepeatTime,
		HoldTime:   DefaultHoldTime,
	}
}

// Raw reports whether the button is down right now. Pin errors read as released.
func (b *PushButton) Raw() bool {
	if b == nil || b.pin == nil {
		return false
	}
	level, err := b.pin.Read()
	if err != nil {
		return false
	}
	return level != b.activeLow
}

func (b *PushButton) Read() bool {
	if b == nil {
		return false
	}
	now := b.now()
	state := b.Raw()
	changed := state != b.lastState
	b.lastState = state

	if changed && state {
		b.pressedTime = now
		b.lastTime = now
		return true
	}

	if b.RepeatTime <= 0 || !state {
		return false
	}

	rate := b.RepeatTime
	if b.HoldTime > 0 && now.Sub(b.pressedTime) > b.HoldTime {
		rate /= 3
	}
	if now.Sub(b.lastTime) > rate {
		b.lastTime = now
		return true
	}
	return false
}

type buttonSet [ButtonCount]Button

func (s *buttonSet) Button(id ButtonID) Button {
	if int(id) >= len(s) {
		return nil
	}
	return s[id]
}
