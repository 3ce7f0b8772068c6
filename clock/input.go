package clock

// Button is a front-panel button as seen by the input task.
type Button interface {
	// Read reports a press edge and auto-repeats while held.
	Read() bool
	// Raw reports the instantaneous pressed state.
	Raw() bool
}

// Pad is the set of four buttons polled by Input.
type Pad struct {
	A, B, X, Y Button
}

// Action records what one poll did.
type Action uint8

const (
	ActionMinuteUp Action = 1 << iota
	ActionMinuteDown
	ActionHourUp
	ActionHourDown
	ActionSnap
	ActionToggle
	ActionStop
)

var actionNames = [...]string{"minute+", "minute-", "hour+", "hour-", "snap", "toggle", "stop"}

func (a Action) String() string {
	var buf [64]byte
	return string(a.AppendTo(buf[:0]))
}

// AppendTo appends the comma-separated action names to dst. The longest
// result is 44 bytes.
func (a Action) AppendTo(dst []byte) []byte {
	if a == 0 {
		return append(dst, "none"...)
	}
	start := len(dst)
	for i, name := range actionNames {
		if a&(1<<i) == 0 {
			continue
		}
		if len(dst) > start {
			dst = append(dst, ',')
		}
		dst = append(dst, name...)
	}
	return dst
}

// Input turns button polls into clock adjustments.
//
// Y/X step the minute down/up and B/A step the hour down/up, repeating
// while held; pressing both buttons of a pair cancels the step. X+Y snaps
// to the start of the minute and A+B toggles 12/24-hour display, once per
// press. All four together stop the clock.
type Input struct {
	pad   Pad
	state *State
	right Chord
	left  Chord
}

func NewInput(pad Pad, state *State) *Input {
	return &Input{pad: pad, state: state}
}

// Poll reads the buttons once and applies the result to the state.
func (in *Input) Poll() Action {
	x := read(in.pad.X)
	y := read(in.pad.Y)
	a := read(in.pad.A)
	b := read(in.pad.B)

	var act Action
	if y && !x {
		in.state.Add(-SecondsPerMinute)
		act |= ActionMinuteDown
	}
	if a && !b {
		in.state.Add(SecondsPerHour)
		act |= ActionHourUp
	}
	if b && !a {
		in.state.Add(-SecondsPerHour)
		act |= ActionHourDown
	}
	if x && !y {
		in.state.Add(SecondsPerMinute)
		act |= ActionMinuteUp
	}

	left := raw(in.pad.A) && raw(in.pad.B)
	right := raw(in.pad.X) && raw(in.pad.Y)

	if left && right {
		in.state.Stop()
		act |= ActionStop
	}
	if in.right.Update(right) {
		in.state.SnapToMinute()
		act |= ActionSnap
	}
	if in.left.Update(left) {
		in.state.ToggleTwelveHour()
		act |= ActionToggle
	}
	return act
}

// Chords returns the latch states of the left (A+B) and right (X+Y) chords.
func (in *Input) Chords() (left, right ChordState) {
	return in.left.State(), in.right.State()
}

func read(b Button) bool { return b != nil && b.Read() }
func raw(b Button) bool  { return b != nil && b.Raw() }
