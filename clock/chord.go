package clock

// ChordState is the latch state of a two-button chord.
type ChordState uint8

const (
	Released ChordState = iota
	Held
)

func (s ChordState) String() string {
	if s == Held {
		return "held"
	}
	return "released"
}

// Chord fires once when its buttons go down together and stays quiet
// until they are let go.
type Chord struct {
	state ChordState
}

// Update feeds the chord's raw condition for one poll and reports whether
// the chord just fired.
func (c *Chord) Update(down bool) bool {
	switch {
	case down && c.state == Released:
		c.state = Held
		return true
	case !down:
		c.state = Released
	}
	return false
}

func (c *Chord) State() ChordState { return c.state }
