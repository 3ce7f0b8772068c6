//go:build !tinygo

package hal

import "time"

// ScriptStep holds Buttons down from At until At+Hold.
type ScriptStep struct {
	At      time.Duration
	Hold    time.Duration
	Buttons []ButtonID
}

type buttonScript struct {
	steps []scriptMask
}

type scriptMask struct {
	from, until time.Duration
	mask        uint8
}

func newButtonScript(steps []ScriptStep) buttonScript {
	var s buttonScript
	for _, st := range steps {
		var mask uint8
		for _, id := range st.Buttons {
			if id < ButtonCount {
				mask |= 1 << id
			}
		}
		if mask == 0 || st.Hold <= 0 {
			continue
		}
		s.steps = append(s.steps, scriptMask{from: st.At, until: st.At + st.Hold, mask: mask})
	}
	return s
}

// pressed returns the buttons the script holds at elapsed.
func (s buttonScript) pressed(elapsed time.Duration) uint8 {
	var mask uint8
	for _, st := range s.steps {
		if elapsed >= st.from && elapsed < st.until {
			mask |= st.mask
		}
	}
	return mask
}
