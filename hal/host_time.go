//go:build !tinygo

package hal

import (
	"time"

	"github.com/jonboulle/clockwork"
)

type hostTime struct {
	clock clockwork.Clock
	ch    chan uint64
	last  uint64
}

func newHostTime(clock clockwork.Clock) *hostTime {
	return &hostTime{clock: clock, ch: make(chan uint64, 1)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step publishes the elapsed milliseconds if they moved. An unread value is
// replaced so the consumer always sees the newest count.
func (t *hostTime) step(elapsed time.Duration) {
	ms := uint64(elapsed / time.Millisecond)
	if ms == t.last {
		return
	}
	t.last = ms
	select {
	case <-t.ch:
	default:
	}
	select {
	case t.ch <- ms:
	default:
	}
}
