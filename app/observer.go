package app

import (
	"time"

	"picoclock/clock"
)

// Observer is told about task activity. Calls come from the goroutine
// driving the clock.
type Observer interface {
	Tick(seconds int)
	Frame(d time.Duration, err error)
	Input(act clock.Action)
	Shutdown()
}

type nopObserver struct{}

func (nopObserver) Tick(int)                   {}
func (nopObserver) Frame(time.Duration, error) {}
func (nopObserver) Input(clock.Action)         {}
func (nopObserver) Shutdown()                  {}
