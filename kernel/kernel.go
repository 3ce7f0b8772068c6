// Package kernel is a cooperative periodic-timer scheduler.
//
// Timers live in a fixed table. The owner feeds the current millisecond
// count to TickTo from a single loop; every due timer runs to completion
// before the next one is considered.
package kernel

import (
	"errors"
	"fmt"
	"time"
)

const (
	maxTimers = 8

	// A timer more than maxCatchUp periods late skips ahead instead of
	// firing once per missed period, unless it was scheduled with
	// ScheduleCatchUp.
	maxCatchUp = 4
)

var (
	ErrNoSlots   = errors.New("timer table full")
	ErrBadPeriod = errors.New("period must be at least 1ms")
)

// Task is a periodic callback. Returning false cancels the timer.
type Task func() bool

// Handle identifies a scheduled timer. The zero Handle is never issued.
type Handle uint32

type timer struct {
	id     Handle
	name   string
	period uint64
	next   uint64
	task   Task
	// every disables the maxCatchUp skip.
	every bool
}

// Kernel owns the timer table and the current time.
type Kernel struct {
	timers [maxTimers]timer
	lastID Handle
	now    uint64
}

// New creates a kernel instance.
func New() *Kernel {
	return &Kernel{}
}

// Schedule registers task to run every period, first one period from the
// current time.
func (k *Kernel) Schedule(name string, period time.Duration, task Task) (Handle, error) {
	return k.schedule(name, period, task, false)
}

// ScheduleCatchUp is Schedule for tasks that count periods, such as a
// seconds counter: after a stall the task runs once for every missed
// period, however late it is.
func (k *Kernel) ScheduleCatchUp(name string, period time.Duration, task Task) (Handle, error) {
	return k.schedule(name, period, task, true)
}

func (k *Kernel) schedule(name string, period time.Duration, task Task, every bool) (Handle, error) {
	ms := uint64(period / time.Millisecond)
	if period <= 0 || ms == 0 {
		return 0, fmt.Errorf("schedule %s: %w", name, ErrBadPeriod)
	}
	if task == nil {
		return 0, fmt.Errorf("schedule %s: nil task", name)
	}
	for i := range k.timers {
		t := &k.timers[i]
		if t.task != nil {
			continue
		}
		k.lastID++
		*t = timer{
			id:     k.lastID,
			name:   name,
			period: ms,
			next:   k.now + ms,
			task:   task,
			every:  every,
		}
		return t.id, nil
	}
	return 0, fmt.Errorf("schedule %s: %w", name, ErrNoSlots)
}

// Cancel removes the timer. It reports whether a live timer was removed;
// cancelling twice is harmless.
func (k *Kernel) Cancel(h Handle) bool {
	if h == 0 {
		return false
	}
	for i := range k.timers {
		if k.timers[i].task != nil && k.timers[i].id == h {
			k.timers[i] = timer{}
			return true
		}
	}
	return false
}

// TickTo advances the clock to now (milliseconds) and runs every due
// timer in table order. It returns the number of task runs. Time never
// moves backwards; an older now is ignored.
func (k *Kernel) TickTo(now uint64) int {
	if now < k.now {
		return 0
	}
	k.now = now

	runs := 0
	for i := range k.timers {
		t := &k.timers[i]
		if t.task == nil || now < t.next {
			continue
		}
		if !t.every && now-t.next >= t.period*maxCatchUp {
			t.next = now
		}
		id := t.id
		for t.task != nil && t.id == id && now >= t.next {
			t.next += t.period
			runs++
			if !t.task() && t.id == id {
				*t = timer{}
			}
		}
	}
	return runs
}

// Now returns the last time passed to TickTo.
func (k *Kernel) Now() uint64 { return k.now }

// Pending returns the number of live timers.
func (k *Kernel) Pending() int {
	n := 0
	for i := range k.timers {
		if k.timers[i].task != nil {
			n++
		}
	}
	return n
}

// Name returns the name a live timer was scheduled with.
func (k *Kernel) Name(h Handle) (string, bool) {
	for i := range k.timers {
		if k.timers[i].task != nil && k.timers[i].id == h {
			return k.timers[i].name, true
		}
	}
	return "", false
}
