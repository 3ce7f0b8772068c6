package clock

import "sync"

// Snapshot is a consistent copy of State.
type Snapshot struct {
	Seconds    int
	TwelveHour bool
	Running    bool
}

// State is the clock value shared by the tick, render and input tasks.
// Each method holds the lock only for the duration of its mutation.
type State struct {
	mu         sync.Mutex
	seconds    int
	twelveHour bool
	running    bool
}

// NewState returns a running clock showing seconds (wrapped into a day).
func NewState(seconds int) *State {
	return &State{seconds: Wrap(seconds), running: true}
}

// Tick advances the clock by one second.
func (s *State) Tick() {
	s.Add(1)
}

// Add moves the clock by delta seconds, wrapping at midnight in either direction.
func (s *State) Add(delta int) {
	s.mu.Lock()
	s.seconds = Wrap(s.seconds + delta)
	s.mu.Unlock()
}

// Set replaces the clock value.
func (s *State) Set(seconds int) {
	s.mu.Lock()
	s.seconds = Wrap(seconds)
	s.mu.Unlock()
}

// SnapToMinute drops the seconds of the current minute.
func (s *State) SnapToMinute() {
	s.mu.Lock()
	s.seconds -= s.seconds % SecondsPerMinute
	s.mu.Unlock()
}

// ToggleTwelveHour flips between 12- and 24-hour display.
func (s *State) ToggleTwelveHour() {
	s.mu.Lock()
	s.twelveHour = !s.twelveHour
	s.mu.Unlock()
}

// SetTwelveHour selects 12- or 24-hour display.
func (s *State) SetTwelveHour(v bool) {
	s.mu.Lock()
	s.twelveHour = v
	s.mu.Unlock()
}

// Stop clears the running flag. It cannot be set again.
func (s *State) Stop() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

func (s *State) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *State) Seconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seconds
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Seconds: s.seconds, TwelveHour: s.twelveHour, Running: s.running}
}
