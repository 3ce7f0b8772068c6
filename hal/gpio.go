package hal

import (
	"fmt"
	"sync"
)

// Pull selects an input pin's pull resistor.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

func (p Pull) String() string {
	switch p {
	case PullNone:
		return "none"
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	default:
		return "?"
	}
}

// InputPin is a digital input, such as the line behind a push button.
type InputPin interface {
	Name() string
	Configure(pull Pull) error
	Read() (level bool, err error)
}

// simPin is a button line on the host. The panel buttons short the line to
// ground, so the pin only offers a pull-up and idles high.
type simPin struct {
	mu         sync.Mutex
	name       string
	configured bool
	level      bool
}

func newSimPin(name string) *simPin {
	return &simPin{name: name, level: true}
}

func (p *simPin) Name() string { return p.name }

func (p *simPin) Configure(pull Pull) error {
	if pull != PullUp && pull != PullNone {
		return fmt.Errorf("gpio: pin %s: pull-%s unsupported", p.name, pull)
	}
	p.mu.Lock()
	p.configured = true
	p.mu.Unlock()
	return nil
}

func (p *simPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.configured {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	return p.level, nil
}

// Drive sets the level the pin reads back, standing in for the button.
func (p *simPin) Drive(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}
