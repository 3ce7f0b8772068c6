//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

type tinyGoTime struct {
	ch chan uint64
}

// newTinyGoTime publishes the milliseconds since boot every period. A
// slow consumer only ever sees the newest count.
func newTinyGoTime(period time.Duration) *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 1)}
	start := time.Now()
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for range ticker.C {
			ms := uint64(time.Since(start) / time.Millisecond)
			select {
			case <-t.ch:
			default:
			}
			select {
			case t.ch <- ms:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// machinePin adapts a machine.Pin to InputPin.
type machinePin struct {
	name string
	pin  machine.Pin
}

func newMachinePin(name string, pin machine.Pin) *machinePin {
	return &machinePin{name: name, pin: pin}
}

func (p *machinePin) Name() string { return p.name }

func (p *machinePin) Configure(pull Pull) error {
	mode := machine.PinInput
	switch pull {
	case PullNone:
	case PullUp:
		mode = machine.PinInputPullup
	case PullDown:
		mode = machine.PinInputPulldown
	default:
		return ErrNotImplemented
	}
	p.pin.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.pin.Get(), nil }
