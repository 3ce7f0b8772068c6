//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/pixel"
	"tinygo.org/x/drivers/st7789"
)

const (
	explorerWidth  = 240
	explorerHeight = 240

	// Rows converted and sent per SPI transfer when presenting.
	presentRows = 16
)

type explorerHAL struct {
	logger  *uartLogger
	display *explorerDisplay
	buttons buttonSet
	t       *tinyGoTime
}

// New returns the Pimoroni Pico Explorer HAL.
//
// LCD: ST7789 240x240 on SPI0 (SCK GP18, SDO GP19), CS GP17, DC GP16,
// backlight PWM on GP20. Buttons A/B/X/Y on GP12-GP15, active low.
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	h := &explorerHAL{
		logger:  logger,
		display: newExplorerDisplay(logger),
		t:       newTinyGoTime(5 * time.Millisecond),
	}

	pins := [ButtonCount]machine.Pin{
		ButtonA: machine.GP12,
		ButtonB: machine.GP13,
		ButtonX: machine.GP14,
		ButtonY: machine.GP15,
	}
	for id, p := range pins {
		pin := newMachinePin("BUTTON_"+ButtonID(id).String(), p)
		if err := pin.Configure(PullUp); err != nil {
			logger.WriteLineString("hal: button " + ButtonID(id).String() + ": " + err.Error())
		}
		h.buttons[id] = NewPushButton(pin, true, nil)
	}
	return h
}

func (h *explorerHAL) Logger() Logger   { return h.logger }
func (h *explorerHAL) Display() Display { return h.display }
func (h *explorerHAL) Buttons() Buttons { return &h.buttons }
func (h *explorerHAL) Time() Time       { return h.t }

// backlightPWM is the subset of a TinyGo PWM group used for the backlight.
type backlightPWM interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (channel uint8, err error)
	Top() uint32
	Set(channel uint8, value uint32)
}

type explorerDisplay struct {
	lcd   st7789.Device
	fb    *MemFramebuffer
	chunk pixel.Image[pixel.RGB565BE]

	pwm   backlightPWM
	blCh  uint8
	blErr error
}

func newExplorerDisplay(logger Logger) *explorerDisplay {
	machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 62_500_000,
		SCK:       machine.GP18,
		SDO:       machine.GP19,
	})

	d := &explorerDisplay{
		lcd:   st7789.New(machine.SPI0, machine.NoPin, machine.GP16, machine.GP17, machine.NoPin),
		chunk: pixel.NewImage[pixel.RGB565BE](explorerWidth, presentRows),
		pwm:   machine.PWM2,
	}
	d.lcd.Configure(st7789.Config{
		Width:     explorerWidth,
		Height:    explorerHeight,
		Rotation:  st7789.NO_ROTATION,
		FrameRate: st7789.FRAMERATE_60,
	})
	d.fb = NewMemFramebuffer(explorerWidth, explorerHeight, DefaultPixelFormat, d.present)

	if err := d.pwm.Configure(machine.PWMConfig{Period: uint64(time.Second / 1000)}); err != nil {
		d.blErr = err
	} else if ch, err := d.pwm.Channel(machine.GP20); err != nil {
		d.blErr = err
	} else {
		d.blCh = ch
	}
	if d.blErr != nil {
		logger.WriteLineString("hal: backlight: " + d.blErr.Error())
	}
	return d
}

func (d *explorerDisplay) Framebuffer() Framebuffer { return d.fb }

func (d *explorerDisplay) SetBacklight(percent uint8) error {
	if d.blErr != nil {
		return d.blErr
	}
	if percent > 100 {
		percent = 100
	}
	d.pwm.Set(d.blCh, d.pwm.Top()*uint32(percent)/100)
	return nil
}

// present converts the framebuffer to the panel's RGB565 big-endian format
// a band of rows at a time and sends each band over SPI.
func (d *explorerDisplay) present(fb *MemFramebuffer) error {
	format := fb.Format()
	bpp := format.BytesPerPixel()
	buf := fb.Buffer()
	for y0 := 0; y0 < fb.height; y0 += presentRows {
		rows := presentRows
		if y0+rows > fb.height {
			rows = fb.height - y0
		}
		band := d.chunk.LimitHeight(rows)
		for y := 0; y < rows; y++ {
			off := (y0 + y) * fb.stride
			for x := 0; x < fb.width; x++ {
				r, g, b := format.Decode(format.Get(buf, off+x*bpp))
				band.Set(x, y, pixel.NewRGB565BE(r, g, b))
			}
		}
		if err := d.lcd.DrawBitmap(0, int16(y0), band); err != nil {
			return err
		}
	}
	return nil
}
