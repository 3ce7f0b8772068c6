// Package face draws the analog clock face with a digital readout.
package face

import (
	"image/color"
	"math"
)

// Layout holds the face geometry, derived once from the display size.
type Layout struct {
	Width  int
	Height int
	CX, CY int

	Radius     int
	RingWidth  int
	TickLength int

	HourHand   int
	MinuteHand int
	SecondHand int

	TextScale     int
	TextSpacing   int
	TextBoxHeight int
}

const (
	ringMargin    = 10
	ringWidth     = 5
	tickLength    = 30
	textScale     = 4
	textSpacing   = 1
	textBoxHeight = 32
)

// NewLayout sizes the face to fill a width x height display, leaving room
// at the bottom for the time readout.
func NewLayout(width, height int) Layout {
	cx, cy := width/2, height/2
	r := min(cx, cy) - ringMargin
	return Layout{
		Width:         width,
		Height:        height,
		CX:            cx,
		CY:            cy,
		Radius:        r,
		RingWidth:     ringWidth,
		TickLength:    tickLength,
		HourHand:      r / 2,
		MinuteHand:    r - ringWidth,
		SecondHand:    r - ringWidth,
		TextScale:     textScale,
		TextSpacing:   textSpacing,
		TextBoxHeight: textBoxHeight,
	}
}

// Endpoint returns the point length pixels from the center at angle
// degrees, where 90 points straight up and angles grow clockwise.
func (l Layout) Endpoint(angle, length int) (x, y int) {
	rad := float64(angle) * math.Pi / 180
	x = l.CX - int(math.Round(math.Cos(rad)*float64(length)))
	y = l.CY - int(math.Round(math.Sin(rad)*float64(length)))
	return x, y
}

// HourAngle is the hour hand angle for a 12- or 24-hour hour.
func HourAngle(hour int) int { return (90 + (hour%12)*30) % 360 }

// MinuteAngle is the minute hand angle.
func MinuteAngle(minute int) int { return (90 + minute*6) % 360 }

// SecondAngle is the second hand angle. seconds may be the whole time of
// day; a full minute is 360 degrees so only seconds mod 60 matters.
func SecondAngle(seconds int) int { return (90 + seconds*6) % 360 }

// Palette names the face colors.
type Palette struct {
	Foreground color.RGBA
	Background color.RGBA
	Accent     color.RGBA
}

// DefaultPalette is white on black with a red second hand.
var DefaultPalette = Palette{
	Foreground: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	Background: color.RGBA{A: 0xFF},
	Accent:     color.RGBA{R: 0xFF, A: 0xFF},
}
