package face

import (
	"image/color"

	"picoclock/clock"
	"picoclock/gfx"
)

// Renderer draws complete frames onto a canvas.
type Renderer struct {
	c       *gfx.Canvas
	layout  Layout
	palette Palette
	text    [8]byte
}

func NewRenderer(c *gfx.Canvas, layout Layout, palette Palette) *Renderer {
	return &Renderer{c: c, layout: layout, palette: palette}
}

func (r *Renderer) Layout() Layout { return r.layout }

// Render draws s and presents the frame.
func (r *Renderer) Render(s clock.Snapshot) error {
	l := r.layout
	p := r.palette
	c := r.c

	c.Clear(p.Background)

	// Ring.
	c.FilledCircle(l.CX, l.CY, l.Radius, p.Foreground)
	c.FilledCircle(l.CX, l.CY, l.Radius-l.RingWidth, p.Background)

	// Hour marks: full spokes, then the middle is erased.
	for angle := 0; angle < 360; angle += 30 {
		r.spoke(angle, l.Radius, p.Foreground)
	}
	c.FilledCircle(l.CX, l.CY, l.Radius-l.TickLength, p.Background)

	secs := s.Seconds
	hour := clock.DisplayHour(clock.Hour(secs), s.TwelveHour)
	r.spoke(HourAngle(hour), l.HourHand, p.Foreground)
	r.spoke(MinuteAngle(clock.Minute(secs)), l.MinuteHand, p.Foreground)
	r.spoke(SecondAngle(secs), l.SecondHand, p.Accent)

	text := clock.Format(&r.text, secs, s.TwelveHour)
	w := c.MeasureText(text, l.TextScale, l.TextSpacing)
	x := l.CX - w/2
	y := l.Height - l.TextBoxHeight
	c.FillRectangle(int16(x), int16(y), int16(w), int16(l.TextBoxHeight), p.Background)
	c.Text(text, x, y, w, l.TextScale, l.TextSpacing, p.Foreground)

	return c.Display()
}

// spoke draws a line from the center out to length at angle.
func (r *Renderer) spoke(angle, length int, col color.RGBA) {
	x, y := r.layout.Endpoint(angle, length)
	r.c.Line(r.layout.CX, r.layout.CY, x, y, col)
}
