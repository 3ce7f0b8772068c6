package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"

	"picoclock/gfx"
	"picoclock/kernel"
)

// guard runs task with a recover. A panicking task stops the clock, logs
// the panic and leaves a panic screen on the display.
func (c *Clock) guard(name string, task kernel.Task) kernel.Task {
	return func() (keep bool) {
		if c.panicked != nil {
			return false
		}
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			keep = false
			c.panicked = fmt.Errorf("%s: %v: %w", name, v, ErrTaskPanic)
			c.state.Stop()
			c.reportPanic(name, v, debug.Stack())
		}()
		return task()
	}
}

func (c *Clock) reportPanic(name string, v any, stack []byte) {
	c.logf("clock panic: task=%s panic=%v", name, v)
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		c.log.WriteLineString(line)
	}

	lines := []string{
		"PANIC",
		"task: " + name,
		fmt.Sprintf("%v", v),
	}

	bg := color.RGBA{R: 0xFF, A: 0xFF}
	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	c.canvas.Clear(bg)

	const scale = 2
	lineHeight := gfx.DefaultFont().Ascent()*scale + 6
	maxW := c.fb.Width() - 8
	y := 8
	for _, line := range lines {
		if y+lineHeight > c.fb.Height() {
			break
		}
		c.canvas.Text([]byte(line), 4, y, maxW, scale, 0, fg)
		y += lineHeight
	}
	if err := c.canvas.Display(); err != nil {
		c.logf("clock panic: present: %v", err)
	}
}
