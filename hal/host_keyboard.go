//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var buttonKeys = [ButtonCount]ebiten.Key{
	ButtonA: ebiten.KeyA,
	ButtonB: ebiten.KeyB,
	ButtonX: ebiten.KeyX,
	ButtonY: ebiten.KeyY,
}

type hostKeyboard struct {
	logger Logger
	keys   []ebiten.Key
}

// poll returns the held buttons, one bit per ButtonID. Q holds all four.
func (k *hostKeyboard) poll() uint8 {
	var mask uint8
	k.keys = inpututil.AppendPressedKeys(k.keys[:0])
	for _, key := range k.keys {
		if key == ebiten.KeyQ {
			mask = 1<<ButtonCount - 1
			continue
		}
		for id, bk := range buttonKeys {
			if key == bk {
				mask |= 1 << id
			}
		}
	}

	if k.logger != nil {
		for id, bk := range buttonKeys {
			if inpututil.IsKeyJustPressed(bk) {
				k.logger.WriteLineString("key: " + ButtonID(id).String() + " down")
			}
			if inpututil.IsKeyJustReleased(bk) {
				k.logger.WriteLineString("key: " + ButtonID(id).String() + " up")
			}
		}
	}
	return mask
}
