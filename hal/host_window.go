//go:build !tinygo && cgo

package hal

import (
	"errors"
	"image"

	"picoclock/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	// Scale multiplies the window size. Defaults to 2.
	Scale int
}

// RunWindow starts a desktop window that displays the framebuffer and maps
// the A/B/X/Y keys to the buttons. It blocks until the window closes or
// step reports ErrShutdown.
func RunWindow(h *Host, step func() error, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}

	g := &hostGame{h: h, step: step, kbd: &hostKeyboard{logger: h.logger}}
	ebiten.SetWindowTitle("picoclock (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h     *Host
	kbd   *hostKeyboard
	img   *image.RGBA
	fbImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	g.h.SetKeys(g.kbd.poll())
	g.h.Step()
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrShutdown) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	g.h.front.snapshotRGBA(g.img.Pix, g.h.Backlight())
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
