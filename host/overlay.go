package host

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const overlayInterval = 0.5

// overlay displays FPS, TPS and the live particle count in the top-left
// corner, refreshed every overlayInterval seconds.
type overlay struct {
	img        *ebiten.Image
	lastUpdate float64
	text       string
}

// overlayText formats the overlay contents.
func overlayText(fps, tps float64, live int) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nParticles: %d", fps, tps, live)
}

// update refreshes the text when the interval has elapsed. Returns true if
// the text changed.
func (o *overlay) update(dt float64, live int) bool {
	o.lastUpdate += dt
	if o.text != "" && o.lastUpdate < overlayInterval {
		return false
	}
	o.lastUpdate = 0
	o.text = overlayText(ebiten.ActualFPS(), ebiten.ActualTPS(), live)
	return true
}

func (o *overlay) draw(screen *ebiten.Image) {
	if o.text == "" {
		return
	}
	if o.img == nil {
		// 120x48 is enough for three short lines.
		o.img = ebiten.NewImage(120, 48)
	}
	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
	screen.DrawImage(o.img, nil)
}
