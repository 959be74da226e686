package dandelion

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statsRefresh is how often the overlay text is redrawn, in seconds.
const statsRefresh = 0.5

// statsOverlay shows frame rates and flower state in the top-left corner.
// Its image is only redrawn every statsRefresh seconds.
type statsOverlay struct {
	img     *ebiten.Image
	elapsed float64
	text    string
}

// update advances the refresh timer and reports whether the text should be
// rebuilt.
func (o *statsOverlay) update(dt float64) bool {
	o.elapsed += dt
	if o.text != "" && o.elapsed < statsRefresh {
		return false
	}
	o.elapsed = 0
	return true
}

// setText replaces the overlay text and redraws its image.
func (o *statsOverlay) setText(text string) {
	o.text = text
	if o.img == nil {
		// 160x64 fits four lines of the debug font.
		o.img = ebiten.NewImage(160, 64)
	}
	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, text)
}

func (o *statsOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		return
	}
	screen.DrawImage(o.img, nil)
}

// statsText formats the overlay lines.
func statsText(fps, tps float64, style Style, palette Palette, detached, seeds int) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\n%s / %s\nseeds: %d/%d",
		fps, tps, style.DisplayName(), palette, seeds-detached, seeds)
}
