package glade

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the overlay text is redrawn.
const fpsRefresh = 0.5

// fpsWidget caches an FPS/TPS readout in a small image.
type fpsWidget struct {
	img   *ebiten.Image
	since float64
	op    ebiten.DrawImageOptions
}

func (w *fpsWidget) update(dt float64) {
	if w.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		w.img = ebiten.NewImage(100, 32)
		w.since = fpsRefresh
	}
	w.since += dt
	if w.since < fpsRefresh {
		return
	}
	w.since = 0

	w.img.Clear()
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

// draw places the readout in the top right corner.
func (w *fpsWidget) draw(screen *ebiten.Image) {
	if w.img == nil {
		return
	}
	w.op.GeoM.Reset()
	w.op.GeoM.Translate(float64(screen.Bounds().Dx()-w.img.Bounds().Dx()-8), 8)
	screen.DrawImage(w.img, &w.op)
}
