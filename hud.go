package glade

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	hudPadding    = 8
	hudLineHeight = 16
	nameTagRise   = 180
)

var hudFace *text.GoXFace

// ensureHUDFace lazily wraps the bitmap face. No sync.Once; single-threaded.
func ensureHUDFace() *text.GoXFace {
	if hudFace == nil {
		hudFace = text.NewGoXFace(basicfont.Face7x13)
	}
	return hudFace
}

var (
	hudPanel = color.RGBA{0, 0, 0, 140}
	hudText  = color.RGBA{220, 220, 230, 255}
	tagText  = color.RGBA{255, 250, 220, 255}
)

func arrowGlyph(deg float64) string {
	if deg == 90 {
		return "->"
	}
	return "<-"
}

// HUDLines formats the readout as the lines DrawHUD renders.
func (r Readout) HUDLines() []string {
	return []string{
		fmt.Sprintf("%s %s  %s", r.Clock, r.Icon, r.WeatherLabel),
		fmt.Sprintf("wind %d km/h %s", r.WindKmh, arrowGlyph(r.WindArrowDeg)),
		fmt.Sprintf("plants %d", r.PlantCount),
		fmt.Sprintf("snow %d%%  puddles %d%%", r.SnowPct, r.PuddlePct),
		fmt.Sprintf("light %.2f", r.BeamStrength),
	}
}

// DrawHUD draws the readout panel and the hovered plant's name tag.
func (g *Garden) DrawHUD(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	face := ensureHUDFace()
	lines := g.Readout().HUDLines()

	panelW := 0.0
	for _, l := range lines {
		w, _ := text.Measure(l, face, hudLineHeight)
		panelW = max(panelW, w)
	}
	panelH := float64(len(lines)*hudLineHeight) + hudPadding*2
	vector.DrawFilledRect(screen, hudPadding, hudPadding, float32(panelW+hudPadding*2), float32(panelH), hudPanel, false)

	op := &text.DrawOptions{}
	for i, l := range lines {
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.GeoM.Translate(hudPadding*2, float64(hudPadding*2+i*hudLineHeight))
		op.ColorScale.ScaleWithColor(hudText)
		text.Draw(screen, l, face, op)
	}

	if p, ok := g.Hovered(); ok {
		author := p.Author
		if author == "" {
			author = "Anonymous"
		}
		label := "Gardener: " + author
		w, _ := text.Measure(label, face, hudLineHeight)
		sx, sy := g.camera.WorldToScreen(p.X, p.Y-nameTagRise)
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.GeoM.Translate(sx-w/2, sy)
		op.ColorScale.ScaleWithColor(tagText)
		vector.DrawFilledRect(screen, float32(sx-w/2-4), float32(sy-2), float32(w+8), hudLineHeight, hudPanel, false)
		text.Draw(screen, label, face, op)
	}
}
