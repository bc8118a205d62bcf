package glade

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	fogColors = [...]Color{
		FogPlain: RGBA255(180, 180, 190, 1),
		FogCold:  RGBA255(220, 230, 245, 1),
		FogDust:  RGBA255(194, 178, 128, 1),
		FogAsh:   RGBA255(90, 70, 70, 1),
	}
	nightColor   = RGBA255(5, 10, 30, 1)
	auroraGreen  = RGBA255(0, 255, 150, 1)
	auroraPurple = RGBA255(150, 0, 255, 1)
)

// drawAtmosphere draws the screen-space overlays. The camera offset is never
// applied here.
func (g *Garden) drawAtmosphere(dst *ebiten.Image, r *renderer) {
	profile := g.climate.Profile()
	w, h := float32(g.viewW), float32(g.viewH)

	if profile.Visibility < 1 {
		fog := fogColors[profile.FogCategory()].WithAlpha((1 - profile.Visibility) * 0.6)
		vector.DrawFilledRect(dst, 0, 0, w, h, fog.toRGBA(), false)
	}

	if profile.Tint != nil && profile.Tint.A > 0 {
		op := &r.imgOp
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.Filter = ebiten.FilterNearest
		op.GeoM.Scale(g.viewW, g.viewH)
		// Multiply with a translucent source: lerp toward the tint by its alpha.
		t := *profile.Tint
		k := t.A
		op.ColorScale.Scale(float32(lerp(1, t.R, k)), float32(lerp(1, t.G, k)), float32(lerp(1, t.B, k)), 1)
		op.Blend = BlendMultiply.EbitenBlend()
		dst.DrawImage(ensureWhite(), op)
		op.Blend = ebiten.BlendSourceOver
	}

	if d := g.climate.Darkness(); d > 0 {
		vector.DrawFilledRect(dst, 0, 0, w, h, nightColor.WithAlpha(d).toRGBA(), false)
	}

	if f := clamp01(g.climate.Flash()); f > 0 {
		vector.DrawFilledRect(dst, 0, 0, w, h, ColorWhite.WithAlpha(f).toRGBA(), false)
	}

	if a := g.climate.Aurora(); a > 0.001 {
		g.drawAurora(dst, r, a)
	}
}

// drawAurora draws a curtain whose lower edge waves across the screen.
func (g *Garden) drawAurora(dst *ebiten.Image, r *renderer, alpha float64) {
	const step = 16.0
	now := g.frame.Now
	edge := func(x float64) float64 {
		return 100 + math.Sin(x*0.01+now*0.001)*50
	}
	top := auroraPurple.WithAlpha(alpha * 0.4)
	mid := auroraGreen.WithAlpha(alpha)
	fade := auroraGreen.WithAlpha(0)
	for x := 0.0; x < g.viewW; x += step {
		x1 := math.Min(x+step, g.viewW)
		e0, e1 := edge(x), edge(x1)
		r.batch.quad(dst, x, 0, x1, 0, x1, e1, x, e0, top, top, mid, mid)
		r.batch.quad(dst, x, e0, x1, e1, x1, e1+150, x, e0+150, mid, mid, fade, fade)
	}
	r.batch.flushWith(dst, BlendScreen)
}
