package glade

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type plantLayers struct {
	stem, leaf, flower *ebiten.Image
}

// plantLayers resolves all three images. A plant with any image still
// pending or failed is not drawn at all this frame.
func (g *Garden) plantLayers(p *Plant) (plantLayers, bool) {
	stem, ok := g.images.TryGet(p.StemImage)
	if !ok {
		return plantLayers{}, false
	}
	leaf, ok := g.images.TryGet(p.LeafImage)
	if !ok {
		return plantLayers{}, false
	}
	flower, ok := g.images.TryGet(p.FlowerImage)
	if !ok {
		return plantLayers{}, false
	}
	return plantLayers{stem: stem, leaf: leaf, flower: flower}, true
}

// DrawablePlants returns the indices into Plants that would be drawn this
// frame: on camera, fully loaded and not yet faded out.
func (g *Garden) DrawablePlants() []int {
	var out []int
	for i := range g.plants {
		if g.plantDrawable(i) {
			out = append(out, i)
		}
	}
	return out
}

func (g *Garden) plantDrawable(i int) bool {
	p := &g.plants[i]
	if !g.camera.Visible(p.X, g.cfg.PlantWidth) || g.looks[i].Alpha <= 0 {
		return false
	}
	_, ok := g.plantLayers(p)
	return ok
}

func (g *Garden) drawPlants(dst *ebiten.Image, r *renderer) {
	r.plantDrawn = 0
	for i := range g.plants {
		if !g.plantDrawable(i) {
			continue
		}
		p := &g.plants[i]
		layers, _ := g.plantLayers(p)
		g.drawPlant(dst, r, p, &g.looks[i], layers)
		r.plantDrawn++
	}
}

var (
	shieldColor = RGBA255(120, 220, 255, 1)
	healthBack  = Color{A: 0.5}
	healthGood  = RGBA255(76, 175, 80, 1)
	healthLow   = RGBA255(244, 67, 54, 1)
	plantShadow = Color{A: 1}
)

const shadowRadius = 30.0

func (g *Garden) drawPlant(dst *ebiten.Image, r *renderer, p *Plant, look *PlantLook, layers plantLayers) {
	w, h := g.cfg.PlantWidth, g.cfg.PlantHeight
	bx, by := g.camera.WorldToScreen(p.X+look.OffsetX, p.Y+look.OffsetY)

	if !look.Dead {
		shadow := plantShadow.WithAlpha(0.3 * look.Stem)
		r.batch.ellipse(dst, bx, by, shadowRadius, shadowRadius*0.3, shadow, shadow.WithAlpha(0))
		r.batch.flush(dst)
	}

	place := func(geo *ebiten.GeoM) {
		geo.Scale(1, look.ScaleY)
		geo.Rotate(look.Rotation + look.Spin)
		geo.Translate(bx, by)
	}
	body := plantColorM(look, false)

	g.drawReveal(dst, layers.stem, look.Stem, w, h, body, place)
	g.drawReveal(dst, layers.leaf, look.Leaf, w, h, body, place)
	if look.Flower > 0 {
		g.drawIris(dst, r, layers.flower, look.Flower, w, h, plantColorM(look, true), place)
	}

	if look.Shielded {
		cy := by - h/2
		radius := h * 0.55
		fill := shieldColor.WithAlpha(look.ShieldPulse)
		vector.DrawFilledCircle(dst, float32(bx), float32(cy), float32(radius), fill.toRGBA(), true)
		r.batch.arc(dst, bx, cy, radius, 1, 0, 2*math.Pi, shieldColor.WithAlpha(0.2))
		r.batch.arc(dst, bx, cy, radius, 3, -math.Pi/2, look.ShieldFraction*2*math.Pi, shieldColor.WithAlpha(0.9))
		r.batch.flush(dst)
	}

	if look.HealthBar {
		const barW, barH = 60, 6
		x := float32(bx - barW/2)
		y := float32(by - h - 20)
		fg := healthGood
		if look.HealthLow {
			fg = healthLow
		}
		vector.DrawFilledRect(dst, x, y, barW, barH, healthBack.toRGBA(), false)
		vector.DrawFilledRect(dst, x, y, float32(barW*look.Health), barH, fg.toRGBA(), false)
	}
}

// drawReveal draws the bottom stage fraction of img so it grows upward from
// the plant base.
func (g *Garden) drawReveal(dst, img *ebiten.Image, stage, w, h float64, cm colorm.ColorM, place func(*ebiten.GeoM)) {
	if stage <= 0 {
		return
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	visible := int(math.Ceil(ih * clamp01(stage)))
	if visible <= 0 {
		return
	}
	sub := img.SubImage(image.Rect(b.Min.X, b.Max.Y-visible, b.Max.X, b.Max.Y)).(*ebiten.Image)
	var op colorm.DrawImageOptions
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(w/iw, h/ih)
	op.GeoM.Translate(-w/2, -h*float64(visible)/ih)
	place(&op.GeoM)
	colorm.DrawImage(dst, sub, cm, &op)
}

// drawIris reveals img through a growing circle centered near the flower head.
func (g *Garden) drawIris(dst *ebiten.Image, r *renderer, img *ebiten.Image, stage, w, h float64, cm colorm.ColorM, place func(*ebiten.GeoM)) {
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())

	var op colorm.DrawImageOptions
	op.Filter = ebiten.FilterLinear
	if stage >= 1 {
		op.GeoM.Scale(w/iw, h/ih)
		op.GeoM.Translate(-w/2, -h)
		place(&op.GeoM)
		colorm.DrawImage(dst, img, cm, &op)
		return
	}

	layer, mask := r.scratch(int(math.Ceil(w)), int(math.Ceil(h)))
	layer.Clear()
	r.imgOp.GeoM.Reset()
	r.imgOp.ColorScale.Reset()
	r.imgOp.Blend = ebiten.BlendSourceOver
	r.imgOp.Filter = ebiten.FilterLinear
	r.imgOp.GeoM.Scale(w/iw, h/ih)
	layer.DrawImage(img, &r.imgOp)

	iris := IrisFor(w, h, stage)
	mask.Clear()
	vector.DrawFilledCircle(mask, float32(w/2+iris.CX), float32(h+iris.CY), float32(iris.Radius), color.White, true)
	r.imgOp.GeoM.Reset()
	r.imgOp.Blend = BlendMask.EbitenBlend()
	layer.DrawImage(mask, &r.imgOp)
	r.imgOp.Blend = ebiten.BlendSourceOver

	op.GeoM.Translate(-w/2, -h)
	place(&op.GeoM)
	colorm.DrawImage(dst, layer.SubImage(image.Rect(0, 0, int(math.Ceil(w)), int(math.Ceil(h)))).(*ebiten.Image), cm, &op)
}

// scratch returns the reusable offscreen layer and mask, reallocated only
// when the plant size grows.
func (r *renderer) scratch(w, h int) (layer, mask *ebiten.Image) {
	if r.layer == nil || w > r.layerW || h > r.layerH {
		if r.layer != nil {
			r.layer.Deallocate()
			r.mask.Deallocate()
		}
		r.layerW, r.layerH = max(w, r.layerW), max(h, r.layerH)
		r.layer = ebiten.NewImage(r.layerW, r.layerH)
		r.mask = ebiten.NewImage(r.layerW, r.layerH)
	}
	return r.layer, r.mask
}

// plantColorM builds the color treatment for one plant layer: damage
// browning, snow frost, frost-death whitening and fade.
func plantColorM(look *PlantLook, flower bool) colorm.ColorM {
	var cm colorm.ColorM
	sat := look.Saturation * (1 - look.Frost)
	if sat < 1 {
		cm.ChangeHSV(0, clamp01(sat), 1)
	}
	if look.Brown > 0 {
		cm.Scale(1, 1-0.15*look.Brown, 1-0.4*look.Brown, 1)
	}
	if look.Frost > 0 {
		cm.Translate(0.05*look.Frost, 0.05*look.Frost, 0.08*look.Frost, 0)
	}
	white := look.Whiten
	if flower {
		white = 1 - (1-white)*(1-look.FlowerSnow)
	}
	if white > 0 {
		cm.Scale(1-white, 1-white, 1-white, 1)
		cm.Translate(white, white, white, 0)
	}
	if look.Alpha < 1 {
		cm.Scale(1, 1, 1, clamp01(look.Alpha))
	}
	return cm
}
