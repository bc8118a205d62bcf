package glade

import (
	"math"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
)

// GrassColors is the meadow palette, darkest first.
var GrassColors = []string{"#1e361a", "#2d4c1e", "#4a6b2f", "#638235", "#789440", "#8f9e53"}

const (
	grassPerPixel   = 8000.0 / 1920.0
	regenWidthDelta = 50
)

var (
	bladeHeight = Range{Min: 10, Max: 25}
	bladeWidth  = Range{Min: 1, Max: 2.5}
	puddleW     = Range{Min: 100, Max: 300}
	puddleH     = Range{Min: 30, Max: 80}
	beamWidth   = Range{Min: 200, Max: 500}
	beamSpeed   = Range{Min: 0.02, Max: 0.06}
)

// GrassBlade is one decorative blade rooted at (X, Y).
type GrassBlade struct {
	X, Y   float64
	Height float64
	Width  float64
	// BaseAngle is the resting tilt in radians.
	BaseAngle float64
	// Frozen is the pose this blade locks into under deep snow.
	Frozen float64
	Z      float64
	Color  Color
}

// LightBeam is a slanted shaft of light drifting across the world.
type LightBeam struct {
	X          float64
	Width      float64
	Tilt       float64
	Speed      float64
	AlphaPhase float64
}

// Pulse is the beam's breathing intensity in [0, 1].
func (b *LightBeam) Pulse() float64 {
	return 0.5 + 0.5*math.Sin(b.AlphaPhase)
}

// PuddlePatch is one ellipse where water (or ice) collects.
type PuddlePatch struct {
	X, Y, W, H float64
}

// Decor is the generated set of decorative entities for one world size.
type Decor struct {
	Grass   []GrassBlade
	Beams   []LightBeam
	Puddles []PuddlePatch

	worldW, worldH float64
	viewW          float64
}

// DecorParams sizes a decoration pass.
type DecorParams struct {
	WorldWidth, WorldHeight float64
	ViewWidth               float64
	GrassDensity            float64
	PuddleCount             int
	BeamCount               int
}

// NeedsRegen reports whether a resize is large enough to rebuild decor.
func (d *Decor) NeedsRegen(p DecorParams) bool {
	return d.worldW != p.WorldWidth || d.worldH != p.WorldHeight ||
		math.Abs(d.viewW-p.ViewWidth) > regenWidthDelta
}

// GenerateDecor builds grass, beams and puddles. Grass placement follows a
// 2D perlin field so blades cluster into clumps.
func GenerateDecor(p DecorParams, rng *rand.Rand) *Decor {
	d := &Decor{worldW: p.WorldWidth, worldH: p.WorldHeight, viewW: p.ViewWidth}
	noise := perlin.NewPerlin(2, 2, 3, rng.Int64())

	palette := make([]Color, len(GrassColors))
	for i, h := range GrassColors {
		palette[i] = mustHex(h)
	}

	density := p.GrassDensity
	if density <= 0 {
		density = 1
	}
	target := int(p.WorldWidth * grassPerPixel * density)
	d.Grass = make([]GrassBlade, 0, target)
	for tries := 0; len(d.Grass) < target && tries < target*4; tries++ {
		x := rng.Float64() * p.WorldWidth
		y := rng.Float64() * p.WorldHeight
		n := noise.Noise2D(x/300, y/300)
		// Sparse patches are thinned rather than emptied.
		if rng.Float64() > 0.35+n {
			continue
		}
		shade := clamp01(0.5 + n)
		ci := min(len(palette)-1, int(shade*float64(len(palette))))
		d.Grass = append(d.Grass, GrassBlade{
			X:         x,
			Y:         y,
			Height:    bladeHeight.Random(rng) * (0.8 + 0.4*shade),
			Width:     bladeWidth.Random(rng),
			BaseAngle: (rng.Float64() - 0.5) * 0.4,
			Frozen:    (rng.Float64() - 0.5) * 0.3,
			Z:         rng.Float64(),
			Color:     palette[ci],
		})
	}
	// Farther blades (smaller Y) draw first.
	sortByY(d.Grass, func(b *GrassBlade) float64 { return b.Y })

	for i := 0; i < p.PuddleCount; i++ {
		d.Puddles = append(d.Puddles, PuddlePatch{
			X: rng.Float64() * p.WorldWidth,
			Y: p.WorldHeight*0.3 + rng.Float64()*p.WorldHeight*0.7,
			W: puddleW.Random(rng),
			H: puddleH.Random(rng),
		})
	}

	for i := 0; i < p.BeamCount; i++ {
		d.Beams = append(d.Beams, LightBeam{
			X:          rng.Float64() * p.WorldWidth,
			Width:      beamWidth.Random(rng),
			Tilt:       (rng.Float64() - 0.5) * 150,
			Speed:      beamSpeed.Random(rng),
			AlphaPhase: rng.Float64() * math.Pi * 2,
		})
	}
	return d
}

// UpdateBeams drifts beams with the wind and wraps them around the world.
func (d *Decor) UpdateBeams(direction float64) {
	for i := range d.Beams {
		b := &d.Beams[i]
		b.X += b.Speed * sign(direction)
		if b.X > d.worldW+400 {
			b.X = -400
		} else if b.X < -400 {
			b.X = d.worldW + 400
		}
		b.AlphaPhase += 0.01
	}
}
