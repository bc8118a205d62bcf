package glade

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// particlePaint is the per-frame context handed to every painter.
type particlePaint struct {
	dst   *ebiten.Image
	r     *renderer
	camX  float64
	windX float64
}

// particlePainters holds one draw function per kind, indexed like
// particleAdvancers.
var particlePainters = [numParticleKinds]func(pp *particlePaint, p *Particle){
	ParticleRain:   paintRain,
	ParticleSnow:   paintSnow,
	ParticleHail:   paintHail,
	ParticleAsh:    paintAsh,
	ParticleDebris: paintDebris,
	ParticleMeteor: paintMeteor,
	ParticlePollen: paintPollen,
}

var (
	rainColor   = RGBA255(200, 230, 255, 1)
	hailColor   = RGBA255(200, 200, 220, 0.9)
	ashColor    = RGBA255(60, 60, 60, 0.7)
	debrisColor = mustHex("#5d4037")
	meteorColor = RGBA255(255, 255, 200, 1)
	pollenColor = RGBA255(255, 255, 200, 1)
)

func paintRain(pp *particlePaint, p *Particle) {
	x := p.X - pp.camX
	length := 15 + p.Z*15
	lean := pp.windX * 20
	c := rainColor.WithAlpha(0.4 + p.Z*0.3)
	vector.StrokeLine(pp.dst, float32(x-lean), float32(p.Y-length), float32(x), float32(p.Y), float32(1+p.Z), c.toRGBA(), true)
}

func paintSnow(pp *particlePaint, p *Particle) {
	c := ColorWhite.WithAlpha(0.6 + 0.4*p.Z)
	vector.DrawFilledCircle(pp.dst, float32(p.X-pp.camX), float32(p.Y), float32(2+2*p.Z), c.toRGBA(), true)
}

func paintHail(pp *particlePaint, p *Particle) {
	vector.DrawFilledCircle(pp.dst, float32(p.X-pp.camX), float32(p.Y), 3, hailColor.toRGBA(), true)
}

func paintAsh(pp *particlePaint, p *Particle) {
	vector.DrawFilledRect(pp.dst, float32(p.X-pp.camX), float32(p.Y), 3, 3, ashColor.toRGBA(), false)
}

func paintDebris(pp *particlePaint, p *Particle) {
	op := &pp.r.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.Blend = ebiten.BlendSourceOver
	op.Filter = ebiten.FilterLinear
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(6, 6)
	op.GeoM.Rotate(p.Rotation)
	op.GeoM.Translate(p.X-pp.camX, p.Y)
	op.ColorScale.ScaleWithColor(debrisColor.toRGBA())
	pp.dst.DrawImage(ensureWhite(), op)
}

// paintMeteor queues a tapered streak into the mesh batch; drawParticles
// flushes it after the loop.
func paintMeteor(pp *particlePaint, p *Particle) {
	x := p.X - pp.camX
	// Streak points back along the (-15, +10) velocity.
	dirX, dirY := 15/meteorSpeed, -10/meteorSpeed
	tx, ty := x+dirX*p.Length, p.Y+dirY*p.Length
	nx, ny := perpendicular(Vec2{X: x, Y: p.Y}, Vec2{X: tx, Y: ty})
	const half = 1.5
	head := meteorColor.WithAlpha(p.Trail)
	tail := meteorColor.WithAlpha(0)
	pp.r.batch.quad(pp.dst,
		x+nx*half, p.Y+ny*half,
		tx+nx*half*0.3, ty+ny*half*0.3,
		tx-nx*half*0.3, ty-ny*half*0.3,
		x-nx*half, p.Y-ny*half,
		head, tail, tail, head)
}

func paintPollen(pp *particlePaint, p *Particle) {
	c := pollenColor.WithAlpha(p.Opacity)
	vector.DrawFilledCircle(pp.dst, float32(p.X-pp.camX), float32(p.Y), float32(1+p.Z), c.toRGBA(), true)
}

func (g *Garden) drawParticles(dst *ebiten.Image, r *renderer) {
	pp := particlePaint{dst: dst, r: r, camX: g.camera.X, windX: g.climate.Physics.WindX()}
	for i, ps := 0, g.particles.Particles(); i < len(ps); i++ {
		p := &ps[i]
		if !g.camera.Visible(p.X, 250) {
			continue
		}
		particlePainters[p.Kind](&pp, p)
	}
	r.batch.flush(dst)
}

var meteorSpeed = math.Hypot(15, 10)
