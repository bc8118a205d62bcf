package glade

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// maxBatchVertices keeps every batch addressable by uint16 indices.
const maxBatchVertices = 65000

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// ensureWhite lazily creates the solid source used by every untextured mesh.
// No sync.Once; single-threaded.
func ensureWhite() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// meshBatch accumulates vertex-colored triangles against the white source
// and submits them in as few DrawTriangles calls as the index width allows.
type meshBatch struct {
	verts []ebiten.Vertex
	inds  []uint16
	op    ebiten.DrawTrianglesOptions
	calls int
}

// reserve flushes first when n more vertices would overflow the batch.
func (m *meshBatch) reserve(dst *ebiten.Image, n int) {
	if len(m.verts)+n > maxBatchVertices {
		m.flush(dst)
	}
}

func (m *meshBatch) vertex(x, y float64, c Color) uint16 {
	m.verts = append(m.verts, ebiten.Vertex{
		DstX: float32(x), DstY: float32(y),
		SrcX: 1, SrcY: 1,
		ColorR: float32(c.R), ColorG: float32(c.G), ColorB: float32(c.B), ColorA: float32(clamp01(c.A)),
	})
	return uint16(len(m.verts) - 1)
}

func (m *meshBatch) tri(a, b, c uint16) {
	m.inds = append(m.inds, a, b, c)
}

// quad appends a four-corner polygon given clockwise or counter-clockwise.
func (m *meshBatch) quad(dst *ebiten.Image, x0, y0, x1, y1, x2, y2, x3, y3 float64, c0, c1, c2, c3 Color) {
	m.reserve(dst, 4)
	a := m.vertex(x0, y0, c0)
	b := m.vertex(x1, y1, c1)
	c := m.vertex(x2, y2, c2)
	d := m.vertex(x3, y3, c3)
	m.tri(a, b, c)
	m.tri(a, c, d)
}

// ellipse appends a filled ellipse as a triangle fan.
func (m *meshBatch) ellipse(dst *ebiten.Image, cx, cy, rx, ry float64, center, rim Color) {
	const segs = 24
	m.reserve(dst, segs+1)
	mid := m.vertex(cx, cy, center)
	first := uint16(len(m.verts))
	for i := 0; i < segs; i++ {
		a := float64(i) / segs * 2 * math.Pi
		m.vertex(cx+math.Cos(a)*rx, cy+math.Sin(a)*ry, rim)
	}
	for i := uint16(0); i < segs; i++ {
		m.tri(mid, first+i, first+(i+1)%segs)
	}
}

// arc appends a stroked circular arc from start sweeping by sweep radians.
func (m *meshBatch) arc(dst *ebiten.Image, cx, cy, radius, width, start, sweep float64, c Color) {
	if sweep == 0 {
		return
	}
	segs := max(2, int(math.Ceil(math.Abs(sweep)/(math.Pi/24))))
	m.reserve(dst, (segs+1)*2)
	inner, outer := radius-width/2, radius+width/2
	base := uint16(len(m.verts))
	for i := 0; i <= segs; i++ {
		a := start + sweep*float64(i)/float64(segs)
		cos, sin := math.Cos(a), math.Sin(a)
		m.vertex(cx+cos*outer, cy+sin*outer, c)
		m.vertex(cx+cos*inner, cy+sin*inner, c)
	}
	for i := 0; i < segs; i++ {
		v := base + uint16(i*2)
		m.tri(v, v+1, v+2)
		m.tri(v+1, v+3, v+2)
	}
}

// strip appends a ribbon along points whose half width tapers linearly
// from baseHalf at points[0] to tipHalf at the last point.
func (m *meshBatch) strip(dst *ebiten.Image, points []Vec2, baseHalf, tipHalf float64, c Color) {
	n := len(points)
	if n < 2 {
		return
	}
	m.reserve(dst, n*2)
	base := uint16(len(m.verts))
	for i := 0; i < n; i++ {
		var nx, ny float64
		switch i {
		case 0:
			nx, ny = perpendicular(points[0], points[1])
		case n - 1:
			nx, ny = perpendicular(points[n-2], points[n-1])
		default:
			nx0, ny0 := perpendicular(points[i-1], points[i])
			nx1, ny1 := perpendicular(points[i], points[i+1])
			nx, ny = nx0+nx1, ny0+ny1
			if ln := math.Hypot(nx, ny); ln > 1e-10 {
				nx /= ln
				ny /= ln
			}
		}
		hw := lerp(baseHalf, tipHalf, float64(i)/float64(n-1))
		m.vertex(points[i].X+nx*hw, points[i].Y+ny*hw, c)
		m.vertex(points[i].X-nx*hw, points[i].Y-ny*hw, c)
	}
	for i := 0; i < n-1; i++ {
		v := base + uint16(i*2)
		m.tri(v, v+1, v+2)
		m.tri(v+1, v+3, v+2)
	}
}

// flush submits pending triangles with blend and clears the batch.
func (m *meshBatch) flush(dst *ebiten.Image) {
	if len(m.inds) == 0 {
		m.verts = m.verts[:0]
		return
	}
	m.op.ColorScaleMode = ebiten.ColorScaleModeStraightAlpha
	dst.DrawTriangles(m.verts, m.inds, ensureWhite(), &m.op)
	m.verts = m.verts[:0]
	m.inds = m.inds[:0]
	m.calls++
}

// flushWith submits pending triangles using the given blend.
func (m *meshBatch) flushWith(dst *ebiten.Image, b BlendMode) {
	m.op.Blend = b.EbitenBlend()
	m.flush(dst)
	m.op.Blend = ebiten.BlendSourceOver
}

// perpendicular returns the unit normal of the segment a→b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Hypot(dx, dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

// renderer holds per-garden GPU scratch state.
type renderer struct {
	batch      meshBatch
	imgOp      ebiten.DrawImageOptions
	layer      *ebiten.Image
	mask       *ebiten.Image
	layerW     int
	layerH     int
	bladePts   [5]Vec2
	grassDrawn int
	plantDrawn int
}

func (g *Garden) ensureRenderer() *renderer {
	if g.render == nil {
		g.render = &renderer{}
	}
	return g.render
}

// Draw composites the garden onto screen in fixed order: ground, puddles,
// light beams, grass, plants, snow wash, particles, splashes, then the
// screen-space atmosphere. A nil screen is ignored.
func (g *Garden) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	start := time.Now()
	r := g.ensureRenderer()
	r.batch.calls = 0

	g.drawGround(screen, r)
	g.drawPuddles(screen, r)
	g.drawBeams(screen, r)
	g.drawGrass(screen, r)
	g.drawPlants(screen, r)
	g.drawSnowWash(screen)
	g.drawParticles(screen, r)
	g.drawSplashes(screen)
	g.drawAtmosphere(screen, r)

	g.stats.draw = time.Since(start)
	g.stats.drawCalls = r.batch.calls
	g.stats.grass = r.grassDrawn
	g.stats.plants = r.plantDrawn
	g.debugLog()
	g.flushScreenshots(screen)
}

var snowWhite = Color{R: 0.94, G: 0.96, B: 1, A: 1}

func (g *Garden) drawGround(dst *ebiten.Image, r *renderer) {
	pair := g.sky.Colors(g.climate.Time.TimeOfDay)
	k := g.ground.SnowLevel * 0.8
	top := BlendRGB(pair.Top, snowWhite, k)
	bottom := BlendRGB(pair.Bottom, snowWhite, k)
	w, h := g.viewW, g.viewH
	r.batch.quad(dst, 0, 0, w, 0, w, h, 0, h, top, top, bottom, bottom)
	r.batch.flush(dst)
}

var (
	puddleWater = RGBA255(70, 90, 110, 1)
	puddleIce   = RGBA255(200, 225, 240, 1)
)

func (g *Garden) drawPuddles(dst *ebiten.Image, r *renderer) {
	level := g.ground.PuddleLevel
	if level <= 0.01 || g.decor == nil {
		return
	}
	c := puddleWater
	if g.ground.SnowLevel > 0.3 {
		c = puddleIce
	}
	center := c.WithAlpha(level * 0.5)
	rim := c.WithAlpha(level * 0.2)
	for i := range g.decor.Puddles {
		p := &g.decor.Puddles[i]
		if !g.camera.Visible(p.X, p.W) {
			continue
		}
		sx, sy := g.camera.WorldToScreen(p.X, p.Y)
		r.batch.ellipse(dst, sx, sy, p.W/2, p.H/2, center, rim)
	}
	r.batch.flush(dst)
}

var (
	beamNight = RGBA255(200, 220, 255, 1)
	beamWhite = RGBA255(255, 255, 255, 1)
	beamWarm  = RGBA255(255, 250, 210, 1)
)

func (g *Garden) drawBeams(dst *ebiten.Image, r *renderer) {
	profile := g.climate.Profile()
	night := g.climate.Time.IsNight()
	base := beamBase(profile, night)
	if base == 0 || g.decor == nil {
		return
	}
	c := beamWarm
	switch {
	case night:
		c = beamNight
	case profile.Label == "cloudy":
		c = beamWhite
	}
	h := g.viewH
	for i := range g.decor.Beams {
		b := &g.decor.Beams[i]
		if !g.camera.Visible(b.X, b.Width+math.Abs(b.Tilt)*3) {
			continue
		}
		a := base * b.Pulse() * profile.Visibility
		x, _ := g.camera.WorldToScreen(b.X, 0)
		shift := b.Tilt * 3
		top := c.WithAlpha(a)
		bottom := c.WithAlpha(0)
		r.batch.quad(dst, x, 0, x+b.Width, 0, x+b.Width+shift, h, x+shift, h, top, top, bottom, bottom)
	}
	r.batch.flushWith(dst, BlendScreen)
}

func (g *Garden) drawGrass(dst *ebiten.Image, r *renderer) {
	r.grassDrawn = 0
	if g.decor == nil {
		return
	}
	phys := &g.climate.Physics
	now := g.frame.Now
	lean := phys.BaseLean()
	flutter := phys.Flutter(now)
	freeze := g.ground.FreezeFactor()
	snow := g.ground.SnowLevel
	for i := range g.decor.Grass {
		b := &g.decor.Grass[i]
		if !g.camera.Visible(b.X, 40) {
			continue
		}
		wind := lean + flutter*1.5 + b.Z*0.1
		angle := FrozenAngle(b.BaseAngle+wind, b.Frozen, freeze)
		x, y := g.camera.WorldToScreen(b.X, b.Y)
		tipX := x + math.Sin(angle)*b.Height
		tipY := y - math.Cos(angle)*b.Height
		ctrlX, ctrlY := x, y-b.Height*0.4
		for s := range r.bladePts {
			t := float64(s) / float64(len(r.bladePts)-1)
			u := 1 - t
			r.bladePts[s] = Vec2{
				X: u*u*x + 2*u*t*ctrlX + t*t*tipX,
				Y: u*u*y + 2*u*t*ctrlY + t*t*tipY,
			}
		}
		c := b.Color
		if snow > 0.01 {
			c = BlendRGB(c, snowWhite, snow*0.9)
		}
		r.batch.strip(dst, r.bladePts[:], b.Width/2, 0.1, c)
		r.grassDrawn++
	}
	r.batch.flush(dst)
}

func (g *Garden) drawSnowWash(dst *ebiten.Image) {
	if g.ground.SnowLevel <= 0.01 {
		return
	}
	c := snowWhite.WithAlpha(g.ground.SnowLevel * 0.3)
	vector.DrawFilledRect(dst, 0, 0, float32(g.viewW), float32(g.viewH), c.toRGBA(), false)
}

var splashColor = RGBA255(200, 230, 255, 1)

func (g *Garden) drawSplashes(dst *ebiten.Image) {
	for _, s := range g.particles.Splashes() {
		if !g.camera.Visible(s.X, s.Radius) {
			continue
		}
		x, y := g.camera.WorldToScreen(s.X, s.Y)
		vector.StrokeCircle(dst, float32(x), float32(y), float32(s.Radius), 1, splashColor.WithAlpha(s.Alpha).toRGBA(), true)
	}
}
