package glade

import (
	"math"
	"math/rand/v2"
)

// ParticleKind is the closed set of weather particle species.
type ParticleKind uint8

const (
	ParticleRain ParticleKind = iota
	ParticleSnow
	ParticleHail
	ParticleAsh
	ParticleDebris
	ParticleMeteor
	ParticlePollen

	numParticleKinds
)

var particleKindNames = [numParticleKinds]string{
	"rain", "snow", "hail", "ash", "debris", "meteor", "pollen",
}

func (k ParticleKind) String() string {
	if k < numParticleKinds {
		return particleKindNames[k]
	}
	return "unknown"
}

const (
	// DefaultMaxParticles is the global live particle cap.
	DefaultMaxParticles = 2000
	// CullMargin is how far outside the world a particle may drift before removal.
	CullMargin = 300

	spawnOverscan   = 200
	spawnWindBias   = 500
	maxSplashes     = 400
	pollenChance    = 0.1
	meteorFade      = 0.01
	pollenFadeIn    = 0.01
	pollenFadeOut   = 0.002
	splashGrowth    = 0.6
	splashFade      = 0.08
	topCullDistance = 600
)

// Particle is one live weather particle. Kind-specific fields are zero for
// kinds that do not use them.
type Particle struct {
	Kind ParticleKind
	X, Y float64
	// Z is a per-particle random seed in [0, 1] used for size and speed variance.
	Z float64

	// Rotation is the debris spin angle in radians.
	Rotation float64
	// Opacity and Target drive the pollen fade; fading flips once Target is reached.
	Opacity float64
	Target  float64
	fading  bool
	// Trail is the meteor alpha; Length is the meteor streak length.
	Trail  float64
	Length float64
	// TargetY is the ground height at which rain splashes.
	TargetY float64
}

// Splash is the short ring left where a raindrop hit the ground.
type Splash struct {
	X, Y   float64
	Radius float64
	Alpha  float64
}

// particleStep is the outcome of advancing one particle by one frame.
type particleStep uint8

const (
	stepKeep particleStep = iota
	stepRemove
	stepSplash
)

// particleEnv is the per-frame context handed to every advance function.
type particleEnv struct {
	windX float64
}

// particleAdvancers holds one motion rule per kind. The array is sized by
// numParticleKinds, so a new kind needs an entry here.
var particleAdvancers = [numParticleKinds]func(p *Particle, env *particleEnv) particleStep{
	ParticleRain:   advanceRain,
	ParticleSnow:   advanceFlake,
	ParticleHail:   advanceHail,
	ParticleAsh:    advanceFlake,
	ParticleDebris: advanceDebris,
	ParticleMeteor: advanceMeteor,
	ParticlePollen: advancePollen,
}

func advanceRain(p *Particle, env *particleEnv) particleStep {
	p.Y += 20 + p.Z*10
	p.X += env.windX * 10
	if p.Y >= p.TargetY {
		return stepSplash
	}
	return stepKeep
}

func advanceFlake(p *Particle, env *particleEnv) particleStep {
	p.Y += 2 + p.Z
	p.X += math.Sin(p.Y*0.05)*2 + env.windX*5
	return stepKeep
}

func advanceHail(p *Particle, env *particleEnv) particleStep {
	p.Y += 30
	p.X += env.windX * 5
	return stepKeep
}

func advanceDebris(p *Particle, env *particleEnv) particleStep {
	p.X += env.windX * 20
	p.Y += math.Sin(p.X*0.1)*3 + 2
	p.Rotation += 0.1
	return stepKeep
}

func advanceMeteor(p *Particle, _ *particleEnv) particleStep {
	p.X -= 15
	p.Y += 10
	p.Trail -= meteorFade
	if p.Trail <= 0 {
		return stepRemove
	}
	return stepKeep
}

func advancePollen(p *Particle, env *particleEnv) particleStep {
	p.Y += 0.5 + math.Cos(p.X*0.02)*0.5
	p.X += env.windX*2 + math.Sin(p.Y*0.02)
	if !p.fading {
		p.Opacity += pollenFadeIn
		if p.Opacity >= p.Target {
			p.Opacity = p.Target
			p.fading = true
		}
		return stepKeep
	}
	p.Opacity -= pollenFadeOut
	if p.Opacity <= 0 {
		return stepRemove
	}
	return stepKeep
}

// ParticleBounds is the world-space frame the particle system spawns into
// and culls against.
type ParticleBounds struct {
	CameraX    float64
	ViewWidth  float64
	WorldWidth float64
	Height     float64
}

// ParticleSystem owns every live weather particle and splash ring.
type ParticleSystem struct {
	particles []Particle
	alive     int
	splashes  []Splash
	splashN   int
	rng       *rand.Rand
	env       particleEnv
}

// NewParticleSystem preallocates a pool of maxParticles slots. Values <= 0
// use DefaultMaxParticles.
func NewParticleSystem(maxParticles int, rng *rand.Rand) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = DefaultMaxParticles
	}
	return &ParticleSystem{
		particles: make([]Particle, maxParticles),
		splashes:  make([]Splash, maxSplashes),
		rng:       rng,
	}
}

// Cap returns the live particle limit.
func (ps *ParticleSystem) Cap() int { return len(ps.particles) }

// AliveCount returns the number of live particles.
func (ps *ParticleSystem) AliveCount() int { return ps.alive }

// SplashCount returns the number of live splash rings.
func (ps *ParticleSystem) SplashCount() int { return ps.splashN }

// Particles returns the live particles. The slice is only valid until the
// next Update.
func (ps *ParticleSystem) Particles() []Particle { return ps.particles[:ps.alive] }

// Splashes returns the live splash rings, valid until the next Update.
func (ps *ParticleSystem) Splashes() []Splash { return ps.splashes[:ps.splashN] }

// CountKind returns how many live particles are of kind k.
func (ps *ParticleSystem) CountKind(k ParticleKind) int {
	n := 0
	for i := 0; i < ps.alive; i++ {
		if ps.particles[i].Kind == k {
			n++
		}
	}
	return n
}

// Reset removes every particle and splash.
func (ps *ParticleSystem) Reset() {
	ps.alive = 0
	ps.splashN = 0
}

// Update spawns, advances and culls one frame.
func (ps *ParticleSystem) Update(profile *WeatherProfile, phys *PhysicsState, b ParticleBounds) {
	ps.env.windX = phys.WindX()
	ps.spawn(profile, phys, b)
	ps.advance(b)
	ps.advanceSplashes()
}

func (ps *ParticleSystem) spawn(profile *WeatherProfile, phys *PhysicsState, b ParticleBounds) {
	bias := phys.Force * spawnWindBias
	if phys.Direction > 0 {
		bias = -bias
	}

	for _, r := range [...]struct {
		kind ParticleKind
		rate float64
	}{
		{ParticleRain, profile.RainRate},
		{ParticleSnow, profile.SnowRate},
		{ParticleHail, profile.HailRate},
		{ParticleAsh, profile.AshRate},
	} {
		for n := ps.spawnCount(r.rate); n > 0; n-- {
			ps.spawnFalling(r.kind, bias, b)
		}
	}
	if profile.DebrisRate > 0 && ps.rng.Float64() < profile.DebrisRate {
		ps.spawnFalling(ParticleDebris, bias, b)
	}
	if profile.MeteorRate > 0 && ps.rng.Float64() < profile.MeteorRate {
		ps.spawnMeteor(b)
	}
	if !profile.Precipitating() && ps.rng.Float64() < pollenChance {
		ps.spawnPollen(b)
	}
}

// spawnCount turns a per-frame rate into a whole count, rounding the
// fractional part stochastically.
func (ps *ParticleSystem) spawnCount(rate float64) int {
	if rate <= 0 {
		return 0
	}
	n := int(rate)
	if frac := rate - float64(n); frac > 0 && ps.rng.Float64() < frac {
		n++
	}
	return n
}

// next claims the next free slot, or nil when the pool is full.
func (ps *ParticleSystem) next(kind ParticleKind) *Particle {
	if ps.alive >= len(ps.particles) {
		return nil
	}
	p := &ps.particles[ps.alive]
	*p = Particle{Kind: kind, Z: ps.rng.Float64()}
	ps.alive++
	return p
}

func (ps *ParticleSystem) spawnFalling(kind ParticleKind, bias float64, b ParticleBounds) {
	p := ps.next(kind)
	if p == nil {
		return
	}
	span := b.ViewWidth + 2*spawnOverscan
	p.X = b.CameraX - spawnOverscan + ps.rng.Float64()*span + bias
	p.Y = -50
	switch kind {
	case ParticleRain:
		p.TargetY = b.Height * (0.3 + 0.7*ps.rng.Float64())
	case ParticleDebris:
		p.Rotation = ps.rng.Float64() * math.Pi
	}
}

func (ps *ParticleSystem) spawnMeteor(b ParticleBounds) {
	p := ps.next(ParticleMeteor)
	if p == nil {
		return
	}
	p.X = b.CameraX + ps.rng.Float64()*b.ViewWidth + spawnOverscan
	p.Y = -200
	p.Length = 100 + ps.rng.Float64()*100
	p.Trail = 1
}

func (ps *ParticleSystem) spawnPollen(b ParticleBounds) {
	p := ps.next(ParticlePollen)
	if p == nil {
		return
	}
	p.X = b.CameraX + ps.rng.Float64()*b.ViewWidth
	p.Y = ps.rng.Float64() * b.Height
	p.Target = 0.4 + ps.rng.Float64()*0.4
}

func (ps *ParticleSystem) advance(b ParticleBounds) {
	right := math.Max(b.WorldWidth, b.CameraX+b.ViewWidth) + CullMargin
	i := 0
	for i < ps.alive {
		p := &ps.particles[i]
		step := particleAdvancers[p.Kind](p, &ps.env)
		if step == stepSplash {
			ps.addSplash(p.X, p.TargetY)
		}
		if step != stepKeep || p.X < -CullMargin || p.X > right ||
			p.Y > b.Height+CullMargin || p.Y < -topCullDistance {
			ps.alive--
			ps.particles[i] = ps.particles[ps.alive]
			continue
		}
		i++
	}
}

func (ps *ParticleSystem) addSplash(x, y float64) {
	if ps.splashN >= len(ps.splashes) {
		return
	}
	ps.splashes[ps.splashN] = Splash{X: x, Y: y, Radius: 1, Alpha: 0.6}
	ps.splashN++
}

func (ps *ParticleSystem) advanceSplashes() {
	i := 0
	for i < ps.splashN {
		s := &ps.splashes[i]
		s.Radius += splashGrowth
		s.Alpha -= splashFade
		if s.Alpha <= 0 {
			ps.splashN--
			ps.splashes[i] = ps.splashes[ps.splashN]
			continue
		}
		i++
	}
}

// Random returns a random float64 in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}
