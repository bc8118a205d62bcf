package glade

import (
	"image"
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Garden is one independent simulation and render context. All state is
// mutated in Update and only read in Draw; neither is safe for concurrent use.
type Garden struct {
	cfg Config
	rng *rand.Rand

	weather   *WeatherTable
	climate   *Climate
	ground    GroundState
	particles *ParticleSystem
	camera    *Camera
	decor     *Decor
	images    *ResourceCache[*ebiten.Image]
	sky       SkyPalette

	plants []Plant
	looks  []PlantLook
	seen   map[string]plantMemo

	clock        *Clock
	viewW, viewH float64
	frame        Frame
	frameCount   uint64

	pointerX, pointerY float64
	pointerOK          bool
	hovered            int

	events    EventSink
	sound     SoundSink
	ambience  ambienceKey
	ambienceN int
	night     bool
	nightSet  bool

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
	scenario        *Scenario
	injectQueue     []pointerEvent

	render *renderer
	stats  frameStats
}

type plantMemo struct {
	dead         bool
	protectUntil float64
}

type ambienceKey struct {
	label string
	night bool
}

// New creates a garden. The viewport starts at 640x480 until Resize is called.
func New(cfg Config) (*Garden, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	table := DefaultWeatherTable()
	g := &Garden{
		cfg:           cfg,
		rng:           rng,
		weather:       table,
		climate:       NewClimate(table, cfg.TimeScale, rng),
		ground:        NewGroundState(cfg.Ground),
		particles:     NewParticleSystem(cfg.MaxParticles, rng),
		sky:           DefaultSkyPalette(),
		seen:          make(map[string]plantMemo),
		clock:         NewClock(),
		hovered:       -1,
		ScreenshotDir: "screenshots",
	}
	g.images = NewResourceCache(Loader(MultiLoader{Files: FileLoader{Dir: "."}, Remote: HTTPLoader{}}), ebitenImage)
	g.images.SetDebug(cfg.Debug)
	g.camera = NewCamera(640, 480, cfg.WorldWidth)
	g.Resize(640, 480)
	return g, nil
}

func ebitenImage(img image.Image) *ebiten.Image {
	return ebiten.NewImageFromImage(img)
}

// Config returns a copy of the garden's configuration.
func (g *Garden) Config() Config { return g.cfg }

// SetWeatherTable replaces the weather profile table and re-resolves the
// current label against it.
func (g *Garden) SetWeatherTable(t *WeatherTable) {
	if t == nil {
		return
	}
	g.weather = t
	label := g.climate.RequestedLabel()
	g.climate.table = t
	g.climate.profile = nil
	g.climate.SetWeather(label)
}

// WeatherTable returns the active profile table.
func (g *Garden) WeatherTable() *WeatherTable { return g.weather }

// SetLoader replaces the image loader. Already cached entries are kept.
func (g *Garden) SetLoader(l Loader) {
	g.images.loader = l
}

// Images exposes the plant image cache.
func (g *Garden) Images() *ResourceCache[*ebiten.Image] { return g.images }

// SetEventSink attaches the receiver for garden events. Nil detaches.
func (g *Garden) SetEventSink(s EventSink) { g.events = s }

// SetSoundSink attaches the ambience collaborator. Nil detaches.
func (g *Garden) SetSoundSink(s SoundSink) {
	g.sound = s
	g.ambienceN = 0
}

// SetWeather selects the active weather by label. Unknown labels use the
// default profile.
func (g *Garden) SetWeather(label string) {
	if g.climate.SetWeather(label) {
		g.emit(GardenEvent{Type: EventWeatherChanged, Label: g.climate.Profile().Label})
	}
}

// SetEnvironment supplies external snow and puddle targets in [0, 1].
func (g *Garden) SetEnvironment(snow, puddle float64) {
	g.ground.SetTargets(snow, puddle)
}

// SetPlants replaces the plant list. Plants are kept sorted by Y for
// painter's order and picking. Newly dead or newly protected plants raise
// events.
func (g *Garden) SetPlants(plants []Plant) {
	g.plants = append(g.plants[:0], plants...)
	sortByY(g.plants, func(p *Plant) float64 { return p.Y })
	if cap(g.looks) < len(g.plants) {
		g.looks = make([]PlantLook, len(g.plants))
	}
	g.looks = g.looks[:len(g.plants)]

	next := make(map[string]plantMemo, len(g.plants))
	for i := range g.plants {
		p := &g.plants[i]
		g.images.Request(p.StemImage)
		g.images.Request(p.LeafImage)
		g.images.Request(p.FlowerImage)

		memo := plantMemo{dead: p.Dead()}
		if p.Stats != nil {
			memo.protectUntil = p.Stats.ProtectUntil
		}
		if prev, ok := g.seen[p.ID]; ok {
			if memo.dead && !prev.dead {
				cause := ""
				if p.Stats != nil {
					cause = p.Stats.DeathCause
				}
				g.emit(GardenEvent{Type: EventPlantDied, PlantID: p.ID, X: p.X, Y: p.Y, Cause: cause})
				g.effect(EffectShatter)
			}
			if !memo.dead && memo.protectUntil > prev.protectUntil && memo.protectUntil > g.frame.Now {
				g.emit(GardenEvent{Type: EventPlantProtected, PlantID: p.ID, X: p.X, Y: p.Y})
				g.effect(EffectProtect)
			}
		}
		next[p.ID] = memo
	}
	g.seen = next
	g.hovered = -1
	g.updateLooks()
}

// updateLooks recomputes every plant's look against the current frame, so
// picking between SetPlants and the next Update sees the new list.
func (g *Garden) updateLooks() {
	lp := LookParams{
		Now:             g.frame.Now,
		GrowthDuration:  g.cfg.GrowthDuration,
		ProtectDuration: g.cfg.ProtectDuration,
		SnowLevel:       g.ground.SnowLevel,
		Physics:         &g.climate.Physics,
	}
	for i := range g.plants {
		g.looks[i] = ComputeLook(&g.plants[i], lp)
	}
}

// Plants returns the current plants in painter's order. Callers must not
// modify the slice.
func (g *Garden) Plants() []Plant { return g.plants }

// Clock is the wall clock Run uses to build frames. ApplyUpdate keeps it
// synchronized to the server's time.
func (g *Garden) Clock() *Clock { return g.clock }

// ApplyUpdate feeds one synchronization snapshot into the garden.
func (g *Garden) ApplyUpdate(u Update) {
	if u.Time > 0 {
		g.clock.Sync(u.Time)
	}
	if u.Weather != "" {
		g.SetWeather(u.Weather)
	}
	if u.HasEnv {
		g.SetEnvironment(u.Snow, u.Puddle)
	}
	g.SetPlants(u.Plants)
}

// Resize updates the viewport. Decoration is regenerated when the width
// changes significantly or the world size changes.
func (g *Garden) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	g.viewW, g.viewH = float64(w), float64(h)
	g.camera.Resize(g.viewW, g.viewH, g.cfg.WorldWidth)
	params := DecorParams{
		WorldWidth:   g.camera.WorldWidth,
		WorldHeight:  g.viewH,
		ViewWidth:    g.viewW,
		GrassDensity: g.cfg.GrassDensity,
		PuddleCount:  g.cfg.PuddleCount,
		BeamCount:    g.cfg.BeamCount,
	}
	if g.decor == nil || g.decor.NeedsRegen(params) {
		g.decor = GenerateDecor(params, g.rng)
	}
}

// Camera returns the scroll camera.
func (g *Garden) Camera() *Camera { return g.camera }

// Climate exposes time, physics and weather pulse state.
func (g *Garden) Climate() *Climate { return g.climate }

// Ground exposes snow and puddle coverage.
func (g *Garden) Ground() *GroundState { return &g.ground }

// Particles exposes the particle system.
func (g *Garden) Particles() *ParticleSystem { return g.particles }

// Decor exposes the generated decoration.
func (g *Garden) Decor() *Decor { return g.decor }

// Now returns the timestamp of the last Update.
func (g *Garden) Now() float64 { return g.frame.Now }

// SetPointer records the pointer in screen coordinates. ok=false clears it.
func (g *Garden) SetPointer(sx, sy float64, ok bool) {
	g.pointerX, g.pointerY, g.pointerOK = sx, sy, ok
}

// Hovered returns the plant under the pointer after the last Update.
func (g *Garden) Hovered() (Plant, bool) {
	if g.hovered < 0 || g.hovered >= len(g.plants) {
		return Plant{}, false
	}
	return g.plants[g.hovered], true
}

// Update advances the whole simulation by one frame.
func (g *Garden) Update(f Frame) {
	start := time.Now()
	g.frame = Frame{Now: finiteOr(f.Now, g.frame.Now), Delta: finiteOr(f.Delta, 0)}
	g.frameCount++

	g.images.Poll()
	if g.scenario != nil {
		g.scenario.step(g)
	}
	g.processInjected()

	g.climate.Update(g.frame)
	profile := g.climate.Profile()
	if g.climate.Struck() {
		g.emit(GardenEvent{Type: EventLightning})
		g.effect(EffectThunder)
	}
	night := g.climate.Time.IsNight()
	if g.nightSet && night != g.night {
		g.emit(GardenEvent{Type: EventNightChanged, Night: night})
	}
	g.night, g.nightSet = night, true

	g.ground.Update(profile)
	g.camera.Update(g.frame.Delta)
	g.decor.UpdateBeams(g.climate.Physics.Direction)
	g.particles.Update(profile, &g.climate.Physics, ParticleBounds{
		CameraX:    g.camera.X,
		ViewWidth:  g.viewW,
		WorldWidth: g.camera.WorldWidth,
		Height:     g.viewH,
	})

	g.updateLooks()

	g.hovered = -1
	if g.pointerOK {
		wx, wy := g.camera.ScreenToWorld(g.pointerX, g.pointerY)
		g.hovered = g.pick(wx, wy)
	}

	g.notifyAmbience(profile.Label, night)
	g.stats.update = time.Since(start)
}

// pick returns the front-most living plant whose hit box contains the
// world point, or -1.
func (g *Garden) pick(wx, wy float64) int {
	hit := -1
	hb := g.cfg.HitBox
	for i := range g.plants {
		p := &g.plants[i]
		if p.Dead() {
			continue
		}
		baseX := p.X - g.looks[i].Rotation*60
		if math.Abs(wx-baseX) < hb.HalfWidth && math.Abs(wy-p.Y) < hb.HalfHeight {
			hit = i
		}
	}
	return hit
}

func (g *Garden) notifyAmbience(label string, night bool) {
	if g.sound == nil {
		return
	}
	key := ambienceKey{label: label, night: night}
	if g.ambienceN > 0 && key == g.ambience {
		return
	}
	g.ambience = key
	g.ambienceN++
	g.sound.Ambience(label, night)
}

func (g *Garden) emit(e GardenEvent) {
	if g.events == nil {
		return
	}
	if e.Now == 0 {
		e.Now = g.frame.Now
	}
	g.events.EmitEvent(e)
}

func (g *Garden) effect(name string) {
	if g.sound != nil {
		g.sound.Effect(name)
	}
}
