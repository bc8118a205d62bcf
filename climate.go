package glade

import "math/rand/v2"

const (
	lightningChance = 0.005
	flashDecay      = 0.05
	auroraTarget    = 0.6
	auroraSmoothing = 0.01
)

// Climate owns the active weather profile, simulated time-of-day and the
// lightning and aurora pulses. It also carries the physics state so wind
// targets follow the profile.
type Climate struct {
	table     *WeatherTable
	profile   *WeatherProfile
	label     string
	timeScale float64
	rng       *rand.Rand

	Physics PhysicsState
	Time    TimeState

	flash  float64
	aurora float64
	struck bool
}

// NewClimate creates a climate controller starting on the default profile.
func NewClimate(table *WeatherTable, timeScale float64, rng *rand.Rand) *Climate {
	return &Climate{
		table:     table,
		profile:   table.Lookup(DefaultWeather),
		label:     DefaultWeather,
		timeScale: timeScale,
		rng:       rng,
		Physics:   NewPhysicsState(),
		Time:      TimeState{TimeOfDay: 0.5},
	}
}

// SetWeather selects the active profile. Unknown labels use the default
// profile. It reports whether the resolved profile changed.
func (c *Climate) SetWeather(label string) bool {
	c.label = label
	p := c.table.Lookup(label)
	changed := p != c.profile
	c.profile = p
	return changed
}

// Profile returns the active profile. Never nil.
func (c *Climate) Profile() *WeatherProfile {
	return c.profile
}

// RequestedLabel is the label last passed to SetWeather, even if unknown.
func (c *Climate) RequestedLabel() string {
	return c.label
}

// Flash is the lightning overlay alpha in [0, 1].
func (c *Climate) Flash() float64 { return c.flash }

// Aurora is the aurora overlay alpha in [0, auroraTarget].
func (c *Climate) Aurora() float64 { return c.aurora }

// Struck reports whether lightning started on the last Update.
func (c *Climate) Struck() bool { return c.struck }

// Update advances time-of-day, wind physics and the pulse scalars.
func (c *Climate) Update(f Frame) {
	c.Time = TimeState{TimeOfDay: TimeOfDay(f.Now, c.timeScale)}
	c.Physics.Step(Wind(f.Now, c.profile))

	c.struck = false
	if c.profile.Lightning && c.rng.Float64() < lightningChance {
		c.flash = 1
		c.struck = true
	} else {
		c.flash = clamp01(c.flash - flashDecay)
	}

	target := 0.0
	if c.profile.Aurora {
		target = auroraTarget
	}
	c.aurora += (target - c.aurora) * auroraSmoothing
	c.aurora = clamp01(c.aurora)
}

// Darkness is the night overlay opacity for the current frame.
func (c *Climate) Darkness() float64 {
	return Darkness(c.Time.TimeOfDay, c.profile)
}
