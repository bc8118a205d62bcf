package glade

import "math"

// Readout is the set of derived values external UI widgets display. It is
// recomputed from garden state on every call and holds nothing of its own.
type Readout struct {
	Clock        string
	Icon         ClockIcon
	WeatherLabel string
	WindKmh      int
	WindArrowDeg float64
	PlantCount   int
	SnowPct      int
	PuddlePct    int
	BeamStrength float64
}

// Readout projects the current frame's state for text UI.
func (g *Garden) Readout() Readout {
	ts := g.climate.Time
	profile := g.climate.Profile()
	phys := &g.climate.Physics
	alive := 0
	for i := range g.plants {
		if !g.plants[i].Dead() {
			alive++
		}
	}
	return Readout{
		Clock:        ts.ClockText(),
		Icon:         ts.Icon(),
		WeatherLabel: profile.DisplayLabel(ts.IsNight()),
		WindKmh:      phys.WindKmh(),
		WindArrowDeg: phys.WindArrowDeg(),
		PlantCount:   alive,
		SnowPct:      int(math.Round(g.ground.SnowLevel * 100)),
		PuddlePct:    int(math.Round(g.ground.PuddleLevel * 100)),
		BeamStrength: g.beamStrength(),
	}
}

// beamBase is the peak beam alpha before pulse and visibility, or 0 when
// beams are suppressed.
func beamBase(profile *WeatherProfile, night bool) float64 {
	if profile.RainRate > 0 {
		return 0
	}
	switch {
	case night:
		return 0.15
	case profile.Label == "cloudy":
		return 0.25
	default:
		return 0.2
	}
}

// beamStrength averages the live beam intensity across all beams.
func (g *Garden) beamStrength() float64 {
	profile := g.climate.Profile()
	base := beamBase(profile, g.climate.Time.IsNight())
	if base == 0 || g.decor == nil || len(g.decor.Beams) == 0 {
		return 0
	}
	sum := 0.0
	for i := range g.decor.Beams {
		sum += g.decor.Beams[i].Pulse()
	}
	return base * profile.Visibility * sum / float64(len(g.decor.Beams))
}
