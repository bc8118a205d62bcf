package glade

import (
	"fmt"
	"math"
)

// MsPerDay is the length of one simulated day in milliseconds.
const MsPerDay = 24 * 60 * 60 * 1000

// Phase is one quarter of the simulated day.
type Phase uint8

const (
	PhaseNight Phase = iota // [0, 0.25)
	PhaseDawn               // [0.25, 0.5)
	PhaseDay                // [0.5, 0.75)
	PhaseDusk               // [0.75, 1)
)

var phaseNames = [...]string{"night", "dawn", "day", "dusk"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", p)
}

// ClockIcon is the day-part glyph shown next to the clock.
type ClockIcon uint8

const (
	IconSun ClockIcon = iota
	IconSunrise
	IconMoon
)

func (i ClockIcon) String() string {
	switch i {
	case IconMoon:
		return "moon"
	case IconSunrise:
		return "sunrise"
	default:
		return "sun"
	}
}

// TimeOfDay maps an in-world timestamp to [0, 1) of one simulated day.
// Non-finite results fall back to midday.
func TimeOfDay(nowMs, timeScale float64) float64 {
	t := math.Mod(nowMs*timeScale, MsPerDay) / MsPerDay
	if t < 0 {
		t += 1
	}
	t = finiteOr(t, 0.5)
	if t >= 1 {
		t = 0
	}
	return t
}

// TimeState is the derived time-of-day for one frame. It stores nothing but
// the fraction; phase and night are always recomputed from it.
type TimeState struct {
	TimeOfDay float64
}

// Phase returns the quarter of the day t falls into.
func (s TimeState) Phase() Phase {
	return Phase(min(3, int(s.TimeOfDay*4)))
}

// IsNight reports whether t is in the dark half around midnight.
func (s TimeState) IsNight() bool {
	return s.TimeOfDay > 0.75 || s.TimeOfDay < 0.25
}

// ClockText formats the simulated time as HH:MM.
func (s TimeState) ClockText() string {
	minutes := int(s.TimeOfDay * 24 * 60)
	return fmt.Sprintf("%02d:%02d", (minutes/60)%24, minutes%60)
}

// Icon picks the clock glyph.
func (s TimeState) Icon() ClockIcon {
	switch {
	case s.IsNight():
		return IconMoon
	case s.TimeOfDay < 0.3 || s.TimeOfDay > 0.7:
		return IconSunrise
	default:
		return IconSun
	}
}

// SkyPair is the top and bottom color of the background gradient.
type SkyPair struct {
	Top, Bottom Color
}

// SkyPalette holds one color pair per phase. A phase blends from its own
// pair to the next phase's pair, so the gradient is continuous at every
// boundary, including midnight.
type SkyPalette [4]SkyPair

// DefaultSkyPalette is the muted garden palette.
func DefaultSkyPalette() SkyPalette {
	return SkyPalette{
		PhaseNight: {Top: mustHex("#050505"), Bottom: mustHex("#1a1a1a")},
		PhaseDawn:  {Top: mustHex("#4a3b3b"), Bottom: mustHex("#6b4c4c")},
		PhaseDay:   {Top: mustHex("#2a3a2a"), Bottom: mustHex("#3a4a3a")},
		PhaseDusk:  {Top: mustHex("#2d2424"), Bottom: mustHex("#4a3030")},
	}
}

// Colors returns the blended gradient for time-of-day t.
func (sp SkyPalette) Colors(t float64) SkyPair {
	t = finiteOr(t, 0.5)
	ts := TimeState{TimeOfDay: t}
	ph := ts.Phase()
	local := clamp01((t - float64(ph)*0.25) / 0.25)
	from := sp[ph]
	to := sp[(ph+1)%4]
	return SkyPair{
		Top:    BlendRGB(from.Top, to.Top, local),
		Bottom: BlendRGB(from.Bottom, to.Bottom, local),
	}
}

// Darkness returns the night overlay opacity for t under profile.
func Darkness(t float64, profile *WeatherProfile) float64 {
	t = finiteOr(t, 0.5)
	var d float64
	switch {
	case t < 0.25:
		d = 0.6 - t/0.25*0.6
	case t > 0.75:
		d = (t - 0.75) / 0.25 * 0.6
	}
	if profile != nil && profile.Dark {
		d = math.Max(d, 0.4)
	}
	return clamp01(d)
}
