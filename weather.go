package glade

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DefaultWeather is the label every unknown or empty weather label resolves to.
const DefaultWeather = "sunny"

var (
	// ErrUnknownProfile is returned by WeatherTable.Profile for labels the
	// table does not contain.
	ErrUnknownProfile = errors.New("glade: unknown weather profile")
	// ErrInvalidProfile wraps every validation failure in NewWeatherTable.
	ErrInvalidProfile = errors.New("glade: invalid weather profile")
)

// FogCategory selects the fog tint drawn for low-visibility weather.
type FogCategory uint8

const (
	FogPlain FogCategory = iota // neutral grey haze
	FogCold                     // blue-white, below freezing
	FogDust                     // sandy brown
	FogAsh                      // reddish soot
)

// WeatherProfile is the static bundle of wind, ground and particle targets
// for one weather condition. Every optional field has an explicit zero default.
type WeatherProfile struct {
	Label   string `json:"label"`
	Display string `json:"display,omitempty"`

	// Speed and Force are targets the physics state smooths toward.
	Speed float64 `json:"speed"`
	Force float64 `json:"force"`
	// Temp is in degrees Celsius. Below zero, local ground policy accumulates snow.
	Temp float64 `json:"temp"`
	// DrySpeed is how fast puddles dry. Negative values make puddles grow.
	DrySpeed float64 `json:"dry_speed"`
	// Visibility in (0, 1]. Below 1 the compositor draws fog.
	Visibility float64 `json:"visibility"`

	RainRate float64 `json:"rain_rate,omitempty"`
	SnowRate float64 `json:"snow_rate,omitempty"`
	HailRate float64 `json:"hail_rate,omitempty"`
	AshRate  float64 `json:"ash_rate,omitempty"`
	// DebrisRate and MeteorRate are per-frame spawn probabilities.
	DebrisRate float64 `json:"debris_rate,omitempty"`
	MeteorRate float64 `json:"meteor_rate,omitempty"`

	Lightning bool `json:"lightning,omitempty"`
	Aurora    bool `json:"aurora,omitempty"`
	Dark      bool `json:"dark,omitempty"`

	// Tint, when non-nil, is multiplied over the whole frame.
	Tint *Color `json:"tint,omitempty"`
}

// Precipitating reports whether any falling-particle rate is active.
func (p *WeatherProfile) Precipitating() bool {
	return p.RainRate > 0 || p.SnowRate > 0 || p.HailRate > 0 || p.AshRate > 0
}

// FogCategory derives the fog tint family for this profile.
func (p *WeatherProfile) FogCategory() FogCategory {
	switch {
	case p.Label == "dust_storm":
		return FogDust
	case p.AshRate > 0:
		return FogAsh
	case p.Temp < 0:
		return FogCold
	default:
		return FogPlain
	}
}

// DisplayLabel returns the user-facing label, substituting "Clear Night"
// for clear weather after dark.
func (p *WeatherProfile) DisplayLabel(night bool) string {
	if night && p.Label == DefaultWeather {
		return "Clear Night"
	}
	if p.Display != "" {
		return p.Display
	}
	return p.Label
}

func (p *WeatherProfile) validate() error {
	if p.Label == "" {
		return fmt.Errorf("%w: empty label", ErrInvalidProfile)
	}
	if p.Visibility <= 0 || p.Visibility > 1 {
		return fmt.Errorf("%w: %s: visibility %v outside (0, 1]", ErrInvalidProfile, p.Label, p.Visibility)
	}
	for name, v := range map[string]float64{
		"rain_rate": p.RainRate, "snow_rate": p.SnowRate,
		"hail_rate": p.HailRate, "ash_rate": p.AshRate,
		"speed": p.Speed, "force": p.Force,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s: negative %s", ErrInvalidProfile, p.Label, name)
		}
	}
	if p.DebrisRate < 0 || p.DebrisRate > 1 {
		return fmt.Errorf("%w: %s: debris_rate %v is not a probability", ErrInvalidProfile, p.Label, p.DebrisRate)
	}
	if p.MeteorRate < 0 || p.MeteorRate > 1 {
		return fmt.Errorf("%w: %s: meteor_rate %v is not a probability", ErrInvalidProfile, p.Label, p.MeteorRate)
	}
	return nil
}

// WeatherTable is an immutable, validated set of profiles keyed by label.
type WeatherTable struct {
	profiles map[string]*WeatherProfile
	order    []string
	fallback *WeatherProfile
}

// NewWeatherTable validates profiles and indexes them by label. The table
// must contain the DefaultWeather profile, which backs every failed lookup.
func NewWeatherTable(profiles []WeatherProfile) (*WeatherTable, error) {
	t := &WeatherTable{profiles: make(map[string]*WeatherProfile, len(profiles))}
	for i := range profiles {
		p := profiles[i]
		if err := p.validate(); err != nil {
			return nil, err
		}
		if _, dup := t.profiles[p.Label]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidProfile, p.Label)
		}
		t.profiles[p.Label] = &p
		t.order = append(t.order, p.Label)
	}
	fb, ok := t.profiles[DefaultWeather]
	if !ok {
		return nil, fmt.Errorf("%w: table has no %q profile", ErrInvalidProfile, DefaultWeather)
	}
	t.fallback = fb
	return t, nil
}

// LoadWeatherTable decodes a JSON array of profiles. A profile without a
// visibility field is treated as fully clear.
func LoadWeatherTable(r io.Reader) (*WeatherTable, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("glade: decode weather table: %w", err)
	}
	profiles := make([]WeatherProfile, 0, len(raw))
	for i, msg := range raw {
		p := WeatherProfile{Visibility: 1}
		if err := json.Unmarshal(msg, &p); err != nil {
			return nil, fmt.Errorf("glade: decode weather profile %d: %w", i, err)
		}
		profiles = append(profiles, p)
	}
	return NewWeatherTable(profiles)
}

// Lookup returns the profile for label, or the default profile when the
// label is unknown or empty. It never fails.
func (t *WeatherTable) Lookup(label string) *WeatherProfile {
	if p, ok := t.profiles[label]; ok {
		return p
	}
	return t.fallback
}

// Profile is the strict form of Lookup.
func (t *WeatherTable) Profile(label string) (*WeatherProfile, error) {
	p, ok := t.profiles[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, label)
	}
	return p, nil
}

// Labels returns profile labels in table order.
func (t *WeatherTable) Labels() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// DefaultWeatherProfiles returns the built-in weather catalog.
func DefaultWeatherProfiles() []WeatherProfile {
	tint := func(r, g, b uint8, a float64) *Color {
		c := RGBA255(r, g, b, a)
		return &c
	}
	return []WeatherProfile{
		{Label: "sunny", Display: "Sunny", Speed: 0.01, Force: 0.05, Temp: 25, DrySpeed: 0.005, Visibility: 1},
		{Label: "cloudy", Display: "Cloudy", Speed: 0.02, Force: 0.08, Temp: 20, DrySpeed: 0.002, Visibility: 0.9},
		{Label: "breeze", Display: "Breeze", Speed: 0.1, Force: 0.15, Temp: 22, DrySpeed: 0.008, Visibility: 1},
		{Label: "rain", Display: "Rain", Speed: 0.05, Force: 0.1, Temp: 18, DrySpeed: -0.01, Visibility: 0.8, RainRate: 5, Dark: true},
		{Label: "storm", Display: "Storm", Speed: 0.2, Force: 0.4, Temp: 15, DrySpeed: -0.02, Visibility: 0.6, RainRate: 20, Lightning: true, Dark: true},
		{Label: "gale", Display: "Gale", Speed: 0.5, Force: 0.8, Temp: 15, DrySpeed: 0.02, Visibility: 0.7, DebrisRate: 0.5},
		{Label: "snow", Display: "Snow", Speed: 0.02, Force: 0.1, Temp: -5, DrySpeed: 0.001, Visibility: 0.7, SnowRate: 5, Dark: true},
		{Label: "blizzard", Display: "Blizzard", Speed: 0.4, Force: 1.0, Temp: -15, Visibility: 0.2, SnowRate: 20, Dark: true},
		{Label: "hail", Display: "Hail", Speed: 0.15, Force: 0.5, Temp: 0, DrySpeed: -0.01, Visibility: 0.8, HailRate: 15, Dark: true},
		{Label: "fog", Display: "Fog", Speed: 0.005, Force: 0.05, Temp: 10, DrySpeed: -0.001, Visibility: 0.2, Dark: true},
		{Label: "tornado", Display: "Tornado", Speed: 0.6, Force: 2.0, Temp: 15, Visibility: 0.5, DebrisRate: 1.0, Dark: true, Tint: tint(42, 42, 42, 0.5)},
		{Label: "dust_storm", Display: "Dust Storm", Speed: 0.3, Force: 0.6, Temp: 30, DrySpeed: 0.05, Visibility: 0.4, DebrisRate: 0.8, Tint: tint(194, 178, 128, 0.4)},
		{Label: "volcanic_ash", Display: "Volcanic Ash", Speed: 0.01, Force: 0.05, Temp: 28, DrySpeed: 0.02, Visibility: 0.3, AshRate: 10, Dark: true, Tint: tint(50, 20, 20, 0.3)},
		{Label: "meteor_shower", Display: "Meteor Shower", Speed: 0.01, Force: 0.05, Temp: 20, Visibility: 1, MeteorRate: 0.05, Dark: true},
		{Label: "aurora_borealis", Display: "Aurora", Force: 0.02, Temp: -10, Visibility: 1, Aurora: true, Dark: true},
	}
}

// DefaultWeatherTable builds the table from DefaultWeatherProfiles.
func DefaultWeatherTable() *WeatherTable {
	t, err := NewWeatherTable(DefaultWeatherProfiles())
	if err != nil {
		panic(err)
	}
	return t
}
