package glade

import (
	"errors"
	"strings"
	"testing"
)

func TestLookupFallsBackToSunny(t *testing.T) {
	table := DefaultWeatherTable()
	for _, label := range []string{"xyz", "", "SUNNY", "rain "} {
		p := table.Lookup(label)
		if p == nil {
			t.Fatalf("Lookup(%q) = nil", label)
		}
		if p.Label != DefaultWeather {
			t.Errorf("Lookup(%q).Label = %q, want %q", label, p.Label, DefaultWeather)
		}
	}
}

func TestLookupKnownLabels(t *testing.T) {
	table := DefaultWeatherTable()
	for _, label := range table.Labels() {
		if got := table.Lookup(label).Label; got != label {
			t.Errorf("Lookup(%q).Label = %q", label, got)
		}
	}
	if n := len(table.Labels()); n != 15 {
		t.Errorf("len(Labels) = %d, want 15", n)
	}
}

func TestProfileStrict(t *testing.T) {
	table := DefaultWeatherTable()
	if _, err := table.Profile("storm"); err != nil {
		t.Errorf("Profile(storm) error = %v", err)
	}
	_, err := table.Profile("xyz")
	if !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("Profile(xyz) error = %v, want ErrUnknownProfile", err)
	}
}

func TestNewWeatherTableValidation(t *testing.T) {
	sunny := WeatherProfile{Label: "sunny", Visibility: 1}
	tests := []struct {
		name     string
		profiles []WeatherProfile
	}{
		{"no default", []WeatherProfile{{Label: "rain", Visibility: 1}}},
		{"empty label", []WeatherProfile{sunny, {Visibility: 1}}},
		{"duplicate", []WeatherProfile{sunny, sunny}},
		{"zero visibility", []WeatherProfile{sunny, {Label: "a", Visibility: 0}}},
		{"visibility above one", []WeatherProfile{sunny, {Label: "a", Visibility: 1.5}}},
		{"negative rate", []WeatherProfile{sunny, {Label: "a", Visibility: 1, RainRate: -1}}},
		{"debris probability", []WeatherProfile{sunny, {Label: "a", Visibility: 1, DebrisRate: 2}}},
		{"meteor probability", []WeatherProfile{sunny, {Label: "a", Visibility: 1, MeteorRate: -0.1}}},
	}
	for _, tt := range tests {
		_, err := NewWeatherTable(tt.profiles)
		if !errors.Is(err, ErrInvalidProfile) {
			t.Errorf("%s: error = %v, want ErrInvalidProfile", tt.name, err)
		}
	}
}

func TestDefaultProfilesValid(t *testing.T) {
	for _, p := range DefaultWeatherProfiles() {
		if err := p.validate(); err != nil {
			t.Errorf("%s: %v", p.Label, err)
		}
	}
}

func TestLoadWeatherTable(t *testing.T) {
	src := `[
		{"label": "sunny", "speed": 0.01, "force": 0.05, "temp": 25},
		{"label": "acid", "display": "Acid Rain", "speed": 0.1, "force": 0.2, "visibility": 0.5, "rain_rate": 8,
		 "tint": {"R": 0.2, "G": 0.8, "B": 0.2, "A": 0.3}}
	]`
	table, err := LoadWeatherTable(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if v := table.Lookup("sunny").Visibility; v != 1 {
		t.Errorf("sunny visibility = %v, want default 1", v)
	}
	acid := table.Lookup("acid")
	if acid.Visibility != 0.5 || acid.RainRate != 8 {
		t.Errorf("acid = %+v", acid)
	}
	if acid.Tint == nil || acid.Tint.G != 0.8 {
		t.Errorf("acid tint = %v, want G 0.8", acid.Tint)
	}
	if got := acid.DisplayLabel(false); got != "Acid Rain" {
		t.Errorf("DisplayLabel = %q, want %q", got, "Acid Rain")
	}
}

func TestLoadWeatherTableErrors(t *testing.T) {
	if _, err := LoadWeatherTable(strings.NewReader("{")); err == nil {
		t.Error("expected error for malformed JSON")
	}
	_, err := LoadWeatherTable(strings.NewReader(`[{"label": "rain"}]`))
	if !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("missing sunny: error = %v, want ErrInvalidProfile", err)
	}
}

func TestDisplayLabelClearNight(t *testing.T) {
	table := DefaultWeatherTable()
	sunny := table.Lookup("sunny")
	if got := sunny.DisplayLabel(true); got != "Clear Night" {
		t.Errorf("sunny at night = %q, want Clear Night", got)
	}
	if got := sunny.DisplayLabel(false); got != "Sunny" {
		t.Errorf("sunny by day = %q, want Sunny", got)
	}
	if got := table.Lookup("rain").DisplayLabel(true); got != "Rain" {
		t.Errorf("rain at night = %q, want Rain", got)
	}
}

func TestFogCategory(t *testing.T) {
	table := DefaultWeatherTable()
	tests := []struct {
		label string
		want  FogCategory
	}{
		{"fog", FogPlain},
		{"blizzard", FogCold},
		{"dust_storm", FogDust},
		{"volcanic_ash", FogAsh},
	}
	for _, tt := range tests {
		if got := table.Lookup(tt.label).FogCategory(); got != tt.want {
			t.Errorf("%s fog = %d, want %d", tt.label, got, tt.want)
		}
	}
}
