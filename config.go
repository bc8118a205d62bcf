package glade

import (
	"errors"
	"flag"
	"fmt"
)

// HitBox is the pick rectangle around a plant's (sway-corrected) base.
type HitBox struct {
	HalfWidth  float64
	HalfHeight float64
}

// Config holds the tunables of one garden.
type Config struct {
	// TimeScale maps one in-world millisecond to this many simulated milliseconds.
	TimeScale float64
	// GrowthDuration is the ms from planting to full bloom.
	GrowthDuration float64
	// ProtectDuration is the full length of a shield in ms, used for the arc.
	ProtectDuration float64
	MaxParticles    int

	// WorldWidth is the scrollable world width; 0 means the viewport width.
	WorldWidth float64
	// GrassDensity scales the default blade count.
	GrassDensity float64
	PuddleCount  int
	BeamCount    int

	// PlantWidth and PlantHeight are the on-screen sprite size.
	PlantWidth  float64
	PlantHeight float64
	HitBox      HitBox

	Ground GroundPolicy
	Seed   uint64
	Debug  bool
}

// DefaultConfig returns the standard garden configuration.
func DefaultConfig() Config {
	return Config{
		TimeScale:       10,
		GrowthDuration:  5000,
		ProtectDuration: 60000,
		MaxParticles:    DefaultMaxParticles,
		GrassDensity:    1,
		PuddleCount:     20,
		BeamCount:       5,
		PlantWidth:      100,
		PlantHeight:     200,
		HitBox:          HitBox{HalfWidth: 40, HalfHeight: 100},
		Seed:            42,
	}
}

// Bind attaches the configuration to the provided FlagSet. Call Validate
// after parsing.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Float64Var(&c.TimeScale, "time-scale", c.TimeScale, "simulated seconds per real second")
	fs.Float64Var(&c.GrowthDuration, "growth", c.GrowthDuration, "growth duration in ms")
	fs.Float64Var(&c.ProtectDuration, "protect", c.ProtectDuration, "shield duration in ms")
	fs.IntVar(&c.MaxParticles, "particles", c.MaxParticles, "live particle cap")
	fs.Float64Var(&c.WorldWidth, "world", c.WorldWidth, "world width in pixels (0 = window width)")
	fs.Float64Var(&c.GrassDensity, "grass", c.GrassDensity, "grass density multiplier")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "log frame stats and load failures")
	fs.Var(&c.Ground, "ground", "ground policy: auto, local or external")
}

// Validate checks ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Ground > GroundExternal {
		errs = append(errs, fmt.Errorf("unknown ground policy %d", c.Ground))
	}
	if c.TimeScale <= 0 {
		errs = append(errs, fmt.Errorf("time scale must be positive, got %v", c.TimeScale))
	}
	if c.GrowthDuration <= 0 {
		errs = append(errs, fmt.Errorf("growth duration must be positive, got %v", c.GrowthDuration))
	}
	if c.ProtectDuration <= 0 {
		errs = append(errs, fmt.Errorf("protect duration must be positive, got %v", c.ProtectDuration))
	}
	if c.MaxParticles < 0 {
		errs = append(errs, fmt.Errorf("particle cap must not be negative, got %d", c.MaxParticles))
	}
	if c.WorldWidth < 0 {
		errs = append(errs, fmt.Errorf("world width must not be negative, got %v", c.WorldWidth))
	}
	if c.PlantWidth <= 0 || c.PlantHeight <= 0 {
		errs = append(errs, fmt.Errorf("plant size must be positive, got %vx%v", c.PlantWidth, c.PlantHeight))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("glade: invalid config: %w", err)
	}
	return nil
}
