package glade

import "fmt"

// GroundPolicy picks how snow and puddle coverage evolve.
type GroundPolicy uint8

const (
	// GroundAuto follows external targets once any have been supplied and
	// runs the local policy until then.
	GroundAuto GroundPolicy = iota
	// GroundLocal derives coverage from the profile's temperature and dryness.
	GroundLocal
	// GroundExternal relaxes coverage toward supplied targets only.
	GroundExternal
)

func (p GroundPolicy) String() string {
	switch p {
	case GroundLocal:
		return "local"
	case GroundExternal:
		return "external"
	default:
		return "auto"
	}
}

// Set implements flag.Value.
func (p *GroundPolicy) Set(s string) error {
	v, err := ParseGroundPolicy(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParseGroundPolicy parses "auto", "local" or "external".
func ParseGroundPolicy(s string) (GroundPolicy, error) {
	switch s {
	case "", "auto":
		return GroundAuto, nil
	case "local":
		return GroundLocal, nil
	case "external":
		return GroundExternal, nil
	}
	return GroundAuto, fmt.Errorf("glade: unknown ground policy %q", s)
}

const (
	groundSmoothing = 0.01
	snowGrowth      = 0.0005
	snowMelt        = 0.002
	puddleDryScale  = 0.1

	// FreezeStart is the snow level where grass and plants begin to stiffen.
	FreezeStart = 0.4
	// FreezeFull is the snow level at which the frozen pose fully replaces sway.
	FreezeFull = 0.6
)

// GroundState holds snow and puddle coverage, both in [0, 1].
type GroundState struct {
	SnowLevel   float64
	PuddleLevel float64

	policy       GroundPolicy
	snowTarget   float64
	puddleTarget float64
	hasTargets   bool
}

// NewGroundState returns dry, snowless ground under policy.
func NewGroundState(policy GroundPolicy) GroundState {
	return GroundState{policy: policy}
}

// SetTargets supplies external coverage targets. Values are clamped.
func (g *GroundState) SetTargets(snow, puddle float64) {
	g.snowTarget = clamp01(finiteOr(snow, 0))
	g.puddleTarget = clamp01(finiteOr(puddle, 0))
	g.hasTargets = true
}

// External reports whether the external policy drives this frame.
func (g *GroundState) External() bool {
	switch g.policy {
	case GroundLocal:
		return false
	case GroundExternal:
		return true
	default:
		return g.hasTargets
	}
}

// Update advances both levels by one frame.
func (g *GroundState) Update(profile *WeatherProfile) {
	if g.External() {
		g.SnowLevel += (g.snowTarget - g.SnowLevel) * groundSmoothing
		g.PuddleLevel += (g.puddleTarget - g.PuddleLevel) * groundSmoothing
	} else {
		g.PuddleLevel -= profile.DrySpeed * puddleDryScale
		if profile.Temp < 0 {
			g.SnowLevel += snowGrowth
		} else {
			g.SnowLevel -= snowMelt
		}
	}
	g.SnowLevel = clamp01(finiteOr(g.SnowLevel, 0))
	g.PuddleLevel = clamp01(finiteOr(g.PuddleLevel, 0))
}

// FreezeFactor is 0 up to FreezeStart, 1 from FreezeFull, linear between.
func (g *GroundState) FreezeFactor() float64 {
	return FreezeFactor(g.SnowLevel)
}

// FreezeFactor maps a snow level to the frozen-pose blend weight.
func FreezeFactor(snow float64) float64 {
	return clamp01((snow - FreezeStart) / (FreezeFull - FreezeStart))
}

// FrozenAngle blends a live angle toward a fixed frozen angle by factor.
func FrozenAngle(dynamic, frozen, factor float64) float64 {
	return lerp(dynamic, frozen, clamp01(factor))
}
