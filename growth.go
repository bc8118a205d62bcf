package glade

import (
	"math"

	"github.com/tanema/gween/ease"
)

const (
	// RootingAge is the age in ms after which a plant sways at full strength.
	RootingAge = 12000
	// DeathDuration is how long a death animation plays, in ms.
	DeathDuration = 10000

	swayScale          = 0.8
	healthBarThreshold = 0.99
	lowHealthThreshold = 0.3
	flowerSnowStart    = 0.3
	snowFilterStart    = 0.05
)

// Progress returns growth progress in [0, 1] for a plant of the given age.
func Progress(age, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return clamp01(finiteOr(age/duration, 1))
}

// StemStage reveals the stem over the first 40% of growth.
func StemStage(progress float64) float64 {
	return math.Min(1, progress/0.4)
}

// LeafStage reveals leaves from 20% to 60% of growth with a cubic ease-out.
func LeafStage(progress float64) float64 {
	return easeOut(clamp01((progress - 0.2) / 0.4))
}

// FlowerStage reveals the flower over the second half of growth.
func FlowerStage(progress float64) float64 {
	return easeOut(clamp01((progress - 0.5) / 0.5))
}

// easeOut is the decelerating 1-(1-x)^3 curve.
func easeOut(x float64) float64 {
	if x >= 1 {
		return 1
	}
	return float64(ease.OutCubic(float32(x), 0, 1, 1))
}

// Iris is a circular reveal in sprite-local coordinates, where (0, 0) is
// the plant base and the sprite spans x in [-w/2, w/2], y in [-h, 0].
type Iris struct {
	CX, CY, Radius float64
}

// IrisFor returns the flower iris for a w×h sprite at stage in [0, 1]. At
// stage 1 the radius reaches every corner of the sprite.
func IrisFor(w, h, stage float64) Iris {
	maxR := math.Hypot(w/2, h)
	return Iris{CX: 0, CY: -0.9 * h, Radius: maxR * clamp01(stage)}
}

// LookParams is the shared per-frame input to ComputeLook.
type LookParams struct {
	Now             float64
	GrowthDuration  float64
	ProtectDuration float64
	SnowLevel       float64
	Physics         *PhysicsState
}

// PlantLook is the fully derived visual state of one plant for one frame.
type PlantLook struct {
	Progress float64
	Stem     float64
	Leaf     float64
	Flower   float64

	// Rotation is the sway angle in radians about the base.
	Rotation float64
	Alpha    float64
	OffsetX  float64
	OffsetY  float64
	Spin     float64
	ScaleY   float64

	// Saturation of 1 leaves color untouched; 0 is grey.
	Saturation float64
	// Brown is the damage tint weight in [0, 1].
	Brown float64
	// Whiten blends the whole plant to white (frost death).
	Whiten float64
	// FlowerSnow whitens only the flower layer.
	FlowerSnow float64
	// Frost is the mild whole-plant snow filter weight.
	Frost float64

	Dead       bool
	Death      DeathStyle
	DeathPhase float64

	Shielded       bool
	ShieldFraction float64
	ShieldPulse    float64

	HealthBar bool
	Health    float64
	HealthLow bool
}

// Sway returns the live (unfrozen) sway angle for p.
func Sway(p *Plant, phys *PhysicsState, now, age float64) float64 {
	individual := math.Sin(now*0.001+p.X) * 0.05
	turbulence := math.Sin(now*0.003+p.Y) * 0.15 * phys.Force
	raw := phys.BaseLean() + individual + turbulence
	maturity := math.Min(1, math.Max(0, age)/RootingAge)
	return raw * maturity * swayScale
}

// ComputeLook derives the visual treatment of p. It reads p and never
// modifies it.
func ComputeLook(p *Plant, lp LookParams) PlantLook {
	age := math.Max(0, lp.Now-p.CreatedAt)
	prog := Progress(age, lp.GrowthDuration)
	look := PlantLook{
		Progress:   prog,
		Stem:       StemStage(prog),
		Leaf:       LeafStage(prog),
		Flower:     FlowerStage(prog),
		Alpha:      1,
		ScaleY:     1,
		Saturation: 1,
		Health:     p.HealthFraction(),
	}

	freeze := FreezeFactor(lp.SnowLevel)
	look.Rotation = FrozenAngle(Sway(p, lp.Physics, lp.Now, age), p.frozenAngle(), freeze)

	if damage := 1 - look.Health; damage > 0 {
		look.Brown = damage
		look.Saturation = 1 - 0.6*damage
	}
	if lp.SnowLevel > snowFilterStart {
		look.Frost = clamp01(lp.SnowLevel * 0.4)
	}
	if lp.SnowLevel > flowerSnowStart {
		look.FlowerSnow = clamp01((lp.SnowLevel-flowerSnowStart)/0.4) * 0.8
	}

	if p.Dead() {
		look.Dead = true
		look.Death = DeathStyleFor(p.Stats.DeathCause)
		s := 1.0
		if p.Stats.DeathTime > 0 {
			s = clamp01((lp.Now - p.Stats.DeathTime) / DeathDuration)
		}
		look.DeathPhase = s
		look.Alpha = 1 - s
		switch look.Death {
		case DeathWindy:
			dir := sign(lp.Physics.Direction)
			look.OffsetX = dir * s * 300
			look.OffsetY = -s * 120
			look.Spin = dir * s * 2 * math.Pi
		case DeathCold:
			look.Whiten = math.Min(1, s*2)
		default:
			look.ScaleY = 1 - 0.7*s
			look.Saturation = math.Min(look.Saturation, 1-s)
		}
		return look
	}

	if p.ProtectedAt(lp.Now) && lp.ProtectDuration > 0 {
		look.Shielded = true
		look.ShieldFraction = clamp01((p.Stats.ProtectUntil - lp.Now) / lp.ProtectDuration)
		look.ShieldPulse = 0.15 + 0.1*math.Sin(lp.Now*0.005)
	}
	if look.Health < healthBarThreshold {
		look.HealthBar = true
		look.HealthLow = look.Health <= lowHealthThreshold
	}
	return look
}
