package glade

import (
	"hash/fnv"
	"math"
)

// DeathStyle is the visual death treatment, chosen from the recorded cause.
type DeathStyle uint8

const (
	DeathWither DeathStyle = iota // shrink, desaturate and fade
	DeathWindy                    // blown away: translate, spin and fade
	DeathCold                     // frost: whiten and fade
)

// DeathStyleFor classifies a death cause label.
func DeathStyleFor(cause string) DeathStyle {
	switch cause {
	case "storm", "tornado":
		return DeathWindy
	case "snow", "blizzard":
		return DeathCold
	default:
		return DeathWither
	}
}

// PlantStats is the externally computed health record. The garden reads it
// and never writes it. Times are in-world milliseconds.
type PlantStats struct {
	HP           float64
	MaxHP        float64
	Vit          float64
	Dead         bool
	DeathTime    float64
	DeathCause   string
	ProtectUntil float64
}

// Plant is one placed plant. Image fields are resource identifiers resolved
// through the garden's ResourceCache.
type Plant struct {
	ID          string
	X, Y        float64
	Author      string
	StemImage   string
	LeafImage   string
	FlowerImage string
	// CreatedAt is the in-world creation time in milliseconds.
	CreatedAt float64
	// Stats may be nil: the plant is then drawn healthy, alive and unprotected.
	Stats *PlantStats
}

// HealthFraction returns hp/maxHp in [0, 1], or 1 when unknown.
func (p *Plant) HealthFraction() float64 {
	if p.Stats == nil || p.Stats.MaxHP <= 0 {
		return 1
	}
	return clamp01(finiteOr(p.Stats.HP/p.Stats.MaxHP, 1))
}

// Dead reports whether the stats mark the plant dead.
func (p *Plant) Dead() bool {
	return p.Stats != nil && p.Stats.Dead
}

// ProtectedAt reports whether a shield is active at now.
func (p *Plant) ProtectedAt(now float64) bool {
	return p.Stats != nil && p.Stats.ProtectUntil > now
}

// frozenAngle is the fixed pose a plant settles into under deep snow, derived
// from its ID so it is stable across frames and reloads.
func (p *Plant) frozenAngle() float64 {
	return hashAngle(p.ID, 0.15)
}

// hashAngle maps s to a deterministic angle in [-spread, spread].
func hashAngle(s string, spread float64) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	u := float64(h.Sum32()) / math.MaxUint32
	return (u*2 - 1) * spread
}
