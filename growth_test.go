package glade

import (
	"math"
	"testing"
)

func calmPhysics() *PhysicsState {
	p := NewPhysicsState()
	return &p
}

func testLook(p *Plant, now float64) PlantLook {
	return ComputeLook(p, LookParams{
		Now:             now,
		GrowthDuration:  5000,
		ProtectDuration: 60000,
		Physics:         calmPhysics(),
	})
}

func TestProgressMonotonic(t *testing.T) {
	prev := -1.0
	for age := -100.0; age <= 6000; age += 37 {
		p := Progress(age, 5000)
		if p < prev {
			t.Fatalf("Progress(%v) = %v < previous %v", age, p, prev)
		}
		if p < 0 || p > 1 {
			t.Fatalf("Progress(%v) = %v outside [0, 1]", age, p)
		}
		prev = p
	}
	for _, age := range []float64{5000, 5001, 1e9} {
		if got := Progress(age, 5000); got != 1 {
			t.Errorf("Progress(%v) = %v, want 1", age, got)
		}
	}
	if got := Progress(10, 0); got != 1 {
		t.Errorf("Progress with zero duration = %v, want 1", got)
	}
}

func TestStages(t *testing.T) {
	tests := []struct {
		progress           float64
		stem, leaf, flower float64
	}{
		{0, 0, 0, 0},
		{0.2, 0.5, 0, 0},
		{0.4, 1, 0.875, 0},
		{0.6, 1, 1, 0.488},
		{0.75, 1, 1, 0.875},
		{1, 1, 1, 1},
	}
	for _, tt := range tests {
		if got := StemStage(tt.progress); !approxEqual(got, tt.stem, 1e-3) {
			t.Errorf("StemStage(%v) = %v, want %v", tt.progress, got, tt.stem)
		}
		if got := LeafStage(tt.progress); !approxEqual(got, tt.leaf, 1e-3) {
			t.Errorf("LeafStage(%v) = %v, want %v", tt.progress, got, tt.leaf)
		}
		if got := FlowerStage(tt.progress); !approxEqual(got, tt.flower, 1e-3) {
			t.Errorf("FlowerStage(%v) = %v, want %v", tt.progress, got, tt.flower)
		}
	}
}

func TestIrisCoversSprite(t *testing.T) {
	w, h := 100.0, 200.0
	iris := IrisFor(w, h, 1)
	for _, c := range [][2]float64{{-w / 2, 0}, {w / 2, 0}, {-w / 2, -h}, {w / 2, -h}} {
		d := math.Hypot(c[0]-iris.CX, c[1]-iris.CY)
		if d > iris.Radius {
			t.Errorf("corner %v at distance %v outside radius %v", c, d, iris.Radius)
		}
	}
	if r := IrisFor(w, h, 0).Radius; r != 0 {
		t.Errorf("stage 0 radius = %v, want 0", r)
	}
}

func TestSwayGrowsWithAge(t *testing.T) {
	phys := &PhysicsState{Force: 0.5, Direction: 1}
	p := &Plant{X: 10, Y: 20}
	if got := Sway(p, phys, 1000, 0); got != 0 {
		t.Errorf("Sway at age 0 = %v, want 0", got)
	}
	half := Sway(p, phys, 1000, RootingAge/2)
	full := Sway(p, phys, 1000, RootingAge)
	if !approxEqual(half, full/2, 1e-12) {
		t.Errorf("half-rooted sway = %v, want %v", half, full/2)
	}
	if got := Sway(p, phys, 1000, RootingAge*3); !approxEqual(got, full, 1e-12) {
		t.Errorf("sway beyond rooting = %v, want %v", got, full)
	}
}

func TestFrozenPlantHoldsPose(t *testing.T) {
	p := &Plant{ID: "17", CreatedAt: 0}
	lp := LookParams{Now: 50000, GrowthDuration: 5000, SnowLevel: FreezeFull, Physics: &PhysicsState{Force: 1, Direction: 1}}
	a := ComputeLook(p, lp)
	lp.Now += 777
	lp.Physics.Direction = -1
	b := ComputeLook(p, lp)
	if !approxEqual(a.Rotation, b.Rotation, 1e-12) || !approxEqual(a.Rotation, p.frozenAngle(), 1e-12) {
		t.Errorf("frozen rotations %v/%v, want %v", a.Rotation, b.Rotation, p.frozenAngle())
	}
	if math.Abs(a.Rotation) > 0.15+1e-12 {
		t.Errorf("frozen angle %v outside [-0.15, 0.15]", a.Rotation)
	}
}

func TestNilStatsDrawsHealthy(t *testing.T) {
	p := &Plant{ID: "a", CreatedAt: 0}
	look := testLook(p, 10000)
	if look.Dead || look.Shielded || look.HealthBar {
		t.Errorf("nil stats look = %+v", look)
	}
	if look.Alpha != 1 || look.Saturation != 1 || look.Brown != 0 {
		t.Errorf("nil stats colour = alpha %v sat %v brown %v", look.Alpha, look.Saturation, look.Brown)
	}
}

func TestHealthBar(t *testing.T) {
	tests := []struct {
		hp       float64
		bar, low bool
	}{
		{100, false, false},
		{99.5, false, false},
		{98, true, false},
		{30, true, true},
		{5, true, true},
	}
	for _, tt := range tests {
		p := &Plant{Stats: &PlantStats{HP: tt.hp, MaxHP: 100}}
		look := testLook(p, 10000)
		if look.HealthBar != tt.bar || look.HealthLow != tt.low {
			t.Errorf("hp %v: bar=%v low=%v, want %v/%v", tt.hp, look.HealthBar, look.HealthLow, tt.bar, tt.low)
		}
	}
}

func TestDamageTint(t *testing.T) {
	p := &Plant{Stats: &PlantStats{HP: 50, MaxHP: 100}}
	look := testLook(p, 10000)
	if !approxEqual(look.Brown, 0.5, 1e-12) || !approxEqual(look.Saturation, 0.7, 1e-12) {
		t.Errorf("brown %v sat %v, want 0.5/0.7", look.Brown, look.Saturation)
	}
}

func TestShield(t *testing.T) {
	p := &Plant{Stats: &PlantStats{HP: 100, MaxHP: 100, ProtectUntil: 40000}}
	look := testLook(p, 10000)
	if !look.Shielded {
		t.Fatal("plant not shielded before ProtectUntil")
	}
	if !approxEqual(look.ShieldFraction, 0.5, 1e-12) {
		t.Errorf("ShieldFraction = %v, want 0.5", look.ShieldFraction)
	}
	if look.ShieldPulse < 0.05 || look.ShieldPulse > 0.25 {
		t.Errorf("ShieldPulse = %v outside [0.05, 0.25]", look.ShieldPulse)
	}
	if testLook(p, 40000).Shielded {
		t.Error("plant shielded at ProtectUntil")
	}
}

func TestDeathStyles(t *testing.T) {
	tests := []struct {
		cause string
		want  DeathStyle
	}{
		{"storm", DeathWindy},
		{"tornado", DeathWindy},
		{"snow", DeathCold},
		{"blizzard", DeathCold},
		{"drought", DeathWither},
		{"", DeathWither},
	}
	for _, tt := range tests {
		if got := DeathStyleFor(tt.cause); got != tt.want {
			t.Errorf("DeathStyleFor(%q) = %v, want %v", tt.cause, got, tt.want)
		}
	}
}

func TestDeathAnimation(t *testing.T) {
	dead := func(cause string) *Plant {
		return &Plant{Stats: &PlantStats{Dead: true, DeathTime: 10000, DeathCause: cause, ProtectUntil: 1e9}}
	}

	mid := testLook(dead("storm"), 15000)
	if !mid.Dead || mid.Death != DeathWindy {
		t.Fatalf("look = %+v", mid)
	}
	if !approxEqual(mid.Alpha, 0.5, 1e-12) || !approxEqual(mid.OffsetX, 150, 1e-9) {
		t.Errorf("windy mid: alpha %v offsetX %v, want 0.5/150", mid.Alpha, mid.OffsetX)
	}
	if mid.Shielded || mid.HealthBar {
		t.Error("dead plant drew shield or health bar")
	}

	cold := testLook(dead("snow"), 12500)
	if !approxEqual(cold.Whiten, 0.5, 1e-12) {
		t.Errorf("cold Whiten = %v, want 0.5", cold.Whiten)
	}

	wither := testLook(dead("drought"), 20000)
	if wither.Alpha != 0 || !approxEqual(wither.ScaleY, 0.3, 1e-12) || wither.Saturation != 0 {
		t.Errorf("wither end: alpha %v scaleY %v sat %v", wither.Alpha, wither.ScaleY, wither.Saturation)
	}

	unknown := &Plant{Stats: &PlantStats{Dead: true}}
	if a := testLook(unknown, 5).Alpha; a != 0 {
		t.Errorf("dead without DeathTime alpha = %v, want 0", a)
	}
}

func TestSnowFilters(t *testing.T) {
	p := &Plant{}
	lp := LookParams{Now: 10000, GrowthDuration: 5000, Physics: calmPhysics()}
	if look := ComputeLook(p, lp); look.Frost != 0 || look.FlowerSnow != 0 {
		t.Errorf("no snow: frost %v flowerSnow %v", look.Frost, look.FlowerSnow)
	}
	lp.SnowLevel = 0.7
	look := ComputeLook(p, lp)
	if !approxEqual(look.Frost, 0.28, 1e-12) {
		t.Errorf("Frost = %v, want 0.28", look.Frost)
	}
	if !approxEqual(look.FlowerSnow, 0.8, 1e-9) {
		t.Errorf("FlowerSnow = %v, want 0.8", look.FlowerSnow)
	}
}
