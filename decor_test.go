package glade

import (
	"math/rand/v2"
	"slices"
	"testing"
)

var testDecor = DecorParams{
	WorldWidth:   1920,
	WorldHeight:  1080,
	ViewWidth:    960,
	GrassDensity: 1,
	PuddleCount:  20,
	BeamCount:    5,
}

func TestGenerateDecorCounts(t *testing.T) {
	d := GenerateDecor(testDecor, rand.New(rand.NewPCG(1, 1)))
	if n := len(d.Grass); n == 0 || n > 8000 {
		t.Errorf("grass blades = %d, want (0, 8000]", n)
	}
	if len(d.Puddles) != 20 {
		t.Errorf("puddles = %d, want 20", len(d.Puddles))
	}
	if len(d.Beams) != 5 {
		t.Errorf("beams = %d, want 5", len(d.Beams))
	}
}

func TestGenerateDecorSortedAndInBounds(t *testing.T) {
	d := GenerateDecor(testDecor, rand.New(rand.NewPCG(2, 2)))
	if !slices.IsSortedFunc(d.Grass, func(a, b GrassBlade) int {
		switch {
		case a.Y < b.Y:
			return -1
		case a.Y > b.Y:
			return 1
		}
		return 0
	}) {
		t.Error("grass not sorted by Y")
	}
	for _, b := range d.Grass {
		if b.X < 0 || b.X > testDecor.WorldWidth || b.Y < 0 || b.Y > testDecor.WorldHeight {
			t.Fatalf("blade at (%v,%v) outside world", b.X, b.Y)
		}
		if b.Height <= 0 || b.Width < 1 || b.Width > 2.5 {
			t.Fatalf("blade size %vx%v", b.Width, b.Height)
		}
	}
	for _, p := range d.Puddles {
		if p.Y < testDecor.WorldHeight*0.3 {
			t.Errorf("puddle at y %v above the ground band", p.Y)
		}
	}
}

func TestGenerateDecorDeterministic(t *testing.T) {
	a := GenerateDecor(testDecor, rand.New(rand.NewPCG(9, 9)))
	b := GenerateDecor(testDecor, rand.New(rand.NewPCG(9, 9)))
	if len(a.Grass) != len(b.Grass) || a.Grass[0] != b.Grass[0] || a.Beams[0] != b.Beams[0] {
		t.Error("same seed produced different decor")
	}
}

func TestDecorNeedsRegen(t *testing.T) {
	d := GenerateDecor(testDecor, rand.New(rand.NewPCG(1, 1)))
	p := testDecor
	if d.NeedsRegen(p) {
		t.Error("NeedsRegen with identical params")
	}
	p.ViewWidth += 40
	if d.NeedsRegen(p) {
		t.Error("NeedsRegen after a 40px view change")
	}
	p.ViewWidth += 20
	if !d.NeedsRegen(p) {
		t.Error("no regen after a 60px view change")
	}
	p = testDecor
	p.WorldWidth = 3000
	if !d.NeedsRegen(p) {
		t.Error("no regen after a world change")
	}
}

func TestBeamsWrap(t *testing.T) {
	d := &Decor{worldW: 1000, Beams: []LightBeam{{X: 1400, Speed: 1}, {X: -400, Speed: 1}}}
	d.UpdateBeams(1)
	if d.Beams[0].X != -400 {
		t.Errorf("beam 0 X = %v, want wrapped to -400", d.Beams[0].X)
	}
	if d.Beams[1].X != -399 {
		t.Errorf("beam 1 X = %v, want -399", d.Beams[1].X)
	}
	d.Beams[1].X = -400
	d.UpdateBeams(-1)
	if d.Beams[1].X != 1400 {
		t.Errorf("beam 1 X = %v, want wrapped to 1400", d.Beams[1].X)
	}
}

func TestBeamPulseRange(t *testing.T) {
	b := LightBeam{}
	for i := range 700 {
		b.AlphaPhase = float64(i) * 0.01
		if p := b.Pulse(); p < 0 || p > 1 {
			t.Fatalf("Pulse = %v outside [0, 1]", p)
		}
	}
}
