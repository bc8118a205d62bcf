package glade

import (
	"math/rand/v2"
	"testing"
)

func newTestClimate() *Climate {
	return NewClimate(DefaultWeatherTable(), 10, rand.New(rand.NewPCG(1, 2)))
}

func TestClimateStartsSunny(t *testing.T) {
	c := newTestClimate()
	if c.Profile().Label != "sunny" {
		t.Errorf("initial profile = %q, want sunny", c.Profile().Label)
	}
	if c.Physics != NewPhysicsState() {
		t.Errorf("initial physics = %+v", c.Physics)
	}
}

func TestClimateSetWeather(t *testing.T) {
	c := newTestClimate()
	if !c.SetWeather("storm") {
		t.Error("SetWeather(storm) = false, want true")
	}
	if c.SetWeather("storm") {
		t.Error("repeated SetWeather(storm) = true, want false")
	}
	if !c.SetWeather("nonsense") {
		t.Error("SetWeather(nonsense) after storm = false, want true")
	}
	if c.Profile().Label != "sunny" {
		t.Errorf("unknown label resolved to %q, want sunny", c.Profile().Label)
	}
	if c.RequestedLabel() != "nonsense" {
		t.Errorf("RequestedLabel = %q, want nonsense", c.RequestedLabel())
	}
}

func TestLightningFlashBoundedAndDecays(t *testing.T) {
	c := newTestClimate()
	c.SetWeather("storm")
	strikes := 0
	since := -1 // frames since the last strike, -1 before the first
	for i := range 5000 {
		c.Update(Frame{Now: float64(i) * 16, Delta: 0.016})
		f := c.Flash()
		if f < 0 || f > 1 {
			t.Fatalf("frame %d: Flash = %v outside [0, 1]", i, f)
		}
		if c.Struck() {
			strikes++
			since = 0
			if f != 1 {
				t.Fatalf("frame %d: struck but Flash = %v", i, f)
			}
			continue
		}
		if since >= 0 {
			since++
			if since >= 20 && f != 0 {
				t.Fatalf("frame %d: Flash = %v %d frames after a strike, want 0", i, f, since)
			}
		}
	}
	if strikes == 0 {
		t.Fatal("no lightning in 5000 storm frames")
	}

	c.SetWeather("sunny")
	for i := range 20 {
		c.Update(Frame{Now: float64(5000+i) * 16})
		if c.Struck() {
			t.Fatal("lightning under a profile without lightning")
		}
	}
	if c.Flash() != 0 {
		t.Errorf("Flash = %v 20 frames after storm, want 0", c.Flash())
	}
}

func TestNoLightningWhenCalm(t *testing.T) {
	c := newTestClimate()
	for i := range 2000 {
		c.Update(Frame{Now: float64(i) * 16})
		if c.Flash() != 0 {
			t.Fatalf("frame %d: Flash = %v under sunny", i, c.Flash())
		}
	}
}

func TestAuroraSmoothing(t *testing.T) {
	c := newTestClimate()
	c.SetWeather("aurora_borealis")
	c.Update(Frame{Now: 0})
	if !approxEqual(c.Aurora(), auroraTarget*auroraSmoothing, 1e-12) {
		t.Errorf("Aurora after one frame = %v, want %v", c.Aurora(), auroraTarget*auroraSmoothing)
	}
	prev := c.Aurora()
	for i := 1; i < 2000; i++ {
		c.Update(Frame{Now: float64(i)})
		if c.Aurora() < prev || c.Aurora() > auroraTarget {
			t.Fatalf("frame %d: Aurora = %v (prev %v)", i, c.Aurora(), prev)
		}
		prev = c.Aurora()
	}
	if !approxEqual(c.Aurora(), auroraTarget, 1e-3) {
		t.Errorf("Aurora = %v, want ~%v", c.Aurora(), auroraTarget)
	}

	c.SetWeather("sunny")
	for i := range 2000 {
		c.Update(Frame{Now: float64(i)})
	}
	if c.Aurora() > 1e-3 {
		t.Errorf("Aurora = %v after clearing, want ~0", c.Aurora())
	}
}

func TestClimateTimeFollowsFrame(t *testing.T) {
	c := newTestClimate()
	now := 0.3 * MsPerDay / 10
	c.Update(Frame{Now: now})
	if !approxEqual(c.Time.TimeOfDay, 0.3, 1e-9) {
		t.Errorf("TimeOfDay = %v, want 0.3", c.Time.TimeOfDay)
	}
	if c.Time.Phase() != PhaseDawn {
		t.Errorf("Phase = %v, want dawn", c.Time.Phase())
	}
}
