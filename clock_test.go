package glade

import (
	"testing"
	"time"
)

func fakeClock(start time.Time) (*Clock, *time.Time) {
	now := start
	c := &Clock{now: func() time.Time { return now }}
	return c, &now
}

func TestClockFrameDelta(t *testing.T) {
	c, now := fakeClock(time.UnixMilli(1_000_000))
	f := c.Frame()
	if f.Delta != 0 {
		t.Errorf("first Delta = %v, want 0", f.Delta)
	}
	if f.Now != 1_000_000 {
		t.Errorf("Now = %v, want 1000000", f.Now)
	}
	*now = now.Add(16 * time.Millisecond)
	if f := c.Frame(); !approxEqual(f.Delta, 0.016, 1e-9) {
		t.Errorf("Delta = %v, want 0.016", f.Delta)
	}
	*now = now.Add(5 * time.Second)
	if f := c.Frame(); f.Delta != 0.25 {
		t.Errorf("Delta after stall = %v, want 0.25", f.Delta)
	}
}

func TestClockSync(t *testing.T) {
	c, now := fakeClock(time.UnixMilli(1_000_000))
	c.Sync(5_000_000)
	if !c.Synced() {
		t.Fatal("Synced = false after Sync")
	}
	if f := c.Frame(); f.Now != 5_000_000 {
		t.Errorf("Now = %v, want 5000000", f.Now)
	}

	// Small drift keeps the learnt offset.
	*now = now.Add(time.Second)
	c.Sync(5_001_500)
	if f := c.Frame(); f.Now != 5_001_000 {
		t.Errorf("Now = %v, want 5001000", f.Now)
	}

	// A forwarded server clock is adopted.
	c.Sync(9_000_000)
	if f := c.Frame(); f.Now != 9_000_000 {
		t.Errorf("Now = %v, want 9000000", f.Now)
	}
}

func TestClockSyncIgnoresInvalid(t *testing.T) {
	c, _ := fakeClock(time.UnixMilli(1000))
	c.Sync(0)
	c.Sync(-5)
	if c.Synced() {
		t.Error("Synced = true after invalid times")
	}
}
