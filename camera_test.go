package glade

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCameraClampsAfterUpdate(t *testing.T) {
	c := NewCamera(800, 600, 3000)
	c.X = 3000 + 5000
	c.Update(0)
	if c.X != 2200 {
		t.Errorf("X = %v, want 2200", c.X)
	}
	c.X = -50
	c.Update(0)
	if c.X != 0 {
		t.Errorf("X = %v, want 0", c.X)
	}
}

func TestCameraWorldNarrowerThanView(t *testing.T) {
	c := NewCamera(800, 600, 300)
	if c.WorldWidth != 800 || c.Active() {
		t.Errorf("WorldWidth = %v Active = %v, want 800/false", c.WorldWidth, c.Active())
	}
	c.PanBy(100)
	if c.X != 0 {
		t.Errorf("X = %v, want 0", c.X)
	}
}

func TestCameraScreenWorldRoundTrip(t *testing.T) {
	c := NewCamera(800, 600, 3000)
	c.PanBy(450)
	wx, wy := c.ScreenToWorld(10, 20)
	if wx != 460 || wy != 20 {
		t.Errorf("ScreenToWorld = (%v,%v), want (460,20)", wx, wy)
	}
	sx, sy := c.WorldToScreen(wx, wy)
	if sx != 10 || sy != 20 {
		t.Errorf("WorldToScreen = (%v,%v), want (10,20)", sx, sy)
	}
	if b := c.VisibleBounds(); b.X != 450 || b.Width != 800 {
		t.Errorf("VisibleBounds = %+v", b)
	}
}

func TestCameraScrollTo(t *testing.T) {
	c := NewCamera(800, 600, 3000)
	c.ScrollTo(1000, 1, ease.Linear)
	if !c.Scrolling() {
		t.Fatal("Scrolling = false after ScrollTo")
	}
	c.Update(0.5)
	if !approxEqual(c.X, 500, 1e-3) {
		t.Errorf("X at half time = %v, want 500", c.X)
	}
	c.Update(0.6)
	if c.X != 1000 || c.Scrolling() {
		t.Errorf("X = %v Scrolling = %v, want 1000/false", c.X, c.Scrolling())
	}
}

func TestCameraScrollToClampsTarget(t *testing.T) {
	c := NewCamera(800, 600, 3000)
	c.ScrollTo(9999, 0.1, nil)
	c.Update(1)
	if c.X != 2200 {
		t.Errorf("X = %v, want 2200", c.X)
	}
}

func TestCameraPanCancelsScroll(t *testing.T) {
	c := NewCamera(800, 600, 3000)
	c.ScrollTo(1000, 1, nil)
	c.PanBy(10)
	if c.Scrolling() {
		t.Error("PanBy did not cancel ScrollTo")
	}
	c.Update(1)
	if c.X != 10 {
		t.Errorf("X = %v, want 10", c.X)
	}
}

func TestCameraVisible(t *testing.T) {
	c := NewCamera(800, 600, 3000)
	c.PanBy(1000)
	tests := []struct {
		x    float64
		want bool
	}{
		{999, false},
		{1000, true},
		{1800, true},
		{1850, true},
		{1851, false},
	}
	for _, tt := range tests {
		margin := 0.0
		if tt.x > 1800 {
			margin = 50
		}
		if got := c.Visible(tt.x, margin); got != tt.want {
			t.Errorf("Visible(%v, %v) = %v, want %v", tt.x, margin, got, tt.want)
		}
	}
	c.CullEnabled = false
	if !c.Visible(-1e6, 0) {
		t.Error("Visible with culling disabled = false")
	}
}

func TestCameraSetXCancelsScroll(t *testing.T) {
	c := NewCamera(800, 600, 2000)
	c.ScrollTo(1000, 1, nil)
	c.SetX(5000)
	if c.Scrolling() {
		t.Error("SetX left the scroll running")
	}
	if c.X != 1200 {
		t.Errorf("X = %v, want 1200", c.X)
	}
}
