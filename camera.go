package glade

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera is a horizontal scroll offset into a world wider than the viewport.
// X is the world coordinate of the viewport's left edge.
type Camera struct {
	// X is clamped to [0, WorldWidth-ViewWidth] on every update.
	X float64

	ViewWidth   float64
	ViewHeight  float64
	WorldWidth  float64
	CullEnabled bool

	scroll *gween.Tween
}

// NewCamera creates a camera for a viewport of the given size over a world
// worldWidth wide.
func NewCamera(viewW, viewH, worldWidth float64) *Camera {
	c := &Camera{CullEnabled: true}
	c.Resize(viewW, viewH, worldWidth)
	return c
}

// Active reports whether the world is wider than the viewport.
func (c *Camera) Active() bool {
	return c.WorldWidth > c.ViewWidth
}

// Resize updates viewport and world sizes and reclamps.
func (c *Camera) Resize(viewW, viewH, worldWidth float64) {
	c.ViewWidth = viewW
	c.ViewHeight = viewH
	c.WorldWidth = math.Max(worldWidth, viewW)
	c.ClampToBounds()
}

// MaxX is the largest valid offset.
func (c *Camera) MaxX() float64 {
	return math.Max(0, c.WorldWidth-c.ViewWidth)
}

// PanBy shifts the camera by dx world pixels, as from a drag gesture.
// A pan cancels any running ScrollTo.
func (c *Camera) PanBy(dx float64) {
	c.scroll = nil
	c.X += dx
	c.ClampToBounds()
}

// SetX jumps the camera to x, cancelling any running ScrollTo.
func (c *Camera) SetX(x float64) {
	c.scroll = nil
	c.X = x
	c.ClampToBounds()
}

// ScrollTo animates X to x over duration seconds.
func (c *Camera) ScrollTo(x float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	x = math.Max(0, math.Min(x, c.MaxX()))
	c.scroll = gween.New(float32(c.X), float32(x), duration, easeFn)
}

// CenterOn scrolls so wx sits in the middle of the viewport.
func (c *Camera) CenterOn(wx float64, duration float32) {
	c.ScrollTo(wx-c.ViewWidth/2, duration, ease.OutCubic)
}

// Scrolling reports whether a ScrollTo animation is running.
func (c *Camera) Scrolling() bool {
	return c.scroll != nil
}

// ClampToBounds immediately clamps X. Call after writing X directly.
func (c *Camera) ClampToBounds() {
	c.X = math.Max(0, math.Min(finiteOr(c.X, 0), c.MaxX()))
}

// Update advances scroll animation and clamps. dt is in seconds.
func (c *Camera) Update(dt float64) {
	if c.scroll != nil {
		v, done := c.scroll.Update(float32(dt))
		c.X = float64(v)
		if done {
			c.scroll = nil
		}
	}
	c.ClampToBounds()
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return sx + c.X, sy
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return wx - c.X, wy
}

// VisibleBounds returns the visible world rectangle.
func (c *Camera) VisibleBounds() Rect {
	return Rect{X: c.X, Y: 0, Width: c.ViewWidth, Height: c.ViewHeight}
}

// Visible reports whether world x lies within the view widened by margin.
func (c *Camera) Visible(x, margin float64) bool {
	if !c.CullEnabled {
		return true
	}
	return x >= c.X-margin && x <= c.X+c.ViewWidth+margin
}
