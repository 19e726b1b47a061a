// Package camera provides the 2D view transform over the arena, including
// screen shake driven by game events.
package camera

import (
	"math"

	"github.com/pthm-cable/wudao/events"
)

// Shake presets.
const (
	explosionShake    = 14  // Pixels
	explosionShakeDur = 0.8 // Seconds
	hitShake          = 4
	hitShakeDur       = 0.2
)

// Camera controls the viewport into the arena.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World dimensions, the view is kept inside them
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32

	shakeMag   float32
	shakeLeft  float32
	shakeTotal float32
	clock      float32
}

// New creates a camera centered on the world with 1:1 zoom.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		X:       worldW / 2,
		Y:       worldH / 2,
		Zoom:    1.0,
		WorldW:  worldW,
		WorldH:  worldH,
		MaxZoom: 4.0,
	}
	c.Resize(viewportW, viewportH, worldW, worldH)
	return c
}

// WorldToScreen converts world coordinates to screen coordinates, shake included.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	ox, oy := c.ShakeOffset()
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom + ox
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom + oy
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	ox, oy := c.ShakeOffset()
	wx = c.X + (sx-ox-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-oy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius + c.shakeMag
	halfH := c.ViewportH/(2*c.Zoom) + radius + c.shakeMag
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates the viewport and world size and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH, worldW, worldH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.WorldW = worldW
	c.WorldH = worldH

	// Never show more than the world
	c.MinZoom = max(viewportW/worldW, viewportH/worldH)
	c.SetZoom(c.Zoom)
}

// SetZoom sets the zoom level, clamped to min/max, and keeps the view in bounds.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampCenter()
}

// Reset returns the camera to the world center at the smallest zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.SetZoom(c.MinZoom)
}

func (c *Camera) clampCenter() {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	c.X = clamp(c.X, halfW, c.WorldW-halfW)
	c.Y = clamp(c.Y, halfH, c.WorldH-halfH)
}

// Shake starts a shake of the given magnitude in pixels. A stronger shake
// replaces a weaker one in progress.
func (c *Camera) Shake(magnitude, duration float32) {
	if duration <= 0 {
		return
	}
	if c.shakeLeft > 0 && c.currentMag() > magnitude {
		return
	}
	c.shakeMag = magnitude
	c.shakeLeft = duration
	c.shakeTotal = duration
}

// Update advances the shake by dt seconds of wall time.
func (c *Camera) Update(dt float32) {
	c.clock += dt
	if c.shakeLeft <= 0 {
		return
	}
	c.shakeLeft -= dt
	if c.shakeLeft <= 0 {
		c.shakeLeft = 0
		c.shakeMag = 0
	}
}

// Shaking reports whether a shake is in progress.
func (c *Camera) Shaking() bool {
	return c.shakeLeft > 0
}

func (c *Camera) currentMag() float32 {
	if c.shakeTotal <= 0 {
		return 0
	}
	return c.shakeMag * c.shakeLeft / c.shakeTotal
}

// ShakeOffset returns the current screen-space shake offset. It decays
// linearly to zero.
func (c *Camera) ShakeOffset() (float32, float32) {
	m := c.currentMag()
	if m == 0 {
		return 0, 0
	}
	t := float64(c.clock)
	return m * float32(math.Sin(t*53)), m * float32(math.Cos(t*47))
}

// Handle shakes the view for blasts. Subscribe it to the game's event bus.
func (c *Camera) Handle(e events.Event) {
	switch e.Type {
	case events.BossExploding:
		c.Shake(explosionShake, explosionShakeDur)
	case events.EntityHit:
		c.Shake(hitShake, hitShakeDur)
	}
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range. An inverted range yields its midpoint.
func clamp(x, lo, hi float32) float32 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
