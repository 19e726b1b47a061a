// Package renderer draws game observations with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Arena colors.
var (
	ColorBackground = rl.Color{R: 6, G: 7, B: 10, A: 255}
	ColorArena      = rl.Color{R: 12, G: 14, B: 20, A: 255}
	ColorPlayer     = rl.Color{R: 120, G: 220, B: 255, A: 255}
	ColorEntityLow  = rl.Color{R: 90, G: 110, B: 160, A: 255}
	ColorEntityHigh = rl.Color{R: 240, G: 190, B: 90, A: 255}
	ColorLink       = rl.Color{R: 180, G: 230, B: 160, A: 160}
	ColorHit        = rl.Color{R: 255, G: 80, B: 60, A: 255}
	ColorBoss       = rl.Color{R: 200, G: 60, B: 90, A: 255}
	ColorCore       = rl.Color{R: 255, G: 240, B: 200, A: 255}
)

// lerpColor blends two colors; t is clamped to [0,1].
func lerpColor(a, b rl.Color, t float64) rl.Color {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// energyColor maps energy onto the low/high entity gradient.
func energyColor(energy float64) rl.Color {
	return lerpColor(ColorEntityLow, ColorEntityHigh, (energy-40)/200)
}

func withAlpha(c rl.Color, a float64) rl.Color {
	c.A = uint8(math.Max(0, math.Min(1, a)) * float64(c.A))
	return c
}
