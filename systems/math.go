package systems

import "math"

// clamp clamps v between minVal and maxVal.
func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps v to the [0, 1] range.
func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// distance returns the center distance between two points.
func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// normalize returns the unit vector of (x, y), or zero for a zero vector.
func normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

// lerp interpolates from a to b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Arena is the rectangular playfield. Origin is the top-left corner.
type Arena struct {
	W, H float64
}

// Center returns the arena midpoint.
func (a Arena) Center() (float64, float64) {
	return a.W / 2, a.H / 2
}

// Diagonal returns the corner-to-corner length.
func (a Arena) Diagonal() float64 {
	return math.Hypot(a.W, a.H)
}

// Clamp keeps a circle of radius r fully inside the arena.
// A circle wider than the arena is centered on that axis.
func (a Arena) Clamp(x, y, r float64) (float64, float64) {
	if 2*r >= a.W {
		x = a.W / 2
	} else {
		x = clamp(x, r, a.W-r)
	}
	if 2*r >= a.H {
		y = a.H / 2
	} else {
		y = clamp(y, r, a.H-r)
	}
	return x, y
}
