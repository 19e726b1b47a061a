package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Intent reads the movement keys as a direction. Diagonals are normalized.
func Intent() (float64, float64) {
	var dx, dy float64
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		dy--
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		dy++
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		dx--
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		dx++
	}
	if dx != 0 && dy != 0 {
		dx, dy = dx/math.Sqrt2, dy/math.Sqrt2
	}
	return dx, dy
}

// RestartPressed reports a restart key press.
func RestartPressed() bool {
	return rl.IsKeyPressed(rl.KeyR) || rl.IsKeyPressed(rl.KeyEnter)
}

// PerfTogglePressed reports a press of the perf panel toggle.
func PerfTogglePressed() bool {
	return rl.IsKeyPressed(rl.KeyP)
}

// Resized returns the new screen size when the window was resized this frame.
func Resized() (float64, float64, bool) {
	if !rl.IsWindowResized() {
		return 0, 0, false
	}
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()), true
}
