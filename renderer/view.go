package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wudao/camera"
)

// Camera2D converts the arena camera into a raylib camera. World drawing
// between rl.BeginMode2D and rl.EndMode2D then follows zoom and shake.
func Camera2D(c *camera.Camera) rl.Camera2D {
	ox, oy := c.ShakeOffset()
	return rl.Camera2D{
		Offset: rl.Vector2{X: c.ViewportW/2 + ox, Y: c.ViewportH/2 + oy},
		Target: rl.Vector2{X: c.X, Y: c.Y},
		Zoom:   c.Zoom,
	}
}
