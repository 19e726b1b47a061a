package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wudao/game"
)

// GameOverPanel shows the final time and a restart button.
type GameOverPanel struct {
	renderer *Renderer
	width    int32
	height   int32
}

// NewGameOverPanel creates a new game-over panel.
func NewGameOverPanel() *GameOverPanel {
	return &GameOverPanel{
		renderer: NewRenderer(),
		width:    320,
		height:   180,
	}
}

// Draw renders the panel centered on screen and reports whether restart was clicked.
func (p *GameOverPanel) Draw(obs game.Observation) bool {
	if obs.State != game.StateGameOver {
		return false
	}

	rl.DrawRectangle(0, 0, int32(obs.Width), int32(obs.Height), rl.Fade(rl.Black, 0.5))

	x := int32(obs.Width)/2 - p.width/2
	y := int32(obs.Height)/2 - p.height/2
	p.renderer.DrawPanel(x, y, p.width, p.height)

	heading := "GAME OVER"
	cause := "Consumed"
	if obs.Cause == game.CauseBossExplosion {
		cause = "The Boss exploded"
	}
	hw := rl.MeasureText(heading, 32)
	rl.DrawText(heading, x+p.width/2-hw/2, y+20, 32, rl.White)

	cw := rl.MeasureText(cause, 16)
	rl.DrawText(cause, x+p.width/2-cw/2, y+62, 16, rl.LightGray)

	t := fmt.Sprintf("Survived %.1fs", obs.FinalTime)
	tw := rl.MeasureText(t, 20)
	rl.DrawText(t, x+p.width/2-tw/2, y+88, 20, rl.Yellow)

	return gui.Button(rl.Rectangle{
		X:      float32(x + p.width/2 - 60),
		Y:      float32(y + p.height - 50),
		Width:  120,
		Height: 30,
	}, "Restart")
}
