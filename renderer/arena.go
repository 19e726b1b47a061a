package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wudao/components"
	"github.com/pthm-cable/wudao/game"
)

// ArenaRenderer draws entities, links and the title core.
type ArenaRenderer struct {
	byID map[uint32]int
}

// NewArenaRenderer creates an arena renderer.
func NewArenaRenderer() *ArenaRenderer {
	return &ArenaRenderer{byID: make(map[uint32]int)}
}

// Draw renders one observation. The wall clock drives cosmetic pulsing only.
func (r *ArenaRenderer) Draw(obs game.Observation) {
	rl.DrawRectangle(0, 0, int32(obs.Width), int32(obs.Height), ColorArena)

	clear(r.byID)
	for i, e := range obs.Entities {
		r.byID[e.ID] = i
	}

	if obs.Core.Present {
		r.drawCore(obs)
	}
	r.drawLinks(obs)
	for _, e := range obs.Entities {
		r.drawEntity(e, obs.WallClock)
	}

	if obs.TitleExitProgress > 0 {
		// Fade the whole arena toward black on exit
		rl.DrawRectangle(0, 0, int32(obs.Width), int32(obs.Height), withAlpha(rl.Black, obs.TitleExitProgress))
	}
}

func (r *ArenaRenderer) drawLinks(obs game.Observation) {
	for _, e := range obs.Entities {
		if !e.Absorbing {
			continue
		}
		i, ok := r.byID[e.SourceID]
		if !ok {
			continue
		}
		src := obs.Entities[i]
		rl.DrawLineEx(
			rl.Vector2{X: float32(src.X), Y: float32(src.Y)},
			rl.Vector2{X: float32(e.X), Y: float32(e.Y)},
			2,
			ColorLink,
		)
	}
}

func (r *ArenaRenderer) drawEntity(e game.EntityView, wallClock float64) {
	alpha := 1.0
	if e.State == components.Dying {
		alpha = 0.5
	}
	if e.State == components.Dead {
		return
	}

	color := energyColor(e.Energy)
	if e.Player {
		color = ColorPlayer
	}
	if e.Hit {
		color = ColorHit
	}
	x, y := int32(e.X), int32(e.Y)
	rl.DrawCircle(x, y, float32(e.Radius), withAlpha(color, alpha))

	if e.Player {
		pulse := 0.5 + 0.5*math.Sin(wallClock*4)
		rl.DrawCircleLines(x, y, float32(e.Radius+3+2*pulse), withAlpha(rl.White, alpha*0.8))
	}
	if e.Drained {
		rl.DrawCircleLines(x, y, float32(e.Radius+1), withAlpha(ColorLink, alpha))
	}
}

// drawCore renders the title core as layered glow growing with its energy.
func (r *ArenaRenderer) drawCore(obs game.Observation) {
	c := obs.Core
	x, y := int32(c.X), int32(c.Y)

	layers := 6
	for i := layers; i > 0; i-- {
		t := float64(i) / float64(layers)
		radius := c.Radius * (1 + t*1.5)
		a := (1 - t) * 0.25 * (0.4 + c.Progress)
		rl.DrawCircle(x, y, float32(radius), withAlpha(ColorCore, a))
	}
	rl.DrawCircle(x, y, float32(c.Radius), ColorCore)
	rl.DrawCircleLines(x, y, float32(c.Reach), withAlpha(ColorCore, 0.15))

	if i, ok := r.byID[c.SourceID]; ok && c.SourceID != 0 {
		src := obs.Entities[i]
		rl.DrawLineEx(
			rl.Vector2{X: float32(src.X), Y: float32(src.Y)},
			rl.Vector2{X: float32(c.X), Y: float32(c.Y)},
			3,
			withAlpha(ColorCore, 0.6),
		)
	}
}
