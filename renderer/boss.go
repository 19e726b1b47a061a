package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wudao/game"
	"github.com/pthm-cable/wudao/systems"
)

// BossRenderer draws the Boss, its absorption tethers and the explosion.
type BossRenderer struct{}

// NewBossRenderer creates a Boss renderer.
func NewBossRenderer() *BossRenderer {
	return &BossRenderer{}
}

// Draw renders the Boss if one is active.
func (r *BossRenderer) Draw(obs game.Observation) {
	b := obs.Boss
	if !b.Present || !b.Active {
		return
	}

	switch b.State {
	case systems.BossMoving:
		r.drawTethers(obs)
		r.drawGlow(b.X, b.Y, b.Radius, 1)
		r.drawProgress(b)
	case systems.BossDefeated:
		// Contraction shrinks, reorganization pulses, rebirth expands
		scale := 1.0
		switch b.Phase {
		case systems.PhaseContraction:
			scale = 1 - 0.6*b.ConversionProgress
		case systems.PhaseReorganization:
			scale = 0.5 + 0.1*math.Sin(obs.WallClock*12)
		case systems.PhaseRebirth:
			scale = 0.5 + 0.5*b.ConversionProgress
		}
		r.drawGlow(b.X, b.Y, b.Radius*scale, 1-b.ConversionProgress*0.5)
	case systems.BossExploding:
		x, y := int32(b.X), int32(b.Y)
		rl.DrawCircle(x, y, float32(b.ExplosionRadius), withAlpha(ColorBoss, 0.25))
		rl.DrawCircleLines(x, y, float32(b.ExplosionRadius), ColorHit)
	}
}

// drawGlow draws layered translucent circles around a solid body.
func (r *BossRenderer) drawGlow(x, y, radius, intensity float64) {
	steps := 8
	for i := steps; i > 0; i-- {
		t := float64(i) / float64(steps)
		falloff := math.Pow(1-t, 2)
		rl.DrawCircle(int32(x), int32(y), float32(radius*(1+t)), withAlpha(ColorBoss, falloff*0.3*intensity))
	}
	rl.DrawCircle(int32(x), int32(y), float32(radius), withAlpha(ColorBoss, intensity))
}

func (r *BossRenderer) drawProgress(b game.BossView) {
	// Absorbed energy as a ring of dots around the Boss
	dots := 24
	filled := int(math.Round(b.Progress * float64(dots)))
	for i := 0; i < dots; i++ {
		angle := 2 * math.Pi * float64(i) / float64(dots)
		px := b.X + math.Cos(angle)*(b.Radius+8)
		py := b.Y + math.Sin(angle)*(b.Radius+8)
		color := withAlpha(rl.White, 0.2)
		if i < filled {
			color = ColorCore
		}
		rl.DrawCircle(int32(px), int32(py), 2, color)
	}
}

func (r *BossRenderer) drawTethers(obs game.Observation) {
	b := obs.Boss
	for _, id := range b.Absorbing {
		for _, e := range obs.Entities {
			if e.ID != id {
				continue
			}
			rl.DrawLineEx(
				rl.Vector2{X: float32(b.X), Y: float32(b.Y)},
				rl.Vector2{X: float32(e.X), Y: float32(e.Y)},
				2,
				withAlpha(ColorBoss, 0.6),
			)
			break
		}
	}
}
