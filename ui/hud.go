package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wudao/components"
	"github.com/pthm-cable/wudao/game"
	"github.com/pthm-cable/wudao/systems"
	"github.com/pthm-cable/wudao/telemetry"
)

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD for the current state.
func (h *HUD) Draw(obs game.Observation, referenceEnergy float64) {
	switch obs.State {
	case game.StateTitle:
		h.drawTitle(obs)
	case game.StatePlaying:
		h.drawPlaying(obs, referenceEnergy)
	}
}

func (h *HUD) drawTitle(obs game.Observation) {
	r := h.renderer
	title := "WUDAO"
	size := int32(48)
	w := rl.MeasureText(title, size)
	rl.DrawText(title, int32(obs.Width)/2-w/2, 60, size, rl.White)

	hint := "Move into the light"
	if obs.Core.Ready {
		hint = "Awakening"
	}
	hw := rl.MeasureText(hint, 16)
	rl.DrawText(hint, int32(obs.Width)/2-hw/2, 120, 16, rl.LightGray)

	if obs.Core.Present {
		width := int32(240)
		x := int32(obs.Width)/2 - width/2
		r.DrawBar(x, int32(obs.Height)-60, "Core", float32(obs.Core.Progress), width, r.Theme.BarFill)
	}
}

func (h *HUD) drawPlaying(obs game.Observation, referenceEnergy float64) {
	r := h.renderer
	x, y := r.Theme.Padding, r.Theme.Padding
	width := int32(260)

	r.DrawPanel(x-4, y-4, width+8, 92)
	y = r.DrawLabelValue(x, y, "Time", fmt.Sprintf("%.1fs", obs.Elapsed))

	if p, ok := obs.Player(); ok {
		y = r.DrawEnergyBar(x, y, "Energy", float32(p.Energy), float32(referenceEnergy), width)
	}

	alive := 0
	for _, e := range obs.Entities {
		if e.State == components.Alive {
			alive++
		}
	}
	y = r.DrawLabelValue(x, y, "Alive", fmt.Sprintf("%d (%d links)", alive, obs.ActiveLinks))

	b := obs.Boss
	if b.Active {
		switch b.State {
		case systems.BossMoving:
			r.DrawBar(x, y, "Boss", float32(b.Progress), width, r.Theme.BossFill)
		case systems.BossDefeated:
			r.DrawLabelValue(x, y, "Boss", "defeated")
		case systems.BossExploding:
			r.DrawLabelValue(x, y, "Boss", "EXPLODING")
		}
	}

	if obs.FlourishProgress > 0 && obs.FlourishProgress < 1 {
		a := uint8((1 - obs.FlourishProgress) * 255)
		text := "BEGIN"
		w := rl.MeasureText(text, 40)
		rl.DrawText(text, int32(obs.Width)/2-w/2, int32(obs.Height)/2-20, 40, rl.Color{R: 255, G: 255, B: 255, A: a})
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the system performance panel.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: systems.NewSystemRegistry(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, slowest phase first.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	p.renderer.DrawPanel(x-6, y-6, 250, int32(telemetry.NumPhases)*14+50)
	rl.DrawText("System Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s | FPS: %.0f", stats.AvgTick.Round(time.Microsecond), stats.FPS), x, y, 14, rl.Yellow)
	y += 16

	phases := make([]telemetry.Phase, telemetry.NumPhases)
	for i := range phases {
		phases[i] = telemetry.Phase(i)
	}
	sort.SliceStable(phases, func(i, j int) bool {
		return stats.PhaseAvg[phases[i]] > stats.PhaseAvg[phases[j]]
	})

	for _, phase := range phases {
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 20 {
			color = rl.Red
		} else if pct > 10 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %6s %5.1f%%", p.registry.Name(phase), stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
