// Package tui renders the arena in a terminal and reads keyboard input.
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/wudao/components"
	"github.com/pthm-cable/wudao/game"
	"github.com/pthm-cable/wudao/systems"
)

// Styles.
var (
	styleBackground = tcell.StyleDefault.Background(tcell.ColorBlack)
	stylePlayer     = styleBackground.Foreground(tcell.ColorAqua).Bold(true)
	styleEntity     = styleBackground.Foreground(tcell.ColorSilver)
	styleStrong     = styleBackground.Foreground(tcell.ColorYellow)
	styleDying      = styleBackground.Foreground(tcell.ColorGray)
	styleHit        = styleBackground.Foreground(tcell.ColorRed).Bold(true)
	styleBoss       = styleBackground.Foreground(tcell.ColorFuchsia).Bold(true)
	styleCore       = styleBackground.Foreground(tcell.ColorWhite).Bold(true)
	styleLink       = styleBackground.Foreground(tcell.ColorGreen)
	styleStatus     = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
)

// View draws observations onto a tcell screen. The arena is scaled to fit
// everything above the status line.
type View struct {
	screen        tcell.Screen
	width, height int
}

// NewView creates a view over an initialized screen.
func NewView(screen tcell.Screen) *View {
	v := &View{screen: screen}
	v.Resize()
	return v
}

// Resize re-reads the screen size.
func (v *View) Resize() {
	v.width, v.height = v.screen.Size()
}

// cellOf maps an arena position to a cell inside a cols x rows field.
func cellOf(x, y, arenaW, arenaH float64, cols, rows int) (int, int) {
	if arenaW <= 0 || arenaH <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	cx := int(x / arenaW * float64(cols))
	cy := int(y / arenaH * float64(rows))
	return max(0, min(cols-1, cx)), max(0, min(rows-1, cy))
}

// glyph picks the rune and style for an entity.
func glyph(e game.EntityView, playerEnergy float64) (rune, tcell.Style) {
	switch {
	case e.State != components.Alive:
		return '.', styleDying
	case e.Hit:
		return 'x', styleHit
	case e.Player:
		return '@', stylePlayer
	case e.Energy > playerEnergy:
		return 'O', styleStrong
	}
	return 'o', styleEntity
}

// Draw renders one frame.
func (v *View) Draw(obs game.Observation) {
	v.screen.Fill(' ', styleBackground)

	rows := v.height - 1
	if rows <= 0 || v.width <= 0 {
		v.screen.Show()
		return
	}
	at := func(x, y float64) (int, int) {
		return cellOf(x, y, obs.Width, obs.Height, v.width, rows)
	}

	playerEnergy := math.Inf(1)
	if p, ok := obs.Player(); ok {
		playerEnergy = p.Energy
	}

	if obs.Core.Present {
		cx, cy := at(obs.Core.X, obs.Core.Y)
		v.screen.SetContent(cx, cy, '*', nil, styleCore)
	}

	// Link midpoints first so bodies draw on top
	byID := make(map[uint32]game.EntityView, len(obs.Entities))
	for _, e := range obs.Entities {
		byID[e.ID] = e
	}
	for _, e := range obs.Entities {
		if !e.Absorbing {
			continue
		}
		if src, ok := byID[e.SourceID]; ok {
			mx, my := at((e.X+src.X)/2, (e.Y+src.Y)/2)
			v.screen.SetContent(mx, my, '~', nil, styleLink)
		}
	}

	for _, e := range obs.Entities {
		if e.State == components.Dead {
			continue
		}
		r, style := glyph(e, playerEnergy)
		cx, cy := at(e.X, e.Y)
		v.screen.SetContent(cx, cy, r, nil, style)
	}

	if b := obs.Boss; b.Present && b.Active {
		cx, cy := at(b.X, b.Y)
		r := 'B'
		switch b.State {
		case systems.BossDefeated:
			r = 'b'
		case systems.BossExploding:
			r = '#'
		}
		v.screen.SetContent(cx, cy, r, nil, styleBoss)
	}

	v.drawStatus(obs, rows)
	v.screen.Show()
}

func (v *View) drawStatus(obs game.Observation, row int) {
	var text string
	switch obs.State {
	case game.StateTitle:
		text = fmt.Sprintf(" WUDAO  core %3.0f%%  arrows move  q quit", obs.Core.Progress*100)
	case game.StatePlaying:
		energy := 0.0
		if p, ok := obs.Player(); ok {
			energy = p.Energy
		}
		text = fmt.Sprintf(" t=%6.1fs  energy %6.1f  alive %3d  links %3d", obs.Elapsed, energy, len(obs.Entities), obs.ActiveLinks)
		if obs.Boss.Active {
			text += fmt.Sprintf("  boss %s %3.0f%%", obs.Boss.State, obs.Boss.Progress*100)
		}
	case game.StateGameOver:
		text = fmt.Sprintf(" GAME OVER (%s) survived %.1fs  r restart  q quit", obs.Cause, obs.FinalTime)
	}

	for x := 0; x < v.width; x++ {
		v.screen.SetContent(x, row, ' ', nil, styleStatus)
	}
	for i, r := range []rune(text) {
		if i >= v.width {
			break
		}
		v.screen.SetContent(i, row, r, nil, styleStatus)
	}
}
