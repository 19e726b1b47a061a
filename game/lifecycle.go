package game

import (
	"log/slog"

	"github.com/pthm-cable/wudao/events"
	"github.com/pthm-cable/wudao/systems"
)

// resetSession discards every session-owned object.
func (g *Game) resetSession() {
	g.pop = systems.NewPopulation(g.cfg, g.bus)
	g.mover = systems.NewMover(g.cfg, g.rng)
	g.interactions = systems.NewInteractions(g.pop)
	g.core = nil
	g.boss = nil

	g.cause = CauseNone
	g.elapsed = 0
	g.finalTime = 0
	g.bossClock = 0
	g.flourish = 0
	g.exiting = false
	g.exitTimer = 0
	g.intentX, g.intentY = 0, 0
}

// enterTitle builds the title screen: the core and one entity per anchor,
// one of which is the player.
func (g *Game) enterTitle() {
	g.resetSession()
	g.state = StateTitle

	tc := g.cfg.Title
	player := g.rng.Intn(len(tc.Anchors))
	for i, a := range tc.Anchors {
		g.pop.Spawn(a.X*g.arena.W, a.Y*g.arena.H, tc.EntityEnergy, systems.SpawnOptions{
			Player: i == player,
			Title:  true,
		})
	}
	g.core = systems.NewTitleCore(g.cfg, g.arena, g.bus)
}

// startSession spawns the play field and starts the session clock.
func (g *Game) startSession() {
	g.resetSession()
	g.state = StatePlaying
	g.flourish = g.cfg.Session.StartFlourish

	ec := g.cfg.Entity
	spots := g.placeSpawns(ec.InitialCount)
	player := g.rng.Intn(len(spots))
	for i, s := range spots {
		energy := ec.MinEnergy + g.rng.Float64()*(ec.MaxEnergy-ec.MinEnergy)
		g.pop.Spawn(s[0], s[1], energy, systems.SpawnOptions{Player: i == player})
	}

	g.bus.Emit(events.Event{Type: events.SessionStarted})
	slog.Info("session_started",
		"session", g.collector.Session()+1,
		"entities", g.pop.Count(),
		"arena_w", g.arena.W,
		"arena_h", g.arena.H,
	)
}

// placeSpawns picks n points inside the inset arena, keeping them apart by
// the minimum spawn distance. After MaxAttempts the last candidate is kept.
func (g *Game) placeSpawns(n int) [][2]float64 {
	sc := g.cfg.Spawn
	if n < 1 {
		n = 1
	}

	spanX := g.arena.W - 2*sc.Inset
	spanY := g.arena.H - 2*sc.Inset
	pick := func(span, size float64) float64 {
		if span <= 0 {
			return size / 2
		}
		return sc.Inset + g.rng.Float64()*span
	}

	spots := make([][2]float64, 0, n)
	for len(spots) < n {
		var x, y float64
		for attempt := 0; attempt < max(sc.MaxAttempts, 1); attempt++ {
			x, y = pick(spanX, g.arena.W), pick(spanY, g.arena.H)
			if farFromAll(spots, x, y, sc.MinDistance) {
				break
			}
		}
		spots = append(spots, [2]float64{x, y})
	}
	return spots
}

func farFromAll(spots [][2]float64, x, y, minDist float64) bool {
	for _, s := range spots {
		dx, dy := s[0]-x, s[1]-y
		if dx*dx+dy*dy < minDist*minDist {
			return false
		}
	}
	return true
}

// endSession freezes the final time and enters game over.
func (g *Game) endSession(cause Cause) {
	g.state = StateGameOver
	g.cause = cause
	g.finalTime = g.elapsed
	g.intentX, g.intentY = 0, 0

	g.bus.Emit(events.Event{
		Type:   events.SessionEnded,
		Time:   g.elapsed,
		Amount: g.finalTime,
		Cause:  cause.String(),
	})
}
