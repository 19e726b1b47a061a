package game

import (
	"math"

	"github.com/pthm-cable/wudao/components"
	"github.com/pthm-cable/wudao/systems"
)

// Autopilot distances, in arena units.
const (
	autopilotBossWarning = 220.0 // Boundary gap at which a moving Boss is avoided
	autopilotThreatGap   = 90.0  // Boundary gap at which a weaker neighbour is avoided
	autopilotCoreSlack   = 0.5   // Fraction of the core reach to close in to
)

// Autopilot returns a movement intent for the player computed only from an
// observation. On the title screen it walks to the core; in play it avoids a
// moving Boss, backs away from weaker neighbours that would drain it and
// closes in on the nearest stronger one it can drain.
func Autopilot(obs Observation) (float64, float64) {
	p, ok := obs.Player()
	if !ok || p.State != components.Alive {
		return 0, 0
	}

	switch obs.State {
	case StateTitle:
		if !obs.Core.Present || obs.Core.Ready {
			return 0, 0
		}
		dx, dy := obs.Core.X-p.X, obs.Core.Y-p.Y
		if math.Hypot(dx, dy) <= obs.Core.Reach*autopilotCoreSlack {
			return 0, 0
		}
		return unit(dx, dy)
	case StatePlaying:
		return playIntent(obs, p)
	}
	return 0, 0
}

func playIntent(obs Observation, p EntityView) (float64, float64) {
	b := obs.Boss
	if b.Active && b.State == systems.BossMoving {
		dx, dy := p.X-b.X, p.Y-b.Y
		if math.Hypot(dx, dy)-b.Radius-p.Radius < autopilotBossWarning {
			return unit(dx, dy)
		}
	}

	var (
		threat, prey       *EntityView
		threatGap, preyGap = math.Inf(1), math.Inf(1)
	)
	for i := range obs.Entities {
		e := &obs.Entities[i]
		if e.Player || e.State != components.Alive {
			continue
		}
		gap := math.Hypot(e.X-p.X, e.Y-p.Y) - e.Radius - p.Radius
		switch {
		case e.Energy < p.Energy && gap < threatGap:
			threat, threatGap = e, gap
		case e.Energy > p.Energy && gap < preyGap:
			prey, preyGap = e, gap
		}
	}

	// Already draining: hold course on the source
	if p.Absorbing {
		for i := range obs.Entities {
			if e := &obs.Entities[i]; e.ID == p.SourceID {
				return unit(e.X-p.X, e.Y-p.Y)
			}
		}
	}
	if threat != nil && threatGap < autopilotThreatGap {
		return unit(p.X-threat.X, p.Y-threat.Y)
	}
	if prey != nil {
		return unit(prey.X-p.X, prey.Y-p.Y)
	}
	return 0, 0
}

func unit(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}
