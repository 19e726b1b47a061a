package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/wudao/config"
)

// MoveDirected moves an Alive entity along (dx, dy) at its own speed and keeps
// it inside the arena. The direction is normalized; a zero vector is a no-op.
func MoveDirected(b Body, dx, dy, dt float64, arena Arena) {
	if !b.Alive() {
		return
	}
	dx, dy = normalize(dx, dy)
	if dx == 0 && dy == 0 {
		return
	}
	s := b.Speed()
	b.Pos.X += dx * s * dt
	b.Pos.Y += dy * s * dt
	b.Pos.X, b.Pos.Y = arena.Clamp(b.Pos.X, b.Pos.Y, b.Radius())
}

// Mover steers entities that are not under player control.
type Mover struct {
	cfg *config.Config
	rng *rand.Rand
}

// NewMover creates a mover drawing drift headings from rng.
func NewMover(cfg *config.Config, rng *rand.Rand) *Mover {
	return &Mover{cfg: cfg, rng: rng}
}

// Steer applies one tick of autonomous movement. A drained entity flees its
// absorber, an absorbing entity chases its source, anything else drifts.
func (m *Mover) Steer(pop *Population, b Body, dt float64, arena Arena) {
	if !b.Alive() || b.Identity.Player {
		return
	}

	switch {
	case b.Link.Drained:
		if abs, ok := pop.Lookup(b.Link.Absorber); ok {
			if dx, dy := m.escape(b, abs, dt, arena); dx != 0 || dy != 0 {
				MoveDirected(b, dx, dy, dt, arena)
				return
			}
		}
	case b.Link.Absorbing:
		if src, ok := pop.Lookup(b.Link.Source); ok {
			if dx, dy := normalize(src.Pos.X-b.Pos.X, src.Pos.Y-b.Pos.Y); dx != 0 || dy != 0 {
				MoveDirected(b, dx, dy, dt, arena)
				return
			}
		}
	}

	m.drift(b, dt, arena)
}

// escape returns the flee heading from abs with wall and corner avoidance.
func (m *Mover) escape(b, abs Body, dt float64, arena Arena) (float64, float64) {
	dx, dy := normalize(b.Pos.X-abs.Pos.X, b.Pos.Y-abs.Pos.Y)
	if dx == 0 && dy == 0 {
		return 0, 0
	}

	r := b.Radius()
	edge := r * m.cfg.Escape.EdgeMargin
	corner := r * m.cfg.Escape.CornerMargin
	look := m.cfg.Entity.BaseSpeed * dt

	hitsWall := arena.nearWall(b.Pos.X+dx*look, b.Pos.Y+dy*look, r, edge)
	switch {
	case hitsWall && arena.inCorner(b.Pos.X, b.Pos.Y, r, corner):
		// Cornered: cut past the absorber
		return normalize(abs.Pos.X-b.Pos.X, abs.Pos.Y-b.Pos.Y)
	case hitsWall:
		return m.deflect(b.Pos.X, b.Pos.Y, r, dx, dy, edge, arena)
	}
	return dx, dy
}

// deflect reflects the heading off each wall it is pressing against. If the
// reflected heading still runs into a wall it heads for the arena center.
func (m *Mover) deflect(x, y, r, dx, dy, margin float64, arena Arena) (float64, float64) {
	if x-r <= margin && dx < 0 {
		dx = math.Abs(dx)
	} else if x+r >= arena.W-margin && dx > 0 {
		dx = -math.Abs(dx)
	}
	if y-r <= margin && dy < 0 {
		dy = math.Abs(dy)
	} else if y+r >= arena.H-margin && dy > 0 {
		dy = -math.Abs(dy)
	}

	probe := m.cfg.Escape.Probe
	if arena.nearWall(x+dx*probe, y+dy*probe, r, margin) {
		cx, cy := arena.Center()
		if tx, ty := normalize(cx-x, cy-y); tx != 0 || ty != 0 {
			return tx, ty
		}
	}
	return dx, dy
}

// drift moves an idle entity along its float heading, picking a new heading
// when the current one expires and bouncing off the arena edges.
func (m *Mover) drift(b Body, dt float64, arena Arena) {
	d := b.Drift
	d.Timer += dt
	if d.Duration <= 0 || d.Timer >= d.Duration {
		angle := m.rng.Float64() * 2 * math.Pi
		d.DirX = math.Cos(angle)
		d.DirY = math.Sin(angle)
		d.Duration = m.cfg.Drift.MinDuration + m.rng.Float64()*(m.cfg.Drift.MaxDuration-m.cfg.Drift.MinDuration)
		d.Timer = 0
	}

	speed := m.cfg.Drift.Speed
	b.Pos.X += d.DirX * speed * dt
	b.Pos.Y += d.DirY * speed * dt

	r := b.Radius()
	if b.Pos.X-r <= 0 || b.Pos.X+r >= arena.W {
		d.DirX = -d.DirX
	}
	if b.Pos.Y-r <= 0 || b.Pos.Y+r >= arena.H {
		d.DirY = -d.DirY
	}
	b.Pos.X, b.Pos.Y = arena.Clamp(b.Pos.X, b.Pos.Y, r)
}

// nearWall reports whether a circle at (x, y) is within margin of any edge.
func (a Arena) nearWall(x, y, r, margin float64) bool {
	return x-r <= margin || x+r >= a.W-margin || y-r <= margin || y+r >= a.H-margin
}

// inCorner reports whether a circle is within margin of two perpendicular edges.
func (a Arena) inCorner(x, y, r, margin float64) bool {
	nearX := x-r <= margin || x+r >= a.W-margin
	nearY := y-r <= margin || y+r >= a.H-margin
	return nearX && nearY
}
