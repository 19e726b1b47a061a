package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wudao/events"
)

// ParticleKind selects a particle's color.
type ParticleKind uint8

const (
	ParticleDeath ParticleKind = iota
	ParticleConversion
	ParticleCore
)

// Particle is a short-lived cosmetic spark.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    float64
	MaxLife float64
	Size    float64
	Kind    ParticleKind
}

// ParticleRenderer spawns sparks from game events and draws them.
type ParticleRenderer struct {
	particles []Particle
	rng       *rand.Rand
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer(seed int64) *ParticleRenderer {
	return &ParticleRenderer{rng: rand.New(rand.NewSource(seed))}
}

// Handle spawns particles for events. Subscribe it to the game's event bus.
func (r *ParticleRenderer) Handle(e events.Event) {
	switch e.Type {
	case events.EntityDied:
		r.burst(e.X, e.Y, 12, 60, ParticleDeath)
	case events.BossConverted:
		r.burst(e.X, e.Y, 40, 120, ParticleConversion)
	case events.TitleReady:
		r.burst(e.X, e.Y, 30, 90, ParticleCore)
	}
}

func (r *ParticleRenderer) burst(x, y float64, n int, speed float64, kind ParticleKind) {
	for i := 0; i < n; i++ {
		angle := r.rng.Float64() * 2 * math.Pi
		v := speed * (0.3 + 0.7*r.rng.Float64())
		life := 0.4 + 0.6*r.rng.Float64()
		r.particles = append(r.particles, Particle{
			X: x, Y: y,
			VX: math.Cos(angle) * v, VY: math.Sin(angle) * v,
			Life: life, MaxLife: life,
			Size: 2 + 2*r.rng.Float64(),
			Kind: kind,
		})
	}
}

// Update advances particles by the frame time and drops expired ones.
func (r *ParticleRenderer) Update(dt float64) {
	alive := r.particles[:0]
	for _, p := range r.particles {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		alive = append(alive, p)
	}
	r.particles = alive
}

// Draw renders all particles.
func (r *ParticleRenderer) Draw() {
	for i := range r.particles {
		p := &r.particles[i]

		// Calculate life ratio for fade
		lifeRatio := p.Life / p.MaxLife

		var color rl.Color
		switch p.Kind {
		case ParticleDeath:
			color = rl.Color{R: 100, G: 80, B: 60, A: uint8(lifeRatio * 150)}
		case ParticleConversion:
			color = rl.Color{R: 255, G: 150, B: 50, A: uint8(lifeRatio * 200)}
		case ParticleCore:
			color = rl.Color{R: 255, G: 240, B: 200, A: uint8(lifeRatio * 200)}
		}

		size := math.Max(p.Size*lifeRatio, 0.5)
		rl.DrawCircle(int32(p.X), int32(p.Y), float32(size), color)
	}
}

// Count returns the number of live particles.
func (r *ParticleRenderer) Count() int {
	return len(r.particles)
}
