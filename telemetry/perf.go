package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one timed section of a simulation tick.
type Phase uint8

// Tick phases in execution order.
const (
	PhasePlayer Phase = iota
	PhaseSteer
	PhaseLink
	PhaseTransfer
	PhaseTitleCore
	PhaseLife
	PhaseBoss
	PhaseCleanup
	PhaseTelemetry
	NumPhases
)

var phaseNames = [NumPhases]string{
	PhasePlayer:    "player",
	PhaseSteer:     "steer",
	PhaseLink:      "link",
	PhaseTransfer:  "transfer",
	PhaseTitleCore: "title_core",
	PhaseLife:      "life",
	PhaseBoss:      "boss",
	PhaseCleanup:   "cleanup",
	PhaseTelemetry: "telemetry",
}

// String returns the phase ID shared with the system registry.
func (p Phase) String() string {
	if p < NumPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// PhaseTimes holds one duration per phase.
type PhaseTimes [NumPhases]time.Duration

const noPhase = NumPhases

// PerfCollector keeps tick and phase timings over a ring of recent ticks.
// Window sums are updated as samples enter and leave the ring.
type PerfCollector struct {
	ticks  []time.Duration
	phases []PhaseTimes
	next   int
	filled int

	tickSum  time.Duration
	phaseSum PhaseTimes

	current    PhaseTimes
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		ticks:  make([]time.Duration, window),
		phases: make([]PhaseTimes, window),
		phase:  noPhase,
	}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = PhaseTimes{}
	p.phase = noPhase
}

// StartPhase closes the running phase and opens the given one. A phase may
// be entered more than once per tick; its times add up.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase < NumPhases {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the tick and pushes it into the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = noPhase
	tick := now.Sub(p.tickStart)

	if p.filled == len(p.ticks) {
		p.tickSum -= p.ticks[p.next]
		for i, d := range p.phases[p.next] {
			p.phaseSum[i] -= d
		}
	} else {
		p.filled++
	}
	p.ticks[p.next] = tick
	p.phases[p.next] = p.current
	p.tickSum += tick
	for i, d := range p.current {
		p.phaseSum[i] += d
	}
	p.next = (p.next + 1) % len(p.ticks)
}

// RecordFrame marks a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the window.
type PerfStats struct {
	AvgTick        time.Duration
	MaxTick        time.Duration
	PhaseAvg       PhaseTimes
	PhasePct       [NumPhases]float64 // Share of the average tick
	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats returns the window summary. Zero before the first tick.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{FrameDuration: p.frame}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	n := time.Duration(p.filled)
	s.AvgTick = p.tickSum / n
	for _, d := range p.ticks[:p.filled] {
		s.MaxTick = max(s.MaxTick, d)
	}
	for i, sum := range p.phaseSum {
		s.PhaseAvg[i] = sum / n
		if s.AvgTick > 0 {
			s.PhasePct[i] = float64(s.PhaseAvg[i]) / float64(s.AvgTick) * 100
		}
	}
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}
	return s
}

// LogValue implements slog.LogValuer. Phases under 0.1% of the tick are left out.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for i, pct := range s.PhasePct {
		if pct > 0.1 {
			attrs = append(attrs, slog.Float64(Phase(i).String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the summary.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// PerfRow is one perf.csv row.
type PerfRow struct {
	Session      int     `csv:"session"`
	SimTime      float64 `csv:"sim_time"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	PlayerPct    float64 `csv:"player_pct"`
	SteerPct     float64 `csv:"steer_pct"`
	LinkPct      float64 `csv:"link_pct"`
	TransferPct  float64 `csv:"transfer_pct"`
	TitleCorePct float64 `csv:"title_core_pct"`
	LifePct      float64 `csv:"life_pct"`
	BossPct      float64 `csv:"boss_pct"`
	CleanupPct   float64 `csv:"cleanup_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// Row flattens the summary for perf.csv.
func (s PerfStats) Row(session int, simTime float64) PerfRow {
	pct := s.PhasePct
	return PerfRow{
		Session:      session,
		SimTime:      simTime,
		AvgTickUS:    s.AvgTick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		PlayerPct:    pct[PhasePlayer],
		SteerPct:     pct[PhaseSteer],
		LinkPct:      pct[PhaseLink],
		TransferPct:  pct[PhaseTransfer],
		TitleCorePct: pct[PhaseTitleCore],
		LifePct:      pct[PhaseLife],
		BossPct:      pct[PhaseBoss],
		CleanupPct:   pct[PhaseCleanup],
		TelemetryPct: pct[PhaseTelemetry],
	}
}
