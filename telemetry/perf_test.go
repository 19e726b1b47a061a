package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorPhases(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseLink)
		time.Sleep(50 * time.Microsecond)
		pc.StartPhase(PhaseSteer)
		time.Sleep(500 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTick <= 0 || stats.TicksPerSecond <= 0 {
		t.Fatalf("avg tick %v, ticks/s %v: want positive", stats.AvgTick, stats.TicksPerSecond)
	}
	if stats.PhaseAvg[PhaseLink] <= 0 || stats.PhaseAvg[PhaseSteer] <= 0 {
		t.Errorf("phase averages = %v, want link and steer tracked", stats.PhaseAvg)
	}
	if stats.PhaseAvg[PhaseBoss] != 0 {
		t.Errorf("boss phase = %v, never entered", stats.PhaseAvg[PhaseBoss])
	}
	if stats.PhasePct[PhaseSteer] <= stats.PhasePct[PhaseLink] {
		t.Errorf("steer %v%% should exceed link %v%%", stats.PhasePct[PhaseSteer], stats.PhasePct[PhaseLink])
	}
}

func TestPerfCollectorReenteredPhaseAddsUp(t *testing.T) {
	pc := NewPerfCollector(1)

	pc.StartTick()
	pc.StartPhase(PhaseTelemetry)
	time.Sleep(200 * time.Microsecond)
	pc.StartPhase(PhaseBoss)
	pc.StartPhase(PhaseTelemetry)
	time.Sleep(200 * time.Microsecond)
	pc.EndTick()

	if got := pc.Stats().PhaseAvg[PhaseTelemetry]; got < 400*time.Microsecond {
		t.Errorf("telemetry phase = %v, want both visits counted", got)
	}
}

func TestPerfCollectorWindowEvicts(t *testing.T) {
	pc := NewPerfCollector(2)

	pc.StartTick()
	pc.StartPhase(PhaseBoss)
	time.Sleep(2 * time.Millisecond)
	pc.EndTick()

	for i := 0; i < 2; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseLink)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.PhaseAvg[PhaseBoss] != 0 {
		t.Errorf("evicted boss tick still counted: %v", stats.PhaseAvg[PhaseBoss])
	}
	if stats.MaxTick >= 2*time.Millisecond {
		t.Errorf("max tick %v still includes the evicted tick", stats.MaxTick)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	stats := NewPerfCollector(10).Stats()
	if stats.AvgTick != 0 || stats.TicksPerSecond != 0 || stats.FPS != 0 {
		t.Errorf("empty stats = %+v, want zero", stats)
	}
}

func TestPerfCollectorFrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("frame duration = %v, want >= 15ms", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("fps = %v, want (0,70] for a 16ms frame", stats.FPS)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseTitleCore.String() != "title_core" {
		t.Errorf("PhaseTitleCore = %q", PhaseTitleCore.String())
	}
	if NumPhases.String() != "unknown" {
		t.Errorf("NumPhases = %q, want unknown", NumPhases.String())
	}
}

func TestPerfStatsRow(t *testing.T) {
	stats := PerfStats{AvgTick: 250 * time.Microsecond}
	stats.PhasePct[PhaseBoss] = 12.5
	stats.PhasePct[PhaseLink] = 40

	row := stats.Row(3, 42.5)
	if row.Session != 3 || row.SimTime != 42.5 {
		t.Errorf("row header = %d %v", row.Session, row.SimTime)
	}
	if row.AvgTickUS != 250 {
		t.Errorf("avg tick = %d us, want 250", row.AvgTickUS)
	}
	if row.BossPct != 12.5 || row.LinkPct != 40 || row.SteerPct != 0 {
		t.Errorf("phase pct = boss %v link %v steer %v", row.BossPct, row.LinkPct, row.SteerPct)
	}
}
