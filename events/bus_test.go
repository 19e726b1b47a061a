package events

import "testing"

func TestBusDeliversInOrderOnFlush(t *testing.T) {
	bus := NewBus()
	var got []Type
	bus.Subscribe(func(e Event) { got = append(got, e.Type) })

	bus.Emit(Event{Type: BossSpawned})
	bus.Emit(Event{Type: EntityDied})

	if len(got) != 0 {
		t.Fatalf("handlers ran before flush: %v", got)
	}
	if bus.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", bus.Pending())
	}

	bus.Flush()

	if len(got) != 2 || got[0] != BossSpawned || got[1] != EntityDied {
		t.Errorf("delivered %v, want [boss_spawned entity_died]", got)
	}
	if bus.Pending() != 0 {
		t.Errorf("pending after flush = %d, want 0", bus.Pending())
	}
}

func TestBusReentrantEmitDeferred(t *testing.T) {
	bus := NewBus()
	calls := 0
	bus.Subscribe(func(e Event) {
		calls++
		if e.Type == BossDefeated {
			bus.Emit(Event{Type: BossGone})
		}
	})

	bus.Emit(Event{Type: BossDefeated})
	bus.Flush()
	if calls != 1 {
		t.Fatalf("calls after first flush = %d, want 1", calls)
	}

	bus.Flush()
	if calls != 2 {
		t.Errorf("calls after second flush = %d, want 2", calls)
	}
}

func TestRecorderCount(t *testing.T) {
	var r Recorder
	r.Emit(NewDeathEvent(1, 3, 0, 0))
	r.Emit(NewDeathEvent(1, 4, 0, 0))
	r.Emit(NewLinkEvent(AbsorbStart, 1, 3, 4))

	if n := r.Count(EntityDied); n != 2 {
		t.Errorf("Count(EntityDied) = %d, want 2", n)
	}
	r.Reset()
	if len(r.Events) != 0 {
		t.Errorf("events after reset = %d", len(r.Events))
	}
}

func TestTypeString(t *testing.T) {
	if s := BossExploding.String(); s != "boss_exploding" {
		t.Errorf("BossExploding.String() = %q", s)
	}
	if s := Type(200).String(); s != "unknown" {
		t.Errorf("out of range String() = %q", s)
	}
}
