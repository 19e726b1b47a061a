package tui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/wudao/components"
	"github.com/pthm-cable/wudao/game"
)

func TestCellOfClamps(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		cx, cy int
	}{
		{"origin", 0, 0, 0, 0},
		{"center", 640, 360, 40, 12},
		{"far edge", 1280, 720, 79, 23},
		{"outside", -50, 900, 0, 23},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cy := cellOf(tt.x, tt.y, 1280, 720, 80, 24)
			if cx != tt.cx || cy != tt.cy {
				t.Errorf("cellOf(%v, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
			}
		})
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		name string
		e    game.EntityView
		want rune
	}{
		{"player", game.EntityView{Player: true, Energy: 50}, '@'},
		{"weaker", game.EntityView{Energy: 40}, 'o'},
		{"stronger", game.EntityView{Energy: 80}, 'O'},
		{"hit", game.EntityView{Energy: 80, Hit: true}, 'x'},
		{"dying", game.EntityView{State: components.Dying, Player: true}, '.'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := glyph(tt.e, 50); got != tt.want {
				t.Errorf("glyph = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInputHoldExpires(t *testing.T) {
	var in input
	now := time.Now()
	in.set(1, 0, now)

	if dx, _ := in.intent(now.Add(50 * time.Millisecond)); dx != 1 {
		t.Errorf("intent during hold = %v, want 1", dx)
	}
	if dx, dy := in.intent(now.Add(time.Second)); dx != 0 || dy != 0 {
		t.Errorf("intent after hold = (%v, %v), want zero", dx, dy)
	}
}

func TestDrawPlacesPlayerAndStatus(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 25)

	view := NewView(screen)
	obs := game.Observation{
		State:       game.StatePlaying,
		Width:       1280,
		Height:      720,
		PlayerIndex: 0,
		Entities: []game.EntityView{
			{ID: 1, X: 640, Y: 360, Energy: 60, Player: true},
			{ID: 2, X: 0, Y: 0, Energy: 90},
		},
	}
	view.Draw(obs)

	if r, _, _, _ := screen.GetContent(40, 12); r != '@' {
		t.Errorf("player cell = %q, want '@'", r)
	}
	if r, _, _, _ := screen.GetContent(0, 0); r != 'O' {
		t.Errorf("stronger entity cell = %q, want 'O'", r)
	}
	if r, _, _, _ := screen.GetContent(1, 24); r != 't' {
		t.Errorf("status line starts with %q, want 't'", r)
	}
}

func TestPollEventsStopsWhenDone(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer screen.Fini()

	// Nobody reads out, so the forwarder can only leave through done
	out := make(chan tcell.Event)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		pollEvents(screen, out, done)
		close(finished)
	}()

	close(done)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("event forwarder still blocked after done was closed")
	}
}
