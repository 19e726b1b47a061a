package tui

import (
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/wudao/game"
)

const (
	frameInterval = 16 * time.Millisecond
	// Terminals report key presses, not releases. An intent is held this long
	// after the last repeat.
	intentHold = 150 * time.Millisecond
)

// input tracks the held direction from key repeats.
type input struct {
	dx, dy  float64
	pressed time.Time
}

// key applies a key event. It returns false when the user asked to quit.
func (in *input) key(ev *tcell.EventKey, g *game.Game, now time.Time) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		in.set(0, -1, now)
	case tcell.KeyDown:
		in.set(0, 1, now)
	case tcell.KeyLeft:
		in.set(-1, 0, now)
	case tcell.KeyRight:
		in.set(1, 0, now)
	case tcell.KeyEnter:
		g.RequestRestart()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			g.RequestRestart()
		case 'w':
			in.set(0, -1, now)
		case 's':
			in.set(0, 1, now)
		case 'a':
			in.set(-1, 0, now)
		case 'd':
			in.set(1, 0, now)
		}
	}
	return true
}

func (in *input) set(dx, dy float64, now time.Time) {
	in.dx, in.dy = dx, dy
	in.pressed = now
}

// intent returns the held direction, or zero once the hold expired.
func (in *input) intent(now time.Time) (float64, float64) {
	if now.Sub(in.pressed) > intentHold {
		return 0, 0
	}
	return in.dx, in.dy
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed.
func pollEvents(screen tcell.Screen, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// Run drives the game in the terminal until the user quits.
func Run(g *game.Game) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	view := NewView(screen)
	var in input

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, eventChan, done)

	start := time.Now()
	last := start
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !in.key(ev, g, time.Now()) {
					slog.Info("tui_quit", "ticks", g.Ticks())
					return nil
				}
			case *tcell.EventResize:
				view.Resize()
				screen.Sync()
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			g.SetIntent(in.intent(now))
			g.Tick(dt, now.Sub(start).Seconds())
			view.Draw(g.Observe())
		}
	}
}
