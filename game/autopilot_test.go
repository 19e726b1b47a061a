package game

import (
	"math"
	"testing"

	"github.com/pthm-cable/wudao/components"
	"github.com/pthm-cable/wudao/systems"
)

func TestAutopilot(t *testing.T) {
	player := EntityView{ID: 1, X: 0, Y: 0, Radius: 16, Energy: 100, Player: true}

	tests := []struct {
		name   string
		obs    Observation
		wantDX float64
		wantDY float64
	}{
		{
			name: "title walks to core",
			obs: Observation{
				State: StateTitle,
				Core:  CoreView{Present: true, X: 100, Reach: 150},
			},
			wantDX: 1,
		},
		{
			name: "title stops inside reach",
			obs: Observation{
				State: StateTitle,
				Core:  CoreView{Present: true, X: 50, Reach: 150},
			},
		},
		{
			name: "flees moving boss",
			obs: Observation{
				State: StatePlaying,
				Boss:  BossView{Present: true, Active: true, State: systems.BossMoving, X: 100, Radius: 40},
			},
			wantDX: -1,
		},
		{
			name: "ignores exploding boss",
			obs: Observation{
				State: StatePlaying,
				Boss:  BossView{Present: true, Active: true, State: systems.BossExploding, X: 100, Radius: 40},
			},
		},
		{
			name: "chases stronger neighbour",
			obs: Observation{
				State:    StatePlaying,
				Entities: []EntityView{{ID: 2, X: 0, Y: 300, Radius: 18, Energy: 150}},
			},
			wantDY: 1,
		},
		{
			name: "backs off from weaker neighbour",
			obs: Observation{
				State: StatePlaying,
				Entities: []EntityView{
					{ID: 2, X: 60, Y: 0, Radius: 13, Energy: 50},
					{ID: 3, X: 0, Y: 400, Radius: 18, Energy: 150},
				},
			},
			wantDX: -1,
		},
		{
			name: "game over is idle",
			obs:  Observation{State: StateGameOver},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := tt.obs
			obs.Entities = append([]EntityView{player}, obs.Entities...)
			obs.PlayerIndex = 0

			dx, dy := Autopilot(obs)
			if math.Abs(dx-tt.wantDX) > 1e-9 || math.Abs(dy-tt.wantDY) > 1e-9 {
				t.Errorf("Autopilot = (%v,%v), want (%v,%v)", dx, dy, tt.wantDX, tt.wantDY)
			}
		})
	}
}

func TestAutopilotWithoutLivePlayer(t *testing.T) {
	obs := Observation{
		State:       StatePlaying,
		Entities:    []EntityView{{ID: 1, Player: true, State: components.Dying}},
		PlayerIndex: 0,
	}
	if dx, dy := Autopilot(obs); dx != 0 || dy != 0 {
		t.Errorf("dying player got intent (%v,%v)", dx, dy)
	}

	obs.PlayerIndex = -1
	if dx, dy := Autopilot(obs); dx != 0 || dy != 0 {
		t.Errorf("missing player got intent (%v,%v)", dx, dy)
	}
}
