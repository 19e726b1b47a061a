package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, t BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == t {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_PopulationCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{Session: 1, SimTimeSec: float64(i * 5), Alive: 32})
	}

	bookmarks := bd.Check(WindowStats{Session: 1, SimTimeSec: 25, Alive: 16})
	if !hasBookmark(bookmarks, BookmarkPopulationCrash) {
		t.Error("expected population_crash bookmark")
	}

	// Peak resets after a crash
	bookmarks = bd.Check(WindowStats{Session: 1, SimTimeSec: 30, Alive: 15})
	if hasBookmark(bookmarks, BookmarkPopulationCrash) {
		t.Error("crash fired twice for the same drop")
	}
}

func TestBookmarkDetector_PlayerSurge(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{Session: 1, Alive: 30, PlayerEnergy: 100})
	}

	bookmarks := bd.Check(WindowStats{Session: 1, Alive: 30, PlayerEnergy: 450})
	if !hasBookmark(bookmarks, BookmarkPlayerSurge) {
		t.Error("expected player_surge bookmark")
	}
}

func TestBookmarkDetector_Dominance(t *testing.T) {
	bd := NewBookmarkDetector(10)

	stats := WindowStats{Session: 1, Alive: 10, EnergyTotal: 1000, EnergyMax: 600}
	if !hasBookmark(bd.Check(stats), BookmarkDominance) {
		t.Fatal("expected dominance bookmark")
	}
	if hasBookmark(bd.Check(stats), BookmarkDominance) {
		t.Error("dominance fired again without re-arming")
	}

	bd.Check(WindowStats{Session: 1, Alive: 10, EnergyTotal: 1000, EnergyMax: 200})
	if !hasBookmark(bd.Check(stats), BookmarkDominance) {
		t.Error("expected dominance to fire again after re-arming")
	}
}

func TestBookmarkDetector_BossStreak(t *testing.T) {
	tests := []struct {
		name    string
		windows []WindowStats
		want    bool
	}{
		{
			name: "three defeats",
			windows: []WindowStats{
				{Session: 1, BossesDefeated: 1},
				{Session: 1, BossesDefeated: 1},
				{Session: 1, BossesDefeated: 1},
			},
			want: true,
		},
		{
			name: "explosion breaks streak",
			windows: []WindowStats{
				{Session: 1, BossesDefeated: 2},
				{Session: 1, BossExplosions: 1},
				{Session: 1, BossesDefeated: 1},
			},
			want: false,
		},
		{
			name: "new session resets",
			windows: []WindowStats{
				{Session: 1, BossesDefeated: 2},
				{Session: 2, BossesDefeated: 1},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd := NewBookmarkDetector(10)
			got := false
			for _, w := range tt.windows {
				if hasBookmark(bd.Check(w), BookmarkBossStreak) {
					got = true
				}
			}
			if got != tt.want {
				t.Errorf("boss_streak fired = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBookmarkDetector_StableField(t *testing.T) {
	bd := NewBookmarkDetector(10)

	fired := 0
	for i := 0; i < 10; i++ {
		bookmarks := bd.Check(WindowStats{Session: 1, SimTimeSec: float64(i * 5), Alive: 20})
		if hasBookmark(bookmarks, BookmarkStableField) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("stable_field fired %d times, want 1", fired)
	}
}
