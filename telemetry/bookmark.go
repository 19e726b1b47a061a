package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPopulationCrash BookmarkType = "population_crash"
	BookmarkPlayerSurge     BookmarkType = "player_surge"
	BookmarkDominance       BookmarkType = "dominance"
	BookmarkBossStreak      BookmarkType = "boss_streak"
	BookmarkStableField     BookmarkType = "stable_field"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Session     int          `csv:"session"`
	SimTime     float64      `csv:"sim_time"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"session", b.Session,
		"sim_time", b.SimTime,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments in a session from its window stats.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	session            int
	recentAlivePeak    int
	dominant           bool
	defeatStreak       int
	stableWindowsCount int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable field detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
// A change of session resets all tracking.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	if stats.Session != bd.session {
		bd.reset(stats.Session)
	}

	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		// Population crash: alive count dropped >30% from recent peak
		if b := bd.checkPopulationCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Player surge: player energy > 2x rolling average
		if b := bd.checkPlayerSurge(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Stable field: alive count flat with no deaths over 5 windows
		if b := bd.checkStableField(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Dominance: one entity holds most of the alive energy
	if b := bd.checkDominance(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Boss streak: three consecutive Boss defeats without an explosion
	if b := bd.checkBossStreak(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	if stats.Alive > bd.recentAlivePeak {
		bd.recentAlivePeak = stats.Alive
	}

	return bookmarks
}

func (bd *BookmarkDetector) reset(session int) {
	*bd = BookmarkDetector{
		history:     bd.history,
		historySize: bd.historySize,
		session:     session,
	}
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) bookmark(t BookmarkType, stats WindowStats, format string, args ...any) *Bookmark {
	return &Bookmark{
		Type:        t,
		Session:     stats.Session,
		SimTime:     stats.SimTimeSec,
		Description: fmt.Sprintf(format, args...),
	}
}

func (bd *BookmarkDetector) checkPopulationCrash(stats WindowStats) *Bookmark {
	if bd.recentAlivePeak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Alive)/float64(bd.recentAlivePeak)
	if drop > 0.30 && stats.Alive <= bd.recentAlivePeak-5 {
		oldPeak := bd.recentAlivePeak
		bd.recentAlivePeak = stats.Alive
		return bd.bookmark(BookmarkPopulationCrash, stats,
			"Alive count fell %.0f%% from %d to %d", drop*100, oldPeak, stats.Alive)
	}
	return nil
}

func (bd *BookmarkDetector) checkPlayerSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.PlayerEnergy
	}
	avg := total / float64(len(history))
	if avg <= 0 {
		return nil
	}

	if stats.PlayerEnergy > avg*2.0 && stats.PlayerEnergy >= 200 {
		return bd.bookmark(BookmarkPlayerSurge, stats,
			"Player energy %.0f is %.1fx average (%.0f)", stats.PlayerEnergy, stats.PlayerEnergy/avg, avg)
	}
	return nil
}

func (bd *BookmarkDetector) checkDominance(stats WindowStats) *Bookmark {
	share := 0.0
	if stats.EnergyTotal > 0 {
		share = stats.EnergyMax / stats.EnergyTotal
	}

	// Re-arm once the leader loses its majority
	if share < 0.4 {
		bd.dominant = false
		return nil
	}
	if bd.dominant || share <= 0.5 || stats.Alive < 3 {
		return nil
	}
	bd.dominant = true
	return bd.bookmark(BookmarkDominance, stats,
		"One entity holds %.0f%% of %.0f alive energy", share*100, stats.EnergyTotal)
}

func (bd *BookmarkDetector) checkBossStreak(stats WindowStats) *Bookmark {
	if stats.BossExplosions > 0 {
		bd.defeatStreak = 0
		return nil
	}
	before := bd.defeatStreak
	bd.defeatStreak += stats.BossesDefeated
	if before < 3 && bd.defeatStreak >= 3 {
		return bd.bookmark(BookmarkBossStreak, stats, "%d Bosses defeated in a row", bd.defeatStreak)
	}
	return nil
}

func (bd *BookmarkDetector) checkStableField(stats WindowStats) *Bookmark {
	if stats.Alive < 3 || stats.Deaths > 0 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	recent := history[len(history)-4:]
	var sum float64
	for _, h := range recent {
		sum += float64(h.Alive)
	}
	mean := sum / 4

	var variance float64
	for _, h := range recent {
		d := float64(h.Alive) - mean
		variance += d * d
	}
	variance /= 4

	cv2 := 0.0
	if mean > 0 {
		cv2 = variance / (mean * mean)
	}

	if cv2 < 0.04 { // CV^2 < 0.04 means CV < 0.2
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 { // trigger exactly once at 5 windows
		return bd.bookmark(BookmarkStableField, stats,
			"Field held %d entities with no deaths over 5+ windows", stats.Alive)
	}
	return nil
}
