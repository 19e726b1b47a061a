// Package events defines the discrete notifications the simulation publishes for
// rendering, audio and telemetry collaborators.
package events

// Type identifies a simulation event.
type Type uint8

const (
	EntityDied  Type = iota // Entity entered its death transition
	EntityHit               // Entity struck by the Boss explosion
	AbsorbStart             // Absorption link formed
	AbsorbStop              // Absorption link torn down
	BossSpawned
	BossPaused  // Boss translation frozen while absorbing
	BossResumed // Boss translation continues
	BossDefeated
	BossPhase     // Conversion phase changed
	BossConverted // Boss energy re-entered the population as a new entity
	BossExploding
	BossGone // Boss became inactive
	TitleReady
	SessionStarted
	SessionEnded
)

var typeNames = [...]string{
	EntityDied:     "entity_died",
	EntityHit:      "entity_hit",
	AbsorbStart:    "absorb_start",
	AbsorbStop:     "absorb_stop",
	BossSpawned:    "boss_spawned",
	BossPaused:     "boss_paused",
	BossResumed:    "boss_resumed",
	BossDefeated:   "boss_defeated",
	BossPhase:      "boss_phase",
	BossConverted:  "boss_converted",
	BossExploding:  "boss_exploding",
	BossGone:       "boss_gone",
	TitleReady:     "title_ready",
	SessionStarted: "session_started",
	SessionEnded:   "session_ended",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// NoEntity marks an unused entity field. Entity IDs start at 1.
const NoEntity uint32 = 0

// Event is a single notification. Fields beyond Type and Time depend on the type.
type Event struct {
	Type Type
	Time float64 // Session clock in seconds

	EntityID uint32 // Subject entity (absorber for link events)
	PeerID   uint32 // Source entity for link events
	Core     bool   // Link event involves the title core instead of an absorber entity

	X, Y   float64
	Amount float64 // Energy, required energy or final time depending on type
	Phase  int     // Boss conversion phase
	Cause  string  // Session end cause
}

// Sink receives events. Systems hold a Sink instead of reaching for a global session.
type Sink interface {
	Emit(e Event)
}

type discard struct{}

func (discard) Emit(Event) {}

// Discard is a Sink that drops every event.
var Discard Sink = discard{}

// Recorder is a Sink that keeps every event in order.
type Recorder struct {
	Events []Event
}

// Emit appends the event.
func (r *Recorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}

// Count returns how many recorded events have the given type.
func (r *Recorder) Count(t Type) int {
	n := 0
	for _, e := range r.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Reset drops recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// NewDeathEvent creates an entity death event.
func NewDeathEvent(now float64, id uint32, x, y float64) Event {
	return Event{Type: EntityDied, Time: now, EntityID: id, X: x, Y: y}
}

// NewLinkEvent creates an absorb start/stop event between an absorber and its source.
func NewLinkEvent(t Type, now float64, absorberID, sourceID uint32) Event {
	return Event{Type: t, Time: now, EntityID: absorberID, PeerID: sourceID}
}

// NewCoreLinkEvent creates an absorb start/stop event between the title core and a source.
func NewCoreLinkEvent(t Type, now float64, sourceID uint32) Event {
	return Event{Type: t, Time: now, PeerID: sourceID, Core: true}
}

// NewBossEvent creates a Boss event at the Boss position.
func NewBossEvent(t Type, now, x, y, amount float64) Event {
	return Event{Type: t, Time: now, X: x, Y: y, Amount: amount}
}
