package components

// Position represents an entity's arena position.
type Position struct {
	X, Y float64
}

// Drift holds the idle float heading of an entity that is neither fleeing nor chasing.
// Duration <= 0 means no heading has been picked yet.
type Drift struct {
	DirX, DirY float64
	Duration   float64 // seconds this heading lasts
	Timer      float64 // seconds spent on this heading
}
