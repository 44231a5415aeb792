package match

// State is the match's position in its lifecycle.
type State int

const (
	StateActive   State = iota // Simulation advancing
	StatePaused                // Spawner and timelines suspended
	StateGameOver              // Terminal; ground health depleted
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}
