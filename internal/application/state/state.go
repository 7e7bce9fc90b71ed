package state

// GameState represents the current state of the game
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateReplaying
	StateReplayDone
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateReplaying:
		return "Replaying"
	case StateReplayDone:
		return "ReplayDone"
	default:
		return "Unknown"
	}
}

// Ticking reports whether the simulation advances in this state
func (s GameState) Ticking() bool {
	return s == StatePlaying || s == StateReplaying
}
