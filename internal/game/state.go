// Package game provides the main game loop and state management.
package game

// State represents the current game state.
type State int

const (
	// StateExplore is the default mode where each key press is one turn.
	StateExplore State = iota
	// StateAutorun walks the player toward the down stairs without input.
	StateAutorun
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateAutorun:
		return "autorun"
	default:
		return "unknown"
	}
}
