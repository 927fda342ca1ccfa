package media

// State represents the element's playback state.
//
//	┌──────────┐      play       ┌──────────┐
//	│  Paused  │ ───────────────▶│  Playing │
//	└──────────┘ ◀───────────────└──────────┘
//	                  pause
//
// Play may fail with ErrAutoplayDenied, in which case the element stays Paused.
// Seeking is valid in both states and does not change the state.
type State int

const (
	Paused State = iota
	Playing
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}
