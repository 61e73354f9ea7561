// Package playback provides the play/pause/stop/auto-advance state machine.
package playback

// State represents the playback state.
type State int

const (
	StateIdle    State = iota // Nothing loaded
	StatePlaying              // Track is playing
	StatePaused               // Track is paused
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Icon returns the glyph for the status line.
func (s State) Icon() string {
	switch s {
	case StatePlaying:
		return "▶"
	case StatePaused:
		return "❚❚"
	default:
		return "■"
	}
}
