package session

// Command is a user intent, decoded from a key press by the UI.
type Command int

const (
	Quit Command = iota
	ToggleShuffle
	Stop
	SelectNext
	SelectPrevious
	LeaveDirectory
	Activate
	PauseOrResume
)

func (c Command) String() string {
	switch c {
	case Quit:
		return "quit"
	case ToggleShuffle:
		return "toggle-shuffle"
	case Stop:
		return "stop"
	case SelectNext:
		return "select-next"
	case SelectPrevious:
		return "select-previous"
	case LeaveDirectory:
		return "leave-directory"
	case Activate:
		return "activate"
	case PauseOrResume:
		return "pause-or-resume"
	default:
		return "unknown"
	}
}
