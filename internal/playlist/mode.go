package playlist

// Mode represents how a listing becomes the displayed sequence.
type Mode int

const (
	Sorted Mode = iota
	Shuffled
)

// Toggle switches between sorted and shuffled.
func (m Mode) Toggle() Mode {
	if m == Shuffled {
		return Sorted
	}
	return Shuffled
}

// String returns the name of the mode.
func (m Mode) String() string {
	if m == Shuffled {
		return "shuffled"
	}
	return "sorted"
}

// Icon returns a visual indicator for the mode.
func (m Mode) Icon() string {
	if m == Shuffled {
		return "[shuffle]"
	}
	return ""
}
