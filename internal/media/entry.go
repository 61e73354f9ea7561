package media

import "path/filepath"

// Kind is the closed set of entry kinds shown in a listing.
type Kind int

const (
	OtherFile Kind = iota
	AudioFile
	Directory
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case AudioFile:
		return "audio"
	default:
		return "other"
	}
}

// Icon returns the glyph drawn in front of an entry of this kind.
func (k Kind) Icon() string {
	switch k {
	case Directory:
		return "📁"
	case AudioFile:
		return "🎵"
	default:
		return "📄"
	}
}

// Entry is one child of the browsed directory. Entries are immutable; a new
// listing produces new entries.
type Entry struct {
	Path string
	Kind Kind
}

// NewEntry builds an entry, classifying it from the path.
func NewEntry(path string, isDir bool) Entry {
	return Entry{Path: path, Kind: Classify(path, isDir)}
}

// Name returns the base name of the entry.
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == Directory
}

// Playable reports whether auto-advance may pick the entry.
func (e Entry) Playable() bool {
	return e.Kind == AudioFile
}
