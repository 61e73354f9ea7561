// Package nav tracks the browsed directory, its ordered listing and the
// selection cursor.
package nav

import (
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/olivier-w/dirplay/internal/media"
	"github.com/olivier-w/dirplay/internal/playlist"
	zlog "github.com/rs/zerolog/log"
)

// Navigator is the browsing half of a session. The listing and the selection
// are always replaced together; a failed listing leaves both untouched.
type Navigator struct {
	lister   Lister
	orderer  *playlist.Orderer
	path     string
	entries  []media.Entry
	selected int // -1 when entries is empty
	mode     playlist.Mode
}

// New creates a Navigator rooted at path. The listing stays empty until
// Refresh is called.
func New(lister Lister, orderer *playlist.Orderer, path string, mode playlist.Mode) *Navigator {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &Navigator{
		lister:   lister,
		orderer:  orderer,
		path:     filepath.Clean(path),
		entries:  []media.Entry{},
		selected: -1,
		mode:     mode,
	}
}

// Path returns the directory being browsed.
func (n *Navigator) Path() string { return n.path }

// Mode returns the ordering mode.
func (n *Navigator) Mode() playlist.Mode { return n.mode }

// Entries returns a copy of the ordered listing.
func (n *Navigator) Entries() []media.Entry { return slices.Clone(n.entries) }

// Listing returns the ordered listing without copying. Listings are
// replaced, never modified in place, so the slice stays valid as a snapshot;
// callers must not write to it.
func (n *Navigator) Listing() []media.Entry { return n.entries }

// Len returns the number of entries in the listing.
func (n *Navigator) Len() int { return len(n.entries) }

// Selected returns the selection index, or false when the listing is empty.
func (n *Navigator) Selected() (int, bool) {
	if n.selected < 0 {
		return 0, false
	}
	return n.selected, true
}

// SelectedEntry returns the entry under the cursor.
func (n *Navigator) SelectedEntry() (media.Entry, bool) {
	if n.selected < 0 {
		return media.Entry{}, false
	}
	return n.entries[n.selected], true
}

// Refresh lists the current directory again and resets the selection.
func (n *Navigator) Refresh() error {
	return n.moveTo(n.path)
}

// Reload is Refresh, triggered by a filesystem change rather than the user.
func (n *Navigator) Reload() error {
	return n.Refresh()
}

// SelectNext moves the cursor down, wrapping to the top.
func (n *Navigator) SelectNext() {
	if len(n.entries) == 0 {
		return
	}
	n.selected = (n.selected + 1) % len(n.entries)
}

// SelectPrevious moves the cursor up, wrapping to the bottom.
func (n *Navigator) SelectPrevious() {
	if len(n.entries) == 0 {
		return
	}
	n.selected = (n.selected - 1 + len(n.entries)) % len(n.entries)
}

// Select moves the cursor to i. It returns false if i is out of range.
func (n *Navigator) Select(i int) bool {
	if i < 0 || i >= len(n.entries) {
		return false
	}
	n.selected = i
	return true
}

// EnterSelected descends into the selected directory, or reports the
// selected file's path so the caller can play it.
func (n *Navigator) EnterSelected() (play string, ok bool, err error) {
	e, has := n.SelectedEntry()
	if !has {
		return "", false, nil
	}
	if e.IsDir() {
		return "", false, n.moveTo(e.Path)
	}
	return e.Path, true, nil
}

// LeaveToParent moves to the parent directory. It is a no-op at a root.
func (n *Navigator) LeaveToParent() error {
	parent := filepath.Dir(n.path)
	if parent == n.path {
		return nil
	}
	return n.moveTo(parent)
}

// SetMode re-orders the current listing without reading the directory again.
func (n *Navigator) SetMode(mode playlist.Mode) {
	n.mode = mode
	n.replace(n.path, n.orderer.Order(n.entries, mode))
}

// moveTo lists path and, only on success, commits path, listing and selection.
func (n *Navigator) moveTo(path string) error {
	listed, err := n.lister.List(path)
	if err != nil {
		if !errors.Is(err, ErrListing) {
			err = errors.Mark(err, ErrListing)
		}
		zlog.Warn().Err(err).Str("path", path).Msg("listing failed, keeping previous listing")
		return err
	}
	n.replace(path, n.orderer.Order(listed, n.mode))
	zlog.Debug().Str("path", path).Int("entries", len(n.entries)).Str("mode", n.mode.String()).Msg("listing replaced")
	return nil
}

func (n *Navigator) replace(path string, entries []media.Entry) {
	n.path = path
	n.entries = entries
	if len(entries) == 0 {
		n.selected = -1
	} else {
		n.selected = 0
	}
}
