package nav

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/olivier-w/dirplay/internal/media"
)

// ErrListing marks failures to read a directory.
var ErrListing = errors.New("directory listing failed")

// Lister returns the immediate children of a directory.
type Lister interface {
	List(path string) ([]media.Entry, error)
}

// OSLister lists directories from the local filesystem.
type OSLister struct{}

// List reads path without recursing. Symlinks are resolved once to decide
// whether they point at a directory; broken links list as OtherFile.
func (OSLister) List(path string) ([]media.Entry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "reading %s", path), ErrListing)
	}

	entries := make([]media.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		full := filepath.Join(path, de.Name())
		isDir := de.IsDir()
		if de.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(full)
			if err != nil {
				entries = append(entries, media.Entry{Path: full, Kind: media.OtherFile})
				continue
			}
			isDir = info.IsDir()
		}
		entries = append(entries, media.NewEntry(full, isDir))
	}
	return entries, nil
}
