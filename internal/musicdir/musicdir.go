// Package musicdir picks the directory a session starts browsing in.
package musicdir

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// ErrHomeDirectory marks a failure to find the user's home directory.
var ErrHomeDirectory = errors.New("could not find home directory")

// Resolver looks up the platform directories. The zero value is not
// usable; start from Default.
type Resolver struct {
	// AudioDir returns the platform music directory, or "" if unknown.
	AudioDir func() string
	HomeDir  func() (string, error)
}

// Default uses the XDG user directories and the OS home directory.
func Default() Resolver {
	return Resolver{
		AudioDir: func() string { return xdg.UserDirs.Music },
		HomeDir:  os.UserHomeDir,
	}
}

// Resolve returns the first of: the command line argument, the configured
// directory, the platform music directory if it exists, and $HOME/Music,
// which is created when missing.
func (r Resolver) Resolve(arg, configured string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if configured != "" {
		return configured, nil
	}
	if dir := r.AudioDir(); dir != "" && isDir(dir) {
		return dir, nil
	}

	home, err := r.HomeDir()
	if err != nil || home == "" {
		if err == nil {
			err = errors.New("empty home directory")
		}
		return "", errors.Mark(err, ErrHomeDirectory)
	}
	dir := filepath.Join(home, "Music")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating %s", dir)
	}
	zlog.Debug().Str("dir", dir).Msg("using fallback music directory")
	return dir, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
