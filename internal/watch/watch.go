// Package watch follows one directory and reports when its entries change.
package watch

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	zlog "github.com/rs/zerolog/log"
)

// Watcher follows a single directory at a time. Bursts of changes collapse
// into one pending notification.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan struct{}

	mu  sync.Mutex
	dir string
}

// New starts a watcher that follows nothing until Watch is called.
func New() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating directory watcher")
	}
	w := &Watcher{
		fs:     fw,
		events: make(chan struct{}, 1),
	}
	go w.run()
	return w, nil
}

// Watch switches the watcher to dir.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		// The old directory may already be gone.
		_ = w.fs.Remove(w.dir)
		w.dir = ""
	}
	if err := w.fs.Add(dir); err != nil {
		return errors.Wrapf(err, "watching %s", dir)
	}
	w.dir = dir
	return nil
}

// Events delivers one value per batch of changes. It is closed by Close.
func (w *Watcher) Events() <-chan struct{} { return w.events }

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) run() {
	defer close(w.events)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			zlog.Debug().Str("name", event.Name).Str("op", event.Op.String()).Msg("directory changed")
			select {
			case w.events <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			zlog.Warn().Err(err).Msg("directory watcher error")
		}
	}
}
