// Package session ties browsing and playback together. Every method is
// called from the UI's update loop, one event at a time.
package session

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/olivier-w/dirplay/internal/media"
	"github.com/olivier-w/dirplay/internal/nav"
	"github.com/olivier-w/dirplay/internal/playback"
	zlog "github.com/rs/zerolog/log"
)

// StatusTTL is how long a status message stays visible.
const StatusTTL = 5 * time.Second

// Session is the browser plus the player.
type Session struct {
	nav    *nav.Navigator
	player *playback.Controller

	status   string
	statusAt time.Time
	now      func() time.Time
}

// New creates a session. The navigator's listing is not read until Refresh.
func New(n *nav.Navigator, c *playback.Controller) *Session {
	return &Session{nav: n, player: c, now: time.Now}
}

// Nav returns the navigation state.
func (s *Session) Nav() *nav.Navigator { return s.nav }

// Playback returns the playback controller.
func (s *Session) Playback() *playback.Controller { return s.player }

// Dispatch applies cmd. It returns true when the session should end.
func (s *Session) Dispatch(cmd Command) bool {
	zlog.Debug().Stringer("command", cmd).Str("state", s.player.State().String()).Msg("dispatch")

	switch cmd {
	case Quit:
		s.player.Stop()
		return true
	case ToggleShuffle:
		mode := s.nav.Mode().Toggle()
		s.nav.SetMode(mode)
		s.SetStatus("order: " + mode.String())
	case Stop:
		s.player.Stop()
	case SelectNext:
		s.nav.SelectNext()
	case SelectPrevious:
		s.nav.SelectPrevious()
	case LeaveDirectory:
		s.report(s.nav.LeaveToParent())
	case Activate:
		path, ok, err := s.nav.EnterSelected()
		if err != nil {
			s.report(err)
			return false
		}
		if !ok {
			return false
		}
		// Leave the current track alone when the file cannot be decoded.
		if !media.IsSupportedExt(filepath.Ext(path)) {
			s.SetStatus("unsupported format: " + filepath.Base(path) + " (supported: " + media.SupportedExtsList() + ")")
			return false
		}
		s.report(s.player.Play(path))
	case PauseOrResume:
		switch s.player.State() {
		case playback.StatePlaying:
			s.player.Pause()
		case playback.StatePaused:
			s.player.Resume()
		}
	}
	return false
}

// Tick advances to the next track when the current one has finished.
func (s *Session) Tick() {
	_, err := s.player.Tick(s.nav.Listing())
	s.report(err)
}

// Refresh lists the current directory again.
func (s *Session) Refresh() {
	s.report(s.nav.Refresh())
}

// Reload re-reads the listing after a change on disk. Playback continues.
func (s *Session) Reload() {
	s.report(s.nav.Reload())
}

// SetStatus shows msg in the status area until it expires.
func (s *Session) SetStatus(msg string) {
	s.status = msg
	s.statusAt = s.now()
}

// StatusMessage returns the current status message, or "" once expired.
func (s *Session) StatusMessage() string {
	if s.status == "" || s.now().Sub(s.statusAt) >= StatusTTL {
		return ""
	}
	return s.status
}

func (s *Session) report(err error) {
	if err == nil {
		return
	}
	zlog.Error().Err(err).Str("dir", s.nav.Path()).Msg("operation failed")
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	s.SetStatus(msg)
}
