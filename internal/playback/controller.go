package playback

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/olivier-w/dirplay/internal/media"
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// ErrPlayback marks a track that could not be decoded or started.
var ErrPlayback = errors.New("playback failed")

// Output is the audio device: a single playback slot.
type Output interface {
	Play(path string) error
	Pause()
	Resume()
	Stop()
	// Idle reports whether nothing is queued on the device. A paused track
	// is not idle.
	Idle() bool
	Position() time.Duration
	Duration() time.Duration
}

// Controller owns the output and decides what plays. It is only used from
// the session's update loop.
type Controller struct {
	out        Output
	state      State
	nowPlaying string
}

// NewController creates an idle controller over out.
func NewController(out Output) *Controller {
	return &Controller{out: out, state: StateIdle}
}

// State returns the playback state.
func (c *Controller) State() State { return c.state }

// NowPlaying returns the loaded track, or false when idle.
func (c *Controller) NowPlaying() (string, bool) {
	return c.nowPlaying, c.state != StateIdle
}

// Position returns the elapsed time of the loaded track.
func (c *Controller) Position() time.Duration {
	if c.state == StateIdle {
		return 0
	}
	return c.out.Position()
}

// Duration returns the length of the loaded track.
func (c *Controller) Duration() time.Duration {
	if c.state == StateIdle {
		return 0
	}
	return c.out.Duration()
}

// Play replaces whatever is loaded with path. On failure the controller is
// idle and the previous track has been stopped.
func (c *Controller) Play(path string) error {
	c.out.Stop()
	if err := c.out.Play(path); err != nil {
		c.state = StateIdle
		c.nowPlaying = ""
		return errors.Mark(errors.Wrapf(err, "playing %s", path), ErrPlayback)
	}
	c.state = StatePlaying
	c.nowPlaying = path
	zlog.Debug().Str("path", path).Msg("playing")
	return nil
}

// Pause pauses a playing track. Ignored in other states.
func (c *Controller) Pause() {
	if c.state != StatePlaying {
		return
	}
	c.out.Pause()
	c.state = StatePaused
}

// Resume resumes a paused track. Ignored in other states.
func (c *Controller) Resume() {
	if c.state != StatePaused {
		return
	}
	c.out.Resume()
	c.state = StatePlaying
}

// Stop unloads the track and returns to idle.
func (c *Controller) Stop() {
	c.out.Stop()
	c.state = StateIdle
	c.nowPlaying = ""
}

// Tick polls the output and advances through entries once the playing track
// has drained. It reports whether an advance was attempted.
func (c *Controller) Tick(entries []media.Entry) (bool, error) {
	if c.state != StatePlaying || !c.out.Idle() {
		return false, nil
	}
	zlog.Debug().Str("path", c.nowPlaying).Msg("track ended")
	return true, c.Advance(entries)
}

// Advance plays the next audio file after the current track in entries,
// wrapping around at most once. Tracks that fail to decode are skipped within
// the same pass. If nothing can be played the controller goes idle.
func (c *Controller) Advance(entries []media.Entry) error {
	start := 0
	if _, i, found := lo.FindIndexOf(entries, func(e media.Entry) bool {
		return e.Path == c.nowPlaying
	}); found && c.nowPlaying != "" {
		start = i + 1
	}

	var errs error
	n := len(entries)
	for k := 0; k < n; k++ {
		e := entries[(start+k)%n]
		if !e.Playable() {
			continue
		}
		err := c.Play(e.Path)
		if err == nil {
			return nil
		}
		zlog.Warn().Err(err).Str("path", e.Path).Msg("skipping unplayable track")
		errs = errors.CombineErrors(errs, err)
	}

	c.Stop()
	return errs
}
