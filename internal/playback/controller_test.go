package playback

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/olivier-w/dirplay/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOutput records device calls. Paths in broken fail to play.
type fakeOutput struct {
	calls   []string
	loaded  string
	paused  bool
	drained bool
	broken  map[string]bool
}

func (f *fakeOutput) Play(path string) error {
	f.calls = append(f.calls, "play "+path)
	if f.broken[path] {
		return errors.Newf("cannot decode %s", path)
	}
	f.loaded, f.paused, f.drained = path, false, false
	return nil
}

func (f *fakeOutput) Pause()  { f.calls = append(f.calls, "pause"); f.paused = true }
func (f *fakeOutput) Resume() { f.calls = append(f.calls, "resume"); f.paused = false }
func (f *fakeOutput) Stop()   { f.calls = append(f.calls, "stop"); f.loaded = "" }

func (f *fakeOutput) Idle() bool {
	return f.loaded == "" || (!f.paused && f.drained)
}

func (f *fakeOutput) Position() time.Duration { return 3 * time.Second }
func (f *fakeOutput) Duration() time.Duration { return time.Minute }

func audio(name string) media.Entry  { return media.NewEntry("/m/"+name, false) }
func folder(name string) media.Entry { return media.NewEntry("/m/"+name, true) }

func assertConsistent(t *testing.T, c *Controller) {
	t.Helper()
	path, loaded := c.NowPlaying()
	assert.Equal(t, c.State() != StateIdle, loaded)
	assert.Equal(t, loaded, path != "")
}

func TestController_InitialState(t *testing.T) {
	c := NewController(&fakeOutput{})
	assert.Equal(t, StateIdle, c.State())
	assertConsistent(t, c)
	assert.Zero(t, c.Position())
	assert.Zero(t, c.Duration())
}

func TestController_PauseWhileIdleIsNoop(t *testing.T) {
	out := &fakeOutput{}
	c := NewController(out)

	c.Pause()
	c.Resume()

	assert.Equal(t, StateIdle, c.State())
	_, loaded := c.NowPlaying()
	assert.False(t, loaded)
	assert.Empty(t, out.calls)
}

func TestController_PlayFromAnyState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Controller)
	}{
		{name: "idle", setup: func(c *Controller) {}},
		{name: "playing", setup: func(c *Controller) { _ = c.Play("/m/old.mp3") }},
		{name: "paused", setup: func(c *Controller) { _ = c.Play("/m/old.mp3"); c.Pause() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &fakeOutput{}
			c := NewController(out)
			tt.setup(c)

			require.NoError(t, c.Play("/m/new.mp3"))
			assert.Equal(t, StatePlaying, c.State())
			path, _ := c.NowPlaying()
			assert.Equal(t, "/m/new.mp3", path)
			assert.Equal(t, "/m/new.mp3", out.loaded)
			assert.Equal(t, "stop", out.calls[len(out.calls)-2], "current output is stopped first")
			assertConsistent(t, c)
		})
	}
}

func TestController_PauseResumeStop(t *testing.T) {
	out := &fakeOutput{}
	c := NewController(out)
	require.NoError(t, c.Play("/m/a.mp3"))

	c.Pause()
	assert.Equal(t, StatePaused, c.State())
	c.Pause()
	assert.Equal(t, StatePaused, c.State())

	c.Resume()
	assert.Equal(t, StatePlaying, c.State())
	c.Resume()
	assert.Equal(t, StatePlaying, c.State())

	assert.Equal(t, 3*time.Second, c.Position())
	assert.Equal(t, time.Minute, c.Duration())

	c.Stop()
	assert.Equal(t, StateIdle, c.State())
	assertConsistent(t, c)
	assert.Equal(t, []string{"stop", "play /m/a.mp3", "pause", "resume", "stop"}, out.calls)
}

func TestController_PlayFailureGoesIdle(t *testing.T) {
	out := &fakeOutput{broken: map[string]bool{"/m/bad.mp3": true}}
	c := NewController(out)
	require.NoError(t, c.Play("/m/a.mp3"))

	err := c.Play("/m/bad.mp3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPlayback))
	assert.Equal(t, StateIdle, c.State())
	assert.Empty(t, out.loaded, "previous track is stopped")
	assertConsistent(t, c)
}

func TestController_TickWaitsForDrain(t *testing.T) {
	out := &fakeOutput{}
	c := NewController(out)
	entries := []media.Entry{audio("a.mp3"), audio("b.mp3")}
	require.NoError(t, c.Play("/m/a.mp3"))

	advanced, err := c.Tick(entries)
	require.NoError(t, err)
	assert.False(t, advanced)

	c.Pause()
	out.drained = true
	advanced, _ = c.Tick(entries)
	assert.False(t, advanced, "paused tracks never advance")

	c.Resume()
	advanced, err = c.Tick(entries)
	require.NoError(t, err)
	assert.True(t, advanced)
	path, _ := c.NowPlaying()
	assert.Equal(t, "/m/b.mp3", path)
}

func TestController_TickWhileIdle(t *testing.T) {
	c := NewController(&fakeOutput{})
	advanced, err := c.Tick([]media.Entry{audio("a.mp3")})
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.Equal(t, StateIdle, c.State())
}

func TestController_Advance(t *testing.T) {
	tests := []struct {
		name    string
		entries []media.Entry
		current string
		want    string // empty means idle
	}{
		{
			name:    "next audio file",
			entries: []media.Entry{audio("a.mp3"), audio("b.flac")},
			current: "/m/a.mp3",
			want:    "/m/b.flac",
		},
		{
			name:    "wraps past a directory to the front",
			entries: []media.Entry{audio("A.mp3"), folder("B"), audio("C.mp3")},
			current: "/m/C.mp3",
			want:    "/m/A.mp3",
		},
		{
			name:    "skips other files",
			entries: []media.Entry{audio("a.mp3"), media.NewEntry("/m/cover.jpg", false), media.NewEntry("/m/LOUD.MP3", false), audio("d.mp3")},
			current: "/m/a.mp3",
			want:    "/m/d.mp3",
		},
		{
			name:    "current track not in listing starts at the front",
			entries: []media.Entry{folder("x"), audio("first.mp3"), audio("second.mp3")},
			current: "/elsewhere/song.mp3",
			want:    "/m/first.mp3",
		},
		{
			name:    "single track repeats",
			entries: []media.Entry{folder("x"), audio("only.mp3")},
			current: "/m/only.mp3",
			want:    "/m/only.mp3",
		},
		{
			name:    "no audio files goes idle",
			entries: []media.Entry{folder("x"), media.NewEntry("/m/a.txt", false)},
			current: "/elsewhere/song.mp3",
			want:    "",
		},
		{
			name:    "empty listing goes idle",
			entries: []media.Entry{},
			current: "/m/a.mp3",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &fakeOutput{}
			c := NewController(out)
			require.NoError(t, c.Play(tt.current))

			require.NoError(t, c.Advance(tt.entries))
			path, loaded := c.NowPlaying()
			if tt.want == "" {
				assert.False(t, loaded)
				assert.Equal(t, StateIdle, c.State())
			} else {
				assert.Equal(t, tt.want, path)
				assert.Equal(t, StatePlaying, c.State())
			}
			assertConsistent(t, c)
		})
	}
}

func TestController_AdvanceVisitsEachEntryOnce(t *testing.T) {
	out := &fakeOutput{broken: map[string]bool{
		"/m/a.mp3": true, "/m/b.mp3": true, "/m/c.mp3": true,
	}}
	c := NewController(out)
	c.nowPlaying, c.state = "/m/b.mp3", StatePlaying

	err := c.Advance([]media.Entry{audio("a.mp3"), audio("b.mp3"), audio("c.mp3")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPlayback))
	assert.Equal(t, StateIdle, c.State())

	var plays []string
	for _, call := range out.calls {
		if len(call) > 5 && call[:5] == "play " {
			plays = append(plays, call[5:])
		}
	}
	assert.Equal(t, []string{"/m/c.mp3", "/m/a.mp3", "/m/b.mp3"}, plays)
}

func TestController_AdvanceSkipsBrokenTrack(t *testing.T) {
	out := &fakeOutput{broken: map[string]bool{"/m/b.mp3": true}}
	c := NewController(out)
	require.NoError(t, c.Play("/m/a.mp3"))

	require.NoError(t, c.Advance([]media.Entry{audio("a.mp3"), audio("b.mp3"), audio("c.mp3")}))
	path, _ := c.NowPlaying()
	assert.Equal(t, "/m/c.mp3", path)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "playing", StatePlaying.String())
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "unknown", State(9).String())
}
