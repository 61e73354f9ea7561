package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitEvent(t *testing.T, w *Watcher) bool {
	t.Helper()
	select {
	case _, ok := <-w.Events():
		return ok
	case <-time.After(2 * time.Second):
		return false
	}
}

func TestWatchReportsNewFile(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	dir := t.TempDir()
	require.NoError(t, w.Watch(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mp3"), nil, 0o644))

	assert.True(t, waitEvent(t, w))
}

func TestWatchCoalescesBursts(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	dir := t.TempDir()
	require.NoError(t, w.Watch(dir))
	for _, name := range []string{"a.mp3", "b.mp3", "c.mp3"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	assert.Eventually(t, func() bool { return len(w.events) == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatchSwitchesDirectory(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	first, second := t.TempDir(), t.TempDir()
	require.NoError(t, w.Watch(first))
	require.NoError(t, w.Watch(second))

	require.NoError(t, os.WriteFile(filepath.Join(second, "x.flac"), nil, 0o644))
	assert.True(t, waitEvent(t, w))
}

func TestWatchMissingDirectory(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.Watch(filepath.Join(t.TempDir(), "missing")))
}

func TestCloseClosesEvents(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("expected events channel to close")
	}
}
