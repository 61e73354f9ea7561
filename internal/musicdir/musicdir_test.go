package musicdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolver(audio, home string, homeErr error) Resolver {
	return Resolver{
		AudioDir: func() string { return audio },
		HomeDir:  func() (string, error) { return home, homeErr },
	}
}

func TestResolvePrecedence(t *testing.T) {
	audio := t.TempDir()
	home := t.TempDir()

	tests := []struct {
		name      string
		arg, conf string
		audio     string
		want      string
	}{
		{name: "argument wins", arg: "/from/arg", conf: "/from/config", audio: audio, want: "/from/arg"},
		{name: "config next", conf: "/from/config", audio: audio, want: "/from/config"},
		{name: "existing audio dir", audio: audio, want: audio},
		{name: "missing audio dir falls back", audio: filepath.Join(audio, "gone"), want: filepath.Join(home, "Music")},
		{name: "unknown audio dir falls back", want: filepath.Join(home, "Music")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver(tt.audio, home, nil).Resolve(tt.arg, tt.conf)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCreatesFallback(t *testing.T) {
	home := t.TempDir()

	dir, err := resolver("", home, nil).Resolve("", "")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestResolveWithoutHome(t *testing.T) {
	_, err := resolver("", "", errors.New("$HOME is not defined")).Resolve("", "")
	assert.True(t, errors.Is(err, ErrHomeDirectory))

	_, err = resolver("", "", nil).Resolve("", "")
	assert.True(t, errors.Is(err, ErrHomeDirectory))
}
