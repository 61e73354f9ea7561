// Package player is the audio device: one Oto context for the process and a
// single track slot that can be played, paused, resumed and stopped.
package player

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate   = 44100
	channelCount = 2
	bitDepth     = 2 // 16-bit = 2 bytes
)

// ErrDevice marks a failure to open the audio device.
var ErrDevice = errors.New("audio device unavailable")

// countingReader wraps an io.Reader and tracks bytes read.
type countingReader struct {
	reader io.Reader
	pos    int64
	mu     sync.Mutex
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.reader.Read(p)
	cr.mu.Lock()
	cr.pos += int64(n)
	cr.mu.Unlock()
	return n, err
}

func (cr *countingReader) Pos() int64 {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.pos
}

// track bundles the resources of the loaded file.
type track struct {
	file        *os.File
	counter     *countingReader
	otoPlayer   *oto.Player
	bytesPerSec int64
	length      int64
}

func (t *track) close() {
	t.otoPlayer.Pause()
	_ = t.file.Close()
}

// Output plays one track at a time on the shared Oto context.
type Output struct {
	otoCtx *oto.Context
	track  *track
	paused bool
	mu     sync.Mutex
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// Open acquires the audio device. Oto allows one context per process, so
// every Output shares it.
func Open() (*Output, error) {
	ctx, err := initOto()
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "opening audio output"), ErrDevice)
	}
	return &Output{otoCtx: ctx}, nil
}

// Play stops the loaded track, decodes path and starts it.
func (o *Output) Play(path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stopLocked()
	if o.otoCtx == nil {
		return errors.Mark(errors.New("audio output not opened"), ErrDevice)
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening track")
	}
	dec, err := newDecoder(f)
	if err != nil {
		f.Close()
		return err
	}

	cr := &countingReader{reader: dec}
	t := &track{
		file:        f,
		counter:     cr,
		bytesPerSec: int64(dec.SampleRate()) * int64(dec.ChannelCount()) * bitDepth,
		length:      dec.Length(),
	}
	t.otoPlayer = o.otoCtx.NewPlayer(newFormatReader(cr, dec.SampleRate(), dec.ChannelCount()))
	t.otoPlayer.Play()

	o.track = t
	o.paused = false
	return nil
}

// Pause pauses the loaded track.
func (o *Output) Pause() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.track == nil || o.paused {
		return
	}
	o.track.otoPlayer.Pause()
	o.paused = true
}

// Resume continues a paused track.
func (o *Output) Resume() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.track == nil || !o.paused {
		return
	}
	o.track.otoPlayer.Play()
	o.paused = false
}

// Stop unloads the track and releases its file.
func (o *Output) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopLocked()
}

func (o *Output) stopLocked() {
	if o.track != nil {
		o.track.close()
		o.track = nil
	}
	o.paused = false
}

// Idle reports whether the device has nothing left to play. Oto only tells
// us whether its buffer is still draining, so end-of-track is detected by
// polling this.
func (o *Output) Idle() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.track == nil {
		return true
	}
	return !o.paused && !o.track.otoPlayer.IsPlaying()
}

// Position returns how far into the track the decoder has been read.
func (o *Output) Position() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.track == nil || o.track.bytesPerSec == 0 {
		return 0
	}
	return bytesToDuration(o.track.counter.Pos(), o.track.bytesPerSec)
}

// Duration returns the length of the loaded track.
func (o *Output) Duration() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.track == nil || o.track.bytesPerSec == 0 {
		return 0
	}
	return bytesToDuration(o.track.length, o.track.bytesPerSec)
}

// Close stops playback. The device context stays open for the process.
func (o *Output) Close() {
	o.Stop()
}

func bytesToDuration(n, perSec int64) time.Duration {
	return time.Duration(float64(n) / float64(perSec) * float64(time.Second))
}
