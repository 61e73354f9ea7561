package player

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// ErrUnsupportedFormat marks files whose container has no decoder.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// audioDecoder produces interleaved 16-bit little-endian PCM.
type audioDecoder interface {
	io.Reader
	Length() int64 // total PCM bytes
	SampleRate() int
	ChannelCount() int
}

// newDecoder picks a decoder by file extension.
func newDecoder(f *os.File) (audioDecoder, error) {
	ext := strings.ToLower(filepath.Ext(f.Name()))
	switch ext {
	case ".mp3":
		return newMP3Decoder(f)
	case ".flac":
		return newFLACDecoder(f)
	case ".wav":
		return newWAVDecoder(f)
	case ".ogg":
		return newOGGDecoder(f)
	default:
		return nil, errors.Mark(errors.Newf("no decoder for %q", ext), ErrUnsupportedFormat)
	}
}

// pcmBuffer holds converted samples that did not fit the caller's slice.
type pcmBuffer struct {
	buf []byte
}

func (b *pcmBuffer) drain(p []byte) int {
	n := copy(p, b.buf)
	b.buf = b.buf[n:]
	return n
}

func (b *pcmBuffer) deliver(p, raw []byte) int {
	n := copy(p, raw)
	if n < len(raw) {
		b.buf = append(b.buf[:0], raw[n:]...)
	}
	return n
}

// putSample scales an integer sample of the given bit depth to 16 bits.
func putSample(dst []byte, sample, bits int) {
	switch {
	case bits > 16:
		sample >>= bits - 16
	case bits < 16:
		sample <<= 16 - bits
	}
	if sample > 32767 {
		sample = 32767
	} else if sample < -32768 {
		sample = -32768
	}
	binary.LittleEndian.PutUint16(dst, uint16(int16(sample)))
}

// --- MP3 ---

type mp3Decoder struct {
	dec *mp3.Decoder
}

func newMP3Decoder(f *os.File) (*mp3Decoder, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, errors.Wrap(err, "decoding MP3")
	}
	return &mp3Decoder{dec: dec}, nil
}

func (d *mp3Decoder) Read(p []byte) (int, error) { return d.dec.Read(p) }
func (d *mp3Decoder) Length() int64              { return d.dec.Length() }
func (d *mp3Decoder) SampleRate() int            { return d.dec.SampleRate() }
func (d *mp3Decoder) ChannelCount() int          { return 2 } // go-mp3 always emits stereo

// --- FLAC ---

type flacDecoder struct {
	stream   *flac.Stream
	pending  pcmBuffer
	channels int
	bps      int
}

func newFLACDecoder(f *os.File) (*flacDecoder, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, errors.Wrap(err, "decoding FLAC")
	}
	return &flacDecoder{
		stream:   stream,
		channels: int(stream.Info.NChannels),
		bps:      int(stream.Info.BitsPerSample),
	}, nil
}

func (d *flacDecoder) Read(p []byte) (int, error) {
	if len(d.pending.buf) > 0 {
		return d.pending.drain(p), nil
	}

	frame, err := d.stream.ParseNext()
	if err != nil {
		return 0, err
	}

	nSamples := int(frame.Subframes[0].NSamples)
	raw := make([]byte, nSamples*d.channels*bitDepth)
	for i := 0; i < nSamples; i++ {
		for ch := 0; ch < d.channels; ch++ {
			off := (i*d.channels + ch) * bitDepth
			putSample(raw[off:], int(frame.Subframes[ch].Samples[i]), d.bps)
		}
	}
	return d.pending.deliver(p, raw), nil
}

func (d *flacDecoder) Length() int64 {
	return int64(d.stream.Info.NSamples) * int64(d.channels) * bitDepth
}
func (d *flacDecoder) SampleRate() int   { return int(d.stream.Info.SampleRate) }
func (d *flacDecoder) ChannelCount() int { return d.channels }

// --- WAV ---

type wavDecoder struct {
	dec        *wav.Decoder
	samples    *audio.IntBuffer
	pending    pcmBuffer
	totalBytes int64
}

func newWAVDecoder(f *os.File) (*wavDecoder, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, errors.New("invalid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, errors.Wrap(err, "reading WAV PCM data")
	}

	frameSize := int64(dec.NumChans) * int64(dec.BitDepth) / 8
	var totalBytes int64
	if frameSize > 0 {
		totalBytes = dec.PCMLen() / frameSize * int64(dec.NumChans) * bitDepth
	}
	return &wavDecoder{
		dec: dec,
		samples: &audio.IntBuffer{
			Format:         dec.Format(),
			Data:           make([]int, 4096),
			SourceBitDepth: int(dec.BitDepth),
		},
		totalBytes: totalBytes,
	}, nil
}

func (d *wavDecoder) Read(p []byte) (int, error) {
	if len(d.pending.buf) > 0 {
		return d.pending.drain(p), nil
	}

	n, err := d.dec.PCMBuffer(d.samples)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}

	bits := int(d.dec.BitDepth)
	raw := make([]byte, n*bitDepth)
	for i, s := range d.samples.Data[:n] {
		if bits == 8 {
			// 8-bit WAV is unsigned
			s -= 128
		}
		putSample(raw[i*bitDepth:], s, bits)
	}
	return d.pending.deliver(p, raw), nil
}

func (d *wavDecoder) Length() int64     { return d.totalBytes }
func (d *wavDecoder) SampleRate() int   { return int(d.dec.SampleRate) }
func (d *wavDecoder) ChannelCount() int { return int(d.dec.NumChans) }

// --- OGG Vorbis ---

type oggDecoder struct {
	reader  *oggvorbis.Reader
	pending pcmBuffer
	floats  []float32
}

func newOGGDecoder(f *os.File) (*oggDecoder, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, "decoding OGG")
	}
	return &oggDecoder{reader: reader}, nil
}

func (d *oggDecoder) Read(p []byte) (int, error) {
	if len(d.pending.buf) > 0 {
		return d.pending.drain(p), nil
	}

	ch := d.reader.Channels()
	want := max(len(p)/bitDepth/ch, 1) * ch
	if cap(d.floats) < want {
		d.floats = make([]float32, want)
	}
	samples := d.floats[:want]
	n, err := d.reader.Read(samples)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}

	raw := make([]byte, n*bitDepth)
	for i, s := range samples[:n] {
		putSample(raw[i*bitDepth:], int(clampUnit(s)*32767), 16)
	}
	return d.pending.deliver(p, raw), nil
}

func clampUnit(s float32) float32 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}

func (d *oggDecoder) Length() int64 {
	return d.reader.Length() * int64(d.reader.Channels()) * bitDepth
}
func (d *oggDecoder) SampleRate() int   { return d.reader.SampleRate() }
func (d *oggDecoder) ChannelCount() int { return d.reader.Channels() }
