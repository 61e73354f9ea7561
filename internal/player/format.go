package player

import (
	"encoding/binary"
	"io"
)

// formatReader sits between the decoder and Oto, converting 16-bit PCM at
// the decoder's rate and channel count to the device's 44.1kHz stereo.
// Resampling picks the nearest earlier source frame; channels beyond the
// first two are dropped and mono is duplicated.
type formatReader struct {
	source    io.Reader
	channels  int
	frameSize int     // source bytes per frame
	step      float64 // source frames per output frame
	pos       float64 // read position within buf, in source frames
	buf       []byte  // undelivered source bytes
	tmpBuf    []byte  // reusable read buffer (grow-only)
	err       error
}

// newFormatReader wraps source, or returns it as-is when it already matches
// the device format.
func newFormatReader(source io.Reader, rate, channels int) io.Reader {
	if rate == sampleRate && channels == channelCount {
		return source
	}
	if channels < 1 {
		channels = 1
	}
	return &formatReader{
		source:    source,
		channels:  channels,
		frameSize: channels * bitDepth,
		step:      float64(rate) / float64(sampleRate),
	}
}

func (fr *formatReader) Read(p []byte) (int, error) {
	const outFrameSize = channelCount * bitDepth
	outFrames := len(p) / outFrameSize
	if outFrames == 0 {
		return 0, nil
	}

	written := 0
	for written < outFrames {
		idx := int(fr.pos)
		if (idx+1)*fr.frameSize > len(fr.buf) {
			if fr.err != nil {
				break
			}
			fr.fill(outFrames - written)
			continue
		}

		off := idx * fr.frameSize
		left := binary.LittleEndian.Uint16(fr.buf[off:])
		right := left
		if fr.channels > 1 {
			right = binary.LittleEndian.Uint16(fr.buf[off+bitDepth:])
		}
		binary.LittleEndian.PutUint16(p[written*outFrameSize:], left)
		binary.LittleEndian.PutUint16(p[written*outFrameSize+bitDepth:], right)
		written++
		fr.pos += fr.step
	}

	// Drop source frames that are behind the read position.
	if consumed := int(fr.pos); consumed > 0 {
		consumed = min(consumed, len(fr.buf)/fr.frameSize)
		fr.buf = append(fr.buf[:0], fr.buf[consumed*fr.frameSize:]...)
		fr.pos -= float64(consumed)
	}

	if written > 0 {
		return written * outFrameSize, nil
	}
	return 0, fr.err
}

// fill reads roughly enough source frames for want output frames.
func (fr *formatReader) fill(want int) {
	srcSize := (int(float64(want)*fr.step) + 1) * fr.frameSize
	if cap(fr.tmpBuf) < srcSize {
		fr.tmpBuf = make([]byte, srcSize)
	}
	tmp := fr.tmpBuf[:srcSize]
	n, err := io.ReadAtLeast(fr.source, tmp, 1)
	fr.buf = append(fr.buf, tmp[:n]...)
	if err != nil {
		fr.err = err
	}
}
