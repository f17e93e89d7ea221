// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/sndcore/audio"
)

// MaxRawSamples is the raw stream ring size in frames.
const MaxRawSamples = 16384

// RawStream buffers externally produced samples (music, voice) ahead of the
// paint position. Values are stored pre-scaled by volume with 8 fractional
// bits, ready to be added to the paint buffer.
type RawStream struct {
	buf [MaxRawSamples]SamplePair
	end int64
}

// End is the paint time one past the last buffered frame.
func (r *RawStream) End() int64 { return r.end }

func (r *RawStream) Reset() { r.end = 0 }

// Write resamples samples frames of interleaved PCM at rate into the stream,
// starting no earlier than now. It stops with ErrRawOverflow once the ring
// would overrun unplayed data; frames already written stay queued.
func (r *RawStream) Write(now int64, samples, rate, width, channels int, data []byte, volume float64, nativeRate int) (int, error) {
	switch {
	case rate <= 0 || nativeRate <= 0:
		return 0, audio.ErrInvalidRate
	case width != 1 && width != 2:
		return 0, audio.ErrInvalidWidth
	case channels != 1 && channels != 2:
		return 0, audio.ErrInvalidChannels
	case len(data) < samples*width*channels:
		return 0, fmt.Errorf("%w: need %d bytes, have %d", audio.ErrShortData, samples*width*channels, len(data))
	}

	if r.end < now {
		r.end = now
	}

	scale := float64(rate) / float64(nativeRate)
	vol := int32(256 * volume)
	frame := width * channels

	written := 0
	for i := 0; ; i++ {
		src := int(float64(i) * scale)
		if src >= samples {
			break
		}
		if r.end-now >= MaxRawSamples {
			return written, ErrRawOverflow
		}

		l, rt := rawFrame(data[src*frame:], width, channels)
		r.buf[r.end&(MaxRawSamples-1)] = SamplePair{Left: l * vol, Right: rt * vol}
		r.end++
		written++
	}

	return written, nil
}

func rawFrame(p []byte, width, channels int) (left, right int32) {
	if width == 2 {
		left = int32(int16(binary.LittleEndian.Uint16(p)))
		if channels == 2 {
			return left, int32(int16(binary.LittleEndian.Uint16(p[2:])))
		}
		return left, left
	}

	left = (int32(p[0]) - 128) << 8
	if channels == 2 {
		return left, (int32(p[1]) - 128) << 8
	}
	return left, left
}

// merge adds the buffered frames covering [from, to) into out.
func (r *RawStream) merge(out []SamplePair, from, to int64) {
	stop := min(to, r.end)
	for t := from; t < stop; t++ {
		s := r.buf[t&(MaxRawSamples-1)]
		p := &out[t-from]
		p.Left += s.Left
		p.Right += s.Right
	}
}
