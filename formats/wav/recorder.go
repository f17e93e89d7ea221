// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/sirupsen/logrus"
)

// Recorder captures mixed 16-bit device frames into a WAV file. It satisfies
// the mixer's recording sink.
type Recorder struct {
	mu     sync.Mutex
	enc    *gowav.Encoder
	buf    *goaudio.IntBuffer
	paused bool
	closed bool
	frames int
}

func NewRecorder(w io.WriteSeeker, sampleRate, channels, bits int) (*Recorder, error) {
	if bits != 16 {
		return nil, fmt.Errorf("%w: %d bits", ErrOnlyPCM16bitSupported, bits)
	}
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, channels)
	}

	return &Recorder{
		enc: gowav.NewEncoder(w, sampleRate, bits, channels, formatPCM),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bits,
		},
	}, nil
}

// Recording is false while paused or after Close.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return !r.paused && !r.closed
}

func (r *Recorder) SetPaused(paused bool) {
	r.mu.Lock()
	r.paused = paused
	r.mu.Unlock()
}

// WriteAudioFrame appends little-endian 16-bit samples.
func (r *Recorder) WriteAudioFrame(p []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRecorderClosed
	}

	n := len(p) / 2
	if cap(r.buf.Data) < n {
		r.buf.Data = make([]int, n)
	}
	r.buf.Data = r.buf.Data[:n]

	for i := range n {
		r.buf.Data[i] = int(int16(binary.LittleEndian.Uint16(p[2*i:])))
	}

	if err := r.enc.Write(r.buf); err != nil {
		return fmt.Errorf("encoding wav frame: %w", err)
	}
	r.frames += n / r.buf.Format.NumChannels

	return nil
}

// Frames is the number of frames written so far.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.frames
}

// Close finalizes the WAV header. The underlying writer is not closed.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if err := r.enc.Close(); err != nil {
		return fmt.Errorf("closing wav encoder: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "Recorder.Close",
		"frames":   r.frames,
	}).Debug("Recording finished")

	return nil
}
