// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/sndcore/audio"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	outChannels = 2
	outWidth    = 2
)

var ErrEmptyStream = errors.New("mp3 stream holds no samples")

// mp3Reader is the part of gomp3.Decoder the decoder needs
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.PCM, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	return decodeAll(dec)
}

func decodeAll(dec mp3Reader) (*audio.PCM, error) {
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decoding mp3: %w", err)
	}

	frameBytes := outChannels * outWidth
	frames := len(data) / frameBytes
	if frames == 0 {
		return nil, ErrEmptyStream
	}

	return &audio.PCM{
		Info: audio.Info{
			Rate:     dec.SampleRate(),
			Width:    outWidth,
			Channels: outChannels,
			Samples:  frames,
		},
		Data: data[:frames*frameBytes],
	}, nil
}
