// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/sndcore/audio"
	"github.com/ik5/sndcore/utils"
	"github.com/jfreymuth/oggvorbis"
)

var (
	ErrEmptyStream         = errors.New("vorbis stream holds no samples")
	ErrUnsupportedChannels = errors.New("only mono and stereo vorbis supported")
)

// oggReader is the part of oggvorbis.Reader the decoder needs
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.PCM, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening vorbis stream: %w", err)
	}

	return decodeAll(dec)
}

// decodeAll reads float samples until EOF and converts them to 16-bit PCM.
func decodeAll(dec oggReader) (*audio.PCM, error) {
	channels := dec.Channels()
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, channels)
	}

	buf := make([]float32, 4096*channels)
	var data []byte

	for {
		n, err := dec.Read(buf)
		for _, v := range buf[:n] {
			data = binary.LittleEndian.AppendUint16(data, uint16(utils.Float32ToInt16(v)))
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding vorbis: %w", err)
		}
		if n == 0 {
			break
		}
	}

	frames := len(data) / (2 * channels)
	if frames == 0 {
		return nil, ErrEmptyStream
	}

	return &audio.PCM{
		Info: audio.Info{
			Rate:     dec.SampleRate(),
			Width:    2,
			Channels: channels,
			Samples:  frames,
		},
		Data: data[:frames*2*channels],
	}, nil
}
