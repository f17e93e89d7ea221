// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/sndcore/audio"
)

const formatPCM = 1

type Decoder struct{}

// Decode reads a whole PCM WAV stream. 8-bit files stay unsigned 8-bit,
// 16-bit files are returned as signed little-endian.
func (Decoder) Decode(r io.Reader) (*audio.PCM, error) {
	rs, err := seekable(r)
	if err != nil {
		return nil, err
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	dec.ReadInfo()
	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedWavLayout, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading wav samples: %w", err)
	}

	return toPCM(buf, int(dec.SampleRate), int(dec.NumChans), int(dec.BitDepth))
}

func toPCM(buf *goaudio.IntBuffer, rate, channels, bits int) (*audio.PCM, error) {
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, channels)
	}

	width := bits / 8
	if bits != 8 && bits != 16 {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, bits)
	}

	frames := len(buf.Data) / channels
	data := make([]byte, frames*channels*width)

	for i, v := range buf.Data[:frames*channels] {
		if width == 1 {
			data[i] = byte(v)
			continue
		}
		binary.LittleEndian.PutUint16(data[2*i:], uint16(int16(v)))
	}

	return &audio.PCM{
		Info: audio.Info{
			Rate:     rate,
			Width:    width,
			Channels: channels,
			Samples:  frames,
		},
		Data: data,
	}, nil
}

// seekable returns r as an io.ReadSeeker, buffering it in memory when needed.
func seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	return bytes.NewReader(data), nil
}
