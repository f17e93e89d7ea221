// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/sndcore/audio"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.PCM, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	return decodeAll(dec, int(dec.BitDepth))
}

// decodeAll drains dec into 8-bit unsigned or 16-bit little-endian PCM.
func decodeAll(dec aiffReader, bitDepth int) (*audio.PCM, error) {
	if bitDepth != 8 && bitDepth != 16 {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, bitDepth)
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}
	if format.NumChannels != 1 && format.NumChannels != 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedAiffLayout, format.NumChannels)
	}

	width := bitDepth / 8
	buf := &goaudio.IntBuffer{
		Data:           make([]int, 4096*format.NumChannels),
		Format:         format,
		SourceBitDepth: bitDepth,
	}

	var data []byte
	for {
		n, err := dec.PCMBuffer(buf)
		for _, v := range buf.Data[:n] {
			if width == 1 {
				// AIFF stores signed 8-bit samples
				data = append(data, byte(v+128))
				continue
			}
			data = binary.LittleEndian.AppendUint16(data, uint16(int16(v)))
		}

		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding aiff: %w", err)
		}
	}

	frameBytes := width * format.NumChannels
	frames := len(data) / frameBytes
	if frames == 0 {
		return nil, ErrEmptyStream
	}

	return &audio.PCM{
		Info: audio.Info{
			Rate:     format.SampleRate,
			Width:    width,
			Channels: format.NumChannels,
			Samples:  frames,
		},
		Data: data[:frames*frameBytes],
	}, nil
}
