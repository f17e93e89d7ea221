// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// mockAiffReader simulates the aiff.Decoder for testing
type mockAiffReader struct {
	sampleRate   int
	channels     int
	samples      []int
	offset       int
	returnErrors bool
	noFormat     bool
}

func (m *mockAiffReader) Format() *goaudio.Format {
	if m.noFormat {
		return nil
	}
	return &goaudio.Format{
		SampleRate:  m.sampleRate,
		NumChannels: m.channels,
	}
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n

	if m.offset >= len(m.samples) {
		return n, io.EOF
	}

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is not AIFF data")))
	if err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte{}))
	if err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestDecodeAll_16Bit(t *testing.T) {
	t.Parallel()

	samples := []int{0, 1000, -1000, 32767, -32768, 12}
	pcm, err := decodeAll(&mockAiffReader{sampleRate: 44100, channels: 2, samples: samples}, 16)
	if err != nil {
		t.Fatalf("decodeAll() error = %v", err)
	}

	if pcm.Rate != 44100 || pcm.Channels != 2 || pcm.Width != 2 || pcm.Samples != 3 {
		t.Fatalf("info = %+v, want 44100 Hz stereo 16-bit with 3 frames", pcm.Info)
	}

	for i, want := range samples {
		got := int16(binary.LittleEndian.Uint16(pcm.Data[2*i:]))
		if int(got) != want {
			t.Errorf("sample %d = %d, want %d", i, got, want)
		}
	}
}

func TestDecodeAll_8BitIsUnsigned(t *testing.T) {
	t.Parallel()

	pcm, err := decodeAll(&mockAiffReader{sampleRate: 11025, channels: 1, samples: []int{-128, -1, 0, 127}}, 8)
	if err != nil {
		t.Fatalf("decodeAll() error = %v", err)
	}

	if want := []byte{0, 127, 128, 255}; !bytes.Equal(pcm.Data, want) {
		t.Errorf("Data = %v, want %v", pcm.Data, want)
	}
	if pcm.Width != 1 {
		t.Errorf("Width = %d, want 1", pcm.Width)
	}
}

func TestDecodeAll_MultipleReads(t *testing.T) {
	t.Parallel()

	pcm, err := decodeAll(&mockAiffReader{sampleRate: 22050, channels: 1, samples: make([]int, 10000)}, 16)
	if err != nil {
		t.Fatalf("decodeAll() error = %v", err)
	}
	if pcm.Samples != 10000 {
		t.Errorf("Samples = %d, want 10000", pcm.Samples)
	}
}

func TestDecodeAll_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		dec   *mockAiffReader
		depth int
		want  error
	}{
		{"24 bit", &mockAiffReader{sampleRate: 44100, channels: 1}, 24, ErrUnsupportedBitDepth},
		{"no format", &mockAiffReader{noFormat: true}, 16, ErrUnsupportedAiffLayout},
		{"surround", &mockAiffReader{sampleRate: 44100, channels: 6}, 16, ErrUnsupportedAiffLayout},
		{"empty", &mockAiffReader{sampleRate: 44100, channels: 1}, 16, ErrEmptyStream},
		{"broken", &mockAiffReader{sampleRate: 44100, channels: 1, samples: []int{1}, returnErrors: true}, 16, io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := decodeAll(tt.dec, tt.depth)
			if !errors.Is(err, tt.want) {
				t.Errorf("decodeAll() error = %v, want %v", err, tt.want)
			}
		})
	}
}
