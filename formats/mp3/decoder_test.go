// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate   int
	samples      []int16
	offset       int
	returnErrors bool
}

func (m *mockMP3Reader) SampleRate() int {
	return m.sampleRate
}

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := min(len(buf)/2, len(m.samples)-m.offset)
	for i := range n {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(m.samples[m.offset+i]))
	}
	m.offset += n

	return n * 2, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is not MP3 data")))
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

func TestDecodeAll(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, 32767, -16384, -32768, 8192, -8192, 0}
	pcm, err := decodeAll(&mockMP3Reader{sampleRate: 44100, samples: samples})
	if err != nil {
		t.Fatalf("decodeAll() error = %v", err)
	}

	if pcm.Rate != 44100 || pcm.Channels != 2 || pcm.Width != 2 {
		t.Errorf("info = %+v, want 44100 Hz stereo 16-bit", pcm.Info)
	}
	if pcm.Samples != 4 {
		t.Errorf("Samples = %d, want 4", pcm.Samples)
	}

	for i, want := range samples {
		got := int16(binary.LittleEndian.Uint16(pcm.Data[2*i:]))
		if got != want {
			t.Errorf("sample %d = %d, want %d", i, got, want)
		}
	}
}

func TestDecodeAll_DropsPartialFrame(t *testing.T) {
	t.Parallel()

	pcm, err := decodeAll(&mockMP3Reader{sampleRate: 22050, samples: []int16{1, 2, 3}})
	if err != nil {
		t.Fatalf("decodeAll() error = %v", err)
	}
	if pcm.Samples != 1 || len(pcm.Data) != 4 {
		t.Errorf("Samples = %d, len(Data) = %d, want 1 and 4", pcm.Samples, len(pcm.Data))
	}
}

func TestDecodeAll_Errors(t *testing.T) {
	t.Parallel()

	if _, err := decodeAll(&mockMP3Reader{sampleRate: 44100}); !errors.Is(err, ErrEmptyStream) {
		t.Errorf("decodeAll(empty) error = %v, want ErrEmptyStream", err)
	}

	_, err := decodeAll(&mockMP3Reader{sampleRate: 44100, samples: make([]int16, 8), returnErrors: true})
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("decodeAll(broken) error = %v, want io.ErrUnexpectedEOF", err)
	}
}
