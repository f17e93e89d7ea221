// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// Info describes decoded sample data.
type Info struct {
	// Rate in Hz.
	Rate int
	// Width of one sample in bytes (1 = unsigned 8-bit, 2 = signed 16-bit little-endian).
	Width int
	// Channels count (1 = mono, 2 = stereo).
	Channels int
	// Samples is the number of sample frames (per channel).
	Samples int
	// DataOffset is where the sample bytes start inside PCM.Data.
	DataOffset int
}

// Validate checks the fields the resampler depends on.
func (i Info) Validate() error {
	if i.Rate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRate, i.Rate)
	}
	if i.Width != 1 && i.Width != 2 {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, i.Width)
	}
	if i.Channels != 1 && i.Channels != 2 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, i.Channels)
	}
	if i.Samples < 0 || i.DataOffset < 0 {
		return ErrShortData
	}
	return nil
}

// Bytes is the size of the sample data in bytes.
func (i Info) Bytes() int {
	return i.Samples * i.Channels * i.Width
}

// PCM is the raw result of decoding a sound file.
type PCM struct {
	Info
	Data []byte
}

// Body returns the sample bytes, checked against Info.
func (p *PCM) Body() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	end := p.DataOffset + p.Bytes()
	if end > len(p.Data) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrShortData, end, len(p.Data))
	}

	return p.Data[p.DataOffset:end], nil
}

// Decoder turns an encoded stream into PCM.
type Decoder interface {
	Decode(r io.Reader) (*PCM, error)
}

// Loader resolves a sound name to decoded PCM.
type Loader interface {
	Load(name string) (*PCM, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(name string) (*PCM, error)

func (f LoaderFunc) Load(name string) (*PCM, error) { return f(name) }

// Registry for decoders by format key (file extension without the dot, e.g. "wav", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[strings.ToLower(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// Formats lists the registered keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}
	slices.Sort(out)

	return out
}

// NormalizeName maps a sound name to its canonical key: lower case,
// forward slashes, no leading slash.
func NormalizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimLeft(name, "/")
	return strings.ToLower(name)
}
