// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"
)

// mockDecoder returns a fixed PCM and records what it was fed
type mockDecoder struct {
	name string
	seen []byte
}

func (d *mockDecoder) Decode(r io.Reader) (*PCM, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	d.seen = data

	return &PCM{
		Info: Info{Rate: 22050, Width: 2, Channels: 1, Samples: len(data) / 2},
		Data: data,
	}, nil
}

// failingDecoder always returns an error
type failingDecoder struct{}

var errDecodeFailed = errors.New("decode failed")

func (failingDecoder) Decode(io.Reader) (*PCM, error) {
	return nil, errDecodeFailed
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}

	registry.Register("WAV", decoder)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}

	if got != decoder {
		t.Error("Registry.Get() returned different decoder instance")
	}

	if _, ok := registry.Get("flac"); ok {
		t.Error("Registry.Get() returned ok=true for non-existent format")
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{})
	registry.Register("ogg", &mockDecoder{})
	registry.Register("mp3", &mockDecoder{})

	got := registry.Formats()
	want := []string{"mp3", "ogg", "wav"}

	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Formats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	done := make(chan struct{})

	for i := range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			registry.Register(string(rune('a'+i)), &mockDecoder{})
			registry.Get("a")
		}()
	}
	for range 8 {
		<-done
	}

	if n := len(registry.Formats()); n != 8 {
		t.Errorf("Formats() has %d entries, want 8", n)
	}
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"Sound\\Weapons\\Fire.WAV", "sound/weapons/fire.wav"},
		{"/sound/a.wav", "sound/a.wav"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInfo_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info Info
		want error
	}{
		{"ok", Info{Rate: 22050, Width: 2, Channels: 1}, nil},
		{"zero rate", Info{Rate: 0, Width: 2, Channels: 1}, ErrInvalidRate},
		{"24 bit", Info{Rate: 8000, Width: 3, Channels: 1}, ErrInvalidWidth},
		{"surround", Info{Rate: 8000, Width: 2, Channels: 6}, ErrInvalidChannels},
		{"negative", Info{Rate: 8000, Width: 2, Channels: 1, Samples: -1}, ErrShortData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.info.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPCM_BodyHonoursOffset(t *testing.T) {
	t.Parallel()

	p := &PCM{
		Info: Info{Rate: 8000, Width: 1, Channels: 1, Samples: 3, DataOffset: 2},
		Data: []byte{0xde, 0xad, 1, 2, 3, 4},
	}

	body, err := p.Body()
	if err != nil {
		t.Fatalf("Body() error = %v", err)
	}
	if !bytes.Equal(body, []byte{1, 2, 3}) {
		t.Errorf("Body() = %v, want [1 2 3]", body)
	}

	p.Samples = 5
	if _, err := p.Body(); !errors.Is(err, ErrShortData) {
		t.Errorf("Body() error = %v, want ErrShortData", err)
	}
}

func TestFileLoader_ByExtension(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"sound/beep.wav": {Data: []byte{1, 0, 2, 0}},
	}
	wav := &mockDecoder{name: "wav"}
	reg := NewRegistry()
	reg.Register("wav", wav)

	pcm, err := NewFileLoader(fsys, reg).Load("sound\\beep.wav")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if pcm.Samples != 2 {
		t.Errorf("Samples = %d, want 2", pcm.Samples)
	}
}

func TestFileLoader_FallbackFormat(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"music/theme.ogg": {Data: []byte{0, 0}},
	}
	ogg := &mockDecoder{name: "ogg"}
	reg := NewRegistry()
	reg.Register("wav", &mockDecoder{name: "wav"})
	reg.Register("ogg", ogg)

	if _, err := NewFileLoader(fsys, reg).Load("music/theme.wav"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ogg.seen == nil {
		t.Error("ogg decoder was not used for fallback")
	}
}

func TestFileLoader_Errors(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"bad.wav": {Data: []byte{0}},
	}
	reg := NewRegistry()
	reg.Register("wav", failingDecoder{})

	l := NewFileLoader(fsys, reg)

	if _, err := l.Load("bad.wav"); !errors.Is(err, errDecodeFailed) {
		t.Errorf("Load(bad.wav) error = %v, want decode failure", err)
	}
	if _, err := l.Load("missing.wav"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing.wav) error = %v, want fs.ErrNotExist", err)
	}
	if _, err := l.Load(""); !errors.Is(err, fs.ErrInvalid) {
		t.Errorf("Load(\"\") error = %v, want fs.ErrInvalid", err)
	}
}

func TestLoaderFunc(t *testing.T) {
	t.Parallel()

	var l Loader = LoaderFunc(func(name string) (*PCM, error) {
		return nil, errDecodeFailed
	})

	if _, err := l.Load("x"); !errors.Is(err, errDecodeFailed) {
		t.Errorf("Load() error = %v", err)
	}
}
