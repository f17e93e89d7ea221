// SPDX-License-Identifier: EPL-2.0

package sndcore

import (
	"bytes"
	"encoding/binary"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/ik5/sndcore/audio"
	"github.com/ik5/sndcore/config"
	"github.com/ik5/sndcore/formats/wav"
	"github.com/ik5/sndcore/internal/audiotest"
	"github.com/ik5/sndcore/mixer"
	"github.com/ik5/sndcore/sound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.ArenaMegs = 1
	cfg.DispatchInterval = 0
	cfg.LogLevel = "warning"
	return cfg
}

func wavFile(t *testing.T, rate, channels int, samples []int16) *fstest.MapFile {
	t.Helper()

	buf := new(bytes.Buffer)
	require.NoError(t, wav.WriteWAV16(buf, rate, channels, samples))
	return &fstest.MapFile{Data: buf.Bytes()}
}

func newSystem(t *testing.T, cfg *config.Config, loader audio.Loader) *System {
	t.Helper()

	sys, err := New(cfg, loader)
	require.NoError(t, err)
	t.Cleanup(sys.Shutdown)

	return sys
}

func newDevice(t *testing.T, frames int) *mixer.Device {
	t.Helper()

	dev, err := mixer.NewDevice(mixer.Format{SampleBits: 16, Channels: 2, Samples: frames * 2})
	require.NoError(t, err)
	return dev
}

func TestSystemEndToEnd(t *testing.T) {
	t.Parallel()

	const frames = 22050

	src := audiotest.Sine(frames, 1, 22050, 440, 12000)
	fsys := fstest.MapFS{"sound/test.wav": wavFile(t, 22050, 1, src)}
	sys := newSystem(t, testConfig(), audio.NewFileLoader(fsys, DefaultRegistry()))

	h, err := sys.Register("sound/test.wav", false)
	require.NoError(t, err)
	require.True(t, sys.QueueLoad(h, "sound/test.wav"))
	assert.Equal(t, sound.Loading, sys.Asset(h).State())
	assert.Equal(t, 1, sys.Stats().Queued)

	req, err := sys.Dispatch()
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.True(t, req.Loaded)
	assert.Equal(t, sound.Loaded, sys.Asset(h).State())
	assert.Equal(t, frames, sys.Asset(h).Length())

	found, ok := sys.Find("Sound\\Test.WAV")
	require.True(t, ok)
	assert.Equal(t, h, found)

	_, err = sys.StartSound(mixer.Channel{Handle: h, LeftVol: mixer.UnityVolume, RightVol: mixer.UnityVolume})
	require.NoError(t, err)

	dev := newDevice(t, 32768)
	require.NoError(t, sys.Update(frames, dev))
	assert.Equal(t, int64(frames), sys.PaintedTime())

	// one-pole smoothing: y[i] = (x[i] + y[i-1]) >> 1
	prev := int32(0)
	buf := dev.Buffer()
	for i, x := range src {
		prev = (int32(x) + prev) >> 1
		l := int16(binary.LittleEndian.Uint16(buf[i*4:]))
		r := int16(binary.LittleEndian.Uint16(buf[i*4+2:]))
		require.Equal(t, int16(prev), l, "left %d", i)
		require.Equal(t, int16(prev), r, "right %d", i)
	}

	st := sys.Stats()
	assert.Equal(t, int64(frames*2), st.BytesUsed)
	assert.Equal(t, 1, st.Loaded)
	assert.Zero(t, st.Queued)
}

func TestSystemStartSoundLoadsOnDemand(t *testing.T) {
	t.Parallel()

	loader := audiotest.NewMapLoader().
		Add("sound/a.wav", audiotest.SinePCM(11025, 500, 200)).
		Fail("sound/bad.wav", sound.ErrDecode)
	sys := newSystem(t, testConfig(), loader)

	h, err := sys.Register("sound/a.wav", false)
	require.NoError(t, err)

	_, err = sys.StartSound(mixer.Channel{Handle: h, LeftVol: 128, RightVol: 128, StartSample: -1})
	require.NoError(t, err)
	assert.Equal(t, sound.Loaded, sys.Asset(h).State())
	assert.Equal(t, 1000, sys.Asset(h).Length())
	assert.Equal(t, 1, loader.Calls("sound/a.wav"))

	bad, err := sys.Register("sound/bad.wav", false)
	require.NoError(t, err)

	_, err = sys.StartSound(mixer.Channel{Handle: bad, LeftVol: 128})
	assert.ErrorIs(t, err, sound.ErrDecode)
	assert.ErrorIs(t, sys.AddLoop(mixer.Channel{Handle: bad, LeftVol: 128}), sound.ErrDecode)

	_, err = sys.StartSound(mixer.Channel{Handle: 99})
	assert.ErrorIs(t, err, sound.ErrInvalidHandle)
}

func TestSystemReconfigure(t *testing.T) {
	t.Parallel()

	loader := audiotest.NewMapLoader().Add("a.wav", audiotest.SinePCM(22050, 2000, 300))
	cfg := testConfig()
	sys := newSystem(t, cfg, loader)

	h, err := sys.Register("a.wav", false)
	require.NoError(t, err)
	i, err := sys.StartSound(mixer.Channel{Handle: h, LeftVol: 256, RightVol: 256})
	require.NoError(t, err)

	next := cfg.Clone()
	next.NativeRate = 44100
	next.Volume = 0.5
	require.NoError(t, sys.Reconfigure(next))

	assert.Equal(t, 44100, sys.Config().NativeRate)
	assert.False(t, sys.Asset(h).Playable())

	dev := newDevice(t, 1024)
	require.NoError(t, sys.Update(512, dev))
	assert.Equal(t, make([]byte, len(dev.Buffer())), dev.Buffer())
	assert.ErrorIs(t, sys.SetDoppler(i, 2), mixer.ErrInvalidChannel)

	bad := next.Clone()
	bad.PaintBuffer = 3
	assert.ErrorIs(t, sys.Reconfigure(bad), config.ErrInvalid)
}

func TestSystemRawAndLoops(t *testing.T) {
	t.Parallel()

	loader := audiotest.NewMapLoader().Add("hum.wav", audiotest.PCM16(22050, 1, audiotest.Constant(100, 1000)))
	sys := newSystem(t, testConfig(), loader)

	h, err := sys.Register("hum.wav", false)
	require.NoError(t, err)
	require.NoError(t, sys.AddLoop(mixer.Channel{Handle: h, LeftVol: 256, RightVol: 256}))

	music := audiotest.PCM16(22050, 2, audiotest.Constant(512, 300))
	n, err := sys.RawSamples(256, 22050, 2, 2, music.Data, 1)
	require.NoError(t, err)
	assert.Equal(t, 256, n)

	dev := newDevice(t, 1024)
	require.NoError(t, sys.Update(256, dev))

	// the loop has settled on 999 by frame 255
	l := int16(binary.LittleEndian.Uint16(dev.Buffer()[255*4:]))
	assert.Equal(t, int16(999+300), l)

	sys.ClearLoops()
	sys.StopAll()
	require.NoError(t, sys.Update(512, dev))
	l = int16(binary.LittleEndian.Uint16(dev.Buffer()[300*4:]))
	assert.Zero(t, l)
}

func TestSystemConcurrentUse(t *testing.T) {
	t.Parallel()

	loader := audiotest.NewMapLoader()
	for _, name := range []string{"a.wav", "b.wav", "c.wav", "d.wav"} {
		loader.Add(name, audiotest.SinePCM(22050, 3000, 220))
	}
	sys := newSystem(t, testConfig(), loader)
	dev := newDevice(t, 4096)

	var wg sync.WaitGroup

	wg.Go(func() {
		for k := range 50 {
			_ = sys.Update(int64(k+1)*256, dev)
		}
	})

	for _, name := range []string{"a.wav", "b.wav", "c.wav", "d.wav"} {
		wg.Go(func() {
			for range 10 {
				h, err := sys.Register(name, false)
				if err != nil {
					continue
				}
				_, _ = sys.StartSound(mixer.Channel{Handle: h, LeftVol: 64, RightVol: 64, StartSample: -1})
				_ = sys.Stats()
			}
		})
	}

	wg.Wait()

	assert.Equal(t, 4, sys.Stats().Assets)
	assert.Equal(t, int64(50*256), sys.PaintedTime())
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	sys, err := New(nil, audiotest.NewMapLoader())
	require.NoError(t, err)
	defer sys.Shutdown()

	assert.Equal(t, config.Default().NativeRate, sys.Config().NativeRate)

	bad := config.Default()
	bad.NativeRate = 0
	_, err = New(bad, audiotest.NewMapLoader())
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"aif", "aiff", "mp3", "ogg", "wav"}, DefaultRegistry().Formats())
}
