// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"math"

	"github.com/ik5/sndcore/config"
	"github.com/ik5/sndcore/sound"
	"github.com/sirupsen/logrus"
)

const (
	MaxChannels = 96
	MaxLoops    = 1024
)

// Store is the sample memory the mixer reads from. *sound.Manager
// implements it.
type Store interface {
	Asset(h sound.Handle) *sound.Asset
	Chunk(id sound.ChunkID) *sound.Chunk
	Acquire(h sound.Handle) bool
	Release(h sound.Handle)
}

type Mixer struct {
	store Store

	paint    *PaintBuffer
	channels [MaxChannels]Channel
	loops    []Channel
	raw      RawStream

	painted    int64
	master     int
	nativeRate int
	frameBytes int

	recorder Recorder

	reader reader
	block  decodedBlock
}

func New(store Store, cfg *config.Config) (*Mixer, error) {
	if store == nil {
		return nil, fmt.Errorf("mixer: %w", sound.ErrNotInitialized)
	}

	m := &Mixer{
		store: store,
		block: newDecodedBlock(),
	}
	if err := m.Configure(cfg); err != nil {
		return nil, err
	}

	return m, nil
}

// Configure applies the mixing related settings of cfg.
func (m *Mixer) Configure(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if m.paint == nil || m.paint.Len() != cfg.PaintBuffer {
		m.paint = NewPaintBuffer(cfg.PaintBuffer)
	}
	if m.nativeRate != cfg.NativeRate {
		m.raw.Reset()
	}

	m.nativeRate = cfg.NativeRate
	m.frameBytes = cfg.RecordFrameBytes
	m.block.invalidate()
	m.SetVolume(cfg.Volume)

	return nil
}

// SetVolume sets the master volume, 0..1.
func (m *Mixer) SetVolume(v float64) {
	v = max(0, min(v, 1))
	m.master = int(math.Round(v * UnityVolume))
}

func (m *Mixer) Volume() float64 { return float64(m.master) / UnityVolume }

func (m *Mixer) SetRecorder(r Recorder) { m.recorder = r }

func (m *Mixer) PaintedTime() int64 { return m.painted }

// SetPaintedTime moves the paint position, e.g. after the device restarted.
func (m *Mixer) SetPaintedTime(t int64) { m.painted = t }

// StartSound plays ch in a free channel slot and returns the slot index.
func (m *Mixer) StartSound(ch Channel) (int, error) {
	if m.store.Asset(ch.Handle) == nil {
		return -1, fmt.Errorf("%w: %d", ErrInvalidHandle, ch.Handle)
	}

	slot := -1
	for i := range m.channels {
		if !m.channels[i].active {
			slot = i
			break
		}
	}
	if slot < 0 {
		return -1, ErrNoFreeChannel
	}

	if !m.store.Acquire(ch.Handle) {
		return -1, fmt.Errorf("%w: %d", ErrInvalidHandle, ch.Handle)
	}

	ch.normalize()
	if ch.StartSample < 0 {
		ch.StartSample = m.painted
	}
	ch.active = true
	m.channels[slot] = ch

	logrus.WithFields(logrus.Fields{
		"function": "Mixer.StartSound",
		"channel":  slot,
		"handle":   ch.Handle,
		"start":    ch.StartSample,
	}).Debug("Channel started")

	return slot, nil
}

// Channel returns the slot i, or nil.
func (m *Mixer) Channel(i int) *Channel {
	if i < 0 || i >= MaxChannels {
		return nil
	}
	return &m.channels[i]
}

// SetDoppler changes the playback scale of an active channel.
func (m *Mixer) SetDoppler(i int, scale float32) error {
	ch := m.Channel(i)
	if ch == nil || !ch.active {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, i)
	}

	ch.Doppler = scale > 0 && scale != 1
	if scale > 0 {
		ch.DopplerScale = scale
	}

	return nil
}

func (m *Mixer) Stop(i int) error {
	ch := m.Channel(i)
	if ch == nil {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, i)
	}
	m.stop(ch)

	return nil
}

func (m *Mixer) stop(ch *Channel) {
	if !ch.active {
		return
	}
	m.store.Release(ch.Handle)
	*ch = Channel{}
}

// StopAll stops every channel and loop and drops buffered raw samples.
func (m *Mixer) StopAll() {
	for i := range m.channels {
		m.stop(&m.channels[i])
	}
	m.ClearLoops()
	m.raw.end = m.painted
}

// Active is the number of playing one-shot channels.
func (m *Mixer) Active() int {
	n := 0
	for i := range m.channels {
		if m.channels[i].active {
			n++
		}
	}
	return n
}

// AddLoop adds a looping sound for the following paints. Loops are usually
// rebuilt every frame with ClearLoops and AddLoop.
func (m *Mixer) AddLoop(ch Channel) error {
	if len(m.loops) >= MaxLoops {
		return ErrTooManyLoops
	}
	if !m.store.Acquire(ch.Handle) {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, ch.Handle)
	}

	ch.normalize()
	ch.active = true
	m.loops = append(m.loops, ch)

	return nil
}

func (m *Mixer) ClearLoops() {
	for i := range m.loops {
		m.store.Release(m.loops[i].Handle)
	}
	m.loops = m.loops[:0]
}

func (m *Mixer) Loops() int { return len(m.loops) }

// RawSamples queues streamed PCM at the current paint position.
func (m *Mixer) RawSamples(samples, rate, width, channels int, data []byte, volume float64) (int, error) {
	return m.raw.Write(m.painted, samples, rate, width, channels, data, volume, m.nativeRate)
}

// Paint mixes up to endTime into dev. Painting never runs further ahead than
// the device ring holds.
func (m *Mixer) Paint(endTime int64, dev *Device) error {
	if dev == nil {
		return ErrNoDevice
	}

	endTime = min(endTime, m.painted+int64(dev.Format.Frames()))

	for m.painted < endTime {
		end := min(endTime, m.painted+int64(m.paint.Len()))
		n := int(end - m.painted)

		m.paint.Clear(n)
		m.raw.merge(m.paint.pairs[:n], m.painted, end)

		for i := range m.channels {
			if ch := &m.channels[i]; ch.active {
				m.paintOneShot(ch, end)
			}
		}
		for i := range m.loops {
			m.paintLoop(&m.loops[i], end)
		}

		dev.transfer(m.paint.pairs[:n], m.painted, end)
		err := dev.record(m.recorder, m.painted, end, m.frameBytes)

		m.painted = end
		m.reap()

		if err != nil {
			return fmt.Errorf("recording: %w", err)
		}
	}

	return nil
}

// reap frees one-shot channels that finished or whose sound went away.
func (m *Mixer) reap() {
	for i := range m.channels {
		ch := &m.channels[i]
		if !ch.active {
			continue
		}

		a := m.store.Asset(ch.Handle)
		switch {
		case a == nil:
		case a.State() == sound.Loading:
			continue
		case a.Playable() && ch.StartSample+int64(a.Length()) > m.painted:
			continue
		}

		logrus.WithFields(logrus.Fields{
			"function": "Mixer.reap",
			"channel":  i,
			"handle":   ch.Handle,
		}).Debug("Channel finished")

		m.stop(ch)
	}
}
