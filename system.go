// SPDX-License-Identifier: EPL-2.0

package sndcore

import (
	"fmt"
	"sync"

	"github.com/ik5/sndcore/audio"
	"github.com/ik5/sndcore/config"
	"github.com/ik5/sndcore/mixer"
	"github.com/ik5/sndcore/sound"
	"github.com/sirupsen/logrus"
)

// System is the sound core: sample memory plus mixer behind one lock.
type System struct {
	mu    sync.Mutex
	cfg   *config.Config
	store *sound.Manager
	mix   *mixer.Mixer
}

// New validates cfg (nil means config.Default), allocates the arena and
// builds the mixer.
func New(cfg *config.Config, loader audio.Loader) (*System, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if lvl, err := cfg.Level(); err == nil {
		logrus.SetLevel(lvl)
	}

	store, err := sound.NewManager(cfg, loader)
	if err != nil {
		return nil, fmt.Errorf("creating sound manager: %w", err)
	}

	mix, err := mixer.New(store, cfg)
	if err != nil {
		store.Shutdown()
		return nil, fmt.Errorf("creating mixer: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "New",
		"rate":     cfg.NativeRate,
		"megs":     cfg.ArenaMegs,
	}).Info("Sound system started")

	return &System{cfg: cfg.Clone(), store: store, mix: mix}, nil
}

// Shutdown stops every channel and frees all sample memory.
func (s *System) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mix.StopAll()
	s.store.Shutdown()
}

// Reconfigure applies a new configuration. A changed arena size or native
// rate unloads every sound; channels playing them fall silent.
func (s *System) Reconfigure(cfg *config.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Setup(cfg); err != nil {
		return err
	}
	if err := s.mix.Configure(cfg); err != nil {
		return err
	}
	s.cfg = cfg.Clone()

	return nil
}

func (s *System) Config() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cfg.Clone()
}

func (s *System) Register(name string, compressed bool) (sound.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Register(name, compressed)
}

func (s *System) Find(name string) (sound.Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Find(name)
}

// Asset returns the asset for h, or nil. The value must not be kept across
// calls into the System.
func (s *System) Asset(h sound.Handle) *sound.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Asset(h)
}

// Load decodes h now.
func (s *System) Load(h sound.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Load(h)
}

// QueueLoad schedules h for a later Dispatch.
func (s *System) QueueLoad(h sound.Handle, filename string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Queue(h, filename)
}

// Dispatch runs at most one queued decode.
func (s *System) Dispatch() (*sound.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Dispatch()
}

// StartSound plays ch, loading its sound first when needed.
func (s *System) StartSound(ch mixer.Channel) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ch.Handle); err != nil {
		return -1, err
	}

	return s.mix.StartSound(ch)
}

func (s *System) AddLoop(ch mixer.Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ch.Handle); err != nil {
		return err
	}

	return s.mix.AddLoop(ch)
}

func (s *System) ClearLoops() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mix.ClearLoops()
}

func (s *System) StopChannel(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mix.Stop(i)
}

func (s *System) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mix.StopAll()
}

func (s *System) SetDoppler(i int, scale float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mix.SetDoppler(i, scale)
}

func (s *System) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mix.SetVolume(v)
}

func (s *System) SetRecorder(r mixer.Recorder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mix.SetRecorder(r)
}

// RawSamples queues streamed PCM (music, voice) at the paint position.
func (s *System) RawSamples(samples, rate, width, channels int, data []byte, volume float64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mix.RawSamples(samples, rate, width, channels, data, volume)
}

// Update mixes up to endTime into dev. Sounds touched by the mixer are
// stamped with the paint time, which drives eviction order.
func (s *System) Update(endTime int64, dev *mixer.Device) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.SetTime(s.mix.PaintedTime())
	return s.mix.Paint(endTime, dev)
}

func (s *System) PaintedTime() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mix.PaintedTime()
}

func (s *System) Stats() sound.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Stats()
}

func (s *System) ensureLoaded(h sound.Handle) error {
	a := s.store.Asset(h)
	if a == nil {
		return fmt.Errorf("%w: %d", sound.ErrInvalidHandle, h)
	}

	switch a.State() {
	case sound.Loaded, sound.Loading:
		return nil
	case sound.Failed:
		return fmt.Errorf("%w: %s", sound.ErrDecode, a.Name())
	}

	return s.store.Load(h)
}
