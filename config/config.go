// SPDX-License-Identifier: EPL-2.0

// Package config holds the tunables of the sound system.
//
// Values come from Default, optionally overlaid by a YAML file (Load) and by
// SNDCORE_* environment variables (ApplyEnv). Validate reports the first
// out-of-range field.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ik5/sndcore/codec"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	MiB = 1 << 20

	MinArenaMegs = 1
	MaxArenaMegs = 512
)

type Config struct {
	// ArenaMegs sizes the chunk arena. Changing it re-allocates the arena.
	ArenaMegs int `yaml:"arena_megs"`
	// MemoryLimit caps the bytes of loaded sample data.
	MemoryLimit int64 `yaml:"memory_limit"`
	// CacheLimit caps the bytes tracked by the name cache.
	CacheLimit int64 `yaml:"cache_limit"`
	// BufferLimit caps the number of live chunks.
	BufferLimit int `yaml:"buffer_limit"`
	// IdleThreshold is how long a sound must go unused before compaction may free it.
	IdleThreshold time.Duration `yaml:"idle_threshold"`
	// CompactFraction of MemoryLimit that one compaction pass tries to reclaim.
	CompactFraction float64 `yaml:"compact_fraction"`
	// DispatchInterval is the minimum time between two queued decodes.
	DispatchInterval time.Duration `yaml:"dispatch_interval"`

	NativeRate       int     `yaml:"native_rate"`
	PaintBuffer      int     `yaml:"paint_buffer"`
	Volume           float64 `yaml:"volume"`
	Compression      string  `yaml:"compression"`
	EnableWavelet    bool    `yaml:"enable_wavelet"`
	RecordFrameBytes int     `yaml:"record_frame_bytes"`
	LogLevel         string  `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		ArenaMegs:        8,
		MemoryLimit:      128 * MiB,
		CacheLimit:       32 * MiB,
		BufferLimit:      8192,
		IdleThreshold:    30 * time.Second,
		CompactFraction:  0.25,
		DispatchInterval: time.Millisecond,
		NativeRate:       22050,
		PaintBuffer:      4096,
		Volume:           1,
		Compression:      "none",
		RecordFrameBytes: 16384,
		LogLevel:         "info",
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Method is the requested storage encoding.
func (c *Config) Method() codec.Method {
	m, err := codec.ParseMethod(c.Compression)
	if err != nil {
		return codec.PCM16
	}
	return m
}

// IdleSamples converts IdleThreshold to sample time at NativeRate.
func (c *Config) IdleSamples() int64 {
	return int64(c.IdleThreshold.Seconds() * float64(c.NativeRate))
}

// Level parses LogLevel.
func (c *Config) Level() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}
	return lvl, nil
}

func (c *Config) Validate() error {
	switch {
	case c.ArenaMegs < MinArenaMegs || c.ArenaMegs > MaxArenaMegs:
		return fmt.Errorf("%w: arena_megs %d not in [%d, %d]", ErrInvalid, c.ArenaMegs, MinArenaMegs, MaxArenaMegs)
	case c.MemoryLimit <= 0:
		return fmt.Errorf("%w: memory_limit must be positive", ErrInvalid)
	case c.CacheLimit <= 0:
		return fmt.Errorf("%w: cache_limit must be positive", ErrInvalid)
	case c.BufferLimit <= 0:
		return fmt.Errorf("%w: buffer_limit must be positive", ErrInvalid)
	case c.IdleThreshold < 0:
		return fmt.Errorf("%w: idle_threshold is negative", ErrInvalid)
	case c.CompactFraction <= 0 || c.CompactFraction > 1:
		return fmt.Errorf("%w: compact_fraction %v not in (0, 1]", ErrInvalid, c.CompactFraction)
	case c.DispatchInterval < 0:
		return fmt.Errorf("%w: dispatch_interval is negative", ErrInvalid)
	case c.NativeRate < 8000 || c.NativeRate > 192000:
		return fmt.Errorf("%w: native_rate %d not in [8000, 192000]", ErrInvalid, c.NativeRate)
	case c.PaintBuffer < 64 || c.PaintBuffer&(c.PaintBuffer-1) != 0:
		return fmt.Errorf("%w: paint_buffer %d must be a power of two >= 64", ErrInvalid, c.PaintBuffer)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("%w: volume %v not in [0, 1]", ErrInvalid, c.Volume)
	case c.RecordFrameBytes < 4:
		return fmt.Errorf("%w: record_frame_bytes %d too small", ErrInvalid, c.RecordFrameBytes)
	}

	if _, err := codec.ParseMethod(c.Compression); err != nil {
		return fmt.Errorf("%w: compression: %w", ErrInvalid, err)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}
