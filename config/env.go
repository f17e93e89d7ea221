// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"strconv"
	"time"
)

const EnvPrefix = "SNDCORE_"

// ApplyEnv overrides fields from SNDCORE_* variables.
// Unparsable values are ignored; numeric values are clamped to their valid range.
func (c *Config) ApplyEnv() {
	if v, ok := envInt("ARENA_MEGS"); ok {
		c.ArenaMegs = clamp(v, MinArenaMegs, MaxArenaMegs)
	}
	if v, ok := envInt("MEMORY_LIMIT"); ok && v > 0 {
		c.MemoryLimit = int64(v)
	}
	if v, ok := envInt("CACHE_LIMIT"); ok && v > 0 {
		c.CacheLimit = int64(v)
	}
	if v, ok := envInt("BUFFER_LIMIT"); ok && v > 0 {
		c.BufferLimit = v
	}
	if v, ok := envDuration("IDLE_THRESHOLD"); ok && v >= 0 {
		c.IdleThreshold = v
	}
	if v, ok := envFloat("COMPACT_FRACTION"); ok && v > 0 {
		c.CompactFraction = min(v, 1)
	}
	if v, ok := envDuration("DISPATCH_INTERVAL"); ok && v >= 0 {
		c.DispatchInterval = v
	}
	if v, ok := envInt("NATIVE_RATE"); ok {
		c.NativeRate = clamp(v, 8000, 192000)
	}
	if v, ok := envInt("PAINT_BUFFER"); ok && v >= 64 && v&(v-1) == 0 {
		c.PaintBuffer = v
	}
	if v, ok := envFloat("VOLUME"); ok {
		c.Volume = max(0, min(v, 1))
	}
	if v := os.Getenv(EnvPrefix + "COMPRESSION"); v != "" {
		c.Compression = v
	}
	if v := os.Getenv(EnvPrefix + "ENABLE_WAVELET"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.EnableWavelet = b
		}
	}
	if v, ok := envInt("RECORD_FRAME_BYTES"); ok && v >= 4 {
		c.RecordFrameBytes = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func envInt(key string) (int, bool) {
	s := os.Getenv(EnvPrefix + key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	return v, err == nil
}

func envFloat(key string) (float64, bool) {
	s := os.Getenv(EnvPrefix + key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func envDuration(key string) (time.Duration, bool) {
	s := os.Getenv(EnvPrefix + key)
	if s == "" {
		return 0, false
	}
	v, err := time.ParseDuration(s)
	return v, err == nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
