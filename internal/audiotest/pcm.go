// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic PCM fixtures and an in-memory loader.
package audiotest

import (
	"encoding/binary"
	"math"

	"github.com/ik5/sndcore/audio"
)

// PCM16 wraps interleaved samples as 16-bit little-endian PCM.
func PCM16(rate, channels int, samples []int16) *audio.PCM {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}

	return &audio.PCM{
		Info: audio.Info{
			Rate:     rate,
			Width:    2,
			Channels: channels,
			Samples:  len(samples) / channels,
		},
		Data: data,
	}
}

// PCM8 wraps unsigned 8-bit mono samples.
func PCM8(rate int, samples []byte) *audio.PCM {
	return &audio.PCM{
		Info: audio.Info{Rate: rate, Width: 1, Channels: 1, Samples: len(samples)},
		Data: append([]byte(nil), samples...),
	}
}

// Sine returns frames of a sine wave, identical on every channel.
func Sine(frames, channels int, rate int, freq float64, amp float64) []int16 {
	out := make([]int16, frames*channels)
	for i := range frames {
		v := int16(amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
		for c := range channels {
			out[i*channels+c] = v
		}
	}
	return out
}

// Constant returns n copies of v.
func Constant(n int, v int16) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Ramp returns n samples counting up from start.
func Ramp(n int, start int16) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = start + int16(i)
	}
	return out
}

// SinePCM is a mono 16-bit sine of the given length.
func SinePCM(rate, frames int, freq float64) *audio.PCM {
	return PCM16(rate, 1, Sine(frames, 1, rate, freq, 12000))
}
