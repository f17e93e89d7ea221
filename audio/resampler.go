// SPDX-License-Identifier: EPL-2.0

package audio

import "encoding/binary"

// SampleSink receives resampled interleaved 16-bit samples in order.
type SampleSink interface {
	PutSample(s int16) error
}

// Resampler converts decoded PCM to the mixer's native rate with a
// fixed-point (8 fractional bits) stepping accumulator. Positions are
// truncated, not interpolated. 8-bit input is unsigned, centred at 128.
type Resampler struct {
	native int
}

func NewResampler(nativeRate int) *Resampler {
	return &Resampler{native: nativeRate}
}

func (r *Resampler) NativeRate() int { return r.native }

func (r *Resampler) stepScale(info Info) float64 {
	return float64(info.Rate) / float64(r.native)
}

// OutputCount is the number of frames produced for info.
func (r *Resampler) OutputCount(info Info) int {
	if info.Rate <= 0 || r.native <= 0 {
		return 0
	}
	return int(float64(info.Samples) / r.stepScale(info))
}

// Resample writes the converted stream to sink and returns the frame count.
// A sink error stops the walk and is returned unchanged.
func (r *Resampler) Resample(p *PCM, sink SampleSink) (int, error) {
	return r.walk(p, sink.PutSample)
}

// ResampleRaw converts into dst (grown as needed) and returns it with the frame count.
func (r *Resampler) ResampleRaw(p *PCM, dst []int16) ([]int16, int, error) {
	if r.native <= 0 {
		return dst[:0], 0, ErrInvalidRate
	}
	if err := p.Validate(); err != nil {
		return dst[:0], 0, err
	}

	need := r.OutputCount(p.Info) * p.Channels
	if cap(dst) < need {
		dst = make([]int16, 0, need)
	}
	dst = dst[:0]

	n, err := r.walk(p, func(s int16) error {
		dst = append(dst, s)
		return nil
	})

	return dst, n, err
}

func (r *Resampler) walk(p *PCM, put func(int16) error) (int, error) {
	if r.native <= 0 {
		return 0, ErrInvalidRate
	}

	body, err := p.Body()
	if err != nil {
		return 0, err
	}

	outcount := r.OutputCount(p.Info)
	if p.Samples == 0 {
		return 0, nil
	}

	ch := p.Channels
	last := p.Samples - 1

	// positions are tracked in frames, so a fractional step never splits a stereo pair
	fracstep := int(r.stepScale(p.Info) * 256)
	src, frac := 0, 0

	for i := range outcount {
		src += frac >> 8
		frac &= 0xff
		frac += fracstep

		base := min(src, last) * ch
		for j := range ch {
			k := base + j

			var s int16
			if p.Width == 2 {
				s = int16(binary.LittleEndian.Uint16(body[2*k:]))
			} else {
				s = int16((int(body[k]) - 128) << 8)
			}

			if err := put(s); err != nil {
				return i, err
			}
		}
	}

	return outcount, nil
}
