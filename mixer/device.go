// SPDX-License-Identifier: EPL-2.0

package mixer

import "fmt"

// Format describes a device ring buffer.
type Format struct {
	// SampleBits is 8 (unsigned), 16 (signed) or 32 (float).
	SampleBits int
	Channels   int
	// Samples is the ring size in samples (frames * channels), a power of two.
	Samples int
}

func (f Format) Validate() error {
	switch {
	case f.SampleBits != 8 && f.SampleBits != 16 && f.SampleBits != 32:
		return fmt.Errorf("%w: %d bits", ErrInvalidFormat, f.SampleBits)
	case f.Channels != 1 && f.Channels != 2:
		return fmt.Errorf("%w: %d channels", ErrInvalidFormat, f.Channels)
	case f.Samples < 2 || f.Samples&(f.Samples-1) != 0:
		return fmt.Errorf("%w: ring of %d samples is not a power of two", ErrInvalidFormat, f.Samples)
	}
	return nil
}

// Float reports whether samples are 32-bit floats.
func (f Format) Float() bool { return f.SampleBits == 32 }

func (f Format) BytesPerSample() int { return f.SampleBits / 8 }

// Frames is the ring size in frames.
func (f Format) Frames() int { return f.Samples / f.Channels }

// Device is the output ring the mixer transfers into. The host reads Buffer.
// While muted, transfers go to a second buffer so Buffer stays silent and the
// recorder still sees mixed audio.
type Device struct {
	Format Format

	buffer  []byte
	scratch []byte
	muted   bool
}

func NewDevice(f Format) (*Device, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	n := f.Samples * f.BytesPerSample()
	return &Device{
		Format:  f,
		buffer:  make([]byte, n),
		scratch: make([]byte, n),
	}, nil
}

// Buffer is the ring the host plays from.
func (d *Device) Buffer() []byte { return d.buffer }

func (d *Device) Muted() bool { return d.muted }

// SetMuted switches between the live and the scratch buffer. Muting silences
// the live buffer; unmuting clears both so no stale audio is heard.
func (d *Device) SetMuted(muted bool) {
	if muted == d.muted {
		return
	}

	d.silence(d.buffer)
	if !muted {
		d.silence(d.scratch)
	}
	d.muted = muted
}

func (d *Device) target() []byte {
	if d.muted {
		return d.scratch
	}
	return d.buffer
}

func (d *Device) silence(p []byte) {
	fill := byte(0)
	if d.Format.SampleBits == 8 {
		fill = 0x80
	}
	for i := range p {
		p[i] = fill
	}
}
