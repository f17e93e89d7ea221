// SPDX-License-Identifier: EPL-2.0

package mixer

// Recorder receives the audio the mixer transferred, in device format.
type Recorder interface {
	// Recording reports whether frames should be delivered right now.
	Recording() bool
	WriteAudioFrame(p []byte) error
}

// record hands the ring bytes covering [from, to) to rec in contiguous
// slices no larger than maxBytes.
func (d *Device) record(rec Recorder, from, to int64, maxBytes int) error {
	if rec == nil || !rec.Recording() {
		return nil
	}

	f := d.Format
	bps := f.BytesPerSample()
	src := d.target()

	count := int(to-from) * f.Channels
	idx := int(from*int64(f.Channels)) % f.Samples

	for count > 0 {
		n := min(count, f.Samples-idx)
		if maxBytes > 0 {
			n = min(n, max(1, maxBytes/bps))
		}

		if err := rec.WriteAudioFrame(src[idx*bps : (idx+n)*bps]); err != nil {
			return err
		}

		idx = (idx + n) % f.Samples
		count -= n
	}

	return nil
}
