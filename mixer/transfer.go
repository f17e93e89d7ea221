// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"encoding/binary"
	"math"

	"github.com/ik5/sndcore/utils"
)

const (
	floatMin   = -32768 * 256
	floatMax   = 0x7fff00
	floatScale = 1.0 / (32768*256 - 128)
)

// transfer converts pairs, covering [from, to), into the device ring.
func (d *Device) transfer(pairs []SamplePair, from, to int64) {
	if d.Format.SampleBits == 16 && d.Format.Channels == 2 {
		d.transferStereo16(pairs, from, to)
		return
	}
	d.transferGeneral(pairs, from, to)
}

// transferStereo16 copies linear runs up to the ring end.
func (d *Device) transferStereo16(pairs []SamplePair, from, to int64) {
	out := d.target()
	frames := d.Format.Samples / 2

	for t := from; t < to; {
		lpos := int(t & int64(frames-1))
		n := min(int(to-t), frames-lpos)

		src := pairs[t-from : t-from+int64(n)]
		dst := out[lpos*4:]
		for i, p := range src {
			binary.LittleEndian.PutUint16(dst[i*4:], uint16(utils.SaturateInt16(p.Left>>8)))
			binary.LittleEndian.PutUint16(dst[i*4+2:], uint16(utils.SaturateInt16(p.Right>>8)))
		}

		t += int64(n)
	}
}

// transferGeneral walks the paint buffer as a flat left/right sequence. Mono
// devices step over the right channel.
func (d *Device) transferGeneral(pairs []SamplePair, from, to int64) {
	out := d.target()
	f := d.Format
	mask := f.Samples - 1
	step := 3 - f.Channels
	count := int(to-from) * f.Channels
	idx := int(from*int64(f.Channels)) & mask

	for k := 0; count > 0; k += step {
		val := pairs[k>>1].Left
		if k&1 == 1 {
			val = pairs[k>>1].Right
		}

		switch f.SampleBits {
		case 32:
			val = utils.SaturateRange(val, floatMin, floatMax)
			v := float32(float64(val+128) * floatScale)
			binary.LittleEndian.PutUint32(out[idx*4:], math.Float32bits(v))
		case 16:
			binary.LittleEndian.PutUint16(out[idx*2:], uint16(utils.SaturateInt16(val>>8)))
		default:
			s := int32(utils.SaturateInt16(val >> 8))
			out[idx] = byte((s >> 8) + 128)
		}

		idx = (idx + 1) & mask
		count--
	}
}
