// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"github.com/ik5/sndcore/codec"
	"github.com/ik5/sndcore/sound"
	"github.com/ik5/sndcore/utils"
)

// playable returns the asset behind ch if it may be read right now.
func (m *Mixer) playable(ch *Channel) *sound.Asset {
	a := m.store.Asset(ch.Handle)
	if a == nil || !a.Playable() {
		return nil
	}
	return a
}

// paintOneShot mixes ch over [painted, end).
func (m *Mixer) paintOneShot(ch *Channel, end int64) {
	a := m.playable(ch)
	if a == nil || ch.silent() {
		return
	}

	ltime := max(m.painted, ch.StartSample)
	if ltime >= end {
		return
	}

	length := int64(a.Length())
	offset := ltime - ch.StartSample
	if offset >= length {
		return
	}

	count := min(end-ltime, length-offset)
	m.paintRun(ch, a, int(ltime-m.painted), int(offset), int(count), false)
}

// paintLoop mixes ch over [painted, end), wrapping as often as needed.
func (m *Mixer) paintLoop(ch *Channel, end int64) {
	a := m.playable(ch)
	if a == nil || ch.silent() {
		return
	}

	length := int64(a.Length())
	for ltime := m.painted; ltime < end; {
		offset := ltime % length
		count := min(end-ltime, length-offset)

		m.paintRun(ch, a, int(ltime-m.painted), int(offset), int(count), true)
		ltime += count
	}
}

// paintRun adds count frames of ch, read from source frame offset, into the
// paint buffer starting at index at.
func (m *Mixer) paintRun(ch *Channel, a *sound.Asset, at, offset, count int, loop bool) {
	out := m.paint.pairs[at : at+count]
	lv := int32(ch.LeftVol * m.master)
	rv := int32(ch.RightVol * m.master)

	r := &m.reader
	r.reset(m.store, &m.block, ch.Handle, a)

	if ch.shifted() {
		paintDoppler(r, out, offset, a.Length(), ch, loop, lv, rv)
		return
	}

	// PCM16 goes through a one-pole low-pass; decoded codecs are mixed as is.
	smooth := a.Method() == codec.PCM16
	pl, pr := ch.prevL, ch.prevR

	for i := range out {
		l, rt, ok := r.frame(offset + i)
		if !ok {
			break
		}

		if smooth {
			l = (l + pl) >> 1
			rt = (rt + pr) >> 1
			pl, pr = l, rt
		}

		out[i].Left += (l * lv) >> 8
		out[i].Right += (rt * rv) >> 8
	}

	ch.prevL, ch.prevR = pl, pr
}

// paintDoppler resamples on the fly. The source position of the first frame
// is offset scaled by the doppler factor the sound has been playing at.
func paintDoppler(r *reader, out []SamplePair, offset, length int, ch *Channel, loop bool, lv, rv int32) {
	pos := float64(offset) * float64(ch.OldDopplerScale)
	step := float64(ch.DopplerScale)
	last := length - 1

	for i := range out {
		p := int(pos)
		frac := float32(pos - float64(p))
		pos += step

		if loop {
			p %= length
		}
		if p >= last {
			p, frac = last, 0
		}

		l0, r0, ok := r.frame(p)
		if !ok {
			break
		}

		l1, r1 := l0, r0
		if frac > 0 {
			if l1, r1, ok = r.frame(p + 1); !ok {
				break
			}
		}

		l := int32(utils.Lerp16(int16(l0), int16(l1), frac))
		rt := int32(utils.Lerp16(int16(r0), int16(r1), frac))

		out[i].Left += (l * lv) >> 8
		out[i].Right += (rt * rv) >> 8
	}

	ch.OldDopplerScale = ch.DopplerScale
}
