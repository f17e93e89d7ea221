// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"github.com/ik5/sndcore/audio"
	"github.com/ik5/sndcore/codec"
)

// WaveletBlock is the transform size of one wavelet chunk.
const WaveletBlock = ChunkSize * 2

// chunkWriter grows a detached chain; it is attached to an asset only on success.
type chunkWriter struct {
	m    *Manager
	head ChunkID
	tail ChunkID
	cur  *Chunk
	pos  int
}

func newChunkWriter(m *Manager) *chunkWriter {
	return &chunkWriter{m: m, head: NoChunk, tail: NoChunk}
}

func (w *chunkWriter) grow() error {
	id, err := w.m.allocChunk()
	if err != nil {
		return err
	}

	if w.head == NoChunk {
		w.head = id
	} else {
		w.m.arena.Link(w.tail, id)
	}
	w.tail = id
	w.cur = w.m.arena.Chunk(id)
	w.pos = 0

	return nil
}

// PutSample implements audio.SampleSink for the PCM16 path.
func (w *chunkWriter) PutSample(s int16) error {
	if w.cur == nil || w.pos == ChunkSize {
		if err := w.grow(); err != nil {
			return err
		}
	}

	w.cur.SetPCM(w.pos, s)
	w.pos++
	w.cur.Size = w.pos

	return nil
}

func (w *chunkWriter) abort() {
	w.m.arena.ReleaseChain(w.head)
	w.head = NoChunk
}

// store resamples pcm into a new chain using method.
func (m *Manager) store(pcm *audio.PCM, method codec.Method) (ChunkID, int, error) {
	w := newChunkWriter(m)

	if method == codec.PCM16 {
		frames, err := m.resampler.Resample(pcm, w)
		if err != nil {
			w.abort()
			return NoChunk, 0, err
		}
		return w.head, frames, nil
	}

	var (
		frames int
		err    error
	)
	m.raw, frames, err = m.resampler.ResampleRaw(pcm, m.raw)
	if err != nil {
		return NoChunk, 0, err
	}

	samples := m.raw[:frames*pcm.Channels]
	per := SamplesPerChunk(method)

	var state codec.ADPCMState
	for off := 0; off < len(samples); off += per {
		n := min(per, len(samples)-off)
		block := samples[off : off+n]

		if err := w.grow(); err != nil {
			w.abort()
			return NoChunk, 0, err
		}

		c := w.cur
		c.Size = n

		switch method {
		case codec.ADPCM:
			c.ADPCM = state
			_, err = codec.EncodeADPCM(block, c.Bytes(), &state)
		case codec.MuLaw:
			codec.EncodeMuLaw(block, c.Bytes())
		case codec.Wavelet:
			err = m.encodeWavelet(block, c)
		}

		if err != nil {
			w.abort()
			return NoChunk, 0, err
		}
	}

	return w.head, frames, nil
}

func (m *Manager) encodeWavelet(block []int16, c *Chunk) error {
	if m.wavA == nil {
		m.wavA = make([]float32, WaveletBlock)
		m.wavW = make([]float32, WaveletBlock)
	}

	src := block
	if len(block) < WaveletBlock {
		padded := make([]int16, WaveletBlock)
		copy(padded, block)
		src = padded
	}

	return codec.EncodeWavelet(src, c.Bytes()[:WaveletBlock], m.wavA, m.wavW)
}
