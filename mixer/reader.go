// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"github.com/ik5/sndcore/codec"
	"github.com/ik5/sndcore/sound"
	"github.com/sirupsen/logrus"
)

// blockKey identifies one decoded chunk. The generation changes whenever the
// asset is unloaded or reloaded, so a recycled chunk id never hits stale data.
type blockKey struct {
	handle     sound.Handle
	generation uint32
	id         sound.ChunkID
}

// decodedBlock is the shared scratch for compressed chunks.
type decodedBlock struct {
	key   blockKey
	valid bool
	data  []int16

	wavA, wavW []float32
}

func newDecodedBlock() decodedBlock {
	return decodedBlock{
		data: make([]int16, sound.ChunkSize*4),
		wavA: make([]float32, sound.WaveletBlock),
		wavW: make([]float32, sound.WaveletBlock),
	}
}

func (b *decodedBlock) decode(key blockKey, c *sound.Chunk, method codec.Method) ([]int16, error) {
	if b.valid && b.key == key {
		return b.data, nil
	}

	b.valid = false

	var err error
	switch method {
	case codec.ADPCM:
		err = codec.DecodeADPCM(c.Bytes(), b.data[:c.Size], c.ADPCM)
	case codec.MuLaw:
		src := c.Bytes()
		for i := range c.Size {
			b.data[i] = codec.MuLawDecode(src[i])
		}
	case codec.Wavelet:
		err = codec.DecodeWavelet(c.Bytes(), b.data[:sound.WaveletBlock], b.wavA, b.wavW)
	default:
		err = codec.ErrUnknownMethod
	}

	if err != nil {
		return nil, err
	}

	b.key = key
	b.valid = true

	return b.data, nil
}

func (b *decodedBlock) invalidate() { b.valid = false }

// reader gives random access to the frames of one asset, walking its chain
// forward and restarting from the head when asked for an earlier frame.
type reader struct {
	store  Store
	block  *decodedBlock
	handle sound.Handle
	asset  *sound.Asset
	chans  int
	per    int

	id    sound.ChunkID
	chunk *sound.Chunk
	base  int
	pcm   []int16
}

func (r *reader) reset(store Store, block *decodedBlock, h sound.Handle, a *sound.Asset) {
	*r = reader{
		store:  store,
		block:  block,
		handle: h,
		asset:  a,
		chans:  a.Channels(),
		id:     sound.NoChunk,
	}

	if a.Method() == codec.PCM16 {
		r.per = sound.ChunkSize / r.chans
	} else {
		r.per = sound.SamplesPerChunk(a.Method())
	}
}

func (r *reader) seek(frame int) bool {
	if r.chunk != nil && frame >= r.base && frame < r.base+r.per {
		return true
	}

	var id sound.ChunkID
	if r.chunk == nil || frame < r.base {
		id, r.base = r.asset.Head(), 0
	} else {
		id, r.base = r.chunk.Next(), r.base+r.per
	}

	for {
		c := r.store.Chunk(id)
		if c == nil {
			r.chunk = nil
			return false
		}
		if frame < r.base+r.per {
			r.id, r.chunk = id, c
			return r.load()
		}
		id, r.base = c.Next(), r.base+r.per
	}
}

func (r *reader) load() bool {
	r.pcm = nil
	if r.asset.Method() == codec.PCM16 {
		return true
	}

	key := blockKey{handle: r.handle, generation: r.asset.Generation(), id: r.id}
	pcm, err := r.block.decode(key, r.chunk, r.asset.Method())
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "reader.load",
			"sound":    r.asset.Name(),
			"chunk":    r.id,
			"error":    err.Error(),
		}).Error("Failed to decode chunk")
		r.chunk = nil
		return false
	}
	r.pcm = pcm

	return true
}

// frame returns the left and right samples of frame i. Mono sources return
// the same value twice.
func (r *reader) frame(i int) (left, right int32, ok bool) {
	if !r.seek(i) {
		return 0, 0, false
	}

	j := i - r.base
	if r.pcm != nil {
		s := int32(r.pcm[j])
		return s, s, true
	}

	if r.chans == 2 {
		return int32(r.chunk.PCM(2 * j)), int32(r.chunk.PCM(2*j + 1)), true
	}

	s := int32(r.chunk.PCM(j))
	return s, s, true
}
