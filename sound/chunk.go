// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"encoding/binary"

	"github.com/ik5/sndcore/codec"
)

const (
	// ChunkSize is the number of 16-bit words in a chunk.
	ChunkSize  = 1024
	ChunkBytes = ChunkSize * 2
)

// ChunkID indexes a chunk in the arena.
type ChunkID int32

const NoChunk ChunkID = -1

// Chunk is one fixed-size block of sample storage.
type Chunk struct {
	data [ChunkBytes]byte
	// Size is the number of samples held, in the asset's storage unit.
	Size int
	// ADPCM is the predictor state at the first sample of this chunk.
	ADPCM codec.ADPCMState

	next ChunkID
	used bool
}

// Next is the following chunk of the chain, or NoChunk.
func (c *Chunk) Next() ChunkID { return c.next }

// Bytes exposes the raw storage.
func (c *Chunk) Bytes() []byte { return c.data[:] }

// PCM reads the i-th 16-bit word.
func (c *Chunk) PCM(i int) int16 {
	return int16(binary.LittleEndian.Uint16(c.data[2*i:]))
}

func (c *Chunk) SetPCM(i int, v int16) {
	binary.LittleEndian.PutUint16(c.data[2*i:], uint16(v))
}

// SamplesPerChunk is the chunk capacity in samples for a storage method.
// PCM16 counts interleaved samples, so a stereo chunk holds ChunkSize/2 frames.
func SamplesPerChunk(m codec.Method) int {
	switch m {
	case codec.ADPCM:
		return ChunkSize * 4
	case codec.MuLaw, codec.Wavelet:
		return ChunkSize * 2
	default:
		return ChunkSize
	}
}

// Arena is a fixed pool of chunks with an intrusive LIFO free list.
type Arena struct {
	chunks []Chunk
	free   ChunkID
	live   int
}

func NewArena(n int) *Arena {
	a := &Arena{chunks: make([]Chunk, max(n, 0))}
	a.Reset()
	return a
}

// ChunksForMegs is the arena size for a budget in megabytes.
func ChunksForMegs(megs int) int {
	return megs * (1 << 20) / ChunkBytes
}

// Reset returns every chunk to the free list. The first allocation after a
// reset yields the highest index.
func (a *Arena) Reset() {
	a.free = NoChunk
	for i := range a.chunks {
		a.chunks[i].next = a.free
		a.chunks[i].used = false
		a.free = ChunkID(i)
	}
	a.live = 0
}

// Allocate pops the free list head. ok is false when the arena is exhausted.
func (a *Arena) Allocate() (id ChunkID, ok bool) {
	if a.free == NoChunk {
		return NoChunk, false
	}

	id = a.free
	c := &a.chunks[id]
	a.free = c.next

	c.next = NoChunk
	c.used = true
	c.Size = 0
	c.ADPCM = codec.ADPCMState{}
	a.live++

	return id, true
}

// Release pushes a chunk back on the free list. Unknown or already free ids are ignored.
func (a *Arena) Release(id ChunkID) {
	if id < 0 || int(id) >= len(a.chunks) || !a.chunks[id].used {
		return
	}

	c := &a.chunks[id]
	c.used = false
	c.next = a.free
	a.free = id
	a.live--
}

// ReleaseChain frees a whole chain and returns how many chunks were released.
func (a *Arena) ReleaseChain(head ChunkID) int {
	n := 0
	for id := head; id != NoChunk; {
		if id < 0 || int(id) >= len(a.chunks) || !a.chunks[id].used {
			break
		}
		next := a.chunks[id].next
		a.Release(id)
		id = next
		n++
	}
	return n
}

// Link appends next after id.
func (a *Arena) Link(id, next ChunkID) {
	a.chunks[id].next = next
}

// Chunk returns the chunk for id, or nil.
func (a *Arena) Chunk(id ChunkID) *Chunk {
	if id < 0 || int(id) >= len(a.chunks) {
		return nil
	}
	return &a.chunks[id]
}

func (a *Arena) Len() int  { return len(a.chunks) }
func (a *Arena) Live() int { return a.live }
func (a *Arena) Free() int { return len(a.chunks) - a.live }
