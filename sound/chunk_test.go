// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"testing"

	"github.com/ik5/sndcore/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaFirstAllocationIsLastChunk(t *testing.T) {
	t.Parallel()

	a := NewArena(8)
	id, ok := a.Allocate()
	require.True(t, ok)
	assert.Equal(t, ChunkID(7), id)
	assert.Equal(t, 1, a.Live())
	assert.Equal(t, 7, a.Free())
}

func TestArenaLIFORoundTrip(t *testing.T) {
	t.Parallel()

	a := NewArena(16)

	var ids []ChunkID
	for {
		id, ok := a.Allocate()
		if !ok {
			break
		}
		ids = append(ids, id)
	}
	require.Len(t, ids, 16)
	assert.Zero(t, a.Free())

	// release three, they come back in reverse order
	released := ids[3:6]
	for _, id := range released {
		a.Release(id)
	}
	assert.Equal(t, 3, a.Free())

	for i := len(released) - 1; i >= 0; i-- {
		id, ok := a.Allocate()
		require.True(t, ok)
		assert.Equal(t, released[i], id)
	}

	_, ok := a.Allocate()
	assert.False(t, ok)
}

func TestArenaReleaseChain(t *testing.T) {
	t.Parallel()

	a := NewArena(10)

	head, _ := a.Allocate()
	prev := head
	for range 4 {
		id, _ := a.Allocate()
		a.Link(prev, id)
		prev = id
	}
	require.Equal(t, 5, a.Live())

	assert.Equal(t, 5, a.ReleaseChain(head))
	assert.Zero(t, a.Live())

	// releasing again is a no-op
	assert.Zero(t, a.ReleaseChain(head))
	a.Release(head)
	a.Release(ChunkID(99))
	assert.Equal(t, 10, a.Free())
}

func TestArenaResetAndReuse(t *testing.T) {
	t.Parallel()

	a := NewArena(4)
	id, _ := a.Allocate()
	c := a.Chunk(id)
	c.Size = 12
	c.ADPCM = codec.ADPCMState{Sample: 5, Index: 3}
	c.SetPCM(0, -1234)
	assert.Equal(t, int16(-1234), c.PCM(0))

	a.Reset()
	assert.Zero(t, a.Live())

	id, _ = a.Allocate()
	c = a.Chunk(id)
	assert.Zero(t, c.Size)
	assert.Equal(t, codec.ADPCMState{}, c.ADPCM)
	assert.Equal(t, NoChunk, c.Next())

	assert.Nil(t, a.Chunk(-1))
	assert.Nil(t, a.Chunk(4))
}

func TestChunkGeometry(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 512, ChunksForMegs(1))
	assert.Equal(t, ChunkSize, SamplesPerChunk(codec.PCM16))
	assert.Equal(t, ChunkSize*4, SamplesPerChunk(codec.ADPCM))
	assert.Equal(t, ChunkSize*2, SamplesPerChunk(codec.MuLaw))
	assert.Equal(t, ChunkSize*2, SamplesPerChunk(codec.Wavelet))
	assert.Equal(t, ChunkBytes, len((&Chunk{}).Bytes()))
}

func BenchmarkArenaAllocateRelease(b *testing.B) {
	a := NewArena(1024)

	b.ReportAllocs()
	for b.Loop() {
		id, _ := a.Allocate()
		a.Release(id)
	}
}
