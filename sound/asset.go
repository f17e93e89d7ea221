// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"fmt"

	"github.com/ik5/sndcore/codec"
)

// Handle is a stable index into the manager's asset table.
type Handle int32

const NoHandle Handle = -1

type State int

const (
	Unloaded State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Asset is a named sound and, when Loaded, its chunk chain.
// Head is NoChunk unless State is Loaded.
type Asset struct {
	name       string
	compressed bool

	// DefaultSound is set when the last load failed and a placeholder should play.
	DefaultSound bool

	channels int
	method   codec.Method
	length   int

	head       ChunkID
	state      State
	lastUsed   int64
	refs       int
	generation uint32
}

func newAsset(name string, compressed bool) *Asset {
	return &Asset{name: name, compressed: compressed, head: NoChunk}
}

func (a *Asset) Name() string { return a.name }

// Compressed reports whether the asset was registered as a compression candidate.
func (a *Asset) Compressed() bool { return a.compressed }

func (a *Asset) Channels() int        { return a.channels }
func (a *Asset) Method() codec.Method { return a.method }

// Length is the number of frames at the native rate.
func (a *Asset) Length() int { return a.length }

func (a *Asset) Head() ChunkID      { return a.head }
func (a *Asset) State() State       { return a.state }
func (a *Asset) LastUsed() int64    { return a.lastUsed }
func (a *Asset) Refs() int          { return a.refs }
func (a *Asset) Generation() uint32 { return a.generation }

// Playable reports whether the asset has storage a painter may read.
func (a *Asset) Playable() bool {
	return a.state == Loaded && a.head != NoChunk && a.length > 0
}

// Bytes is the decoded size charged against the memory limit.
func (a *Asset) Bytes() int64 {
	return int64(a.length) * int64(a.channels) * 2
}
