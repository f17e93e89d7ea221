// SPDX-License-Identifier: EPL-2.0

package mixer

// SamplePair is one stereo accumulator frame.
type SamplePair struct {
	Left, Right int32
}

// PaintBuffer is the per-slice accumulation buffer.
type PaintBuffer struct {
	pairs []SamplePair
}

func NewPaintBuffer(n int) *PaintBuffer {
	return &PaintBuffer{pairs: make([]SamplePair, n)}
}

func (p *PaintBuffer) Len() int { return len(p.pairs) }

// Clear zeroes the first n frames.
func (p *PaintBuffer) Clear(n int) {
	clear(p.pairs[:n])
}

// Pairs exposes the accumulators.
func (p *PaintBuffer) Pairs() []SamplePair { return p.pairs }
