// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMuLawRoundTripIsMonotonic(t *testing.T) {
	t.Parallel()

	prev := int16(math.MinInt16)
	for v := math.MinInt16; v <= math.MaxInt16; v += 97 {
		got := MuLawDecode(MuLawEncode(int16(v)))
		assert.GreaterOrEqual(t, got, prev, "decode not monotonic at %d", v)
		prev = got
	}
}

func TestMuLawErrorBound(t *testing.T) {
	t.Parallel()

	for _, v := range []int16{0, 1, -1, 100, -100, 1000, -1000, 8000, -8000, 30000, -30000} {
		got := MuLawDecode(MuLawEncode(v))
		diff := math.Abs(float64(got) - float64(v))
		// quantization step grows with magnitude, roughly 1/16 of the segment
		bound := math.Max(16, math.Abs(float64(v))/16)
		assert.LessOrEqual(t, diff, bound, "sample %d decoded to %d", v, got)
	}
}

func TestMuLawExtremes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, byte(0xff), MuLawEncode(0))
	assert.Equal(t, int16(32124), MuLawDecode(MuLawEncode(math.MaxInt16)))
	assert.Equal(t, int16(-32124), MuLawDecode(MuLawEncode(math.MinInt16)))
}

func TestEncodeMuLawLength(t *testing.T) {
	t.Parallel()

	dst := make([]byte, 3)
	n := EncodeMuLaw([]int16{1, 2, 3, 4, 5}, dst)
	assert.Equal(t, 3, n)
}
