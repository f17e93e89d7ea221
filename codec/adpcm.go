// SPDX-License-Identifier: EPL-2.0

package codec

// ADPCMState is the IMA predictor state at a block boundary.
// Each stored chunk keeps the state it was encoded with so it can be
// decoded independently of its neighbours.
type ADPCMState struct {
	Sample int16
	Index  int8
}

var adpcmIndexTable = [16]int8{
	-1, -1, -1, -1, 2, 4, 6, 8,
	-1, -1, -1, -1, 2, 4, 6, 8,
}

var adpcmStepTable = [89]int32{
	7, 8, 9, 10, 11, 12, 13, 14, 16, 17,
	19, 21, 23, 25, 28, 31, 34, 37, 41, 45,
	50, 55, 60, 66, 73, 80, 88, 97, 107, 118,
	130, 143, 157, 173, 190, 209, 230, 253, 279, 307,
	337, 371, 408, 449, 494, 544, 598, 658, 724, 796,
	876, 963, 1060, 1166, 1282, 1411, 1552, 1707, 1878, 2066,
	2272, 2499, 2749, 3024, 3327, 3660, 4026, 4428, 4871, 5358,
	5894, 6484, 7132, 7845, 8630, 9493, 10442, 11487, 12635, 13899,
	15289, 16818, 18500, 20350, 22385, 24623, 27086, 29794, 32767,
}

func clampIndex(i int32) int8 {
	if i < 0 {
		return 0
	}
	if i > 88 {
		return 88
	}
	return int8(i)
}

func clampPred(v int32) int32 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return v
}

// ADPCMBytes returns the number of bytes needed to hold n encoded samples.
func ADPCMBytes(n int) int {
	return (n + 1) / 2
}

// EncodeADPCM compresses src into dst, two samples per byte with the first
// sample in the high nibble. state is advanced past the encoded samples.
func EncodeADPCM(src []int16, dst []byte, state *ADPCMState) (int, error) {
	if len(dst) < ADPCMBytes(len(src)) {
		return 0, ErrShortBuffer
	}

	pred := int32(state.Sample)
	index := state.Index
	step := adpcmStepTable[index]

	for i, s := range src {
		diff := int32(s) - pred

		var sign int32
		if diff < 0 {
			sign = 8
			diff = -diff
		}

		var delta int32
		vpdiff := step >> 3

		if diff >= step {
			delta = 4
			diff -= step
			vpdiff += step
		}
		step >>= 1
		if diff >= step {
			delta |= 2
			diff -= step
			vpdiff += step
		}
		step >>= 1
		if diff >= step {
			delta |= 1
			vpdiff += step
		}

		if sign != 0 {
			pred -= vpdiff
		} else {
			pred += vpdiff
		}
		pred = clampPred(pred)

		delta |= sign
		index = clampIndex(int32(index) + int32(adpcmIndexTable[delta]))
		step = adpcmStepTable[index]

		if i&1 == 0 {
			dst[i>>1] = byte(delta << 4)
		} else {
			dst[i>>1] |= byte(delta & 0x0f)
		}
	}

	state.Sample = int16(pred)
	state.Index = index

	return ADPCMBytes(len(src)), nil
}

// DecodeADPCM expands len(dst) samples from src starting at state.
// The state is taken by value; the caller's copy stays untouched so a
// chunk can be decoded again from its stored state.
func DecodeADPCM(src []byte, dst []int16, state ADPCMState) error {
	if len(src) < ADPCMBytes(len(dst)) {
		return ErrShortBuffer
	}

	pred := int32(state.Sample)
	index := state.Index
	step := adpcmStepTable[index]

	for i := range dst {
		var delta int32
		if i&1 == 0 {
			delta = int32(src[i>>1]>>4) & 0x0f
		} else {
			delta = int32(src[i>>1]) & 0x0f
		}

		index = clampIndex(int32(index) + int32(adpcmIndexTable[delta]))

		sign := delta & 8
		delta &= 7

		vpdiff := step >> 3
		if delta&4 != 0 {
			vpdiff += step
		}
		if delta&2 != 0 {
			vpdiff += step >> 1
		}
		if delta&1 != 0 {
			vpdiff += step >> 2
		}

		if sign != 0 {
			pred -= vpdiff
		} else {
			pred += vpdiff
		}
		pred = clampPred(pred)

		step = adpcmStepTable[index]
		dst[i] = int16(pred)
	}

	return nil
}
