// SPDX-License-Identifier: EPL-2.0

package codec

import "github.com/ik5/sndcore/utils"

// Daubechies-4 filter coefficients.
const (
	d4c0 = 0.4829629131445341
	d4c1 = 0.8365163037378079
	d4c2 = 0.2241438680420134
	d4c3 = -0.1294095225512604
)

// ValidWaveletSize reports whether n can be transformed.
func ValidWaveletSize(n int) bool {
	return n >= 4 && n&(n-1) == 0
}

// daub4 applies one level of the transform to a[:n] using w[:n] as workspace.
func daub4(a, w []float32, n int, inverse bool) {
	if n < 4 {
		return
	}
	nh := n >> 1

	if !inverse {
		i := 0
		for j := 0; j < n-3; j += 2 {
			w[i] = d4c0*a[j] + d4c1*a[j+1] + d4c2*a[j+2] + d4c3*a[j+3]
			w[i+nh] = d4c3*a[j] - d4c2*a[j+1] + d4c1*a[j+2] - d4c0*a[j+3]
			i++
		}
		w[i] = d4c0*a[n-2] + d4c1*a[n-1] + d4c2*a[0] + d4c3*a[1]
		w[i+nh] = d4c3*a[n-2] - d4c2*a[n-1] + d4c1*a[0] - d4c0*a[1]
	} else {
		w[0] = d4c2*a[nh-1] + d4c1*a[n-1] + d4c0*a[0] + d4c3*a[nh]
		w[1] = d4c3*a[nh-1] - d4c0*a[n-1] + d4c1*a[0] - d4c2*a[nh]
		j := 2
		for i := 0; i < nh-1; i++ {
			w[j] = d4c2*a[i] + d4c1*a[i+nh] + d4c0*a[i+1] + d4c3*a[i+nh+1]
			j++
			w[j] = d4c3*a[i] - d4c0*a[i+nh] + d4c1*a[i+1] - d4c2*a[i+nh+1]
			j++
		}
	}

	copy(a[:n], w[:n])
}

// Transform runs the multi-level Daubechies-4 transform in place.
// len(a) must be a valid wavelet size and w at least as long as a.
func Transform(a, w []float32, inverse bool) {
	n := len(a)
	if n < 4 {
		return
	}

	if !inverse {
		for nn := n; nn >= 4; nn >>= 1 {
			daub4(a, w, nn, false)
		}
		return
	}

	for nn := 4; nn <= n; nn <<= 1 {
		daub4(a, w, nn, true)
	}
}

// EncodeWavelet transforms src and stores the coefficients as mu-law bytes in dst.
// a and w are float workspaces of at least len(src) elements.
func EncodeWavelet(src []int16, dst []byte, a, w []float32) error {
	n := len(src)
	if !ValidWaveletSize(n) {
		return ErrWaveletSize
	}
	if len(dst) < n || len(a) < n || len(w) < n {
		return ErrShortBuffer
	}

	a = a[:n]
	for i, s := range src {
		a[i] = float32(s)
	}

	Transform(a, w, false)

	for i := range n {
		dst[i] = MuLawEncode(utils.SaturateInt16(int32(a[i])))
	}

	return nil
}

// DecodeWavelet reverses EncodeWavelet for len(dst) samples.
func DecodeWavelet(src []byte, dst []int16, a, w []float32) error {
	n := len(dst)
	if !ValidWaveletSize(n) {
		return ErrWaveletSize
	}
	if len(src) < n || len(a) < n || len(w) < n {
		return ErrShortBuffer
	}

	a = a[:n]
	for i := range n {
		a[i] = float32(muLawTable[src[i]])
	}

	Transform(a, w, true)

	for i := range n {
		dst[i] = utils.SaturateInt16(int32(a[i]))
	}

	return nil
}
