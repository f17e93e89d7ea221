// SPDX-License-Identifier: EPL-2.0

package codec

import "errors"

var (
	ErrUnknownMethod = errors.New("unknown compression method")
	ErrWaveletSize   = errors.New("wavelet block size must be a power of two >= 4")
	ErrShortBuffer   = errors.New("destination buffer too small")
)
