// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the file is not a valid AIFF file
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedBitDepth indicates a depth other than 8 or 16 bits
	ErrUnsupportedBitDepth = errors.New("only 8 and 16-bit PCM AIFF is supported")

	// ErrUnsupportedAiffLayout indicates a missing format or a channel count
	// other than mono or stereo
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")

	ErrEmptyStream = errors.New("aiff file holds no samples")
)
