// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidRate     = errors.New("sample rate must be positive")
	ErrInvalidWidth    = errors.New("sample width must be 1 or 2 bytes")
	ErrInvalidChannels = errors.New("channel count must be 1 or 2")
	ErrShortData       = errors.New("sample data shorter than declared")
	ErrUnknownFormat   = errors.New("no decoder registered for format")
)
