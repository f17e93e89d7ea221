// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	ErrNoFreeChannel  = errors.New("no free channel")
	ErrTooManyLoops   = errors.New("too many looping channels")
	ErrInvalidHandle  = errors.New("invalid sound handle")
	ErrInvalidChannel = errors.New("invalid channel index")
	ErrNoDevice       = errors.New("no output device")
	ErrInvalidFormat  = errors.New("unsupported device format")
	ErrRawOverflow    = errors.New("raw sample buffer full")
)
