// SPDX-License-Identifier: EPL-2.0

package sound

import "errors"

var (
	ErrArenaExhausted = errors.New("sound arena exhausted, nothing evictable")
	ErrBufferLimit    = errors.New("sound buffer limit reached")
	ErrMemoryLimit    = errors.New("sound memory limit reached")

	ErrDecode         = errors.New("sound decode failed")
	ErrEmptySound     = errors.New("sound has no samples")
	ErrInvalidHandle  = errors.New("invalid sound handle")
	ErrEmptyName      = errors.New("empty sound name")
	ErrTooManyAssets  = errors.New("too many registered sounds")
	ErrInUse          = errors.New("sound is referenced by a playing channel")
	ErrNotInitialized = errors.New("sound manager not initialized")
)

// IsFatal reports resource exhaustion that needs shutdown or reconfiguration.
func IsFatal(err error) bool {
	return errors.Is(err, ErrArenaExhausted) ||
		errors.Is(err, ErrBufferLimit) ||
		errors.Is(err, ErrMemoryLimit)
}
