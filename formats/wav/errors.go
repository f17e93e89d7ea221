// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile            = errors.New("not a WAV file")
	ErrUnsupportedWavLayout  = errors.New("unsupported WAV layout")
	ErrUnsupportedBitDepth   = errors.New("only 8 and 16-bit PCM supported")
	ErrUnsupportedChannels   = errors.New("only mono and stereo supported")
	ErrOnlyPCM16bitSupported = errors.New("only PCM 16-bit supported")
	ErrRecorderClosed        = errors.New("recorder closed")
)
