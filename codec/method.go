// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"
	"strings"
)

// Method identifies how an asset's samples are stored.
type Method int

const (
	PCM16 Method = iota
	ADPCM
	MuLaw
	Wavelet
)

func (m Method) String() string {
	switch m {
	case PCM16:
		return "pcm16"
	case ADPCM:
		return "adpcm"
	case MuLaw:
		return "mulaw"
	case Wavelet:
		return "wavelet"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// Compressed reports whether the method re-encodes samples after resampling.
func (m Method) Compressed() bool {
	return m != PCM16
}

// ParseMethod maps a configuration name to a Method.
// "none" and the empty string select PCM16.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "pcm", "pcm16":
		return PCM16, nil
	case "adpcm":
		return ADPCM, nil
	case "mulaw", "mu-law", "ulaw":
		return MuLaw, nil
	case "wavelet":
		return Wavelet, nil
	}

	return PCM16, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}
