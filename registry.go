// SPDX-License-Identifier: EPL-2.0

package sndcore

import (
	"github.com/ik5/sndcore/audio"
	"github.com/ik5/sndcore/formats/aiff"
	"github.com/ik5/sndcore/formats/mp3"
	"github.com/ik5/sndcore/formats/vorbis"
	"github.com/ik5/sndcore/formats/wav"
)

// DefaultRegistry knows every bundled decoder, keyed by file extension.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return reg
}
