// SPDX-License-Identifier: EPL-2.0

package vorbis_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/sndcore/audio"
	"github.com/ik5/sndcore/formats/vorbis"
)

// Example registers the decoder for .ogg names and rejects bad input.
func Example() {
	reg := audio.NewRegistry()
	reg.Register("ogg", vorbis.Decoder{})

	dec, _ := reg.Get("OGG")
	_, err := dec.Decode(bytes.NewReader([]byte("OggS but not really")))

	fmt.Println(reg.Formats(), err != nil)
	// Output: [ogg] true
}
