// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// The stream is decoded whole and converted from float to 16-bit
// little-endian PCM. Mono and stereo streams are supported.
//
//	f, _ := os.Open("music/track01.ogg")
//	pcm, err := vorbis.Decoder{}.Decode(f)
package vorbis
