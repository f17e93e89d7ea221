// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files with github.com/hajimehoshi/go-mp3.
//
// The whole stream is decoded at once. go-mp3 always produces 16-bit
// little-endian stereo, so the result is stereo even for mono sources; the
// sound manager resamples it to the native rate on load.
//
//	f, _ := os.Open("music/intro.mp3")
//	pcm, err := mp3.Decoder{}.Decode(f)
//
// A stream that decodes to zero frames fails with ErrEmptyStream.
package mp3
