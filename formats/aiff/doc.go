// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with github.com/go-audio/aiff.
//
// 8-bit files are converted to unsigned samples and 16-bit files to
// little-endian, matching what the sound manager expects from every decoder.
// Only mono and stereo files are accepted.
//
//	f, _ := os.Open("sound/misc/menu1.aif")
//	pcm, err := aiff.Decoder{}.Decode(f)
package aiff
