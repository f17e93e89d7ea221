// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes WAV files.
//
// Decoding uses github.com/go-audio/wav and returns the whole file as
// audio.PCM, ready for the sound manager:
//
//	f, _ := os.Open("sound/weapons/fire.wav")
//	pcm, err := wav.Decoder{}.Decode(f)
//
// Supported input:
//   - PCM format tag only
//   - 8-bit (kept unsigned) and 16-bit (signed little-endian)
//   - mono and stereo, any sample rate
//
// # Writing
//
// WriteWAV16 writes interleaved 16-bit samples with a canonical 44-byte
// header. Recorder streams mixed output frames into a seekable file and
// fixes up the header on Close; it plugs into the mixer as a recording sink:
//
//	out, _ := os.Create("capture.wav")
//	rec, _ := wav.NewRecorder(out, 22050, 2, 16)
//	mix.SetRecorder(rec)
//	defer rec.Close()
//
// # Errors
//
//   - ErrNotWavFile: no RIFF/WAVE header
//   - ErrUnsupportedWavLayout: compressed or float format tag
//   - ErrUnsupportedBitDepth, ErrUnsupportedChannels: outside the supported set
//   - ErrOnlyPCM16bitSupported: Recorder asked for another depth
package wav
