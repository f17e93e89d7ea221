// SPDX-License-Identifier: EPL-2.0

// Package audio is the boundary between sound files and the sample store.
//
// A Decoder turns an encoded stream into PCM: raw sample bytes plus Info
// (rate, width, channels, frame count, data offset). Decoders are kept in a
// Registry keyed by file extension, and a FileLoader resolves a sound name
// against an fs.FS:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	loader := audio.NewFileLoader(os.DirFS("sounds"), reg)
//	pcm, err := loader.Load("weapons/fire.wav")
//
// A missing file is retried with the other registered extensions, so
// "fire.wav" can be served by "fire.ogg".
//
// # Resampling
//
// The Resampler converts PCM to the mixer's native rate using 8.8 fixed
// point stepping. Positions are truncated rather than interpolated:
//
//	r := audio.NewResampler(22050)
//	frames, err := r.Resample(pcm, sink)
//
// Output frames = floor(frames / (rate/native)). Equal rates pass samples
// through unchanged. 8-bit samples are unsigned, centred at 128, and are
// widened with a left shift of 8.
//
// ResampleRaw writes into a caller-owned slice so the compressed load path can
// reuse one scratch buffer across loads.
package audio
