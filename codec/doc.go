// SPDX-License-Identifier: EPL-2.0

// Package codec holds the sample storage encodings used by the sound arena.
//
// Every loaded sound is stored with exactly one Method, chosen once at load time:
//   - PCM16: raw 16-bit samples, read directly by the mixer
//   - ADPCM: IMA ADPCM nibbles, four samples per 16-bit word, decoded one chunk at a time
//   - MuLaw: one G.711 byte per sample, expanded through a 256-entry table while mixing
//   - Wavelet: Daubechies-4 coefficients stored as mu-law bytes, decoded one chunk at a time
//
// The encoders work on flat sample slices; the chunk layout is owned by the sound package.
//
// Wavelet storage is kept for format compatibility and is only selected when the caller
// enables it explicitly.
package codec
