// SPDX-License-Identifier: EPL-2.0

// Package mixer paints active channels into a wide accumulation buffer and
// transfers it to a device buffer.
//
// Time is counted in sample frames at the native rate. Paint(end, dev) mixes
// [PaintedTime, end) in slices no longer than the paint buffer. Each slice:
//
//  1. clears the paint buffer
//  2. adds buffered raw samples (streamed music, voice)
//  3. paints one-shot channels, then looping channels
//  4. converts into the device buffer and feeds the recorder, if any
//
// Accumulators carry 8 fractional bits: a full-scale 16-bit sample at unity
// volume accumulates as sample*256, and the transfer shifts it back with
// saturation.
//
// Channels refer to sounds by handle. The store is asked for the asset on
// every pass, and a sound that is no longer loaded is skipped, so an eviction
// between two paints never exposes freed storage. Channels also hold a
// reference on their sound so the store will not evict it while it plays.
package mixer
