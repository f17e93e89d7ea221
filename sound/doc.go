// SPDX-License-Identifier: EPL-2.0

// Package sound owns decoded sample memory.
//
// Samples live in a fixed Arena of equal-size chunks. Each loaded Asset owns
// a singly linked chain of chunks, addressed by ChunkID rather than pointer,
// so the arena can be reset or replaced without dangling references.
//
// The Manager is the single owner of the arena, the asset table, the name
// Cache and the LoadQueue. It keeps two ledgers:
//   - loaded bytes, updated on load and unload, bounded by the memory limit
//   - cache bytes, updated on cache insert and eviction, bounded by the cache limit
//
// When the arena runs dry, the least recently used asset that no channel
// holds is unloaded and the allocation retried. When the live chunk count or
// the memory limit is reached, a compaction pass frees idle assets first.
// Running out after that is reported as a fatal error (see IsFatal).
//
// Nothing in this package is safe for concurrent use; callers serialise
// access (the root sndcore.System holds a mutex around every entry point).
package sound
