// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"hash/fnv"

	"github.com/ik5/sndcore/audio"
)

// CacheSlots is the number of single-entry buckets.
const CacheSlots = 256

type cacheEntry struct {
	name     string
	handle   Handle
	used     uint64
	bytes    int64
	occupied bool
}

// Cache maps names to handles with one entry per bucket and LRU eviction
// bounded by a byte ceiling. A bucket collision replaces the occupant.
type Cache struct {
	slots  [CacheSlots]cacheEntry
	clock  uint64
	memory int64
	limit  int64
	count  int
}

func NewCache(limit int64) *Cache {
	return &Cache{limit: limit}
}

// Bucket returns the slot index for a name.
func Bucket(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(audio.NormalizeName(name)))
	return int(h.Sum32() % CacheSlots)
}

// Lookup returns the cached handle only when the bucket holds the same name.
func (c *Cache) Lookup(name string) (Handle, bool) {
	key := audio.NormalizeName(name)
	e := &c.slots[Bucket(key)]
	if !e.occupied || e.name != key {
		return NoHandle, false
	}
	return e.handle, true
}

// Insert stores name in its bucket, replacing any occupant, then evicts the
// oldest entries until the tracked bytes fit the limit. It returns the
// handles that were evicted by the limit check.
func (c *Cache) Insert(name string, h Handle, bytes int64) []Handle {
	key := audio.NormalizeName(name)
	e := &c.slots[Bucket(key)]

	if e.occupied {
		c.memory -= e.bytes
		c.count--
	}

	c.clock++
	*e = cacheEntry{name: key, handle: h, used: c.clock, bytes: bytes, occupied: true}
	c.memory += bytes
	c.count++

	var evicted []Handle
	for c.memory > c.limit {
		old, ok := c.EvictOne()
		if !ok {
			break
		}
		evicted = append(evicted, old)
	}

	return evicted
}

// Touch refreshes the timestamp when the bucket holds name with handle h.
func (c *Cache) Touch(name string, h Handle) bool {
	key := audio.NormalizeName(name)
	e := &c.slots[Bucket(key)]
	if !e.occupied || e.handle != h || e.name != key {
		return false
	}

	c.clock++
	e.used = c.clock
	return true
}

// EvictOne clears the entry with the smallest timestamp.
func (c *Cache) EvictOne() (Handle, bool) {
	oldest := -1
	for i := range c.slots {
		if !c.slots[i].occupied {
			continue
		}
		if oldest < 0 || c.slots[i].used < c.slots[oldest].used {
			oldest = i
		}
	}

	if oldest < 0 {
		return NoHandle, false
	}

	e := &c.slots[oldest]
	h := e.handle
	c.memory -= e.bytes
	c.count--
	*e = cacheEntry{}

	return h, true
}

// Remove drops name if it is cached with handle h.
func (c *Cache) Remove(name string, h Handle) bool {
	key := audio.NormalizeName(name)
	e := &c.slots[Bucket(key)]
	if !e.occupied || e.handle != h || e.name != key {
		return false
	}

	c.memory -= e.bytes
	c.count--
	*e = cacheEntry{}
	return true
}

// SetLimit changes the ceiling and evicts down to it.
func (c *Cache) SetLimit(limit int64) {
	c.limit = limit
	for c.memory > c.limit {
		if _, ok := c.EvictOne(); !ok {
			break
		}
	}
}

func (c *Cache) Reset() {
	c.slots = [CacheSlots]cacheEntry{}
	c.clock = 0
	c.memory = 0
	c.count = 0
}

func (c *Cache) Memory() int64 { return c.memory }
func (c *Cache) Limit() int64  { return c.limit }
func (c *Cache) Len() int      { return c.count }
