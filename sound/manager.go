// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"fmt"
	"time"

	"github.com/ik5/sndcore/audio"
	"github.com/ik5/sndcore/codec"
	"github.com/ik5/sndcore/config"
	"github.com/sirupsen/logrus"
)

// MaxAssets bounds the asset table.
const MaxAssets = 4096

// Stats is a read-only snapshot for diagnostics.
type Stats struct {
	BytesUsed   int64
	ByteLimit   int64
	BufferCount int
	FreeChunks  int
	CacheBytes  int64
	CacheLimit  int64
	Queued      int
	Assets      int
	Loaded      int
}

// Manager owns the arena, assets, cache and load queue.
type Manager struct {
	cfg       *config.Config
	loader    audio.Loader
	resampler *audio.Resampler

	arena *Arena
	cache *Cache
	queue *LoadQueue

	assets []*Asset
	names  map[string]Handle

	memUsed int64
	now     int64

	// scratch for the compressed load paths
	raw  []int16
	wavA []float32
	wavW []float32
}

func NewManager(cfg *config.Config, loader audio.Loader) (*Manager, error) {
	m := &Manager{
		loader: loader,
		names:  make(map[string]Handle),
		cache:  NewCache(cfg.CacheLimit),
		queue:  NewLoadQueue(cfg.DispatchInterval),
	}

	if err := m.Setup(cfg); err != nil {
		return nil, err
	}

	return m, nil
}

// Setup applies cfg. The arena is re-allocated only when its size changes.
// Re-allocating, or changing the native rate, unloads every asset; other
// changes keep loaded sounds.
func (m *Manager) Setup(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	resize := m.arena == nil || m.cfg == nil || m.cfg.ArenaMegs != cfg.ArenaMegs
	rerate := m.cfg != nil && m.cfg.NativeRate != cfg.NativeRate

	if resize || rerate {
		m.unloadAll()
	}

	m.cfg = cfg.Clone()
	m.resampler = audio.NewResampler(cfg.NativeRate)
	m.queue.SetInterval(cfg.DispatchInterval)
	m.cache.SetLimit(cfg.CacheLimit)

	if !resize {
		return nil
	}

	m.arena = NewArena(ChunksForMegs(cfg.ArenaMegs))
	m.cache.Reset()

	logrus.WithFields(logrus.Fields{
		"function": "Manager.Setup",
		"megs":     cfg.ArenaMegs,
		"chunks":   m.arena.Len(),
		"rate":     cfg.NativeRate,
	}).Info("sound arena allocated")

	return nil
}

// Shutdown discards pending loads, frees all storage and forgets every asset.
func (m *Manager) Shutdown() {
	if m.arena == nil {
		return
	}

	dropped := m.queue.Clear()
	m.unloadAll()
	m.assets = nil
	m.names = make(map[string]Handle)
	m.cache.Reset()
	m.arena = nil
	m.memUsed = 0

	logrus.WithFields(logrus.Fields{
		"function": "Manager.Shutdown",
		"dropped":  dropped,
	}).Debug("sound manager shut down")
}

// Config returns the active configuration.
func (m *Manager) Config() *config.Config { return m.cfg }

// SetTime sets the sound clock (in native-rate frames) used for idle checks.
func (m *Manager) SetTime(t int64) { m.now = t }

func (m *Manager) Time() int64 { return m.now }

// Register returns the handle for name, creating an Unloaded asset on first use.
// compressed marks the sound as a candidate for the configured compression.
func (m *Manager) Register(name string, compressed bool) (Handle, error) {
	if m.arena == nil {
		return NoHandle, ErrNotInitialized
	}

	key := audio.NormalizeName(name)
	if key == "" {
		return NoHandle, ErrEmptyName
	}

	if h, ok := m.names[key]; ok {
		return h, nil
	}

	if len(m.assets) >= MaxAssets {
		return NoHandle, fmt.Errorf("%w: %d", ErrTooManyAssets, MaxAssets)
	}

	h := Handle(len(m.assets))
	m.assets = append(m.assets, newAsset(key, compressed))
	m.names[key] = h

	return h, nil
}

// Find resolves a name, consulting the cache first.
func (m *Manager) Find(name string) (Handle, bool) {
	if h, ok := m.cache.Lookup(name); ok {
		m.cache.Touch(name, h)
		return h, true
	}

	h, ok := m.names[audio.NormalizeName(name)]
	return h, ok
}

// Asset returns the asset for h, or nil.
func (m *Manager) Asset(h Handle) *Asset {
	if h < 0 || int(h) >= len(m.assets) {
		return nil
	}
	return m.assets[h]
}

// Chunk returns arena storage for id, or nil.
func (m *Manager) Chunk(id ChunkID) *Chunk {
	if m.arena == nil {
		return nil
	}
	return m.arena.Chunk(id)
}

// Acquire records a playing reference; referenced assets are never evicted.
func (m *Manager) Acquire(h Handle) bool {
	a := m.Asset(h)
	if a == nil {
		return false
	}

	a.refs++
	m.touch(h, a)
	return true
}

// Release drops a reference taken by Acquire.
func (m *Manager) Release(h Handle) {
	if a := m.Asset(h); a != nil && a.refs > 0 {
		a.refs--
	}
}

// Touch marks the asset as used now.
func (m *Manager) Touch(h Handle) {
	if a := m.Asset(h); a != nil {
		m.touch(h, a)
	}
}

func (m *Manager) touch(h Handle, a *Asset) {
	a.lastUsed = m.now
	m.cache.Touch(a.name, h)
}

// Load decodes the asset synchronously under its own name.
func (m *Manager) Load(h Handle) error {
	a := m.Asset(h)
	if a == nil {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	if m.arena == nil {
		return ErrNotInitialized
	}

	if a.state == Loaded {
		m.touch(h, a)
		return nil
	}

	return m.load(h, a, a.name)
}

// Queue schedules an asynchronous load of h from filename.
func (m *Manager) Queue(h Handle, filename string) bool {
	a := m.Asset(h)
	if a == nil || m.arena == nil {
		return false
	}

	if !m.queue.Enqueue(h, filename) {
		return false
	}

	if a.state != Loaded {
		a.state = Loading
	}
	return true
}

// Dispatch performs at most one queued load, subject to the dispatch
// interval. It returns nil, nil when nothing was due.
func (m *Manager) Dispatch() (*Request, error) {
	if m.arena == nil {
		return nil, ErrNotInitialized
	}

	req, ok := m.queue.Next()
	if !ok {
		return nil, nil
	}

	a := m.Asset(req.Handle)
	if a == nil {
		req.Failed = true
		return req, fmt.Errorf("%w: %d", ErrInvalidHandle, req.Handle)
	}

	log := logrus.WithFields(logrus.Fields{
		"function": "Manager.Dispatch",
		"file":     req.Filename,
	})

	if a.state == Loaded {
		req.Loaded = true
		return req, nil
	}

	if err := m.load(req.Handle, a, req.Filename); err != nil {
		req.Failed = true
		log.WithError(err).Debug("queued load failed")
		return req, err
	}

	req.Loaded = true
	log.Debug("queued load complete")

	return req, nil
}

// Evict unloads h now. A referenced asset is refused with ErrInUse.
func (m *Manager) Evict(h Handle) error {
	a := m.Asset(h)
	if a == nil {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	if a.refs > 0 {
		return fmt.Errorf("%w: %s", ErrInUse, a.name)
	}
	if a.state == Loaded {
		m.unload(a)
	}
	return nil
}

// Compact frees loaded, unreferenced assets idle for at least the idle
// threshold, stopping once the configured fraction of the memory limit has
// been reclaimed. It returns the bytes and chunks freed.
func (m *Manager) Compact() (freed int64, chunks int) {
	if m.arena == nil {
		return 0, 0
	}

	target := int64(float64(m.cfg.MemoryLimit) * m.cfg.CompactFraction)
	idle := m.cfg.IdleSamples()

	for _, a := range m.assets {
		if a.state != Loaded || a.refs > 0 {
			continue
		}
		if m.now-a.lastUsed < idle {
			continue
		}

		size := a.Bytes()
		chunks += m.unload(a)
		freed += size

		if freed >= target {
			break
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "Manager.Compact",
		"freed":    freed,
		"chunks":   chunks,
		"used":     m.memUsed,
		"limit":    m.cfg.MemoryLimit,
	}).Debug("sound memory compacted")

	return freed, chunks
}

func (m *Manager) Stats() Stats {
	s := Stats{
		BytesUsed:  m.memUsed,
		CacheBytes: m.cache.Memory(),
		CacheLimit: m.cache.Limit(),
		Queued:     m.queue.Len(),
		Assets:     len(m.assets),
	}
	if m.cfg != nil {
		s.ByteLimit = m.cfg.MemoryLimit
	}
	if m.arena != nil {
		s.BufferCount = m.arena.Live()
		s.FreeChunks = m.arena.Free()
	}
	for _, a := range m.assets {
		if a.state == Loaded {
			s.Loaded++
		}
	}
	return s
}

// SetQueueClock replaces the time source of the load queue.
func (m *Manager) SetQueueClock(now func() time.Time) { m.queue.SetClock(now) }

func (m *Manager) load(h Handle, a *Asset, filename string) error {
	log := logrus.WithFields(logrus.Fields{
		"function": "Manager.load",
		"sound":    a.name,
		"file":     filename,
	})

	pcm, err := m.loader.Load(filename)
	if err == nil {
		err = pcm.Validate()
	}
	if err == nil && pcm.Samples == 0 {
		err = ErrEmptySound
	}
	if err != nil {
		m.fail(a)
		log.WithError(err).Debug("decode failed, using default sound")
		return fmt.Errorf("%w: %s: %w", ErrDecode, filename, err)
	}

	if pcm.Width == 1 {
		log.Debug("8 bit source")
	}

	need := int64(pcm.Samples) * int64(pcm.Channels) * 2
	if !m.reserve(need) {
		m.fail(a)
		log.WithFields(logrus.Fields{
			"need":  need,
			"used":  m.memUsed,
			"limit": m.cfg.MemoryLimit,
		}).Error("not enough sound memory")
		return fmt.Errorf("%w: %s needs %d bytes", ErrMemoryLimit, a.name, need)
	}

	a.state = Loading
	a.lastUsed = m.now + 1

	method := m.selectMethod(a, pcm.Info)
	head, frames, err := m.store(pcm, method)
	if err != nil {
		a.state = Unloaded
		if IsFatal(err) {
			log.WithError(err).Error("sound allocation failed")
			return err
		}
		m.fail(a)
		return fmt.Errorf("%w: %s: %w", ErrDecode, filename, err)
	}
	if frames == 0 {
		m.arena.ReleaseChain(head)
		m.fail(a)
		return fmt.Errorf("%w: %s: %w", ErrDecode, filename, ErrEmptySound)
	}

	a.head = head
	a.channels = pcm.Channels
	a.method = method
	a.length = frames
	a.state = Loaded
	a.DefaultSound = false
	a.generation++

	m.memUsed += a.Bytes()

	for _, old := range m.cache.Insert(a.name, h, a.Bytes()) {
		log.WithField("evicted", old).Debug("cache entry evicted")
	}

	log.WithFields(logrus.Fields{
		"method": method.String(),
		"frames": frames,
		"used":   m.memUsed,
	}).Debug("sound loaded")

	return nil
}

func (m *Manager) fail(a *Asset) {
	a.state = Failed
	a.DefaultSound = true
}

// reserve makes room for need more bytes, compacting once if required.
func (m *Manager) reserve(need int64) bool {
	if m.memUsed+need <= m.cfg.MemoryLimit {
		return true
	}

	if freed, _ := m.Compact(); freed == 0 {
		return false
	}

	return m.memUsed+need <= m.cfg.MemoryLimit
}

func (m *Manager) selectMethod(a *Asset, info audio.Info) codec.Method {
	if !a.compressed || info.Channels != 1 {
		return codec.PCM16
	}

	switch m.cfg.Method() {
	case codec.ADPCM:
		return codec.ADPCM
	case codec.MuLaw:
		if info.Width > 1 {
			return codec.MuLaw
		}
	case codec.Wavelet:
		if m.cfg.EnableWavelet && info.Width > 1 {
			return codec.Wavelet
		}
	}

	return codec.PCM16
}

// allocChunk applies the buffer ceiling and forced eviction on top of the arena.
func (m *Manager) allocChunk() (ChunkID, error) {
	if m.arena.Live() >= m.cfg.BufferLimit {
		logrus.WithFields(logrus.Fields{
			"function": "Manager.allocChunk",
			"buffers":  m.arena.Live(),
			"limit":    m.cfg.BufferLimit,
		}).Debug("buffer limit reached, compacting")

		m.Compact()
		if m.arena.Live() >= m.cfg.BufferLimit {
			return NoChunk, ErrBufferLimit
		}
	}

	for {
		if id, ok := m.arena.Allocate(); ok {
			return id, nil
		}
		if !m.evictOldest() {
			return NoChunk, ErrArenaExhausted
		}
	}
}

// evictOldest unloads the least recently used loaded asset no channel holds.
func (m *Manager) evictOldest() bool {
	var oldest *Asset
	for _, a := range m.assets {
		if a.state != Loaded || a.refs > 0 {
			continue
		}
		if oldest == nil || a.lastUsed < oldest.lastUsed {
			oldest = a
		}
	}

	if oldest == nil {
		return false
	}

	logrus.WithFields(logrus.Fields{
		"function":  "Manager.evictOldest",
		"sound":     oldest.name,
		"last_used": oldest.lastUsed,
	}).Debug("forced eviction")

	m.unload(oldest)
	return true
}

// unload clears the asset before its chunks go back to the free list.
func (m *Manager) unload(a *Asset) int {
	head := a.head
	size := a.Bytes()

	a.head = NoChunk
	a.state = Unloaded
	a.generation++
	m.memUsed -= size

	if m.arena == nil {
		return 0
	}
	return m.arena.ReleaseChain(head)
}

func (m *Manager) unloadAll() {
	for _, a := range m.assets {
		if a.state == Loaded {
			m.unload(a)
		} else if a.state == Loading {
			a.state = Unloaded
		}
	}
}
