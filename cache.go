package glade

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// CacheKind distinguishes the bitmaps cached for one entity. An entity can
// own several entries at once (base art plus a glow overlay, per level and
// style permutation).
type CacheKind uint8

const (
	CacheKindBase CacheKind = iota
	CacheKindGlow
	CacheKindShadow
)

// CacheKey identifies one cached bitmap. It is a plain comparable struct, so
// two keys are equal exactly when all components match; there is no string
// form and no prefix matching.
type CacheKey struct {
	Entity    string
	Level     int
	StyleSeed uint32
	Kind      CacheKind
}

// cacheEntry is the value held by the LRU: the offscreen bitmap plus the
// logical size and device scale it was rendered at.
type cacheEntry struct {
	image *ebiten.Image
	w, h  int
	dpr   float64
}

// maxBufferDim bounds a single cache buffer edge in physical pixels.
// Requests beyond it fail softly and the caller draws uncached.
const maxBufferDim = 4096

// newRenderBuffer allocates an offscreen bitmap for a logical size at the
// given device scale. Returns nil when the size is empty or out of range;
// callers must fall back to direct drawing.
func newRenderBuffer(w, h, dpr float64) *ebiten.Image {
	pw := int(math.Ceil(w * dpr))
	ph := int(math.Ceil(h * dpr))
	if pw <= 0 || ph <= 0 || pw > maxBufferDim || ph > maxBufferDim {
		return nil
	}
	return ebiten.NewImage(pw, ph)
}

// RenderCacheManager memoizes per-entity bitmaps. Reads promote an entry to
// most-recently-used; inserting past capacity evicts exactly the
// least-recently-used entry and deallocates its bitmap. A device-scale change
// drops everything at once, since every cached bitmap's resolution is stale.
type RenderCacheManager struct {
	cache *lru.Cache[CacheKey, *cacheEntry]
	// owned maps an entity id to every key it currently holds, so a single
	// entity's entries can be dropped without scanning the whole cache.
	owned map[string][]CacheKey
	dpr   float64
	log   *log.Logger

	hits, misses int
}

// NewRenderCacheManager creates a cache bounded to capacity entries at device
// scale 1.0.
func NewRenderCacheManager(capacity int, logger *log.Logger) (*RenderCacheManager, error) {
	m := &RenderCacheManager{
		owned: make(map[string][]CacheKey),
		dpr:   1.0,
		log:   logger,
	}
	c, err := lru.NewWithEvict(capacity, m.onEvict)
	if err != nil {
		return nil, fmt.Errorf("glade: render cache: %w", err)
	}
	m.cache = c
	return m, nil
}

// onEvict releases the bitmap and unindexes the key. Runs for LRU eviction,
// explicit removal, and Purge.
func (m *RenderCacheManager) onEvict(key CacheKey, ent *cacheEntry) {
	if ent.image != nil {
		ent.image.Deallocate()
		ent.image = nil
	}
	keys := m.owned[key.Entity]
	for i, k := range keys {
		if k == key {
			keys[i] = keys[len(keys)-1]
			keys = keys[:len(keys)-1]
			break
		}
	}
	if len(keys) == 0 {
		delete(m.owned, key.Entity)
	} else {
		m.owned[key.Entity] = keys
	}
}

// GetOrCreate returns the cached bitmap for key, rendering it first on a
// miss. The render callback receives a fresh buffer sized w*scale by h*scale
// and the scale to multiply its logical coordinates by. A nil return means no
// buffer could be created; the caller draws directly this frame and no entry
// is stored.
func (m *RenderCacheManager) GetOrCreate(key CacheKey, w, h float64, render func(dst *ebiten.Image, scale float64)) *ebiten.Image {
	if ent, ok := m.cache.Get(key); ok {
		if ent.dpr == m.dpr && ent.w == int(w) && ent.h == int(h) {
			m.hits++
			return ent.image
		}
		// Stale resolution or size: drop and re-render below.
		m.cache.Remove(key)
	}

	buf := newRenderBuffer(w, h, m.dpr)
	if buf == nil {
		m.misses++
		m.log.Warn("cache buffer unavailable, drawing direct",
			"entity", key.Entity, "w", w, "h", h, "dpr", m.dpr)
		return nil
	}
	render(buf, m.dpr)

	m.cache.Add(key, &cacheEntry{image: buf, w: int(w), h: int(h), dpr: m.dpr})
	m.owned[key.Entity] = append(m.owned[key.Entity], key)
	m.misses++
	return buf
}

// InvalidateEntity drops every cached bitmap the entity owns. Other entities'
// entries are untouched.
func (m *RenderCacheManager) InvalidateEntity(id string) {
	keys := m.owned[id]
	if len(keys) == 0 {
		return
	}
	// Copy first: onEvict mutates the index while we iterate.
	drop := make([]CacheKey, len(keys))
	copy(drop, keys)
	for _, k := range drop {
		m.cache.Remove(k)
	}
}

// SetDeviceScale records a new device pixel ratio. Any change clears the
// whole cache: every stored bitmap was rendered at the old resolution.
func (m *RenderCacheManager) SetDeviceScale(dpr float64) {
	if dpr <= 0 || dpr == m.dpr {
		return
	}
	m.dpr = dpr
	m.Clear()
	m.log.Debug("device scale changed, cache cleared", "dpr", dpr)
}

// DeviceScale returns the current device pixel ratio.
func (m *RenderCacheManager) DeviceScale() float64 {
	return m.dpr
}

// Clear drops every entry, deallocating all bitmaps.
func (m *RenderCacheManager) Clear() {
	m.cache.Purge()
}

// Len returns the number of cached bitmaps.
func (m *RenderCacheManager) Len() int {
	return m.cache.Len()
}

// takeStats returns and resets the hit/miss counters since the last call.
func (m *RenderCacheManager) takeStats() (hits, misses int) {
	hits, misses = m.hits, m.misses
	m.hits, m.misses = 0, 0
	return
}

// Dispose releases all bitmaps. The manager must not be used afterwards.
func (m *RenderCacheManager) Dispose() {
	m.cache.Purge()
}
