package api

import (
	"sync"

	"github.com/alexlioralexli/rangecdf/pkg/fingerprint"
)

type cacheKey struct {
	fp        uint64
	precision int
}

// RowCache memoizes quantized rows keyed by the fingerprint of the PMF row
// and the precision. Entropy models re-emit the same rows constantly, so a
// plain bounded map carries most of the hit rate; on overflow the cache is
// reset wholesale rather than tracking recency.
type RowCache struct {
	mu         sync.Mutex
	maxEntries int
	rows       map[cacheKey][]uint32
}

const defaultCacheEntries = 4096

// NewRowCache creates a cache holding up to maxEntries rows; maxEntries <= 0
// selects the default size.
func NewRowCache(maxEntries int) *RowCache {
	if maxEntries <= 0 {
		maxEntries = defaultCacheEntries
	}
	return &RowCache{
		maxEntries: maxEntries,
		rows:       make(map[cacheKey][]uint32),
	}
}

// Get returns the cached CDF for the row, if present. The returned slice is
// shared and must be treated as read-only; CDF rows are immutable once
// derived.
func (c *RowCache) Get(pmf []float64, precision int) ([]uint32, bool) {
	key := cacheKey{fp: fingerprint.Row(pmf), precision: precision}
	c.mu.Lock()
	defer c.mu.Unlock()
	cdf, ok := c.rows[key]
	return cdf, ok
}

// Put stores a quantized row.
func (c *RowCache) Put(pmf []float64, precision int, cdf []uint32) {
	key := cacheKey{fp: fingerprint.Row(pmf), precision: precision}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.rows) >= c.maxEntries {
		c.rows = make(map[cacheKey][]uint32)
	}
	c.rows[key] = cdf
}

// Len reports the number of cached rows.
func (c *RowCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.rows)
}
