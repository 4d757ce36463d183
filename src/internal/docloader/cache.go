// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package docloader

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// CacheMetrics tracks cache usage.
type CacheMetrics struct {
	Size   int64 // Current number of cached documents
	Hits   int64 // Number of cache hits
	Misses int64 // Number of cache misses
}

// Cache maps URLs to loaded documents for the lifetime of one run.
//
// Entries are never evicted or expired. A new Cache is created for every
// run so that documents fetched by one run are not seen by the next.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*RemoteDocument
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*RemoteDocument)}
}

// Get returns the document cached for url.
func (c *Cache) Get(url string) (*RemoteDocument, bool) {
	c.mu.RLock()
	doc, ok := c.entries[url]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return doc, true
}

// Set stores doc under url, replacing any previous entry.
func (c *Cache) Set(url string, doc *RemoteDocument) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = doc
}

// Metrics returns current cache metrics.
func (c *Cache) Metrics() CacheMetrics {
	c.mu.RLock()
	size := int64(len(c.entries))
	c.mu.RUnlock()

	return CacheMetrics{
		Size:   size,
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// Stats returns a formatted string with cache statistics.
func (c *Cache) Stats() string {
	m := c.Metrics()

	hitRate := float64(0)
	if total := m.Hits + m.Misses; total > 0 {
		hitRate = float64(m.Hits) / float64(total) * 100
	}

	return fmt.Sprintf("Document Cache Statistics:\n"+
		"  Size: %d entries\n"+
		"  Hit Rate: %.1f%% (%d hits, %d misses)",
		m.Size, hitRate, m.Hits, m.Misses)
}
