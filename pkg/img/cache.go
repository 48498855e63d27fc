package img

import "sync"

// LoadCache records sources that finished loading successfully. Entries are
// never evicted: the cache lives as long as one client session.
type LoadCache struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewLoadCache creates an empty LoadCache.
func NewLoadCache() *LoadCache {
	return &LoadCache{seen: make(map[string]struct{})}
}

// Has reports whether src has loaded before.
func (c *LoadCache) Has(src string) bool {
	if src == "" {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.seen[src]
	return ok
}

// MarkLoaded records a successful load of src. Empty sources are ignored.
func (c *LoadCache) MarkLoaded(src string) {
	if src == "" {
		return
	}
	c.mu.Lock()
	c.seen[src] = struct{}{}
	c.mu.Unlock()
}

// Len returns the number of recorded sources.
func (c *LoadCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.seen)
}
