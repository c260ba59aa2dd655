package dictionary

import (
	"context"
	"sync"

	"github.com/equilex/equilex/storage"
)

// Cache holds a built Index and rebuilds it when the store-side dictionary
// version moves past the cached one. Safe for concurrent use.
type Cache struct {
	dict storage.DictionaryRepository

	mu  sync.RWMutex
	idx *Index
}

// NewCache creates a cache over the given dictionary repository. The first
// Get builds the index.
func NewCache(dict storage.DictionaryRepository) *Cache {
	return &Cache{dict: dict}
}

// Get returns a current Index, rebuilding if the stored dictionary changed
// since the last build.
func (c *Cache) Get(ctx context.Context) (*Index, error) {
	version, err := c.dict.Version(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	idx := c.idx
	c.mu.RUnlock()
	if idx != nil && idx.Version() == version {
		return idx, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have rebuilt while we waited for the lock.
	if c.idx != nil && c.idx.Version() == version {
		return c.idx, nil
	}

	idx, err = Build(ctx, c.dict)
	if err != nil {
		return nil, err
	}
	c.idx = idx
	return idx, nil
}

// Invalidate drops the cached index. The next Get rebuilds unconditionally.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.idx = nil
	c.mu.Unlock()
}
