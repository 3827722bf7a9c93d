package cache

import (
	"strings"
	"sync"
	"time"

	"credito_tributario/internal/usecase/interfaces"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultSize = 512
	defaultTTL  = 30 * time.Second
)

// QueryCache keeps collection listings for a short time. Writes invalidate
// every listing of the written collection by key prefix and bump the prefix
// generation, so a listing read before the write is never stored after it.
type QueryCache struct {
	mu          sync.Mutex
	lru         *expirable.LRU[string, any]
	generations map[string]uint64
}

var _ interfaces.IQueryCache = (*QueryCache)(nil)

func NewQueryCache(size int, ttl time.Duration) *QueryCache {
	if size <= 0 {
		size = defaultSize
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &QueryCache{
		lru:         expirable.NewLRU[string, any](size, nil, ttl),
		generations: make(map[string]uint64),
	}
}

func (c *QueryCache) Get(key string) (any, bool) {
	return c.lru.Get(key)
}

func (c *QueryCache) Generation(prefix string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[prefix]
}

func (c *QueryCache) SetIfGeneration(key string, value any, prefix string, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[prefix] != gen {
		return false
	}
	c.lru.Add(key, value)
	return true
}

func (c *QueryCache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[prefix]++
	for _, k := range c.lru.Keys() {
		if strings.HasPrefix(k, prefix) {
			c.lru.Remove(k)
		}
	}
}

func (c *QueryCache) Len() int {
	return c.lru.Len()
}
