package cache

import (
	"context"
	"sync"
	"time"
)

type CacheItem struct {
	Value      *Page
	Expiration int64
}

// Cache is the in-memory Store. With a zero ttl entries never expire.
type Cache struct {
	items map[string]CacheItem
	mu    sync.RWMutex
	ttl   time.Duration

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// New creates a cache. A positive ttl evicts entries that have not been
// rewritten within it; the sweep runs every cleanupEvery until Close.
func New(ttl, cleanupEvery time.Duration) *Cache {
	c := &Cache{
		items: make(map[string]CacheItem),
		ttl:   ttl,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	if ttl > 0 && cleanupEvery > 0 {
		go c.cleanupExpired(cleanupEvery)
	} else {
		close(c.done)
	}
	return c
}

func (c *Cache) Put(_ context.Context, page *Page) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiration int64
	if c.ttl > 0 {
		expiration = time.Now().Add(c.ttl).UnixNano()
	}
	c.items[page.Key] = CacheItem{
		Value:      page,
		Expiration: expiration,
	}
	return nil
}

func (c *Cache) Get(_ context.Context, key string) (*Page, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found {
		return nil, false, nil
	}

	if item.Expiration > 0 && time.Now().UnixNano() > item.Expiration {
		return nil, false, nil
	}

	return item.Value, true, nil
}

func (c *Cache) Size(context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.items)), nil
}

// Close stops the expiry sweep and waits for it to exit.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
	<-c.done
}

// cleanupExpired drops expired entries until Close.
func (c *Cache) cleanupExpired(every time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now().UnixNano()
			for key, item := range c.items {
				if item.Expiration > 0 && now > item.Expiration {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
