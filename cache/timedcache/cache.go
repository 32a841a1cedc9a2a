package timedcache

import (
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Cache is a dataloader.Cache whose keys expire after a fixed time.
type Cache[K comparable, V any] struct {
	cache *ttlcache.Cache[K, V]
	mu    sync.Mutex
}

// New creates a new Cache whose keys expire after ttl.
//
// Expired keys are invisible but still hold memory until DeleteExpired is called.
// Run Start in a goroutine to delete them automatically, and call Stop to end it.
func New[K comparable, V any](ttl time.Duration, opts ...Option[K, V]) *Cache[K, V] {
	var o options[K, V]
	for _, opt := range opts {
		opt.apply(&o)
	}

	ttlOptions := append([]ttlcache.Option[K, V]{ttlcache.WithTTL[K, V](ttl)}, o.ttlOptions...)
	if !o.touchOnHit {
		ttlOptions = append(ttlOptions, ttlcache.WithDisableTouchOnHit[K, V]())
	}
	return &Cache[K, V]{cache: ttlcache.New[K, V](ttlOptions...)}
}

// Get retrieves a value by its key. Expired keys do not exist.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item := c.cache.Get(key); item != nil {
		return item.Value(), true
	}
	var zero V
	return zero, false
}

// GetOrSet stores the value only if the key does not exist yet or has expired.
func (c *Cache[K, V]) GetOrSet(key K, value V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, loaded := c.cache.GetOrSet(key, value, ttlcache.WithTTL[K, V](ttlcache.DefaultTTL))
	return item.Value(), loaded
}

// DeleteFunc deletes the key only if the condition is satisfied by its value.
func (c *Cache[K, V]) DeleteFunc(key K, cond func(V) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.cache.Get(key, ttlcache.WithDisableTouchOnHit[K, V]())
	if item == nil || !cond(item.Value()) {
		return false
	}
	c.cache.Delete(key)
	return true
}

// Delete deletes the key.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Delete(key)
}

// Clear deletes all keys.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.DeleteAll()
}

// DeleteExpired releases the expired keys.
func (c *Cache[K, V]) DeleteExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.DeleteExpired()
}

// Len returns the number of keys, including the expired ones not released yet.
func (c *Cache[K, V]) Len() int {
	return c.cache.Len()
}

// Start deletes the expired keys automatically until Stop is called.
// It blocks, so run it in a goroutine.
func (c *Cache[K, V]) Start() {
	c.cache.Start()
}

// Stop ends Start. It must not be called unless Start is running.
func (c *Cache[K, V]) Stop() {
	c.cache.Stop()
}
