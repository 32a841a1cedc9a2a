package memcache

import (
	"sync"
)

type bucket[K comparable, V any] struct {
	m  map[K]V
	mu sync.RWMutex
}

func newBucket[K comparable, V any]() *bucket[K, V] {
	return &bucket[K, V]{m: map[K]V{}}
}

func (b *bucket[K, V]) get(key K) (V, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.m[key]
	return v, ok
}

func (b *bucket[K, V]) getOrSet(key K, value V) (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if v, ok := b.m[key]; ok {
		return v, true
	}
	b.m[key] = value
	return value, false
}

func (b *bucket[K, V]) deleteFunc(key K, cond func(V) bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if v, ok := b.m[key]; ok && cond(v) {
		delete(b.m, key)
		return true
	}
	return false
}

func (b *bucket[K, V]) delete(key K) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.m, key)
}

func (b *bucket[K, V]) len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.m)
}

// Cache is an in-memory cache.
// It is safe for concurrent use by multiple goroutines.
type Cache[K comparable, V any] struct {
	buckets []*bucket[K, V]
	hashKey func(K) int
}

// New creates a new in-memory cache.
// With more than one bucket, keys are distributed across the buckets by their hash.
func New[K comparable, V any](opts ...Option[K, V]) *Cache[K, V] {
	options := defaultOptions[K, V]()
	for _, opt := range opts {
		opt.apply(&options)
	}

	c := &Cache[K, V]{
		buckets: make([]*bucket[K, V], options.bucketsSize),
	}
	for i := range c.buckets {
		c.buckets[i] = newBucket[K, V]()
	}
	if len(c.buckets) > 1 {
		c.hashKey = options.keyHash()
	}
	return c
}

// resolveBucket returns the bucket that corresponds to the given key.
func (c *Cache[K, V]) resolveBucket(key K) *bucket[K, V] {
	if c.hashKey == nil {
		return c.buckets[0]
	}

	index := c.hashKey(key) % len(c.buckets)
	if index < 0 {
		index *= -1
	}
	return c.buckets[index]
}

// Get retrieves a value by its key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.resolveBucket(key).get(key)
}

// GetOrSet stores the value only if the key does not exist yet.
// It returns the existing value and true if the key exists, otherwise the given value and false.
func (c *Cache[K, V]) GetOrSet(key K, value V) (V, bool) {
	return c.resolveBucket(key).getOrSet(key, value)
}

// DeleteFunc deletes the key if the condition is satisfied by its value.
func (c *Cache[K, V]) DeleteFunc(key K, cond func(V) bool) bool {
	return c.resolveBucket(key).deleteFunc(key, cond)
}

// Delete deletes the key.
func (c *Cache[K, V]) Delete(key K) {
	c.resolveBucket(key).delete(key)
}

// Clear deletes all keys at once.
func (c *Cache[K, V]) Clear() {
	// buckets are always locked in index order
	for _, b := range c.buckets {
		b.mu.Lock()
		defer b.mu.Unlock()
	}
	for _, b := range c.buckets {
		clear(b.m)
	}
}

// Len returns the number of keys.
func (c *Cache[K, V]) Len() int {
	n := 0
	for _, b := range c.buckets {
		n += b.len()
	}
	return n
}
