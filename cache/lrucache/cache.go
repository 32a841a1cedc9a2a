// Package lrucache provides a size-bounded cache for the loader.
//
// The least recently used key is evicted when the cache is full.
// An evicted key is simply loaded again by the next Load of it.
package lrucache

import (
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// Cache is a dataloader.Cache bounded by the number of keys.
type Cache[K comparable, V any] struct {
	lru *simplelru.LRU[K, V]
	mu  sync.Mutex
}

// New creates a new Cache that holds at most size keys.
// It returns an error if size is not positive.
func New[K comparable, V any](size int) (*Cache[K, V], error) {
	lru, err := simplelru.NewLRU[K, V](size, nil)
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{lru: lru}, nil
}

// Get retrieves a value by its key and marks the key as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Get(key)
}

// GetOrSet stores the value only if the key does not exist yet.
// Storing a new key may evict the least recently used one.
func (c *Cache[K, V]) GetOrSet(key K, value V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.lru.Get(key); ok {
		return v, true
	}
	c.lru.Add(key, value)
	return value, false
}

// DeleteFunc deletes the key only if the condition is satisfied by its value.
func (c *Cache[K, V]) DeleteFunc(key K, cond func(V) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.lru.Peek(key); ok && cond(v) {
		return c.lru.Remove(key)
	}
	return false
}

// Delete deletes the key.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Remove(key)
}

// Clear deletes all keys.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Purge()
}

// Len returns the number of keys.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Len()
}
