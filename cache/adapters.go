package cache

import (
	"github.com/karupanerura/dataloader"
)

var _ dataloader.Cache[uint8, struct{}] = NopCache[uint8, struct{}]{}

// NopCache is a dataloader.Cache that stores nothing.
// With it, every Load of a loader is passed to the batch function,
// even if the same key is loaded twice in one batch.
type NopCache[K dataloader.KeyConstraint, V dataloader.ValueConstraint] struct{}

// Get always reports that the key does not exist.
func (NopCache[K, V]) Get(K) (V, bool) {
	var zero V
	return zero, false
}

// GetOrSet returns the given value without storing it.
func (NopCache[K, V]) GetOrSet(_ K, v V) (V, bool) {
	return v, false
}

// DeleteFunc does nothing and returns false.
func (NopCache[K, V]) DeleteFunc(K, func(V) bool) bool {
	return false
}

// Delete does nothing.
func (NopCache[K, V]) Delete(K) {}

// Clear does nothing.
func (NopCache[K, V]) Clear() {}

var _ dataloader.Cache[uint8, struct{}] = (*FunctionsCache[uint8, struct{}])(nil)

// FunctionsCache is a dataloader.Cache implementation that uses functions to perform the cache operations.
// A nil function behaves like the corresponding method of NopCache.
type FunctionsCache[K dataloader.KeyConstraint, V dataloader.ValueConstraint] struct {
	// GetFunc retrieves a value by its key.
	GetFunc func(K) (V, bool)

	// GetOrSetFunc stores the value only if the key does not exist yet.
	GetOrSetFunc func(K, V) (V, bool)

	// DeleteIfFunc deletes the key if the condition is satisfied by its value.
	DeleteIfFunc func(K, func(V) bool) bool

	// DeleteKeyFunc deletes the key.
	DeleteKeyFunc func(K)

	// ClearFunc deletes all keys.
	ClearFunc func()
}

// Get calls the GetFunc function.
func (c *FunctionsCache[K, V]) Get(key K) (V, bool) {
	if c.GetFunc == nil {
		return NopCache[K, V]{}.Get(key)
	}
	return c.GetFunc(key)
}

// GetOrSet calls the GetOrSetFunc function.
func (c *FunctionsCache[K, V]) GetOrSet(key K, value V) (V, bool) {
	if c.GetOrSetFunc == nil {
		return NopCache[K, V]{}.GetOrSet(key, value)
	}
	return c.GetOrSetFunc(key, value)
}

// DeleteFunc calls the DeleteIfFunc function.
func (c *FunctionsCache[K, V]) DeleteFunc(key K, cond func(V) bool) bool {
	if c.DeleteIfFunc == nil {
		return false
	}
	return c.DeleteIfFunc(key, cond)
}

// Delete calls the DeleteKeyFunc function.
func (c *FunctionsCache[K, V]) Delete(key K) {
	if c.DeleteKeyFunc != nil {
		c.DeleteKeyFunc(key)
	}
}

// Clear calls the ClearFunc function.
func (c *FunctionsCache[K, V]) Clear() {
	if c.ClearFunc != nil {
		c.ClearFunc()
	}
}
