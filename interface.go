package dataloader

import (
	"context"
)

// KeyConstraint is an interface for key constraints.
type KeyConstraint interface {
	comparable
}

// ValueConstraint is an interface for value constraints.
type ValueConstraint interface {
	any
}

// Entry is a key-value pair.
type Entry[K KeyConstraint, V ValueConstraint] struct {
	// Key is the key of the entry.
	Key K

	// Value is the value associated with the key.
	Value V
}

// Result is the outcome of loading a single key in a batch.
type Result[V ValueConstraint] struct {
	// Value is the loaded value. It is ignored when Err is not nil.
	Value V

	// Err is the error for this key only.
	// Other keys in the same batch are not affected by it.
	Err error
}

// BatchFunc loads values for the given keys at once.
//
// The keys are never empty. They are usually unique, but a BatchFunc must not rely on that:
// a cache that does not deduplicate (e.g. cache.NopCache) passes repeated keys through.
//
// On success it must return exactly one Result per key, in the same order as the keys.
// A non-nil error fails every key of the batch with that error.
type BatchFunc[K KeyConstraint, V ValueConstraint] func(ctx context.Context, keys []K) ([]Result[V], error)

// Cache is an interface for the storage of loaded futures.
// Implementations must be thread-safe.
type Cache[K KeyConstraint, V ValueConstraint] interface {
	// Get retrieves a value by its key.
	Get(K) (V, bool)

	// GetOrSet stores the value only if the key does not exist yet.
	// It returns the existing value and true if the key exists,
	// otherwise the given value and false.
	GetOrSet(K, V) (V, bool)

	// DeleteFunc deletes the key only if it exists and the given function returns true for its value.
	// It reports whether the key is deleted.
	DeleteFunc(K, func(V) bool) bool

	// Delete deletes the key if it exists.
	Delete(K)

	// Clear deletes all keys.
	Clear()
}

// Scheduler decides when a pending batch is dispatched.
//
// Schedule is called once for each batch, right after its first key is queued.
// It may call dispatch at any time and from any goroutine, or never:
// a batch is also dispatched when one of its results is awaited, or by Loader.Dispatch.
// Calling dispatch for an already dispatched batch waits until that batch is settled.
type Scheduler interface {
	Schedule(dispatch func())
}
