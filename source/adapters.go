package source

import (
	"context"

	"github.com/sourcegraph/conc/iter"

	"github.com/karupanerura/dataloader"
)

// FromMap creates a batch function from a function that returns the found values as a map.
// The keys missing from the map fail with ErrNotFound.
func FromMap[K dataloader.KeyConstraint, V dataloader.ValueConstraint](f func(context.Context, []K) (map[K]V, error)) dataloader.BatchFunc[K, V] {
	return func(ctx context.Context, keys []K) ([]dataloader.Result[V], error) {
		m, err := f(ctx, keys)
		if err != nil {
			return nil, err
		}

		results := make([]dataloader.Result[V], len(keys))
		for i, key := range keys {
			if v, ok := m[key]; ok {
				results[i].Value = v
			} else {
				results[i].Err = ErrNotFound
			}
		}
		return results, nil
	}
}

// FromEntries creates a batch function from a function that returns the found entries in any order.
// The keys missing from the entries fail with ErrNotFound.
// If an entry is returned twice for a key, the last one wins.
func FromEntries[K dataloader.KeyConstraint, V dataloader.ValueConstraint](f func(context.Context, []K) ([]dataloader.Entry[K, V], error)) dataloader.BatchFunc[K, V] {
	return FromMap(func(ctx context.Context, keys []K) (map[K]V, error) {
		entries, err := f(ctx, keys)
		if err != nil {
			return nil, err
		}

		m := make(map[K]V, len(entries))
		for _, entry := range entries {
			m[entry.Key] = entry.Value
		}
		return m, nil
	})
}

// FromSingle creates a batch function from a function that loads a single key.
// The keys of a batch are loaded concurrently with at most maxGoroutines goroutines,
// or GOMAXPROCS goroutines if maxGoroutines is not positive.
// An error for a key fails only that key.
func FromSingle[K dataloader.KeyConstraint, V dataloader.ValueConstraint](f func(context.Context, K) (V, error), maxGoroutines int) dataloader.BatchFunc[K, V] {
	maxGoroutines = max(maxGoroutines, 0)
	return func(ctx context.Context, keys []K) ([]dataloader.Result[V], error) {
		mapper := iter.Mapper[K, dataloader.Result[V]]{MaxGoroutines: maxGoroutines}
		return mapper.Map(keys, func(key *K) dataloader.Result[V] {
			v, err := f(ctx, *key)
			return dataloader.Result[V]{Value: v, Err: err}
		}), nil
	}
}

// Lint wraps a batch function to validate that it follows the dataloader.BatchFunc contract.
// It panics if the batch function returns a different number of results than keys,
// or if keyOf is not nil and the key of a loaded value differs from the key at the same position.
// The loader fails the whole batch with the panic.
func Lint[K dataloader.KeyConstraint, V dataloader.ValueConstraint](f dataloader.BatchFunc[K, V], keyOf func(V) K) dataloader.BatchFunc[K, V] {
	return func(ctx context.Context, keys []K) ([]dataloader.Result[V], error) {
		results, err := f(ctx, keys)
		if err != nil {
			return nil, err
		}
		if len(results) != len(keys) {
			panic("must return results for all keys in the same order as the keys")
		}
		if keyOf == nil {
			return results, nil
		}
		for i, key := range keys {
			if results[i].Err == nil && keyOf(results[i].Value) != key {
				panic("key order mismatch")
			}
		}
		return results, nil
	}
}
