// cachetest package provides generic test cases for cache implementations.
package cachetest

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"github.com/karupanerura/dataloader"
)

// Provider creates a new empty cache and the function to release it.
type Provider func() (dataloader.Cache[uint8, int8], func())

// BenchmarkGetOrSet benchmarks the GetOrSet method of the cache.
func BenchmarkGetOrSet[K dataloader.KeyConstraint, V dataloader.ValueConstraint](b *testing.B, cache dataloader.Cache[K, V], keys []K) {
	var zero V
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.GetOrSet(keys[i%len(keys)], zero)
	}
}

// Run runs all the test cases.
func Run(t *testing.T, provider Provider) {
	TestConsistency(t, provider)
	TestGetOrSetRace(t, provider)
	TestDelete(t, provider)
}

// TestConsistency tests that stored values are read back, including concurrent accesses.
func TestConsistency(t *testing.T, provider Provider) {
	t.Run("Consistency", func(t *testing.T) {
		t.Parallel()

		cache, release := provider()
		defer release()

		patterns := []dataloader.Entry[uint8, int8]{
			{0, 1},
			{1, 2},
			{2, 3},
			{3, 4},
			{4, 5},
			{251, 124},
			{252, 125},
			{253, 126},
			{254, 127},
			{255, -128},
		}
		rand.Shuffle(len(patterns), func(i, j int) {
			patterns[i], patterns[j] = patterns[j], patterns[i]
		})

		var eg errgroup.Group
		for _, pattern := range patterns {
			eg.Go(func() error {
				if v, ok := cache.Get(pattern.Key); ok {
					return fmt.Errorf("unexpected exists value %d for key %d", v, pattern.Key)
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			t.Fatal(err)
		}

		eg = errgroup.Group{}
		for _, pattern := range patterns {
			eg.Go(func() error {
				if v, loaded := cache.GetOrSet(pattern.Key, pattern.Value); loaded {
					return fmt.Errorf("unexpected loaded value %d for key %d", v, pattern.Key)
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			t.Fatal(err)
		}

		eg = errgroup.Group{}
		entries := make([]dataloader.Entry[uint8, int8], len(patterns))
		for i, pattern := range patterns {
			eg.Go(func() error {
				v, ok := cache.Get(pattern.Key)
				if !ok {
					return fmt.Errorf("missing key %d", pattern.Key)
				}
				entries[i] = dataloader.Entry[uint8, int8]{Key: pattern.Key, Value: v}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			t.Fatal(err)
		}

		if df := cmp.Diff(patterns, entries); df != "" {
			t.Errorf("entries diff=%s", df)
		}

		// GetOrSet never overwrites
		for _, pattern := range patterns {
			v, loaded := cache.GetOrSet(pattern.Key, 0)
			if !loaded || v != pattern.Value {
				t.Errorf("GetOrSet(%d) = (%d, %v), want (%d, true)", pattern.Key, v, loaded, pattern.Value)
			}
		}
	})
}

// TestGetOrSetRace tests that exactly one of concurrent GetOrSet calls for the same key stores its value.
func TestGetOrSetRace(t *testing.T, provider Provider) {
	t.Run("GetOrSetRace", func(t *testing.T) {
		t.Parallel()

		cache, release := provider()
		defer release()

		const concurrency = 32
		var stored atomic.Int32
		values := make([]int8, concurrency)

		var eg errgroup.Group
		for i := range concurrency {
			eg.Go(func() error {
				v, loaded := cache.GetOrSet(7, int8(i))
				if !loaded {
					stored.Add(1)
				}
				values[i] = v
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			t.Fatal(err)
		}

		if n := stored.Load(); n != 1 {
			t.Errorf("value is stored %d times, want 1", n)
		}
		for i, v := range values {
			if v != values[0] {
				t.Errorf("values[%d] = %d, but values[0] = %d", i, v, values[0])
			}
		}
	})
}

// TestDelete tests DeleteFunc, Delete and Clear.
func TestDelete(t *testing.T, provider Provider) {
	t.Run("Delete", func(t *testing.T) {
		t.Parallel()

		cache, release := provider()
		defer release()

		for k := range uint8(10) {
			cache.GetOrSet(k, int8(k))
		}

		if cache.DeleteFunc(1, func(v int8) bool { return v == 100 }) {
			t.Error("DeleteFunc must not delete the key when the condition is false")
		}
		if _, ok := cache.Get(1); !ok {
			t.Error("key 1 must remain")
		}
		if !cache.DeleteFunc(1, func(v int8) bool { return v == 1 }) {
			t.Error("DeleteFunc must delete the key when the condition is true")
		}
		if _, ok := cache.Get(1); ok {
			t.Error("key 1 must be deleted")
		}
		if cache.DeleteFunc(1, func(int8) bool { return true }) {
			t.Error("DeleteFunc must return false for a missing key")
		}

		cache.Delete(2)
		if _, ok := cache.Get(2); ok {
			t.Error("key 2 must be deleted")
		}
		cache.Delete(2)

		cache.Clear()
		for k := range uint8(10) {
			if _, ok := cache.Get(k); ok {
				t.Errorf("key %d must be cleared", k)
			}
		}

		if _, loaded := cache.GetOrSet(3, 33); loaded {
			t.Error("cleared key must be stored again")
		}
	})
}
