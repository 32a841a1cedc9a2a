package memcache_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/karupanerura/dataloader"
	"github.com/karupanerura/dataloader/cache/cachetest"
	"github.com/karupanerura/dataloader/cache/memcache"
)

var _ dataloader.Cache[uint8, struct{}] = (*memcache.Cache[uint8, struct{}])(nil)

func BenchmarkGetOrSet(b *testing.B) {
	keys := make([]uint8, 1024)
	for i := range keys {
		keys[i] = uint8(i % 256)
	}

	b.Run("SingleBucket", func(b *testing.B) {
		cachetest.BenchmarkGetOrSet[uint8, int8](b, memcache.New(memcache.WithBucketsSize[uint8, int8](1)), keys)
	})
	b.Run("MultipleBucket", func(b *testing.B) {
		cachetest.BenchmarkGetOrSet[uint8, int8](b, memcache.New(memcache.WithKeyHash[uint8, int8](func(u uint8) int {
			return int(u)
		})), keys)
	})
}

func TestCache(t *testing.T) {
	t.Parallel()
	for i := range 7 {
		t.Run(strconv.Itoa(i+1), func(t *testing.T) {
			t.Parallel()

			cachetest.Run(t, func() (dataloader.Cache[uint8, int8], func()) {
				return memcache.New(memcache.WithBucketsSize[uint8, int8](i + 1)), func() {}
			})
		})
	}
}

func TestKeyHash(t *testing.T) {
	t.Parallel()
	for i := range 7 {
		t.Run(strconv.Itoa(i+1), func(t *testing.T) {
			t.Parallel()

			bucketsSize := i + 1
			cachetest.Run(t, func() (dataloader.Cache[uint8, int8], func()) {
				return memcache.New(
					memcache.WithBucketsSize[uint8, int8](bucketsSize),
					memcache.WithKeyHash[uint8, int8](func(key uint8) int {
						return -int(key) // negative hashes must be handled too
					}),
				), func() {}
			})
		})
	}
}

func TestCompositeKey(t *testing.T) {
	t.Parallel()

	type key struct {
		Tenant string
		ID     int
	}

	c := memcache.New[key, string]()
	c.GetOrSet(key{"a", 1}, "a1")
	c.GetOrSet(key{"b", 1}, "b1")

	if v, ok := c.Get(key{"a", 1}); !ok || v != "a1" {
		t.Errorf("Get = (%q, %v), want (\"a1\", true)", v, ok)
	}
	if n := c.Len(); n != 2 {
		t.Errorf("Len = %d, want 2", n)
	}
	c.Clear()
	if n := c.Len(); n != 0 {
		t.Errorf("Len = %d after Clear, want 0", n)
	}
}

func TestSignedZeroKey(t *testing.T) {
	t.Parallel()

	c := memcache.New[float64, string]()
	c.GetOrSet(0, "zero")
	v, loaded := c.GetOrSet(math.Copysign(0, -1), "negative zero")
	if !loaded || v != "zero" {
		t.Errorf("GetOrSet(-0) = (%q, %v), want (\"zero\", true)", v, loaded)
	}
	if n := c.Len(); n != 1 {
		t.Errorf("Len = %d, want 1", n)
	}
}
