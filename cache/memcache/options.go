package memcache

import (
	"github.com/karupanerura/dataloader/internal/keyhash"
)

// DefaultBucketsSize is the default number of buckets in the cache.
var DefaultBucketsSize = 16

// Option is the interface for the options of the in-memory cache.
type Option[K comparable, V any] interface {
	apply(*options[K, V])
}

type optionFunc[K comparable, V any] func(*options[K, V])

func (f optionFunc[K, V]) apply(o *options[K, V]) {
	f(o)
}

// WithKeyHash sets the key hash function to the cache.
func WithKeyHash[K comparable, V any](f func(K) int) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.hashKey = f
	})
}

// WithBucketsSize sets the number of buckets in the cache.
// The number of buckets must be a natural number.
func WithBucketsSize[K comparable, V any](bucketsSize int) Option[K, V] {
	if bucketsSize <= 0 {
		panic("bucketsSize must be natural number")
	}
	return optionFunc[K, V](func(o *options[K, V]) {
		o.bucketsSize = bucketsSize
	})
}

type options[K comparable, V any] struct {
	hashKey     func(K) int
	bucketsSize int
}

func defaultOptions[K comparable, V any]() options[K, V] {
	return options[K, V]{
		bucketsSize: DefaultBucketsSize,
	}
}

func (o *options[K, V]) keyHash() func(K) int {
	if o.hashKey == nil {
		return keyhash.For[K]()
	}
	return o.hashKey
}
