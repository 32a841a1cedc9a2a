package timedcache

import (
	"github.com/jellydator/ttlcache/v3"
)

// Option is the interface for the options of the Cache.
type Option[K comparable, V any] interface {
	apply(*options[K, V])
}

type options[K comparable, V any] struct {
	ttlOptions []ttlcache.Option[K, V]
	touchOnHit bool
}

type optionFunc[K comparable, V any] func(*options[K, V])

func (f optionFunc[K, V]) apply(o *options[K, V]) {
	f(o)
}

// WithCapacity limits the number of keys.
// The key that expires soonest is evicted when the cache is full.
// Zero means no limit, which is the default.
func WithCapacity[K comparable, V any](capacity uint64) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.ttlOptions = append(o.ttlOptions, ttlcache.WithCapacity[K, V](capacity))
	})
}

// WithTouchOnHit extends the lifetime of a key every time it is retrieved.
// By default the lifetime is fixed when the key is stored.
func WithTouchOnHit[K comparable, V any]() Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.touchOnHit = true
	})
}
