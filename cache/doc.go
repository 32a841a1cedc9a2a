// Package cache provides cache adapters for the dataloader.
//
// This package contains NopCache, which disables caching and deduplication entirely,
// and FunctionsCache, which allows building custom caches using function callbacks.
//
// The implementations for actual use are in the sub packages:
//   - memcache: an unbounded in-memory cache, the default of the loader.
//   - lrucache: a cache bounded by the number of keys.
//   - timedcache: a cache whose keys expire after a fixed duration.
package cache
