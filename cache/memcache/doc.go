// Package memcache provides an unbounded in-memory cache for the dataloader.
//
// Keys live until they are deleted, which fits loaders scoped to a single request.
// The cache can be distributed across multiple buckets to reduce lock contention
// between goroutines loading different keys.
package memcache
