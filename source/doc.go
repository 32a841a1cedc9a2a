// Package source provides adapters to build a dataloader.BatchFunc from common shapes of data sources.
//
// Most data sources do not return one result per key in the order of the keys:
// a query returns the rows it found, in any order, and a key-value store returns a map.
// The adapters in this package align such results to the keys, and settle missing keys with ErrNotFound.
package source
