// Package timedcache provides a cache for the loader whose keys expire after a fixed time.
//
// A key is loaded again by the first Load after it expires, so that a long-lived loader
// does not serve stale values forever. Failed keys are removed by the loader immediately.
package timedcache
