package dataloader_test

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/karupanerura/dataloader"
)

// batchRecorder records the keys of every call of a batch function.
type batchRecorder[K comparable] struct {
	mu    sync.Mutex
	calls [][]K
}

func (r *batchRecorder[K]) record(keys []K) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, slices.Clone(keys))
}

func (r *batchRecorder[K]) Calls() [][]K {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// valueBatch returns a batch function that loads "value<key>" for every key.
func valueBatch(r *batchRecorder[int]) dataloader.BatchFunc[int, string] {
	return func(_ context.Context, keys []int) ([]dataloader.Result[string], error) {
		r.record(keys)
		results := make([]dataloader.Result[string], len(keys))
		for i, key := range keys {
			results[i].Value = fmt.Sprintf("value%d", key)
		}
		return results, nil
	}
}

// waitSettled waits for the future to be settled without dispatching its batch.
func waitSettled[V any](t *testing.T, f *dataloader.Future[V], timeout time.Duration) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for !f.Settled() {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
	return true
}
