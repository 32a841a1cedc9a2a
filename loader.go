package dataloader

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/karupanerura/dataloader/cache/memcache"
	"github.com/karupanerura/dataloader/internal/panicutil"
	"github.com/karupanerura/dataloader/scheduler"
)

const tracerName = "github.com/karupanerura/dataloader"

// Loader batches and caches loads of keys.
//
// Keys loaded before a batch is dispatched are passed to the batch function at once,
// and the loaded futures are cached by key, so that a key is loaded only once
// until it is cleared from the cache.
type Loader[K KeyConstraint, V ValueConstraint] struct {
	batchFn   BatchFunc[K, V]
	cache     Cache[K, *Future[V]]
	scheduler Scheduler
	cloner    ValueCloner[V]
	context   func() context.Context
	tracer    trace.Tracer

	mu      sync.Mutex
	pending *batch[K, V]
}

// batch is the queue of a single dispatch.
type batch[K KeyConstraint, V ValueConstraint] struct {
	entries  []entry[K, V]
	detached bool

	// done is closed when every entry is settled.
	done chan struct{}
}

type entry[K KeyConstraint, V ValueConstraint] struct {
	key    K
	future *Future[V]
}

// New creates a new Loader with the batch function.
func New[K KeyConstraint, V ValueConstraint](batchFn BatchFunc[K, V], opts ...Option[K, V]) *Loader[K, V] {
	l := &Loader[K, V]{
		batchFn: batchFn,
		context: context.Background,
		tracer:  otel.Tracer(tracerName),
	}
	for _, o := range opts {
		o.apply(l)
	}
	if l.cache == nil {
		l.cache = memcache.New[K, *Future[V]](memcache.WithBucketsSize[K, *Future[V]](1))
	}
	if l.scheduler == nil {
		l.scheduler = scheduler.OnDemand{}
	}
	if l.cloner == nil {
		l.cloner = NopValueCloner[V]{}
	}
	return l
}

// Load returns the future of the value for the key.
//
// If the key is cached, it returns the cached future as is.
// Otherwise the key is queued to the pending batch, and the new future is cached.
// The batch is dispatched by the scheduler, by Dispatch, or when a future of it is awaited,
// whichever comes first.
func (l *Loader[K, V]) Load(key K) *Future[V] {
	if f, ok := l.cache.Get(key); ok {
		return f
	}

	l.mu.Lock()
	b := l.pending
	opened := b == nil
	if opened {
		b = &batch[K, V]{done: make(chan struct{})}
	}

	f := newFuture(l.cloner, func() {
		l.dispatchAsync(b)
	})
	if cached, loaded := l.cache.GetOrSet(key, f); loaded {
		l.mu.Unlock()
		return cached
	}

	b.entries = append(b.entries, entry[K, V]{key: key, future: f})
	if opened {
		l.pending = b
	}
	l.mu.Unlock()

	if opened {
		l.scheduler.Schedule(func() {
			l.dispatch(b)
		})
	}
	return f
}

// LoadMany loads the keys and returns the future of their values in the same order.
// The future fails with the first error of the keys.
// A key repeated in the keys is loaded only once, as long as the cache keeps it.
func (l *Loader[K, V]) LoadMany(keys []K) *Future[[]V] {
	return Join(lo.Map(keys, func(key K, _ int) *Future[V] {
		return l.Load(key)
	})...)
}

// Clear removes the key from the cache.
// The next Load of the key is loaded again.
// A batch already dispatched for the key still settles the future returned before.
func (l *Loader[K, V]) Clear(key K) {
	l.cache.Delete(key)
}

// ClearAll removes all keys from the cache.
func (l *Loader[K, V]) ClearAll() {
	l.cache.Clear()
}

// Prime stores the value for the key without loading it.
// If the key is already cached, it does nothing and returns false.
func (l *Loader[K, V]) Prime(key K, value V) bool {
	_, loaded := l.cache.GetOrSet(key, newSettledFuture(l.cloner, value, nil))
	return !loaded
}

// PrimeError stores the error for the key without loading it.
// If the key is already cached, it does nothing and returns false.
func (l *Loader[K, V]) PrimeError(key K, err error) bool {
	var zero V
	_, loaded := l.cache.GetOrSet(key, newSettledFuture(l.cloner, zero, err))
	return !loaded
}

// Dispatch dispatches the pending batch, if any, and waits until its futures are settled.
// The batch function runs on the calling goroutine, so runtime.Goexit in it exits the caller too.
// If the batch is being dispatched by another goroutine meanwhile, Dispatch waits for it instead.
func (l *Loader[K, V]) Dispatch() {
	l.mu.Lock()
	b := l.pending
	l.mu.Unlock()

	if b != nil {
		l.dispatch(b)
	}
}

// dispatch runs the batch on the current goroutine,
// or waits for it if it is already dispatched.
func (l *Loader[K, V]) dispatch(b *batch[K, V]) {
	if entries, ok := l.detach(b); ok {
		l.execute(b, entries)
		return
	}
	<-b.done
}

// dispatchAsync runs the batch on a new goroutine.
func (l *Loader[K, V]) dispatchAsync(b *batch[K, V]) {
	if entries, ok := l.detach(b); ok {
		go l.execute(b, entries)
	}
}

// detach takes the entries out of the batch so that no more keys are queued to it.
// It returns false if the batch is already detached.
func (l *Loader[K, V]) detach(b *batch[K, V]) ([]entry[K, V], bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b.detached {
		return nil, false
	}
	b.detached = true
	if l.pending == b {
		l.pending = nil
	}

	entries := b.entries
	b.entries = nil
	return entries, true
}

// execute calls the batch function with the keys of the entries and settles their futures.
func (l *Loader[K, V]) execute(b *batch[K, V], entries []entry[K, V]) {
	defer close(b.done)

	ctx, span := l.tracer.Start(l.context(), "dataloader.Batch", trace.WithAttributes(
		attribute.Int("dataloader.batch.keys", len(entries)),
	))
	defer span.End()

	guard := panicutil.Guard{
		OnGoexit: func() {
			l.fail(span, entries, ErrGoexit)
		},
	}

	keys := lo.Map(entries, func(e entry[K, V], _ int) K {
		return e.key
	})

	var results []Result[V]
	if err := guard.Run(func() (err error) {
		results, err = l.batchFn(ctx, keys)
		return
	}); err != nil {
		l.fail(span, entries, err)
		return
	}
	if len(results) != len(keys) {
		l.fail(span, entries, fmt.Errorf("%w: %d results for %d keys", ErrResultCountMismatch, len(results), len(keys)))
		return
	}

	failed := 0
	for i, e := range entries {
		if err := results[i].Err; err != nil {
			e.future.reject(err)
			failed++
		} else {
			e.future.resolve(results[i].Value)
		}
	}
	span.SetAttributes(attribute.Int("dataloader.batch.failed_keys", failed))
}

// fail rejects all the entries with the error.
// Their keys are removed from the cache so that they can be loaded again,
// unless the cache already holds another future for the key.
func (l *Loader[K, V]) fail(span trace.Span, entries []entry[K, V], err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	for _, e := range entries {
		l.cache.DeleteFunc(e.key, func(f *Future[V]) bool {
			return f == e.future
		})
		e.future.reject(err)
	}
}
