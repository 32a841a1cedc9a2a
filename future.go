package dataloader

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Future is a value that is loaded later.
// It is settled exactly once, with either a value or an error,
// and can be awaited by any number of goroutines.
type Future[V ValueConstraint] struct {
	done   chan struct{}
	once   sync.Once
	value  V
	err    error
	cloner ValueCloner[V]

	// request asks for the owning batch to be dispatched. nil for settled futures.
	request func()
}

func newFuture[V ValueConstraint](cloner ValueCloner[V], request func()) *Future[V] {
	return &Future[V]{
		done:    make(chan struct{}),
		cloner:  cloner,
		request: request,
	}
}

func newSettledFuture[V ValueConstraint](cloner ValueCloner[V], value V, err error) *Future[V] {
	f := newFuture(cloner, nil)
	f.settle(value, err)
	return f
}

// settle stores the outcome. Only the first call has an effect.
func (f *Future[V]) settle(value V, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

func (f *Future[V]) resolve(value V) {
	f.settle(value, nil)
}

func (f *Future[V]) reject(err error) {
	var zero V
	f.settle(zero, err)
}

// Wait waits for the future to be settled and returns its value or error.
// If the batch of the future is not dispatched yet, Wait dispatches it.
//
// If the context is canceled before the future is settled, it returns the context error.
// The batch is not canceled by that.
func (f *Future[V]) Wait(ctx context.Context) (V, error) {
	f.requestDispatch()
	select {
	case <-f.done:
		return f.result()
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed when the future is settled.
// If the batch of the future is not dispatched yet, Done dispatches it.
func (f *Future[V]) Done() <-chan struct{} {
	f.requestDispatch()
	return f.done
}

// Settled reports whether the future is settled.
// Unlike Wait and Done, it never dispatches the batch.
func (f *Future[V]) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *Future[V]) requestDispatch() {
	if f.request != nil && !f.Settled() {
		f.request()
	}
}

// result must be called after done is closed.
func (f *Future[V]) result() (V, error) {
	if f.err != nil {
		var zero V
		return zero, f.err
	}
	return f.cloner.CloneValue(f.value), nil
}

// Join returns a future that is settled with the values of all the given futures, in the same order.
// If any of them fails, the joined future fails with the error that arrives first
// and does not wait for the others.
//
// Awaiting the joined future dispatches the batches of all the given futures.
// Nothing runs until then, so an ignored joined future holds no goroutine.
func Join[V ValueConstraint](futures ...*Future[V]) *Future[[]V] {
	var (
		joined *Future[[]V]
		start  sync.Once
	)
	joined = newFuture[[]V](NopValueCloner[[]V]{}, func() {
		start.Do(func() {
			go join(joined, futures)
		})
		for _, f := range futures {
			f.requestDispatch()
		}
	})
	return joined
}

// join settles joined with the values of the futures.
func join[V ValueConstraint](joined *Future[[]V], futures []*Future[V]) {
	eg, ctx := errgroup.WithContext(context.Background())
	values := make([]V, len(futures))
	for i, f := range futures {
		eg.Go(func() error {
			select {
			case <-f.done:
			case <-ctx.Done():
				return nil
			}

			v, err := f.result()
			if err != nil {
				return err
			}
			values[i] = v
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		joined.reject(err)
		return
	}
	joined.resolve(values)
}
