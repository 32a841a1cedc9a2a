package dataloader

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Option is the interface for the options of the Loader.
type Option[K KeyConstraint, V ValueConstraint] interface {
	apply(*Loader[K, V])
}

type optionFunc[K KeyConstraint, V ValueConstraint] func(*Loader[K, V])

func (f optionFunc[K, V]) apply(l *Loader[K, V]) {
	f(l)
}

// WithCache sets the cache of the loaded futures to the loader.
// The default cache is an unbounded in-memory cache (memcache) with a single bucket.
func WithCache[K KeyConstraint, V ValueConstraint](cache Cache[K, *Future[V]]) Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		l.cache = cache
	})
}

// WithScheduler sets the scheduler to the loader.
// The default scheduler is scheduler.OnDemand.
func WithScheduler[K KeyConstraint, V ValueConstraint](scheduler Scheduler) Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		l.scheduler = scheduler
	})
}

// WithValueCloner sets the value cloner to the loader.
// Every Wait of a future returns a value cloned by it.
// The default value cloner is NopValueCloner.
func WithValueCloner[K KeyConstraint, V ValueConstraint](cloner ValueCloner[V]) Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		l.cloner = cloner
	})
}

// WithBackgroundContextProvider sets the context provider to the loader.
// The batch function is called with the context from the provider.
// The provider must return a new context for each call.
// The default context provider is context.Background.
func WithBackgroundContextProvider[K KeyConstraint, V ValueConstraint](provider func() context.Context) Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		l.context = provider
	})
}

// WithTracerProvider sets the tracer provider to the loader.
// The default is the global tracer provider.
func WithTracerProvider[K KeyConstraint, V ValueConstraint](provider trace.TracerProvider) Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		l.tracer = provider.Tracer(tracerName)
	})
}
