package scheduler

import (
	"runtime"
	"time"
)

// Func is a function type that implements the dataloader.Scheduler interface.
type Func func(dispatch func())

// Schedule calls the function.
func (f Func) Schedule(dispatch func()) {
	f(dispatch)
}

// OnDemand is a scheduler that never dispatches by itself.
type OnDemand struct{}

// Schedule does nothing.
func (OnDemand) Schedule(func()) {}

// Window is a scheduler that dispatches a batch after a fixed duration
// from the first key of the batch.
type Window struct {
	// Duration is the length of the window.
	Duration time.Duration
}

// Schedule dispatches after the duration on another goroutine.
func (w Window) Schedule(dispatch func()) {
	time.AfterFunc(w.Duration, dispatch)
}

// Yield is a scheduler that dispatches a batch on a new goroutine
// after yielding the processor twice.
// Keys queued by goroutines that are runnable meanwhile join the batch.
type Yield struct{}

// Schedule dispatches on a new goroutine.
func (Yield) Schedule(dispatch func()) {
	go func() {
		runtime.Gosched()
		runtime.Gosched()
		dispatch()
	}()
}
