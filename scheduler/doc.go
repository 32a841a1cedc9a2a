// Package scheduler provides the dispatch schedulers of the dataloader.
//
// A scheduler decides when a pending batch is passed to the batch function.
// Whatever the scheduler is, a batch is dispatched at the latest when one of its results is
// awaited, so the schedulers only differ in how early a batch may be dispatched:
//   - OnDemand: never early. A batch collects keys until a result is awaited or Loader.Dispatch is called.
//   - Window: after a fixed duration from the first key of the batch.
//   - Yield: as soon as the goroutines that are ready to run have had a chance to queue their keys.
package scheduler
