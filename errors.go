package dataloader

import "errors"

var (
	// ErrResultCountMismatch is the error for every key of a batch
	// whose BatchFunc returned a different number of results than keys.
	ErrResultCountMismatch = errors.New("batch function returned wrong number of results")

	// ErrGoexit is the error for every key of a batch whose BatchFunc called runtime.Goexit.
	ErrGoexit = errors.New("runtime.Goexit is called in batch function")
)
