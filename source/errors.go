package source

import "errors"

// ErrNotFound is the error for a key that the source did not return.
var ErrNotFound = errors.New("not found")
