// Package panicutil converts panics in user supplied functions into errors.
package panicutil

import (
	"github.com/sourcegraph/conc/panics"
)

// Guard runs a function with the double defer sandwich.
// A panic is recovered and returned as *panics.ErrRecovered.
// runtime.Goexit cannot be stopped, so it is reported to OnGoexit before the goroutine exits.
type Guard struct {
	// OnGoexit is called when the function calls runtime.Goexit. Optional.
	OnGoexit func()
}

// Run calls f and returns its error, or the recovered panic.
func (g *Guard) Run(f func() error) (err error) {
	var (
		returned bool
		panicked bool
		rec      panics.Recovered
	)
	defer func() {
		if returned || panicked {
			return
		}
		// neither returned nor panicked: runtime.Goexit is unwinding the stack.
		if g.OnGoexit != nil {
			g.OnGoexit()
		}
	}()

	func() {
		defer func() {
			if !returned {
				rec = panics.NewRecovered(2, recover())
			}
		}()
		err = f()
		returned = true
	}()

	if !returned {
		panicked = true
		err = rec.AsError()
	}
	return err
}
