package dispatch

import "context"

// Future is a handle to a single asynchronous computation's eventual
// result. The computation runs at most once regardless of how many
// goroutines join the future; the result is written once by the worker and
// read-only afterwards.
//
// Type parameters:
//   - R: The result type produced by the computation
type Future[R any] struct {
	done  chan struct{} // closed exactly once, after value/err are set
	value R
	err   error
}

// Fork submits fn to the default-priority concurrent queue and returns a
// Future immediately; fn runs on a pool worker.
//
// Example:
//
//	f := dispatch.Fork(d, func() (string, error) {
//	    return fetch(url)
//	})
//	body, err := f.Get()
func Fork[R any](d *Dispatcher, fn func() (R, error)) *Future[R] {
	return ForkAt(d, PriorityDefault, fn)
}

// ForkAt is Fork on the concurrent queue of the given priority.
func ForkAt[R any](d *Dispatcher, p Priority, fn func() (R, error)) *Future[R] {
	f := &Future[R]{done: make(chan struct{})}
	d.eng.ConcurrentQueue(p).Async(func() {
		defer close(f.done)
		f.value, f.err = guardValue(fn)
	})
	return f
}

// Get blocks until the computation has completed, then returns its result.
// Subsequent calls return the cached result without blocking again. A panic
// in the computation surfaces here as an error.
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.value, f.err
}

// GetWithContext is Get but gives up when ctx is done. Abandoning the wait
// does not cancel the computation; a later Get still observes its result.
func (f *Future[R]) GetWithContext(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// Join blocks until the computation has completed and returns its error, if
// any. Use it when only ordering matters, not the value.
func (f *Future[R]) Join() error {
	<-f.done
	return f.err
}

// IsReady reports whether the result is available without blocking.
func (f *Future[R]) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
