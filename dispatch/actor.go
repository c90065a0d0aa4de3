package dispatch

import "github.com/taskwell/dispatch/executor"

// Actor serializes all access to a wrapped value through one private
// serial queue. Once wrapped, the value is owned by the actor: every read
// and write must go through an operation, and operations against the same
// actor never run concurrently with each other. Operations against
// different actors may run in parallel.
//
// Operations are typed closures over *T rather than invoke-by-name
// dispatch, so the operation set is checked at compile time.
//
// Type parameters:
//   - T: The wrapped value's type
type Actor[T any] struct {
	target *T
	queue  *executor.SerialQueue
}

// Wrap takes ownership of target and returns an actor for it. A nil target
// auto-instantiates a zero value of T. The actor's private serial queue is
// created once, here, named by the dispatcher's Labeler keyed on the
// wrapped value.
//
// Example:
//
//	type account struct{ balance int }
//	a := dispatch.Wrap(d, &account{balance: 100})
//	a.Sync(func(acc *account) error { acc.balance -= 40; return nil })
func Wrap[T any](d *Dispatcher, target *T) *Actor[T] {
	if target == nil {
		target = new(T)
	}
	return &Actor[T]{
		target: target,
		queue:  d.eng.SerialQueue(d.labeler.Labelize(target)),
	}
}

// Label returns the actor's serial-queue label.
func (a *Actor[T]) Label() string { return a.queue.Label() }

// Sync runs op on the actor's serial queue and blocks until it completes,
// returning its error. Semantically equivalent to calling op directly,
// with the guarantee that no other operation on this actor interleaves.
// A panic inside op surfaces here as an error; the queue stays usable.
//
// Calling Sync from within an operation on the same actor deadlocks.
func (a *Actor[T]) Sync(op func(*T) error) error {
	done := make(chan error, 1)
	a.queue.Async(func() {
		done <- guard(func() error { return op(a.target) })
	})
	return <-done
}

// Async runs op on the actor's serial queue without blocking the caller.
// If done is non-nil it receives op's error (nil on success) via a second
// task chained on the actor's queue, so completion logic is itself
// serialized with other operations.
func (a *Actor[T]) Async(op func(*T) error, done func(error)) {
	a.queue.Async(func() {
		err := guard(func() error { return op(a.target) })
		if done != nil {
			a.queue.Async(func() { done(err) })
		}
	})
}

// Call runs op synchronously on a's serial queue and returns its result.
// The value-returning form of Actor.Sync; package-level because Go methods
// cannot introduce type parameters.
func Call[T, R any](a *Actor[T], op func(*T) (R, error)) (R, error) {
	type outcome struct {
		value R
		err   error
	}
	done := make(chan outcome, 1)
	a.queue.Async(func() {
		v, err := guardValue(func() (R, error) { return op(a.target) })
		done <- outcome{value: v, err: err}
	})
	o := <-done
	return o.value, o.err
}

// CallAsync runs op on a's serial queue without blocking and delivers its
// result to done (which may be nil) via a chained task, like Actor.Async.
func CallAsync[T, R any](a *Actor[T], op func(*T) (R, error), done func(R, error)) {
	a.queue.Async(func() {
		v, err := guardValue(func() (R, error) { return op(a.target) })
		if done != nil {
			a.queue.Async(func() { done(v, err) })
		}
	})
}
