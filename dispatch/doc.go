// Package dispatch provides four concurrency idioms on top of the executor
// engine: fire-and-forget async execution, one-shot futures, reusable task
// groups, and serialized actors, plus a chunked parallel range iterator.
//
// A Dispatcher binds the idioms to one executor:
//
//	e := executor.New()
//	defer e.Shutdown(0)
//	d := dispatch.New(e)
//
// # Futures
//
// Fork submits a computation once and hands back a typed handle:
//
//	f := dispatch.Fork(d, func() (int, error) { return expensive(), nil })
//	v, err := f.Get() // blocks until first completion, cached afterwards
//
// # Groups
//
// A Group aggregates independently submitted tasks and supports repeated
// waits:
//
//	g := d.NewGroup().Go(taskA).Go(taskB)
//	g.Wait()
//	g.Go(taskC) // reuse after a wait is fine
//	g.Wait()
//
// # Actors
//
// Wrap takes exclusive ownership of a value and serializes every operation
// against it through a private serial queue, named via the dispatcher's
// Labeler for traceability:
//
//	type counter struct{ n int }
//	a := dispatch.Wrap(d, &counter{})
//	a.Sync(func(c *counter) error { c.n++; return nil })
//	total, _ := dispatch.Call(a, func(c *counter) (int, error) { return c.n, nil })
//
// Operations against the same actor never interleave; operations against
// different actors may run in parallel. Calling a synchronous operation
// from inside another operation on the same actor deadlocks, as with any
// serialized-dispatch system.
//
// # Chunked iteration
//
// Upto splits [0, count] into step-sized chunks fanned out across the pool,
// with a sequential tail for the remainder:
//
//	d.Upto(1_000_000, 4096, func(i int) { process(i) })
//
// Fork, Wrap and Call are generic, so results stay typed end to end.
package dispatch
