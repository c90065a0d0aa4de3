// Package executor provides the task-dispatch engine underneath the
// coordination layer: priority-bucketed concurrent queues, FIFO serial
// queues, reusable task groups, and a blocking parallel-apply primitive,
// all running on one shared pool of worker goroutines.
//
// # Queues
//
// Two queue disciplines exist. Concurrent queues are bucketed by Priority;
// their tasks may run in parallel in no guaranteed order, and workers drain
// higher-priority buckets first. Serial queues run at most one task at a
// time, in submission order, and still execute on the shared pool rather
// than a dedicated goroutine.
//
//	e := executor.New(executor.WithWorkerCount(8))
//	defer e.Shutdown(5 * time.Second)
//
//	q := e.ConcurrentQueue(executor.PriorityDefault)
//	q.Async(func() { doWork() })
//
//	s := e.SerialQueue("app.mailbox.0x1234")
//	s.Async(func() { ordered() })
//
// # Groups
//
// A Group is a reusable aggregation point with a pending counter.
// Submissions tracked by the group increment the counter; Wait blocks until
// it reaches zero. Tasks may keep being added after a Wait returns; a later
// Wait only accounts for tasks added since the group last drained.
//
//	g := executor.NewGroup()
//	q.AsyncGroup(g, taskA)
//	q.AsyncGroup(g, taskB)
//	g.Wait()
//
// # Failure containment
//
// Every submitted task runs under panic recovery. A panicking task never
// kills a worker and never wedges a serial queue; the panic and its stack
// are reported through the debug logger (build with -tags debug).
//
// The pool performs no preemptive cancellation: once submitted, a task runs
// to completion. Shutdown drains all queued work before returning.
package executor
