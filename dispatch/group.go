package dispatch

import (
	"time"

	"github.com/taskwell/dispatch/executor"
)

// Group aggregates outstanding async tasks so a caller can wait for all of
// them at once. It wraps the engine's pending-count protocol and stays
// reusable: tasks may keep being added after a Wait has returned, and a
// later Wait only accounts for tasks added since the group last drained.
//
// Ordering among member tasks is unspecified. Member failures are not
// aggregated; keep per-task Futures alongside the group if you need them.
type Group struct {
	d *Dispatcher
	g *executor.Group
}

// NewGroup creates an empty group. Its Wait returns immediately until a
// task is added.
func (d *Dispatcher) NewGroup() *Group {
	return &Group{d: d, g: executor.NewGroup()}
}

// Group creates a new group and submits task to it at default priority.
// Shorthand for d.NewGroup().Go(task).
func (d *Dispatcher) Group(task func()) *Group {
	return d.NewGroup().Go(task)
}

// Go submits task to the default-priority concurrent queue as a member of
// the group and returns the group for chaining.
func (g *Group) Go(task func()) *Group {
	return g.GoAt(PriorityDefault, task)
}

// GoAt is Go on the concurrent queue of the given priority.
func (g *Group) GoAt(p Priority, task func()) *Group {
	g.d.eng.ConcurrentQueue(p).AsyncGroup(g.g, task)
	return g
}

// Wait blocks until every task currently tracked by the group has
// finished. Safe to call repeatedly and from multiple goroutines.
func (g *Group) Wait() {
	g.g.Wait()
}

// WaitTimeout waits like Wait but returns ErrWaitTimeout once d elapses.
// d <= 0 waits forever.
func (g *Group) WaitTimeout(d time.Duration) error {
	return g.g.WaitTimeout(d)
}

// Notify schedules task on the default-priority concurrent queue once all
// currently pending group tasks finish, without blocking the caller.
func (g *Group) Notify(task func()) {
	g.NotifyOn(g.d.eng.ConcurrentQueue(PriorityDefault), task)
}

// NotifyOn is Notify targeting an explicit queue, serial queues included.
func (g *Group) NotifyOn(q executor.AsyncQueue, task func()) {
	g.g.Notify(q, task)
}

// Pending returns the group's current pending-task count. Monitoring only.
func (g *Group) Pending() int {
	return g.g.Pending()
}
