package executor

import (
	"sync"
	"time"
)

// Group is a reusable aggregation point for independently submitted tasks.
// Its pending counter is the single source of truth: every AsyncGroup
// submission increments it, every completion decrements it, and Wait blocks
// until it reaches zero. Adding tasks after a Wait has returned is allowed;
// a later Wait only accounts for tasks added since the group last drained.
//
// A Group guarantees nothing about ordering among its members and does not
// aggregate their failures; it only tells you when all of them are done.
type Group struct {
	mu      sync.Mutex
	pending int
	idle    chan struct{} // closed whenever pending is zero
	notes   []note
}

type note struct {
	q    AsyncQueue
	task Task
}

// NewGroup creates an empty group. An empty group's Wait returns
// immediately.
func NewGroup() *Group {
	idle := make(chan struct{})
	close(idle)
	return &Group{idle: idle}
}

// enter records one more pending task. Called by the queues before the
// submission returns, so a Wait issued right after submitting cannot miss
// the task.
func (g *Group) enter() {
	g.mu.Lock()
	if g.pending == 0 {
		g.idle = make(chan struct{})
	}
	g.pending++
	g.mu.Unlock()
}

// leave records one task completion, releasing waiters and firing pending
// notifications when the count hits zero.
func (g *Group) leave() {
	g.mu.Lock()
	g.pending--
	var fire []note
	if g.pending == 0 {
		close(g.idle)
		fire = g.notes
		g.notes = nil
	}
	g.mu.Unlock()

	for _, n := range fire {
		n.q.Async(n.task)
	}
}

// Wait blocks until every task currently tracked by the group has finished.
// Safe to call from any number of goroutines and safe to call again after
// new tasks have been added.
func (g *Group) Wait() {
	g.mu.Lock()
	idle := g.idle
	g.mu.Unlock()
	<-idle
}

// WaitTimeout waits like Wait but gives up after d, returning
// ErrWaitTimeout. d <= 0 waits forever.
func (g *Group) WaitTimeout(d time.Duration) error {
	g.mu.Lock()
	idle := g.idle
	g.mu.Unlock()
	return waitUntil(idle, d, ErrWaitTimeout)
}

// Notify schedules task on q once the pending count reaches zero, without
// blocking the caller. With nothing pending the task is submitted right
// away. Tasks added to the group before it drains push the notification
// out with them; it fires at the next zero, whenever that comes.
func (g *Group) Notify(q AsyncQueue, task Task) {
	g.mu.Lock()
	if g.pending == 0 {
		g.mu.Unlock()
		q.Async(task)
		return
	}
	g.notes = append(g.notes, note{q: q, task: task})
	g.mu.Unlock()
}

// Pending returns the current pending-task count. Monitoring only; the
// value may be stale by the time the caller sees it.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending
}
