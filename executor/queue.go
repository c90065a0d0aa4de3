package executor

import "sync"

// AsyncQueue is the submission surface shared by concurrent and serial
// queues. Group.Notify and the coordination layer accept any AsyncQueue.
type AsyncQueue interface {
	// Async submits a task for asynchronous execution and returns
	// immediately.
	Async(task Task)
	// AsyncGroup submits a task tracked by the given group.
	AsyncGroup(g *Group, task Task)
}

// ConcurrentQueue feeds one priority bucket of the shared pool. Its tasks
// may run in parallel, in no guaranteed order. Obtain one from
// Executor.ConcurrentQueue.
type ConcurrentQueue struct {
	e        *Executor
	priority Priority
}

// Priority returns the bucket this queue feeds.
func (q *ConcurrentQueue) Priority() Priority { return q.priority }

// Async submits a task for asynchronous execution. The call returns
// immediately; the task runs on a pool worker, throttled by the executor's
// rate limiter if one is configured.
func (q *ConcurrentQueue) Async(task Task) {
	q.e.submit(q.priority, func() {
		q.e.throttle()
		runSafe(task)
	})
}

// AsyncGroup submits a task as a member of g. The group's pending count is
// incremented before the call returns and decremented when the task
// finishes, panics included.
func (q *ConcurrentQueue) AsyncGroup(g *Group, task Task) {
	g.enter()
	q.e.submit(q.priority, func() {
		defer g.leave()
		q.e.throttle()
		runSafe(task)
	})
}

// Apply fans task(i) out across the pool for i in [0, n) and blocks until
// every unit has finished. Units run in parallel in no guaranteed order.
// n <= 0 returns immediately.
func (q *ConcurrentQueue) Apply(n int, task func(i int)) {
	if n <= 0 {
		return
	}
	g := NewGroup()
	for i := 0; i < n; i++ {
		i := i
		q.AsyncGroup(g, func() { task(i) })
	}
	g.Wait()
}

// SerialQueue runs its tasks in FIFO order, at most one at a time, on the
// shared pool. A drain step is scheduled on the default priority bucket
// whenever the queue goes from empty to non-empty; the step runs the head
// task and reschedules itself while work remains, so the queue never holds
// a worker it is not actively using.
type SerialQueue struct {
	e     *Executor
	label string

	mu     sync.Mutex
	queue  []Task
	active bool
}

// Label returns the identifier the queue was created with.
func (q *SerialQueue) Label() string { return q.label }

// Async appends a task to the queue and returns immediately.
func (q *SerialQueue) Async(task Task) {
	q.enqueue(func() { runSafe(task) })
}

// AsyncGroup appends a task tracked by g.
func (q *SerialQueue) AsyncGroup(g *Group, task Task) {
	g.enter()
	q.enqueue(func() {
		defer g.leave()
		runSafe(task)
	})
}

// Len returns the number of tasks waiting or running. Approximate under
// concurrent submission; useful for monitoring only.
func (q *SerialQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.queue)
	if q.active {
		n++
	}
	return n
}

func (q *SerialQueue) enqueue(wrapped Task) {
	q.mu.Lock()
	q.queue = append(q.queue, wrapped)
	kick := !q.active
	if kick {
		q.active = true
	}
	q.mu.Unlock()

	if kick {
		// A full bucket must not block the submitter (which may itself be
		// a pool worker), so overflow drains on a fresh goroutine.
		if !q.e.trySubmit(PriorityDefault, q.drainOne) {
			go q.drainOne()
		}
	}
}

// drainOne runs one task per pool slot, then either reschedules itself or
// parks; that keeps one slow serial queue from starving the bucket. When
// the bucket is full the reschedule would block a worker, so draining
// continues inline instead.
func (q *SerialQueue) drainOne() {
	for {
		q.mu.Lock()
		head := q.queue[0]
		q.queue = q.queue[1:]
		q.mu.Unlock()

		head()

		q.mu.Lock()
		more := len(q.queue) > 0
		if !more {
			q.active = false
		}
		q.mu.Unlock()

		if !more {
			return
		}
		if q.e.trySubmit(PriorityDefault, q.drainOne) {
			return
		}
	}
}
