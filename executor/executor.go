package executor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Task is the unit of work submitted to a queue. Tasks carry their captured
// state themselves; the engine never inspects them.
type Task func()

// Priority selects the concurrent-queue bucket a task lands in. Workers
// drain higher buckets first, but tasks within a bucket run in no
// guaranteed order.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityDefault
	PriorityHigh

	numPriorities = 3
)

var (
	ErrShutdownTimeout = errors.New("executor: shutdown timeout reached")
	ErrWaitTimeout     = errors.New("executor: group wait timeout reached")
	ErrAlreadyStopped  = errors.New("executor: already shut down")
)

// Executor is the shared thread pool plus the queue surface built on it.
// Create one with New; it starts its workers immediately and accepts
// submissions until Shutdown.
//
// Example:
//
//	e := executor.New(executor.WithWorkerCount(4))
//	defer e.Shutdown(0)
//
//	e.ConcurrentQueue(executor.PriorityHigh).Async(func() { work() })
type Executor struct {
	cfg     *config
	buckets [numPriorities]chan Task
	conc    [numPriorities]*ConcurrentQueue

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{} // closed once every worker has drained and exited

	stopMu  sync.RWMutex
	stopped atomic.Bool
}

// New creates an executor and starts its workers. The workers are launched
// through an errgroup and exit only after Shutdown has closed the buckets
// and all queued tasks have drained.
func New(opts ...Option) *Executor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.taskBuffer == 0 {
		cfg.taskBuffer = cfg.workerCount
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Executor{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	for p := range e.buckets {
		e.buckets[p] = make(chan Task, cfg.taskBuffer)
		e.conc[p] = &ConcurrentQueue{e: e, priority: Priority(p)}
	}

	var g errgroup.Group
	for w := 0; w < cfg.workerCount; w++ {
		g.Go(func() error {
			e.worker()
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(e.done)
	}()

	return e
}

// ConcurrentQueue returns the shared concurrent queue for the given
// priority. The same queue value is returned for every call with the same
// priority; queues have no state of their own beyond the bucket they feed.
func (e *Executor) ConcurrentQueue(p Priority) *ConcurrentQueue {
	if p < PriorityLow || p > PriorityHigh {
		p = PriorityDefault
	}
	return e.conc[p]
}

// SerialQueue creates a new serial queue identified by label. Tasks
// submitted to it run on the shared pool, in FIFO order, at most one at a
// time. Each call creates a distinct queue even for equal labels; the label
// exists for traceability, not identity.
func (e *Executor) SerialQueue(label string) *SerialQueue {
	return &SerialQueue{e: e, label: label}
}

// Shutdown stops accepting new work and waits for all queued tasks to
// finish. timeout <= 0 waits forever; otherwise ErrShutdownTimeout is
// returned once it expires (queued tasks keep draining in the background).
// Tasks submitted after Shutdown run synchronously on the submitting
// goroutine so no work is silently dropped.
func (e *Executor) Shutdown(timeout time.Duration) error {
	e.stopMu.Lock()
	if !e.stopped.CompareAndSwap(false, true) {
		e.stopMu.Unlock()
		return ErrAlreadyStopped
	}
	for _, bucket := range e.buckets {
		close(bucket)
	}
	e.stopMu.Unlock()

	err := waitUntil(e.done, timeout, ErrShutdownTimeout)
	e.cancel()
	return err
}

// submit hands a pre-wrapped task to the given bucket. Once the executor is
// stopped the task runs on the caller instead; recovery wrapping makes that
// safe.
func (e *Executor) submit(p Priority, task Task) {
	e.stopMu.RLock()
	if e.stopped.Load() {
		e.stopMu.RUnlock()
		task()
		return
	}
	e.buckets[p] <- task
	e.stopMu.RUnlock()
}

// trySubmit is submit without blocking: a full bucket reports false and the
// task is not taken. After shutdown the task runs on the caller, as with
// submit.
func (e *Executor) trySubmit(p Priority, task Task) bool {
	e.stopMu.RLock()
	if e.stopped.Load() {
		e.stopMu.RUnlock()
		task()
		return true
	}
	select {
	case e.buckets[p] <- task:
		e.stopMu.RUnlock()
		return true
	default:
		e.stopMu.RUnlock()
		return false
	}
}

// worker pulls tasks until shutdown has drained every bucket.
func (e *Executor) worker() {
	for {
		task, ok := e.take()
		if !ok {
			return
		}
		task()
	}
}

// take returns the next task, preferring higher-priority buckets. It blocks
// while the executor is running and no work is queued. After Shutdown the
// closed buckets keep delivering their leftovers through the non-blocking
// pass; once a full pass finds every bucket closed and empty, take reports
// done.
func (e *Executor) take() (Task, bool) {
	for {
		drained := 0
		for p := PriorityHigh; p >= PriorityLow; p-- {
			select {
			case task, ok := <-e.buckets[p]:
				if ok {
					return task, true
				}
				drained++
			default:
			}
		}
		if drained == numPriorities {
			return nil, false
		}
		if e.stopped.Load() {
			// Buckets are closing; re-run the pass until they drain.
			continue
		}

		select {
		case task, ok := <-e.buckets[PriorityHigh]:
			if ok {
				return task, true
			}
		case task, ok := <-e.buckets[PriorityDefault]:
			if ok {
				return task, true
			}
		case task, ok := <-e.buckets[PriorityLow]:
			if ok {
				return task, true
			}
		}
	}
}

// throttle blocks until the configured rate limiter admits one task.
// No-op without WithRateLimit. The executor context unblocks waiters if a
// timed-out Shutdown gives up on draining.
func (e *Executor) throttle() {
	if e.cfg.rateLimiter == nil {
		return
	}
	if err := e.cfg.rateLimiter.Wait(e.ctx); err != nil {
		debugLog("rate limiter wait aborted: %v", err)
	}
}
