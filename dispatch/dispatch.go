package dispatch

import (
	"github.com/taskwell/dispatch/executor"
)

// Priority aliases the engine's priority levels so callers rarely need to
// import both packages.
type Priority = executor.Priority

const (
	PriorityLow     = executor.PriorityLow
	PriorityDefault = executor.PriorityDefault
	PriorityHigh    = executor.PriorityHigh
)

// ErrWaitTimeout is returned by Group.WaitTimeout when the deadline passes
// before the group drains.
var ErrWaitTimeout = executor.ErrWaitTimeout

// Dispatcher binds the coordination idioms to one executor. It is cheap and
// safe for concurrent use; one per process is typical.
type Dispatcher struct {
	eng     *executor.Executor
	labeler *Labeler
}

// Option is a functional option for configuring a Dispatcher.
type Option func(*dispatcherConfig)

type dispatcherConfig struct {
	namespace string
}

// WithNamespace sets the root token of every label the dispatcher
// generates for actor queues. Defaults to DefaultNamespace.
func WithNamespace(namespace string) Option {
	return func(cfg *dispatcherConfig) {
		if namespace != "" {
			cfg.namespace = namespace
		}
	}
}

// New creates a Dispatcher on top of eng.
//
// Example:
//
//	e := executor.New(executor.WithWorkerCount(8))
//	d := dispatch.New(e, dispatch.WithNamespace("myapp"))
func New(eng *executor.Executor, opts ...Option) *Dispatcher {
	cfg := &dispatcherConfig{namespace: DefaultNamespace}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Dispatcher{
		eng:     eng,
		labeler: NewLabeler(cfg.namespace),
	}
}

// Executor returns the engine the dispatcher submits to.
func (d *Dispatcher) Executor() *executor.Executor { return d.eng }

// Labeler returns the label generator used to name actor queues.
func (d *Dispatcher) Labeler() *Labeler { return d.labeler }

// Async submits a task for fire-and-forget execution at default priority
// and returns immediately.
func (d *Dispatcher) Async(task func()) {
	d.AsyncAt(PriorityDefault, task)
}

// AsyncAt is Async on the concurrent queue of the given priority.
func (d *Dispatcher) AsyncAt(p Priority, task func()) {
	d.eng.ConcurrentQueue(p).Async(task)
}
