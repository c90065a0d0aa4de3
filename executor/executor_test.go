package executor

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestExecutor_Async_BasicExecution(t *testing.T) {
	e := New(WithWorkerCount(4))
	defer e.Shutdown(0)

	var ran atomic.Int32
	done := make(chan struct{})

	e.ConcurrentQueue(PriorityDefault).Async(func() {
		ran.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}

	if ran.Load() != 1 {
		t.Errorf("expected 1 execution, got %d", ran.Load())
	}
}

func TestExecutor_Async_ReturnsImmediately(t *testing.T) {
	e := New(WithWorkerCount(1), WithTaskBuffer(8))
	defer e.Shutdown(0)

	release := make(chan struct{})
	e.ConcurrentQueue(PriorityDefault).Async(func() { <-release })

	start := time.Now()
	e.ConcurrentQueue(PriorityDefault).Async(func() {})
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Async blocked for %v with a free buffer slot", elapsed)
	}
	close(release)
}

func TestExecutor_Concurrency(t *testing.T) {
	workerCount := 4
	e := New(WithWorkerCount(workerCount))
	defer e.Shutdown(0)

	var active, maxConcurrent atomic.Int32
	g := NewGroup()
	q := e.ConcurrentQueue(PriorityDefault)

	for iter := 0; iter < 50; iter++ {
		q.AsyncGroup(g, func() {
			current := active.Add(1)
			defer active.Add(-1)

			for {
				max := maxConcurrent.Load()
				if current <= max || maxConcurrent.CompareAndSwap(max, current) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
		})
	}
	g.Wait()

	if maxConcurrent.Load() < int32(workerCount) {
		t.Errorf("expected at least %d concurrent tasks, got %d", workerCount, maxConcurrent.Load())
	}
}

func TestExecutor_PriorityPreference(t *testing.T) {
	// One worker, held busy while both buckets fill, must drain the
	// high bucket before the low one.
	e := New(WithWorkerCount(1), WithTaskBuffer(8))
	defer e.Shutdown(0)

	release := make(chan struct{})
	e.ConcurrentQueue(PriorityDefault).Async(func() { <-release })

	var mu sync.Mutex
	var order []string
	g := NewGroup()

	e.ConcurrentQueue(PriorityLow).AsyncGroup(g, func() {
		mu.Lock()
		order = append(order, "low")
		mu.Unlock()
	})
	e.ConcurrentQueue(PriorityHigh).AsyncGroup(g, func() {
		mu.Lock()
		order = append(order, "high")
		mu.Unlock()
	})

	close(release)
	g.Wait()

	if len(order) != 2 || order[0] != "high" || order[1] != "low" {
		t.Errorf("expected [high low], got %v", order)
	}
}

func TestExecutor_PanicRecovery(t *testing.T) {
	e := New(WithWorkerCount(2))
	defer e.Shutdown(0)

	q := e.ConcurrentQueue(PriorityDefault)
	g := NewGroup()

	q.AsyncGroup(g, func() { panic("intentional panic") })
	g.Wait()

	// The pool must still be alive after a panicking task.
	done := make(chan struct{})
	q.Async(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker died after recovered panic")
	}
}

func TestExecutor_Shutdown_DrainsQueuedTasks(t *testing.T) {
	e := New(WithWorkerCount(2), WithTaskBuffer(64))

	var ran atomic.Int32
	q := e.ConcurrentQueue(PriorityDefault)
	for iter := 0; iter < 50; iter++ {
		q.Async(func() {
			time.Sleep(time.Millisecond)
			ran.Add(1)
		})
	}

	if err := e.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}

	if ran.Load() != 50 {
		t.Errorf("expected 50 tasks drained, got %d", ran.Load())
	}
}

func TestExecutor_Shutdown_Twice(t *testing.T) {
	e := New(WithWorkerCount(1))

	if err := e.Shutdown(time.Second); err != nil {
		t.Fatalf("unexpected error on first shutdown: %v", err)
	}

	if err := e.Shutdown(time.Second); !errors.Is(err, ErrAlreadyStopped) {
		t.Errorf("expected ErrAlreadyStopped, got %v", err)
	}
}

func TestExecutor_Shutdown_Timeout(t *testing.T) {
	e := New(WithWorkerCount(1))

	e.ConcurrentQueue(PriorityDefault).Async(func() {
		time.Sleep(500 * time.Millisecond)
	})
	time.Sleep(10 * time.Millisecond) // let the worker pick it up

	err := e.Shutdown(50 * time.Millisecond)
	if !errors.Is(err, ErrShutdownTimeout) {
		t.Errorf("expected ErrShutdownTimeout, got %v", err)
	}
}

func TestExecutor_SubmitAfterShutdown_RunsOnCaller(t *testing.T) {
	e := New(WithWorkerCount(1))
	if err := e.Shutdown(time.Second); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}

	ran := false
	e.ConcurrentQueue(PriorityDefault).Async(func() { ran = true })

	// Caller-side execution completes before Async returns.
	if !ran {
		t.Error("expected task to run synchronously after shutdown")
	}
}

func TestExecutor_RateLimit_Throughput(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping rate limit test in short mode")
	}

	e := New(
		WithWorkerCount(4),
		WithRateLimit(10, 2),
	)
	defer e.Shutdown(0)

	g := NewGroup()
	q := e.ConcurrentQueue(PriorityDefault)

	start := time.Now()
	for iter := 0; iter < 12; iter++ {
		q.AsyncGroup(g, func() {})
	}
	g.Wait()
	elapsed := time.Since(start)

	// 12 tasks at 10/sec with burst 2: at least ~1 second.
	if elapsed < 900*time.Millisecond {
		t.Errorf("expected rate limiting to slow execution, took %v", elapsed)
	}
}

func TestExecutor_DefaultsInvalidPriority(t *testing.T) {
	e := New(WithWorkerCount(1))
	defer e.Shutdown(0)

	q := e.ConcurrentQueue(Priority(42))
	if q.Priority() != PriorityDefault {
		t.Errorf("expected out-of-range priority to map to default, got %v", q.Priority())
	}
}
