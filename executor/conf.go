package executor

import (
	"runtime"

	"golang.org/x/time/rate"
)

// Option is a functional option for configuring the executor.
type Option func(*config)

type config struct {
	workerCount int
	taskBuffer  int
	rateLimiter *rate.Limiter
}

func defaultConfig() *config {
	return &config{
		workerCount: runtime.GOMAXPROCS(0),
	}
}

// WithWorkerCount sets the number of pool workers.
// If not specified, defaults to runtime.GOMAXPROCS(0).
func WithWorkerCount(count int) Option {
	return func(cfg *config) {
		if count > 0 {
			cfg.workerCount = count
		}
	}
}

// WithTaskBuffer sets the buffer size of each priority bucket.
// A larger buffer lets bursty submitters return sooner at the cost of
// memory. If not specified, defaults to the worker count.
func WithTaskBuffer(size int) Option {
	return func(cfg *config) {
		if size >= 0 {
			cfg.taskBuffer = size
		}
	}
}

// WithRateLimit caps the execution rate of concurrent-queue tasks.
// tasksPerSecond is the sustained rate, burst the number of tasks that may
// run back-to-back without waiting. Serial queues are not limited: their
// throughput is already bounded by one-at-a-time execution.
//
// Example:
//
//	WithRateLimit(10, 5) // 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}
