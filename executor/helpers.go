package executor

import (
	"runtime"
	"time"
)

// runSafe executes a task under panic recovery. A panicking task must never
// take down a pool worker or wedge a serial queue; the panic and its stack
// go to the debug logger and the worker moves on.
func runSafe(task Task) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			debugLog("task panic: %v\nstack trace:\n%s", r, buf[:n])
		}
	}()
	task()
}

// waitUntil blocks until d is closed or the timeout is reached, returning
// timeoutErr in the latter case. timeout <= 0 waits forever.
func waitUntil(d <-chan struct{}, timeout time.Duration, timeoutErr error) error {
	if timeout <= 0 {
		<-d
		return nil
	}

	select {
	case <-d:
		return nil
	case <-time.After(timeout):
		return timeoutErr
	}
}
