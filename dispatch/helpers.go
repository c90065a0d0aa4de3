package dispatch

import (
	"fmt"
	"runtime"
)

// guard converts a panic in fn into an error carrying the stack trace, so a
// failing task surfaces at its join point instead of crashing a worker.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	return fn()
}

// guardValue is guard for value-returning operations.
func guardValue[R any](fn func() (R, error)) (value R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	return fn()
}

func panicError(r any) error {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return fmt.Errorf("task panic: %v\nstack trace:\n%s", r, buf[:n])
}
