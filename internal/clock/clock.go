// Package clock wraps the wall clock so label generation can be pinned in
// tests. Callers should treat timestamps as opaque.
package clock

import "time"

// NowFunc returns the current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }
