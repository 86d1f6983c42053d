// Package clock provides the monotonic nanosecond time source used to time
// decoder invocations. Readings are only meaningful as differences.
package clock

import "time"

// Clock returns a monotonic reading in nanoseconds.
type Clock interface {
	Now() uint64
}

// Monotonic reads CLOCK_MONOTONIC where the platform exposes it and falls
// back to the monotonic component of the Go runtime clock elsewhere.
type Monotonic struct{}

func (Monotonic) Now() uint64 {
	return now()
}

var epoch = time.Now()

func runtimeNow() uint64 {
	return uint64(time.Since(epoch))
}
