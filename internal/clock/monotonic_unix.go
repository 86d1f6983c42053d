//go:build darwin || freebsd || linux

package clock

import "golang.org/x/sys/unix"

func now() uint64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return runtimeNow()
	}
	return uint64(ts.Nano())
}
