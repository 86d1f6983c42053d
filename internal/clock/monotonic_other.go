//go:build !(darwin || freebsd || linux)

package clock

func now() uint64 {
	return runtimeNow()
}
