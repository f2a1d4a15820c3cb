//go:build linux

package shadowstore

import "golang.org/x/sys/unix"

// callerTID returns the real OS thread id of the calling thread, via
// golang.org/x/sys/unix's low-level Gettid wrapper. A cgo call into an
// //export'd function runs pinned to the actual calling OS thread for the
// duration of that call, which is what makes sharding by this value a
// faithful stand-in for a true thread-local STACK table.
func callerTID() int32 {
	return int32(unix.Gettid())
}
