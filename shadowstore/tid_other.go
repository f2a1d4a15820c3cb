//go:build !linux

package shadowstore

// callerTID has no portable equivalent outside Linux in this codebase
// (gettid() is itself a Linux-specific syscall); off Linux every caller
// degrades to a single shard, which is correct but loses the
// contention-avoidance property the sharding exists for.
func callerTID() int32 {
	return 0
}
