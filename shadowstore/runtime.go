package shadowstore

import (
	"sync/atomic"

	"github.com/riversideresearch/resolve/shadowobj"
)

// Runtime bundles the three process-scoped shadow tables behind one
// atomic pointer, installed at load time, so tests can swap it out for
// a fresh instance between cases.
type Runtime struct {
	alive *GuardedTable
	freed *GuardedTable
	stack *stackShards
}

func newRuntime() *Runtime {
	return &Runtime{
		alive: newGuardedTable(),
		freed: newGuardedTable(),
		stack: newStackShards(),
	}
}

var current atomic.Pointer[Runtime]

func init() {
	current.Store(newRuntime())
}

// active returns the process's current Runtime, lazily installing one if
// none has been set (tests and the C ABI constructor both call through
// this path; production code never observes a nil Runtime).
func active() *Runtime {
	r := current.Load()
	if r == nil {
		r = newRuntime()
		if !current.CompareAndSwap(nil, r) {
			r = current.Load()
		}
	}
	return r
}

// Alive returns the process-wide table of currently-live heap and global
// allocations.
func Alive() *GuardedTable { return active().alive }

// Freed returns the post-mortem table of freed allocations, used for
// use-after-free diagnosis.
func Freed() *GuardedTable { return active().freed }

// Stack returns the thread-sharded table of live stack allocations, scoped
// to the calling OS thread's own shard.
func Stack() *StackHandle { return &StackHandle{active().stack} }

// StackHandle is a thin, exported view over *stackShards so callers outside
// the package can't reach into shard internals.
type StackHandle struct {
	s *stackShards
}

// Insert adds a Stack-kind shadow object to the calling thread's shard.
func (h *StackHandle) Insert(base shadowobj.Vaddr, size uint64) {
	h.s.Insert(base, size)
}

// RemoveAt removes base from the calling thread's shard.
func (h *StackHandle) RemoveAt(base shadowobj.Vaddr) {
	h.s.RemoveAt(base)
}

// SearchIntersection looks up addr in the calling thread's own shard.
func (h *StackHandle) SearchIntersection(addr shadowobj.Vaddr) (shadowobj.Object, bool) {
	return h.s.SearchIntersection(addr)
}

// Reset discards all three tables, installing a fresh Runtime. Intended
// for tests only.
func Reset() {
	current.Store(newRuntime())
}
