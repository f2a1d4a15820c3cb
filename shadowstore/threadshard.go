package shadowstore

import (
	"encoding/binary"
	"sync"

	"blainsmith.com/go/seahash"

	"github.com/riversideresearch/resolve/shadowobj"
)

// numStackShards shards a hot-path map by hash to keep per-shard
// contention low. It is prime; the shard index is the seahash of the
// thread id modulo this count, so the raw gettid() value is never used
// as an index directly.
const numStackShards = 251

type stackShard struct {
	mu    sync.Mutex
	table *shadowobj.Table
}

// stackShards is the Go-side approximation of a thread-local STACK table.
// Stack addresses are only ever touched by the thread that owns them, so
// a shard keyed by the calling OS thread id gives threads disjoint,
// effectively lock-free tables without needing real TLS (which a
// cgo-exported function family cannot portably obtain).
type stackShards struct {
	shards [numStackShards]stackShard
}

func newStackShards() *stackShards {
	s := &stackShards{}
	for i := range s.shards {
		s.shards[i].table = shadowobj.NewTable()
	}
	return s
}

func (s *stackShards) shardFor(tid int32) *stackShard {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(tid))
	h := seahash.Sum64(buf[:])
	return &s.shards[h%uint64(numStackShards)]
}

// Insert adds a Stack-kind shadow object to the calling thread's shard.
func (s *stackShards) Insert(base shadowobj.Vaddr, size uint64) {
	sh := s.shardFor(callerTID())
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.table.Insert(shadowobj.Stack, base, size)
}

// RemoveAt removes base from the calling thread's shard.
func (s *stackShards) RemoveAt(base shadowobj.Vaddr) {
	sh := s.shardFor(callerTID())
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.table.RemoveAt(base)
}

// SearchIntersection looks up addr in the calling thread's shard only —
// cheaper to check first than the process-wide tables since it never
// contends with other threads.
func (s *stackShards) SearchIntersection(addr shadowobj.Vaddr) (shadowobj.Object, bool) {
	sh := s.shardFor(callerTID())
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.table.SearchIntersection(addr)
}
