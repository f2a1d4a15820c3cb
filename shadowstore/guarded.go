// Package shadowstore holds the three process-scoped shadow-object
// tables (ALIVE, FREED, and a thread-sharded STACK table) and the
// locking discipline around them: ALIVE and FREED are
// multi-reader/single-writer; STACK is sharded by calling OS thread so the
// hot path essentially never contends.
package shadowstore

import (
	"sync"

	"github.com/riversideresearch/resolve/shadowobj"
)

// GuardedTable is a shadowobj.Table behind a multi-reader/single-writer
// lock, used for the process-wide ALIVE and FREED tables.
type GuardedTable struct {
	mu    sync.RWMutex
	table *shadowobj.Table
}

func newGuardedTable() *GuardedTable {
	return &GuardedTable{table: shadowobj.NewTable()}
}

// Insert replaces any existing entry at base.
func (g *GuardedTable) Insert(kind shadowobj.AllocKind, base shadowobj.Vaddr, size uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.table.Insert(kind, base, size)
}

// RemoveAt removes the entry keyed at base, if any.
func (g *GuardedTable) RemoveAt(base shadowobj.Vaddr) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.table.RemoveAt(base)
}

// SearchIntersection takes the read lock and delegates to the underlying
// table; see shadowobj.Table.SearchIntersection.
func (g *GuardedTable) SearchIntersection(addr shadowobj.Vaddr) (shadowobj.Object, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.table.SearchIntersection(addr)
}

// SearchInvalid takes the read lock and delegates to the underlying table;
// see shadowobj.Table.SearchInvalid.
func (g *GuardedTable) SearchInvalid(addr shadowobj.Vaddr) (shadowobj.Object, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.table.SearchInvalid(addr)
}

// Len returns the number of tracked objects.
func (g *GuardedTable) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.table.Len()
}
