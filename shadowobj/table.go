package shadowobj

import "github.com/google/btree"

// btreeDegree is a small constant picked without tuning; btree.NewG
// only cares that it is > 1.
const btreeDegree = 32

// Table is an ordered map from an allocation's base address to its
// descriptor. It is not safe for concurrent use by multiple goroutines;
// package shadowstore adds the locking discipline needed around the
// three process-wide tables.
type Table struct {
	tree *btree.BTreeG[Object]
}

// NewTable returns an empty shadow-object table.
func NewTable() *Table {
	return &Table{tree: btree.NewG(btreeDegree, less)}
}

// Insert replaces any prior entry at base (allocators legitimately reuse
// addresses; replacing rather than rejecting is intentional).
func (t *Table) Insert(kind AllocKind, base Vaddr, size uint64) {
	t.tree.ReplaceOrInsert(Object{Base: base, Limit: limitFor(base, size), Kind: kind})
}

// RemoveAt removes the entry keyed at base, if any. A no-op if absent.
func (t *Table) RemoveAt(base Vaddr) {
	t.tree.Delete(Object{Base: base})
}

// InvalidateRegion removes every entry whose base falls in [lo, hi].
func (t *Table) InvalidateRegion(lo, hi Vaddr) {
	var doomed []Object
	t.tree.AscendRange(Object{Base: lo}, Object{Base: hi + 1}, func(o Object) bool {
		doomed = append(doomed, o)
		return true
	})
	for _, o := range doomed {
		t.tree.Delete(o)
	}
}

// predecessor returns the entry with the largest base <= addr, if any.
// Given the base-keyed, strictly-increasing ordering, this is the only
// candidate that could possibly contain addr.
func (t *Table) predecessor(addr Vaddr) (Object, bool) {
	var found Object
	var ok bool
	t.tree.DescendLessOrEqual(Object{Base: addr}, func(o Object) bool {
		found, ok = o, true
		return false // first hit only
	})
	return found, ok
}

// SearchIntersection returns the object containing addr, or for which addr
// is exactly the one-past-the-end sentinel. One-past is reported as
// intersecting so callers can distinguish "in bounds, one past the end"
// from "entirely unknown" with a second check against PastLimit.
func (t *Table) SearchIntersection(addr Vaddr) (Object, bool) {
	o, ok := t.predecessor(addr)
	if !ok {
		return Object{}, false
	}
	if o.Contains(addr) || o.PastLimit() == addr {
		return o, true
	}
	return Object{}, false
}

// SearchInvalid returns the object for which addr is exactly the
// one-past-the-end sentinel (strictly; does not match a contained
// address).
func (t *Table) SearchInvalid(addr Vaddr) (Object, bool) {
	o, ok := t.predecessor(addr)
	if !ok || o.PastLimit() != addr {
		return Object{}, false
	}
	return o, true
}

// Len returns the number of tracked objects. Intended for tests and
// diagnostics, not the hot path.
func (t *Table) Len() int {
	return t.tree.Len()
}
