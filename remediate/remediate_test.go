package remediate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riversideresearch/resolve/shadowobj"
	"github.com/riversideresearch/resolve/shadowstore"
)

func newTestRemediator() *Remediator {
	shadowstore.Reset()
	return &Remediator{Trace: nil, Errors: nil}
}

func TestMallocFreeCycle(t *testing.T) {
	r := newTestRemediator()
	defer shadowstore.Reset()

	const p shadowobj.Vaddr = 0x1000
	r.Malloc(p, 16)

	assert.Equal(t, shadowobj.Heap, r.ObjType(p))
	assert.True(t, r.CheckBounds(p, 16))
	assert.False(t, r.CheckBounds(p, 17))
	assert.False(t, r.CheckBounds(p+16, 1))

	r.Free(p)
	assert.Equal(t, shadowobj.Unallocated, r.ObjType(p))
}

func TestOnePastAndNextAllocation(t *testing.T) {
	r := newTestRemediator()
	defer shadowstore.Reset()

	const p shadowobj.Vaddr = 0x2000
	r.Malloc(p, 8)
	q := p + 8

	_, invalid := shadowstore.Alive().SearchInvalid(q)
	require.True(t, invalid)

	r.Malloc(q, 4)
	obj, found := shadowstore.Alive().SearchIntersection(q)
	require.True(t, found)
	assert.Equal(t, q, obj.Base)
}

func TestGepRejectsOOB(t *testing.T) {
	r := newTestRemediator()
	defer shadowstore.Reset()

	const p shadowobj.Vaddr = 0x3000
	r.Malloc(p, 4)

	assert.Equal(t, shadowobj.Vaddr(0), r.Gep(p, p+5, 1))
	assert.Equal(t, p+3, r.Gep(p, p+3, 1))
}

func TestGepUntrackedBaseIsLenient(t *testing.T) {
	r := newTestRemediator()
	defer shadowstore.Reset()

	const base, derived shadowobj.Vaddr = 0xdead, 0xdeae
	assert.Equal(t, derived, r.Gep(base, derived, 1))
}

func TestStackInvalidationFallsBackToLenient(t *testing.T) {
	r := newTestRemediator()
	defer shadowstore.Reset()

	const p shadowobj.Vaddr = 0x7fff0000
	r.StackObj(p, 4)
	assert.True(t, r.CheckBounds(p, 4))

	r.InvalidateStack(p)
	assert.True(t, r.CheckBounds(p, 4))
}

func TestCheckBoundsNullIsFalse(t *testing.T) {
	r := newTestRemediator()
	defer shadowstore.Reset()
	assert.False(t, r.CheckBounds(0, 1))
	assert.False(t, r.CheckBounds(0, 0))
}

func TestReallocNullActsAsMallocWithoutRemoving(t *testing.T) {
	r := newTestRemediator()
	defer shadowstore.Reset()

	const p shadowobj.Vaddr = 0x4000
	r.Realloc(0, p, 32)

	assert.Equal(t, shadowobj.Heap, r.ObjType(p))
	assert.Equal(t, 1, shadowstore.Alive().Len())
}

func TestReallocRemovesOldEntry(t *testing.T) {
	r := newTestRemediator()
	defer shadowstore.Reset()

	const old, moved shadowobj.Vaddr = 0x5000, 0x6000
	r.Malloc(old, 16)
	r.Realloc(old, moved, 32)

	_, stillThere := shadowstore.Alive().SearchIntersection(old)
	assert.False(t, stillThere)
	assert.Equal(t, shadowobj.Heap, r.ObjType(moved))
}

func TestZeroSizedAllocationBoundary(t *testing.T) {
	r := newTestRemediator()
	defer shadowstore.Reset()

	const p shadowobj.Vaddr = 0x8000
	r.Malloc(p, 0)

	obj, found := shadowstore.Alive().SearchIntersection(p)
	require.True(t, found)
	assert.Equal(t, p, obj.Limit)

	// p+1 is the one-past sentinel, which SearchIntersection also reports.
	past, pastFound := shadowstore.Alive().SearchIntersection(p + 1)
	assert.True(t, pastFound && past.PastLimit() == p+1 && !past.Contains(p+1))
}

func TestObjTypePrefersFreedOverAlive(t *testing.T) {
	r := newTestRemediator()
	defer shadowstore.Reset()

	const p shadowobj.Vaddr = 0x9000
	r.Malloc(p, 8)
	r.Free(p)
	// A later allocation happens to reuse the exact same base; FREED must
	// still win the lookup, favoring use-after-free diagnosis over recency.
	shadowstore.Alive().Insert(shadowobj.Heap, p, 8)

	assert.Equal(t, shadowobj.Unallocated, r.ObjType(p))
}

func TestGetBaseAndLimit(t *testing.T) {
	r := newTestRemediator()
	defer shadowstore.Reset()

	const p shadowobj.Vaddr = 0xa000
	r.Malloc(p, 16)

	base, limit, ok := r.GetBaseAndLimit(p)
	require.True(t, ok)
	assert.Equal(t, p, base)
	assert.Equal(t, p+15, limit)

	_, _, ok = r.GetBaseAndLimit(0xbeef)
	assert.False(t, ok)
}

func TestStrdupAndStrndupRecordSizes(t *testing.T) {
	r := newTestRemediator()
	defer shadowstore.Reset()

	const dup, tdup shadowobj.Vaddr = 0xb000, 0xc000
	r.Strdup(dup, 5) // "hello"
	r.Strndup(tdup, 3, 10)

	obj, _ := shadowstore.Alive().SearchIntersection(dup)
	assert.Equal(t, limitOf(dup, 6), obj.Limit)

	obj2, _ := shadowstore.Alive().SearchIntersection(tdup)
	assert.Equal(t, limitOf(tdup, 4), obj2.Limit)
}

func TestMemcpyRecordsDestination(t *testing.T) {
	r := newTestRemediator()
	defer shadowstore.Reset()

	const dst, src shadowobj.Vaddr = 0xd000, 0xe000
	r.Memcpy(dst, src, 10)

	obj, found := shadowstore.Alive().SearchIntersection(dst)
	require.True(t, found)
	assert.Equal(t, shadowobj.Heap, obj.Kind)
}

func TestCallocRecordsProductSize(t *testing.T) {
	r := newTestRemediator()
	defer shadowstore.Reset()

	const p shadowobj.Vaddr = 0xf000
	r.Calloc(p, 4, 8)

	obj, found := shadowstore.Alive().SearchIntersection(p)
	require.True(t, found)
	assert.Equal(t, p+31, obj.Limit)
}

func TestSanitizeHooksDoNotPanicWithoutSinks(t *testing.T) {
	r := newTestRemediator()
	defer shadowstore.Reset()
	assert.NotPanics(t, func() {
		r.ReportSanitizeMemInstTriggered(0x1234)
		r.ReportSanitizerTriggered()
	})
}

// limitOf returns base+n-1, the inclusive limit of an n-byte object
// starting at base.
func limitOf(base shadowobj.Vaddr, n uint64) shadowobj.Vaddr {
	return base + shadowobj.Vaddr(n) - 1
}
