// Package remediate implements the decision logic behind every C-ABI
// remediation entry point: shadow-table bookkeeping, bounds checks, and
// trace-line emission. It never calls into libc itself — the
// already-performed allocator result is passed in — so it has no cgo
// dependency and is fully exercised by ordinary `go test`.
package remediate

import (
	"github.com/riversideresearch/resolve/shadowobj"
	"github.com/riversideresearch/resolve/shadowstore"
	"github.com/riversideresearch/resolve/tracesink"
)

// Remediator bundles the trace sinks every operation writes to. A nil Trace
// or Errors is tolerated (tracesink.Sink itself tolerates a nil receiver);
// cmd/libresolve constructs one per process wired to the real log files,
// tests construct one per case with both sinks nil.
type Remediator struct {
	Trace  *tracesink.Sink
	Errors *tracesink.Sink
}

// line writes to Trace, and additionally to Errors when tag is WARNING or
// ERROR.
func (r *Remediator) line(tag, format string, args ...interface{}) {
	r.Trace.Linef(tag, format, args...)
	if tag == "WARNING" || tag == "ERROR" {
		r.Errors.Linef(tag, format, args...)
	}
}

// Malloc records a Heap object of the given size at ptr, once the caller
// has already performed the libc malloc(size+1) call. ptr == 0 means the
// allocation failed and nothing is recorded.
func (r *Remediator) Malloc(ptr shadowobj.Vaddr, size uint64) {
	if ptr == 0 {
		return
	}
	shadowstore.Alive().Insert(shadowobj.Heap, ptr, size)
	r.line("HEAP", "object allocated with size: %d, address: 0x%x", size, ptr)
}

// Calloc records a Heap object of n*sz bytes. Overflow is the allocator's
// problem: a failed calloc already returned null before this is called.
func (r *Remediator) Calloc(ptr shadowobj.Vaddr, n, sz uint64) {
	if ptr == 0 {
		return
	}
	shadowstore.Alive().Insert(shadowobj.Heap, ptr, n*sz)
	r.line("HEAP", "logging allocation with %d items, size (bytes): %d, dst ptr: 0x%x", n, sz, ptr)
}

// Realloc does nothing when newPtr is 0 (the realloc failed). Otherwise it
// removes the entry previously recorded at old (a no-op if old is 0 or
// untracked) and inserts a new Heap entry at newPtr.
func (r *Remediator) Realloc(oldPtr, newPtr shadowobj.Vaddr, size uint64) {
	if newPtr == 0 {
		return
	}
	if oldPtr != 0 {
		shadowstore.Alive().RemoveAt(oldPtr)
	}
	shadowstore.Alive().Insert(shadowobj.Heap, newPtr, size)
	r.line("HEAP", "allocated object reallocated mem from src: 0x%x, size: %d, dst ptr: 0x%x", oldPtr, size, newPtr)
}

// Strdup records a Heap object at ptr sized strlen(src)+1 (the caller has
// already measured the source string and performed the libc strdup).
func (r *Remediator) Strdup(ptr shadowobj.Vaddr, srcLen uint64) {
	if ptr == 0 {
		return
	}
	shadowstore.Alive().Insert(shadowobj.Heap, ptr, srcLen+1)
	r.line("HEAP", "logging 'strdup' function call with dst ptr: 0x%x", ptr)
}

// Strndup records a Heap object at ptr sized strnlen(src, n)+1.
func (r *Remediator) Strndup(ptr shadowobj.Vaddr, truncatedLen, n uint64) {
	if ptr == 0 {
		return
	}
	shadowstore.Alive().Insert(shadowobj.Heap, ptr, truncatedLen+1)
	r.line("HEAP", "logging 'strndup' function call with size (bytes): %d, dst ptr: 0x%x", n, ptr)
}

// Memcpy records a Heap object at dst sized n, mirroring
// original_source/libresolve/src/remediate.rs's resolve_memcpy, which
// records the destination as a fresh allocation even though it typically
// already belongs to one. Kept verbatim: downstream consumers may depend
// on the line appearing.
func (r *Remediator) Memcpy(dst, src shadowobj.Vaddr, n uint64) {
	if dst == 0 {
		return
	}
	shadowstore.Alive().Insert(shadowobj.Heap, dst, n)
	r.line("HEAP", "object copied to dst: 0x%x, from src 0x%x, with size: %d, ptr: 0x%x", dst, src, n, dst)
}

// Free looks up ptr in ALIVE, records the discovered size (0 if absent,
// with a warning line), removes it from ALIVE, and inserts an Unallocated
// entry into FREED at the same size. The caller performs the actual libc
// free(3) afterward.
func (r *Remediator) Free(ptr shadowobj.Vaddr) {
	r.line("FREE", "allocated object freed at address: 0x%x", ptr)

	obj, found := shadowstore.Alive().SearchIntersection(ptr)
	size := uint64(0)
	if found {
		size = uint64(obj.Size())
		r.line("INFO", "found shadow object for allocated object, 0x%x, size = %d", ptr, size)
	} else {
		r.line("WARNING", "no shadow object found for allocated object: 0x%x", ptr)
	}

	shadowstore.Alive().RemoveAt(ptr)
	shadowstore.Freed().Insert(shadowobj.Unallocated, ptr, size)
}

// StackObj inserts a Stack-kind entry into the calling thread's STACK
// table.
func (r *Remediator) StackObj(ptr shadowobj.Vaddr, size uint64) {
	shadowstore.Stack().Insert(ptr, size)
	r.line("STACK", "object allocated with size: %d, address: 0x%x", size, ptr)
}

// InvalidateStack removes one base address from the calling thread's STACK
// table. cmd/libresolve's six resolve_invalidate_stack_N trampolines each
// call this once per argument register.
func (r *Remediator) InvalidateStack(ptr shadowobj.Vaddr) {
	shadowstore.Stack().RemoveAt(ptr)
}

// Gep implements the canonical three-argument resolve_gep: base is the
// root pointer, derived is the address about to be used, maxAccess is
// the size of that access. STACK is searched before ALIVE because it is
// thread-local and typically small.
//
// An untracked base is lenient: it logs and returns derived unchanged.
// A tracked base whose access range escapes [obj.base, obj.limit] returns
// the null sentinel to poison the subsequent load/store.
func (r *Remediator) Gep(base, derived shadowobj.Vaddr, maxAccess uint64) shadowobj.Vaddr {
	obj, found := shadowstore.Stack().SearchIntersection(base)
	if !found {
		obj, found = shadowstore.Alive().SearchIntersection(base)
	}
	if !found {
		r.line("WARNING", "[GEP] cannot find ptr 0x%x in shadow table", base)
		return derived
	}

	accessEnd := derived
	if maxAccess > 0 {
		accessEnd = derived + shadowobj.Vaddr(maxAccess) - 1
	}
	if obj.Contains(derived) && obj.Contains(accessEnd) {
		r.line("GEP", "ptr 0x%x valid for base 0x%x, obj: %d@0x%x", derived, base, obj.Size(), obj.Base)
		return derived
	}

	r.line("ERROR", "[GEP] ptr 0x%x not valid for base 0x%x, obj: %d@0x%x", derived, base, obj.Size(), obj.Base)
	return 0
}

// CheckBounds implements resolve_check_bounds: a null base is rejected
// immediately; STACK then ALIVE are searched for a
// containing object; failing that, ALIVE is searched for an object whose
// one-past-the-end address equals base (a known-invalid computed
// pointer); anything else untracked is allowed through.
func (r *Remediator) CheckBounds(base shadowobj.Vaddr, size uint64) bool {
	if base == 0 {
		return false
	}

	obj, found := shadowstore.Stack().SearchIntersection(base)
	if !found {
		obj, found = shadowstore.Alive().SearchIntersection(base)
	}
	if found {
		limit := base + shadowobj.Vaddr(size)
		if size > 0 {
			limit--
		}
		if obj.Contains(limit) {
			r.line("BOUNDS", "access allowed %d@0x%x for allocation %d@0x%x", size, base, obj.Size(), obj.Base)
			return true
		}
		r.line("ERROR", "OOB access at 0x%x, size %d too big for allocation %d@0x%x", base, size, obj.Size(), obj.Base)
		return false
	}

	if invalid, found := shadowstore.Alive().SearchInvalid(base); found {
		r.line("ERROR", "OOB access for %d@0x%x, invalid address computation", invalid.Size(), invalid.Base)
		return false
	}

	return true
}

// ObjType implements resolve_obj_type: STACK, then FREED, then ALIVE,
// first match wins. FREED is checked before ALIVE
// deliberately, so a recently-freed address reports Unallocated even if a
// newer allocation now occupies the same base — this favors
// use-after-free diagnosis over strict recency.
func (r *Remediator) ObjType(p shadowobj.Vaddr) shadowobj.AllocKind {
	if obj, ok := shadowstore.Stack().SearchIntersection(p); ok {
		return obj.Kind
	}
	if obj, ok := shadowstore.Freed().SearchIntersection(p); ok {
		return obj.Kind
	}
	if obj, ok := shadowstore.Alive().SearchIntersection(p); ok {
		return obj.Kind
	}
	return shadowobj.Unknown
}

// GetBaseAndLimit implements resolve_get_base_and_limit: the bounds of
// the ALIVE allocation containing p, or (0, 0, false).
func (r *Remediator) GetBaseAndLimit(p shadowobj.Vaddr) (base, limit shadowobj.Vaddr, ok bool) {
	obj, found := shadowstore.Alive().SearchIntersection(p)
	if !found {
		return 0, 0, false
	}
	return obj.Base, obj.Limit, true
}

// ReportSanitizeMemInstTriggered is a pure logging hook, no state change.
func (r *Remediator) ReportSanitizeMemInstTriggered(p shadowobj.Vaddr) {
	r.line("SANITIZE", "applying sanitizer to address 0x%x", p)
}

// ReportSanitizerTriggered is a pure logging hook, no state change.
func (r *Remediator) ReportSanitizerTriggered() {
	r.line("SANITIZE", "applying arithmetic sanitization in basic block")
}
