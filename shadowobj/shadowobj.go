// Package shadowobj implements the shadow-object table: an address-ordered
// store mapping an allocation's base address to a descriptor of the live
// range it covers.  It is the core data structure instrumented programs
// consult (indirectly, through package remediate) on every pointer
// derivation and every load/store.
package shadowobj

// Vaddr is an opaque word-sized virtual address.  Only equality and ordered
// comparison are used; zero is reserved to mean "null / unresolved".
type Vaddr uint64

// AllocKind classifies the provenance of a shadow object, or the reason a
// lookup failed.  The numeric values are part of the C ABI (see
// cmd/libresolve) and must not be reordered.
type AllocKind uint8

const (
	Unallocated AllocKind = 0
	Unknown     AllocKind = 1
	Heap        AllocKind = 2
	Stack       AllocKind = 3
	Global      AllocKind = 4
)

func (k AllocKind) String() string {
	switch k {
	case Unallocated:
		return "Unallocated"
	case Unknown:
		return "Unknown"
	case Heap:
		return "Heap"
	case Stack:
		return "Stack"
	case Global:
		return "Global"
	default:
		return "Invalid"
	}
}

// IsAllocation reports whether k describes a real, live provenance rather
// than a lookup failure.
func (k AllocKind) IsAllocation() bool {
	return k != Unallocated && k != Unknown
}

// Object is the unit of tracking: a single shadow object spanning
// [Base, Limit] inclusive.
type Object struct {
	Base  Vaddr
	Limit Vaddr
	Kind  AllocKind
}

// Size returns the number of bytes covered by o.
func (o Object) Size() Vaddr {
	return o.Limit - o.Base + 1
}

// PastLimit returns the canonical one-past-the-end sentinel address.
func (o Object) PastLimit() Vaddr {
	return o.Limit + 1
}

// Contains reports whether addr falls within [o.Base, o.Limit].
func (o Object) Contains(addr Vaddr) bool {
	return addr >= o.Base && addr <= o.Limit
}

// limitFor computes the inclusive limit of an object of the given size
// starting at base.  A zero-sized object has limit == base.
func limitFor(base Vaddr, size uint64) Vaddr {
	if size == 0 {
		return base
	}
	return base + Vaddr(size) - 1
}

func less(a, b Object) bool {
	return a.Base < b.Base
}
