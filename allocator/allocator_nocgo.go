//go:build !cgo

package allocator

import "sync"

// The pure-Go build has no libc to call into, so it stands in a small
// Go-managed heap of its own: each live allocation is a []byte keyed by a
// synthetic handle, starting well above zero so Ptr(0) still means "null".
// This exists purely so package remediate (and anything built without
// cgo, e.g. `go vet ./...` in an environment with no C toolchain) keeps
// working; the real C-ABI build always uses allocator_cgo.go.
type fakeBlock struct {
	base Ptr
	data []byte
}

var (
	fakeMu    sync.Mutex
	fakeNext  Ptr = 0x10000
	fakeHeap       = map[Ptr]*fakeBlock{}
)

func fakeAlloc(size uint64) Ptr {
	fakeMu.Lock()
	defer fakeMu.Unlock()
	base := fakeNext
	fakeNext += Ptr(size + 1 + 16) // padding keeps adjacent blocks from ever touching
	fakeHeap[base] = &fakeBlock{base: base, data: make([]byte, size+1)}
	return base
}

func findBlock(ptr Ptr) (*fakeBlock, uint64, bool) {
	fakeMu.Lock()
	defer fakeMu.Unlock()
	for _, b := range fakeHeap {
		if ptr >= b.base && uint64(ptr-b.base) < uint64(len(b.data)) {
			return b, uint64(ptr - b.base), true
		}
	}
	return nil, 0, false
}

// Malloc allocates size+1 bytes from the fake heap.
func Malloc(size uint64) Ptr {
	if size > 0 && size+1 == 0 {
		return 0
	}
	return fakeAlloc(size)
}

// Calloc allocates n*sz zeroed bytes (Go's make already zeroes).
func Calloc(n, sz uint64) Ptr {
	return fakeAlloc(n * sz)
}

// Realloc allocates a fresh block of size+1 bytes, copying over whatever
// overlaps from the old block, and drops the old one.
func Realloc(ptr Ptr, size uint64) Ptr {
	newPtr := fakeAlloc(size)
	if ptr == 0 {
		return newPtr
	}
	if old, _, ok := findBlock(ptr); ok {
		fakeMu.Lock()
		nb := fakeHeap[newPtr]
		copy(nb.data, old.data)
		delete(fakeHeap, old.base)
		fakeMu.Unlock()
	}
	return newPtr
}

// Free drops the block from the fake heap.
func Free(ptr Ptr) {
	if b, _, ok := findBlock(ptr); ok {
		fakeMu.Lock()
		delete(fakeHeap, b.base)
		fakeMu.Unlock()
	}
}

func cStrLen(data []byte, offset uint64, limit uint64) uint64 {
	n := uint64(0)
	for offset+n < uint64(len(data)) && n < limit && data[offset+n] != 0 {
		n++
	}
	return n
}

// Strdup duplicates the NUL-terminated string at ptr.
func Strdup(ptr Ptr) Ptr {
	b, off, ok := findBlock(ptr)
	if !ok {
		return 0
	}
	n := cStrLen(b.data, off, uint64(len(b.data)))
	newPtr := fakeAlloc(n)
	nb, _, _ := findBlock(newPtr)
	copy(nb.data, b.data[off:off+n])
	return newPtr
}

// Strndup duplicates at most n bytes of the string at ptr, NUL-terminating
// the result.
func Strndup(ptr Ptr, n uint64) Ptr {
	b, off, ok := findBlock(ptr)
	if !ok {
		return 0
	}
	l := cStrLen(b.data, off, n)
	newPtr := fakeAlloc(l)
	nb, _, _ := findBlock(newPtr)
	copy(nb.data, b.data[off:off+l])
	return newPtr
}

// Memcpy copies n bytes from src to dst within the fake heap and returns
// dst.
func Memcpy(dst, src Ptr, n uint64) Ptr {
	db, doff, dok := findBlock(dst)
	sb, soff, sok := findBlock(src)
	if dok && sok {
		copy(db.data[doff:doff+n], sb.data[soff:soff+n])
	}
	return dst
}

// Strlen returns the length of the NUL-terminated string at ptr.
func Strlen(ptr Ptr) uint64 {
	b, off, ok := findBlock(ptr)
	if !ok {
		return 0
	}
	return cStrLen(b.data, off, uint64(len(b.data)))
}

// Strnlen returns the length of the string at ptr, capped at n.
func Strnlen(ptr Ptr, n uint64) uint64 {
	b, off, ok := findBlock(ptr)
	if !ok {
		return 0
	}
	return cStrLen(b.data, off, n)
}
