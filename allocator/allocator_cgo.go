//go:build cgo

package allocator

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"
import "unsafe"

// Malloc calls libc malloc(size+1): the extra byte means PastLimit() of the
// resulting shadow object is always a readable address, never touching
// whatever allocation follows.
func Malloc(size uint64) Ptr {
	p := C.malloc(C.size_t(size + 1))
	return Ptr(uintptr(p))
}

// Calloc calls libc calloc(n, sz) verbatim; overflow of n*sz is left to
// libc, which fails the allocation (returns NULL) rather than wrapping,
// so the size bookkeeping never runs against a single short allocation.
func Calloc(n, sz uint64) Ptr {
	p := C.calloc(C.size_t(n), C.size_t(sz))
	return Ptr(uintptr(p))
}

// Realloc calls libc realloc(ptr, size+1), matching Malloc's extra byte.
func Realloc(ptr Ptr, size uint64) Ptr {
	p := C.realloc(unsafe.Pointer(uintptr(ptr)), C.size_t(size+1))
	return Ptr(uintptr(p))
}

// Free calls libc free(ptr).
func Free(ptr Ptr) {
	C.free(unsafe.Pointer(uintptr(ptr)))
}

// Strdup calls libc strdup(ptr).
func Strdup(ptr Ptr) Ptr {
	p := C.strdup((*C.char)(unsafe.Pointer(uintptr(ptr))))
	return Ptr(uintptr(unsafe.Pointer(p)))
}

// Strndup calls libc strndup(ptr, n).
func Strndup(ptr Ptr, n uint64) Ptr {
	p := C.strndup((*C.char)(unsafe.Pointer(uintptr(ptr))), C.size_t(n))
	return Ptr(uintptr(unsafe.Pointer(p)))
}

// Memcpy calls libc memcpy(dst, src, n) and returns dst, mirroring libc's
// own return-the-destination convention.
func Memcpy(dst, src Ptr, n uint64) Ptr {
	C.memcpy(unsafe.Pointer(uintptr(dst)), unsafe.Pointer(uintptr(src)), C.size_t(n))
	return dst
}

// Strlen calls libc strlen(ptr).
func Strlen(ptr Ptr) uint64 {
	return uint64(C.strlen((*C.char)(unsafe.Pointer(uintptr(ptr)))))
}

// Strnlen calls libc strnlen(ptr, n).
func Strnlen(ptr Ptr, n uint64) uint64 {
	return uint64(C.strnlen((*C.char)(unsafe.Pointer(uintptr(ptr))), C.size_t(n)))
}
