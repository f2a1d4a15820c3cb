package main

/*
#include <stddef.h>
*/
import "C"

import (
	"unsafe"

	"github.com/riversideresearch/resolve/allocator"
	"github.com/riversideresearch/resolve/shadowobj"
)

//export resolve_malloc
func resolve_malloc(size C.size_t) unsafe.Pointer {
	initRuntime()
	ptr := allocator.Malloc(uint64(size))
	remed.Malloc(shadowobj.Vaddr(ptr), uint64(size))
	return unsafe.Pointer(uintptr(ptr))
}

//export resolve_calloc
func resolve_calloc(n, sz C.size_t) unsafe.Pointer {
	initRuntime()
	ptr := allocator.Calloc(uint64(n), uint64(sz))
	remed.Calloc(shadowobj.Vaddr(ptr), uint64(n), uint64(sz))
	return unsafe.Pointer(uintptr(ptr))
}

//export resolve_realloc
func resolve_realloc(old unsafe.Pointer, size C.size_t) unsafe.Pointer {
	initRuntime()
	oldPtr := allocator.Ptr(uintptr(old))
	newPtr := allocator.Realloc(oldPtr, uint64(size))
	remed.Realloc(shadowobj.Vaddr(oldPtr), shadowobj.Vaddr(newPtr), uint64(size))
	return unsafe.Pointer(uintptr(newPtr))
}

//export resolve_free
func resolve_free(p unsafe.Pointer) {
	initRuntime()
	ptr := allocator.Ptr(uintptr(p))
	remed.Free(shadowobj.Vaddr(ptr))
	allocator.Free(ptr)
}

//export resolve_strdup
func resolve_strdup(p *C.char) *C.char {
	initRuntime()
	src := allocator.Ptr(uintptr(unsafe.Pointer(p)))
	srcLen := allocator.Strlen(src)
	dup := allocator.Strdup(src)
	remed.Strdup(shadowobj.Vaddr(dup), srcLen)
	return (*C.char)(unsafe.Pointer(uintptr(dup)))
}

//export resolve_strndup
func resolve_strndup(p *C.char, n C.size_t) *C.char {
	initRuntime()
	src := allocator.Ptr(uintptr(unsafe.Pointer(p)))
	truncated := allocator.Strnlen(src, uint64(n))
	dup := allocator.Strndup(src, uint64(n))
	remed.Strndup(shadowobj.Vaddr(dup), truncated, uint64(n))
	return (*C.char)(unsafe.Pointer(uintptr(dup)))
}

//export resolve_memcpy
func resolve_memcpy(dst, src unsafe.Pointer, n C.size_t) unsafe.Pointer {
	initRuntime()
	dstPtr := allocator.Ptr(uintptr(dst))
	srcPtr := allocator.Ptr(uintptr(src))
	ret := allocator.Memcpy(dstPtr, srcPtr, uint64(n))
	remed.Memcpy(shadowobj.Vaddr(ret), shadowobj.Vaddr(srcPtr), uint64(n))
	return unsafe.Pointer(uintptr(ret))
}
