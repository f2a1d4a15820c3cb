package main

/*
#include <stddef.h>
*/
import "C"

import (
	"unsafe"

	"github.com/riversideresearch/resolve/shadowobj"
)

//export resolve_stack_obj
func resolve_stack_obj(p unsafe.Pointer, size C.size_t) {
	initRuntime()
	remed.StackObj(shadowobj.Vaddr(uintptr(p)), uint64(size))
}

// The amd64 SysV ABI passes up to six integer arguments in registers, so
// the compiler inserts the widest available overload per frame exit to
// batch stack invalidations cheaply rather than emitting one call per
// live pointer.

//export resolve_invalidate_stack
func resolve_invalidate_stack(p1 unsafe.Pointer) {
	initRuntime()
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p1)))
}

//export resolve_invalidate_stack_2
func resolve_invalidate_stack_2(p1, p2 unsafe.Pointer) {
	initRuntime()
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p1)))
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p2)))
}

//export resolve_invalidate_stack_3
func resolve_invalidate_stack_3(p1, p2, p3 unsafe.Pointer) {
	initRuntime()
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p1)))
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p2)))
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p3)))
}

//export resolve_invalidate_stack_4
func resolve_invalidate_stack_4(p1, p2, p3, p4 unsafe.Pointer) {
	initRuntime()
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p1)))
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p2)))
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p3)))
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p4)))
}

//export resolve_invalidate_stack_5
func resolve_invalidate_stack_5(p1, p2, p3, p4, p5 unsafe.Pointer) {
	initRuntime()
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p1)))
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p2)))
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p3)))
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p4)))
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p5)))
}

//export resolve_invalidate_stack_6
func resolve_invalidate_stack_6(p1, p2, p3, p4, p5, p6 unsafe.Pointer) {
	initRuntime()
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p1)))
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p2)))
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p3)))
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p4)))
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p5)))
	remed.InvalidateStack(shadowobj.Vaddr(uintptr(p6)))
}
