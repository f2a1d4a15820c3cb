package main

/*
#include <stddef.h>
#include <stdbool.h>
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/riversideresearch/resolve/shadowobj"
)

//export resolve_gep
func resolve_gep(base, derived unsafe.Pointer, maxAccess C.size_t) unsafe.Pointer {
	initRuntime()
	result := remed.Gep(shadowobj.Vaddr(uintptr(base)), shadowobj.Vaddr(uintptr(derived)), uint64(maxAccess))
	return unsafe.Pointer(uintptr(result))
}

//export resolve_check_bounds
func resolve_check_bounds(base unsafe.Pointer, size C.size_t) C.bool {
	initRuntime()
	if remed.CheckBounds(shadowobj.Vaddr(uintptr(base)), uint64(size)) {
		return true
	}
	return false
}

//export resolve_obj_type
func resolve_obj_type(p unsafe.Pointer) C.uint8_t {
	initRuntime()
	return C.uint8_t(remed.ObjType(shadowobj.Vaddr(uintptr(p))))
}

//export resolve_get_base_and_limit
func resolve_get_base_and_limit(p unsafe.Pointer, base, limit *unsafe.Pointer) {
	initRuntime()
	b, l, ok := remed.GetBaseAndLimit(shadowobj.Vaddr(uintptr(p)))
	if !ok {
		*base = nil
		*limit = nil
		return
	}
	*base = unsafe.Pointer(uintptr(b))
	*limit = unsafe.Pointer(uintptr(l))
}

//export resolve_report_sanitize_mem_inst_triggered
func resolve_report_sanitize_mem_inst_triggered(p unsafe.Pointer) {
	initRuntime()
	remed.ReportSanitizeMemInstTriggered(shadowobj.Vaddr(uintptr(p)))
}

//export resolve_report_sanitizer_triggered
func resolve_report_sanitizer_triggered() {
	initRuntime()
	remed.ReportSanitizerTriggered()
}
