//go:build cgo

package symtab

/*
#cgo LDFLAGS: -ldl
#define _GNU_SOURCE
#include <dlfcn.h>
#include <stdlib.h>
*/
import "C"
import "unsafe"

// Lookup calls dlsym(handle, symbol) and attributes the returned address
// to a shared object via dladdr, mirroring
// original_source/libresolve/src/lib.rs's resolve_dlsym. handle of 0
// means RTLD_DEFAULT is not modeled here; cmd/libresolve passes the raw
// handle value through from the instrumented caller.
func Lookup(handle uintptr, symbol string) (addr uintptr, res Resolution) {
	cSymbol := C.CString(symbol)
	defer C.free(unsafe.Pointer(cSymbol))

	p := C.dlsym(unsafe.Pointer(uintptr(handle)), cSymbol)

	library := "<unknown>"
	var info C.Dl_info
	if p != nil && C.dladdr(p, &info) != 0 && info.dli_fname != nil {
		library = C.GoString(info.dli_fname)
	}

	symName := symbol
	if symName == "" {
		symName = "<null>"
	}

	return uintptr(p), Resolution{Symbol: symName, Library: library}
}
