package main

/*
#include <stdlib.h>

extern void goFlushDlsymLog(void);

static inline void libresolveAtexitTrampoline(void) {
	goFlushDlsymLog();
}

static inline void libresolveRegisterAtexit(void) {
	atexit(libresolveAtexitTrampoline);
}
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/riversideresearch/resolve/symtab"
)

var registerExitOnce sync.Once

//export resolve_dlsym
func resolve_dlsym(handle unsafe.Pointer, symbol *C.char) unsafe.Pointer {
	initRuntime()
	registerExitOnce.Do(func() {
		C.libresolveRegisterAtexit()
	})

	name := ""
	if symbol != nil {
		name = C.GoString(symbol)
	}

	addr, res := symtab.Lookup(uintptr(handle), name)
	dlsymRec.Record(res)
	return unsafe.Pointer(addr)
}

//export flush_dlsym_log
func flush_dlsym_log() {
	initRuntime()
	dlsymRec.Flush()
}

//export goFlushDlsymLog
func goFlushDlsymLog() {
	flush_dlsym_log()
}
