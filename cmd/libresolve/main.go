// Command libresolve is the C-ABI shared runtime: built with
// `go build -buildmode=c-shared` (or `c-archive`), it exports the
// resolve_*/libresolve_* symbols an instrumentation pass links against.
// Every exported function is a thin trampoline into the logic packages
// (shadowstore, remediate, allocator, tracesink, symtab, runtimefile) —
// this file only wires them together and owns process-wide state.
package main

/*
#include <stddef.h>
*/
import "C"

import (
	"os"
	"sync"

	"github.com/riversideresearch/resolve/remediate"
	"github.com/riversideresearch/resolve/runtimefile"
	"github.com/riversideresearch/resolve/symtab"
	"github.com/riversideresearch/resolve/tracesink"
)

var (
	initOnce sync.Once

	sinks     *runtimefile.Sinks
	remed     *remediate.Remediator
	traceSink *tracesink.Sink
	errSink   *tracesink.Sink
	dlsymRec  *symtab.Recorder
)

// init runs once the shared object is loaded, before any exported symbol
// becomes callable — the closest Go equivalent to the C
// `__attribute__((constructor))` auto-initialization hook. resolve_init is
// also exported directly so an instrumented binary can call it explicitly
// instead of relying on load-time init().
func init() {
	initRuntime()
}

//export resolve_init
func resolve_init() {
	initRuntime()
}

// initRuntime lazily builds the process-wide sinks and remediator.
// sync.Once makes repeat calls (from init(), resolve_init, or any other
// exported entry point) free.
func initRuntime() {
	initOnce.Do(func() {
		sinks = runtimefile.NewSinks()
		traceSink = tracesink.New(fileOrNil(sinks.TraceFile()))
		errSink = tracesink.New(fileOrNil(sinks.ErrFile()))
		remed = &remediate.Remediator{Trace: traceSink, Errors: errSink}

		dlsymFile, ok := sinks.DlsymFile()
		if ok {
			dlsymRec = symtab.NewRecorder(dlsymFile)
		} else {
			dlsymRec = symtab.NewRecorder(nil)
		}
	})
}

func fileOrNil(f *os.File) *os.File {
	return f
}

func main() {
	// Unused when built with -buildmode=c-shared/c-archive; present so the
	// package also builds as an ordinary binary for local experimentation.
}
