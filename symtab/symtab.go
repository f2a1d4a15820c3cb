// Package symtab implements the dynamic symbol recorder: resolve_dlsym
// wraps libc dlsym/dladdr, and every resolved symbol is appended to a
// JSON array written incrementally — a header on first use, one object
// per call, a footer on process exit.
package symtab

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Resolution is one successfully or unsuccessfully resolved symbol.
type Resolution struct {
	Symbol  string
	Library string // "<unknown>" if dladdr could not attribute an address
}

// Recorder accumulates Resolutions into a JSON envelope written to File:
//
//	{
//	  "loaded_symbols": [
//	    { "symbol": "a", "library": "liba.so" },
//	    { "symbol": "b", "library": "libb.so" }
//	  ]
//	}
//
// The header is written on the first Record call; Flush erases the
// trailing ",\n" left by the last entry and writes the closing footer.
// Both are best-effort: write errors are dropped.
type Recorder struct {
	headerOnce sync.Once
	mu         sync.Mutex
	file       *os.File
}

// NewRecorder wraps f. f may be nil, in which case recording is a no-op
// (the dlsym log failed to open).
func NewRecorder(f *os.File) *Recorder {
	return &Recorder{file: f}
}

// Record appends one resolved symbol to the JSON array, writing the
// header first if this is the first call.
func (r *Recorder) Record(res Resolution) {
	if r == nil || r.file == nil {
		return
	}
	r.headerOnce.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		_, _ = fmt.Fprint(r.file, "{\n  \"loaded_symbols\": [\n")
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.file, "    { \"symbol\": %q, \"library\": %q },\n", res.Symbol, res.Library)
}

// Flush truncates the last entry's trailing ",\n" (the final 2 bytes of
// the file) and writes the closing "\n  ]\n}\n". Truncating rather than
// only seeking keeps this correct for a file opened with O_APPEND, where
// every write lands at the end regardless of the offset. Registered once
// via atexit in cmd/libresolve so it runs exactly once at process exit.
func (r *Recorder) Flush() {
	if r == nil || r.file == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	end, err := r.file.Seek(0, io.SeekEnd)
	if err != nil || end < 2 {
		return
	}
	if err := r.file.Truncate(end - 2); err != nil {
		return
	}
	if _, err := r.file.Seek(end-2, io.SeekStart); err != nil {
		return
	}
	_, _ = fmt.Fprint(r.file, "\n  ]\n}\n")
}
