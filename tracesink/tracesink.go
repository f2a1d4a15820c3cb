// Package tracesink implements the line-oriented trace log that every
// remediation and instrumentation hook writes to: each line begins with
// a bracketed tag, one write per call, formatting and I/O failures
// dropped silently rather than surfaced to the instrumented program.
package tracesink

import (
	"fmt"
	"sync"
)

// Sink is a single append-only destination guarded by a mutex, with a
// reused buffer standing in for buffer_writer.rs's fixed on-stack buffer
// (Go has no equivalent stack-allocation control at this level, so the
// buffer grows via append and is reused across calls instead).
type Sink struct {
	mu  sync.Mutex
	w   writer
	buf []byte
}

// writer is the subset of *os.File a Sink needs; tests supply something
// smaller than a real file.
type writer interface {
	Write(p []byte) (int, error)
}

// New wraps w. w may be nil, in which case every write is a silent no-op
// (used when a log file failed to open).
func New(w writer) *Sink {
	return &Sink{w: w, buf: make([]byte, 0, 256)}
}

// Linef writes "[tag] " followed by a fmt.Sprintf-formatted line and a
// trailing newline. Both formatting and write errors are dropped.
func (s *Sink) Linef(tag, format string, args ...interface{}) {
	if s == nil || s.w == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf = s.buf[:0]
	s.buf = append(s.buf, '[')
	s.buf = append(s.buf, tag...)
	s.buf = append(s.buf, ']', ' ')
	s.buf = appendf(s.buf, format, args...)
	s.buf = append(s.buf, '\n')
	_, _ = s.w.Write(s.buf)
}

func appendf(buf []byte, format string, args ...interface{}) []byte {
	// fmt.Appendf would allocate the same way; Sprintf is used here to
	// match the rest of the module's formatting calls and keep this
	// package dependency-free beyond fmt.
	return append(buf, fmt.Sprintf(format, args...)...)
}

// Arg records one scalar argument value at a call site, keyed on the
// instrumented function's name — the narrow libresolve_arg_i8.._float C
// trampolines in cmd/libresolve each call this once with their scalar
// already widened to its native Go type.
func Arg[T any](s *Sink, funcName string, v T) {
	s.Linef("ARG", "function name: %s, value: %v", funcName, v)
}

// Ret records a function's return value, mirroring Arg.
func Ret[T any](s *Sink, funcName string, v T) {
	s.Linef("RET", "function name: %s, value: %v", funcName, v)
}

// BB records a basic-block transition for libresolve_bb.
func (s *Sink) BB(index int, fnName string) {
	s.Linef("BB", "index=%d function=%s", index, fnName)
}
