// Package runtimefile owns the three per-process log sinks (trace, error,
// and dlsym JSON) and the PID-suffixed path naming they share.
package runtimefile

import (
	"os"
	"strconv"
	"strings"
	"sync"

	baseerrors "github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// Default sink paths, used when the corresponding environment variable is
// unset.
const (
	DefaultDlsymLogPath = "resolve_dlsym.json"
	DefaultTraceLogPath = "resolve_log.out"
	DefaultErrLogPath   = "resolve_err_log.out"
)

// Environment variable names. Configuration parsing beyond these three
// variables is explicitly out of scope.
const (
	EnvDlsymLog = "RESOLVE_DLSYM_LOG"
	EnvTraceLog = "RESOLVE_RUNTIME_LOG"
	EnvErrLog   = "RESOLVE_RUNTIME_ERR"
)

// TraceLogOpenFailureExitCode is returned by the process when the trace log
// cannot be created.
const TraceLogOpenFailureExitCode = 12

// IdifyPath inserts id before the final "." extension of path, or appends
// it if path has none. Exact port of original_source/libresolve/src/lib.rs's
// idify_file_path.
func IdifyPath(path string, id int) string {
	stem, ext, ok := strings.Cut(reverse(path), ".")
	if !ok {
		return path + "_" + strconv.Itoa(id)
	}
	// stem/ext are reversed; un-reverse and reassemble as "<stem>_<id>.<ext>".
	ext = reverse(ext)
	stem = reverse(stem)
	return ext + "_" + strconv.Itoa(id) + "." + stem
}

func reverse(s string) string {
	r := []byte(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func envOrDefault(name, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return def
}

// openSink opens path (already PID-suffixed) for append, creating it if
// necessary, with mode 0644.
func openSink(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log sink %q", path)
	}
	return f, nil
}

// Sinks are the three lazily-created, process-wide log files.
type Sinks struct {
	dlsymOnce sync.Once
	dlsymFile *os.File
	dlsymErr  baseerrors.Once

	traceOnce sync.Once
	traceFile *os.File

	errOnce sync.Once
	errFile *os.File
}

// NewSinks constructs an empty Sinks; all three files are opened lazily on
// first use.
func NewSinks() *Sinks {
	return &Sinks{}
}

// TraceFile lazily opens (or returns) the runtime trace log. Failure to
// create it aborts the process with exit code 12.
func (s *Sinks) TraceFile() *os.File {
	s.traceOnce.Do(func() {
		path := IdifyPath(envOrDefault(EnvTraceLog, DefaultTraceLogPath), os.Getpid())
		f, err := openSink(path)
		if err != nil {
			// log.Fatalf exits with status 1; the trace log failure needs
			// the specific status 12, so log and exit directly.
			log.Printf("resolve: could not create runtime trace log %q: %v", path, err)
			os.Exit(TraceLogOpenFailureExitCode)
		}
		s.traceFile = f
	})
	return s.traceFile
}

// ErrFile lazily opens (or returns) the runtime error log. Unlike the trace
// log, failure here does not abort the process (only the trace log
// failure is fatal).
func (s *Sinks) ErrFile() *os.File {
	s.errOnce.Do(func() {
		path := IdifyPath(envOrDefault(EnvErrLog, DefaultErrLogPath), os.Getpid())
		f, err := openSink(path)
		if err != nil {
			log.Printf("resolve: could not create runtime error log %q: %v", path, err)
			return
		}
		s.errFile = f
	})
	return s.errFile
}

// DlsymFile lazily opens (or returns) the dlsym JSON log. Failure here is
// tolerated: dlsym recording becomes a no-op.
func (s *Sinks) DlsymFile() (*os.File, bool) {
	s.dlsymOnce.Do(func() {
		path := IdifyPath(envOrDefault(EnvDlsymLog, DefaultDlsymLogPath), os.Getpid())
		f, err := openSink(path)
		if err != nil {
			log.Printf("resolve: could not create dlsym log %q, recording disabled: %v", path, err)
			s.dlsymErr.Set(err)
			return
		}
		s.dlsymFile = f
	})
	return s.dlsymFile, s.dlsymErr.Err() == nil
}
