package tracesink

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	lines []string
}

func (f *fakeWriter) Write(p []byte) (int, error) {
	f.lines = append(f.lines, string(p))
	return len(p), nil
}

func TestLinefWritesTaggedLine(t *testing.T) {
	w := &fakeWriter{}
	s := New(w)
	s.Linef("HEAP", "size=%d addr=0x%x", 16, 0xdeadbeef)

	require.Len(t, w.lines, 1)
	assert.True(t, strings.HasPrefix(w.lines[0], "[HEAP] "))
	assert.Contains(t, w.lines[0], "size=16")
	assert.True(t, strings.HasSuffix(w.lines[0], "\n"))
}

func TestLinefOnNilWriterIsNoop(t *testing.T) {
	s := New(nil)
	assert.NotPanics(t, func() {
		s.Linef("HEAP", "size=%d", 1)
	})
}

func TestLinefOnNilSinkIsNoop(t *testing.T) {
	var s *Sink
	assert.NotPanics(t, func() {
		s.Linef("HEAP", "size=%d", 1)
	})
}

func TestArgAndRetFormatScalars(t *testing.T) {
	w := &fakeWriter{}
	s := New(w)

	Arg(s, "do_work", int32(42))
	Ret(s, "do_work", uintptr(0x1000))

	require.Len(t, w.lines, 2)
	assert.Contains(t, w.lines[0], "[ARG]")
	assert.Contains(t, w.lines[0], "function name: do_work")
	assert.Contains(t, w.lines[0], "value: 42")
	assert.Contains(t, w.lines[1], "[RET]")
	assert.Contains(t, w.lines[1], "function name: do_work")
}

func TestBBRecordsBasicBlockTransitions(t *testing.T) {
	w := &fakeWriter{}
	s := New(w)
	s.BB(3, "main")

	require.Len(t, w.lines, 1)
	assert.Contains(t, w.lines[0], "[BB]")
	assert.Contains(t, w.lines[0], "index=3")
	assert.Contains(t, w.lines[0], "function=main")
}

func TestLinefIsConcurrencySafe(t *testing.T) {
	w := &fakeWriter{}
	s := New(w)
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			s.Linef("STACK", "n=%d", n)
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	assert.Len(t, w.lines, 8)
}
