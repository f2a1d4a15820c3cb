package runtimefile

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdifyPathWithExtension(t *testing.T) {
	assert.Equal(t, "trace_1234.out", IdifyPath("trace.out", 1234))
}

func TestIdifyPathWithoutExtension(t *testing.T) {
	assert.Equal(t, "trace_1234", IdifyPath("trace", 1234))
}

func TestIdifyPathWithDirectoryComponent(t *testing.T) {
	assert.Equal(t, "/var/log/resolve_42.json", IdifyPath("/var/log/resolve.json", 42))
}

func TestIdifyPathMultipleDots(t *testing.T) {
	assert.Equal(t, "a.b_7.c", IdifyPath("a.b.c", 7))
}

func TestEnvOrDefaultUsesDefaultWhenUnset(t *testing.T) {
	name := "RESOLVE_TEST_ENV_UNSET_VAR"
	os.Unsetenv(name)
	assert.Equal(t, "fallback", envOrDefault(name, "fallback"))
}

func TestEnvOrDefaultUsesEnvWhenSet(t *testing.T) {
	name := "RESOLVE_TEST_ENV_SET_VAR"
	require.NoError(t, os.Setenv(name, "/tmp/custom.out"))
	defer os.Unsetenv(name)
	assert.Equal(t, "/tmp/custom.out", envOrDefault(name, "fallback"))
}

func TestTraceFileIsLazyAndMemoized(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Setenv(EnvTraceLog, dir+"/trace.out"))
	defer os.Unsetenv(EnvTraceLog)

	s := NewSinks()
	f1 := s.TraceFile()
	f2 := s.TraceFile()
	require.NotNil(t, f1)
	assert.Same(t, f1, f2)
}

func TestErrFileToleratesOpenFailure(t *testing.T) {
	// The PID-suffixed path is a directory, which can never be opened as a
	// regular file for append.
	path := t.TempDir() + "/err.out"
	require.NoError(t, os.Mkdir(IdifyPath(path, os.Getpid()), 0o755))
	require.NoError(t, os.Setenv(EnvErrLog, path))
	defer os.Unsetenv(EnvErrLog)

	s := NewSinks()
	assert.Nil(t, s.ErrFile())
}

func TestDlsymFileReportsFailureWithoutPanicking(t *testing.T) {
	// The PID-suffixed path is a directory, so opening it fails.
	path := t.TempDir() + "/dlsym.json"
	require.NoError(t, os.Mkdir(IdifyPath(path, os.Getpid()), 0o755))
	require.NoError(t, os.Setenv(EnvDlsymLog, path))
	defer os.Unsetenv(EnvDlsymLog)

	s := NewSinks()
	f, ok := s.DlsymFile()
	assert.Nil(t, f)
	assert.False(t, ok)
}

func TestDlsymFileSucceedsAndMemoizes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Setenv(EnvDlsymLog, dir+"/dlsym.json"))
	defer os.Unsetenv(EnvDlsymLog)

	s := NewSinks()
	f1, ok1 := s.DlsymFile()
	f2, ok2 := s.DlsymFile()
	require.True(t, ok1)
	assert.True(t, ok2)
	assert.Same(t, f1, f2)
}
