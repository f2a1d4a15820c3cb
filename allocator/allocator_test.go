package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMallocFreeRoundTrip(t *testing.T) {
	p := Malloc(16)
	require.NotEqual(t, Ptr(0), p)
	Free(p)
}

func TestReallocNullActsAsMalloc(t *testing.T) {
	p := Realloc(0, 32)
	assert.NotEqual(t, Ptr(0), p)
	Free(p)
}

func TestCallocFreeRoundTrip(t *testing.T) {
	p := Calloc(4, 4)
	require.NotEqual(t, Ptr(0), p)
	Free(p)
}
