// Package allocator wraps the libc allocator family
// (malloc/calloc/realloc/free/strdup/strndup/memcpy) that the instrumented
// program's allocation sites are rewritten to call through. Like symtab,
// it touches cgo directly and is split into a "_cgo.go"/"_nocgo.go" pair: the cgo build reaches straight into libc,
// and the pure-Go build substitutes a Go-backed stand-in so the rest of
// the module (and its tests) stay buildable without cgo.
package allocator

// Ptr is a raw address as seen across the C ABI: zero means "null".
type Ptr uintptr
