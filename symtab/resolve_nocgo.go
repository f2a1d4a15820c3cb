//go:build !cgo

package symtab

// Lookup stands in for the cgo dlsym/dladdr call so package symtab (and
// anything that imports it) stays buildable and testable without a C
// toolchain; it always reports an unresolved symbol.
func Lookup(handle uintptr, symbol string) (addr uintptr, res Resolution) {
	symName := symbol
	if symName == "" {
		symName = "<null>"
	}
	return 0, Resolution{Symbol: symName, Library: "<unknown>"}
}
