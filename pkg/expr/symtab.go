// Package expr implements the expression evaluator and symbol table used by
// the two-pass assembler in pkg/asm (spec §4.2).
package expr

import (
	"fmt"
	"strings"
)

// SymbolTable maps uppercased identifiers to their bound 16-bit value
// (labels bind to an address, EQU binds to an evaluated expression), plus a
// side table of DB string-literal byte lengths consumed by len(ident).
type SymbolTable struct {
	values map[string]uint16
	lens   map[string]int
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{values: make(map[string]uint16), lens: make(map[string]int)}
}

// Define binds name to value. Redefining an existing name is an error —
// spec §3: "Duplicate definition is an error."
func (t *SymbolTable) Define(name string, value uint16) error {
	key := strings.ToUpper(name)
	if _, exists := t.values[key]; exists {
		return fmt.Errorf("duplicate label: %s", name)
	}
	t.values[key] = value
	return nil
}

// DefineLen records the byte length of a DB string literal label, for len().
func (t *SymbolTable) DefineLen(name string, n int) {
	t.lens[strings.ToUpper(name)] = n
}

// Lookup returns the bound value for name, if any.
func (t *SymbolTable) Lookup(name string) (uint16, bool) {
	v, ok := t.values[strings.ToUpper(name)]
	return v, ok
}

// LookupLen returns the recorded string length for name, if any.
func (t *SymbolTable) LookupLen(name string) (int, bool) {
	n, ok := t.lens[strings.ToUpper(name)]
	return n, ok
}
