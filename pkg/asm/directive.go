package asm

import (
	"fmt"
	"strings"

	"github.com/oisee/z80sim/pkg/expr"
)

// Directive mnemonics, handled outside the instruction table (spec §4.4).
const (
	dirORG  = "ORG"
	dirEQU  = "EQU"
	dirDB   = "DB"
	dirDEFB = "DEFB"
	dirDEFW = "DEFW"
	dirDEFS = "DEFS"
	dirEND  = "END"
)

func isStringOperand(raw string) bool {
	raw = strings.TrimSpace(raw)
	return len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"'
}

func stringOperandContents(raw string) string {
	raw = strings.TrimSpace(raw)
	return raw[1 : len(raw)-1]
}

// dataSize computes a DB/DEFB line's byte count per spec §4.3: each string
// operand contributes its character count, every other operand contributes 1.
func dataSize(operands []string) int {
	n := 0
	for _, op := range operands {
		if isStringOperand(op) {
			n += len(stringOperandContents(op))
		} else {
			n++
		}
	}
	return n
}

// defsSize evaluates a DEFS line's first operand (byte count); the optional
// second operand is a fill value, not sized here.
func defsSize(operands []string, syms *expr.SymbolTable) (int, error) {
	if len(operands) == 0 || len(operands) > 2 {
		return 0, fmt.Errorf("DEFS requires a size and an optional fill value")
	}
	n, err := expr.Eval(operands[0], syms)
	if err != nil {
		return 0, fmt.Errorf("DEFS size: %w", err)
	}
	if n < 0 {
		return 0, fmt.Errorf("DEFS size must not be negative")
	}
	return n, nil
}
