package asm

import (
	"fmt"

	"github.com/oisee/z80sim/pkg/expr"
	"github.com/oisee/z80sim/pkg/inst"
	"github.com/oisee/z80sim/pkg/line"
)

// layout runs pass 1 (spec §4.4): interns labels and EQU values, records
// DB string lengths, and computes the load address — without emitting bytes.
func layout(lines []line.Source) (*expr.SymbolTable, uint16, []ErrorEntry) {
	syms := expr.NewSymbolTable()
	var errs []ErrorEntry
	currentAddress := 0
	loadAddress := uint16(0)

	fail := func(l line.Source, format string, args ...any) {
		errs = append(errs, ErrorEntry{Line: l.Num, Address: uint16(currentAddress & 0xFFFF), Message: fmt.Sprintf(format, args...)})
	}

	for _, l := range lines {
		if l.Blank {
			continue
		}

		if l.Mnemonic == dirORG {
			if len(l.Operands) != 1 {
				fail(l, "ORG requires exactly one operand")
				continue
			}
			if currentAddress != 0 {
				fail(l, "ORG after non-zero address")
				continue
			}
			v, err := expr.Eval(l.Operands[0], syms)
			if err != nil {
				fail(l, "ORG: %v", err)
				continue
			}
			loadAddress = uint16(v & 0xFFFF)
			currentAddress = int(loadAddress)
			continue
		}

		if l.Label != "" && l.Mnemonic != dirEQU {
			if err := syms.Define(l.Label, uint16(currentAddress&0xFFFF)); err != nil {
				fail(l, "%v", err)
			}
		}

		if l.Mnemonic == "" {
			continue
		}

		switch l.Mnemonic {
		case dirEQU:
			if l.Label == "" {
				fail(l, "EQU without label")
				continue
			}
			if len(l.Operands) != 1 {
				fail(l, "EQU requires exactly one operand")
				continue
			}
			v, err := expr.Eval(l.Operands[0], syms)
			if err != nil {
				fail(l, "EQU: %v", err)
				continue
			}
			if err := syms.Define(l.Label, uint16(v&0xFFFF)); err != nil {
				fail(l, "%v", err)
			}
		case dirDB, dirDEFB:
			if l.Label != "" && len(l.Operands) == 1 && isStringOperand(l.Operands[0]) {
				syms.DefineLen(l.Label, len(stringOperandContents(l.Operands[0])))
			}
			currentAddress += dataSize(l.Operands)
		case dirDEFW:
			currentAddress += 2 * len(l.Operands)
		case dirDEFS:
			n, err := defsSize(l.Operands, syms)
			if err != nil {
				fail(l, "%v", err)
				continue
			}
			currentAddress += n
		case dirEND:
			return syms, loadAddress, errs
		default:
			e, err := inst.Resolve(l.Mnemonic, l.Operands)
			if err != nil {
				fail(l, "%v", err)
				continue
			}
			currentAddress += e.Size()
		}
	}

	return syms, loadAddress, errs
}
