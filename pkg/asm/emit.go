package asm

import (
	"fmt"

	"github.com/oisee/z80sim/pkg/expr"
	"github.com/oisee/z80sim/pkg/inst"
	"github.com/oisee/z80sim/pkg/line"
)

// emit runs pass 2 (spec §4.5): re-walks the IR with the completed symbol
// table and produces the final InstructionDetail stream.
func emit(lines []line.Source, syms *expr.SymbolTable, loadAddress uint16) ([]InstructionDetail, []ErrorEntry) {
	var details []InstructionDetail
	var errs []ErrorEntry
	currentAddress := int(loadAddress)

	fail := func(l line.Source, format string, args ...any) {
		errs = append(errs, ErrorEntry{Line: l.Num, Address: uint16(currentAddress & 0xFFFF), Message: fmt.Sprintf(format, args...)})
	}

	for _, l := range lines {
		if l.Blank {
			continue
		}

		if l.Mnemonic == dirORG {
			continue // address already fixed by pass 1; ORG does not re-emit.
		}
		if l.Mnemonic == dirEND {
			break
		}
		if l.Mnemonic == dirEQU || l.Mnemonic == "" {
			continue
		}

		start := uint16(currentAddress & 0xFFFF)

		switch l.Mnemonic {
		case dirDB, dirDEFB:
			bytes, err := emitData(l.Operands, syms)
			if err != nil {
				fail(l, "%v", err)
				continue
			}
			details = append(details, InstructionDetail{SourceLine: l.Num, StartAddress: &start, Opcodes: bytes})
			currentAddress += len(bytes)
		case dirDEFW:
			bytes, err := emitDefw(l.Operands, syms)
			if err != nil {
				fail(l, "%v", err)
				continue
			}
			details = append(details, InstructionDetail{SourceLine: l.Num, StartAddress: &start, Opcodes: bytes})
			currentAddress += len(bytes)
		case dirDEFS:
			bytes, err := emitDefs(l.Operands, syms)
			if err != nil {
				fail(l, "%v", err)
				continue
			}
			details = append(details, InstructionDetail{SourceLine: l.Num, StartAddress: &start, Opcodes: bytes})
			currentAddress += len(bytes)
		default:
			e, err := inst.Resolve(l.Mnemonic, l.Operands)
			if err != nil {
				fail(l, "%v", err)
				continue
			}
			bytes, err := emitInstruction(e, l, syms, currentAddress)
			if err != nil {
				fail(l, "%v", err)
				continue
			}
			details = append(details, InstructionDetail{SourceLine: l.Num, StartAddress: &start, Opcodes: bytes})
			currentAddress += len(bytes)
		}
	}

	return details, errs
}

func emitInstruction(e *inst.Entry, l line.Source, syms *expr.SymbolTable, addrAtLineStart int) ([]byte, error) {
	out := append([]byte(nil), e.Prefix...)
	pattern, idx, hasGeneric := e.GenericOperand()
	if !hasGeneric {
		return out, nil
	}
	raw := l.Operands[idx]

	switch pattern.Kind {
	case inst.KindImm8:
		v, err := expr.Eval(raw, syms)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(v&0xFF))
	case inst.KindImm16:
		v, err := expr.Eval(raw, syms)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(v&0xFF), byte((v>>8)&0xFF))
	case inst.KindMem8:
		v, err := expr.Eval(inst.StripParens(raw), syms)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(v&0xFF))
	case inst.KindMem16:
		v, err := expr.Eval(inst.StripParens(raw), syms)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(v&0xFF), byte((v>>8)&0xFF))
	case inst.KindRel:
		target, err := expr.Eval(raw, syms)
		if err != nil {
			return nil, err
		}
		nextAddr := addrAtLineStart + e.Size()
		d := target - nextAddr
		if d < -128 || d > 127 {
			return nil, fmt.Errorf("relative jump out of range: %d", d)
		}
		out = append(out, byte(int8(d)))
	default:
		return nil, fmt.Errorf("unsupported generic operand kind")
	}
	return out, nil
}

func emitData(operands []string, syms *expr.SymbolTable) ([]byte, error) {
	var out []byte
	for _, op := range operands {
		if isStringOperand(op) {
			out = append(out, []byte(stringOperandContents(op))...)
			continue
		}
		v, err := expr.Eval(op, syms)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(v&0xFF))
	}
	return out, nil
}

func emitDefw(operands []string, syms *expr.SymbolTable) ([]byte, error) {
	var out []byte
	for _, op := range operands {
		v, err := expr.Eval(op, syms)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(v&0xFF), byte((v>>8)&0xFF))
	}
	return out, nil
}

func emitDefs(operands []string, syms *expr.SymbolTable) ([]byte, error) {
	n, err := defsSize(operands, syms)
	if err != nil {
		return nil, err
	}
	fill := 0
	if len(operands) == 2 {
		fill, err = expr.Eval(operands[1], syms)
		if err != nil {
			return nil, err
		}
	}
	out := make([]byte, n)
	fb := byte(fill & 0xFF)
	for i := range out {
		out[i] = fb
	}
	return out, nil
}
