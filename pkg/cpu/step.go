package cpu

import (
	"fmt"

	"github.com/oisee/z80sim/pkg/inst"
)

// Step fetches, decodes, and executes exactly one instruction. A nil Entry
// lookup (CB/ED sub-opcode included) is the only decode failure this core
// recognizes (spec §4.7, "Decode failures").
func Step(s *State, memory *[65536]byte, io *[256]byte) error {
	startPC := s.PC

	opcode := memory[s.PC]
	s.PC++

	var e *inst.Entry
	unknown := opcode
	switch opcode {
	case 0xCB:
		sub := memory[s.PC]
		s.PC++
		e = inst.CB[sub]
		unknown = sub
	case 0xED:
		sub := memory[s.PC]
		s.PC++
		e = inst.ED[sub]
		unknown = sub
	default:
		e = inst.Base[opcode]
	}

	if e == nil {
		return fmt.Errorf("Unknown opcode: 0x%02X at address 0x%04X", unknown, startPC)
	}

	operand, err := fetchOperand(s, memory, e)
	if err != nil {
		return err
	}

	exec(s, e, operand, memory, io)
	return nil
}

// fetchOperand reads the trailing n/nn/(n)/(nn)/d bytes an entry's one
// generic pattern needs, advancing PC past them.
func fetchOperand(s *State, memory *[65536]byte, e *inst.Entry) (int, error) {
	pattern, _, ok := e.GenericOperand()
	if !ok {
		return 0, nil
	}
	switch pattern.Kind {
	case inst.KindImm8, inst.KindMem8:
		v := memory[s.PC]
		s.PC++
		return int(v), nil
	case inst.KindImm16, inst.KindMem16:
		lo := memory[s.PC]
		s.PC++
		hi := memory[s.PC]
		s.PC++
		return int(lo) | int(hi)<<8, nil
	case inst.KindRel:
		d := int8(memory[s.PC])
		s.PC++
		return int(d), nil
	}
	return 0, fmt.Errorf("unsupported operand kind")
}
