// Package cpu implements the Z80 instruction interpreter (spec §4.7): a
// fetch-decode-execute loop over the shared pkg/inst opcode tables, modeling
// only the Zero and Carry flags.
package cpu

import "github.com/oisee/z80sim/pkg/inst"

// Flags holds the two visible status bits (spec §3, §9: "flag model is
// intentionally narrow").
type Flags struct {
	Z bool
	C bool
}

// State is the full visible CPU state (spec §3).
type State struct {
	A, B, C, D, E, H, L uint8
	PC, SP              uint16
	F                   Flags

	ShadowA uint8
	ShadowF Flags

	Halted bool
}

// Reset zeroes A..L and PC, sets SP to 0xFFFF, clears both flag pairs, and
// clears the halted latch (spec §4.7).
func (s *State) Reset() {
	*s = State{SP: 0xFFFF}
}

// Set assigns PC and, if sp is non-nil, SP — both masked to 16 bits.
func (s *State) Set(pc uint16, sp *uint16) {
	s.PC = pc
	if sp != nil {
		s.SP = *sp
	}
}

func (s *State) reg(r inst.RegCode) uint8 {
	switch r {
	case inst.RB:
		return s.B
	case inst.RC:
		return s.C
	case inst.RD:
		return s.D
	case inst.RE:
		return s.E
	case inst.RH:
		return s.H
	case inst.RL:
		return s.L
	case inst.RA:
		return s.A
	}
	return 0
}

func (s *State) setReg(r inst.RegCode, v uint8) {
	switch r {
	case inst.RB:
		s.B = v
	case inst.RC:
		s.C = v
	case inst.RD:
		s.D = v
	case inst.RE:
		s.E = v
	case inst.RH:
		s.H = v
	case inst.RL:
		s.L = v
	case inst.RA:
		s.A = v
	}
}

func (s *State) pair(p inst.PairCode) uint16 {
	switch p {
	case inst.PairBC:
		return uint16(s.B)<<8 | uint16(s.C)
	case inst.PairDE:
		return uint16(s.D)<<8 | uint16(s.E)
	case inst.PairHL:
		return uint16(s.H)<<8 | uint16(s.L)
	case inst.PairSP:
		return s.SP
	}
	return 0
}

func (s *State) setPair(p inst.PairCode, v uint16) {
	switch p {
	case inst.PairBC:
		s.B, s.C = byte(v>>8), byte(v)
	case inst.PairDE:
		s.D, s.E = byte(v>>8), byte(v)
	case inst.PairHL:
		s.H, s.L = byte(v>>8), byte(v)
	case inst.PairSP:
		s.SP = v
	}
}

// flagsByte synthesizes the PUSH AF byte: bit 6 = Z, bit 0 = C, rest zero.
func (s *State) flagsByte() uint8 {
	var b uint8
	if s.F.Z {
		b |= 0x40
	}
	if s.F.C {
		b |= 0x01
	}
	return b
}

func (s *State) setFlagsByte(b uint8) {
	s.F.Z = b&0x40 != 0
	s.F.C = b&0x01 != 0
}

func (s *State) stackPair(p inst.StackPairCode) uint16 {
	switch p {
	case inst.StackBC:
		return uint16(s.B)<<8 | uint16(s.C)
	case inst.StackDE:
		return uint16(s.D)<<8 | uint16(s.E)
	case inst.StackHL:
		return uint16(s.H)<<8 | uint16(s.L)
	case inst.StackAF:
		return uint16(s.A)<<8 | uint16(s.flagsByte())
	}
	return 0
}

func (s *State) setStackPair(p inst.StackPairCode, v uint16) {
	switch p {
	case inst.StackBC:
		s.B, s.C = byte(v>>8), byte(v)
	case inst.StackDE:
		s.D, s.E = byte(v>>8), byte(v)
	case inst.StackHL:
		s.H, s.L = byte(v>>8), byte(v)
	case inst.StackAF:
		s.A = byte(v >> 8)
		s.setFlagsByte(byte(v))
	}
}

func (s *State) condTrue(c inst.CondCode) bool {
	switch c {
	case inst.CondNZ:
		return !s.F.Z
	case inst.CondZ:
		return s.F.Z
	case inst.CondNC:
		return !s.F.C
	case inst.CondC:
		return s.F.C
	}
	return false
}
