package cpu

import "github.com/oisee/z80sim/pkg/inst"

// exec carries out the semantics of one decoded instruction. operand is the
// already-fetched n/nn/(n)/(nn)/d value for entries with a generic pattern;
// it is unused (0) otherwise.
func exec(s *State, e *inst.Entry, operand int, memory *[65536]byte, io *[256]byte) {
	op := e.Op
	switch op.Op {

	// --- Loads ---
	case inst.OpLD_R_R:
		s.setReg(op.Dst, s.reg(op.Src))
	case inst.OpLD_R_N:
		s.setReg(op.Dst, byte(operand))
	case inst.OpLD_R_HL:
		s.setReg(op.Dst, memory[s.pair(inst.PairHL)])
	case inst.OpLD_HL_R:
		memory[s.pair(inst.PairHL)] = s.reg(op.Src)
	case inst.OpLD_HL_N:
		memory[s.pair(inst.PairHL)] = byte(operand)
	case inst.OpLD_A_BC:
		s.A = memory[s.pair(inst.PairBC)]
	case inst.OpLD_A_DE:
		s.A = memory[s.pair(inst.PairDE)]
	case inst.OpLD_BC_A:
		memory[s.pair(inst.PairBC)] = s.A
	case inst.OpLD_DE_A:
		memory[s.pair(inst.PairDE)] = s.A
	case inst.OpLD_A_NN:
		s.A = memory[uint16(operand)]
	case inst.OpLD_NN_A:
		memory[uint16(operand)] = s.A
	case inst.OpLD_HLInd_NN:
		addr := uint16(operand)
		lo := memory[addr]
		hi := memory[addr+1]
		s.setPair(inst.PairHL, uint16(lo)|uint16(hi)<<8)
	case inst.OpLD_NN_HLInd:
		addr := uint16(operand)
		hl := s.pair(inst.PairHL)
		memory[addr] = byte(hl)
		memory[addr+1] = byte(hl >> 8)
	case inst.OpLD_RR_NN:
		s.setPair(op.Pair, uint16(operand))
	case inst.OpLD_SP_HL:
		s.SP = s.pair(inst.PairHL)
	case inst.OpEX_DE_HL:
		de, hl := s.pair(inst.PairDE), s.pair(inst.PairHL)
		s.setPair(inst.PairDE, hl)
		s.setPair(inst.PairHL, de)
	case inst.OpEX_AF_AF:
		s.A, s.ShadowA = s.ShadowA, s.A
		s.F, s.ShadowF = s.ShadowF, s.F
	case inst.OpEX_SP_HL:
		lo := memory[s.SP]
		hi := memory[s.SP+1]
		hl := s.pair(inst.PairHL)
		memory[s.SP] = byte(hl)
		memory[s.SP+1] = byte(hl >> 8)
		s.setPair(inst.PairHL, uint16(lo)|uint16(hi)<<8)

	// --- INC/DEC ---
	case inst.OpINC_R:
		v := s.reg(op.Dst) + 1
		s.F.Z = v == 0
		s.setReg(op.Dst, v)
	case inst.OpDEC_R:
		v := s.reg(op.Dst) - 1
		s.F.Z = v == 0
		s.setReg(op.Dst, v)
	case inst.OpINC_HL_IND:
		addr := s.pair(inst.PairHL)
		v := memory[addr] + 1
		s.F.Z = v == 0
		memory[addr] = v
	case inst.OpDEC_HL_IND:
		addr := s.pair(inst.PairHL)
		v := memory[addr] - 1
		s.F.Z = v == 0
		memory[addr] = v
	case inst.OpINC_RR:
		s.setPair(op.Pair, s.pair(op.Pair)+1)
	case inst.OpDEC_RR:
		s.setPair(op.Pair, s.pair(op.Pair)-1)

	// --- 8-bit ALU ---
	case inst.OpADD_A_R:
		s.arith(int(s.reg(op.Src)), false)
	case inst.OpADD_A_N:
		s.arith(operand, false)
	case inst.OpADD_A_HL:
		s.arith(int(memory[s.pair(inst.PairHL)]), false)
	case inst.OpADC_A_R:
		s.arith(int(s.reg(op.Src)), true)
	case inst.OpADC_A_N:
		s.arith(operand, true)
	case inst.OpSUB_R:
		s.subtract(int(s.reg(op.Src)), false, true)
	case inst.OpSUB_N:
		s.subtract(operand, false, true)
	case inst.OpSUB_HL:
		s.subtract(int(memory[s.pair(inst.PairHL)]), false, true)
	case inst.OpSBC_A_R:
		s.subtract(int(s.reg(op.Src)), true, true)
	case inst.OpSBC_A_N:
		s.subtract(operand, true, true)
	case inst.OpSBC_A_HL:
		s.subtract(int(memory[s.pair(inst.PairHL)]), true, true)
	case inst.OpCP_R:
		s.subtract(int(s.reg(op.Src)), false, false)
	case inst.OpCP_N:
		s.subtract(operand, false, false)
	case inst.OpCP_HL:
		s.subtract(int(memory[s.pair(inst.PairHL)]), false, false)
	case inst.OpNEG:
		result := 0 - int(s.A)
		s.setArithFlags(result)
		s.A = byte(result)
	case inst.OpAND_R:
		s.bitwiseAnd(s.reg(op.Src))
	case inst.OpAND_N:
		s.bitwiseAnd(byte(operand))
	case inst.OpAND_HL:
		s.bitwiseAnd(memory[s.pair(inst.PairHL)])
	case inst.OpXOR_R:
		s.bitwiseXor(s.reg(op.Src))
	case inst.OpXOR_N:
		s.bitwiseXor(byte(operand))
	case inst.OpXOR_HL:
		s.bitwiseXor(memory[s.pair(inst.PairHL)])
	case inst.OpOR_R:
		s.bitwiseOr(s.reg(op.Src))
	case inst.OpOR_N:
		s.bitwiseOr(byte(operand))
	case inst.OpOR_HL:
		s.bitwiseOr(memory[s.pair(inst.PairHL)])

	// --- 16-bit add ---
	case inst.OpADD_HL_RR:
		sum := int(s.pair(inst.PairHL)) + int(s.pair(op.Pair))
		s.F.C = sum > 0xFFFF
		s.setPair(inst.PairHL, uint16(sum))

	// --- Rotate/shift accumulator and misc single-flag ops ---
	case inst.OpRLCA:
		c := s.A&0x80 != 0
		s.A = s.A<<1 | b2u8(c)
		s.F.C = c
	case inst.OpRRCA:
		c := s.A&0x01 != 0
		s.A = s.A>>1 | b2u8(c)<<7
		s.F.C = c
	case inst.OpRLA:
		oldC := s.F.C
		c := s.A&0x80 != 0
		s.A = s.A<<1 | b2u8(oldC)
		s.F.C = c
	case inst.OpRRA:
		oldC := s.F.C
		c := s.A&0x01 != 0
		s.A = s.A>>1 | b2u8(oldC)<<7
		s.F.C = c
	case inst.OpCPL:
		s.A = ^s.A
	case inst.OpSCF:
		s.F.C = true
	case inst.OpCCF:
		s.F.C = !s.F.C

	// --- Control flow ---
	case inst.OpJP_NN:
		s.PC = uint16(operand)
	case inst.OpJP_HL:
		s.PC = s.pair(inst.PairHL)
	case inst.OpJR_D:
		s.PC = uint16(int(s.PC) + operand)
	case inst.OpJP_CC_NN:
		if s.condTrue(op.Cond) {
			s.PC = uint16(operand)
		}
	case inst.OpJR_CC_D:
		if s.condTrue(op.Cond) {
			s.PC = uint16(int(s.PC) + operand)
		}
	case inst.OpCALL_NN:
		pushWord(s, memory, s.PC)
		s.PC = uint16(operand)
	case inst.OpCALL_CC_NN:
		if s.condTrue(op.Cond) {
			pushWord(s, memory, s.PC)
			s.PC = uint16(operand)
		}
	case inst.OpRET:
		s.PC = popWord(s, memory)
	case inst.OpRET_CC:
		if s.condTrue(op.Cond) {
			s.PC = popWord(s, memory)
		}
	case inst.OpDJNZ_D:
		s.B--
		if s.B != 0 {
			s.PC = uint16(int(s.PC) + operand)
		}

	// --- Stack ---
	case inst.OpPUSH_RR:
		pushWord(s, memory, s.stackPair(op.Stack))
	case inst.OpPOP_RR:
		s.setStackPair(op.Stack, popWord(s, memory))

	// --- I/O ---
	case inst.OpOUT_N_A:
		io[operand&0xFF] = s.A
	case inst.OpIN_A_N:
		s.A = io[operand&0xFF]

	// --- Block ---
	case inst.OpLDIR:
		execLDIR(s, memory)

	case inst.OpHALT:
		s.Halted = true
	case inst.OpNOP:
		// no-op

	// --- CB-prefixed rotate/shift ---
	case inst.OpCB_ROT_R:
		v, c := rotateShift(op.Group, s.reg(op.Dst), s.F.C)
		s.F.C = c
		s.F.Z = v == 0
		s.setReg(op.Dst, v)
	case inst.OpCB_ROT_HL:
		addr := s.pair(inst.PairHL)
		v, c := rotateShift(op.Group, memory[addr], s.F.C)
		s.F.C = c
		s.F.Z = v == 0
		memory[addr] = v

	// --- BIT/RES/SET ---
	case inst.OpBIT_B_R:
		s.F.Z = (s.reg(op.Dst)>>op.Bit)&1 == 0
	case inst.OpBIT_B_HL:
		s.F.Z = (memory[s.pair(inst.PairHL)]>>op.Bit)&1 == 0
	case inst.OpRES_B_R:
		s.setReg(op.Dst, s.reg(op.Dst)&^(1<<op.Bit))
	case inst.OpRES_B_HL:
		addr := s.pair(inst.PairHL)
		memory[addr] &^= 1 << op.Bit
	case inst.OpSET_B_R:
		s.setReg(op.Dst, s.reg(op.Dst)|(1<<op.Bit))
	case inst.OpSET_B_HL:
		addr := s.pair(inst.PairHL)
		memory[addr] |= 1 << op.Bit
	}
}

// arith computes A ← A + operand (+ carry, if withCarry) and sets flags
// per spec §4.7's out-of-range test.
func (s *State) arith(operand int, withCarry bool) {
	c := 0
	if withCarry && s.F.C {
		c = 1
	}
	result := int(s.A) + operand + c
	s.setArithFlags(result)
	s.A = byte(result)
}

// subtract computes A - operand (- carry, if withCarry) and sets flags; when
// writeBack is false (CP) the result is discarded after flags are set.
func (s *State) subtract(operand int, withCarry, writeBack bool) {
	c := 0
	if withCarry && s.F.C {
		c = 1
	}
	result := int(s.A) - operand - c
	s.setArithFlags(result)
	if writeBack {
		s.A = byte(result)
	}
}

func (s *State) setArithFlags(result int) {
	s.F.Z = result&0xFF == 0
	s.F.C = result > 255 || result < 0
}

func (s *State) bitwiseAnd(v byte) {
	s.A &= v
	s.F.Z = s.A == 0
	s.F.C = false
}

func (s *State) bitwiseOr(v byte) {
	s.A |= v
	s.F.Z = s.A == 0
	s.F.C = false
}

func (s *State) bitwiseXor(v byte) {
	s.A ^= v
	s.F.Z = s.A == 0
	s.F.C = false
}

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func pushWord(s *State, memory *[65536]byte, v uint16) {
	s.SP--
	memory[s.SP] = byte(v >> 8)
	s.SP--
	memory[s.SP] = byte(v)
}

func popWord(s *State, memory *[65536]byte) uint16 {
	lo := memory[s.SP]
	s.SP++
	hi := memory[s.SP]
	s.SP++
	return uint16(lo) | uint16(hi)<<8
}

func execLDIR(s *State, memory *[65536]byte) {
	bc := s.pair(inst.PairBC)
	hl := s.pair(inst.PairHL)
	de := s.pair(inst.PairDE)
	for bc != 0 {
		memory[de] = memory[hl]
		hl++
		de++
		bc--
	}
	s.setPair(inst.PairHL, hl)
	s.setPair(inst.PairDE, de)
	s.setPair(inst.PairBC, bc)
}

// rotateShift applies one CB-prefixed group operation, returning the result
// and the bit shifted into carry.
func rotateShift(g inst.ShiftGroup, val byte, carryIn bool) (result byte, carryOut bool) {
	switch g {
	case inst.GroupRLC:
		carryOut = val&0x80 != 0
		result = val<<1 | b2u8(carryOut)
	case inst.GroupRRC:
		carryOut = val&0x01 != 0
		result = val>>1 | b2u8(carryOut)<<7
	case inst.GroupRL:
		carryOut = val&0x80 != 0
		result = val<<1 | b2u8(carryIn)
	case inst.GroupRR:
		carryOut = val&0x01 != 0
		result = val>>1 | b2u8(carryIn)<<7
	case inst.GroupSLA:
		carryOut = val&0x80 != 0
		result = val << 1
	case inst.GroupSRA:
		carryOut = val&0x01 != 0
		result = val>>1 | (val & 0x80)
	case inst.GroupSRL:
		carryOut = val&0x01 != 0
		result = val >> 1
	}
	return
}
