package inst

import "fmt"

// Entry is one instruction definition: the patterns the assembler matches
// source operands against, the opcode-prefix bytes it emits, and the
// operand codes (register/pair/condition/bit/shift-group) the CPU decoder
// and executor need to carry out the semantics. Exactly one of Operands may
// be generic (Imm8/Imm16/Mem8/Mem16/Rel); spec §4.3's "one generic operand
// per pattern" instruction set never needs two.
type Entry struct {
	Mnemonic string
	Operands []Pattern
	Prefix   []byte

	Op RegCode2Op // see below: the semantic family plus its operand codes
}

// RegCode2Op bundles the semantic tag with whichever of the operand codes
// that family actually uses; unused fields stay at their zero value.
type RegCode2Op struct {
	Op    Op
	Dst   RegCode
	Src   RegCode
	Pair  PairCode
	Stack StackPairCode
	Cond  CondCode
	Bit   uint8
	Group ShiftGroup
}

// Size returns the total encoded length of this instruction.
func (e *Entry) Size() int {
	n := len(e.Prefix)
	for _, p := range e.Operands {
		n += p.ByteSize()
	}
	return n
}

// GenericOperand returns the one generic (non-literal) operand pattern in
// this entry, and its index, if any.
func (e *Entry) GenericOperand() (Pattern, int, bool) {
	for i, p := range e.Operands {
		if p.IsGeneric() {
			return p, i, true
		}
	}
	return Pattern{}, -1, false
}

// Table holds every instruction definition, in declaration order — the
// order entries were appended during init(), which is also the order
// Resolve falls back to when several entries match equally well.
var Table []Entry

// Base/CB/ED are opcode-byte decode tables the CPU uses directly; they are
// derived from Table once at init time so the assembler and the CPU never
// drift apart (spec §9's "generation from the same source of truth").
var (
	Base [256]*Entry
	CB   [256]*Entry
	ED   [256]*Entry
)

const hlBits uint8 = 6

func reg8(r RegCode) uint8 { return regBits[r] }

func addEntry(e Entry) {
	Table = append(Table, e)
	registerDecode(&Table[len(Table)-1])
}

func registerDecode(e *Entry) {
	switch len(e.Prefix) {
	case 1:
		if Base[e.Prefix[0]] != nil {
			panic(fmt.Sprintf("duplicate base opcode 0x%02X (%s)", e.Prefix[0], e.Mnemonic))
		}
		Base[e.Prefix[0]] = e
	case 2:
		switch e.Prefix[0] {
		case 0xCB:
			if CB[e.Prefix[1]] != nil {
				panic(fmt.Sprintf("duplicate CB opcode 0x%02X (%s)", e.Prefix[1], e.Mnemonic))
			}
			CB[e.Prefix[1]] = e
		case 0xED:
			if ED[e.Prefix[1]] != nil {
				panic(fmt.Sprintf("duplicate ED opcode 0x%02X (%s)", e.Prefix[1], e.Mnemonic))
			}
			ED[e.Prefix[1]] = e
		default:
			panic("unsupported two-byte prefix")
		}
	default:
		panic("unsupported prefix length")
	}
}

func init() {
	regs := []RegCode{RB, RC, RD, RE, RH, RL, RA}
	pairs := []PairCode{PairBC, PairDE, PairHL, PairSP}
	stackPairs := []StackPairCode{StackBC, StackDE, StackHL, StackAF}
	conds := []CondCode{CondNZ, CondZ, CondNC, CondC}
	groups := []ShiftGroup{GroupRLC, GroupRRC, GroupRL, GroupRR, GroupSLA, GroupSRA, GroupSRL}

	// --- LD r, r' (49 combinations) ---
	for _, d := range regs {
		for _, s := range regs {
			addEntry(Entry{
				Mnemonic: "LD",
				Operands: []Pattern{Lit(d.Name()), Lit(s.Name())},
				Prefix:   []byte{0x40 | reg8(d)<<3 | reg8(s)},
				Op:       RegCode2Op{Op: OpLD_R_R, Dst: d, Src: s},
			})
		}
	}

	// --- LD r, n ---
	for _, d := range regs {
		addEntry(Entry{
			Mnemonic: "LD",
			Operands: []Pattern{Lit(d.Name()), Imm8},
			Prefix:   []byte{0x06 | reg8(d)<<3},
			Op:       RegCode2Op{Op: OpLD_R_N, Dst: d},
		})
	}

	// --- LD r, (HL) / LD (HL), r ---
	for _, r := range regs {
		addEntry(Entry{
			Mnemonic: "LD",
			Operands: []Pattern{Lit(r.Name()), Lit("(HL)")},
			Prefix:   []byte{0x46 | reg8(r)<<3},
			Op:       RegCode2Op{Op: OpLD_R_HL, Dst: r},
		})
		addEntry(Entry{
			Mnemonic: "LD",
			Operands: []Pattern{Lit("(HL)"), Lit(r.Name())},
			Prefix:   []byte{0x70 | reg8(r)},
			Op:       RegCode2Op{Op: OpLD_HL_R, Src: r},
		})
	}
	addEntry(Entry{Mnemonic: "LD", Operands: []Pattern{Lit("(HL)"), Imm8}, Prefix: []byte{0x36}, Op: RegCode2Op{Op: OpLD_HL_N}})

	// --- LD A,(BC)/(DE) and LD (BC)/(DE),A ---
	addEntry(Entry{Mnemonic: "LD", Operands: []Pattern{Lit("A"), Lit("(BC)")}, Prefix: []byte{0x0A}, Op: RegCode2Op{Op: OpLD_A_BC}})
	addEntry(Entry{Mnemonic: "LD", Operands: []Pattern{Lit("A"), Lit("(DE)")}, Prefix: []byte{0x1A}, Op: RegCode2Op{Op: OpLD_A_DE}})
	addEntry(Entry{Mnemonic: "LD", Operands: []Pattern{Lit("(BC)"), Lit("A")}, Prefix: []byte{0x02}, Op: RegCode2Op{Op: OpLD_BC_A}})
	addEntry(Entry{Mnemonic: "LD", Operands: []Pattern{Lit("(DE)"), Lit("A")}, Prefix: []byte{0x12}, Op: RegCode2Op{Op: OpLD_DE_A}})

	// --- Absolute (nn) loads for A and HL ---
	addEntry(Entry{Mnemonic: "LD", Operands: []Pattern{Lit("A"), Mem16}, Prefix: []byte{0x3A}, Op: RegCode2Op{Op: OpLD_A_NN}})
	addEntry(Entry{Mnemonic: "LD", Operands: []Pattern{Mem16, Lit("A")}, Prefix: []byte{0x32}, Op: RegCode2Op{Op: OpLD_NN_A}})
	addEntry(Entry{Mnemonic: "LD", Operands: []Pattern{Lit("HL"), Mem16}, Prefix: []byte{0x2A}, Op: RegCode2Op{Op: OpLD_HLInd_NN}})
	addEntry(Entry{Mnemonic: "LD", Operands: []Pattern{Mem16, Lit("HL")}, Prefix: []byte{0x22}, Op: RegCode2Op{Op: OpLD_NN_HLInd}})

	// --- 16-bit immediate loads, INC/DEC rr, ADD HL,rr ---
	for _, p := range pairs {
		addEntry(Entry{
			Mnemonic: "LD",
			Operands: []Pattern{Lit(p.Name()), Imm16},
			Prefix:   []byte{0x01 | uint8(p)<<4},
			Op:       RegCode2Op{Op: OpLD_RR_NN, Pair: p},
		})
		addEntry(Entry{
			Mnemonic: "INC",
			Operands: []Pattern{Lit(p.Name())},
			Prefix:   []byte{0x03 | uint8(p)<<4},
			Op:       RegCode2Op{Op: OpINC_RR, Pair: p},
		})
		addEntry(Entry{
			Mnemonic: "DEC",
			Operands: []Pattern{Lit(p.Name())},
			Prefix:   []byte{0x0B | uint8(p)<<4},
			Op:       RegCode2Op{Op: OpDEC_RR, Pair: p},
		})
		addEntry(Entry{
			Mnemonic: "ADD",
			Operands: []Pattern{Lit("HL"), Lit(p.Name())},
			Prefix:   []byte{0x09 | uint8(p)<<4},
			Op:       RegCode2Op{Op: OpADD_HL_RR, Pair: p},
		})
	}

	addEntry(Entry{Mnemonic: "LD", Operands: []Pattern{Lit("SP"), Lit("HL")}, Prefix: []byte{0xF9}, Op: RegCode2Op{Op: OpLD_SP_HL}})
	addEntry(Entry{Mnemonic: "EX", Operands: []Pattern{Lit("DE"), Lit("HL")}, Prefix: []byte{0xEB}, Op: RegCode2Op{Op: OpEX_DE_HL}})
	addEntry(Entry{Mnemonic: "EX", Operands: []Pattern{Lit("AF"), Lit("AF'")}, Prefix: []byte{0x08}, Op: RegCode2Op{Op: OpEX_AF_AF}})
	addEntry(Entry{Mnemonic: "EX", Operands: []Pattern{Lit("(SP)"), Lit("HL")}, Prefix: []byte{0xE3}, Op: RegCode2Op{Op: OpEX_SP_HL}})

	// --- 8-bit INC/DEC ---
	for _, r := range regs {
		addEntry(Entry{Mnemonic: "INC", Operands: []Pattern{Lit(r.Name())}, Prefix: []byte{0x04 | reg8(r)<<3}, Op: RegCode2Op{Op: OpINC_R, Dst: r}})
		addEntry(Entry{Mnemonic: "DEC", Operands: []Pattern{Lit(r.Name())}, Prefix: []byte{0x05 | reg8(r)<<3}, Op: RegCode2Op{Op: OpDEC_R, Dst: r}})
	}
	addEntry(Entry{Mnemonic: "INC", Operands: []Pattern{Lit("(HL)")}, Prefix: []byte{0x34}, Op: RegCode2Op{Op: OpINC_HL_IND}})
	addEntry(Entry{Mnemonic: "DEC", Operands: []Pattern{Lit("(HL)")}, Prefix: []byte{0x35}, Op: RegCode2Op{Op: OpDEC_HL_IND}})

	// --- 8-bit ALU families: SUB, AND, XOR, OR, CP (full r/(HL)/n set) ---
	type alu struct {
		mnemonic   string
		base       uint8
		op         Op
		opHL       Op
		opN        Op
		immBase    uint8
		implicitA  bool // SUB/AND/XOR/OR/CP take a single operand (A is implicit)
	}
	alus := []alu{
		{"SUB", 0x90, OpSUB_R, OpSUB_HL, OpSUB_N, 0xD6, true},
		{"AND", 0xA0, OpAND_R, OpAND_HL, OpAND_N, 0xE6, true},
		{"XOR", 0xA8, OpXOR_R, OpXOR_HL, OpXOR_N, 0xEE, true},
		{"OR", 0xB0, OpOR_R, OpOR_HL, OpOR_N, 0xF6, true},
		{"CP", 0xB8, OpCP_R, OpCP_HL, OpCP_N, 0xFE, true},
	}
	for _, a := range alus {
		for _, r := range regs {
			addEntry(Entry{Mnemonic: a.mnemonic, Operands: []Pattern{Lit(r.Name())}, Prefix: []byte{a.base | reg8(r)}, Op: RegCode2Op{Op: a.op, Src: r}})
		}
		addEntry(Entry{Mnemonic: a.mnemonic, Operands: []Pattern{Lit("(HL)")}, Prefix: []byte{a.base | hlBits}, Op: RegCode2Op{Op: a.opHL}})
		addEntry(Entry{Mnemonic: a.mnemonic, Operands: []Pattern{Imm8}, Prefix: []byte{a.immBase}, Op: RegCode2Op{Op: a.opN}})
	}

	// ADD A,* and SBC A,* take an explicit "A," first operand.
	for _, r := range regs {
		addEntry(Entry{Mnemonic: "ADD", Operands: []Pattern{Lit("A"), Lit(r.Name())}, Prefix: []byte{0x80 | reg8(r)}, Op: RegCode2Op{Op: OpADD_A_R, Src: r}})
		addEntry(Entry{Mnemonic: "SBC", Operands: []Pattern{Lit("A"), Lit(r.Name())}, Prefix: []byte{0x98 | reg8(r)}, Op: RegCode2Op{Op: OpSBC_A_R, Src: r}})
	}
	addEntry(Entry{Mnemonic: "ADD", Operands: []Pattern{Lit("A"), Lit("(HL)")}, Prefix: []byte{0x86}, Op: RegCode2Op{Op: OpADD_A_HL}})
	addEntry(Entry{Mnemonic: "ADD", Operands: []Pattern{Lit("A"), Imm8}, Prefix: []byte{0xC6}, Op: RegCode2Op{Op: OpADD_A_N}})
	addEntry(Entry{Mnemonic: "SBC", Operands: []Pattern{Lit("A"), Lit("(HL)")}, Prefix: []byte{0x9E}, Op: RegCode2Op{Op: OpSBC_A_HL}})
	addEntry(Entry{Mnemonic: "SBC", Operands: []Pattern{Lit("A"), Imm8}, Prefix: []byte{0xDE}, Op: RegCode2Op{Op: OpSBC_A_N}})

	// ADC A,* — spec's Open Question resolves this to the narrow (a) subset:
	// only "ADC A,H" and "ADC A,n" are exposed (see DESIGN.md).
	addEntry(Entry{Mnemonic: "ADC", Operands: []Pattern{Lit("A"), Lit("H")}, Prefix: []byte{0x8C}, Op: RegCode2Op{Op: OpADC_A_R, Src: RH}})
	addEntry(Entry{Mnemonic: "ADC", Operands: []Pattern{Lit("A"), Imm8}, Prefix: []byte{0xCE}, Op: RegCode2Op{Op: OpADC_A_N}})

	addEntry(Entry{Mnemonic: "NEG", Prefix: []byte{0xED, 0x44}, Op: RegCode2Op{Op: OpNEG}})
	addEntry(Entry{Mnemonic: "RLCA", Prefix: []byte{0x07}, Op: RegCode2Op{Op: OpRLCA}})
	addEntry(Entry{Mnemonic: "RRCA", Prefix: []byte{0x0F}, Op: RegCode2Op{Op: OpRRCA}})
	addEntry(Entry{Mnemonic: "RLA", Prefix: []byte{0x17}, Op: RegCode2Op{Op: OpRLA}})
	addEntry(Entry{Mnemonic: "RRA", Prefix: []byte{0x1F}, Op: RegCode2Op{Op: OpRRA}})
	addEntry(Entry{Mnemonic: "CPL", Prefix: []byte{0x2F}, Op: RegCode2Op{Op: OpCPL}})
	addEntry(Entry{Mnemonic: "SCF", Prefix: []byte{0x37}, Op: RegCode2Op{Op: OpSCF}})
	addEntry(Entry{Mnemonic: "CCF", Prefix: []byte{0x3F}, Op: RegCode2Op{Op: OpCCF}})

	// --- Control flow ---
	addEntry(Entry{Mnemonic: "JP", Operands: []Pattern{Imm16}, Prefix: []byte{0xC3}, Op: RegCode2Op{Op: OpJP_NN}})
	addEntry(Entry{Mnemonic: "JP", Operands: []Pattern{Lit("(HL)")}, Prefix: []byte{0xE9}, Op: RegCode2Op{Op: OpJP_HL}})
	addEntry(Entry{Mnemonic: "JR", Operands: []Pattern{Rel}, Prefix: []byte{0x18}, Op: RegCode2Op{Op: OpJR_D}})
	addEntry(Entry{Mnemonic: "CALL", Operands: []Pattern{Imm16}, Prefix: []byte{0xCD}, Op: RegCode2Op{Op: OpCALL_NN}})
	addEntry(Entry{Mnemonic: "RET", Prefix: []byte{0xC9}, Op: RegCode2Op{Op: OpRET}})
	addEntry(Entry{Mnemonic: "DJNZ", Operands: []Pattern{Rel}, Prefix: []byte{0x10}, Op: RegCode2Op{Op: OpDJNZ_D}})

	for _, c := range conds {
		addEntry(Entry{Mnemonic: "JP", Operands: []Pattern{Lit(c.Name()), Imm16}, Prefix: []byte{0xC2 + uint8(c)*8}, Op: RegCode2Op{Op: OpJP_CC_NN, Cond: c}})
		addEntry(Entry{Mnemonic: "JR", Operands: []Pattern{Lit(c.Name()), Rel}, Prefix: []byte{0x20 + uint8(c)*8}, Op: RegCode2Op{Op: OpJR_CC_D, Cond: c}})
		addEntry(Entry{Mnemonic: "CALL", Operands: []Pattern{Lit(c.Name()), Imm16}, Prefix: []byte{0xC4 + uint8(c)*8}, Op: RegCode2Op{Op: OpCALL_CC_NN, Cond: c}})
		addEntry(Entry{Mnemonic: "RET", Operands: []Pattern{Lit(c.Name())}, Prefix: []byte{0xC0 + uint8(c)*8}, Op: RegCode2Op{Op: OpRET_CC, Cond: c}})
	}

	for _, sp := range stackPairs {
		addEntry(Entry{Mnemonic: "PUSH", Operands: []Pattern{Lit(sp.Name())}, Prefix: []byte{0xC5 + uint8(sp)*0x10}, Op: RegCode2Op{Op: OpPUSH_RR, Stack: sp}})
		addEntry(Entry{Mnemonic: "POP", Operands: []Pattern{Lit(sp.Name())}, Prefix: []byte{0xC1 + uint8(sp)*0x10}, Op: RegCode2Op{Op: OpPOP_RR, Stack: sp}})
	}

	addEntry(Entry{Mnemonic: "OUT", Operands: []Pattern{Mem8, Lit("A")}, Prefix: []byte{0xD3}, Op: RegCode2Op{Op: OpOUT_N_A}})
	addEntry(Entry{Mnemonic: "IN", Operands: []Pattern{Lit("A"), Mem8}, Prefix: []byte{0xDB}, Op: RegCode2Op{Op: OpIN_A_N}})
	addEntry(Entry{Mnemonic: "LDIR", Prefix: []byte{0xED, 0xB0}, Op: RegCode2Op{Op: OpLDIR}})
	addEntry(Entry{Mnemonic: "HALT", Prefix: []byte{0x76}, Op: RegCode2Op{Op: OpHALT}})
	addEntry(Entry{Mnemonic: "NOP", Prefix: []byte{0x00}, Op: RegCode2Op{Op: OpNOP}})

	// --- CB-prefixed rotate/shift ---
	for _, g := range groups {
		for _, r := range regs {
			addEntry(Entry{Mnemonic: g.Name(), Operands: []Pattern{Lit(r.Name())}, Prefix: []byte{0xCB, uint8(g)<<3 | reg8(r)}, Op: RegCode2Op{Op: OpCB_ROT_R, Dst: r, Group: g}})
		}
		addEntry(Entry{Mnemonic: g.Name(), Operands: []Pattern{Lit("(HL)")}, Prefix: []byte{0xCB, uint8(g)<<3 | hlBits}, Op: RegCode2Op{Op: OpCB_ROT_HL, Group: g}})
	}

	// --- BIT/RES/SET n, r and n, (HL) ---
	type bitFamily struct {
		mnemonic string
		base     uint8
		opR      Op
		opHL     Op
	}
	bitFamilies := []bitFamily{
		{"BIT", 0x40, OpBIT_B_R, OpBIT_B_HL},
		{"RES", 0x80, OpRES_B_R, OpRES_B_HL},
		{"SET", 0xC0, OpSET_B_R, OpSET_B_HL},
	}
	for _, bf := range bitFamilies {
		for bit := uint8(0); bit < 8; bit++ {
			bitTok := fmt.Sprintf("%d", bit)
			for _, r := range regs {
				addEntry(Entry{Mnemonic: bf.mnemonic, Operands: []Pattern{Lit(bitTok), Lit(r.Name())}, Prefix: []byte{0xCB, bf.base + bit*8 + reg8(r)}, Op: RegCode2Op{Op: bf.opR, Dst: r, Bit: bit}})
			}
			addEntry(Entry{Mnemonic: bf.mnemonic, Operands: []Pattern{Lit(bitTok), Lit("(HL)")}, Prefix: []byte{0xCB, bf.base + bit*8 + hlBits}, Op: RegCode2Op{Op: bf.opHL, Bit: bit}})
		}
	}
}
