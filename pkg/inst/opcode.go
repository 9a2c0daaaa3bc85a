package inst

// Op is a semantic tag for one instruction family. Unlike a flat per-combo
// enum, the register/pair/condition/bit operands a family needs are carried
// on the Entry itself (Dst, Src, Pair, Cond, Bit, Group) — the decode table
// is built once from loops over the register set (mirroring the teacher's
// table-construction style) rather than hand-enumerated per combination.
type Op int

const (
	OpLD_R_R Op = iota
	OpLD_R_N
	OpLD_R_HL   // LD r, (HL)
	OpLD_HL_R   // LD (HL), r
	OpLD_HL_N   // LD (HL), n
	OpLD_A_BC   // LD A, (BC)
	OpLD_A_DE   // LD A, (DE)
	OpLD_BC_A   // LD (BC), A
	OpLD_DE_A   // LD (DE), A
	OpLD_A_NN   // LD A, (nn)
	OpLD_NN_A   // LD (nn), A
	OpLD_HLInd_NN // LD HL, (nn)
	OpLD_NN_HLInd // LD (nn), HL
	OpLD_RR_NN  // LD rr, nn
	OpLD_SP_HL
	OpEX_DE_HL
	OpEX_AF_AF
	OpEX_SP_HL
	OpINC_R
	OpDEC_R
	OpINC_HL_IND
	OpDEC_HL_IND
	OpINC_RR
	OpDEC_RR
	OpADD_A_R
	OpADD_A_N
	OpADD_A_HL
	OpADC_A_R
	OpADC_A_N
	OpADD_HL_RR
	OpSUB_R
	OpSUB_N
	OpSUB_HL
	OpSBC_A_R
	OpSBC_A_N
	OpSBC_A_HL
	OpAND_R
	OpAND_N
	OpAND_HL
	OpXOR_R
	OpXOR_N
	OpXOR_HL
	OpOR_R
	OpOR_N
	OpOR_HL
	OpCP_R
	OpCP_N
	OpCP_HL
	OpNEG
	OpRLCA
	OpRRCA
	OpRLA
	OpRRA
	OpCPL
	OpSCF
	OpCCF
	OpJP_NN
	OpJP_HL
	OpJR_D
	OpJP_CC_NN
	OpJR_CC_D
	OpCALL_NN
	OpCALL_CC_NN
	OpRET
	OpRET_CC
	OpDJNZ_D
	OpPUSH_RR
	OpPOP_RR
	OpOUT_N_A
	OpIN_A_N
	OpLDIR
	OpHALT
	OpNOP
	OpCB_ROT_R  // RLC/RRC/RL/RR/SLA/SRA/SRL r
	OpCB_ROT_HL // ditto on (HL)
	OpBIT_B_R
	OpBIT_B_HL
	OpRES_B_R
	OpRES_B_HL
	OpSET_B_R
	OpSET_B_HL
)

// RegCode identifies one of the seven directly addressable 8-bit registers.
type RegCode uint8

const (
	RB RegCode = iota
	RC
	RD
	RE
	RH
	RL
	RA
	regCodeNone RegCode = 0xFF
)

var regNames = [...]string{"B", "C", "D", "E", "H", "L", "A"}

// regBits is the 3-bit register field Z80 opcodes use, where (HL)=6.
var regBits = [...]uint8{0, 1, 2, 3, 4, 5, 7}

// Name returns the assembly mnemonic spelling of a register code.
func (r RegCode) Name() string { return regNames[r] }

// PairCode identifies one of the four 16-bit register pairs usable with
// LD rr,nn / INC rr / DEC rr / ADD HL,rr.
type PairCode uint8

const (
	PairBC PairCode = iota
	PairDE
	PairHL
	PairSP
)

var pairNames = [...]string{"BC", "DE", "HL", "SP"}

func (p PairCode) Name() string { return pairNames[p] }

// StackPairCode identifies one of the four pairs usable with PUSH/POP,
// which substitutes AF for SP.
type StackPairCode uint8

const (
	StackBC StackPairCode = iota
	StackDE
	StackHL
	StackAF
)

var stackPairNames = [...]string{"BC", "DE", "HL", "AF"}

func (p StackPairCode) Name() string { return stackPairNames[p] }

// CondCode identifies one of the four condition codes this module models.
type CondCode uint8

const (
	CondNZ CondCode = iota
	CondZ
	CondNC
	CondC
)

var condNames = [...]string{"NZ", "Z", "NC", "C"}

func (c CondCode) Name() string { return condNames[c] }

// condBits is the 3-bit condition field used by JP/CALL/RET cc opcodes.
var condBits = [...]uint8{0, 1, 2, 3}

// ShiftGroup identifies one CB-prefixed rotate/shift operation.
type ShiftGroup uint8

const (
	GroupRLC ShiftGroup = iota
	GroupRRC
	GroupRL
	GroupRR
	GroupSLA
	GroupSRA
	groupSLLReserved // undocumented SLL; xxx=6, not exposed as a catalog entry
	GroupSRL
)

var shiftNames = [...]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}

func (g ShiftGroup) Name() string { return shiftNames[g] }
