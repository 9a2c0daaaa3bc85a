// Package asm implements the two-pass Z80 assembler (spec §4.3–§4.6): turns
// parsed source lines into a loadable byte stream plus per-line provenance.
package asm

// ErrorEntry is one accumulated assembly error (spec §3, §7).
type ErrorEntry struct {
	Line    int
	Address uint16
	Message string
}

// InstructionDetail is pass 2's output for one emitting source line.
// Lines that produce no bytes (ORG, EQU, END, label-only, blank) get no
// detail at all, so every detail emit returns has a non-nil StartAddress.
type InstructionDetail struct {
	SourceLine   int
	StartAddress *uint16
	Opcodes      []byte
}

// Result is the outcome of Assemble (spec §3's "Assembly Result").
type Result struct {
	Success     bool
	LoadAddress uint16
	Details     []InstructionDetail
	Errors      []ErrorEntry
}
