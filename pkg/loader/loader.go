// Package loader bridges the assembler's output to the CPU's memory image
// (spec §4.6).
package loader

import "github.com/oisee/z80sim/pkg/asm"

// Load writes each detail's opcodes sequentially into memory starting at its
// StartAddress. Details with a nil StartAddress (directive-only lines)
// contribute nothing. No bounds checking beyond address masking is done;
// overlapping details are the caller's responsibility.
func Load(memory *[65536]byte, details []asm.InstructionDetail) {
	for _, d := range details {
		if d.StartAddress == nil {
			continue
		}
		addr := int(*d.StartAddress)
		for i, b := range d.Opcodes {
			memory[(addr+i)&0xFFFF] = b
		}
	}
}
