package cpu_test

import (
	"testing"

	"github.com/oisee/z80sim/pkg/asm"
	"github.com/oisee/z80sim/pkg/cpu"
	"github.com/oisee/z80sim/pkg/loader"
)

func assembleLoad(t *testing.T, source string) (*[65536]byte, asm.Result) {
	t.Helper()
	result := asm.Assemble(source)
	if !result.Success {
		t.Fatalf("assembly failed: %+v", result.Errors)
	}
	var memory [65536]byte
	loader.Load(&memory, result.Details)
	return &memory, result
}

func totalBytes(result asm.Result) int {
	n := 0
	for _, d := range result.Details {
		n += len(d.Opcodes)
	}
	return n
}

// S1: LD A, 0xA5; LD (0x1234), A
func TestScenarioS1(t *testing.T) {
	memory, result := assembleLoad(t, "LD A, 0A5H\nLD (1234H), A\n")
	var io [256]byte
	var s cpu.State
	s.Reset()
	res := cpu.ExecuteSteps(&s, memory, &io, 2, &s)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Registers.A != 0xA5 {
		t.Errorf("A = %#02x, want 0xA5", res.Registers.A)
	}
	if memory[0x1234] != 0xA5 {
		t.Errorf("memory[0x1234] = %#02x, want 0xA5", memory[0x1234])
	}
	if int(res.Registers.PC) != totalBytes(result) {
		t.Errorf("PC = %d, want %d", res.Registers.PC, totalBytes(result))
	}
	if res.Registers.F.Z || res.Registers.F.C {
		t.Errorf("flags changed: %+v", res.Registers.F)
	}
}

// S2: LD HL, 0xFFFF; LD BC, 1; ADD HL, BC
func TestScenarioS2(t *testing.T) {
	memory, _ := assembleLoad(t, "LD HL, 0FFFFH\nLD BC, 1\nADD HL, BC\n")
	var io [256]byte
	var s cpu.State
	s.Reset()
	res := cpu.ExecuteSteps(&s, memory, &io, 3, &s)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	r := res.Registers
	if r.H != 0 || r.L != 0 {
		t.Errorf("HL = %02x%02x, want 0000", r.H, r.L)
	}
	if r.B != 0 || r.C != 1 {
		t.Errorf("BC = %02x%02x, want 0001", r.B, r.C)
	}
	if !r.F.C {
		t.Error("expected C flag set")
	}
}

// S3: LD B, 2; DJNZ 5 — a taken branch back to address 5 isn't literal here;
// spec's scenario targets address 5 directly from PC=0.
func TestScenarioS3(t *testing.T) {
	var memory [65536]byte
	// LD B, 2 (2 bytes: 0x06 0x02), DJNZ 5 (2 bytes: 0x10 displacement).
	// Displacement target address is 5; next instruction address after DJNZ
	// (at address 2, 2 bytes long) is 4; displacement = 5 - 4 = 1.
	memory[0] = 0x06
	memory[1] = 0x02
	memory[2] = 0x10
	memory[3] = 0x01
	memory[5] = 0x00 // NOP at the jump target
	var io [256]byte
	var s cpu.State
	s.Reset()
	res := cpu.ExecuteSteps(&s, &memory, &io, 2, &s)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Registers.B != 1 {
		t.Errorf("B = %d, want 1", res.Registers.B)
	}
	if res.Registers.PC != 5 {
		t.Errorf("PC = %d, want 5", res.Registers.PC)
	}
}

// S4: stack round-trip through PUSH AF / POP AF with fixed flag-byte bits.
func TestScenarioS4(t *testing.T) {
	memory, _ := assembleLoad(t, "LD SP, 1248H\nLD A, 0FFH\nSCF\nPUSH AF\nLD A, 0\nCCF\nPOP AF\n")
	var io [256]byte
	var s cpu.State
	s.Reset()
	res := cpu.ExecuteSteps(&s, memory, &io, 7, &s)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	r := res.Registers
	if r.A != 0xFF {
		t.Errorf("A = %#02x, want 0xFF", r.A)
	}
	if !r.F.C {
		t.Error("expected C flag set")
	}
	if r.SP != 0x1248 {
		t.Errorf("SP = %#04x, want 0x1248", r.SP)
	}
	if memory[0x1247] != 0xFF {
		t.Errorf("memory[0x1247] = %#02x, want 0xFF", memory[0x1247])
	}
	if memory[0x1246] != 0x41 && memory[0x1246] != 0x01 {
		t.Errorf("memory[0x1246] = %#02x, want 0x41 or 0x01", memory[0x1246])
	}
}

// S5: overlapping LDIR produces the "spread source byte" behavior.
func TestScenarioS5(t *testing.T) {
	var memory [65536]byte
	memory[0x1242] = 0xFF
	memory[0x1243] = 0x80
	memory[0x1244] = 0x7F
	var io [256]byte
	// Build the state directly: HL=source, DE=dest, BC=count.
	var s cpu.State
	s.Reset()
	s.H, s.L = 0x12, 0x42
	s.D, s.E = 0x12, 0x43
	s.B, s.C = 0x00, 0x02
	memory[0] = 0xED
	memory[1] = 0xB0 // LDIR
	res := cpu.ExecuteSteps(&s, &memory, &io, 1, &s)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	want := [3]byte{0xFF, 0xFF, 0xFF}
	got := [3]byte{memory[0x1242], memory[0x1243], memory[0x1244]}
	if got != want {
		t.Errorf("memory[0x1242..0x1244] = % X, want % X", got, want)
	}
}

// S6: CALL 0x100 pushes the return address little-endian with low byte at
// the lower (final SP) address.
func TestScenarioS6(t *testing.T) {
	memory, _ := assembleLoad(t, "CALL 100H\n")
	var io [256]byte
	var s cpu.State
	s.Reset()
	sp := uint16(0xFFFF)
	s.Set(0, &sp)
	res := cpu.ExecuteSteps(&s, memory, &io, 1, &s)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	r := res.Registers
	if r.PC != 0x100 {
		t.Errorf("PC = %#04x, want 0x100", r.PC)
	}
	if r.SP != 0xFFFD {
		t.Errorf("SP = %#04x, want 0xFFFD", r.SP)
	}
	if memory[0xFFFD] != 0x03 || memory[0xFFFE] != 0x00 {
		t.Errorf("memory[0xFFFD..0xFFFE] = %02x %02x, want 03 00", memory[0xFFFD], memory[0xFFFE])
	}
}

func TestUnknownOpcodeReportsAddress(t *testing.T) {
	var memory [65536]byte
	memory[0] = 0x00 // NOP
	memory[1] = 0xDD // unimplemented prefix (IX), not in Base table
	var io [256]byte
	var s cpu.State
	s.Reset()
	res := cpu.ExecuteSteps(&s, &memory, &io, 2, &s)
	if res.Err == nil {
		t.Fatal("expected an unknown-opcode error")
	}
	if res.InstructionsExecuted != 1 {
		t.Errorf("instructionsExecuted = %d, want 1", res.InstructionsExecuted)
	}
}

func TestHaltStopsLoopWithoutError(t *testing.T) {
	var memory [65536]byte
	memory[0] = 0x76 // HALT
	var io [256]byte
	var s cpu.State
	s.Reset()
	res := cpu.ExecuteSteps(&s, &memory, &io, 5, &s)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if !res.Halted {
		t.Error("expected halted=true")
	}
	if res.InstructionsExecuted != 1 {
		t.Errorf("instructionsExecuted = %d, want 1", res.InstructionsExecuted)
	}
}
