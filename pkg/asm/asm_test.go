package asm

import "testing"

func TestAssembleSimpleProgram(t *testing.T) {
	result := Assemble("START: LD A, 5\nLD B, A\nHALT\n")
	if !result.Success {
		t.Fatalf("assembly failed: %+v", result.Errors)
	}
	if len(result.Details) != 3 {
		t.Fatalf("expected 3 details, got %d: %+v", len(result.Details), result.Details)
	}
	if *result.Details[0].StartAddress != 0 {
		t.Errorf("first instruction address = %d, want 0", *result.Details[0].StartAddress)
	}
}

func TestAssembleOrgAndLabel(t *testing.T) {
	result := Assemble("ORG 100H\nSTART: NOP\nJP START\n")
	if !result.Success {
		t.Fatalf("assembly failed: %+v", result.Errors)
	}
	if result.LoadAddress != 0x100 {
		t.Fatalf("loadAddress = %#x, want 0x100", result.LoadAddress)
	}
	// JP START should encode target 0x100.
	jp := result.Details[1]
	if len(jp.Opcodes) != 3 || jp.Opcodes[0] != 0xC3 || jp.Opcodes[1] != 0x00 || jp.Opcodes[2] != 0x01 {
		t.Errorf("JP START opcodes = % X, want C3 00 01", jp.Opcodes)
	}
}

func TestAssembleDuplicateLabelIsError(t *testing.T) {
	result := Assemble("A: NOP\nA: NOP\n")
	if result.Success {
		t.Fatal("expected duplicate label error")
	}
}

func TestAssembleOrgAfterNonZeroIsError(t *testing.T) {
	result := Assemble("NOP\nORG 100H\n")
	if result.Success {
		t.Fatal("expected ORG-after-non-zero error")
	}
}

func TestAssembleUnknownMnemonicIsError(t *testing.T) {
	result := Assemble("FROB A, B\n")
	if result.Success {
		t.Fatal("expected unknown-mnemonic error")
	}
}

func TestAssembleRelativeJumpOutOfRange(t *testing.T) {
	var src string
	src += "START: JR END\n"
	for i := 0; i < 200; i++ {
		src += "NOP\n"
	}
	src += "END: NOP\n"
	result := Assemble(src)
	if result.Success {
		t.Fatal("expected relative-jump-out-of-range error")
	}
}

func TestAssembleDBLenAndString(t *testing.T) {
	result := Assemble(`MSG: DB "HELLO"` + "\nLEN_OF_MSG EQU len(MSG)\nLD A, LEN_OF_MSG\n")
	if !result.Success {
		t.Fatalf("assembly failed: %+v", result.Errors)
	}
	msg := result.Details[0]
	if string(msg.Opcodes) != "HELLO" {
		t.Errorf("MSG opcodes = %q, want %q", msg.Opcodes, "HELLO")
	}
	ld := result.Details[1]
	if len(ld.Opcodes) != 2 || ld.Opcodes[1] != 5 {
		t.Errorf("LD A, LEN_OF_MSG opcodes = % X, want immediate 5", ld.Opcodes)
	}
}

func TestAssembleDEFWAndDEFS(t *testing.T) {
	result := Assemble("DEFW 1234H\nDEFS 3, 0AAH\n")
	if !result.Success {
		t.Fatalf("assembly failed: %+v", result.Errors)
	}
	w := result.Details[0]
	if len(w.Opcodes) != 2 || w.Opcodes[0] != 0x34 || w.Opcodes[1] != 0x12 {
		t.Errorf("DEFW opcodes = % X, want 34 12", w.Opcodes)
	}
	s := result.Details[1]
	if len(s.Opcodes) != 3 || s.Opcodes[0] != 0xAA || s.Opcodes[1] != 0xAA || s.Opcodes[2] != 0xAA {
		t.Errorf("DEFS opcodes = % X, want AA AA AA", s.Opcodes)
	}
}

func TestAssembleReloadIsOrderIndependent(t *testing.T) {
	result := Assemble("ORG 10H\nLD A, 1\nLD B, 2\nLD C, 3\n")
	if !result.Success {
		t.Fatalf("assembly failed: %+v", result.Errors)
	}
	var forward, backward [65536]byte
	for _, d := range result.Details {
		for i, b := range d.Opcodes {
			forward[int(*d.StartAddress)+i] = b
		}
	}
	for i := len(result.Details) - 1; i >= 0; i-- {
		d := result.Details[i]
		for j, b := range d.Opcodes {
			backward[int(*d.StartAddress)+j] = b
		}
	}
	if forward != backward {
		t.Fatal("reloading details in a different order produced a different memory image")
	}
}
