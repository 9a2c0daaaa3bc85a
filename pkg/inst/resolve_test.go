package inst

import "testing"

func TestResolveLiteralBeatsGeneric(t *testing.T) {
	// "ADD A, H" syntactically matches both the literal ADD A,H register
	// form and the generic ADD A,n immediate form (Imm8 only checks that the
	// operand isn't parenthesized or quoted) — the literal-specific entry
	// must win per spec §4.3's disambiguation rule.
	e, err := Resolve("ADD", []string{"A", "H"})
	if err != nil {
		t.Fatal(err)
	}
	if e.Op.Op != OpADD_A_R || e.Op.Src != RH {
		t.Errorf("got %+v, want the literal ADD A,H form", e.Op)
	}
}

func TestResolveGenericImmediate(t *testing.T) {
	e, err := Resolve("LD", []string{"B", "42"})
	if err != nil {
		t.Fatal(err)
	}
	if e.Op.Op != OpLD_R_N || e.Op.Dst != RB {
		t.Errorf("got %+v", e.Op)
	}
}

func TestResolveMemoryOperand(t *testing.T) {
	e, err := Resolve("LD", []string{"A", "(1234H)"})
	if err != nil {
		t.Fatal(err)
	}
	if e.Op.Op != OpLD_A_NN {
		t.Errorf("got %+v", e.Op)
	}
}

func TestResolveUnknownCombinationErrors(t *testing.T) {
	if _, err := Resolve("LD", []string{"A", "B", "C"}); err == nil {
		t.Fatal("expected an error for a nonexistent arity")
	}
	if _, err := Resolve("FROB", []string{"A"}); err == nil {
		t.Fatal("expected an error for an unknown mnemonic")
	}
}

func TestEntrySize(t *testing.T) {
	e, err := Resolve("LD", []string{"HL", "1234H"})
	if err != nil {
		t.Fatal(err)
	}
	if e.Size() != 3 {
		t.Errorf("Size() = %d, want 3", e.Size())
	}
}

func TestNoDuplicateOpcodes(t *testing.T) {
	seen := map[byte]string{}
	for i, e := range Table {
		if len(e.Prefix) != 1 {
			continue
		}
		if prev, ok := seen[e.Prefix[0]]; ok {
			t.Fatalf("opcode 0x%02X used by both %q and %q (index %d)", e.Prefix[0], prev, e.Mnemonic, i)
		}
		seen[e.Prefix[0]] = e.Mnemonic
	}
}
