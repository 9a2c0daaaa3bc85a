package line

import "testing"

func TestParseShapes(t *testing.T) {
	cases := []struct {
		src          string
		wantLabel    string
		wantMnemonic string
		wantOperands []string
	}{
		{"START: LD A, 5", "START", "LD", []string{"A", "5"}},
		{"START EQU 100H", "START", "EQU", []string{"100H"}},
		{"  NOP", "", "NOP", nil},
		{"LOOP: DJNZ LOOP", "LOOP", "DJNZ", []string{"LOOP"}},
		{"; just a comment", "", "", nil},
		{"", "", "", nil},
		{`MSG: DB "A,B", 0`, "MSG", "DB", []string{`"A,B"`, "0"}},
	}
	for _, c := range cases {
		got, err := Parse(1, c.src)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", c.src, err)
		}
		if got.Label != c.wantLabel {
			t.Errorf("Parse(%q).Label = %q, want %q", c.src, got.Label, c.wantLabel)
		}
		if got.Mnemonic != c.wantMnemonic {
			t.Errorf("Parse(%q).Mnemonic = %q, want %q", c.src, got.Mnemonic, c.wantMnemonic)
		}
		if len(got.Operands) != len(c.wantOperands) {
			t.Fatalf("Parse(%q).Operands = %v, want %v", c.src, got.Operands, c.wantOperands)
		}
		for i := range got.Operands {
			if got.Operands[i] != c.wantOperands[i] {
				t.Errorf("Parse(%q).Operands[%d] = %q, want %q", c.src, i, got.Operands[i], c.wantOperands[i])
			}
		}
	}
}

func TestParseStripsComment(t *testing.T) {
	got, err := Parse(1, "LD A, 5 ; load five")
	if err != nil {
		t.Fatal(err)
	}
	if got.Mnemonic != "LD" || len(got.Operands) != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseCommentInsideStringSurvives(t *testing.T) {
	got, err := Parse(1, `DB "hi; not a comment"`)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Operands) != 1 || got.Operands[0] != `"hi; not a comment"` {
		t.Fatalf("got %+v", got)
	}
}
