package expr

import "testing"

func TestEvalLiterals(t *testing.T) {
	syms := NewSymbolTable()
	cases := []struct {
		src  string
		want int
	}{
		{"5", 5},
		{"-5", -5},
		{"$FF", 255},
		{"0xFF", 255},
		{"0FFH", 255},
		{"0ffh", 255},
		{"%1010", 10},
		{"'A'", 65},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10/3", 3},
		{"-10/3", -3},
		{"10-3-2", 5},
	}
	for _, c := range cases {
		got, err := Eval(c.src, syms)
		if err != nil {
			t.Fatalf("Eval(%q) error: %v", c.src, err)
		}
		if got != c.want {
			t.Errorf("Eval(%q) = %d, want %d", c.src, got, c.want)
		}
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	syms := NewSymbolTable()
	if _, err := Eval("5/0", syms); err == nil {
		t.Fatal("expected division-by-zero error")
	}
}

func TestEvalIdentifierAndLen(t *testing.T) {
	syms := NewSymbolTable()
	if err := syms.Define("START", 0x100); err != nil {
		t.Fatal(err)
	}
	syms.DefineLen("MSG", 5)

	got, err := Eval("start + 1", syms)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x101 {
		t.Errorf("got %#x, want 0x101", got)
	}

	got, err = Eval("len(MSG)", syms)
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Errorf("len(MSG) = %d, want 5", got)
	}
}

func TestEvalUnknownIdentifier(t *testing.T) {
	syms := NewSymbolTable()
	if _, err := Eval("UNDEFINED", syms); err == nil {
		t.Fatal("expected undefined-identifier error")
	}
}

func TestEvalMalformedCharLiteral(t *testing.T) {
	syms := NewSymbolTable()
	for _, src := range []string{"''", "'AB'", "'A"} {
		if _, err := Eval(src, syms); err == nil {
			t.Errorf("Eval(%q) expected error, got none", src)
		}
	}
}
