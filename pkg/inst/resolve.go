package inst

import (
	"fmt"
	"strings"
)

// Resolve implements spec §4.3's matching and disambiguation rules: find
// the one instruction definition whose mnemonic and operand-pattern tuple
// matches the given (already comma-split, trimmed) operand spellings.
func Resolve(mnemonic string, operands []string) (*Entry, error) {
	var literalMatch, genericMatch *Entry
	for i := range Table {
		e := &Table[i]
		if !strings.EqualFold(e.Mnemonic, mnemonic) {
			continue
		}
		if len(e.Operands) != len(operands) {
			continue
		}
		if !matchOperands(e.Operands, operands) {
			continue
		}
		if allLiteral(e.Operands) {
			if literalMatch == nil {
				literalMatch = e
			}
			continue
		}
		if genericMatch == nil {
			genericMatch = e
		}
	}
	if literalMatch != nil {
		return literalMatch, nil
	}
	if genericMatch != nil {
		return genericMatch, nil
	}
	return nil, fmt.Errorf("no instruction matches %s %s", mnemonic, strings.Join(operands, ", "))
}

func matchOperands(patterns []Pattern, operands []string) bool {
	for i, p := range patterns {
		if !p.Match(strings.TrimSpace(operands[i])) {
			return false
		}
	}
	return true
}

func allLiteral(patterns []Pattern) bool {
	for _, p := range patterns {
		if p.IsGeneric() {
			return false
		}
	}
	return true
}
