// Package verify checks the testable properties of spec §8 against a
// concrete program: run it under every initial condition a property cares
// about and compare fingerprints, the way the teacher's exhaustive
// equivalence checker compares candidate programs against a reference.
package verify

import (
	"fmt"

	"github.com/oisee/z80sim/pkg/cpu"
)

// Fingerprint is the subset of CPU state an equivalence check compares.
type Fingerprint struct {
	A, B, C, D, E, H, L uint8
	PC, SP              uint16
	Z, Cy               bool
}

// Snapshot takes a Fingerprint of a CPU state.
func Snapshot(s cpu.State) Fingerprint {
	return Fingerprint{
		A: s.A, B: s.B, C: s.C, D: s.D, E: s.E, H: s.H, L: s.L,
		PC: s.PC, SP: s.SP, Z: s.F.Z, Cy: s.F.C,
	}
}

// flagCombos enumerates the four (Z, C) initial conditions invariant 8 runs
// a program under.
var flagCombos = []cpu.Flags{
	{Z: false, C: false},
	{Z: false, C: true},
	{Z: true, C: false},
	{Z: true, C: true},
}

// RunUnderFlagCombo executes program (already placed at address 0) for up
// to steps instructions starting with the given initial flags, returning the
// resulting fingerprint.
func RunUnderFlagCombo(program []byte, steps int, flags cpu.Flags) Fingerprint {
	var memory [65536]byte
	copy(memory[:], program)
	var io [256]byte

	var s cpu.State
	s.Reset()
	s.F = flags
	res := cpu.ExecuteSteps(&s, &memory, &io, steps, &s)
	return Snapshot(res.Registers)
}

// CheckFlagInvariance implements spec §8 invariant 8: running a program
// under all four initial (Z,C) combinations must yield the same final A
// unless the program is known to be flag-dependent (ADC, SBC, RLA, RRA, RL,
// RR, PUSH AF).
func CheckFlagInvariance(program []byte, steps int, flagDependent bool) error {
	var as []uint8
	for _, f := range flagCombos {
		as = append(as, RunUnderFlagCombo(program, steps, f).A)
	}
	if flagDependent {
		return nil
	}
	for i := 1; i < len(as); i++ {
		if as[i] != as[0] {
			return fmt.Errorf("final A varies across flag combinations: %v", as)
		}
	}
	return nil
}

// CheckStackRoundTrip implements invariant 4: PUSH rr; POP rr restores the
// original pair value and leaves SP where it started.
func CheckStackRoundTrip(before, after cpu.State, pairBefore, pairAfter uint16) error {
	if before.SP != after.SP {
		return fmt.Errorf("SP not restored: before=%#04x after=%#04x", before.SP, after.SP)
	}
	if pairBefore != pairAfter {
		return fmt.Errorf("pair value not restored: before=%#04x after=%#04x", pairBefore, pairAfter)
	}
	return nil
}

// CheckFlagIsolation8Bit implements invariant 5's 8-bit half: INC/DEC on an
// 8-bit register must never change C.
func CheckFlagIsolation8Bit(before, after cpu.State) error {
	if before.F.C != after.F.C {
		return fmt.Errorf("C flag changed by 8-bit INC/DEC: before=%v after=%v", before.F.C, after.F.C)
	}
	return nil
}

// CheckFlagIsolation16Bit implements invariant 5's 16-bit half: INC/DEC on a
// register pair must change neither Z nor C.
func CheckFlagIsolation16Bit(before, after cpu.State) error {
	if before.F != after.F {
		return fmt.Errorf("flags changed by 16-bit INC/DEC: before=%+v after=%+v", before.F, after.F)
	}
	return nil
}

// CheckCPPreservesRegisters implements invariant 6: CP leaves every register
// unchanged; only Z and C may change.
func CheckCPPreservesRegisters(before, after cpu.State) error {
	beforeNoFlags, afterNoFlags := before, after
	beforeNoFlags.F, afterNoFlags.F = cpu.Flags{}, cpu.Flags{}
	if beforeNoFlags != afterNoFlags {
		return fmt.Errorf("CP modified state beyond flags: before=%+v after=%+v", before, after)
	}
	return nil
}

// CheckBitPreservesRegisters implements invariant 7: BIT b,r changes no
// register and no C; only Z may change.
func CheckBitPreservesRegisters(before, after cpu.State) error {
	if before.F.C != after.F.C {
		return fmt.Errorf("C flag changed by BIT: before=%v after=%v", before.F.C, after.F.C)
	}
	beforeNoFlags, afterNoFlags := before, after
	beforeNoFlags.F, afterNoFlags.F = cpu.Flags{}, cpu.Flags{}
	if beforeNoFlags != afterNoFlags {
		return fmt.Errorf("BIT modified a register: before=%+v after=%+v", before, after)
	}
	return nil
}

// CheckExecutedBound implements invariant 9:
// instructionsExecuted <= steps, with strict inequality iff halted or error.
func CheckExecutedBound(steps int, result cpu.StepResult) error {
	if result.InstructionsExecuted > steps {
		return fmt.Errorf("instructionsExecuted %d exceeds steps %d", result.InstructionsExecuted, steps)
	}
	strictlyLess := result.InstructionsExecuted < steps
	stoppedEarly := result.Halted || result.Err != nil
	if strictlyLess != stoppedEarly {
		return fmt.Errorf("instructionsExecuted=%d steps=%d halted=%v err=%v is inconsistent",
			result.InstructionsExecuted, steps, result.Halted, result.Err)
	}
	return nil
}
