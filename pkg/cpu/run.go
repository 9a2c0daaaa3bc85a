package cpu

import "fmt"

// StepResult is executeSteps's return value (spec §4.7, §6).
type StepResult struct {
	InstructionsExecuted int
	Halted               bool
	Registers            State // deep copy: State holds no references
	Err                   error
}

// ExecuteSteps runs up to steps instructions against s, stopping early on
// HALT or on any error. If initial is non-nil, the full state is overwritten
// before execution begins (spec §4.7).
func ExecuteSteps(s *State, memory *[65536]byte, io *[256]byte, steps int, initial *State) (result StepResult) {
	s.Halted = false
	if initial != nil {
		*s = *initial
		s.Halted = false
	}

	executed := 0

	defer func() {
		if r := recover(); r != nil {
			result = StepResult{
				InstructionsExecuted: executed,
				Halted:               s.Halted,
				Registers:            *s,
				Err:                  fmt.Errorf("CPU Exception: %v", r),
			}
		}
	}()

	for i := 0; i < steps; i++ {
		if s.Halted {
			break
		}
		if err := Step(s, memory, io); err != nil {
			return StepResult{InstructionsExecuted: executed, Halted: s.Halted, Registers: *s, Err: err}
		}
		executed++
	}

	return StepResult{InstructionsExecuted: executed, Halted: s.Halted, Registers: *s}
}
