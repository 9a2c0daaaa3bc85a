package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oisee/z80sim/pkg/asm"
	"github.com/oisee/z80sim/pkg/cpu"
	"github.com/oisee/z80sim/pkg/loader"
	"github.com/oisee/z80sim/pkg/trace"
)

func newRunCmd() *cobra.Command {
	var steps int
	var checkpointOut string
	var checkpointIn string

	cmd := &cobra.Command{
		Use:   "run <source.asm>",
		Short: "Assemble, load, and execute a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			result := asm.Assemble(string(src))
			if !result.Success {
				for _, e := range result.Errors {
					fmt.Fprintf(os.Stderr, "line %d (addr 0x%04X): %s\n", e.Line, e.Address, e.Message)
				}
				return fmt.Errorf("assembly failed with %d error(s)", len(result.Errors))
			}

			var memory [65536]byte
			var io [256]byte
			var state cpu.State
			state.Reset()
			state.PC = result.LoadAddress

			if checkpointIn != "" {
				cp, err := trace.Load(checkpointIn)
				if err != nil {
					return err
				}
				state = cp.Registers
				memory = cp.Memory
				io = cp.IO
			} else {
				loader.Load(&memory, result.Details)
			}

			res := cpu.ExecuteSteps(&state, &memory, &io, steps, &state)

			if checkpointOut != "" {
				cp := trace.Checkpoint{StepsSoFar: res.InstructionsExecuted, Registers: res.Registers, Memory: memory, IO: io}
				if err := trace.Save(checkpointOut, cp); err != nil {
					return err
				}
			}

			printRegisters(res)
			if res.Err != nil {
				return res.Err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1000, "maximum instructions to execute")
	cmd.Flags().StringVar(&checkpointOut, "checkpoint", "", "save a resumable checkpoint to this path after running")
	cmd.Flags().StringVar(&checkpointIn, "resume", "", "resume execution from a checkpoint saved by --checkpoint")
	return cmd
}

func printRegisters(res cpu.StepResult) {
	r := res.Registers
	fmt.Printf("executed=%d halted=%v\n", res.InstructionsExecuted, res.Halted)
	fmt.Printf("A=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X\n", r.A, r.B, r.C, r.D, r.E, r.H, r.L)
	fmt.Printf("PC=%04X SP=%04X Z=%v C=%v\n", r.PC, r.SP, r.F.Z, r.F.C)
}
