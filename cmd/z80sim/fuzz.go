package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oisee/z80sim/pkg/asm"
	"github.com/oisee/z80sim/pkg/cpu"
	"github.com/oisee/z80sim/pkg/fuzz"
	"github.com/oisee/z80sim/pkg/loader"
)

func newFuzzCmd() *cobra.Command {
	var workers int
	var iterations int
	var seed int64
	var steps int

	cmd := &cobra.Command{
		Use:   "fuzz",
		Short: "Run randomly generated ALU programs concurrently and report any that fail to assemble or crash the CPU",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			check := func(source string) error {
				result := asm.Assemble(source)
				if !result.Success {
					return fmt.Errorf("assembly failed: %d error(s)", len(result.Errors))
				}
				var memory [65536]byte
				var io [256]byte
				loader.Load(&memory, result.Details)
				var state cpu.State
				state.Reset()
				res := cpu.ExecuteSteps(&state, &memory, &io, steps, &state)
				if res.Err != nil {
					return res.Err
				}
				return nil
			}

			findings := fuzz.Run(workers, iterations, seed, fuzz.RandomALUProgram, check)
			for _, f := range findings {
				fmt.Printf("seed=%d err=%v\nsource:\n%s\n", f.Seed, f.Err, f.Source)
			}
			if len(findings) > 0 {
				return fmt.Errorf("%d of %d programs failed", len(findings), iterations)
			}
			fmt.Printf("%d programs ok\n", iterations)
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent workers")
	cmd.Flags().IntVar(&iterations, "iterations", 100, "programs to generate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "base RNG seed")
	cmd.Flags().IntVar(&steps, "steps", 200, "maximum instructions to execute per program")
	return cmd
}
