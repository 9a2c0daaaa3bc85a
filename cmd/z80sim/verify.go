package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oisee/z80sim/pkg/asm"
	"github.com/oisee/z80sim/pkg/verify"
)

func newVerifyCmd() *cobra.Command {
	var steps int
	var flagDependent bool

	cmd := &cobra.Command{
		Use:   "verify <source.asm>",
		Short: "Check spec invariant 8: final A must not depend on initial Z/C unless marked --flag-dependent",
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

			var program []byte
			for _, d := range result.Details {
				if d.StartAddress == nil {
					continue
				}
				start := int(*d.StartAddress)
				if end := start + len(d.Opcodes); end > len(program) {
					program = append(program, make([]byte, end-len(program))...)
				}
				copy(program[start:], d.Opcodes)
			}

			if err := verify.CheckFlagInvariance(program, steps, flagDependent); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1000, "maximum instructions to execute per flag combination")
	cmd.Flags().BoolVar(&flagDependent, "flag-dependent", false, "the program intentionally varies A by initial flags (ADC/SBC/RLA/RRA/RL/RR/PUSH AF)")
	return cmd
}
