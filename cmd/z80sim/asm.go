package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oisee/z80sim/pkg/asm"
	"github.com/oisee/z80sim/pkg/asmresult"
)

func newAsmCmd() *cobra.Command {
	var out string
	var format string
	var listing bool

	cmd := &cobra.Command{
		Use:   "asm <source.asm>",
		Short: "Assemble a source file and report errors, a binary, or a listing",
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

			switch format {
			case "json":
				data, err := asmresult.Marshal(result)
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			case "bin", "":
				if listing {
					printListing(result)
				}
				if out != "" {
					if err := writeBinary(out, result); err != nil {
						return err
					}
				}
			default:
				return fmt.Errorf("unknown --format %q (want json or bin)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "write the assembled memory image to this path")
	cmd.Flags().StringVar(&format, "format", "bin", "output format: bin or json")
	cmd.Flags().BoolVar(&listing, "listing", false, "print a source/address/opcode listing")
	return cmd
}

func printListing(result asm.Result) {
	for _, d := range result.Details {
		addr := "-"
		if d.StartAddress != nil {
			addr = fmt.Sprintf("0x%04X", *d.StartAddress)
		}
		fmt.Printf("line %-4d %-8s %X\n", d.SourceLine, addr, d.Opcodes)
	}
}

func writeBinary(path string, result asm.Result) error {
	var memory [65536]byte
	for _, d := range result.Details {
		if d.StartAddress == nil {
			continue
		}
		addr := int(*d.StartAddress)
		for i, b := range d.Opcodes {
			memory[(addr+i)&0xFFFF] = b
		}
	}
	if err := os.WriteFile(path, memory[:], 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
