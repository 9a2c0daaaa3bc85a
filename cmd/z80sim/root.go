package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "z80sim",
		Short:         "Z80 assembler and CPU interpreter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAsmCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newFuzzCmd())
	return root
}
