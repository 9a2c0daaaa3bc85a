// Command z80sim assembles and executes Z80 source through the pkg/asm,
// pkg/loader, and pkg/cpu core.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
