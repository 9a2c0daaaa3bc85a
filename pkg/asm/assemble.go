package asm

import (
	"strings"

	"github.com/oisee/z80sim/pkg/line"
)

// Assemble runs both passes over source and returns the complete result
// (spec §6: "assemble(source: string) -> AssemblyResult"). Line numbers in
// errors are 1-based.
func Assemble(source string) Result {
	rawLines := strings.Split(source, "\n")
	lines := make([]line.Source, 0, len(rawLines))
	var errs []ErrorEntry

	for i, raw := range rawLines {
		l, err := line.Parse(i+1, raw)
		if err != nil {
			errs = append(errs, ErrorEntry{Line: i + 1, Address: 0, Message: err.Error()})
			continue
		}
		lines = append(lines, l)
	}

	syms, loadAddress, layoutErrs := layout(lines)
	errs = append(errs, layoutErrs...)

	if len(errs) > 0 {
		return Result{Success: false, LoadAddress: loadAddress, Errors: errs}
	}

	details, emitErrs := emit(lines, syms, loadAddress)
	errs = append(errs, emitErrs...)

	return Result{
		Success:     len(errs) == 0,
		LoadAddress: loadAddress,
		Details:     details,
		Errors:      errs,
	}
}
