// Package asmresult serializes an assembler pkg/asm.Result to and from JSON,
// the wire format the z80sim CLI and any embedding UI exchange it in.
package asmresult

import (
	"encoding/json"
	"fmt"

	"github.com/oisee/z80sim/pkg/asm"
)

// jsonDetail mirrors asm.InstructionDetail with an explicit optional address
// field, since JSON has no native notion of "nil uint16".
type jsonDetail struct {
	SourceLine   int     `json:"sourceLine"`
	StartAddress *uint16 `json:"startAddress,omitempty"`
	Opcodes      []byte  `json:"opcodes"`
}

type jsonError struct {
	Line    int    `json:"line"`
	Address uint16 `json:"address"`
	Message string `json:"message"`
}

type jsonResult struct {
	Success     bool         `json:"success"`
	LoadAddress uint16       `json:"loadAddress"`
	Details     []jsonDetail `json:"details"`
	Errors      []jsonError  `json:"errors"`
}

// Marshal renders r as its JSON wire form.
func Marshal(r asm.Result) ([]byte, error) {
	out := jsonResult{
		Success:     r.Success,
		LoadAddress: r.LoadAddress,
		Details:     make([]jsonDetail, len(r.Details)),
		Errors:      make([]jsonError, len(r.Errors)),
	}
	for i, d := range r.Details {
		out.Details[i] = jsonDetail{SourceLine: d.SourceLine, StartAddress: d.StartAddress, Opcodes: d.Opcodes}
	}
	for i, e := range r.Errors {
		out.Errors[i] = jsonError{Line: e.Line, Address: e.Address, Message: e.Message}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal assembly result: %w", err)
	}
	return data, nil
}

// Unmarshal parses a JSON wire form back into an asm.Result.
func Unmarshal(data []byte) (asm.Result, error) {
	var in jsonResult
	if err := json.Unmarshal(data, &in); err != nil {
		return asm.Result{}, fmt.Errorf("unmarshal assembly result: %w", err)
	}
	r := asm.Result{
		Success:     in.Success,
		LoadAddress: in.LoadAddress,
		Details:     make([]asm.InstructionDetail, len(in.Details)),
		Errors:      make([]asm.ErrorEntry, len(in.Errors)),
	}
	for i, d := range in.Details {
		r.Details[i] = asm.InstructionDetail{SourceLine: d.SourceLine, StartAddress: d.StartAddress, Opcodes: d.Opcodes}
	}
	for i, e := range in.Errors {
		r.Errors[i] = asm.ErrorEntry{Line: e.Line, Address: e.Address, Message: e.Message}
	}
	return r, nil
}
