// Package trace checkpoints a running CPU so a long executeSteps session can
// be paused and resumed across process invocations — the gob encoding and
// save/load shape follow the teacher's checkpoint/resume pattern.
package trace

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/oisee/z80sim/pkg/cpu"
)

// Checkpoint captures everything executeSteps needs to continue from where
// a prior run stopped: the register file and the full memory/IO image.
type Checkpoint struct {
	StepsSoFar int
	Registers  cpu.State
	Memory     [65536]byte
	IO         [256]byte
}

// Encode serializes a checkpoint with gob.
func Encode(cp Checkpoint) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(cp); err != nil {
		return nil, fmt.Errorf("encode checkpoint: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode deserializes a checkpoint previously produced by Encode.
func Decode(data []byte) (Checkpoint, error) {
	var cp Checkpoint
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&cp); err != nil {
		return Checkpoint{}, fmt.Errorf("decode checkpoint: %w", err)
	}
	return cp, nil
}

// Save writes a checkpoint to path.
func Save(path string, cp Checkpoint) error {
	data, err := Encode(cp)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint %s: %w", path, err)
	}
	return nil
}

// Load reads a checkpoint previously written by Save.
func Load(path string) (Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("read checkpoint %s: %w", path, err)
	}
	return Decode(data)
}
