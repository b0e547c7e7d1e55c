// Package trace serializes execution results for storage and transport.
// Traces are encoded as canonical CBOR so that identical runs produce
// identical bytes, and runs are content-addressed by a digest over the
// program, input, and configured ceilings.
package trace

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/turmite/vm"
)

// cborEncMode uses canonical mode for deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("trace: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// wireSnapshot mirrors vm.Snapshot with stable integer keys.
type wireSnapshot struct {
	Cells        []byte `cbor:"1,keyasint"`
	DataPointer  int    `cbor:"2,keyasint"`
	InstrPointer int    `cbor:"3,keyasint"`
	InputPointer int    `cbor:"4,keyasint"`
	Output       []byte `cbor:"5,keyasint,omitempty"`
	Cause        int    `cbor:"6,keyasint,omitempty"`
	Status       string `cbor:"7,keyasint,omitempty"`
}

// wireResult mirrors vm.ExecutionResult with stable integer keys.
type wireResult struct {
	Snapshots []wireSnapshot `cbor:"1,keyasint,omitempty"`
	Output    []byte         `cbor:"2,keyasint,omitempty"`
	Executed  int            `cbor:"3,keyasint"`
	ElapsedNs int64          `cbor:"4,keyasint"`
	State     int            `cbor:"5,keyasint"`
}

// MarshalResult serializes an ExecutionResult to canonical CBOR bytes.
func MarshalResult(r *vm.ExecutionResult) ([]byte, error) {
	w := wireResult{
		Snapshots: make([]wireSnapshot, len(r.Snapshots)),
		Output:    r.Output,
		Executed:  r.Executed,
		ElapsedNs: r.Elapsed.Nanoseconds(),
		State:     int(r.State),
	}
	for i, s := range r.Snapshots {
		w.Snapshots[i] = wireSnapshot{
			Cells:        s.Cells,
			DataPointer:  s.DataPointer,
			InstrPointer: s.InstrPointer,
			InputPointer: s.InputPointer,
			Output:       s.Output,
			Cause:        int(s.Cause),
			Status:       s.Status,
		}
	}
	return cborEncMode.Marshal(&w)
}

// UnmarshalResult deserializes an ExecutionResult from CBOR bytes.
func UnmarshalResult(data []byte) (*vm.ExecutionResult, error) {
	var w wireResult
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("trace: unmarshal result: %w", err)
	}
	r := &vm.ExecutionResult{
		Snapshots: make([]vm.Snapshot, len(w.Snapshots)),
		Output:    w.Output,
		Executed:  w.Executed,
		Elapsed:   time.Duration(w.ElapsedNs),
		State:     vm.HaltState(w.State),
	}
	for i, s := range w.Snapshots {
		cause := vm.FaultKind(s.Cause)
		r.Snapshots[i] = vm.Snapshot{
			Cells:        s.Cells,
			DataPointer:  s.DataPointer,
			InstrPointer: s.InstrPointer,
			InputPointer: s.InputPointer,
			Output:       s.Output,
			IsError:      cause != vm.FaultNone,
			Cause:        cause,
			Status:       s.Status,
		}
	}
	return r, nil
}
