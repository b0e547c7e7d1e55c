package vm

import (
	"fmt"
	"time"
)

// ---------------------------------------------------------------------------
// ExecutionResult: everything one run produces
// ---------------------------------------------------------------------------

// HaltState describes how a run ended. A run is Running only while inside
// Run; every result carries one of the three terminal states.
type HaltState int

const (
	Running HaltState = iota

	// HaltedNormally: the instruction pointer passed the end of the program.
	HaltedNormally

	// HaltedOnError: a handler reported a fatal fault.
	HaltedOnError

	// HaltedOnLimit: the execution ceiling was reached.
	HaltedOnLimit
)

// String returns a human-readable name for the halt state.
func (h HaltState) String() string {
	switch h {
	case Running:
		return "Running"
	case HaltedNormally:
		return "HaltedNormally"
	case HaltedOnError:
		return "HaltedOnError"
	case HaltedOnLimit:
		return "HaltedOnLimit"
	default:
		return fmt.Sprintf("HaltState(%d)", int(h))
	}
}

// ExecutionResult is the product of one run: the chronological snapshot
// trace, the final output, the number of instructions actually executed
// (failed attempts and the synthetic ceiling snapshot excluded), and the
// elapsed wall time from run start to run end.
type ExecutionResult struct {
	Snapshots []Snapshot
	Output    []byte
	Executed  int
	Elapsed   time.Duration
	State     HaltState
}

// Failed reports whether the run halted on a fault, the execution ceiling
// included.
func (r *ExecutionResult) Failed() bool {
	return r.State != HaltedNormally
}

// Fault returns the kind of the fault that halted the run, or FaultNone for
// a run that completed normally.
func (r *ExecutionResult) Fault() FaultKind {
	if last := r.Last(); last != nil && last.IsError {
		return last.Cause
	}
	return FaultNone
}

// Last returns the final snapshot, or nil for an empty trace.
func (r *ExecutionResult) Last() *Snapshot {
	if len(r.Snapshots) == 0 {
		return nil
	}
	return &r.Snapshots[len(r.Snapshots)-1]
}
