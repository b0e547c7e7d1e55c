package vm

import "fmt"

// ---------------------------------------------------------------------------
// Fault: the closed set of conditions that halt a run
// ---------------------------------------------------------------------------

// FaultKind identifies a fatal run condition. Callers branch on the kind;
// the message is for humans.
type FaultKind int

const (
	// FaultNone marks an ok snapshot or a run that completed normally.
	FaultNone FaultKind = iota

	// PointerUnderflow: move-left attempted at tape position 0.
	PointerUnderflow

	// UnmatchedOpenBracket: a forward bracket seek ran off the end of the
	// program.
	UnmatchedOpenBracket

	// UnmatchedCloseBracket: a backward bracket seek ran off the start of
	// the program.
	UnmatchedCloseBracket

	// MemoryLimitExceeded: move-right needed growth beyond the cell ceiling.
	MemoryLimitExceeded

	// ExecutionLimitExceeded: the execution ceiling was reached. This is an
	// engine-imposed halt rather than a program defect, but it is surfaced
	// like any other fault to keep the trace uniform.
	ExecutionLimitExceeded
)

// String returns the canonical name of the fault kind.
func (k FaultKind) String() string {
	switch k {
	case FaultNone:
		return "None"
	case PointerUnderflow:
		return "PointerUnderflow"
	case UnmatchedOpenBracket:
		return "UnmatchedOpenBracket"
	case UnmatchedCloseBracket:
		return "UnmatchedCloseBracket"
	case MemoryLimitExceeded:
		return "MemoryLimitExceeded"
	case ExecutionLimitExceeded:
		return "ExecutionLimitExceeded"
	default:
		return fmt.Sprintf("FaultKind(%d)", int(k))
	}
}

// Fault is a fatal run condition: a named kind plus a short human-readable
// cause. Every fault terminates the run; none are retried.
type Fault struct {
	Kind    FaultKind
	Message string
}

func newFault(kind FaultKind, message string) *Fault {
	return &Fault{Kind: kind, Message: message}
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}
