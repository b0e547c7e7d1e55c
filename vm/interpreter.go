package vm

// ---------------------------------------------------------------------------
// Interpreter: dispatch and run loop
// ---------------------------------------------------------------------------

// Limits bounds a run's resource use. Zero values mean unbounded.
type Limits struct {
	Steps int // maximum executed instructions before the run is cut off
	Cells int // maximum tape cells the run may allocate
}

// Interpreter runs one program against one input. It exclusively owns its
// program, tape, input cursor, and output sink for the duration of a single
// run; nothing is shared or reused across runs.
type Interpreter struct {
	program *Program
	tape    *Tape
	input   *InputCursor
	output  *OutputSink
	limits  Limits
	clock   Clock

	snapshots []Snapshot
	executed  int
}

// New creates an interpreter with no resource ceilings.
func New(source string, input []byte) *Interpreter {
	return NewWithLimits(source, input, Limits{})
}

// NewWithLimits creates an interpreter with the given ceilings.
func NewWithLimits(source string, input []byte, limits Limits) *Interpreter {
	return &Interpreter{
		program: NewProgram(source),
		tape:    NewTape(limits.Cells),
		input:   NewInputCursor(input),
		output:  &OutputSink{},
		limits:  limits,
		clock:   SystemClock(),
	}
}

// SetClock replaces the wall clock used for elapsed-time accounting.
// Must be called before Run.
func (in *Interpreter) SetClock(c Clock) {
	in.clock = c
}

// Run executes the program to completion or to the first halt condition and
// returns the accumulated result. Recognized instructions each produce one
// snapshot; comment characters advance the instruction pointer silently.
// The first fault ends the run with an error snapshot. When the execution
// ceiling is hit, one synthetic ExecutionLimitExceeded snapshot is appended
// and the run ends; that snapshot does not count as an executed instruction.
func (in *Interpreter) Run() *ExecutionResult {
	start := in.clock.Now()
	state := Running

	for !in.program.Done() {
		if in.limits.Steps > 0 && len(in.snapshots) >= in.limits.Steps {
			in.record(ExecutionLimitExceeded, "execution ceiling reached")
			state = HaltedOnLimit
			break
		}

		op := in.program.Current()
		if op == OpComment {
			in.program.Advance()
			continue
		}

		status, fault := in.step(op)
		if fault != nil {
			in.record(fault.Kind, fault.Message)
			state = HaltedOnError
			break
		}
		in.record(FaultNone, status)
		in.executed++
		in.program.Advance()
	}

	if state == Running {
		state = HaltedNormally
	}

	return &ExecutionResult{
		Snapshots: in.snapshots,
		Output:    in.output.Bytes(),
		Executed:  in.executed,
		Elapsed:   in.clock.Now().Sub(start),
		State:     state,
	}
}

// step dispatches one recognized instruction to its handler. Handlers
// mutate the tape, cursors, and instruction pointer; the returned status
// feeds the snapshot. A bracket handler that seeks leaves the instruction
// pointer on the matched partner, so the run loop's advance moves past it.
func (in *Interpreter) step(op Opcode) (string, *Fault) {
	switch op {
	case OpRight:
		if f := in.tape.MoveRight(); f != nil {
			return "", f
		}
		return "incremented pointer by 1", nil

	case OpLeft:
		if f := in.tape.MoveLeft(); f != nil {
			return "", f
		}
		return "decremented pointer by 1", nil

	case OpInc:
		if in.tape.Increment() {
			return "wrapped overflow byte back to 0x00", nil
		}
		return "incremented byte by 1", nil

	case OpDec:
		if in.tape.Decrement() {
			return "wrapped overflow byte back to 0xFF", nil
		}
		return "decremented byte by 1", nil

	case OpOut:
		in.output.Append(in.tape.Read())
		return "copied byte from memory to output", nil

	case OpIn:
		in.tape.Write(in.input.Next())
		return "copied byte from input to memory", nil

	case OpOpen:
		if in.tape.Read() != 0 {
			return "byte is non-zero, no bracket seek necessary", nil
		}
		pos, f := SeekForward(in.program.Ops(), in.program.IP())
		if f != nil {
			return "", f
		}
		in.program.Jump(pos)
		return "found matching close bracket", nil

	case OpClose:
		if in.tape.Read() == 0 {
			return "byte is zero, no bracket seek necessary", nil
		}
		pos, f := SeekBackward(in.program.Ops(), in.program.IP())
		if f != nil {
			return "", f
		}
		in.program.Jump(pos)
		return "found matching open bracket", nil
	}

	// Comments never reach step; the run loop filters them.
	return "", nil
}

// record appends a snapshot of the current machine state to the trace.
func (in *Interpreter) record(cause FaultKind, status string) {
	in.snapshots = append(in.snapshots, Snapshot{
		Cells:        in.tape.Cells(),
		DataPointer:  in.tape.Pointer(),
		InstrPointer: in.program.IP(),
		InputPointer: in.input.Pos(),
		Output:       in.output.Bytes(),
		IsError:      cause != FaultNone,
		Cause:        cause,
		Status:       status,
	})
}
