// Package vm implements the turmite execution engine: an interpreter for an
// eight-instruction tape language that records an immutable snapshot of the
// full machine state after every executed instruction.
//
// The machine is deliberately small:
//
//   - Program: the instruction text, decoded up front into a random-access
//     opcode sequence, plus an instruction pointer that moves both ways.
//
//   - Tape: a growable sequence of byte cells with a data pointer. The tape
//     starts as a single zero cell and grows by half its current size plus
//     one cell whenever the pointer moves past the allocated end. An optional
//     cell ceiling bounds growth.
//
//   - InputCursor / OutputSink: in-memory byte sequences. Input exhaustion
//     yields the sentinel byte 255 rather than an error; output grows by one
//     byte per output instruction.
//
//   - Bracket seeks: loop entry and exit re-scan the program for the nearest
//     unmatched partner bracket on every boundary crossing. Each seek is
//     O(program length) on purpose; the naive scan is the reference
//     semantics, and any faster pair index must reproduce it exactly.
//
// Every run produces an ExecutionResult holding the chronological snapshot
// trace, the final output, the executed-instruction count, and the elapsed
// wall time. All faults are fatal: the first one is recorded as the final,
// error-flagged snapshot and the run halts.
//
// An Interpreter exclusively owns its program, tape, and cursors for exactly
// one run. The package is single-threaded by design; concurrent runs must
// each construct their own Interpreter.
package vm
