package vm

import "fmt"

// Opcode is one decoded instruction. The eight recognized instructions keep
// their source character as their value; every other character decodes to
// OpComment, which advances the instruction pointer without executing.
type Opcode byte

const (
	OpComment Opcode = 0 // any unrecognized character

	OpRight Opcode = '>' // move the data pointer right, growing the tape
	OpLeft  Opcode = '<' // move the data pointer left
	OpInc   Opcode = '+' // increment the current cell, wrapping mod 256
	OpDec   Opcode = '-' // decrement the current cell, wrapping mod 256
	OpOut   Opcode = '.' // append the current cell to the output
	OpIn    Opcode = ',' // store the next input byte in the current cell
	OpOpen  Opcode = '[' // jump past the matching ] when the cell is zero
	OpClose Opcode = ']' // jump back to the matching [ when the cell is nonzero
)

// DecodeOpcode maps a single source character to its opcode.
func DecodeOpcode(ch byte) Opcode {
	switch ch {
	case '>', '<', '+', '-', '.', ',', '[', ']':
		return Opcode(ch)
	default:
		return OpComment
	}
}

// String returns a human-readable name for the opcode.
func (op Opcode) String() string {
	switch op {
	case OpComment:
		return "comment"
	case OpRight:
		return "move-right"
	case OpLeft:
		return "move-left"
	case OpInc:
		return "increment"
	case OpDec:
		return "decrement"
	case OpOut:
		return "output"
	case OpIn:
		return "input"
	case OpOpen:
		return "loop-open"
	case OpClose:
		return "loop-close"
	default:
		return fmt.Sprintf("Opcode(%d)", byte(op))
	}
}
