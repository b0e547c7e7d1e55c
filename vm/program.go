package vm

// ---------------------------------------------------------------------------
// Program: decoded instruction text plus the instruction pointer
// ---------------------------------------------------------------------------

// Program holds the decoded instruction sequence and the instruction
// pointer. Decoding happens once at construction; the opcode sequence has
// the same length and positions as the source text, so comment characters
// keep their slots and snapshot instruction pointers remain indexes into
// the original text.
type Program struct {
	ops []Opcode
	ip  int
}

// NewProgram decodes source text into a program positioned at instruction 0.
func NewProgram(source string) *Program {
	ops := make([]Opcode, len(source))
	for i := 0; i < len(source); i++ {
		ops[i] = DecodeOpcode(source[i])
	}
	return &Program{ops: ops}
}

// Len returns the number of instruction slots, comments included.
func (p *Program) Len() int {
	return len(p.ops)
}

// IP returns the current instruction pointer.
func (p *Program) IP() int {
	return p.ip
}

// Ops returns the decoded opcode sequence. Callers must not modify it.
func (p *Program) Ops() []Opcode {
	return p.ops
}

// Current returns the opcode at the instruction pointer.
func (p *Program) Current() Opcode {
	return p.ops[p.ip]
}

// Done reports whether the instruction pointer has passed the end.
func (p *Program) Done() bool {
	return p.ip >= len(p.ops)
}

// Advance moves the instruction pointer forward by one slot.
func (p *Program) Advance() {
	p.ip++
}

// Jump repositions the instruction pointer. Bracket handlers use this to
// land on the matched partner bracket; the run loop then advances past it.
func (p *Program) Jump(pos int) {
	p.ip = pos
}
