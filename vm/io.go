package vm

// ---------------------------------------------------------------------------
// InputCursor / OutputSink: the machine's in-memory byte streams
// ---------------------------------------------------------------------------

// Sentinel is the byte an exhausted InputCursor yields. A genuine input
// byte of 255 is indistinguishable from exhaustion; the language leaves
// that ambiguity to the program rather than defining an out-of-band signal.
const Sentinel byte = 255

// InputCursor yields the run's input bytes one at a time. The position
// never decreases: reading past the end returns Sentinel without advancing.
type InputCursor struct {
	bytes []byte
	pos   int
}

// NewInputCursor copies input so later caller mutations cannot reach the
// running machine.
func NewInputCursor(input []byte) *InputCursor {
	c := &InputCursor{bytes: make([]byte, len(input))}
	copy(c.bytes, input)
	return c
}

// Next returns the next input byte, or Sentinel once the input is
// exhausted. Exhaustion is not an error.
func (c *InputCursor) Next() byte {
	if c.pos >= len(c.bytes) {
		return Sentinel
	}
	b := c.bytes[c.pos]
	c.pos++
	return b
}

// Pos returns the number of input bytes consumed so far.
func (c *InputCursor) Pos() int {
	return c.pos
}

// OutputSink accumulates bytes emitted by the output instruction.
type OutputSink struct {
	bytes []byte
}

// Append adds one byte to the output.
func (o *OutputSink) Append(b byte) {
	o.bytes = append(o.bytes, b)
}

// Len returns the number of bytes emitted so far.
func (o *OutputSink) Len() int {
	return len(o.bytes)
}

// Bytes returns a copy of everything emitted so far.
func (o *OutputSink) Bytes() []byte {
	out := make([]byte, len(o.bytes))
	copy(out, o.bytes)
	return out
}
