package vm

// ---------------------------------------------------------------------------
// Tape: growable byte-cell memory with a data pointer
// ---------------------------------------------------------------------------

// Tape is the machine's memory: a growable sequence of byte cells addressed
// by a data pointer. A fresh tape holds a single zero cell with the pointer
// at 0. Cell arithmetic wraps mod 256; only pointer movement can fault.
type Tape struct {
	cells []byte
	ptr   int
	limit int // maximum cell count, 0 means unbounded
	high  int // highest pointer position reached, for trimmed snapshots
}

// NewTape creates a one-cell zeroed tape. A nonzero limit caps the total
// number of cells the tape may ever hold.
func NewTape(limit int) *Tape {
	return &Tape{cells: make([]byte, 1), limit: limit}
}

// Read returns the cell at the data pointer.
func (t *Tape) Read() byte {
	return t.cells[t.ptr]
}

// Write overwrites the cell at the data pointer.
func (t *Tape) Write(b byte) {
	t.cells[t.ptr] = b
}

// Pointer returns the current data pointer.
func (t *Tape) Pointer() int {
	return t.ptr
}

// Len returns the number of allocated cells.
func (t *Tape) Len() int {
	return len(t.cells)
}

// HighWater returns the highest data pointer position reached so far.
func (t *Tape) HighWater() int {
	return t.high
}

// MoveRight advances the data pointer by one, growing the tape first when
// the pointer would leave the allocated cells. When the cell ceiling blocks
// growth the tape is left untouched: no new cells, pointer unmoved.
func (t *Tape) MoveRight() *Fault {
	if t.ptr+1 >= len(t.cells) && !t.grow() {
		return newFault(MemoryLimitExceeded, "cell ceiling reached, tape cannot grow")
	}
	t.ptr++
	if t.ptr > t.high {
		t.high = t.ptr
	}
	return nil
}

// MoveLeft retreats the data pointer by one. The pointer cannot move below
// cell 0.
func (t *Tape) MoveLeft() *Fault {
	if t.ptr == 0 {
		return newFault(PointerUnderflow, "data pointer already at cell 0")
	}
	t.ptr--
	return nil
}

// Increment adds one to the current cell, wrapping 255 back to 0.
// Reports whether the value wrapped.
func (t *Tape) Increment() bool {
	t.cells[t.ptr]++
	return t.cells[t.ptr] == 0
}

// Decrement subtracts one from the current cell, wrapping 0 back to 255.
// Reports whether the value wrapped.
func (t *Tape) Decrement() bool {
	t.cells[t.ptr]--
	return t.cells[t.ptr] == 255
}

// Cells returns a copy of the tape trimmed to the high-water mark: every
// cell the run has visited, none of the zero-filled slack beyond it.
func (t *Tape) Cells() []byte {
	out := make([]byte, t.high+1)
	copy(out, t.cells[:t.high+1])
	return out
}

// grow requests half the current size plus one cell, clamped to whatever
// headroom the ceiling leaves. Reports whether any capacity was added; new
// cells are zero.
func (t *Tape) grow() bool {
	additional := len(t.cells)/2 + 1
	if t.limit > 0 {
		if headroom := t.limit - len(t.cells); additional > headroom {
			additional = headroom
		}
		if additional <= 0 {
			return false
		}
	}
	t.cells = append(t.cells, make([]byte, additional)...)
	return true
}
