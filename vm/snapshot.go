package vm

// Snapshot is an immutable capture of machine state taken after one
// executed (or fatally attempted) instruction. Cells are trimmed to the
// high-water mark of the data pointer rather than the full allocated tape,
// which bounds trace size while still covering every cell the run has
// visited. Output is a copy of everything emitted so far.
type Snapshot struct {
	Cells        []byte
	DataPointer  int
	InstrPointer int
	InputPointer int
	Output       []byte
	IsError      bool
	Cause        FaultKind // FaultNone on ok snapshots
	Status       string
}

// Cell returns the value under the data pointer at snapshot time.
func (s *Snapshot) Cell() byte {
	return s.Cells[s.DataPointer]
}
