package vm

// ---------------------------------------------------------------------------
// Bracket seeks: structured looping by program re-scan
// ---------------------------------------------------------------------------
//
// Loop boundaries are resolved by scanning the program for the nearest
// unmatched partner bracket, counting nesting along the way. Both seeks are
// pure functions of the opcode sequence and the starting position: same
// inputs, same match or same fault, no other state consulted. Each seek is
// O(program length); callers that need throughput can precompute a pair
// table, but it must produce the same match positions as these scans.

// SeekForward finds the loop-close matching the loop-open at pos, scanning
// right. Each further loop-open deepens the nesting; a loop-close at depth
// zero is the match. Returns the match position.
func SeekForward(ops []Opcode, pos int) (int, *Fault) {
	depth := 0
	for i := pos + 1; i < len(ops); i++ {
		switch ops[i] {
		case OpOpen:
			depth++
		case OpClose:
			if depth == 0 {
				return i, nil
			}
			depth--
		}
	}
	return 0, newFault(UnmatchedOpenBracket, "hit end of program without finding matching ]")
}

// SeekBackward finds the loop-open matching the loop-close at pos, scanning
// left. Each further loop-close deepens the nesting; a loop-open at depth
// zero is the match. Returns the match position.
func SeekBackward(ops []Opcode, pos int) (int, *Fault) {
	depth := 0
	for i := pos - 1; i >= 0; i-- {
		switch ops[i] {
		case OpClose:
			depth++
		case OpOpen:
			if depth == 0 {
				return i, nil
			}
			depth--
		}
	}
	return 0, newFault(UnmatchedCloseBracket, "hit start of program without finding matching [")
}
