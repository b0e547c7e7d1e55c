package vm

import "testing"

func opsOf(source string) []Opcode {
	return NewProgram(source).Ops()
}

func TestSeekForward(t *testing.T) {
	tests := []struct {
		source string
		pos    int
		want   int
	}{
		{"[]", 0, 1},
		{"[+]", 0, 2},
		{"[[+]]", 0, 4},
		{"[[+]]", 1, 3},
		{"[a comment +]", 0, 12},
		{"[+][-]", 3, 5},
	}
	for _, tt := range tests {
		got, f := SeekForward(opsOf(tt.source), tt.pos)
		if f != nil {
			t.Errorf("%q pos=%d: unexpected fault: %v", tt.source, tt.pos, f)
			continue
		}
		if got != tt.want {
			t.Errorf("%q pos=%d: expected %d, got %d", tt.source, tt.pos, tt.want, got)
		}
	}
}

func TestSeekForwardUnmatched(t *testing.T) {
	for _, source := range []string{"[", "[[+]", "[+[-]"} {
		_, f := SeekForward(opsOf(source), 0)
		if f == nil || f.Kind != UnmatchedOpenBracket {
			t.Errorf("%q: expected UnmatchedOpenBracket, got %v", source, f)
		}
	}
}

func TestSeekBackward(t *testing.T) {
	tests := []struct {
		source string
		pos    int
		want   int
	}{
		{"[]", 1, 0},
		{"[+]", 2, 0},
		{"[[+]]", 4, 0},
		{"[[+]]", 3, 1},
		{"[ comment +]", 11, 0},
		{"[+][-]", 5, 3},
	}
	for _, tt := range tests {
		got, f := SeekBackward(opsOf(tt.source), tt.pos)
		if f != nil {
			t.Errorf("%q pos=%d: unexpected fault: %v", tt.source, tt.pos, f)
			continue
		}
		if got != tt.want {
			t.Errorf("%q pos=%d: expected %d, got %d", tt.source, tt.pos, tt.want, got)
		}
	}
}

func TestSeekBackwardUnmatched(t *testing.T) {
	tests := []struct {
		source string
		pos    int
	}{
		{"]", 0},
		{"[+]]", 3},
		{"+]", 1},
	}
	for _, tt := range tests {
		_, f := SeekBackward(opsOf(tt.source), tt.pos)
		if f == nil || f.Kind != UnmatchedCloseBracket {
			t.Errorf("%q pos=%d: expected UnmatchedCloseBracket, got %v", tt.source, tt.pos, f)
		}
	}
}

func TestSeekIsIdempotent(t *testing.T) {
	ops := opsOf("[[+]-]")
	first, f1 := SeekForward(ops, 0)
	second, f2 := SeekForward(ops, 0)
	if f1 != nil || f2 != nil {
		t.Fatalf("Unexpected faults: %v, %v", f1, f2)
	}
	if first != second {
		t.Errorf("Same inputs must produce the same match: %d vs %d", first, second)
	}

	_, e1 := SeekBackward(opsOf("]"), 0)
	_, e2 := SeekBackward(opsOf("]"), 0)
	if e1 == nil || e2 == nil || e1.Kind != e2.Kind {
		t.Errorf("Same inputs must produce the same fault: %v vs %v", e1, e2)
	}
}
