package vm

import (
	"bytes"
	"testing"
)

func TestInputCursorYieldsBytesThenSentinel(t *testing.T) {
	c := NewInputCursor([]byte{10, 20})
	if b := c.Next(); b != 10 {
		t.Errorf("Expected 10, got %d", b)
	}
	if b := c.Next(); b != 20 {
		t.Errorf("Expected 20, got %d", b)
	}
	for i := 0; i < 3; i++ {
		if b := c.Next(); b != Sentinel {
			t.Errorf("Expected sentinel %d, got %d", Sentinel, b)
		}
	}
	if c.Pos() != 2 {
		t.Errorf("Exhausted cursor must not advance: pos=%d", c.Pos())
	}
}

func TestInputCursorEmptyInput(t *testing.T) {
	c := NewInputCursor(nil)
	if b := c.Next(); b != Sentinel {
		t.Errorf("Expected sentinel %d, got %d", Sentinel, b)
	}
	if c.Pos() != 0 {
		t.Errorf("Expected pos 0, got %d", c.Pos())
	}
}

func TestInputCursorSentinelAmbiguity(t *testing.T) {
	// A genuine 255 in the input reads exactly like exhaustion; only the
	// position reveals the difference.
	c := NewInputCursor([]byte{255})
	if b := c.Next(); b != 255 {
		t.Errorf("Expected 255, got %d", b)
	}
	if c.Pos() != 1 {
		t.Errorf("A genuine byte must advance the cursor: pos=%d", c.Pos())
	}
}

func TestInputCursorCopiesInput(t *testing.T) {
	input := []byte{1, 2}
	c := NewInputCursor(input)
	input[0] = 9
	if b := c.Next(); b != 1 {
		t.Errorf("Cursor must not see caller mutations: got %d", b)
	}
}

func TestOutputSinkAppendAndCopy(t *testing.T) {
	var o OutputSink
	o.Append(1)
	o.Append(2)
	if o.Len() != 2 {
		t.Errorf("Expected len 2, got %d", o.Len())
	}
	b := o.Bytes()
	if !bytes.Equal(b, []byte{1, 2}) {
		t.Errorf("Expected [1 2], got %v", b)
	}
	b[0] = 9
	if o.Bytes()[0] == 9 {
		t.Error("Bytes() must return an independent copy")
	}
}
