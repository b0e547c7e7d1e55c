package trace

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/chazu/turmite/vm"
)

// RunDigest computes the content address of a run: a sha256 over the
// length-prefixed program text and input bytes plus the two ceilings.
// Identical (program, input, limits) triples share a digest, so a digest
// names exactly one trace.
func RunDigest(source string, input []byte, limits vm.Limits) [32]byte {
	var buf []byte

	writeBytes := func(b []byte) {
		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
		buf = append(buf, lenBuf[:]...)
		buf = append(buf, b...)
	}
	writeInt := func(v int) {
		var intBuf [8]byte
		binary.BigEndian.PutUint64(intBuf[:], uint64(v))
		buf = append(buf, intBuf[:]...)
	}

	writeBytes([]byte(source))
	writeBytes(input)
	writeInt(limits.Steps)
	writeInt(limits.Cells)

	return sha256.Sum256(buf)
}

// FormatDigest renders a digest as lowercase hex.
func FormatDigest(d [32]byte) string {
	return hex.EncodeToString(d[:])
}

// ParseDigest parses a lowercase-hex digest string.
func ParseDigest(s string) ([32]byte, error) {
	var d [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("trace: bad digest %q: %w", s, err)
	}
	if len(b) != 32 {
		return d, fmt.Errorf("trace: bad digest %q: want 32 bytes, got %d", s, len(b))
	}
	copy(d[:], b)
	return d, nil
}
