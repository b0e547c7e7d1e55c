package main

import (
	"fmt"
	"strings"

	"github.com/chazu/turmite/vm"
)

// TraceListing returns a human-readable listing of the execution trace,
// one line per recorded snapshot.
func TraceListing(res *vm.ExecutionResult) string {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("; Turmite Trace: %d snapshots, %d executed\n", len(res.Snapshots), res.Executed))
	sb.WriteString(fmt.Sprintf("; State: %s\n", res.State))
	if res.Failed() {
		sb.WriteString(fmt.Sprintf("; Fault: %s\n", res.Fault()))
	}
	if len(res.Output) > 0 {
		sb.WriteString(fmt.Sprintf("; Output: %s\n", formatBytes(res.Output)))
	}
	sb.WriteString("\n")

	sb.WriteString("; Steps:\n")
	for i, snap := range res.Snapshots {
		marker := " "
		if snap.IsError {
			marker = "!"
		}
		sb.WriteString(fmt.Sprintf("%04d %s ip=%-4d dp=%-4d cell=0x%02X in=%-3d out=%-3d %s\n",
			i, marker, snap.InstrPointer, snap.DataPointer, snap.Cell(), snap.InputPointer, len(snap.Output), snap.Status))
	}

	return sb.String()
}

// formatBytes renders output bytes as printable text where possible,
// falling back to hex for control bytes.
func formatBytes(data []byte) string {
	var sb strings.Builder
	for _, b := range data {
		if b >= 0x20 && b < 0x7F {
			sb.WriteByte(b)
		} else {
			sb.WriteString(fmt.Sprintf("\\x%02X", b))
		}
	}
	return sb.String()
}
