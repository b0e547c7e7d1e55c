package server

import "time"

// RunRequest is the POST /v1/runs payload. Input bytes travel as base64.
type RunRequest struct {
	Source string `json:"source"`
	Input  []byte `json:"input,omitempty"`
	Limits struct {
		Steps int `json:"steps,omitempty"`
		Cells int `json:"cells,omitempty"`
	} `json:"limits"`
}

// RunSummary describes a completed run without its snapshot trace.
type RunSummary struct {
	Digest    string `json:"digest"`
	State     string `json:"state"`
	Executed  int    `json:"executed"`
	Recorded  int    `json:"recorded"` // snapshot count, synthetic included
	Output    []byte `json:"output,omitempty"`
	Fault     string `json:"fault,omitempty"`
	ElapsedUS int64  `json:"elapsed_us"`
}

// RunDetail is a summary plus the full snapshot trace.
type RunDetail struct {
	RunSummary
	Snapshots []SnapshotView `json:"snapshots"`
}

// SnapshotView is the JSON shape of one snapshot.
type SnapshotView struct {
	Cells        []byte `json:"cells"`
	DataPointer  int    `json:"data_pointer"`
	InstrPointer int    `json:"instr_pointer"`
	InputPointer int    `json:"input_pointer"`
	Output       []byte `json:"output,omitempty"`
	IsError      bool   `json:"is_error,omitempty"`
	Cause        string `json:"cause,omitempty"`
	Status       string `json:"status"`
}

// RunListing is one row of GET /v1/runs.
type RunListing struct {
	Digest   string    `json:"digest"`
	State    string    `json:"state"`
	Executed int       `json:"executed"`
	Created  time.Time `json:"created"`
}
