// Package manifest handles turmite.toml run configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/turmite/vm"
)

// Manifest represents a turmite.toml run configuration.
type Manifest struct {
	Program Program `toml:"program"`
	Input   Input   `toml:"input"`
	Limits  Limits  `toml:"limits"`
	Trace   Trace   `toml:"trace"`

	// Dir is the directory containing the turmite.toml file (set at load time).
	Dir string `toml:"-"`
}

// Program names the instruction text: a file path or inline source.
type Program struct {
	Path   string `toml:"path"`
	Source string `toml:"source"`
}

// Input names the input bytes: literal text, a file path, or a byte list.
type Input struct {
	Text  string `toml:"text"`
	Path  string `toml:"path"`
	Bytes []int  `toml:"bytes"`
}

// Limits configures the run ceilings. Zero means unbounded.
type Limits struct {
	Steps int `toml:"steps"`
	Cells int `toml:"cells"`
}

// Trace configures where the run's trace goes.
type Trace struct {
	Output string `toml:"output"` // CBOR trace file
	Store  string `toml:"store"`  // trace database path
}

// Load parses and validates a turmite.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "turmite.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	// Decode generically first so the schema can flag unknown keys and bad
	// types before they vanish into struct defaults.
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if err := validate(raw); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if m.Program.Path == "" && m.Program.Source == "" {
		return nil, fmt.Errorf("%s: program needs a path or inline source", path)
	}
	if m.Program.Path != "" && m.Program.Source != "" {
		return nil, fmt.Errorf("%s: program path and inline source are mutually exclusive", path)
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a turmite.toml file, then
// loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "turmite.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// ProgramText returns the instruction text, reading the program file when
// the manifest names one. Relative paths resolve against the manifest dir.
func (m *Manifest) ProgramText() (string, error) {
	if m.Program.Source != "" {
		return m.Program.Source, nil
	}
	data, err := os.ReadFile(m.resolve(m.Program.Path))
	if err != nil {
		return "", fmt.Errorf("cannot read program: %w", err)
	}
	return string(data), nil
}

// InputBytes returns the run's input bytes. Precedence: byte list, then
// literal text, then input file; an unset input means no input.
func (m *Manifest) InputBytes() ([]byte, error) {
	if len(m.Input.Bytes) > 0 {
		out := make([]byte, len(m.Input.Bytes))
		for i, v := range m.Input.Bytes {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("input byte %d out of range: %d", i, v)
			}
			out[i] = byte(v)
		}
		return out, nil
	}
	if m.Input.Text != "" {
		return []byte(m.Input.Text), nil
	}
	if m.Input.Path != "" {
		data, err := os.ReadFile(m.resolve(m.Input.Path))
		if err != nil {
			return nil, fmt.Errorf("cannot read input: %w", err)
		}
		return data, nil
	}
	return nil, nil
}

// VMLimits converts the manifest ceilings to engine limits.
func (m *Manifest) VMLimits() vm.Limits {
	return vm.Limits{Steps: m.Limits.Steps, Cells: m.Limits.Cells}
}

// TraceOutputPath returns the absolute CBOR trace destination, or "" when
// the manifest does not request one.
func (m *Manifest) TraceOutputPath() string {
	if m.Trace.Output == "" {
		return ""
	}
	return m.resolve(m.Trace.Output)
}

// StorePath returns the absolute trace database path, or "" when the
// manifest does not request persistence.
func (m *Manifest) StorePath() string {
	if m.Trace.Store == "" {
		return ""
	}
	return m.resolve(m.Trace.Store)
}

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.Dir, path)
}
