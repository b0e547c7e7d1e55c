package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "turmite.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing turmite.toml: %v", err)
	}
}

func TestLoadInlineSource(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[program]
source = "+++."

[input]
text = "AB"

[limits]
steps = 100
cells = 64
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	src, err := m.ProgramText()
	if err != nil {
		t.Fatalf("ProgramText: %v", err)
	}
	if src != "+++." {
		t.Errorf("Expected inline source, got %q", src)
	}

	input, err := m.InputBytes()
	if err != nil {
		t.Fatalf("InputBytes: %v", err)
	}
	if !bytes.Equal(input, []byte("AB")) {
		t.Errorf("Expected input AB, got %v", input)
	}

	limits := m.VMLimits()
	if limits.Steps != 100 || limits.Cells != 64 {
		t.Errorf("Unexpected limits: %+v", limits)
	}
}

func TestLoadProgramAndInputFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "echo.b"), []byte(",[.,]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "input.bin"), []byte{65, 255}, 0o644); err != nil {
		t.Fatal(err)
	}
	writeManifest(t, dir, `
[program]
path = "echo.b"

[input]
path = "input.bin"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	src, err := m.ProgramText()
	if err != nil {
		t.Fatalf("ProgramText: %v", err)
	}
	if src != ",[.,]" {
		t.Errorf("Expected program from file, got %q", src)
	}

	input, err := m.InputBytes()
	if err != nil {
		t.Fatalf("InputBytes: %v", err)
	}
	if !bytes.Equal(input, []byte{65, 255}) {
		t.Errorf("Expected input [65 255], got %v", input)
	}
}

func TestLoadByteListInput(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[program]
source = ","

[input]
bytes = [0, 127, 255]
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	input, err := m.InputBytes()
	if err != nil {
		t.Fatalf("InputBytes: %v", err)
	}
	if !bytes.Equal(input, []byte{0, 127, 255}) {
		t.Errorf("Expected [0 127 255], got %v", input)
	}
}

func TestLoadRejectsProgramlessManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[limits]
steps = 10
`)
	if _, err := Load(dir); err == nil {
		t.Error("Expected an error for a manifest without a program")
	}
}

func TestLoadRejectsPathAndSourceTogether(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[program]
path = "a.b"
source = "+"
`)
	if _, err := Load(dir); err == nil {
		t.Error("Expected an error for both path and source")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[program]
source = "+"

[limits]
stepz = 10
`)
	if _, err := Load(dir); err == nil {
		t.Error("Expected the schema to flag an unknown key")
	}
}

func TestLoadRejectsWrongTypes(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[program]
source = "+"

[limits]
steps = "lots"
`)
	if _, err := Load(dir); err == nil {
		t.Error("Expected the schema to flag a non-integer ceiling")
	}
}

func TestLoadRejectsOutOfRangeBytes(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[program]
source = ","

[input]
bytes = [0, 300]
`)
	if _, err := Load(dir); err == nil {
		t.Error("Expected the schema to flag a byte over 255")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	writeManifest(t, root, `
[program]
source = "+"
`)

	m, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	if m == nil {
		t.Fatal("Expected a manifest from the parent directory")
	}
	if !strings.HasSuffix(m.Dir, filepath.Base(root)) {
		t.Errorf("Expected manifest dir %s, got %s", root, m.Dir)
	}
}

func TestFindAndLoadWithoutManifest(t *testing.T) {
	m, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	if m != nil {
		t.Error("Expected nil when no manifest exists")
	}
}

func TestTracePathsResolveAgainstManifestDir(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[program]
source = "+"

[trace]
output = "out.cbor"
store = "runs.db"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !filepath.IsAbs(m.TraceOutputPath()) {
		t.Errorf("Expected an absolute trace path, got %q", m.TraceOutputPath())
	}
	if filepath.Dir(m.StorePath()) != m.Dir {
		t.Errorf("Expected store under the manifest dir, got %q", m.StorePath())
	}
}
