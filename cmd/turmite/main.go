// Turmite CLI - runs tape programs and records execution traces
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/turmite/manifest"
	"github.com/chazu/turmite/server"
	"github.com/chazu/turmite/store"
	"github.com/chazu/turmite/vm"
	"github.com/chazu/turmite/vm/trace"
)

func main() {
	expr := flag.String("e", "", "Program text given inline")
	inputText := flag.String("input", "", "Input bytes given as a literal string")
	inputFile := flag.String("input-file", "", "File to read input bytes from")
	steps := flag.Int("steps", 0, "Execution ceiling in instructions (0 = unbounded)")
	cells := flag.Int("cells", 0, "Memory ceiling in tape cells (0 = unbounded)")
	dump := flag.Bool("dump", false, "Print the step-by-step trace listing")
	traceOut := flag.String("trace", "", "Write the canonical CBOR trace to this file")
	dbPath := flag.String("db", "", "Persist the run in this trace database")
	serveMode := flag.Bool("serve", false, "Start the HTTP trace service")
	servePort := flag.Int("port", 4567, "Trace service port (used with -serve)")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: turmite [options] [program-file]\n\n")
		fmt.Fprintf(os.Stderr, "Runs a tape program and records a snapshot trace of the execution.\n")
		fmt.Fprintf(os.Stderr, "Without a program argument, searches upward for a turmite.toml manifest.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  turmite hello.b                  # Run hello.b, print its output\n")
		fmt.Fprintf(os.Stderr, "  turmite -e '+++.' -dump          # Run inline, show the trace\n")
		fmt.Fprintf(os.Stderr, "  turmite echo.b -input AB         # Feed literal input bytes\n")
		fmt.Fprintf(os.Stderr, "  turmite loop.b -steps 10000      # Bound a possibly endless run\n")
		fmt.Fprintf(os.Stderr, "  turmite hello.b -db runs.duckdb  # Archive the trace\n")
		fmt.Fprintf(os.Stderr, "  turmite -serve -port 8080        # Start the HTTP trace service\n")
	}
	flag.Parse()

	if *verbose {
		commonlog.Configure(1, nil)
	} else {
		commonlog.Configure(0, nil)
	}

	if *serveMode {
		st, err := store.Open(*dbPath)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		srv := server.New(st)
		if err := srv.Listen(fmt.Sprintf(":%d", *servePort)); err != nil {
			fatal(err)
		}
		return
	}

	run, err := resolveRun(flag.Args(), *expr, *inputText, *inputFile, *steps, *cells, *traceOut, *dbPath)
	if err != nil {
		fatal(err)
	}

	in := vm.NewWithLimits(run.source, run.input, run.limits)
	res := in.Run()

	os.Stdout.Write(res.Output)

	if *dump {
		fmt.Print(TraceListing(res))
	}
	if run.traceOut != "" {
		blob, err := trace.MarshalResult(res)
		if err != nil {
			fatal(err)
		}
		if err := os.WriteFile(run.traceOut, blob, 0o644); err != nil {
			fatal(err)
		}
	}
	if run.dbPath != "" {
		st, err := store.Open(run.dbPath)
		if err != nil {
			fatal(err)
		}
		digest, err := st.Save(run.source, run.input, run.limits, res)
		st.Close()
		if err != nil {
			fatal(err)
		}
		if *verbose {
			fmt.Fprintf(os.Stderr, "archived run %s\n", digest)
		}
	}

	if res.Failed() {
		fmt.Fprintf(os.Stderr, "turmite: %s: %s\n", res.Fault(), res.Last().Status)
		os.Exit(1)
	}
}

// runConfig is one fully-resolved run: flags win over the manifest.
type runConfig struct {
	source   string
	input    []byte
	limits   vm.Limits
	traceOut string
	dbPath   string
}

func resolveRun(args []string, expr, inputText, inputFile string, steps, cells int, traceOut, dbPath string) (*runConfig, error) {
	run := &runConfig{
		limits:   vm.Limits{Steps: steps, Cells: cells},
		traceOut: traceOut,
		dbPath:   dbPath,
	}

	switch {
	case expr != "" && len(args) > 0:
		return nil, fmt.Errorf("give either -e or a program file, not both")

	case expr != "":
		run.source = expr

	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("cannot read program: %w", err)
		}
		run.source = string(data)

	default:
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		m, err := manifest.FindAndLoad(cwd)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, fmt.Errorf("no program given and no turmite.toml found")
		}
		if err := applyManifest(run, m, steps, cells); err != nil {
			return nil, err
		}
	}

	switch {
	case inputText != "" && inputFile != "":
		return nil, fmt.Errorf("give either -input or -input-file, not both")
	case inputText != "":
		run.input = []byte(inputText)
	case inputFile != "":
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return nil, fmt.Errorf("cannot read input: %w", err)
		}
		run.input = data
	}

	return run, nil
}

func applyManifest(run *runConfig, m *manifest.Manifest, steps, cells int) error {
	source, err := m.ProgramText()
	if err != nil {
		return err
	}
	run.source = source

	input, err := m.InputBytes()
	if err != nil {
		return err
	}
	run.input = input

	limits := m.VMLimits()
	if steps != 0 {
		limits.Steps = steps
	}
	if cells != 0 {
		limits.Cells = cells
	}
	run.limits = limits

	if run.traceOut == "" {
		run.traceOut = m.TraceOutputPath()
	}
	if run.dbPath == "" {
		run.dbPath = m.StorePath()
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "turmite: %v\n", err)
	os.Exit(1)
}
