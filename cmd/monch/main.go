// Command monch is the interactive shell: a REPL over the pipeline
// engine, resolving each stage against the built-in registry, then
// $MONCH_PATH, then the system $PATH.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wgoodall01/monch/builtin"
	"github.com/wgoodall01/monch/engine"
	"github.com/wgoodall01/monch/exit"
	"github.com/wgoodall01/monch/repl"
	"github.com/wgoodall01/monch/stream"
)

func main() {
	// Put the directory this binary lives in at the front of $MONCH_PATH
	// (on every build), so the cmd/{ls,get,grep,sed} utilities built into
	// the same directory are resolvable without installing them.
	if exe, err := os.Executable(); err == nil {
		if dir, err := filepath.EvalSymlinks(filepath.Dir(exe)); err == nil {
			prependMonchPath(dir)
		}
	}

	streams, err := stream.Stdio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "monch: couldn't open stdio: %s\n", err)
		os.Exit(1)
	}

	workdir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "monch: bad working directory: %s\n", err)
		os.Exit(1)
	}

	interp, err := engine.New(workdir, streams, monchPath(), os.Getenv("PATH"), builtin.Builtins())
	if err != nil {
		fmt.Fprintf(os.Stderr, "monch: %s\n", err)
		os.Exit(1)
	}

	result, err := repl.New(interp).Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "monch: %s\n", err)
		os.Exit(1)
	}
	os.Exit(processExitCode(result))
}

// processExitCode converts an Exit to the value this process itself
// should exit with: a signal kill is reported the conventional
// 128+signal way, since the shell process wasn't itself killed.
func processExitCode(e exit.Exit) int {
	if e.Kind == exit.KindSignal {
		return 128 + int(e.Signal)
	}
	return int(e.Code)
}

func monchPath() []string {
	raw := os.Getenv("MONCH_PATH")
	if raw == "" {
		return nil
	}
	return filepath.SplitList(raw)
}

func prependMonchPath(dir string) {
	existing := os.Getenv("MONCH_PATH")
	if existing == "" {
		_ = os.Setenv("MONCH_PATH", dir)
		return
	}
	parts := filepath.SplitList(existing)
	for _, p := range parts {
		if p == dir {
			return
		}
	}
	_ = os.Setenv("MONCH_PATH", dir+string(filepath.ListSeparator)+strings.Join(parts, string(filepath.ListSeparator)))
}
