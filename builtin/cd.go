// Package builtin implements the shell's built-in commands: `cd`, which
// changes the interpreter's working directory, and `to`, which converts
// the pipe type of the record stream flowing through it.
package builtin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wgoodall01/monch/exit"
	"github.com/wgoodall01/monch/pipetype"
	"github.com/wgoodall01/monch/resolve"
	"github.com/wgoodall01/monch/stream"
)

// Cd changes the shell's current working directory.
type Cd struct{}

var _ resolve.Executable = Cd{}

func (Cd) InputType([]string) pipetype.Type  { return pipetype.Nothing }
func (Cd) OutputType([]string) pipetype.Type { return pipetype.Nothing }

func (Cd) Execute(ctx context.Context, workdir string, streams stream.Streams, args []string) (resolve.Waiter, error) {
	defer streams.Stdin.Close()
	defer streams.Stdout.Close()
	defer streams.Stderr.Close()

	if len(args) != 1 {
		fmt.Fprintln(streams.Stderr, "monch: cd: too many arguments")
		return resolve.Immediate(exit.Failure), nil
	}
	dir := args[0]

	var target string
	if filepath.IsAbs(dir) {
		target = filepath.Clean(dir)
	} else {
		target = filepath.Join(workdir, dir)
	}
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(streams.Stderr, "monch: cd: %s: no such file or directory\n", dir)
		return resolve.Immediate(exit.Failure), nil
	}

	setter, ok := resolve.WorkdirSetterFrom(ctx)
	if !ok {
		return resolve.Immediate(exit.Failure), nil
	}
	if err := setter.SetCurrentDir(target); err != nil {
		fmt.Fprintf(streams.Stderr, "monch: cd: %s\n", err)
		return resolve.Immediate(exit.Failure), nil
	}

	return resolve.Immediate(exit.Success), nil
}
