package resolve

import (
	"context"
	"io/fs"
	"os/exec"

	"github.com/wgoodall01/monch/exit"
	"github.com/wgoodall01/monch/pipetype"
	"github.com/wgoodall01/monch/stream"
)

func isExecutable(info fs.FileInfo) bool {
	return info.Mode()&0o111 != 0
}

// externalExecutable runs a binary found on $MONCH_PATH or the system
// $PATH. Its declared types are set by the constructor: Any in / Unknown
// out for a system $PATH binary (the engine leaves it to the program
// itself to handle whatever it's given, and nothing downstream may assume
// its output is structured), Cbor / Cbor for a $MONCH_PATH utility.
type externalExecutable struct {
	binary     string
	inputType  pipetype.Type
	outputType pipetype.Type
}

// NewExternalExecutable wraps a resolved binary path as an Executable
// with Any/Unknown declared types.
func NewExternalExecutable(binary string) Executable {
	return &externalExecutable{binary: binary, inputType: pipetype.Any, outputType: pipetype.Unknown}
}

// NewShellPathExecutable wraps a binary found via $MONCH_PATH. These
// utilities are expected to speak structured records on both ends.
func NewShellPathExecutable(binary string) Executable {
	return &externalExecutable{binary: binary, inputType: pipetype.Cbor, outputType: pipetype.Cbor}
}

func (e *externalExecutable) InputType(_ []string) pipetype.Type  { return e.inputType }
func (e *externalExecutable) OutputType(_ []string) pipetype.Type { return e.outputType }

func (e *externalExecutable) Execute(ctx context.Context, workdir string, streams stream.Streams, args []string) (Waiter, error) {
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Dir = workdir

	// Hand over a raw *os.File when we have one so exec.Cmd can pass the
	// descriptor directly to the child instead of shuttling bytes through
	// a goroutine-backed io.Pipe.
	if f := streams.Stdin.File(); f != nil {
		cmd.Stdin = f
	} else {
		cmd.Stdin = streams.Stdin
	}
	if f := streams.Stdout.File(); f != nil {
		cmd.Stdout = f
	} else {
		cmd.Stdout = streams.Stdout
	}
	if f := streams.Stderr.File(); f != nil {
		cmd.Stderr = f
	} else {
		cmd.Stderr = streams.Stderr
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	// The child inherited its own copy of each descriptor at fork time;
	// holding ours open too would stop a downstream reader from ever
	// seeing EOF once this stage exits.
	streams.Stdin.Close()
	streams.Stdout.Close()
	streams.Stderr.Close()

	return &commandWaiter{cmd: cmd}, nil
}

type commandWaiter struct {
	cmd *exec.Cmd
}

func (w *commandWaiter) Wait() (exit.Exit, error) {
	err := w.cmd.Wait()
	if err == nil {
		return exit.Success, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exit.FromProcessState(exitErr.ProcessState), nil
	}
	return exit.Exit{}, err
}
