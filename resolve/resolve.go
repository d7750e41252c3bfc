// Package resolve implements the executable resolution order: the
// built-in registry, then $MONCH_PATH (structured-data utilities that
// speak Cbor in and out), then the system $PATH (external commands of
// unknown type).
package resolve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wgoodall01/monch/exit"
	"github.com/wgoodall01/monch/pipetype"
	"github.com/wgoodall01/monch/stream"
)

// Waiter is an in-flight process or goroutine: an external command, a
// builtin's worker goroutine, or (via Immediate) the result of a builtin
// that already finished synchronously.
type Waiter interface {
	// Wait blocks until the stage has finished, returning its exit
	// result or an internal error.
	Wait() (exit.Exit, error)
}

// Executable is a program or builtin the engine can launch.
type Executable interface {
	// Execute starts the executable with the given working directory
	// and streams, returning a Waiter for its completion. On success it
	// owns streams and closes each of them once it no longer needs it; on
	// error the streams are left open for the caller to close.
	Execute(ctx context.Context, workdir string, streams stream.Streams, args []string) (Waiter, error)

	// InputType is the pipe type this executable expects on stdin.
	InputType(args []string) pipetype.Type

	// OutputType is the pipe type this executable produces on stdout.
	OutputType(args []string) pipetype.Type
}

// ErrNotFound is wrapped into the error returned when no builtin,
// $MONCH_PATH entry, or $PATH entry matches a command name.
var ErrNotFound = errors.New("command not found")

// immediateWaiter is a Waiter that has already finished.
type immediateWaiter struct{ result exit.Exit }

func (w immediateWaiter) Wait() (exit.Exit, error) { return w.result, nil }

// Immediate wraps an already-known exit result as a Waiter, for builtins
// that complete synchronously within Execute.
func Immediate(result exit.Exit) Waiter { return immediateWaiter{result: result} }

// WorkdirSetter lets a builtin (namely `cd`) change the shell's current
// working directory. It is threaded through Execute's context rather than
// a dedicated Executable method, since only one builtin needs it and
// every other Executable would otherwise have to ignore it.
type WorkdirSetter interface {
	SetCurrentDir(dir string) error
}

type workdirSetterKey struct{}

// WithWorkdirSetter attaches a WorkdirSetter to ctx for a builtin to use.
func WithWorkdirSetter(ctx context.Context, s WorkdirSetter) context.Context {
	return context.WithValue(ctx, workdirSetterKey{}, s)
}

// WorkdirSetterFrom retrieves the WorkdirSetter attached by
// WithWorkdirSetter, if any.
func WorkdirSetterFrom(ctx context.Context) (WorkdirSetter, bool) {
	s, ok := ctx.Value(workdirSetterKey{}).(WorkdirSetter)
	return s, ok
}

// Resolve looks up name in order: builtins, then each directory of
// monchPath (in order), then the system path. builtins may be nil.
func Resolve(name string, monchPath []string, path string, builtins map[string]Executable) (Executable, error) {
	if b, ok := builtins[name]; ok {
		return b, nil
	}

	for _, dir := range monchPath {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err == nil {
			if !info.IsDir() && isExecutable(info) {
				return NewShellPathExecutable(candidate), nil
			}
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	bin, err := lookPathIn(name, path)
	if err != nil {
		return nil, err
	}
	return NewExternalExecutable(bin), nil
}

// lookPathIn searches path (a PATH-style list-separator-joined string)
// for an executable named name, independent of the resolving process's
// own $PATH environment variable.
func lookPathIn(name string, path string) (string, error) {
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err == nil {
			if !info.IsDir() && isExecutable(info) {
				return candidate, nil
			}
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", name, err)
		}
	}
	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}
