package engine

import (
	"fmt"

	"github.com/wgoodall01/monch/exit"
	"github.com/wgoodall01/monch/pipetype"
)

// TypeMismatchError reports that two adjacent stages cannot be
// connected. It is always returned before any stage is launched.
type TypeMismatchError struct {
	LeftCmd   string
	LeftType  pipetype.Type
	RightCmd  string
	RightType pipetype.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: cannot connect %s (produced by %s) to %s (expected by %s)",
		e.LeftType, e.LeftCmd, e.RightType, e.RightCmd)
}

// ResolveError reports that a command name resolved to nothing runnable.
type ResolveError struct {
	Cmd string
	Err error
}

func (e *ResolveError) Error() string { return fmt.Sprintf("%s: %s", e.Cmd, e.Err) }
func (e *ResolveError) Unwrap() error { return e.Err }

// ExecutionError reports that a resolved executable failed to start.
type ExecutionError struct {
	Cmd string
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution of %q failed: %s", e.Cmd, e.Err)
}
func (e *ExecutionError) Unwrap() error { return e.Err }

// WorkdirError reports an invalid working directory, from New or from
// SetCurrentDir (which the `cd` builtin calls).
type WorkdirError struct {
	Dir string
	Err error
}

func (e *WorkdirError) Error() string {
	return fmt.Sprintf("invalid working directory %q: %s", e.Dir, e.Err)
}
func (e *WorkdirError) Unwrap() error { return e.Err }

// AsExit maps an error from this package, or a plain I/O error, to the
// canonical exit code the REPL reports for it.
func AsExit(err error) exit.Exit {
	switch err.(type) {
	case *TypeMismatchError:
		return exit.BadSyntax
	case *ExecutionError:
		return exit.CouldNotExecute
	case *ResolveError:
		return exit.CommandNotFound
	case *WorkdirError:
		return exit.Failure
	default:
		return exit.Failure
	}
}
