// Package engine implements the pipeline engine: the interpreter state
// and the six phases that turn a parsed command into running stages and
// an aggregate exit status.
package engine

import (
	"os"
	"path/filepath"

	"github.com/wgoodall01/monch/resolve"
	"github.com/wgoodall01/monch/stream"
)

// Interpreter holds the shell's only mutable cross-command state: its
// current working directory, plus the streams and search paths every
// pipeline is built against.
type Interpreter struct {
	workdir   string
	streams   stream.Streams
	monchPath []string
	path      string
	builtins  map[string]resolve.Executable
}

var _ resolve.WorkdirSetter = (*Interpreter)(nil)

// New builds an Interpreter rooted at workdir, which must already exist.
func New(workdir string, streams stream.Streams, monchPath []string, path string, builtins map[string]resolve.Executable) (*Interpreter, error) {
	canon, err := canonicalize(workdir)
	if err != nil {
		return nil, &WorkdirError{Dir: workdir, Err: err}
	}
	return &Interpreter{
		workdir:   canon,
		streams:   streams,
		monchPath: monchPath,
		path:      path,
		builtins:  builtins,
	}, nil
}

// WorkingDir returns the interpreter's current directory.
func (in *Interpreter) WorkingDir() string { return in.workdir }

// SetCurrentDir implements resolve.WorkdirSetter, committing a new
// working directory on behalf of the `cd` builtin. dir must already be
// an existing directory; it is canonicalized before being stored, per
// the invariant that the working directory is always a real, absolute
// path.
func (in *Interpreter) SetCurrentDir(dir string) error {
	canon, err := canonicalize(dir)
	if err != nil {
		return &WorkdirError{Dir: dir, Err: err}
	}
	in.workdir = canon
	return nil
}

func canonicalize(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(real)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", os.ErrInvalid
	}
	return real, nil
}
