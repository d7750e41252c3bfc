package engine

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/wgoodall01/monch/ast"
	"github.com/wgoodall01/monch/exit"
	"github.com/wgoodall01/monch/pipetype"
	"github.com/wgoodall01/monch/resolve"
	"github.com/wgoodall01/monch/stream"
)

// preparedStage is one pipeline stage after name/argument evaluation and
// executable resolution (Phase 1), and possibly after the auto-`to tty`
// insertion (Phase 2).
type preparedStage struct {
	name string
	exe  resolve.Executable
	args []string
}

// Run evaluates one parsed command: resolving every stage, type-checking
// the pipeline, building the plumbing, launching every stage left to
// right, and aggregating the exit statuses. An error from resolution,
// type-checking or plumbing means no stage was launched; if a stage fails
// to start, the stages already started are waited for before the error is
// returned. Map an error to an exit code with AsExit.
func (in *Interpreter) Run(ctx context.Context, cmd ast.Command) (exit.Exit, error) {
	stages, err := in.prepare(cmd)
	if err != nil {
		return exit.Exit{}, err
	}
	if len(stages) == 0 {
		return exit.Success, nil
	}

	stages = in.insertAutoTo(stages, cmd)

	if err := checkTypes(stages); err != nil {
		return exit.Exit{}, err
	}

	streamsPerStage, err := in.plumb(cmd, stages)
	if err != nil {
		return exit.Exit{}, err
	}

	waiters, err := in.launch(ctx, stages, streamsPerStage)
	if err != nil {
		return exit.Exit{}, err
	}

	return collect(waiters), nil
}

// prepare is Phase 1: evaluate each invocation's terms and resolve its
// command name to an Executable.
func (in *Interpreter) prepare(cmd ast.Command) ([]preparedStage, error) {
	stages := make([]preparedStage, 0, len(cmd.Pipeline))
	for _, inv := range cmd.Pipeline {
		name := inv.Executable.Value
		args := make([]string, len(inv.Arguments))
		for i, t := range inv.Arguments {
			args[i] = t.Value
		}

		exe, err := resolve.Resolve(name, in.monchPath, in.path, in.builtins)
		if err != nil {
			return nil, &ResolveError{Cmd: name, Err: err}
		}

		stages = append(stages, preparedStage{name: name, exe: exe, args: args})
	}
	return stages, nil
}

// insertAutoTo is Phase 2: if the pipeline's last stage declares Cbor
// output and stdout isn't explicitly redirected, append a `to tty` stage
// so structured data never reaches an interactive terminal as raw bytes.
func (in *Interpreter) insertAutoTo(stages []preparedStage, cmd ast.Command) []preparedStage {
	if cmd.StdoutRedirect != nil {
		return stages
	}
	last := stages[len(stages)-1]
	if last.exe.OutputType(last.args) != pipetype.Cbor {
		return stages
	}
	toExe, ok := in.builtins["to"]
	if !ok {
		return stages
	}
	return append(stages, preparedStage{name: "to", exe: toExe, args: []string{"tty"}})
}

// checkTypes is Phase 3: every adjacent pair of stages must satisfy
// pipetype.CanConnect. No process is launched until this passes.
func checkTypes(stages []preparedStage) error {
	for i := 0; i < len(stages)-1; i++ {
		l, r := stages[i], stages[i+1]
		lt := l.exe.OutputType(l.args)
		rt := r.exe.InputType(r.args)
		if !pipetype.CanConnect(lt, rt) {
			return &TypeMismatchError{LeftCmd: l.name, LeftType: lt, RightCmd: r.name, RightType: rt}
		}
	}
	return nil
}

// plumb is Phase 4: build one Streams triple per stage. The leftmost
// stdin and rightmost stdout come from redirections or a duplicate of
// the interpreter's own streams; every interior connection is a fresh
// anonymous pipe; every stderr is a duplicate of the interpreter's own.
func (in *Interpreter) plumb(cmd ast.Command, stages []preparedStage) ([]stream.Streams, error) {
	n := len(stages)
	result := make([]stream.Streams, n)
	for i := range result {
		result[i] = stream.Null()
	}

	var opened []io.Closer
	abort := func(err error) ([]stream.Streams, error) {
		for i := len(opened) - 1; i >= 0; i-- {
			_ = opened[i].Close()
		}
		return nil, err
	}

	if cmd.StdinRedirect != nil {
		path := filepath.Join(in.workdir, cmd.StdinRedirect.File.Value)
		f, err := os.Open(path)
		if err != nil {
			return abort(err)
		}
		result[0].Stdin = stream.ReadFile(f)
	} else {
		s, err := in.streams.Stdin.TryClone()
		if err != nil {
			return abort(err)
		}
		result[0].Stdin = s
	}
	opened = append(opened, result[0].Stdin)

	for i := 0; i < n-1; i++ {
		r, w, err := stream.Pipe()
		if err != nil {
			return abort(err)
		}
		result[i].Stdout = w
		result[i+1].Stdin = r
		opened = append(opened, w, r)
	}

	last := n - 1
	if cmd.StdoutRedirect != nil {
		path := filepath.Join(in.workdir, cmd.StdoutRedirect.File.Value)
		flags := os.O_WRONLY | os.O_CREATE
		if cmd.StdoutRedirect.Kind == ast.WriteAppend {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		f, err := os.OpenFile(path, flags, 0o644)
		if err != nil {
			return abort(err)
		}
		result[last].Stdout = stream.WriteFile(f)
	} else {
		s, err := in.streams.Stdout.TryClone()
		if err != nil {
			return abort(err)
		}
		result[last].Stdout = s
	}
	opened = append(opened, result[last].Stdout)

	for i := range result {
		s, err := in.streams.Stderr.TryClone()
		if err != nil {
			return abort(err)
		}
		result[i].Stderr = s
		opened = append(opened, s)
	}

	return result, nil
}

// launch is Phase 5: start every stage in order. Each Executable is
// responsible for closing the Streams handed to it once it no longer
// needs them (directly, for a builtin worker; right after a successful
// os/exec Start, for an external command) — see resolve.Executable. If
// Execute fails, launch closes that stage's streams and every later one.
func (in *Interpreter) launch(ctx context.Context, stages []preparedStage, streams []stream.Streams) ([]resolve.Waiter, error) {
	ctx = resolve.WithWorkdirSetter(ctx, in)
	waiters := make([]resolve.Waiter, len(stages))

	for i, s := range stages {
		w, err := s.exe.Execute(ctx, in.workdir, streams[i], s.args)
		if err != nil {
			for j := i; j < len(streams); j++ {
				_ = streams[j].Stdin.Close()
				_ = streams[j].Stdout.Close()
				_ = streams[j].Stderr.Close()
			}
			for j := 0; j < i; j++ {
				_, _ = waiters[j].Wait()
			}
			return nil, &ExecutionError{Cmd: s.name, Err: err}
		}
		waiters[i] = w
	}

	return waiters, nil
}

// collect is Phase 6: wait on every stage in pipeline order and reduce
// to the first non-success result, mirroring a short-circuit `&&` chain.
func collect(waiters []resolve.Waiter) exit.Exit {
	result := exit.Success
	for _, w := range waiters {
		res, err := w.Wait()
		if err != nil {
			res = exit.Failure
		}
		result = exit.ReduceWorst(result, res)
	}
	return result
}
