package builtin

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/wgoodall01/monch/exit"
	"github.com/wgoodall01/monch/pipetype"
	"github.com/wgoodall01/monch/record"
	"github.com/wgoodall01/monch/resolve"
	"github.com/wgoodall01/monch/stream"
)

// To converts the structured record stream on stdin into a rendering
// bound for the named target pipe type.
type To struct{}

var _ resolve.Executable = To{}

func (To) InputType([]string) pipetype.Type { return pipetype.Cbor }

func (To) OutputType(args []string) pipetype.Type {
	t, ok := parseToTarget(args)
	if !ok {
		return pipetype.Unknown
	}
	return t
}

func parseToTarget(args []string) (pipetype.Type, bool) {
	if len(args) != 1 {
		return 0, false
	}
	t, ok := pipetype.Parse(args[0])
	if !ok {
		return 0, false
	}
	switch t {
	case pipetype.Cbor, pipetype.Text, pipetype.Tty:
		return t, true
	default:
		return 0, false
	}
}

func (To) Execute(ctx context.Context, workdir string, streams stream.Streams, args []string) (resolve.Waiter, error) {
	target, ok := parseToTarget(args)
	if !ok {
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		fmt.Fprintf(streams.Stderr, "monch: to: %s: not a valid target type\n", arg)
		streams.Stdin.Close()
		streams.Stdout.Close()
		streams.Stderr.Close()
		return resolve.Immediate(exit.Failure), nil
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer streams.Stdin.Close()
		defer streams.Stdout.Close()
		defer streams.Stderr.Close()

		if target == pipetype.Cbor {
			_, err := io.Copy(streams.Stdout, streams.Stdin)
			return err
		}

		out := bufio.NewWriter(streams.Stdout)
		for v, err := range record.NewReader(streams.Stdin).All() {
			if err != nil {
				return err
			}
			renderValue(out, v, target == pipetype.Tty)
			out.WriteByte('\n')
		}
		if err := out.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(streams.Stderr)
		return nil
	})

	return &workerWaiter{g: g}, nil
}

// workerWaiter adapts an errgroup running a single in-process builtin
// worker to the Waiter interface the engine expects from every stage.
type workerWaiter struct {
	g *errgroup.Group
}

func (w *workerWaiter) Wait() (exit.Exit, error) {
	if err := w.g.Wait(); err != nil {
		return exit.Exit{}, err
	}
	return exit.Success, nil
}
