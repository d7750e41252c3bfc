// Package repl implements the shell's read-eval-print loop: rendering a
// prompt, reading one line, handing it to the parser and engine, and
// remembering the last exit status for the next prompt.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"

	"github.com/wgoodall01/monch/engine"
	"github.com/wgoodall01/monch/exit"
	"github.com/wgoodall01/monch/langparse"
)

var (
	cwdStyle    = lipgloss.NewStyle().Faint(true)
	badgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	sigilStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
)

// Repl drives the loop for a single interpreter.
type Repl struct {
	interp   *engine.Interpreter
	lastExit exit.Exit
}

// New returns a Repl that will evaluate commands against interp.
func New(interp *engine.Interpreter) *Repl {
	return &Repl{interp: interp, lastExit: exit.Success}
}

// Run reads and evaluates lines until end-of-input. It returns the last
// exit status seen, for use as the process's own exit code.
func (r *Repl) Run(ctx context.Context) (exit.Exit, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.prompt(),
		HistoryFile:     historyFilePath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    readline.NewPrefixCompleter(),
	})
	if err != nil {
		return exit.Exit{}, fmt.Errorf("starting line editor: %w", err)
	}
	defer rl.Close()

	for {
		rl.SetPrompt(r.prompt())
		line, err := rl.Readline()

		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return r.lastExit, nil
		case err != nil:
			return r.lastExit, fmt.Errorf("reading line: %w", err)
		}

		if strings.TrimSpace(line) == "" {
			r.lastExit = exit.Success
			continue
		}

		r.evalLine(ctx, line)

		if err := os.Chdir(r.interp.WorkingDir()); err != nil {
			fmt.Fprintf(os.Stderr, "monch: could not update working directory: %s\n", err)
		}
	}
}

func (r *Repl) evalLine(ctx context.Context, line string) {
	cmd, err := langparse.Parse(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "monch: %s\n", err)
		r.lastExit = exit.BadSyntax
		return
	}

	result, err := r.interp.Run(ctx, cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "monch: %s\n", err)
		r.lastExit = engine.AsExit(err)
		return
	}
	r.lastExit = result
}

func (r *Repl) prompt() string {
	cwd := cwdStyle.Render(r.interp.WorkingDir())

	badge := ""
	if !r.lastExit.Success() {
		badge = badgeStyle.Render(fmt.Sprintf(" [%s]", r.lastExit))
	}

	return cwd + badge + sigilStyle.Render(" $ ")
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.monch_history"
}
