package repl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wgoodall01/monch/engine"
	"github.com/wgoodall01/monch/exit"
	"github.com/wgoodall01/monch/stream"
)

func newTestRepl(t *testing.T) *Repl {
	t.Helper()
	interp, err := engine.New(t.TempDir(), stream.Null(), nil, "", nil)
	require.NoError(t, err)
	return New(interp)
}

func TestEvalLineParseErrorIsBadSyntax(t *testing.T) {
	r := newTestRepl(t)
	r.evalLine(context.Background(), "| oops")
	assert.Equal(t, exit.BadSyntax, r.lastExit)
}

func TestEvalLineCommandNotFoundMapsToExit(t *testing.T) {
	r := newTestRepl(t)
	r.evalLine(context.Background(), "this-command-does-not-exist")
	assert.Equal(t, exit.CommandNotFound, r.lastExit)
}

func TestPromptShowsBadgeOnlyOnFailure(t *testing.T) {
	r := newTestRepl(t)
	assert.NotContains(t, r.prompt(), "[")

	r.lastExit = exit.Failure
	assert.Contains(t, r.prompt(), "[1]")
}
