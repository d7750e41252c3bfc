package builtin

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wgoodall01/monch/exit"
	"github.com/wgoodall01/monch/resolve"
	"github.com/wgoodall01/monch/stream"
)

type fakeWorkdirSetter struct {
	dir string
	err error
}

func (s *fakeWorkdirSetter) SetCurrentDir(dir string) error {
	if s.err != nil {
		return s.err
	}
	s.dir = dir
	return nil
}

func TestCdChangesDirectory(t *testing.T) {
	parent := t.TempDir()
	child := filepath.Join(parent, "child")
	require.NoError(t, os.Mkdir(child, 0o755))

	setter := &fakeWorkdirSetter{}
	ctx := resolve.WithWorkdirSetter(context.Background(), setter)

	waiter, err := Cd{}.Execute(ctx, parent, stream.Null(), []string{"child"})
	require.NoError(t, err)

	result, err := waiter.Wait()
	require.NoError(t, err)
	assert.Equal(t, exit.Success, result)
	assert.Equal(t, child, setter.dir)
}

func TestCdRejectsNonDirectory(t *testing.T) {
	parent := t.TempDir()
	setter := &fakeWorkdirSetter{}
	ctx := resolve.WithWorkdirSetter(context.Background(), setter)

	waiter, err := Cd{}.Execute(ctx, parent, stream.Null(), []string{"does-not-exist"})
	require.NoError(t, err)

	result, err := waiter.Wait()
	require.NoError(t, err)
	assert.Equal(t, exit.Failure, result)
	assert.Empty(t, setter.dir)
}

func TestCdRejectsWrongArgCount(t *testing.T) {
	ctx := resolve.WithWorkdirSetter(context.Background(), &fakeWorkdirSetter{})
	waiter, err := Cd{}.Execute(ctx, t.TempDir(), stream.Null(), []string{"a", "b"})
	require.NoError(t, err)

	result, err := waiter.Wait()
	require.NoError(t, err)
	assert.Equal(t, exit.Failure, result)
}
