package resolve

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wgoodall01/monch/exit"
	"github.com/wgoodall01/monch/pipetype"
	"github.com/wgoodall01/monch/stream"
)

type fakeExecutable struct{}

func (fakeExecutable) Execute(context.Context, string, stream.Streams, []string) (Waiter, error) {
	return Immediate(exit.Success), nil
}
func (fakeExecutable) InputType([]string) pipetype.Type  { return pipetype.Nothing }
func (fakeExecutable) OutputType([]string) pipetype.Type { return pipetype.Nothing }

func writeExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	return p
}

func TestResolveBuiltinTakesPriority(t *testing.T) {
	dir := t.TempDir()
	writeExecutable(t, dir, "cd")

	exe, err := Resolve("cd", nil, dir, map[string]Executable{"cd": fakeExecutable{}})
	require.NoError(t, err)
	assert.Equal(t, fakeExecutable{}, exe)
}

func TestResolveMonchPath(t *testing.T) {
	dir := t.TempDir()
	writeExecutable(t, dir, "get")

	exe, err := Resolve("get", []string{dir}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, pipetype.Cbor, exe.InputType(nil))
	assert.Equal(t, pipetype.Cbor, exe.OutputType(nil))
}

func TestResolveSystemPath(t *testing.T) {
	dir := t.TempDir()
	writeExecutable(t, dir, "mytool")

	exe, err := Resolve("mytool", nil, dir, nil)
	require.NoError(t, err)
	assert.Equal(t, pipetype.Any, exe.InputType(nil))
	assert.Equal(t, pipetype.Unknown, exe.OutputType(nil))
}

func TestResolveNotFound(t *testing.T) {
	_, err := Resolve("definitely-does-not-exist", nil, t.TempDir(), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}
