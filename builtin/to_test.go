package builtin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wgoodall01/monch/exit"
	"github.com/wgoodall01/monch/pipetype"
	"github.com/wgoodall01/monch/record"
	"github.com/wgoodall01/monch/stream"
)

func TestToOutputTypeReflectsArgument(t *testing.T) {
	assert.Equal(t, pipetype.Tty, To{}.OutputType([]string{"tty"}))
	assert.Equal(t, pipetype.Text, To{}.OutputType([]string{"text"}))
	assert.Equal(t, pipetype.Cbor, To{}.OutputType([]string{"cbor"}))
	assert.Equal(t, pipetype.Unknown, To{}.OutputType([]string{"nonsense"}))
	assert.Equal(t, pipetype.Unknown, To{}.OutputType(nil))
}

func TestToRejectsInvalidTarget(t *testing.T) {
	waiter, err := To{}.Execute(context.Background(), "", stream.Null(), []string{"xml"})
	require.NoError(t, err)
	result, err := waiter.Wait()
	require.NoError(t, err)
	assert.Equal(t, exit.Failure, result)
}

func TestToCborIsByteIdentity(t *testing.T) {
	in, writeIn, err := stream.Pipe()
	require.NoError(t, err)
	readOut, out, err := stream.Pipe()
	require.NoError(t, err)

	waiter, err := To{}.Execute(context.Background(), "", stream.Streams{
		Stdin:  in,
		Stdout: out,
		Stderr: stream.NullWrite(),
	}, []string{"cbor"})
	require.NoError(t, err)

	original := record.Array(record.Int(1), record.Text("hi"))
	b, err := original.Marshal()
	require.NoError(t, err)

	go func() {
		_, _ = writeIn.Write(b)
		_ = writeIn.Close()
	}()

	result, err := waiter.Wait()
	require.NoError(t, err)
	assert.Equal(t, exit.Success, result)

	decoded, err := record.ReadOne(readOut)
	require.NoError(t, err)
	assert.True(t, record.Equal(original, decoded))
}

func TestToTextRendersWithoutColor(t *testing.T) {
	in, writeIn, err := stream.Pipe()
	require.NoError(t, err)
	readOut, out, err := stream.Pipe()
	require.NoError(t, err)

	waiter, err := To{}.Execute(context.Background(), "", stream.Streams{
		Stdin:  in,
		Stdout: out,
		Stderr: stream.NullWrite(),
	}, []string{"text"})
	require.NoError(t, err)

	b, err := record.Int(42).Marshal()
	require.NoError(t, err)

	go func() {
		_, _ = writeIn.Write(b)
		_ = writeIn.Close()
	}()

	buf := make([]byte, 64)
	n, _ := readOut.Read(buf)
	_, _ = waiter.Wait()

	assert.Equal(t, "42\n", string(buf[:n]))
}
