package stream

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullReadIsCleanEOF(t *testing.T) {
	r := NullRead()
	buf := make([]byte, 16)
	n, err := r.Read(buf)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestNullWriteDiscards(t *testing.T) {
	w := NullWrite()
	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestPipeRoundTrip(t *testing.T) {
	r, w, err := Pipe()
	require.NoError(t, err)

	go func() {
		_, _ = w.Write([]byte("hi"))
		_ = w.Close()
	}()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(got))
}

func TestTryCloneIsIndependentDescriptor(t *testing.T) {
	r, w, err := Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	clone, err := w.TryClone()
	require.NoError(t, err)

	// Closing the clone must not affect the original descriptor: a write
	// through w should still succeed afterward.
	require.NoError(t, clone.Close())

	done := make(chan struct{})
	go func() {
		_, werr := w.Write([]byte("still alive"))
		assert.NoError(t, werr)
		assert.NoError(t, w.Close())
		close(done)
	}()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "still alive", string(got))
	<-done
}
