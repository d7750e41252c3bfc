// Package monchio provides the stdin/stdout conventions shared by the
// example $MONCH_PATH utilities: decode a record stream from stdin,
// write a record to stdout, and treat a broken pipe on write as a
// clean exit rather than a failure.
package monchio

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"syscall"

	"github.com/wgoodall01/monch/record"
)

// Put writes v to stdout. A broken-pipe write (the downstream reader
// exited early) is not an error: the process exits 0 immediately, since
// there is nothing more useful to do.
func Put(v record.Value) error {
	if err := record.Write(os.Stdout, v); err != nil {
		if errors.Is(err, syscall.EPIPE) {
			os.Exit(0)
		}
		return err
	}
	return nil
}

// Logf writes a diagnostic line to stderr, prefixed the way every
// utility identifies itself.
func Logf(prog, format string, args ...any) {
	fmt.Fprintf(os.Stderr, prog+": "+format+"\n", args...)
}

// InputStream decodes the concatenated record stream on stdin.
func InputStream() iter.Seq2[record.Value, error] {
	return record.NewReader(os.Stdin).All()
}

// Fail prints a diagnostic to stderr and exits 1, mirroring the
// anyhow-wrapped `main() -> Result<...>` convention of the original
// utilities. An io.ErrClosedPipe error instead exits 0 without a message.
func Fail(prog string, err error) {
	if errors.Is(err, io.ErrClosedPipe) {
		os.Exit(0)
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", prog, err)
	os.Exit(1)
}
