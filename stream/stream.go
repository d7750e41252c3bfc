// Package stream provides the readable/writable stream abstraction the
// pipeline engine plumbs between stages: an OS pipe, an open file, or a
// stream that discards (or never produces) data.
package stream

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// ReadStream is a readable endpoint: a pipe, a file, or a sink that never
// produces data.
type ReadStream struct {
	kind readKind
	file *os.File // used for readPipe and readFile
}

type readKind int

const (
	readNull readKind = iota
	readPipe
	readFile
)

// WriteStream is a writable endpoint: a pipe, a file, or a sink that
// discards everything written to it.
type WriteStream struct {
	kind writeKind
	file *os.File
}

type writeKind int

const (
	writeNull writeKind = iota
	writePipe
	writeFile
)

// NullRead returns a ReadStream that always reports clean EOF.
func NullRead() ReadStream { return ReadStream{kind: readNull} }

// NullWrite returns a WriteStream that discards everything written.
func NullWrite() WriteStream { return WriteStream{kind: writeNull} }

// ReadFile wraps an already-open file as a ReadStream.
func ReadFile(f *os.File) ReadStream { return ReadStream{kind: readFile, file: f} }

// WriteFile wraps an already-open file as a WriteStream.
func WriteFile(f *os.File) WriteStream { return WriteStream{kind: writeFile, file: f} }

// Stdin returns a ReadStream over a duplicate of this process's stdin, so
// that closing it never closes the process's own stdin descriptor.
func Stdin() (ReadStream, error) {
	f, err := dup(os.Stdin)
	if err != nil {
		return ReadStream{}, err
	}
	return ReadStream{kind: readPipe, file: f}, nil
}

// Stdout returns a WriteStream over a duplicate of this process's stdout.
func Stdout() (WriteStream, error) {
	f, err := dup(os.Stdout)
	if err != nil {
		return WriteStream{}, err
	}
	return WriteStream{kind: writePipe, file: f}, nil
}

// Stderr returns a WriteStream over a duplicate of this process's stderr.
func Stderr() (WriteStream, error) {
	f, err := dup(os.Stderr)
	if err != nil {
		return WriteStream{}, err
	}
	return WriteStream{kind: writePipe, file: f}, nil
}

func dup(f *os.File) (*os.File, error) {
	fd, err := unix.Dup(int(f.Fd()))
	if err != nil {
		return nil, err
	}
	return os.NewFile(uintptr(fd), f.Name()), nil
}

// Pipe creates an OS pipe, returning its read and write halves as streams.
func Pipe() (ReadStream, WriteStream, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return ReadStream{}, WriteStream{}, err
	}
	return ReadStream{kind: readPipe, file: r}, WriteStream{kind: writePipe, file: w}, nil
}

// Read implements io.Reader. A Null stream always reports clean EOF.
func (r ReadStream) Read(p []byte) (int, error) {
	if r.kind == readNull {
		return 0, io.EOF
	}
	return r.file.Read(p)
}

// Close releases the underlying descriptor, if any.
func (r ReadStream) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// TryClone duplicates the underlying descriptor so the clone can be
// closed independently of the original.
func (r ReadStream) TryClone() (ReadStream, error) {
	if r.file == nil {
		return r, nil
	}
	f, err := dup(r.file)
	if err != nil {
		return ReadStream{}, err
	}
	return ReadStream{kind: r.kind, file: f}, nil
}

// File returns the underlying *os.File, or nil for a Null stream. Used by
// the engine when it wants to hand a descriptor directly to exec.Cmd.
func (r ReadStream) File() *os.File { return r.file }

// Write implements io.Writer. A Null stream discards the data and reports
// success, matching the original's "write stream is closed" semantics.
func (w WriteStream) Write(p []byte) (int, error) {
	if w.kind == writeNull {
		return len(p), nil
	}
	return w.file.Write(p)
}

// Close releases the underlying descriptor, if any.
func (w WriteStream) Close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}

// TryClone duplicates the underlying descriptor so the clone can be
// closed independently of the original.
func (w WriteStream) TryClone() (WriteStream, error) {
	if w.file == nil {
		return w, nil
	}
	f, err := dup(w.file)
	if err != nil {
		return WriteStream{}, err
	}
	return WriteStream{kind: w.kind, file: f}, nil
}

// File returns the underlying *os.File, or nil for a Null stream.
func (w WriteStream) File() *os.File { return w.file }

// Streams groups the three standard streams a stage is launched with.
type Streams struct {
	Stdin  ReadStream
	Stdout WriteStream
	Stderr WriteStream
}

// Null returns Streams that ignore all reads and writes.
func Null() Streams {
	return Streams{Stdin: NullRead(), Stdout: NullWrite(), Stderr: NullWrite()}
}

// Stdio returns Streams connected to this process's own stdin/stdout/stderr.
func Stdio() (Streams, error) {
	in, err := Stdin()
	if err != nil {
		return Streams{}, err
	}
	out, err := Stdout()
	if err != nil {
		return Streams{}, err
	}
	errS, err := Stderr()
	if err != nil {
		return Streams{}, err
	}
	return Streams{Stdin: in, Stdout: out, Stderr: errS}, nil
}
