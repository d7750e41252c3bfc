package record

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/fxamacker/cbor/v2"
)

// ErrIndefiniteLength is returned when a CBOR item uses indefinite-length
// encoding, which this codec does not accept (records are always written
// with definite lengths).
var ErrIndefiniteLength = errors.New("record: indefinite-length CBOR is not supported")

// Marshal renders v as a single definite-length CBOR data item. Scalar
// leaves are encoded by the cbor library directly; arrays, maps, tags and
// arbitrary-precision integers are built by hand, since none of those has
// a native Go representation that the library could round-trip without
// losing entry order or int64/uint64-range bignum transparency.
func (v Value) Marshal() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return cbor.Marshal(nil)
	case KindBool:
		return cbor.Marshal(v.BoolVal)
	case KindInt:
		return encodeInt(v.IntVal), nil
	case KindFloat:
		return cbor.Marshal(v.FloatVal)
	case KindBytes:
		return cbor.Marshal(v.BytesVal)
	case KindText:
		return cbor.Marshal(v.TextVal)
	case KindArray:
		buf := encodeHead(majorArray, uint64(len(v.ArrayVal)))
		for _, item := range v.ArrayVal {
			b, err := item.Marshal()
			if err != nil {
				return nil, err
			}
			buf = append(buf, b...)
		}
		return buf, nil
	case KindMap:
		buf := encodeHead(majorMap, uint64(len(v.MapVal)))
		for _, entry := range v.MapVal {
			kb, err := entry.Key.Marshal()
			if err != nil {
				return nil, err
			}
			vb, err := entry.Value.Marshal()
			if err != nil {
				return nil, err
			}
			buf = append(buf, kb...)
			buf = append(buf, vb...)
		}
		return buf, nil
	case KindTag:
		buf := encodeHead(majorTag, v.TagVal.Number)
		b, err := v.TagVal.Inner.Marshal()
		if err != nil {
			return nil, err
		}
		return append(buf, b...), nil
	default:
		return nil, fmt.Errorf("record: cannot marshal %s", v.Kind)
	}
}

// Unmarshal decodes a single CBOR data item from data, requiring that the
// item consume the entire slice.
func Unmarshal(data []byte) (Value, error) {
	v, rest, err := decodeValue(data)
	if err != nil {
		return Value{}, err
	}
	if len(rest) != 0 {
		return Value{}, fmt.Errorf("record: %d trailing bytes after decoded item", len(rest))
	}
	return v, nil
}

// Write encodes v and writes it to w as one CBOR data item, with no framing
// beyond CBOR's own self-delimiting structure.
func Write(w io.Writer, v Value) error {
	b, err := v.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Reader reads a sequence of concatenated, self-delimiting CBOR records
// from an underlying stream, mirroring the peek-before-decode discipline of
// the original InputParser: a read that finds no bytes at all before the
// next record is a clean end of stream, not an error.
//
// Records are not length-prefixed, so a Reader reads the underlying stream
// in 64-byte chunks into a lookahead buffer until the buffer holds one
// complete item; bytes read past that item stay buffered for the next one.
type Reader struct {
	r   io.Reader
	buf []byte // unconsumed bytes read ahead of the current record
	eof bool   // underlying reader has returned io.EOF at least once
}

// NewReader wraps r for record-at-a-time decoding.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, buf: make([]byte, 0, 64)}
}

// fill reads more bytes from the underlying reader into buf, returning the
// number of new bytes read. It returns io.EOF once the underlying reader is
// exhausted and no further bytes are available.
func (r *Reader) fill() (int, error) {
	if r.eof {
		return 0, io.EOF
	}
	chunk := make([]byte, 64)
	n, err := r.r.Read(chunk)
	if n > 0 {
		r.buf = append(r.buf, chunk[:n]...)
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.eof = true
		}
		if n == 0 {
			return 0, err
		}
	}
	return n, nil
}

// Next reads and decodes the next record. It returns io.EOF only when the
// stream ends exactly on a record boundary; any other truncation is
// reported as io.ErrUnexpectedEOF.
func (r *Reader) Next() (Value, error) {
	if len(r.buf) == 0 {
		if _, err := r.fill(); err != nil {
			if errors.Is(err, io.EOF) {
				return Value{}, io.EOF
			}
			return Value{}, err
		}
	}

	for {
		v, rest, decErr := decodeValue(r.buf)
		if decErr == nil {
			r.buf = rest
			return v, nil
		}
		if !errors.Is(decErr, io.ErrUnexpectedEOF) {
			return Value{}, decErr
		}
		if _, err := r.fill(); err != nil {
			// Bytes were present (we got this far) but the stream ended
			// before the item was complete.
			return Value{}, io.ErrUnexpectedEOF
		}
	}
}

// ReadOne reads a single record from r and reports io.EOF if the stream is
// empty.
func ReadOne(r io.Reader) (Value, error) {
	return NewReader(r).Next()
}

// All returns an iterator over every record in r, stopping (without
// yielding a final error) at a clean end of stream. A malformed trailing
// record yields one error and then the sequence ends.
func (r *Reader) All() iter.Seq2[Value, error] {
	return func(yield func(Value, error) bool) {
		for {
			v, err := r.Next()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				yield(Value{}, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}
