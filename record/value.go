// Package record implements the self-describing tagged record type that
// flows between pipeline stages, and the codec that reads and writes it as
// CBOR (RFC 8949) over a stream.
package record

import (
	"fmt"
	"math/big"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindBytes
	KindText
	KindArray
	KindMap
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	case KindText:
		return "text"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindTag:
		return "tag"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MapEntry is one key/value pair of a Map value. Entries preserve the order
// they were parsed or constructed in; Map is a slice, not a Go map, for
// exactly this reason.
type MapEntry struct {
	Key   Value
	Value Value
}

// Tagged holds a numeric CBOR tag and the record it annotates.
type Tagged struct {
	Number uint64
	Inner  *Value
}

// Value is a self-describing tagged record: the unit of data carried by a
// pipeline. Exactly one of the typed fields is meaningful, selected by Kind.
type Value struct {
	Kind Kind

	BoolVal  bool
	IntVal   *big.Int
	FloatVal float64
	BytesVal []byte
	TextVal  string
	ArrayVal []Value
	MapVal   []MapEntry
	TagVal   Tagged
}

// Null returns the null record.
func Null() Value { return Value{Kind: KindNull} }

// Bool returns a boolean record.
func Bool(b bool) Value { return Value{Kind: KindBool, BoolVal: b} }

// Int returns an integer record from an int64.
func Int(i int64) Value { return Value{Kind: KindInt, IntVal: big.NewInt(i)} }

// BigInt returns an integer record from an arbitrary-precision integer.
func BigInt(i *big.Int) Value { return Value{Kind: KindInt, IntVal: i} }

// Float returns a floating-point record.
func Float(f float64) Value { return Value{Kind: KindFloat, FloatVal: f} }

// Bytes returns a byte-string record.
func Bytes(b []byte) Value { return Value{Kind: KindBytes, BytesVal: b} }

// Text returns a text-string record.
func Text(s string) Value { return Value{Kind: KindText, TextVal: s} }

// Array returns an array record.
func Array(items ...Value) Value { return Value{Kind: KindArray, ArrayVal: items} }

// Map returns a map record, preserving the given entry order.
func Map(entries ...MapEntry) Value { return Value{Kind: KindMap, MapVal: entries} }

// Tag returns a tagged record wrapping inner with the numeric tag num.
func Tag(num uint64, inner Value) Value {
	return Value{Kind: KindTag, TagVal: Tagged{Number: num, Inner: &inner}}
}

// IsNull reports whether v is the null record.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// AsText returns the text value and true if v is a text record.
func (v Value) AsText() (string, bool) {
	if v.Kind == KindText {
		return v.TextVal, true
	}
	return "", false
}

// Equal reports whether a and b represent the same record value. Used to
// match map keys in datapath lookups.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindBool:
		return a.BoolVal == b.BoolVal
	case KindInt:
		return a.IntVal.Cmp(b.IntVal) == 0
	case KindFloat:
		return a.FloatVal == b.FloatVal
	case KindBytes:
		return string(a.BytesVal) == string(b.BytesVal)
	case KindText:
		return a.TextVal == b.TextVal
	case KindArray:
		if len(a.ArrayVal) != len(b.ArrayVal) {
			return false
		}
		for i := range a.ArrayVal {
			if !Equal(a.ArrayVal[i], b.ArrayVal[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.MapVal) != len(b.MapVal) {
			return false
		}
		for i := range a.MapVal {
			if !Equal(a.MapVal[i].Key, b.MapVal[i].Key) || !Equal(a.MapVal[i].Value, b.MapVal[i].Value) {
				return false
			}
		}
		return true
	case KindTag:
		return a.TagVal.Number == b.TagVal.Number && Equal(*a.TagVal.Inner, *b.TagVal.Inner)
	default:
		return false
	}
}
