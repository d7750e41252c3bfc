package record

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/big"

	"github.com/x448/float16"
)

// CBOR major types (RFC 8949 §3).
const (
	majorUint  = 0
	majorNeg   = 1
	majorBytes = 2
	majorText  = 3
	majorArray = 4
	majorMap   = 5
	majorTag   = 6
	majorSimple = 7
)

// Bignum tags reserved by RFC 8949 §3.4.3.
const (
	tagBignumPos = 2
	tagBignumNeg = 3
)

const (
	simpleFalse   = 20
	simpleTrue    = 21
	simpleNull    = 22
	simpleUndef   = 23
	aiOneByte     = 24
	aiTwoByte     = 25
	aiFourByte    = 26
	aiEightByte   = 27
	aiIndefinite  = 31
)

// encodeHead writes the major-type/argument head for a definite-length CBOR
// item, choosing the shortest representation of n (RFC 8949 §3.1).
func encodeHead(major byte, n uint64) []byte {
	b0 := major << 5
	switch {
	case n < aiOneByte:
		return []byte{b0 | byte(n)}
	case n <= 0xff:
		return []byte{b0 | aiOneByte, byte(n)}
	case n <= 0xffff:
		buf := make([]byte, 3)
		buf[0] = b0 | aiTwoByte
		binary.BigEndian.PutUint16(buf[1:], uint16(n))
		return buf
	case n <= 0xffffffff:
		buf := make([]byte, 5)
		buf[0] = b0 | aiFourByte
		binary.BigEndian.PutUint32(buf[1:], uint32(n))
		return buf
	default:
		buf := make([]byte, 9)
		buf[0] = b0 | aiEightByte
		binary.BigEndian.PutUint64(buf[1:], n)
		return buf
	}
}

// decodeHead parses the head of one CBOR item: its major type, the raw
// 5-bit additional-information field, and the resolved argument (the
// literal value for ai<24, or the big-endian integer that follows
// otherwise). Indefinite-length items (ai==31) are rejected: monch records
// are always written with definite lengths, and a mid-item EOF must be
// reported as an error rather than silently accepted.
func decodeHead(data []byte) (major, ai byte, arg uint64, rest []byte, err error) {
	if len(data) < 1 {
		err = io.ErrUnexpectedEOF
		return
	}
	b0 := data[0]
	major = b0 >> 5
	ai = b0 & 0x1f
	data = data[1:]

	switch {
	case ai < aiOneByte:
		arg = uint64(ai)
	case ai == aiOneByte:
		if len(data) < 1 {
			err = io.ErrUnexpectedEOF
			return
		}
		arg = uint64(data[0])
		data = data[1:]
	case ai == aiTwoByte:
		if len(data) < 2 {
			err = io.ErrUnexpectedEOF
			return
		}
		arg = uint64(binary.BigEndian.Uint16(data))
		data = data[2:]
	case ai == aiFourByte:
		if len(data) < 4 {
			err = io.ErrUnexpectedEOF
			return
		}
		arg = uint64(binary.BigEndian.Uint32(data))
		data = data[4:]
	case ai == aiEightByte:
		if len(data) < 8 {
			err = io.ErrUnexpectedEOF
			return
		}
		arg = binary.BigEndian.Uint64(data)
		data = data[8:]
	default:
		err = ErrIndefiniteLength
		return
	}
	rest = data
	return
}

// encodeInt renders a (possibly big) integer as the shortest correct CBOR
// encoding: a direct major-0/1 integer when it fits in 64 bits, or a
// bignum (tag 2/3 over a big-endian magnitude) otherwise.
func encodeInt(v *big.Int) []byte {
	if v.Sign() >= 0 {
		if v.IsUint64() {
			return encodeHead(majorUint, v.Uint64())
		}
		return encodeBignum(tagBignumPos, v)
	}

	mag := new(big.Int).Neg(v)
	arg := new(big.Int).Sub(mag, big.NewInt(1))
	if arg.IsUint64() {
		return encodeHead(majorNeg, arg.Uint64())
	}
	return encodeBignum(tagBignumNeg, arg)
}

func encodeBignum(tag uint64, magnitude *big.Int) []byte {
	b := magnitude.Bytes()
	buf := encodeHead(majorTag, tag)
	buf = append(buf, encodeHead(majorBytes, uint64(len(b)))...)
	return append(buf, b...)
}

// decodeValue parses one CBOR data item from the front of data, returning
// the decoded Value and the remaining bytes.
func decodeValue(data []byte) (Value, []byte, error) {
	major, ai, arg, rest, err := decodeHead(data)
	if err != nil {
		return Value{}, nil, err
	}

	switch major {
	case majorUint:
		return Value{Kind: KindInt, IntVal: new(big.Int).SetUint64(arg)}, rest, nil

	case majorNeg:
		bi := new(big.Int).SetUint64(arg)
		bi.Add(bi, big.NewInt(1))
		bi.Neg(bi)
		return Value{Kind: KindInt, IntVal: bi}, rest, nil

	case majorBytes:
		if uint64(len(rest)) < arg {
			return Value{}, nil, io.ErrUnexpectedEOF
		}
		b := append([]byte(nil), rest[:arg]...)
		return Value{Kind: KindBytes, BytesVal: b}, rest[arg:], nil

	case majorText:
		if uint64(len(rest)) < arg {
			return Value{}, nil, io.ErrUnexpectedEOF
		}
		s := string(rest[:arg])
		return Value{Kind: KindText, TextVal: s}, rest[arg:], nil

	case majorArray:
		items := make([]Value, 0, arg)
		cur := rest
		for i := uint64(0); i < arg; i++ {
			var item Value
			var err error
			item, cur, err = decodeValue(cur)
			if err != nil {
				return Value{}, nil, err
			}
			items = append(items, item)
		}
		return Value{Kind: KindArray, ArrayVal: items}, cur, nil

	case majorMap:
		entries := make([]MapEntry, 0, arg)
		cur := rest
		for i := uint64(0); i < arg; i++ {
			var key, val Value
			var err error
			key, cur, err = decodeValue(cur)
			if err != nil {
				return Value{}, nil, err
			}
			val, cur, err = decodeValue(cur)
			if err != nil {
				return Value{}, nil, err
			}
			entries = append(entries, MapEntry{Key: key, Value: val})
		}
		return Value{Kind: KindMap, MapVal: entries}, cur, nil

	case majorTag:
		switch arg {
		case tagBignumPos, tagBignumNeg:
			inner, next, err := decodeValue(rest)
			if err != nil {
				return Value{}, nil, err
			}
			if inner.Kind != KindBytes {
				return Value{}, nil, fmt.Errorf("record: bignum tag %d did not wrap a byte string", arg)
			}
			bi := new(big.Int).SetBytes(inner.BytesVal)
			if arg == tagBignumNeg {
				bi.Add(bi, big.NewInt(1))
				bi.Neg(bi)
			}
			return Value{Kind: KindInt, IntVal: bi}, next, nil
		default:
			inner, next, err := decodeValue(rest)
			if err != nil {
				return Value{}, nil, err
			}
			return Tag(arg, inner), next, nil
		}

	case majorSimple:
		switch ai {
		case simpleFalse:
			return Value{Kind: KindBool, BoolVal: false}, rest, nil
		case simpleTrue:
			return Value{Kind: KindBool, BoolVal: true}, rest, nil
		case simpleNull, simpleUndef:
			return Value{Kind: KindNull}, rest, nil
		case aiTwoByte:
			return Value{Kind: KindFloat, FloatVal: float64(float16.Frombits(uint16(arg)).Float32())}, rest, nil
		case aiFourByte:
			return Value{Kind: KindFloat, FloatVal: float64(math.Float32frombits(uint32(arg)))}, rest, nil
		case aiEightByte:
			return Value{Kind: KindFloat, FloatVal: math.Float64frombits(arg)}, rest, nil
		default:
			return Value{}, nil, fmt.Errorf("record: unsupported simple value (additional info %d)", ai)
		}

	default:
		return Value{}, nil, fmt.Errorf("record: impossible major type %d", major)
	}
}
