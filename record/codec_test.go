package record

import (
	"bytes"
	"io"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, v Value) Value {
	t.Helper()
	b, err := v.Marshal()
	require.NoError(t, err)
	got, err := Unmarshal(b)
	require.NoError(t, err)
	return got
}

func TestMarshalUnmarshalScalars(t *testing.T) {
	cases := []Value{
		Null(),
		Bool(true),
		Bool(false),
		Int(0),
		Int(23),
		Int(24),
		Int(-1),
		Int(-1000),
		Float(3.5),
		Bytes([]byte("hello")),
		Text("hello"),
	}
	for _, v := range cases {
		got := roundTrip(t, v)
		assert.True(t, Equal(v, got), "round trip of %s changed value", v.Kind)
	}
}

func TestMarshalUnmarshalBignum(t *testing.T) {
	huge := new(big.Int)
	huge.SetString("123456789012345678901234567890", 10)
	v := BigInt(huge)
	got := roundTrip(t, v)
	require.Equal(t, KindInt, got.Kind)
	assert.Equal(t, 0, huge.Cmp(got.IntVal))

	negHuge := new(big.Int).Neg(huge)
	v2 := BigInt(negHuge)
	got2 := roundTrip(t, v2)
	require.Equal(t, KindInt, got2.Kind)
	assert.Equal(t, 0, negHuge.Cmp(got2.IntVal))
}

func TestMarshalUnmarshalContainers(t *testing.T) {
	arr := Array(Int(1), Text("two"), Bool(true), Null())
	got := roundTrip(t, arr)
	assert.True(t, Equal(arr, got))

	m := Map(
		MapEntry{Key: Text("a"), Value: Int(1)},
		MapEntry{Key: Text("b"), Value: Int(2)},
	)
	gotMap := roundTrip(t, m)
	require.Equal(t, KindMap, gotMap.Kind)
	require.Len(t, gotMap.MapVal, 2)
	// Insertion order must survive the round trip.
	assert.Equal(t, "a", gotMap.MapVal[0].Key.TextVal)
	assert.Equal(t, "b", gotMap.MapVal[1].Key.TextVal)
}

func TestMarshalUnmarshalTag(t *testing.T) {
	tagged := Tag(100, Text("payload"))
	got := roundTrip(t, tagged)
	require.Equal(t, KindTag, got.Kind)
	assert.Equal(t, uint64(100), got.TagVal.Number)
	assert.True(t, Equal(*tagged.TagVal.Inner, *got.TagVal.Inner))
}

func TestUnmarshalRejectsTrailingBytes(t *testing.T) {
	b, err := Int(1).Marshal()
	require.NoError(t, err)
	b = append(b, 0xff)
	_, err = Unmarshal(b)
	assert.Error(t, err)
}

func TestReaderReadsConcatenatedRecords(t *testing.T) {
	var buf bytes.Buffer
	values := []Value{Int(1), Text("two"), Array(Int(3), Int(4))}
	for _, v := range values {
		require.NoError(t, Write(&buf, v))
	}

	r := NewReader(&buf)
	for _, want := range values {
		got, err := r.Next()
		require.NoError(t, err)
		assert.True(t, Equal(want, got))
	}
	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderAllIterator(t *testing.T) {
	var buf bytes.Buffer
	values := []Value{Int(1), Int(2), Int(3)}
	for _, v := range values {
		require.NoError(t, Write(&buf, v))
	}

	var got []Value
	for v, err := range NewReader(&buf).All() {
		require.NoError(t, err)
		got = append(got, v)
	}
	require.Len(t, got, len(values))
	for i := range values {
		assert.True(t, Equal(values[i], got[i]))
	}
}

func TestReaderTruncatedRecordIsUnexpectedEOF(t *testing.T) {
	b, err := Array(Int(1), Int(2), Int(3)).Marshal()
	require.NoError(t, err)
	r := NewReader(bytes.NewReader(b[:len(b)-1]))
	_, err = r.Next()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadOneEmptyStreamIsEOF(t *testing.T) {
	_, err := ReadOne(bytes.NewReader(nil))
	assert.ErrorIs(t, err, io.EOF)
}
