package pipetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanConnect(t *testing.T) {
	cases := []struct {
		from, to Type
		want     bool
	}{
		{Cbor, Any, true},
		{Text, Any, true},
		{Cbor, Cbor, true},
		{Text, Text, true},
		{Unknown, Nothing, true},
		{Cbor, Nothing, true},
		{Cbor, Text, false},
		{Text, Cbor, false},
		{Unknown, Cbor, false},
		{Any, Cbor, false}, // from is never consulted except for identity/Nothing/Any-to
	}
	for _, c := range cases {
		got := CanConnect(c.from, c.to)
		assert.Equal(t, c.want, got, "CanConnect(%s, %s)", c.from, c.to)
	}
}

func TestParse(t *testing.T) {
	ty, ok := Parse("cbor")
	assert.True(t, ok)
	assert.Equal(t, Cbor, ty)

	ty, ok = Parse(" TTY ")
	assert.True(t, ok)
	assert.Equal(t, Tty, ty)

	_, ok = Parse("any")
	assert.False(t, ok, "Any has no textual form")
}

func TestString(t *testing.T) {
	assert.Equal(t, "[any]", Any.String())
	assert.Equal(t, "cbor", Cbor.String())
}
