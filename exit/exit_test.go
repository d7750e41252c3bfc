package exit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccess(t *testing.T) {
	assert.True(t, Success.Success())
	assert.False(t, Failure.Success())
	assert.False(t, FromSignal(9).Success())
}

func TestReduceWorst(t *testing.T) {
	assert.Equal(t, Failure, ReduceWorst(Failure, Success))
	assert.Equal(t, Success, ReduceWorst(Success, Success))
	assert.Equal(t, BadSyntax, ReduceWorst(Success, BadSyntax))
}

func TestString(t *testing.T) {
	assert.Equal(t, "0", Success.String())
	assert.Equal(t, "signal(9)", FromSignal(9).String())
}
