package sqlbuilder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type (
	B  = testing.B
	T  = testing.T
	TB = testing.TB
)

func eq(t TB, expected any, actual any) {
	t.Helper()
	require.Equal(t, expected, actual)
}

func errIs(t TB, expected error, actual error) {
	t.Helper()
	require.ErrorIs(t, actual, expected)
}

func noErr(t TB, err error) {
	t.Helper()
	require.NoError(t, err)
}

// Renders via `.Sql`, failing the test on error.
func render(t TB, bui *SqlBuilder) string {
	t.Helper()
	out, err := bui.Sql()
	noErr(t, err)
	return out
}

func panicsWith(t TB, expected error, fun func()) {
	t.Helper()

	var val any
	func() {
		defer func() { val = recover() }()
		fun()
	}()

	err, _ := val.(error)
	require.Error(t, err, `expected panic with error, got %#v`, val)
	require.ErrorIs(t, err, expected)
}

// Returns the first N natural numbers, for benchmark loops.
func counter(n int) []struct{} { return make([]struct{}, n) }
