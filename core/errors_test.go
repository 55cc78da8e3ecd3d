package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOkIsOk(t *testing.T) {
	require.True(t, Ok.IsOk())
	require.False(t, Ok.IsErr())
}

func TestNewErrIsErr(t *testing.T) {
	e := New(KindUnexpected)
	require.True(t, e.IsErr())
	require.False(t, e.IsOk())
}

func TestFullCarriesExtra(t *testing.T) {
	e := Full(9)
	require.Equal(t, KindBufferEndReached, e.Kind)
	require.Equal(t, uint32(9), e.Extra)
}

func TestMessageIncludesKindAndCategory(t *testing.T) {
	e := New(KindInvalidConfig).WithCategory("options")
	msg := e.Message()
	require.Contains(t, msg, "InvalidConfig")
	require.Contains(t, msg, "options")
}

func TestInvariantPanicsOnFalse(t *testing.T) {
	require.Panics(t, func() { Invariant(false, "boom") })
	require.NotPanics(t, func() { Invariant(true, "fine") })
}
