package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocateReturnsStableBytes(t *testing.T) {
	a := NewWithSlabSize(16)
	first := a.Allocate(4, 1)
	copy(first, []byte("abcd"))

	// Force a new slab.
	_ = a.Allocate(32, 1)

	require.Equal(t, "abcd", string(first))
}

func TestResetReclaimsSpace(t *testing.T) {
	a := New()
	before := a.Bytes()
	a.Allocate(100, 1)
	require.Greater(t, a.Bytes(), before)
	a.Reset()
	require.Equal(t, 0, a.Bytes())
}

func TestInternerCopiesBytes(t *testing.T) {
	a := New()
	in := NewInterner(a)
	src := []byte("hello")
	ref := in.Intern(src)
	src[0] = 'X'
	require.Equal(t, "hello", ref.String())
}

func TestNonDestructiveRefAliasesSource(t *testing.T) {
	src := []byte("hello")
	ref := NonDestructiveRef(src)
	src[0] = 'X'
	require.Equal(t, "Xello", ref.String())
}
