package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUBitNMasksToWidth(t *testing.T) {
	b := NewUBitN(4, 0b11111010)
	require.Equal(t, uint64(0b1010), b.Value)
	require.Equal(t, uint8(4), b.Width)
}

func TestIBitNSignExtends(t *testing.T) {
	// width 4, raw pattern 1010 -> -6 in two's complement
	b := NewIBitN(4, 0b1010)
	require.Equal(t, int64(-6), b.Value)
	require.Equal(t, uint64(0b1010), b.Unsigned())
}

func TestFitsInBitsU64(t *testing.T) {
	require.True(t, FitsInBitsU64(15, 4))
	require.False(t, FitsInBitsU64(16, 4))
	require.True(t, FitsInBitsU64(0xFFFFFFFFFFFFFFFF, 64))
}

func TestAPIntWordsRoundTrip(t *testing.T) {
	words := []uint64{0x0102030405060708, 0x1}
	a := NewAPIntFromWords(words, 65)
	got := a.Words()
	require.Equal(t, words, got)
}

func TestAPIntString(t *testing.T) {
	a := NewAPIntFromUint64(12345, 64)
	require.Equal(t, "12345", a.String())

	a2 := NewAPIntFromUint64(0, 64)
	require.Equal(t, "0", a2.String())
}

func TestAPIntSignedString(t *testing.T) {
	a := NewAPIntFromUint64(42, 64)
	require.Equal(t, "-42", a.SignedString(true))
	require.Equal(t, "42", a.SignedString(false))

	zero := NewAPIntFromUint64(0, 64)
	require.Equal(t, "0", zero.SignedString(true))
}

func TestAPIntFitsInBits(t *testing.T) {
	a := NewAPIntFromUint64(255, 64)
	require.True(t, a.FitsInBits(8))
	require.False(t, a.FitsInBits(7))
}

func TestNewAPIntFromDecimalString(t *testing.T) {
	a, err := NewAPIntFromDecimalString("12345")
	require.Nil(t, err)
	require.Equal(t, "12345", a.String())

	neg, err := NewAPIntFromDecimalString("-42")
	require.Nil(t, err)
	require.Equal(t, "42", neg.String())

	_, err = NewAPIntFromDecimalString("3.14")
	require.NotNil(t, err)

	_, err = NewAPIntFromDecimalString("not-a-number")
	require.NotNil(t, err)
}

func TestLEBByteLength(t *testing.T) {
	require.Equal(t, 1, LEBByteLength(0))
	require.Equal(t, 1, LEBByteLength(127))
	require.Equal(t, 2, LEBByteLength(128))
	require.Equal(t, 2, LEBByteLength(16383))
	require.Equal(t, 3, LEBByteLength(16384))
}
