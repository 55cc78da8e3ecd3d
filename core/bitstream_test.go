package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitWriterReaderRoundTripSingleBits(t *testing.T) {
	w := NewBitWriter(4)
	bitsIn := []uint8{1, 0, 1, 1, 0, 0, 1, 0, 1, 1}
	for _, b := range bitsIn {
		require.Nil(t, w.WriteBit(b))
	}
	require.Nil(t, w.AlignUp())

	r := NewBitReader(w.WrittenBytes())
	for _, want := range bitsIn {
		got, err := r.ReadBit()
		require.Nil(t, err)
		require.Equal(t, want, got)
	}
}

func TestBitWriterReaderRoundTripVariableWidths(t *testing.T) {
	w := NewBitWriter(8)
	values := []struct {
		v uint64
		n uint8
	}{
		{0, 1}, {1, 1}, {5, 3}, {200, 8}, {1 << 20, 21}, {0xFFFFFFFFFFFFFFFF, 64},
	}
	for _, tc := range values {
		require.Nil(t, w.WriteBitsU64(tc.v, tc.n))
	}
	require.Nil(t, w.AlignUp())

	r := NewBitReader(w.WrittenBytes())
	for _, tc := range values {
		got, err := r.ReadBitsU64(tc.n)
		require.Nil(t, err)
		want := tc.v
		if tc.n < 64 {
			want &= (uint64(1) << tc.n) - 1
		}
		require.Equal(t, want, got)
	}
}

func TestBitReaderFullOnOverrun(t *testing.T) {
	r := NewBitReader([]byte{0xAB})
	_, err := r.ReadBitsU64(9)
	require.NotNil(t, err)
	require.Equal(t, KindBufferEndReached, err.Kind)
}

func TestUintLEBRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 20, 1 << 40, 0xFFFFFFFFFFFFFFFF}
	w := NewBitWriter(64)
	for _, v := range values {
		require.Nil(t, w.WriteUintLEB(v))
	}

	r := NewBitReader(w.WrittenBytes())
	for _, want := range values {
		got, err := r.ReadUintLEB()
		require.Nil(t, err)
		require.Equal(t, want, got)
	}
}

func TestByteSliceRoundTripUnaligned(t *testing.T) {
	w := NewBitWriter(8)
	require.Nil(t, w.WriteBit(1))
	require.Nil(t, w.WriteByteSlice([]byte("hello")))

	r := NewBitReader(w.WrittenBytes())
	bit, err := r.ReadBit()
	require.Nil(t, err)
	require.Equal(t, uint8(1), bit)
	got, err := r.ReadByteSlice(5)
	require.Nil(t, err)
	require.Equal(t, "hello", string(got))
}

func TestBitWidth(t *testing.T) {
	cases := map[uint64]uint8{0: 0, 1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4, 16: 4, 17: 5}
	for n, want := range cases {
		require.Equal(t, want, BitWidth(n), "n=%d", n)
	}
}
