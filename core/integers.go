package core

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"
	"github.com/dkowalski/exicore/utils"
)

// UBitN is a fixed-width unsigned integer newtype: only the low Width
// bits of Value are significant, mirroring the original NBitInt.hpp
// invariant ("storage only, no arithmetic provided").
type UBitN struct {
	Width uint8
	Value uint64
}

// NewUBitN constructs a UBitN, masking value down to width bits. width
// must be in [1, 64].
func NewUBitN(width uint8, value uint64) UBitN {
	Invariant(width >= 1 && width <= 64, "integers: UBitN width out of [1,64]")
	if width < 64 {
		value &= (uint64(1) << width) - 1
	}
	return UBitN{Width: width, Value: value}
}

// FitsInBitsU64 reports whether value fits in width unsigned bits.
func FitsInBitsU64(value uint64, width uint8) bool {
	if width >= 64 {
		return true
	}
	return value < (uint64(1) << width)
}

// IBitN is a fixed-width signed integer newtype, stored two's-complement
// in the low Width bits.
type IBitN struct {
	Width uint8
	Value int64
}

// NewIBitN constructs an IBitN, sign-extending/masking value to width
// bits. width must be in [1, 64].
func NewIBitN(width uint8, value int64) IBitN {
	Invariant(width >= 1 && width <= 64, "integers: IBitN width out of [1,64]")
	if width < 64 {
		mask := int64(1)<<width - 1
		value &= mask
		signBit := int64(1) << (width - 1)
		if value&signBit != 0 {
			value |= ^mask
		}
	}
	return IBitN{Width: width, Value: value}
}

// Unsigned returns the raw two's-complement bit pattern in the low
// Width bits, suitable for bitstream writes.
func (b IBitN) Unsigned() uint64 {
	if b.Width >= 64 {
		return uint64(b.Value)
	}
	return uint64(b.Value) & ((uint64(1) << b.Width) - 1)
}

// APInt is an arbitrary-precision unsigned integer, grounded on
// math/big.Int: its Bits() exposes little-endian 64-bit-word limbs,
// which is exactly the "limb-wise assembly, low limb first" layout the
// bit-stream layer needs for values wider than 64 bits.
type APInt struct {
	bitWidth int
	v        *big.Int
}

// NewAPIntFromWords assembles an APInt from 64-bit limbs, low limb
// first (words[0] is the least-significant 64 bits), truncated/masked
// to bitWidth significant bits.
func NewAPIntFromWords(words []uint64, bitWidth int) *APInt {
	bw := make([]big.Word, len(words))
	for i, w := range words {
		bw[i] = big.Word(w)
	}
	v := new(big.Int).SetBits(bw)
	mask := new(big.Int).Lsh(big.NewInt(1), uint(bitWidth))
	mask.Sub(mask, big.NewInt(1))
	v.And(v, mask)
	return &APInt{bitWidth: bitWidth, v: v}
}

// NewAPIntFromUint64 wraps a single 64-bit value as an APInt of the
// given declared bit width (width may exceed 64; the extra high bits
// are simply zero).
func NewAPIntFromUint64(value uint64, bitWidth int) *APInt {
	return &APInt{bitWidth: bitWidth, v: new(big.Int).SetUint64(value)}
}

// NewAPIntFromBigInt wraps an existing non-negative big.Int, declaring
// its significant bit width explicitly.
func NewAPIntFromBigInt(v *big.Int, bitWidth int) *APInt {
	Invariant(v.Sign() >= 0, "integers: APInt from negative big.Int")
	return &APInt{bitWidth: bitWidth, v: new(big.Int).Set(v)}
}

// BitWidth returns the declared significant bit width.
func (a *APInt) BitWidth() int { return a.bitWidth }

// Words returns the value's limbs, little-endian (low limb first),
// zero-padded to ceil(bitWidth/64) words.
func (a *APInt) Words() []uint64 {
	limbs := (a.bitWidth + 63) / 64
	bw := a.v.Bits()
	out := make([]uint64, limbs)
	for i := 0; i < len(bw) && i < limbs; i++ {
		out[i] = uint64(bw[i])
	}
	return out
}

// BigInt returns the underlying value as a *big.Int (a defensive copy).
func (a *APInt) BigInt() *big.Int { return new(big.Int).Set(a.v) }

// FitsInBits reports whether the value's actual magnitude fits in n
// bits, independent of the declared bitWidth. NewUBitN and NewIBitN do
// not call it: they mask the value to width without checking the fit.
func (a *APInt) FitsInBits(n int) bool {
	return a.v.BitLen() <= n
}

// Uint64 returns the value truncated to 64 bits, valid only when
// BitWidth() <= 64.
func (a *APInt) Uint64() uint64 {
	return a.v.Uint64()
}

// String renders the value as a decimal string. For magnitudes beyond
// 64 bits this is an arbitrary-precision decimal formatting problem,
// so it is grounded on apd.Decimal's formatter rather than a hand-rolled
// bignum-to-decimal conversion.
func (a *APInt) String() string {
	d, _, err := apd.NewFromString(a.v.String())
	if err != nil {
		// a.v.String() is always a valid integer literal; this path is
		// unreachable in practice.
		return a.v.String()
	}
	return d.String()
}

// SignedString renders the value as a signed decimal string given an
// explicit sign, for callers representing EXI's separate
// sign-bit + magnitude integer encoding (spec's "print decimal with
// sign").
func (a *APInt) SignedString(negative bool) string {
	s := a.String()
	if negative && s != "0" {
		return "-" + s
	}
	return s
}

// NewAPIntFromDecimalString parses an integer-valued decimal literal
// (no fractional part) into an APInt holding its absolute magnitude;
// the caller tracks the sign separately (see APInt.SignedString),
// matching EXI's decimal representation as a sign bit plus two
// unsigned integer magnitudes. Grounded on the teacher's
// utils.TryBigInt decimal-to-bigint conversion.
func NewAPIntFromDecimalString(s string) (*APInt, *ExiError) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, New(KindInvalidEXIInput).WithCategory("integers")
	}
	bi, convErr := utils.TryBigInt(d)
	if convErr != nil {
		return nil, New(KindInvalidEXIInput).WithCategory("integers")
	}
	if bi.Sign() < 0 {
		bi = new(big.Int).Neg(bi)
	}
	bitWidth := bi.BitLen()
	if bitWidth == 0 {
		bitWidth = 1
	}
	return NewAPIntFromBigInt(bi, bitWidth), nil
}

// LEBByteLength returns the number of bytes WriteUintLEB would emit for
// v, grounded on the teacher's utils.NumberOf7BitBlocksToRepresent64.
// Used to size a BitWriter's backing buffer ahead of a varint write
// rather than relying purely on append's amortized growth.
func LEBByteLength(v uint64) int {
	return utils.NumberOf7BitBlocksToRepresent64(v)
}
