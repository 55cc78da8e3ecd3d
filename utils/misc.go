package utils

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/cockroachdb/apd/v3"
)

// GetCodingLength returns ceil(log2(characteristics)), the number of
// bits needed to distinguish `characteristics` alternatives. Wired into
// core.BitWidth for event-code and fixed-width-integer sizing.
func GetCodingLength(characteristics int) int {
	if characteristics == 0 || characteristics == 1 {
		return 0
	}
	if characteristics == 2 {
		return 1
	}
	if characteristics == 3 || characteristics == 4 {
		return 2
	}
	if 5 <= characteristics && characteristics <= 8 {
		return 3
	}
	if 9 <= characteristics && characteristics <= 16 {
		return 4
	}
	if 17 <= characteristics && characteristics <= 32 {
		return 5
	}
	if 33 <= characteristics && characteristics <= 64 {
		return 6
	}

	if characteristics < 129 {
		// 65 .. 128
		return 7
	} else if characteristics < 257 {
		// 129 .. 256
		return 8
	} else if characteristics < 513 {
		// 257 .. 512
		return 9
	} else if characteristics < 1025 {
		// 513 .. 1024
		return 10
	} else if characteristics < 2049 {
		// 1025 .. 2048
		return 11
	} else if characteristics < 4097 {
		// 2049 .. 4096
		return 12
	} else if characteristics < 8193 {
		// 4097 .. 8192
		return 13
	} else if characteristics < 16385 {
		// 8193 .. 16384
		return 14
	} else if characteristics < 32769 {
		// 16385 .. 32768
		return 15
	} else {
		return bits.Len(uint(characteristics - 1))
	}
}

// TryBigInt converts a decimal with no fractional part into a *big.Int,
// erroring if x has one. Wired into core.NewAPIntFromDecimalString for
// parsing an EXI decimal's integer part into an APInt.
// Reuses code from: https://github.com/fardream/decimal
func TryBigInt(x *apd.Decimal) (*big.Int, error) {
	var integ, frac apd.Decimal
	x.Modf(&integ, &frac)
	if !frac.IsZero() {
		return nil, fmt.Errorf("%s: has fractional part", x.String())
	}
	str := x.Text('f')
	r, ok := big.NewInt(0).SetString(str, 10)
	if !ok {
		return nil, fmt.Errorf("%s is not an integer", r)
	}

	return r, nil
}

func BoolToInt(b bool) int {
	if b {
		return 1
	} else {
		return 0
	}
}

// NumberOf7BitBlocksToRepresent32 returns the least number of 7-bit
// LEB128 groups needed to represent n. Returns 1 if n is 0.
func NumberOf7BitBlocksToRepresent32(n uint) int {
	if n < 128 { // 7 bits
		return 1
	} else if n < 16384 { // 14 bits
		return 2
	} else if n < 2097152 { // 21 bits
		return 3
	} else if n < 268435456 { // 28 bits
		return 4
	} else { // 35 bits
		return 5
	}
}

// NumberOf7BitBlocksToRepresent64 returns the least number of 7-bit
// LEB128 groups needed to represent l. Returns 1 if l is 0. Wired into
// core.LEBByteLength, used to size bitstream writer buffers ahead of a
// varint write.
func NumberOf7BitBlocksToRepresent64(l uint64) int {
	if l < 0xffffffff {
		return NumberOf7BitBlocksToRepresent32(uint(l))
	} else if l < 0x800000000 { // 35 bits
		return 5
	} else if l < 0x40000000000 { // 42 bits
		return 6
	} else if l < 0x2000000000000 { // 49 bits
		return 7
	} else if l < 0x100000000000000 { // 56 bits
		return 8
	} else if l < 0x8000000000000000 { // 63 bits
		return 9
	} else {
		// long, 64 bits
		return 10
	}
}
