// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package mathutil contains machine-word helpers used by the fast paths.
package mathutil

import (
	"math"
	"math/bits"
	"unsafe"
)

var (
	decimalFactorTable = [...]uint64{ // up to 1e19
		1, 10, 100, 1000, 10000,
		100000, 1000000, 10000000, 100000000, 1000000000, 10000000000,
		100000000000, 1000000000000, 10000000000000, 100000000000000,
		1000000000000000, 10000000000000000, 100000000000000000,
		1000000000000000000, 10000000000000000000,
	}

	fiveFactorTable = func() (table [28]uint64) {
		table[0] = 1
		for i := 1; i < len(table); i++ {
			table[i] = table[i-1] * 5
		}
		return table
	}()

	digitsHelper = [...]int{
		0, 0, 0, 0, 1, 1, 1, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 5, 5, 5,
		6, 6, 6, 6, 7, 7, 7, 8, 8, 8,
		9, 9, 9, 9, 10, 10, 10, 11, 11, 11,
		12, 12, 12, 12, 13, 13, 13, 14, 14, 14,
		15, 15, 15, 15, 16, 16, 16, 17, 17, 17,
		18, 18, 18, 18, 19,
	}
)

// MaxPow10 is the largest power of ten fitting a uint64.
const MaxPow10 = len(decimalFactorTable) - 1

// MaxPow5 is the largest power of five fitting a uint64.
const MaxPow5 = len(fiveFactorTable) - 1

// Pow10 returns 10^pow, or 0 if it does not fit 64 bits.
func Pow10(pow int) uint64 {
	if pow < 0 || pow >= len(decimalFactorTable) {
		return 0
	}
	return decimalFactorTable[pow]
}

// Pow5 returns 5^pow, or 0 if it does not fit 64 bits.
func Pow5(pow int) uint64 {
	if pow < 0 || pow >= len(fiveFactorTable) {
		return 0
	}
	return fiveFactorTable[pow]
}

// PowRadix returns radix^pow and true, if the result fits 64 bits.
func PowRadix(radix, pow int) (uint64, bool) {
	switch {
	case pow < 0 || radix < 2:
		return 0, false
	case radix == 10:
		p := Pow10(pow)
		return p, p != 0
	case radix == 2:
		if pow >= 64 {
			return 0, false
		}
		return 1 << uint(pow), true
	}
	result := uint64(1)
	for i := 0; i < pow; i++ {
		hi, lo := bits.Mul64(result, uint64(radix))
		if hi != 0 {
			return 0, false
		}
		result = lo
	}
	return result, true
}

func BinaryDigits(value uint64) int {
	return int(8*unsafe.Sizeof(uint64(0))) - bits.LeadingZeros64(value)
}

// DecimalDigits returns the number of decimal digits in 'value'.
// see https://stackoverflow.com/a/25934909
func DecimalDigits(value uint64) int {
	if value == 0 {
		return 1
	}

	digits := digitsHelper[BinaryDigits(value)]
	if value >= decimalFactorTable[digits] {
		digits++
	}
	return digits
}

// Digits returns the number of radix digits in 'value'. Zero has one digit.
func Digits(value uint64, radix int) int {
	switch radix {
	case 10:
		return DecimalDigits(value)
	case 2:
		if value == 0 {
			return 1
		}
		return BinaryDigits(value)
	}
	digits := 1
	for value >= uint64(radix) {
		value /= uint64(radix)
		digits++
	}
	return digits
}

// ScaleUp returns mant*radix^pow, if the result fits 64 bits.
func ScaleUp(mant uint64, radix, pow int) (uint64, bool) {
	if mant == 0 || pow == 0 {
		return mant, true
	}
	p, ok := PowRadix(radix, pow)
	if !ok {
		return 0, false
	}
	hi, lo := bits.Mul64(mant, p)
	return lo, hi == 0
}

// TrimZeros removes trailing radix zeros from m, while e < eMax.
func TrimZeros(m uint64, e, eMax int64, radix int) (uint64, int64) {
	if m == 0 {
		return m, e
	}
	if radix == 2 {
		tz := int64(bits.TrailingZeros64(m))
		if d := eMax - e; d < tz {
			tz = d
		}
		if tz <= 0 {
			return m, e
		}
		return m >> uint(tz), e + tz
	}
	r := uint64(radix)
	for e < eMax && m%r == 0 {
		m /= r
		e++
	}
	return m, e
}

// AddInt64 returns a+b and false, if the sum overflows.
func AddInt64(a, b int64) (int64, bool) {
	c := a + b
	if (c > a) == (b > 0) {
		return c, true
	}
	return 0, false
}

// SubInt64 returns a-b and false, if the difference overflows.
func SubInt64(a, b int64) (int64, bool) {
	c := a - b
	if (c < a) == (b > 0) {
		return c, true
	}
	return 0, false
}

// MulInt64 returns a*b and false, if the product overflows.
func MulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

// AbsInt64 returns |val|. The result for math.MinInt64 is math.MinInt64.
func AbsInt64(val int64) int64 {
	mask := val >> (unsafe.Sizeof(int64(0))*8 - 1)
	return (val + mask) ^ mask
}

func SameSign(a, b int64) bool {
	return (a>>63 ^ b>>63) == 0
}

func Int64Sign(v int64) int {
	if v == 0 {
		return 0
	}
	return [...]int{1, -1}[uint64(v)>>63]
}

// CmpUint64 compares two values.
// Returns -1 if a < b, 0 if a == b, 1 if a > b
func CmpUint64(a, b uint64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
