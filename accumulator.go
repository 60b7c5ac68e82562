// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"math/big"

	"github.com/avdva/radixmath/fixedint"
	mu "github.com/avdva/radixmath/internal/mathutil"
	"github.com/avdva/radixmath/numutil"
)

// ShiftAccumulator shifts a mantissa to the right, remembering enough about the discarded digits
// to make any rounding decision: the most significant discarded digit,
// and whether any other discarded digit was non-zero.
type ShiftAccumulator interface {
	// ShiftedInt returns the current mantissa.
	ShiftedInt() *big.Int
	// ShiftedFixed returns the current mantissa.
	ShiftedFixed() *fixedint.Int
	// DiscardedDigitCount returns the number of digits shifted out so far.
	DiscardedDigitCount() *fixedint.Int
	// LastDiscardedDigit returns the most significant discarded digit.
	LastDiscardedDigit() int
	// OlderDiscardedDigits returns 1 if any discarded digit except the last one was non-zero, and 0 otherwise.
	OlderDiscardedDigits() int
	// DigitLength returns the number of digits in the current mantissa.
	DigitLength() *fixedint.Int
	// ShiftRight discards n least significant digits.
	ShiftRight(n *fixedint.Int)
	// ShiftRightInt discards n least significant digits.
	ShiftRightInt(n int)
	// ShiftToDigits first discards preShift digits, if preShift is positive,
	// then discards digits, until at most 'digits' are left.
	ShiftToDigits(digits, preShift *fixedint.Int)
}

type digitAccumulator struct {
	radix     int
	isSmall   bool
	small     uint64
	big       *big.Int
	discarded *fixedint.Int
	last      int
	older     int
	digits    int64 // -1 if unknown
}

// NewShiftAccumulator returns a ShiftAccumulator for a non-negative mantissa in the given radix.
// last and older describe digits discarded from mant before.
func NewShiftAccumulator(radix int, mant *big.Int, last, older int) ShiftAccumulator {
	a := &digitAccumulator{
		radix:     radix,
		discarded: fixedint.Zero,
		last:      last,
		digits:    -1,
	}
	if older != 0 {
		a.older = 1
	}
	if mant.IsUint64() {
		a.isSmall, a.small = true, mant.Uint64()
	} else {
		a.big = new(big.Int).Set(mant)
	}
	return a
}

func (a *digitAccumulator) ShiftedInt() *big.Int {
	if a.isSmall {
		return new(big.Int).SetUint64(a.small)
	}
	return new(big.Int).Set(a.big)
}

func (a *digitAccumulator) ShiftedFixed() *fixedint.Int {
	if a.isSmall && a.small <= 1<<63-1 {
		return fixedint.FromInt64(int64(a.small))
	}
	return fixedint.FromBig(a.ShiftedInt())
}

func (a *digitAccumulator) DiscardedDigitCount() *fixedint.Int {
	return a.discarded
}

func (a *digitAccumulator) LastDiscardedDigit() int {
	return a.last
}

func (a *digitAccumulator) OlderDiscardedDigits() int {
	return a.older
}

func (a *digitAccumulator) DigitLength() *fixedint.Int {
	return fixedint.FromInt64(a.digitLength())
}

func (a *digitAccumulator) digitLength() int64 {
	if a.digits < 0 {
		if a.isSmall {
			a.digits = int64(mu.Digits(a.small, a.radix))
		} else {
			a.digits = numutil.DigitLength(a.radix, a.big)
		}
	}
	return a.digits
}

func (a *digitAccumulator) ShiftRight(n *fixedint.Int) {
	if n.Sign() <= 0 {
		return
	}
	if v, err := n.Int(); err == nil {
		a.ShiftRightInt(v)
		return
	}
	a.discardAll(n)
}

func (a *digitAccumulator) ShiftToDigits(digits, preShift *fixedint.Int) {
	if preShift != nil && preShift.Sign() > 0 {
		a.ShiftRight(preShift)
	}
	if digits == nil {
		return
	}
	if diff := a.DigitLength().Sub(digits); diff.Sign() > 0 {
		a.ShiftRight(diff)
	}
}

// discardAll discards n digits, where n is larger than the mantissa length.
func (a *digitAccumulator) discardAll(n *fixedint.Int) {
	a.discarded = a.discarded.Add(n)
	nonZero := (a.isSmall && a.small != 0) || (!a.isSmall && a.big.Sign() != 0)
	if a.last != 0 || a.older != 0 || nonZero {
		a.older = 1
	}
	a.last = 0
	a.isSmall, a.small, a.big = true, 0, nil
	a.digits = 1
}

func (a *digitAccumulator) ShiftRightInt(n int) {
	if n <= 0 {
		return
	}
	if int64(n) > a.digitLength() {
		a.discardAll(fixedint.FromInt(n))
		return
	}
	a.discarded = a.discarded.AddInt64(int64(n))
	if a.last != 0 || a.older != 0 {
		a.older = 1
	}
	if a.digits >= 0 {
		a.digits -= int64(n)
		if a.digits < 1 {
			a.digits = 1
		}
	}
	if a.isSmall {
		a.shiftSmall(n)
		return
	}
	a.shiftBig(n)
	if a.big.IsUint64() {
		a.isSmall, a.small, a.big = true, a.big.Uint64(), nil
	}
}

func (a *digitAccumulator) shiftSmall(n int) {
	if a.radix == 2 {
		// n <= 64 here, as n does not exceed the bit length.
		a.last = int(a.small >> uint(n-1) & 1)
		if n > 1 && a.small&(1<<uint(n-1)-1) != 0 {
			a.older = 1
		}
		if n == 64 {
			a.small = 0
		} else {
			a.small >>= uint(n)
		}
		return
	}
	pow, _ := mu.PowRadix(a.radix, n-1)
	q := a.small / pow
	if a.small%pow != 0 {
		a.older = 1
	}
	a.last = int(q % uint64(a.radix))
	a.small = q / uint64(a.radix)
}

func (a *digitAccumulator) shiftBig(n int) {
	if a.radix == 2 {
		a.last = int(a.big.Bit(n - 1))
		if n > 1 && a.big.TrailingZeroBits() < uint(n-1) {
			a.older = 1
		}
		a.big = new(big.Int).Rsh(a.big, uint(n))
		return
	}
	q, r := new(big.Int), new(big.Int)
	if n > 1 {
		q.QuoRem(a.big, numutil.FindPowerOfRadix(a.radix, fixedint.FromInt(n-1)), r)
		if r.Sign() != 0 {
			a.older = 1
		}
	} else {
		q.Set(a.big)
	}
	q.QuoRem(q, big.NewInt(int64(a.radix)), r)
	a.last = int(r.Int64())
	a.big = q
}
