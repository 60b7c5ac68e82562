// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package numutil implements radix-generic integer algorithms used by the arithmetic engine:
// digit length estimation, trailing zero reduction, division feasibility checks, and memoized powers.
package numutil

import (
	"math/big"

	"github.com/avdva/radixmath/fixedint"
	mu "github.com/avdva/radixmath/internal/mathutil"
)

// DigitLengthBounds returns lower and upper bounds of the number of radix digits in |m|.
// For radix 2, and for decimal values under 33 bits, the bounds are equal.
func DigitLengthBounds(radix int, m *big.Int) (lower, upper int64) {
	if m.IsUint64() {
		d := int64(mu.Digits(m.Uint64(), radix))
		return d, d
	}
	bl := int64(m.BitLen())
	switch radix {
	case 2:
		return bl, bl
	case 10:
		switch {
		case bl < 33:
			d := int64(mu.DecimalDigits(new(big.Int).Abs(m).Uint64()))
			return d, d
		case bl <= 2135:
			est := 1 + ((bl * 631305) >> 21)
			return est - 1, est
		default:
			return bl * 100 / 335, bl / 3
		}
	}
	d := DigitLength(radix, m)
	return d, d
}

// DigitLength returns the number of radix digits in |m|. Zero has one digit.
func DigitLength(radix int, m *big.Int) int64 {
	if m.IsUint64() {
		return int64(mu.Digits(m.Uint64(), radix))
	}
	abs := new(big.Int).Abs(m)
	if abs.IsUint64() {
		return int64(mu.Digits(abs.Uint64(), radix))
	}
	if radix == 2 {
		return int64(abs.BitLen())
	}
	var d int64
	if radix == 10 {
		lower, upper := DigitLengthBounds(10, abs)
		if lower == upper {
			return lower
		}
		// digits(2^(bl-1)) is either the answer, or one less.
		d = int64(float64(abs.BitLen()-1)*0.30102999566398120) + 1
		if d < lower {
			d = lower
		}
		if d > upper {
			d = upper
		}
	} else {
		d = 1
	}
	for d > 1 && abs.Cmp(FindPowerOfRadix(radix, fixedint.FromInt64(d-1))) < 0 {
		d--
	}
	for abs.Cmp(FindPowerOfRadix(radix, fixedint.FromInt64(d))) >= 0 {
		d++
	}
	return d
}

// ExceedsDigits reports whether |m| has more than precision radix digits.
// The exact digit count is computed only if the bounds are inconclusive.
func ExceedsDigits(radix int, m *big.Int, precision int64) bool {
	lower, upper := DigitLengthBounds(radix, m)
	switch {
	case upper <= precision:
		return false
	case lower > precision:
		return true
	}
	return DigitLength(radix, m) > precision
}

// BitsToDigits returns a number of radix digits, which always holds 'bits' bits.
func BitsToDigits(radix int, bits int64) int64 {
	switch radix {
	case 2:
		return bits
	case 10:
		return bits*30103/100000 + 1
	}
	per := int64(mu.BinaryDigits(uint64(radix) - 1))
	return bits/per + 1
}

// ReduceTrailingZeros removes trailing radix zeros from mant, incrementing exp by one for each.
// If minDigits is positive, the mantissa is not reduced below minDigits digits.
// If idealExp is not nil, the exponent is not increased beyond it.
// mant is not modified.
func ReduceTrailingZeros(mant *big.Int, exp *fixedint.Int, radix int, minDigits int64, idealExp *fixedint.Int) (*big.Int, *fixedint.Int) {
	if mant.Sign() == 0 {
		return new(big.Int), exp
	}
	limit := int64(-1) // no limit
	if idealExp != nil {
		d := idealExp.Sub(exp)
		if d.Sign() <= 0 {
			return new(big.Int).Set(mant), exp
		}
		if v, ok := d.Int64(); ok {
			limit = v
		}
	}
	if minDigits > 0 {
		d := DigitLength(radix, mant) - minDigits
		if d <= 0 {
			return new(big.Int).Set(mant), exp
		}
		if limit < 0 || d < limit {
			limit = d
		}
	}
	if radix == 2 {
		tz := int64(mant.TrailingZeroBits())
		if limit >= 0 && tz > limit {
			tz = limit
		}
		return new(big.Int).Rsh(mant, uint(tz)), exp.AddInt64(tz)
	}
	if mant.IsUint64() {
		eMax := int64(1<<62 - 1)
		if limit >= 0 {
			eMax = limit
		}
		m, e := mu.TrimZeros(mant.Uint64(), 0, eMax, radix)
		return new(big.Int).SetUint64(m), exp.AddInt64(e)
	}
	r := big.NewInt(int64(radix))
	cur := new(big.Int).Set(mant)
	q, rem := new(big.Int), new(big.Int)
	var removed int64
	for limit < 0 || removed < limit {
		q.QuoRem(cur, r, rem)
		if rem.Sign() != 0 {
			break
		}
		cur, q = q, cur
		removed++
	}
	return cur, exp.AddInt64(removed)
}

// DivisionShift determines, whether n/den has a terminating radix expansion for any n.
// If it does, it returns such shift, that den divides radix^shift.
func DivisionShift(radix int, den *big.Int) (*fixedint.Int, bool) {
	if den.Sign() == 0 {
		return nil, false
	}
	abs := new(big.Int).Abs(den)
	if radix == 2 {
		tz := abs.TrailingZeroBits()
		if int(tz)+1 != abs.BitLen() {
			return nil, false
		}
		return fixedint.FromInt64(int64(tz)), true
	}
	var shift int64
	rest := abs
	for _, f := range primeFactors(radix) {
		count := countFactor(rest, f.prime)
		if need := (count + f.count - 1) / f.count; need > shift {
			shift = need
		}
	}
	if rest.Cmp(big.NewInt(1)) != 0 {
		return nil, false
	}
	return fixedint.FromInt64(shift), true
}

type primeFactor struct {
	prime int64
	count int64
}

func primeFactors(n int) []primeFactor {
	var result []primeFactor
	v := int64(n)
	for p := int64(2); p*p <= v; p++ {
		if v%p != 0 {
			continue
		}
		f := primeFactor{prime: p}
		for v%p == 0 {
			v /= p
			f.count++
		}
		result = append(result, f)
	}
	if v > 1 {
		result = append(result, primeFactor{prime: v, count: 1})
	}
	return result
}

// countFactor divides v by p while possible, and returns the number of divisions. v is modified.
func countFactor(v *big.Int, p int64) int64 {
	if p == 2 {
		tz := v.TrailingZeroBits()
		v.Rsh(v, tz)
		return int64(tz)
	}
	bp := big.NewInt(p)
	q, rem := new(big.Int), new(big.Int)
	var count int64
	for {
		q.QuoRem(v, bp, rem)
		if rem.Sign() != 0 {
			return count
		}
		v.Set(q)
		count++
	}
}
