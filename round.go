// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"math/big"

	"github.com/avdva/radixmath/fixedint"
	mu "github.com/avdva/radixmath/internal/mathutil"
	"github.com/avdva/radixmath/numutil"
)

// bitPrecision returns the precision in bits, if it is counted in bits for a non-binary radix.
func (c *Context) bitPrecision(radix int) int64 {
	if !c.IsPrecisionInBits() || radix == 2 {
		return 0
	}
	p, _ := c.precision.Int64()
	return p
}

// roundValue rounds any value to the context.
func (e *Engine[T]) roundValue(v value, c *Context, fl *Flags) value {
	switch v.kind {
	case kindFinite:
		return e.round(v, c, fl, 0, 0)
	case kindInfinity:
		return v
	default:
		return e.quietNaN(v, c)
	}
}

// fits reports whether mant has no more digits (or bits) than allowed.
func (e *Engine[T]) fits(mant *big.Int, p, bits int64) bool {
	if bits > 0 {
		return int64(mant.BitLen()) <= bits
	}
	return p == 0 || !numutil.ExceedsDigits(e.radix, mant, p)
}

// round rounds a finite v to the context's precision and exponent range.
// last and older describe digits already discarded from v's mantissa:
// last is the most significant of them, older is non-zero if any other one is non-zero.
func (e *Engine[T]) round(v value, c *Context, fl *Flags, last, older int) value {
	if r, ok := e.roundKept(v, c, fl, last, older); ok {
		return r
	}
	p := c.digits(e.radix)
	bits := c.bitPrecision(e.radix)
	hasRange := c.HasExponentRange()
	if !hasRange && last == 0 && older == 0 && e.fits(v.mant, p, bits) {
		return v
	}
	rounding := c.Rounding()
	if rounding == None && (last != 0 || older != 0) {
		return e.invalid(fl)
	}

	acc := e.h.ShiftAccumulator(v.mant, last, older)
	var eMinAdj, eMaxAdj, etiny *fixedint.Int
	subnormal := false
	if hasRange && p > 0 {
		eMinAdj, eMaxAdj = c.adjustedRange(p)
		etiny = eMinAdj.SubInt64(p - 1)
		var adj *fixedint.Int
		switch {
		case v.mant.Sign() != 0:
			adj = v.exp.Add(acc.DigitLength()).Decrement()
		case last != 0 || older != 0:
			adj = v.exp.Decrement()
		}
		subnormal = adj != nil && adj.Cmp(eMinAdj) < 0
	}
	switch {
	case subnormal:
		acc.ShiftRight(etiny.Sub(v.exp))
	case bits > 0:
		e.shiftToBits(acc, bits)
	case p > 0:
		acc.ShiftToDigits(fixedint.FromInt64(p), nil)
	}

	exp := v.exp.Add(acc.DiscardedDigitCount())
	mant := acc.ShiftedInt()
	last, older = acc.LastDiscardedDigit(), acc.OlderDiscardedDigits()
	inexact := last != 0 || older != 0
	if inexact && rounding == None {
		return e.invalid(fl)
	}
	if inexact {
		lastKept := int(new(big.Int).Mod(mant, big.NewInt(int64(e.radix))).Int64())
		if rounding.increment(e.radix, v.neg, last, older, lastKept) {
			mant.Add(mant, big.NewInt(1))
			if !subnormal && !e.fits(mant, p, bits) {
				carry := e.h.ShiftAccumulator(mant, 0, 0)
				carry.ShiftRightInt(1)
				mant = carry.ShiftedInt()
				exp = exp.Increment()
			}
		}
		*fl |= Inexact | Rounded
	} else if acc.DiscardedDigitCount().Sign() > 0 {
		*fl |= Rounded
	}
	if subnormal {
		*fl |= Subnormal
		if inexact {
			*fl |= Underflow
			if mant.Sign() == 0 {
				*fl |= Clamped
			}
		}
	}
	if !hasRange {
		return finite(v.neg, mant, exp)
	}

	if mant.Sign() == 0 {
		return finite(v.neg, mant, e.clampZeroExponent(exp, c, p, eMaxAdj, etiny, fl))
	}
	if p == 0 {
		top := exp
		if c.adjustExponent {
			top = exp.AddInt64(e.digitLength(mant) - 1)
		}
		if top.Cmp(c.eMax) > 0 {
			return e.overflow(v.neg, c, fl, p, bits, eMaxAdj)
		}
		return finite(v.neg, mant, exp)
	}
	digits := e.digitLength(mant)
	if exp.AddInt64(digits-1).Cmp(eMaxAdj) > 0 {
		return e.overflow(v.neg, c, fl, p, bits, eMaxAdj)
	}
	if c.clamp {
		if top := eMaxAdj.SubInt64(p - 1); exp.Cmp(top) > 0 {
			mant = e.scaleUp(mant, exp.Sub(top))
			exp = top
			*fl |= Clamped
		}
	}
	return finite(v.neg, mant, exp)
}

// roundKept rounds v without an accumulator, when its mantissa already fits the precision
// and its exponent is within the range: only last and older decide the increment.
// It returns false, if v needs the full rounding.
func (e *Engine[T]) roundKept(v value, c *Context, fl *Flags, last, older int) (value, bool) {
	p := c.digits(e.radix)
	if p == 0 || c.bitPrecision(e.radix) > 0 || v.mant.Sign() == 0 || !e.fits(v.mant, p, 0) {
		return value{}, false
	}
	if c.HasExponentRange() {
		eMinAdj, eMaxAdj := c.adjustedRange(p)
		adj := v.exp.AddInt64(e.digitLength(v.mant) - 1)
		if adj.Cmp(eMinAdj) < 0 || adj.Cmp(eMaxAdj) > 0 {
			return value{}, false
		}
		if c.clamp && v.exp.Cmp(eMaxAdj.SubInt64(p-1)) > 0 {
			return value{}, false
		}
	}
	if last == 0 && older == 0 {
		return v, true
	}
	rounding := c.Rounding()
	if rounding == None {
		return e.invalid(fl), true
	}
	mant := v.mant
	lastKept := int(new(big.Int).Mod(mant, big.NewInt(int64(e.radix))).Int64())
	if rounding.increment(e.radix, v.neg, last, older, lastKept) {
		mant = new(big.Int).Add(mant, big.NewInt(1))
		if !e.fits(mant, p, 0) {
			// the carry needs a shift.
			return value{}, false
		}
	}
	*fl |= Inexact | Rounded
	return finite(v.neg, mant, v.exp), true
}

func (e *Engine[T]) clampZeroExponent(exp *fixedint.Int, c *Context, p int64, eMaxAdj, etiny *fixedint.Int, fl *Flags) *fixedint.Int {
	top := c.eMax
	if p > 0 {
		top = eMaxAdj
		if c.clamp {
			top = eMaxAdj.SubInt64(p - 1)
		}
	}
	if exp.Cmp(top) > 0 {
		*fl |= Clamped
		return top
	}
	if p > 0 && exp.Cmp(etiny) < 0 {
		*fl |= Clamped
		return etiny
	}
	return exp
}

// overflow returns the result of an overflowing operation: infinity, or the largest finite number.
func (e *Engine[T]) overflow(neg bool, c *Context, fl *Flags, p, bits int64, eMaxAdj *fixedint.Int) value {
	if c.Rounding() == None {
		return e.invalid(fl)
	}
	*fl |= Overflow | Inexact | Rounded
	if p > 0 && c.Rounding().overflowsToMax(e.radix, neg) {
		mant, digits := e.maxMantissa(p, bits)
		return finite(neg, mant, eMaxAdj.SubInt64(digits-1))
	}
	return infValue(neg)
}

// maxMantissa returns the largest mantissa allowed by the precision, and its number of digits.
func (e *Engine[T]) maxMantissa(p, bits int64) (*big.Int, int64) {
	one := big.NewInt(1)
	if bits > 0 {
		m := new(big.Int).Sub(new(big.Int).Lsh(one, uint(bits)), one)
		return m, e.digitLength(m)
	}
	return new(big.Int).Sub(e.radixPower(fixedint.FromInt64(p)), one), p
}

// shiftToBits discards digits from acc, until its mantissa fits 'bits' bits.
func (e *Engine[T]) shiftToBits(acc ShiftAccumulator, bits int64) {
	perDigit := int64(mu.BinaryDigits(uint64(e.radix) - 1))
	for {
		bl := int64(acc.ShiftedInt().BitLen())
		if bl <= bits {
			return
		}
		var d int64
		if e.radix == 10 {
			d = (bl - bits - 1) * 30103 / 100000
		} else {
			d = (bl - bits - 1) / perDigit
		}
		if d < 1 {
			d = 1
		}
		acc.ShiftRight(fixedint.FromInt64(d))
	}
}
