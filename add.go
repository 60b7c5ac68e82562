// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"math"
	"math/big"

	"github.com/avdva/radixmath/fixedint"
	mu "github.com/avdva/radixmath/internal/mathutil"
)

func (e *Engine[T]) add(a, b value, c *Context, fl *Flags) value {
	return e.addEx(a, b, c, fl, false)
}

func (e *Engine[T]) subtract(a, b value, c *Context, fl *Flags) value {
	if !b.isNaN() {
		b = b.negate()
	}
	return e.addEx(a, b, c, fl, false)
}

// addEx adds a and b. If roundToOperandPrecision is set, operands are first rounded to the precision.
func (e *Engine[T]) addEx(a, b value, c *Context, fl *Flags, roundToOperandPrecision bool) value {
	if r, ok := e.propagateNaN(c, fl, a, b); ok {
		return r
	}
	if a.isInf() {
		if b.isInf() && a.neg != b.neg {
			return e.invalid(fl)
		}
		return a
	}
	if b.isInf() {
		return b
	}
	if roundToOperandPrecision && c.HasMaxPrecision() {
		opCtx := c.WithUnlimitedExponents()
		a = e.round(a, opCtx, fl, 0, 0)
		b = e.round(b, opCtx, fl, 0, 0)
	}
	if r, ok := e.addSmall32(a, b, c, fl); ok {
		return r
	}
	if r, ok := e.addSmall(a, b, c, fl); ok {
		return r
	}
	return e.addBig(a, b, c, fl)
}

// zeroSumIsNegative returns the sign of an exact zero sum of a and b.
func zeroSumIsNegative(a, b value, c *Context) bool {
	if a.neg == b.neg {
		return a.neg
	}
	return c.Rounding() == Floor
}

// addSmall32 adds numbers with equal exponents and 32-bit mantissas. Their sum always fits 64 bits.
func (e *Engine[T]) addSmall32(a, b value, c *Context, fl *Flags) (value, bool) {
	if a.mant.BitLen() > 32 || b.mant.BitLen() > 32 || a.exp.Cmp(b.exp) != 0 {
		return value{}, false
	}
	sa, sb := int64(a.mant.Uint64()), int64(b.mant.Uint64())
	if a.neg {
		sa = -sa
	}
	if b.neg {
		sb = -sb
	}
	sum := sa + sb
	neg := sum < 0
	if sum == 0 {
		neg = zeroSumIsNegative(a, b, c)
	}
	return e.round(finite(neg, big.NewInt(mu.AbsInt64(sum)), a.exp), c, fl, 0, 0), true
}

// addSmall adds numbers, which fit 64 bits after exponent alignment.
func (e *Engine[T]) addSmall(a, b value, c *Context, fl *Flags) (value, bool) {
	if !a.mant.IsInt64() || !b.mant.IsInt64() {
		return value{}, false
	}
	ea, ok := a.exp.Int64()
	if !ok {
		return value{}, false
	}
	eb, ok := b.exp.Int64()
	if !ok {
		return value{}, false
	}
	d, ok := mu.SubInt64(ea, eb)
	if !ok || d > math.MaxInt32 || d < -math.MaxInt32 {
		return value{}, false
	}
	ma, mb := uint64(a.mant.Int64()), uint64(b.mant.Int64())
	exp := ea
	if d > 0 {
		if ma, ok = mu.ScaleUp(ma, e.radix, int(d)); !ok {
			return value{}, false
		}
		exp = eb
	} else if d < 0 {
		if mb, ok = mu.ScaleUp(mb, e.radix, int(-d)); !ok {
			return value{}, false
		}
	}
	if ma > math.MaxInt64 || mb > math.MaxInt64 {
		return value{}, false
	}
	sa, sb := int64(ma), int64(mb)
	if a.neg {
		sa = -sa
	}
	if b.neg {
		sb = -sb
	}
	sum, ok := mu.AddInt64(sa, sb)
	if !ok {
		return value{}, false
	}
	neg := sum < 0
	if sum == 0 {
		neg = zeroSumIsNegative(a, b, c)
	}
	return e.round(finite(neg, big.NewInt(mu.AbsInt64(sum)), fixedint.FromInt64(exp)), c, fl, 0, 0), true
}

func (e *Engine[T]) addBig(a, b value, c *Context, fl *Flags) value {
	if p := c.digits(e.radix); p > 0 {
		if r, ok := e.addFarApart(a, b, c, fl, p); ok {
			return r
		}
	}
	ma, mb, exp := e.align(a, b)
	neg := a.neg
	var sum *big.Int
	if a.neg == b.neg {
		sum = new(big.Int).Add(ma, mb)
	} else if ma.Cmp(mb) >= 0 {
		sum = new(big.Int).Sub(ma, mb)
	} else {
		sum = new(big.Int).Sub(mb, ma)
		neg = b.neg
	}
	if sum.Sign() == 0 {
		neg = zeroSumIsNegative(a, b, c)
	}
	return e.round(finite(neg, sum, exp), c, fl, 0, 0)
}

// addFarApart handles operands, whose exponents differ so much, that the smaller one
// only affects rounding of the larger one.
func (e *Engine[T]) addFarApart(a, b value, c *Context, fl *Flags, p int64) (value, bool) {
	switch {
	case a.isZero() && b.isZero():
		if a.exp.Sub(b.exp).Abs().CmpInt64(p+2) <= 0 {
			return value{}, false
		}
		return e.round(zeroValue(zeroSumIsNegative(a, b, c), fixedint.Min(a.exp, b.exp)), c, fl, 0, 0), true
	case a.isZero():
		return e.addZero(b, a, c, fl, p)
	case b.isZero():
		return e.addZero(a, b, c, fl, p)
	}
	hi, lo := a, b
	if e.adjustedExp(b).Cmp(e.adjustedExp(a)) > 0 {
		hi, lo = b, a
	}
	hiMant, hiExp := hi.mant, hi.exp
	if digits := e.digitLength(hiMant); digits < p+2 {
		k := fixedint.FromInt64(p + 2 - digits)
		hiMant = e.scaleUp(hiMant, k)
		hiExp = hiExp.Sub(k)
	}
	if e.adjustedExp(lo).Cmp(hiExp.SubInt64(2)) >= 0 {
		return value{}, false
	}
	// lo is less than one unit at hiExp-2, so it is replaced by a sticky unit.
	m := e.scaleUp(hiMant, fixedint.FromInt64(2))
	if hi.neg == lo.neg {
		m.Add(m, big.NewInt(1))
	} else {
		m.Sub(m, big.NewInt(1))
	}
	return e.round(finite(hi.neg, m, hiExp.SubInt64(2)), c, fl, 0, 0), true
}

// addZero adds a zero to a non-zero number without scaling it by a huge power of the radix.
func (e *Engine[T]) addZero(nz, zero value, c *Context, fl *Flags, p int64) (value, bool) {
	d := nz.exp.Sub(zero.exp)
	if d.CmpInt64(p+2) <= 0 {
		return value{}, false
	}
	k := p + 1 - e.digitLength(nz.mant)
	if k < 0 {
		k = 0
	}
	kk := fixedint.FromInt64(k)
	return e.round(finite(nz.neg, e.scaleUp(nz.mant, kk), nz.exp.Sub(kk)), c, fl, 0, 0), true
}
