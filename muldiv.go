// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"math/big"

	"github.com/avdva/radixmath/fixedint"
	"github.com/avdva/radixmath/numutil"
)

// product returns the exact product of finite a and b.
func product(a, b value) value {
	return finite(a.neg != b.neg, new(big.Int).Mul(a.mant, b.mant), a.exp.Add(b.exp))
}

func (e *Engine[T]) multiply(a, b value, c *Context, fl *Flags) value {
	if r, ok := e.propagateNaN(c, fl, a, b); ok {
		return r
	}
	if a.isInf() || b.isInf() {
		if a.isZero() || b.isZero() {
			return e.invalid(fl)
		}
		return infValue(a.neg != b.neg)
	}
	return e.round(product(a, b), c, fl, 0, 0)
}

// multiplyAndAdd returns a*b+d with a single rounding.
func (e *Engine[T]) multiplyAndAdd(a, b, d value, c *Context, fl *Flags) value {
	if r, ok := e.propagateNaN(c, fl, a, b, d); ok {
		return r
	}
	var p value
	if a.isInf() || b.isInf() {
		if a.isZero() || b.isZero() {
			return e.invalid(fl)
		}
		p = infValue(a.neg != b.neg)
	} else {
		p = product(a, b)
	}
	return e.add(p, d, c, fl)
}

// divideSpecial handles non-finite operands and zero divisors, common for all kinds of division.
func (e *Engine[T]) divideSpecial(a, b value, c *Context, fl *Flags) (value, bool) {
	if r, ok := e.propagateNaN(c, fl, a, b); ok {
		return r, true
	}
	neg := a.neg != b.neg
	switch {
	case a.isInf():
		if b.isInf() {
			return e.invalid(fl), true
		}
		return infValue(neg), true
	case b.isInf():
		return e.divideByInfinity(neg, c, fl), true
	case b.isZero():
		if a.isZero() {
			return e.invalid(fl), true
		}
		*fl |= DivideByZero
		return infValue(neg), true
	}
	return value{}, false
}

// divideByInfinity returns zero with the smallest exponent allowed by the context.
func (e *Engine[T]) divideByInfinity(neg bool, c *Context, fl *Flags) value {
	if !c.HasExponentRange() {
		return zeroValue(neg, fixedint.Zero)
	}
	*fl |= Clamped
	p := c.digits(e.radix)
	if p == 0 {
		return zeroValue(neg, c.eMin)
	}
	eMinAdj, _ := c.adjustedRange(p)
	return zeroValue(neg, eMinAdj.SubInt64(p-1))
}

// fraction returns the first radix digit of rem/den, and whether any digits after it are non-zero.
func (e *Engine[T]) fraction(rem, den *big.Int) (last, older int) {
	if rem.Sign() == 0 {
		return 0, 0
	}
	t := new(big.Int).Mul(rem, big.NewInt(int64(e.radix)))
	r := new(big.Int)
	t.QuoRem(t, den, r)
	if r.Sign() != 0 {
		older = 1
	}
	return int(t.Int64()), older
}

func (e *Engine[T]) divide(a, b value, c *Context, fl *Flags) value {
	if r, ok := e.divideSpecial(a, b, c, fl); ok {
		return r
	}
	neg := a.neg != b.neg
	ideal := a.exp.Sub(b.exp)
	if a.isZero() {
		return e.round(zeroValue(neg, ideal), c, fl, 0, 0)
	}
	if p := c.digits(e.radix); p > 0 {
		return e.divideRounded(a, b, neg, ideal, c, fl, p)
	}
	return e.divideExact(a, b, neg, ideal, c, fl)
}

// divideExact divides with unlimited precision. Non-terminating quotients are Invalid.
func (e *Engine[T]) divideExact(a, b value, neg bool, ideal *fixedint.Int, c *Context, fl *Flags) value {
	g := new(big.Int).GCD(nil, nil, a.mant, b.mant)
	num := new(big.Int).Quo(a.mant, g)
	den := new(big.Int).Quo(b.mant, g)
	shift, ok := e.h.DivisionShift(num, den)
	if !ok {
		log().Debug().Str("op", "divide").Msg("non-terminating quotient with unlimited precision")
		return e.invalid(fl)
	}
	q := new(big.Int).Quo(e.radixPower(shift), den)
	q.Mul(q, num)
	mant, exp := numutil.ReduceTrailingZeros(q, ideal.Sub(shift), e.radix, 0, ideal)
	return e.round(finite(neg, mant, exp), c, fl, 0, 0)
}

// divideRounded computes at least p+1 digits of the quotient, using the remainder for rounding.
// Exact quotients get the exponent closest to the ideal one.
func (e *Engine[T]) divideRounded(a, b value, neg bool, ideal *fixedint.Int, c *Context, fl *Flags, p int64) value {
	k := p + 1 + e.digitLength(b.mant) - e.digitLength(a.mant)
	if k < 0 {
		k = 0
	}
	kk := fixedint.FromInt64(k)
	q, rem := new(big.Int).QuoRem(e.scaleUp(a.mant, kk), b.mant, new(big.Int))
	exp := ideal.Sub(kk)
	if rem.Sign() == 0 {
		mant, exp := numutil.ReduceTrailingZeros(q, exp, e.radix, 0, ideal)
		return e.round(finite(neg, mant, exp), c, fl, 0, 0)
	}
	last, older := e.fraction(rem, b.mant)
	return e.round(finite(neg, q, exp), c, fl, last, older)
}

// divideToExponent returns a/b with the given exponent, rounded by the context's rounding mode.
func (e *Engine[T]) divideToExponent(a, b value, target *fixedint.Int, c *Context, fl *Flags) value {
	if r, ok := e.divideSpecial(a, b, c, fl); ok {
		if r.isZero() {
			r.exp = target
		}
		return r
	}
	if c.HasExponentRange() && !c.ExponentWithinRange(target.Big()) {
		return e.invalid(fl)
	}
	neg := a.neg != b.neg
	num, den := a.mant, b.mant
	switch s := a.exp.Sub(b.exp).Sub(target); s.Sign() {
	case 1:
		num = e.scaleUp(num, s)
	case -1:
		den = e.scaleUp(den, s.Neg())
	}
	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	last, older := e.fraction(rem, den)
	if last != 0 || older != 0 {
		rounding := c.Rounding()
		if rounding == None {
			return e.invalid(fl)
		}
		lastKept := int(new(big.Int).Mod(q, big.NewInt(int64(e.radix))).Int64())
		if rounding.increment(e.radix, neg, last, older, lastKept) {
			q.Add(q, big.NewInt(1))
		}
		*fl |= Inexact | Rounded
	}
	if p := c.digits(e.radix); p > 0 && !e.fits(q, p, c.bitPrecision(e.radix)) {
		return e.invalid(fl)
	}
	return finite(neg, q, target)
}

// integerQuotient returns the truncated quotient of |a|/|b| for non-zero finite values.
// It returns false, if the quotient has more than p digits.
func (e *Engine[T]) integerQuotient(a, b value, p int64) (*big.Int, bool) {
	d := e.adjustedExp(a).Sub(e.adjustedExp(b))
	if d.Sign() < 0 {
		return new(big.Int), true
	}
	if p > 0 && d.CmpInt64(p) > 0 {
		return nil, false
	}
	ma, mb, _ := e.align(a, b)
	q := new(big.Int).Quo(ma, mb)
	if p > 0 && numutil.ExceedsDigits(e.radix, q, p) {
		return nil, false
	}
	return q, true
}

// divideToIntegerNaturalScale returns the integer part of a/b, with the exponent
// as close as possible to the ideal one.
func (e *Engine[T]) divideToIntegerNaturalScale(a, b value, c *Context, fl *Flags) value {
	if r, ok := e.divideSpecial(a, b, c, fl); ok {
		return r
	}
	neg := a.neg != b.neg
	ideal := a.exp.Sub(b.exp)
	if a.isZero() {
		return e.round(zeroValue(neg, ideal), c, fl, 0, 0)
	}
	p := c.digits(e.radix)
	q, ok := e.integerQuotient(a, b, p)
	if !ok {
		return e.invalid(fl)
	}
	if q.Sign() == 0 {
		return e.round(zeroValue(neg, ideal), c, fl, 0, 0)
	}
	exp := fixedint.Zero
	switch ideal.Sign() {
	case 1:
		q, exp = numutil.ReduceTrailingZeros(q, exp, e.radix, 0, ideal)
	case -1:
		k := ideal.Neg()
		if p > 0 {
			k = fixedint.Min(k, fixedint.FromInt64(p-e.digitLength(q)))
		}
		if k.Sign() > 0 {
			q = e.scaleUp(q, k)
			exp = k.Neg()
		}
	}
	return e.round(finite(neg, q, exp), c, fl, 0, 0)
}

// divideToIntegerZeroScale returns the integer part of a/b with the exponent 0.
func (e *Engine[T]) divideToIntegerZeroScale(a, b value, c *Context, fl *Flags) value {
	if r, ok := e.divideSpecial(a, b, c, fl); ok {
		return r
	}
	neg := a.neg != b.neg
	if a.isZero() {
		return e.round(zeroValue(neg, fixedint.Zero), c, fl, 0, 0)
	}
	q, ok := e.integerQuotient(a, b, c.digits(e.radix))
	if !ok {
		return e.invalid(fl)
	}
	return e.round(finite(neg, q, fixedint.Zero), c, fl, 0, 0)
}

// remainder returns a - b*n, where n is the integer part of a/b (near=false),
// or a/b rounded half-even (near=true).
func (e *Engine[T]) remainder(a, b value, c *Context, fl *Flags, near bool) value {
	if r, ok := e.propagateNaN(c, fl, a, b); ok {
		return r
	}
	switch {
	case a.isInf(), b.isZero():
		return e.invalid(fl)
	case b.isInf():
		return e.round(a, c, fl, 0, 0)
	case a.isZero():
		return e.round(zeroValue(a.neg, fixedint.Min(a.exp, b.exp)), c, fl, 0, 0)
	}
	p := c.digits(e.radix)
	if p > 0 && e.adjustedExp(a).Sub(e.adjustedExp(b)).CmpInt64(p) > 0 {
		return e.invalid(fl)
	}
	ma, mb, exp := e.align(a, b)
	q, r := new(big.Int).QuoRem(ma, mb, new(big.Int))
	neg := a.neg
	if near {
		twice := new(big.Int).Lsh(r, 1)
		if cmp := twice.Cmp(mb); cmp > 0 || (cmp == 0 && q.Bit(0) == 1) {
			q.Add(q, big.NewInt(1))
			r.Sub(mb, r)
			neg = !neg
		}
	}
	if p > 0 && numutil.ExceedsDigits(e.radix, q, p) {
		return e.invalid(fl)
	}
	if r.Sign() == 0 {
		neg = a.neg
	}
	return e.round(finite(neg, r, exp), c, fl, 0, 0)
}
