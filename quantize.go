// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"math/big"

	"github.com/avdva/radixmath/fixedint"
	"github.com/avdva/radixmath/numutil"
)

type exponentMode uint8

const (
	// result must have the target exponent and fit the precision.
	exponentQuantize exponentMode = iota
	// result is Invalid, if it is inexact.
	exponentExact
	// exponents larger than the target are kept.
	exponentSimple
	// as exponentSimple, but only Inexact results get the Rounded flag.
	exponentNoRoundedFlag
)

func (e *Engine[T]) roundToPrecision(v value, c *Context, fl *Flags) value {
	if r, ok := e.propagateNaN(c, fl, v); ok {
		return r
	}
	return e.roundValue(v, c, fl)
}

// plus rounds v. Negative zero becomes positive, unless rounding is Floor.
func (e *Engine[T]) plus(v value, c *Context, fl *Flags) value {
	r := e.roundToPrecision(v, c, fl)
	if r.isZero() && r.neg && c.Rounding() != Floor {
		r.neg = false
	}
	return r
}

func (e *Engine[T]) abs(v value, c *Context, fl *Flags) value {
	if r, ok := e.propagateNaN(c, fl, v); ok {
		return r
	}
	return e.roundValue(v.withSign(false), c, fl)
}

func (e *Engine[T]) negateValue(v value, c *Context, fl *Flags) value {
	if r, ok := e.propagateNaN(c, fl, v); ok {
		return r
	}
	return e.roundValue(v.negate(), c, fl)
}

// quantize returns a with the exponent of b.
func (e *Engine[T]) quantize(a, b value, c *Context, fl *Flags) value {
	if r, ok := e.propagateNaN(c, fl, a, b); ok {
		return r
	}
	if a.isInf() || b.isInf() {
		if a.isInf() && b.isInf() {
			return a
		}
		return e.invalid(fl)
	}
	return e.toExponent(a, b.exp, c, fl, exponentQuantize)
}

func (e *Engine[T]) roundToExponent(v value, target *fixedint.Int, c *Context, fl *Flags, mode exponentMode) value {
	if r, ok := e.propagateNaN(c, fl, v); ok {
		return r
	}
	if v.isInf() {
		return v
	}
	return e.toExponent(v, target, c, fl, mode)
}

// targetInRange checks, if a result with the target exponent can be represented.
func (e *Engine[T]) targetInRange(target *fixedint.Int, c *Context, p int64) bool {
	if !c.HasExponentRange() {
		return true
	}
	if p == 0 {
		return target.Cmp(c.eMax) <= 0
	}
	eMinAdj, eMaxAdj := c.adjustedRange(p)
	top := eMaxAdj
	if c.clamp {
		top = eMaxAdj.SubInt64(p - 1)
	}
	return target.Cmp(eMinAdj.SubInt64(p-1)) >= 0 && target.Cmp(top) <= 0
}

// toExponent rescales a finite v to the target exponent.
func (e *Engine[T]) toExponent(v value, target *fixedint.Int, c *Context, fl *Flags, mode exponentMode) value {
	p := c.digits(e.radix)
	bits := c.bitPrecision(e.radix)
	if mode == exponentSimple || mode == exponentNoRoundedFlag {
		if v.exp.Cmp(target) >= 0 {
			return e.round(v, c, fl, 0, 0)
		}
		var local Flags
		r := e.rescale(v, target, c, &local)
		if mode == exponentNoRoundedFlag && local&Inexact == 0 {
			local &^= Rounded
		}
		*fl |= local
		if r.isNaN() {
			return r
		}
		return e.round(r, c, fl, 0, 0)
	}
	if !e.targetInRange(target, c, p) {
		return e.invalid(fl)
	}
	if v.isZero() {
		return zeroValue(v.neg, target)
	}
	if d := v.exp.Sub(target); d.Sign() >= 0 {
		if p > 0 && e.adjustedExp(v).Sub(target).CmpInt64(p) >= 0 {
			return e.invalid(fl)
		}
		return e.markSubnormal(finite(v.neg, e.scaleUp(v.mant, d), target), c, p, false, fl)
	}
	var local Flags
	r := e.rescale(v, target, c, &local)
	if r.isNaN() {
		*fl |= local
		return r
	}
	if mode == exponentExact && local&Inexact != 0 {
		return e.invalid(fl)
	}
	*fl |= local
	if p > 0 && !e.fits(r.mant, p, bits) {
		return e.invalid(fl)
	}
	return e.markSubnormal(r, c, p, local&Inexact != 0, fl)
}

// rescale shifts a finite v right to the target exponent, which must be greater than v's exponent,
// rounding the result.
func (e *Engine[T]) rescale(v value, target *fixedint.Int, c *Context, fl *Flags) value {
	acc := e.h.ShiftAccumulator(v.mant, 0, 0)
	acc.ShiftRight(target.Sub(v.exp))
	mant := acc.ShiftedInt()
	last, older := acc.LastDiscardedDigit(), acc.OlderDiscardedDigits()
	if last != 0 || older != 0 {
		rounding := c.Rounding()
		if rounding == None {
			return e.invalid(fl)
		}
		lastKept := int(new(big.Int).Mod(mant, big.NewInt(int64(e.radix))).Int64())
		if rounding.increment(e.radix, v.neg, last, older, lastKept) {
			mant.Add(mant, big.NewInt(1))
		}
		*fl |= Inexact
	}
	if v.mant.Sign() != 0 {
		*fl |= Rounded
	}
	return finite(v.neg, mant, target)
}

// markSubnormal sets Subnormal for non-zero results below the normal range.
func (e *Engine[T]) markSubnormal(v value, c *Context, p int64, inexact bool, fl *Flags) value {
	if p == 0 || !c.HasExponentRange() || v.mant.Sign() == 0 {
		return v
	}
	eMinAdj, _ := c.adjustedRange(p)
	if e.adjustedExp(v).Cmp(eMinAdj) < 0 {
		*fl |= Subnormal
		if inexact {
			*fl |= Underflow
		}
	}
	return v
}

// reduce rounds v and removes all trailing zeros from its mantissa. Zeros get the exponent 0.
func (e *Engine[T]) reduce(v value, c *Context, fl *Flags) value {
	return e.reduceTo(v, c, fl, nil, nil)
}

// reduceTo rounds v to precision (if not nil), then removes trailing zeros
// without raising the exponent above idealExp (if not nil).
func (e *Engine[T]) reduceTo(v value, c *Context, fl *Flags, precision *big.Int, idealExp *fixedint.Int) value {
	if r, ok := e.propagateNaN(c, fl, v); ok {
		return r
	}
	if v.isInf() {
		return v
	}
	rc := c
	if precision != nil {
		var err error
		if rc, err = c.WithBigPrecision(precision); err != nil {
			return e.invalid(fl)
		}
	}
	r := e.round(v, rc, fl, 0, 0)
	if r.isNaN() || r.isInf() {
		return r
	}
	if r.isZero() {
		exp := fixedint.Zero
		if idealExp != nil {
			exp = fixedint.Max(r.exp, idealExp)
		}
		return e.round(zeroValue(r.neg, exp), c, fl, 0, 0)
	}
	mant, exp := numutil.ReduceTrailingZeros(r.mant, r.exp, e.radix, 0, idealExp)
	return e.round(finite(r.neg, mant, exp), c, fl, 0, 0)
}

// hasLimits checks the context for operations, which need precision and an exponent range.
func (e *Engine[T]) hasLimits(c *Context) (p int64, ok bool) {
	if !c.HasMaxPrecision() || !c.HasExponentRange() {
		return 0, false
	}
	return c.digits(e.radix), true
}

// maxFinite returns the largest finite number of the context.
func (e *Engine[T]) maxFinite(neg bool, c *Context, p int64) value {
	_, eMaxAdj := c.adjustedRange(p)
	mant, digits := e.maxMantissa(p, c.bitPrecision(e.radix))
	return finite(neg, mant, eMaxAdj.SubInt64(digits-1))
}

// next returns the closest representable number above (up) or below v.
func (e *Engine[T]) next(v value, c *Context, fl *Flags, up bool) value {
	if r, ok := e.propagateNaN(c, fl, v); ok {
		return r
	}
	p, ok := e.hasLimits(c)
	if !ok {
		return e.invalid(fl)
	}
	if v.isInf() {
		if v.neg == up {
			return e.maxFinite(v.neg, c, p)
		}
		return v
	}
	eMinAdj, _ := c.adjustedRange(p)
	tiny := finite(!up, big.NewInt(1), eMinAdj.SubInt64(p))
	rounding := Floor
	if up {
		rounding = Ceiling
	}
	var ignored Flags
	return e.add(v, tiny, c.WithRounding(rounding).WithNoFlags(), &ignored)
}

func (e *Engine[T]) nextToward(v, w value, c *Context, fl *Flags) value {
	if r, ok := e.propagateNaN(c, fl, v, w); ok {
		return r
	}
	p, ok := e.hasLimits(c)
	if !ok {
		return e.invalid(fl)
	}
	cmp := e.compareValues(v, w)
	if cmp == 0 {
		return v.withSign(w.neg)
	}
	r := e.next(v, c, fl, cmp < 0)
	switch {
	case r.isInf():
		*fl |= Overflow | Inexact | Rounded
	case r.isZero():
		*fl |= Underflow | Subnormal | Inexact | Rounded | Clamped
	default:
		if eMinAdj, _ := c.adjustedRange(p); e.adjustedExp(r).Cmp(eMinAdj) < 0 {
			*fl |= Underflow | Subnormal | Inexact | Rounded
		}
	}
	return r
}
