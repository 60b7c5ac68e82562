// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"math"

	mu "github.com/avdva/radixmath/internal/mathutil"
	"github.com/avdva/radixmath/numutil"
)

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareValues compares the numeric values of a and b, which must not be NaNs.
// Zeros compare equal regardless of their signs.
func (e *Engine[T]) compareValues(a, b value) int {
	if a.isInf() {
		switch {
		case b.isInf() && a.neg == b.neg:
			return 0
		case a.neg:
			return -1
		default:
			return 1
		}
	}
	if b.isInf() {
		if b.neg {
			return 1
		}
		return -1
	}
	sa, sb := a.sign(), b.sign()
	if sa != sb {
		return cmpInt(sa, sb)
	}
	if sa == 0 {
		return 0
	}
	r := e.compareMagnitude(a, b)
	if a.neg {
		return -r
	}
	return r
}

// compareMagnitude compares |a| and |b| for non-zero finite values.
func (e *Engine[T]) compareMagnitude(a, b value) int {
	if r, ok := e.compareSmall(a, b); ok {
		return r
	}
	// try to decide by adjusted exponents, using cheap bounds first.
	la, ua := numutil.DigitLengthBounds(e.radix, a.mant)
	lb, ub := numutil.DigitLengthBounds(e.radix, b.mant)
	switch {
	case a.exp.AddInt64(ua).Cmp(b.exp.AddInt64(lb)) < 0:
		return -1
	case a.exp.AddInt64(la).Cmp(b.exp.AddInt64(ub)) > 0:
		return 1
	}
	if r := e.adjustedExp(a).Cmp(e.adjustedExp(b)); r != 0 {
		return r
	}
	ma, mb, _ := e.align(a, b)
	return ma.Cmp(mb)
}

func (e *Engine[T]) compareSmall(a, b value) (int, bool) {
	if !a.mant.IsUint64() || !b.mant.IsUint64() {
		return 0, false
	}
	ea, ok := a.exp.Int64()
	if !ok {
		return 0, false
	}
	eb, ok := b.exp.Int64()
	if !ok {
		return 0, false
	}
	ma, mb := a.mant.Uint64(), b.mant.Uint64()
	d, ok := mu.SubInt64(ea, eb)
	if !ok || d > math.MaxInt32 || d < -math.MaxInt32 {
		return 0, false
	}
	switch {
	case d > 0:
		if ma, ok = mu.ScaleUp(ma, e.radix, int(d)); !ok {
			return 1, true
		}
	case d < 0:
		if mb, ok = mu.ScaleUp(mb, e.radix, int(-d)); !ok {
			return -1, true
		}
	}
	return mu.CmpUint64(ma, mb), true
}

// compareTo orders values numerically. NaNs are greater than anything else, and equal to each other.
func (e *Engine[T]) compareTo(a, b value) int {
	switch {
	case a.isNaN() && b.isNaN():
		return 0
	case a.isNaN():
		return 1
	case b.isNaN():
		return -1
	}
	return e.compareValues(a, b)
}

func totalRank(v value) int {
	switch v.kind {
	case kindInfinity:
		return 1
	case kindSignalingNaN:
		return 2
	case kindQuietNaN:
		return 3
	default:
		return 0
	}
}

// compareTotal implements the total order: negative numbers (and NaNs with the sign set) come first,
// then for positive values, finite < infinity < sNaN < NaN. Equal finite values are ordered by exponent.
func (e *Engine[T]) compareTotal(a, b value, magnitude bool) int {
	if magnitude {
		a.neg, b.neg = false, false
	}
	if a.neg != b.neg {
		if a.neg {
			return -1
		}
		return 1
	}
	r := e.compareTotalPositive(a, b)
	if a.neg {
		return -r
	}
	return r
}

func (e *Engine[T]) compareTotalPositive(a, b value) int {
	ra, rb := totalRank(a), totalRank(b)
	if ra != rb {
		return cmpInt(ra, rb)
	}
	switch a.kind {
	case kindInfinity:
		return 0
	case kindQuietNaN, kindSignalingNaN:
		return a.mant.Cmp(b.mant)
	}
	a.neg, b.neg = false, false
	if r := e.compareValues(a, b); r != 0 {
		return r
	}
	return a.exp.Cmp(b.exp)
}

// compareWithContext compares a and b, producing -1, 0, 1, or NaN.
func (e *Engine[T]) compareWithContext(a, b value, c *Context, fl *Flags, signaling bool) value {
	if signaling && (a.kind == kindQuietNaN || b.kind == kindQuietNaN) {
		*fl |= Invalid
	}
	if r, ok := e.propagateNaN(c, fl, a, b); ok {
		return r
	}
	return intValue(int64(e.compareValues(a, b)))
}

// minMax implements Min, Max, MinMagnitude and MaxMagnitude.
// A quiet NaN loses to a number; ties are broken by the total order.
func (e *Engine[T]) minMax(a, b value, c *Context, fl *Flags, isMax, magnitude bool) value {
	if a.kind == kindSignalingNaN || b.kind == kindSignalingNaN || (a.isNaN() && b.isNaN()) {
		r, _ := e.propagateNaN(c, fl, a, b)
		return r
	}
	switch {
	case a.isNaN():
		return e.roundValue(b, c, fl)
	case b.isNaN():
		return e.roundValue(a, c, fl)
	}
	var r int
	if magnitude {
		r = e.compareValues(a.withSign(false), b.withSign(false))
	}
	if r == 0 {
		r = e.compareValues(a, b)
	}
	if r == 0 {
		r = e.compareTotal(a, b, false)
	}
	pick := a
	if (isMax && r < 0) || (!isMax && r > 0) {
		pick = b
	}
	return e.roundValue(pick, c, fl)
}
