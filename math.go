// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"math"
	"math/big"

	"github.com/avdva/radixmath/fixedint"
	"github.com/avdva/radixmath/numutil"
)

const (
	// decimalGuardDigits is the number of extra digits used by iterative computations in radix 10.
	decimalGuardDigits = 18
	// guardBits is the number of extra bits used by iterative computations in other radices.
	guardBits = 60
	// maxVacillations is the number of times an approximation may change the direction of its
	// movement before the iteration is stopped.
	maxVacillations = 3
	// maxSquarings limits argument reduction in exp.
	maxSquarings = 1 << 16
)

// working performs intermediate arithmetic with a fixed number of digits and without exponent limits.
type working[T any] struct {
	e  *Engine[T]
	c  *Context
	fl Flags
}

func (e *Engine[T]) guardDigits() int64 {
	if e.radix == 10 {
		return decimalGuardDigits
	}
	return numutil.BitsToDigits(e.radix, guardBits)
}

func (e *Engine[T]) newWorking(digits int64) *working[T] {
	return &working[T]{
		e: e,
		c: &Context{precision: fixedint.FromInt64(digits), rounding: HalfEven, adjustExponent: true},
	}
}

func (w *working[T]) add(a, b value) value { return w.e.add(a, b, w.c, &w.fl) }
func (w *working[T]) sub(a, b value) value { return w.e.subtract(a, b, w.c, &w.fl) }
func (w *working[T]) mul(a, b value) value { return w.e.multiply(a, b, w.c, &w.fl) }
func (w *working[T]) div(a, b value) value { return w.e.divide(a, b, w.c, &w.fl) }
func (w *working[T]) sqrt(a value) value   { return w.e.squareRoot(a, w.c, &w.fl) }

// convergence detects the end of an iteration: the approximation stops changing,
// or it starts vacillating around the result.
type convergence struct {
	op    string
	dir   int
	flips int
}

// done takes the result of comparing the new approximation with the previous one.
func (cv *convergence) done(cmp int) bool {
	if cmp == 0 {
		return true
	}
	if cv.dir != 0 && cmp != cv.dir {
		cv.flips++
		if cv.flips > maxVacillations {
			log().Debug().Str("op", cv.op).Int("flips", cv.flips).Msg("iteration stopped")
			return true
		}
	}
	cv.dir = cmp
	return false
}

// roundInexact rounds an approximation, which is known to differ from the exact result.
// The mantissa is padded, so that the result always gets full precision.
func (e *Engine[T]) roundInexact(v value, c *Context, fl *Flags) value {
	p := c.digits(e.radix)
	if d := p + 1 - e.digitLength(v.mant); d > 0 && v.mant.Sign() != 0 {
		k := fixedint.FromInt64(d)
		v = finite(v.neg, e.scaleUp(v.mant, k), v.exp.Sub(k))
	}
	return e.round(v, c, fl, 0, 1)
}

// rangeBound returns a magnitude of adjusted exponents, beyond which every result overflows or underflows.
func (e *Engine[T]) rangeBound(c *Context, p int64) *fixedint.Int {
	return fixedint.Max(c.eMax.Abs(), c.eMin.Abs()).AddInt64(p + 2).MulInt64(2)
}

// expBound returns a magnitude of exp arguments, beyond which every result overflows or underflows:
// (|e|+p+2)*ln(radix), with ln(radix) rounded up to thousandths.
func (e *Engine[T]) expBound(c *Context, p int64) *fixedint.Int {
	lnRadix := int64(math.Ceil(math.Log(float64(e.radix)) * 1000))
	return fixedint.Max(c.eMax.Abs(), c.eMin.Abs()).AddInt64(p + 2).MulInt64(lnRadix).FloorQuoInt64(1000).AddInt64(1)
}

// overflowed returns a value, which overflows the context when rounded.
func (e *Engine[T]) overflowed(neg bool, c *Context, p int64, fl *Flags) value {
	_, eMaxAdj := c.adjustedRange(p)
	return e.round(finite(neg, big.NewInt(1), eMaxAdj.AddInt64(1)), c, fl, 0, 0)
}

// underflowed returns a value, which underflows the context when rounded.
func (e *Engine[T]) underflowed(neg bool, c *Context, p int64, fl *Flags) value {
	eMinAdj, _ := c.adjustedRange(p)
	return e.round(finite(neg, big.NewInt(1), eMinAdj.SubInt64(p+1)), c, fl, 0, 0)
}

func (e *Engine[T]) one() value {
	return intValue(1)
}

func (e *Engine[T]) squareRoot(v value, c *Context, fl *Flags) value {
	if r, ok := e.propagateNaN(c, fl, v); ok {
		return r
	}
	if !c.HasMaxPrecision() {
		return e.invalid(fl)
	}
	switch {
	case v.isZero():
		return e.round(zeroValue(v.neg, v.exp.FloorQuoInt64(2)), c, fl, 0, 0)
	case v.neg:
		return e.invalid(fl)
	case v.isInf():
		return v
	}
	p := c.digits(e.radix)
	ideal := v.exp.FloorQuoInt64(2)
	k := 2*(p+2) - e.digitLength(v.mant)
	if k < 0 {
		k = 0
	}
	exp := v.exp.SubInt64(k)
	if exp.ModInt64(2) != 0 {
		k++
		exp = exp.Decrement()
	}
	m := e.scaleUp(v.mant, fixedint.FromInt64(k))
	s := new(big.Int).Sqrt(m)
	rexp := exp.FloorQuoInt64(2)
	if new(big.Int).Mul(s, s).Cmp(m) == 0 {
		mant, exp := numutil.ReduceTrailingZeros(s, rexp, e.radix, 0, ideal)
		return e.round(finite(false, mant, exp), c, fl, 0, 0)
	}
	return e.round(finite(false, s, rexp), c, fl, 0, 1)
}

func (e *Engine[T]) exp(v value, c *Context, fl *Flags) value {
	if r, ok := e.propagateNaN(c, fl, v); ok {
		return r
	}
	if !c.HasMaxPrecision() {
		return e.invalid(fl)
	}
	switch {
	case v.isInf():
		if v.neg {
			return zeroValue(false, fixedint.Zero)
		}
		return v
	case v.isZero():
		return e.round(e.one(), c, fl, 0, 0)
	}
	p := c.digits(e.radix)
	// exp(x) = 1+x+..., where x is too small to affect anything but the rounding.
	if e.adjustedExp(v).CmpInt64(-(p + 2)) < 0 {
		k := fixedint.FromInt64(p + 2)
		m := e.radixPower(k)
		if v.neg {
			m.Sub(m, big.NewInt(1))
		} else {
			m.Add(m, big.NewInt(1))
		}
		return e.round(finite(false, m, k.Neg()), c, fl, 0, 0)
	}
	if c.HasExponentRange() {
		bound := finite(false, e.expBound(c, p).Big(), fixedint.Zero)
		if e.compareValues(v.withSign(false), bound) > 0 {
			if v.neg {
				return e.underflowed(false, c, p, fl)
			}
			return e.overflowed(false, c, p, fl)
		}
	}
	r := e.expWorking(v, p)
	return e.roundInexact(r, c, fl)
}

// expWorking approximates exp(v) for a finite non-zero v with p+guard digits.
// The argument is reduced by a power of two, so that the series converges quickly,
// and the result is squared back.
func (e *Engine[T]) expWorking(v value, p int64) value {
	ax := v.withSign(false)
	k := int64(e.integerPart(ax).BitLen()) + 1
	if k > maxSquarings {
		panic(numutil.ErrTooMuchMemory.New("exp argument %s", ax.mant))
	}
	w := e.newWorking(p + e.guardDigits() + numutil.BitsToDigits(e.radix, k) + 2)
	y := w.div(ax, finite(false, new(big.Int).Lsh(big.NewInt(1), uint(k)), fixedint.Zero))
	sum, term := e.one(), e.one()
	cv := convergence{op: "exp"}
	for n := int64(1); ; n++ {
		term = w.div(w.mul(term, y), intValue(n))
		next := w.add(sum, term)
		if cv.done(e.compareValues(next, sum)) {
			break
		}
		sum = next
	}
	for i := int64(0); i < k; i++ {
		sum = w.mul(sum, sum)
	}
	if v.neg {
		sum = w.div(e.one(), sum)
	}
	return sum
}

func (e *Engine[T]) ln(v value, c *Context, fl *Flags) value {
	if r, ok := e.lnSpecial(v, c, fl); ok {
		return r
	}
	if e.compareValues(v, e.one()) == 0 {
		return e.round(zeroValue(false, fixedint.Zero), c, fl, 0, 0)
	}
	p := c.digits(e.radix)
	w := e.newWorking(p + e.guardDigits() + e.digitLength(e.adjustedExp(v).Abs().Big()))
	return e.roundInexact(w.ln(v), c, fl)
}

// lnSpecial handles arguments of logarithms, which are not finite positive numbers.
func (e *Engine[T]) lnSpecial(v value, c *Context, fl *Flags) (value, bool) {
	if r, ok := e.propagateNaN(c, fl, v); ok {
		return r, true
	}
	if !c.HasMaxPrecision() {
		return e.invalid(fl), true
	}
	switch {
	case v.isZero():
		return infValue(true), true
	case v.neg:
		return e.invalid(fl), true
	case v.isInf():
		return v, true
	}
	return value{}, false
}

// ln returns the logarithm of a positive finite v.
// v = m*radix^a, so ln(v) = ln(m) + a*ln(radix). Numbers close to 1 are not split.
func (w *working[T]) ln(v value) value {
	e := w.e
	a := e.adjustedExp(v)
	m := v
	if a.IsZero() || a.CmpInt64(-1) == 0 {
		a = fixedint.Zero
	} else {
		m = finite(false, v.mant, v.exp.Sub(a))
	}
	r := w.lnNear(m)
	if !a.IsZero() {
		r = w.add(r, w.mul(finite(a.Sign() < 0, a.Abs().Big(), fixedint.Zero), w.lnRadix()))
	}
	return r
}

// lnNear moves v into [0.75, 1.5) by halving or doubling it, and sums the series.
func (w *working[T]) lnNear(v value) value {
	two := intValue(2)
	hi := w.div(intValue(3), two)
	lo := w.div(hi, two)
	var j int64
	for w.e.compareValues(v, hi) >= 0 {
		v = w.div(v, two)
		j++
	}
	for w.e.compareValues(v, lo) < 0 {
		v = w.mul(v, two)
		j--
	}
	// ln(v) = 2*atanh((v-1)/(v+1))
	u := w.div(w.sub(v, w.e.one()), w.add(v, w.e.one()))
	r := w.mul(two, w.atanh(u))
	if j != 0 {
		r = w.add(r, w.mul(intValue(j), w.ln2()))
	}
	return r
}

// atanh sums u + u^3/3 + u^5/5 + ... for |u| < 1.
func (w *working[T]) atanh(u value) value {
	if u.isZero() {
		return u
	}
	u2 := w.mul(u, u)
	sum, pow := u, u
	cv := convergence{op: "ln"}
	for n := int64(3); ; n += 2 {
		pow = w.mul(pow, u2)
		next := w.add(sum, w.div(pow, intValue(n)))
		if cv.done(w.e.compareValues(next, sum)) {
			return sum
		}
		sum = next
	}
}

// ln2 returns 2*atanh(1/3).
func (w *working[T]) ln2() value {
	return w.mul(intValue(2), w.atanh(w.div(w.e.one(), intValue(3))))
}

func (w *working[T]) lnRadix() value {
	if w.e.radix == 2 {
		return w.ln2()
	}
	return w.lnNear(intValue(int64(w.e.radix)))
}

func (e *Engine[T]) log10(v value, c *Context, fl *Flags) value {
	if r, ok := e.lnSpecial(v, c, fl); ok {
		return r
	}
	if n, ok := e.powerOfTen(v); ok {
		return e.round(finite(n.Sign() < 0, n.Abs().Big(), fixedint.Zero), c, fl, 0, 0)
	}
	p := c.digits(e.radix)
	w := e.newWorking(p + e.guardDigits() + e.digitLength(e.adjustedExp(v).Abs().Big()))
	var ten value
	if e.radix == 10 {
		ten = w.lnRadix()
	} else {
		ten = w.lnNear(intValue(10))
	}
	return e.roundInexact(w.div(w.ln(v), ten), c, fl)
}

// powerOfTen returns n, if a positive v equals 10^n.
func (e *Engine[T]) powerOfTen(v value) (*fixedint.Int, bool) {
	mant, exp := numutil.ReduceTrailingZeros(v.mant, v.exp, e.radix, 0, nil)
	switch e.radix {
	case 10:
		return exp, mant.Cmp(big.NewInt(1)) == 0
	case 2:
		if exp.Sign() < 0 {
			return nil, false
		}
		return exp, mant.Cmp(numutil.FindPowerOfFiveFixed(exp)) == 0
	}
	return nil, false
}

func (e *Engine[T]) pi(c *Context, fl *Flags) value {
	if !c.HasMaxPrecision() {
		return e.invalid(fl)
	}
	p := c.digits(e.radix)
	w := e.newWorking(p + e.guardDigits())
	two := intValue(2)
	a := e.one()
	b := w.div(e.one(), w.sqrt(two))
	t := w.div(e.one(), intValue(4))
	x := e.one()
	cv := convergence{op: "pi"}
	for !cv.done(e.compareValues(a, b)) {
		an := w.div(w.add(a, b), two)
		if e.compareValues(an, a) == 0 {
			break
		}
		b = w.sqrt(w.mul(a, b))
		d := w.sub(a, an)
		t = w.sub(t, w.mul(x, w.mul(d, d)))
		x = w.mul(x, two)
		a = an
	}
	s := w.add(a, b)
	return e.roundInexact(w.div(w.mul(s, s), w.mul(intValue(4), t)), c, fl)
}

func (e *Engine[T]) isOddInteger(v value) bool {
	return v.isFinite() && e.isInteger(v) && e.integerPart(v).Bit(0) == 1
}

func (e *Engine[T]) power(x, y value, c *Context, fl *Flags) value {
	if r, ok := e.propagateNaN(c, fl, x, y); ok {
		return r
	}
	neg := x.neg && e.isOddInteger(y)
	switch {
	case y.isInf():
		return e.powerInfiniteExponent(x, y, c, fl)
	case x.isInf():
		if x.neg && !e.isInteger(y) {
			return e.invalid(fl)
		}
		switch y.sign() {
		case 0:
			return e.round(e.one(), c, fl, 0, 0)
		case 1:
			return infValue(neg)
		}
		return zeroValue(neg, fixedint.Zero)
	case y.isZero():
		if x.isZero() {
			return e.invalid(fl)
		}
		return e.round(e.one(), c, fl, 0, 0)
	case x.isZero():
		if y.neg {
			return infValue(neg)
		}
		return zeroValue(neg, fixedint.Zero)
	}
	if e.isInteger(y) {
		return e.integerPower(x, e.integerPart(y), c, fl)
	}
	if x.neg || !c.HasMaxPrecision() {
		return e.invalid(fl)
	}
	if e.compareValues(product(y, intValue(2)), e.one()) == 0 {
		return e.squareRoot(x, c, fl)
	}
	p := c.digits(e.radix)
	extra := e.adjustedExp(y).AddInt64(e.digitLength(e.adjustedExp(x).Abs().Big()) + 2)
	wp := p + e.guardDigits()
	if v, ok := extra.Int64(); ok && v > 0 {
		wp += v
	} else if !ok && extra.Sign() > 0 {
		panic(numutil.ErrTooMuchMemory.New("power exponent %s", y.mant))
	}
	w := e.newWorking(wp)
	t := w.mul(y, w.ln(x))
	return e.exp(t, c, fl)
}

// powerInfiniteExponent handles x^±Infinity.
func (e *Engine[T]) powerInfiniteExponent(x, y value, c *Context, fl *Flags) value {
	if x.neg && !x.isZero() {
		return e.invalid(fl)
	}
	switch cmp := e.compareValues(x.withSign(false), e.one()); {
	case cmp == 0:
		return e.roundInexact(e.one(), c, fl)
	case (cmp > 0) != y.neg:
		return infValue(false)
	default:
		return zeroValue(false, fixedint.Zero)
	}
}

// integerPower returns x^n for a finite non-zero x.
func (e *Engine[T]) integerPower(x value, n *big.Int, c *Context, fl *Flags) value {
	neg := x.neg && n.Bit(0) == 1
	ax := x.withSign(false)
	absN := new(big.Int).Abs(n)
	p := c.digits(e.radix)
	if p == 0 {
		digits := new(big.Int).Mul(big.NewInt(e.digitLength(ax.mant)), absN)
		if !digits.IsInt64() || digits.Int64() > numutil.MaxPowerDigits {
			panic(numutil.ErrTooMuchMemory.New("power of %d digits", digits))
		}
		r := finite(neg, new(big.Int).Exp(ax.mant, absN, nil), fixedint.FromBig(new(big.Int).Mul(ax.exp.Big(), absN)))
		if n.Sign() < 0 {
			return e.divide(e.one(), r, c, fl)
		}
		return e.round(r, c, fl, 0, 0)
	}
	w := e.newWorking(p + e.guardDigits() + e.digitLength(big.NewInt(int64(absN.BitLen()))))
	var bound *fixedint.Int
	if c.HasExponentRange() {
		bound = e.rangeBound(c, p)
	}
	r := e.one()
	for i := absN.BitLen() - 1; i >= 0; i-- {
		r = w.mul(r, r)
		if absN.Bit(i) == 1 {
			r = w.mul(r, ax)
		}
		if bound == nil {
			continue
		}
		adj := e.adjustedExp(r)
		if huge, tiny := adj.Cmp(bound) > 0, adj.Cmp(bound.Neg()) < 0; huge || tiny {
			if huge == (n.Sign() > 0) {
				return e.overflowed(neg, c, p, fl)
			}
			return e.underflowed(neg, c, p, fl)
		}
	}
	if n.Sign() < 0 {
		r = w.div(e.one(), r)
	}
	r.neg = neg
	if w.fl&Inexact != 0 {
		return e.roundInexact(r, c, fl)
	}
	return e.round(r, c, fl, 0, 0)
}
