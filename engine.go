// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"math/big"

	"github.com/avdva/radixmath/fixedint"
	"github.com/avdva/radixmath/numutil"
)

// Engine implements arithmetic operations for numbers of type T.
// All operations return new numbers and never modify their arguments.
//
// Operations signal conditions by adding flags to the context (if it has flags).
// If a signaled condition is in the context's traps, the operation returns a *TrapSignal[T] error
// together with the result.
type Engine[T any] struct {
	h          Helper[T]
	radix      int
	simplified bool
}

// NewEngine returns an engine for the number type served by h.
func NewEngine[T any](h Helper[T]) *Engine[T] {
	return &Engine[T]{h: h, radix: h.Radix()}
}

// Helper returns the helper of the engine.
func (e *Engine[T]) Helper() Helper[T] {
	return e.h
}

type opFunc func(c *Context, fl *Flags) value

func (e *Engine[T]) load(x T) value {
	return fromFlags(e.h.Flags(x), e.h.Mantissa(x), e.h.FixedExponent(x))
}

func (e *Engine[T]) store(v value) T {
	if v.mant.IsInt64() {
		return e.h.NewFixed(fixedint.FromInt64(v.mant.Int64()), v.exp, v.flags())
	}
	return e.h.New(v.mant, v.exp.Big(), v.flags())
}

// run executes f and delivers its flags to ctx.
func (e *Engine[T]) run(op string, ctx *Context, f opFunc) (T, error) {
	var fl Flags
	v := e.guard(op, ctx, &fl, f)
	return e.settle(op, ctx, v, fl)
}

// guard turns capacity guard panics into Invalid.
func (e *Engine[T]) guard(op string, ctx *Context, fl *Flags, f opFunc) (v value) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err, ok := r.(error)
		if !ok || !numutil.ErrTooMuchMemory.Has(err) {
			panic(r)
		}
		log().Debug().Str("op", op).Err(err).Msg("capacity guard")
		*fl |= Invalid
		v = nanValue(false, nil)
	}()
	return f(ctx, fl)
}

func (e *Engine[T]) settle(op string, ctx *Context, v value, fl Flags) (res T, err error) {
	if !v.isFinite() && e.h.ArithmeticSupport() == SupportFinite {
		return res, ErrUnsupported.New("%s: %s result with flags %s", op, v.kind, fl)
	}
	res = e.store(v)
	if fl == 0 {
		return res, nil
	}
	trapped := fl & ctx.Traps()
	ctx.addFlags(fl &^ trapped)
	if trapped == 0 {
		return res, nil
	}
	sig := &TrapSignal[T]{
		Flag:    trapped.highest(),
		Flags:   trapped,
		Context: ctx.copy(),
		Result:  res,
	}
	log().Debug().Str("op", op).Stringer("flags", trapped).Msg("trap")
	return res, sig
}

// propagateNaN returns the result for operations with NaN operands.
// Signaling NaNs take precedence over quiet ones, then the leftmost one wins.
func (e *Engine[T]) propagateNaN(c *Context, fl *Flags, vs ...value) (value, bool) {
	for _, v := range vs {
		if v.kind == kindSignalingNaN {
			*fl |= Invalid
			return e.quietNaN(v, c), true
		}
	}
	for _, v := range vs {
		if v.kind == kindQuietNaN {
			return e.quietNaN(v, c), true
		}
	}
	return value{}, false
}

// quietNaN returns a quiet NaN with v's sign and payload, cut to fit the precision.
func (e *Engine[T]) quietNaN(v value, c *Context) value {
	payload := v.mant
	if p := c.digits(e.radix); p > 0 && payload.Sign() != 0 {
		if c.ClampNormalExponents() {
			p--
		}
		if p <= 0 {
			payload = new(big.Int)
		} else if numutil.ExceedsDigits(e.radix, payload, p) {
			payload = new(big.Int).Mod(payload, numutil.FindPowerOfRadix(e.radix, fixedint.FromInt64(p)))
		}
	}
	return nanValue(v.neg, payload)
}

func (e *Engine[T]) invalid(fl *Flags) value {
	*fl |= Invalid
	return nanValue(false, nil)
}

func (e *Engine[T]) digitLength(m *big.Int) int64 {
	return numutil.DigitLength(e.radix, m)
}

// scaleUp returns m*radix^n, n >= 0.
func (e *Engine[T]) scaleUp(m *big.Int, n *fixedint.Int) *big.Int {
	return e.h.MultiplyByRadixPower(m, n)
}

func (e *Engine[T]) radixPower(n *fixedint.Int) *big.Int {
	return numutil.FindPowerOfRadix(e.radix, n)
}

// align returns mantissas of a and b scaled to the smaller of their exponents.
func (e *Engine[T]) align(a, b value) (ma, mb *big.Int, exp *fixedint.Int) {
	switch d := a.exp.Sub(b.exp); d.Sign() {
	case 0:
		return a.mant, b.mant, a.exp
	case 1:
		return e.scaleUp(a.mant, d), b.mant, b.exp
	default:
		return a.mant, e.scaleUp(b.mant, d.Neg()), a.exp
	}
}

// adjustedExp returns exp+digits-1.
func (e *Engine[T]) adjustedExp(v value) *fixedint.Int {
	if v.mant.Sign() == 0 {
		return v.exp
	}
	return v.exp.AddInt64(e.digitLength(v.mant) - 1)
}

// isInteger reports whether a finite v has an integral value.
func (e *Engine[T]) isInteger(v value) bool {
	if v.exp.Sign() >= 0 || v.mant.Sign() == 0 {
		return true
	}
	neg := v.exp.Neg()
	if n, ok := neg.Int64(); !ok || n > e.digitLength(v.mant) {
		return false
	}
	r := new(big.Int).Mod(v.mant, e.radixPower(neg))
	return r.Sign() == 0
}

// integerPart returns the truncated integer value of a finite v as a signed big.Int.
func (e *Engine[T]) integerPart(v value) *big.Int {
	var r *big.Int
	if v.exp.Sign() >= 0 {
		r = e.scaleUp(v.mant, v.exp)
	} else {
		neg := v.exp.Neg()
		if n, ok := neg.Int64(); !ok || n > e.digitLength(v.mant) {
			return new(big.Int)
		}
		r = new(big.Int).Quo(v.mant, e.radixPower(neg))
	}
	if v.neg {
		r.Neg(r)
	}
	return r
}
