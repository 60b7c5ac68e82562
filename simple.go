// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

type execFunc func(vs []value, c *Context, fl *Flags) value

// NewSimplifiedEngine returns an engine implementing the simplified arithmetic:
// operands are rounded to the context's precision before the operation,
// NaN and infinite operands are Invalid, and zero results are never negative.
func NewSimplifiedEngine[T any](h Helper[T]) *Engine[T] {
	e := NewEngine(h)
	e.simplified = true
	return e
}

// exec runs f on operands vs.
func (e *Engine[T]) exec(op string, ctx *Context, vs []value, f execFunc) (T, error) {
	if !e.simplified {
		return e.run(op, ctx, func(c *Context, fl *Flags) value {
			return f(vs, c, fl)
		})
	}
	return e.run(op, ctx, func(c *Context, fl *Flags) value {
		return e.simplify(vs, c, fl, f)
	})
}

func (e *Engine[T]) simplify(vs []value, c *Context, fl *Flags, f execFunc) value {
	rounded := make([]value, len(vs))
	for i, v := range vs {
		if !v.isFinite() {
			return e.invalid(fl)
		}
		rounded[i] = e.preRound(v, c, fl)
	}
	r := f(rounded, c, fl)
	if r.isZero() && r.neg {
		r.neg = false
	}
	return r
}

// preRound rounds an operand to the precision, if it has too many digits.
// Dropping non-zero digits signals LostDigits.
func (e *Engine[T]) preRound(v value, c *Context, fl *Flags) value {
	p := c.digits(e.radix)
	if p == 0 || e.fits(v.mant, p, c.bitPrecision(e.radix)) {
		return v
	}
	var local Flags
	r := e.round(v, c.WithUnlimitedExponents(), &local, 0, 0)
	if local&Inexact != 0 {
		*fl |= LostDigits
	} else {
		*fl |= local & Rounded
	}
	return r
}
