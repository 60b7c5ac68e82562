// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"math/big"

	"github.com/avdva/radixmath/fixedint"
)

type (
	unaryFunc  func(v value, c *Context, fl *Flags) value
	binaryFunc func(a, b value, c *Context, fl *Flags) value
)

func (e *Engine[T]) unary(op string, x T, ctx *Context, f unaryFunc) (T, error) {
	return e.exec(op, ctx, []value{e.load(x)}, func(vs []value, c *Context, fl *Flags) value {
		return f(vs[0], c, fl)
	})
}

func (e *Engine[T]) binary(op string, x, y T, ctx *Context, f binaryFunc) (T, error) {
	return e.exec(op, ctx, []value{e.load(x), e.load(y)}, func(vs []value, c *Context, fl *Flags) value {
		return f(vs[0], vs[1], c, fl)
	})
}

func fixedOrNil(v *big.Int) *fixedint.Int {
	if v == nil {
		return nil
	}
	return fixedint.FromBig(v)
}

// Add returns x+y.
func (e *Engine[T]) Add(x, y T, ctx *Context) (T, error) {
	return e.binary("add", x, y, ctx, e.add)
}

// Subtract returns x-y.
func (e *Engine[T]) Subtract(x, y T, ctx *Context) (T, error) {
	return e.binary("subtract", x, y, ctx, e.subtract)
}

// AddEx returns x+y. If roundToOperandPrecision is set, operands are rounded to the
// context's precision first.
func (e *Engine[T]) AddEx(x, y T, ctx *Context, roundToOperandPrecision bool) (T, error) {
	return e.binary("add", x, y, ctx, func(a, b value, c *Context, fl *Flags) value {
		return e.addEx(a, b, c, fl, roundToOperandPrecision)
	})
}

// Multiply returns x*y.
func (e *Engine[T]) Multiply(x, y T, ctx *Context) (T, error) {
	return e.binary("multiply", x, y, ctx, e.multiply)
}

// MultiplyAndAdd returns x*y+z, rounded once.
func (e *Engine[T]) MultiplyAndAdd(x, y, z T, ctx *Context) (T, error) {
	return e.exec("multiply-add", ctx, []value{e.load(x), e.load(y), e.load(z)}, func(vs []value, c *Context, fl *Flags) value {
		return e.multiplyAndAdd(vs[0], vs[1], vs[2], c, fl)
	})
}

// Divide returns x/y.
// With unlimited precision, quotients without a terminating expansion signal Invalid.
func (e *Engine[T]) Divide(x, y T, ctx *Context) (T, error) {
	return e.binary("divide", x, y, ctx, e.divide)
}

// DivideToExponent returns x/y with the given exponent.
func (e *Engine[T]) DivideToExponent(x, y T, exp *big.Int, ctx *Context) (T, error) {
	target := fixedint.FromBig(exp)
	return e.binary("divide-to-exponent", x, y, ctx, func(a, b value, c *Context, fl *Flags) value {
		return e.divideToExponent(a, b, target, c, fl)
	})
}

// DivideToIntegerNaturalScale returns the integer part of x/y.
// Its exponent is as close as possible to x's exponent minus y's exponent.
func (e *Engine[T]) DivideToIntegerNaturalScale(x, y T, ctx *Context) (T, error) {
	return e.binary("divide-integer", x, y, ctx, e.divideToIntegerNaturalScale)
}

// DivideToIntegerZeroScale returns the integer part of x/y with exponent 0.
func (e *Engine[T]) DivideToIntegerZeroScale(x, y T, ctx *Context) (T, error) {
	return e.binary("divide-integer", x, y, ctx, e.divideToIntegerZeroScale)
}

// Remainder returns x - y*n, where n is the integer part of x/y.
func (e *Engine[T]) Remainder(x, y T, ctx *Context) (T, error) {
	return e.binary("remainder", x, y, ctx, func(a, b value, c *Context, fl *Flags) value {
		return e.remainder(a, b, c, fl, false)
	})
}

// RemainderNear returns x - y*n, where n is x/y rounded to the nearest integer, ties to even.
func (e *Engine[T]) RemainderNear(x, y T, ctx *Context) (T, error) {
	return e.binary("remainder-near", x, y, ctx, func(a, b value, c *Context, fl *Flags) value {
		return e.remainder(a, b, c, fl, true)
	})
}

// Quantize returns x with the exponent of y.
func (e *Engine[T]) Quantize(x, y T, ctx *Context) (T, error) {
	return e.binary("quantize", x, y, ctx, e.quantize)
}

func (e *Engine[T]) roundToExponentOp(op string, x T, exp *big.Int, ctx *Context, mode exponentMode) (T, error) {
	target := fixedint.FromBig(exp)
	return e.unary(op, x, ctx, func(v value, c *Context, fl *Flags) value {
		return e.roundToExponent(v, target, c, fl, mode)
	})
}

// RoundToExponentExact returns x with the given exponent. Inexact results signal Invalid.
func (e *Engine[T]) RoundToExponentExact(x T, exp *big.Int, ctx *Context) (T, error) {
	return e.roundToExponentOp("round-to-exponent-exact", x, exp, ctx, exponentExact)
}

// RoundToExponentSimple rounds x to the given exponent, if its exponent is smaller,
// and then to the context's precision.
func (e *Engine[T]) RoundToExponentSimple(x T, exp *big.Int, ctx *Context) (T, error) {
	return e.roundToExponentOp("round-to-exponent", x, exp, ctx, exponentSimple)
}

// RoundToExponentNoRoundedFlag is like RoundToExponentSimple, but signals Rounded only for inexact results.
func (e *Engine[T]) RoundToExponentNoRoundedFlag(x T, exp *big.Int, ctx *Context) (T, error) {
	return e.roundToExponentOp("round-to-exponent", x, exp, ctx, exponentNoRoundedFlag)
}

// Reduce rounds x and removes trailing zeros from its mantissa.
func (e *Engine[T]) Reduce(x T, ctx *Context) (T, error) {
	return e.unary("reduce", x, ctx, e.reduce)
}

// ReduceToPrecisionAndIdealExponent rounds x to precision and removes trailing zeros,
// while the exponent does not exceed idealExp. Nil arguments mean no limit.
func (e *Engine[T]) ReduceToPrecisionAndIdealExponent(x T, ctx *Context, precision, idealExp *big.Int) (T, error) {
	ideal := fixedOrNil(idealExp)
	return e.unary("reduce", x, ctx, func(v value, c *Context, fl *Flags) value {
		return e.reduceTo(v, c, fl, precision, ideal)
	})
}

// RoundToPrecision rounds x to the context.
func (e *Engine[T]) RoundToPrecision(x T, ctx *Context) (T, error) {
	return e.unary("round", x, ctx, e.roundToPrecision)
}

// Plus returns 0+x.
func (e *Engine[T]) Plus(x T, ctx *Context) (T, error) {
	return e.unary("plus", x, ctx, e.plus)
}

// Abs returns |x|, rounded.
func (e *Engine[T]) Abs(x T, ctx *Context) (T, error) {
	return e.unary("abs", x, ctx, e.abs)
}

// Negate returns -x, rounded.
func (e *Engine[T]) Negate(x T, ctx *Context) (T, error) {
	return e.unary("negate", x, ctx, e.negateValue)
}

// NextPlus returns the smallest representable number larger than x.
// The context must have limited precision and exponent range.
func (e *Engine[T]) NextPlus(x T, ctx *Context) (T, error) {
	return e.unary("next-plus", x, ctx, func(v value, c *Context, fl *Flags) value {
		return e.next(v, c, fl, true)
	})
}

// NextMinus returns the largest representable number smaller than x.
func (e *Engine[T]) NextMinus(x T, ctx *Context) (T, error) {
	return e.unary("next-minus", x, ctx, func(v value, c *Context, fl *Flags) value {
		return e.next(v, c, fl, false)
	})
}

// NextToward returns the representable number closest to x in the direction of y.
func (e *Engine[T]) NextToward(x, y T, ctx *Context) (T, error) {
	return e.binary("next-toward", x, y, ctx, e.nextToward)
}

// Power returns x^y.
func (e *Engine[T]) Power(x, y T, ctx *Context) (T, error) {
	return e.binary("power", x, y, ctx, e.power)
}

// Exp returns e^x.
func (e *Engine[T]) Exp(x T, ctx *Context) (T, error) {
	return e.unary("exp", x, ctx, e.exp)
}

// Ln returns the natural logarithm of x.
func (e *Engine[T]) Ln(x T, ctx *Context) (T, error) {
	return e.unary("ln", x, ctx, e.ln)
}

// Log10 returns the base 10 logarithm of x.
func (e *Engine[T]) Log10(x T, ctx *Context) (T, error) {
	return e.unary("log10", x, ctx, e.log10)
}

// SquareRoot returns the square root of x.
func (e *Engine[T]) SquareRoot(x T, ctx *Context) (T, error) {
	return e.unary("square-root", x, ctx, e.squareRoot)
}

// Pi returns π rounded to the context.
func (e *Engine[T]) Pi(ctx *Context) (T, error) {
	return e.exec("pi", ctx, nil, func(_ []value, c *Context, fl *Flags) value {
		return e.pi(c, fl)
	})
}

// Min returns the smaller of x and y. A quiet NaN operand is ignored.
func (e *Engine[T]) Min(x, y T, ctx *Context) (T, error) {
	return e.binary("min", x, y, ctx, func(a, b value, c *Context, fl *Flags) value {
		return e.minMax(a, b, c, fl, false, false)
	})
}

// Max returns the larger of x and y. A quiet NaN operand is ignored.
func (e *Engine[T]) Max(x, y T, ctx *Context) (T, error) {
	return e.binary("max", x, y, ctx, func(a, b value, c *Context, fl *Flags) value {
		return e.minMax(a, b, c, fl, true, false)
	})
}

// MinMagnitude returns the operand with the smaller absolute value.
func (e *Engine[T]) MinMagnitude(x, y T, ctx *Context) (T, error) {
	return e.binary("min-magnitude", x, y, ctx, func(a, b value, c *Context, fl *Flags) value {
		return e.minMax(a, b, c, fl, false, true)
	})
}

// MaxMagnitude returns the operand with the larger absolute value.
func (e *Engine[T]) MaxMagnitude(x, y T, ctx *Context) (T, error) {
	return e.binary("max-magnitude", x, y, ctx, func(a, b value, c *Context, fl *Flags) value {
		return e.minMax(a, b, c, fl, true, true)
	})
}

// CompareTo compares x and y numerically. NaNs are greater than any other value and equal to each other.
func (e *Engine[T]) CompareTo(x, y T) int {
	return e.compareTo(e.load(x), e.load(y))
}

// CompareToWithContext returns -1, 0, or 1 as a number, or NaN if any operand is NaN.
// Signaling NaNs, and quiet NaNs if treatQuietNaNsAsSignaling is set, signal Invalid.
func (e *Engine[T]) CompareToWithContext(x, y T, treatQuietNaNsAsSignaling bool, ctx *Context) (T, error) {
	return e.binary("compare", x, y, ctx, func(a, b value, c *Context, fl *Flags) value {
		return e.compareWithContext(a, b, c, fl, treatQuietNaNsAsSignaling)
	})
}

// CompareTotal compares x and y using the total order.
func (e *Engine[T]) CompareTotal(x, y T) int {
	return e.compareTotal(e.load(x), e.load(y), false)
}

// CompareTotalMagnitude compares absolute values of x and y using the total order.
func (e *Engine[T]) CompareTotalMagnitude(x, y T) int {
	return e.compareTotal(e.load(x), e.load(y), true)
}
