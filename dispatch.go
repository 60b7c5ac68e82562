// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import "math/big"

// Arithmetic is the set of operations on numbers of type T.
type Arithmetic[T any] interface {
	Add(x, y T, ctx *Context) (T, error)
	Subtract(x, y T, ctx *Context) (T, error)
	AddEx(x, y T, ctx *Context, roundToOperandPrecision bool) (T, error)
	Multiply(x, y T, ctx *Context) (T, error)
	MultiplyAndAdd(x, y, z T, ctx *Context) (T, error)
	Divide(x, y T, ctx *Context) (T, error)
	DivideToExponent(x, y T, exp *big.Int, ctx *Context) (T, error)
	DivideToIntegerNaturalScale(x, y T, ctx *Context) (T, error)
	DivideToIntegerZeroScale(x, y T, ctx *Context) (T, error)
	Remainder(x, y T, ctx *Context) (T, error)
	RemainderNear(x, y T, ctx *Context) (T, error)
	Quantize(x, y T, ctx *Context) (T, error)
	RoundToExponentExact(x T, exp *big.Int, ctx *Context) (T, error)
	RoundToExponentSimple(x T, exp *big.Int, ctx *Context) (T, error)
	RoundToExponentNoRoundedFlag(x T, exp *big.Int, ctx *Context) (T, error)
	Reduce(x T, ctx *Context) (T, error)
	ReduceToPrecisionAndIdealExponent(x T, ctx *Context, precision, idealExp *big.Int) (T, error)
	RoundToPrecision(x T, ctx *Context) (T, error)
	Plus(x T, ctx *Context) (T, error)
	Abs(x T, ctx *Context) (T, error)
	Negate(x T, ctx *Context) (T, error)
	NextPlus(x T, ctx *Context) (T, error)
	NextMinus(x T, ctx *Context) (T, error)
	NextToward(x, y T, ctx *Context) (T, error)
	Power(x, y T, ctx *Context) (T, error)
	Exp(x T, ctx *Context) (T, error)
	Ln(x T, ctx *Context) (T, error)
	Log10(x T, ctx *Context) (T, error)
	SquareRoot(x T, ctx *Context) (T, error)
	Pi(ctx *Context) (T, error)
	Min(x, y T, ctx *Context) (T, error)
	Max(x, y T, ctx *Context) (T, error)
	MinMagnitude(x, y T, ctx *Context) (T, error)
	MaxMagnitude(x, y T, ctx *Context) (T, error)
	CompareTo(x, y T) int
	CompareToWithContext(x, y T, treatQuietNaNsAsSignaling bool, ctx *Context) (T, error)
	CompareTotal(x, y T) int
	CompareTotalMagnitude(x, y T) int
}

var (
	_ Arithmetic[int] = (*Engine[int])(nil)
	_ Arithmetic[int] = (*Dispatcher[int])(nil)
)

// Dispatcher routes operations to the simplified arithmetic, if the context is simplified,
// and to the extended one otherwise.
type Dispatcher[T any] struct {
	extended   *Engine[T]
	simplified *Engine[T]
}

// NewDispatcher returns a dispatcher for numbers served by h.
func NewDispatcher[T any](h Helper[T]) (*Dispatcher[T], error) {
	if h == nil {
		return nil, ErrInvalidArgument.New("nil helper")
	}
	return &Dispatcher[T]{
		extended:   NewEngine(h),
		simplified: NewSimplifiedEngine(h),
	}, nil
}

func (d *Dispatcher[T]) pick(ctx *Context) *Engine[T] {
	if ctx.IsSimplified() {
		return d.simplified
	}
	return d.extended
}

// Add returns x+y.
func (d *Dispatcher[T]) Add(x, y T, ctx *Context) (T, error) {
	return d.pick(ctx).Add(x, y, ctx)
}

// Subtract returns x-y.
func (d *Dispatcher[T]) Subtract(x, y T, ctx *Context) (T, error) {
	return d.pick(ctx).Subtract(x, y, ctx)
}

// AddEx returns x+y. If roundToOperandPrecision is set, operands are first rounded to the context's precision.
func (d *Dispatcher[T]) AddEx(x, y T, ctx *Context, roundToOperandPrecision bool) (T, error) {
	return d.pick(ctx).AddEx(x, y, ctx, roundToOperandPrecision)
}

// Multiply returns x*y.
func (d *Dispatcher[T]) Multiply(x, y T, ctx *Context) (T, error) {
	return d.pick(ctx).Multiply(x, y, ctx)
}

// MultiplyAndAdd returns x*y+z, rounded once.
func (d *Dispatcher[T]) MultiplyAndAdd(x, y, z T, ctx *Context) (T, error) {
	return d.pick(ctx).MultiplyAndAdd(x, y, z, ctx)
}

// Divide returns x/y.
func (d *Dispatcher[T]) Divide(x, y T, ctx *Context) (T, error) {
	return d.pick(ctx).Divide(x, y, ctx)
}

// DivideToExponent returns x/y with the given exponent.
func (d *Dispatcher[T]) DivideToExponent(x, y T, exp *big.Int, ctx *Context) (T, error) {
	return d.pick(ctx).DivideToExponent(x, y, exp, ctx)
}

// DivideToIntegerNaturalScale returns the integer part of x/y with the ideal exponent.
func (d *Dispatcher[T]) DivideToIntegerNaturalScale(x, y T, ctx *Context) (T, error) {
	return d.pick(ctx).DivideToIntegerNaturalScale(x, y, ctx)
}

// DivideToIntegerZeroScale returns the integer part of x/y with the exponent 0.
func (d *Dispatcher[T]) DivideToIntegerZeroScale(x, y T, ctx *Context) (T, error) {
	return d.pick(ctx).DivideToIntegerZeroScale(x, y, ctx)
}

// Remainder returns x-n*y, where n is x/y truncated to an integer.
func (d *Dispatcher[T]) Remainder(x, y T, ctx *Context) (T, error) {
	return d.pick(ctx).Remainder(x, y, ctx)
}

// RemainderNear returns x-n*y, where n is x/y rounded half-even to an integer.
func (d *Dispatcher[T]) RemainderNear(x, y T, ctx *Context) (T, error) {
	return d.pick(ctx).RemainderNear(x, y, ctx)
}

// Quantize returns x with the exponent of y.
func (d *Dispatcher[T]) Quantize(x, y T, ctx *Context) (T, error) {
	return d.pick(ctx).Quantize(x, y, ctx)
}

// RoundToExponentExact rounds x to exp, signaling Inexact and Rounded.
func (d *Dispatcher[T]) RoundToExponentExact(x T, exp *big.Int, ctx *Context) (T, error) {
	return d.pick(ctx).RoundToExponentExact(x, exp, ctx)
}

// RoundToExponentSimple rounds x to exp, if its exponent is smaller.
func (d *Dispatcher[T]) RoundToExponentSimple(x T, exp *big.Int, ctx *Context) (T, error) {
	return d.pick(ctx).RoundToExponentSimple(x, exp, ctx)
}

// RoundToExponentNoRoundedFlag rounds x to exp without signaling Inexact or Rounded.
func (d *Dispatcher[T]) RoundToExponentNoRoundedFlag(x T, exp *big.Int, ctx *Context) (T, error) {
	return d.pick(ctx).RoundToExponentNoRoundedFlag(x, exp, ctx)
}

// Reduce rounds x and removes its trailing zeros.
func (d *Dispatcher[T]) Reduce(x T, ctx *Context) (T, error) {
	return d.pick(ctx).Reduce(x, ctx)
}

// ReduceToPrecisionAndIdealExponent rounds x to precision and removes trailing zeros down to idealExp.
func (d *Dispatcher[T]) ReduceToPrecisionAndIdealExponent(x T, ctx *Context, precision, idealExp *big.Int) (T, error) {
	return d.pick(ctx).ReduceToPrecisionAndIdealExponent(x, ctx, precision, idealExp)
}

// RoundToPrecision rounds x to the context.
func (d *Dispatcher[T]) RoundToPrecision(x T, ctx *Context) (T, error) {
	return d.pick(ctx).RoundToPrecision(x, ctx)
}

// Plus returns 0+x.
func (d *Dispatcher[T]) Plus(x T, ctx *Context) (T, error) {
	return d.pick(ctx).Plus(x, ctx)
}

// Abs returns |x|.
func (d *Dispatcher[T]) Abs(x T, ctx *Context) (T, error) {
	return d.pick(ctx).Abs(x, ctx)
}

// Negate returns -x.
func (d *Dispatcher[T]) Negate(x T, ctx *Context) (T, error) {
	return d.pick(ctx).Negate(x, ctx)
}

// NextPlus returns the smallest representable number greater than x.
func (d *Dispatcher[T]) NextPlus(x T, ctx *Context) (T, error) {
	return d.pick(ctx).NextPlus(x, ctx)
}

// NextMinus returns the largest representable number less than x.
func (d *Dispatcher[T]) NextMinus(x T, ctx *Context) (T, error) {
	return d.pick(ctx).NextMinus(x, ctx)
}

// NextToward returns the representable number next to x in the direction of y.
func (d *Dispatcher[T]) NextToward(x, y T, ctx *Context) (T, error) {
	return d.pick(ctx).NextToward(x, y, ctx)
}

// Power returns x**y.
func (d *Dispatcher[T]) Power(x, y T, ctx *Context) (T, error) {
	return d.pick(ctx).Power(x, y, ctx)
}

// Exp returns e**x.
func (d *Dispatcher[T]) Exp(x T, ctx *Context) (T, error) {
	return d.pick(ctx).Exp(x, ctx)
}

// Ln returns the natural logarithm of x.
func (d *Dispatcher[T]) Ln(x T, ctx *Context) (T, error) {
	return d.pick(ctx).Ln(x, ctx)
}

// Log10 returns the base-10 logarithm of x.
func (d *Dispatcher[T]) Log10(x T, ctx *Context) (T, error) {
	return d.pick(ctx).Log10(x, ctx)
}

// SquareRoot returns the square root of x.
func (d *Dispatcher[T]) SquareRoot(x T, ctx *Context) (T, error) {
	return d.pick(ctx).SquareRoot(x, ctx)
}

// Pi returns pi rounded to the context.
func (d *Dispatcher[T]) Pi(ctx *Context) (T, error) {
	return d.pick(ctx).Pi(ctx)
}

// Min returns the smaller of x and y.
func (d *Dispatcher[T]) Min(x, y T, ctx *Context) (T, error) {
	return d.pick(ctx).Min(x, y, ctx)
}

// Max returns the larger of x and y.
func (d *Dispatcher[T]) Max(x, y T, ctx *Context) (T, error) {
	return d.pick(ctx).Max(x, y, ctx)
}

// MinMagnitude returns the operand with the smaller magnitude.
func (d *Dispatcher[T]) MinMagnitude(x, y T, ctx *Context) (T, error) {
	return d.pick(ctx).MinMagnitude(x, y, ctx)
}

// MaxMagnitude returns the operand with the larger magnitude.
func (d *Dispatcher[T]) MaxMagnitude(x, y T, ctx *Context) (T, error) {
	return d.pick(ctx).MaxMagnitude(x, y, ctx)
}

// CompareTo compares x and y numerically. NaNs are equal to each other and greater than other numbers.
func (d *Dispatcher[T]) CompareTo(x, y T) int {
	return d.extended.CompareTo(x, y)
}

// CompareToWithContext compares x and y and returns -1, 0, 1 or NaN as a number.
func (d *Dispatcher[T]) CompareToWithContext(x, y T, treatQuietNaNsAsSignaling bool, ctx *Context) (T, error) {
	return d.pick(ctx).CompareToWithContext(x, y, treatQuietNaNsAsSignaling, ctx)
}

// CompareTotal compares x and y in the total ordering.
func (d *Dispatcher[T]) CompareTotal(x, y T) int {
	return d.extended.CompareTotal(x, y)
}

// CompareTotalMagnitude compares |x| and |y| in the total ordering.
func (d *Dispatcher[T]) CompareTotalMagnitude(x, y T) int {
	return d.extended.CompareTotalMagnitude(x, y)
}
