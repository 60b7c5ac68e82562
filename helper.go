// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"math/big"

	"github.com/avdva/radixmath/fixedint"
)

// ArithmeticSupport defines which kinds of numbers a helper can represent.
type ArithmeticSupport uint8

const (
	// SupportAll means finite numbers, infinities, and NaNs.
	SupportAll ArithmeticSupport = iota
	// SupportFinite means only finite numbers.
	// Operations, which would produce infinity or NaN, return an ErrUnsupported error instead.
	SupportFinite
)

// Helper gives the engine access to a concrete number type T.
// Mantissas are non-negative; for NaNs the mantissa is the diagnostic payload.
type Helper[T any] interface {
	// Radix returns the radix of T.
	Radix() int
	// ArithmeticSupport returns the kinds of numbers T can represent.
	ArithmeticSupport() ArithmeticSupport

	// Flags returns the sign and the kind of v.
	Flags(v T) NumberFlags
	// Sign returns -1, 0, or 1. NaNs have sign 0.
	Sign(v T) int
	// Mantissa returns the absolute value of v's mantissa.
	Mantissa(v T) *big.Int
	// FixedMantissa returns the absolute value of v's mantissa.
	FixedMantissa(v T) *fixedint.Int
	// Exponent returns v's exponent.
	Exponent(v T) *big.Int
	// FixedExponent returns v's exponent.
	FixedExponent(v T) *fixedint.Int

	// New returns a number from a non-negative mantissa, an exponent, and flags.
	New(mant, exp *big.Int, flags NumberFlags) T
	// NewFixed returns a number from a non-negative mantissa, an exponent, and flags.
	NewFixed(mant, exp *fixedint.Int, flags NumberFlags) T

	// ShiftAccumulator returns an accumulator for mant, where last and older describe
	// digits already discarded from it.
	ShiftAccumulator(mant *big.Int, last, older int) ShiftAccumulator
	// DivisionShift returns such shift, that den divides radix^shift,
	// or false if num/den does not have a terminating expansion.
	DivisionShift(num, den *big.Int) (*fixedint.Int, bool)
	// DigitLength returns the number of radix digits in mant.
	DigitLength(mant *big.Int) *fixedint.Int
	// MultiplyByRadixPower returns mant*radix^power for a non-negative power.
	MultiplyByRadixPower(mant *big.Int, power *fixedint.Int) *big.Int
	// MultiplyByRadixPowerFixed returns mant*radix^power for a non-negative power.
	MultiplyByRadixPowerFixed(mant, power *fixedint.Int) *fixedint.Int
}
