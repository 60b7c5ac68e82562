// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import "strings"

// NumberFlags describe the sign and the kind of a number.
type NumberFlags uint8

const (
	// Negative is set for numbers with a negative sign, including negative zero.
	Negative NumberFlags = 1 << iota
	// Infinity is set for infinite numbers.
	Infinity
	// QuietNaN is set for quiet not-a-number values.
	QuietNaN
	// SignalingNaN is set for signaling not-a-number values.
	SignalingNaN

	// NaN matches both kinds of not-a-number values.
	NaN = QuietNaN | SignalingNaN
	// Special matches all non-finite numbers.
	Special = NaN | Infinity
)

// IsFinite returns true if no special flags are set.
func (f NumberFlags) IsFinite() bool {
	return f&Special == 0
}

// Flags is a set of conditions signaled by arithmetic operations.
type Flags uint32

const (
	// Inexact is signaled when the result of an operation is not exact.
	Inexact Flags = 1 << iota
	// Rounded is signaled when digits were discarded from a result, even if they were zeros.
	Rounded
	// Subnormal is signaled when a result's adjusted exponent is below the normal range.
	Subnormal
	// Underflow is signaled when a result is both subnormal and inexact.
	Underflow
	// Overflow is signaled when a rounded result's exponent exceeds the maximum.
	Overflow
	// Clamped is signaled when a result's exponent was changed to fit the exponent range.
	Clamped
	// Invalid is signaled when an operation is invalid, like 0/0 or Inf-Inf.
	Invalid
	// DivideByZero is signaled when a finite non-zero number is divided by zero.
	DivideByZero
	lostDigits

	// LostDigits is signaled when an operand had more digits than the precision and was rounded.
	// It always comes together with Inexact and Rounded.
	LostDigits = lostDigits | Inexact | Rounded
)

// AllFlags is a mask of all conditions.
const AllFlags = Inexact | Rounded | Subnormal | Underflow | Overflow | Clamped | Invalid | DivideByZero | LostDigits

var flagNames = []struct {
	flag Flags
	name string
}{
	{Invalid, "invalid"},
	{DivideByZero, "divide-by-zero"},
	{Overflow, "overflow"},
	{Underflow, "underflow"},
	{Subnormal, "subnormal"},
	{Clamped, "clamped"},
	{Inexact, "inexact"},
	{Rounded, "rounded"},
	{lostDigits, "lost-digits"},
}

// String returns a comma-separated list of set conditions.
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var b strings.Builder
	for _, fn := range flagNames {
		if f&fn.flag == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fn.name)
	}
	return b.String()
}

// highest returns the most severe single condition of f.
func (f Flags) highest() Flags {
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			if fn.flag == lostDigits {
				return LostDigits
			}
			return fn.flag
		}
	}
	return 0
}
