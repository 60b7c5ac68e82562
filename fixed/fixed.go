// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package fixed implements decimal fixed-point numbers with 8 fractional digits.
// Rounding operations are performed by the decimal engine with the half-even rounding.
package fixed

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/zeebo/errs"

	"github.com/avdva/radixmath"
	"github.com/avdva/radixmath/dfp"
	mu "github.com/avdva/radixmath/internal/mathutil"
)

const (
	dot   = -8
	scale = 1e8

	maxNumber         = 999999999999999999
	smallestPosNumber = 1
	totalDigits       = 18
)

const (
	Zero             = Fixed(0)
	Max              = Fixed(maxNumber)
	Min              = -Max
	SmallestPositive = Fixed(smallestPosNumber)
	SmallestNegative = -SmallestPositive
)

// ErrRange is returned for values, which can not be represented as Fixed.
var ErrRange = errs.Class("fixed range")

var (
	ctx     = radixmath.Unlimited.WithPrecision(totalDigits).WithRounding(radixmath.HalfEven)
	quantum = dfp.FromMantAndExp(big.NewInt(1), dot)
)

type number = int64

// Fixed is a number with 18 significant digits, 8 of which are fractional.
type Fixed number

// FromMantAndExp returns mant * 10^exp rounded to 8 fractional digits.
// Values outside [Min, Max] are saturated.
func FromMantAndExp(mant int64, exp int32) Fixed {
	f, _ := FromNumber(dfp.FromMantAndExp(big.NewInt(mant), int64(exp)))
	return f
}

// FromNumber converts a decimal number into Fixed rounding it to 8 fractional digits.
// Infinities and NaNs are not permitted, large values are saturated.
func FromNumber(n dfp.Number) (Fixed, error) {
	if n.Radix() != 10 || !n.IsFinite() {
		return Zero, ErrRange.New("%s", n)
	}
	q, err := dfp.DecimalArithmetic.Quantize(n, quantum, ctx)
	if err != nil {
		return Zero, err
	}
	if !q.IsFinite() {
		return saturated(n.IsNegative()), nil
	}
	m := q.Mant()
	if !m.IsInt64() || m.Int64() > maxNumber {
		return saturated(n.IsNegative()), nil
	}
	result := Fixed(m.Int64())
	if q.IsNegative() {
		result = -result
	}
	return result, nil
}

func FromString(s string) (Fixed, error) {
	n, err := dfp.Parse(s)
	if err != nil {
		return Zero, err
	}
	return FromNumber(n)
}

func MustFromString(s string) Fixed {
	f, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return f
}

// FromFloat64 converts f using its shortest decimal representation.
func FromFloat64(f float64) (Fixed, error) {
	return FromString(strconv.FormatFloat(f, 'g', -1, 64))
}

func saturated(neg bool) Fixed {
	if neg {
		return Min
	}
	return Max
}

// Number returns f as a decimal number with exponent -8.
func (f Fixed) Number() dfp.Number {
	return dfp.FromMantAndExp(big.NewInt(int64(f)), dot)
}

func (f Fixed) Sign() int {
	return mu.Int64Sign(int64(f))
}

func (f Fixed) Abs() Fixed {
	return Fixed(mu.AbsInt64(int64(f)))
}

func (f Fixed) reduced() dfp.Number {
	r, err := dfp.DecimalArithmetic.Reduce(f.Number(), nil)
	if err != nil {
		return f.Number()
	}
	return r
}

// String returns f without trailing zeros and without an exponent.
func (f Fixed) String() string {
	return f.reduced().PlainString()
}

// Format implements fmt.Formatter. 'e' uses scientific notation.
func (f Fixed) Format(fs fmt.State, c rune) {
	if c == 'e' {
		fs.Write([]byte(f.reduced().String()))
		return
	}
	fs.Write([]byte(f.String()))
}

func (f Fixed) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(f.String())), nil
}

func (f *Fixed) UnmarshalJSON(data []byte) error {
	fs, err := FromString(string(data))
	if err == nil {
		*f = fs
	}
	return err
}

func (f Fixed) Cmp(other Fixed) int {
	if f == other {
		return 0
	}
	if f > other {
		return 1
	}
	return -1
}

func (f Fixed) Float64() float64 {
	return float64(f) / scale
}

func (f Fixed) limited(v int64, ok bool) Fixed {
	switch {
	case !ok:
		return saturated(f < 0)
	case v > maxNumber:
		return Max
	case v < -maxNumber:
		return Min
	}
	return Fixed(v)
}

// Add returns f+other, saturated to [Min, Max].
func (f Fixed) Add(other Fixed) Fixed {
	v, ok := mu.AddInt64(int64(f), int64(other))
	return f.limited(v, ok)
}

// Sub returns f-other, saturated to [Min, Max].
func (f Fixed) Sub(other Fixed) Fixed {
	v, ok := mu.SubInt64(int64(f), int64(other))
	return f.limited(v, ok)
}

// Mul returns f*other rounded half-even to 8 fractional digits, saturated to [Min, Max].
func (f Fixed) Mul(other Fixed) Fixed {
	neg := !mu.SameSign(int64(f), int64(other))
	product, err := dfp.DecimalArithmetic.Multiply(f.Number(), other.Number(), nil)
	if err != nil {
		return saturated(neg)
	}
	result, _ := FromNumber(product)
	return result
}

// Div returns f/other rounded half-even to 8 fractional digits, saturated to [Min, Max].
// It panics, if other is zero.
func (f Fixed) Div(other Fixed) Fixed {
	if other == Zero {
		panic("division by zero")
	}
	if f == Zero {
		return Zero
	}
	neg := !mu.SameSign(int64(f), int64(other))
	q, err := dfp.DecimalArithmetic.DivideToExponent(f.Number(), other.Number(), big.NewInt(dot), ctx)
	if err != nil || !q.IsFinite() {
		return saturated(neg)
	}
	result, _ := FromNumber(q)
	return result
}
