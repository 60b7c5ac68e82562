// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package dfp implements an arbitrary-precision floating-point number,
// which can be used with radixmath engines in radix 10 or radix 2.
package dfp

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/avdva/radixmath"
)

var (
	// JSONMode defines the way all values are marshaled into json, see JSONMode* constants.
	// This variable is not thread-safe, so this should be changed on program start.
	JSONMode = JSONModeString
)

const (
	// JSONModeString produces values as strings, like `"1234.5678"`
	JSONModeString = iota
	// JSONModeME marshals finite values with mantissa and exponent, like `{"m":"-123","e":-5}`.
	// Infinities and NaNs are marshaled as strings.
	JSONModeME
)

// Number is sign * mantissa * radix^exponent, or an infinity, or a NaN.
// Numbers are immutable. The zero value is positive zero in radix 10.
type Number struct {
	flags radixmath.NumberFlags
	radix uint8 // 0 means 10
	mant  *big.Int
	exp   *big.Int
}

var bigZero = new(big.Int)

func newNumber(radix int, flags radixmath.NumberFlags, mant, exp *big.Int) Number {
	n := Number{flags: flags, mant: mant, exp: exp}
	if radix != 10 {
		n.radix = uint8(radix)
	}
	if mant != nil && mant.Sign() == 0 {
		n.mant = nil
	}
	if exp != nil && exp.Sign() == 0 {
		n.exp = nil
	}
	return n
}

// FromInt64 returns a decimal number for v.
func FromInt64(v int64) Number {
	return FromMantAndExp(big.NewInt(v), 0)
}

// FromMantAndExp returns a decimal number mant * 10^exp. mant may be negative.
func FromMantAndExp(mant *big.Int, exp int64) Number {
	var flags radixmath.NumberFlags
	if mant.Sign() < 0 {
		flags = radixmath.Negative
	}
	return newNumber(10, flags, new(big.Int).Abs(mant), big.NewInt(exp))
}

// Inf returns a decimal infinity.
func Inf(neg bool) Number {
	return newNumber(10, signFlag(neg)|radixmath.Infinity, nil, nil)
}

// NaN returns a decimal quiet NaN with the given payload, which may be nil.
func NaN(neg bool, payload *big.Int) Number {
	return newNumber(10, signFlag(neg)|radixmath.QuietNaN, absOrNil(payload), nil)
}

// SignalingNaN returns a decimal signaling NaN with the given payload, which may be nil.
func SignalingNaN(neg bool, payload *big.Int) Number {
	return newNumber(10, signFlag(neg)|radixmath.SignalingNaN, absOrNil(payload), nil)
}

func signFlag(neg bool) radixmath.NumberFlags {
	if neg {
		return radixmath.Negative
	}
	return 0
}

func absOrNil(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Abs(v)
}

// Radix returns 10 or 2.
func (v Number) Radix() int {
	if v.radix == 0 {
		return 10
	}
	return int(v.radix)
}

// Flags returns the sign and the kind of v.
func (v Number) Flags() radixmath.NumberFlags {
	return v.flags
}

func (v Number) mantissa() *big.Int {
	if v.mant == nil {
		return bigZero
	}
	return v.mant
}

func (v Number) exponent() *big.Int {
	if v.exp == nil {
		return bigZero
	}
	return v.exp
}

// Mant returns the absolute value of v's mantissa, or the payload of a NaN.
func (v Number) Mant() *big.Int {
	return new(big.Int).Set(v.mantissa())
}

// Exp returns v's exponent.
func (v Number) Exp() *big.Int {
	return new(big.Int).Set(v.exponent())
}

// IsNegative returns true, if v's sign is negative. It is true for negative zero.
func (v Number) IsNegative() bool {
	return v.flags&radixmath.Negative != 0
}

// IsFinite returns true, if v is not an infinity or a NaN.
func (v Number) IsFinite() bool {
	return v.flags.IsFinite()
}

// IsInf returns true, if v is an infinity.
func (v Number) IsInf() bool {
	return v.flags&radixmath.Infinity != 0
}

// IsNaN returns true, if v is a quiet or a signaling NaN.
func (v Number) IsNaN() bool {
	return v.flags&radixmath.NaN != 0
}

// IsSignalingNaN returns true, if v is a signaling NaN.
func (v Number) IsSignalingNaN() bool {
	return v.flags&radixmath.SignalingNaN != 0
}

// IsZero returns true, if v is a finite zero of any sign.
func (v Number) IsZero() bool {
	return v.IsFinite() && v.mantissa().Sign() == 0
}

// Sign returns -1, 0, or 1. NaNs have sign 0.
func (v Number) Sign() int {
	switch {
	case v.IsNaN(), v.IsZero():
		return 0
	case v.IsNegative():
		return -1
	default:
		return 1
	}
}

// Equal returns true, if both numbers have the same representation.
// 1.0 and 1.00 are not equal, use CompareTo to compare values.
func (v Number) Equal(other Number) bool {
	return v.flags == other.flags && v.Radix() == other.Radix() &&
		v.mantissa().Cmp(other.mantissa()) == 0 && v.exponent().Cmp(other.exponent()) == 0
}

// String returns v in scientific notation.
func (v Number) String() string {
	return v.format(false)
}

// PlainString returns v without an exponent.
func (v Number) PlainString() string {
	return v.format(true)
}

// Format implements fmt.Formatter.
// 'f' formats the number without an exponent, 'v', 's', and 'e' use scientific notation.
func (v Number) Format(f fmt.State, verb rune) {
	var s string
	switch verb {
	case 'f':
		s = v.PlainString()
	case 'v', 's', 'e':
		s = v.String()
	default:
		fmt.Fprintf(f, "%%!%c(dfp.Number=%s)", verb, v.String())
		return
	}
	f.Write([]byte(s))
}

// Float64 returns the closest float64 value.
func (v Number) Float64() float64 {
	switch {
	case v.IsNaN():
		return math.NaN()
	case v.IsInf():
		if v.IsNegative() {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	f, _ := strconv.ParseFloat(v.String(), 64)
	return f
}

// MarshalJSON marshals value according to current JSONMode.
// See JSONMode and JSONMode* constants.
func (v Number) MarshalJSON() ([]byte, error) {
	return v.toJSON(JSONMode), nil
}

func (v Number) toJSON(mode int) []byte {
	if mode == JSONModeME && v.IsFinite() && v.Radix() == 10 {
		m := v.Mant()
		if v.IsNegative() {
			m.Neg(m)
		}
		var builder strings.Builder
		builder.WriteString(`{"m":"`)
		builder.WriteString(m.String())
		builder.WriteString(`","e":`)
		builder.WriteString(v.exponent().String())
		builder.WriteString(`}`)
		return []byte(builder.String())
	}
	return []byte(strconv.Quote(v.String()))
}

// UnmarshalJSON unmarshals a string, a number, or an object into a decimal value.
func (v *Number) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return ErrSyntax.New("empty json")
	}
	if data[0] == '{' {
		d := struct {
			M string
			E json.Number
		}{}
		if err := json.Unmarshal(data, &d); err != nil {
			return err
		}
		m, ok := new(big.Int).SetString(d.M, 10)
		if !ok {
			return ErrSyntax.New("bad mantissa %q", d.M)
		}
		e, ok := new(big.Int).SetString(d.E.String(), 10)
		if !ok {
			return ErrSyntax.New("bad exponent %q", d.E)
		}
		flags := signFlag(m.Sign() < 0)
		*v = newNumber(10, flags, m.Abs(m), e)
		return nil
	}
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
