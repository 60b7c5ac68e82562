// Copyright 2020 Aleksandr Demakin. All rights reserved.

package dfp

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/avdva/radixmath"
	"github.com/avdva/radixmath/fixedint"
)

func TestParse(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		s     string
		flags radixmath.NumberFlags
		mant  int64
		exp   int64
		err   string
	}{
		{"0", 0, 0, 0, ""},
		{"-0", radixmath.Negative, 0, 0, ""},
		{"0.00", 0, 0, -2, ""},
		{"000123", 0, 123, 0, ""},
		{"1.20", 0, 120, -2, ""},
		{"-1.20", radixmath.Negative, 120, -2, ""},
		{"+1.20", 0, 120, -2, ""},
		{".5", 0, 5, -1, ""},
		{"5.", 0, 5, 0, ""},
		{"12.3E-9", 0, 123, -10, ""},
		{"1e+3", 0, 1, 3, ""},
		{"1E3", 0, 1, 3, ""},
		{"-0E-08", radixmath.Negative, 0, -8, ""},
		{`"  42 "`, 0, 42, 0, ""},
		{"Inf", radixmath.Infinity, 0, 0, ""},
		{"-infinity", radixmath.Negative | radixmath.Infinity, 0, 0, ""},
		{"NaN", radixmath.QuietNaN, 0, 0, ""},
		{"-NaN12", radixmath.Negative | radixmath.QuietNaN, 12, 0, ""},
		{"sNaN", radixmath.SignalingNaN, 0, 0, ""},
		{"snan7", radixmath.SignalingNaN, 7, 0, ""},

		{"", 0, 0, 0, "empty input"},
		{`""`, 0, 0, 0, "empty input"},
		{"-", 0, 0, 0, "empty input"},
		{".", 0, 0, 0, "no digits at pos 1"},
		{"1..2", 0, 0, 0, "unexpected delimiter at pos 3"},
		{"e5", 0, 0, 0, "unexpected symbol 'e' at pos 1"},
		{"1e", 0, 0, 0, "error parsing exponent"},
		{"1e++2", 0, 0, 0, "error parsing exponent"},
		{"12a", 0, 0, 0, "unexpected symbol 'a' at pos 3"},
		{"NaNx", 0, 0, 0, "unexpected symbol 'x' at pos 4"},
		{"  -bad", 0, 0, 0, "unexpected symbol 'b' at pos 4"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			v, err := Parse(test.s)
			if len(test.err) > 0 {
				if a.Error(err) {
					a.True(ErrSyntax.Has(err))
					a.Contains(err.Error(), test.err)
				}
				a.Panics(func() {
					MustParse(test.s)
				})
				return
			}
			if a.NoError(err) {
				a.Equal(test.flags, v.Flags())
				a.Equal(int64(10), int64(v.Radix()))
				a.Equal(test.mant, v.Mant().Int64())
				a.Equal(test.exp, v.Exp().Int64())
			}
		})
	}
}

func TestParseHugeExponent(t *testing.T) {
	a := assert.New(t)
	v, err := Parse("1E+123456789012345678901234567890")
	if a.NoError(err) {
		a.Equal("123456789012345678901234567890", v.Exp().String())
		a.Equal("1E+123456789012345678901234567890", v.String())
		a.Equal("1E+123456789012345678901234567890", v.PlainString())
	}
}

func TestString(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		s     string
		sci   string
		plain string
	}{
		{"123", "123", "123"},
		{"-123", "-123", "-123"},
		{"1.23E+3", "1.23E+3", "1230"},
		{"123E+3", "1.23E+5", "123000"},
		{"12.3E-9", "1.23E-8", "0.0000000123"},
		{"-123E-10", "-1.23E-8", "-0.0000000123"},
		{"-123E-12", "-1.23E-10", "-0.000000000123"},
		{"0", "0", "0"},
		{"0.00", "0.00", "0.00"},
		{"0E+2", "0E+2", "0"},
		{"-0", "-0", "-0"},
		{"0.001", "0.001", "0.001"},
		{"0.000001", "0.000001", "0.000001"},
		{"0.0000001", "1E-7", "0.0000001"},
		{"5E-6", "0.000005", "0.000005"},
		{"50E-7", "0.0000050", "0.0000050"},
		{"5E-7", "5E-7", "0.0000005"},
		{"1.5", "1.5", "1.5"},
		{"15E-1", "1.5", "1.5"},
		{"Inf", "Infinity", "Infinity"},
		{"-Inf", "-Infinity", "-Infinity"},
		{"NaN", "NaN", "NaN"},
		{"-NaN42", "-NaN42", "-NaN42"},
		{"sNaN", "sNaN", "sNaN"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			v := MustParse(test.s)
			a.Equal(test.sci, v.String())
			a.Equal(test.plain, v.PlainString())
			reparsed, err := Parse(v.String())
			if a.NoError(err) {
				a.True(v.Equal(reparsed), "%s != %s", v, reparsed)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	a := assert.New(t)
	v := MustParse("1E+3")
	a.Equal("1000", fmt.Sprintf("%f", v))
	a.Equal("1E+3", fmt.Sprintf("%v", v))
	a.Equal("1E+3", fmt.Sprintf("%s", v))
	a.Equal("1E+3", fmt.Sprintf("%e", v))
	a.Equal("%!d(dfp.Number=1E+3)", fmt.Sprintf("%d", v))
}

func TestBinaryString(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		mant, exp int64
		neg       bool
		s         string
	}{
		{3, -1, false, "1.5"},
		{3, 4, false, "48"},
		{1, -3, true, "-0.125"},
		{0, -3, false, "0.000"},
		{1, -30, false, "9.31322574615478515625E-10"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			var flags radixmath.NumberFlags
			if test.neg {
				flags = radixmath.Negative
			}
			v := Binary.New(big.NewInt(test.mant), big.NewInt(test.exp), flags)
			a.Equal(2, v.Radix())
			a.Equal(test.s, v.String())
		})
	}
}

func TestParseBinary(t *testing.T) {
	a := assert.New(t)
	v, err := ParseBinary("0.5", nil)
	if a.NoError(err) {
		a.Equal(2, v.Radix())
		a.Equal("0.5", v.String())
	}
	v, err = ParseBinary("1.5E+3", nil)
	if a.NoError(err) {
		a.Equal("1500", v.String())
	}
	v, err = ParseBinary("0.1", nil)
	if a.NoError(err) {
		a.True(v.IsNaN())
	}
	v, err = ParseBinary("0.1", radixmath.Binary64)
	if a.NoError(err) {
		a.Equal(0.1, v.Float64())
	}
	v, err = ParseBinary("-Infinity", radixmath.Binary64)
	if a.NoError(err) {
		a.True(v.IsInf())
		a.True(v.IsNegative())
		a.Equal(2, v.Radix())
	}
	_, err = ParseBinary("x", nil)
	a.True(ErrSyntax.Has(err))
}

func TestPredicates(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v                          Number
		neg, finite, inf, nan, snan bool
		zero                       bool
		sign                       int
	}{
		{Number{}, false, true, false, false, false, true, 0},
		{FromInt64(-5), true, true, false, false, false, false, -1},
		{FromMantAndExp(big.NewInt(7), -2), false, true, false, false, false, false, 1},
		{Inf(false), false, false, true, false, false, false, 1},
		{Inf(true), true, false, true, false, false, false, -1},
		{NaN(true, big.NewInt(3)), true, false, false, true, false, false, 0},
		{SignalingNaN(false, nil), false, false, false, true, true, false, 0},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.neg, test.v.IsNegative())
			a.Equal(test.finite, test.v.IsFinite())
			a.Equal(test.inf, test.v.IsInf())
			a.Equal(test.nan, test.v.IsNaN())
			a.Equal(test.snan, test.v.IsSignalingNaN())
			a.Equal(test.zero, test.v.IsZero())
			a.Equal(test.sign, test.v.Sign())
		})
	}
}

func TestEqual(t *testing.T) {
	a := assert.New(t)
	a.True(MustParse("1.0").Equal(MustParse("1.0")))
	a.True(MustParse("1.0").Equal(FromMantAndExp(big.NewInt(10), -1)))
	a.False(MustParse("1.0").Equal(MustParse("1.00")))
	a.False(MustParse("0").Equal(MustParse("-0")))
	a.False(MustParse("NaN1").Equal(MustParse("NaN2")))
	a.True(Number{}.Equal(FromInt64(0)))
	a.False(FromInt64(1).Equal(Binary.New(big.NewInt(1), nil, 0)))
}

func TestMantExpCopies(t *testing.T) {
	a := assert.New(t)
	v := MustParse("-1.25")
	m := v.Mant()
	m.SetInt64(1)
	e := v.Exp()
	e.SetInt64(5)
	a.Equal("-1.25", v.String())
}

func TestFloat64(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		s string
		f float64
	}{
		{"0", 0},
		{"1.5", 1.5},
		{"-0.125", -0.125},
		{"1E+400", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{"123456789E-3", 123456.789},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.f, MustParse(test.s).Float64())
		})
	}
	a.True(math.IsNaN(MustParse("sNaN").Float64()))
}

func TestJSON(t *testing.T) {
	a := assert.New(t)
	defer func(mode int) {
		JSONMode = mode
	}(JSONMode)
	tests := []struct {
		v   Number
		str string
		me  string
	}{
		{MustParse("1.50"), `"1.50"`, `{"m":"150","e":-2}`},
		{MustParse("-1.50"), `"-1.50"`, `{"m":"-150","e":-2}`},
		{MustParse("1E+3"), `"1E+3"`, `{"m":"1","e":3}`},
		{MustParse("0"), `"0"`, `{"m":"0","e":0}`},
		{Inf(true), `"-Infinity"`, `"-Infinity"`},
		{NaN(false, nil), `"NaN"`, `"NaN"`},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			for _, mode := range []int{JSONModeString, JSONModeME} {
				JSONMode = mode
				expected := test.str
				if mode == JSONModeME {
					expected = test.me
				}
				data, err := json.Marshal(test.v)
				if !a.NoError(err) {
					continue
				}
				a.Equal(expected, string(data))
				var v Number
				if a.NoError(json.Unmarshal(data, &v)) {
					a.True(test.v.Equal(v), "%s != %s", test.v, v)
				}
			}
		})
	}
}

func TestUnmarshalJSON(t *testing.T) {
	a := assert.New(t)
	var s struct {
		V Number `json:"v"`
	}
	if a.NoError(json.Unmarshal([]byte(`{"v":12.50}`), &s)) {
		a.Equal("12.50", s.V.String())
	}
	a.Error(json.Unmarshal([]byte(`{"v":"abc"}`), &s))
	a.Error(json.Unmarshal([]byte(`{"v":{"m":"x","e":1}}`), &s))
	var v Number
	a.True(ErrSyntax.Has(v.UnmarshalJSON(nil)))
}

func TestHelper(t *testing.T) {
	a := assert.New(t)
	_, err := NewHelper(3, radixmath.SupportAll)
	a.True(radixmath.ErrInvalidArgument.Has(err))
	h, err := NewHelper(10, radixmath.SupportFinite)
	if a.NoError(err) {
		a.Equal(10, h.Radix())
		a.Equal(radixmath.SupportFinite, h.ArithmeticSupport())
	}

	v := MustParse("-12.345")
	a.Equal(-1, Decimal.Sign(v))
	a.Equal(radixmath.Negative, Decimal.Flags(v))
	a.Equal(int64(12345), Decimal.Mantissa(v).Int64())
	a.True(Decimal.FixedMantissa(v).Equal(fixedint.FromInt64(12345)))
	a.Equal(int64(-3), Decimal.Exponent(v).Int64())
	a.True(Decimal.FixedExponent(v).Equal(fixedint.FromInt64(-3)))
	a.True(Decimal.FixedExponent(FromInt64(1)).IsZero())

	built := Decimal.NewFixed(fixedint.FromInt64(12345), fixedint.FromInt64(-3), radixmath.Negative)
	a.True(v.Equal(built))

	a.Equal(0, Decimal.DigitLength(big.NewInt(12345)).CmpInt64(5))
	a.Equal(0, Binary.DigitLength(big.NewInt(8)).CmpInt64(4))
	a.Equal(int64(300), Decimal.MultiplyByRadixPower(big.NewInt(3), fixedint.FromInt64(2)).Int64())
	a.Equal(int64(12), Binary.MultiplyByRadixPower(big.NewInt(3), fixedint.FromInt64(2)).Int64())
	a.True(Decimal.MultiplyByRadixPowerFixed(fixedint.FromInt64(7), fixedint.FromInt64(3)).Equal(fixedint.FromInt64(7000)))

	shift, ok := Decimal.DivisionShift(big.NewInt(1), big.NewInt(8))
	if a.True(ok) {
		a.Equal(0, shift.CmpInt64(3))
	}
	_, ok = Decimal.DivisionShift(big.NewInt(1), big.NewInt(3))
	a.False(ok)
	shift, ok = Binary.DivisionShift(big.NewInt(1), big.NewInt(16))
	if a.True(ok) {
		a.Equal(0, shift.CmpInt64(4))
	}
	_, ok = Binary.DivisionShift(big.NewInt(1), big.NewInt(10))
	a.False(ok)

	acc := Decimal.ShiftAccumulator(big.NewInt(12345), 0, 0)
	acc.ShiftRightInt(2)
	a.Equal(int64(123), acc.ShiftedInt().Int64())
	a.Equal(4, acc.LastDiscardedDigit())
	a.Equal(1, acc.OlderDiscardedDigits())
}

func TestArithmetic(t *testing.T) {
	a := assert.New(t)
	ctx := radixmath.Decimal64.WithBlankFlags()
	sum, err := DecimalArithmetic.Add(MustParse("1.30"), MustParse("1.20"), ctx)
	if a.NoError(err) {
		a.Equal("2.50", sum.String())
	}
	q, err := DecimalArithmetic.Divide(MustParse("1"), MustParse("3"), ctx)
	if a.NoError(err) {
		a.Equal("0.3333333333333333", q.String())
		a.Equal(radixmath.Inexact|radixmath.Rounded, ctx.Flags())
	}
	p, err := BinaryArithmetic.Multiply(Binary.New(big.NewInt(3), big.NewInt(-1), 0),
		Binary.New(big.NewInt(3), big.NewInt(-1), 0), radixmath.Binary64)
	if a.NoError(err) {
		a.Equal(2, p.Radix())
		a.Equal("2.25", p.String())
	}
	// results share no state with operands.
	x := MustParse("12")
	y, err := DecimalArithmetic.Plus(x, nil)
	if a.NoError(err) {
		a.Empty(cmp.Diff(x.String(), y.String()))
	}
}
