// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	a := assert.New(t)
	_, err := NewContext(-1, HalfEven, -10, 10, false)
	a.True(ErrInvalidArgument.Has(err))
	_, err = NewContext(5, HalfEven, 10, -10, false)
	a.True(ErrInvalidArgument.Has(err))
	_, err = NewContextBig(big.NewInt(-1), HalfEven, big.NewInt(-10), big.NewInt(10), false)
	a.True(ErrInvalidArgument.Has(err))
	_, err = NewContextBig(big.NewInt(1), HalfEven, big.NewInt(1), big.NewInt(0), false)
	a.True(ErrInvalidArgument.Has(err))

	c, err := NewContext(5, Up, -10, 10, true)
	require.NoError(t, err)
	a.Equal(int64(5), c.Precision().Int64())
	a.True(c.HasMaxPrecision())
	a.Equal(Up, c.Rounding())
	a.True(c.HasExponentRange())
	a.Equal(int64(-10), c.EMin().Int64())
	a.Equal(int64(10), c.EMax().Int64())
	a.True(c.ClampNormalExponents())
	a.True(c.AdjustExponent())
	a.False(c.IsPrecisionInBits())
	a.False(c.IsSimplified())
	a.False(c.HasFlags())

	huge, _ := new(big.Int).SetString("100000000000000000000000", 10)
	c, err = NewContextBig(big.NewInt(7), HalfEven, new(big.Int).Neg(huge), huge, false)
	require.NoError(t, err)
	a.Equal(0, huge.Cmp(c.EMax()))
}

func TestNilContext(t *testing.T) {
	a := assert.New(t)
	var c *Context
	a.Equal(int64(0), c.Precision().Int64())
	a.False(c.HasMaxPrecision())
	a.Equal(HalfEven, c.Rounding())
	a.False(c.HasExponentRange())
	a.Nil(c.EMin())
	a.Nil(c.EMax())
	a.True(c.AdjustExponent())
	a.False(c.ClampNormalExponents())
	a.False(c.HasFlags())
	a.Equal(Flags(0), c.Flags())
	a.Equal(Flags(0), c.Traps())
	a.True(ErrNotPermitted.Has(c.SetFlags(Inexact)))
	a.True(c.ExponentWithinRange(big.NewInt(1 << 40)))
	a.Equal("{unlimited}", c.String())
	a.Equal(int64(0), c.digits(10))
	a.NotPanics(func() {
		c.addFlags(Invalid)
	})
	built := c.WithPrecision(5)
	a.Equal(int64(5), built.Precision().Int64())
}

func TestPresets(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		c          *Context
		precision  int64
		rounding   Rounding
		eMin, eMax int64
		clamp      bool
		bits       bool
	}{
		{Basic, 9, HalfUp, -999999999, 999999999, false, false},
		{Decimal32, 7, HalfEven, -95, 96, true, false},
		{Decimal64, 16, HalfEven, -383, 384, true, false},
		{Decimal128, 34, HalfEven, -6143, 6144, true, false},
		{Binary16, 11, HalfEven, -24, 5, true, true},
		{Binary32, 24, HalfEven, -149, 104, true, true},
		{Binary64, 53, HalfEven, -1074, 971, true, true},
		{Binary128, 113, HalfEven, -16494, 16271, true, true},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.precision, test.c.Precision().Int64())
			a.Equal(test.rounding, test.c.Rounding())
			a.Equal(test.eMin, test.c.EMin().Int64())
			a.Equal(test.eMax, test.c.EMax().Int64())
			a.Equal(test.clamp, test.c.ClampNormalExponents())
			a.Equal(test.bits, test.c.IsPrecisionInBits())
			a.Equal(!test.bits, test.c.AdjustExponent())
			a.False(test.c.HasFlags())
		})
	}
	a.False(Unlimited.HasMaxPrecision())
	a.False(Unlimited.HasExponentRange())
	a.False(JavaBigDecimal.HasMaxPrecision())
	a.True(JavaBigDecimal.HasExponentRange())
}

func TestBuilders(t *testing.T) {
	a := assert.New(t)
	c := Decimal32.WithBlankFlags()
	a.True(c.HasFlags())
	a.False(Decimal32.HasFlags())
	a.NoError(c.SetFlags(Inexact | Rounded))
	a.Equal(Inexact|Rounded, c.Flags())
	c.addFlags(Clamped)
	a.Equal(Inexact|Rounded|Clamped, c.Flags())

	derived := c.WithRounding(Floor)
	a.Equal(Floor, derived.Rounding())
	a.Equal(HalfEven, c.Rounding())
	a.Equal(c.Flags(), derived.Flags())
	a.Equal(Flags(0), derived.WithBlankFlags().Flags())
	noFlags := derived.WithNoFlags()
	a.False(noFlags.HasFlags())
	noFlags.addFlags(Invalid)
	a.Equal(Flags(0), noFlags.Flags())

	_, err := c.WithBigPrecision(big.NewInt(-3))
	a.True(ErrInvalidArgument.Has(err))
	p, err := c.WithBigPrecision(big.NewInt(3))
	if a.NoError(err) {
		a.Equal(int64(3), p.Precision().Int64())
	}
	_, err = c.WithExponentRange(5, 1)
	a.True(ErrInvalidArgument.Has(err))
	r, err := c.WithExponentRange(-5, 5)
	if a.NoError(err) {
		a.Equal(int64(-5), r.EMin().Int64())
	}
	a.False(c.WithUnlimitedExponents().HasExponentRange())
	a.False(c.WithExponentClamp(false).ClampNormalExponents())
	a.False(c.WithAdjustExponent(false).AdjustExponent())
	a.True(c.WithPrecisionInBits(true).IsPrecisionInBits())
	a.True(c.WithSimplified(true).IsSimplified())
	a.Equal(Invalid|DivideByZero, c.WithTraps(Invalid|DivideByZero).Traps())
	a.Equal("{precision: 7, rounding: half-even, exponents: [-95, 96]}", Decimal32.String())
	a.Equal("{precision: 53 bits, rounding: half-even, exponents: [-1074, 971]}", Binary64.String())
}

func TestExponentWithinRange(t *testing.T) {
	a := assert.New(t)
	unlimitedPrecision, err := Unlimited.WithExponentRange(-10, 10)
	require.NoError(t, err)
	tests := []struct {
		c   *Context
		exp int64
		ok  bool
	}{
		{Decimal32, 0, true},
		{Decimal32, -101, true},
		{Decimal32, -102, false},
		{Decimal32, 96, true},
		{Decimal32, 97, false},
		{Binary64.WithAdjustExponent(false), -1074, true},
		{Binary64.WithAdjustExponent(false), -1075, false},
		{unlimitedPrecision, -100, true},
		{unlimitedPrecision, 11, false},
		{Unlimited, 1 << 50, true},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.ok, test.c.ExponentWithinRange(big.NewInt(test.exp)))
		})
	}
}

func TestDigits(t *testing.T) {
	a := assert.New(t)
	a.Equal(int64(53), Binary64.digits(2))
	a.Equal(int64(16), Binary64.digits(10))
	a.Equal(int64(7), Decimal32.digits(10))
	a.Equal(int64(7), Decimal32.digits(2))
	eMin, eMax := Binary64.adjustedRange(53)
	a.Equal(0, eMin.CmpInt64(-1022))
	a.Equal(0, eMax.CmpInt64(1023))
	eMin, eMax = Decimal32.adjustedRange(7)
	a.Equal(0, eMin.CmpInt64(-95))
	a.Equal(0, eMax.CmpInt64(96))
	huge, _ := new(big.Int).SetString("100000000000000000000000", 10)
	c, err := Decimal32.WithBigPrecision(huge)
	require.NoError(t, err)
	a.Panics(func() {
		c.digits(10)
	})
}
