// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avdva/radixmath/fixedint"
	"github.com/avdva/radixmath/numutil"
)

// countingHelper serves the rounding code only and counts created accumulators.
type countingHelper struct {
	Helper[value]
	radix        int
	accumulators int
}

func (h *countingHelper) Radix() int { return h.radix }

func (h *countingHelper) ShiftAccumulator(mant *big.Int, last, older int) ShiftAccumulator {
	h.accumulators++
	return NewShiftAccumulator(h.radix, mant, last, older)
}

func (h *countingHelper) MultiplyByRadixPower(mant *big.Int, power *fixedint.Int) *big.Int {
	return new(big.Int).Mul(mant, numutil.FindPowerOfRadix(h.radix, power))
}

func TestRound(t *testing.T) {
	a := assert.New(t)
	floor := Decimal32.WithRounding(Floor)
	tests := []struct {
		c           *Context
		neg         bool
		mant        string
		exp         int64
		last, older int
		resMant     string
		resExp      int64
		flags       Flags
		accumulated bool
	}{
		{Decimal32, false, "1234567", 0, 5, 0, "1234568", 0, Inexact | Rounded, false},
		{Decimal32, false, "1234566", 0, 5, 0, "1234566", 0, Inexact | Rounded, false},
		{Decimal32, false, "1234566", 0, 5, 1, "1234567", 0, Inexact | Rounded, false},
		{Decimal32, false, "1234566", 0, 4, 1, "1234566", 0, Inexact | Rounded, false},
		{Decimal32, false, "1234566", 0, 0, 0, "1234566", 0, 0, false},
		{Decimal32, false, "1234567", -101, 0, 0, "1234567", -101, 0, false},
		{Decimal32, false, "1234567", 90, 0, 0, "1234567", 90, 0, false},
		{floor, true, "1234567", 0, 0, 1, "1234568", 0, Inexact | Rounded, false},
		{floor, false, "1234567", 0, 9, 1, "1234567", 0, Inexact | Rounded, false},
		{Decimal32, false, "9999999", 0, 5, 0, "1000000", 1, Inexact | Rounded, true},
		{Decimal32, false, "12345678", 0, 0, 0, "1234568", 1, Inexact | Rounded, true},
		{Decimal32, false, "123456", -101, 0, 0, "123456", -101, Subnormal, true},
		{Decimal32, false, "1234", 93, 0, 0, "1234000", 90, Clamped, true},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			h := &countingHelper{radix: 10}
			e := NewEngine[value](h)
			var fl Flags
			r := e.round(finite(test.neg, mustBig(test.mant), fixedint.FromInt64(test.exp)), test.c, &fl, test.last, test.older)
			a.Equal(test.neg, r.neg)
			a.Equal(test.resMant, r.mant.String())
			exp, ok := r.exp.Int64()
			a.True(ok)
			a.Equal(test.resExp, exp)
			a.Equal(test.flags, fl)
			a.Equal(test.accumulated, h.accumulators > 0)
		})
	}
}

func TestRoundUnnecessary(t *testing.T) {
	a := assert.New(t)
	h := &countingHelper{radix: 10}
	e := NewEngine[value](h)
	c := Decimal32.WithRounding(None)

	var fl Flags
	r := e.round(finite(false, big.NewInt(1234567), fixedint.Zero), c, &fl, 5, 0)
	a.True(r.isNaN())
	a.Equal(Invalid, fl)

	fl = 0
	r = e.round(finite(false, big.NewInt(1234567), fixedint.Zero), c, &fl, 0, 0)
	a.Equal("1234567", r.mant.String())
	a.Equal(Flags(0), fl)
	a.Zero(h.accumulators)
}
