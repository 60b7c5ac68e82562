// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncrement(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		r        Rounding
		radix    int
		neg      bool
		last     int
		older    int
		lastKept int
		inc      bool
	}{
		{HalfEven, 10, false, 5, 0, 2, false},
		{HalfEven, 10, false, 5, 0, 3, true},
		{HalfEven, 10, false, 5, 1, 2, true},
		{HalfEven, 10, false, 4, 1, 3, false},
		{HalfEven, 10, true, 6, 0, 0, true},
		{HalfUp, 10, false, 5, 0, 2, true},
		{HalfUp, 10, false, 4, 1, 2, false},
		{HalfDown, 10, false, 5, 0, 3, false},
		{HalfDown, 10, false, 5, 1, 3, true},
		{Up, 10, false, 0, 1, 3, true},
		{Up, 10, false, 0, 0, 3, false},
		{Down, 10, false, 9, 1, 3, false},
		{Ceiling, 10, false, 1, 0, 3, true},
		{Ceiling, 10, true, 1, 0, 3, false},
		{Floor, 10, false, 1, 0, 3, false},
		{Floor, 10, true, 1, 0, 3, true},
		{Odd, 10, false, 1, 0, 4, true},
		{Odd, 10, false, 1, 0, 3, false},
		{ZeroFiveUp, 10, false, 1, 0, 0, true},
		{ZeroFiveUp, 10, false, 1, 0, 5, true},
		{ZeroFiveUp, 10, false, 9, 0, 3, false},
		{OddOrZeroFiveUp, 10, false, 1, 0, 1, false},
		{OddOrZeroFiveUp, 10, false, 1, 0, 0, true},
		{OddOrZeroFiveUp, 2, false, 1, 0, 0, true},
		{OddOrZeroFiveUp, 2, false, 1, 0, 1, false},
		{HalfEven, 2, false, 1, 0, 1, true},
		{HalfEven, 2, false, 1, 0, 0, false},
		{HalfEven, 2, false, 1, 1, 0, true},
		{HalfUp, 2, false, 1, 0, 0, true},
		{HalfUp, 2, false, 0, 1, 0, false},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.inc, test.r.increment(test.radix, test.neg, test.last, test.older, test.lastKept))
		})
	}
}

func TestOverflowsToMax(t *testing.T) {
	a := assert.New(t)
	a.False(HalfEven.overflowsToMax(10, false))
	a.False(HalfUp.overflowsToMax(10, true))
	a.True(Down.overflowsToMax(10, false))
	a.True(Down.overflowsToMax(10, true))
	a.True(Ceiling.overflowsToMax(10, true))
	a.False(Ceiling.overflowsToMax(10, false))
	a.True(Floor.overflowsToMax(10, false))
	a.False(Floor.overflowsToMax(10, true))
	a.True(OddOrZeroFiveUp.overflowsToMax(2, false))
	a.True(OddOrZeroFiveUp.overflowsToMax(10, false))
}

func TestRoundingString(t *testing.T) {
	a := assert.New(t)
	a.Equal("half-even", HalfEven.String())
	a.Equal("05up", ZeroFiveUp.String())
	a.Equal("none", None.String())
	a.Equal("unknown", Rounding(100).String())
	a.Equal(Odd, OddOrZeroFiveUp.forRadix(2))
	a.Equal(ZeroFiveUp, OddOrZeroFiveUp.forRadix(10))
	a.Equal(HalfUp, HalfUp.forRadix(2))
}

func TestFlags(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		f       Flags
		s       string
		highest Flags
	}{
		{0, "none", 0},
		{Inexact, "inexact", Inexact},
		{Invalid | Inexact, "invalid, inexact", Invalid},
		{LostDigits, "inexact, rounded, lost-digits", Inexact},
		{lostDigits, "lost-digits", LostDigits},
		{Overflow | Inexact | Rounded, "overflow, inexact, rounded", Overflow},
		{Underflow | Subnormal | Clamped, "underflow, subnormal, clamped", Underflow},
		{DivideByZero | Overflow, "divide-by-zero, overflow", DivideByZero},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.s, test.f.String())
			a.Equal(test.highest, test.f.highest())
		})
	}
	a.Equal(AllFlags, AllFlags|LostDigits)
	a.True(NumberFlags(0).IsFinite())
	a.True(Negative.IsFinite())
	a.False(Infinity.IsFinite())
	a.False((Negative | SignalingNaN).IsFinite())
}
