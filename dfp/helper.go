// Copyright 2020 Aleksandr Demakin. All rights reserved.

package dfp

import (
	"math/big"

	"github.com/avdva/radixmath"
	"github.com/avdva/radixmath/fixedint"
	"github.com/avdva/radixmath/numutil"
)

// Helper connects Number to radixmath engines for a particular radix.
type Helper struct {
	radix   int
	support radixmath.ArithmeticSupport
}

var (
	// Decimal is the helper for radix 10 numbers.
	Decimal = &Helper{radix: 10}
	// Binary is the helper for radix 2 numbers.
	Binary = &Helper{radix: 2}

	// DecimalArithmetic implements operations on decimal numbers.
	DecimalArithmetic = mustDispatcher(Decimal)
	// BinaryArithmetic implements operations on binary numbers.
	BinaryArithmetic = mustDispatcher(Binary)
)

var _ radixmath.Helper[Number] = (*Helper)(nil)

func mustDispatcher(h *Helper) *radixmath.Dispatcher[Number] {
	d, err := radixmath.NewDispatcher[Number](h)
	if err != nil {
		panic(err)
	}
	return d
}

// NewHelper returns a helper for the given radix, which must be 2 or 10.
func NewHelper(radix int, support radixmath.ArithmeticSupport) (*Helper, error) {
	if radix != 2 && radix != 10 {
		return nil, radixmath.ErrInvalidArgument.New("unsupported radix %d", radix)
	}
	return &Helper{radix: radix, support: support}, nil
}

func (h *Helper) Radix() int {
	return h.radix
}

func (h *Helper) ArithmeticSupport() radixmath.ArithmeticSupport {
	return h.support
}

func (h *Helper) Flags(v Number) radixmath.NumberFlags {
	return v.flags
}

func (h *Helper) Sign(v Number) int {
	return v.Sign()
}

// Mantissa returns v's mantissa. The result must not be modified.
func (h *Helper) Mantissa(v Number) *big.Int {
	return v.mantissa()
}

func (h *Helper) FixedMantissa(v Number) *fixedint.Int {
	return fixedint.FromBig(v.mantissa())
}

// Exponent returns v's exponent. The result must not be modified.
func (h *Helper) Exponent(v Number) *big.Int {
	return v.exponent()
}

func (h *Helper) FixedExponent(v Number) *fixedint.Int {
	if v.exp == nil {
		return fixedint.Zero
	}
	return fixedint.FromBig(v.exp)
}

// New returns a number. It takes ownership of mant and exp.
func (h *Helper) New(mant, exp *big.Int, flags radixmath.NumberFlags) Number {
	return newNumber(h.radix, flags, mant, exp)
}

func (h *Helper) NewFixed(mant, exp *fixedint.Int, flags radixmath.NumberFlags) Number {
	return newNumber(h.radix, flags, mant.Big(), exp.Big())
}

func (h *Helper) ShiftAccumulator(mant *big.Int, last, older int) radixmath.ShiftAccumulator {
	return radixmath.NewShiftAccumulator(h.radix, mant, last, older)
}

func (h *Helper) DivisionShift(num, den *big.Int) (*fixedint.Int, bool) {
	return numutil.DivisionShift(h.radix, den)
}

func (h *Helper) DigitLength(mant *big.Int) *fixedint.Int {
	return fixedint.FromInt64(numutil.DigitLength(h.radix, mant))
}

func (h *Helper) MultiplyByRadixPower(mant *big.Int, power *fixedint.Int) *big.Int {
	return numutil.MultiplyByRadixPower(mant, h.radix, power)
}

func (h *Helper) MultiplyByRadixPowerFixed(mant, power *fixedint.Int) *fixedint.Int {
	return fixedint.FromBig(numutil.MultiplyByRadixPower(mant.Big(), h.radix, power))
}
