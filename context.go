// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"fmt"
	"math"
	"math/big"

	"github.com/avdva/radixmath/fixedint"
	"github.com/avdva/radixmath/numutil"
)

// Context defines precision, rounding, and exponent range for arithmetic operations,
// and optionally accumulates signaled conditions.
//
// Contexts are immutable, except for flags. A context with flags must not be used
// by concurrently running operations.
//
// A nil *Context is valid and means unlimited precision without an exponent range.
type Context struct {
	precision        *fixedint.Int
	rounding         Rounding
	eMin, eMax       *fixedint.Int
	hasExponentRange bool
	adjustExponent   bool
	clamp            bool
	precisionInBits  bool
	simplified       bool
	hasFlags         bool
	flags            Flags
	traps            Flags
}

var (
	// Unlimited has unlimited precision and no exponent range.
	Unlimited = &Context{precision: fixedint.Zero, rounding: HalfUp, adjustExponent: true}

	// Basic is the default context of General Decimal Arithmetic.
	Basic = mustContext(9, HalfUp, -999999999, 999999999, false)

	// Decimal32 matches the IEEE 754 decimal32 format.
	Decimal32 = mustContext(7, HalfEven, -95, 96, true)
	// Decimal64 matches the IEEE 754 decimal64 format.
	Decimal64 = mustContext(16, HalfEven, -383, 384, true)
	// Decimal128 matches the IEEE 754 decimal128 format.
	Decimal128 = mustContext(34, HalfEven, -6143, 6144, true)

	// Binary16 matches the IEEE 754 binary16 format. Exponents are those of the least significant bit.
	Binary16 = mustBinaryContext(11, -24, 5)
	// Binary32 matches the IEEE 754 binary32 format.
	Binary32 = mustBinaryContext(24, -149, 104)
	// Binary64 matches the IEEE 754 binary64 format.
	Binary64 = mustBinaryContext(53, -1074, 971)
	// Binary128 matches the IEEE 754 binary128 format.
	Binary128 = mustBinaryContext(113, -16494, 16271)

	// JavaBigDecimal has unlimited precision and exponents limited to the range of a 32-bit scale.
	JavaBigDecimal = &Context{
		precision:        fixedint.Zero,
		rounding:         HalfUp,
		eMin:             fixedint.FromInt64(-math.MaxInt32),
		eMax:             fixedint.FromInt64(math.MaxInt32 + 1),
		hasExponentRange: true,
	}
)

func mustContext(precision int64, rounding Rounding, eMin, eMax int64, clamp bool) *Context {
	c, err := NewContext(precision, rounding, eMin, eMax, clamp)
	if err != nil {
		panic(err)
	}
	return c
}

func mustBinaryContext(precision int64, eMin, eMax int64) *Context {
	c := mustContext(precision, HalfEven, eMin, eMax, true)
	c.adjustExponent = false
	c.precisionInBits = true
	return c
}

// NewContext returns a context with the given precision, rounding, and exponent range.
// eMin and eMax are limits for adjusted exponents.
func NewContext(precision int64, rounding Rounding, eMin, eMax int64, clamp bool) (*Context, error) {
	if precision < 0 {
		return nil, ErrInvalidArgument.New("negative precision %d", precision)
	}
	if eMin > eMax {
		return nil, ErrInvalidArgument.New("eMin %d > eMax %d", eMin, eMax)
	}
	return &Context{
		precision:        fixedint.FromInt64(precision),
		rounding:         rounding,
		eMin:             fixedint.FromInt64(eMin),
		eMax:             fixedint.FromInt64(eMax),
		hasExponentRange: true,
		adjustExponent:   true,
		clamp:            clamp,
	}, nil
}

// NewContextBig is like NewContext, but accepts arbitrary-precision values.
func NewContextBig(precision *big.Int, rounding Rounding, eMin, eMax *big.Int, clamp bool) (*Context, error) {
	if precision.Sign() < 0 {
		return nil, ErrInvalidArgument.New("negative precision %s", precision)
	}
	if eMin.Cmp(eMax) > 0 {
		return nil, ErrInvalidArgument.New("eMin %s > eMax %s", eMin, eMax)
	}
	return &Context{
		precision:        fixedint.FromBig(precision),
		rounding:         rounding,
		eMin:             fixedint.FromBig(eMin),
		eMax:             fixedint.FromBig(eMax),
		hasExponentRange: true,
		adjustExponent:   true,
		clamp:            clamp,
	}, nil
}

func (c *Context) copy() *Context {
	if c == nil {
		return &Context{precision: fixedint.Zero, rounding: HalfEven, adjustExponent: true}
	}
	cp := *c
	return &cp
}

// Precision returns the maximum number of digits (or bits) of the result. Zero means unlimited.
func (c *Context) Precision() *big.Int {
	if c == nil {
		return new(big.Int)
	}
	return c.precision.Big()
}

// HasMaxPrecision returns true if precision is limited.
func (c *Context) HasMaxPrecision() bool {
	return c != nil && !c.precision.IsZero()
}

// Rounding returns the rounding mode.
func (c *Context) Rounding() Rounding {
	if c == nil {
		return HalfEven
	}
	return c.rounding
}

// HasExponentRange returns true if exponents are limited.
func (c *Context) HasExponentRange() bool {
	return c != nil && c.hasExponentRange
}

// EMin returns the lower exponent limit, or nil if exponents are not limited.
func (c *Context) EMin() *big.Int {
	if !c.HasExponentRange() {
		return nil
	}
	return c.eMin.Big()
}

// EMax returns the upper exponent limit, or nil if exponents are not limited.
func (c *Context) EMax() *big.Int {
	if !c.HasExponentRange() {
		return nil
	}
	return c.eMax.Big()
}

// AdjustExponent returns true if exponent limits apply to adjusted exponents,
// i.e. exponents of numbers written with a single digit before the radix point.
func (c *Context) AdjustExponent() bool {
	return c == nil || c.adjustExponent
}

// ClampNormalExponents returns true if exponents of large numbers are clamped,
// so that the mantissa never has more digits than the precision.
func (c *Context) ClampNormalExponents() bool {
	return c != nil && c.clamp
}

// IsPrecisionInBits returns true if precision is a number of bits, regardless of the radix.
func (c *Context) IsPrecisionInBits() bool {
	return c != nil && c.precisionInBits
}

// IsSimplified returns true if operations use the simplified arithmetic.
func (c *Context) IsSimplified() bool {
	return c != nil && c.simplified
}

// HasFlags returns true if the context accumulates signaled conditions.
func (c *Context) HasFlags() bool {
	return c != nil && c.hasFlags
}

// Flags returns accumulated conditions.
func (c *Context) Flags() Flags {
	if c == nil {
		return 0
	}
	return c.flags
}

// SetFlags overwrites accumulated conditions.
func (c *Context) SetFlags(f Flags) error {
	if !c.HasFlags() {
		return ErrNotPermitted.New("context has no flags")
	}
	c.flags = f
	return nil
}

// Traps returns the set of conditions, which are returned as TrapSignal errors.
func (c *Context) Traps() Flags {
	if c == nil {
		return 0
	}
	return c.traps
}

// ExponentWithinRange returns true if exp is within the exponent range of the context.
// For limited precision, the minimum is checked against exp+precision-1, if exponents are adjusted.
func (c *Context) ExponentWithinRange(exp *big.Int) bool {
	if !c.HasExponentRange() {
		return true
	}
	e := fixedint.FromBig(exp)
	if c.precision.IsZero() {
		return e.Cmp(c.eMax) <= 0
	}
	adj := e
	if c.adjustExponent {
		adj = e.Add(c.precision).Decrement()
	}
	return adj.Cmp(c.eMin) >= 0 && e.Cmp(c.eMax) <= 0
}

// WithPrecision returns a copy of c with the given precision. Zero means unlimited.
func (c *Context) WithPrecision(precision uint) *Context {
	cp := c.copy()
	cp.precision = fixedint.FromBig(new(big.Int).SetUint64(uint64(precision)))
	return cp
}

// WithBigPrecision returns a copy of c with the given precision.
func (c *Context) WithBigPrecision(precision *big.Int) (*Context, error) {
	if precision.Sign() < 0 {
		return nil, ErrInvalidArgument.New("negative precision %s", precision)
	}
	cp := c.copy()
	cp.precision = fixedint.FromBig(precision)
	return cp, nil
}

// WithRounding returns a copy of c with the given rounding mode.
func (c *Context) WithRounding(r Rounding) *Context {
	cp := c.copy()
	cp.rounding = r
	return cp
}

// WithExponentRange returns a copy of c with the given exponent range.
func (c *Context) WithExponentRange(eMin, eMax int64) (*Context, error) {
	return c.WithBigExponentRange(big.NewInt(eMin), big.NewInt(eMax))
}

// WithBigExponentRange returns a copy of c with the given exponent range.
func (c *Context) WithBigExponentRange(eMin, eMax *big.Int) (*Context, error) {
	if eMin.Cmp(eMax) > 0 {
		return nil, ErrInvalidArgument.New("eMin %s > eMax %s", eMin, eMax)
	}
	cp := c.copy()
	cp.eMin, cp.eMax = fixedint.FromBig(eMin), fixedint.FromBig(eMax)
	cp.hasExponentRange = true
	return cp, nil
}

// WithUnlimitedExponents returns a copy of c without an exponent range.
func (c *Context) WithUnlimitedExponents() *Context {
	cp := c.copy()
	cp.hasExponentRange = false
	cp.eMin, cp.eMax = nil, nil
	return cp
}

// WithExponentClamp returns a copy of c with exponent clamping enabled or disabled.
func (c *Context) WithExponentClamp(clamp bool) *Context {
	cp := c.copy()
	cp.clamp = clamp
	return cp
}

// WithAdjustExponent returns a copy of c, where exponent limits apply to adjusted exponents or not.
func (c *Context) WithAdjustExponent(adjust bool) *Context {
	cp := c.copy()
	cp.adjustExponent = adjust
	return cp
}

// WithPrecisionInBits returns a copy of c, where precision is measured in bits or digits.
func (c *Context) WithPrecisionInBits(inBits bool) *Context {
	cp := c.copy()
	cp.precisionInBits = inBits
	return cp
}

// WithSimplified returns a copy of c using the simplified arithmetic or not.
func (c *Context) WithSimplified(simplified bool) *Context {
	cp := c.copy()
	cp.simplified = simplified
	return cp
}

// WithBlankFlags returns a copy of c, which accumulates conditions, starting with none.
func (c *Context) WithBlankFlags() *Context {
	cp := c.copy()
	cp.hasFlags = true
	cp.flags = 0
	return cp
}

// WithNoFlags returns a copy of c, which does not accumulate conditions.
func (c *Context) WithNoFlags() *Context {
	cp := c.copy()
	cp.hasFlags = false
	cp.flags = 0
	return cp
}

// WithTraps returns a copy of c with the given traps.
func (c *Context) WithTraps(traps Flags) *Context {
	cp := c.copy()
	cp.traps = traps
	return cp
}

// String returns a short description of the context.
func (c *Context) String() string {
	if c == nil {
		return "{unlimited}"
	}
	s := fmt.Sprintf("{precision: %s", c.precision)
	if c.precisionInBits {
		s += " bits"
	}
	s += ", rounding: " + c.rounding.String()
	if c.hasExponentRange {
		s += fmt.Sprintf(", exponents: [%s, %s]", c.eMin, c.eMax)
	}
	if c.hasFlags {
		s += ", flags: " + c.flags.String()
	}
	return s + "}"
}

// digits returns the precision as a number of radix digits. Zero means unlimited.
func (c *Context) digits(radix int) int64 {
	if c == nil {
		return 0
	}
	p, ok := c.precision.Int64()
	if !ok {
		panic(numutil.ErrTooMuchMemory.New("precision %s", c.precision))
	}
	if c.precisionInBits && radix != 2 && p > 0 {
		return numutil.BitsToDigits(radix, p)
	}
	return p
}

// adjustedRange returns limits of adjusted exponents for numbers with p-digit mantissas.
func (c *Context) adjustedRange(p int64) (eMin, eMax *fixedint.Int) {
	if c.adjustExponent || p == 0 {
		return c.eMin, c.eMax
	}
	return c.eMin.AddInt64(p - 1), c.eMax.AddInt64(p - 1)
}

func (c *Context) addFlags(f Flags) {
	if c.HasFlags() {
		c.flags |= f
	}
}
