// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package fixedint implements an immutable integer, which is stored in a machine word
// while it fits one, and in a big.Int otherwise.
// Arithmetic operations try the 64-bit path first and fall back to big integers on overflow.
package fixedint

import (
	"encoding/binary"
	"math"
	"math/big"

	"fortio.org/safecast"
	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/errs"

	mu "github.com/avdva/radixmath/internal/mathutil"
)

const (
	cacheMin = -24
	cacheMax = 128
)

var (
	cache = func() (c [cacheMax - cacheMin + 1]*Int) {
		for i := range c {
			c[i] = &Int{small: int64(i + cacheMin)}
		}
		return c
	}()

	// Error is the class of fixedint errors.
	Error = errs.Class("fixedint")

	errOutOfRange = Error.New("value out of range")

	// Zero is the integer 0.
	Zero = FromInt64(0)
	// One is the integer 1.
	One = FromInt64(1)
)

// Int is an integer in one of two modes: small (int64) or big (*big.Int).
// A value is in big mode only if it does not fit an int64.
// Values are never modified after creation.
type Int struct {
	big   *big.Int
	small int64
}

// FromInt64 returns an Int for v.
// Values in the range [-24, 128] are shared instances.
func FromInt64(v int64) *Int {
	if v >= cacheMin && v <= cacheMax {
		return cache[v-cacheMin]
	}
	return &Int{small: v}
}

// FromInt returns an Int for v.
func FromInt(v int) *Int {
	return FromInt64(int64(v))
}

// FromBig returns an Int for b. b is copied, if needed.
func FromBig(b *big.Int) *Int {
	if b.IsInt64() {
		return FromInt64(b.Int64())
	}
	return &Int{big: new(big.Int).Set(b)}
}

func fromOwnedBig(b *big.Int) *Int {
	if b.IsInt64() {
		return FromInt64(b.Int64())
	}
	return &Int{big: b}
}

// IsSmall returns true if x is stored in a machine word.
func (x *Int) IsSmall() bool {
	return x.big == nil
}

// Int64 returns x as an int64, if it fits.
func (x *Int) Int64() (int64, bool) {
	if x.big != nil {
		return 0, false
	}
	return x.small, true
}

// Int32 returns x as an int32, or an error if it does not fit.
func (x *Int) Int32() (int32, error) {
	if x.big != nil {
		return 0, errOutOfRange
	}
	return safecast.Convert[int32](x.small)
}

// Int returns x as an int, or an error if it does not fit.
func (x *Int) Int() (int, error) {
	if x.big != nil {
		return 0, errOutOfRange
	}
	return safecast.Convert[int](x.small)
}

// Big returns x as a new big.Int.
func (x *Int) Big() *big.Int {
	if x.big != nil {
		return new(big.Int).Set(x.big)
	}
	return big.NewInt(x.small)
}

func (x *Int) asBig() *big.Int {
	if x.big != nil {
		return x.big
	}
	return big.NewInt(x.small)
}

// Add returns x+y.
func (x *Int) Add(y *Int) *Int {
	if x.big == nil && y.big == nil {
		if r, ok := mu.AddInt64(x.small, y.small); ok {
			return FromInt64(r)
		}
	}
	return fromOwnedBig(new(big.Int).Add(x.asBig(), y.asBig()))
}

// AddInt64 returns x+v.
func (x *Int) AddInt64(v int64) *Int {
	if x.big == nil {
		if r, ok := mu.AddInt64(x.small, v); ok {
			return FromInt64(r)
		}
	}
	return fromOwnedBig(new(big.Int).Add(x.asBig(), big.NewInt(v)))
}

// Sub returns x-y.
func (x *Int) Sub(y *Int) *Int {
	if x.big == nil && y.big == nil {
		if r, ok := mu.SubInt64(x.small, y.small); ok {
			return FromInt64(r)
		}
	}
	return fromOwnedBig(new(big.Int).Sub(x.asBig(), y.asBig()))
}

// SubInt64 returns x-v.
func (x *Int) SubInt64(v int64) *Int {
	if x.big == nil {
		if r, ok := mu.SubInt64(x.small, v); ok {
			return FromInt64(r)
		}
	}
	return fromOwnedBig(new(big.Int).Sub(x.asBig(), big.NewInt(v)))
}

// MulInt64 returns x*v.
func (x *Int) MulInt64(v int64) *Int {
	if x.big == nil {
		if r, ok := mu.MulInt64(x.small, v); ok {
			return FromInt64(r)
		}
	}
	return fromOwnedBig(new(big.Int).Mul(x.asBig(), big.NewInt(v)))
}

// FloorQuoInt64 returns floor(x/v). v must be positive.
func (x *Int) FloorQuoInt64(v int64) *Int {
	if v <= 0 {
		panic("fixedint: non-positive divisor")
	}
	if x.big == nil {
		q := x.small / v
		if x.small%v != 0 && x.small < 0 {
			q--
		}
		return FromInt64(q)
	}
	// big.Int.Div implements Euclidean division, which is floored for positive divisors.
	return fromOwnedBig(new(big.Int).Div(x.big, big.NewInt(v)))
}

// ModInt64 returns x mod v in the range [0, v). v must be positive.
func (x *Int) ModInt64(v int64) int64 {
	if v <= 0 {
		panic("fixedint: non-positive modulus")
	}
	if x.big == nil {
		r := x.small % v
		if r < 0 {
			r += v
		}
		return r
	}
	return new(big.Int).Mod(x.big, big.NewInt(v)).Int64()
}

// Increment returns x+1.
func (x *Int) Increment() *Int {
	return x.AddInt64(1)
}

// Decrement returns x-1.
func (x *Int) Decrement() *Int {
	return x.SubInt64(1)
}

// Neg returns -x.
func (x *Int) Neg() *Int {
	if x.big == nil && x.small != math.MinInt64 {
		return FromInt64(-x.small)
	}
	return fromOwnedBig(new(big.Int).Neg(x.asBig()))
}

// Abs returns |x|.
func (x *Int) Abs() *Int {
	if x.Sign() < 0 {
		return x.Neg()
	}
	return x
}

// Sign returns -1, 0, or 1.
func (x *Int) Sign() int {
	if x.big != nil {
		return x.big.Sign()
	}
	return mu.Int64Sign(x.small)
}

// IsZero returns true if x == 0.
func (x *Int) IsZero() bool {
	return x.big == nil && x.small == 0
}

// IsEven returns true if x is even.
func (x *Int) IsEven() bool {
	if x.big != nil {
		return x.big.Bit(0) == 0
	}
	return x.small&1 == 0
}

// Cmp compares x and y.
// Returns -1 if x < y, 0 if x == y, 1 if x > y
func (x *Int) Cmp(y *Int) int {
	if x.big == nil && y.big == nil {
		switch {
		case x.small < y.small:
			return -1
		case x.small > y.small:
			return 1
		default:
			return 0
		}
	}
	return x.asBig().Cmp(y.asBig())
}

// CmpInt64 compares x and v.
func (x *Int) CmpInt64(v int64) int {
	return x.Cmp(&Int{small: v})
}

// Equal returns true if x and y represent the same integer.
func (x *Int) Equal(y *Int) bool {
	return x.Cmp(y) == 0
}

// Hash returns a hash of x, which does not depend on the representation.
func (x *Int) Hash() uint64 {
	var buf [9]byte
	var mag []byte
	switch {
	case x.big != nil:
		mag = x.big.Bytes()
	case x.small == math.MinInt64:
		binary.BigEndian.PutUint64(buf[1:], uint64(1)<<63)
		mag = buf[1:]
	default:
		binary.BigEndian.PutUint64(buf[1:], uint64(mu.AbsInt64(x.small)))
		mag = buf[1:]
		for len(mag) > 0 && mag[0] == 0 {
			mag = mag[1:]
		}
	}
	d := xxhash.New()
	d.Write([]byte{byte(x.Sign() + 1)})
	d.Write(mag)
	return d.Sum64()
}

// String returns the decimal representation of x.
func (x *Int) String() string {
	if x.big != nil {
		return x.big.String()
	}
	return big.NewInt(x.small).String()
}

// Min returns the smaller of x and y.
func Min(x, y *Int) *Int {
	if x.Cmp(y) <= 0 {
		return x
	}
	return y
}

// Max returns the larger of x and y.
func Max(x, y *Int) *Int {
	if x.Cmp(y) >= 0 {
		return x
	}
	return y
}
