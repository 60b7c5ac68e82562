// Copyright 2020 Aleksandr Demakin. All rights reserved.

package radixmath

import (
	"math/big"

	"github.com/avdva/radixmath/fixedint"
)

type kind uint8

const (
	kindFinite kind = iota
	kindInfinity
	kindQuietNaN
	kindSignalingNaN
)

func (k kind) String() string {
	switch k {
	case kindFinite:
		return "finite"
	case kindInfinity:
		return "infinity"
	case kindQuietNaN:
		return "NaN"
	default:
		return "sNaN"
	}
}

// value is the engine's view of a number: sign * mant * radix^exp for finite numbers.
// For NaNs, mant is the payload. mant is never negative and never modified in place.
type value struct {
	kind kind
	neg  bool
	mant *big.Int
	exp  *fixedint.Int
}

func finite(neg bool, mant *big.Int, exp *fixedint.Int) value {
	return value{kind: kindFinite, neg: neg, mant: mant, exp: exp}
}

func intValue(n int64) value {
	neg := n < 0
	m := big.NewInt(n)
	if neg {
		m.Neg(m)
	}
	return finite(neg, m, fixedint.Zero)
}

func zeroValue(neg bool, exp *fixedint.Int) value {
	return finite(neg, new(big.Int), exp)
}

func infValue(neg bool) value {
	return value{kind: kindInfinity, neg: neg, mant: new(big.Int), exp: fixedint.Zero}
}

func nanValue(neg bool, payload *big.Int) value {
	if payload == nil {
		payload = new(big.Int)
	}
	return value{kind: kindQuietNaN, neg: neg, mant: payload, exp: fixedint.Zero}
}

func fromFlags(flags NumberFlags, mant *big.Int, exp *fixedint.Int) value {
	v := value{neg: flags&Negative != 0, mant: mant, exp: exp}
	switch {
	case flags&SignalingNaN != 0:
		v.kind = kindSignalingNaN
	case flags&QuietNaN != 0:
		v.kind = kindQuietNaN
	case flags&Infinity != 0:
		v.kind = kindInfinity
	}
	return v
}

func (v value) flags() NumberFlags {
	var f NumberFlags
	if v.neg {
		f |= Negative
	}
	switch v.kind {
	case kindInfinity:
		f |= Infinity
	case kindQuietNaN:
		f |= QuietNaN
	case kindSignalingNaN:
		f |= SignalingNaN
	}
	return f
}

func (v value) isFinite() bool {
	return v.kind == kindFinite
}

func (v value) isInf() bool {
	return v.kind == kindInfinity
}

func (v value) isNaN() bool {
	return v.kind == kindQuietNaN || v.kind == kindSignalingNaN
}

func (v value) isZero() bool {
	return v.kind == kindFinite && v.mant.Sign() == 0
}

func (v value) negate() value {
	v.neg = !v.neg
	return v
}

func (v value) withSign(neg bool) value {
	v.neg = neg
	return v
}

// sign returns -1, 0, or 1 for non-NaN values.
func (v value) sign() int {
	switch {
	case v.isZero():
		return 0
	case v.neg:
		return -1
	default:
		return 1
	}
}
